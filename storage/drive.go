package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

const folderMimeType = "application/vnd.google-apps.folder"

// Drive stores attachments in Google Drive, one subfolder per client under
// a configured parent folder. The returned reference is the file's
// webViewLink.
type Drive struct {
	svc      *drive.Service
	folderID string
	logger   *zap.Logger
}

// NewDrive builds a Drive sink from a service-account credentials JSON blob
// and the target parent folder id.
func NewDrive(ctx context.Context, credentialsJSON []byte, folderID string, logger *zap.Logger) (*Drive, error) {
	if folderID == "" {
		return nil, fmt.Errorf("drive folder id is empty")
	}

	svc, err := drive.NewService(ctx,
		option.WithCredentialsJSON(credentialsJSON),
		option.WithScopes(drive.DriveFileScope))
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}

	return &Drive{svc: svc, folderID: folderID, logger: logger}, nil
}

func (d *Drive) Save(ctx context.Context, cliente, filename string, r io.Reader) (string, error) {
	parentID, err := d.clientFolderID(ctx, cliente)
	if err != nil {
		return "", err
	}

	file, err := d.svc.Files.Create(&drive.File{
		Name:    filename,
		Parents: []string{parentID},
	}).Media(r).Fields("id, webViewLink").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("upload to drive: %w", err)
	}

	d.logger.Info("attachment uploaded to drive",
		zap.String("cliente", cliente),
		zap.String("file_id", file.Id))
	return file.WebViewLink, nil
}

// clientFolderID finds the client's folder under the parent, creating it on
// first use.
func (d *Drive) clientFolderID(ctx context.Context, cliente string) (string, error) {
	query := fmt.Sprintf("name='%s' and '%s' in parents and mimeType='%s' and trashed=false",
		escapeQueryValue(cliente), d.folderID, folderMimeType)

	list, err := d.svc.Files.List().Q(query).Fields("files(id, name)").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("list drive folders: %w", err)
	}
	if len(list.Files) > 0 {
		return list.Files[0].Id, nil
	}

	folder, err := d.svc.Files.Create(&drive.File{
		Name:     cliente,
		MimeType: folderMimeType,
		Parents:  []string{d.folderID},
	}).Fields("id").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("create drive folder: %w", err)
	}
	return folder.Id, nil
}

// escapeQueryValue escapes single quotes and backslashes for Drive query
// string literals.
func escapeQueryValue(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}
