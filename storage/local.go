package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/WilLunaj/Ventas-web/utils"
)

// Local writes attachments under Root/<cliente>/ and returns the relative
// path as the reference.
type Local struct {
	Root string
}

func NewLocal(root string) *Local {
	return &Local{Root: root}
}

func (l *Local) Save(ctx context.Context, cliente, filename string, r io.Reader) (string, error) {
	dir := filepath.Join(l.Root, utils.SanitizeFilename(cliente))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create client dir: %w", err)
	}

	path := filepath.Join(dir, filename)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create attachment file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write attachment: %w", err)
	}
	return path, nil
}
