package utils

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Proof-of-payment uploads are restricted to images and PDFs.
var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".pdf":  true,
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// AllowedFile reports whether the filename carries a permitted extension.
func AllowedFile(name string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(name))]
}

// SanitizeFilename strips path separators and anything outside a safe
// character set, so user input can be embedded in storage names.
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	name = unsafeChars.ReplaceAllString(name, "_")
	return strings.Trim(name, "._")
}

// StorageName builds a collision-resistant name for an uploaded attachment:
// client, UTC timestamp, short random suffix and the sanitized original name.
func StorageName(cliente, original string, now time.Time) string {
	return fmt.Sprintf("%s_%s_%s_%s",
		SanitizeFilename(cliente),
		now.UTC().Format("20060102_150405"),
		uuid.NewString()[:8],
		SanitizeFilename(original))
}
