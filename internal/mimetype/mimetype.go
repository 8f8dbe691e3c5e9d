package mimetype

import (
	"fmt"
	"mime"
	"path/filepath"

	mimedb "gitlab.com/gitlab-org/go-mimedb"
	"gitlab.com/gitlab-org/labkit/log"
)

// DefaultType is served for files whose extension is unknown
const DefaultType = "application/octet-stream"

var extraMIMETypes = map[string]string{
	".avif": "image/avif",
	".wasm": "application/wasm",
}

// LoadTypes registers the full MIME database with the mime package, followed
// by types the database is missing.
func LoadTypes() error {
	if err := mimedb.LoadTypes(); err != nil {
		return fmt.Errorf("loading mime database: %w", err)
	}

	for ext, mimeType := range extraMIMETypes {
		if err := mime.AddExtensionType(ext, mimeType); err != nil {
			log.WithError(err).Errorf("failed to add extension: %q with MIME type: %q", ext, mimeType)
		}
	}

	return nil
}

// Lookup infers the content type of path from its extension
func Lookup(path string) string {
	if contentType := mime.TypeByExtension(filepath.Ext(path)); contentType != "" {
		return contentType
	}

	return DefaultType
}
