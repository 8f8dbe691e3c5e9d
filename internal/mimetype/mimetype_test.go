package mimetype

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	require.NoError(t, LoadTypes())

	tests := map[string]struct {
		path        string
		contentType string
	}{
		"text file": {
			path:        "/srv/pub/notes.txt",
			contentType: "text/plain",
		},
		"html file": {
			path:        "/srv/pub/index.html",
			contentType: "text/html",
		},
		"extra type": {
			path:        "/srv/pub/image.avif",
			contentType: "image/avif",
		},
		"upper case extension": {
			path:        "/srv/pub/INDEX.HTML",
			contentType: "text/html",
		},
		"unknown extension": {
			path:        "/srv/pub/data.unknown-ext",
			contentType: DefaultType,
		},
		"no extension": {
			path:        "/srv/pub/Makefile",
			contentType: DefaultType,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			contentType := Lookup(test.path)
			require.True(t, strings.HasPrefix(contentType, test.contentType), "got %q", contentType)
		})
	}
}
