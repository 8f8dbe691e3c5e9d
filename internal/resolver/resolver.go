// Package resolver maps request URLs onto filesystem paths confined to a
// single root directory.
package resolver

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"gitlab.com/remotefs/remotefs/internal/httperrors"
)

// Resolver confines resolved paths to root
type Resolver struct {
	root string
}

// New returns a Resolver for root. root must be absolute and clean,
// typically the working directory captured at startup.
func New(root string) *Resolver {
	return &Resolver{root: filepath.Clean(root)}
}

// Root returns the directory every resolved path is confined to
func (r *Resolver) Root() string {
	return r.root
}

// Resolve returns the absolute filesystem path rawURL refers to. It returns
// httperrors.Forbidden() when the path escapes the root.
func (r *Resolver) Resolve(rawURL string) (string, error) {
	return Resolve(rawURL, r.root)
}

// ResolveURL is like Resolve for an already parsed request URL
func (r *Resolver) ResolveURL(u *url.URL) (string, error) {
	return resolvePath(u.Path, r.root)
}

// Resolve returns the absolute path for rawURL inside root. The path is
// decoded before dot segments are collapsed so that %2e%2e is treated the
// same as a literal "..".
func Resolve(rawURL, root string) (string, error) {
	u, err := parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parsing request URL: %w", err)
	}

	return resolvePath(u.Path, root)
}

// parse reads origin-form targets the way the HTTP server does, so "//a"
// stays a path instead of becoming a host.
func parse(rawURL string) (*url.URL, error) {
	if strings.HasPrefix(rawURL, "/") {
		return url.ParseRequestURI(rawURL)
	}

	return url.Parse(rawURL)
}

func resolvePath(decoded, root string) (string, error) {
	rel := strings.TrimPrefix(decoded, "/")

	var candidate string
	if filepath.IsAbs(rel) {
		candidate = filepath.Clean(rel)
	} else {
		candidate = filepath.Join(root, rel)
	}

	prefix := root
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}

	if candidate != root && !strings.HasPrefix(candidate, prefix) {
		return "", httperrors.Forbidden()
	}

	return candidate, nil
}
