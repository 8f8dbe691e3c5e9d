package handlers

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"

	"gitlab.com/remotefs/remotefs/internal/dispatch"
	"gitlab.com/remotefs/remotefs/internal/httperrors"
	"gitlab.com/remotefs/remotefs/internal/mimetype"
	"gitlab.com/remotefs/remotefs/internal/resolver"
	"gitlab.com/remotefs/remotefs/internal/response"
	"gitlab.com/remotefs/remotefs/internal/stream"
	"gitlab.com/remotefs/remotefs/internal/vfs"
)

const notFoundBody = "File not found"

// Option configures Handlers
type Option func(*Handlers)

// WithContentType replaces the function used to infer the content type of
// served files
func WithContentType(lookup func(path string) string) Option {
	return func(h *Handlers) {
		h.contentType = lookup
	}
}

// Handlers map HTTP methods onto filesystem operations below a single root
type Handlers struct {
	fs          vfs.FS
	resolver    *resolver.Resolver
	contentType func(path string) string
}

// New returns Handlers serving fs. Every request path goes through res
// before fs is touched.
func New(fs vfs.FS, res *resolver.Resolver, opts ...Option) *Handlers {
	h := &Handlers{
		fs:          fs,
		resolver:    res,
		contentType: mimetype.Lookup,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Table returns the method table served by the daemon
func (h *Handlers) Table() dispatch.Table {
	return dispatch.Table{
		http.MethodGet:    h.Read,
		http.MethodPut:    h.Write,
		http.MethodDelete: h.Delete,
	}
}

// Read serves a file's content or a directory's entry names
func (h *Handlers) Read(r *http.Request) (*response.Response, error) {
	path, err := h.resolver.ResolveURL(r.URL)
	if err != nil {
		return nil, err
	}

	ctx := r.Context()

	fi, err := h.fs.Stat(ctx, path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, httperrors.New(http.StatusNotFound, notFoundBody)
	} else if err != nil {
		return nil, err
	}

	if fi.IsDir() {
		names, err := h.fs.ReadDir(ctx, path)
		if err != nil {
			return nil, err
		}

		return response.Listing(names), nil
	}

	file, err := h.fs.Open(ctx, path)
	if err != nil {
		return nil, err
	}

	return response.File(file, h.contentType(path)), nil
}

// Write creates or truncates the target file and fills it with the request body
func (h *Handlers) Write(r *http.Request) (*response.Response, error) {
	path, err := h.resolver.ResolveURL(r.URL)
	if err != nil {
		return nil, err
	}

	file, err := h.fs.Create(r.Context(), path)
	if err != nil {
		return nil, err
	}

	if err := stream.Pipe(r.Context(), file, r.Body); err != nil {
		return nil, err
	}

	return response.NoContent(), nil
}

// Delete removes a file or an empty directory. Deleting a missing path succeeds.
func (h *Handlers) Delete(r *http.Request) (*response.Response, error) {
	path, err := h.resolver.ResolveURL(r.URL)
	if err != nil {
		return nil, err
	}

	ctx := r.Context()

	fi, err := h.fs.Stat(ctx, path)
	if errors.Is(err, fs.ErrNotExist) {
		return response.NoContent(), nil
	} else if err != nil {
		return nil, err
	}

	if fi.IsDir() {
		err = h.fs.RemoveDir(ctx, path)
	} else {
		err = h.fs.Remove(ctx, path)
	}

	if err != nil {
		return nil, err
	}

	return response.NoContent(), nil
}

// NotAllowed rejects every method without a handler
func (h *Handlers) NotAllowed(r *http.Request) (*response.Response, error) {
	return nil, httperrors.New(http.StatusMethodNotAllowed, fmt.Sprintf("method %s not allowed", r.Method))
}
