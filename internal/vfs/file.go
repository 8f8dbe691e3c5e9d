package vfs

import "io"

// File represents a file opened for reading, which will typically be the
// response body of a GET request.
type File interface {
	io.Reader
	io.Closer
}

// WriteFile represents a file opened for writing, which will typically
// receive the body of a PUT request.
type WriteFile interface {
	io.Writer
	io.Closer
}
