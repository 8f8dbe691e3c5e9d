package response

import (
	"io"
	"net/http"
)

// DefaultContentType is sent for every body that does not name its own type
const DefaultContentType = "text/plain"

// Response describes what a method handler wants written back to the client.
// At most one of Stream, Data and Names is set. It is rendered once and then
// discarded.
type Response struct {
	// Stream is forwarded to the client and closed afterwards
	Stream io.ReadCloser
	Data   []byte
	// Names is rendered one entry per line
	Names []string

	// Status defaults to 200 OK
	Status      int
	ContentType string
}

// NoContent is the response to a successful write or delete
func NoContent() *Response {
	return &Response{Status: http.StatusNoContent}
}

// Text is a plain text body with the given status
func Text(status int, body string) *Response {
	return &Response{Status: status, Data: []byte(body)}
}

// Listing is a directory listing
func Listing(names []string) *Response {
	return &Response{Names: names}
}

// File streams an opened file with the given content type
func File(stream io.ReadCloser, contentType string) *Response {
	return &Response{Stream: stream, ContentType: contentType}
}

// StatusCode returns the status to write, applying the default
func (r *Response) StatusCode() int {
	if r.Status == 0 {
		return http.StatusOK
	}

	return r.Status
}

// Type returns the Content-Type to write, applying the default
func (r *Response) Type() string {
	if r.ContentType == "" {
		return DefaultContentType
	}

	return r.ContentType
}
