package httperrors

import (
	"errors"
	"fmt"
	"net/http"
)

const forbiddenBody = "Forbidden"

// Error is a failure that carries the exact response to emit. Handlers
// return it for outcomes the client must see verbatim; anything else is
// reported as an internal server error.
type Error struct {
	Status int
	Body   string
}

// New returns an Error with the given status and body
func New(status int, body string) *Error {
	return &Error{Status: status, Body: body}
}

// Forbidden is returned when a request resolves outside of the served root
func Forbidden() *Error {
	return New(http.StatusForbidden, forbiddenBody)
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d %s", e.Status, e.Body)
}

// As reports whether err carries an explicit status
func As(err error) (*Error, bool) {
	var herr *Error
	if errors.As(err, &herr) {
		return herr, true
	}

	return nil, false
}

func serve(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	fmt.Fprintln(w, body)
}

// Serve414 returns a 414 error response to the http.ResponseWriter
func Serve414(w http.ResponseWriter) {
	serve(w, http.StatusRequestURITooLong, "Request URI Too Long")
}

// Serve429 returns a 429 error response to the http.ResponseWriter
func Serve429(w http.ResponseWriter) {
	serve(w, http.StatusTooManyRequests, "Too Many Requests")
}
