package stream

import "fmt"

const (
	readMessage  = "failed to read stream content"
	writeMessage = "failed to write stream content"
)

// ReadError reports a failure on the source side of a transfer
type ReadError struct {
	wrapped error
}

func NewReadError(wrapped error) *ReadError {
	return &ReadError{
		wrapped: wrapped,
	}
}

func (r *ReadError) Error() string {
	if r.wrapped == nil {
		return readMessage
	}

	return fmt.Sprintf("%s: %s", readMessage, r.wrapped.Error())
}

func (r *ReadError) Unwrap() error {
	return r.wrapped
}

func (r *ReadError) Is(target error) bool {
	// nolint: errorlint // implementing type equality for errors.Is
	_, ok := target.(*ReadError)
	return ok
}

// WriteError reports a failure on the destination side of a transfer,
// including the final close.
type WriteError struct {
	wrapped error
}

func NewWriteError(wrapped error) *WriteError {
	return &WriteError{
		wrapped: wrapped,
	}
}

func (w *WriteError) Error() string {
	if w.wrapped == nil {
		return writeMessage
	}

	return fmt.Sprintf("%s: %s", writeMessage, w.wrapped.Error())
}

func (w *WriteError) Unwrap() error {
	return w.wrapped
}

func (w *WriteError) Is(target error) bool {
	// nolint: errorlint // implementing type equality for errors.Is
	_, ok := target.(*WriteError)
	return ok
}
