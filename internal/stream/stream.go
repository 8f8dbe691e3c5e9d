package stream

import (
	"context"
	"errors"
	"io"
	"sync"

	"gitlab.com/remotefs/remotefs/metrics"
)

const bufferSize = 32 * 1024

const (
	// Upload labels transfers from a request body into a file
	Upload = "upload"
	// Download labels transfers from a file into a response
	Download = "download"
)

var errInvalidWrite = errors.New("invalid write result")

var bufferPool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, bufferSize)
		return &buf
	},
}

// Pipe copies src into dst until src is exhausted, then closes dst.
// dst is closed on every path. The returned error is the first failure seen:
// reading src, writing dst, ctx being done, or closing dst.
func Pipe(ctx context.Context, dst io.WriteCloser, src io.Reader) (err error) {
	defer func() {
		if closeErr := dst.Close(); closeErr != nil && err == nil {
			err = NewWriteError(closeErr)
		}

		if err != nil {
			metrics.StreamFailures.WithLabelValues(Upload).Inc()
		}
	}()

	_, err = copyBuffer(ctx, dst, src, Upload)

	return err
}

// Copy forwards src into dst and closes src once done
func Copy(ctx context.Context, dst io.Writer, src io.ReadCloser) (int64, error) {
	defer src.Close()

	written, err := copyBuffer(ctx, dst, src, Download)
	if err != nil {
		metrics.StreamFailures.WithLabelValues(Download).Inc()
	}

	return written, err
}

func copyBuffer(ctx context.Context, dst io.Writer, src io.Reader, direction string) (int64, error) {
	bufp := bufferPool.Get().(*[]byte)
	defer bufferPool.Put(bufp)

	buf := *bufp
	counter := metrics.StreamedBytes.WithLabelValues(direction)

	var written int64

	for {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		nr, readErr := src.Read(buf)
		if nr > 0 {
			nw, writeErr := dst.Write(buf[:nr])
			if nw < 0 || nr < nw {
				nw = 0
				if writeErr == nil {
					writeErr = errInvalidWrite
				}
			}

			written += int64(nw)
			counter.Add(float64(nw))

			if writeErr != nil {
				return written, NewWriteError(writeErr)
			}

			if nr != nw {
				return written, NewWriteError(io.ErrShortWrite)
			}
		}

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return written, nil
			}

			return written, NewReadError(readErr)
		}
	}
}
