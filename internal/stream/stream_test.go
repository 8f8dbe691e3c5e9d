package stream

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"gitlab.com/remotefs/remotefs/metrics"
)

var (
	errSource = errors.New("connection reset")
	errDest   = errors.New("no space left on device")
	errClose  = errors.New("close failed")
)

type destination struct {
	bytes.Buffer
	writeErr error
	closeErr error
	closed   int
}

func (d *destination) Write(p []byte) (int, error) {
	if d.writeErr != nil {
		return 0, d.writeErr
	}

	return d.Buffer.Write(p)
}

func (d *destination) Close() error {
	d.closed++
	return d.closeErr
}

type source struct {
	io.Reader
	closed int
}

func (s *source) Close() error {
	s.closed++
	return nil
}

func TestPipe(t *testing.T) {
	content := strings.Repeat("remotefs", bufferSize/4)

	dst := &destination{}
	before := testutil.ToFloat64(metrics.StreamedBytes.WithLabelValues(Upload))

	err := Pipe(context.Background(), dst, strings.NewReader(content))
	require.NoError(t, err)
	require.Equal(t, content, dst.String())
	require.Equal(t, 1, dst.closed)

	after := testutil.ToFloat64(metrics.StreamedBytes.WithLabelValues(Upload))
	require.Equal(t, float64(len(content)), after-before)
}

func TestPipeEmptySource(t *testing.T) {
	dst := &destination{}

	require.NoError(t, Pipe(context.Background(), dst, strings.NewReader("")))
	require.Empty(t, dst.String())
	require.Equal(t, 1, dst.closed)
}

func TestPipeFailures(t *testing.T) {
	canceled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := map[string]struct {
		ctx         context.Context
		src         io.Reader
		dst         *destination
		expectedErr error
		errType     error
	}{
		"source error": {
			ctx:         context.Background(),
			src:         iotest.ErrReader(errSource),
			dst:         &destination{},
			expectedErr: errSource,
			errType:     &ReadError{},
		},
		"source error after some data": {
			ctx:         context.Background(),
			src:         io.MultiReader(strings.NewReader("partial"), iotest.ErrReader(errSource)),
			dst:         &destination{},
			expectedErr: errSource,
			errType:     &ReadError{},
		},
		"destination error": {
			ctx:         context.Background(),
			src:         strings.NewReader("hello"),
			dst:         &destination{writeErr: errDest},
			expectedErr: errDest,
			errType:     &WriteError{},
		},
		"close error": {
			ctx:         context.Background(),
			src:         strings.NewReader("hello"),
			dst:         &destination{closeErr: errClose},
			expectedErr: errClose,
			errType:     &WriteError{},
		},
		"write error wins over close error": {
			ctx:         context.Background(),
			src:         strings.NewReader("hello"),
			dst:         &destination{writeErr: errDest, closeErr: errClose},
			expectedErr: errDest,
			errType:     &WriteError{},
		},
		"canceled context": {
			ctx:         canceled,
			src:         strings.NewReader("hello"),
			dst:         &destination{},
			expectedErr: context.Canceled,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			before := testutil.ToFloat64(metrics.StreamFailures.WithLabelValues(Upload))

			err := Pipe(test.ctx, test.dst, test.src)
			require.ErrorIs(t, err, test.expectedErr)
			if test.errType != nil {
				require.ErrorIs(t, err, test.errType)
			}

			require.Equal(t, 1, test.dst.closed, "destination must be closed exactly once")

			after := testutil.ToFloat64(metrics.StreamFailures.WithLabelValues(Upload))
			require.Equal(t, float64(1), after-before)
		})
	}
}

func TestCopy(t *testing.T) {
	src := &source{Reader: strings.NewReader("hello")}
	dst := &bytes.Buffer{}

	n, err := Copy(context.Background(), dst, src)
	require.NoError(t, err)
	require.Equal(t, int64(5), n)
	require.Equal(t, "hello", dst.String())
	require.Equal(t, 1, src.closed)
}

func TestCopyClosesSourceOnError(t *testing.T) {
	src := &source{Reader: iotest.ErrReader(errSource)}

	_, err := Copy(context.Background(), &bytes.Buffer{}, src)
	require.ErrorIs(t, err, errSource)
	require.ErrorIs(t, err, &ReadError{})
	require.Equal(t, 1, src.closed)
}

func TestErrorMessages(t *testing.T) {
	require.Equal(t, "failed to read stream content: connection reset", NewReadError(errSource).Error())
	require.Equal(t, "failed to write stream content", NewWriteError(nil).Error())
	require.NotErrorIs(t, NewReadError(errSource), &WriteError{})
}
