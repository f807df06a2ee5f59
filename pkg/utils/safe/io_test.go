package safe_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/efa2d19/dailynator/pkg/utils/safe"
)

type errCloser struct {
	closed bool
}

func (c *errCloser) Close() error {
	c.closed = true
	return errors.New("close failed")
}

type errWriter struct{}

func (errWriter) Write(p []byte) (int, error) {
	return 0, errors.New("write failed")
}

func TestClose(t *testing.T) {
	t.Run("nil closer is a no-op", func(t *testing.T) {
		safe.Close(t.Context(), nil)
	})

	t.Run("close error does not propagate", func(t *testing.T) {
		closer := &errCloser{}
		safe.Close(t.Context(), closer)
		gt.Bool(t, closer.closed).True()
	})
}

func TestWrite(t *testing.T) {
	t.Run("nil writer is a no-op", func(t *testing.T) {
		safe.Write(t.Context(), nil, []byte("data"))
	})

	t.Run("writes data through", func(t *testing.T) {
		var buf bytes.Buffer
		safe.Write(t.Context(), &buf, []byte("OK"))
		gt.Value(t, buf.String()).Equal("OK")
	})

	t.Run("write error does not propagate", func(t *testing.T) {
		safe.Write(t.Context(), errWriter{}, []byte("data"))
	})
}
