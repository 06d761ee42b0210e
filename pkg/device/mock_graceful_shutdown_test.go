package device

import (
	"testing"
	"time"

	"github.com/itohio/duraplot/pkg/config"
	"github.com/itohio/duraplot/pkg/sample"
	"github.com/stretchr/testify/assert"
)

// TestMock_GracefulShutdown tests that a blocked ReadFrame returns
// when Close() is called.
func TestMock_GracefulShutdown(t *testing.T) {
	cfg := &config.MockConfig{
		SampleRate: time.Hour,
		Amplitude:  400,
		Offset:     512,
	}

	mock := NewMock(cfg)

	done := make(chan error, 1)
	go func() {
		var f sample.Frame
		done <- mock.ReadFrame(&f)
	}()

	// Give the reader a moment to block on the ticker
	time.Sleep(20 * time.Millisecond)
	assert.NoError(t, mock.Close())

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrClosed)
	case <-time.After(2 * time.Second):
		t.Fatal("ReadFrame did not return after Close")
	}

	// Close is idempotent
	assert.NoError(t, mock.Close())
}
