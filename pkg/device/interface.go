package device

import (
	"errors"

	"github.com/itohio/duraplot/pkg/sample"
)

var (
	// ErrTimeout is returned when no byte arrived within the read timeout.
	ErrTimeout = errors.New("read timeout")
	// ErrPartialFrame is returned when a frame started but was not completed in time.
	// The bytes already read are discarded.
	ErrPartialFrame = errors.New("partial frame")
	// ErrClosed is returned when reading from a closed port.
	ErrClosed = errors.New("port closed")
)

// Port is an open transport that yields fixed-size frames.
// Errors from ReadFrame are retryable.
type Port interface {
	ReadFrame(f *sample.Frame) error
	Close() error
}

// Opener opens a Port. It is called once by the Producer after the start signal.
type Opener func() (Port, error)

// Ensure Serial implements Port.
var _ Port = (*Serial)(nil)

// Ensure Mock implements Port.
var _ Port = (*Mock)(nil)
