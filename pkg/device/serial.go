package device

import (
	"fmt"
	"io"
	"time"

	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"

	"github.com/itohio/duraplot/pkg/config"
	"github.com/itohio/duraplot/pkg/sample"
)

const (
	// DefaultBaudRate is the rate the Arduino sketch writes frames at.
	DefaultBaudRate = 9600
	// DefaultReadTimeout bounds a single read call.
	DefaultReadTimeout = 100 * time.Millisecond
)

// PortInfo describes a serial port found on the host.
type PortInfo struct {
	Name        string
	Description string
}

// Serial is a serial port opened with 8N1 framing and no flow control.
type Serial struct {
	name string
	conn serial.Port
}

// OpenSerial opens the serial port described by cfg.
func OpenSerial(cfg config.SerialConfig) (*Serial, error) {
	baudRate := cfg.BaudRate
	if baudRate == 0 {
		baudRate = DefaultBaudRate
	}
	timeout := cfg.ReadTimeout
	if timeout <= 0 {
		timeout = DefaultReadTimeout
	}

	mode := &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	conn, err := serial.Open(cfg.Port, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", cfg.Port, err)
	}

	if err := conn.SetReadTimeout(timeout); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to set read timeout on %s: %w", cfg.Port, err)
	}

	return &Serial{
		name: cfg.Port,
		conn: conn,
	}, nil
}

// SerialOpener returns an Opener for the serial port described by cfg.
func SerialOpener(cfg config.SerialConfig) Opener {
	return func() (Port, error) {
		return OpenSerial(cfg)
	}
}

// Name returns the device path of the port.
func (s *Serial) Name() string {
	return s.name
}

// ReadFrame reads exactly one frame.
func (s *Serial) ReadFrame(f *sample.Frame) error {
	return readFrame(s.conn, f)
}

// Close closes the serial port.
func (s *Serial) Close() error {
	if err := s.conn.Close(); err != nil {
		return fmt.Errorf("failed to close serial port %s: %w", s.name, err)
	}
	return nil
}

// readFrame fills f from r. A read that returns no data means the port's
// read timeout expired.
func readFrame(r io.Reader, f *sample.Frame) error {
	n := 0
	for n < sample.FrameSize {
		m, err := r.Read(f[n:])
		n += m
		if n == sample.FrameSize {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read frame: %w", err)
		}
		if m == 0 {
			if n == 0 {
				return ErrTimeout
			}
			return ErrPartialFrame
		}
	}
	return nil
}

// Ports returns a list of available serial ports.
func Ports() ([]PortInfo, error) {
	details, err := enumerator.GetDetailedPortsList()
	if err == nil {
		result := make([]PortInfo, 0, len(details))
		for _, d := range details {
			desc := d.Name
			if d.IsUSB {
				desc = fmt.Sprintf("%s %s:%s", d.Product, d.VID, d.PID)
			}
			result = append(result, PortInfo{
				Name:        d.Name,
				Description: desc,
			})
		}
		return result, nil
	}

	// The enumerator is not available everywhere, fall back to plain names.
	names, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to list serial ports: %w", err)
	}

	result := make([]PortInfo, 0, len(names))
	for _, name := range names {
		result = append(result, PortInfo{
			Name:        name,
			Description: name,
		})
	}
	return result, nil
}
