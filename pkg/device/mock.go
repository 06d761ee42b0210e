package device

import (
	"math"
	"sync"
	"time"

	"github.com/itohio/duraplot/pkg/config"
	"github.com/itohio/duraplot/pkg/sample"
)

// Mock simulates the ADC board for testing and development.
type Mock struct {
	cfg config.MockConfig // Copied at creation

	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once

	// Simulation state, only touched by the reading goroutine
	n int
}

// NewMock creates a mocked device that starts producing frames immediately.
// cfg is copied; nil means defaults.
func NewMock(cfg *config.MockConfig) *Mock {
	mc := config.Default().Mock
	if cfg != nil {
		mc = *cfg
	}
	if mc.SampleRate <= 0 {
		mc.SampleRate = config.Default().Mock.SampleRate
	}

	return &Mock{
		cfg:    mc,
		ticker: time.NewTicker(mc.SampleRate),
		done:   make(chan struct{}),
	}
}

// MockOpener returns an Opener that creates a Mock from a snapshot of cfg
// taken now.
func MockOpener(cfg *config.MockConfig) Opener {
	var mc *config.MockConfig
	if cfg != nil {
		snapshot := *cfg
		mc = &snapshot
	}
	return func() (Port, error) {
		return NewMock(mc), nil
	}
}

// ReadFrame waits for the next sample period and returns a synthesized frame.
func (m *Mock) ReadFrame(f *sample.Frame) error {
	select {
	case <-m.done:
		return ErrClosed
	case <-m.ticker.C:
	}

	m.n++
	if m.cfg.DropEvery > 0 && m.n%m.cfg.DropEvery == 0 {
		return ErrTimeout
	}

	*f = sample.Encode(m.level(m.n))
	return nil
}

// Close stops the mocked device.
func (m *Mock) Close() error {
	m.once.Do(func() {
		m.ticker.Stop()
		close(m.done)
	})
	return nil
}

// level computes the n-th simulated ADC reading.
func (m *Mock) level(n int) sample.Sample {
	t := float64(n) * m.cfg.SampleRate.Seconds()

	v := m.cfg.Offset + m.cfg.Amplitude*math.Sin(2*math.Pi*m.cfg.Frequency*t)

	// Deterministic noise
	noise := (math.Sin(float64(n)*1.7) + math.Cos(float64(n)*2.3)) * m.cfg.NoiseLevel * 0.5
	v += noise

	// 10-bit ADC
	if v < 0 {
		v = 0
	} else if v > sample.MaxLevel {
		v = sample.MaxLevel
	}

	return sample.Sample(v)
}
