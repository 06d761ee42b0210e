package meter

import (
	"sync"
	"time"

	"github.com/itohio/duraplot/pkg/sample"
)

// DefaultWindow is the time span used for the sample rate.
const DefaultWindow = time.Second

// Reading summarizes the active trace.
type Reading struct {
	Channel  int
	Count    int           // Samples drawn since the trace started
	Last     sample.Sample // Most recent level
	Min      sample.Sample
	Max      sample.Sample
	Rate     float64 // Samples per second over the window
	Detached bool    // Drawing is paused
}

// Meter keeps statistics of the trace that is currently being drawn.
// It is written by the render loop and read by the widget.
type Meter struct {
	mu      sync.RWMutex
	window  time.Duration
	times   []time.Time // FIFO of sample arrival times within the window
	reading Reading
}

// New creates a Meter that measures the rate over window.
func New(window time.Duration) *Meter {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Meter{
		window: window,
		times:  make([]time.Time, 0, 512),
	}
}

// Add records a drawn sample.
func (m *Meter) Add(s sample.Sample, t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r := &m.reading
	if r.Count == 0 {
		r.Min, r.Max = s, s
	} else {
		r.Min = min(r.Min, s)
		r.Max = max(r.Max, s)
	}
	r.Last = s
	r.Count++

	m.times = append(m.times, t)

	// Remove arrivals outside the window (based on timestamp, not count)
	cutoff := t.Add(-m.window)
	cutoffIndex := 0
	for cutoffIndex < len(m.times) && !m.times[cutoffIndex].After(cutoff) {
		cutoffIndex++
	}
	if cutoffIndex > 0 {
		m.times = append(m.times[:0], m.times[cutoffIndex:]...)
	}

	r.Rate = m.rate()
}

// rate returns samples per second. Caller must hold the lock.
func (m *Meter) rate() float64 {
	if len(m.times) < 2 {
		return 0
	}
	span := m.times[len(m.times)-1].Sub(m.times[0]).Seconds()
	if span <= 0 {
		return 0
	}
	return float64(len(m.times)-1) / span
}

// Reset starts statistics for a fresh trace on channel.
func (m *Meter) Reset(channel int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.reading = Reading{Channel: channel, Detached: m.reading.Detached}
	m.times = m.times[:0]
}

// SetDetached records whether drawing is paused.
func (m *Meter) SetDetached(detached bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reading.Detached = detached
	if detached {
		// The rate restarts after resume.
		m.reading.Rate = 0
		m.times = m.times[:0]
	}
}

// Reading returns a snapshot of the current statistics.
func (m *Meter) Reading() Reading {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.reading
}
