package device

import (
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/itohio/duraplot/pkg/sample"
)

// Stats holds acquisition counters.
type Stats struct {
	Frames     uint64 // Frames decoded and handed to the consumer
	ReadErrors uint64 // Failed reads that were retried
}

// Producer reads frames from a Port and forwards decoded samples.
//
// It waits for start before opening the port, and stops when stop is closed.
// It owns the port and the samples channel: both are closed when Run returns.
type Producer struct {
	open       Opener
	samples    chan<- sample.Sample
	start      <-chan struct{}
	stop       <-chan struct{}
	retryDelay time.Duration

	frames     atomic.Uint64
	readErrors atomic.Uint64
}

// NewProducer creates a Producer.
func NewProducer(open Opener, samples chan<- sample.Sample, start, stop <-chan struct{}) *Producer {
	return &Producer{
		open:    open,
		samples: samples,
		start:   start,
		stop:    stop,
	}
}

// SetRetryDelay sets a pause after each failed read. Zero retries immediately.
func (p *Producer) SetRetryDelay(d time.Duration) {
	p.retryDelay = d
}

// Run blocks until start, then reads frames until stop.
// The only error it returns is a failure to open the port.
func (p *Producer) Run() error {
	defer close(p.samples)

	select {
	case <-p.start:
	case <-p.stop:
		return nil
	}

	port, err := p.open()
	if err != nil {
		return fmt.Errorf("failed to open transport: %w", err)
	}
	defer func() {
		if err := port.Close(); err != nil {
			log.Printf("Error closing transport: %v", err)
		}
	}()

	var frame sample.Frame
	for {
		select {
		case <-p.stop:
			return nil
		default:
		}

		if err := port.ReadFrame(&frame); err != nil {
			// Noisy link: drop the frame and try again.
			p.readErrors.Add(1)
			if p.retryDelay > 0 {
				select {
				case <-time.After(p.retryDelay):
				case <-p.stop:
					return nil
				}
			}
			continue
		}

		select {
		case p.samples <- sample.Decode(frame):
			p.frames.Add(1)
		case <-p.stop:
			return nil
		}
	}
}

// Stats returns a snapshot of the acquisition counters.
func (p *Producer) Stats() Stats {
	return Stats{
		Frames:     p.frames.Load(),
		ReadErrors: p.readErrors.Load(),
	}
}
