// Package pipeline wires the acquisition producer to the render consumer.
//
// Startup: the consumer prepares its surface, then fires start; the producer
// opens the transport only after that. Shutdown: a Quit event makes the
// consumer fire stop; the producer observes it within one read and returns.
// Run joins both goroutines.
package pipeline

import (
	"image/color"
	"log"
	"sync"

	"github.com/itohio/duraplot/pkg/config"
	"github.com/itohio/duraplot/pkg/device"
	"github.com/itohio/duraplot/pkg/meter"
	"github.com/itohio/duraplot/pkg/oneshot"
	"github.com/itohio/duraplot/pkg/sample"
)

// Pipeline runs one producer and one consumer.
type Pipeline struct {
	producer *device.Producer
	consumer *Consumer

	start *oneshot.Signal
	stop  *oneshot.Signal
	abort *oneshot.Signal // Producer failed, consumer must not wait for Quit
}

// New creates a Pipeline reading from open and drawing on surface.
// m may be nil.
func New(cfg *config.Config, open device.Opener, surface Surface, events EventSource, m *meter.Meter) *Pipeline {
	samples := make(chan sample.Sample, cfg.Pipeline.DataBuffer)
	start := oneshot.New()
	stop := oneshot.New()
	abort := oneshot.New()

	producer := device.NewProducer(open, samples, start.Done(), stop.Done())
	producer.SetRetryDelay(cfg.Serial.RetryDelay)

	consumer := NewConsumer(surface, events, PaletteFromConfig(cfg), m, samples, start, stop)
	consumer.SetIdleSleep(cfg.Display.IdleSleep)
	consumer.setAbort(abort.Done())

	return &Pipeline{
		producer: producer,
		consumer: consumer,
		start:    start,
		stop:     stop,
		abort:    abort,
	}
}

// PaletteFromConfig builds the chart colors from cfg.
// A config without lane colors gets the default ones.
func PaletteFromConfig(cfg *config.Config) Palette {
	channels := cfg.Display.Channels
	if len(channels) == 0 {
		channels = config.Default().Display.Channels
	}

	p := Palette{
		Background: cfg.Display.Background.RGBA(),
		Channels:   make([]color.Color, 0, len(channels)),
	}
	for _, c := range channels {
		p.Channels = append(p.Channels, c.RGBA())
	}
	return p
}

// Run starts the producer and the consumer and waits for both to finish.
// It returns the producer's error if the transport could not be opened.
func (p *Pipeline) Run() error {
	var (
		wg          sync.WaitGroup
		producerErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		if err := p.producer.Run(); err != nil {
			producerErr = err
			p.abort.Fire()
		}
	}()
	go func() {
		defer wg.Done()
		p.consumer.Run()
	}()
	wg.Wait()

	stats := p.producer.Stats()
	log.Printf("Acquisition stopped: %d frames, %d read errors", stats.Frames, stats.ReadErrors)

	return producerErr
}

// Stats returns the producer counters.
func (p *Pipeline) Stats() device.Stats {
	return p.producer.Stats()
}

// Started returns a channel closed once the consumer let acquisition begin.
func (p *Pipeline) Started() <-chan struct{} {
	return p.start.Done()
}

// Stopped returns a channel closed once shutdown was requested.
func (p *Pipeline) Stopped() <-chan struct{} {
	return p.stop.Done()
}
