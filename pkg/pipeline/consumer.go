package pipeline

import (
	"image"
	"image/color"
	"time"

	"github.com/itohio/duraplot/pkg/config"
	"github.com/itohio/duraplot/pkg/meter"
	"github.com/itohio/duraplot/pkg/oneshot"
	"github.com/itohio/duraplot/pkg/sample"
	"github.com/itohio/duraplot/pkg/view"
)

// Surface is a pixel-addressable drawing target.
type Surface interface {
	Bounds() image.Rectangle
	Clear(c color.Color)
	DrawLine(a, b image.Point, c color.Color)
	FillRect(r image.Rectangle, c color.Color)
	Present()
}

// EventSource yields pending user actions without blocking.
type EventSource interface {
	Poll() []view.Event
}

// Palette holds the fixed colors of the chart.
type Palette struct {
	Background color.Color
	Channels   []color.Color // One per lane
}

// Consumer draws samples on a Surface and applies user actions.
type Consumer struct {
	surface Surface
	events  EventSource
	palette Palette
	meter   *meter.Meter
	idle    time.Duration

	samples <-chan sample.Sample
	start   *oneshot.Signal
	stop    *oneshot.Signal
	abort   <-chan struct{}

	state *view.State
}

// NewConsumer creates a Consumer. m may be nil.
func NewConsumer(surface Surface, events EventSource, palette Palette, m *meter.Meter, samples <-chan sample.Sample, start, stop *oneshot.Signal) *Consumer {
	return &Consumer{
		surface: surface,
		events:  events,
		palette: palette,
		meter:   m,
		samples: samples,
		start:   start,
		stop:    stop,
		state:   view.New(),
	}
}

// SetIdleSleep sets how long the loop sleeps when an iteration did nothing.
func (c *Consumer) SetIdleSleep(d time.Duration) {
	c.idle = d
}

// setAbort makes Run return when abort is closed.
func (c *Consumer) setAbort(abort <-chan struct{}) {
	c.abort = abort
}

// State returns the view state. It must only be read after Run returned.
func (c *Consumer) State() *view.State {
	return c.state
}

// Run prepares the surface, fires start and runs the render loop until a
// Quit event, which fires stop.
func (c *Consumer) Run() {
	c.surface.Clear(c.palette.Background)
	c.surface.Present()
	if c.meter != nil {
		c.meter.Reset(c.state.Channel())
	}

	// The surface is ready, let acquisition begin.
	c.start.Fire()

	for {
		select {
		case <-c.abort:
			return
		default:
		}

		busy := c.receive()

		for _, ev := range c.events.Poll() {
			busy = true
			if ev == view.Quit {
				c.stop.Fire()
				return
			}
			c.apply(ev)
		}

		if !busy && c.idle > 0 {
			time.Sleep(c.idle)
		}
	}
}

// receive handles the samples that are available right now.
// It reports whether there were any.
func (c *Consumer) receive() bool {
	if c.state.Detached() {
		drained := false
		for {
			select {
			case _, ok := <-c.samples:
				if !ok {
					c.samples = nil
					return drained
				}
				drained = true
			default:
				return drained
			}
		}
	}

	select {
	case s, ok := <-c.samples:
		if !ok {
			// Producer is gone; a nil channel is never ready.
			c.samples = nil
			return false
		}
		c.draw(s)
		return true
	default:
		return false
	}
}

func (c *Consumer) draw(s sample.Sample) {
	seg, ok := c.state.Plot(s)
	if !ok {
		return
	}

	c.surface.DrawLine(seg.From, seg.To, c.color(seg.Channel))
	c.surface.Present()

	if c.meter != nil {
		c.meter.Add(s, time.Now())
	}
}

func (c *Consumer) apply(ev view.Event) {
	switch ev {
	case view.Pause:
		c.state.Pause()
		if c.meter != nil {
			c.meter.SetDetached(true)
		}
	case view.Resume:
		c.state.Resume()
		if c.meter != nil {
			c.meter.SetDetached(false)
		}
	case view.NextChannel:
		c.state.NextChannel()
		if c.meter != nil {
			c.meter.Reset(c.state.Channel())
		}
		// Refresh the lane labels
		c.surface.Present()
	case view.Clear:
		band := c.state.Clear(c.surface.Bounds().Dx())
		c.surface.FillRect(band, c.palette.Background)
		c.surface.Present()
		if c.meter != nil {
			c.meter.Reset(c.state.Channel())
		}
	}
}

func (c *Consumer) color(ch int) color.Color {
	if len(c.palette.Channels) == 0 {
		return config.Default().ChannelColor(ch)
	}
	return c.palette.Channels[ch%len(c.palette.Channels)]
}
