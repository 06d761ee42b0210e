package pipeline

import (
	"testing"
	"time"

	"github.com/itohio/duraplot/pkg/device"
	"github.com/itohio/duraplot/pkg/oneshot"
	"github.com/itohio/duraplot/pkg/sample"
	"github.com/itohio/duraplot/pkg/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPipeline_GracefulShutdown tests that Quit stops the producer and both
// goroutines are joined.
func TestPipeline_GracefulShutdown(t *testing.T) {
	cfg := testConfig()
	port := newChanPort()
	h := startHarness(t, cfg, portOpener(port))

	port.send(1, 2, 3)
	h.waitLines(t, 3)

	quitAt := time.Now()
	require.NoError(t, h.quit(t))

	assert.Less(t, time.Since(quitAt), time.Second)
	assert.True(t, port.closed.Load(), "port should be closed")

	select {
	case <-h.p.Stopped():
	default:
		t.Fatal("stop was not signalled")
	}
}

// TestPipeline_GracefulShutdown_FloodedProducer tests that a producer blocked
// on a full data channel does not keep Run from returning.
func TestPipeline_GracefulShutdown_FloodedProducer(t *testing.T) {
	cfg := testConfig()
	cfg.Pipeline.DataBuffer = 1
	h := startHarness(t, cfg, portOpener(floodPort{}))

	h.waitLines(t, 10)
	// Detach so the consumer is only draining when Quit arrives
	h.events.Push(view.Pause)

	require.NoError(t, h.quit(t))
}

// TestPipeline_GracefulShutdown_QuitFiresStopOnce tests that repeated quit
// events produce a single stop.
func TestPipeline_GracefulShutdown_QuitFiresStopOnce(t *testing.T) {
	cfg := testConfig()
	surface := newRecordingSurface(cfg.Display.Width, cfg.Display.Height)
	events := &queueEvents{}
	samples := make(chan sample.Sample)
	start := oneshot.New()
	stop := oneshot.New()

	c := NewConsumer(surface, events, PaletteFromConfig(cfg), nil, samples, start, stop)
	c.SetIdleSleep(tick)

	events.Push(view.Quit)
	events.Push(view.Quit)

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.Run()
	}()

	select {
	case <-done:
	case <-time.After(waitFor):
		t.Fatal("consumer did not stop")
	}

	assert.True(t, start.Fired())
	assert.True(t, stop.Fired())
	assert.False(t, stop.Fire(), "stop was already fired exactly once")
}

// TestPipeline_GracefulShutdown_ProducerGoneFirst tests that the consumer keeps
// running and shuts down normally when the samples channel was closed.
func TestPipeline_GracefulShutdown_ProducerGoneFirst(t *testing.T) {
	cfg := testConfig()
	surface := newRecordingSurface(cfg.Display.Width, cfg.Display.Height)
	events := &queueEvents{}
	samples := make(chan sample.Sample, 1)
	samples <- 512
	close(samples)

	c := NewConsumer(surface, events, PaletteFromConfig(cfg), nil, samples, oneshot.New(), oneshot.New())
	c.SetIdleSleep(tick)

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.Run()
	}()

	require.Eventually(t, func() bool { return len(surface.Lines()) == 1 }, waitFor, tick)
	time.Sleep(10 * time.Millisecond)
	events.Push(view.Quit)

	select {
	case <-done:
	case <-time.After(waitFor):
		t.Fatal("consumer did not stop")
	}
	assert.Equal(t, 1, c.State().Seq())
}

var _ device.Port = floodPort{}
