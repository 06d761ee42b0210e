// Package view holds the interactive state of the strip chart.
//
// State is owned by the render goroutine and is not safe for concurrent use.
package view

import (
	"image"

	"github.com/itohio/duraplot/pkg/plot"
	"github.com/itohio/duraplot/pkg/sample"
)

// Event is a user action delivered to the render loop.
type Event int

const (
	Quit Event = iota + 1
	Pause
	Resume
	NextChannel
	Clear
)

func (e Event) String() string {
	switch e {
	case Quit:
		return "quit"
	case Pause:
		return "pause"
	case Resume:
		return "resume"
	case NextChannel:
		return "next-channel"
	case Clear:
		return "clear"
	default:
		return "unknown"
	}
}

// Segment is a line from the previous point of the trace to the new one.
type Segment struct {
	From    image.Point
	To      image.Point
	Channel int
}

// State tracks the active channel and the continuity of its trace.
// Only the active channel has a live trace; switching away discards it.
type State struct {
	channel  int
	detached bool
	seq      int
	last     image.Point
}

// New returns the initial state: channel 0, attached, empty trace.
func New() *State {
	return &State{}
}

// Channel returns the active channel index.
func (s *State) Channel() int { return s.channel }

// Detached reports whether incoming samples are being discarded.
func (s *State) Detached() bool { return s.detached }

// Seq returns the position of the next sample in the active trace.
func (s *State) Seq() int { return s.seq }

// Last returns the end point of the active trace.
func (s *State) Last() image.Point { return s.last }

// Plot advances the trace by one sample and returns the segment to draw.
// While detached the sample is discarded and ok is false.
func (s *State) Plot(v sample.Sample) (seg Segment, ok bool) {
	if s.detached {
		return Segment{}, false
	}

	to := image.Pt(plot.TimeToX(s.seq), plot.LevelToY(v, s.channel))
	seg = Segment{From: s.last, To: to, Channel: s.channel}

	s.seq++
	s.last = to
	return seg, true
}

// Pause detaches the view from the incoming samples.
func (s *State) Pause() { s.detached = true }

// Resume reattaches the view. The trace continues from where it was.
func (s *State) Resume() { s.detached = false }

// NextChannel switches to the next lane and starts a fresh trace there.
func (s *State) NextChannel() {
	s.channel = plot.NextChannel(s.channel)
	s.reset()
}

// Clear restarts the trace of the active channel and returns the band
// that has to be repainted for a window of the given width.
func (s *State) Clear(width int) image.Rectangle {
	s.reset()
	return plot.Band(s.channel, width)
}

func (s *State) reset() {
	s.seq = 0
	s.last = image.Point{}
}
