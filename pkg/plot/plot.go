// Package plot maps samples to pixel positions in the stacked strip chart.
//
// The window is split into Channels horizontal bands of BandHeight pixels,
// channel 0 at the top. Within a band higher levels are drawn higher on screen.
package plot

import (
	"image"

	"github.com/itohio/duraplot/pkg/sample"
)

const (
	// Channels is the number of lanes stacked in the window.
	Channels = 4
	// BandHeight is the height of one lane in pixels.
	BandHeight = 200
	// BandOffset keeps the zero level off the bottom edge of a band.
	BandOffset = 25
	// Scale divides a 10-bit level into roughly 150 px of swing.
	Scale = 1024 / 150
	// StepX is the horizontal advance per sample in pixels.
	StepX = 2
)

// LevelToY returns the vertical pixel of level s in channel ch.
// Levels outside the 10-bit range are not clamped.
func LevelToY(s sample.Sample, ch int) int {
	return -(int(s)/Scale + BandOffset) + (ch+1)*BandHeight
}

// TimeToX returns the horizontal pixel of the n-th sample of a trace.
func TimeToX(n int) int {
	return n * StepX
}

// Band returns the rectangle covered by channel ch for a window of the given width.
func Band(ch, width int) image.Rectangle {
	return image.Rect(0, ch*BandHeight, width, (ch+1)*BandHeight)
}

// NextChannel returns the channel after ch, wrapping around.
func NextChannel(ch int) int {
	return (ch + 1) % Channels
}
