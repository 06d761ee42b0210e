package scope

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"

	"github.com/itohio/duraplot/pkg/meter"
	"github.com/itohio/duraplot/pkg/plot"
)

var (
	separatorColor = color.RGBA{R: 40, G: 40, B: 40, A: 255}
	statusColor    = color.RGBA{R: 150, G: 150, B: 150, A: 255}
)

// scopeRenderer renders the scope widget.
type scopeRenderer struct {
	scope *ScopeWidget

	// Trace pixels
	image *canvas.Raster

	// Lines between lanes
	separators []*canvas.Line

	// Lane names, highlighted for the active lane
	labels []*canvas.Text

	// Active trace statistics
	status *canvas.Text

	// Objects list for Fyne
	objects []fyne.CanvasObject
}

// MinSize returns the minimum size of the widget.
func (r *scopeRenderer) MinSize() fyne.Size {
	return fyne.NewSize(float32(r.scope.cfg.Display.Width)/2, float32(r.scope.cfg.Display.Height)/2)
}

// Layout arranges the widget components.
func (r *scopeRenderer) Layout(size fyne.Size) {
	r.image.Resize(size)
	r.image.Move(fyne.NewPos(0, 0))

	// The raster is stretched to the widget, so lane edges scale with it.
	bounds := r.scope.raster.Bounds()
	scaleY := size.Height / float32(bounds.Dy())

	for i, line := range r.separators {
		y := float32((i+1)*plot.BandHeight) * scaleY
		line.Position1 = fyne.NewPos(0, y)
		line.Position2 = fyne.NewPos(size.Width, y)
	}

	for i, label := range r.labels {
		y := float32(i*plot.BandHeight) * scaleY
		label.Move(fyne.NewPos(4, y+2))
	}

	r.status.Resize(fyne.NewSize(max(size.Width-8, 0), 16))
	r.status.Move(fyne.NewPos(4, size.Height-18))
}

// Refresh updates the widget display.
func (r *scopeRenderer) Refresh() {
	if r.scope.meter != nil {
		reading := r.scope.meter.Reading()
		r.status.Text = formatReading(reading)
		for i, label := range r.labels {
			label.TextStyle.Bold = i == reading.Channel
			label.Text = laneName(i)
			if i == reading.Channel {
				label.Text = "> " + label.Text
			}
			label.Refresh()
		}
		r.status.Refresh()
	}

	r.image.Refresh()
}

// Objects returns all canvas objects for rendering.
func (r *scopeRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

// Destroy cleans up resources.
func (r *scopeRenderer) Destroy() {
	// Cleanup handled by Fyne
}

func laneName(ch int) string {
	return fmt.Sprintf("CH%d", ch+1)
}

func formatReading(r meter.Reading) string {
	state := "LIVE"
	if r.Detached {
		state = "DETACHED"
	}
	if r.Count == 0 {
		return fmt.Sprintf("%s  %s  waiting for samples", state, laneName(r.Channel))
	}
	return fmt.Sprintf("%s  %s  n=%d  last=%d  min=%d  max=%d  %.0f S/s",
		state, laneName(r.Channel), r.Count, r.Last, r.Min, r.Max, r.Rate)
}
