package scope

import (
	"image"
	"sync/atomic"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/itohio/duraplot/pkg/config"
	"github.com/itohio/duraplot/pkg/meter"
	"github.com/itohio/duraplot/pkg/plot"
)

// ScopeWidget is a custom Fyne widget that displays the strip chart raster
// with lane separators, lane labels and a status line.
type ScopeWidget struct {
	widget.BaseWidget

	cfg    *config.Config
	raster *Raster
	meter  *meter.Meter

	// Set while a refresh is queued on the main thread
	pending atomic.Bool
}

// New creates a new ScopeWidget showing raster. meter may be nil.
func New(cfg *config.Config, raster *Raster, m *meter.Meter) *ScopeWidget {
	s := &ScopeWidget{
		cfg:    cfg,
		raster: raster,
		meter:  m,
	}
	s.ExtendBaseWidget(s)
	raster.SetOnPresent(s.requestRefresh)
	return s
}

// requestRefresh schedules a redraw on the main thread. Presents that arrive
// while one is queued are merged into it.
func (s *ScopeWidget) requestRefresh() {
	if !s.pending.CompareAndSwap(false, true) {
		return
	}
	fyne.Do(func() {
		s.pending.Store(false)
		s.Refresh()
	})
}

// CreateRenderer creates the widget renderer.
func (s *ScopeWidget) CreateRenderer() fyne.WidgetRenderer {
	img := canvas.NewRaster(func(w, h int) image.Image {
		return s.raster.Snapshot()
	})
	img.ScaleMode = canvas.ImageScalePixels

	r := &scopeRenderer{
		scope:  s,
		image:  img,
		status: canvas.NewText("", statusColor),
	}
	r.status.TextSize = 11
	r.status.Alignment = fyne.TextAlignTrailing

	for i := 1; i < plot.Channels; i++ {
		line := canvas.NewLine(separatorColor)
		line.StrokeWidth = 1
		r.separators = append(r.separators, line)
	}
	for i := range plot.Channels {
		label := canvas.NewText(laneName(i), s.cfg.ChannelColor(i))
		label.TextSize = 12
		label.TextStyle = fyne.TextStyle{Monospace: true}
		r.labels = append(r.labels, label)
	}

	r.objects = []fyne.CanvasObject{r.image}
	for _, l := range r.separators {
		r.objects = append(r.objects, l)
	}
	for _, l := range r.labels {
		r.objects = append(r.objects, l)
	}
	r.objects = append(r.objects, r.status)

	return r
}
