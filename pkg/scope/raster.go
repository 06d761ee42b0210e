package scope

import (
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/chewxy/math32"
)

// Raster is a pixel surface that keeps everything drawn on it until it is
// painted over. The render loop draws on it and the widget displays
// snapshots of it.
type Raster struct {
	mu    sync.Mutex
	back  *image.RGBA // Drawn on by the render loop
	front *image.RGBA // Last snapshot handed to the display

	onPresent func()
}

// NewRaster creates a surface of the given size in pixels.
func NewRaster(width, height int) *Raster {
	rect := image.Rect(0, 0, width, height)
	return &Raster{
		back:  image.NewRGBA(rect),
		front: image.NewRGBA(rect),
	}
}

// SetOnPresent registers the function called on every Present.
func (r *Raster) SetOnPresent(f func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onPresent = f
}

// Bounds returns the surface rectangle.
func (r *Raster) Bounds() image.Rectangle {
	return r.back.Rect
}

// Clear paints the whole surface with c.
func (r *Raster) Clear(c color.Color) {
	r.FillRect(r.back.Rect, c)
}

// FillRect paints rect with c. Parts outside the surface are ignored.
func (r *Raster) FillRect(rect image.Rectangle, c color.Color) {
	r.mu.Lock()
	defer r.mu.Unlock()
	draw.Draw(r.back, rect.Intersect(r.back.Rect), image.NewUniform(c), image.Point{}, draw.Src)
}

// DrawLine draws a one pixel wide line from a to b inclusive.
func (r *Raster) DrawLine(a, b image.Point, c color.Color) {
	rgba := color.RGBAModel.Convert(c).(color.RGBA)

	r.mu.Lock()
	defer r.mu.Unlock()

	dx := float32(b.X - a.X)
	dy := float32(b.Y - a.Y)
	steps := int(math32.Max(math32.Abs(dx), math32.Abs(dy)))
	if steps == 0 {
		r.set(a.X, a.Y, rgba)
		return
	}

	xInc := dx / float32(steps)
	yInc := dy / float32(steps)
	x, y := float32(a.X), float32(a.Y)
	for range steps + 1 {
		r.set(int(math32.Floor(x+0.5)), int(math32.Floor(y+0.5)), rgba)
		x += xInc
		y += yInc
	}
}

// set writes one pixel. Caller must hold the lock.
func (r *Raster) set(x, y int, c color.RGBA) {
	if !image.Pt(x, y).In(r.back.Rect) {
		return
	}
	r.back.SetRGBA(x, y, c)
}

// Present makes the drawn content visible.
func (r *Raster) Present() {
	r.mu.Lock()
	f := r.onPresent
	r.mu.Unlock()

	if f != nil {
		f()
	}
}

// Snapshot copies the surface into the front buffer and returns it.
// The returned image is only valid until the next Snapshot.
func (r *Raster) Snapshot() *image.RGBA {
	r.mu.Lock()
	defer r.mu.Unlock()
	copy(r.front.Pix, r.back.Pix)
	return r.front
}

// RGBAAt returns the color of one pixel.
func (r *Raster) RGBAAt(x, y int) color.RGBA {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.back.RGBAAt(x, y)
}
