package scope

import (
	"sync"

	"fyne.io/fyne/v2"

	"github.com/itohio/duraplot/pkg/view"
)

// Input queues user actions from the UI goroutine for the render loop.
// Push never blocks so it is safe to call from fyne callbacks.
type Input struct {
	mu     sync.Mutex
	events []view.Event
}

// NewInput creates an empty input queue.
func NewInput() *Input {
	return &Input{}
}

// Push appends an event.
func (in *Input) Push(ev view.Event) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.events = append(in.events, ev)
}

// Poll returns all pending events in arrival order without blocking.
func (in *Input) Poll() []view.Event {
	in.mu.Lock()
	defer in.mu.Unlock()

	if len(in.events) == 0 {
		return nil
	}
	events := in.events
	in.events = nil
	return events
}

// TypedKey maps a key press to an event. Unknown keys are ignored.
// It matches the signature of fyne.Canvas.SetOnTypedKey.
func (in *Input) TypedKey(ev *fyne.KeyEvent) {
	if e, ok := KeyEvent(ev.Name); ok {
		in.Push(e)
	}
}

// KeyEvent returns the action bound to a key.
func KeyEvent(key fyne.KeyName) (view.Event, bool) {
	switch key {
	case fyne.KeyS:
		return view.Pause, true
	case fyne.KeyR:
		return view.Resume, true
	case fyne.KeyN:
		return view.NextChannel, true
	case fyne.KeyC:
		return view.Clear, true
	default:
		return 0, false
	}
}
