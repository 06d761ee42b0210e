package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/itohio/duraplot/pkg/config"
	"github.com/itohio/duraplot/pkg/scope"
	"github.com/itohio/duraplot/pkg/view"
)

// appState holds the application state.
type appState struct {
	cfg    *config.Config
	window fyne.Window
	input  *scope.Input

	pauseBtn  *widget.Button
	resumeBtn *widget.Button
	detached  bool
}

// push forwards a user action to the render loop and mirrors the
// attach/detach state on the toolbar.
func (s *appState) push(ev view.Event) {
	s.input.Push(ev)

	switch ev {
	case view.Pause:
		s.detached = true
	case view.Resume:
		s.detached = false
	default:
		return
	}
	updateDetachButtons(s)
}

// createToolbar creates the application toolbar with the chart controls on the
// left and Settings on the right.
func createToolbar(state *appState) fyne.CanvasObject {
	action := func(ev view.Event) func() {
		return func() {
			state.push(ev)
			// Give the keyboard back to the chart
			if state.window != nil {
				state.window.Canvas().Unfocus()
			}
		}
	}

	state.pauseBtn = widget.NewButtonWithIcon("Detach (S)", theme.MediaPauseIcon(), action(view.Pause))
	state.resumeBtn = widget.NewButtonWithIcon("Resume (R)", theme.MediaPlayIcon(), action(view.Resume))
	nextBtn := widget.NewButtonWithIcon("Next (N)", theme.MediaSkipNextIcon(), action(view.NextChannel))
	clearBtn := widget.NewButtonWithIcon("Clear (C)", theme.ContentClearIcon(), action(view.Clear))

	settingsBtn := widget.NewButtonWithIcon("", theme.SettingsIcon(), func() {
		showSettingsDialog(state)
	})

	updateDetachButtons(state)

	return container.NewBorder(
		nil, // top
		nil, // bottom
		container.NewHBox(state.pauseBtn, state.resumeBtn, nextBtn, clearBtn), // left
		settingsBtn, // right
		nil,         // center (spacer)
	)
}

// updateDetachButtons highlights the button matching the current mode.
func updateDetachButtons(state *appState) {
	updateButton(state.pauseBtn, state.detached)
	updateButton(state.resumeBtn, !state.detached)
}

// updateButton updates a single button's visual state.
func updateButton(btn *widget.Button, isOn bool) {
	if btn == nil {
		return
	}
	if isOn {
		btn.Importance = widget.HighImportance
	} else {
		btn.Importance = widget.MediumImportance
	}
	btn.Refresh()
}
