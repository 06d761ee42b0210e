package main

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/itohio/duraplot/pkg/config"
	"github.com/itohio/duraplot/pkg/scope"
	"github.com/itohio/duraplot/pkg/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolbar_ButtonsPushEvents(t *testing.T) {
	test.NewTempApp(t)

	state := &appState{cfg: config.Default(), input: scope.NewInput()}
	createToolbar(state)
	require.NotNil(t, state.pauseBtn)
	require.NotNil(t, state.resumeBtn)

	assert.Equal(t, widget.HighImportance, state.resumeBtn.Importance)

	test.Tap(state.pauseBtn)
	assert.True(t, state.detached)
	assert.Equal(t, widget.HighImportance, state.pauseBtn.Importance)
	assert.Equal(t, widget.MediumImportance, state.resumeBtn.Importance)

	test.Tap(state.resumeBtn)
	assert.False(t, state.detached)

	assert.Equal(t, []view.Event{view.Pause, view.Resume}, state.input.Poll())
}

func TestAppState_PushKeepsOtherEventsUnchanged(t *testing.T) {
	state := &appState{cfg: config.Default(), input: scope.NewInput()}

	state.push(view.NextChannel)
	state.push(view.Clear)

	assert.False(t, state.detached)
	assert.Equal(t, []view.Event{view.NextChannel, view.Clear}, state.input.Poll())
}
