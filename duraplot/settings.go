package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/itohio/duraplot/pkg/config"
	"github.com/itohio/duraplot/pkg/device"
)

// showSettingsDialog displays a settings dialog with tabs for the transport
// options. Changes are saved to the configuration file and take effect on the
// next start.
func showSettingsDialog(state *appState) {
	tabs := container.NewAppTabs(
		createSerialTab(state),
		createMockTab(state),
		createPipelineTab(state),
	)

	note := widget.NewLabel("Changes take effect on next start.")
	content := container.NewBorder(nil, note, nil, nil, tabs)
	content.Resize(fyne.NewSize(500, 400))

	d := dialog.NewCustom("Settings", "Close", content, state.window)
	d.Resize(fyne.NewSize(500, 400))
	d.Show()
}

// saveConfig writes the configuration and reports failures in the window.
func saveConfig(state *appState) {
	if err := state.cfg.Save(config.DefaultFile); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save config: %w", err), state.window)
	}
}

// portDisplayName formats a port for the selection list.
func portDisplayName(port device.PortInfo) string {
	if port.Description != "" && port.Description != port.Name {
		return fmt.Sprintf("%s (%s)", port.Name, port.Description)
	}
	return port.Name
}

// portChoices builds the select options for the available ports and maps each
// option back to its port name. The current port is kept even when it is not
// plugged in. selected is the option matching current.
func portChoices(ports []device.PortInfo, current string) (options []string, names map[string]string, selected string) {
	names = make(map[string]string, len(ports)+1)
	for _, port := range ports {
		display := portDisplayName(port)
		options = append(options, display)
		names[display] = port.Name
		if port.Name == current {
			selected = display
		}
	}

	if selected == "" && current != "" {
		options = append(options, current)
		names[current] = current
		selected = current
	}
	return options, names, selected
}

// createSerialTab creates the Serial configuration tab.
func createSerialTab(state *appState) *container.TabItem {
	ports, err := device.Ports()
	if err != nil {
		ports = nil
	}
	options, names, selected := portChoices(ports, state.cfg.Serial.Port)

	portSelect := widget.NewSelect(options, nil)
	if selected != "" {
		portSelect.SetSelected(selected)
	}

	baudEntry := widget.NewEntry()
	baudEntry.SetText(strconv.Itoa(state.cfg.Serial.BaudRate))

	timeoutEntry := widget.NewEntry()
	timeoutEntry.SetText(state.cfg.Serial.ReadTimeout.String())

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Serial Port", Widget: portSelect},
			{Text: "Baud Rate", Widget: baudEntry},
			{Text: "Read Timeout", Widget: timeoutEntry},
		},
		OnSubmit: func() {
			if portSelect.Selected != "" {
				port := names[portSelect.Selected]
				if port == "" {
					port = portSelect.Selected
				}
				state.cfg.Serial.Port = port
			}
			if baud, err := strconv.Atoi(baudEntry.Text); err == nil && baud > 0 {
				state.cfg.Serial.BaudRate = baud
			}
			if timeout, err := time.ParseDuration(timeoutEntry.Text); err == nil && timeout > 0 {
				state.cfg.Serial.ReadTimeout = timeout
			}
			saveConfig(state)
		},
	}

	return container.NewTabItem("Serial", form)
}

// createMockTab creates the Mock device configuration tab.
func createMockTab(state *appState) *container.TabItem {
	enabledCheck := widget.NewCheck("Use mocked device", nil)
	enabledCheck.SetChecked(state.cfg.Mock.Enabled)

	sampleRateEntry := widget.NewEntry()
	sampleRateEntry.SetText(state.cfg.Mock.SampleRate.String())

	frequencyEntry := widget.NewEntry()
	frequencyEntry.SetText(fmt.Sprintf("%.2f", state.cfg.Mock.Frequency))

	amplitudeEntry := widget.NewEntry()
	amplitudeEntry.SetText(fmt.Sprintf("%.0f", state.cfg.Mock.Amplitude))

	offsetEntry := widget.NewEntry()
	offsetEntry.SetText(fmt.Sprintf("%.0f", state.cfg.Mock.Offset))

	noiseLevelEntry := widget.NewEntry()
	noiseLevelEntry.SetText(fmt.Sprintf("%.0f", state.cfg.Mock.NoiseLevel))

	dropEveryEntry := widget.NewEntry()
	dropEveryEntry.SetText(strconv.Itoa(state.cfg.Mock.DropEvery))

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Enabled", Widget: enabledCheck},
			{Text: "Sample Rate", Widget: sampleRateEntry},
			{Text: "Frequency (Hz)", Widget: frequencyEntry},
			{Text: "Amplitude", Widget: amplitudeEntry},
			{Text: "Offset", Widget: offsetEntry},
			{Text: "Noise Level", Widget: noiseLevelEntry},
			{Text: "Drop Every (0=never)", Widget: dropEveryEntry},
		},
		OnSubmit: func() {
			state.cfg.Mock.Enabled = enabledCheck.Checked
			if sr, err := time.ParseDuration(sampleRateEntry.Text); err == nil && sr > 0 {
				state.cfg.Mock.SampleRate = sr
			}
			if f, err := strconv.ParseFloat(frequencyEntry.Text, 64); err == nil {
				state.cfg.Mock.Frequency = f
			}
			if a, err := strconv.ParseFloat(amplitudeEntry.Text, 64); err == nil {
				state.cfg.Mock.Amplitude = a
			}
			if o, err := strconv.ParseFloat(offsetEntry.Text, 64); err == nil {
				state.cfg.Mock.Offset = o
			}
			if nl, err := strconv.ParseFloat(noiseLevelEntry.Text, 64); err == nil {
				state.cfg.Mock.NoiseLevel = nl
			}
			if de, err := strconv.Atoi(dropEveryEntry.Text); err == nil && de >= 0 {
				state.cfg.Mock.DropEvery = de
			}
			saveConfig(state)
		},
	}

	return container.NewTabItem("Mock", form)
}

// parseDataBuffer validates the sample channel capacity. Zero is rejected
// because the config loader replaces it with the default.
func parseDataBuffer(text string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("invalid data buffer %q: %w", text, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("data buffer must be positive, got %d", n)
	}
	return n, nil
}

// createPipelineTab creates the render loop configuration tab.
func createPipelineTab(state *appState) *container.TabItem {
	bufferEntry := widget.NewEntry()
	bufferEntry.SetText(strconv.Itoa(state.cfg.Pipeline.DataBuffer))

	idleEntry := widget.NewEntry()
	idleEntry.SetText(state.cfg.Display.IdleSleep.String())

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Data Buffer (samples)", Widget: bufferEntry},
			{Text: "Idle Sleep", Widget: idleEntry},
		},
		OnSubmit: func() {
			n, err := parseDataBuffer(bufferEntry.Text)
			if err != nil {
				dialog.ShowError(err, state.window)
				return
			}
			state.cfg.Pipeline.DataBuffer = n
			if d, err := time.ParseDuration(idleEntry.Text); err == nil && d >= 0 {
				state.cfg.Display.IdleSleep = d
			}
			saveConfig(state)
		},
	}

	return container.NewTabItem("Pipeline", form)
}
