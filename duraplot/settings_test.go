package main

import (
	"testing"

	"github.com/itohio/duraplot/pkg/device"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortDisplayName(t *testing.T) {
	assert.Equal(t, "/dev/ttyACM0", portDisplayName(device.PortInfo{Name: "/dev/ttyACM0"}))
	assert.Equal(t, "COM3", portDisplayName(device.PortInfo{Name: "COM3", Description: "COM3"}))
	assert.Equal(t, "/dev/ttyACM0 (Arduino Uno)", portDisplayName(device.PortInfo{Name: "/dev/ttyACM0", Description: "Arduino Uno"}))
}

func TestParseDataBuffer(t *testing.T) {
	n, err := parseDataBuffer(" 1024 ")
	require.NoError(t, err)
	assert.Equal(t, 1024, n)

	for _, text := range []string{"0", "-5", "lots", ""} {
		_, err := parseDataBuffer(text)
		assert.Error(t, err, "text %q", text)
	}
}

func TestPortChoices(t *testing.T) {
	ports := []device.PortInfo{
		{Name: "/dev/ttyACM0", Description: "Arduino Uno"},
		{Name: "/dev/ttyUSB0"},
	}

	t.Run("current port is plugged in", func(t *testing.T) {
		options, names, selected := portChoices(ports, "/dev/ttyUSB0")
		assert.Equal(t, []string{"/dev/ttyACM0 (Arduino Uno)", "/dev/ttyUSB0"}, options)
		assert.Equal(t, "/dev/ttyUSB0", selected)
		assert.Equal(t, "/dev/ttyACM0", names["/dev/ttyACM0 (Arduino Uno)"])
	})

	t.Run("current port is missing", func(t *testing.T) {
		options, names, selected := portChoices(ports, "/dev/ttyACM1")
		assert.Len(t, options, 3)
		assert.Equal(t, "/dev/ttyACM1", selected)
		assert.Equal(t, "/dev/ttyACM1", names[selected])
	})

	t.Run("nothing configured", func(t *testing.T) {
		options, _, selected := portChoices(nil, "")
		assert.Empty(t, options)
		assert.Empty(t, selected)
	})
}
