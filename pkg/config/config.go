package config

import (
	"fmt"
	"image/color"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the configuration file looked up in the working directory.
const DefaultFile = "duraplot.yaml"

// Config represents the application configuration.
type Config struct {
	Serial   SerialConfig   `yaml:"serial"`
	Display  DisplayConfig  `yaml:"display"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Mock     MockConfig     `yaml:"mock"`
}

// SerialConfig contains serial port configuration.
// Framing is always 8 data bits, no parity, 1 stop bit, no flow control.
type SerialConfig struct {
	Port        string        `yaml:"port"`
	BaudRate    int           `yaml:"baud_rate"`
	ReadTimeout time.Duration `yaml:"read_timeout"` // Bounds shutdown latency of the reader
	RetryDelay  time.Duration `yaml:"retry_delay"`  // Pause after a failed read (0 = retry immediately)
}

// DisplayConfig contains window and trace appearance.
type DisplayConfig struct {
	Title      string        `yaml:"title"`
	Width      int           `yaml:"width"`
	Height     int           `yaml:"height"`
	Background Color         `yaml:"background"`
	Channels   []Color       `yaml:"channels"`   // One color per lane, top to bottom
	IdleSleep  time.Duration `yaml:"idle_sleep"` // Render loop sleep when idle (0 = free-run)
}

// PipelineConfig contains producer/consumer handoff parameters.
type PipelineConfig struct {
	DataBuffer int `yaml:"data_buffer"` // Capacity of the sample channel
}

// MockConfig contains mock device configuration.
type MockConfig struct {
	Enabled    bool          `yaml:"enabled"`
	SampleRate time.Duration `yaml:"sample_rate"` // Time between frames
	Frequency  float64       `yaml:"frequency"`   // Sine frequency (Hz)
	Amplitude  float64       `yaml:"amplitude"`   // Sine amplitude (ADC counts)
	Offset     float64       `yaml:"offset"`      // DC level (ADC counts)
	NoiseLevel float64       `yaml:"noise_level"` // Noise amplitude (ADC counts)
	DropEvery  int           `yaml:"drop_every"`  // Simulate a read error every N frames (0 = never)
}

// Color is an opaque RGB color.
type Color struct {
	R uint8 `yaml:"r"`
	G uint8 `yaml:"g"`
	B uint8 `yaml:"b"`
}

// RGBA converts c to an opaque color.RGBA.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// Default returns a default configuration with sensible values.
func Default() *Config {
	return &Config{
		Serial: SerialConfig{
			Port:        "/dev/ttyACM0", // Arduino Uno on Linux
			BaudRate:    9600,
			ReadTimeout: 100 * time.Millisecond,
			RetryDelay:  0,
		},
		Display: DisplayConfig{
			Title:      "Duraplot",
			Width:      1500,
			Height:     800,
			Background: Color{R: 0, G: 0, B: 0},
			Channels: []Color{
				{R: 140, G: 180, B: 140},
				{R: 180, G: 140, B: 140},
				{R: 140, G: 140, B: 180},
				{R: 180, G: 180, B: 140},
			},
			IdleSleep: time.Millisecond,
		},
		Pipeline: PipelineConfig{
			DataBuffer: 4096,
		},
		Mock: MockConfig{
			Enabled:    false,
			SampleRate: 2 * time.Millisecond, // ~480 frames/s, what 9600 baud carries
			Frequency:  0.5,
			Amplitude:  400,
			Offset:     512,
			NoiseLevel: 8,
			DropEvery:  0,
		},
	}
}

// Load loads configuration from a YAML file. If the file doesn't exist or
// fields are missing, it uses default values.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ensureDefaults()

	return cfg, nil
}

// Save saves the configuration to a YAML file.
func (c *Config) Save(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ChannelColor returns the trace color of lane ch.
// Missing colors fall back to the defaults.
func (c *Config) ChannelColor(ch int) color.RGBA {
	channels := c.Display.Channels
	if len(channels) == 0 {
		channels = Default().Display.Channels
	}
	if ch < 0 {
		ch = -ch
	}
	return channels[ch%len(channels)].RGBA()
}

// ensureDefaults ensures that all required fields have default values if missing.
func (c *Config) ensureDefaults() {
	def := Default()

	if c.Serial.Port == "" {
		c.Serial.Port = def.Serial.Port
	}
	if c.Serial.BaudRate <= 0 {
		c.Serial.BaudRate = def.Serial.BaudRate
	}
	if c.Serial.ReadTimeout <= 0 {
		c.Serial.ReadTimeout = def.Serial.ReadTimeout
	}
	if c.Serial.RetryDelay < 0 {
		c.Serial.RetryDelay = 0
	}

	if c.Display.Title == "" {
		c.Display.Title = def.Display.Title
	}
	if c.Display.Width <= 0 {
		c.Display.Width = def.Display.Width
	}
	if c.Display.Height <= 0 {
		c.Display.Height = def.Display.Height
	}
	// Every lane needs its own color, fill the missing ones from defaults.
	for i := len(c.Display.Channels); i < len(def.Display.Channels); i++ {
		c.Display.Channels = append(c.Display.Channels, def.Display.Channels[i])
	}
	if c.Display.IdleSleep < 0 {
		c.Display.IdleSleep = 0
	}

	if c.Pipeline.DataBuffer <= 0 {
		c.Pipeline.DataBuffer = def.Pipeline.DataBuffer
	}

	if c.Mock.SampleRate <= 0 {
		c.Mock.SampleRate = def.Mock.SampleRate
	}
	if c.Mock.Frequency == 0 {
		c.Mock.Frequency = def.Mock.Frequency
	}
	if c.Mock.Amplitude == 0 {
		c.Mock.Amplitude = def.Mock.Amplitude
	}
	if c.Mock.Offset == 0 {
		c.Mock.Offset = def.Mock.Offset
	}
}
