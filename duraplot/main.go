package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"github.com/itohio/duraplot/pkg/config"
	"github.com/itohio/duraplot/pkg/device"
	"github.com/itohio/duraplot/pkg/meter"
	"github.com/itohio/duraplot/pkg/pipeline"
	"github.com/itohio/duraplot/pkg/scope"
	"github.com/itohio/duraplot/pkg/view"
)

func main() {
	// Load configuration
	cfg, err := config.Load(config.DefaultFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Create Fyne application
	application := app.NewWithID("com.itohio.duraplot")

	// Create main window
	window := application.NewWindow(cfg.Display.Title)
	window.Resize(fyne.NewSize(float32(cfg.Display.Width), float32(cfg.Display.Height)))
	window.CenterOnScreen()

	raster := scope.NewRaster(cfg.Display.Width, cfg.Display.Height)
	input := scope.NewInput()
	traceMeter := meter.New(meter.DefaultWindow)

	state := &appState{
		cfg:    cfg,
		window: window,
		input:  input,
	}

	scopeWidget := scope.New(cfg, raster, traceMeter)
	toolbar := createToolbar(state)

	window.SetContent(container.NewBorder(toolbar, nil, nil, nil, scopeWidget))

	// Keyboard: S pause, R resume, N next channel, C clear
	window.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if e, ok := scope.KeyEvent(ev.Name); ok {
			state.push(e)
		}
	})

	// Closing the window is a Quit; the app exits once the pipeline is joined
	window.SetCloseIntercept(func() {
		input.Push(view.Quit)
	})

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	signalsDone := make(chan struct{})
	go forwardSignals(signals, signalsDone, input)

	p := pipeline.New(cfg, openerFor(cfg), raster, input, traceMeter)

	go func() {
		if err := p.Run(); err != nil {
			logPorts()
			log.Fatalf("Failed to start acquisition: %v", err)
		}
		signal.Stop(signals)
		close(signalsDone)
		fyne.Do(application.Quit)
	}()

	window.ShowAndRun()
}

// forwardSignals turns termination signals into Quit until done is closed.
func forwardSignals(signals <-chan os.Signal, done <-chan struct{}, input *scope.Input) {
	for {
		select {
		case sig := <-signals:
			log.Printf("Received %v, shutting down", sig)
			input.Push(view.Quit)
		case <-done:
			return
		}
	}
}

// openerFor returns the transport selected by cfg.
func openerFor(cfg *config.Config) device.Opener {
	if cfg.Mock.Enabled {
		log.Println("Using mocked device")
		return device.MockOpener(&cfg.Mock)
	}
	log.Printf("Using serial port %s at %d baud", cfg.Serial.Port, cfg.Serial.BaudRate)
	return device.SerialOpener(cfg.Serial)
}

// logPorts lists the serial ports that could be configured instead.
func logPorts() {
	ports, err := device.Ports()
	if err != nil {
		log.Printf("Failed to list serial ports: %v", err)
		return
	}
	if len(ports) == 0 {
		log.Println("No serial ports found")
		return
	}
	for _, port := range ports {
		log.Printf("Available port: %s", portDisplayName(port))
	}
}
