//go:build tinygo

//go:generate tinygo flash -target=arduino

package main

import (
	"machine"
	"time"
)

var (
	adc  machine.ADC
	uart = machine.UART0

	// ADC averaging - running sum and count
	sum   uint32
	count int

	// Timing
	lastADCRead time.Time

	frame [2]byte
)

func main() {
	// Configure ADC pin
	PIN_ADC.Configure(machine.PinConfig{Mode: machine.PinInput})

	adc = machine.ADC{Pin: PIN_ADC}
	adc.Configure(machine.ADCConfig{
		Reference:  ADC_REFERENCE_MV,
		Resolution: ADC_RESOLUTION,
	})

	// 8N1 is the UART default
	uart.Configure(machine.UARTConfig{
		BaudRate: UART_BAUD_RATE,
	})

	lastADCRead = time.Now()

	for {
		now := time.Now()

		if now.Sub(lastADCRead) >= time.Duration(SAMPLE_INTERVAL_US)*time.Microsecond {
			// Get returns the reading scaled to 16 bits regardless of resolution
			sum += uint32(adc.Get())
			count++
			lastADCRead = now
		}

		if count >= NUM_SAMPLES {
			writeSample(uint16(sum/uint32(count)) >> (16 - SAMPLE_BITS))
			sum = 0
			count = 0
		}

		time.Sleep(50 * time.Microsecond)
	}
}

// writeSample sends one frame: low byte first, then high byte.
func writeSample(level uint16) {
	frame[0] = byte(level)
	frame[1] = byte(level >> 8)
	uart.Write(frame[:])
}
