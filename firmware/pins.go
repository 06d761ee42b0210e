//go:build tinygo

package main

import "machine"

const (
	// Sampling configuration
	SAMPLE_INTERVAL_US = 200 // ADC read interval in microseconds
	NUM_SAMPLES        = 10  // Number of readings averaged into one sample
	SAMPLE_BITS        = 10  // Sample range is 0..1023

	// ADC configuration
	ADC_REFERENCE_MV = 5000 // Reference voltage in millivolts (AVCC)
	ADC_RESOLUTION   = 10   // Native resolution of the ATmega328P ADC

	// ADC pin
	PIN_ADC = machine.ADC0

	// Serial configuration
	// Each sample is a 2 byte frame. UART 8N1: 10 bits/byte = 20 bits per frame.
	// 9600 baud carries 480 frames/s; NUM_SAMPLES * SAMPLE_INTERVAL_US = 2ms
	// produces 500 frames/s, so the UART write paces the loop.
	UART_BAUD_RATE = 9600
)
