package sample

// FrameSize is the number of bytes the device sends per sample.
const FrameSize = 2

// MaxLevel is the largest value the 10-bit ADC produces.
// Decode does not enforce it.
const MaxLevel = 1023

// Frame is one raw sample as read from the serial link.
// Byte 0 is the low byte, byte 1 the high byte.
type Frame [FrameSize]byte

// Sample is a decoded ADC reading.
type Sample uint16

// Decode converts a little-endian frame into a Sample.
func Decode(f Frame) Sample {
	return Sample(uint16(f[1])<<8 | uint16(f[0]))
}

// Encode is the inverse of Decode.
func Encode(s Sample) Frame {
	return Frame{byte(s), byte(s >> 8)}
}

// InRange reports whether s is within the device's 10-bit contract.
func (s Sample) InRange() bool {
	return s <= MaxLevel
}
