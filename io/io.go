// Package io defines the basic interfaces for reading the
// latched board signals the I, Robot video hardware consumes.
// The CPU side owns the latches and writes them, the video
// chips only ever sample them through these interfaces.
package io

// Port8 defines an 8 bit input port (such as the alphamap latch).
type Port8 interface {
	// Input will return the current value being set on the given input port.
	Input() uint8
}

// PortIn1 defines a 1 bit input port (such as the buffer select line).
type PortIn1 interface {
	// Input will return the current state of the line.
	Input() bool
}
