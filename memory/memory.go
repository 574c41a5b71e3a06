// Package memory defines the basic interfaces for working
// with the shared memories on the I, Robot video board. The
// 6809 sees everything as bytes but the polygon generator
// reads its command RAM as 16 bit words, so both views are
// defined here as interfaces over separately owned storage.
package memory

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var (
	_ = Bank(&RAM{})
	_ = WordBank(&WordRAM{})
)

// Bank is a byte addressed memory (video RAM, ROMs).
type Bank interface {
	// Read returns the data byte stored at addr.
	Read(addr uint16) uint8
	// Write updates addr with the new value. For ROM addresses this is simply a no-op without
	// any error.
	Write(addr uint16, val uint8)
	// PowerOn performs power on reset of the memory. This is implementation specific as to
	// whether it's randomized or preset to all zeros.
	PowerOn()
}

// WordBank is a 16 bit word addressed memory (polygon command RAM).
type WordBank interface {
	// ReadWord returns the word stored at addr.
	ReadWord(addr uint16) uint16
	// WriteWord updates addr with the new value.
	WriteWord(addr uint16, val uint16)
	// PowerOn performs power on reset of the memory.
	PowerOn()
	// Len returns the number of addressable words.
	Len() int
}

// RAM is a flat byte memory. Addresses past the end read as 0xFF and
// writes to them are dropped.
type RAM struct {
	data []uint8
	rom  bool // If true Write is a no-op.
}

// NewRAM returns a zeroed RAM of size bytes.
func NewRAM(size int) (*RAM, error) {
	if size <= 0 || size > 0x10000 {
		return nil, fmt.Errorf("invalid RAM size %d", size)
	}
	return &RAM{data: make([]uint8, size)}, nil
}

// NewROM returns a read-only Bank holding a copy of b.
func NewROM(b []uint8) (*RAM, error) {
	if len(b) == 0 || len(b) > 0x10000 {
		return nil, fmt.Errorf("invalid ROM size %d", len(b))
	}
	r := &RAM{data: make([]uint8, len(b)), rom: true}
	copy(r.data, b)
	return r, nil
}

// Read implements the interface for memory.Bank.
func (r *RAM) Read(addr uint16) uint8 {
	if int(addr) >= len(r.data) {
		return 0xFF
	}
	return r.data[addr]
}

// Write implements the interface for memory.Bank.
func (r *RAM) Write(addr uint16, val uint8) {
	if r.rom || int(addr) >= len(r.data) {
		return
	}
	r.data[addr] = val
}

// PowerOn implements the interface for memory.Bank. RAM is zeroed, ROM is untouched.
func (r *RAM) PowerOn() {
	if r.rom {
		return
	}
	for i := range r.data {
		r.data[i] = 0x00
	}
}

// Len returns the size in bytes.
func (r *RAM) Len() int {
	return len(r.data)
}

// WordRAM is a flat 16 bit memory. Addresses past the end read as 0xFFFF
// (an undriven bus) and writes to them are dropped.
type WordRAM struct {
	data []uint16
}

// NewWordRAM returns a zeroed WordRAM of size words.
func NewWordRAM(size int) (*WordRAM, error) {
	if size <= 0 || size > 0x10000 {
		return nil, fmt.Errorf("invalid word RAM size %d", size)
	}
	return &WordRAM{data: make([]uint16, size)}, nil
}

// WordRAMFromBytes builds a WordRAM from a big endian byte image
// (the order the 6809 writes command RAM in).
func WordRAMFromBytes(b []byte) (*WordRAM, error) {
	if len(b)%2 != 0 {
		return nil, errors.New("word RAM image must be an even number of bytes")
	}
	w, err := NewWordRAM(len(b) / 2)
	if err != nil {
		return nil, err
	}
	for i := range w.data {
		w.data[i] = binary.BigEndian.Uint16(b[i*2:])
	}
	return w, nil
}

// ReadWord implements the interface for memory.WordBank.
func (w *WordRAM) ReadWord(addr uint16) uint16 {
	if int(addr) >= len(w.data) {
		return 0xFFFF
	}
	return w.data[addr]
}

// WriteWord implements the interface for memory.WordBank.
func (w *WordRAM) WriteWord(addr uint16, val uint16) {
	if int(addr) >= len(w.data) {
		return
	}
	w.data[addr] = val
}

// PowerOn implements the interface for memory.WordBank.
func (w *WordRAM) PowerOn() {
	for i := range w.data {
		w.data[i] = 0x0000
	}
}

// Len implements the interface for memory.WordBank.
func (w *WordRAM) Len() int {
	return len(w.data)
}

// Load copies words into the RAM starting at addr. Anything past the end is dropped.
func (w *WordRAM) Load(addr uint16, words ...uint16) {
	for i, v := range words {
		w.WriteWord(addr+uint16(i), v)
	}
}
