// Package palette implements the I, Robot color hardware.
//
// The polygon generator indexes a 64 entry color RAM the CPU writes through
// resistor/inverter networks (9 bits per entry, the low address bit supplying
// the 9th). The alpha overlay instead goes through a 32 byte color PROM whose
// outputs drive the same resistor networks, wired with its address lines
// swizzled. Both are kept in a single 96 entry table:
//
//	0..63  dynamic color RAM
//	64..95 static alpha colors from the PROM
package palette

import (
	"errors"
	"fmt"
	"image/color"
)

const (
	// Dynamic is the number of color RAM entries.
	Dynamic = 64
	// Static is the number of PROM derived entries.
	Static = 32
	// StaticBase is the first index of the PROM derived entries.
	StaticBase = Dynamic
	// Entries is the total table size.
	Entries = Dynamic + Static

	// PROMSize is the size of the alpha color PROM in bytes.
	PROMSize = Static

	kPROM_SCALE = 28 // Per step weight of the PROM color bits.
	kRAM_SCALE  = 12 // Per step weight of the color RAM bits.

	kMASK_INTENSITY_PROM = uint8(0x03)
	kMASK_INTENSITY_RAM  = uint16(0x07)
	kMASK_COMPONENT      = uint16(0x03)
	kMASK_INVERT         = uint16(0x1FF)
	kMASK_INDEX          = uint16(0x3F)
)

// Palette holds the combined dynamic and static color tables.
type Palette struct {
	colors    [Entries]color.NRGBA
	debug     bool   // If true Debug() emits output.
	writes    int    // Total color RAM writes seen.
	lastWrite uint16 // Offset of the most recent color RAM write.
}

// ChipDef defines a Palette.
type ChipDef struct {
	// ColorPROM is the non-optional 32 byte alpha color PROM.
	ColorPROM []uint8
	// Debug if true will emit output from Debug() calls.
	Debug bool
}

// Init returns a Palette with the static entries computed from the PROM and
// the dynamic entries all black.
func Init(def *ChipDef) (*Palette, error) {
	if def == nil {
		return nil, errors.New("ChipDef must be non-nil")
	}
	if len(def.ColorPROM) != PROMSize {
		return nil, fmt.Errorf("color PROM must be %d bytes, got %d", PROMSize, len(def.ColorPROM))
	}
	p := &Palette{
		debug: def.Debug,
	}
	for i := range p.colors {
		p.colors[i] = color.NRGBA{A: 0xFF}
	}
	p.buildStatic(def.ColorPROM)
	return p, nil
}

// promIndex applies the PROM address line wiring: bits 0 and 2 are swapped.
func promIndex(i uint8) uint8 {
	return (i & 0xF8) | ((i & 0x01) << 2) | (i & 0x02) | ((i & 0x04) >> 2)
}

// buildStatic fills in the PROM derived entries. Each PROM byte is
// RRGGBBII where II scales the three 2 bit components.
func (p *Palette) buildStatic(prom []uint8) {
	for i := 0; i < Static; i++ {
		v := prom[i]
		intensity := int(v & kMASK_INTENSITY_PROM)
		r := kPROM_SCALE * int((v>>6)&0x03) * intensity
		g := kPROM_SCALE * int((v>>4)&0x03) * intensity
		b := kPROM_SCALE * int((v>>2)&0x03) * intensity
		p.colors[StaticBase+int(promIndex(uint8(i)))] = color.NRGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 0xFF}
	}
}

// Write handles a CPU write to color RAM. The 9 bit value is the data byte
// shifted up with the low address bit below it, and the resistor network
// sits behind inverters so everything is complemented. Layout after
// inversion is RRGGBBIII.
func (p *Palette) Write(offset uint16, data uint8) {
	code := ((uint16(data) << 1) | (offset & 0x01)) ^ kMASK_INVERT
	intensity := int(code & kMASK_INTENSITY_RAM)
	b := kRAM_SCALE * int((code>>3)&kMASK_COMPONENT) * intensity
	g := kRAM_SCALE * int((code>>5)&kMASK_COMPONENT) * intensity
	r := kRAM_SCALE * int((code>>7)&kMASK_COMPONENT) * intensity
	p.colors[(offset>>1)&kMASK_INDEX] = color.NRGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 0xFF}
	p.writes++
	p.lastWrite = offset
}

// Color returns the RGB triple for index. Out of range indexes are black.
func (p *Palette) Color(index int) (r, g, b uint8) {
	c := p.NRGBA(index)
	return c.R, c.G, c.B
}

// NRGBA returns the color for index. Out of range indexes are opaque black.
func (p *Palette) NRGBA(index int) color.NRGBA {
	if index < 0 || index >= Entries {
		return color.NRGBA{A: 0xFF}
	}
	return p.colors[index]
}

// ColorPalette returns a snapshot of the table usable with image.Paletted.
func (p *Palette) ColorPalette() color.Palette {
	out := make(color.Palette, Entries)
	for i := range p.colors {
		out[i] = p.colors[i]
	}
	return out
}

// Debug returns the write state if debugging was enabled.
func (p *Palette) Debug() string {
	if p.debug {
		return fmt.Sprintf("palette writes: %d last: %.4X\n", p.writes, p.lastWrite)
	}
	return ""
}
