// Package polygen implements the I, Robot polygon generator. This is a
// fixed function coprocessor which walks an object table in the shared
// command RAM and rasterizes points, vectors and filled polygons into
// whichever canvas buffer is currently selected for drawing.
//
// Command RAM layout (all 16 bit words):
//
//	Object table starting at word 0, one entry per object:
//	  bits 00..10: Address of object data
//	  bits 12..15: Object type (0x4 polygon, 0x8 points, 0xC vectors)
//	  0xFFFF ends the table.
//
//	Points (repeat until X == 0xFFFF):
//	  Word 0: X
//	  Word 1: bits 7..15 Y, bits 0..5 color
//
//	Vectors (repeat until ending Y == 0xFFFF):
//	  Word 0: Ending Y
//	  Word 1: bits 7..15 starting Y, bits 0..5 color
//	  Word 2: Slope (signed, X units per scanline)
//	  Word 3: Starting X
//
//	Polygon:
//	  Word 0: bits 0..10 address of the second slope list
//	  Word 1: Starting X of the first side
//	  Word 2: Starting X of the second side
//	  Word 3: bits 7..15 starting Y, bits 0..5 color
//	  Word 4..: First slope list
//
//	Slope lists (one per side, repeat until both words are 0xFFFF):
//	  Word 0: Slope
//	  Word 1: Ending Y of this segment
//
// Every coordinate is 9.7 fixed point offset by 128 pixels; see toPixel.
package polygen

import (
	"errors"
	"fmt"

	"github.com/jmchacon/irobot/canvas"
	"github.com/jmchacon/irobot/memory"
)

// objectType is the type nibble of an object table entry.
type objectType uint8

const (
	kOBJECT_POLYGON objectType = 0x4
	kOBJECT_POINT   objectType = 0x8
	kOBJECT_VECTOR  objectType = 0xC
)

const (
	// Words is the size of the command RAM window the generator can see.
	Words = 0x800

	// MaxEntries is the most object table entries walked in one pass.
	MaxEntries = int(kLIST_LIMIT)

	kLIST_LIMIT = uint16(0x7FF)  // Table and sub-list walks stop before this word.
	kEND        = uint16(0xFFFF) // Terminator (and undriven bus value).
	kMASK_ADDR  = uint16(0x07FF)
	kMASK_COLOR = uint16(0x003F)
	kShiftType  = 12
	kShiftPixel = 7
	kPixelBias  = 128
)

// Stats describes the most recent pass.
type Stats struct {
	Entries  int  // Object table entries consumed (not counting the terminator).
	Points   int  // Point objects dispatched.
	Vectors  int  // Vector objects dispatched.
	Polygons int  // Polygon objects dispatched.
	Unknown  int  // Entries with an unused type nibble.
	Capped   bool // True if the walk stopped at MaxEntries rather than a terminator.
}

// Chip is a polygon generator wired to a command RAM and a canvas.
type Chip struct {
	mem    memory.WordBank // Command RAM. Only ever read.
	canvas *canvas.Canvas  // Owner of both bitmaps.
	debug  bool            // If true Debug() emits output.
	passes int             // Total Run() calls.
	stats  Stats           // Stats from the last Run().
}

// ChipDef defines a polygon generator.
type ChipDef struct {
	// Memory is the non-optional command RAM.
	Memory memory.WordBank
	// Canvas is the non-optional double buffered bitmap to draw into.
	Canvas *canvas.Canvas
	// Debug if true will emit output from Debug() calls.
	Debug bool
}

// Init returns a polygon generator ready to Run.
func Init(def *ChipDef) (*Chip, error) {
	if def == nil {
		return nil, errors.New("ChipDef must be non-nil")
	}
	if def.Memory == nil {
		return nil, errors.New("Memory must be non-nil")
	}
	if def.Canvas == nil {
		return nil, errors.New("Canvas must be non-nil")
	}
	return &Chip{
		mem:    def.Memory,
		canvas: def.Canvas,
		debug:  def.Debug,
	}, nil
}

// toPixel converts a 9.7 fixed point coordinate into a pixel coordinate.
// The shift is arithmetic so accumulators which went negative stay negative.
func toPixel(raw int32) int {
	return int(raw>>kShiftPixel) - kPixelBias
}

// word returns command RAM at addr. Anything outside the window reads as an
// undriven bus (0xFFFF) without touching memory so every walk terminates.
func (c *Chip) word(addr int) uint16 {
	if addr < 0 || addr >= Words {
		return kEND
	}
	return c.mem.ReadWord(uint16(addr))
}

// Run executes one complete pass of the object table into the current draw
// buffer. The pass ends at the 0xFFFF terminator or after MaxEntries entries.
func (c *Chip) Run() {
	s := c.canvas.Surface(c.canvas.DrawTarget())
	c.passes++
	c.stats = Stats{}

	lpnt := 0
	for {
		if lpnt >= MaxEntries {
			c.stats.Capped = true
			return
		}
		d := c.word(lpnt)
		lpnt++
		if d == kEND {
			return
		}
		c.stats.Entries++
		addr := int(d & kMASK_ADDR)

		switch objectType(d >> kShiftType) {
		case kOBJECT_POINT:
			c.stats.Points++
			c.drawPoints(s, addr)
		case kOBJECT_VECTOR:
			c.stats.Vectors++
			c.drawVectors(s, addr)
		case kOBJECT_POLYGON:
			c.stats.Polygons++
			c.drawPolygon(s, addr)
		default:
			c.stats.Unknown++
		}
	}
}

// Stats returns the statistics from the most recent Run.
func (c *Chip) Stats() Stats {
	return c.stats
}

// Debug returns the last pass summary if debugging was enabled.
func (c *Chip) Debug() string {
	if c.debug {
		s := c.stats
		return fmt.Sprintf("%.6d entries: %d points: %d vectors: %d polygons: %d unknown: %d capped: %t\n", c.passes, s.Entries, s.Points, s.Vectors, s.Polygons, s.Unknown, s.Capped)
	}
	return ""
}
