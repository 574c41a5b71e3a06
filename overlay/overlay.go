// Package overlay implements the I, Robot alphanumeric layer and the final
// per scanline mix. The displayed polygon bitmap shows through wherever a
// character pixel is off, so the alpha layer works like a transparent pen 0
// sprite plane covering the whole screen.
//
// Video RAM is a 32x32 grid of bytes:
//
//	bits 0..5: Character code
//	bits 6..7: Character color
//
// The CPU's alphamap latch is shifted down 3 and ORed into the color code.
// Only 16 color codes exist so latch bit 7 (the one the board drives) wraps
// back onto the first bank.
package overlay

import (
	"errors"
	"fmt"

	"github.com/jmchacon/irobot/canvas"
	"github.com/jmchacon/irobot/io"
	"github.com/jmchacon/irobot/memory"
	"github.com/jmchacon/irobot/palette"
)

const (
	// Columns is the number of character cells across.
	Columns = 32
	// Rows is the number of character cells down.
	Rows = 32
	// VideoRAMSize is the size of the character grid in bytes.
	VideoRAMSize = Columns * Rows

	// Chars is the number of characters in the character ROM.
	Chars = 64
	// CharROMSize is the size of the character ROM in bytes.
	CharROMSize = Chars * kBytesPerChar

	// TileSize is the width and height of a character in pixels.
	TileSize = 8

	kBytesPerChar = 16
	kColors       = 16 // Color codes available to the alpha layer.
	kGranularity  = 2  // Pens per color code (1 bit per pixel).

	kMASK_CODE  = uint8(0x3F)
	kMASK_COLOR = uint8(0x03)
	kShiftColor = 6
	kShiftBank  = 3
)

// TileSource supplies character pixels to the compositor.
type TileSource interface {
	// TilePixel returns the pixel value for character code at x,y within the tile.
	// Zero is transparent.
	TilePixel(code uint8, x, y int) uint8
}

// CharSet is a TileSource decoded from the alpha character ROM. Each character
// is 16 bytes, two per row. Of each byte only the low nibble is used and it's
// read MSB first, so a row is bits 3..0 of the first byte then bits 3..0 of
// the second.
type CharSet struct {
	tiles [Chars][TileSize][TileSize]uint8
}

// NewCharSet decodes a character ROM image.
func NewCharSet(rom []uint8) (*CharSet, error) {
	if len(rom) != CharROMSize {
		return nil, fmt.Errorf("character ROM must be %d bytes, got %d", CharROMSize, len(rom))
	}
	c := &CharSet{}
	for code := 0; code < Chars; code++ {
		for y := 0; y < TileSize; y++ {
			lo := rom[code*kBytesPerChar+y*2]
			hi := rom[code*kBytesPerChar+y*2+1]
			for x := 0; x < 4; x++ {
				c.tiles[code][y][x] = (lo >> uint(3-x)) & 0x01
				c.tiles[code][y][x+4] = (hi >> uint(3-x)) & 0x01
			}
		}
	}
	return c, nil
}

// TilePixel implements the interface for TileSource.
func (c *CharSet) TilePixel(code uint8, x, y int) uint8 {
	if x < 0 || x >= TileSize || y < 0 || y >= TileSize {
		return 0
	}
	return c.tiles[code&kMASK_CODE][y][x]
}

// Compositor mixes the displayed polygon buffer with the alpha layer.
type Compositor struct {
	canvas   *canvas.Canvas // Source of the displayed polygon buffer.
	videoRAM memory.Bank    // Character grid.
	tiles    TileSource     // Character pixels.
	alphamap io.Port8       // Alphamap latch.
	debug    bool           // If true Debug() emits output.
	lines    int            // Scanlines composited.
	chars    int            // Non-transparent character pixels drawn.
}

// ChipDef defines a Compositor.
type ChipDef struct {
	// Canvas is the non-optional polygon bitmap pair.
	Canvas *canvas.Canvas
	// VideoRAM is the non-optional character grid (VideoRAMSize bytes).
	VideoRAM memory.Bank
	// Tiles is the non-optional character pixel source.
	Tiles TileSource
	// Alphamap is the non-optional alphamap latch.
	Alphamap io.Port8
	// Debug if true will emit output from Debug() calls.
	Debug bool
}

// Init returns a Compositor.
func Init(def *ChipDef) (*Compositor, error) {
	if def == nil {
		return nil, errors.New("ChipDef must be non-nil")
	}
	if def.Canvas == nil {
		return nil, errors.New("Canvas must be non-nil")
	}
	if def.VideoRAM == nil {
		return nil, errors.New("VideoRAM must be non-nil")
	}
	if def.Tiles == nil {
		return nil, errors.New("Tiles must be non-nil")
	}
	if def.Alphamap == nil {
		return nil, errors.New("Alphamap must be non-nil")
	}
	return &Compositor{
		canvas:   def.Canvas,
		videoRAM: def.VideoRAM,
		tiles:    def.Tiles,
		alphamap: def.Alphamap,
		debug:    def.Debug,
	}, nil
}

// Pen returns the palette index for a character pixel in the given color.
func Pen(color, pixel uint8) uint8 {
	return palette.StaticBase + kGranularity*(color%kColors) + pixel
}

// CompositeScanline writes palette indexes for scanline y into out (which
// should be canvas.Width long). The displayed polygon row is copied first
// then any non-zero character pixels are drawn over it.
func (c *Compositor) CompositeScanline(y int, out []uint8) {
	c.lines++
	row := c.canvas.Scanline(c.canvas.DisplayTarget(), y)
	n := copy(out, row)
	for i := n; i < len(out); i++ {
		out[i] = 0x00
	}
	if y < 0 || y >= Rows*TileSize {
		return
	}

	bank := c.alphamap.Input() >> kShiftBank
	cellRow := y / TileSize
	line := y % TileSize
	for col := 0; col < Columns; col++ {
		cell := c.videoRAM.Read(uint16(cellRow*Columns + col))
		code := cell & kMASK_CODE
		color := ((cell >> kShiftColor) & kMASK_COLOR) | bank
		for x := 0; x < TileSize; x++ {
			dx := col*TileSize + x
			if dx >= len(out) {
				return
			}
			if p := c.tiles.TilePixel(code, x, line); p != 0 {
				out[dx] = Pen(color, p)
				c.chars++
			}
		}
	}
}

// Debug returns the composite counters if debugging was enabled.
func (c *Compositor) Debug() string {
	if c.debug {
		return fmt.Sprintf("composited lines: %d char pixels: %d alphamap: %.2X\n", c.lines, c.chars, c.alphamap.Input())
	}
	return ""
}
