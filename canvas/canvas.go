// Package canvas implements the pair of 8 bit indexed bitmaps the I, Robot
// polygon generator draws into. One is always being drawn while the other is
// being displayed, and which is which is decided by the board's buffer select
// line (owned by the CPU side, never flipped here).
package canvas

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/jmchacon/irobot/io"
)

// Buffer selects one of the two bitmaps.
type Buffer int

const (
	BUFFER_1 Buffer = iota // Draw target when bufsel is low.
	BUFFER_2               // Draw target when bufsel is high.
)

const (
	// Width is fixed by the hardware.
	Width = 256
	// DefaultHeight is the total scanlines of the I, Robot screen.
	DefaultHeight = 262
	// VisibleHeight is the number of scanlines actually shown.
	VisibleHeight = 232

	kMaxHeight = 512
)

// Canvas owns both bitmaps plus the clip rectangle applied to all drawing.
type Canvas struct {
	buffers [2][]uint8      // The two bitmaps, Width*height each.
	height  int             // Scanlines per bitmap.
	clip    image.Rectangle // Half open clip rectangle. Always inside the bitmap.
	bufsel  io.PortIn1      // Buffer select line.
	debug   bool            // If true Debug() emits output.
	clears  [2]int          // Number of times each buffer was cleared.
}

// ChipDef defines a Canvas.
type ChipDef struct {
	// Height is the number of scanlines. Zero means DefaultHeight.
	Height int
	// Bufsel is the non-optional buffer select line. Low draws into BUFFER_1.
	Bufsel io.PortIn1
	// Debug if true will emit output from Debug() calls.
	Debug bool
}

// Init returns a Canvas with both buffers allocated and cleared. The clip
// rectangle starts as the whole bitmap.
func Init(def *ChipDef) (*Canvas, error) {
	if def == nil {
		return nil, errors.New("ChipDef must be non-nil")
	}
	if def.Bufsel == nil {
		return nil, errors.New("Bufsel must be non-nil")
	}
	h := def.Height
	if h == 0 {
		h = DefaultHeight
	}
	if h < 0 || h > kMaxHeight {
		return nil, fmt.Errorf("invalid canvas height %d", def.Height)
	}
	c := &Canvas{
		buffers: [2][]uint8{make([]uint8, Width*h), make([]uint8, Width*h)},
		height:  h,
		clip:    image.Rect(0, 0, Width, h),
		bufsel:  def.Bufsel,
		debug:   def.Debug,
	}
	return c, nil
}

// Height returns the number of scanlines in each buffer.
func (c *Canvas) Height() int {
	return c.height
}

// Bounds returns the full bitmap rectangle.
func (c *Canvas) Bounds() image.Rectangle {
	return image.Rect(0, 0, Width, c.height)
}

// DrawTarget returns the buffer currently being drawn into.
func (c *Canvas) DrawTarget() Buffer {
	if c.bufsel.Input() {
		return BUFFER_2
	}
	return BUFFER_1
}

// DisplayTarget returns the buffer currently being displayed.
func (c *Canvas) DisplayTarget() Buffer {
	if c.bufsel.Input() {
		return BUFFER_1
	}
	return BUFFER_2
}

// Clear zero fills the given buffer. Out of range buffers are ignored.
func (c *Canvas) Clear(which Buffer) {
	if which != BUFFER_1 && which != BUFFER_2 {
		return
	}
	b := c.buffers[which]
	for i := range b {
		b[i] = 0x00
	}
	c.clears[which]++
}

// ClearDrawTarget zero fills the buffer currently being drawn into.
func (c *Canvas) ClearDrawTarget() {
	c.Clear(c.DrawTarget())
}

// SetClip replaces the clip rectangle. It's intersected with the bitmap so
// no write can ever land outside it.
func (c *Canvas) SetClip(r image.Rectangle) {
	c.clip = r.Canon().Intersect(c.Bounds())
}

// Clip returns the current clip rectangle.
func (c *Canvas) Clip() image.Rectangle {
	return c.clip
}

// Surface returns a drawing view over the given buffer using the current clip.
func (c *Canvas) Surface(which Buffer) *Surface {
	return &Surface{pix: c.buffers[which&1], clip: c.clip}
}

// Scanline returns row y of the given buffer. The slice aliases the buffer so
// callers must treat it as read only. Rows outside the bitmap return nil.
func (c *Canvas) Scanline(which Buffer, y int) []uint8 {
	if y < 0 || y >= c.height {
		return nil
	}
	b := c.buffers[which&1]
	return b[y*Width : (y+1)*Width]
}

// Pixel returns the index at x,y of the given buffer or 0 if out of range.
func (c *Canvas) Pixel(which Buffer, x, y int) uint8 {
	if x < 0 || x >= Width || y < 0 || y >= c.height {
		return 0
	}
	return c.buffers[which&1][y*Width+x]
}

// Image returns an image.Paletted sharing storage with the given buffer.
func (c *Canvas) Image(which Buffer, p color.Palette) *image.Paletted {
	return &image.Paletted{
		Pix:     c.buffers[which&1],
		Stride:  Width,
		Rect:    c.Bounds(),
		Palette: p,
	}
}

// Debug returns the buffer and clip state if debugging was enabled.
func (c *Canvas) Debug() string {
	if c.debug {
		return fmt.Sprintf("draw: %d clip: %v clears: %d/%d\n", c.DrawTarget(), c.clip, c.clears[0], c.clears[1])
	}
	return ""
}

// Surface is what the renderers draw through. It never writes outside clip.
type Surface struct {
	pix  []uint8
	clip image.Rectangle
}

// Clip returns the clip rectangle this surface honors.
func (s *Surface) Clip() image.Rectangle {
	return s.clip
}

// WritePixel sets x,y to col. Points outside the clip rectangle are silently dropped.
func (s *Surface) WritePixel(x, y int, col uint8) {
	if x < s.clip.Min.X || x >= s.clip.Max.X || y < s.clip.Min.Y || y >= s.clip.Max.Y {
		return
	}
	s.pix[y*Width+x] = col
}

// FillRun sets x1..x2 inclusive on row y to col after clipping.
func (s *Surface) FillRun(x1, x2, y int, col uint8) {
	if y < s.clip.Min.Y || y >= s.clip.Max.Y {
		return
	}
	if x1 < s.clip.Min.X {
		x1 = s.clip.Min.X
	}
	if x2 >= s.clip.Max.X {
		x2 = s.clip.Max.X - 1
	}
	row := s.pix[y*Width : (y+1)*Width]
	for x := x1; x <= x2; x++ {
		row[x] = col
	}
}
