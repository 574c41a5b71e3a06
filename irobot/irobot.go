// Package irobot pulls together the I, Robot video board. The actual chips
// are implemented in other packages and most of the logic here is simply
// wiring them to the memories and lines the CPU side owns.
package irobot

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/jmchacon/irobot/canvas"
	"github.com/jmchacon/irobot/io"
	"github.com/jmchacon/irobot/memory"
	"github.com/jmchacon/irobot/overlay"
	"github.com/jmchacon/irobot/palette"
	"github.com/jmchacon/irobot/polygen"
)

// Video is a complete video board: polygon generator, bitmap pair, palette
// and alpha overlay.
type Video struct {
	canvas  *canvas.Canvas
	palette *palette.Palette
	polygen *polygen.Chip
	overlay *overlay.Compositor
	debug   bool
	line    []uint8 // Scratch row for Frame.
}

// VideoDef defines the pieces needed to build a Video.
type VideoDef struct {
	// CommandRAM is the non-optional word memory the polygon generator reads.
	CommandRAM memory.WordBank
	// VideoRAM is the non-optional 1k alpha character grid.
	VideoRAM memory.Bank
	// ColorPROM is the non-optional 32 byte alpha color PROM.
	ColorPROM []uint8
	// CharROM is the 1k alpha character ROM. Ignored if Tiles is set.
	CharROM []uint8
	// Tiles optionally replaces the decoded CharROM as the alpha pixel source.
	Tiles overlay.TileSource
	// Bufsel is the non-optional buffer select line.
	// False == draw into BUFFER_1 and display BUFFER_2.
	Bufsel io.PortIn1
	// Alphamap is the non-optional alphamap latch.
	Alphamap io.Port8
	// Height is the scanlines per buffer. Zero means canvas.DefaultHeight.
	Height int
	// Debug if true will emit output from Debug() calls.
	Debug bool
}

// Init returns a Video with both buffers clear and the static colors loaded.
func Init(def *VideoDef) (*Video, error) {
	if def == nil {
		return nil, errors.New("VideoDef must be non-nil")
	}
	tiles := def.Tiles
	if tiles == nil {
		cs, err := overlay.NewCharSet(def.CharROM)
		if err != nil {
			return nil, fmt.Errorf("can't decode character ROM: %v", err)
		}
		tiles = cs
	}

	c, err := canvas.Init(&canvas.ChipDef{
		Height: def.Height,
		Bufsel: def.Bufsel,
		Debug:  def.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("can't initialize canvas: %v", err)
	}
	p, err := palette.Init(&palette.ChipDef{
		ColorPROM: def.ColorPROM,
		Debug:     def.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("can't initialize palette: %v", err)
	}
	pg, err := polygen.Init(&polygen.ChipDef{
		Memory: def.CommandRAM,
		Canvas: c,
		Debug:  def.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("can't initialize polygon generator: %v", err)
	}
	o, err := overlay.Init(&overlay.ChipDef{
		Canvas:   c,
		VideoRAM: def.VideoRAM,
		Tiles:    tiles,
		Alphamap: def.Alphamap,
		Debug:    def.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("can't initialize overlay: %v", err)
	}
	return &Video{
		canvas:  c,
		palette: p,
		polygen: pg,
		overlay: o,
		debug:   def.Debug,
		line:    make([]uint8, canvas.Width),
	}, nil
}

// Canvas returns the bitmap pair so callers can set the clip rectangle or
// dump a buffer directly.
func (v *Video) Canvas() *canvas.Canvas {
	return v.canvas
}

// TriggerRun executes one full polygen pass into the current draw buffer.
func (v *Video) TriggerRun() {
	v.polygen.Run()
}

// Stats returns the polygen statistics from the last TriggerRun.
func (v *Video) Stats() polygen.Stats {
	return v.polygen.Stats()
}

// ClearBuffer zero fills one of the bitmaps.
func (v *Video) ClearBuffer(which canvas.Buffer) {
	v.canvas.Clear(which)
}

// RenderedScanline returns row y of the displayed buffer (nil if out of range).
// The slice aliases the buffer.
func (v *Video) RenderedScanline(y int) []uint8 {
	return v.canvas.Scanline(v.canvas.DisplayTarget(), y)
}

// PaletteColor returns the RGB triple for palette index i.
func (v *Video) PaletteColor(i int) (r, g, b uint8) {
	return v.palette.Color(i)
}

// PaletteWrite handles a CPU write to color RAM.
func (v *Video) PaletteWrite(offset uint16, data uint8) {
	v.palette.Write(offset, data)
}

// CompositeScanline fills out with the final palette indexes for row y.
func (v *Video) CompositeScanline(y int, out []uint8) {
	v.overlay.CompositeScanline(y, out)
}

// Frame composites every visible scanline and resolves it through the
// palette. Canvases shorter than canvas.VisibleHeight produce a shorter frame.
func (v *Video) Frame() *image.NRGBA {
	h := canvas.VisibleHeight
	if v.canvas.Height() < h {
		h = v.canvas.Height()
	}
	img := image.NewNRGBA(image.Rect(0, 0, canvas.Width, h))
	var colors [palette.Entries]color.NRGBA
	for i := range colors {
		colors[i] = v.palette.NRGBA(i)
	}
	for y := 0; y < h; y++ {
		v.overlay.CompositeScanline(y, v.line)
		for x, p := range v.line {
			img.SetNRGBA(x, y, colors[int(p)%palette.Entries])
		}
	}
	return img
}

// Debug returns the state of every chip on the board if debugging was enabled.
func (v *Video) Debug() string {
	if !v.debug {
		return ""
	}
	var b strings.Builder
	b.WriteString(v.polygen.Debug())
	b.WriteString(v.canvas.Debug())
	b.WriteString(v.palette.Debug())
	b.WriteString(v.overlay.Debug())
	return b.String()
}
