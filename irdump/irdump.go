// irdump takes memory dumps from an I, Robot board
// and renders one polygon generator pass
// (plus the alpha overlay) into a PNG.
//
// The command RAM dump is raw big endian words as
// the 6809 sees them. Only the first 4k (2k words)
// is used. The PROM, character ROM and video RAM
// are raw bytes.
//
// If no video RAM is given the alpha layer is blank.
package main

import (
	"flag"
	"image"
	"image/png"
	"io/ioutil"
	"log"
	"os"

	"github.com/jmchacon/irobot/irobot"
	"github.com/jmchacon/irobot/memory"
	"github.com/jmchacon/irobot/overlay"
	"github.com/jmchacon/irobot/polygen"
	"golang.org/x/image/draw"
)

var (
	comram   = flag.String("comram", "", "Path to the command RAM dump")
	prom     = flag.String("prom", "", "Path to the 32 byte color PROM")
	charROM  = flag.String("char_rom", "", "Path to the 1k alpha character ROM")
	videoRAM = flag.String("video_ram", "", "Optional path to a 1k video RAM dump")
	colorRAM = flag.String("color_ram", "", "Optional path to a 128 byte color RAM dump to replay as palette writes")
	bufsel   = flag.Bool("bufsel", false, "Buffer select line during the pass")
	alphamap = flag.Int("alphamap", 0x00, "Alphamap latch value")
	scale    = flag.Float64("scale", 2.0, "The amount to rescale the output PNG")
	out      = flag.String("out", "irobot.png", "Path to write the PNG")
	debug    = flag.Bool("debug", false, "If true will log chip state after rendering")
)

type swtch struct {
	b bool
}

func (s *swtch) Input() bool {
	return s.b
}

type latch struct {
	v uint8
}

func (l *latch) Input() uint8 {
	return l.v
}

func mustRead(fn string) []byte {
	b, err := ioutil.ReadFile(fn)
	if err != nil {
		log.Fatalf("Can't open %s - %v", fn, err)
	}
	return b
}

func main() {
	flag.Parse()
	if *comram == "" || *prom == "" || *charROM == "" {
		log.Fatalf("Invalid command: %s --comram=<file> --prom=<file> --char_rom=<file> [--video_ram=<file>]", os.Args[0])
	}
	if *alphamap < 0 || *alphamap > 255 {
		log.Fatal("--alphamap out of range. Must be between 0-255")
	}
	if *scale <= 0 {
		log.Fatal("--scale must be positive")
	}

	b := mustRead(*comram)
	// Anything past the generator's window can't be seen so don't bother keeping it.
	if max := polygen.Words * 2; len(b) > max {
		log.Printf("Command RAM dump is %d bytes, only using the first %d", len(b), max)
		b = b[:max]
	}
	cmd, err := memory.WordRAMFromBytes(b)
	if err != nil {
		log.Fatalf("Can't load command RAM: %v", err)
	}

	vram, err := memory.NewRAM(overlay.VideoRAMSize)
	if err != nil {
		log.Fatalf("Can't allocate video RAM: %v", err)
	}
	if *videoRAM != "" {
		v := mustRead(*videoRAM)
		if len(v) != overlay.VideoRAMSize {
			log.Fatalf("Video RAM must be %d bytes, got %d", overlay.VideoRAMSize, len(v))
		}
		for i, d := range v {
			vram.Write(uint16(i), d)
		}
	}

	sel := &swtch{*bufsel}
	v, err := irobot.Init(&irobot.VideoDef{
		CommandRAM: cmd,
		VideoRAM:   vram,
		ColorPROM:  mustRead(*prom),
		CharROM:    mustRead(*charROM),
		Bufsel:     sel,
		Alphamap:   &latch{uint8(*alphamap)},
		Debug:      *debug,
	})
	if err != nil {
		log.Fatalf("Can't init video: %v", err)
	}
	if *colorRAM != "" {
		for i, d := range mustRead(*colorRAM) {
			v.PaletteWrite(uint16(i), d)
		}
	}

	v.TriggerRun()
	// Flip so the buffer just drawn is the one displayed.
	sel.b = !sel.b
	if *debug {
		log.Printf("Rendered:\n%s", v.Debug())
	}

	var img image.Image = v.Frame()
	if *scale != 1.0 {
		r := img.Bounds()
		d := image.NewNRGBA(image.Rect(0, 0, int(float64(r.Max.X)**scale), int(float64(r.Max.Y)**scale)))
		draw.NearestNeighbor.Scale(d, d.Bounds(), img, r, draw.Over, nil)
		img = d
	}

	o, err := os.Create(*out)
	if err != nil {
		log.Fatalf("Can't create %q: %v", *out, err)
	}
	if err := png.Encode(o, img); err != nil {
		o.Close()
		log.Fatalf("Can't write %q: %v", *out, err)
	}
	if err := o.Close(); err != nil {
		log.Fatalf("Can't close %q: %v", *out, err)
	}
}
