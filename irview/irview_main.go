// irview renders an I, Robot board from memory dumps
// and shows it in an SDL window until closed.
//
// Space flips the buffer select line so both bitmaps can be looked at.
// R reruns the polygon generator into whichever one is being drawn.
package main

import (
	"flag"
	"io/ioutil"
	"log"
	"sync"

	"github.com/jmchacon/irobot/canvas"
	"github.com/jmchacon/irobot/irobot"
	"github.com/jmchacon/irobot/memory"
	"github.com/jmchacon/irobot/overlay"
	"github.com/veandco/go-sdl2/sdl"
	"golang.org/x/image/draw"
)

var (
	debug    = flag.Bool("debug", false, "If true will emit full polygen/canvas/palette/overlay debugging after every pass")
	comram   = flag.String("comram", "", "Path to the command RAM dump")
	prom     = flag.String("prom", "", "Path to the 32 byte color PROM")
	charROM  = flag.String("char_rom", "", "Path to the 1k alpha character ROM")
	videoRAM = flag.String("video_ram", "", "Optional path to a 1k video RAM dump")
	alphamap = flag.Int("alphamap", 0x00, "Alphamap latch value")
	scale    = flag.Int("scale", 2, "Window scale factor")
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

var window *sdl.Window
var surface *sdl.Surface

func load(fn string) []byte {
	b, err := ioutil.ReadFile(fn)
	if err != nil {
		log.Fatalf("Can't load %s: %v", fn, err)
	}
	return b
}

func main() {
	flag.Parse()
	if *scale < 1 {
		log.Fatal("--scale must be at least 1")
	}
	sdl.Main(func() {
		var wg sync.WaitGroup
		wg.Add(1)
		sdl.Do(func() {
			if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
				log.Fatalf("Can't init SDL: %v", err)
			}

			var err error
			window, err = sdl.CreateWindow("I, Robot", sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED, int32(canvas.Width**scale), int32(canvas.VisibleHeight**scale), sdl.WINDOW_SHOWN)
			if err != nil {
				log.Fatalf("Can't create window: %v", err)
			}
			surface, err = window.GetSurface()
			if err != nil {
				log.Fatalf("Can't get window surface: %v", err)
			}
			wg.Done()
		})

		cmd, err := memory.WordRAMFromBytes(load(*comram))
		if err != nil {
			log.Fatalf("Can't load command RAM: %v", err)
		}
		vram, err := memory.NewRAM(overlay.VideoRAMSize)
		if err != nil {
			log.Fatalf("Can't allocate video RAM: %v", err)
		}
		if *videoRAM != "" {
			for i, d := range load(*videoRAM) {
				vram.Write(uint16(i), d)
			}
		}
		wg.Wait()
		defer func() {
			sdl.Do(func() {
				window.Destroy()
				sdl.Quit()
			})
		}()

		sel := &swtch{}
		v, err := irobot.Init(&irobot.VideoDef{
			CommandRAM: cmd,
			VideoRAM:   vram,
			ColorPROM:  load(*prom),
			CharROM:    load(*charROM),
			Bufsel:     sel,
			Alphamap:   &latch{uint8(*alphamap)},
			Debug:      *debug,
		})
		if err != nil {
			log.Fatalf("Can't init video: %v", err)
		}

		run := func() {
			v.Canvas().ClearDrawTarget()
			v.TriggerRun()
			if *debug {
				log.Printf("%s", v.Debug())
			}
		}
		run()
		sel.b = !sel.b

		quit := false
		dirty := true
		for !quit {
			if dirty {
				f := v.Frame()
				sdl.Do(func() {
					draw.NearestNeighbor.Scale(surface, surface.Bounds(), f, f.Bounds(), draw.Src, nil)
					window.UpdateSurface()
				})
				dirty = false
			}
			sdl.Do(func() {
				for e := sdl.PollEvent(); e != nil; e = sdl.PollEvent() {
					switch ev := e.(type) {
					case *sdl.QuitEvent:
						quit = true
					case *sdl.KeyboardEvent:
						if ev.Type != sdl.KEYDOWN {
							continue
						}
						switch ev.Keysym.Sym {
						case sdl.K_SPACE:
							sel.b = !sel.b
							dirty = true
						case sdl.K_r:
							run()
							dirty = true
						case sdl.K_ESCAPE:
							quit = true
						}
					}
				}
				sdl.Delay(16)
			})
		}
	})
}
