package overlay

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-test/deep"
	"github.com/jmchacon/irobot/canvas"
	"github.com/jmchacon/irobot/memory"
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

// testROM has char 1 with a half row on line 0 and the outer pixels on
// line 1, and char 2 with only high nibbles set (which never show).
func testROM() []uint8 {
	rom := make([]uint8, CharROMSize)
	rom[1*kBytesPerChar+0] = 0x0F
	rom[1*kBytesPerChar+1] = 0x00
	rom[1*kBytesPerChar+2] = 0x08
	rom[1*kBytesPerChar+3] = 0x01
	for i := 0; i < kBytesPerChar; i++ {
		rom[2*kBytesPerChar+i] = 0xF0
	}
	return rom
}

func TestCharSet(t *testing.T) {
	if _, err := NewCharSet(make([]uint8, 10)); err == nil {
		t.Error("NewCharSet with short ROM didn't return an error")
	}
	cs, err := NewCharSet(testROM())
	if err != nil {
		t.Fatalf("Can't decode ROM: %v", err)
	}
	var got [2][TileSize]uint8
	for y := 0; y < 2; y++ {
		for x := 0; x < TileSize; x++ {
			got[y][x] = cs.TilePixel(1, x, y)
		}
	}
	want := [2][TileSize]uint8{
		{1, 1, 1, 1, 0, 0, 0, 0},
		{1, 0, 0, 0, 0, 0, 0, 1},
	}
	if diff := deep.Equal(got, want); diff != nil {
		t.Errorf("Char 1 decoded wrong: %v", diff)
	}
	for y := 0; y < TileSize; y++ {
		for x := 0; x < TileSize; x++ {
			if p := cs.TilePixel(2, x, y); p != 0 {
				t.Fatalf("Char 2 has pixel at %d,%d from a high nibble", x, y)
			}
		}
	}
	// Codes wrap at 64 and out of tile coordinates are transparent.
	if got, want := cs.TilePixel(1+Chars, 0, 0), uint8(1); got != want {
		t.Errorf("Code didn't wrap. Got %d and want %d", got, want)
	}
	if got := cs.TilePixel(1, 8, 0); got != 0 {
		t.Errorf("Out of tile pixel not transparent: %d", got)
	}
}

func TestPen(t *testing.T) {
	tests := []struct {
		color, pixel uint8
		want         uint8
	}{
		{0, 1, 65},
		{2, 1, 69},
		{3, 0, 70},
		{15, 1, 95},
		{0x12, 1, 69}, // Only 16 color codes exist.
	}
	for _, test := range tests {
		if got := Pen(test.color, test.pixel); got != test.want {
			t.Errorf("Pen(%d, %d) = %d, want %d", test.color, test.pixel, got, test.want)
		}
	}
}

func setup(t *testing.T, alphamap uint8) (*Compositor, *canvas.Canvas, *memory.RAM) {
	t.Helper()
	cv, err := canvas.Init(&canvas.ChipDef{Bufsel: &swtch{}, Height: 16})
	if err != nil {
		t.Fatalf("Can't init canvas: %v", err)
	}
	vram, err := memory.NewRAM(VideoRAMSize)
	if err != nil {
		t.Fatalf("Can't init video RAM: %v", err)
	}
	cs, err := NewCharSet(testROM())
	if err != nil {
		t.Fatalf("Can't decode ROM: %v", err)
	}
	c, err := Init(&ChipDef{
		Canvas:   cv,
		VideoRAM: vram,
		Tiles:    cs,
		Alphamap: &latch{alphamap},
		Debug:    true,
	})
	if err != nil {
		t.Fatalf("Can't init compositor: %v", err)
	}
	return c, cv, vram
}

func TestInitErrors(t *testing.T) {
	_, cv, vram := setup(t, 0)
	cs, _ := NewCharSet(testROM())
	tests := []struct {
		name string
		def  *ChipDef
	}{
		{"nil def", nil},
		{"nil canvas", &ChipDef{VideoRAM: vram, Tiles: cs, Alphamap: &latch{}}},
		{"nil video RAM", &ChipDef{Canvas: cv, Tiles: cs, Alphamap: &latch{}}},
		{"nil tiles", &ChipDef{Canvas: cv, VideoRAM: vram, Alphamap: &latch{}}},
		{"nil alphamap", &ChipDef{Canvas: cv, VideoRAM: vram, Tiles: cs}},
	}
	for _, test := range tests {
		if c, err := Init(test.def); err == nil {
			t.Errorf("%s: didn't get error. Got %s", test.name, spew.Sdump(c))
		}
	}
}

func TestComposite(t *testing.T) {
	tests := []struct {
		name     string
		alphamap uint8
		pen      uint8
	}{
		{
			name:     "bank 0",
			alphamap: 0x00,
			pen:      69,
		},
		{
			name:     "alphamap 1 wraps out of the 16 colors",
			alphamap: 0x80,
			pen:      69,
		},
		{
			name:     "low latch bits pick a bank",
			alphamap: 0x20,
			pen:      77,
		},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			c, cv, vram := setup(t, test.alphamap)
			// Displayed buffer (bufsel low displays BUFFER_2) is solid 5.
			s := cv.Surface(cv.DisplayTarget())
			for y := 0; y < 16; y++ {
				s.FillRun(0, canvas.Width-1, y, 5)
			}
			// Char 1 in color 2 at column 1, blank char 0 elsewhere.
			vram.Write(1, 0x81)
			// Char 2 never draws.
			vram.Write(Columns+3, 0x02)

			want0 := make([]uint8, canvas.Width)
			want1 := make([]uint8, canvas.Width)
			want8 := make([]uint8, canvas.Width)
			for i := range want0 {
				want0[i], want1[i], want8[i] = 5, 5, 5
			}
			for x := 8; x < 12; x++ {
				want0[x] = test.pen
			}
			want1[8] = test.pen
			want1[15] = test.pen

			out := make([]uint8, canvas.Width)
			c.CompositeScanline(0, out)
			if diff := deep.Equal(out, want0); diff != nil {
				t.Errorf("%s: line 0 differs: %v", test.name, diff)
			}
			c.CompositeScanline(1, out)
			if diff := deep.Equal(out, want1); diff != nil {
				t.Errorf("%s: line 1 differs: %v", test.name, diff)
			}
			c.CompositeScanline(8, out)
			if diff := deep.Equal(out, want8); diff != nil {
				t.Errorf("%s: line 8 differs: %v", test.name, diff)
			}
			if c.Debug() == "" {
				t.Errorf("%s: Debug enabled but no output", test.name)
			}
		})
	}
}

func TestCompositeUsesDisplayBuffer(t *testing.T) {
	c, cv, _ := setup(t, 0)
	cv.Surface(cv.DrawTarget()).FillRun(0, canvas.Width-1, 2, 9)
	out := make([]uint8, canvas.Width)
	for i := range out {
		out[i] = 0xAA
	}
	c.CompositeScanline(2, out)
	if diff := deep.Equal(out, make([]uint8, canvas.Width)); diff != nil {
		t.Errorf("Draw buffer leaked into output: %v", diff)
	}
	// Past the bottom of the canvas the row is blank.
	out[0] = 0xAA
	c.CompositeScanline(100, out)
	if got := out[0]; got != 0 {
		t.Errorf("Row past the canvas not blank: %.2X", got)
	}
}
