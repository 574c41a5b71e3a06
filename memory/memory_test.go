package memory

import (
	"testing"

	"github.com/go-test/deep"
)

func TestRAM(t *testing.T) {
	r, err := NewRAM(0x400)
	if err != nil {
		t.Fatalf("Can't init RAM: %v", err)
	}
	for i := uint16(0x0000); i < 0x400; i++ {
		r.Write(i, uint8(^i))
		if got, want := r.Read(i), uint8(^i); got != want {
			t.Errorf("Bad Write/Read cycle for RAM: Wrote %.2X to %.4X but got %.2X on read", want, i, got)
		}
	}
	// Past the end reads as an undriven bus and writes vanish.
	r.Write(0x400, 0x12)
	if got, want := r.Read(0x400), uint8(0xFF); got != want {
		t.Errorf("Bad read past end of RAM. Got %.2X and want %.2X", got, want)
	}
	r.PowerOn()
	for i := uint16(0x0000); i < 0x400; i++ {
		if got := r.Read(i); got != 0x00 {
			t.Fatalf("RAM not cleared at %.4X: %.2X", i, got)
		}
	}
}

func TestROM(t *testing.T) {
	img := []uint8{0x01, 0x02, 0x03}
	r, err := NewROM(img)
	if err != nil {
		t.Fatalf("Can't init ROM: %v", err)
	}
	// ROM must own its copy.
	img[0] = 0xAA
	r.Write(1, 0xBB)
	r.PowerOn()
	got := []uint8{r.Read(0), r.Read(1), r.Read(2)}
	if diff := deep.Equal(got, []uint8{0x01, 0x02, 0x03}); diff != nil {
		t.Errorf("ROM contents changed: %v", diff)
	}
}

func TestBadSizes(t *testing.T) {
	for _, size := range []int{0, -1, 0x10001} {
		if _, err := NewRAM(size); err == nil {
			t.Errorf("NewRAM(%d) didn't return an error", size)
		}
		if _, err := NewWordRAM(size); err == nil {
			t.Errorf("NewWordRAM(%d) didn't return an error", size)
		}
	}
	if _, err := NewROM(nil); err == nil {
		t.Error("NewROM(nil) didn't return an error")
	}
	if _, err := WordRAMFromBytes([]byte{0x01, 0x02, 0x03}); err == nil {
		t.Error("WordRAMFromBytes with odd length didn't return an error")
	}
}

func TestWordRAM(t *testing.T) {
	w, err := WordRAMFromBytes([]byte{0x12, 0x34, 0xFF, 0xFF, 0x80, 0x01})
	if err != nil {
		t.Fatalf("Can't init word RAM: %v", err)
	}
	if got, want := w.Len(), 3; got != want {
		t.Fatalf("Bad length. Got %d and want %d", got, want)
	}
	got := []uint16{w.ReadWord(0), w.ReadWord(1), w.ReadWord(2), w.ReadWord(3)}
	want := []uint16{0x1234, 0xFFFF, 0x8001, 0xFFFF}
	if diff := deep.Equal(got, want); diff != nil {
		t.Errorf("Words decoded wrong: %v", diff)
	}
	w.Load(1, 0xAAAA, 0xBBBB, 0xCCCC)
	got = []uint16{w.ReadWord(0), w.ReadWord(1), w.ReadWord(2), w.ReadWord(3)}
	want = []uint16{0x1234, 0xAAAA, 0xBBBB, 0xFFFF}
	if diff := deep.Equal(got, want); diff != nil {
		t.Errorf("Load wrote wrong words: %v", diff)
	}
	w.PowerOn()
	if got := w.ReadWord(1); got != 0x0000 {
		t.Errorf("PowerOn didn't clear word RAM: %.4X", got)
	}
}
