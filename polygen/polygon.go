package polygen

import "github.com/jmchacon/irobot/canvas"

// side is one edge of a polygon as it walks down its slope list.
type side struct {
	pos   int   // Next slope list word to read.
	x     int32 // Current X in 9.7 fixed point.
	slope int32 // X change per scanline for the current segment.
	end   int   // Last scanline (pixel space) of the current segment.
}

// next loads the following segment. It returns false on the end of list marker.
func (c *Chip) next(e *side) bool {
	slope := c.word(e.pos)
	end := c.word(e.pos + 1)
	if slope == kEND && end == kEND {
		return false
	}
	e.slope = int32(int16(slope))
	e.end = toPixel(int32(end))
	e.pos += 2
	return true
}

// drawPolygon scan fills the polygon at addr. Both sides advance together one
// scanline at a time and the span between them is filled. The span leaves
// out its leftmost pixel which is how the hardware behaves. A side that
// starts a new segment doesn't also apply a slope on that scanline.
func (c *Chip) drawPolygon(s *canvas.Surface, addr int) {
	a := &side{
		pos: addr + 4,
		x:   int32(c.word(addr + 1)),
	}
	b := &side{
		pos: int(c.word(addr) & kMASK_ADDR),
		x:   int32(c.word(addr + 2)),
	}
	yc := c.word(addr + 3)
	col := uint8(yc & kMASK_COLOR)
	y := toPixel(int32(yc))

	if !c.next(a) || !c.next(b) {
		return
	}

	clip := s.Clip()
	for {
		if y >= clip.Min.Y && y < clip.Max.Y {
			x1 := toPixel(a.x)
			x2 := toPixel(b.x)
			if x1 > x2 {
				x1, x2 = x2, x1
			}
			if x1 < clip.Min.X {
				x1 = clip.Min.X
			}
			if x2 >= clip.Max.X {
				x2 = clip.Max.X - 1
			}
			if x1 < x2 {
				s.FillRun(x1+1, x2, y, col)
			}
		}
		y++

		if y > a.end {
			if !c.next(a) {
				return
			}
		} else {
			a.x += a.slope
		}

		if y > b.end {
			if !c.next(b) {
				return
			}
		} else {
			b.x += b.slope
		}
	}
}
