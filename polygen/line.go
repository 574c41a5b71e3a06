package polygen

import "github.com/jmchacon/irobot/canvas"

// drawVectors draws a vector list starting at addr. Slope is in X units per
// scanline so the ending X comes from the pixel Y span (inclusive).
func (c *Chip) drawVectors(s *canvas.Surface, addr int) {
	for addr < int(kLIST_LIMIT) {
		ey := c.word(addr)
		if ey == kEND {
			return
		}
		endY := toPixel(int32(ey))
		syc := c.word(addr + 1)
		col := uint8(syc & kMASK_COLOR)
		startY := toPixel(int32(syc))
		slope := int32(int16(c.word(addr + 2)))
		sx := int32(c.word(addr + 3))
		ex := sx + slope*int32(endY-startY+1)
		drawLine(s, toPixel(sx), startY, toPixel(ex), endY, col)
		addr += 4
	}
}

// drawLine steps from x1,y1 to x2,y2 one pixel per step along the major
// axis (X on ties). Both end points are drawn.
func drawLine(s *canvas.Surface, x1, y1, x2, y2 int, col uint8) {
	dx := abs(x1 - x2)
	dy := abs(y1 - y2)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}

	if dx >= dy {
		cx := dx / 2
		for {
			s.WritePixel(x1, y1, col)
			if x1 == x2 {
				return
			}
			x1 += sx
			cx -= dy
			if cx < 0 {
				y1 += sy
				cx += dx
			}
		}
	}

	cy := dy / 2
	for {
		s.WritePixel(x1, y1, col)
		if y1 == y2 {
			return
		}
		y1 += sy
		cy -= dx
		if cy < 0 {
			x1 += sx
			cy += dy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
