package polygen

import "github.com/jmchacon/irobot/canvas"

// drawPoints plots a point list starting at addr.
func (c *Chip) drawPoints(s *canvas.Surface, addr int) {
	for addr < int(kLIST_LIMIT) {
		x := c.word(addr)
		if x == kEND {
			return
		}
		yc := c.word(addr + 1)
		s.WritePixel(toPixel(int32(x)), toPixel(int32(yc)), uint8(yc&kMASK_COLOR))
		addr += 2
	}
}
