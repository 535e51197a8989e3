package gui

import (
	"image"
	"image/color"
	"math"
)

// vertex is a projected point: screen position plus view depth
type vertex struct {
	x, y, z float64
}

// frame is a software render target with a depth buffer
type frame struct {
	img   *image.RGBA
	depth []float64
}

func newFrame(width, height int) *frame {
	width = max(width, 1)
	height = max(height, 1)
	return &frame{
		img:   image.NewRGBA(image.Rect(0, 0, width, height)),
		depth: make([]float64, width*height),
	}
}

func (f *frame) width() int  { return f.img.Rect.Dx() }
func (f *frame) height() int { return f.img.Rect.Dy() }

// clear fills the image with col and resets the depth buffer
func (f *frame) clear(col color.RGBA) {
	pix := f.img.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = col.R, col.G, col.B, col.A
	}
	for i := range f.depth {
		f.depth[i] = math.Inf(1)
	}
}

// onTop is a depth in front of anything the camera can see
const onTop = -1.0

// plot sets a pixel unless something closer was drawn there
func (f *frame) plot(x, y int, z float64, col color.RGBA) {
	if x < 0 || y < 0 || x >= f.width() || y >= f.height() {
		return
	}
	idx := y*f.width() + x
	if z <= f.depth[idx] {
		f.depth[idx] = z
		f.img.SetRGBA(x, y, col)
	}
}

// fillTriangle scan-converts a triangle with interpolated depth
func (f *frame) fillTriangle(a, b, c vertex, col color.RGBA) {
	// Sort by y, top to bottom
	if a.y > b.y {
		a, b = b, a
	}
	if b.y > c.y {
		b, c = c, b
	}
	if a.y > b.y {
		a, b = b, a
	}

	yStart := int(math.Max(0, math.Ceil(a.y)))
	yEnd := int(math.Min(float64(f.height()-1), math.Floor(c.y)))

	for y := yStart; y <= yEnd; y++ {
		fy := float64(y)

		// The long edge a-c spans every scanline
		x1, z1 := edgeAt(a, c, fy)
		var x2, z2 float64
		if fy < b.y {
			x2, z2 = edgeAt(a, b, fy)
		} else {
			x2, z2 = edgeAt(b, c, fy)
		}
		if x1 > x2 {
			x1, x2 = x2, x1
			z1, z2 = z2, z1
		}

		xFrom := int(math.Max(0, math.Ceil(x1)))
		xTo := int(math.Min(float64(f.width()-1), math.Floor(x2)))
		for x := xFrom; x <= xTo; x++ {
			t := 0.0
			if x2 != x1 {
				t = (float64(x) - x1) / (x2 - x1)
			}
			f.plot(x, y, z1+t*(z2-z1), col)
		}
	}
}

// edgeAt interpolates x and depth along p-q at scanline y
func edgeAt(p, q vertex, y float64) (x, z float64) {
	if q.y == p.y {
		return p.x, p.z
	}
	t := (y - p.y) / (q.y - p.y)
	return p.x + t*(q.x-p.x), p.z + t*(q.z-p.z)
}

// line draws a depth-tested line using Bresenham's algorithm. bias pulls the
// line towards the camera so edges win over the faces they belong to.
func (f *frame) line(a, b vertex, bias float64, col color.RGBA) {
	x1, y1 := int(math.Round(a.x)), int(math.Round(a.y))
	x2, y2 := int(math.Round(b.x)), int(math.Round(b.y))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	steps := max(dx, dy)

	err := dx - dy
	for i := 0; ; i++ {
		t := 0.0
		if steps > 0 {
			t = float64(i) / float64(steps)
		}
		f.plot(x1, y1, a.z+t*(b.z-a.z)-bias, col)

		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// disc draws a filled circle in front of the model
func (f *frame) disc(cx, cy, r float64, col color.RGBA) {
	x0 := int(math.Floor(cx - r))
	x1 := int(math.Ceil(cx + r))
	y0 := int(math.Floor(cy - r))
	y1 := int(math.Ceil(cy + r))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx, dy := float64(x)-cx, float64(y)-cy
			if dx*dx+dy*dy <= r*r {
				f.plot(x, y, onTop, col)
			}
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
