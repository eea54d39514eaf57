package touch

import "image"

// mapPoint converts raw controller coordinates to panel coordinates:
// optional axis swap, optional X and Y inversion, then a clamp into
// [0,Width) x [0,Height).
func (o *Opts) mapPoint(x, y int) image.Point {
	if o.SwapAxes {
		x, y = y, x
	}
	if o.InvertX {
		x = o.Width - 1 - x
	}
	if o.InvertY {
		y = o.Height - 1 - y
	}
	if x < 0 {
		x = 0
	} else if x >= o.Width {
		x = o.Width - 1
	}
	if y < 0 {
		y = 0
	} else if y >= o.Height {
		y = o.Height - 1
	}
	return image.Point{X: x, Y: y}
}
