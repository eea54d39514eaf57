package touch

import (
	"image"
	"testing"
)

func TestMapIdentity(t *testing.T) {
	o := &Opts{Width: 800, Height: 480}
	for _, p := range []image.Point{
		{0, 0}, {1, 2}, {400, 240}, {799, 479},
	} {
		if got := o.mapPoint(p.X, p.Y); got != p {
			t.Errorf("mapPoint(%v) = %v, want unchanged", p, got)
		}
	}
}

func TestMapInvert(t *testing.T) {
	o := &Opts{Width: 800, Height: 480, InvertX: true}
	if got := o.mapPoint(10, 20); got != image.Pt(789, 20) {
		t.Errorf("mapPoint(10,20) = %v, want (789,20)", got)
	}
	o = &Opts{Width: 800, Height: 480, InvertY: true}
	if got := o.mapPoint(10, 20); got != image.Pt(10, 459) {
		t.Errorf("mapPoint(10,20) = %v, want (10,459)", got)
	}
}

func TestMapSwap(t *testing.T) {
	o := &Opts{Width: 800, Height: 480, SwapAxes: true}
	if got := o.mapPoint(100, 200); got != image.Pt(200, 100) {
		t.Errorf("mapPoint(100,200) = %v, want (200,100)", got)
	}
}

func TestMapClamp(t *testing.T) {
	o := &Opts{Width: 800, Height: 480}
	tests := []struct {
		x, y int
		want image.Point
	}{
		{-10, -1, image.Pt(0, 0)},
		{800, 480, image.Pt(799, 479)},
		{4000, 4000, image.Pt(799, 479)},
		{-1, 479, image.Pt(0, 479)},
	}
	for _, tt := range tests {
		got := o.mapPoint(tt.x, tt.y)
		if got != tt.want {
			t.Errorf("mapPoint(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
		if got.X < 0 || got.X >= o.Width || got.Y < 0 || got.Y >= o.Height {
			t.Errorf("mapPoint(%d,%d) = %v, out of bounds", tt.x, tt.y, got)
		}
	}
}

func TestMapInvertedClamp(t *testing.T) {
	// Inversion of out-of-range input must still land in bounds.
	o := &Opts{Width: 800, Height: 480, InvertX: true, InvertY: true}
	if got := o.mapPoint(4000, -5); got != image.Pt(0, 479) {
		t.Errorf("mapPoint(4000,-5) = %v, want (0,479)", got)
	}
}
