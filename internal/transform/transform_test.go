package transform

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func TestOrthoCorners(t *testing.T) {
	proj := Ortho(800, 600)

	tests := []struct {
		pixel mgl32.Vec4
		ndc   mgl32.Vec2
	}{
		{mgl32.Vec4{0, 0, 0, 1}, mgl32.Vec2{-1, -1}},
		{mgl32.Vec4{800, 600, 0, 1}, mgl32.Vec2{1, 1}},
		{mgl32.Vec4{400, 300, 0, 1}, mgl32.Vec2{0, 0}},
	}

	for _, test := range tests {
		got := proj.Mul4x1(test.pixel)
		if !near(got.X(), test.ndc.X()) || !near(got.Y(), test.ndc.Y()) {
			t.Errorf("%v -> %v, want %v", test.pixel, got, test.ndc)
		}
	}
}

func TestOrthoMVPAppliesTranslations(t *testing.T) {
	mvp := OrthoMVP(800, 600, DemoView, DemoModel)

	// (500, 300) moves to (400, 300) after +100 and -200: the screen centre.
	got := mvp.Mul4x1(mgl32.Vec4{500, 300, 0, 1})
	if !near(got.X(), 0) || !near(got.Y(), 0) {
		t.Errorf("got %v, want the origin", got)
	}
	if !near(got.W(), 1) {
		t.Errorf("w = %v, want 1", got.W())
	}
}

func TestOrthoMVPIdentityOffsets(t *testing.T) {
	mvp := OrthoMVP(200, 100, mgl32.Vec3{}, mgl32.Vec3{})
	if !mvp.ApproxEqual(Ortho(200, 100)) {
		t.Errorf("zero offsets should leave the projection unchanged")
	}
}

func TestPixelsToNDC(t *testing.T) {
	if got := PixelsToNDC(200, 800); !near(got, 0.5) {
		t.Errorf("PixelsToNDC(200, 800) = %v, want 0.5", got)
	}
	if got := PixelsToNDC(-100, 400); !near(got, -0.5) {
		t.Errorf("PixelsToNDC(-100, 400) = %v, want -0.5", got)
	}
	if got := PixelsToNDC(50, 0); got != 0 {
		t.Errorf("zero width should give 0, got %v", got)
	}
}
