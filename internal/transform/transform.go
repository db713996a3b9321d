// Package transform builds the matrices the demos push to their vertex stages.
package transform

import "github.com/go-gl/mathgl/mgl32"

// Offsets used by the MVP demo: the camera sits 100 pixels right, the model 200 pixels left.
var (
	DemoView  = mgl32.Vec3{100, 0, 0}
	DemoModel = mgl32.Vec3{-200, 0, 0}
)

// Ortho maps pixel coordinates (origin at the bottom left) to clip space.
func Ortho(width, height float32) mgl32.Mat4 {
	return mgl32.Ortho(0, width, 0, height, -1, 1)
}

// OrthoMVP returns projection * view * model for a 2D scene measured in pixels,
// where view and model are pure translations.
func OrthoMVP(width, height float32, view, model mgl32.Vec3) mgl32.Mat4 {
	viewMatrix := mgl32.Translate3D(view.X(), view.Y(), view.Z())
	modelMatrix := mgl32.Translate3D(model.X(), model.Y(), model.Z())

	return Ortho(width, height).Mul4(viewMatrix).Mul4(modelMatrix)
}

// PixelsToNDC converts a horizontal pixel offset to a clip space offset for a
// framebuffer of the given width.
func PixelsToNDC(pixels float32, width float32) float32 {
	if width <= 0 {
		return 0
	}
	return 2 * pixels / width
}
