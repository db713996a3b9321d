package gui

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/inkyblackness/imgui-go/v4"
)

func TestPanelFrame(t *testing.T) {
	ctx := NewContext()
	defer ctx.Destroy()

	width, height, pixels, err := ctx.FontAtlas()
	if err != nil {
		t.Fatalf("FontAtlas: %v", err)
	}
	if len(pixels) != width*height*4 {
		t.Fatalf("atlas has %d bytes for %dx%d", len(pixels), width, height)
	}

	panel := NewPanel()

	// An auto-sized window is measured on its first frame and only drawn
	// from the second one on.
	ctx.NewFrame(800, 600, 1.0/60.0)
	panel.Build()
	ctx.Render()

	ctx.NewFrame(800, 600, 1.0/60.0)
	panel.Build()
	batch := Collect(ctx.Render())

	if batch.Empty() {
		t.Fatal("an open panel should produce draw commands")
	}

	vertexSize, _, _, _ := imgui.VertexBufferLayout()
	indexSize := imgui.IndexBufferLayout()
	if len(batch.Vertices)%vertexSize != 0 {
		t.Errorf("vertex bytes %d are not a multiple of %d", len(batch.Vertices), vertexSize)
	}

	indexCount := len(batch.Indices) / indexSize
	for i, cmd := range batch.Commands {
		if cmd.ElementCount%3 != 0 {
			t.Errorf("command %d draws %d indices, not whole triangles", i, cmd.ElementCount)
		}
		if cmd.FirstIndex+cmd.ElementCount > indexCount {
			t.Errorf("command %d reads past the index buffer", i)
		}
	}

	if panel.Offset != 0 {
		t.Errorf("offset = %d without input, want 0", panel.Offset)
	}
}

func TestClosedPanelDrawsNothing(t *testing.T) {
	ctx := NewContext()
	defer ctx.Destroy()

	if _, _, _, err := ctx.FontAtlas(); err != nil {
		t.Fatal(err)
	}

	panel := &Panel{Open: false, Offset: 120}
	var batch *Batch
	for frame := 0; frame < 2; frame++ {
		ctx.NewFrame(640, 480, 1.0/60.0)
		panel.Build()
		batch = Collect(ctx.Render())
	}

	if !batch.Empty() {
		t.Errorf("closed panel produced %d commands", len(batch.Commands))
	}
	if panel.Offset != 120 {
		t.Errorf("closed panel changed its offset to %d", panel.Offset)
	}
}

func TestClampOffset(t *testing.T) {
	tests := []struct {
		in, want int32
	}{
		{-500, SliderMin},
		{-200, -200},
		{0, 0},
		{199, 199},
		{201, SliderMax},
	}

	for _, test := range tests {
		if got := clampOffset(test.in); got != test.want {
			t.Errorf("clampOffset(%d) = %d, want %d", test.in, got, test.want)
		}
	}
}

func TestProjection(t *testing.T) {
	p := Projection(800, 400)

	topLeft := mgl32.Vec2{0, 0}
	bottomRight := mgl32.Vec2{800, 400}

	apply := func(v mgl32.Vec2) mgl32.Vec2 {
		return mgl32.Vec2{v.X()*p.Scale.X() + p.Translate.X(), v.Y()*p.Scale.Y() + p.Translate.Y()}
	}

	if got := apply(topLeft); got != (mgl32.Vec2{-1, -1}) {
		t.Errorf("top left maps to %v", got)
	}
	if got := apply(bottomRight); !got.ApproxEqual(mgl32.Vec2{1, 1}) {
		t.Errorf("bottom right maps to %v", got)
	}
}

func TestScissor(t *testing.T) {
	tests := []struct {
		name string
		clip imgui.Vec4
		ok   bool
		x, y int
		w, h int
	}{
		{"inside", imgui.Vec4{X: 10, Y: 20, Z: 110, W: 220}, true, 10, 20, 100, 200},
		{"clamped", imgui.Vec4{X: -50, Y: -10, Z: 900, W: 700}, true, 0, 0, 800, 600},
		{"fractional", imgui.Vec4{X: 10.5, Y: 0.2, Z: 20.5, W: 9.8}, true, 10, 0, 11, 10},
		{"empty", imgui.Vec4{X: 50, Y: 50, Z: 50, W: 80}, false, 0, 0, 0, 0},
		{"offscreen", imgui.Vec4{X: 900, Y: 10, Z: 1000, W: 40}, false, 0, 0, 0, 0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			rect, ok := Scissor(test.clip, 800, 600)
			if ok != test.ok {
				t.Fatalf("ok = %v, want %v", ok, test.ok)
			}
			if !ok {
				return
			}
			if rect.Offset.X != test.x || rect.Offset.Y != test.y || rect.Extent.Width != test.w || rect.Extent.Height != test.h {
				t.Errorf("got %+v", rect)
			}
		})
	}
}
