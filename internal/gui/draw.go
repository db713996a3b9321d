package gui

import (
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/inkyblackness/imgui-go/v4"
	"github.com/vkngwrapper/core/core1_0"
)

// DrawCommand is one indexed draw. Offsets count elements, not bytes, and are
// relative to the start of the merged buffers.
type DrawCommand struct {
	ElementCount int
	FirstIndex   int
	VertexOffset int
	ClipRect     imgui.Vec4
}

// Batch holds the vertex and index data of every command list of a frame
// merged into one buffer each.
type Batch struct {
	Vertices []byte
	Indices  []byte
	Commands []DrawCommand
}

func (b *Batch) Empty() bool {
	return len(b.Commands) == 0 || len(b.Vertices) == 0 || len(b.Indices) == 0
}

// Collect copies the draw data out of ImGui's memory.
func Collect(data imgui.DrawData) *Batch {
	batch := &Batch{}
	if !data.Valid() {
		return batch
	}

	vertexSize, _, _, _ := imgui.VertexBufferLayout()
	indexSize := imgui.IndexBufferLayout()

	for _, list := range data.CommandLists() {
		vertexData, vertexDataSize := list.VertexBuffer()
		indexData, indexDataSize := list.IndexBuffer()

		vertexBase := len(batch.Vertices) / vertexSize
		indexBase := len(batch.Indices) / indexSize

		if vertexDataSize > 0 {
			batch.Vertices = append(batch.Vertices, unsafe.Slice((*byte)(vertexData), vertexDataSize)...)
		}
		if indexDataSize > 0 {
			batch.Indices = append(batch.Indices, unsafe.Slice((*byte)(indexData), indexDataSize)...)
		}

		offset := 0
		for _, cmd := range list.Commands() {
			if cmd.HasUserCallback() {
				cmd.CallUserCallback(list)
			} else {
				batch.Commands = append(batch.Commands, DrawCommand{
					ElementCount: cmd.ElementCount(),
					FirstIndex:   indexBase + offset,
					VertexOffset: vertexBase,
					ClipRect:     cmd.ClipRect(),
				})
			}
			offset += cmd.ElementCount()
		}
	}

	return batch
}

// PushConstants is the block the GUI vertex stage reads: pixel positions are
// multiplied by Scale and shifted by Translate to land in clip space.
type PushConstants struct {
	Scale     mgl32.Vec2
	Translate mgl32.Vec2
}

func Projection(displayWidth, displayHeight float32) PushConstants {
	return PushConstants{
		Scale:     mgl32.Vec2{2 / displayWidth, 2 / displayHeight},
		Translate: mgl32.Vec2{-1, -1},
	}
}

// Scissor converts a clip rectangle to a scissor inside a framebuffer of
// the given size. ok is false when nothing of the rectangle is visible.
func Scissor(clip imgui.Vec4, width, height int) (rect core1_0.Rect2D, ok bool) {
	minX := clampInt(int(math.Floor(float64(clip.X))), 0, width)
	minY := clampInt(int(math.Floor(float64(clip.Y))), 0, height)
	maxX := clampInt(int(math.Ceil(float64(clip.Z))), 0, width)
	maxY := clampInt(int(math.Ceil(float64(clip.W))), 0, height)

	if maxX <= minX || maxY <= minY {
		return core1_0.Rect2D{}, false
	}

	return core1_0.Rect2D{
		Offset: core1_0.Offset2D{X: minX, Y: minY},
		Extent: core1_0.Extent2D{Width: maxX - minX, Height: maxY - minY},
	}, true
}

// IndexType matches the index width ImGui was compiled with.
func IndexType() core1_0.IndexType {
	if imgui.IndexBufferLayout() == 4 {
		return core1_0.IndexTypeUInt32
	}
	return core1_0.IndexTypeUInt16
}

func clampInt(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
