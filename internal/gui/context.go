// Package gui wraps Dear ImGui for the overlay demo: the context, the panel
// it shows and the conversion of draw data into something a Vulkan renderer
// can upload.
package gui

import (
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/inkyblackness/imgui-go/v4"
)

type Context struct {
	context *imgui.Context
	io      imgui.IO
}

// NewContext creates the ImGui context. The ini file is disabled so nothing
// is written next to the binary.
func NewContext() *Context {
	context := imgui.CreateContext(nil)
	io := imgui.CurrentIO()
	io.SetIniFilename("")

	return &Context{
		context: context,
		io:      io,
	}
}

func (c *Context) IO() imgui.IO {
	return c.io
}

// FontAtlas builds the font texture and returns a copy of its RGBA pixels.
func (c *Context) FontAtlas() (width, height int, pixels []byte, err error) {
	atlas := c.io.Fonts().TextureDataRGBA32()
	if atlas == nil || atlas.Width <= 0 || atlas.Height <= 0 || atlas.Pixels == nil {
		return 0, 0, nil, errors.New("imgui produced an empty font atlas")
	}

	size := atlas.Width * atlas.Height * 4
	pixels = make([]byte, size)
	copy(pixels, unsafe.Slice((*byte)(atlas.Pixels), size))

	return atlas.Width, atlas.Height, pixels, nil
}

// SetFontTexture records the id the renderer gave the font atlas.
func (c *Context) SetFontTexture(id imgui.TextureID) {
	c.io.Fonts().SetTextureID(id)
}

// NewFrame starts a frame for a display of the given size in pixels.
func (c *Context) NewFrame(width, height float32, delta float32) {
	c.io.SetDisplaySize(imgui.Vec2{X: width, Y: height})
	if delta > 0 {
		c.io.SetDeltaTime(delta)
	}
	imgui.NewFrame()
}

// Render ends the frame and returns its draw data.
func (c *Context) Render() imgui.DrawData {
	imgui.Render()
	return imgui.RenderedDrawData()
}

func (c *Context) WantCaptureMouse() bool {
	return c.io.WantCaptureMouse()
}

func (c *Context) WantCaptureKeyboard() bool {
	return c.io.WantCaptureKeyboard()
}

func (c *Context) Destroy() {
	if c.context != nil {
		c.context.Destroy()
		c.context = nil
	}
}
