package main

import (
	"encoding/binary"
	"fmt"
	"log/slog"
	"os"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/vkngwrapper/core/core1_0"
	"github.com/vkngwrapper/vulkan-demos/internal/config"
	"github.com/vkngwrapper/vulkan-demos/internal/gui"
	"github.com/vkngwrapper/vulkan-demos/internal/gui/sdlplatform"
	"github.com/vkngwrapper/vulkan-demos/internal/gui/vkrenderer"
	"github.com/vkngwrapper/vulkan-demos/internal/logger"
	"github.com/vkngwrapper/vulkan-demos/internal/shader"
	"github.com/vkngwrapper/vulkan-demos/internal/transform"
	"github.com/vkngwrapper/vulkan-demos/internal/vkapp"
)

const (
	sceneSubpass = 0
	guiSubpass   = 1
)

type Vertex struct {
	Position mgl32.Vec2
	Color    mgl32.Vec4
}

// PushConstants moves the scene triangle, in normalized device coordinates.
type PushConstants struct {
	Offset mgl32.Vec2
}

func getVertexBindingDescription() []core1_0.VertexInputBindingDescription {
	v := Vertex{}
	return []core1_0.VertexInputBindingDescription{
		{
			Binding:   0,
			Stride:    int(unsafe.Sizeof(v)),
			InputRate: core1_0.RateVertex,
		},
	}
}

func getVertexAttributeDescriptions() []core1_0.VertexInputAttributeDescription {
	v := Vertex{}
	return []core1_0.VertexInputAttributeDescription{
		{
			Binding:  0,
			Location: 0,
			Format:   core1_0.FormatR32G32SignedFloat,
			Offset:   int(unsafe.Offsetof(v.Position)),
		},
		{
			Binding:  0,
			Location: 1,
			Format:   core1_0.FormatR32G32B32A32SignedFloat,
			Offset:   int(unsafe.Offsetof(v.Color)),
		},
	}
}

var vertices = []Vertex{
	{Position: mgl32.Vec2{-0.5, -0.25}, Color: mgl32.Vec4{1, 0, 0, 1}},
	{Position: mgl32.Vec2{0, 0.5}, Color: mgl32.Vec4{0, 1, 0, 1}},
	{Position: mgl32.Vec2{0.25, -0.1}, Color: mgl32.Vec4{0, 0, 1, 1}},
}

// OverlayRenderer draws the scene in the first subpass and the GUI on top
// of it in the second.
type OverlayRenderer struct {
	vertexBuffer  *vkapp.Buffer
	scenePipeline *vkapp.Pipeline

	context  *gui.Context
	platform *sdlplatform.Platform
	panel    *gui.Panel
	gui      *vkrenderer.Renderer
}

func (r *OverlayRenderer) Init(app *vkapp.App) error {
	var err error
	r.vertexBuffer, err = app.CreateDeviceBuffer(vertices, core1_0.BufferUsageVertexBuffer)
	if err != nil {
		return errors.Wrap(err, "failed to create vertex buffer")
	}

	r.context = gui.NewContext()
	r.platform = sdlplatform.New(r.context.IO(), app.Window())
	r.panel = gui.NewPanel()

	r.gui, err = vkrenderer.New(app, r.context)
	if err != nil {
		return errors.Wrap(err, "failed to create gui renderer")
	}

	return nil
}

func (r *OverlayRenderer) HandleEvent(event sdl.Event) bool {
	if r.platform == nil {
		return false
	}
	return r.platform.ProcessEvent(event)
}

func (r *OverlayRenderer) CreateRenderPass(app *vkapp.App, format core1_0.Format) (core1_0.RenderPass, error) {
	return app.SingleColorRenderPass(format, 2)
}

func (r *OverlayRenderer) CreateSwapchainResources(app *vkapp.App, renderPass core1_0.RenderPass, extent core1_0.Extent2D) error {
	var err error
	r.scenePipeline, err = app.CreateGraphicsPipeline(vkapp.PipelineConfig{
		Shader:           shader.Scene,
		VertexBindings:   getVertexBindingDescription(),
		VertexAttributes: getVertexAttributeDescriptions(),
		PushConstants: []core1_0.PushConstantRange{
			{
				StageFlags: core1_0.StageVertex,
				Offset:     0,
				Size:       binary.Size(PushConstants{}),
			},
		},
		RenderPass: renderPass,
		Subpass:    sceneSubpass,
	})
	if err != nil {
		return err
	}

	return r.gui.CreatePipeline(renderPass, guiSubpass)
}

func (r *OverlayRenderer) DestroySwapchainResources() {
	r.scenePipeline.Destroy()
	r.scenePipeline = nil

	if r.gui != nil {
		r.gui.DestroyPipeline()
	}
}

func (r *OverlayRenderer) Record(frame vkapp.Frame) error {
	r.platform.NewFrame()
	r.context.NewFrame(float32(frame.Extent.Width), float32(frame.Extent.Height), frame.Delta)
	r.panel.Build()
	drawData := r.context.Render()

	buffer := frame.CommandBuffer
	buffer.CmdBindPipeline(core1_0.PipelineBindPointGraphics, r.scenePipeline.Pipeline)
	buffer.CmdBindVertexBuffers([]core1_0.Buffer{r.vertexBuffer.Buffer}, []int{0})

	offset := transform.PixelsToNDC(float32(r.panel.Offset), float32(frame.Extent.Width))
	err := vkapp.PushConstants(buffer, r.scenePipeline.Layout, core1_0.StageVertex, PushConstants{
		Offset: mgl32.Vec2{offset, 0},
	})
	if err != nil {
		return err
	}
	buffer.CmdDraw(len(vertices), 1, 0, 0)

	buffer.CmdNextSubpass(core1_0.SubpassContentsInline)

	return r.gui.Record(frame, drawData)
}

func (r *OverlayRenderer) Destroy() {
	if r.gui != nil {
		r.gui.Destroy()
		r.gui = nil
	}

	if r.context != nil {
		r.context.Destroy()
		r.context = nil
	}

	r.vertexBuffer.Destroy()
	r.vertexBuffer = nil
}

func main() {
	cfg, err := config.Parse(os.Args[0], os.Args[1:], "GUI Overlay")
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(2)
	}
	logger.Init(cfg.Log.Level, cfg.Log.Format)

	app := vkapp.New(cfg, &OverlayRenderer{}, vkapp.Options{})
	err = app.Run()
	if err != nil {
		slog.Error("gui overlay failed", slog.String("error", fmt.Sprintf("%+v", err)))
		os.Exit(1)
	}
}
