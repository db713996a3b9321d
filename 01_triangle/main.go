package main

import (
	"encoding/binary"
	"fmt"
	"log/slog"
	"os"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/vkngwrapper/core/core1_0"
	"github.com/vkngwrapper/vulkan-demos/internal/config"
	"github.com/vkngwrapper/vulkan-demos/internal/logger"
	"github.com/vkngwrapper/vulkan-demos/internal/shader"
	"github.com/vkngwrapper/vulkan-demos/internal/vkapp"
)

type Vertex struct {
	Position mgl32.Vec2
	Color    mgl32.Vec3
}

// PushConstants is read by the fragment stage.
type PushConstants struct {
	Time float32
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
			Format:   core1_0.FormatR32G32B32SignedFloat,
			Offset:   int(unsafe.Offsetof(v.Color)),
		},
	}
}

var vertices = []Vertex{
	{Position: mgl32.Vec2{0, -0.5}, Color: mgl32.Vec3{0, 1, 0}},
	{Position: mgl32.Vec2{0.5, 0.5}, Color: mgl32.Vec3{0, 0, 1}},
	{Position: mgl32.Vec2{-0.5, 0.5}, Color: mgl32.Vec3{1, 0, 0}},
}

type TriangleRenderer struct {
	app          *vkapp.App
	vertexBuffer *vkapp.Buffer
	pipeline     *vkapp.Pipeline
}

func (r *TriangleRenderer) Init(app *vkapp.App) error {
	r.app = app

	var err error
	r.vertexBuffer, err = app.CreateDeviceBuffer(vertices, core1_0.BufferUsageVertexBuffer)
	if err != nil {
		return errors.Wrap(err, "failed to create vertex buffer")
	}

	return nil
}

func (r *TriangleRenderer) CreateRenderPass(app *vkapp.App, format core1_0.Format) (core1_0.RenderPass, error) {
	return app.SingleColorRenderPass(format, 1)
}

func (r *TriangleRenderer) CreateSwapchainResources(app *vkapp.App, renderPass core1_0.RenderPass, extent core1_0.Extent2D) error {
	var err error
	r.pipeline, err = app.CreateGraphicsPipeline(vkapp.PipelineConfig{
		Shader:           shader.Triangle,
		VertexBindings:   getVertexBindingDescription(),
		VertexAttributes: getVertexAttributeDescriptions(),
		PushConstants: []core1_0.PushConstantRange{
			{
				StageFlags: core1_0.StageFragment,
				Offset:     0,
				Size:       binary.Size(PushConstants{}),
			},
		},
		RenderPass: renderPass,
		Subpass:    0,
	})
	return err
}

func (r *TriangleRenderer) DestroySwapchainResources() {
	r.pipeline.Destroy()
	r.pipeline = nil
}

func (r *TriangleRenderer) Record(frame vkapp.Frame) error {
	buffer := frame.CommandBuffer

	buffer.CmdBindPipeline(core1_0.PipelineBindPointGraphics, r.pipeline.Pipeline)
	buffer.CmdBindVertexBuffers([]core1_0.Buffer{r.vertexBuffer.Buffer}, []int{0})

	err := vkapp.PushConstants(buffer, r.pipeline.Layout, core1_0.StageFragment, PushConstants{Time: frame.Elapsed})
	if err != nil {
		return err
	}

	buffer.CmdDraw(len(vertices), 1, 0, 0)
	return nil
}

func (r *TriangleRenderer) Destroy() {
	r.vertexBuffer.Destroy()
	r.vertexBuffer = nil
}

func main() {
	cfg, err := config.Parse(os.Args[0], os.Args[1:], "Triangle")
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(2)
	}
	logger.Init(cfg.Log.Level, cfg.Log.Format)

	app := vkapp.New(cfg, &TriangleRenderer{}, vkapp.Options{})
	err = app.Run()
	if err != nil {
		slog.Error("triangle failed", slog.String("error", fmt.Sprintf("%+v", err)))
		os.Exit(1)
	}
}
