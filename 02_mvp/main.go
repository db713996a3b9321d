package main

import (
	"bytes"
	"embed"
	"encoding/binary"
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/vkngwrapper/core/core1_0"
	"github.com/vkngwrapper/vulkan-demos/internal/config"
	"github.com/vkngwrapper/vulkan-demos/internal/logger"
	"github.com/vkngwrapper/vulkan-demos/internal/mesh"
	"github.com/vkngwrapper/vulkan-demos/internal/shader"
	"github.com/vkngwrapper/vulkan-demos/internal/transform"
	"github.com/vkngwrapper/vulkan-demos/internal/vkapp"
)

//go:embed images meshes
var fileSystem embed.FS

const (
	ModelPath    = "meshes/quad.obj"
	MaterialPath = "meshes/quad.mtl"
	TexturePath  = "images/image.png"
)

// PushConstants is read by the vertex stage.
type PushConstants struct {
	MVP mgl32.Mat4
}

func getVertexBindingDescription() []core1_0.VertexInputBindingDescription {
	v := mesh.Vertex{}
	return []core1_0.VertexInputBindingDescription{
		{
			Binding:   0,
			Stride:    int(unsafe.Sizeof(v)),
			InputRate: core1_0.RateVertex,
		},
	}
}

func getVertexAttributeDescriptions() []core1_0.VertexInputAttributeDescription {
	v := mesh.Vertex{}
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
			Format:   core1_0.FormatR32G32SignedFloat,
			Offset:   int(unsafe.Offsetof(v.TexCoord)),
		},
	}
}

type QuadRenderer struct {
	indexCount   int
	vertexBuffer *vkapp.Buffer
	indexBuffer  *vkapp.Buffer

	texture        *vkapp.Texture
	textureBinding *vkapp.TextureBinding

	pipeline *vkapp.Pipeline
}

func (r *QuadRenderer) Init(app *vkapp.App) error {
	err := r.loadModel(app)
	if err != nil {
		return err
	}

	return r.loadTexture(app)
}

func (r *QuadRenderer) loadModel(app *vkapp.App) error {
	objData, err := fileSystem.ReadFile(ModelPath)
	if err != nil {
		return err
	}

	mtlData, err := fileSystem.ReadFile(MaterialPath)
	if err != nil {
		return err
	}

	quad, err := mesh.Load(bytes.NewBuffer(objData), bytes.NewBuffer(mtlData))
	if err != nil {
		return errors.Wrapf(err, "failed to load %s", ModelPath)
	}

	r.vertexBuffer, err = app.CreateDeviceBuffer(quad.Vertices, core1_0.BufferUsageVertexBuffer)
	if err != nil {
		return errors.Wrap(err, "failed to create vertex buffer")
	}

	r.indexBuffer, err = app.CreateDeviceBuffer(quad.Indices, core1_0.BufferUsageIndexBuffer)
	if err != nil {
		return errors.Wrap(err, "failed to create index buffer")
	}
	r.indexCount = len(quad.Indices)

	app.Logger().Debug("model loaded",
		slog.String("path", ModelPath),
		slog.Int("vertices", len(quad.Vertices)),
		slog.Int("indices", len(quad.Indices)))

	return nil
}

func (r *QuadRenderer) loadTexture(app *vkapp.App) error {
	imageBytes, err := fileSystem.ReadFile(TexturePath)
	if err != nil {
		return err
	}

	decodedImage, err := png.Decode(bytes.NewBuffer(imageBytes))
	if err != nil {
		return errors.Wrapf(err, "failed to decode %s", TexturePath)
	}

	r.texture, err = app.CreateTexture(decodedImage, core1_0.FormatR8G8B8A8SRGB)
	if err != nil {
		return errors.Wrap(err, "failed to create texture")
	}

	r.textureBinding, err = app.CreateTextureBinding(r.texture)
	if err != nil {
		return errors.Wrap(err, "failed to create texture descriptor set")
	}

	return nil
}

func (r *QuadRenderer) CreateRenderPass(app *vkapp.App, format core1_0.Format) (core1_0.RenderPass, error) {
	return app.SingleColorRenderPass(format, 1)
}

func (r *QuadRenderer) CreateSwapchainResources(app *vkapp.App, renderPass core1_0.RenderPass, extent core1_0.Extent2D) error {
	var err error
	r.pipeline, err = app.CreateGraphicsPipeline(vkapp.PipelineConfig{
		Shader:           shader.MVP,
		VertexBindings:   getVertexBindingDescription(),
		VertexAttributes: getVertexAttributeDescriptions(),
		SetLayouts:       []core1_0.DescriptorSetLayout{r.textureBinding.Layout},
		PushConstants: []core1_0.PushConstantRange{
			{
				StageFlags: core1_0.StageVertex,
				Offset:     0,
				Size:       binary.Size(PushConstants{}),
			},
		},
		Blend:      true,
		RenderPass: renderPass,
		Subpass:    0,
	})
	return err
}

func (r *QuadRenderer) DestroySwapchainResources() {
	r.pipeline.Destroy()
	r.pipeline = nil
}

func (r *QuadRenderer) Record(frame vkapp.Frame) error {
	buffer := frame.CommandBuffer

	buffer.CmdBindPipeline(core1_0.PipelineBindPointGraphics, r.pipeline.Pipeline)
	buffer.CmdBindVertexBuffers([]core1_0.Buffer{r.vertexBuffer.Buffer}, []int{0})
	buffer.CmdBindIndexBuffer(r.indexBuffer.Buffer, 0, core1_0.IndexTypeUInt16)
	buffer.CmdBindDescriptorSets(core1_0.PipelineBindPointGraphics, r.pipeline.Layout, []core1_0.DescriptorSet{
		r.textureBinding.Set,
	}, nil)

	// The projection follows the current extent so the quad keeps its size
	// in pixels across resizes.
	mvp := transform.OrthoMVP(float32(frame.Extent.Width), float32(frame.Extent.Height), transform.DemoView, transform.DemoModel)
	err := vkapp.PushConstants(buffer, r.pipeline.Layout, core1_0.StageVertex, PushConstants{MVP: mvp})
	if err != nil {
		return err
	}

	buffer.CmdDrawIndexed(r.indexCount, 1, 0, 0, 0)
	return nil
}

func (r *QuadRenderer) Destroy() {
	r.textureBinding.Destroy()
	r.textureBinding = nil

	r.texture.Destroy()
	r.texture = nil

	r.indexBuffer.Destroy()
	r.indexBuffer = nil

	r.vertexBuffer.Destroy()
	r.vertexBuffer = nil
}

func main() {
	cfg, err := config.Parse(os.Args[0], os.Args[1:], "MVP")
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(2)
	}
	logger.Init(cfg.Log.Level, cfg.Log.Format)

	app := vkapp.New(cfg, &QuadRenderer{}, vkapp.Options{Anisotropy: true})
	err = app.Run()
	if err != nil {
		slog.Error("mvp failed", slog.String("error", fmt.Sprintf("%+v", err)))
		os.Exit(1)
	}
}
