// Package vkrenderer draws ImGui output with Vulkan, inside a subpass of a
// render pass owned by the program.
package vkrenderer

import (
	"encoding/binary"
	"image"

	"github.com/cockroachdb/errors"
	"github.com/inkyblackness/imgui-go/v4"
	"github.com/vkngwrapper/core/core1_0"
	"github.com/vkngwrapper/vulkan-demos/internal/gui"
	"github.com/vkngwrapper/vulkan-demos/internal/shader"
	"github.com/vkngwrapper/vulkan-demos/internal/vkapp"
)

// fontTextureID is the only texture the GUI uses.
const fontTextureID imgui.TextureID = 1

type Renderer struct {
	app     *vkapp.App
	context *gui.Context

	font        *vkapp.Texture
	fontBinding *vkapp.TextureBinding

	// One pair per frame in flight so a frame never overwrites data the
	// GPU may still be reading.
	vertexBuffers []*vkapp.HostBuffer
	indexBuffers  []*vkapp.HostBuffer

	pipeline *vkapp.Pipeline
}

// New uploads the font atlas and prepares the per-frame buffers. It needs a
// live device, so call it from a vkapp.Renderer's Init.
func New(app *vkapp.App, context *gui.Context) (*Renderer, error) {
	r := &Renderer{app: app, context: context}

	width, height, pixels, err := context.FontAtlas()
	if err != nil {
		return nil, err
	}

	atlas := &image.RGBA{
		Pix:    pixels,
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}

	r.font, err = app.CreateTexture(atlas, core1_0.FormatR8G8B8A8UnsignedNormalized)
	if err != nil {
		return nil, errors.Wrap(err, "failed to upload font atlas")
	}

	r.fontBinding, err = app.CreateTextureBinding(r.font)
	if err != nil {
		r.Destroy()
		return nil, errors.Wrap(err, "failed to bind font atlas")
	}
	context.SetFontTexture(fontTextureID)

	for i := 0; i < app.FramesInFlight(); i++ {
		r.vertexBuffers = append(r.vertexBuffers, app.NewHostBuffer(core1_0.BufferUsageVertexBuffer))
		r.indexBuffers = append(r.indexBuffers, app.NewHostBuffer(core1_0.BufferUsageIndexBuffer))
	}

	return r, nil
}

// CreatePipeline builds the GUI pipeline for the given subpass. It is
// rebuilt with every render pass.
func (r *Renderer) CreatePipeline(renderPass core1_0.RenderPass, subpass int) error {
	vertexSize, positionOffset, uvOffset, colorOffset := imgui.VertexBufferLayout()

	pipeline, err := r.app.CreateGraphicsPipeline(vkapp.PipelineConfig{
		Shader: shader.GUI,
		VertexBindings: []core1_0.VertexInputBindingDescription{
			{
				Binding:   0,
				Stride:    vertexSize,
				InputRate: core1_0.RateVertex,
			},
		},
		VertexAttributes: []core1_0.VertexInputAttributeDescription{
			{
				Binding:  0,
				Location: 0,
				Format:   core1_0.FormatR32G32SignedFloat,
				Offset:   positionOffset,
			},
			{
				Binding:  0,
				Location: 1,
				Format:   core1_0.FormatR32G32SignedFloat,
				Offset:   uvOffset,
			},
			{
				Binding:  0,
				Location: 2,
				Format:   core1_0.FormatR8G8B8A8UnsignedNormalized,
				Offset:   colorOffset,
			},
		},
		SetLayouts: []core1_0.DescriptorSetLayout{r.fontBinding.Layout},
		PushConstants: []core1_0.PushConstantRange{
			{
				StageFlags: core1_0.StageVertex,
				Offset:     0,
				Size:       binary.Size(gui.PushConstants{}),
			},
		},
		Blend:      true,
		RenderPass: renderPass,
		Subpass:    subpass,
	})
	if err != nil {
		return errors.Wrap(err, "failed to create gui pipeline")
	}

	r.pipeline = pipeline
	return nil
}

func (r *Renderer) DestroyPipeline() {
	r.pipeline.Destroy()
	r.pipeline = nil
}

// Record draws data into the frame's command buffer, which must be inside
// the subpass the pipeline was created for. The scissor is left covering
// the whole framebuffer.
func (r *Renderer) Record(frame vkapp.Frame, data imgui.DrawData) error {
	batch := gui.Collect(data)
	if batch.Empty() {
		return nil
	}

	vertexBuffer := r.vertexBuffers[frame.Index]
	indexBuffer := r.indexBuffers[frame.Index]

	err := vertexBuffer.Upload(batch.Vertices)
	if err != nil {
		return errors.Wrap(err, "failed to upload gui vertices")
	}

	err = indexBuffer.Upload(batch.Indices)
	if err != nil {
		return errors.Wrap(err, "failed to upload gui indices")
	}

	cmd := frame.CommandBuffer
	cmd.CmdBindPipeline(core1_0.PipelineBindPointGraphics, r.pipeline.Pipeline)
	cmd.CmdBindVertexBuffers([]core1_0.Buffer{vertexBuffer.Buffer()}, []int{0})
	cmd.CmdBindIndexBuffer(indexBuffer.Buffer(), 0, gui.IndexType())
	cmd.CmdBindDescriptorSets(core1_0.PipelineBindPointGraphics, r.pipeline.Layout, []core1_0.DescriptorSet{
		r.fontBinding.Set,
	}, nil)

	projection := gui.Projection(float32(frame.Extent.Width), float32(frame.Extent.Height))
	err = vkapp.PushConstants(cmd, r.pipeline.Layout, core1_0.StageVertex, projection)
	if err != nil {
		return err
	}

	for _, draw := range batch.Commands {
		scissor, ok := gui.Scissor(draw.ClipRect, frame.Extent.Width, frame.Extent.Height)
		if !ok {
			continue
		}

		cmd.CmdSetScissor([]core1_0.Rect2D{scissor})
		cmd.CmdDrawIndexed(draw.ElementCount, 1, uint32(draw.FirstIndex), draw.VertexOffset, 0)
	}

	cmd.CmdSetScissor([]core1_0.Rect2D{vkapp.FullScissor(frame.Extent)})
	return nil
}

func (r *Renderer) Destroy() {
	r.DestroyPipeline()

	for _, buffer := range r.vertexBuffers {
		buffer.Destroy()
	}
	r.vertexBuffers = nil

	for _, buffer := range r.indexBuffers {
		buffer.Destroy()
	}
	r.indexBuffers = nil

	if r.fontBinding != nil {
		r.fontBinding.Destroy()
		r.fontBinding = nil
	}

	if r.font != nil {
		r.font.Destroy()
		r.font = nil
	}
}
