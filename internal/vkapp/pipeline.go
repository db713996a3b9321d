package vkapp

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/core1_0"
	"github.com/vkngwrapper/extensions/khr_swapchain"
	"github.com/vkngwrapper/vulkan-demos/internal/shader"
	"github.com/vkngwrapper/vulkan-demos/internal/vkutil"
)

// PipelineConfig describes the parts of a graphics pipeline that differ
// between the demos. Everything else is fixed: triangle lists, no culling,
// no depth, dynamic viewport and scissor.
type PipelineConfig struct {
	// Shader names an embedded WGSL source holding both entry points.
	Shader string

	VertexBindings   []core1_0.VertexInputBindingDescription
	VertexAttributes []core1_0.VertexInputAttributeDescription

	SetLayouts    []core1_0.DescriptorSetLayout
	PushConstants []core1_0.PushConstantRange

	// Blend enables straight alpha blending.
	Blend bool

	RenderPass core1_0.RenderPass
	Subpass    int
}

type Pipeline struct {
	Pipeline core1_0.Pipeline
	Layout   core1_0.PipelineLayout
}

func (p *Pipeline) Destroy() {
	if p == nil {
		return
	}

	if p.Pipeline != nil {
		p.Pipeline.Destroy(nil)
		p.Pipeline = nil
	}

	if p.Layout != nil {
		p.Layout.Destroy(nil)
		p.Layout = nil
	}
}

// shaderCode compiles a shader the first time it is asked for. Pipelines are
// rebuilt with every swapchain, the SPIR-V is not.
func (app *App) shaderCode(name string) ([]uint32, error) {
	if app.shaders == nil {
		app.shaders = make(map[string][]uint32)
	}

	if code, ok := app.shaders[name]; ok {
		return code, nil
	}

	code, err := shader.Compile(name)
	if err != nil {
		return nil, err
	}

	app.shaders[name] = code
	return code, nil
}

func (app *App) CreateGraphicsPipeline(config PipelineConfig) (*Pipeline, error) {
	code, err := app.shaderCode(config.Shader)
	if err != nil {
		return nil, err
	}

	shaderModule, _, err := app.device.CreateShaderModule(nil, core1_0.ShaderModuleCreateInfo{
		Code: code,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create shader module %s", config.Shader)
	}
	defer shaderModule.Destroy(nil)

	vertexInput := &core1_0.PipelineVertexInputStateCreateInfo{
		VertexBindingDescriptions:   config.VertexBindings,
		VertexAttributeDescriptions: config.VertexAttributes,
	}

	inputAssembly := &core1_0.PipelineInputAssemblyStateCreateInfo{
		Topology:               core1_0.PrimitiveTopologyTriangleList,
		PrimitiveRestartEnable: false,
	}

	vertStage := core1_0.PipelineShaderStageCreateInfo{
		Stage:  core1_0.StageVertex,
		Module: shaderModule,
		Name:   shader.VertexEntry,
	}

	fragStage := core1_0.PipelineShaderStageCreateInfo{
		Stage:  core1_0.StageFragment,
		Module: shaderModule,
		Name:   shader.FragmentEntry,
	}

	// Counts only; the values are set per frame.
	viewport := &core1_0.PipelineViewportStateCreateInfo{
		Viewports: []core1_0.Viewport{FullViewport(app.swapchainExtent)},
		Scissors:  []core1_0.Rect2D{FullScissor(app.swapchainExtent)},
	}

	dynamicState := &core1_0.PipelineDynamicStateCreateInfo{
		DynamicStates: []core1_0.DynamicState{
			core1_0.DynamicStateViewport,
			core1_0.DynamicStateScissor,
		},
	}

	rasterization := &core1_0.PipelineRasterizationStateCreateInfo{
		DepthClampEnable:        false,
		RasterizerDiscardEnable: false,

		PolygonMode: core1_0.PolygonModeFill,
		CullMode:    core1_0.CullModeFlags(0),
		FrontFace:   core1_0.FrontFaceCounterClockwise,

		DepthBiasEnable: false,

		LineWidth: 1.0,
	}

	multisample := &core1_0.PipelineMultisampleStateCreateInfo{
		SampleShadingEnable:  false,
		RasterizationSamples: core1_0.Samples1,
		MinSampleShading:     1.0,
	}

	colorBlend := &core1_0.PipelineColorBlendStateCreateInfo{
		LogicOpEnabled: false,
		LogicOp:        core1_0.LogicOpCopy,

		BlendConstants: [4]float32{0, 0, 0, 0},
		Attachments: []core1_0.PipelineColorBlendAttachmentState{
			blendAttachment(config.Blend),
		},
	}

	pipelineLayout, _, err := app.device.CreatePipelineLayout(nil, core1_0.PipelineLayoutCreateInfo{
		SetLayouts:         config.SetLayouts,
		PushConstantRanges: config.PushConstants,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create pipeline layout")
	}

	pipelines, _, err := app.device.CreateGraphicsPipelines(nil, nil, []core1_0.GraphicsPipelineCreateInfo{
		{
			Stages: []core1_0.PipelineShaderStageCreateInfo{
				vertStage,
				fragStage,
			},
			VertexInputState:   vertexInput,
			InputAssemblyState: inputAssembly,
			ViewportState:      viewport,
			RasterizationState: rasterization,
			MultisampleState:   multisample,
			ColorBlendState:    colorBlend,
			DynamicState:       dynamicState,
			Layout:             pipelineLayout,
			RenderPass:         config.RenderPass,
			Subpass:            config.Subpass,
			BasePipelineIndex:  -1,
		},
	})
	if err != nil {
		pipelineLayout.Destroy(nil)
		return nil, errors.Wrapf(err, "failed to create graphics pipeline for %s", config.Shader)
	}

	return &Pipeline{Pipeline: pipelines[0], Layout: pipelineLayout}, nil
}

func blendAttachment(blend bool) core1_0.PipelineColorBlendAttachmentState {
	writeMask := core1_0.ColorComponentRed | core1_0.ColorComponentGreen | core1_0.ColorComponentBlue | core1_0.ColorComponentAlpha
	if !blend {
		return core1_0.PipelineColorBlendAttachmentState{
			BlendEnabled:   false,
			ColorWriteMask: writeMask,
		}
	}

	return core1_0.PipelineColorBlendAttachmentState{
		BlendEnabled:        true,
		SrcColorBlendFactor: core1_0.BlendFactorSrcAlpha,
		DstColorBlendFactor: core1_0.BlendFactorOneMinusSrcAlpha,
		ColorBlendOp:        core1_0.BlendOpAdd,
		SrcAlphaBlendFactor: core1_0.BlendFactorOne,
		DstAlphaBlendFactor: core1_0.BlendFactorOneMinusSrcAlpha,
		AlphaBlendOp:        core1_0.BlendOpAdd,
		ColorWriteMask:      writeMask,
	}
}

// SingleColorRenderPass is a render pass with one color attachment that is
// cleared, written by each of the given number of subpasses in turn and
// left ready to present.
func (app *App) SingleColorRenderPass(format core1_0.Format, subpasses int) (core1_0.RenderPass, error) {
	if subpasses < 1 {
		return nil, errors.Newf("render pass needs at least one subpass, got %d", subpasses)
	}

	colorRef := []core1_0.AttachmentReference{
		{
			Attachment: 0,
			Layout:     core1_0.ImageLayoutColorAttachmentOptimal,
		},
	}

	var subpassDescriptions []core1_0.SubpassDescription
	for i := 0; i < subpasses; i++ {
		subpassDescriptions = append(subpassDescriptions, core1_0.SubpassDescription{
			PipelineBindPoint: core1_0.PipelineBindPointGraphics,
			ColorAttachments:  colorRef,
		})
	}

	renderPass, _, err := app.device.CreateRenderPass(nil, core1_0.RenderPassCreateInfo{
		Attachments: []core1_0.AttachmentDescription{
			{
				Format:         format,
				Samples:        core1_0.Samples1,
				LoadOp:         core1_0.AttachmentLoadOpClear,
				StoreOp:        core1_0.AttachmentStoreOpStore,
				StencilLoadOp:  core1_0.AttachmentLoadOpDontCare,
				StencilStoreOp: core1_0.AttachmentStoreOpDontCare,
				InitialLayout:  core1_0.ImageLayoutUndefined,
				FinalLayout:    khr_swapchain.ImageLayoutPresentSrc,
			},
		},
		Subpasses:           subpassDescriptions,
		SubpassDependencies: subpassDependencies(subpasses),
	})
	if err != nil {
		return nil, err
	}

	return renderPass, nil
}

// subpassDependencies orders the first subpass after the acquire and each
// later subpass after the one before it, all on color attachment output.
func subpassDependencies(subpasses int) []core1_0.SubpassDependency {
	dependencies := []core1_0.SubpassDependency{
		{
			SrcSubpass: core1_0.SubpassExternal,
			DstSubpass: 0,

			SrcStageMask:  core1_0.PipelineStageColorAttachmentOutput,
			SrcAccessMask: 0,

			DstStageMask:  core1_0.PipelineStageColorAttachmentOutput,
			DstAccessMask: core1_0.AccessColorAttachmentWrite,
		},
	}

	for i := 1; i < subpasses; i++ {
		dependencies = append(dependencies, core1_0.SubpassDependency{
			SrcSubpass: i - 1,
			DstSubpass: i,

			SrcStageMask:  core1_0.PipelineStageColorAttachmentOutput,
			SrcAccessMask: core1_0.AccessColorAttachmentWrite,

			DstStageMask:  core1_0.PipelineStageColorAttachmentOutput,
			DstAccessMask: core1_0.AccessColorAttachmentRead | core1_0.AccessColorAttachmentWrite,
		})
	}

	return dependencies
}

// PushConstants packs data and records it at offset 0 of the layout's push
// constant range.
func PushConstants(buffer core1_0.CommandBuffer, layout core1_0.PipelineLayout, stages core1_0.ShaderStageFlags, data any) error {
	packed, err := vkutil.Pack(data)
	if err != nil {
		return err
	}

	buffer.CmdPushConstants(layout, stages, 0, packed)
	return nil
}
