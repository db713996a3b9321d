package vkapp

import (
	"image"
	"image/draw"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/core1_0"
)

// Texture is a sampled 2D image with its view and sampler.
type Texture struct {
	Image   core1_0.Image
	Memory  core1_0.DeviceMemory
	View    core1_0.ImageView
	Sampler core1_0.Sampler
	Width   int
	Height  int
}

func (t *Texture) Destroy() {
	if t == nil {
		return
	}

	if t.Sampler != nil {
		t.Sampler.Destroy(nil)
	}

	if t.View != nil {
		t.View.Destroy(nil)
	}

	if t.Image != nil {
		t.Image.Destroy(nil)
	}

	if t.Memory != nil {
		t.Memory.Free(nil)
	}
}

// RGBA returns the pixels of img as tightly packed 8-bit RGBA rows.
func RGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Stride == rgba.Rect.Dx()*4 && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	return rgba
}

// layoutTransition is the synchronization scope of one image layout change.
type layoutTransition struct {
	srcStage, dstStage   core1_0.PipelineStageFlags
	srcAccess, dstAccess core1_0.AccessFlags
}

type layoutPair struct {
	from, to core1_0.ImageLayout
}

var layoutTransitions = map[layoutPair]layoutTransition{
	{core1_0.ImageLayoutUndefined, core1_0.ImageLayoutTransferDstOptimal}: {
		srcStage:  core1_0.PipelineStageTopOfPipe,
		dstStage:  core1_0.PipelineStageTransfer,
		dstAccess: core1_0.AccessTransferWrite,
	},
	{core1_0.ImageLayoutTransferDstOptimal, core1_0.ImageLayoutShaderReadOnlyOptimal}: {
		srcStage:  core1_0.PipelineStageTransfer,
		dstStage:  core1_0.PipelineStageFragmentShader,
		srcAccess: core1_0.AccessTransferWrite,
		dstAccess: core1_0.AccessShaderRead,
	},
}

func transitionFor(from, to core1_0.ImageLayout) (layoutTransition, error) {
	transition, ok := layoutTransitions[layoutPair{from, to}]
	if !ok {
		return layoutTransition{}, errors.Newf("unexpected layout transition: %s -> %s", from, to)
	}
	return transition, nil
}

var colorSubresource = core1_0.ImageSubresourceRange{
	AspectMask: core1_0.ImageAspectColor,
	LevelCount: 1,
	LayerCount: 1,
}

// recordLayoutTransition records a barrier moving every level and layer of a
// color image from one layout to another.
func recordLayoutTransition(cmd core1_0.CommandBuffer, img core1_0.Image, from, to core1_0.ImageLayout) error {
	transition, err := transitionFor(from, to)
	if err != nil {
		return err
	}

	return cmd.CmdPipelineBarrier(transition.srcStage, transition.dstStage, 0, nil, nil, []core1_0.ImageMemoryBarrier{
		{
			SrcAccessMask:       transition.srcAccess,
			DstAccessMask:       transition.dstAccess,
			OldLayout:           from,
			NewLayout:           to,
			SrcQueueFamilyIndex: -1,
			DstQueueFamilyIndex: -1,
			Image:               img,
			SubresourceRange:    colorSubresource,
		},
	})
}

// CreateTexture uploads img into a device local image of the given RGBA8
// format and creates a linear, repeating sampler for it.
func (app *App) CreateTexture(img image.Image, format core1_0.Format) (texture *Texture, err error) {
	pixels := RGBA(img)
	width, height := pixels.Rect.Dx(), pixels.Rect.Dy()
	if width == 0 || height == 0 {
		return nil, errors.New("cannot create a texture from an empty image")
	}

	texture = &Texture{Width: width, Height: height}
	defer func() {
		if err != nil {
			texture.Destroy()
			texture = nil
		}
	}()

	texture.Image, texture.Memory, err = app.createImage(width, height, format, core1_0.ImageUsageTransferDst|core1_0.ImageUsageSampled)
	if err != nil {
		return texture, err
	}

	err = app.uploadPixels(texture.Image, pixels)
	if err != nil {
		return texture, errors.Wrap(err, "failed to upload texture")
	}

	texture.View, err = app.CreateImageView(texture.Image, format)
	if err != nil {
		return texture, err
	}

	texture.Sampler, err = app.createSampler()
	return texture, err
}

// uploadPixels stages the pixels and copies them into img in one submission,
// leaving img ready for sampling.
func (app *App) uploadPixels(img core1_0.Image, pixels *image.RGBA) error {
	staging, err := app.CreateBuffer(len(pixels.Pix), core1_0.BufferUsageTransferSrc, core1_0.MemoryPropertyHostVisible|core1_0.MemoryPropertyHostCoherent)
	if err != nil {
		return err
	}
	defer staging.Destroy()

	err = staging.WriteBytes(0, pixels.Pix)
	if err != nil {
		return err
	}

	cmd, err := app.beginSingleTimeCommands()
	if err != nil {
		return err
	}

	record := func() error {
		err := recordLayoutTransition(cmd, img, core1_0.ImageLayoutUndefined, core1_0.ImageLayoutTransferDstOptimal)
		if err != nil {
			return err
		}

		err = cmd.CmdCopyBufferToImage(staging.Buffer, img, core1_0.ImageLayoutTransferDstOptimal, []core1_0.BufferImageCopy{
			{
				ImageSubresource: core1_0.ImageSubresourceLayers{
					AspectMask: core1_0.ImageAspectColor,
					LayerCount: 1,
				},
				ImageExtent: core1_0.Extent3D{Width: pixels.Rect.Dx(), Height: pixels.Rect.Dy(), Depth: 1},
			},
		})
		if err != nil {
			return err
		}

		return recordLayoutTransition(cmd, img, core1_0.ImageLayoutTransferDstOptimal, core1_0.ImageLayoutShaderReadOnlyOptimal)
	}

	if err := record(); err != nil {
		app.device.FreeCommandBuffers([]core1_0.CommandBuffer{cmd})
		return err
	}

	return app.endSingleTimeCommands(cmd)
}

func (app *App) createSampler() (core1_0.Sampler, error) {
	maxAnisotropy := float32(1)
	if app.anisotropyEnabled {
		maxAnisotropy = app.maxAnisotropy
	}

	sampler, _, err := app.device.CreateSampler(nil, core1_0.SamplerCreateInfo{
		MagFilter:    core1_0.FilterLinear,
		MinFilter:    core1_0.FilterLinear,
		MipmapMode:   core1_0.SamplerMipmapModeLinear,
		AddressModeU: core1_0.SamplerAddressModeRepeat,
		AddressModeV: core1_0.SamplerAddressModeRepeat,
		AddressModeW: core1_0.SamplerAddressModeRepeat,

		AnisotropyEnable: app.anisotropyEnabled,
		MaxAnisotropy:    maxAnisotropy,

		BorderColor: core1_0.BorderColorIntOpaqueBlack,
	})

	return sampler, err
}

// CreateImageView creates a 2D color view of a single-level image.
func (app *App) CreateImageView(img core1_0.Image, format core1_0.Format) (core1_0.ImageView, error) {
	view, _, err := app.device.CreateImageView(nil, core1_0.ImageViewCreateInfo{
		Image:            img,
		ViewType:         core1_0.ImageViewType2D,
		Format:           format,
		SubresourceRange: colorSubresource,
	})
	return view, err
}

// createImage creates an optimally tiled, device local 2D image and binds
// fresh memory to it.
func (app *App) createImage(width, height int, format core1_0.Format, usage core1_0.ImageUsageFlags) (core1_0.Image, core1_0.DeviceMemory, error) {
	img, _, err := app.device.CreateImage(nil, core1_0.ImageCreateOptions{
		ImageType:     core1_0.ImageType2D,
		Format:        format,
		Extent:        core1_0.Extent3D{Width: width, Height: height, Depth: 1},
		MipLevels:     1,
		ArrayLayers:   1,
		Samples:       core1_0.Samples1,
		Tiling:        core1_0.ImageTilingOptimal,
		Usage:         usage,
		SharingMode:   core1_0.SharingModeExclusive,
		InitialLayout: core1_0.ImageLayoutUndefined,
	})
	if err != nil {
		return nil, nil, err
	}

	requirements := img.MemoryRequirements()
	memoryIndex, err := app.findMemoryType(requirements.MemoryTypeBits, core1_0.MemoryPropertyDeviceLocal)
	if err != nil {
		img.Destroy(nil)
		return nil, nil, err
	}

	memory, _, err := app.device.AllocateMemory(nil, core1_0.MemoryAllocateInfo{
		AllocationSize:  requirements.Size,
		MemoryTypeIndex: memoryIndex,
	})
	if err != nil {
		img.Destroy(nil)
		return nil, nil, err
	}

	_, err = img.BindImageMemory(memory, 0)
	if err != nil {
		img.Destroy(nil)
		memory.Free(nil)
		return nil, nil, err
	}

	return img, memory, nil
}
