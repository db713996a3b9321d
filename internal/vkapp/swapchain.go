package vkapp

import (
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/core1_0"
	"github.com/vkngwrapper/extensions/khr_surface"
	"github.com/vkngwrapper/extensions/khr_swapchain"
	"github.com/vkngwrapper/vulkan-demos/internal/vkutil"
)

// createSwapchainObjects builds the swapchain and everything sized or
// formatted after it: image views, the renderer's render pass and
// pipelines, and one framebuffer per image.
func (app *App) createSwapchainObjects() error {
	err := app.createSwapchain()
	if err != nil {
		return errors.Wrap(err, "failed to create swapchain")
	}

	err = app.createImageViews()
	if err != nil {
		return errors.Wrap(err, "failed to create swapchain image views")
	}

	app.renderPass, err = app.renderer.CreateRenderPass(app, app.swapchainImageFormat)
	if err != nil {
		return errors.Wrap(err, "failed to create render pass")
	}

	err = app.renderer.CreateSwapchainResources(app, app.renderPass, app.swapchainExtent)
	if err != nil {
		return errors.Wrap(err, "failed to create swapchain resources")
	}

	err = app.createFramebuffers()
	if err != nil {
		return errors.Wrap(err, "failed to create framebuffers")
	}

	app.imagesInFlight = make([]core1_0.Fence, len(app.swapchainImages))
	return nil
}

func (app *App) createSwapchain() error {
	swapchainSupport, err := app.querySwapchainSupport(app.physicalDevice)
	if err != nil {
		return err
	}

	preferredMode, err := vkutil.ParsePresentMode(app.cfg.Vulkan.PresentMode)
	if err != nil {
		return err
	}

	surfaceFormat := vkutil.ChooseSurfaceFormat(swapchainSupport.Formats)
	presentMode := vkutil.ChoosePresentMode(preferredMode, swapchainSupport.PresentModes)
	drawableWidth, drawableHeight := app.drawableSize()
	extent := vkutil.ChooseExtent(swapchainSupport.Capabilities, drawableWidth, drawableHeight)
	imageCount := vkutil.ImageCount(swapchainSupport.Capabilities)

	sharingMode := core1_0.SharingModeExclusive
	var queueFamilyIndices []int

	if *app.queueFamilies.GraphicsFamily != *app.queueFamilies.PresentFamily {
		sharingMode = core1_0.SharingModeConcurrent
		queueFamilyIndices = append(queueFamilyIndices, *app.queueFamilies.GraphicsFamily, *app.queueFamilies.PresentFamily)
	}

	oldSwapchain := app.swapchain
	swapchain, _, err := app.swapchainExtension.CreateSwapchain(app.device, nil, khr_swapchain.SwapchainCreateInfo{
		Surface: app.surface,

		MinImageCount:    imageCount,
		ImageFormat:      surfaceFormat.Format,
		ImageColorSpace:  surfaceFormat.ColorSpace,
		ImageExtent:      extent,
		ImageArrayLayers: 1,
		ImageUsage:       core1_0.ImageUsageColorAttachment,

		ImageSharingMode:   sharingMode,
		QueueFamilyIndices: queueFamilyIndices,

		PreTransform:   swapchainSupport.Capabilities.CurrentTransform,
		CompositeAlpha: khr_surface.CompositeAlphaOpaque,
		PresentMode:    presentMode,
		Clipped:        true,
		OldSwapchain:   oldSwapchain,
	})
	if oldSwapchain != nil {
		oldSwapchain.Destroy(nil)
		app.swapchain = nil
	}
	if err != nil {
		return err
	}

	app.swapchainExtent = extent
	app.swapchain = swapchain
	app.swapchainImageFormat = surfaceFormat.Format

	app.log.Debug("swapchain created",
		slog.Int("width", extent.Width),
		slog.Int("height", extent.Height),
		slog.Int("images", imageCount),
		slog.Any("present_mode", presentMode))

	return nil
}

func (app *App) createImageViews() error {
	images, _, err := app.swapchain.SwapchainImages()
	if err != nil {
		return err
	}
	app.swapchainImages = images

	var imageViews []core1_0.ImageView
	for _, image := range images {
		view, err := app.CreateImageView(image, app.swapchainImageFormat)
		if err != nil {
			return err
		}

		imageViews = append(imageViews, view)
	}
	app.swapchainImageViews = imageViews

	return nil
}

func (app *App) createFramebuffers() error {
	for _, imageView := range app.swapchainImageViews {
		framebuffer, _, err := app.device.CreateFramebuffer(nil, core1_0.FramebufferCreateInfo{
			RenderPass: app.renderPass,
			Layers:     1,
			Attachments: []core1_0.ImageView{
				imageView,
			},
			Width:  app.swapchainExtent.Width,
			Height: app.swapchainExtent.Height,
		})
		if err != nil {
			return err
		}

		app.swapchainFramebuffers = append(app.swapchainFramebuffers, framebuffer)
	}

	return nil
}

// releaseSwapchainObjects destroys everything createSwapchainObjects made
// except the swapchain itself, which the next swapchain is created from.
func (app *App) releaseSwapchainObjects() {
	for _, framebuffer := range app.swapchainFramebuffers {
		framebuffer.Destroy(nil)
	}
	app.swapchainFramebuffers = nil

	app.renderer.DestroySwapchainResources()

	if app.renderPass != nil {
		app.renderPass.Destroy(nil)
		app.renderPass = nil
	}

	for _, imageView := range app.swapchainImageViews {
		imageView.Destroy(nil)
	}
	app.swapchainImageViews = nil
	app.swapchainImages = nil
}

func (app *App) cleanupSwapchain() {
	app.releaseSwapchainObjects()

	if app.swapchain != nil {
		app.swapchain.Destroy(nil)
		app.swapchain = nil
	}
}

// recreateSwapchain rebuilds the swapchain after the surface changed. It is a
// no-op while the window has no drawable area.
func (app *App) recreateSwapchain() error {
	if app.minimized() {
		app.rendering = false
		return nil
	}

	_, err := app.device.WaitIdle()
	if err != nil {
		return errors.Wrap(err, "failed to wait for device idle")
	}

	app.releaseSwapchainObjects()

	err = app.createSwapchainObjects()
	if err != nil {
		return err
	}

	app.resized = false
	app.log.Info("swapchain recreated",
		slog.Int("width", app.swapchainExtent.Width),
		slog.Int("height", app.swapchainExtent.Height))

	return nil
}
