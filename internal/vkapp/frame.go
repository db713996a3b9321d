package vkapp

import (
	"github.com/cockroachdb/errors"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/vkngwrapper/core/common"
	"github.com/vkngwrapper/core/core1_0"
	"github.com/vkngwrapper/extensions/khr_swapchain"
	"github.com/vkngwrapper/vulkan-demos/internal/vkutil"
)

func (app *App) createCommandPool() error {
	pool, _, err := app.device.CreateCommandPool(nil, core1_0.CommandPoolCreateInfo{
		Flags:            core1_0.CommandPoolCreateResetBuffer,
		QueueFamilyIndex: app.queueFamilies.GraphicsFamily,
	})
	if err != nil {
		return err
	}
	app.commandPool = pool

	return nil
}

// createCommandBuffers allocates one primary buffer per frame in flight.
// They are re-recorded every frame.
func (app *App) createCommandBuffers() error {
	buffers, _, err := app.device.AllocateCommandBuffers(core1_0.CommandBufferAllocateInfo{
		CommandPool:        app.commandPool,
		Level:              core1_0.CommandBufferLevelPrimary,
		CommandBufferCount: app.FramesInFlight(),
	})
	if err != nil {
		return err
	}
	app.commandBuffers = buffers

	return nil
}

func (app *App) createSyncObjects() error {
	for i := 0; i < app.FramesInFlight(); i++ {
		semaphore, _, err := app.device.CreateSemaphore(nil, core1_0.SemaphoreCreateInfo{})
		if err != nil {
			return errors.Wrap(err, "failed to create semaphore")
		}

		app.imageAvailableSemaphore = append(app.imageAvailableSemaphore, semaphore)

		semaphore, _, err = app.device.CreateSemaphore(nil, core1_0.SemaphoreCreateInfo{})
		if err != nil {
			return errors.Wrap(err, "failed to create semaphore")
		}

		app.renderFinishedSemaphore = append(app.renderFinishedSemaphore, semaphore)

		fence, _, err := app.device.CreateFence(nil, core1_0.FenceCreateInfo{
			Flags: core1_0.FenceCreateSignaled,
		})
		if err != nil {
			return errors.Wrap(err, "failed to create fence")
		}

		app.inFlightFence = append(app.inFlightFence, fence)
	}

	return nil
}

func (app *App) mainLoop() error {
	app.rendering = true
	handler, _ := app.renderer.(EventHandler)

appLoop:
	for {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			if handler != nil && handler.HandleEvent(event) {
				continue
			}

			switch e := event.(type) {
			case *sdl.QuitEvent:
				break appLoop
			case *sdl.WindowEvent:
				switch e.Event {
				case sdl.WINDOWEVENT_MINIMIZED:
					app.rendering = false
				case sdl.WINDOWEVENT_RESTORED, sdl.WINDOWEVENT_MAXIMIZED:
					app.rendering = true
					app.resized = true
				case sdl.WINDOWEVENT_RESIZED, sdl.WINDOWEVENT_SIZE_CHANGED:
					app.resized = true
					app.rendering = !app.minimized()
				}
			}
		}

		if !app.rendering {
			sdl.Delay(10)
			continue
		}

		err := app.drawFrame()
		if err != nil {
			return err
		}
	}

	_, err := app.device.WaitIdle()
	return err
}

func (app *App) drawFrame() error {
	fences := []core1_0.Fence{app.inFlightFence[app.currentFrame]}

	_, err := app.device.WaitForFences(true, common.NoTimeout, fences)
	if err != nil {
		return errors.Wrap(err, "failed to wait for frame fence")
	}

	imageIndex, res, err := app.swapchain.AcquireNextImage(common.NoTimeout, app.imageAvailableSemaphore[app.currentFrame], nil)
	switch vkutil.ClassifyAcquire(res, err) {
	case vkutil.FrameRecreate:
		return app.recreateSwapchain()
	case vkutil.FrameFatal:
		return errors.Wrap(err, "failed to acquire swapchain image")
	}

	if app.imagesInFlight[imageIndex] != nil {
		_, err := app.imagesInFlight[imageIndex].Wait(common.NoTimeout)
		if err != nil {
			return errors.Wrap(err, "failed to wait for image fence")
		}
	}
	app.imagesInFlight[imageIndex] = app.inFlightFence[app.currentFrame]

	_, err = app.device.ResetFences(fences)
	if err != nil {
		return errors.Wrap(err, "failed to reset frame fence")
	}

	err = app.recordCommandBuffer(imageIndex)
	if err != nil {
		return err
	}

	_, err = app.graphicsQueue.Submit(app.inFlightFence[app.currentFrame], []core1_0.SubmitInfo{
		{
			WaitSemaphores:   []core1_0.Semaphore{app.imageAvailableSemaphore[app.currentFrame]},
			WaitDstStageMask: []core1_0.PipelineStageFlags{core1_0.PipelineStageColorAttachmentOutput},
			CommandBuffers:   []core1_0.CommandBuffer{app.commandBuffers[app.currentFrame]},
			SignalSemaphores: []core1_0.Semaphore{app.renderFinishedSemaphore[app.currentFrame]},
		},
	})
	if err != nil {
		return errors.Wrap(err, "failed to submit draw command buffer")
	}

	res, err = app.swapchainExtension.QueuePresent(app.presentQueue, khr_swapchain.PresentInfo{
		WaitSemaphores: []core1_0.Semaphore{app.renderFinishedSemaphore[app.currentFrame]},
		Swapchains:     []khr_swapchain.Swapchain{app.swapchain},
		ImageIndices:   []int{imageIndex},
	})

	app.currentFrame = (app.currentFrame + 1) % app.FramesInFlight()

	switch vkutil.ClassifyPresent(res, err, app.resized) {
	case vkutil.FrameRecreate:
		return app.recreateSwapchain()
	case vkutil.FrameFatal:
		return errors.Wrap(err, "failed to present swapchain image")
	}

	return nil
}

func (app *App) recordCommandBuffer(imageIndex int) error {
	buffer := app.commandBuffers[app.currentFrame]

	_, err := buffer.Reset(0)
	if err != nil {
		return errors.Wrap(err, "failed to reset command buffer")
	}

	_, err = buffer.Begin(core1_0.CommandBufferBeginInfo{
		Flags: core1_0.CommandBufferUsageOneTimeSubmit,
	})
	if err != nil {
		return errors.Wrap(err, "failed to begin command buffer")
	}

	err = buffer.CmdBeginRenderPass(core1_0.SubpassContentsInline,
		core1_0.RenderPassBeginInfo{
			RenderPass:  app.renderPass,
			Framebuffer: app.swapchainFramebuffers[imageIndex],
			RenderArea: core1_0.Rect2D{
				Offset: core1_0.Offset2D{X: 0, Y: 0},
				Extent: app.swapchainExtent,
			},
			ClearValues: []core1_0.ClearValue{
				core1_0.ClearValueFloat{0, 0, 0, 1},
			},
		})
	if err != nil {
		return errors.Wrap(err, "failed to begin render pass")
	}

	buffer.CmdSetViewport([]core1_0.Viewport{FullViewport(app.swapchainExtent)})
	buffer.CmdSetScissor([]core1_0.Rect2D{FullScissor(app.swapchainExtent)})

	err = app.renderer.Record(Frame{
		CommandBuffer: buffer,
		Framebuffer:   app.swapchainFramebuffers[imageIndex],
		Extent:        app.swapchainExtent,
		Index:         app.currentFrame,
		ImageIndex:    imageIndex,
		Elapsed:       app.clock.Elapsed(),
		Delta:         app.clock.Tick(),
	})
	if err != nil {
		return errors.Wrap(err, "failed to record frame")
	}

	buffer.CmdEndRenderPass()

	_, err = buffer.End()
	if err != nil {
		return errors.Wrap(err, "failed to end command buffer")
	}

	return nil
}

func FullViewport(extent core1_0.Extent2D) core1_0.Viewport {
	return core1_0.Viewport{
		X:        0,
		Y:        0,
		Width:    float32(extent.Width),
		Height:   float32(extent.Height),
		MinDepth: 0,
		MaxDepth: 1,
	}
}

func FullScissor(extent core1_0.Extent2D) core1_0.Rect2D {
	return core1_0.Rect2D{
		Offset: core1_0.Offset2D{X: 0, Y: 0},
		Extent: extent,
	}
}
