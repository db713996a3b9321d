// Package vkapp is the Vulkan boilerplate shared by the demo programs: the
// window, instance, device, swapchain and frame loop. A program plugs its
// drawing in through a Renderer.
package vkapp

import (
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/vkngwrapper/core"
	"github.com/vkngwrapper/core/common"
	"github.com/vkngwrapper/core/core1_0"
	"github.com/vkngwrapper/extensions/ext_debug_utils"
	"github.com/vkngwrapper/extensions/khr_surface"
	"github.com/vkngwrapper/extensions/khr_swapchain"
	"github.com/vkngwrapper/vulkan-demos/internal/clock"
	"github.com/vkngwrapper/vulkan-demos/internal/config"
	"github.com/vkngwrapper/vulkan-demos/internal/vkutil"
)

// Frame is what a Renderer gets to record one frame.
type Frame struct {
	CommandBuffer core1_0.CommandBuffer
	Framebuffer   core1_0.Framebuffer
	Extent        core1_0.Extent2D

	// Index is the frame-in-flight slot, ImageIndex the swapchain image.
	Index      int
	ImageIndex int

	Elapsed float32
	Delta   float32
}

// Renderer is the per-program part of the app. The app begins the render
// pass before Record and ends it afterwards, so Record starts in subpass 0
// with the viewport and scissor already covering the whole extent.
type Renderer interface {
	Init(app *App) error
	CreateRenderPass(app *App, format core1_0.Format) (core1_0.RenderPass, error)
	CreateSwapchainResources(app *App, renderPass core1_0.RenderPass, extent core1_0.Extent2D) error
	DestroySwapchainResources()
	Record(frame Frame) error
	Destroy()
}

// EventHandler is implemented by renderers that want SDL events. Returning
// true marks the event as consumed.
type EventHandler interface {
	HandleEvent(event sdl.Event) bool
}

type Options struct {
	// Anisotropy enables sampler anisotropy when the device supports it.
	Anisotropy bool
}

type App struct {
	cfg      *config.Config
	options  Options
	renderer Renderer
	log      *slog.Logger
	clock    *clock.Clock

	window *sdl.Window
	loader core.Loader

	instance       core1_0.Instance
	debugMessenger ext_debug_utils.Messenger
	surface        khr_surface.Surface

	physicalDevice     core1_0.PhysicalDevice
	device             core1_0.Device
	queueFamilies      vkutil.QueueFamilyIndices
	anisotropyEnabled  bool
	maxAnisotropy      float32
	graphicsQueue      core1_0.Queue
	presentQueue       core1_0.Queue
	swapchainExtension khr_swapchain.Extension

	swapchain             khr_swapchain.Swapchain
	swapchainImages       []core1_0.Image
	swapchainImageFormat  core1_0.Format
	swapchainExtent       core1_0.Extent2D
	swapchainImageViews   []core1_0.ImageView
	swapchainFramebuffers []core1_0.Framebuffer
	renderPass            core1_0.RenderPass

	commandPool    core1_0.CommandPool
	commandBuffers []core1_0.CommandBuffer

	imageAvailableSemaphore []core1_0.Semaphore
	renderFinishedSemaphore []core1_0.Semaphore
	inFlightFence           []core1_0.Fence
	imagesInFlight          []core1_0.Fence
	currentFrame            int

	shaders map[string][]uint32

	rendering bool
	resized   bool
}

func New(cfg *config.Config, renderer Renderer, options Options) *App {
	return &App{
		cfg:      cfg,
		options:  options,
		renderer: renderer,
		log:      slog.Default().With("program", cfg.Window.Title),
		clock:    clock.New(),
	}
}

// Run opens the window, builds everything and renders until the window is
// closed. Errors during setup or rendering end the run.
func (app *App) Run() error {
	err := app.initWindow()
	if err != nil {
		return errors.Wrap(err, "failed to create window")
	}
	defer app.cleanup()

	err = app.initVulkan()
	if err != nil {
		return err
	}

	return app.mainLoop()
}

func (app *App) initVulkan() error {
	err := app.createInstance()
	if err != nil {
		return errors.Wrap(err, "failed to create instance")
	}

	err = app.setupDebugMessenger()
	if err != nil {
		return errors.Wrap(err, "failed to set up debug messenger")
	}

	err = app.createSurface()
	if err != nil {
		return errors.Wrap(err, "failed to create surface")
	}

	err = app.pickPhysicalDevice()
	if err != nil {
		return err
	}

	err = app.createLogicalDevice()
	if err != nil {
		return errors.Wrap(err, "failed to create logical device")
	}

	err = app.createCommandPool()
	if err != nil {
		return errors.Wrap(err, "failed to create command pool")
	}

	err = app.renderer.Init(app)
	if err != nil {
		return errors.Wrap(err, "failed to initialize renderer")
	}

	err = app.createSwapchainObjects()
	if err != nil {
		return err
	}

	err = app.createCommandBuffers()
	if err != nil {
		return errors.Wrap(err, "failed to allocate command buffers")
	}

	return app.createSyncObjects()
}

func (app *App) Logger() *slog.Logger {
	return app.log
}

func (app *App) Window() *sdl.Window {
	return app.window
}

func (app *App) Device() core1_0.Device {
	return app.device
}

func (app *App) PhysicalDevice() core1_0.PhysicalDevice {
	return app.physicalDevice
}

func (app *App) FramesInFlight() int {
	return app.cfg.Vulkan.FramesInFlight
}

func (app *App) SwapchainExtent() core1_0.Extent2D {
	return app.swapchainExtent
}

// idleWaiter is the part of core1_0.Device that cleanup blocks on.
type idleWaiter interface {
	WaitIdle() (common.VkResult, error)
}

// drainDevice waits for queued work to finish. A failed wait is logged and
// cleanup carries on.
func drainDevice(log *slog.Logger, device idleWaiter) {
	_, err := device.WaitIdle()
	if err != nil {
		log.Warn("device did not go idle before cleanup", slog.Any("err", err))
	}
}

func (app *App) cleanup() {
	if app.device != nil {
		// A render error leaves mainLoop early, so frames may still be in flight.
		drainDevice(app.log, app.device)
		app.cleanupSwapchain()
		app.renderer.Destroy()
	}

	for _, fence := range app.inFlightFence {
		fence.Destroy(nil)
	}

	for _, semaphore := range app.renderFinishedSemaphore {
		semaphore.Destroy(nil)
	}

	for _, semaphore := range app.imageAvailableSemaphore {
		semaphore.Destroy(nil)
	}

	if app.commandPool != nil {
		app.commandPool.Destroy(nil)
	}

	if app.device != nil {
		app.device.Destroy(nil)
	}

	if app.debugMessenger != nil {
		app.debugMessenger.Destroy(nil)
	}

	if app.surface != nil {
		app.surface.Destroy(nil)
	}

	if app.instance != nil {
		app.instance.Destroy(nil)
	}

	if app.window != nil {
		app.window.Destroy()
	}
	sdl.Quit()
}
