package vkapp

import (
	"github.com/veandco/go-sdl2/sdl"
	"github.com/vkngwrapper/core"
)

func (app *App) initWindow() error {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return err
	}

	window, err := sdl.CreateWindow(app.cfg.Window.Title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(app.cfg.Window.Width), int32(app.cfg.Window.Height),
		sdl.WINDOW_SHOWN|sdl.WINDOW_VULKAN|sdl.WINDOW_RESIZABLE)
	if err != nil {
		return err
	}
	app.window = window

	app.loader, err = core.CreateLoaderFromProcAddr(sdl.VulkanGetVkGetInstanceProcAddr())
	if err != nil {
		return err
	}

	return nil
}

// drawableSize is the window size in pixels, which differs from the window
// size on high density displays.
func (app *App) drawableSize() (int, int) {
	w, h := app.window.VulkanGetDrawableSize()
	return int(w), int(h)
}

func (app *App) minimized() bool {
	if (app.window.GetFlags() & sdl.WINDOW_MINIMIZED) != 0 {
		return true
	}

	w, h := app.drawableSize()
	return w == 0 || h == 0
}
