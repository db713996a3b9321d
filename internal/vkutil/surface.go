package vkutil

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/core1_0"
	"github.com/vkngwrapper/extensions/khr_surface"
)

// ChooseSurfaceFormat prefers 8-bit BGRA sRGB and otherwise takes whatever the
// surface lists first.
func ChooseSurfaceFormat(availableFormats []khr_surface.Format) khr_surface.Format {
	for _, format := range availableFormats {
		if format.Format == core1_0.FormatB8G8R8A8SRGB && format.ColorSpace == khr_surface.ColorSpaceSRGBNonlinear {
			return format
		}
	}

	if len(availableFormats) == 0 {
		return khr_surface.Format{}
	}
	return availableFormats[0]
}

var presentModeNames = map[string]khr_surface.PresentMode{
	"immediate":    khr_surface.PresentModeImmediate,
	"mailbox":      khr_surface.PresentModeMailbox,
	"fifo":         khr_surface.PresentModeFIFO,
	"fifo_relaxed": khr_surface.PresentModeFIFORelaxed,
}

func ParsePresentMode(name string) (khr_surface.PresentMode, error) {
	mode, ok := presentModeNames[name]
	if !ok {
		return khr_surface.PresentModeFIFO, errors.Newf("unknown present mode %q", name)
	}
	return mode, nil
}

// ChoosePresentMode returns preferred when the surface supports it. FIFO is
// the fallback because every conforming driver has to offer it.
func ChoosePresentMode(preferred khr_surface.PresentMode, availablePresentModes []khr_surface.PresentMode) khr_surface.PresentMode {
	for _, presentMode := range availablePresentModes {
		if presentMode == preferred {
			return presentMode
		}
	}

	return khr_surface.PresentModeFIFO
}

// ChooseExtent uses the surface's current extent unless the surface leaves it
// to the application (width -1), in which case the drawable size is clamped
// to the supported range.
func ChooseExtent(capabilities *khr_surface.Capabilities, drawableWidth, drawableHeight int) core1_0.Extent2D {
	if capabilities.CurrentExtent.Width != -1 {
		return capabilities.CurrentExtent
	}

	return core1_0.Extent2D{
		Width:  clamp(drawableWidth, capabilities.MinImageExtent.Width, capabilities.MaxImageExtent.Width),
		Height: clamp(drawableHeight, capabilities.MinImageExtent.Height, capabilities.MaxImageExtent.Height),
	}
}

// ImageCount asks for one image more than the minimum so the driver never
// blocks us on its own bookkeeping. A maximum of zero means unlimited.
func ImageCount(capabilities *khr_surface.Capabilities) int {
	imageCount := capabilities.MinImageCount + 1
	if capabilities.MaxImageCount > 0 && capabilities.MaxImageCount < imageCount {
		imageCount = capabilities.MaxImageCount
	}
	return imageCount
}

func clamp(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
