package vkutil

import (
	"github.com/vkngwrapper/core/common"
	"github.com/vkngwrapper/extensions/khr_swapchain"
)

type FrameOutcome int

const (
	// FrameOK means the frame went through and the swapchain is still usable.
	FrameOK FrameOutcome = iota
	// FrameRecreate means the swapchain no longer matches the surface and has
	// to be rebuilt before the next frame.
	FrameRecreate
	// FrameFatal means the error cannot be recovered from.
	FrameFatal
)

func (o FrameOutcome) String() string {
	switch o {
	case FrameOK:
		return "ok"
	case FrameRecreate:
		return "recreate"
	case FrameFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// ClassifyAcquire decides what to do with the result of acquiring a swapchain
// image. Out of date means nothing can be drawn this frame. Suboptimal images
// are still drawn; the present result will trigger the rebuild.
func ClassifyAcquire(res common.VkResult, err error) FrameOutcome {
	if res == khr_swapchain.VKErrorOutOfDate {
		return FrameRecreate
	}
	if err != nil {
		return FrameFatal
	}
	return FrameOK
}

// ClassifyPresent decides what to do after presenting. resized is set when the
// window reported a size change since the swapchain was built.
func ClassifyPresent(res common.VkResult, err error, resized bool) FrameOutcome {
	if res == khr_swapchain.VKErrorOutOfDate || res == khr_swapchain.VKSuboptimal {
		return FrameRecreate
	}
	if err != nil {
		return FrameFatal
	}
	if resized {
		return FrameRecreate
	}
	return FrameOK
}
