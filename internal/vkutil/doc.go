// Package vkutil holds the decisions the demos make while setting up Vulkan
// that only depend on what the driver reported: which surface format, present
// mode, extent, physical device, queue family and memory type to use, and how
// to react to the result of acquiring or presenting a swapchain image.
//
// Nothing here touches a live handle, which keeps it testable without a GPU.
package vkutil
