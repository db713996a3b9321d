package vkutil

import (
	"testing"

	"github.com/vkngwrapper/core/core1_0"
	"github.com/vkngwrapper/extensions/khr_surface"
)

func TestChooseSurfaceFormat(t *testing.T) {
	preferred := khr_surface.Format{Format: core1_0.FormatB8G8R8A8SRGB, ColorSpace: khr_surface.ColorSpaceSRGBNonlinear}
	unorm := khr_surface.Format{Format: core1_0.FormatB8G8R8A8UnsignedNormalized, ColorSpace: khr_surface.ColorSpaceSRGBNonlinear}
	rgba := khr_surface.Format{Format: core1_0.FormatR8G8B8A8SRGB, ColorSpace: khr_surface.ColorSpaceSRGBNonlinear}

	tests := []struct {
		name      string
		available []khr_surface.Format
		want      khr_surface.Format
	}{
		{"preferred present", []khr_surface.Format{unorm, preferred, rgba}, preferred},
		{"fallback to first", []khr_surface.Format{rgba, unorm}, rgba},
		{"none", nil, khr_surface.Format{}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := ChooseSurfaceFormat(test.available); got != test.want {
				t.Errorf("ChooseSurfaceFormat() = %v, want %v", got, test.want)
			}
		})
	}
}

func TestParsePresentMode(t *testing.T) {
	tests := map[string]khr_surface.PresentMode{
		"immediate":    khr_surface.PresentModeImmediate,
		"mailbox":      khr_surface.PresentModeMailbox,
		"fifo":         khr_surface.PresentModeFIFO,
		"fifo_relaxed": khr_surface.PresentModeFIFORelaxed,
	}

	for name, want := range tests {
		got, err := ParsePresentMode(name)
		if err != nil {
			t.Errorf("ParsePresentMode(%q): %v", name, err)
		}
		if got != want {
			t.Errorf("ParsePresentMode(%q) = %v, want %v", name, got, want)
		}
	}

	if _, err := ParsePresentMode("vsync"); err == nil {
		t.Error("expected an error for an unknown mode")
	}
}

func TestChoosePresentMode(t *testing.T) {
	available := []khr_surface.PresentMode{khr_surface.PresentModeFIFO, khr_surface.PresentModeMailbox}

	if got := ChoosePresentMode(khr_surface.PresentModeMailbox, available); got != khr_surface.PresentModeMailbox {
		t.Errorf("supported preference: got %v", got)
	}
	if got := ChoosePresentMode(khr_surface.PresentModeImmediate, available); got != khr_surface.PresentModeFIFO {
		t.Errorf("unsupported preference: got %v, want FIFO", got)
	}
}

func TestChooseExtent(t *testing.T) {
	fixed := &khr_surface.Capabilities{
		CurrentExtent: core1_0.Extent2D{Width: 1024, Height: 768},
	}
	if got := ChooseExtent(fixed, 10, 10); got != fixed.CurrentExtent {
		t.Errorf("fixed extent: got %v", got)
	}

	open := &khr_surface.Capabilities{
		CurrentExtent:  core1_0.Extent2D{Width: -1, Height: -1},
		MinImageExtent: core1_0.Extent2D{Width: 100, Height: 100},
		MaxImageExtent: core1_0.Extent2D{Width: 2000, Height: 1000},
	}

	tests := []struct {
		width, height int
		want          core1_0.Extent2D
	}{
		{800, 600, core1_0.Extent2D{Width: 800, Height: 600}},
		{50, 600, core1_0.Extent2D{Width: 100, Height: 600}},
		{4000, 4000, core1_0.Extent2D{Width: 2000, Height: 1000}},
	}
	for _, test := range tests {
		if got := ChooseExtent(open, test.width, test.height); got != test.want {
			t.Errorf("ChooseExtent(%d, %d) = %v, want %v", test.width, test.height, got, test.want)
		}
	}
}

func TestImageCount(t *testing.T) {
	tests := []struct {
		min, max, want int
	}{
		{2, 0, 3},
		{2, 8, 3},
		{3, 3, 3},
		{1, 2, 2},
	}

	for _, test := range tests {
		caps := &khr_surface.Capabilities{MinImageCount: test.min, MaxImageCount: test.max}
		if got := ImageCount(caps); got != test.want {
			t.Errorf("ImageCount(min=%d, max=%d) = %d, want %d", test.min, test.max, got, test.want)
		}
	}
}
