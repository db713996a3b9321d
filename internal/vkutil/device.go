package vkutil

import (
	"strings"

	"github.com/vkngwrapper/core/core1_0"
)

// DeviceCandidate is a physical device that already passed the suitability
// checks (swapchain extension, surface formats, graphics and present queues).
type DeviceCandidate struct {
	Name string
	Type core1_0.PhysicalDeviceType
}

// TypeRank orders device types from most to least desirable. Lower is better.
func TypeRank(deviceType core1_0.PhysicalDeviceType) int {
	switch deviceType {
	case core1_0.PhysicalDeviceTypeDiscreteGPU:
		return 0
	case core1_0.PhysicalDeviceTypeIntegratedGPU:
		return 1
	case core1_0.PhysicalDeviceTypeVirtualGPU:
		return 2
	case core1_0.PhysicalDeviceTypeCPU:
		return 3
	case core1_0.PhysicalDeviceTypeOther:
		return 4
	default:
		return 5
	}
}

// SelectDevice returns the index of the candidate to use. A non-empty
// preferred name picks the first candidate whose name contains it, ignoring
// case; matchedPreferred reports whether that happened. Otherwise the best
// ranked type wins and ties keep enumeration order. ok is false only when
// there are no candidates.
func SelectDevice(candidates []DeviceCandidate, preferred string) (index int, matchedPreferred bool, ok bool) {
	if len(candidates) == 0 {
		return 0, false, false
	}

	if preferred != "" {
		needle := strings.ToLower(preferred)
		for i, candidate := range candidates {
			if strings.Contains(strings.ToLower(candidate.Name), needle) {
				return i, true, true
			}
		}
	}

	best := 0
	for i := 1; i < len(candidates); i++ {
		if TypeRank(candidates[i].Type) < TypeRank(candidates[best].Type) {
			best = i
		}
	}

	return best, false, true
}

// HasExtensions reports whether every required extension name is present.
func HasExtensions[T any](available map[string]T, required []string) bool {
	for _, extension := range required {
		if _, ok := available[extension]; !ok {
			return false
		}
	}
	return true
}
