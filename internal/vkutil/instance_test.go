package vkutil

import (
	"testing"

	"github.com/vkngwrapper/core/core1_0"
)

func TestPortabilityEnumeration(t *testing.T) {
	extensions, flags := PortabilityEnumeration(map[string]int{"VK_KHR_surface": 1})
	if extensions != nil || flags != 0 {
		t.Errorf("PortabilityEnumeration() = (%v, %d), want nothing enabled", extensions, flags)
	}

	extensions, flags = PortabilityEnumeration(map[string]int{
		"VK_KHR_surface":                 1,
		"VK_KHR_portability_enumeration": 1,
	})
	if len(extensions) != 1 || extensions[0] != "VK_KHR_portability_enumeration" {
		t.Errorf("extensions = %v, want [VK_KHR_portability_enumeration]", extensions)
	}
	if flags != core1_0.InstanceCreateFlags(1) {
		t.Errorf("flags = %d, want VK_INSTANCE_CREATE_ENUMERATE_PORTABILITY_BIT_KHR", flags)
	}
}
