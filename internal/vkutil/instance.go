package vkutil

import "github.com/vkngwrapper/core/core1_0"

// The pinned extensions module has no package for VK_KHR_portability_enumeration,
// so its name and create flag are spelled out here.
const (
	PortabilityEnumerationExtension = "VK_KHR_portability_enumeration"

	InstanceCreateEnumeratePortability core1_0.InstanceCreateFlags = 0x00000001
)

// PortabilityEnumeration returns the extension to enable and the instance
// flag to set when the loader offers portability enumeration. Both are zero
// when it does not.
func PortabilityEnumeration[T any](available map[string]T) ([]string, core1_0.InstanceCreateFlags) {
	if _, ok := available[PortabilityEnumerationExtension]; !ok {
		return nil, 0
	}
	return []string{PortabilityEnumerationExtension}, InstanceCreateEnumeratePortability
}
