package vkutil

import (
	"testing"

	"github.com/vkngwrapper/core/core1_0"
)

func TestSelectDevice(t *testing.T) {
	candidates := []DeviceCandidate{
		{Name: "llvmpipe (LLVM 15.0.7, 256 bits)", Type: core1_0.PhysicalDeviceTypeCPU},
		{Name: "Intel(R) UHD Graphics 620", Type: core1_0.PhysicalDeviceTypeIntegratedGPU},
		{Name: "NVIDIA GeForce RTX 3070", Type: core1_0.PhysicalDeviceTypeDiscreteGPU},
		{Name: "AMD Radeon RX 6800", Type: core1_0.PhysicalDeviceTypeDiscreteGPU},
	}

	tests := []struct {
		name      string
		preferred string
		want      int
		matched   bool
	}{
		{"best type, first of ties", "", 2, false},
		{"preferred name", "radeon", 3, true},
		{"preferred beats type", "LLVMPIPE", 0, true},
		{"unknown preference ignored", "apple", 2, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, matched, ok := SelectDevice(candidates, test.preferred)
			if !ok {
				t.Fatal("expected a device")
			}
			if got != test.want || matched != test.matched {
				t.Errorf("SelectDevice() = (%d, %v), want (%d, %v)", got, matched, test.want, test.matched)
			}
		})
	}

	if _, _, ok := SelectDevice(nil, ""); ok {
		t.Error("no candidates should not select anything")
	}
}

func TestTypeRankOrder(t *testing.T) {
	order := []core1_0.PhysicalDeviceType{
		core1_0.PhysicalDeviceTypeDiscreteGPU,
		core1_0.PhysicalDeviceTypeIntegratedGPU,
		core1_0.PhysicalDeviceTypeVirtualGPU,
		core1_0.PhysicalDeviceTypeCPU,
		core1_0.PhysicalDeviceTypeOther,
	}

	for i := 1; i < len(order); i++ {
		if TypeRank(order[i-1]) >= TypeRank(order[i]) {
			t.Errorf("%v should rank before %v", order[i-1], order[i])
		}
	}
}

func TestHasExtensions(t *testing.T) {
	available := map[string]int{"VK_KHR_swapchain": 1, "VK_KHR_portability_subset": 1}

	if !HasExtensions(available, []string{"VK_KHR_swapchain"}) {
		t.Error("swapchain should be found")
	}
	if HasExtensions(available, []string{"VK_KHR_swapchain", "VK_KHR_ray_query"}) {
		t.Error("missing extension should fail the check")
	}
	if !HasExtensions(available, nil) {
		t.Error("no requirements should always pass")
	}
}
