package vkutil

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/core1_0"
)

// FindMemoryType returns the first memory type allowed by typeFilter that has
// all of the requested properties. typeFlags holds the property flags of each
// memory type in the device's order.
func FindMemoryType(typeFlags []core1_0.MemoryPropertyFlags, typeFilter uint32, properties core1_0.MemoryPropertyFlags) (int, error) {
	for i, flags := range typeFlags {
		typeBit := uint32(1 << i)

		if (typeFilter&typeBit) != 0 && (flags&properties) == properties {
			return i, nil
		}
	}

	return 0, errors.Newf("failed to find any suitable memory type for filter %#x, properties %s", typeFilter, properties)
}
