package vkutil

import "github.com/vkngwrapper/core/core1_0"

type QueueFamilyIndices struct {
	GraphicsFamily *int
	PresentFamily  *int
}

func (i *QueueFamilyIndices) IsComplete() bool {
	return i.GraphicsFamily != nil && i.PresentFamily != nil
}

// Unique lists the distinct families, graphics first.
func (i *QueueFamilyIndices) Unique() []int {
	families := []int{*i.GraphicsFamily}
	if *i.PresentFamily != *i.GraphicsFamily {
		families = append(families, *i.PresentFamily)
	}
	return families
}

// FindQueueFamilies takes the queue flags of each family in order and a check
// for surface support. A family that can both draw and present is preferred
// over a split pair.
func FindQueueFamilies(familyFlags []core1_0.QueueFlags, presentSupport func(family int) (bool, error)) (QueueFamilyIndices, error) {
	var indices QueueFamilyIndices

	for family, flags := range familyFlags {
		graphics := flags&core1_0.QueueGraphics != 0

		present, err := presentSupport(family)
		if err != nil {
			return indices, err
		}

		if graphics && present {
			return QueueFamilyIndices{GraphicsFamily: intPtr(family), PresentFamily: intPtr(family)}, nil
		}

		if graphics && indices.GraphicsFamily == nil {
			indices.GraphicsFamily = intPtr(family)
		}
		if present && indices.PresentFamily == nil {
			indices.PresentFamily = intPtr(family)
		}
	}

	return indices, nil
}

func intPtr(value int) *int {
	return &value
}
