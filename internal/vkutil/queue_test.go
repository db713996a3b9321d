package vkutil

import (
	"errors"
	"testing"

	"github.com/vkngwrapper/core/core1_0"
)

func presentOn(families ...int) func(int) (bool, error) {
	return func(family int) (bool, error) {
		for _, f := range families {
			if f == family {
				return true, nil
			}
		}
		return false, nil
	}
}

func TestFindQueueFamilies(t *testing.T) {
	tests := []struct {
		name     string
		flags    []core1_0.QueueFlags
		present  func(int) (bool, error)
		graphics int
		presentF int
		complete bool
	}{
		{
			name:     "shared family preferred",
			flags:    []core1_0.QueueFlags{core1_0.QueueGraphics, core1_0.QueueCompute, core1_0.QueueGraphics | core1_0.QueueTransfer},
			present:  presentOn(1, 2),
			graphics: 2,
			presentF: 2,
			complete: true,
		},
		{
			name:     "split families",
			flags:    []core1_0.QueueFlags{core1_0.QueueGraphics, core1_0.QueueTransfer},
			present:  presentOn(1),
			graphics: 0,
			presentF: 1,
			complete: true,
		},
		{
			name:     "no present",
			flags:    []core1_0.QueueFlags{core1_0.QueueGraphics},
			present:  presentOn(),
			complete: false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			indices, err := FindQueueFamilies(test.flags, test.present)
			if err != nil {
				t.Fatalf("FindQueueFamilies: %v", err)
			}
			if indices.IsComplete() != test.complete {
				t.Fatalf("IsComplete() = %v, want %v", indices.IsComplete(), test.complete)
			}
			if !test.complete {
				return
			}
			if *indices.GraphicsFamily != test.graphics || *indices.PresentFamily != test.presentF {
				t.Errorf("got graphics %d present %d, want %d %d",
					*indices.GraphicsFamily, *indices.PresentFamily, test.graphics, test.presentF)
			}
		})
	}
}

func TestFindQueueFamiliesSupportError(t *testing.T) {
	supportErr := errors.New("surface lost")
	_, err := FindQueueFamilies([]core1_0.QueueFlags{core1_0.QueueGraphics}, func(int) (bool, error) {
		return false, supportErr
	})
	if !errors.Is(err, supportErr) {
		t.Errorf("expected the present support error, got %v", err)
	}
}

func TestUnique(t *testing.T) {
	shared := QueueFamilyIndices{GraphicsFamily: intPtr(1), PresentFamily: intPtr(1)}
	if got := shared.Unique(); len(got) != 1 || got[0] != 1 {
		t.Errorf("shared Unique() = %v", got)
	}

	split := QueueFamilyIndices{GraphicsFamily: intPtr(0), PresentFamily: intPtr(2)}
	if got := split.Unique(); len(got) != 2 || got[0] != 0 || got[1] != 2 {
		t.Errorf("split Unique() = %v", got)
	}
}
