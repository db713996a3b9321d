package vkutil

import (
	"errors"
	"testing"

	"github.com/vkngwrapper/core/common"
	"github.com/vkngwrapper/core/core1_0"
	"github.com/vkngwrapper/extensions/khr_swapchain"
)

func TestClassifyAcquire(t *testing.T) {
	deviceLost := errors.New("device lost")

	tests := []struct {
		name string
		res  common.VkResult
		err  error
		want FrameOutcome
	}{
		{"success", core1_0.VKSuccess, nil, FrameOK},
		{"suboptimal still draws", khr_swapchain.VKSuboptimal, nil, FrameOK},
		{"out of date", khr_swapchain.VKErrorOutOfDate, errors.New("out of date"), FrameRecreate},
		{"other failure", core1_0.VKErrorDeviceLost, deviceLost, FrameFatal},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := ClassifyAcquire(test.res, test.err); got != test.want {
				t.Errorf("ClassifyAcquire() = %v, want %v", got, test.want)
			}
		})
	}
}

func TestClassifyPresent(t *testing.T) {
	tests := []struct {
		name    string
		res     common.VkResult
		err     error
		resized bool
		want    FrameOutcome
	}{
		{"success", core1_0.VKSuccess, nil, false, FrameOK},
		{"resized", core1_0.VKSuccess, nil, true, FrameRecreate},
		{"suboptimal", khr_swapchain.VKSuboptimal, nil, false, FrameRecreate},
		{"out of date", khr_swapchain.VKErrorOutOfDate, errors.New("out of date"), false, FrameRecreate},
		{"other failure", core1_0.VKErrorDeviceLost, errors.New("device lost"), true, FrameFatal},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := ClassifyPresent(test.res, test.err, test.resized); got != test.want {
				t.Errorf("ClassifyPresent() = %v, want %v", got, test.want)
			}
		})
	}
}
