package vkutil

import (
	"log/slog"
	"testing"

	"github.com/vkngwrapper/extensions/ext_debug_utils"
)

func TestSeverityLevel(t *testing.T) {
	tests := []struct {
		severity ext_debug_utils.MessageSeverities
		want     slog.Level
	}{
		{ext_debug_utils.SeverityVerbose, slog.LevelDebug},
		{ext_debug_utils.SeverityInfo, slog.LevelInfo},
		{ext_debug_utils.SeverityWarning, slog.LevelWarn},
		{ext_debug_utils.SeverityError, slog.LevelError},
		{ext_debug_utils.SeverityWarning | ext_debug_utils.SeverityError, slog.LevelError},
	}

	for _, test := range tests {
		if got := SeverityLevel(test.severity); got != test.want {
			t.Errorf("SeverityLevel(%v) = %v, want %v", test.severity, got, test.want)
		}
	}
}
