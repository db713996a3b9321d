package vkutil

import (
	"log/slog"

	"github.com/vkngwrapper/extensions/ext_debug_utils"
)

// SeverityLevel maps a validation message severity onto a log level, taking
// the most severe bit when several are set.
func SeverityLevel(severity ext_debug_utils.MessageSeverities) slog.Level {
	switch {
	case severity&ext_debug_utils.SeverityError != 0:
		return slog.LevelError
	case severity&ext_debug_utils.SeverityWarning != 0:
		return slog.LevelWarn
	case severity&ext_debug_utils.SeverityInfo != 0:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}
