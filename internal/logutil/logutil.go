package logutil

import (
	"io"
	"log/slog"
	"path/filepath"

	"github.com/weathercheck/weathertray/internal/envconfig"
)

// NewLogger builds the application logger. The handler format is chosen by
// WEATHER_TRAY_LOG_FORMAT; source locations are trimmed to the base filename.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: true,
		ReplaceAttr: func(_ []string, attr slog.Attr) slog.Attr {
			if attr.Key == slog.SourceKey {
				source := attr.Value.Any().(*slog.Source)
				source.File = filepath.Base(source.File)
			}
			return attr
		},
	}

	if envconfig.LogFormat() == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
