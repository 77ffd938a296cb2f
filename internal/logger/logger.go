package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config describes how diagnostics are written. Output defaults to stderr,
// stdout is reserved for shares and secrets.
type Config struct {
	Level      string
	Format     string
	AddSource  bool
	SourcePath string
	Output     io.Writer
}

func New(conf Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		AddSource:   conf.AddSource,
		Level:       ParseLevel(conf.Level),
		ReplaceAttr: replaceAttr(conf),
	}

	out := conf.Output
	if out == nil {
		out = os.Stderr
	}

	return slog.New(getHandler(conf.Format, out, opts))
}

// ParseLevel maps a level name to a slog.Level, defaulting to info.
func ParseLevel(logLevel string) slog.Level {
	switch strings.ToLower(logLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getHandler(format string, out io.Writer, opts *slog.HandlerOptions) slog.Handler {
	switch strings.ToLower(format) {
	case "json":
		return slog.NewJSONHandler(out, opts)

	default:
		return slog.NewTextHandler(out, opts)
	}
}

func replaceAttr(conf Config) func(groups []string, a slog.Attr) slog.Attr {
	return func(_ []string, attr slog.Attr) slog.Attr {
		if attr.Key != slog.SourceKey {
			return attr
		}

		source, ok := attr.Value.Any().(*slog.Source)
		if !ok || source == nil {
			return attr
		}

		file := source.File
		if conf.SourcePath != "" {
			if index := strings.Index(file, conf.SourcePath); index >= 0 {
				file = file[index+len(conf.SourcePath):]
			}
		}

		return slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", file, source.Line))
	}
}
