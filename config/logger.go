package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// ParseLogLevel accepts debug, info, warn and error in any case.
func ParseLogLevel(raw string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
		return 0, fmt.Errorf("unknown log level %q", raw)
	}

	return level, nil
}

// NewLogger builds the process logger writing to w in the configured format and level.
func NewLogger(w io.Writer, cfg Config) (*slog.Logger, error) {
	level, err := ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.LogFormat == LogFormatText {
		return slog.New(slog.NewTextHandler(w, opts)), nil
	}

	return slog.New(slog.NewJSONHandler(w, opts)), nil
}
