// Package logging builds the level-filtered logger handed to every
// stage of a conversion run.
package logging

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/hashicorp/logutils"
)

const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

// Levels is ordered from most to least verbose.
var Levels = []logutils.LogLevel{LevelDebug, LevelInfo, LevelWarn, LevelError}

// NormalizeLevel upper-cases name and maps WARNING to WARN.
func NormalizeLevel(name string) (string, error) {
	level := strings.ToUpper(strings.TrimSpace(name))
	if level == "WARNING" {
		level = LevelWarn
	}
	for _, known := range Levels {
		if logutils.LogLevel(level) == known {
			return level, nil
		}
	}
	return "", fmt.Errorf("unknown log level %q", name)
}

// New returns a logger writing "[LEVEL] message" lines to w, dropping
// every line below level.
func New(w io.Writer, level string) (*log.Logger, error) {
	normalized, err := NormalizeLevel(level)
	if err != nil {
		return nil, err
	}
	filter := &logutils.LevelFilter{
		Levels:   Levels,
		MinLevel: logutils.LogLevel(normalized),
		Writer:   w,
	}
	return log.New(filter, "", 0), nil
}
