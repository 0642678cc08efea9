package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/0xalexb/hjarta-params/check"
	"github.com/0xalexb/hjarta-params/config"
)

// Section is the namespace of the logging parameters.
const Section = "log"

// LevelPath is the parameter holding the log level name.
const LevelPath = Section + ".level"

// LoggerConfig holds the settings NewLogger needs.
type LoggerConfig struct {
	Level string
}

// NewLogger returns a JSON logger writing to w. Unknown or empty levels mean INFO.
func NewLogger(settings LoggerConfig, w io.Writer) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		AddSource:   false,
		Level:       ParseLevel(settings.Level),
		ReplaceAttr: nil,
	})

	return slog.New(handler)
}

// ParseLevel maps a case-insensitive level name to a slog.Level.
// WARNING is accepted as WARN.
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Declare adds the log section to cfg.
func Declare(cfg *config.Config) *config.Section {
	return cfg.DeclareSection(Section, "Logging").
		Param("level", config.Param{
			Checker:  levelName{choices: check.OneOf("debug", "info", "warn", "error")},
			Default:  "info",
			Required: false,
			Desc:     "minimum level of emitted records",
		})
}

// levelName lowercases level names, spelling WARNING as warn, before
// matching them against choices.
type levelName struct {
	choices check.Checker
}

func (l levelName) Check(value any) (any, error) {
	if text, ok := value.(string); ok {
		name := strings.ToLower(strings.TrimSpace(text))
		if name == "warning" {
			name = "warn"
		}

		value = name
	}

	return l.choices.Check(value)
}

func (l levelName) Help() string { return l.choices.Help() }

// FromConfig builds a logger from the log level resolved in cfg.
// Declare must have been called on cfg.
func FromConfig(cfg *config.Config, w io.Writer) (*slog.Logger, error) {
	level, err := cfg.Get(LevelPath)
	if err != nil {
		return nil, fmt.Errorf("log settings: %w", err)
	}

	name, _ := level.(string)

	return NewLogger(LoggerConfig{Level: name}, w), nil
}
