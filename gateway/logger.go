package gateway

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger builds the process logger: a console writer on stdout, plus JSON
// lines to a rotated file when setting.File is set.
func NewLogger(setting LoggingSetting) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if setting.Level != "" {
		l, err := zerolog.ParseLevel(strings.ToLower(setting.Level))
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", setting.Level, err)
		}
		level = l
	}

	console := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.DateTime,
	}
	console.FormatLevel = func(i any) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}

	var w io.Writer = console
	if setting.File != "" {
		w = zerolog.MultiLevelWriter(console, &lumberjack.Logger{
			Filename:   setting.File,
			MaxSize:    setting.MaxSize,
			MaxAge:     setting.MaxAge,
			MaxBackups: setting.MaxBackups,
			LocalTime:  true,
		})
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}
