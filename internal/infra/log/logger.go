package logs

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"profilehub/config"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Params defines the parameters required for the logger
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
}

// New creates and initializes slog.Logger
func New(params Params) (*slog.Logger, error) {
	logCfg := params.Config.Env.Log

	// Parse log level from config
	level, err := parseLogLevel(logCfg.Level)
	if err != nil {
		return nil, err
	}

	var out io.Writer = os.Stdout
	if sink := newFileSink(logCfg.File); sink != nil {
		out = io.MultiWriter(os.Stdout, sink)
		params.Append(fx.StopHook(sink.Close))
	}

	logger := newLogger(out, level, logCfg.Pretty).
		With(slog.String("service", params.Config.Env.ServiceName))

	return logger, nil
}

func newLogger(out io.Writer, level slog.Level, pretty bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if pretty {
		return slog.New(slog.NewTextHandler(out, opts))
	}

	return slog.New(slog.NewJSONHandler(out, opts))
}

// newFileSink returns a size-rotated file writer, or nil when no path is configured.
func newFileSink(cfg config.LogFile) *lumberjack.Logger {
	if strings.TrimSpace(cfg.Path) == "" {
		return nil
	}

	return &lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}
}

// parseLogLevel converts string log level to slog.Level
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, errors.Errorf("unknown log level: %s", level)
	}
}
