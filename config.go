package nntpframe

import (
	"context"
	"log/slog"
	"time"
)

// Logger interface compatible with slog.Logger
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	DebugContext(ctx context.Context, msg string, args ...any)
	InfoContext(ctx context.Context, msg string, args ...any)
	WarnContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)
}

type Config struct {
	// Logger receives exchange diagnostics. Defaults to slog.Default().
	Logger Logger
	// MultiLineCodes overrides the multi-line classification table.
	// Nil means DefaultMultiLineCodes.
	MultiLineCodes ClassificationTable
	// MaxReplySize caps the size of a single reply in bytes. Zero means
	// unbounded.
	MaxReplySize int
	// DisableMetrics turns off exchange counters.
	DisableMetrics bool
}

// ConnConfig configures a Conn.
type ConnConfig struct {
	Config
	// Timeout bounds each exchange when the context carries no deadline.
	// Zero means no deadline.
	Timeout time.Duration
	// QuitTimeout bounds the QUIT exchange sent by Close.
	QuitTimeout time.Duration
}

var (
	configDefault     = Config{}
	connConfigDefault = ConnConfig{
		QuitTimeout: 5 * time.Second,
	}
)

func mergeWithDefault(config ...Config) Config {
	if len(config) == 0 {
		return configDefault
	}

	cfg := config[0]

	if cfg.MaxReplySize < 0 {
		cfg.MaxReplySize = configDefault.MaxReplySize
	}

	return cfg
}

func mergeConnWithDefault(config ...ConnConfig) ConnConfig {
	if len(config) == 0 {
		return connConfigDefault
	}

	cfg := config[0]
	cfg.Config = mergeWithDefault(cfg.Config)

	if cfg.QuitTimeout == 0 {
		cfg.QuitTimeout = connConfigDefault.QuitTimeout
	}

	return cfg
}

// logger resolves lazily so slog.SetDefault is honored after package init.
func (c Config) logger() Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}
