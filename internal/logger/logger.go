// Package logger configure the application's logging,
// monitoring, and observability.
//
// It uses *ZeroLog* for logging and integrates with
// *New Relic* to instrument the codebase, forwarding logs,
// metrics, and traces for debugging.
//
// Events at info and above are written to the persistent, size-rotated
// log file (lumberjack) as plain text lines. Every event that passes the
// configured level also goes to stderr as console or JSON output.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/locallens/contact-backend/internal/config"
	"github.com/newrelic/go-agent/v3/integrations/logcontext-v2/zerologWriter"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileTimeFormat is the timestamp layout of persistent log lines.
const FileTimeFormat = "2006-01-02 15:04:05.000"

// FileMinLevel is the lowest level written to the log file. Debug output
// only goes to stderr.
const FileMinLevel = zerolog.InfoLevel

// NewLogger builds the root application logger.
//
// The returned io.Closer flushes and closes the log file; call it on
// shutdown. loggerService may be nil, in which case no logs are
// forwarded to New Relic.
func NewLogger(cfg *config.ObservabilityConfig, loggerService *LoggerService) (zerolog.Logger, io.Closer, error) {
	level, err := zerolog.ParseLevel(cfg.GetLogLevel())
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("invalid log level %q: %w", cfg.GetLogLevel(), err)
	}

	file, err := newFileWriter(cfg.Logging)
	if err != nil {
		return zerolog.Nop(), nil, err
	}

	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	// Millisecond timestamps survive the round trip through the file writer.
	zerolog.TimeFieldFormat = time.RFC3339Nano

	var stderr io.Writer = os.Stderr
	if cfg.Logging.Format != "json" && !cfg.IsProduction() {
		stderr = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}

	// Forward to New Relic only when the agent is running.
	if loggerService != nil && loggerService.GetApplication() != nil && cfg.NewRelic.AppLogForwardingEnabled {
		stderr = zerologWriter.New(stderr, loggerService.GetApplication())
	}

	fileOut := &zerolog.FilteredLevelWriter{
		Writer: zerolog.LevelWriterAdapter{Writer: fileConsoleWriter(file)},
		Level:  FileMinLevel,
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(fileOut, stderr)).
		Level(level).
		With().
		Timestamp().
		Str("service", cfg.ServiceName).
		Str("environment", cfg.Environment).
		Logger()

	return logger, file, nil
}

// newFileWriter opens the rotating log file, creating its directory.
func newFileWriter(cfg config.LoggingConfig) (*lumberjack.Logger, error) {
	if dir := filepath.Dir(cfg.File); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	return &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   true,
	}, nil
}

// fileConsoleWriter renders events as one uncoloured text line:
//
//	2024-05-01 09:30:00.000 [INFO] Submission: John <john@example.com> – Hello
func fileConsoleWriter(out io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    true,
		TimeFormat: FileTimeFormat,
		FormatLevel: func(i any) string {
			if i == nil {
				return "[-]"
			}
			return "[" + strings.ToUpper(fmt.Sprint(i)) + "]"
		},
	}
}

// WithTraceContext adds the transaction's trace.id and span.id so log
// lines can be correlated with traces.
func WithTraceContext(logger zerolog.Logger, txn *newrelic.Transaction) zerolog.Logger {
	if txn == nil {
		return logger
	}

	metadata := txn.GetTraceMetadata()

	return logger.With().
		Str("trace.id", metadata.TraceID).
		Str("span.id", metadata.SpanID).
		Logger()
}
