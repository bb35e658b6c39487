package telemetry

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/yairfalse/awsls/internal/config"
)

// OTELHook adds trace and span IDs to every log entry
type OTELHook struct{}

func (h OTELHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if ctx == nil {
		return
	}

	span := trace.SpanFromContext(ctx)
	if !span.SpanContext().IsValid() {
		return
	}

	e.Str("trace_id", span.SpanContext().TraceID().String())
	e.Str("span_id", span.SpanContext().SpanID().String())

	if level == zerolog.ErrorLevel {
		span.SetStatus(codes.Error, msg)
	}
}

// NewLogger builds the process logger. With debug set, JSON lines at debug
// level go to cfg.File; otherwise a console writer on stderr logs at
// cfg.Level. The returned closer releases the log file, if any.
func NewLogger(cfg config.LogConfig, debug bool, stderr io.Writer) (zerolog.Logger, io.Closer, error) {
	if debug {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
		}
		logger := zerolog.New(f).
			Level(zerolog.DebugLevel).
			With().
			Timestamp().
			Caller().
			Logger().
			Hook(OTELHook{})
		return logger, f, nil
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("parse log level: %w", err)
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().
		Timestamp().
		Logger().
		Hook(OTELHook{})
	return logger, nopCloser{}, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
