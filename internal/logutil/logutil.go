// Package logutil configures structured logging for the pool tool.
package logutil

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"time"

	"github.com/born-ml/pool/internal/tensor"
)

// LevelTrace sits below debug and is used for per-call kernel records.
const LevelTrace slog.Level = -8

// NewLogger returns a text logger writing records at or above level to w.
// Trace records print as TRACE and source locations are trimmed to the
// file name.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:       level,
		AddSource:   true,
		ReplaceAttr: replaceAttr,
	}))
}

func replaceAttr(_ []string, attr slog.Attr) slog.Attr {
	switch attr.Key {
	case slog.LevelKey:
		if lvl, ok := attr.Value.Any().(slog.Level); ok && lvl == LevelTrace {
			attr.Value = slog.StringValue("TRACE")
		}
	case slog.SourceKey:
		if src, ok := attr.Value.Any().(*slog.Source); ok {
			src.File = filepath.Base(src.File)
		}
	}
	return attr
}

// Layer groups the attributes of one layer invocation:
//
//	layer.name=maxpool layer.in="(1, 4, 4)" layer.out="(1, 2, 2)"
func Layer(name string, in, out tensor.Shape) slog.Attr {
	return slog.Group("layer",
		slog.String("name", name),
		slog.String("in", in.String()),
		slog.String("out", out.String()),
	)
}

// Trace logs msg at LevelTrace on the default logger.
func Trace(msg string, args ...any) {
	trace(context.Background(), msg, args...)
}

// TraceContext is Trace with an explicit context.
func TraceContext(ctx context.Context, msg string, args ...any) {
	trace(ctx, msg, args...)
}

// trace must be called directly from Trace or TraceContext so that the
// recorded source is their caller.
func trace(ctx context.Context, msg string, args ...any) {
	logger := slog.Default()
	if !logger.Enabled(ctx, LevelTrace) {
		return
	}
	var pcs [1]uintptr
	runtime.Callers(3, pcs[:]) // skip Callers, trace and Trace/TraceContext
	record := slog.NewRecord(time.Now(), LevelTrace, msg, pcs[0])
	record.Add(args...)
	_ = logger.Handler().Handle(ctx, record)
}
