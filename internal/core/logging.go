package core

import (
	"context"
	"log/slog"
)

// NopLogger returns a logger that drops every record. Components default to
// it so they stay silent unless a logger is wired in.
func NopLogger() *slog.Logger {
	return slog.New(disabledSlogHandler{})
}

type disabledSlogHandler struct{}

func (d disabledSlogHandler) Enabled(_ context.Context, _ slog.Level) bool  { return false }
func (d disabledSlogHandler) Handle(_ context.Context, _ slog.Record) error { return nil }
func (d disabledSlogHandler) WithAttrs(_ []slog.Attr) slog.Handler          { return disabledSlogHandler{} }
func (d disabledSlogHandler) WithGroup(_ string) slog.Handler               { return disabledSlogHandler{} }
