package main

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// diagHandler is a minimal slog.Handler that writes leveled, timestamped
// one-line records to a single writer. It exists so the um binary's own
// diagnostics (program load, snapshot, runtime failure) look like every
// other line the interpreter prints, rather than pulling in slog's default
// multi-line text layout.
type diagHandler struct {
	out    io.Writer
	mu     *sync.Mutex
	attrs  []slog.Attr
	prefix string
}

func newDiagHandler(out io.Writer) *diagHandler {
	return &diagHandler{out: out, mu: &sync.Mutex{}}
}

func (h *diagHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= slog.LevelInfo
}

// WithAttrs and WithGroup carry accumulated state into the attrs/key prefix
// printed by Handle, the same delegation the wrapped-handler model in
// rcornwell-S370/util/logger/logger.go performs, adapted for a handler that
// formats its own line instead of wrapping a further slog.Handler.
func (h *diagHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	next = append(next, h.attrs...)
	next = append(next, attrs...)
	return &diagHandler{out: h.out, mu: h.mu, attrs: next, prefix: h.prefix}
}

func (h *diagHandler) WithGroup(name string) slog.Handler {
	prefix := h.prefix + name + "."
	return &diagHandler{out: h.out, mu: h.mu, attrs: h.attrs, prefix: prefix}
}

func (h *diagHandler) Handle(ctx context.Context, r slog.Record) error {
	parts := []string{r.Time.Format("15:04:05"), r.Level.String() + ":", r.Message}
	for _, a := range h.attrs {
		parts = append(parts, h.prefix+a.Key+"="+a.Value.String())
	}
	r.Attrs(func(a slog.Attr) bool {
		parts = append(parts, h.prefix+a.Key+"="+a.Value.String())
		return true
	})
	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, strings.Join(parts, " ")+"\n")
	return err
}
