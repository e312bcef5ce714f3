package nakama

import (
	"context"
	"log/slog"

	"github.com/heroiclabs/nakama-common/runtime"
)

// runtimeHandler sends slog records to the Nakama runtime logger so service
// logs end up in the server log with their attributes as fields.
type runtimeHandler struct {
	logger runtime.Logger
	attrs  []slog.Attr
	group  string
}

func newServiceLogger(logger runtime.Logger) *slog.Logger {
	return slog.New(&runtimeHandler{logger: logger})
}

// Enabled defers level filtering to the Nakama logger.
func (h *runtimeHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *runtimeHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make(map[string]interface{}, len(h.attrs)+r.NumAttrs())
	for _, a := range h.attrs {
		fields[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		fields[h.key(a.Key)] = a.Value.Resolve().Any()
		return true
	})

	log := h.logger
	if len(fields) > 0 {
		log = log.WithFields(fields)
	}
	switch {
	case r.Level >= slog.LevelError:
		log.Error("%s", r.Message)
	case r.Level >= slog.LevelWarn:
		log.Warn("%s", r.Message)
	case r.Level >= slog.LevelInfo:
		log.Info("%s", r.Message)
	default:
		log.Debug("%s", r.Message)
	}
	return nil
}

func (h *runtimeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := &runtimeHandler{logger: h.logger, group: h.group}
	next.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	next.attrs = append(next.attrs, h.attrs...)
	for _, a := range attrs {
		next.attrs = append(next.attrs, slog.Attr{Key: h.key(a.Key), Value: a.Value.Resolve()})
	}
	return next
}

func (h *runtimeHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &runtimeHandler{logger: h.logger, attrs: h.attrs, group: h.key(name)}
}

func (h *runtimeHandler) key(k string) string {
	if h.group == "" {
		return k
	}
	return h.group + "." + k
}
