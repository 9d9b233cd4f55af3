package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/minidraw/pkg/observability"
)

// logHooks forwards library events to the logger at debug level.
type logHooks struct {
	logger *log.Logger
}

func installHooks(l *log.Logger) {
	h := &logHooks{logger: l}
	observability.SetRenderHooks(h)
	observability.SetSceneHooks(h)
	observability.SetCacheHooks(h)
}

func (h *logHooks) OnRenderStart(_ context.Context, target string, nodes int) {
	h.logger.Debug("render start", "target", target, "nodes", nodes)
}

func (h *logHooks) OnRenderComplete(_ context.Context, target string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "target", target, "err", err)
		return
	}
	h.logger.Debug("render done", "target", target, "bytes", size, "took", d.Round(time.Microsecond))
}

func (h *logHooks) OnLoadStart(_ context.Context, path, format string) {
	h.logger.Debug("load scene", "path", path, "format", format)
}

func (h *logHooks) OnLoadComplete(_ context.Context, path, _ string, nodes int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("load failed", "path", path, "err", err)
		return
	}
	h.logger.Debug("scene loaded", "path", path, "nodes", nodes, "took", d.Round(time.Microsecond))
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}
