package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports every event to a logger at debug level, with failures
// at warn. It implements all hook interfaces; register it with [SetAll].
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that write to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger.WithPrefix("hooks")}
}

func (h *LogHooks) OnLayoutStart(_ context.Context, ceilingType string) {
	h.logger.Debug("layout start", "type", ceilingType)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, ceilingType string, fixtures int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("layout failed", "type", ceilingType, "err", err)
		return
	}
	h.logger.Debug("layout done", "type", ceilingType, "fixtures", fixtures, "duration", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render start", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("render failed", "formats", formats, "err", err)
		return
	}
	h.logger.Debug("render done", "formats", formats, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "stage", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "stage", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "stage", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, route string) {
	h.logger.Debug("request", "method", method, "route", route)
}

func (h *LogHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "route", route, "status", status, "duration", d)
}

func (h *LogHooks) OnPublish(_ context.Context, topic string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("publish failed", "topic", topic, "err", err)
		return
	}
	h.logger.Debug("published", "topic", topic, "bytes", size, "duration", d)
}

func (h *LogHooks) OnConnectionChange(connected bool) {
	if connected {
		h.logger.Debug("broker connected")
		return
	}
	h.logger.Warn("broker connection lost")
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
	_ PublishHooks  = (*LogHooks)(nil)
)
