package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by logging at debug level.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that write to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger.WithPrefix("hooks")}
}

func (h *LogHooks) OnLayoutStart(_ context.Context, noteCount int) {
	h.logger.Debug("layout start", "notes", noteCount)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, clef string, unresolved int, d time.Duration, err error) {
	h.logger.Debug("layout done", "clef", clef, "unresolved", unresolved, "took", d, "err", err)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render start", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.logger.Debug("render done", "formats", formats, "took", d, "err", err)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnCacheError(_ context.Context, keyType string, err error) {
	h.logger.Debug("cache error", "type", keyType, "err", err)
}

func (h *LogHooks) OnRequest(_ context.Context, requestID, method, path string) {
	h.logger.Debug("request", "id", requestID, "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, requestID, method, path string, status int, d time.Duration) {
	h.logger.Debug("response", "id", requestID, "method", method, "path", path, "status", status, "took", d)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ ServerHooks   = (*LogHooks)(nil)
)
