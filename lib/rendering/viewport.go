package rendering

import (
	"log/slog"
	"sync"

	"github.com/fosdem/glbootstrap/lib/metrics"
	"github.com/fosdem/glbootstrap/lib/rendering/glapi"
)

// Viewport follows the framebuffer size. Resize is called from the window
// layer's framebuffer callback, which runs on the render thread during
// event polling; the size is also read by the stats API.
type Viewport struct {
	api glapi.API
	log *slog.Logger

	mu            sync.Mutex
	width, height int32
}

func NewViewport(api glapi.API, logger *slog.Logger, width int, height int) *Viewport {
	v := &Viewport{api: api, log: logger}
	v.apply(width, height)
	return v
}

func (v *Viewport) Resize(width int, height int) {
	v.apply(width, height)
	metrics.ViewportResizes.Inc()
	v.log.Debug("viewport resized", slog.Int("width", width), slog.Int("height", height))
}

func (v *Viewport) apply(width int, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.width = int32(width)
	v.height = int32(height)
	v.api.Viewport(0, 0, v.width, v.height)
}

func (v *Viewport) Size() (int32, int32) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.width, v.height
}
