package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	FramesPresented = promauto.NewCounter(prometheus.CounterOpts{
		Name: "glbootstrap_frames_presented_total",
		Help: "Total number of frames swapped to the window",
	})
	ShaderFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "glbootstrap_shader_failures_total",
		Help: "Total number of shader stages that failed to compile or programs that failed to link",
	}, []string{"stage"})
	ViewportResizes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "glbootstrap_viewport_resizes_total",
		Help: "Total number of framebuffer resize events applied to the viewport",
	})
	VerticesDrawn = promauto.NewCounter(prometheus.CounterOpts{
		Name: "glbootstrap_vertices_drawn_total",
		Help: "Total number of vertices submitted to draw calls",
	})
)

// Handler should usually be mounted at /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}
