package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/fosdem/glbootstrap/lib/bootstrap"
	"github.com/fosdem/glbootstrap/lib/config"
	"github.com/fosdem/glbootstrap/lib/metrics"
	"github.com/fosdem/glbootstrap/lib/stats"
	"github.com/gorilla/websocket"
)

// Target is what the API controls. bootstrap.Bootstrap implements it; none
// of these methods touch the GL context.
type Target interface {
	RequestClose()
	Snapshot() stats.Snapshot
	Info() bootstrap.Info
	SetWsClients(n int)
}

type Api struct {
	srv    http.Server
	mux    *http.ServeMux
	cfg    *config.ApiCfg
	target Target
	log    *slog.Logger

	wsMutex   sync.Mutex
	wsClients map[*websocket.Conn]bool
}

func New(cfg *config.ApiCfg, t Target, logger *slog.Logger) *Api {
	a := &Api{}
	a.cfg = cfg
	a.mux = http.NewServeMux()
	a.target = t
	a.log = logger
	a.srv.Addr = cfg.Bind
	a.srv.Handler = a.mux
	a.wsClients = make(map[*websocket.Conn]bool)

	a.mux.HandleFunc("GET /api/stats", a.getStats)
	a.mux.HandleFunc("GET /api/config", a.handleConfig)
	a.mux.HandleFunc("POST /api/close", a.handleClose)
	a.mux.HandleFunc("GET /api/ws", a.handleWebsocket)
	a.mux.Handle("GET /metrics", metrics.Handler())
	return a
}

func (a *Api) Handler() http.Handler {
	return a.mux
}

func (a *Api) Serve() error {
	err := a.srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops the server and drops websocket clients, which the server
// no longer tracks once upgraded.
func (a *Api) Shutdown(ctx context.Context) error {
	a.closeClients()
	return a.srv.Shutdown(ctx)
}

// @Summary	Ask the render loop to exit
// @Router		/api/close [post]
// @Tags		base
// @Success	200
func (a *Api) handleClose(w http.ResponseWriter, _ *http.Request) {
	a.log.Info("closing as per api request")
	a.target.RequestClose()
	_, err := fmt.Fprintf(w, "\"ok\"\n")
	if err != nil {
		a.log.Warn(fmt.Sprintf("could not write response: %s", err))
	}
}

// @Summary	Get render statistics
// @Router		/api/stats [get]
// @Tags		base
// @Success	200
func (a *Api) getStats(w http.ResponseWriter, _ *http.Request) {
	a.writeJSON(w, a.target.Snapshot())
}

// @Summary	Describe the window, shaders and geometry
// @Router		/api/config [get]
// @Tags		base
// @Success	200
func (a *Api) handleConfig(w http.ResponseWriter, _ *http.Request) {
	a.writeJSON(w, a.target.Info())
}

func (a *Api) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	encoder := json.NewEncoder(w)
	err := encoder.Encode(v)
	if err != nil {
		http.Error(w, fmt.Sprintf("couldn't encode response: %s", err), http.StatusInternalServerError)
		return
	}
}

// ServeInBackground starts the API if it is configured and returns nil
// otherwise.
func ServeInBackground(t Target, cfg *config.ApiCfg, logger *slog.Logger) *Api {
	if cfg == nil {
		return nil
	}
	theApi := New(cfg, t, logger)

	logger.Info(fmt.Sprintf("starting web server on %s", cfg.Bind))
	go func() {
		err := theApi.Serve()
		if err != nil {
			logger.Error(fmt.Sprintf("web server stopped: %s", err))
		}
	}()
	return theApi
}
