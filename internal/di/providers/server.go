package providers

import (
	"context"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/cinematicapp/cinematic-server/internal/api"
	"github.com/cinematicapp/cinematic-server/internal/config"
	"github.com/cinematicapp/cinematic-server/internal/logger"
	"github.com/cinematicapp/cinematic-server/internal/service"
	"github.com/cinematicapp/cinematic-server/internal/sse"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server

	identity *service.IdentityService
}

// Shutdown implements do.Shutdownable. Pending photo uploads finish
// before the listener closes so accepted uploads are never dropped.
func (h *HTTPServerHandle) Shutdown() error {
	h.identity.WaitForUploads()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	identityService := do.MustInvoke[*service.IdentityService](i)
	prefsService := do.MustInvoke[*service.PreferenceService](i)
	savedService := do.MustInvoke[*service.SavedService](i)
	discoveryService := do.MustInvoke[*service.DiscoveryService](i)
	movieSearcher := do.MustInvoke[*service.MovieSearcher](i)
	recommendService := do.MustInvoke[*service.RecommendService](i)

	// Restore the persisted session before serving requests.
	session, err := identityService.Rehydrate(context.Background())
	if err != nil {
		return nil, err
	}
	if session == nil {
		log.Info("No active session, starting anonymous")
	}

	sseHandler := sse.NewHandler(sseHandle.Manager, log.Logger)

	services := &api.Services{
		Identity:  identityService,
		Prefs:     prefsService,
		Saved:     savedService,
		Discovery: discoveryService,
		Search:    movieSearcher,
		Recommend: recommendService,
	}

	handler := api.NewServer(storeHandle.Store, services, sseHandler, log.Logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	log.Info("Server running", "addr", srv.Addr, "name", cfg.Server.Name)

	return &HTTPServerHandle{Server: srv, identity: identityService}, nil
}
