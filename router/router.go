// Copyright (c) 2026 VoteUp Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/voteup/server/cliparse"
	"github.com/voteup/server/event"
	"github.com/voteup/server/handlers"
	"github.com/voteup/server/images"
	"github.com/voteup/server/livefeed"
	"github.com/voteup/server/metrics"
	"github.com/voteup/server/middleware"
	"github.com/voteup/server/store"
)

// Deps bundles everything the handlers need. main builds it once at
// startup and hands it over.
type Deps struct {
	Store     *store.Store
	Hub       *livefeed.Hub
	Publisher event.Publisher
	Metrics   *metrics.ServerMetrics
	Cleaner   *images.Cleaner
	Config    cliparse.Config
}

func NewRouter(deps Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	voteHandler := handlers.NewVoteHandler(deps.Store, deps.Cleaner, deps.Config)
	responseHandler := handlers.NewResponseHandler(deps.Store, deps.Hub, deps.Publisher, deps.Metrics, deps.Config)
	liveHandler := handlers.NewLiveHandler(deps.Store, deps.Hub, deps.Metrics)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus metrics
	mux.Handle("GET /metrics", promhttp.Handler())

	// Vote management (host operations)
	mux.HandleFunc("POST /votes", middleware.WithLogging(voteHandler.CreateVote))
	mux.HandleFunc("GET /hosts/votes", middleware.WithLogging(voteHandler.ListMyVotes))
	mux.HandleFunc("PATCH /votes/{id}", middleware.WithLogging(voteHandler.UpdateVote))
	mux.HandleFunc("POST /votes/{id}/status", middleware.WithLogging(voteHandler.SetStatus))
	mux.HandleFunc("DELETE /votes/{id}", middleware.WithLogging(voteHandler.DeleteVote))

	// Participant operations (public)
	mux.HandleFunc("GET /votes/{id}", middleware.WithLogging(voteHandler.GetVote))
	mux.HandleFunc("POST /votes/{id}/responses", middleware.WithLogging(responseHandler.Submit))
	mux.HandleFunc("GET /votes/{id}/responses", middleware.WithLogging(responseHandler.ListResponses))
	mux.HandleFunc("GET /votes/{id}/responses/me", middleware.WithLogging(responseHandler.MyResponses))
	mux.HandleFunc("GET /votes/{id}/results", middleware.WithLogging(responseHandler.Results))

	// Live feed (websocket)
	mux.HandleFunc("GET /votes/{id}/live", liveHandler.Live)

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("voteup API v1"))
	})

	return mux
}
