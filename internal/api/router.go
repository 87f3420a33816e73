// Package api provides the sidecar HTTP surface for domain scoring.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/soclabs/dgahound/internal/score"
	"github.com/soclabs/dgahound/internal/slack"
)

// defaultRequestTimeout bounds one scoring request end to end
const defaultRequestTimeout = 30 * time.Second

// RouterConfig carries the handler dependencies
type RouterConfig struct {
	// Engine scores domains; required
	Engine *score.Engine
	// Notifier posts alerts on dga verdicts; optional
	Notifier *slack.Client
	// MaxBodySize caps the request body in bytes
	MaxBodySize int64
	// CheckDNS enables live DNS context on scored domains
	CheckDNS bool
}

// NewRouter creates a chi router with all endpoints and middleware
func NewRouter(cfg RouterConfig) http.Handler {
	h := &Handler{
		engine:      cfg.Engine,
		notifier:    cfg.Notifier,
		maxBodySize: cfg.MaxBodySize,
		checkDNS:    cfg.CheckDNS,
	}

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(defaultRequestTimeout))
	r.Use(middleware.Heartbeat("/ping"))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.handleHealth)
		r.Post("/analyze", h.handleAnalyze)
	})

	return r
}
