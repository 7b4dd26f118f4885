package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/jaminalder/codex-binoxxo/internal/app"
	"github.com/jaminalder/codex-binoxxo/internal/game"
)

// NewServer wires routes, installs the fragment renderer on s and returns an
// http.Handler.
func NewServer(s *app.Service, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(requestLogger(log))
	r.Use(chimw.Recoverer)

	h := &handlers{svc: s, tpl: loadTemplates(), log: log}
	s.SetRenderer(h.renderApp)

	r.Get("/", h.index)
	r.Post("/toggle", h.act(parseToggle))
	r.Post("/new", h.act(parseNewGame))
	r.Post("/clear", h.act(fixed(game.Clear{})))
	r.Post("/language", h.act(fixed(game.ToggleLanguage{})))
	r.Post("/helper", h.act(fixed(game.ToggleHelper{})))
	r.Get("/events", h.events)
	r.Get("/health", h.health)
	r.Handle("/metrics", promhttp.Handler())
	return r
}

// requestLogger logs one line per request once the handler returns.
func requestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Info().
				Str("req_id", chimw.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Msg("http")
		})
	}
}
