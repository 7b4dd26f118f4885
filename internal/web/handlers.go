package web

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jaminalder/codex-binoxxo/internal/app"
	"github.com/jaminalder/codex-binoxxo/internal/domain"
	"github.com/jaminalder/codex-binoxxo/internal/game"
	"github.com/jaminalder/codex-binoxxo/internal/i18n"
)

type handlers struct {
	svc *app.Service
	tpl *templates
	log zerolog.Logger
}

// renderApp is also installed as the service's broadcast renderer.
func (h *handlers) renderApp(snap game.Snapshot, b *i18n.Bundle) []byte {
	out, err := renderTemplate(h.tpl.app, buildView(snap, b, h.log))
	if err != nil {
		h.log.Error().Err(err).Msg("render app fragment")
	}
	return out
}

func (h *handlers) index(w http.ResponseWriter, r *http.Request) {
	pid := ensurePlayerCookie(w, r)
	ctx := r.Context()
	snap := h.svc.Session(ctx, pid)
	page, err := renderTemplate(h.tpl.page, buildView(snap, h.svc.Bundle(ctx, pid), h.log))
	if err != nil {
		h.log.Error().Err(err).Msg("render page")
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(page)
}

// intentParser reads an intent from a request form.
type intentParser func(r *http.Request) (game.Intent, error)

func fixed(in game.Intent) intentParser {
	return func(*http.Request) (game.Intent, error) { return in, nil }
}

func parseToggle(r *http.Request) (game.Intent, error) {
	_ = r.ParseForm()
	c, errC := strconv.Atoi(r.Form.Get("c"))
	row, errR := strconv.Atoi(r.Form.Get("r"))
	if errC != nil || errR != nil {
		return nil, fmt.Errorf("bad cell c=%q r=%q", r.Form.Get("c"), r.Form.Get("r"))
	}
	return game.Toggle{Col: c, Row: row}, nil
}

func parseNewGame(r *http.Request) (game.Intent, error) {
	_ = r.ParseForm()
	d, err := domain.ParseDifficulty(r.Form.Get("difficulty"))
	if err != nil {
		return nil, err
	}
	return game.NewGame{Difficulty: d}, nil
}

// act dispatches the parsed intent and answers with the #app fragment.
// Plain form posts without htmx are redirected to the page.
func (h *handlers) act(parse intentParser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pid := ensurePlayerCookie(w, r)
		in, err := parse(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		ctx := r.Context()
		snap, err := h.svc.Dispatch(ctx, pid, in)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if r.Header.Get("HX-Request") == "" {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(h.renderApp(snap, h.svc.Bundle(ctx, pid)))
	}
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok")
}

var heartbeatInterval = 15 * time.Second

func (h *handlers) events(w http.ResponseWriter, r *http.Request) {
	pid := ensurePlayerCookie(w, r)
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Accel-Buffering", "no")
	// In tests or non-EventSource requests, just acknowledge headers and return
	if r.Header.Get("Accept") != "text/event-stream" {
		w.WriteHeader(http.StatusOK)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		w.WriteHeader(http.StatusOK)
		return
	}
	ctx := r.Context()
	ch, unsub := h.svc.Subscribe(ctx, pid)
	defer unsub()
	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()
	flusher.Flush()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = io.WriteString(w, ": ping\n\n")
			flusher.Flush()
		case b, ok := <-ch:
			if !ok {
				return
			}
			writeEvent(w, "app", b)
			flusher.Flush()
		}
	}
}

// writeEvent emits one SSE event; every payload line gets its own data field.
func writeEvent(w io.Writer, name string, payload []byte) {
	_, _ = fmt.Fprintf(w, "event: %s\n", name)
	for _, line := range strings.Split(string(payload), "\n") {
		_, _ = fmt.Fprintf(w, "data: %s\n", line)
	}
	_, _ = io.WriteString(w, "\n")
}
