package app

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/jaminalder/codex-binoxxo/internal/game"
	"github.com/jaminalder/codex-binoxxo/internal/i18n"
	"github.com/jaminalder/codex-binoxxo/internal/metrics"
	"github.com/jaminalder/codex-binoxxo/internal/storage"
)

// Errors exposed by the service layer.
var (
	ErrUnknownIntent = errors.New("unknown intent")
)

// Renderer turns a snapshot into the payload pushed to subscribers.
type Renderer func(game.Snapshot, *i18n.Bundle) []byte

func noRender(game.Snapshot, *i18n.Bundle) []byte { return nil }

// session is the state of one player. Its mutex serialises intents so they
// apply in arrival order.
type session struct {
	mu       sync.Mutex
	state    *game.State
	settings *storage.Settings
	// unix nanos of the last access, read by Prune without taking mu
	updated atomic.Int64
}

func (s *session) touch() { s.updated.Store(time.Now().UnixNano()) }

type subscriber struct {
	mu     sync.Mutex
	ch     chan []byte
	closed bool
}

func (s *subscriber) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.ch)
	}
}

// offer delivers b without blocking. It reports false when the buffer is full.
func (s *subscriber) offer(b []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return true
	}
	select {
	case s.ch <- b:
		return true
	default:
		return false
	}
}

// Service manages one game session per player and fans out updates to the
// player's other connections.
type Service struct {
	engine    game.Engine
	reducer   *game.Reducer
	resources *i18n.ResourceManager
	kv        storage.KV
	log       zerolog.Logger

	mu       sync.Mutex
	sessions map[string]*session
	subs     map[string]map[*subscriber]struct{}
	render   Renderer
}

type Option func(*Service)

// WithRenderer sets the broadcast renderer.
func WithRenderer(r Renderer) Option {
	return func(s *Service) {
		if r != nil {
			s.render = r
		}
	}
}

// NewService wires the controller. Settings of each player are kept in kv
// under a per-player prefix.
func NewService(engine game.Engine, resources *i18n.ResourceManager, kv storage.KV, log zerolog.Logger, opts ...Option) *Service {
	s := &Service{
		engine:    engine,
		reducer:   game.NewReducer(engine, log),
		resources: resources,
		kv:        kv,
		log:       log,
		sessions:  make(map[string]*session),
		subs:      make(map[string]map[*subscriber]struct{}),
		render:    noRender,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// SetRenderer replaces the broadcast renderer function.
func (s *Service) SetRenderer(renderer Renderer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if renderer == nil {
		s.render = noRender
		return
	}
	s.render = renderer
}

// Session returns the player's current view, creating the session with the
// player's stored settings on first use.
func (s *Service) Session(ctx context.Context, playerID string) game.Snapshot {
	sess := s.acquire(ctx, playerID)
	defer sess.mu.Unlock()
	return sess.state.Snapshot(s.engine)
}

// Bundle returns the translations for the player's active language.
func (s *Service) Bundle(ctx context.Context, playerID string) *i18n.Bundle {
	sess := s.acquire(ctx, playerID)
	defer sess.mu.Unlock()
	return sess.state.Bundle()
}

// Dispatch applies an intent to the player's session, persists settings
// changes and broadcasts the new view.
func (s *Service) Dispatch(ctx context.Context, playerID string, in game.Intent) (game.Snapshot, error) {
	if in == nil {
		return game.Snapshot{}, ErrUnknownIntent
	}
	sess := s.acquire(ctx, playerID)
	defer sess.mu.Unlock()

	effects := s.reducer.Update(sess.state, in)
	pctx, cancel := persistContext(ctx)
	sess.settings.Apply(pctx, effects)
	cancel()
	snap := sess.state.Snapshot(s.engine)
	metrics.Intents.WithLabelValues(in.Name()).Inc()
	s.log.Debug().Str("player", playerID).Str("intent", in.Name()).Bool("solved", snap.Solved).Msg("dispatch")

	// broadcast while holding the session lock so subscribers see updates in order
	s.broadcast(playerID, snap, sess.state.Bundle())
	return snap, nil
}

// persistTimeout bounds a settings read or write once it is detached from
// the request.
const persistTimeout = 5 * time.Second

// persistContext keeps request values but not request cancellation, so a
// client hanging up does not lose or skip a settings write or read.
func persistContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
}

// acquire returns the player's session locked and still registered. Prune
// cannot remove it until the caller unlocks.
func (s *Service) acquire(ctx context.Context, playerID string) *session {
	for {
		sess := s.session(ctx, playerID)
		sess.mu.Lock()
		s.mu.Lock()
		live := s.sessions[playerID] == sess
		s.mu.Unlock()
		if live {
			sess.touch()
			return sess
		}
		// pruned between lookup and lock
		sess.mu.Unlock()
	}
}

func (s *Service) session(ctx context.Context, playerID string) *session {
	s.mu.Lock()
	sess, ok := s.sessions[playerID]
	s.mu.Unlock()
	if ok {
		return sess
	}

	// generate outside the service lock; a concurrent creator may win
	settings := storage.NewSettings(storage.Scoped(s.kv, playerID), s.log)
	pctx, cancel := persistContext(ctx)
	stored := settings.Load(pctx)
	cancel()
	fresh := &session{
		state:    game.NewState(s.engine, stored, s.resources),
		settings: settings,
	}
	fresh.touch()

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[playerID]; ok {
		return sess
	}
	s.sessions[playerID] = fresh
	metrics.Sessions.Inc()
	s.log.Info().Str("player", playerID).Str("difficulty", fresh.state.Settings.Difficulty.String()).Msg("session created")
	return fresh
}

// Prune forgets sessions idle for longer than maxIdle that have no live
// subscribers and are not in use. Their settings stay in the store. Returns
// the number removed.
func (s *Service) Prune(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle).UnixNano()
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, sess := range s.sessions {
		if sess.updated.Load() >= cutoff || len(s.subs[id]) > 0 {
			continue
		}
		// a held session lock means an intent is in flight
		if !sess.mu.TryLock() {
			continue
		}
		delete(s.sessions, id)
		sess.mu.Unlock()
		n++
	}
	metrics.Sessions.Sub(float64(n))
	if n > 0 {
		s.log.Info().Int("pruned", n).Int("live", len(s.sessions)).Msg("pruned idle sessions")
	}
	return n
}

// broadcast fans out to the player's subscribers; slow subscribers are
// closed and dropped.
func (s *Service) broadcast(playerID string, snap game.Snapshot, bundle *i18n.Bundle) {
	s.mu.Lock()
	subs := s.copySubsLocked(playerID)
	render := s.render
	s.mu.Unlock()
	if len(subs) == 0 {
		return
	}
	payload := render(snap, bundle)

	var toDrop []*subscriber
	for sub := range subs {
		if !sub.offer(payload) {
			sub.close()
			toDrop = append(toDrop, sub)
		}
	}
	if len(toDrop) > 0 {
		s.mu.Lock()
		for _, sub := range toDrop {
			if set, ok := s.subs[playerID]; ok {
				delete(set, sub)
			}
		}
		s.mu.Unlock()
	}
}

// Subscribe registers a subscriber for a player. Returns a channel and an unsubscribe func.
func (s *Service) Subscribe(ctx context.Context, playerID string) (<-chan []byte, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set := s.subs[playerID]
	if set == nil {
		set = make(map[*subscriber]struct{})
		s.subs[playerID] = set
	}
	sub := &subscriber{ch: make(chan []byte, 1)}
	set[sub] = struct{}{}

	unsubOnce := &sync.Once{}
	unsub := func() {
		unsubOnce.Do(func() {
			s.mu.Lock()
			if set, ok := s.subs[playerID]; ok {
				delete(set, sub)
				if len(set) == 0 {
					delete(s.subs, playerID)
				}
			}
			s.mu.Unlock()
			sub.close()
		})
	}
	go func() {
		<-ctx.Done()
		unsub()
	}()
	return sub.ch, unsub
}

func (s *Service) copySubsLocked(playerID string) map[*subscriber]struct{} {
	out := make(map[*subscriber]struct{})
	if set, ok := s.subs[playerID]; ok {
		for k := range set {
			out[k] = struct{}{}
		}
	}
	return out
}
