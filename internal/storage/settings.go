package storage

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/jaminalder/codex-binoxxo/internal/domain"
	"github.com/jaminalder/codex-binoxxo/internal/game"
	"github.com/jaminalder/codex-binoxxo/internal/metrics"
)

// Settings reads and writes the three user preferences. Writes are fire and
// forget and reads never fail: a broken value only resets its own setting.
type Settings struct {
	kv  KV
	log zerolog.Logger
}

func NewSettings(kv KV, log zerolog.Logger) *Settings {
	return &Settings{kv: kv, log: log}
}

// Store JSON-encodes value under key. Failures are logged and counted.
func (s *Settings) Store(ctx context.Context, key string, value any) {
	b, err := json.Marshal(value)
	if err != nil {
		s.fail(key, err, "encode setting")
		return
	}
	if err := s.kv.Put(ctx, key, string(b)); err != nil {
		s.fail(key, err, "store setting")
	}
}

func (s *Settings) fail(key string, err error, msg string) {
	metrics.SettingsStoreFailures.WithLabelValues(key).Inc()
	s.log.Warn().Err(err).Str("key", key).Msg(msg)
}

// Apply stores every declared effect in order.
func (s *Settings) Apply(ctx context.Context, effects []game.Persist) {
	for _, fx := range effects {
		s.Store(ctx, fx.Key, fx.Value)
	}
}

// Load restores each setting independently, falling back to its default
// when absent, unreadable or unparsable.
func (s *Settings) Load(ctx context.Context) domain.Settings {
	out := domain.DefaultSettings()
	s.load(ctx, game.DifficultyKey, &out.Difficulty)
	s.load(ctx, game.LanguageKey, &out.Language)
	s.load(ctx, game.HelperKey, &out.Helper)
	return out
}

// load leaves dst untouched unless the stored value decodes cleanly.
func (s *Settings) load(ctx context.Context, key string, dst any) {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("read setting")
		return
	}
	if !ok {
		return
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		s.log.Warn().Err(err).Str("key", key).Str("value", raw).Msg("discarding unparsable setting")
	}
}
