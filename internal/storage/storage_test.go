package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/jaminalder/codex-binoxxo/internal/config"
	"github.com/jaminalder/codex-binoxxo/internal/domain"
	"github.com/jaminalder/codex-binoxxo/internal/game"
	"github.com/jaminalder/codex-binoxxo/internal/metrics"
)

// exerciseKV runs the shared KV contract against a backend.
func exerciseKV(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()
	if _, ok, err := kv.Get(ctx, "missing"); ok || err != nil {
		t.Fatalf("absent key: ok=%v err=%v", ok, err)
	}
	if err := kv.Put(ctx, "k", "v1"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := kv.Put(ctx, "k", "v2"); err != nil {
		t.Fatalf("Put overwrite: %v", err)
	}
	v, ok, err := kv.Get(ctx, "k")
	if err != nil || !ok || v != "v2" {
		t.Fatalf("Get = %q, %v, %v", v, ok, err)
	}
}

func TestMemoryKV(t *testing.T) {
	exerciseKV(t, NewMemory())
}

func TestSQLiteKV(t *testing.T) {
	db, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer db.Close()
	exerciseKV(t, db)
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "binoxxo.db")
	ctx := context.Background()

	db, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := db.Put(ctx, game.LanguageKey, `"de-DE"`); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// reopening reruns the migration check without failing
	db, err = OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()
	v, ok, err := db.Get(ctx, game.LanguageKey)
	if err != nil || !ok || v != `"de-DE"` {
		t.Fatalf("Get after reopen = %q, %v, %v", v, ok, err)
	}
}

func TestRedisKV(t *testing.T) {
	addr := os.Getenv("BINOXXO_TEST_REDIS")
	if addr == "" {
		t.Skip("BINOXXO_TEST_REDIS not set")
	}
	r, err := NewRedis(context.Background(), addr, "", 0)
	if err != nil {
		t.Fatalf("NewRedis: %v", err)
	}
	defer r.Close()
	exerciseKV(t, Scoped(r, "test-"+strconv.Itoa(os.Getpid())))
}

func TestScopedNamespacesKeys(t *testing.T) {
	ctx := context.Background()
	base := NewMemory()
	a, b := Scoped(base, "alice"), Scoped(base, "bob")
	_ = a.Put(ctx, "k", "1")
	_ = b.Put(ctx, "k", "2")

	if v, _, _ := a.Get(ctx, "k"); v != "1" {
		t.Fatalf("alice sees %q", v)
	}
	if v, _, _ := b.Get(ctx, "k"); v != "2" {
		t.Fatalf("bob sees %q", v)
	}
	if v, ok, _ := base.Get(ctx, "alice:k"); !ok || v != "1" {
		t.Fatalf("expected prefixed key in base store, got %q %v", v, ok)
	}
}

func TestOpenBackends(t *testing.T) {
	kv, err := Open(context.Background(), config.Store{Backend: "memory"})
	if err != nil || kv == nil {
		t.Fatalf("memory: %v", err)
	}
	kv, err = Open(context.Background(), config.Store{Backend: "sqlite", SQLitePath: filepath.Join(t.TempDir(), "s.db")})
	if err != nil {
		t.Fatalf("sqlite: %v", err)
	}
	kv.Close()
	if _, err := Open(context.Background(), config.Store{Backend: "etcd"}); !errors.Is(err, ErrUnknownBackend) {
		t.Fatalf("expected ErrUnknownBackend, got %v", err)
	}
}

func TestSettingsDefaultsWhenEmpty(t *testing.T) {
	s := NewSettings(NewMemory(), zerolog.Nop())
	if got := s.Load(context.Background()); got != domain.DefaultSettings() {
		t.Fatalf("expected defaults, got %+v", got)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewSettings(NewMemory(), zerolog.Nop())
	s.Apply(ctx, []game.Persist{
		{Key: game.DifficultyKey, Value: domain.Hard},
		{Key: game.LanguageKey, Value: domain.GermanDE},
		{Key: game.HelperKey, Value: domain.Enabled},
	})
	want := domain.Settings{Difficulty: domain.Hard, Language: domain.GermanDE, Helper: domain.Enabled}
	if got := s.Load(ctx); got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestSettingsFieldsLoadIndependently(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()
	_ = kv.Put(ctx, game.DifficultyKey, `"Medium"`)
	_ = kv.Put(ctx, game.LanguageKey, `{not json`)
	_ = kv.Put(ctx, game.HelperKey, `"Enabled"`)

	got := NewSettings(kv, zerolog.Nop()).Load(ctx)
	want := domain.Settings{Difficulty: domain.Medium, Language: domain.EnglishUS, Helper: domain.Enabled}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}

	_ = kv.Put(ctx, game.LanguageKey, `"de-DE"`)
	_ = kv.Put(ctx, game.DifficultyKey, `"Impossible"`)
	got = NewSettings(kv, zerolog.Nop()).Load(ctx)
	want = domain.Settings{Difficulty: domain.Easy, Language: domain.GermanDE, Helper: domain.Enabled}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

// brokenKV fails every operation.
type brokenKV struct{}

var errBroken = errors.New("disk on fire")

func (brokenKV) Put(context.Context, string, string) error { return errBroken }
func (brokenKV) Get(context.Context, string) (string, bool, error) {
	return "", false, errBroken
}
func (brokenKV) Close() error { return nil }

func TestSettingsSwallowStoreErrors(t *testing.T) {
	ctx := context.Background()
	s := NewSettings(brokenKV{}, zerolog.Nop())
	counter := metrics.SettingsStoreFailures.WithLabelValues(game.HelperKey)
	before := testutil.ToFloat64(counter)

	s.Store(ctx, game.HelperKey, domain.Enabled)

	if d := testutil.ToFloat64(counter) - before; d != 1 {
		t.Fatalf("expected one counted failure, got %v", d)
	}
	if got := s.Load(ctx); got != domain.DefaultSettings() {
		t.Fatalf("unreadable store should load defaults, got %+v", got)
	}
}

func TestSettingsStoreRejectsUnencodable(t *testing.T) {
	kv := NewMemory()
	s := NewSettings(kv, zerolog.Nop())
	s.Store(context.Background(), game.DifficultyKey, domain.Difficulty(42))
	if _, ok, _ := kv.Get(context.Background(), game.DifficultyKey); ok {
		t.Fatalf("invalid value must not be written")
	}
}
