package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	l := To(&buf, "debug", "json")
	l.Info().Str("key", "binoxxo-language").Msg("stored")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("expected a JSON line, got %q: %v", buf.String(), err)
	}
	if rec["message"] != "stored" || rec["key"] != "binoxxo-language" || rec["level"] != "info" {
		t.Fatalf("unexpected record %v", rec)
	}
}

func TestLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := To(&buf, "warn", "json")
	l.Info().Msg("hidden")
	l.Warn().Msg("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("level filter not applied: %q", buf.String())
	}
}

func TestUnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := To(&buf, "loud", "json")
	if l.GetLevel() != zerolog.InfoLevel {
		t.Fatalf("expected info, got %v", l.GetLevel())
	}
	l.Debug().Msg("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug should be filtered at info")
	}
}

func TestConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	l := To(&buf, "info", "console")
	l.Info().Msg("hello")
	if !strings.Contains(buf.String(), "hello") || strings.HasPrefix(buf.String(), "{") {
		t.Fatalf("expected console output, got %q", buf.String())
	}
}

func TestToLeavesGlobalLevel(t *testing.T) {
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	var buf bytes.Buffer
	To(&buf, "error", "json")
	if got := zerolog.GlobalLevel(); got != zerolog.DebugLevel {
		t.Fatalf("global level changed to %v", got)
	}
}
