package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/jaminalder/codex-binoxxo/internal/binoxxo"
	"github.com/jaminalder/codex-binoxxo/internal/i18n"
	"github.com/jaminalder/codex-binoxxo/internal/logger"
	"github.com/jaminalder/codex-binoxxo/internal/storage"
	"github.com/jaminalder/codex-binoxxo/internal/tui"
)

func main() {
	seed := flag.Int64("seed", 0, "generator seed; 0 picks one from the clock")
	logPath := flag.String("log", "", "write logs to this file; the terminal belongs to the UI")
	level := flag.String("log-level", "info", "debug|info|warn|error")
	flag.Parse()

	stderr := logger.New(*level, "console")
	log := zerolog.Nop()
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			stderr.Fatal().Err(err).Msg("open log file")
		}
		defer f.Close()
		log = logger.To(f, *level, "json")
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	ctx := context.Background()
	dir, err := os.UserConfigDir()
	if err != nil {
		log.Warn().Err(err).Msg("no user config dir")
	}
	kv := openStore(dir, log)
	defer kv.Close()

	m := tui.New(ctx, binoxxo.New(*seed), i18n.NewResourceManager(), storage.NewSettings(kv, log), log)
	if err := tui.Run(ctx, m); err != nil {
		stderr.Fatal().Err(err).Msg("tui")
	}
}

// openStore keeps settings under dir. Without one the game still runs, it
// just forgets settings on exit.
func openStore(dir string, log zerolog.Logger) storage.KV {
	if dir == "" {
		return storage.NewMemory()
	}
	kv, err := storage.OpenSQLite(filepath.Join(dir, "binoxxo", "settings.db"))
	if err != nil {
		log.Warn().Err(err).Msg("open settings db")
		return storage.NewMemory()
	}
	return kv
}
