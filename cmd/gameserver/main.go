package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/slime2go/internal/config"
	"github.com/udisondev/slime2go/internal/db"
	"github.com/udisondev/slime2go/internal/gameserver"
	"github.com/udisondev/slime2go/internal/world"
)

const gameConfigPath = "config/gameserver.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := gameConfigPath
	if p := os.Getenv("SLIME2GO_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadGameServer(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))
	slog.SetDefault(log)

	log.Info("slime2go server starting", "log_level", cfg.LogLevel)

	database, err := db.New(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer database.Close()
	log.Info("database connected")

	if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	log.Info("database migrations applied")

	stores := gameserver.Stores{
		Accounts:   db.NewAccountRepository(database),
		Characters: db.NewCharacterRepository(database),
		Bans:       db.NewBanRepository(database),
		Shops:      db.NewShopRepository(database),
		Clans:      db.NewClanRepository(database),
		Ledger:     db.NewLedgerRepository(database),
	}

	w := world.New()
	w.PlantStageTime = cfg.PlantStageTime

	srv := gameserver.NewServer(log, cfg, w, stores)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting game server", "port", cfg.Port)
		if err := srv.Run(gctx); err != nil {
			return fmt.Errorf("game server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		ticker := time.NewTicker(cfg.TickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case now := <-ticker.C:
				srv.Handler().TickWorld(now)
			}
		}
	})

	g.Go(func() error {
		ticker := time.NewTicker(cfg.SaveInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				srv.Handler().SaveAll(gctx)
				srv.Handler().SweepLimiter(time.Now(), 10*time.Minute)
			}
		}
	})

	err = g.Wait()

	// Flush everyone before the process exits, the accept loop is already
	// down at this point.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	srv.Handler().Shutdown(shutdownCtx)

	if err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
