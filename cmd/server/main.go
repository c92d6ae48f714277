package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"

	"github.com/alegonzalezz/ATS/internal/api"
	"github.com/alegonzalezz/ATS/internal/batch"
	"github.com/alegonzalezz/ATS/internal/config"
	"github.com/alegonzalezz/ATS/internal/cvparse"
	"github.com/alegonzalezz/ATS/internal/gateway"
	"github.com/alegonzalezz/ATS/internal/linkedin"
	"github.com/alegonzalezz/ATS/internal/logger"
	"github.com/alegonzalezz/ATS/internal/publisher"
	"github.com/alegonzalezz/ATS/internal/snapshot"
	"github.com/alegonzalezz/ATS/internal/store"
)

// scheduleCheckInterval is how often the scheduled-sync clock is polled.
const scheduleCheckInterval = time.Hour

func main() {
	// 1. Load config (.env is optional)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// 2. Initialize logger
	if err := logger.Init(cfg.LogLevel, cfg.LogFile); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	log := logger.Get()
	log.Info().Msg("starting talenttrack server")

	// 3. Setup context with graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info().Msg("received shutdown signal")
		cancel()
	}()

	// 4. Open the local snapshot store
	if dir := filepath.Dir(cfg.SnapshotPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatal().Err(err).Msg("failed to create snapshot directory")
		}
	}
	snap, err := snapshot.NewSQLiteStore(cfg.SnapshotPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open snapshot store")
	}

	// 5. Connect to NATS
	nc, err := nats.Connect(cfg.NatsURL)
	if err != nil {
		log.Warn().Err(err).Msg("failed to connect to nats, publishing disabled")
	} else {
		defer nc.Close()
	}

	var pub store.EventPublisher
	if nc != nil {
		pub = publisher.NewNATSPublisher(nc)
	}

	// 6. CV parser, optionally with an extended vocabulary
	parser, err := cvparse.NewParser(cfg.SkillVocabFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load skill vocabulary")
	}

	// 7. Candidate store on top of the remote gateway
	gw := gateway.NewClient(cfg.GatewayBaseURL, time.Duration(cfg.GatewayTimeoutSec)*time.Second, log)

	st := store.New(gw, snap, log).
		WithParser(parser).
		WithRunner(batch.NewRunner(cfg.SyncRPS, cfg.SyncBurst))
	if pub != nil {
		st.WithEvents(pub)
	}

	if err := st.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to load candidates")
	}
	log.Info().Int("count", st.Count()).Msg("candidate store ready")

	// 8. WebSocket hub
	hub := api.NewHub()
	go hub.Run()

	// 9. Bulk sync manager and schedule
	scheduler := linkedin.NewScheduler(snap, log)

	manager := store.NewBulkSyncManager(st)
	manager.SetProgressHook(func(done, total int) {
		hub.Broadcast(api.SyncProgressEvent(done, total))
		if done == total {
			if _, err := scheduler.RecordSync(); err != nil {
				log.Warn().Err(err).Msg("failed to record sync completion")
			}
		}
	})

	go runScheduledSyncs(ctx, scheduler, manager, log)

	// 10. HTTP server
	server := api.NewServer(&api.Config{Port: cfg.HTTPPort}, &api.Dependencies{
		Store:     st,
		Manager:   manager,
		Scheduler: scheduler,
		Hub:       hub,
		Log:       log,
	})

	log.Info().Int("port", cfg.HTTPPort).Msg("starting http server")
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// 11. Wait for shutdown
	<-ctx.Done()
	log.Info().Msg("shutting down services...")

	manager.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Stop(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("shutdown complete")
}

// runScheduledSyncs starts a bulk sync whenever the persisted schedule
// says one is due.
func runScheduledSyncs(ctx context.Context, scheduler *linkedin.Scheduler, manager *store.BulkSyncManager, log *logger.Logger) {
	ticker := time.NewTicker(scheduleCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !scheduler.Due() {
				continue
			}
			log.Info().Msg("scheduled linkedin sync due, starting")
			if err := manager.Start(); err != nil {
				log.Warn().Err(err).Msg("scheduled sync not started")
			}
		}
	}
}
