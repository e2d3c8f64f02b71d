// Package main is the entry point for the SDR engine server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/brightsmile/sdrengine/internal/ai"
	"github.com/brightsmile/sdrengine/internal/audit"
	"github.com/brightsmile/sdrengine/internal/clock"
	"github.com/brightsmile/sdrengine/internal/config"
	"github.com/brightsmile/sdrengine/internal/database"
	"github.com/brightsmile/sdrengine/internal/dispatch"
	"github.com/brightsmile/sdrengine/internal/domain"
	"github.com/brightsmile/sdrengine/internal/handler"
	"github.com/brightsmile/sdrengine/internal/logging"
	"github.com/brightsmile/sdrengine/internal/mail"
	"github.com/brightsmile/sdrengine/internal/metrics"
	"github.com/brightsmile/sdrengine/internal/ratelimit"
	"github.com/brightsmile/sdrengine/internal/repository"
	"github.com/brightsmile/sdrengine/internal/retell"
	"github.com/brightsmile/sdrengine/internal/sdr"
	"github.com/brightsmile/sdrengine/internal/shutdown"
	"github.com/brightsmile/sdrengine/internal/twilio"
)

func main() {
	// Load .env if present; real environment variables win.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(&logging.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Environment: cfg.Server.Environment,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting SDR engine",
		zap.String("office", cfg.Office.Name),
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
		zap.String("env", cfg.Server.Environment),
	)

	m := metrics.New()
	clk := clock.New()
	ctx := context.Background()

	// Optional PostgreSQL persistence. Without it the engine runs in
	// memory and loses state on restart.
	var db *database.DB
	var records *repository.ProspectRepository
	var appointments *repository.AppointmentRepository
	if cfg.Database.Enabled {
		db, err = database.New(ctx, &cfg.Database, logger.Logger)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		if err := db.EnsureSchema(ctx); err != nil {
			logger.Fatal("failed to apply database schema", zap.Error(err))
		}
		records = repository.NewProspectRepository(db.Pool)
		appointments = repository.NewAppointmentRepository(db.Pool)
	} else {
		logger.Warn("database disabled, running in memory only")
	}

	// Outbound channels. Each is optional; sends on an unconfigured
	// channel fail and are logged by the dispatcher.
	var sms dispatch.SMSSender
	if cfg.Twilio.Enabled {
		sms = twilio.New(&twilio.Config{
			AccountSID: cfg.Twilio.AccountSID,
			AuthToken:  cfg.Twilio.AuthToken,
			FromNumber: cfg.Twilio.FromNumber,
			BaseURL:    cfg.Twilio.APIURL,
		}, logger.Logger)
		logger.Info("twilio SMS channel enabled")
	}

	var email dispatch.EmailSender
	if cfg.SMTP.Enabled {
		email = mail.New(&mail.Config{
			Host:      cfg.SMTP.Host,
			Port:      cfg.SMTP.Port,
			Username:  cfg.SMTP.Username,
			Password:  cfg.SMTP.Password,
			FromName:  cfg.SMTP.FromName,
			FromEmail: cfg.SMTP.FromEmail,
		}, logger.Logger)
		logger.Info("SMTP email channel enabled")
	}

	var retellClient *retell.Client
	var voice dispatch.VoiceAgent
	if cfg.Retell.Enabled {
		retellClient = retell.New(&retell.Config{
			APIKey:        cfg.Retell.APIKey,
			AgentID:       cfg.Retell.AgentID,
			FromNumber:    cfg.Retell.FromNumber,
			WebhookSecret: cfg.Retell.WebhookSecret,
			BaseURL:       cfg.Retell.APIURL,
		}, logger.Logger)
		voice = retellClient
		logger.Info("retell voice channel enabled")
	}

	router := dispatch.NewRouter(sms, email, voice, logger.Logger)

	var drafter handler.Drafter
	if cfg.Anthropic.Enabled {
		limiter := ratelimit.NewDraftLimiter(ratelimit.DefaultDraftLimiterConfig(), logger.Logger)
		drafter = ai.NewResponder(&cfg.Anthropic, cfg.Office.Name, limiter, logger.Logger)
		logger.Info("AI reply drafting enabled", zap.String("model", cfg.Anthropic.Model))
	}

	officeTZ := time.Local
	if cfg.Office.Timezone != "" {
		officeTZ, err = time.LoadLocation(cfg.Office.Timezone)
		if err != nil {
			logger.Fatal("invalid office timezone",
				zap.String("timezone", cfg.Office.Timezone),
				zap.Error(err),
			)
		}
	}

	manager := sdr.NewManager(sdr.Config{
		OfficeName:     cfg.Office.Name,
		Location:       officeTZ,
		PowerHourBatch: cfg.Sweep.PowerHourBatch,
		Dispatcher:     router,
		Clock:          clk,
		Logger:         logger.Logger,
		Metrics:        m,
		Records:        recordsOrNil(records),
		Appointments:   appointmentsOrNil(appointments),
	})

	if cfg.Database.Enabled {
		if err := manager.Rehydrate(ctx); err != nil {
			logger.Fatal("failed to rehydrate prospect state", zap.Error(err))
		}
	}

	var healthChecker handler.HealthChecker
	if db != nil {
		healthChecker = db
	}

	auditLog := audit.NewLogger(logger.Logger)

	r := handler.NewRouter(handler.RouterConfig{
		Prospects: handler.NewProspectHandler(manager, auditLog, logger.Logger),
		Webhooks: handler.NewWebhookHandler(handler.WebhookHandlerConfig{
			Manager:         manager,
			TwilioAuthToken: cfg.Twilio.AuthToken,
			PublicURL:       cfg.Server.PublicURL,
			Retell:          retellClient,
			Drafter:         drafter,
			Metrics:         m,
			Audit:           auditLog,
			Logger:          logger.Logger,
		}),
		Maintenance: handler.NewMaintenanceHandler(manager, logger.Logger),
		Health:      handler.NewHealthHandler(healthChecker, logger.Logger),
		LogLevel:    logger,
		Metrics:     m,
		Logger:      logger.Logger,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	coord := shutdown.NewCoordinator(30*time.Second, logger.Logger)

	// Periodic no-show sweep. Missed appointments move the prospect into
	// the no-show recovery campaign.
	sweepDone := make(chan struct{})
	go func() {
		defer close(sweepDone)
		interval := cfg.Sweep.NoShowInterval
		if interval <= 0 {
			interval = time.Hour
		}
		ticker := clk.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C():
				if n := manager.CheckNoShows(ctx); n > 0 {
					logger.Info("no-show sweep moved prospects", zap.Int("count", n))
				}
			case <-coord.ShutdownCh():
				return
			}
		}
	}()

	coord.RegisterFunc(shutdown.PhaseDrain, "http-server", func(ctx context.Context) error {
		return server.Shutdown(ctx)
	})
	coord.RegisterFunc(shutdown.PhaseWorkers, "no-show-sweeper", func(ctx context.Context) error {
		select {
		case <-sweepDone:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
	if db != nil {
		coord.RegisterFunc(shutdown.PhaseCleanup, "database", func(context.Context) error {
			db.Close()
			return nil
		})
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("received shutdown signal")
	if err := coord.Shutdown(ctx); err != nil {
		logger.Error("shutdown completed with errors", zap.Error(err))
	}
}

// recordsOrNil avoids storing a typed nil in the repository interface.
func recordsOrNil(r *repository.ProspectRepository) domain.RecordRepository {
	if r == nil {
		return nil
	}
	return r
}

func appointmentsOrNil(r *repository.AppointmentRepository) domain.AppointmentRepository {
	if r == nil {
		return nil
	}
	return r
}
