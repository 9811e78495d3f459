package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ignite/phishguard/internal/api"
	"github.com/ignite/phishguard/internal/auth"
	"github.com/ignite/phishguard/internal/config"
	"github.com/ignite/phishguard/internal/mailer"
	"github.com/ignite/phishguard/internal/pkg/distlock"
	"github.com/ignite/phishguard/internal/pkg/logger"
	"github.com/ignite/phishguard/internal/repository/memory"
	"github.com/ignite/phishguard/internal/repository/postgres"
	"github.com/ignite/phishguard/internal/service/audience"
	"github.com/ignite/phishguard/internal/service/campaign"
	"github.com/ignite/phishguard/internal/service/interaction"
	"github.com/ignite/phishguard/internal/service/stats"
	"github.com/ignite/phishguard/internal/service/template"
	"github.com/ignite/phishguard/internal/tracking"
)

func main() {
	cfg, err := config.LoadFromEnv("config/config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx := context.Background()

	// Repositories: Postgres when a database URL is configured,
	// otherwise the in-memory engine (development and demos).
	var (
		campaignRepo    campaign.Repository
		templateRepo    template.Repository
		groupRepo       audience.GroupRepository
		userRepo        audience.UserRepository
		interactionRepo interaction.Repository
		credentialRepo  interaction.CredentialRepository
		adminRepo       auth.AdminRepository
	)
	var db *sql.DB
	if cfg.Storage.DatabaseURL != "" {
		var err error
		db, err = postgres.Open(ctx, cfg.Storage.DatabaseURL)
		if err != nil {
			log.Fatalf("connect postgres: %v", err)
		}
		defer db.Close()

		campaignRepo = postgres.NewCampaignRepo(db)
		templateRepo = postgres.NewTemplateRepo(db)
		groupRepo = postgres.NewGroupRepo(db)
		userRepo = postgres.NewTargetUserRepo(db)
		interactionRepo = postgres.NewInteractionRepo(db)
		credentialRepo = postgres.NewCredentialRepo(db)
		adminRepo = postgres.NewAdminRepo(db)
		logger.Info("storage: postgres")
	} else {
		campaignRepo = memory.NewCampaignRepo()
		templateRepo = memory.NewTemplateRepo()
		groupRepo = memory.NewGroupRepo()
		userRepo = memory.NewTargetUserRepo()
		interactionRepo = memory.NewInteractionRepo()
		credentialRepo = memory.NewCredentialRepo()
		adminRepo = memory.NewAdminRepo()
		logger.Warn("storage: in-memory (no DATABASE_URL set, data is not persisted)")
	}

	// Tracking event stream (optional).
	var publisher *tracking.Publisher
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unreachable, tracking events disabled", "addr", cfg.Redis.Addr, "error", err)
		} else {
			publisher = tracking.NewPublisher(redisClient, cfg.Redis.Stream)
			logger.Info("tracking events: redis stream", "stream", cfg.Redis.Stream)
		}
	}

	// Outbound mail.
	var mail mailer.Mailer
	if cfg.SMTP.Host != "" {
		mail = mailer.NewSMTPMailer(cfg.SMTP)
		logger.Info("mailer: smtp", "host", cfg.SMTP.Host)
	} else {
		mail = mailer.NewLogMailer()
		logger.Warn("mailer: log only (no SMTP host configured)")
	}

	// Auth. Bootstrap is serialized across replicas when a shared
	// backend exists; with neither Redis nor Postgres there is only
	// one instance and nothing to race.
	authManager := auth.NewManager(adminRepo, cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)
	bootstrap := func() {
		if err := authManager.Bootstrap(ctx, cfg.Auth.BootstrapUsername, cfg.Auth.BootstrapPassword, cfg.Auth.BootstrapFullName); err != nil {
			log.Fatalf("bootstrap admin: %v", err)
		}
	}
	if redisClient != nil || db != nil {
		lock := distlock.New(redisClient, db, "phishguard:bootstrap", 30*time.Second)
		ok, err := lock.Acquire(ctx)
		switch {
		case err != nil:
			// Lock backend down. Bootstrap is idempotent, proceed.
			logger.Warn("bootstrap lock unavailable", "error", err)
			bootstrap()
		case ok:
			bootstrap()
			lock.Release(ctx)
		default:
			logger.Info("bootstrap held by another replica, skipping")
		}
	} else {
		bootstrap()
	}

	// Services.
	interactionSvc := interaction.NewService(interactionRepo, credentialRepo)
	templateSvc := template.NewService(templateRepo)
	audienceSvc := audience.NewService(groupRepo, userRepo)
	campaignSvc := campaign.NewService(campaignRepo, templateRepo, audienceSvc, interactionSvc, mail, cfg.Server.BaseURL)
	statsSvc := stats.NewService(interactionRepo, credentialRepo, campaignRepo, templateRepo, userRepo)

	handlers := api.NewHandlers(campaignSvc, templateSvc, audienceSvc, interactionSvc, statsSvc, authManager)
	trackingHandler := tracking.NewHandler(interactionSvc, campaignRepo, templateRepo, publisher, cfg.Tracking.EducationPath)

	srv := api.NewServer(cfg.Server, handlers, trackingHandler)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "host", cfg.Server.Host, "port", cfg.Server.Port)
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Fatalf("server: %v", err)
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("shutdown: %v", err)
	}
	logger.Info("server stopped")
}
