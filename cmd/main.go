package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	httpctx "github.com/jobsift/jobsift-server/internal/api/http/context"
	"github.com/jobsift/jobsift-server/internal/api/http/handler"
	"github.com/jobsift/jobsift-server/internal/api/http/router"
	httpServer "github.com/jobsift/jobsift-server/internal/api/http/server"
	"github.com/jobsift/jobsift-server/internal/config"
	"github.com/jobsift/jobsift-server/internal/logger"
	"github.com/jobsift/jobsift-server/internal/model"
	"github.com/jobsift/jobsift-server/internal/provider"
	"github.com/jobsift/jobsift-server/internal/repository/postgres"
	"github.com/jobsift/jobsift-server/internal/server"
	"github.com/jobsift/jobsift-server/internal/service"
	storage "github.com/jobsift/jobsift-server/internal/storage/minio"
	"github.com/jobsift/jobsift-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	// A missing .env file is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize database", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	interviewRepo := postgres.NewInterviewRepository(db)
	eventRepo := postgres.NewCalendarEventRepository(db)
	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.AccessTTL)

	feedStorage, err := newFeedStorage(ctx, cfg.Storage)
	if err != nil {
		logger.Fatal("failed to initialize feed storage", "error", err)
	}
	if feedStorage == nil {
		logger.Info("feed publishing disabled, MINIO_ENABLED is false")
	}

	interviewService := service.NewInterview(interviewRepo, logger)
	calendarService := service.NewCalendar(interviewRepo, eventRepo, provider.NewDefaultRegistry(), service.CalendarOptions{
		DeduplicateSync: cfg.Calendar.DeduplicateSync,
		PublicBaseURL:   cfg.Calendar.PublicBaseURL,
	}, logger)
	feedService := service.NewFeed(interviewRepo, feedStorage, service.FeedOptions{
		ProductDomain: cfg.Calendar.ProductDomain,
	}, logger)
	dashboardService := service.NewDashboard(interviewService, interviewRepo, logger)

	r := router.New(
		router.Services{
			Interviews: interviewService,
			Calendar:   calendarService,
			Feed:       feedService,
			Dashboard:  dashboardService,
			Health:     db,
		},
		handler.CalendarDefaults{
			FeedDays:   cfg.Calendar.DefaultFeedDays,
			EventsDays: cfg.Calendar.DefaultEventsDays,
		},
		tokenManager,
		userRepo,
		httpctx.NewManager(),
		logger,
	)
	srv := httpServer.NewHTTPServer(r.Register(), cfg.HTTP.Address)

	sl := server.NewSecurityLayer(cfg.HTTP.EnableHTTPS, cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address(), "https", cfg.HTTP.EnableHTTPS)
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

// newFeedStorage returns nil when object storage is disabled.
func newFeedStorage(ctx context.Context, cfg config.Storage) (model.FeedStorage, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	client, err := storage.NewClient(ctx, minioClient, cfg.Bucket)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
