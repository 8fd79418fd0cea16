package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/smomoh/flagquiz/internal/api"
	"github.com/smomoh/flagquiz/internal/config"
	"github.com/smomoh/flagquiz/internal/countries"
	"github.com/smomoh/flagquiz/internal/db"
	"github.com/smomoh/flagquiz/internal/logger"
	"github.com/smomoh/flagquiz/internal/mailer"
	"github.com/smomoh/flagquiz/internal/repository/sqlite"
	"github.com/smomoh/flagquiz/internal/restcountries"
	"github.com/smomoh/flagquiz/internal/services"
	"github.com/smomoh/flagquiz/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("FlagQuiz server starting")
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("options_count=%d", cfg.OptionsCount)
	log.Debug("mail_worker_count=%d", cfg.MailWorkerCount)
	log.Debug("mail_queue_size=%d", cfg.MailQueueSize)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	profileRepo := sqlite.NewProfileRepository(database.DB)
	statsRepo := sqlite.NewStatsRepository(database.DB)
	answerRepo := sqlite.NewAnswerRepository(database.DB)

	provider := countries.NewProvider(restcountries.New(cfg.CountriesURL, cfg.CountriesTimeout))
	statsService := services.NewStatsService(statsRepo)

	mailPool := worker.NewPool(cfg.MailWorkerCount, cfg.MailQueueSize)

	srv := &api.Server{
		ProfileService: services.NewProfileService(profileRepo),
		StatsService:   statsService,
		QuizService:    services.NewQuizService(provider, statsService, answerRepo, cfg.OptionsCount),
		AnswerService:  services.NewAnswerService(answerRepo),
		Provider:       provider,
		MailPool:       mailPool,
		Mailer:         mailer.NewLogSender(),
		MailFrom:       cfg.MailFrom,
	}

	ctx, cancel := context.WithCancel(context.Background())
	mailPool.Start(ctx)

	// Warm the country cache; failure is soft and retried lazily.
	mailPool.Submit(&worker.PreloadCountriesJob{Provider: provider})

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	cancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping mail pool")
	mailPool.Stop()

	log.Info("FlagQuiz server stopped")
}
