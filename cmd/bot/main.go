package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"

	"tutor_search_bot/internal/app"
	"tutor_search_bot/internal/domain/availability"
	"tutor_search_bot/internal/domain/wizard"
	"tutor_search_bot/internal/infra/config"
	"tutor_search_bot/internal/infra/logger"
	"tutor_search_bot/internal/infra/metrics"
	"tutor_search_bot/internal/infra/scheduler"
	"tutor_search_bot/internal/infra/searchapi"
	"tutor_search_bot/internal/infra/telegram"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("Could not load application configuration: %v", err)
	}
	logger.Init(cfg)
	mainLogger := logger.Component("main")

	mainLogger.WithFields(logrus.Fields{
		"environment":    cfg.Environment,
		"search_api_url": cfg.SearchAPIURL,
		"subjects":       len(cfg.Subjects),
		"levels":         len(cfg.Levels),
	}).Info("Configuration loaded")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	searchMetrics := metrics.NewSearchMetrics(prometheus.DefaultRegisterer)
	metricsServer := startMetricsServer(cfg.MetricsAddr, mainLogger)

	searchClient := searchapi.NewClient(cfg.SearchAPIURL, searchapi.WithLogger(logger.Component("searchapi")))

	pref := telebot.Settings{
		Token:  cfg.TelegramToken,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c telebot.Context) { // Global error handler
			entry := logger.Component("telebot").WithError(err)
			if c != nil && c.Chat() != nil {
				entry = entry.WithField("chat_id", c.Chat().ID)
			}
			entry.Error("Telegram handler error")
		},
	}
	bot, err := telebot.NewBot(pref)
	if err != nil {
		mainLogger.WithError(err).Fatal("Could not create Telegram bot")
	}
	messenger := telegram.NewTelebotAdapter(bot)

	catalog := wizard.Catalog{Subjects: cfg.Subjects, Levels: cfg.Levels}
	rendererLogger := logger.Component("renderer")
	svc := app.NewWizardService(
		app.NewSessionStore(searchMetrics),
		searchClient,
		func(chatID int64) wizard.Renderer {
			return telegram.NewChatRenderer(chatID, messenger, catalog, rendererLogger)
		},
		catalog,
		availability.DefaultGrid(),
		searchMetrics,
		logger.Component("wizard"),
	)

	sessionScheduler := scheduler.NewSessionScheduler(svc, logger.Component("scheduler"), cfg.CronSpecSessionSweep, cfg.SessionIdleTTL)
	if err := sessionScheduler.Start(); err != nil {
		mainLogger.WithError(err).Fatal("Could not start session scheduler")
	}

	handlers := telegram.NewWizardHandlers(ctx, svc, logger.Component("telegram"))
	telegram.RegisterWizardHandlers(bot, handlers)
	mainLogger.Info("Wizard handlers registered")

	// Start bot in a goroutine so it doesn't block graceful shutdown handling
	go bot.Start()
	mainLogger.Info("Bot started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	mainLogger.Info("Shutting down application...")
	bot.Stop()
	sessionScheduler.Stop()
	cancel() // Aborts in-flight searches.
	svc.Wait()

	if metricsServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			mainLogger.WithError(err).Warn("Metrics server shutdown failed")
		}
	}
	mainLogger.Info("Application shut down gracefully.")
}

// startMetricsServer serves /metrics on addr. An empty addr disables it.
func startMetricsServer(addr string, log *logrus.Entry) *http.Server {
	if addr == "" {
		log.Info("Metrics listener disabled")
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.WithField("addr", addr).Info("Metrics listener started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("Metrics listener stopped")
		}
	}()
	return srv
}
