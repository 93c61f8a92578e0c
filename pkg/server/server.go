package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/questline-studio/agency-site/pkg/api"
	"github.com/questline-studio/agency-site/pkg/clients/steam"
	"github.com/questline-studio/agency-site/pkg/clients/telegram"
	"github.com/questline-studio/agency-site/pkg/config"
	"github.com/questline-studio/agency-site/pkg/services"
	"github.com/questline-studio/agency-site/pkg/site"
)

const shutdownTimeout = 15 * time.Second

// NewHandlers wires the API clients and services for cfg
func NewHandlers(cfg *config.Config) *api.Handlers {
	telegramClient := telegram.NewClient(cfg.Telegram.APIURL, nil)
	steamClient := steam.NewClient(cfg.Steam.APIURL, cfg.Steam.UserAgent, nil)

	leadService := services.NewLeadNotificationService(telegramClient, cfg.Telegram)
	appDetailsService := services.NewAppDetailsService(steamClient)

	return api.NewHandlers(leadService, appDetailsService)
}

// NewRouter builds the full router: API routes plus the pre-rendered site
func NewRouter(cfg *config.Config) *gin.Engine {
	router := api.NewRouter(cfg, NewHandlers(cfg))
	if cfg.StaticDir != "" {
		site.Register(router, cfg.StaticDir)
	}
	return router
}

// ConfigureLogging sets the logrus level and formatter for cfg
func ConfigureLogging(cfg *config.Config) {
	if cfg.IsProduction() {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.WithField("log_level", cfg.LogLevel).Warn("Unknown log level, using info")
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

// Run serves the router until ctx is cancelled, then shuts down gracefully
func Run(ctx context.Context, cfg *config.Config) error {
	if err := cfg.Telegram.Validate(); err != nil {
		logrus.WithError(err).Warn("Lead notifications will fail until secrets are configured")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           NewRouter(cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logrus.WithFields(logrus.Fields{
			"port":        cfg.Port,
			"environment": cfg.Environment,
			"static_dir":  cfg.StaticDir,
		}).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logrus.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logrus.Info("Server exited")
	return nil
}
