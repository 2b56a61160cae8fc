package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/jaminalder/codex-minesweeper/internal/app"
	"github.com/jaminalder/codex-minesweeper/internal/config"
	"github.com/jaminalder/codex-minesweeper/internal/web"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	addr := flag.String("addr", "", "listen address (overrides config)")
	logLevel := flag.String("log-level", "", "log level (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("Invalid config: %v", err))
	}

	log, err := cfg.Log.NewLogger(os.Stdout)
	if err != nil {
		panic(fmt.Sprintf("Invalid config: %v", err))
	}

	settings := cfg.Settings()
	settings.Logger = log
	svc, err := app.NewService(settings)
	if err != nil {
		log.WithError(err).Fatal("Failed to create service")
	}

	requestLog := middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  stdlog.New(log.WriterLevel(logrus.DebugLevel), "", 0),
		NoColor: true,
	})
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           requestLog(web.NewServer(svc, log)),
		ReadHeaderTimeout: 5 * time.Second,
		ErrorLog:          stdlog.New(log.WriterLevel(logrus.ErrorLevel), "", 0),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		s := svc.Settings()
		log.WithFields(logrus.Fields{
			"addr":   cfg.Server.Addr,
			"width":  s.Width,
			"height": s.Height,
			"mines":  s.Mines,
		}).Info("Listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("Server failed")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Shutdown")
	}
}
