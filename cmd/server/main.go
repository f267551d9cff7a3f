package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taraas/config"
	"taraas/internal/clock"
	"taraas/internal/database"
	"taraas/internal/jobs"
	"taraas/internal/router"
	"taraas/pkg/mailer"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	var log *zap.Logger
	var err error
	if cfg.Server.Env == "production" {
		log, err = zap.NewProduction()
	} else {
		log, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, err := database.NewDB(&cfg.Database)
	if err != nil {
		log.Fatal("database connect failed", zap.Error(err))
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	var m mailer.Mailer = mailer.NoOp{}
	if cfg.SMTP.Host != "" {
		m = mailer.NewSMTP(mailer.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
	} else {
		log.Warn("SMTP_HOST not set, OTP mail delivery disabled")
	}

	engine, settlementSvc := router.Setup(cfg, db, log, clock.Real{}, m)

	job := jobs.NewSettlementJob(settlementSvc, log)
	job.Start()
	defer job.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		log.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("listen failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("shutdown failed", zap.Error(err))
	}
	log.Info("server stopped")
}
