package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"

	"fitsync/internal/auth"
	"fitsync/internal/cache"
	"fitsync/internal/config"
	"fitsync/internal/db"
	"fitsync/internal/handler"
	"fitsync/internal/logging"
	"fitsync/internal/notify"
	"fitsync/internal/repository"
	"fitsync/internal/router"
	"fitsync/internal/service"
)

//go:generate swag init --dir ../../ --generalInfo cmd/server/main.go --output ../../docs --outputTypes go

// @title FitSync API
// @version 1.0
// @description Gym backend: trainer applications, slot subscriptions, forums with votes, newsletter and admin balance.
// @host localhost:5001
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.AppEnv,
			AttachStacktrace: true,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		slog.Error("database init", "error", err)
		os.Exit(1)
	}
	if err := db.Migrate(gormDB); err != nil {
		slog.Error("database migrate", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	repos := repository.New(gormDB)
	if err := repos.Balance.Ensure(ctx); err != nil {
		slog.Error("ensure admin balance", "error", err)
		os.Exit(1)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := cacheClient.Ping(ctx); err != nil {
		slog.Warn("redis unreachable, continuing without cache", "addr", cfg.RedisAddr, "error", err)
	}

	// Auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	tokenStore := auth.NewTokenStore(cacheClient)
	var verifier auth.IDTokenVerifier
	if cfg.FirebaseCredentials != "" {
		fv, err := auth.NewFirebaseVerifier(ctx, cfg.FirebaseCredentials)
		if err != nil {
			slog.Error("firebase init", "error", err)
			os.Exit(1)
		}
		verifier = fv
	}

	// Notifications
	smtpCfg := notify.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		From:     cfg.MailFrom,
		FromName: cfg.MailFromName,
	}
	var gateway notify.Gateway = notify.LogGateway{}
	if smtpCfg.Configured() {
		gateway = notify.NewMailer(smtpCfg)
	} else {
		slog.Warn("smtp not configured, notifications will only be logged")
	}
	dispatcher := notify.NewDispatcher(gateway)

	// Services
	userService := service.NewUserService(repos.Users, cacheClient)
	authService := service.NewAuthService(userService, jwtService, tokenStore, verifier)
	trainerService := service.NewTrainerService(repos.Trainers, repos, cacheClient, dispatcher)
	bookingService := service.NewBookingService(repos.Subscriptions, repos, cacheClient)
	balanceService := service.NewBalanceService(repos.Balance, repos, cacheClient, cfg.TrainerPayout)
	cancellationService := service.NewCancellationService(repos.Subscriptions, dispatcher)
	forumService := service.NewForumService(repos.Forums)
	voteService := service.NewVoteService(repos.Votes, repos)
	newsletterService := service.NewNewsletterService(repos.Newsletter)
	classService := service.NewClassService(repos.Classes, cacheClient)

	e := echo.New()
	e.HideBanner = true

	router.Register(e, cfg, jwtService, userService, router.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Users:      handler.NewUserHandler(userService),
		Trainers:   handler.NewTrainerHandler(trainerService, balanceService),
		Bookings:   handler.NewBookingHandler(bookingService, cancellationService, trainerService),
		Balance:    handler.NewBalanceHandler(balanceService),
		Forums:     handler.NewForumHandler(forumService, voteService, userService),
		Newsletter: handler.NewNewsletterHandler(newsletterService),
		Classes:    handler.NewClassHandler(classService),
	})

	addr := ":" + cfg.ServerPort
	go func() {
		slog.Info("server listening", "addr", addr, "swagger", "http://localhost"+addr+"/swagger/index.html")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown", "error", err)
	}
	dispatcher.Close()
	if err := cacheClient.Close(); err != nil {
		slog.Warn("cache close", "error", err)
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
