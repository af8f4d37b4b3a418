// Package main starts the postboard server: configuration, logging,
// database, repositories, services, handlers and the HTTP(S) listener.
package main

import (
	"cmp"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	nethttp "net/http"

	"github.com/atinyakov/postboard/internal/config"
	"github.com/atinyakov/postboard/internal/db"
	"github.com/atinyakov/postboard/internal/logger"
	"github.com/atinyakov/postboard/internal/repository"
	"github.com/atinyakov/postboard/internal/server/handler/http"
	"github.com/atinyakov/postboard/internal/service"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	options := config.Parse()

	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}
	defer postgresDB.Close()

	db.StartSessionCleaner(ctx, postgresDB, options.SweepInterval, zapLogger)

	userRepo := repository.NewPostgresUserRepository(postgresDB)
	postRepo := repository.NewPostgresPostRepository(postgresDB)
	sessionRepo := repository.NewPostgresSessionRepository(postgresDB)

	userService := service.NewUserService(userRepo)
	postService := service.NewPostService(postRepo)
	sessionService := service.NewSessionService(sessionRepo, options.SessionTTL)

	authHandler := &http.AuthHandler{Users: userService, Sessions: sessionService}
	userHandler := &http.UserHandler{Users: userService, Posts: postService, Sessions: sessionService}
	postHandler := &http.PostHandler{Posts: postService}

	router := http.NewRouter(authHandler, userHandler, postHandler, sessionService, zapLogger)

	server := &nethttp.Server{
		Addr:              options.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	if options.TLSEnabled() {
		server.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		zapLogger.Info("starting HTTPS server", zap.String("addr", options.Port))
		err = server.ListenAndServeTLS(options.TLSCert, options.TLSKey)
	} else {
		zapLogger.Info("starting HTTP server", zap.String("addr", options.Port))
		err = server.ListenAndServe()
	}
	if err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		zapLogger.Fatal("server stopped", zap.Error(err))
	}
}
