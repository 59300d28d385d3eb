package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	httpctx "github.com/dtroode/countries-api/internal/api/http/context"
	"github.com/dtroode/countries-api/internal/api/http/router"
	httpServer "github.com/dtroode/countries-api/internal/api/http/server"
	"github.com/dtroode/countries-api/internal/config"
	"github.com/dtroode/countries-api/internal/federated/google"
	"github.com/dtroode/countries-api/internal/logger"
	"github.com/dtroode/countries-api/internal/model"
	"github.com/dtroode/countries-api/internal/password"
	"github.com/dtroode/countries-api/internal/repository/postgres"
	"github.com/dtroode/countries-api/internal/server"
	"github.com/dtroode/countries-api/internal/service"
	"github.com/dtroode/countries-api/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.NewWithFormat(cfg.LogLevel, cfg.LogFormat, os.Stdout)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN, logger)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	countryRepo := postgres.NewCountryRepository(db)

	hasher := password.NewBcrypt(cfg.Bcrypt.Cost)
	codec := token.NewJWT(cfg.App.Key, cfg.App.URL, cfg.JWT.TTL)
	provider := google.NewProvider(google.Config{
		UserInfoURL: cfg.Google.UserInfoURL,
		Timeout:     cfg.Google.Timeout,
	})

	guards := service.NewGuardFactory(userRepo, hasher, codec, logger)
	authService := service.NewAuth(userRepo, hasher, codec, provider, logger)
	countryService := service.NewCountry(countryRepo, logger)
	ctxMgr := httpctx.NewManager()

	r := router.New(
		authService,
		countryService,
		func(authorization string) model.Guard { return guards.New(authorization) },
		codec,
		userRepo,
		db,
		ctxMgr,
		logger,
	)
	srv := httpServer.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port), cfg.HTTP.ReadTimeout, cfg.HTTP.WriteTimeout)

	var sl model.SecurityLayer

	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

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

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
