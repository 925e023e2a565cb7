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

	restctx "github.com/Pelmenoff/m2-hw12/internal/api/rest/context"
	"github.com/Pelmenoff/m2-hw12/internal/api/rest/router"
	restServer "github.com/Pelmenoff/m2-hw12/internal/api/rest/server"
	"github.com/Pelmenoff/m2-hw12/internal/config"
	"github.com/Pelmenoff/m2-hw12/internal/hasher"
	"github.com/Pelmenoff/m2-hw12/internal/logger"
	"github.com/Pelmenoff/m2-hw12/internal/model"
	"github.com/Pelmenoff/m2-hw12/internal/repository/postgres"
	"github.com/Pelmenoff/m2-hw12/internal/server"
	"github.com/Pelmenoff/m2-hw12/internal/service"
	"github.com/Pelmenoff/m2-hw12/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN, cfg.Database.MaxConns)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	contactRepo := postgres.NewContactRepository(db)

	tokenManager := token.NewJWT(cfg.JWT.Secret, token.WithTTL(cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL))
	passwordHasher := hasher.NewBcrypt(cfg.Hash.Cost)

	authService := service.NewAuth(userRepo, db, passwordHasher, tokenManager, logger)
	contactService := service.NewContact(contactRepo, logger,
		service.WithBirthdayWindow(cfg.Contacts.BirthdayWindowDays))

	httpServer := registerHTTPServer(logger, authService, contactService, db, cfg)

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
	}(httpServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpServer.Address())
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

func registerHTTPServer(
	logger *logger.Logger,
	authService *service.Auth,
	contactService *service.Contact,
	pinger model.Pinger,
	cfg *config.Config,
) *restServer.HTTPServer {
	r := router.New(
		authService,
		contactService,
		pinger,
		restctx.NewManager(),
		router.Options{
			RateLimit:         router.RateLimit{RPS: cfg.RateLimit.RPS, Burst: cfg.RateLimit.Burst},
			TrustProxyHeaders: cfg.HTTP.TrustProxyHeaders,
		},
		logger,
	)

	return restServer.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port), restServer.Timeouts{
		Read:  cfg.HTTP.ReadTimeout,
		Write: cfg.HTTP.WriteTimeout,
		Idle:  cfg.HTTP.IdleTimeout,
	})
}
