package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/texlane/catalog-server-go/internal/config"
	"github.com/texlane/catalog-server-go/internal/database"
	"github.com/texlane/catalog-server-go/internal/handler"
	"github.com/texlane/catalog-server-go/internal/httputil"
	"github.com/texlane/catalog-server-go/internal/jobs"
	"github.com/texlane/catalog-server-go/internal/mailer"
	"github.com/texlane/catalog-server-go/internal/middleware"
	"github.com/texlane/catalog-server-go/internal/redis"
	"github.com/texlane/catalog-server-go/internal/repository"
	"github.com/texlane/catalog-server-go/internal/service"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	setLogLevel(cfg.LogLevel)

	isProduction := os.Getenv("FLY_APP_NAME") != ""
	if err := cfg.Validate(isProduction); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), config.DBPingTimeout)
	if err := db.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ping database")
	}
	cancel()
	log.Info().Msg("database connected")

	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}
	log.Info().Msg("migrations applied")

	redisClient, err := redis.NewClient(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected")

	adminRepo := repository.NewAdminRepository(db.DB)
	roleRepo := repository.NewRoleRepository(db.DB)
	countryRepo := repository.NewCountryRepository(db.DB)
	stateRepo := repository.NewStateRepository(db.DB)
	cityRepo := repository.NewCityRepository(db.DB)
	structureRepo := repository.NewStructureRepository(db.DB)
	substructureRepo := repository.NewSubstructureRepository(db.DB)
	suitableforRepo := repository.NewSuitableforRepository(db.DB)
	subsuitableRepo := repository.NewSubsuitableRepository(db.DB)
	groupcodeRepo := repository.NewGroupcodeRepository(db.DB)
	productRepo := repository.NewProductRepository(db.DB)
	seoRepo := repository.NewSeoRepository(db.DB)

	var mail mailer.Service
	if cfg.SMTPHost != "" {
		mail = mailer.NewSMTPMailer(mailer.SMTPConfig{
			Host:    cfg.SMTPHost,
			Port:    cfg.SMTPPort,
			User:    cfg.SMTPUser,
			Pass:    cfg.SMTPPass,
			From:    cfg.SMTPFrom,
			TLSMode: cfg.SMTPTLSMode,
		})
	} else {
		mail = mailer.NewLogMailer()
		log.Warn().Msg("no SMTP host configured, login codes will only be logged")
	}

	rateLimiter := service.NewRateLimiter(redisClient.Client)

	adminService := service.NewAdminService(adminRepo, roleRepo, mail, rateLimiter, service.AdminConfig{
		SuperAdminEmail: cfg.SuperAdminEmail,
		AllowedEmails:   cfg.AllowedEmails(),
		OTPTTL:          cfg.OTPTTL(),
		SessionWindow:   cfg.SessionWindow(),
	})
	geoService := service.NewGeoService(countryRepo, stateRepo, cityRepo)
	attributeService := service.NewAttributeService(
		structureRepo, substructureRepo, suitableforRepo, subsuitableRepo, groupcodeRepo,
	)
	productService := service.NewProductService(productRepo)
	seoService := service.NewSeoService(seoRepo, productRepo)

	otpIPLimiter := middleware.NewIPRateLimitMiddleware(rateLimiter, 20, 15*time.Minute, "otp")

	adminHandler := handler.NewAdminHandler(adminService, otpIPLimiter.Handler)
	geoHandler := handler.NewGeoHandler(geoService)
	attributeHandler := handler.NewAttributeHandler(attributeService)
	productHandler := handler.NewProductHandler(productService)
	seoHandler := handler.NewSeoHandler(seoService)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(config.ServerRequestTimeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"status":    "ok",
			"timestamp": time.Now().UnixMilli(),
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Mount("/admin", adminHandler.Routes())

		r.Mount("/geo", geoHandler.Routes())
		r.Mount("/attributes", attributeHandler.Routes())
		r.Mount("/products", productHandler.Routes())
		r.Mount("/seo", seoHandler.Routes())
	})

	cleanupJob := jobs.NewCleanupJob(adminRepo, cfg.SessionWindow(), config.CleanupJobInterval)
	cleanupJob.Start()
	defer cleanupJob.Stop()

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: 0,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), config.ServerShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

func setLogLevel(level string) {
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
