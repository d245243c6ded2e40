package app

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/nexpertia/marketplace-api/api"
	"github.com/nexpertia/marketplace-api/config"
	"github.com/nexpertia/marketplace-api/database"
	"github.com/nexpertia/marketplace-api/router"
	"github.com/nexpertia/marketplace-api/services"
	"github.com/nexpertia/marketplace-api/services/storage"
	"github.com/nexpertia/marketplace-api/utils"
	"github.com/nexpertia/marketplace-api/utils/auth"
	"github.com/nexpertia/marketplace-api/utils/cache"
	"github.com/nexpertia/marketplace-api/utils/middleware"
)

const shutdownTimeout = 10 * time.Second

func SetupAndRunServer() error {

	// Load ENV
	if err := config.LoadENV(); err != nil {
		return err
	}

	cfg, err := config.Get()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := utils.NewLogger(utils.LoggerConfig{
		Level:  cfg.Log.Level,
		Dir:    cfg.Log.Dir,
		Pretty: cfg.Log.Pretty,
	})
	if err != nil {
		return err
	}

	// Initialize GORM database connection
	store, err := database.StartGORM(cfg.Database, cfg.IsProduction(), log)
	if err != nil {
		log.Error().Err(err).Str("driver", cfg.Database.Driver).Msg("check whether the database is running")
		return err
	}
	defer store.Close()

	if err := store.Init(); err != nil {
		log.Error().Err(err).Msg("failed to initialize database tables")
		return err
	}

	files, uploadsDir, err := newFileStorage(cfg.Storage, log)
	if err != nil {
		return err
	}

	var bruteForce *middleware.BruteForceProtection
	if cfg.Redis.URL != "" {
		redisCache, err := cache.NewRedisCache(cfg.Redis.URL)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to Redis, brute force protection disabled")
		} else {
			defer redisCache.Close()
			bruteForce = middleware.NewBruteForceProtection(redisCache, log)
		}
	}

	tokens := auth.NewJWTManager(auth.JWTConfig{
		Secret:        cfg.JWT.Secret,
		Expiry:        cfg.JWT.Expiry,
		RefreshExpiry: cfg.JWT.RefreshExpiry,
		Issuer:        cfg.JWT.Issuer,
	})

	svc := services.New(services.Dependencies{
		Store:  store,
		Hasher: auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		Tokens: tokens,
		Files:  files,
		Log:    log,
	})

	// Init API
	server := api.NewAPIServer(fmt.Sprintf(":%d", cfg.Port), log)
	app := server.GetEngine()

	// Setup Routes
	router.SetupRoutes(app, router.Dependencies{
		Store:      store,
		Services:   svc,
		Tokens:     tokens,
		BruteForce: bruteForce,
		Security: middleware.SecurityConfig{
			AllowedOrigins:    cfg.CORS.AllowOrigins,
			RateLimitRequests: cfg.RateLimitRequests,
			RateLimitWindow:   cfg.RateLimitWindow,
			AccessLog:         true,
		},
		Log:           log,
		UploadsDir:    uploadsDir,
		UploadsPrefix: cfg.Storage.BaseURL,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Run()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
		return server.Shutdown(shutdownTimeout)
	}
}

// newFileStorage returns the configured backend and, for local disk, the directory to serve
func newFileStorage(cfg config.StorageConfig, log zerolog.Logger) (storage.FileStorage, string, error) {
	switch cfg.Driver {
	case "s3":
		if cfg.Bucket == "" {
			return nil, "", errors.New("STORAGE_S3_BUCKET is required when STORAGE_DRIVER=s3")
		}
		s3, err := storage.NewS3Storage(storage.S3Config{
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
			Bucket:    cfg.Bucket,
			Region:    cfg.Region,
			Endpoint:  cfg.Endpoint,
			CDNURL:    cfg.CDNURL,
		})
		return s3, "", err
	case "local", "":
		local, err := storage.NewLocalStorage(cfg.LocalPath, cfg.BaseURL, log)
		if err != nil {
			return nil, "", err
		}
		return local, local.BasePath(), nil
	default:
		return nil, "", fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
