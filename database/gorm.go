package database

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nexpertia/marketplace-api/config"
	"github.com/nexpertia/marketplace-api/model"
	"github.com/nexpertia/marketplace-api/repository"
)

// Storage is the storage handle threaded through every service. It owns the connection
// lifecycle and the unit of work.
type Storage interface {
	// Repos returns repositories bound to the plain connection, for reads outside a unit of work
	Repos() *repository.Repositories
	// WithTransaction runs fn in one transaction. It commits when fn returns nil and rolls back
	// otherwise; storage failures surface as persistence errors.
	WithTransaction(ctx context.Context, fn func(repos *repository.Repositories) error) error
	HealthCheck() error
	Close() error
}

type GORMStore struct {
	db    *gorm.DB
	repos *repository.Repositories
	log   zerolog.Logger
}

// NewGORMStore wraps an already opened connection
func NewGORMStore(db *gorm.DB, log zerolog.Logger) *GORMStore {
	return &GORMStore{db: db, repos: repository.New(db), log: log}
}

// StartGORM opens the configured database (PostgreSQL, or SQLite for local runs)
func StartGORM(cfg config.DatabaseConfig, production bool, log zerolog.Logger) (*GORMStore, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
			cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, cfg.SSLMode,
		)
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(fmt.Sprintf("file:%s?_foreign_keys=on", cfg.SQLitePath))
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	// Configure GORM logger
	logLevel := logger.Info
	if production {
		logLevel = logger.Error
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:      NewGormLogger(log, logLevel),
		NowFunc:     func() time.Time { return time.Now().UTC() },
		PrepareStmt: cfg.Driver == "postgres",
	})
	if err != nil {
		log.Error().Err(err).Str("driver", cfg.Driver).Msg("unable to connect to database")
		return nil, err
	}

	// Get underlying *sql.DB to configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	if cfg.Driver == "sqlite" {
		// SQLite allows a single writer
		sqlDB.SetMaxOpenConns(1)
	}

	log.Info().Str("driver", cfg.Driver).Msg("connected to database")

	return NewGORMStore(db, log), nil
}

// Models lists every persisted entity in dependency order
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.Profile{},
		&model.Instructor{},
		&model.Category{},
		&model.Course{},
		&model.Booking{},
		&model.Feedback{},
		&model.Invoice{},
		&model.InvoiceTemplateSetting{},
		&model.Notification{},
		&model.Subscription{},
		&model.JWTTokenBlacklist{},
	}
}

// Init runs the AutoMigrate to create/update tables and constraints
func (s *GORMStore) Init() error {
	s.log.Info().Msg("running AutoMigrate")
	if err := s.db.AutoMigrate(Models()...); err != nil {
		s.log.Error().Err(err).Msg("AutoMigrate failed")
		return err
	}
	return nil
}

func (s *GORMStore) Repos() *repository.Repositories {
	return s.repos
}

func (s *GORMStore) WithTransaction(ctx context.Context, fn func(repos *repository.Repositories) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(repository.New(tx))
	})
	if err == nil {
		return nil
	}

	s.log.Debug().Err(err).Msg("transaction rolled back")
	return repository.TranslateError(err, "record")
}

// DB returns the GORM DB instance
func (s *GORMStore) DB() *gorm.DB {
	return s.db
}

// HealthCheck verifies the database connection is alive
func (s *GORMStore) HealthCheck() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// Close closes the database connection
func (s *GORMStore) Close() error {
	s.log.Info().Msg("closing database connection")
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
