package database

import (
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/nexpertia/marketplace-api/config"
	"github.com/nexpertia/marketplace-api/model"
	"github.com/nexpertia/marketplace-api/utils/auth"
)

// DefaultCategories are created on an empty catalogue
var DefaultCategories = []string{
	"Programming",
	"Mathematics",
	"Languages",
	"Music",
	"Business",
}

// Seeder handles database seeding operations
type Seeder struct {
	db     *gorm.DB
	hasher auth.PasswordHasher
	cfg    config.SeedConfig
	log    zerolog.Logger
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, hasher auth.PasswordHasher, cfg config.SeedConfig, log zerolog.Logger) *Seeder {
	return &Seeder{db: db, hasher: hasher, cfg: cfg, log: log}
}

// SeedAll runs all seed functions
func (s *Seeder) SeedAll() error {
	s.log.Info().Msg("starting database seeding")

	if err := s.SeedAdminUser(); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	if err := s.SeedCategories(); err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}

	s.log.Info().Msg("database seeding completed")
	return nil
}

// SeedAdminUser creates the default admin user unless one already exists.
// It is skipped when no admin password is configured.
func (s *Seeder) SeedAdminUser() error {
	var count int64
	if err := s.db.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		s.log.Info().Msg("admin user already exists, skipping")
		return nil
	}

	if s.cfg.AdminEmail == "" || s.cfg.AdminPassword == "" {
		s.log.Warn().Msg("SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD not set, skipping admin user creation")
		return nil
	}

	passwordHash, err := s.hasher.Hash(s.cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &model.User{
		Username:     s.cfg.AdminUsername,
		Email:        s.cfg.AdminEmail,
		PasswordHash: passwordHash,
		Role:         model.RoleAdmin,
		IsInstructor: false,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	s.log.Info().Str("email", admin.Email).Uint("user_id", admin.ID).Msg("created admin user")
	return nil
}

// SeedCategories creates DefaultCategories when the table is empty
func (s *Seeder) SeedCategories() error {
	var count int64
	if err := s.db.Model(&model.Category{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		s.log.Info().Int64("count", count).Msg("categories already exist, skipping")
		return nil
	}

	categories := make([]model.Category, 0, len(DefaultCategories))
	for _, name := range DefaultCategories {
		categories = append(categories, model.Category{Name: name})
	}

	if err := s.db.Create(&categories).Error; err != nil {
		return err
	}

	s.log.Info().Int("count", len(categories)).Msg("created categories")
	return nil
}

// RunSeeds seeds db with the bcrypt hasher
func RunSeeds(db *gorm.DB, cfg config.SeedConfig, log zerolog.Logger) error {
	seeder := NewSeeder(db, auth.NewBcryptHasher(auth.DefaultCost), cfg, log)
	return seeder.SeedAll()
}
