package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/nexpertia/marketplace-api/database"
	"github.com/nexpertia/marketplace-api/model"
	"github.com/nexpertia/marketplace-api/repository"
	"github.com/nexpertia/marketplace-api/services/storage"
	"github.com/nexpertia/marketplace-api/utils/apperrors"
	"github.com/nexpertia/marketplace-api/utils/filevalidation"
)

// UploadService stores user files and links them to their records
type UploadService struct {
	store database.Storage
	files storage.FileStorage
	log   zerolog.Logger
}

func NewUploadService(store database.Storage, files storage.FileStorage, log zerolog.Logger) *UploadService {
	return &UploadService{
		store: store,
		files: files,
		log:   log.With().Str("service", "upload").Logger(),
	}
}

// ProfilePicture validates the image, stores it and writes its URL to the user's extension record
func (s *UploadService) ProfilePicture(ctx context.Context, userID uint, filename string, content []byte) (string, error) {
	result := filevalidation.ValidateImage(filename, content)
	if !result.Valid {
		return "", apperrors.NewValidationError("%s", result.Error)
	}

	// The extension must exist before anything is stored
	repos := s.store.Repos()
	user, err := repos.Users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if _, err := loadExtension(ctx, repos, user); err != nil {
		return "", err
	}

	key := storage.GenerateKey("profile_pictures", filename)
	url, err := s.files.Save(ctx, key, content, result.ContentType)
	if err != nil {
		s.log.Error().Err(err).Uint("user_id", userID).Msg("failed to store profile picture")
		return "", apperrors.NewPersistenceError(err)
	}

	err = s.store.WithTransaction(ctx, func(repos *repository.Repositories) error {
		ext, err := loadExtension(ctx, repos, user)
		if err != nil {
			return err
		}
		model.ProfilePatch{ProfilePicture: &url}.Apply(&ext)
		return saveExtension(ctx, repos, ext)
	})
	if err != nil {
		if delErr := s.files.Delete(ctx, key); delErr != nil {
			s.log.Warn().Err(delErr).Str("key", key).Msg("failed to remove orphaned profile picture")
		}
		return "", err
	}

	s.log.Info().Uint("user_id", userID).Str("url", url).Msg("profile picture uploaded")
	return url, nil
}
