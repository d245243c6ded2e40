package auth

import (
	"context"
	"time"

	"github.com/nexpertia/marketplace-api/model"
	"github.com/nexpertia/marketplace-api/repository"
)

// BlacklistService handles JWT token revocation
type BlacklistService struct {
	tokens *repository.TokenBlacklistRepository
	users  *repository.UserRepository
}

// NewBlacklistService creates a new blacklist service
func NewBlacklistService(repos *repository.Repositories) *BlacklistService {
	return &BlacklistService{tokens: repos.TokenBlacklist, users: repos.Users}
}

// RevokeToken adds a token to the blacklist
func (s *BlacklistService) RevokeToken(ctx context.Context, jti string, userID uint, expiresAt time.Time, reason string) error {
	exists, err := s.tokens.Exists(ctx, jti)
	if err != nil || exists {
		return err
	}
	return s.tokens.Create(ctx, &model.JWTTokenBlacklist{
		JTI:       jti,
		UserID:    userID,
		Reason:    reason,
		ExpiresAt: expiresAt.UTC(),
	})
}

// IsTokenRevoked checks if a token is in the blacklist
func (s *BlacklistService) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	return s.tokens.Exists(ctx, jti)
}

// RevokeAllUserTokens increments user's token version to invalidate all tokens
func (s *BlacklistService) RevokeAllUserTokens(ctx context.Context, userID uint) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	user.TokenVersion++
	return s.users.Update(ctx, user)
}

// CleanupExpiredTokens removes expired entries from the blacklist
func (s *BlacklistService) CleanupExpiredTokens(ctx context.Context) (int64, error) {
	return s.tokens.DeleteExpired(ctx, time.Now().UTC())
}
