package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/nexpertia/marketplace-api/database"
	"github.com/nexpertia/marketplace-api/model"
	"github.com/nexpertia/marketplace-api/repository"
	"github.com/nexpertia/marketplace-api/utils/apperrors"
	"github.com/nexpertia/marketplace-api/utils/auth"
	"github.com/nexpertia/marketplace-api/utils/validation"
)

// AuthService handles registration, login and token lifecycle
type AuthService struct {
	store     database.Storage
	hasher    auth.PasswordHasher
	tokens    auth.TokenIssuer
	blacklist *auth.BlacklistService
	validator *validation.Validator
	log       zerolog.Logger
}

func NewAuthService(store database.Storage, hasher auth.PasswordHasher, tokens auth.TokenIssuer,
	blacklist *auth.BlacklistService, v *validation.Validator, log zerolog.Logger) *AuthService {
	return &AuthService{
		store:     store,
		hasher:    hasher,
		tokens:    tokens,
		blacklist: blacklist,
		validator: v,
		log:       log.With().Str("service", "auth").Logger(),
	}
}

// RegisterRequest represents the registration payload
type RegisterRequest struct {
	Username     string `json:"username" validate:"required,min=3,max=30"`
	Email        string `json:"email" validate:"required,email,max=120"`
	Password     string `json:"password" validate:"required,min=8,max=72"`
	Address      string `json:"address" validate:"max=255"`
	ZipCode      string `json:"zip_code" validate:"max=20"`
	City         string `json:"city" validate:"max=100"`
	PhoneNumber  string `json:"phone_number" validate:"max=20"`
	IsInstructor bool   `json:"is_instructor"`
}

// Registration is the created user with its extension record
type Registration struct {
	User      *model.User
	Extension model.UserExtension
}

// Register creates the user and its extension record in one unit of work
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*Registration, error) {
	req.Username = validation.SanitizeString(req.Username)
	req.Email = strings.ToLower(validation.SanitizeString(req.Email))

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if ok, msg := validation.ValidateUsername(req.Username); !ok {
		return nil, apperrors.NewValidationError("%s", msg)
	}
	if !validation.ValidateEmail(req.Email) {
		return nil, apperrors.NewValidationError("invalid email format")
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooShort) {
			return nil, apperrors.NewValidationError("%s", err.Error())
		}
		return nil, err
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Role:         model.RoleFor(req.IsInstructor),
		IsInstructor: req.IsInstructor,
		Address:      validation.SanitizeString(req.Address),
		ZipCode:      validation.SanitizeString(req.ZipCode),
		City:         validation.SanitizeString(req.City),
		PhoneNumber:  validation.SanitizeString(req.PhoneNumber),
	}

	var ext model.UserExtension
	err = s.store.WithTransaction(ctx, func(repos *repository.Repositories) error {
		exists, err := repos.Users.ExistsByEmail(ctx, user.Email)
		if err != nil {
			return err
		}
		if exists {
			return apperrors.NewConflictError("email already registered")
		}

		exists, err = repos.Users.ExistsByUsername(ctx, user.Username)
		if err != nil {
			return err
		}
		if exists {
			return apperrors.NewConflictError("username already taken")
		}

		if err := repos.Users.Create(ctx, user); err != nil {
			return err
		}

		ext = model.NewExtensionFor(user)
		switch ext.Kind {
		case model.ExtensionInstructor:
			return repos.Instructors.Create(ctx, ext.Instructor)
		case model.ExtensionProfile:
			return repos.Profiles.Create(ctx, ext.Profile)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Uint("user_id", user.ID).Str("role", string(user.Role)).Msg("user registered")
	return &Registration{User: user, Extension: ext}, nil
}

// LoginRequest represents the login payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResult carries the issued tokens and the identity they are bound to
type LoginResult struct {
	User   *model.User
	Tokens *auth.TokenPair
}

// Login verifies credentials. An unknown email and a wrong password fail identically.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.store.Repos().Users.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewAuthenticationError()
		}
		return nil, err
	}

	if err := s.hasher.Verify(user.PasswordHash, req.Password); err != nil {
		if !errors.Is(err, auth.ErrPasswordMismatch) {
			s.log.Warn().Err(err).Uint("user_id", user.ID).Msg("stored password hash could not be verified")
		}
		return nil, apperrors.NewAuthenticationError()
	}

	tokens, err := s.tokens.IssuePair(user.ID, user.Email, string(user.Role), user.TokenVersion)
	if err != nil {
		return nil, err
	}

	return &LoginResult{User: user, Tokens: tokens}, nil
}

// Refresh exchanges a refresh token for a new pair; the old refresh token is revoked
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	claims, err := s.tokens.ValidateToken(refreshToken)
	if err != nil || claims.TokenType != auth.TokenTypeRefresh {
		return nil, &apperrors.Error{Err: apperrors.ErrAuthentication, Message: "invalid refresh token"}
	}

	revoked, err := s.blacklist.IsTokenRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, &apperrors.Error{Err: apperrors.ErrAuthentication, Message: "refresh token has been revoked"}
	}

	user, err := s.store.Repos().Users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, &apperrors.Error{Err: apperrors.ErrAuthentication, Message: "invalid refresh token"}
		}
		return nil, err
	}
	if user.TokenVersion != claims.TokenVersion {
		return nil, &apperrors.Error{Err: apperrors.ErrAuthentication, Message: "refresh token has been invalidated"}
	}

	if err := s.blacklist.RevokeToken(ctx, claims.ID, user.ID, expiryOf(claims), "refresh"); err != nil {
		return nil, err
	}

	tokens, err := s.tokens.IssuePair(user.ID, user.Email, string(user.Role), user.TokenVersion)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: user, Tokens: tokens}, nil
}

// Logout revokes the access token and, when given, the refresh token of the same session
func (s *AuthService) Logout(ctx context.Context, access *auth.Claims, refreshToken string) error {
	if err := s.blacklist.RevokeToken(ctx, access.ID, access.UserID, expiryOf(access), "logout"); err != nil {
		return err
	}

	if refreshToken != "" {
		claims, err := s.tokens.ValidateToken(refreshToken)
		if err == nil && claims.TokenType == auth.TokenTypeRefresh && claims.UserID == access.UserID {
			if err := s.blacklist.RevokeToken(ctx, claims.ID, claims.UserID, expiryOf(claims), "logout"); err != nil {
				return err
			}
		}
	}

	if n, err := s.blacklist.CleanupExpiredTokens(ctx); err != nil {
		s.log.Warn().Err(err).Msg("failed to clean up expired revoked tokens")
	} else if n > 0 {
		s.log.Debug().Int64("removed", n).Msg("expired revoked tokens removed")
	}
	return nil
}

// LogoutAll invalidates every token issued to the user so far
func (s *AuthService) LogoutAll(ctx context.Context, userID uint) error {
	return s.blacklist.RevokeAllUserTokens(ctx, userID)
}

func expiryOf(claims *auth.Claims) time.Time {
	if claims.ExpiresAt == nil {
		return time.Now().Add(24 * time.Hour)
	}
	return claims.ExpiresAt.Time
}
