package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/nexpertia/marketplace-api/database"
	"github.com/nexpertia/marketplace-api/model"
	"github.com/nexpertia/marketplace-api/repository"
	"github.com/nexpertia/marketplace-api/utils/apperrors"
)

// AdminService holds the operations reserved for administrators
type AdminService struct {
	store database.Storage
	log   zerolog.Logger
}

func NewAdminService(store database.Storage, log zerolog.Logger) *AdminService {
	return &AdminService{
		store: store,
		log:   log.With().Str("service", "admin").Logger(),
	}
}

// ListUsersRequest filters the user listing
type ListUsersRequest struct {
	Role   string
	Search string
	Page   int
	Limit  int
}

// ListUsers returns one page of users and the total number of matches
func (s *AdminService) ListUsers(ctx context.Context, req ListUsersRequest) ([]model.User, int64, error) {
	if req.Role != "" && !model.Role(req.Role).Valid() {
		return nil, 0, apperrors.NewValidationError("role must be one of admin, instructor, student")
	}
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	return s.store.Repos().Users.List(ctx, repository.UserFilter{
		Role:   model.Role(req.Role),
		Search: strings.TrimSpace(req.Search),
		Page:   req.Page,
		Limit:  req.Limit,
	})
}

// DeleteUser removes a user that owns no bookings, courses, invoices or subscriptions.
// Extension rows, notifications, feedback, invoice template and revoked tokens go with it.
func (s *AdminService) DeleteUser(ctx context.Context, actorID, userID uint) error {
	if actorID == userID {
		return apperrors.NewValidationError("administrators cannot delete their own account")
	}

	err := s.store.WithTransaction(ctx, func(repos *repository.Repositories) error {
		if _, err := repos.Users.GetByID(ctx, userID); err != nil {
			return err
		}

		dependents, err := repos.Users.CountDependents(ctx, userID)
		if err != nil {
			return err
		}
		if len(dependents) > 0 {
			kinds := make([]string, 0, len(dependents))
			for kind, n := range dependents {
				kinds = append(kinds, fmt.Sprintf("%d %s", n, kind))
			}
			sort.Strings(kinds)
			return apperrors.NewConflictError("user still has %s", strings.Join(kinds, ", "))
		}

		return repos.Users.Delete(ctx, userID)
	})
	if err != nil {
		return err
	}

	s.log.Info().Uint("user_id", userID).Uint("deleted_by", actorID).Msg("user deleted")
	return nil
}
