package services

import (
	"context"

	"github.com/etchegaray/integria-connect/internal/app/auth"
	"github.com/etchegaray/integria-connect/internal/app/models"
	"github.com/etchegaray/integria-connect/internal/app/models/dto"
	"github.com/etchegaray/integria-connect/internal/pkg/apperrors"
	"github.com/etchegaray/integria-connect/internal/pkg/helpers"
	"github.com/etchegaray/integria-connect/internal/pkg/logger"
)

// UserService handles user administration
type UserService struct {
	userRepo  UserStore
	tokenRepo TokenStore
}

// NewUserService creates a new UserService
func NewUserService(userRepo UserStore, tokenRepo TokenStore) *UserService {
	return &UserService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
	}
}

// ListUsers retrieves users with optional role filtering, manager only
func (s *UserService) ListUsers(ctx context.Context, actor auth.Actor, role *models.RoleType, page, size int) ([]*models.User, dto.PaginationInfo, error) {
	if !auth.Can(actor, auth.PermManageUsers) {
		return nil, dto.PaginationInfo{}, apperrors.ErrPermissionDenied
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	users, total, err := s.userRepo.List(ctx, role, int(offset), limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	return users, helpers.NewPaginationInfo(total, page, size), nil
}

// GetUser retrieves a single user, manager only
func (s *UserService) GetUser(ctx context.Context, actor auth.Actor, id int64) (*models.User, error) {
	if !auth.Can(actor, auth.PermManageUsers) {
		return nil, apperrors.ErrPermissionDenied
	}

	return s.userRepo.GetByID(ctx, id)
}

// ChangeRole promotes or demotes a user, manager only. The target's
// refresh tokens are revoked so the old role cannot outlive the
// change beyond the access token expiry.
func (s *UserService) ChangeRole(ctx context.Context, actor auth.Actor, id int64, role string) (*models.User, error) {
	if !auth.Can(actor, auth.PermManageUsers) {
		return nil, apperrors.ErrPermissionDenied
	}

	if !models.ValidRole(role) {
		return nil, apperrors.ErrInvalidRole
	}

	if actor.UserID == id {
		return nil, apperrors.NewBadRequestError("cannot change your own role")
	}

	if err := s.userRepo.UpdateRole(ctx, id, models.RoleType(role)); err != nil {
		return nil, err
	}

	if err := s.tokenRepo.RevokeAllUserTokens(ctx, id); err != nil {
		logger.Warn().Err(err).Int64("userID", id).Msg("Failed to revoke tokens after role change")
	}

	return s.userRepo.GetByID(ctx, id)
}
