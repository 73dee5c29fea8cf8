package services

import (
	"context"
	"errors"
	"fmt"

	"ecoreport/internal/adapters/persistence/repositories"
	"ecoreport/internal/core/domain"
)

// AuthorizationService decides whether a principal holds a capability. The
// role is read from the user record on every call, so a role change applies
// to the next request without reissuing tokens.
type AuthorizationService struct {
	userRepo repositories.UserRepository
}

// NewAuthorizationService creates a new authorization service
func NewAuthorizationService(userRepo repositories.UserRepository) *AuthorizationService {
	return &AuthorizationService{userRepo: userRepo}
}

// Authorize returns the principal's user record if its role grants capability
func (s *AuthorizationService) Authorize(ctx context.Context, principalID uint, capability domain.Capability) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, principalID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown principal", domain.ErrForbidden)
		}
		return nil, err
	}

	if !user.Role.Can(capability) {
		return nil, fmt.Errorf("%w: role %s lacks %s", domain.ErrForbidden, user.Role, capability)
	}
	return user, nil
}
