package services

import (
	"context"
	"errors"
	"testing"

	"ecoreport/internal/core/domain"
	"ecoreport/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAuthorize_CapabilityTable(t *testing.T) {
	tests := []struct {
		role    domain.Role
		cap     domain.Capability
		allowed bool
	}{
		{domain.RoleUser, domain.CapManageOwnComplaints, true},
		{domain.RoleUser, domain.CapManageComplaints, false},
		{domain.RoleUser, domain.CapViewAllComplaints, false},
		{domain.RoleOfficer, domain.CapManageOwnComplaints, false},
		{domain.RoleOfficer, domain.CapManageComplaints, true},
		{domain.RoleOfficer, domain.CapViewAllComplaints, true},
		{domain.RoleAdmin, domain.CapManageOwnComplaints, false},
		{domain.RoleAdmin, domain.CapManageComplaints, true},
		{domain.RoleAdmin, domain.CapViewAllComplaints, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+string(tt.cap), func(t *testing.T) {
			users := new(mocks.MockUserRepository)
			users.On("GetByID", mock.Anything, uint(7)).Return(&domain.User{ID: 7, Role: tt.role}, nil)

			user, err := NewAuthorizationService(users).Authorize(context.Background(), 7, tt.cap)
			if tt.allowed {
				require.NoError(t, err)
				assert.Equal(t, uint(7), user.ID)
			} else {
				assert.True(t, errors.Is(err, domain.ErrForbidden), "got %v", err)
				assert.Nil(t, user)
			}
		})
	}
}

func TestAuthorize_UnknownPrincipal(t *testing.T) {
	users := new(mocks.MockUserRepository)
	users.On("GetByID", mock.Anything, uint(99)).Return(nil, domain.ErrNotFound)

	_, err := NewAuthorizationService(users).Authorize(context.Background(), 99, domain.CapManageOwnComplaints)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
	assert.False(t, errors.Is(err, domain.ErrNotFound))
}

func TestAuthorize_UnknownRoleIsDenied(t *testing.T) {
	users := new(mocks.MockUserRepository)
	users.On("GetByID", mock.Anything, uint(3)).Return(&domain.User{ID: 3, Role: "superuser"}, nil)

	_, err := NewAuthorizationService(users).Authorize(context.Background(), 3, domain.CapViewAllComplaints)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestAuthorize_StoreFailurePropagates(t *testing.T) {
	users := new(mocks.MockUserRepository)
	users.On("GetByID", mock.Anything, uint(1)).Return(nil, domain.ErrCollaborator)

	_, err := NewAuthorizationService(users).Authorize(context.Background(), 1, domain.CapManageOwnComplaints)
	assert.True(t, errors.Is(err, domain.ErrCollaborator))
}

func TestAuthorize_RoleChangeAppliesOnNextCall(t *testing.T) {
	users := new(mocks.MockUserRepository)
	gate := NewAuthorizationService(users)

	users.On("GetByID", mock.Anything, uint(5)).Return(&domain.User{ID: 5, Role: domain.RoleOfficer}, nil).Once()
	_, err := gate.Authorize(context.Background(), 5, domain.CapManageComplaints)
	require.NoError(t, err)

	users.On("GetByID", mock.Anything, uint(5)).Return(&domain.User{ID: 5, Role: domain.RoleUser}, nil).Once()
	_, err = gate.Authorize(context.Background(), 5, domain.CapManageComplaints)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}
