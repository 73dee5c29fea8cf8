package config

import (
	"context"
	"errors"
	"testing"

	"ecoreport/internal/core/domain"
	"ecoreport/internal/mocks"
	"ecoreport/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func adminInput() AccountInput {
	return AccountInput{
		Name:     "Ops Admin",
		Email:    "  Admin@EcoReport.app ",
		Phone:    "0800000000",
		Password: "correct-horse",
		Role:     domain.RoleAdmin,
	}
}

func TestProvisionAccountCreates(t *testing.T) {
	users := new(mocks.MockUserRepository)
	users.On("ExistsByEmail", mock.Anything, "admin@ecoreport.app").Return(false, nil)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "admin@ecoreport.app" &&
			u.Role == domain.RoleAdmin &&
			u.IsVerified &&
			password.Verify("correct-horse", u.Password)
	})).Return(nil)

	created, err := NewSeeder(users).ProvisionAccount(context.Background(), adminInput())

	require.NoError(t, err)
	assert.True(t, created)
	users.AssertExpectations(t)
}

func TestProvisionAccountIsIdempotent(t *testing.T) {
	users := new(mocks.MockUserRepository)
	users.On("ExistsByEmail", mock.Anything, "admin@ecoreport.app").Return(true, nil)

	created, err := NewSeeder(users).ProvisionAccount(context.Background(), adminInput())

	require.NoError(t, err)
	assert.False(t, created)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProvisionAccountValidates(t *testing.T) {
	users := new(mocks.MockUserRepository)

	in := adminInput()
	in.Password = "short"
	_, err := NewSeeder(users).ProvisionAccount(context.Background(), in)
	assert.True(t, errors.Is(err, domain.ErrValidation))

	in = adminInput()
	in.Role = "superuser"
	_, err = NewSeeder(users).ProvisionAccount(context.Background(), in)
	assert.True(t, errors.Is(err, domain.ErrValidation))

	users.AssertNotCalled(t, "ExistsByEmail", mock.Anything, mock.Anything)
}
