package config

import (
	"context"
	"fmt"
	"strings"

	"ecoreport/internal/adapters/persistence/repositories"
	"ecoreport/internal/core/domain"
	"ecoreport/internal/pkg/password"
	"ecoreport/internal/pkg/validate"

	"github.com/gofiber/fiber/v2/log"
)

// Seeder provisions privileged accounts. It is run by deployment tooling,
// never by the API server.
type Seeder struct {
	users repositories.UserRepository
}

// NewSeeder creates a new seeder instance
func NewSeeder(users repositories.UserRepository) *Seeder {
	return &Seeder{users: users}
}

// AccountInput describes an account to provision
type AccountInput struct {
	Name     string `validate:"required,max=100"`
	Email    string `validate:"required,email"`
	Phone    string `validate:"required,max=30"`
	Password string `validate:"required,min=8,max=72"`
	Role     domain.Role
}

// ProvisionAccount creates the account unless one with the same email
// exists. It reports whether a new account was created.
func (s *Seeder) ProvisionAccount(ctx context.Context, in AccountInput) (bool, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validate.Struct(in); err != nil {
		return false, err
	}
	if _, err := domain.ParseRole(string(in.Role)); err != nil {
		return false, err
	}

	exists, err := s.users.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return false, err
	}
	if exists {
		log.Infof("Account %s already exists, nothing to do", in.Email)
		return false, nil
	}

	hashed, err := password.Hash(in.Password)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Name:       in.Name,
		Email:      in.Email,
		Phone:      in.Phone,
		Password:   hashed,
		Role:       in.Role,
		IsVerified: true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return false, err
	}

	log.Infof("✅ %s account created: %s", in.Role, in.Email)
	return true, nil
}
