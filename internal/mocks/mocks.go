// Package mocks holds testify mocks for the repository and service ports.
package mocks

import (
	"context"
	"time"

	"ecoreport/internal/adapters/persistence/repositories"
	"ecoreport/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	args := m.Called(ctx, id)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type MockRefreshTokenRepository struct {
	mock.Mock
}

func (m *MockRefreshTokenRepository) Create(ctx context.Context, token *domain.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error) {
	args := m.Called(ctx, tokenHash)
	if t := args.Get(0); t != nil {
		return t.(*domain.RefreshToken), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRefreshTokenRepository) Revoke(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) RevokeByTokenHash(ctx context.Context, tokenHash string) error {
	args := m.Called(ctx, tokenHash)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) RevokeAllByUserID(ctx context.Context, userID uint) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockComplaintRepository struct {
	mock.Mock
}

func (m *MockComplaintRepository) Create(ctx context.Context, complaint *domain.Complaint) error {
	args := m.Called(ctx, complaint)
	return args.Error(0)
}

func (m *MockComplaintRepository) GetByComplaintID(ctx context.Context, complaintID string) (*domain.Complaint, error) {
	args := m.Called(ctx, complaintID)
	return complaintOrNil(args.Get(0)), args.Error(1)
}

func (m *MockComplaintRepository) GetByOwner(ctx context.Context, ownerID uint, complaintID string) (*domain.Complaint, error) {
	args := m.Called(ctx, ownerID, complaintID)
	return complaintOrNil(args.Get(0)), args.Error(1)
}

func (m *MockComplaintRepository) ListByOwner(ctx context.Context, ownerID uint) ([]*domain.Complaint, error) {
	args := m.Called(ctx, ownerID)
	if l := args.Get(0); l != nil {
		return l.([]*domain.Complaint), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockComplaintRepository) List(ctx context.Context, filter repositories.ComplaintFilter) ([]*domain.Complaint, int64, error) {
	args := m.Called(ctx, filter)
	var list []*domain.Complaint
	if l := args.Get(0); l != nil {
		list = l.([]*domain.Complaint)
	}
	return list, args.Get(1).(int64), args.Error(2)
}

func (m *MockComplaintRepository) Update(ctx context.Context, complaint *domain.Complaint) error {
	args := m.Called(ctx, complaint)
	return args.Error(0)
}

func (m *MockComplaintRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockComplaintRepository) CountByStatus(ctx context.Context, status domain.Status) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockComplaintRepository) CountOverdue(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

type MockMediaStore struct {
	mock.Mock
}

func (m *MockMediaStore) Store(ctx context.Context, blob []byte, mimeType string) (domain.MediaRef, error) {
	args := m.Called(ctx, blob, mimeType)
	return args.Get(0).(domain.MediaRef), args.Error(1)
}

func (m *MockMediaStore) Delete(ctx context.Context, referenceID string) error {
	args := m.Called(ctx, referenceID)
	return args.Error(0)
}

type MockCredentialVerifier struct {
	mock.Mock
}

func (m *MockCredentialVerifier) ResolvePrincipal(ctx context.Context, credential string) (uint, error) {
	args := m.Called(ctx, credential)
	return args.Get(0).(uint), args.Error(1)
}

func userOrNil(v interface{}) *domain.User {
	if v == nil {
		return nil
	}
	return v.(*domain.User)
}

func complaintOrNil(v interface{}) *domain.Complaint {
	if v == nil {
		return nil
	}
	return v.(*domain.Complaint)
}
