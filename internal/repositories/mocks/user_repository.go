package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"jobboard/internal/models/db_models"
)

// UserRepository is a testify mock of repositories.UserRepository.
type UserRepository struct {
	mock.Mock
}

func userOrNil(args mock.Arguments) *db_models.User {
	if u, ok := args.Get(0).(*db_models.User); ok {
		return u
	}
	return nil
}

func (m *UserRepository) Insert(ctx context.Context, user *db_models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.User, error) {
	args := m.Called(ctx, id)
	return userOrNil(args), args.Error(1)
}

func (m *UserRepository) FindByEmail(ctx context.Context, email string) (*db_models.User, error) {
	args := m.Called(ctx, email)
	return userOrNil(args), args.Error(1)
}

func (m *UserRepository) FindByUsername(ctx context.Context, username string) (*db_models.User, error) {
	args := m.Called(ctx, username)
	return userOrNil(args), args.Error(1)
}

func (m *UserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *UserRepository) List(ctx context.Context, search string, page, pageSize int) ([]db_models.User, int64, error) {
	args := m.Called(ctx, search, page, pageSize)
	users, _ := args.Get(0).([]db_models.User)
	return users, args.Get(1).(int64), args.Error(2)
}
