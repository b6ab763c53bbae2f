package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/shivanshkc/pinterestauth/internal/repository"
)

// mockRepository is a mock implementation of repository.Repository.
type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) UpsertUser(ctx context.Context, user repository.User) (repository.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(repository.User), args.Error(1)
}

func (m *mockRepository) GetUser(ctx context.Context, id int64) (repository.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(repository.User), args.Error(1)
}
