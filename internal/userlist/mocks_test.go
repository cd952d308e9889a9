package userlist

import (
	"context"

	"github.com/EO-DataHub/eodhp-user-console/models"
	"github.com/stretchr/testify/mock"
)

type MockDirectory struct {
	mock.Mock
}

func (m *MockDirectory) ListUsers(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]models.User)
	return users, args.Error(1)
}

func (m *MockDirectory) CreateUser(ctx context.Context, provisionalID models.UserID, draft models.Draft) (*models.User, error) {
	args := m.Called(ctx, provisionalID, draft)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockDirectory) UpdateUser(ctx context.Context, id models.UserID, draft models.Draft) (*models.User, error) {
	args := m.Called(ctx, id, draft)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockDirectory) DeleteUser(ctx context.Context, id models.UserID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
