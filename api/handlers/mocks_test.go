package handlers

import (
	"context"

	"github.com/EO-DataHub/eodhp-user-console/internal/userlist"
	"github.com/EO-DataHub/eodhp-user-console/models"
	"github.com/stretchr/testify/mock"
)

type MockUserList struct {
	mock.Mock
}

func (m *MockUserList) State() userlist.State {
	args := m.Called()
	return args.Get(0).(userlist.State)
}

func (m *MockUserList) User(id models.UserID) (models.User, bool) {
	args := m.Called(id)
	return args.Get(0).(models.User), args.Bool(1)
}

func (m *MockUserList) Submit(ctx context.Context) {
	m.Called(ctx)
}

func (m *MockUserList) Delete(ctx context.Context, id models.UserID) {
	m.Called(ctx, id)
}

func (m *MockUserList) BeginEdit(user models.User) {
	m.Called(user)
}

func (m *MockUserList) CancelEdit() {
	m.Called()
}

func (m *MockUserList) UpdateDraftField(field models.DraftField, value string) error {
	args := m.Called(field, value)
	return args.Error(0)
}
