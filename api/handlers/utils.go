package handlers

import (
	"context"

	"github.com/EO-DataHub/eodhp-user-console/internal/userlist"
	"github.com/EO-DataHub/eodhp-user-console/models"
)

// UserList is the state container the handlers render and mutate.
type UserList interface {
	State() userlist.State
	User(id models.UserID) (models.User, bool)
	Submit(ctx context.Context)
	Delete(ctx context.Context, id models.UserID)
	BeginEdit(user models.User)
	CancelEdit()
	UpdateDraftField(field models.DraftField, value string) error
}
