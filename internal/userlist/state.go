package userlist

import "github.com/EO-DataHub/eodhp-user-console/models"

// Mode is the form mode derived from the editing target.
type Mode string

const (
	ModeCreating Mode = "creating"
	ModeEditing  Mode = "editing"
)

// State is a point-in-time copy of the controller, safe to hand to renderers.
type State struct {
	Users    []models.User  `json:"users"`
	Draft    models.Draft   `json:"draft"`
	Editing  *models.UserID `json:"editing,omitempty"`
	Loading  bool           `json:"loading"`
	InFlight map[Op]int     `json:"inFlight,omitempty"`
	Error    string         `json:"error,omitempty"`
}

// Mode reports whether the form is creating a user or editing one.
func (s State) Mode() Mode {
	if s.Editing != nil {
		return ModeEditing
	}
	return ModeCreating
}

// IsEditing reports whether the form edits the user with the given id.
func (s State) IsEditing(id models.UserID) bool {
	return s.Editing != nil && *s.Editing == id
}
