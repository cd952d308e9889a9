package models

import "fmt"

// DraftField names one editable field of a Draft.
type DraftField string

const (
	FieldName    DraftField = "name"
	FieldEmail   DraftField = "email"
	FieldPhone   DraftField = "phone"
	FieldWebsite DraftField = "website"
)

// DraftFields lists the editable fields in form order.
var DraftFields = []DraftField{FieldName, FieldEmail, FieldPhone, FieldWebsite}

// Draft holds the unsaved values of the user form.
type Draft struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Website string `json:"website"`
}

// DraftFromUser copies the editable fields of a user into a new draft.
func DraftFromUser(u User) Draft {
	return Draft{
		Name:    u.Name,
		Email:   u.Email,
		Phone:   u.Phone,
		Website: u.Website,
	}
}

// IsEmpty reports whether every field of the draft is blank.
func (d Draft) IsEmpty() bool {
	return d == Draft{}
}

// Set assigns value to the named field.
func (d *Draft) Set(field DraftField, value string) error {
	switch field {
	case FieldName:
		d.Name = value
	case FieldEmail:
		d.Email = value
	case FieldPhone:
		d.Phone = value
	case FieldWebsite:
		d.Website = value
	default:
		return fmt.Errorf("unknown draft field %q", field)
	}
	return nil
}

// Get returns the value of the named field.
func (d Draft) Get(field DraftField) string {
	switch field {
	case FieldName:
		return d.Name
	case FieldEmail:
		return d.Email
	case FieldPhone:
		return d.Phone
	case FieldWebsite:
		return d.Website
	}
	return ""
}

// DraftFieldRequest is the body of a single draft field update.
type DraftFieldRequest struct {
	Field DraftField `json:"field"`
	Value string     `json:"value"`
}
