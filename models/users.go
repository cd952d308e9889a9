package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// UserID is the opaque identifier the remote directory assigns to a user.
// The directory may hand out numbers or strings; both decode into a UserID.
type UserID string

// UnmarshalJSON accepts a JSON string, a JSON number or null.
func (id *UserID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("invalid user id: %w", err)
		}
		*id = UserID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("invalid user id %s: %w", b, err)
	}
	*id = UserID(n.String())
	return nil
}

// MarshalJSON writes integer-shaped ids as JSON numbers and every other id as
// a JSON string. The kind the id arrived as is not kept, so a string "42" is
// sent back as 42 and a number 1.0 as "1.0".
func (id UserID) MarshalJSON() ([]byte, error) {
	if id.isInteger() {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id UserID) isInteger() bool {
	if id == "" {
		return false
	}
	n, err := strconv.ParseInt(string(id), 10, 64)
	return err == nil && strconv.FormatInt(n, 10) == string(id)
}

func (id UserID) String() string {
	return string(id)
}

// User represents a user held by the remote directory.
type User struct {
	ID      UserID `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Website string `json:"website"`
}
