package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ID is the opaque identifier assigned to a user by the users service.
type ID string

// String returns the id text.
func (id ID) String() string {
	return string(id)
}

// UnmarshalJSON accepts both string and integer ids.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or a number: %w", err)
	}
	*id = ID(canonicalInteger(n))
	return nil
}

// UserRecord is a single user as known by the users service.
type UserRecord struct {
	ID       ID     `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// Input returns the mutable fields of the record.
func (r UserRecord) Input() UserInput {
	return UserInput{
		FullName: r.FullName,
		Email:    r.Email,
		Phone:    r.Phone,
	}
}

// UserInput is the request body for create and update.
type UserInput struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// Field names as they appear on the wire.
const (
	FieldID       = "id"
	FieldFullName = "fullName"
	FieldEmail    = "email"
	FieldPhone    = "phone"
)

// Validate reports the first empty field. All fields are required.
func (in UserInput) Validate() error {
	switch {
	case strings.TrimSpace(in.FullName) == "":
		return &ValidationError{Field: FieldFullName, Message: "is required"}
	case strings.TrimSpace(in.Email) == "":
		return &ValidationError{Field: FieldEmail, Message: "is required"}
	case strings.TrimSpace(in.Phone) == "":
		return &ValidationError{Field: FieldPhone, Message: "is required"}
	}
	return nil
}

// With returns a copy of the input with the named field set to value.
func (in UserInput) With(field, value string) (UserInput, error) {
	switch field {
	case FieldFullName:
		in.FullName = value
	case FieldEmail:
		in.Email = value
	case FieldPhone:
		in.Phone = value
	default:
		return in, &ValidationError{Field: field, Message: "unknown field"}
	}
	return in, nil
}
