// Package uuid wraps google/uuid so that resource IDs can be bound from
// URI and query parameters.
package uuid

import (
	"errors"

	google_uuid "github.com/google/uuid"
)

var ErrInvalid = errors.New("the specified resource ID is not a valid UUID")

// ID is a resource ID as passed in a request.
type ID struct {
	google_uuid.UUID
}

var Nil ID

// Parse parses a string into an ID. The empty string parses to Nil.
func Parse(s string) (ID, error) {
	if s == "" {
		return Nil, nil
	}

	parsed, err := google_uuid.Parse(s)
	if err != nil {
		return Nil, ErrInvalid
	}

	return ID{parsed}, nil
}

// UnmarshalParam is called by gin when binding URI and form parameters.
func (u *ID) UnmarshalParam(p string) error {
	parsed, err := Parse(p)
	if err != nil {
		return err
	}

	*u = parsed
	return nil
}

// IsNil reports if the ID is the nil UUID.
func (u ID) IsNil() bool {
	return u.UUID == google_uuid.Nil
}
