// Package directory owns the user records: the in-memory list, its
// persistence, and the role-gated mutations over it.
package directory

import "github.com/userdeck/userdeck/internal/shared"

// Gender is the fixed gender enumeration carried by a record.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
	GenderUnset  Gender = "unset"
)

// Valid reports whether the gender is one of the enumerated values.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther, GenderUnset:
		return true
	default:
		return false
	}
}

// Name holds the split name of a record.
type Name struct {
	First string `json:"first"`
	Last  string `json:"last"`
}

// Full renders the name the way listings sort and display it.
func (n Name) Full() string {
	return n.First + " " + n.Last
}

// User is a single directory record. The ID is assigned once and never
// changes; it is unique across the store.
type User struct {
	ID     string      `json:"id"`
	Name   Name        `json:"name"`
	Email  string      `json:"email"`
	Gender Gender      `json:"gender"`
	Role   shared.Role `json:"role"`
}

// Input carries the caller-supplied fields for a create or edit. All fields
// are required at the mutation boundary.
type Input struct {
	Name   Name        `json:"name"`
	Email  string      `json:"email"`
	Gender Gender      `json:"gender"`
	Role   shared.Role `json:"role"`
}
