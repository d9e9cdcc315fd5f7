package entity

import (
	"strings"
	"unicode/utf8"
)

// Gender is stored as its upper-case name.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// Password limits. The upper bound counts bytes since bcrypt rejects
// anything longer than 72 of them.
const (
	MinPasswordChars = 8
	MaxPasswordBytes = 72
)

// ValidPassword reports whether plain is long enough in characters and short
// enough in bytes to be hashed.
func ValidPassword(plain string) bool {
	return utf8.RuneCountInString(plain) >= MinPasswordChars && len(plain) <= MaxPasswordBytes
}

// Customer is the aggregate root for the customer directory.
// Password holds the bcrypt hash and never leaves the application layer.
type Customer struct {
	ID              int64
	Name            string
	Email           string
	Password        string
	Age             int
	Gender          Gender
	ProfileImageKey *string
}

// HasProfileImage reports whether an image key is assigned.
func (c *Customer) HasProfileImage() bool {
	return c.ProfileImageKey != nil && strings.TrimSpace(*c.ProfileImageKey) != ""
}

// CustomerView is what callers get to see of a Customer.
type CustomerView struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Gender          Gender   `json:"gender"`
	Age             int      `json:"age"`
	Roles           []string `json:"roles"`
	Username        string   `json:"username"`
	ProfileImageKey *string  `json:"profile_image_key"`
}

// ToView projects a Customer, dropping the password hash.
func (c *Customer) ToView() CustomerView {
	var key *string
	if c.ProfileImageKey != nil {
		k := *c.ProfileImageKey
		key = &k
	}
	return CustomerView{
		ID:              c.ID,
		Name:            c.Name,
		Email:           c.Email,
		Gender:          c.Gender,
		Age:             c.Age,
		Roles:           DefaultRoles(),
		Username:        c.Email,
		ProfileImageKey: key,
	}
}
