package models

import (
	"fmt"
	"strings"
	"time"
)

// Gender of an employee. The zero value is Unspecified.
type Gender int

const (
	GenderUnspecified Gender = 0
	GenderFemale      Gender = 1
	GenderMale        Gender = 2
)

var genderNames = map[Gender]string{
	GenderUnspecified: "Unspecified",
	GenderFemale:      "Female",
	GenderMale:        "Male",
}

func (g Gender) IsValid() bool {
	_, ok := genderNames[g]
	return ok
}

func (g Gender) String() string {
	if name, ok := genderNames[g]; ok {
		return name
	}
	return fmt.Sprintf("Gender(%d)", int(g))
}

func (g Gender) MarshalText() ([]byte, error) {
	if !g.IsValid() {
		return nil, fmt.Errorf("invalid gender %d", int(g))
	}
	return []byte(g.String()), nil
}

// UnmarshalText treats an empty value as Unspecified.
func (g *Gender) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if s == "" {
		*g = GenderUnspecified
		return nil
	}
	for gender, name := range genderNames {
		if strings.EqualFold(s, name) {
			*g = gender
			return nil
		}
	}
	return fmt.Errorf("unknown gender %q", s)
}

// Employee is the aggregate root of the directory.
type Employee struct {
	ID             int64
	DocumentNumber int64
	FirstName      string
	LastName       string
	Email          string
	BirthDate      time.Time
	Gender         Gender
	Role           Role
	ManagerID      *int64
	ManagerName    *string // resolved display name, read-only
	PasswordHash   string  // never exposed
	Phones         []Phone // ordered by ID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Phone is owned by an Employee. ID is zero until persisted.
type Phone struct {
	ID     int64
	Number int64
}

// DisplayName is the name shown for an employee acting as a manager.
func (e *Employee) DisplayName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// PhoneNumbers returns the phone numbers in insertion order.
func (e *Employee) PhoneNumbers() []int64 {
	numbers := make([]int64, 0, len(e.Phones))
	for _, p := range e.Phones {
		numbers = append(numbers, p.Number)
	}
	return numbers
}
