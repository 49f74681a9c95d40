package employees

import (
	"strings"
	"time"

	"employee-directory/internal/models"
)

const minimumAge = 18

// EmployeeInput carries the candidate fields of Register, Create and Update.
type EmployeeInput struct {
	DocumentNumber        int64
	FirstName             string
	LastName              string
	Email                 string
	BirthDate             time.Time
	Gender                models.Gender
	ManagerDocumentNumber *int64
	Role                  models.Role
	Phones                []int64
	Password              string
}

func normalizeInput(in EmployeeInput, requirePassword bool) (EmployeeInput, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(in.Email)

	switch {
	case in.DocumentNumber <= 0:
		return in, invalidInput("document number must be positive")
	case in.FirstName == "":
		return in, invalidInput("first name is required")
	case in.LastName == "":
		return in, invalidInput("last name is required")
	case in.Email == "":
		return in, invalidInput("email is required")
	case !in.Role.IsValid():
		return in, invalidInput("invalid role")
	case !in.Gender.IsValid():
		return in, invalidInput("invalid gender")
	case requirePassword && strings.TrimSpace(in.Password) == "":
		return in, invalidInput("password is required")
	}

	in.BirthDate = dateOnly(in.BirthDate)
	return in, nil
}

// validatePhones collapses duplicates and returns the distinct numbers in
// submission order.
func validatePhones(phones []int64) ([]int64, error) {
	distinct := distinctPhones(phones)
	if phones == nil || len(distinct) < 2 {
		return nil, invalidInput(msgPhoneCount)
	}
	for _, p := range distinct {
		if p <= 0 {
			return nil, invalidInput(msgPhonePositive)
		}
	}
	return distinct, nil
}

func distinctPhones(phones []int64) []int64 {
	seen := make(map[int64]struct{}, len(phones))
	out := make([]int64, 0, len(phones))
	for _, p := range phones {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

func validateAge(birthDate, now time.Time) error {
	if ageOn(birthDate, now) < minimumAge {
		return invalidInput(msgUnderage)
	}
	return nil
}

// ageOn counts whole years, decrementing when the birthday has not yet
// occurred in now's year.
func ageOn(birthDate, now time.Time) int {
	years := now.Year() - birthDate.Year()
	if now.Month() < birthDate.Month() || (now.Month() == birthDate.Month() && now.Day() < birthDate.Day()) {
		years--
	}
	return years
}

// reconcilePhones keeps current phones present in wanted with their identity
// and appends the new numbers after them.
func reconcilePhones(current []models.Phone, wanted []int64) []models.Phone {
	want := make(map[int64]struct{}, len(wanted))
	for _, n := range wanted {
		want[n] = struct{}{}
	}

	result := make([]models.Phone, 0, len(wanted))
	present := make(map[int64]struct{}, len(wanted))
	for _, p := range current {
		if _, ok := want[p.Number]; !ok {
			continue
		}
		if _, dup := present[p.Number]; dup {
			continue
		}
		present[p.Number] = struct{}{}
		result = append(result, p)
	}
	for _, n := range wanted {
		if _, ok := present[n]; ok {
			continue
		}
		present[n] = struct{}{}
		result = append(result, models.Phone{Number: n})
	}
	return result
}

func newPhones(numbers []int64) []models.Phone {
	phones := make([]models.Phone, 0, len(numbers))
	for _, n := range numbers {
		phones = append(phones, models.Phone{Number: n})
	}
	return phones
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
