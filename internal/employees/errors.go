package employees

import "errors"

// Outcome kinds of policy evaluation. Every rejection wraps exactly one of them.
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrConflict        = errors.New("conflict")
	ErrNotFound        = errors.New("not found")
)

// Storage-level errors reported by Repository implementations.
var (
	ErrEmployeeNotFound        = errors.New("employees: employee not found")
	ErrDuplicateDocumentNumber = errors.New("employees: document number already exists")
	ErrDuplicateEmail          = errors.New("employees: email already exists")
	ErrManagerNotFound         = errors.New("employees: manager not found")
)

// PolicyError is an expected rejection with a short caller-facing message.
type PolicyError struct {
	Kind    error
	Message string
}

func (e *PolicyError) Error() string {
	return e.Message
}

func (e *PolicyError) Unwrap() error {
	return e.Kind
}

const (
	msgPhoneCount        = "at least two distinct phone numbers are required"
	msgPhonePositive     = "phone numbers must be positive"
	msgUnderage          = "employee must be at least 18 years old"
	msgSelfManager       = "an employee cannot be their own manager"
	msgManagerNotFound   = "manager not found"
	msgManagerRoleTooLow = "manager role must be equal to or higher than the employee role"
	msgDuplicateDocument = "document number already registered"
	msgDuplicateEmail    = "email already registered"
	msgAuthRequired      = "authentication required"
	msgBadCredentials    = "invalid document number or password"
	msgRoleTooHigh       = "cannot assign a role higher than your own"
	msgDeleteHigherRole  = "cannot delete an employee with a higher role than your own"
	msgEmployeeNotFound  = "employee not found"
)

func invalidInput(msg string) error {
	return &PolicyError{Kind: ErrInvalidInput, Message: msg}
}

func unauthenticated(msg string) error {
	return &PolicyError{Kind: ErrUnauthenticated, Message: msg}
}

func forbidden(msg string) error {
	return &PolicyError{Kind: ErrForbidden, Message: msg}
}

func conflict(msg string) error {
	return &PolicyError{Kind: ErrConflict, Message: msg}
}

func notFound(msg string) error {
	return &PolicyError{Kind: ErrNotFound, Message: msg}
}

// translateStoreError turns constraint failures caught by the store into
// the same outcomes the pre-checks produce. Other errors pass through.
func translateStoreError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrDuplicateDocumentNumber):
		return conflict(msgDuplicateDocument)
	case errors.Is(err, ErrDuplicateEmail):
		return conflict(msgDuplicateEmail)
	case errors.Is(err, ErrManagerNotFound):
		return invalidInput(msgManagerNotFound)
	case errors.Is(err, ErrEmployeeNotFound):
		return notFound(msgEmployeeNotFound)
	default:
		return err
	}
}
