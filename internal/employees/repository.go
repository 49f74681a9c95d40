package employees

import (
	"context"

	"employee-directory/internal/models"
)

// Repository persists the Employee aggregate including its phones.
// Lookups return ErrEmployeeNotFound when nothing matches.
type Repository interface {
	FindByID(ctx context.Context, id int64) (*models.Employee, error)
	FindByDocumentNumber(ctx context.Context, documentNumber int64) (*models.Employee, error)
	FindByEmail(ctx context.Context, email string) (*models.Employee, error)
	ExistsAny(ctx context.Context) (bool, error)
	List(ctx context.Context) ([]*models.Employee, error)
	// Insert stores a new employee and its phones and returns the stored record.
	Insert(ctx context.Context, e *models.Employee) (*models.Employee, error)
	// Update overwrites the mutable fields. Phones with an ID are kept, phones
	// without one are appended and any other owned phone is removed.
	Update(ctx context.Context, e *models.Employee) (*models.Employee, error)
	Delete(ctx context.Context, id int64) error
}

// PasswordHasher is the credential store.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, stored string) bool
}

// TokenIssuer mints signed identity assertions.
type TokenIssuer interface {
	Issue(identity models.Identity) (string, error)
}

// TransactionManager runs fn inside a transaction carried by the context.
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}
