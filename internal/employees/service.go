package employees

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"employee-directory/internal/models"
)

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

// Service evaluates the register and authorization policy in front of the
// employee store.
type Service struct {
	repo     Repository
	hasher   PasswordHasher
	tokens   TokenIssuer
	clock    Clock
	tx       TransactionManager
	notifier Notifier
	logger   *slog.Logger
}

type Option func(*Service)

func WithClock(clock Clock) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

func WithTransactionManager(tx TransactionManager) Option {
	return func(s *Service) {
		if tx != nil {
			s.tx = tx
		}
	}
}

func WithNotifier(n Notifier) Option {
	return func(s *Service) {
		if n != nil {
			s.notifier = n
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

func NewService(repo Repository, hasher PasswordHasher, tokens TokenIssuer, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		hasher:   hasher,
		tokens:   tokens,
		clock:    realClock{},
		tx:       noopTransactionManager{},
		notifier: noopNotifier{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create adds an employee on behalf of an authenticated caller.
func (s *Service) Create(ctx context.Context, in EmployeeInput, callerRole models.Role) (*models.Employee, error) {
	in, err := normalizeInput(in, true)
	if err != nil {
		return nil, err
	}
	if !callerRole.AtLeast(in.Role) {
		return nil, forbidden(msgRoleTooHigh)
	}
	phones, err := validatePhones(in.Phones)
	if err != nil {
		return nil, err
	}
	if err := validateAge(in.BirthDate, s.clock.Now()); err != nil {
		return nil, err
	}

	var created *models.Employee
	err = s.tx.WithinReadWrite(ctx, func(ctx context.Context) error {
		if err := s.ensureDocumentAvailable(ctx, in.DocumentNumber); err != nil {
			return err
		}
		if err := s.ensureEmailAvailable(ctx, in.Email, 0); err != nil {
			return err
		}
		manager, err := s.resolveManager(ctx, in.ManagerDocumentNumber, in.DocumentNumber, in.Role)
		if err != nil {
			return err
		}

		hash, err := s.hasher.Hash(in.Password)
		if err != nil {
			return err
		}

		now := s.clock.Now()
		e := &models.Employee{
			DocumentNumber: in.DocumentNumber,
			FirstName:      in.FirstName,
			LastName:       in.LastName,
			Email:          in.Email,
			BirthDate:      in.BirthDate,
			Gender:         in.Gender,
			Role:           in.Role,
			PasswordHash:   hash,
			Phones:         newPhones(phones),
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if manager != nil {
			e.ManagerID = &manager.ID
		}

		created, err = s.repo.Insert(ctx, e)
		return translateStoreError(err)
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, ActionCreated, created)
	return created, nil
}

// Update overwrites the mutable fields of the employee identified by
// in.DocumentNumber. The document number itself never changes.
func (s *Service) Update(ctx context.Context, in EmployeeInput, callerRole models.Role) (*models.Employee, error) {
	in, err := normalizeInput(in, false)
	if err != nil {
		return nil, err
	}

	var updated *models.Employee
	err = s.tx.WithinReadWrite(ctx, func(ctx context.Context) error {
		target, err := s.repo.FindByDocumentNumber(ctx, in.DocumentNumber)
		if err != nil {
			return translateStoreError(err)
		}
		if !callerRole.AtLeast(in.Role) {
			return forbidden(msgRoleTooHigh)
		}
		phones, err := validatePhones(in.Phones)
		if err != nil {
			return err
		}
		if err := validateAge(in.BirthDate, s.clock.Now()); err != nil {
			return err
		}
		if err := s.ensureEmailAvailable(ctx, in.Email, target.ID); err != nil {
			return err
		}
		manager, err := s.resolveManager(ctx, in.ManagerDocumentNumber, target.DocumentNumber, in.Role)
		if err != nil {
			return err
		}

		target.FirstName = in.FirstName
		target.LastName = in.LastName
		target.Email = in.Email
		target.BirthDate = in.BirthDate
		target.Gender = in.Gender
		target.Role = in.Role
		target.ManagerID = nil
		target.ManagerName = nil
		if manager != nil {
			target.ManagerID = &manager.ID
		}
		if strings.TrimSpace(in.Password) != "" {
			hash, err := s.hasher.Hash(in.Password)
			if err != nil {
				return err
			}
			target.PasswordHash = hash
		}
		target.Phones = reconcilePhones(target.Phones, phones)
		target.UpdatedAt = s.clock.Now()

		updated, err = s.repo.Update(ctx, target)
		return translateStoreError(err)
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, ActionUpdated, updated)
	return updated, nil
}

// Delete removes an employee unless it outranks the caller.
func (s *Service) Delete(ctx context.Context, documentNumber int64, callerRole models.Role) error {
	var deleted *models.Employee
	err := s.tx.WithinReadWrite(ctx, func(ctx context.Context) error {
		target, err := s.repo.FindByDocumentNumber(ctx, documentNumber)
		if err != nil {
			return translateStoreError(err)
		}
		if !callerRole.AtLeast(target.Role) {
			return forbidden(msgDeleteHigherRole)
		}
		if err := s.repo.Delete(ctx, target.ID); err != nil {
			return translateStoreError(err)
		}
		deleted = target
		return nil
	})
	if err != nil {
		return err
	}

	s.notify(ctx, ActionDeleted, deleted)
	return nil
}

func (s *Service) Get(ctx context.Context, documentNumber int64) (*models.Employee, error) {
	var e *models.Employee
	err := s.tx.WithinReadOnly(ctx, func(ctx context.Context) error {
		var err error
		e, err = s.repo.FindByDocumentNumber(ctx, documentNumber)
		return translateStoreError(err)
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) List(ctx context.Context) ([]*models.Employee, error) {
	var list []*models.Employee
	err := s.tx.WithinReadOnly(ctx, func(ctx context.Context) error {
		var err error
		list, err = s.repo.List(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return list, nil
}

// Profile returns the record behind an authenticated identity.
func (s *Service) Profile(ctx context.Context, identity models.Identity) (*models.Employee, error) {
	var e *models.Employee
	err := s.tx.WithinReadOnly(ctx, func(ctx context.Context) error {
		var err error
		e, err = s.repo.FindByID(ctx, identity.SubjectID)
		return translateStoreError(err)
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) ensureDocumentAvailable(ctx context.Context, documentNumber int64) error {
	_, err := s.repo.FindByDocumentNumber(ctx, documentNumber)
	switch {
	case err == nil:
		return conflict(msgDuplicateDocument)
	case errors.Is(err, ErrEmployeeNotFound):
		return nil
	default:
		return fmt.Errorf("check document number: %w", err)
	}
}

// ensureEmailAvailable ignores a match on excludeID so an update may keep
// its own address.
func (s *Service) ensureEmailAvailable(ctx context.Context, email string, excludeID int64) error {
	found, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if found.ID == excludeID {
			return nil
		}
		return conflict(msgDuplicateEmail)
	case errors.Is(err, ErrEmployeeNotFound):
		return nil
	default:
		return fmt.Errorf("check email: %w", err)
	}
}

// resolveManager returns nil when no manager is referenced.
func (s *Service) resolveManager(ctx context.Context, managerDoc *int64, subjectDoc int64, role models.Role) (*models.Employee, error) {
	if managerDoc == nil {
		return nil, nil
	}
	if *managerDoc == subjectDoc {
		return nil, invalidInput(msgSelfManager)
	}
	manager, err := s.lookupManager(ctx, *managerDoc)
	if err != nil {
		return nil, err
	}
	if !manager.Role.AtLeast(role) {
		return nil, invalidInput(msgManagerRoleTooLow)
	}
	return manager, nil
}

func (s *Service) lookupManager(ctx context.Context, documentNumber int64) (*models.Employee, error) {
	manager, err := s.repo.FindByDocumentNumber(ctx, documentNumber)
	switch {
	case err == nil:
		return manager, nil
	case errors.Is(err, ErrEmployeeNotFound):
		return nil, invalidInput(msgManagerNotFound)
	default:
		return nil, fmt.Errorf("find manager: %w", err)
	}
}
