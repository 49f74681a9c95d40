package employees

import (
	"context"
	"errors"
	"fmt"

	"employee-directory/internal/models"
)

// IssuedIdentity is the result of a successful Register or Authenticate.
type IssuedIdentity struct {
	Token          string
	SubjectID      int64
	DocumentNumber int64
	Email          string
	Role           models.Role
}

// Register adds an employee through the open registration path. The first
// employee ever stored becomes a Director regardless of the requested role
// and needs no caller. Later registrations need a caller whose stored role
// is at least the requested one.
func (s *Service) Register(ctx context.Context, in EmployeeInput, caller *models.Identity) (*IssuedIdentity, error) {
	in, err := normalizeInput(in, true)
	if err != nil {
		return nil, err
	}
	phones, err := validatePhones(in.Phones)
	if err != nil {
		return nil, err
	}
	if err := validateAge(in.BirthDate, s.clock.Now()); err != nil {
		return nil, err
	}
	if in.ManagerDocumentNumber != nil && *in.ManagerDocumentNumber == in.DocumentNumber {
		return nil, invalidInput(msgSelfManager)
	}

	var (
		created   *models.Employee
		issued    *IssuedIdentity
		bootstrap bool
	)
	err = s.tx.WithinReadWrite(ctx, func(ctx context.Context) error {
		if err := s.ensureDocumentAvailable(ctx, in.DocumentNumber); err != nil {
			return err
		}
		if err := s.ensureEmailAvailable(ctx, in.Email, 0); err != nil {
			return err
		}

		var managerID *int64
		if in.ManagerDocumentNumber != nil {
			manager, err := s.lookupManager(ctx, *in.ManagerDocumentNumber)
			if err != nil {
				return err
			}
			managerID = &manager.ID
		}

		exists, err := s.repo.ExistsAny(ctx)
		if err != nil {
			return fmt.Errorf("check existing employees: %w", err)
		}
		role := in.Role
		if !exists {
			role = models.RoleDirector
			bootstrap = true
		} else if err := s.authorizeRegistration(ctx, caller, in.Role); err != nil {
			return err
		}

		hash, err := s.hasher.Hash(in.Password)
		if err != nil {
			return err
		}

		now := s.clock.Now()
		created, err = s.repo.Insert(ctx, &models.Employee{
			DocumentNumber: in.DocumentNumber,
			FirstName:      in.FirstName,
			LastName:       in.LastName,
			Email:          in.Email,
			BirthDate:      in.BirthDate,
			Gender:         in.Gender,
			Role:           role,
			ManagerID:      managerID,
			PasswordHash:   hash,
			Phones:         newPhones(phones),
			CreatedAt:      now,
			UpdatedAt:      now,
		})
		if err != nil {
			return translateStoreError(err)
		}
		// A signing failure rolls the insert back.
		issued, err = s.issue(created)
		return err
	})
	if err != nil {
		return nil, err
	}

	if bootstrap {
		s.logger.Info("bootstrap director registered", "document_number", created.DocumentNumber)
	}
	s.notify(ctx, ActionRegistered, created)
	return issued, nil
}

// authorizeRegistration re-reads the caller so a demotion since the token
// was issued takes effect.
func (s *Service) authorizeRegistration(ctx context.Context, caller *models.Identity, requested models.Role) error {
	if caller == nil {
		return unauthenticated(msgAuthRequired)
	}
	current, err := s.repo.FindByID(ctx, caller.SubjectID)
	switch {
	case errors.Is(err, ErrEmployeeNotFound):
		return unauthenticated(msgAuthRequired)
	case err != nil:
		return fmt.Errorf("find caller: %w", err)
	}
	if !current.Role.AtLeast(requested) {
		return forbidden(msgRoleTooHigh)
	}
	return nil
}

// Authenticate checks a document number and password pair. Unknown
// document numbers and wrong passwords are indistinguishable.
func (s *Service) Authenticate(ctx context.Context, documentNumber int64, password string) (*IssuedIdentity, error) {
	var e *models.Employee
	err := s.tx.WithinReadOnly(ctx, func(ctx context.Context) error {
		var err error
		e, err = s.repo.FindByDocumentNumber(ctx, documentNumber)
		return err
	})
	switch {
	case errors.Is(err, ErrEmployeeNotFound):
		return nil, unauthenticated(msgBadCredentials)
	case err != nil:
		return nil, fmt.Errorf("find employee: %w", err)
	}

	if !s.hasher.Verify(password, e.PasswordHash) {
		return nil, unauthenticated(msgBadCredentials)
	}
	return s.issue(e)
}

func (s *Service) issue(e *models.Employee) (*IssuedIdentity, error) {
	identity := models.Identity{
		SubjectID:      e.ID,
		Email:          e.Email,
		DocumentNumber: e.DocumentNumber,
		Role:           e.Role,
	}
	token, err := s.tokens.Issue(identity)
	if err != nil {
		return nil, err
	}
	return &IssuedIdentity{
		Token:          token,
		SubjectID:      e.ID,
		DocumentNumber: e.DocumentNumber,
		Email:          e.Email,
		Role:           e.Role,
	}, nil
}
