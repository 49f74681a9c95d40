package handlers

import (
	"context"
	"errors"

	"employee-directory/internal/employees"
	"employee-directory/internal/models"
)

type serviceMock struct {
	RegisterFn     func(ctx context.Context, in employees.EmployeeInput, caller *models.Identity) (*employees.IssuedIdentity, error)
	AuthenticateFn func(ctx context.Context, documentNumber int64, password string) (*employees.IssuedIdentity, error)
	ProfileFn      func(ctx context.Context, identity models.Identity) (*models.Employee, error)
	ListFn         func(ctx context.Context) ([]*models.Employee, error)
	GetFn          func(ctx context.Context, documentNumber int64) (*models.Employee, error)
	CreateFn       func(ctx context.Context, in employees.EmployeeInput, callerRole models.Role) (*models.Employee, error)
	UpdateFn       func(ctx context.Context, in employees.EmployeeInput, callerRole models.Role) (*models.Employee, error)
	DeleteFn       func(ctx context.Context, documentNumber int64, callerRole models.Role) error
}

func (m *serviceMock) Register(ctx context.Context, in employees.EmployeeInput, caller *models.Identity) (*employees.IssuedIdentity, error) {
	if m.RegisterFn == nil {
		return nil, errors.New("RegisterFn not set")
	}
	return m.RegisterFn(ctx, in, caller)
}

func (m *serviceMock) Authenticate(ctx context.Context, documentNumber int64, password string) (*employees.IssuedIdentity, error) {
	if m.AuthenticateFn == nil {
		return nil, errors.New("AuthenticateFn not set")
	}
	return m.AuthenticateFn(ctx, documentNumber, password)
}

func (m *serviceMock) Profile(ctx context.Context, identity models.Identity) (*models.Employee, error) {
	if m.ProfileFn == nil {
		return nil, errors.New("ProfileFn not set")
	}
	return m.ProfileFn(ctx, identity)
}

func (m *serviceMock) List(ctx context.Context) ([]*models.Employee, error) {
	if m.ListFn == nil {
		return nil, errors.New("ListFn not set")
	}
	return m.ListFn(ctx)
}

func (m *serviceMock) Get(ctx context.Context, documentNumber int64) (*models.Employee, error) {
	if m.GetFn == nil {
		return nil, errors.New("GetFn not set")
	}
	return m.GetFn(ctx, documentNumber)
}

func (m *serviceMock) Create(ctx context.Context, in employees.EmployeeInput, callerRole models.Role) (*models.Employee, error) {
	if m.CreateFn == nil {
		return nil, errors.New("CreateFn not set")
	}
	return m.CreateFn(ctx, in, callerRole)
}

func (m *serviceMock) Update(ctx context.Context, in employees.EmployeeInput, callerRole models.Role) (*models.Employee, error) {
	if m.UpdateFn == nil {
		return nil, errors.New("UpdateFn not set")
	}
	return m.UpdateFn(ctx, in, callerRole)
}

func (m *serviceMock) Delete(ctx context.Context, documentNumber int64, callerRole models.Role) error {
	if m.DeleteFn == nil {
		return errors.New("DeleteFn not set")
	}
	return m.DeleteFn(ctx, documentNumber, callerRole)
}

// tokenStub accepts "director", "leader" and "employee" as bearer tokens.
type tokenStub struct{}

func (tokenStub) Parse(token string) (*models.Identity, error) {
	role, err := models.ParseRole(token)
	if err != nil {
		return nil, errors.New("invalid token")
	}
	return &models.Identity{SubjectID: int64(role), Email: token + "@example.com", DocumentNumber: int64(role) * 100, Role: role}, nil
}

type pingerMock struct {
	err error
}

func (p pingerMock) Ping(context.Context) error { return p.err }
