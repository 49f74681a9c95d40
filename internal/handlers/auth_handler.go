package handlers

import (
	"context"
	"net/http"

	"employee-directory/internal/employees"
	"employee-directory/internal/middleware"
	"employee-directory/internal/models"

	"github.com/gin-gonic/gin"
)

// AuthService is the part of the policy engine behind /api/auth.
type AuthService interface {
	Register(ctx context.Context, in employees.EmployeeInput, caller *models.Identity) (*employees.IssuedIdentity, error)
	Authenticate(ctx context.Context, documentNumber int64, password string) (*employees.IssuedIdentity, error)
	Profile(ctx context.Context, identity models.Identity) (*models.Employee, error)
}

type AuthHandler struct {
	svc AuthService
}

func NewAuthHandler(svc AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Register creates an employee through the open path. The bearer token is
// optional; the very first registration needs none.
// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req employeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	in, err := req.toInput()
	if err != nil {
		bindError(c, err)
		return
	}

	caller, _ := middleware.IdentityFrom(c)
	issued, err := h.svc.Register(c.Request.Context(), in, caller)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newTokenResponse(issued))
}

// Login exchanges a document number and password for a token.
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	issued, err := h.svc.Authenticate(c.Request.Context(), req.DocumentNumber, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTokenResponse(issued))
}

// GetProfile returns the caller's own record.
// GET /api/auth/profile
func (h *AuthHandler) GetProfile(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	e, err := h.svc.Profile(c.Request.Context(), *identity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newEmployeeResponse(e))
}
