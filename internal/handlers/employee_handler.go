package handlers

import (
	"context"
	"net/http"
	"strconv"

	"employee-directory/internal/employees"
	"employee-directory/internal/middleware"
	"employee-directory/internal/models"

	"github.com/gin-gonic/gin"
)

// DirectoryService is the part of the policy engine behind /api/employees.
type DirectoryService interface {
	List(ctx context.Context) ([]*models.Employee, error)
	Get(ctx context.Context, documentNumber int64) (*models.Employee, error)
	Create(ctx context.Context, in employees.EmployeeInput, callerRole models.Role) (*models.Employee, error)
	Update(ctx context.Context, in employees.EmployeeInput, callerRole models.Role) (*models.Employee, error)
	Delete(ctx context.Context, documentNumber int64, callerRole models.Role) error
}

type EmployeeHandler struct {
	svc DirectoryService
}

func NewEmployeeHandler(svc DirectoryService) *EmployeeHandler {
	return &EmployeeHandler{svc: svc}
}

// GET /api/employees
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]employeeResponse, 0, len(list))
	for _, e := range list {
		out = append(out, newEmployeeResponse(e))
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/employees/:documentNumber
func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	doc, ok := documentNumberParam(c)
	if !ok {
		return
	}

	e, err := h.svc.Get(c.Request.Context(), doc)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newEmployeeResponse(e))
}

// POST /api/employees
func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	in, ok := bindEmployee(c)
	if !ok {
		return
	}

	e, err := h.svc.Create(c.Request.Context(), in, identity.Role)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newEmployeeResponse(e))
}

// PUT /api/employees
// The document number in the body selects the record and is never changed.
func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	in, ok := bindEmployee(c)
	if !ok {
		return
	}

	e, err := h.svc.Update(c.Request.Context(), in, identity.Role)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newEmployeeResponse(e))
}

// DELETE /api/employees/:documentNumber
func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	doc, ok := documentNumberParam(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), doc, identity.Role); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func bindEmployee(c *gin.Context) (employees.EmployeeInput, bool) {
	var req employeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return employees.EmployeeInput{}, false
	}
	in, err := req.toInput()
	if err != nil {
		bindError(c, err)
		return employees.EmployeeInput{}, false
	}
	return in, true
}

func requireIdentity(c *gin.Context) (*models.Identity, bool) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return nil, false
	}
	return identity, true
}

func documentNumberParam(c *gin.Context) (int64, bool) {
	doc, err := strconv.ParseInt(c.Param("documentNumber"), 10, 64)
	if err != nil || doc <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid document number"})
		return 0, false
	}
	return doc, true
}
