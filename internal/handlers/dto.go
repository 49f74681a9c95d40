package handlers

import (
	"errors"
	"time"

	"employee-directory/internal/employees"
	"employee-directory/internal/models"
)

const dateLayout = "2006-01-02"

type employeeRequest struct {
	DocumentNumber        int64         `json:"document_number" binding:"required,gt=0"`
	FirstName             string        `json:"first_name" binding:"required"`
	LastName              string        `json:"last_name" binding:"required"`
	Email                 string        `json:"email" binding:"required,email"`
	BirthDate             string        `json:"birth_date" binding:"required,isodate"` // "YYYY-MM-DD"
	Gender                models.Gender `json:"gender"`
	Role                  models.Role   `json:"role" binding:"required"`
	ManagerDocumentNumber *int64        `json:"manager_document_number"`
	Phones                []int64       `json:"phones"`
	Password              string        `json:"password"`
}

func (r employeeRequest) toInput() (employees.EmployeeInput, error) {
	birthDate, err := time.Parse(dateLayout, r.BirthDate)
	if err != nil {
		return employees.EmployeeInput{}, errors.New("birth_date must be YYYY-MM-DD")
	}
	return employees.EmployeeInput{
		DocumentNumber:        r.DocumentNumber,
		FirstName:             r.FirstName,
		LastName:              r.LastName,
		Email:                 r.Email,
		BirthDate:             birthDate,
		Gender:                r.Gender,
		Role:                  r.Role,
		ManagerDocumentNumber: r.ManagerDocumentNumber,
		Phones:                r.Phones,
		Password:              r.Password,
	}, nil
}

type loginRequest struct {
	DocumentNumber int64  `json:"document_number" binding:"required"`
	Password       string `json:"password" binding:"required"`
}

type tokenResponse struct {
	Token          string      `json:"token"`
	DocumentNumber int64       `json:"document_number"`
	Email          string      `json:"email"`
	Role           models.Role `json:"role"`
}

func newTokenResponse(issued *employees.IssuedIdentity) tokenResponse {
	return tokenResponse{
		Token:          issued.Token,
		DocumentNumber: issued.DocumentNumber,
		Email:          issued.Email,
		Role:           issued.Role,
	}
}

type employeeResponse struct {
	ID             int64         `json:"id"`
	DocumentNumber int64         `json:"document_number"`
	FirstName      string        `json:"first_name"`
	LastName       string        `json:"last_name"`
	Email          string        `json:"email"`
	BirthDate      string        `json:"birth_date"`
	Gender         models.Gender `json:"gender"`
	Role           models.Role   `json:"role"`
	ManagerID      *int64        `json:"manager_id"`
	ManagerName    *string       `json:"manager_name"`
	Phones         []int64       `json:"phones"`
}

func newEmployeeResponse(e *models.Employee) employeeResponse {
	return employeeResponse{
		ID:             e.ID,
		DocumentNumber: e.DocumentNumber,
		FirstName:      e.FirstName,
		LastName:       e.LastName,
		Email:          e.Email,
		BirthDate:      e.BirthDate.Format(dateLayout),
		Gender:         e.Gender,
		Role:           e.Role,
		ManagerID:      e.ManagerID,
		ManagerName:    e.ManagerName,
		Phones:         e.PhoneNumbers(),
	}
}
