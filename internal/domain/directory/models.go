package directory

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	UserID         string          `json:"userId"`
	EmployeeNumber string          `json:"employeeNumber"`
	FirstName      string          `json:"firstName"`
	LastName       string          `json:"lastName"`
	BirthDate      *time.Time      `json:"birthDate,omitempty"`
	Phone          string          `json:"phone"`
	Department     string          `json:"department"`
	Position       string          `json:"position"`
	BaseSalary     decimal.Decimal `json:"baseSalary"`
	HireDate       *time.Time      `json:"hireDate,omitempty"`
}

type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	RoleID    string    `json:"roleId"`
	RoleName  string    `json:"roleName"`
	CreatedAt time.Time `json:"createdAt"`
}

type Role struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NewUserInput carries everything needed to provision a user account
// and, for the employee role, its linked employee record.
type NewUserInput struct {
	Username string
	Email    string
	Password string
	RoleID   string
	Employee *Employee
}
