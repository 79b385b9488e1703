package models

import (
	"time"

	"github.com/google/uuid"
)

// Role classes. A standard employee credential must link an employee row;
// an administrator credential must not.
const (
	RoleAdministrator    = "administrator"
	RoleStandardEmployee = "employee"
)

type Credential struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Username     string     `gorm:"unique;not null" json:"username"`
	PasswordHash string     `gorm:"not null" json:"-"`
	Role         string     `gorm:"not null" json:"role"` // administrator, employee
	EmployeeID   *uint      `json:"employee_id,omitempty"`
	Employee     *Employee  `gorm:"foreignKey:EmployeeID" json:"-"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null" json:"updated_at"`
}

func (c *Credential) IsAdmin() bool {
	return c.Role == RoleAdministrator
}

type Employee struct {
	ID          uint      `gorm:"primary_key" json:"id"`
	FullName    string    `gorm:"not null" json:"full_name"`
	SSN         string    `gorm:"unique;not null" json:"ssn"` // XXX-XX-XXXX
	DateOfBirth time.Time `json:"date_of_birth"`
	Email       string    `gorm:"unique;not null" json:"email"`
	HireDate    time.Time `json:"hire_date"`
	Salary      float64   `gorm:"not null" json:"salary"`
	Active      bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}
