package handlers

import (
	"staffledger/auth"
	"staffledger/repository"
	"staffledger/services"

	"gorm.io/gorm"
)

var (
	DB          *gorm.DB
	Auth        *auth.Service
	Employees   *repository.EmployeeRepo
	Credentials *repository.CredentialRepo
	Payroll     *services.PayrollService
)

func InitHandlers(db *gorm.DB, authService *auth.Service, employees *repository.EmployeeRepo, credentials *repository.CredentialRepo, payroll *services.PayrollService) {
	DB = db
	Auth = authService
	Employees = employees
	Credentials = credentials
	Payroll = payroll
}
