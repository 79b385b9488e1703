package auth

import (
	"staffledger/models"
	"staffledger/utils"

	"go.uber.org/zap"
)

// Operation names recognized by the authorization gate.
const (
	OpViewEmployees   = "view_employees"
	OpSearchEmployees = "search_employees"
	OpAddEmployee     = "add_employee"
	OpUpdateEmployee  = "update_employee"
	OpDeleteEmployee  = "delete_employee"
	OpUpdateSalaries  = "update_salaries"
	OpViewReports     = "view_reports"
	OpViewOwnData     = "view_own_data"
	OpViewOwnPayroll  = "view_own_payroll"
	OpLogin           = "login"
	OpLogout          = "logout"
	OpChangePassword  = "change_password"
)

type requirement int

const (
	requireAdmin requirement = iota
	requireSelfService
	requireAuthenticated
)

var operationRequirements = map[string]requirement{
	OpViewEmployees:   requireAdmin,
	OpSearchEmployees: requireAdmin,
	OpAddEmployee:     requireAdmin,
	OpUpdateEmployee:  requireAdmin,
	OpDeleteEmployee:  requireAdmin,
	OpUpdateSalaries:  requireAdmin,
	OpViewReports:     requireAdmin,
	OpViewOwnData:     requireSelfService,
	OpViewOwnPayroll:  requireSelfService,
	OpLogin:           requireAuthenticated,
	OpLogout:          requireAuthenticated,
	OpChangePassword:  requireAuthenticated,
}

// EmployeeChecker is the slice of the employee store the gate needs to
// validate a standard employee's record link.
type EmployeeChecker interface {
	Exists(id uint) (bool, error)
	IsActive(id uint) (bool, error)
}

// Gate maps operation names to the minimum role required. Unrecognized
// operations are denied.
type Gate struct {
	employees EmployeeChecker
}

func NewGate(employees EmployeeChecker) *Gate {
	return &Gate{employees: employees}
}

// Allows reports whether the credential may perform the named operation.
// Self-service operations additionally require a linked, active employee
// record.
func (g *Gate) Allows(cred *models.Credential, operation string) bool {
	if cred == nil {
		return false
	}

	req, ok := operationRequirements[operation]
	if !ok {
		utils.Logger.Warn("denied unrecognized operation",
			zap.String("username", cred.Username),
			zap.String("operation", operation))
		return false
	}

	switch req {
	case requireAuthenticated:
		return true
	case requireAdmin:
		return cred.IsAdmin()
	case requireSelfService:
		if cred.Role != models.RoleStandardEmployee || cred.EmployeeID == nil {
			return false
		}
		active, err := g.employees.IsActive(*cred.EmployeeID)
		if err != nil {
			utils.Logger.Error("employee link check failed",
				zap.String("username", cred.Username), zap.Error(err))
			return false
		}
		return active
	}
	return false
}
