package handlers

import (
	"errors"

	"staffledger/types"
	"staffledger/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// GetPayrollReport returns the payroll summary and the per-band breakdown.
// Admin only.
func GetPayrollReport(c *fiber.Ctx) error {
	summary, err := Payroll.Summary()
	if err != nil {
		utils.Logger.Error("Failed to build payroll summary", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrStorageError.Error(),
		})
	}

	bands, err := Payroll.SalaryBands()
	if err != nil {
		utils.Logger.Error("Failed to build salary bands", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrStorageError.Error(),
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"summary": summary,
			"bands":   bands,
		},
	})
}

// GetOwnPayroll is the self-service view. The employee id comes from the
// caller's token claims, never from the request.
func GetOwnPayroll(c *fiber.Ctx) error {
	employeeID, ok := c.Locals("employee_id").(uint)
	if !ok {
		return c.Status(403).JSON(types.APIResponse{
			Success: false,
			Error:   "no employee record linked to this account",
		})
	}

	active, err := Employees.IsActive(employeeID)
	if err != nil {
		utils.Logger.Error("Failed to check employee link", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrStorageError.Error(),
		})
	}
	if !active {
		return c.Status(403).JSON(types.APIResponse{
			Success: false,
			Error:   "employee record is not active",
		})
	}

	payroll, err := Payroll.OwnPayroll(employeeID)
	if errors.Is(err, types.ErrNotFound) {
		return c.Status(404).JSON(types.APIResponse{
			Success: false,
			Error:   "Employee not found",
		})
	}
	if err != nil {
		utils.Logger.Error("Failed to fetch own payroll", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrStorageError.Error(),
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    payroll,
	})
}
