package handlers

import (
	"errors"

	"staffledger/types"
	"staffledger/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type UpdateSalariesRequest struct {
	Percent   float64 `json:"percent"`
	MinSalary float64 `json:"min_salary"`
	MaxSalary float64 `json:"max_salary"`
}

// UpdateSalariesInRange applies a percentage to every employee whose salary
// falls inside [min, max], atomically. An inverted range matches zero rows
// and still succeeds.
func UpdateSalariesInRange(c *fiber.Ctx) error {
	var req UpdateSalariesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput.Error(),
		})
	}

	changed, err := Employees.UpdateSalariesInRange(req.MinSalary, req.MaxSalary, req.Percent)
	if errors.Is(err, types.ErrInvalidInput) {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   err.Error(),
		})
	}
	if err != nil {
		utils.Logger.Error("Salary batch update failed", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrStorageError.Error(),
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Salaries updated",
		Data: map[string]interface{}{
			"rows_changed": changed,
		},
	})
}
