package handlers

import (
	"errors"
	"regexp"
	"time"

	"staffledger/models"
	"staffledger/repository"
	"staffledger/types"
	"staffledger/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AddEmployeeRequest struct {
	FullName    string  `json:"full_name"`
	SSN         string  `json:"ssn"`
	DateOfBirth string  `json:"date_of_birth"` // YYYY-MM-DD
	Email       string  `json:"email"`
	HireDate    string  `json:"hire_date"` // YYYY-MM-DD
	Salary      float64 `json:"salary"`
}

type UpdateEmployeeRequest struct {
	FullName *string  `json:"full_name"`
	Email    *string  `json:"email"`
	Salary   *float64 `json:"salary"`
	Active   *bool    `json:"active"`
}

var ssnPattern = regexp.MustCompile(`^\d{3}-\d{2}-\d{4}$`)

func GetAllEmployees(c *fiber.Ctx) error {
	var filters repository.EmployeeFilters
	if err := c.QueryParser(&filters); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid filter parameters",
		})
	}

	employees, err := Employees.List(filters)
	if err != nil {
		utils.Logger.Error("Failed to fetch employees", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrStorageError.Error(),
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    employees,
	})
}

func GetEmployee(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid employee ID",
		})
	}

	emp, err := Employees.GetByID(uint(id))
	if errors.Is(err, types.ErrNotFound) {
		return c.Status(404).JSON(types.APIResponse{
			Success: false,
			Error:   "Employee not found",
		})
	}
	if err != nil {
		utils.Logger.Error("Failed to fetch employee", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrStorageError.Error(),
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    emp,
	})
}

func AddEmployee(c *fiber.Ctx) error {
	var req AddEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput.Error(),
		})
	}

	if req.FullName == "" || req.Email == "" {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "full_name and email are required",
		})
	}
	if !ssnPattern.MatchString(req.SSN) {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "ssn must match XXX-XX-XXXX",
		})
	}
	if req.Salary < 0 {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "salary must be non-negative",
		})
	}

	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "date_of_birth must be YYYY-MM-DD",
		})
	}
	hireDate, err := time.Parse("2006-01-02", req.HireDate)
	if err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "hire_date must be YYYY-MM-DD",
		})
	}

	employee := models.Employee{
		FullName:    req.FullName,
		SSN:         req.SSN,
		DateOfBirth: dob,
		Email:       req.Email,
		HireDate:    hireDate,
		Salary:      req.Salary,
		Active:      true,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := Employees.Create(&employee); err != nil {
		utils.Logger.Error("Failed to create employee", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrStorageError.Error(),
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Employee created successfully",
		Data:    employee,
	})
}

func UpdateEmployee(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid employee ID",
		})
	}

	var req UpdateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput.Error(),
		})
	}

	updates := map[string]interface{}{}
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Salary != nil {
		if *req.Salary < 0 {
			return c.Status(400).JSON(types.APIResponse{
				Success: false,
				Error:   "salary must be non-negative",
			})
		}
		updates["salary"] = *req.Salary
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}
	if len(updates) == 0 {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "no updatable fields provided",
		})
	}
	updates["updated_at"] = time.Now()

	emp, err := Employees.Update(uint(id), updates)
	if errors.Is(err, types.ErrNotFound) {
		return c.Status(404).JSON(types.APIResponse{
			Success: false,
			Error:   "Employee not found",
		})
	}
	if err != nil {
		utils.Logger.Error("Failed to update employee", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrStorageError.Error(),
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Employee updated successfully",
		Data:    emp,
	})
}

// DeleteEmployee deactivates the record rather than removing the row, so
// linked credentials stay resolvable.
func DeleteEmployee(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid employee ID",
		})
	}

	err = Employees.Deactivate(uint(id))
	if errors.Is(err, types.ErrNotFound) {
		return c.Status(404).JSON(types.APIResponse{
			Success: false,
			Error:   "Employee not found",
		})
	}
	if err != nil {
		utils.Logger.Error("Failed to deactivate employee", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrStorageError.Error(),
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Employee deactivated",
	})
}
