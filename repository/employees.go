package repository

import (
	"errors"
	"fmt"
	"math"

	"staffledger/models"
	"staffledger/types"

	"gorm.io/gorm"
)

// EmployeeFilters narrows List results. Zero values mean "no filter".
type EmployeeFilters struct {
	SalaryFrom   float64 `query:"salary_from"`
	SalaryTo     float64 `query:"salary_to"`
	ActiveOnly   bool    `query:"active_only"`
	HiredFrom    string  `query:"hired_from"` // YYYY-MM-DD
	HiredTo      string  `query:"hired_to"`   // YYYY-MM-DD
	NameContains string  `query:"name"`
}

type EmployeeRepo struct {
	db *gorm.DB

	// beforeRowUpdate, when set, runs before each row write inside the
	// salary batch transaction. Tests use it to inject mid-batch failures.
	beforeRowUpdate func(emp *models.Employee) error
}

func NewEmployeeRepo(db *gorm.DB) *EmployeeRepo {
	return &EmployeeRepo{db: db}
}

func (r *EmployeeRepo) Exists(id uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Employee{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, types.StorageErr(err)
	}
	return count > 0, nil
}

func (r *EmployeeRepo) IsActive(id uint) (bool, error) {
	var emp models.Employee
	err := r.db.Select("active").First(&emp, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, types.StorageErr(err)
	}
	return emp.Active, nil
}

func (r *EmployeeRepo) GetByID(id uint) (*models.Employee, error) {
	var emp models.Employee
	err := r.db.First(&emp, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, types.StorageErr(err)
	}
	return &emp, nil
}

func (r *EmployeeRepo) List(filters EmployeeFilters) ([]models.Employee, error) {
	query := r.db.Model(&models.Employee{})

	if filters.SalaryFrom > 0 {
		query = query.Where("salary >= ?", filters.SalaryFrom)
	}
	if filters.SalaryTo > 0 {
		query = query.Where("salary <= ?", filters.SalaryTo)
	}
	if filters.ActiveOnly {
		query = query.Where("active = ?", true)
	}
	if filters.HiredFrom != "" {
		query = query.Where("DATE(hire_date) >= ?", filters.HiredFrom)
	}
	if filters.HiredTo != "" {
		query = query.Where("DATE(hire_date) <= ?", filters.HiredTo)
	}
	if filters.NameContains != "" {
		query = query.Where("full_name LIKE ?", "%"+filters.NameContains+"%")
	}

	var employees []models.Employee
	if err := query.Order("id").Find(&employees).Error; err != nil {
		return nil, types.StorageErr(err)
	}
	return employees, nil
}

func (r *EmployeeRepo) Create(emp *models.Employee) error {
	if err := r.db.Create(emp).Error; err != nil {
		return types.StorageErr(err)
	}
	return nil
}

func (r *EmployeeRepo) Update(id uint, updates map[string]interface{}) (*models.Employee, error) {
	var emp models.Employee
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&emp, id).Error; err != nil {
			return err
		}
		return tx.Model(&emp).Updates(updates).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, types.StorageErr(err)
	}
	return &emp, nil
}

// Deactivate clears the active flag instead of removing the row; linked
// credentials stay resolvable.
func (r *EmployeeRepo) Deactivate(id uint) error {
	res := r.db.Model(&models.Employee{}).Where("id = ?", id).Update("active", false)
	if res.Error != nil {
		return types.StorageErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return types.ErrNotFound
	}
	return nil
}

// UpdateSalariesInRange multiplies the salary of every employee with
// min <= salary <= max by 1 + percent/100, all inside one transaction.
// A mid-batch failure rolls everything back. An inverted range matches
// zero rows and succeeds. The percentage sign is not policed here.
func (r *EmployeeRepo) UpdateSalariesInRange(min, max, percent float64) (int64, error) {
	if min < 0 {
		return 0, fmt.Errorf("%w: minimum salary must be non-negative", types.ErrInvalidInput)
	}
	if max < min {
		return 0, nil
	}

	factor := 1 + percent/100
	var changed int64

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var rows []models.Employee
		if err := tx.Where("salary BETWEEN ? AND ?", min, max).Find(&rows).Error; err != nil {
			return err
		}
		for i := range rows {
			if r.beforeRowUpdate != nil {
				if err := r.beforeRowUpdate(&rows[i]); err != nil {
					return err
				}
			}
			// round to the store's two-decimal scale
			newSalary := math.Round(rows[i].Salary*factor*100) / 100
			if err := tx.Model(&models.Employee{}).Where("id = ?", rows[i].ID).
				Update("salary", newSalary).Error; err != nil {
				return err
			}
		}
		changed = int64(len(rows))
		return nil
	})
	if err != nil {
		return 0, types.StorageErr(err)
	}
	return changed, nil
}
