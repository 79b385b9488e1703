package services

import (
	"errors"

	"staffledger/models"
	"staffledger/types"

	"gorm.io/gorm"
)

// PayrollSummary aggregates the active payroll.
type PayrollSummary struct {
	EmployeeCount int64   `json:"employee_count"`
	TotalSalary   float64 `json:"total_salary"`
	AverageSalary float64 `json:"average_salary"`
	MinSalary     float64 `json:"min_salary"`
	MaxSalary     float64 `json:"max_salary"`
}

// SalaryBandStat buckets active employees by salary band.
type SalaryBandStat struct {
	Band          string  `json:"band"`
	EmployeeCount int64   `json:"employee_count"`
	TotalSalary   float64 `json:"total_salary"`
}

// OwnPayroll is the self-service view a standard employee gets of their
// own record.
type OwnPayroll struct {
	EmployeeID uint    `json:"employee_id"`
	FullName   string  `json:"full_name"`
	HireDate   string  `json:"hire_date"`
	Salary     float64 `json:"salary"`
}

type PayrollService struct {
	DB *gorm.DB
}

func NewPayrollService(db *gorm.DB) *PayrollService {
	return &PayrollService{DB: db}
}

func (p *PayrollService) Summary() (*PayrollSummary, error) {
	var summary PayrollSummary

	query := `
		SELECT
			count(*) as employee_count,
			coalesce(sum(salary), 0) as total_salary,
			coalesce(avg(salary), 0) as average_salary,
			coalesce(min(salary), 0) as min_salary,
			coalesce(max(salary), 0) as max_salary
		FROM employees
		WHERE active = 1
	`

	if err := p.DB.Raw(query).Scan(&summary).Error; err != nil {
		return nil, types.StorageErr(err)
	}
	return &summary, nil
}

func (p *PayrollService) SalaryBands() ([]SalaryBandStat, error) {
	var stats []SalaryBandStat

	query := `
		SELECT
			CASE
				WHEN salary < 50000 THEN 'under_50k'
				WHEN salary < 100000 THEN '50k_to_100k'
				ELSE 'over_100k'
			END as band,
			count(*) as employee_count,
			sum(salary) as total_salary
		FROM employees
		WHERE active = 1
		GROUP BY band
		ORDER BY min(salary)
	`

	if err := p.DB.Raw(query).Scan(&stats).Error; err != nil {
		return nil, types.StorageErr(err)
	}
	return stats, nil
}

func (p *PayrollService) OwnPayroll(employeeID uint) (*OwnPayroll, error) {
	var emp models.Employee
	err := p.DB.First(&emp, employeeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, types.StorageErr(err)
	}

	return &OwnPayroll{
		EmployeeID: emp.ID,
		FullName:   emp.FullName,
		HireDate:   emp.HireDate.Format("2006-01-02"),
		Salary:     emp.Salary,
	}, nil
}
