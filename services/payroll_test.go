package services

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"staffledger/models"
	"staffledger/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Employee{}))
	return db
}

func seedEmployee(t *testing.T, db *gorm.DB, salary float64, active bool) *models.Employee {
	t.Helper()
	emp := models.Employee{
		FullName:    fmt.Sprintf("Employee %.0f", salary),
		SSN:         fmt.Sprintf("900-00-%04d", int(salary/1000)),
		DateOfBirth: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		Email:       fmt.Sprintf("emp%.0f@example.com", salary),
		HireDate:    time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC),
		Salary:      salary,
		Active:      active,
	}
	require.NoError(t, db.Create(&emp).Error)
	return &emp
}

func TestPayrollSummary(t *testing.T) {
	db := newTestDB(t)
	svc := NewPayrollService(db)

	seedEmployee(t, db, 40000, true)
	seedEmployee(t, db, 60000, true)
	seedEmployee(t, db, 90000, false)

	summary, err := svc.Summary()
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.EmployeeCount)
	assert.Equal(t, 100000.0, summary.TotalSalary)
	assert.Equal(t, 50000.0, summary.AverageSalary)
	assert.Equal(t, 40000.0, summary.MinSalary)
	assert.Equal(t, 60000.0, summary.MaxSalary)
}

func TestPayrollSummaryEmpty(t *testing.T) {
	db := newTestDB(t)
	svc := NewPayrollService(db)

	summary, err := svc.Summary()
	require.NoError(t, err)
	assert.Equal(t, int64(0), summary.EmployeeCount)
	assert.Equal(t, 0.0, summary.TotalSalary)
}

func TestSalaryBands(t *testing.T) {
	db := newTestDB(t)
	svc := NewPayrollService(db)

	seedEmployee(t, db, 40000, true)
	seedEmployee(t, db, 60000, true)
	seedEmployee(t, db, 70000, true)
	seedEmployee(t, db, 150000, true)

	bands, err := svc.SalaryBands()
	require.NoError(t, err)
	require.Len(t, bands, 3)

	assert.Equal(t, "under_50k", bands[0].Band)
	assert.Equal(t, int64(1), bands[0].EmployeeCount)
	assert.Equal(t, "50k_to_100k", bands[1].Band)
	assert.Equal(t, int64(2), bands[1].EmployeeCount)
	assert.Equal(t, "over_100k", bands[2].Band)
	assert.Equal(t, int64(1), bands[2].EmployeeCount)
}

func TestOwnPayroll(t *testing.T) {
	db := newTestDB(t)
	svc := NewPayrollService(db)
	emp := seedEmployee(t, db, 52000, true)

	payroll, err := svc.OwnPayroll(emp.ID)
	require.NoError(t, err)
	assert.Equal(t, emp.ID, payroll.EmployeeID)
	assert.Equal(t, 52000.0, payroll.Salary)
	assert.Equal(t, "2020-06-01", payroll.HireDate)

	_, err = svc.OwnPayroll(9999)
	assert.True(t, errors.Is(err, types.ErrNotFound))
}
