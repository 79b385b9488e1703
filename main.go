package main

import (
	"crypto/rand"
	"encoding/base64"
	"log"
	"time"

	"staffledger/auth"
	"staffledger/config"
	"staffledger/handlers"
	"staffledger/middleware"
	"staffledger/models"
	"staffledger/repository"
	"staffledger/services"
	"staffledger/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func initServices() (*gorm.DB, *auth.Service, *repository.EmployeeRepo, *repository.CredentialRepo, *services.PayrollService, error) {
	db, err := gorm.Open(sqlite.Open(config.AppConfig.DBPath), &gorm.Config{})
	if err != nil {
		return nil, nil, nil, nil, nil, err
	}

	if err := db.AutoMigrate(&models.Employee{}, &models.Credential{}); err != nil {
		return nil, nil, nil, nil, nil, err
	}

	credentials := repository.NewCredentialRepo(db)
	employees := repository.NewEmployeeRepo(db)
	payroll := services.NewPayrollService(db)

	authService := auth.NewService(credentials, employees, auth.Config{
		MaxAttempts:       config.AppConfig.MaxAttempts,
		LockoutDuration:   time.Duration(config.AppConfig.LockoutMinutes) * time.Minute,
		SessionTimeout:    time.Duration(config.AppConfig.SessionTimeoutMinutes) * time.Minute,
		PasswordMinLength: config.AppConfig.PasswordMinLength,
	})

	if err := bootstrapAdmin(credentials); err != nil {
		return nil, nil, nil, nil, nil, err
	}

	return db, authService, employees, credentials, payroll, nil
}

// bootstrapAdmin seeds an initial administrator credential when none
// exists. Idempotent; the generated password is logged once so the
// operator can log in and change it.
func bootstrapAdmin(credentials *repository.CredentialRepo) error {
	has, err := credentials.HasAdmin()
	if err != nil {
		return err
	}
	if has {
		return nil
	}

	raw := make([]byte, 18)
	if _, err := rand.Read(raw); err != nil {
		return err
	}
	// suffix guarantees every character class the password policy wants
	password := base64.RawURLEncoding.EncodeToString(raw) + "!Aa1"

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	now := time.Now()
	cred := &models.Credential{
		ID:           uuid.New(),
		Username:     "admin",
		PasswordHash: hash,
		Role:         models.RoleAdministrator,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := credentials.Save(cred); err != nil {
		return err
	}

	utils.Logger.Warn("initial administrator created",
		zap.String("username", "admin"),
		zap.String("password", password))
	return nil
}

func setupRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")
	authGroup.Post("/login", handlers.Login)
	authGroup.Post("/logout", middleware.RequireAuth, handlers.Logout)
	authGroup.Post("/change-password", middleware.RequireAuth, handlers.ChangePassword)
	authGroup.Post("/register", middleware.RequireAuth, middleware.RequireAdmin, handlers.Register)

	employeeGroup := app.Group("/employees", middleware.RequireAuth, middleware.RequireAdmin)
	employeeGroup.Get("/", handlers.GetAllEmployees)
	employeeGroup.Get("/:id", handlers.GetEmployee)
	employeeGroup.Post("/", handlers.AddEmployee)
	employeeGroup.Patch("/:id", handlers.UpdateEmployee)
	employeeGroup.Delete("/:id", handlers.DeleteEmployee)

	app.Post("/salaries/range-update", middleware.RequireAuth, middleware.RequireAdmin, handlers.UpdateSalariesInRange)

	app.Get("/reports/payroll", middleware.RequireAuth, middleware.RequireAdmin, handlers.GetPayrollReport)
	app.Get("/me/payroll", middleware.RequireAuth, handlers.GetOwnPayroll)
}

func main() {
	config.LoadConfig()
	utils.InitLogger()

	db, authService, employees, credentials, payroll, err := initServices()
	if err != nil {
		log.Fatal("Failed to initialize services:", err)
	}

	handlers.InitHandlers(db, authService, employees, credentials, payroll)

	app := fiber.New()
	setupRoutes(app)

	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
