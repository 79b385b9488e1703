package handlers

import (
	"time"

	"staffledger/config"
	"staffledger/models"
	"staffledger/types"
	"staffledger/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type RegisterRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	EmployeeID *uint  `json:"employee_id,omitempty"`
}

// Login authenticates against the credential store and, on success, issues
// a bearer token mirroring the in-process session.
func Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid request body",
		})
	}

	result, err := Auth.Login(req.Username, req.Password)
	if err != nil {
		utils.Logger.Error("login storage failure", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   "storage unavailable",
		})
	}
	if !result.Success {
		return c.Status(401).JSON(types.APIResponse{
			Success: false,
			Error:   result.Message,
		})
	}

	token, err := issueToken(result.Credential)
	if err != nil {
		utils.Logger.Error("failed to sign token", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   "internal server error",
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: result.Message,
		Data: map[string]interface{}{
			"token":    token,
			"username": result.Credential.Username,
			"role":     result.Credential.Role,
		},
	})
}

func Logout(c *fiber.Ctx) error {
	username, _ := c.Locals("username").(string)
	if !Auth.LogoutUser(username) {
		return c.JSON(types.APIResponse{
			Success: true,
			Message: "no active session",
		})
	}
	return c.JSON(types.APIResponse{
		Success: true,
		Message: "logged out",
	})
}

// ChangePassword acts on the principal named in the verified token claims,
// never on whoever happens to hold the in-process session.
func ChangePassword(c *fiber.Ctx) error {
	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid request body",
		})
	}

	username, _ := c.Locals("username").(string)
	result, err := Auth.ChangePasswordFor(username, req.OldPassword, req.NewPassword)
	if err != nil {
		utils.Logger.Error("password change storage failure", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   "storage unavailable",
		})
	}
	if !result.Success {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   result.Message,
		})
	}
	return c.JSON(types.APIResponse{
		Success: true,
		Message: result.Message,
	})
}

// Register creates a credential. Routed behind RequireAdmin; the service
// additionally enforces the add_employee authorization when a session
// exists.
func Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid request body",
		})
	}

	result, err := Auth.CreateUser(req.Username, req.Password, req.Role, req.EmployeeID)
	if err != nil {
		utils.Logger.Error("user creation storage failure", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   "storage unavailable",
		})
	}
	if !result.Success {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   result.Message,
		})
	}
	return c.JSON(types.APIResponse{
		Success: true,
		Message: result.Message,
		Data:    result.Credential,
	})
}

func issueToken(cred *models.Credential) (string, error) {
	expiry, err := time.ParseDuration(config.AppConfig.TokenExpiryDuration)
	if err != nil {
		expiry = 24 * time.Hour
	}

	claims := jwt.MapClaims{
		"username": cred.Username,
		"role":     cred.Role,
		"exp":      time.Now().Add(expiry).Unix(),
	}
	if cred.EmployeeID != nil {
		claims["employee_id"] = *cred.EmployeeID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.AppConfig.JWTSecret))
}
