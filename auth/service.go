package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"staffledger/models"
	"staffledger/types"
	"staffledger/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CredentialStore is the persistence surface the service needs.
type CredentialStore interface {
	FindByUsername(username string) (*models.Credential, error)
	Save(cred *models.Credential) error
	UpdatePasswordHash(username, hash string) error
	UpdateLastLogin(username string, ts time.Time) error
}

// AuthResult carries the outcome of login, password change and user
// creation. Failures are values, not errors; only storage trouble is
// returned as an error.
type AuthResult struct {
	Success    bool
	Message    string
	Credential *models.Credential
}

// Config holds the lockout, session and password-policy knobs, normally
// filled from config.AppConfig.
type Config struct {
	MaxAttempts       int
	LockoutDuration   time.Duration
	SessionTimeout    time.Duration
	PasswordMinLength int
}

// Service orchestrates login, logout, session timeout, password change and
// user creation. It models exactly one logged-in principal; the lockout
// tracker is shared across usernames and mutex-guarded.
type Service struct {
	store          CredentialStore
	employees      EmployeeChecker
	gate           *Gate
	lockouts       *LockoutTracker
	timeout        time.Duration
	minPasswordLen int
	session        *Session

	now func() time.Time
}

func NewService(store CredentialStore, employees EmployeeChecker, cfg Config) *Service {
	minLen := cfg.PasswordMinLength
	if minLen <= 0 {
		minLen = defaultPasswordMinLength
	}
	return &Service{
		store:          store,
		employees:      employees,
		gate:           NewGate(employees),
		lockouts:       NewLockoutTracker(cfg.MaxAttempts, cfg.LockoutDuration),
		timeout:        cfg.SessionTimeout,
		minPasswordLen: minLen,
		now:            time.Now,
	}
}

// Login verifies the credentials, consulting the lockout tracker first.
// Unknown username and wrong password share one generic message.
func (s *Service) Login(username, password string) (AuthResult, error) {
	if strings.TrimSpace(username) == "" {
		return AuthResult{Message: "username must not be blank"}, nil
	}
	if password == "" {
		return AuthResult{Message: "password must not be blank"}, nil
	}

	name := NormalizeUsername(username)
	now := s.now()

	if s.lockouts.IsLocked(name, now) {
		s.securityEvent("login_rejected_locked", name)
		return AuthResult{Message: types.MsgAccountLocked}, nil
	}

	cred, err := s.store.FindByUsername(name)
	if err != nil && !errors.Is(err, types.ErrNotFound) {
		return AuthResult{}, err
	}
	if cred == nil || !VerifyPassword(password, cred.PasswordHash) {
		s.lockouts.RecordFailure(name, now)
		s.securityEvent("login_failed", name)
		return AuthResult{Message: types.MsgInvalidCredentials}, nil
	}

	s.lockouts.Clear(name)
	s.session = &Session{Credential: cred, LoginAt: now, LoggedIn: true}
	if err := s.store.UpdateLastLogin(name, now); err != nil {
		utils.Logger.Warn("failed to record last login",
			zap.String("username", name), zap.Error(err))
	}
	cred.LastLoginAt = &now

	s.securityEvent("login_success", name)
	return AuthResult{Success: true, Message: "login successful", Credential: cred}, nil
}

// Logout clears the current session. Returns false when nobody is logged
// in; that is a no-op, not an error.
func (s *Service) Logout() bool {
	if s.session == nil || !s.session.LoggedIn {
		return false
	}
	s.securityEvent("logout", s.session.Credential.Username)
	s.session.LoggedIn = false
	s.session = nil
	return true
}

// LogoutUser clears the in-process session only when it belongs to the
// named principal; another user's session is left alone.
func (s *Service) LogoutUser(username string) bool {
	name := NormalizeUsername(username)
	if s.session == nil || !s.session.LoggedIn || s.session.Credential.Username != name {
		return false
	}
	return s.Logout()
}

// CurrentUser returns the logged-in credential, lazily invalidating the
// session once its age exceeds the timeout.
func (s *Service) CurrentUser() *models.Credential {
	if s.session == nil || !s.session.LoggedIn {
		return nil
	}
	if s.session.expired(s.now(), s.timeout) {
		s.securityEvent("session_expired", s.session.Credential.Username)
		s.session = nil
		return nil
	}
	return s.session.Credential
}

// IsAuthorized checks the named operation against the gate for the current
// user. A stale or absent session is always denied.
func (s *Service) IsAuthorized(operation string) bool {
	return s.gate.Allows(s.CurrentUser(), operation)
}

// ChangePassword verifies the old password, validates the new one against
// the policy (reporting every violation), and persists the new hash.
func (s *Service) ChangePassword(oldPassword, newPassword string) (AuthResult, error) {
	cred := s.CurrentUser()
	if cred == nil {
		return AuthResult{Message: types.MsgNoUserLoggedIn}, nil
	}
	if !VerifyPassword(oldPassword, cred.PasswordHash) {
		s.securityEvent("password_change_rejected", cred.Username)
		return AuthResult{Message: types.MsgWrongOldPassword}, nil
	}
	if violations := ValidatePassword(newPassword, s.minPasswordLen); len(violations) > 0 {
		return AuthResult{Message: strings.Join(violations, "; ")}, nil
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return AuthResult{}, err
	}
	if err := s.store.UpdatePasswordHash(cred.Username, hash); err != nil {
		return AuthResult{}, err
	}
	cred.PasswordHash = hash

	s.securityEvent("password_changed", cred.Username)
	return AuthResult{Success: true, Message: "password changed"}, nil
}

// ChangePasswordFor verifies and rewrites the named principal's credential
// regardless of who holds the in-process session. Callers serving bearer
// tokens use this with the verified claim username so one principal can
// never rewrite another's credential. Wrong old passwords count against the
// lockout tracker like failed logins.
func (s *Service) ChangePasswordFor(username, oldPassword, newPassword string) (AuthResult, error) {
	name := NormalizeUsername(username)
	now := s.now()

	if s.lockouts.IsLocked(name, now) {
		s.securityEvent("password_change_rejected_locked", name)
		return AuthResult{Message: types.MsgAccountLocked}, nil
	}

	cred, err := s.store.FindByUsername(name)
	if err != nil && !errors.Is(err, types.ErrNotFound) {
		return AuthResult{}, err
	}
	if cred == nil || !VerifyPassword(oldPassword, cred.PasswordHash) {
		s.lockouts.RecordFailure(name, now)
		s.securityEvent("password_change_rejected", name)
		return AuthResult{Message: types.MsgWrongOldPassword}, nil
	}
	if violations := ValidatePassword(newPassword, s.minPasswordLen); len(violations) > 0 {
		return AuthResult{Message: strings.Join(violations, "; ")}, nil
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return AuthResult{}, err
	}
	if err := s.store.UpdatePasswordHash(name, hash); err != nil {
		return AuthResult{}, err
	}
	s.lockouts.Clear(name)
	if s.session != nil && s.session.LoggedIn && s.session.Credential.Username == name {
		s.session.Credential.PasswordHash = hash
	}

	s.securityEvent("password_changed", name)
	return AuthResult{Success: true, Message: "password changed"}, nil
}

// CreateUser registers a new credential. With an active session the caller
// must be authorized for add_employee; with no session at all the call is
// permitted, which is the bootstrap escape hatch used to seed the first
// administrator.
func (s *Service) CreateUser(username, password, role string, employeeID *uint) (AuthResult, error) {
	if cred := s.CurrentUser(); cred != nil {
		if !s.gate.Allows(cred, OpAddEmployee) {
			return AuthResult{Message: "not authorized to create users"}, nil
		}
	} else {
		s.securityEvent("bootstrap_user_creation", NormalizeUsername(username))
	}

	if violations := ValidateUsername(strings.TrimSpace(username)); len(violations) > 0 {
		return AuthResult{Message: strings.Join(violations, "; ")}, nil
	}
	if violations := ValidatePassword(password, s.minPasswordLen); len(violations) > 0 {
		return AuthResult{Message: strings.Join(violations, "; ")}, nil
	}

	switch role {
	case models.RoleAdministrator:
		if employeeID != nil {
			return AuthResult{Message: "administrator credentials must not link an employee record"}, nil
		}
	case models.RoleStandardEmployee:
		if employeeID == nil {
			return AuthResult{Message: "employee credentials require an employee record link"}, nil
		}
		exists, err := s.employees.Exists(*employeeID)
		if err != nil {
			return AuthResult{}, err
		}
		if !exists {
			return AuthResult{Message: fmt.Sprintf("employee %d does not exist", *employeeID)}, nil
		}
		active, err := s.employees.IsActive(*employeeID)
		if err != nil {
			return AuthResult{}, err
		}
		if !active {
			return AuthResult{Message: fmt.Sprintf("employee %d is not active", *employeeID)}, nil
		}
	default:
		return AuthResult{Message: fmt.Sprintf("unknown role %q", role)}, nil
	}

	name := NormalizeUsername(username)
	existing, err := s.store.FindByUsername(name)
	if err != nil && !errors.Is(err, types.ErrNotFound) {
		return AuthResult{}, err
	}
	if existing != nil {
		return AuthResult{Message: "username already taken"}, nil
	}

	hash, err := HashPassword(password)
	if err != nil {
		return AuthResult{}, err
	}
	now := s.now()
	cred := &models.Credential{
		ID:           uuid.New(),
		Username:     name,
		PasswordHash: hash,
		Role:         role,
		EmployeeID:   employeeID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.Save(cred); err != nil {
		return AuthResult{}, err
	}

	s.securityEvent("user_created", name)
	return AuthResult{Success: true, Message: "user created", Credential: cred}, nil
}

func (s *Service) securityEvent(kind, username string) {
	utils.Logger.Info("security event",
		zap.String("event", kind),
		zap.String("principal", username),
		zap.Time("at", s.now()))
}
