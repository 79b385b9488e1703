package auth

import (
	"time"

	"staffledger/models"
)

// Session is the in-process proof that a credential has been authenticated.
// It is not persisted; validity is checked lazily against the login
// timestamp (absolute timeout, not idle).
type Session struct {
	Credential *models.Credential
	LoginAt    time.Time
	LoggedIn   bool
}

func (s *Session) expired(now time.Time, timeout time.Duration) bool {
	return now.Sub(s.LoginAt) > timeout
}
