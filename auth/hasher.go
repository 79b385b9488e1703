package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"staffledger/types"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltLength       = 16
	pbkdf2Iterations = 10000
	digestLength     = 32
)

// HashPassword returns base64(salt) + ":" + base64(digest) with a fresh
// random salt per call, so two hashes of the same password never match.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("%w: password must not be empty", types.ErrInvalidInput)
	}

	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	digest := pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, digestLength, sha256.New)
	return base64.StdEncoding.EncodeToString(salt) + ":" + base64.StdEncoding.EncodeToString(digest), nil
}

// VerifyPassword recomputes the digest with the stored salt and compares in
// constant time. Malformed stored values verify as false, never panic.
func VerifyPassword(password, stored string) bool {
	parts := strings.SplitN(stored, ":", 2)
	if len(parts) != 2 {
		return false
	}

	salt, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil {
		return false
	}
	want, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return false
	}

	got := pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, digestLength, sha256.New)
	return subtle.ConstantTimeCompare(got, want) == 1
}
