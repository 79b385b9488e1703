package auth

import (
	"errors"
	"os"
	"testing"

	"staffledger/types"
	"staffledger/utils"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	utils.Logger = zap.NewNop()
	os.Exit(m.Run())
}

func TestHashPasswordSaltsEveryCall(t *testing.T) {
	first, err := HashPassword("Sup3r$ecret")
	assert.NoError(t, err)
	second, err := HashPassword("Sup3r$ecret")
	assert.NoError(t, err)

	assert.NotEqual(t, first, second, "two hashes of the same password must differ")
	assert.True(t, VerifyPassword("Sup3r$ecret", first))
	assert.True(t, VerifyPassword("Sup3r$ecret", second))
}

func TestVerifyPasswordRejectsWrongPassword(t *testing.T) {
	stored, err := HashPassword("Correct1!")
	assert.NoError(t, err)

	assert.False(t, VerifyPassword("Incorrect1!", stored))
	assert.False(t, VerifyPassword("", stored))
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	_, err := HashPassword("")
	assert.True(t, errors.Is(err, types.ErrInvalidInput))
}

func TestVerifyPasswordFailsClosedOnMalformedStored(t *testing.T) {
	cases := []string{
		"",
		"no-separator",
		"only-one-part:",
		":only-digest",
		"not base64!:aGVsbG8=",
		"aGVsbG8=:not base64!",
	}
	for _, stored := range cases {
		assert.False(t, VerifyPassword("anything", stored), "stored=%q", stored)
	}
}
