package handlers

import (
	"net/http/httptest"
	"testing"

	"staffledger/models"
	"staffledger/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginFlow(t *testing.T) {
	app, db := setupTestApp(t)
	seedCredential(t, db, "alice", "Adm1n!pass", models.RoleAdministrator, nil)

	t.Run("wrong password", func(t *testing.T) {
		resp, decoded := doJSON(t, app, "POST", "/auth/login", "", LoginRequest{
			Username: "alice",
			Password: "wrong",
		})
		assert.Equal(t, 401, resp.StatusCode)
		assert.False(t, decoded.Success)
		assert.Equal(t, types.MsgInvalidCredentials, decoded.Error)
	})

	t.Run("unknown user gets the same message", func(t *testing.T) {
		resp, decoded := doJSON(t, app, "POST", "/auth/login", "", LoginRequest{
			Username: "nobody",
			Password: "whatever",
		})
		assert.Equal(t, 401, resp.StatusCode)
		assert.Equal(t, types.MsgInvalidCredentials, decoded.Error)
	})

	t.Run("successful login returns a token", func(t *testing.T) {
		token := loginAs(t, app, "alice", "Adm1n!pass")
		assert.NotEmpty(t, token)
	})
}

func TestLockoutOverHTTP(t *testing.T) {
	app, db := setupTestApp(t)
	seedCredential(t, db, "bob", "B0b!secret", models.RoleAdministrator, nil)

	for i := 0; i < 3; i++ {
		resp, _ := doJSON(t, app, "POST", "/auth/login", "", LoginRequest{
			Username: "bob",
			Password: "wrong",
		})
		assert.Equal(t, 401, resp.StatusCode)
	}

	// correct credentials still rejected while locked
	resp, decoded := doJSON(t, app, "POST", "/auth/login", "", LoginRequest{
		Username: "bob",
		Password: "B0b!secret",
	})
	assert.Equal(t, 401, resp.StatusCode)
	assert.Equal(t, types.MsgAccountLocked, decoded.Error)
}

func TestChangePasswordFlow(t *testing.T) {
	app, db := setupTestApp(t)
	seedCredential(t, db, "alice", "Adm1n!pass", models.RoleAdministrator, nil)
	token := loginAs(t, app, "alice", "Adm1n!pass")

	resp, decoded := doJSON(t, app, "POST", "/auth/change-password", token, ChangePasswordRequest{
		OldPassword: "Adm1n!pass",
		NewPassword: "weak",
	})
	assert.Equal(t, 400, resp.StatusCode)
	assert.Contains(t, decoded.Error, "password must")

	resp, _ = doJSON(t, app, "POST", "/auth/change-password", token, ChangePasswordRequest{
		OldPassword: "Adm1n!pass",
		NewPassword: "N3w!passwd",
	})
	assert.Equal(t, 200, resp.StatusCode)

	// old password no longer works
	resp, _ = doJSON(t, app, "POST", "/auth/login", "", LoginRequest{
		Username: "alice",
		Password: "Adm1n!pass",
	})
	assert.Equal(t, 401, resp.StatusCode)

	token = loginAs(t, app, "alice", "N3w!passwd")
	assert.NotEmpty(t, token)
}

func TestChangePasswordUsesTokenPrincipal(t *testing.T) {
	app, db := setupTestApp(t)
	emp := seedEmployee(t, db, "Worker One", 50000)
	seedCredential(t, db, "alice", "Adm1n!pass", models.RoleAdministrator, nil)
	seedCredential(t, db, "worker", "W0rk!pass", models.RoleStandardEmployee, &emp.ID)

	workerToken := loginAs(t, app, "worker", "W0rk!pass")
	// alice logs in afterwards, so she holds the in-process session
	loginAs(t, app, "alice", "Adm1n!pass")

	// worker's token plus alice's password must not touch alice's credential
	resp, decoded := doJSON(t, app, "POST", "/auth/change-password", workerToken, ChangePasswordRequest{
		OldPassword: "Adm1n!pass",
		NewPassword: "Hij@cked1pw",
	})
	assert.Equal(t, 400, resp.StatusCode)
	assert.Equal(t, types.MsgWrongOldPassword, decoded.Error)

	// worker changes their own password with their own old password
	resp, _ = doJSON(t, app, "POST", "/auth/change-password", workerToken, ChangePasswordRequest{
		OldPassword: "W0rk!pass",
		NewPassword: "N3w!workpw",
	})
	assert.Equal(t, 200, resp.StatusCode)

	// both principals still log in with the passwords they expect
	assert.NotEmpty(t, loginAs(t, app, "alice", "Adm1n!pass"))
	assert.NotEmpty(t, loginAs(t, app, "worker", "N3w!workpw"))
}

func TestLogoutLeavesOtherPrincipalsSessionAlone(t *testing.T) {
	app, db := setupTestApp(t)
	emp := seedEmployee(t, db, "Worker One", 50000)
	seedCredential(t, db, "alice", "Adm1n!pass", models.RoleAdministrator, nil)
	seedCredential(t, db, "worker", "W0rk!pass", models.RoleStandardEmployee, &emp.ID)

	workerToken := loginAs(t, app, "worker", "W0rk!pass")
	aliceToken := loginAs(t, app, "alice", "Adm1n!pass")

	resp, decoded := doJSON(t, app, "POST", "/auth/logout", workerToken, nil)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "no active session", decoded.Message)

	resp, decoded = doJSON(t, app, "POST", "/auth/logout", aliceToken, nil)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "logged out", decoded.Message)
}

func TestRegisterRequiresAdmin(t *testing.T) {
	app, db := setupTestApp(t)
	emp := seedEmployee(t, db, "Worker One", 50000)
	seedCredential(t, db, "alice", "Adm1n!pass", models.RoleAdministrator, nil)
	seedCredential(t, db, "worker", "W0rk!pass", models.RoleStandardEmployee, &emp.ID)

	workerToken := loginAs(t, app, "worker", "W0rk!pass")
	resp, _ := doJSON(t, app, "POST", "/auth/register", workerToken, RegisterRequest{
		Username: "intruder",
		Password: "Intr!pass1",
		Role:     models.RoleAdministrator,
	})
	assert.Equal(t, 403, resp.StatusCode)

	adminToken := loginAs(t, app, "alice", "Adm1n!pass")
	resp, decoded := doJSON(t, app, "POST", "/auth/register", adminToken, RegisterRequest{
		Username:   "newbie",
		Password:   "N3wb!pass",
		Role:       models.RoleStandardEmployee,
		EmployeeID: &emp.ID,
	})
	require.Equal(t, 200, resp.StatusCode)
	assert.True(t, decoded.Success)
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	app, _ := setupTestApp(t)

	req := httptest.NewRequest("GET", "/employees", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}
