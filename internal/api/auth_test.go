package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"estate_crm/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginSuccess(t *testing.T) {
	db := setupTestDB(t)
	createUser(t, db, "alice", "alice@crm.test", domain.RoleEmployee)
	r := newTestRouter(db)

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", `{"email":"alice@crm.test","password":"password"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		User    UserSummary `json:"user"`
		Token   string      `json:"token"`
		Message string      `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "alice", resp.User.Username)
	assert.Equal(t, "alice@crm.test", resp.User.Email)
	assert.Equal(t, domain.RoleEmployee, resp.User.Role)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "Login successful", resp.Message)
	// The password hash must never leak
	assert.NotContains(t, w.Body.String(), "password_hash")
}

func TestLoginMissingFields(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)

	for _, body := range []string{`{}`, `{"email":"alice@crm.test"}`, `{"password":"password"}`} {
		w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body: %s", body)
		assert.Contains(t, w.Body.String(), "Email and password are required")
	}
}

func TestLoginDoesNotRevealWhichEmailsExist(t *testing.T) {
	db := setupTestDB(t)
	createUser(t, db, "alice", "alice@crm.test", domain.RoleEmployee)
	r := newTestRouter(db)

	wrongPassword := doJSON(t, r, http.MethodPost, "/api/auth/login", "", `{"email":"alice@crm.test","password":"nope"}`)
	unknownEmail := doJSON(t, r, http.MethodPost, "/api/auth/login", "", `{"email":"ghost@crm.test","password":"password"}`)

	// Both failure modes must be indistinguishable
	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestLoginAccountWithoutProfile(t *testing.T) {
	db := setupTestDB(t)
	// An account with no linked CRM profile is a data fault
	hashOnly := createUser(t, db, "orphan", "orphan@crm.test", domain.RoleEmployee)
	require.NoError(t, db.Delete(&domain.User{}, hashOnly.ID).Error)
	r := newTestRouter(db)

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", `{"email":"orphan@crm.test","password":"password"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	// Generic body, no implementation detail
	assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())
}

func TestMeReturnsOwnProfile(t *testing.T) {
	db := setupTestDB(t)
	createUser(t, db, "boss", "boss@crm.test", domain.RoleManager)
	r := newTestRouter(db)
	token := login(t, r, "boss@crm.test")

	w := doJSON(t, r, http.MethodGet, "/api/auth/me", token, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		User UserSummary `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "boss", resp.User.Username)
	assert.Equal(t, domain.RoleManager, resp.User.Role)
}

func TestMeRequiresToken(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)

	w := doJSON(t, r, http.MethodGet, "/api/auth/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/auth/me", "not-a-token", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHello(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)

	w := doJSON(t, r, http.MethodGet, "/api/hello", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Hello")
}
