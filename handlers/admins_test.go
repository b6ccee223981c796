package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminLogin(t *testing.T) {
	app := newTestApp(t)
	app.insertAdmin(t, "Admin", "admin@gardentss.edu.zm", "admin123")

	rec := app.request(t, "POST", "/api/admin/login", map[string]string{
		"email":    "admin@gardentss.edu.zm",
		"password": "admin123",
	}, "")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeMap(t, rec)
	assert.Equal(t, "Admin", body["username"])
	assert.Equal(t, true, body["isAdmin"])

	claims, err := app.tokens.Parse(body["token"].(string))
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, "Admin", claims.Username)
}

func TestAdminLogin_WrongPassword(t *testing.T) {
	app := newTestApp(t)
	app.insertAdmin(t, "Admin", "admin@gardentss.edu.zm", "admin123")

	rec := app.request(t, "POST", "/api/admin/login", map[string]string{
		"email":    "admin@gardentss.edu.zm",
		"password": "nope",
	}, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid credentials", decodeMap(t, rec)["error"])
}

func TestAdminLogin_UnknownEmail(t *testing.T) {
	app := newTestApp(t)

	rec := app.request(t, "POST", "/api/admin/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "whatever",
	}, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid credentials", decodeMap(t, rec)["error"])
}

// POST /api/admin/login with a token attached is the login-record create, not
// an admin credential login.
func TestAdminLoginPath_TokenCreatesLoginRecord(t *testing.T) {
	app := newTestApp(t)

	rec := app.request(t, "POST", "/api/admin/login", map[string]string{
		"email":    "record@example.com",
		"password": "secret123",
	}, app.adminToken(t))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "Login record created successfully", decodeMap(t, rec)["message"])

	var count int
	require.NoError(t, app.db.Get(&count, "SELECT COUNT(*) FROM login WHERE email = ?", "record@example.com"))
	assert.Equal(t, 1, count)
}

func TestAdminLoginPath_UserTokenForbidden(t *testing.T) {
	app := newTestApp(t)

	rec := app.request(t, "POST", "/api/admin/login", map[string]string{
		"email":    "record@example.com",
		"password": "secret123",
	}, app.userToken(t))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Not authorized as admin", decodeMap(t, rec)["error"])
}

func TestAdminLogout(t *testing.T) {
	app := newTestApp(t)

	rec := app.request(t, "POST", "/api/admin/logout", nil, app.adminToken(t))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Logged out successfully", decodeMap(t, rec)["message"])
}

func TestAdminLogout_RequiresToken(t *testing.T) {
	app := newTestApp(t)

	rec := app.request(t, "POST", "/api/admin/logout", nil, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateAdmin(t *testing.T) {
	app := newTestApp(t)

	rec := app.request(t, "POST", "/api/admin/admins", map[string]string{
		"username": "second",
		"email":    "second@gardentss.edu.zm",
		"password": "secret123",
	}, app.adminToken(t))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decodeMap(t, rec)
	assert.Equal(t, "Admin created successfully", body["message"])
	assert.NotZero(t, body["id"])

	// The new admin can log in immediately.
	rec = app.request(t, "POST", "/api/admin/login", map[string]string{
		"email":    "second@gardentss.edu.zm",
		"password": "secret123",
	}, "")
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestCreateAdmin_MissingFields(t *testing.T) {
	app := newTestApp(t)

	rec := app.request(t, "POST", "/api/admin/admins", map[string]string{
		"username": "second",
	}, app.adminToken(t))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "username, email and password are required", decodeMap(t, rec)["error"])
}

func TestCreateAdmin_DuplicateEmail(t *testing.T) {
	app := newTestApp(t)
	app.insertAdmin(t, "Admin", "admin@gardentss.edu.zm", "admin123")

	rec := app.request(t, "POST", "/api/admin/admins", map[string]string{
		"username": "other",
		"email":    "admin@gardentss.edu.zm",
		"password": "secret123",
	}, app.adminToken(t))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email already exists", decodeMap(t, rec)["error"])
}

func TestListAdmins_ExcludesPassword(t *testing.T) {
	app := newTestApp(t)
	app.insertAdmin(t, "Admin", "admin@gardentss.edu.zm", "admin123")

	rec := app.request(t, "GET", "/api/admin/admins", nil, app.adminToken(t))

	require.Equal(t, http.StatusOK, rec.Code)
	admins := decodeList(t, rec)
	require.Len(t, admins, 1)
	assert.Equal(t, "Admin", admins[0]["username"])
	assert.NotContains(t, admins[0], "password")
}

func TestGetAdmin_NotFound(t *testing.T) {
	app := newTestApp(t)

	rec := app.request(t, "GET", "/api/admin/admins/999", nil, app.adminToken(t))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Admin not found", decodeMap(t, rec)["error"])
}

func TestUpdateAdmin(t *testing.T) {
	app := newTestApp(t)
	app.insertAdmin(t, "Admin", "admin@gardentss.edu.zm", "admin123")

	var before string
	require.NoError(t, app.db.Get(&before, "SELECT password FROM admins WHERE id = 1"))

	rec := app.request(t, "PUT", "/api/admin/admins/1", map[string]string{
		"username": "Renamed",
		"email":    "admin@gardentss.edu.zm",
	}, app.adminToken(t))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Admin updated successfully", decodeMap(t, rec)["message"])

	var after struct {
		Username string `db:"username"`
		Password string `db:"password"`
	}
	require.NoError(t, app.db.Get(&after, "SELECT username, password FROM admins WHERE id = 1"))
	assert.Equal(t, "Renamed", after.Username)
	assert.Equal(t, before, after.Password)
}

func TestDeleteAdmin(t *testing.T) {
	app := newTestApp(t)
	admin := app.adminToken(t)
	app.insertAdmin(t, "Admin", "admin@gardentss.edu.zm", "admin123")

	var id int
	require.NoError(t, app.db.Get(&id, "SELECT id FROM admins"))

	rec := app.request(t, "DELETE", fmt.Sprintf("/api/admin/admins/%d", id), nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Admin deleted successfully", decodeMap(t, rec)["message"])

	rec = app.request(t, "DELETE", fmt.Sprintf("/api/admin/admins/%d", id), nil, admin)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
