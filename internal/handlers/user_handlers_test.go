package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func TestRegisterCreatesUser(t *testing.T) {
	env := newTestEnv(t)
	login := env.login(t, "admin", "admin")

	rec, c := env.jsonRequest(http.MethodPost, "/register", map[string]interface{}{
		"username": "newcollector",
		"name":     "New Collector",
		"phone":    int64(9876543210),
		"userRole": "COLLECTOR",
		"password": "secret",
	})
	c.Request().Header.Set(echo.HeaderAuthorization, "Bearer "+login.AccessToken)
	require.NoError(t, env.mw.AdminOnly(env.users.Register)(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "newcollector", body["username"])
	require.Equal(t, "COLLECTOR", body["userRole"])
	require.False(t, strings.Contains(rec.Body.String(), "secret"), "password must never appear in the response")

	created, err := env.repo.GetByUsername("newcollector")
	require.NoError(t, err)
	require.NotNil(t, created)
	require.NotEqual(t, "secret", created.PasswordHash)

	// the new account can log in right away
	env.login(t, "newcollector", "secret")
}

func TestRegisterDuplicateUsername(t *testing.T) {
	env := newTestEnv(t)
	login := env.login(t, "admin", "admin")

	_, c := env.jsonRequest(http.MethodPost, "/register", map[string]string{
		"username": "collector",
		"password": "secret",
	})
	c.Request().Header.Set(echo.HeaderAuthorization, "Bearer "+login.AccessToken)
	he := requireHTTPError(t, env.mw.AdminOnly(env.users.Register)(c), http.StatusBadRequest)
	require.Equal(t, "Username already registered", he.Message)
}

func TestRegisterRequiresUsernameAndPassword(t *testing.T) {
	env := newTestEnv(t)
	login := env.login(t, "admin", "admin")

	_, c := env.jsonRequest(http.MethodPost, "/register", map[string]string{
		"username": "nopassword",
	})
	c.Request().Header.Set(echo.HeaderAuthorization, "Bearer "+login.AccessToken)
	requireHTTPError(t, env.mw.AdminOnly(env.users.Register)(c), http.StatusUnprocessableEntity)
}
