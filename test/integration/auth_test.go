package integration

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminLogin(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	var payload map[string]string
	resp := app.doJSON(t, http.MethodPost, "/api/admin/login", "",
		map[string]string{"username": testAdminUser, "password": testAdminPass}, &payload)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, payload["token"])
}

func TestAdminLoginRejectsBadCredentials(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	resp := app.doJSON(t, http.MethodPost, "/api/admin/login", "",
		map[string]string{"username": testAdminUser, "password": "wrong"}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = app.doJSON(t, http.MethodPost, "/api/admin/login", "",
		map[string]string{"username": "nobody", "password": testAdminPass}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminRoutesRejectGarbageToken(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	resp := app.doJSON(t, http.MethodDelete, "/api/votes", "not-a-jwt", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
