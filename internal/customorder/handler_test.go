package customorder

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeApp() *fiber.App {
	h := NewHandler(NewService(NewInMemoryRepository(nil), slog.New(slog.NewTextHandler(io.Discard, nil))))
	app := fiber.New()
	h.RegisterPublicRoutes(app)
	h.RegisterAdminRoutes(app.Group("/api/v1/admin"))
	return app
}

func send(t *testing.T, app *fiber.App, method, path, body string) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	require.NoError(t, err)
	b, _ := io.ReadAll(res.Body)
	return res.StatusCode, b
}

func TestCustomOrderFlow(t *testing.T) {
	app := makeApp()

	code, _ := send(t, app, "POST", "/api/v1/custom-orders", `{"name":"","quantity":0}`)
	assert.Equal(t, fiber.StatusBadRequest, code)

	code, body := send(t, app, "POST", "/api/v1/custom-orders",
		`{"name":"Kavya","email":"Kavya@Example.com","phone":"98765 43210","description":"Twelve lavender jars for a wedding","quantity":12}`)
	require.Equal(t, fiber.StatusCreated, code)
	var created Request
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, StatusNew, created.Status)
	assert.Equal(t, "kavya@example.com", created.Email)
	assert.Equal(t, "9876543210", created.Phone)

	code, _ = send(t, app, "PATCH", "/api/v1/admin/custom-orders/1/status", `{"status":"completed"}`)
	assert.Equal(t, fiber.StatusConflict, code)

	code, _ = send(t, app, "PATCH", "/api/v1/admin/custom-orders/1/status", `{"status":"bogus"}`)
	assert.Equal(t, fiber.StatusBadRequest, code)

	code, _ = send(t, app, "PATCH", "/api/v1/admin/custom-orders/9/status", `{"status":"quoted"}`)
	assert.Equal(t, fiber.StatusNotFound, code)

	code, body = send(t, app, "PATCH", "/api/v1/admin/custom-orders/1/status", `{"status":"quoted"}`)
	require.Equal(t, fiber.StatusOK, code)
	assert.Contains(t, string(body), `"status":"quoted"`)

	code, body = send(t, app, "GET", "/api/v1/admin/custom-orders?status=quoted", "")
	require.Equal(t, fiber.StatusOK, code)
	var listed []Request
	require.NoError(t, json.Unmarshal(body, &listed))
	assert.Len(t, listed, 1)

	code, body = send(t, app, "GET", "/api/v1/admin/custom-orders?status=new", "")
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "[]", string(body))
}
