package content

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

func makeApp(repo Repository) *fiber.App {
	h := NewHandler(NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil))))
	app := fiber.New()
	h.RegisterPublicRoutes(app)
	h.RegisterAdminRoutes(app.Group("/api/v1/admin"))
	return app
}

func TestGetBanners_Ordered(t *testing.T) {
	app := makeApp(NewInMemoryRepository([]Banner{
		{ID: 1, ImageURL: "/banner/diwali.jpg", Position: 2},
		{ID: 2, ImageURL: "/banner/new-scents.jpg", Position: 0},
		{ID: 3, ImageURL: "/banner/gift-sets.jpg", Position: 1},
	}))

	res, err := app.Test(httptest.NewRequest("GET", "/api/v1/banners?limit=2", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	var got []Banner
	require.NoError(t, json.NewDecoder(res.Body).Decode(&got))
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].ID)
	assert.Equal(t, 3, got[1].ID)
}

func TestAdminBannerLifecycle(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	app := makeApp(repo)

	req := httptest.NewRequest("POST", "/api/v1/admin/banners", strings.NewReader(`{"imageUrl":""}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)

	req = httptest.NewRequest("POST", "/api/v1/admin/banners", strings.NewReader(`{"imageUrl":"/banner/monsoon.jpg","alt":"Monsoon sale","position":1}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ = app.Test(req)
	require.Equal(t, fiber.StatusCreated, res.StatusCode)
	var created Banner
	require.NoError(t, json.NewDecoder(res.Body).Decode(&created))
	assert.Equal(t, 1, created.ID)
	assert.NotEmpty(t, created.CreatedAt)

	res, _ = app.Test(httptest.NewRequest("DELETE", "/api/v1/admin/banners/1", nil))
	assert.Equal(t, fiber.StatusNoContent, res.StatusCode)
	res, _ = app.Test(httptest.NewRequest("DELETE", "/api/v1/admin/banners/1", nil))
	assert.Equal(t, fiber.StatusNotFound, res.StatusCode)

	items, _ := repo.List(0)
	assert.Empty(t, items)
}
