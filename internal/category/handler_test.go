package category

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingRepo struct{}

func (failingRepo) List(int) ([]Category, error) { return nil, errors.New("relation does not exist") }

func discardLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestGetCategories_OrderAndLimit(t *testing.T) {
	repo := NewInMemoryRepository([]Category{
		{ID: 1, Name: "Tealights", Position: 3},
		{ID: 2, Name: "Jar Candles", Position: 1},
		{ID: 3, Name: "Pillar Candles", Position: 2},
	})
	app := fiber.New()
	NewHandler(NewService(repo, discardLogger())).RegisterPublicRoutes(app)

	res, err := app.Test(httptest.NewRequest("GET", "/api/v1/categories?limit=2", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	var got []Category
	require.NoError(t, json.NewDecoder(res.Body).Decode(&got))
	require.Len(t, got, 2)
	assert.Equal(t, "Jar Candles", got[0].Name)
	assert.Equal(t, "Pillar Candles", got[1].Name)
}

func TestGetCategories_StorageFailureIsEmpty(t *testing.T) {
	app := fiber.New()
	NewHandler(NewService(failingRepo{}, discardLogger())).RegisterPublicRoutes(app)

	res, err := app.Test(httptest.NewRequest("GET", "/api/v1/categories", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)
	body, _ := io.ReadAll(res.Body)
	assert.JSONEq(t, `[]`, string(body))
}
