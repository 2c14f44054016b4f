package product

import (
	"testing"

	"github.com/gofiber/fiber/v2"
)

// Mutating catalog routes must only be reachable through the admin group.
func TestProductHandler_PublicRoutesAreReadOnly(t *testing.T) {
	pHandler := NewHandler(NewService(NewInMemoryRepository(nil)))
	app := fiber.New()
	pHandler.RegisterPublicRoutes(app)

	for _, grp := range app.Stack() {
		for _, r := range grp {
			if r.Method != fiber.MethodGet && r.Method != fiber.MethodHead {
				t.Fatalf("public product routes must be read-only, found %s %s", r.Method, r.Path)
			}
		}
	}
}
