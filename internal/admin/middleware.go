package admin

import (
	"errors"
	"log/slog"

	"github.com/emberandwick/candle-shop/internal/profile"
	"github.com/gofiber/fiber/v2"
)

// Checker answers whether a user is an admin.
type Checker interface {
	IsAdmin(userID int) (bool, error)
}

// Middleware guards the admin route group. It expects jwtware to have run.
func Middleware(cache *StatusCache, checker Checker, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := profile.GetUserIDFromCtx(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
		}

		isAdmin, ok := cache.Get(userID)
		if !ok {
			isAdmin, err = checker.IsAdmin(userID)
			if errors.Is(err, profile.ErrNotFound) {
				logger.Warn("admin route denied, profile gone", "user_id", userID)
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "admin access required"})
			}
			if err != nil {
				logger.Error("admin lookup failed", "user_id", userID, "error", err)
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not verify admin access"})
			}
			cache.Set(userID, isAdmin)
		}

		if !isAdmin {
			logger.Warn("admin route denied", "user_id", userID, "path", c.Path())
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "admin access required"})
		}
		return c.Next()
	}
}
