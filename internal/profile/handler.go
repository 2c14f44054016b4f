package profile

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service   *Service
	jwtSecret string
	logger    *slog.Logger
	signOut   []func(userID int)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
}

func NewHandler(service *Service, jwtSecret string, logger *slog.Logger) *Handler {
	return &Handler{service: service, jwtSecret: jwtSecret, logger: logger}
}

// OnSignOut registers a callback run after a user signs out.
func (h *Handler) OnSignOut(fn func(userID int)) {
	h.signOut = append(h.signOut, fn)
}

func (h *Handler) RegisterPublicRoutes(r fiber.Router) {
	r.Post("/api/v1/sign-in", h.login)
	r.Post("/api/v1/sign-up", h.register)
	r.Post("/api/create-guest-account", h.createGuestAccount)
}

func (h *Handler) RegisterProtectedRoutes(r fiber.Router) {
	r.Get("/api/v1/profile", h.getProfile)
	r.Post("/api/v1/sign-out", h.logout)
}

func (h *Handler) RegisterAdminRoutes(r fiber.Router) {
	r.Get("/customers", h.listCustomers)
}

func (h *Handler) login(c *fiber.Ctx) error {
	payload := new(loginRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	p, err := h.service.Authenticate(payload.Email, payload.Password)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid email or password"})
	}

	signed, err := IssueToken(h.jwtSecret, p, time.Now())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to generate token"})
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"user":    sanitize(p),
		"token":   signed,
	})
}

func (h *Handler) register(c *fiber.Ctx) error {
	payload := new(registerRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.isMissingRequiredFields() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Missing required fields"})
	}

	created, err := h.service.Register(Profile{
		Email:     payload.Email,
		Password:  payload.Password,
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Phone:     payload.Phone,
	})
	if err != nil {
		if errors.Is(err, ErrEmailExists) || errors.Is(err, ErrPhoneExists) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "Account already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(sanitize(created))
}

// createGuestAccount provisions the minimal profile for an unauthenticated
// checkout. Callers treat any non-2xx as a logged, non-fatal failure.
func (h *Handler) createGuestAccount(c *fiber.Ctx) error {
	payload := new(GuestRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if phone := NormalizePhone(payload.Phone); phone != "" && !ValidMobile(phone) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid phone number"})
	}
	if email := NormalizeEmail(payload.Email); email != "" && !ValidEmail(email) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid email"})
	}

	p, created, err := h.service.EnsureGuest(*payload)
	if err != nil {
		if errors.Is(err, ErrMissingContact) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		h.logger.Error("guest account creation failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not create guest account"})
	}

	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
		h.logger.Info("guest account created", "profile_id", p.ID)
	}
	return c.Status(status).JSON(fiber.Map{"success": true, "userId": p.ID, "created": created})
}

// getProfile returns the record for the currently authenticated user with the
// password hash blanked.
func (h *Handler) getProfile(c *fiber.Ctx) error {
	userID, err := GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	p, err := h.service.GetByID(userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "user not found"})
	}
	return c.JSON(sanitize(p))
}

func (h *Handler) logout(c *fiber.Ctx) error {
	userID, err := GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	for _, fn := range h.signOut {
		fn(userID)
	}
	return c.JSON(fiber.Map{"message": "signed out"})
}

func (h *Handler) listCustomers(c *fiber.Ctx) error {
	profiles, err := h.service.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(profiles)
}

func (r registerRequest) isMissingRequiredFields() bool {
	return r.Email == "" || r.Password == "" || r.FirstName == "" || r.LastName == "" || r.Phone == ""
}
