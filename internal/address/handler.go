package address

import (
	"errors"
	"strconv"

	"github.com/emberandwick/candle-shop/internal/delivery"
	"github.com/emberandwick/candle-shop/internal/profile"
	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(r fiber.Router) {
	r.Get("/api/v1/delivery-fee", h.quoteFee)
}

func (h *Handler) RegisterProtectedRoutes(r fiber.Router) {
	r.Get("/api/v1/addresses", h.getAddresses)
	r.Post("/api/v1/addresses", h.addAddress)
	r.Put("/api/v1/addresses/:id<int>", h.updateAddress)
	r.Delete("/api/v1/addresses/:id<int>", h.deleteAddress)
}

// addressView adds the delivery fee checkout would charge.
type addressView struct {
	Address
	DeliveryFee int `json:"deliveryFee"`
}

func view(a Address) addressView {
	return addressView{Address: a, DeliveryFee: a.DeliveryFee()}
}

// quoteFee mirrors the checkout page's reactive fee for a typed address.
func (h *Handler) quoteFee(c *fiber.Ctx) error {
	state, city := c.Query("state"), c.Query("city")
	return c.JSON(fiber.Map{
		"deliveryFee": delivery.Fee(state, city),
		"metro":       delivery.IsMetro(state, city),
	})
}

func (h *Handler) getAddresses(c *fiber.Ctx) error {
	userID, err := profile.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	addrs, err := h.service.List(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	out := make([]addressView, 0, len(addrs))
	for _, a := range addrs {
		out = append(out, view(a))
	}
	return c.JSON(out)
}

func (h *Handler) addAddress(c *fiber.Ctx) error {
	userID, err := profile.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	payload := new(Address)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if ves := payload.Validate(); len(ves) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": ves})
	}

	addr, err := h.service.Add(userID, *payload)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(view(addr))
}

func (h *Handler) updateAddress(c *fiber.Ctx) error {
	userID, err := profile.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid address id"})
	}
	payload := new(Address)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if ves := payload.Validate(); len(ves) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": ves})
	}

	addr, err := h.service.Update(userID, id, *payload)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(view(addr))
}

func (h *Handler) deleteAddress(c *fiber.Ctx) error {
	userID, err := profile.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid address id"})
	}
	if err := h.service.Delete(userID, id); err != nil {
		return h.writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) writeError(c *fiber.Ctx, err error) error {
	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "address not found"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
}
