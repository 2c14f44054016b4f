package payment

import (
	"errors"

	"github.com/emberandwick/candle-shop/internal/profile"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// Handler serves the two checkout payment endpoints. Their wire contract
// reports failures as {"error": ...} rather than the {"message": ...} body
// used elsewhere.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(r fiber.Router) {
	r.Post("/api/create-order", h.createOrder)
	r.Post("/api/verify-payment", h.verifyPayment)
}

type createOrderRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	Receipt  string          `json:"receipt"`
}

func (h *Handler) createOrder(c *fiber.Ctx) error {
	payload := new(createOrderRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	gwOrder, err := h.service.CreateGatewayOrder(c.UserContext(), payload.Amount, payload.Currency, payload.Receipt)
	if err != nil {
		var gwErr *GatewayError
		switch {
		case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrInvalidReceipt):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		case errors.As(err, &gwErr):
			status := fiber.StatusBadGateway
			if gwErr.StatusCode == fiber.StatusBadRequest {
				status = fiber.StatusBadRequest
			}
			return c.Status(status).JSON(fiber.Map{"error": gwErr.Message})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not create payment order"})
		}
	}

	return c.JSON(fiber.Map{
		"id":       gwOrder.ID,
		"amount":   gwOrder.Amount,
		"currency": gwOrder.Currency,
		"receipt":  gwOrder.Receipt,
	})
}

// verifyPayment is the only authority on whether a payment happened.
func (h *Handler) verifyPayment(c *fiber.Ctx) error {
	payload := new(VerifyRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"verified": false, "error": err.Error()})
	}

	var customerID *int
	if id, err := profile.GetUserIDFromCtx(c); err == nil {
		customerID = &id
	}

	stored, err := h.service.VerifyAndRecord(c.UserContext(), *payload, customerID)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidSignature), errors.Is(err, ErrInvalidOrderDetails), errors.Is(err, ErrAmountMismatch):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"verified": false, "error": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"verified": false, "error": "payment verification failed"})
		}
	}

	return c.JSON(fiber.Map{"verified": true, "order_id": stored.ID.String()})
}
