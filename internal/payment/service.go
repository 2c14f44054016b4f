package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/emberandwick/candle-shop/internal/metrics"
	"github.com/emberandwick/candle-shop/internal/order"
	"github.com/emberandwick/candle-shop/internal/profile"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount       = errors.New("amount must be greater than zero")
	ErrInvalidReceipt      = errors.New("receipt must be 1-40 characters")
	ErrInvalidSignature    = errors.New("invalid payment signature")
	ErrInvalidOrderDetails = errors.New("order details are incomplete")
	ErrAmountMismatch      = errors.New("order total does not match the amount paid")
)

const maxReceiptLen = 40

// LineItem is a cart line as sent by the checkout client.
type LineItem struct {
	ProductID int             `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type CustomerInfo struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	Pincode   string `json:"pincode"`
}

// OrderDetails is the order snapshot taken by the client when the gateway
// reported success. Total is in major units.
type OrderDetails struct {
	Items               []LineItem      `json:"items"`
	CustomerInfo        CustomerInfo    `json:"customerInfo"`
	Subtotal            decimal.Decimal `json:"subtotal"`
	DeliveryFee         decimal.Decimal `json:"deliveryFee"`
	Total               decimal.Decimal `json:"total"`
	IsGuestOrder        bool            `json:"isGuestOrder"`
	GuestAccountCreated bool            `json:"guestAccountCreated"`
}

// valid requires a positive total and at least one line, every line with a
// positive quantity and a non-negative price.
func (d OrderDetails) valid() bool {
	if len(d.Items) == 0 || !d.Total.IsPositive() {
		return false
	}
	for _, it := range d.Items {
		if it.Quantity <= 0 || it.Price.IsNegative() {
			return false
		}
	}
	return true
}

// VerifyRequest is the payment proof plus the order snapshot.
type VerifyRequest struct {
	GatewayOrderID   string       `json:"razorpay_order_id"`
	GatewayPaymentID string       `json:"razorpay_payment_id"`
	Signature        string       `json:"razorpay_signature"`
	OrderDetails     OrderDetails `json:"orderDetails"`
}

// OrderRecorder persists verified orders.
type OrderRecorder interface {
	Record(ctx context.Context, o order.Order) (order.Order, error)
}

// GuestLookup finds the guest profile created earlier in the same checkout.
type GuestLookup interface {
	FindGuest(phone, email string) (profile.Profile, error)
}

type Service struct {
	gateway  Gateway
	orders   OrderRecorder
	guests   GuestLookup
	secret   string
	currency string
	logger   *slog.Logger
	metrics  *metrics.ServerMetrics
}

func NewService(gateway Gateway, orders OrderRecorder, guests GuestLookup, keySecret, currency string, logger *slog.Logger, m *metrics.ServerMetrics) *Service {
	return &Service{
		gateway:  gateway,
		orders:   orders,
		guests:   guests,
		secret:   keySecret,
		currency: currency,
		logger:   logger,
		metrics:  m,
	}
}

// ToMinor converts a major-unit amount to integer minor units.
func ToMinor(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}

// CreateGatewayOrder opens a payment attempt for amount as given; pricing is
// the caller's responsibility.
func (s *Service) CreateGatewayOrder(ctx context.Context, amount decimal.Decimal, currency, receipt string) (GatewayOrder, error) {
	if !amount.IsPositive() || ToMinor(amount) <= 0 {
		return GatewayOrder{}, ErrInvalidAmount
	}
	receipt = strings.TrimSpace(receipt)
	if receipt == "" || len(receipt) > maxReceiptLen {
		return GatewayOrder{}, ErrInvalidReceipt
	}
	if currency == "" {
		currency = s.currency
	}

	gwOrder, err := s.gateway.CreateOrder(ctx, OrderRequest{
		Amount:   ToMinor(amount),
		Currency: strings.ToUpper(currency),
		Receipt:  receipt,
	})
	if err != nil {
		s.metrics.PaymentEvent("create_order", "error")
		s.logger.Error("gateway order creation failed", "receipt", receipt, "error", err)
		return GatewayOrder{}, err
	}

	s.metrics.PaymentEvent("create_order", "ok")
	s.logger.Info("gateway order created", "gateway_order_id", gwOrder.ID, "amount", gwOrder.Amount, "receipt", receipt)
	if gwOrder.Receipt == "" {
		gwOrder.Receipt = receipt
	}
	return gwOrder, nil
}

// VerifyAndRecord checks the payment signature and only then persists the
// order. customerID is the authenticated shopper, nil for guests.
func (s *Service) VerifyAndRecord(ctx context.Context, req VerifyRequest, customerID *int) (order.Order, error) {
	log := s.logger.With("gateway_order_id", req.GatewayOrderID, "gateway_payment_id", req.GatewayPaymentID)

	if !VerifySignature(s.secret, req.GatewayOrderID, req.GatewayPaymentID, req.Signature) {
		s.metrics.PaymentEvent("verify", "invalid_signature")
		log.Warn("payment signature rejected")
		return order.Order{}, ErrInvalidSignature
	}

	details := req.OrderDetails
	if !details.valid() {
		s.metrics.PaymentEvent("verify", "invalid_details")
		return order.Order{}, ErrInvalidOrderDetails
	}

	gwOrder, err := s.gateway.FetchOrder(ctx, req.GatewayOrderID)
	if err != nil {
		s.metrics.PaymentEvent("verify", "error")
		return order.Order{}, fmt.Errorf("fetch gateway order: %w", err)
	}
	if gwOrder.Amount != ToMinor(details.Total) {
		s.metrics.PaymentEvent("verify", "amount_mismatch")
		log.Warn("order total differs from gateway amount", "total", details.Total.String(), "gateway_amount", gwOrder.Amount)
		return order.Order{}, ErrAmountMismatch
	}

	o := s.buildOrder(req, gwOrder, customerID)
	stored, err := s.orders.Record(ctx, o)
	if err != nil {
		s.metrics.PaymentEvent("verify", "error")
		log.Error("verified payment could not be recorded", "error", err)
		return order.Order{}, err
	}

	s.metrics.PaymentEvent("verify", "ok")
	log.Info("payment verified", "order_id", stored.ID, "guest", stored.IsGuest)
	return stored, nil
}

func (s *Service) buildOrder(req VerifyRequest, gwOrder GatewayOrder, customerID *int) order.Order {
	d := req.OrderDetails
	info := d.CustomerInfo

	items := make([]order.Item, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, order.Item{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.Price,
		})
	}

	currency := gwOrder.Currency
	if currency == "" {
		currency = s.currency
	}

	o := order.Order{
		CustomerID:   customerID,
		CustomerName: strings.TrimSpace(info.FirstName + " " + info.LastName),
		Email:        profile.NormalizeEmail(info.Email),
		Phone:        profile.NormalizePhone(info.Phone),
		IsGuest:      customerID == nil,
		Items:        items,
		Subtotal:     d.Subtotal,
		DeliveryFee:  d.DeliveryFee,
		TotalAmount:  d.Total,
		Currency:     currency,
		ShippingAddress: order.Address{
			Line:    info.Address,
			City:    info.City,
			State:   info.State,
			Pincode: info.Pincode,
		},
		GatewayOrderID:   req.GatewayOrderID,
		GatewayPaymentID: req.GatewayPaymentID,
	}

	// link guest orders to the guest profile so they follow a later sign-up
	if customerID == nil && s.guests != nil {
		if g, err := s.guests.FindGuest(o.Phone, o.Email); err == nil && g.IsGuest {
			id := g.ID
			o.CustomerID = &id
		}
	}
	return o
}
