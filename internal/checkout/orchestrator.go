package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/emberandwick/candle-shop/internal/cart"
	"github.com/emberandwick/candle-shop/internal/delivery"
	"github.com/emberandwick/candle-shop/internal/payment"
	"github.com/emberandwick/candle-shop/internal/profile"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrValidation         = errors.New("checkout form is invalid")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInFlight           = errors.New("a payment is already in progress")
	ErrPaymentDismissed   = errors.New("payment window closed")
	ErrPaymentFailed      = errors.New("payment failed")
	ErrVerificationFailed = errors.New("payment verification failed")
)

// VerifyResult is the verification service's answer.
type VerifyResult struct {
	Verified bool   `json:"verified"`
	OrderID  string `json:"order_id,omitempty"`
	Error    string `json:"error,omitempty"`
}

// API is the server side of checkout.
type API interface {
	CreateOrder(ctx context.Context, amount decimal.Decimal, currency, receipt string) (payment.GatewayOrder, error)
	CreateGuestAccount(ctx context.Context, req profile.GuestRequest) error
	VerifyPayment(ctx context.Context, req payment.VerifyRequest) (VerifyResult, error)
}

// PaymentProof is what the widget hands back on success.
type PaymentProof struct {
	GatewayOrderID   string
	GatewayPaymentID string
	Signature        string
}

type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeFailure
	OutcomeDismissed
)

// Outcome is one of the three widget callbacks.
type Outcome struct {
	Kind        OutcomeKind
	Proof       PaymentProof
	Description string
}

// Prefill is the contact info shown in the widget.
type Prefill struct {
	Name    string
	Email   string
	Contact string
}

// Widget opens the gateway's hosted payment window and blocks until the
// shopper completes, fails or dismisses it.
type Widget interface {
	Open(ctx context.Context, order payment.GatewayOrder, prefill Prefill) (Outcome, error)
}

// Cart is the session cart being checked out.
type Cart interface {
	Items() []cart.Item
	Subtotal() decimal.Decimal
	IsEmpty() bool
	Clear()
}

// Navigator performs the final redirect after delay.
type Navigator interface {
	Redirect(url string, delay time.Duration)
}

type Options struct {
	Currency      string
	UserAgent     string
	Authenticated bool
	Logger        *slog.Logger
	// NewReceipt mints the receipt for one attempt; defaults to a uuid.
	NewReceipt func() string
}

// Result describes where a Submit call left the shopper.
type Result struct {
	State          State
	Errors         FieldErrors
	Alert          string
	GatewayOrderID string
	OrderID        string
	RedirectURL    string
}

type Orchestrator struct {
	api    API
	widget Widget
	cart   Cart
	nav    Navigator
	opts   Options
	logger *slog.Logger

	mu       sync.Mutex
	state    State
	inFlight bool
}

func NewOrchestrator(api API, widget Widget, c Cart, nav Navigator, opts Options) *Orchestrator {
	if opts.Currency == "" {
		opts.Currency = "INR"
	}
	if opts.NewReceipt == nil {
		opts.NewReceipt = uuid.NewString
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{api: api, widget: widget, cart: c, nav: nav, opts: opts, logger: logger}
}

func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// InFlight reports whether a payment attempt is between order creation and
// its final outcome.
func (o *Orchestrator) InFlight() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.inFlight
}

// ShouldRedirectToCart decides whether the empty-cart redirect may fire. It
// never does during a payment or on the success page.
func (o *Orchestrator) ShouldRedirectToCart(path, rawQuery string, cartEmpty bool) bool {
	if !cartEmpty || o.InFlight() {
		return false
	}
	return !onSuccessPage(path, rawQuery)
}

func (o *Orchestrator) DeliveryFee(f Form) decimal.Decimal {
	return decimal.NewFromInt(int64(delivery.Fee(f.State, f.City)))
}

func (o *Orchestrator) Total(f Form) decimal.Decimal {
	return o.cart.Subtotal().Add(o.DeliveryFee(f))
}

func (o *Orchestrator) setState(s State) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
}

// reset returns to form entry and clears the in-flight guard.
func (o *Orchestrator) reset() {
	o.mu.Lock()
	o.state = FormEntry
	o.inFlight = false
	o.mu.Unlock()
}

// begin claims the in-flight guard for one attempt.
func (o *Orchestrator) begin() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.inFlight {
		return false
	}
	o.inFlight = true
	o.state = Validating
	return true
}

// Submit runs one checkout attempt from validation to redirect. Every
// failure leaves the cart untouched and the shopper on the form.
func (o *Orchestrator) Submit(ctx context.Context, f Form) (Result, error) {
	if !o.begin() {
		return Result{State: o.State(), Alert: ErrInFlight.Error()}, ErrInFlight
	}

	if errs := f.Validate(); len(errs) > 0 {
		o.reset()
		return Result{State: FormEntry, Errors: errs}, ErrValidation
	}
	if o.cart.IsEmpty() {
		o.reset()
		return Result{State: FormEntry, Alert: "Your cart is empty"}, ErrEmptyCart
	}

	subtotal := o.cart.Subtotal()
	fee := o.DeliveryFee(f)
	total := subtotal.Add(fee)
	receipt := o.opts.NewReceipt()

	o.setState(CreatingGatewayOrder)
	gwOrder, err := o.api.CreateOrder(ctx, total, o.opts.Currency, receipt)
	if err != nil {
		o.reset()
		o.logger.Error("gateway order creation failed", "receipt", receipt, "error", err)
		return Result{State: FormEntry, Alert: "Could not start payment: " + err.Error()}, fmt.Errorf("create gateway order: %w", err)
	}
	log := o.logger.With("gateway_order_id", gwOrder.ID, "receipt", receipt)

	o.setState(AwaitingGatewayWidget)
	outcome, err := o.widget.Open(ctx, gwOrder, Prefill{
		Name:    f.FullName(),
		Email:   f.Email,
		Contact: f.Phone,
	})
	if err != nil {
		o.reset()
		log.Error("payment widget error", "error", err)
		return Result{State: FormEntry, Alert: err.Error(), GatewayOrderID: gwOrder.ID}, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}

	switch outcome.Kind {
	case OutcomeDismissed:
		o.reset()
		log.Info("payment window dismissed")
		return Result{State: FormEntry, GatewayOrderID: gwOrder.ID}, ErrPaymentDismissed
	case OutcomeFailure:
		o.reset()
		log.Warn("payment failed at gateway", "description", outcome.Description)
		return Result{State: FormEntry, Alert: outcome.Description, GatewayOrderID: gwOrder.ID}, ErrPaymentFailed
	}

	o.setState(Reconciling)
	proof := outcome.Proof
	guest := !o.opts.Authenticated

	guestCreated := false
	if guest {
		err := o.api.CreateGuestAccount(ctx, profile.GuestRequest{
			Phone:     f.Phone,
			Email:     f.Email,
			FirstName: f.FirstName,
			LastName:  f.LastName,
		})
		if err != nil {
			log.Warn("guest account creation failed, continuing", "error", err)
		} else {
			guestCreated = true
		}
	}

	res, err := o.api.VerifyPayment(ctx, payment.VerifyRequest{
		GatewayOrderID:   proof.GatewayOrderID,
		GatewayPaymentID: proof.GatewayPaymentID,
		Signature:        proof.Signature,
		OrderDetails: payment.OrderDetails{
			Items:               lineItems(o.cart.Items()),
			CustomerInfo:        customerInfo(f),
			Subtotal:            subtotal,
			DeliveryFee:         fee,
			Total:               total,
			IsGuestOrder:        guest,
			GuestAccountCreated: guestCreated,
		},
	})
	if err == nil && !res.Verified {
		err = errors.New(res.Error)
		if res.Error == "" {
			err = errors.New("payment was not verified")
		}
	}
	if err != nil {
		o.reset()
		log.Error("payment verification failed", "gateway_payment_id", proof.GatewayPaymentID, "error", err)
		return Result{State: FormEntry, Alert: "Payment verification failed: " + err.Error(), GatewayOrderID: gwOrder.ID},
			fmt.Errorf("%w: %v", ErrVerificationFailed, err)
	}

	o.cart.Clear()
	o.setState(Completed)

	redirect := SuccessURL(proof.GatewayPaymentID, res.OrderID, payment.ToMinor(total), guest)
	log.Info("checkout completed", "order_id", res.OrderID, "gateway_payment_id", proof.GatewayPaymentID)
	o.nav.Redirect(redirect, RedirectDelay(o.opts.UserAgent))

	o.mu.Lock()
	o.inFlight = false
	o.mu.Unlock()

	return Result{
		State:          Completed,
		GatewayOrderID: gwOrder.ID,
		OrderID:        res.OrderID,
		RedirectURL:    redirect,
	}, nil
}

func lineItems(items []cart.Item) []payment.LineItem {
	out := make([]payment.LineItem, 0, len(items))
	for _, it := range items {
		out = append(out, payment.LineItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			Price:     it.UnitPrice,
		})
	}
	return out
}

func customerInfo(f Form) payment.CustomerInfo {
	return payment.CustomerInfo{
		Email:     f.Email,
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Phone:     f.Phone,
		Address:   f.Address,
		City:      f.City,
		State:     f.State,
		Pincode:   f.Pincode,
	}
}
