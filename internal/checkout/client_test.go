package checkout

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/emberandwick/candle-shop/internal/events"
	"github.com/emberandwick/candle-shop/internal/order"
	"github.com/emberandwick/candle-shop/internal/payment"
	"github.com/emberandwick/candle-shop/internal/profile"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	gatewaySecret = "rzp_e2e_secret"
	jwtSecret     = "jwt-e2e-secret"
)

// memGateway plays the gateway's REST side for end-to-end tests.
type memGateway struct {
	mu     sync.Mutex
	orders map[string]payment.GatewayOrder
}

func (g *memGateway) CreateOrder(_ context.Context, req payment.OrderRequest) (payment.GatewayOrder, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	o := payment.GatewayOrder{ID: fmt.Sprintf("order_E2E%d", len(g.orders)+1), Amount: req.Amount, Currency: req.Currency, Receipt: req.Receipt, Status: "created"}
	g.orders[o.ID] = o
	return o, nil
}

func (g *memGateway) FetchOrder(_ context.Context, id string) (payment.GatewayOrder, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	o, ok := g.orders[id]
	if !ok {
		return payment.GatewayOrder{}, &payment.GatewayError{StatusCode: 400, Message: "order not found"}
	}
	return o, nil
}

type shop struct {
	url      string
	gateway  *memGateway
	orders   *order.InMemoryRepository
	profiles *profile.Service
}

func startShop(t *testing.T) *shop {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	gw := &memGateway{orders: map[string]payment.GatewayOrder{}}
	orderRepo := order.NewInMemoryRepository(nil)
	profiles := profile.NewService(profile.NewInMemoryRepository(nil))
	orders := order.NewService(orderRepo, &events.Recorder{}, logger)
	payments := payment.NewService(gw, orders, profiles, gatewaySecret, "INR", logger, nil)

	app := fiber.New()
	app.Use(profile.OptionalAuth(jwtSecret))
	profile.NewHandler(profiles, jwtSecret, logger).RegisterPublicRoutes(app)
	payment.NewHandler(payments).RegisterPublicRoutes(app)

	srv := httptest.NewServer(adaptor.FiberApp(app))
	t.Cleanup(srv.Close)
	return &shop{url: srv.URL, gateway: gw, orders: orderRepo, profiles: profiles}
}

func (s *shop) persisted(t *testing.T) []order.Order {
	t.Helper()
	all, err := s.orders.List("")
	require.NoError(t, err)
	return all
}

// Scenario A.
func TestEndToEnd_DelhiGuestCheckout(t *testing.T) {
	s := startShop(t)
	c := thousandRupeeCart()
	nav := &recordingNav{}
	o := newOrchestrator(NewClient(s.url), &SandboxWidget{Secret: gatewaySecret}, c, nav, Options{})

	res, err := o.Submit(context.Background(), validForm())
	require.NoError(t, err)

	stored := s.persisted(t)
	require.Len(t, stored, 1)
	assert.True(t, decimal.NewFromInt(1099).Equal(stored[0].TotalAmount))
	assert.Equal(t, order.StatusConfirmed, stored[0].Status)
	assert.Equal(t, stored[0].ID.String(), res.OrderID)
	assert.Equal(t, res.GatewayOrderID, stored[0].GatewayOrderID)
	assert.True(t, stored[0].IsGuest)

	guest, err := s.profiles.FindGuest("9876543210", "asha@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored[0].CustomerID)
	assert.Equal(t, guest.ID, *stored[0].CustomerID)

	assert.True(t, c.IsEmpty())
	assert.Equal(t, SuccessURL(stored[0].GatewayPaymentID, stored[0].ID.String(), 109900, true), nav.url)
}

// Scenario B.
func TestEndToEnd_GreaterNoidaStandardFee(t *testing.T) {
	s := startShop(t)
	f := validForm()
	f.State, f.City = "Uttar Pradesh", "Greater Noida"

	o := newOrchestrator(NewClient(s.url), &SandboxWidget{Secret: gatewaySecret}, thousandRupeeCart(), &recordingNav{}, Options{})
	res, err := o.Submit(context.Background(), f)
	require.NoError(t, err)

	gw := s.gateway.orders[res.GatewayOrderID]
	assert.Equal(t, int64(119900), gw.Amount)
	stored := s.persisted(t)
	require.Len(t, stored, 1)
	assert.True(t, decimal.NewFromInt(1199).Equal(stored[0].TotalAmount))
	assert.True(t, decimal.NewFromInt(199).Equal(stored[0].DeliveryFee))
}

func TestEndToEnd_ForgedSignatureRejected(t *testing.T) {
	s := startShop(t)
	c := thousandRupeeCart()
	o := newOrchestrator(NewClient(s.url), &SandboxWidget{Secret: "forged"}, c, &recordingNav{}, Options{})

	for i := 0; i < 2; i++ {
		_, err := o.Submit(context.Background(), validForm())
		assert.ErrorIs(t, err, ErrVerificationFailed)
	}
	assert.Empty(t, s.persisted(t))
	assert.Len(t, c.Items(), 2)
	assert.Equal(t, 3, c.Count())
	assert.True(t, decimal.NewFromInt(1000).Equal(c.Subtotal()))
}

func TestEndToEnd_SignedInCustomer(t *testing.T) {
	s := startShop(t)
	member, err := s.profiles.Register(profile.Profile{
		Email: "meera@example.com", Password: "wickwick1", FirstName: "Meera", LastName: "Iyer", Phone: "9123456780",
	})
	require.NoError(t, err)
	token, err := profile.IssueToken(jwtSecret, member, time.Now())
	require.NoError(t, err)

	f := validForm()
	f.Email, f.Phone = member.Email, member.Phone
	nav := &recordingNav{}
	o := newOrchestrator(NewClient(s.url).WithToken(token), &SandboxWidget{Secret: gatewaySecret}, thousandRupeeCart(), nav, Options{Authenticated: true})

	_, err = o.Submit(context.Background(), f)
	require.NoError(t, err)

	stored := s.persisted(t)
	require.Len(t, stored, 1)
	assert.False(t, stored[0].IsGuest)
	assert.True(t, stored[0].OwnedBy(member.ID))
	assert.NotContains(t, nav.url, "guest=true")
}

func TestClient_CreateOrderError(t *testing.T) {
	s := startShop(t)
	_, err := NewClient(s.url).CreateOrder(context.Background(), decimal.Zero, "INR", "rcpt")
	require.Error(t, err)
	assert.True(t, IsAPIError(err, 400))
	assert.Equal(t, payment.ErrInvalidAmount.Error(), err.Error())
}

func TestClient_GuestAccountBadInput(t *testing.T) {
	s := startShop(t)
	err := NewClient(s.url).CreateGuestAccount(context.Background(), profile.GuestRequest{})
	assert.True(t, IsAPIError(err, 400))
}
