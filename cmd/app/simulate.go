package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/emberandwick/candle-shop/internal/cart"
	"github.com/emberandwick/candle-shop/internal/checkout"
	"github.com/emberandwick/candle-shop/internal/config"
	"github.com/emberandwick/candle-shop/internal/logging"
	"github.com/emberandwick/candle-shop/internal/product"
)

// logNavigator prints the redirect instead of moving a browser.
type logNavigator struct {
	logger *slog.Logger
}

func (n logNavigator) Redirect(url string, delay time.Duration) {
	n.logger.Info("redirect", "url", url, "delay", delay)
}

func simulateCmd() *cobra.Command {
	var (
		baseURL   string
		secret    string
		token     string
		outcome   string
		userAgent string
		form      checkout.Form
	)

	cmd := &cobra.Command{
		Use:   "simulate-checkout",
		Short: "Drive one checkout against a running server with a sandbox payment widget",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := logging.New(cfg.LogLevel, "text")
			if secret == "" {
				secret = cfg.Razorpay.KeySecret
			}
			if secret == "" {
				return errors.New("a gateway key secret is needed to sign sandbox payments (--secret or RAZORPAY_KEY_SECRET)")
			}

			widget := &checkout.SandboxWidget{Secret: secret}
			switch outcome {
			case "success":
			case "failure":
				widget.Kind = checkout.OutcomeFailure
			case "dismiss":
				widget.Kind = checkout.OutcomeDismissed
			default:
				return fmt.Errorf("unknown outcome %q (success, failure, dismiss)", outcome)
			}

			client := checkout.NewClient(baseURL)
			if token != "" {
				client = client.WithToken(token)
			}

			o := checkout.NewOrchestrator(client, widget, sampleCart(), logNavigator{logger: logger}, checkout.Options{
				Currency:      cfg.Currency,
				UserAgent:     userAgent,
				Authenticated: token != "",
				Logger:        logger,
			})

			res, err := o.Submit(cmd.Context(), form)
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if encErr := enc.Encode(simulationReport{
				State:          res.State.String(),
				Errors:         res.Errors,
				Alert:          res.Alert,
				GatewayOrderID: res.GatewayOrderID,
				OrderID:        res.OrderID,
				RedirectURL:    res.RedirectURL,
			}); encErr != nil {
				return encErr
			}
			return err
		},
	}

	f := cmd.Flags()
	f.StringVar(&baseURL, "base-url", "http://localhost:8080", "shop API base URL")
	f.StringVar(&secret, "secret", "", "gateway key secret used to sign the sandbox payment")
	f.StringVar(&token, "token", "", "bearer token of a signed-in customer; empty checks out as a guest")
	f.StringVar(&outcome, "outcome", "success", "widget outcome: success, failure or dismiss")
	f.StringVar(&userAgent, "user-agent", "candle-shop-cli", "user agent used to pick the redirect delay")
	f.StringVar(&form.Email, "email", "guest@example.com", "shopper email")
	f.StringVar(&form.FirstName, "first-name", "Asha", "shopper first name")
	f.StringVar(&form.LastName, "last-name", "Rao", "shopper last name")
	f.StringVar(&form.Phone, "phone", "9876543210", "10-digit mobile number")
	f.StringVar(&form.Address, "address", "12 MG Road", "street address")
	f.StringVar(&form.City, "city", "Bengaluru", "delivery city")
	f.StringVar(&form.State, "state", "Karnataka", "delivery state")
	f.StringVar(&form.Pincode, "pincode", "560001", "6-digit pincode")
	f.BoolVar(&form.AcceptTerms, "accept-terms", true, "accept the terms of service")
	f.BoolVar(&form.AcceptPrivacy, "accept-privacy", true, "accept the privacy policy")
	return cmd
}

type simulationReport struct {
	State          string            `json:"state"`
	Errors         map[string]string `json:"errors,omitempty"`
	Alert          string            `json:"alert,omitempty"`
	GatewayOrderID string            `json:"gatewayOrderId,omitempty"`
	OrderID        string            `json:"orderId,omitempty"`
	RedirectURL    string            `json:"redirectUrl,omitempty"`
}

// sampleCart fills a cart from the first two sample products. The ids match
// a freshly seeded database.
func sampleCart() *cart.Cart {
	c := cart.New()
	for i, p := range product.SampleCatalog()[:2] {
		c.Add(cart.Item{
			ProductID: i + 1,
			Name:      p.Name,
			Quantity:  1,
			UnitPrice: p.Price,
			Stock:     p.Stock,
		})
	}
	return c
}
