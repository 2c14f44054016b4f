package checkout

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/emberandwick/candle-shop/internal/payment"
)

// SandboxWidget stands in for the hosted payment window in development. It
// signs a synthetic payment with the gateway secret, or reports the
// configured failure or dismissal.
type SandboxWidget struct {
	Secret      string
	Kind        OutcomeKind
	Description string

	seq atomic.Int64
}

func (w *SandboxWidget) Open(_ context.Context, order payment.GatewayOrder, _ Prefill) (Outcome, error) {
	switch w.Kind {
	case OutcomeDismissed:
		return Outcome{Kind: OutcomeDismissed}, nil
	case OutcomeFailure:
		desc := w.Description
		if desc == "" {
			desc = "Payment declined by bank"
		}
		return Outcome{Kind: OutcomeFailure, Description: desc}, nil
	}

	paymentID := fmt.Sprintf("pay_sandbox_%s_%d", order.ID, w.seq.Add(1))
	return Outcome{
		Kind: OutcomeSuccess,
		Proof: PaymentProof{
			GatewayOrderID:   order.ID,
			GatewayPaymentID: paymentID,
			Signature:        payment.Sign(w.Secret, order.ID, paymentID),
		},
	}, nil
}
