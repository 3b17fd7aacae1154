package payments

import (
	"context"

	"github.com/stripe/stripe-go/v75"
	stripeclient "github.com/stripe/stripe-go/v75/client"
)

// StripeVerifier treats the reference as a Checkout Session id and confirms
// the session is paid.
type StripeVerifier struct{}

func NewStripeVerifier() *StripeVerifier {
	return &StripeVerifier{}
}

func (v *StripeVerifier) Verify(ctx context.Context, reference, secret string) (bool, error) {
	if secret == "" {
		return false, ErrMissingSecret
	}

	// A per-call client keeps the secret out of the package-level stripe.Key.
	sc := &stripeclient.API{}
	sc.Init(secret, nil)

	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	sess, err := sc.CheckoutSessions.Get(reference, params)
	if err != nil {
		return false, nil
	}

	return sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid, nil
}
