// Package payments verifies external payment references before an unlock is
// granted. Implementations must treat every ordinary negative outcome
// (provider says no, network failure, malformed response) as a false result;
// errors are reserved for configuration problems the caller cannot fix.
package payments

import (
	"context"
	"errors"
	"fmt"
)

// ErrMissingSecret indicates the server-held payment secret is not
// configured. Surfaced as failed-precondition, never as permission-denied.
var ErrMissingSecret = errors.New("payment secret key is not configured")

type Verifier interface {
	Verify(ctx context.Context, reference, secret string) (bool, error)
}

// ForProvider resolves the active verifier once at startup. The provider set
// is closed; there is no per-call string dispatch.
func ForProvider(provider, paystackBaseURL string) (Verifier, error) {
	switch provider {
	case "paystack":
		return NewPaystackVerifier(paystackBaseURL), nil
	case "stripe":
		return NewStripeVerifier(), nil
	default:
		return nil, fmt.Errorf("unknown payment provider %q", provider)
	}
}
