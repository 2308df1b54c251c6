// Package payments wraps the external payment provider behind a small
// interface. The core only asks for a client-usable payment-initiation
// secret; the provider owns the payment state machine.
package payments

import "context"

// Intent is the result of initiating a payment with the provider
type Intent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

// Provider initiates payments with an external processor
type Provider interface {
	// CreateIntent asks the provider for a payment intent over the given
	// amount (smallest currency unit) and returns its client secret
	CreateIntent(ctx context.Context, amount int64, currency string) (*Intent, error)
}
