// Package paygate abstracts the payment processor behind a provider
// interface chosen once at startup. The core never falls back between
// providers at runtime.
package paygate

// ChargeRequest describes a charge to initiate with the provider.
type ChargeRequest struct {
	OrderID      string
	Amount       int64
	Currency     string
	Method       string
	CustomerName string
}

// ChargeResult is the provider's answer to a new charge. Raw holds the
// verbatim provider response for audit.
type ChargeResult struct {
	RedirectURL string
	Raw         string
}

// VerifyResult is the provider's authoritative view of a transaction,
// consulted when a payment notification arrives.
type VerifyResult struct {
	Success bool
	Raw     string
}

// Gateway is the pluggable payment provider.
type Gateway interface {
	Charge(req ChargeRequest) (*ChargeResult, error)
	Verify(orderID string) (*VerifyResult, error)
}
