package paygate

import (
	"encoding/json"
	"time"
)

// Simulated is the demo provider: every call answers synchronously and no
// external service is contacted. With Fail set, Verify reports failure,
// which is how test environments exercise the failed-payment path.
type Simulated struct {
	Fail bool
}

// NewSimulated returns the default always-succeeding simulated provider.
func NewSimulated() *Simulated {
	return &Simulated{}
}

func (s *Simulated) Charge(req ChargeRequest) (*ChargeResult, error) {
	raw, _ := json.Marshal(map[string]interface{}{
		"provider":   "simulated",
		"order_id":   req.OrderID,
		"amount":     req.Amount,
		"currency":   req.Currency,
		"method":     req.Method,
		"status":     "pending",
		"created_at": time.Now().UTC().Format(time.RFC3339),
	})
	return &ChargeResult{
		RedirectURL: "https://pay.simulated.local/checkout/" + req.OrderID,
		Raw:         string(raw),
	}, nil
}

func (s *Simulated) Verify(orderID string) (*VerifyResult, error) {
	status := "settlement"
	if s.Fail {
		status = "deny"
	}
	raw, _ := json.Marshal(map[string]interface{}{
		"provider":           "simulated",
		"order_id":           orderID,
		"transaction_status": status,
	})
	return &VerifyResult{Success: !s.Fail, Raw: string(raw)}, nil
}

var _ Gateway = (*Simulated)(nil)
