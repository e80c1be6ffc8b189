package paygate

import (
	"encoding/json"
	"errors"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"
)

// Midtrans is the real provider. Charges go through Snap (hosted payment
// page), notifications are verified against the Core API instead of
// trusting the webhook payload.
type Midtrans struct {
	snapClient snap.Client
	coreClient coreapi.Client
}

// NewMidtrans builds sandbox clients from the server key. Production
// deployments switch the environment via MIDTRANS_ENV.
func NewMidtrans(serverKey string, production bool) *Midtrans {
	env := midtrans.Sandbox
	if production {
		env = midtrans.Production
	}

	var s snap.Client
	s.New(serverKey, env)

	var c coreapi.Client
	c.New(serverKey, env)

	return &Midtrans{snapClient: s, coreClient: c}
}

func (m *Midtrans) Charge(req ChargeRequest) (*ChargeResult, error) {
	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  req.OrderID,
			GrossAmt: req.Amount,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: req.CustomerName,
		},
	}

	resp, err := m.snapClient.CreateTransaction(snapReq)
	if resp == nil {
		if err != nil {
			return nil, err
		}
		return nil, errors.New("paygate: empty response from midtrans snap")
	}

	raw, _ := json.Marshal(resp)
	return &ChargeResult{RedirectURL: resp.RedirectURL, Raw: string(raw)}, nil
}

func (m *Midtrans) Verify(orderID string) (*VerifyResult, error) {
	resp, err := m.coreClient.CheckTransaction(orderID)
	if resp == nil {
		if err != nil {
			return nil, err
		}
		return nil, errors.New("paygate: empty response from midtrans core api")
	}

	// settlement/capture are the settled states, everything else is not a
	// completed payment.
	success := resp.TransactionStatus == "settlement" || resp.TransactionStatus == "capture"
	raw, _ := json.Marshal(resp)
	return &VerifyResult{Success: success, Raw: string(raw)}, nil
}

var _ Gateway = (*Midtrans)(nil)
