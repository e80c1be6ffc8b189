package configs

import (
	"sync"

	"go.uber.org/zap"

	"undangan.link/configs/configslog"
	"undangan.link/pkg/fieldmask"
	"undangan.link/pkg/paygate"
)

var (
	maskerOnce sync.Once
	masker     fieldmask.Masker

	gatewayOnce sync.Once
	gateway     paygate.Gateway
)

// Masker returns the process-wide field obfuscation provider, built from
// MASK_KEY. The key length selects the AES key size.
func Masker() fieldmask.Masker {
	maskerOnce.Do(func() {
		m, err := fieldmask.NewAESMasker([]byte(MaskKey()))
		if err != nil {
			configslog.Log.Fatal("field masker init failed", zap.Error(err))
		}
		masker = m
	})
	return masker
}

// SetMasker swaps the provider. Used by tests.
func SetMasker(m fieldmask.Masker) {
	maskerOnce.Do(func() {})
	masker = m
}

// PaymentGateway returns the payment provider selected by
// PAYGATE_PROVIDER. Selection happens once at startup; there is no
// runtime fallback between providers.
func PaymentGateway() paygate.Gateway {
	gatewayOnce.Do(func() {
		switch GetEnv("PAYGATE_PROVIDER", "simulated") {
		case "midtrans":
			gateway = paygate.NewMidtrans(
				GetEnv("MIDTRANS_SERVER_KEY", ""),
				GetEnv("MIDTRANS_ENV", "sandbox") == "production",
			)
			configslog.SLog.Info("payment gateway: midtrans")
		default:
			gateway = paygate.NewSimulated()
			configslog.SLog.Info("payment gateway: simulated")
		}
	})
	return gateway
}

// SetPaymentGateway swaps the provider. Used by tests.
func SetPaymentGateway(g paygate.Gateway) {
	gatewayOnce.Do(func() {})
	gateway = g
}
