package gateway

import (
	"go.uber.org/fx"

	"github.com/Gyanranjan-Priyam/cms-sub002/pkg/config"
)

// NewClients builds the configured gateway clients. Credentials come from
// the explicit config struct handed in at startup, never from ambient
// environment lookups.
func NewClients(cfg *config.Config) []Client {
	return []Client{
		NewMidtransClient(cfg.Midtrans),
		NewRazorpayClient(cfg.Razorpay),
	}
}

var Module = fx.Options(
	fx.Provide(NewClients),
)
