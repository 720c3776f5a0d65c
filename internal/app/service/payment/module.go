package payment

import "go.uber.org/fx"

// Module exposes the payment ledger and its background sweep via Fx.
var Module = fx.Options(
	fx.Provide(NewService),
	fx.Invoke(runSweeper),
)
