package directory

import "go.uber.org/fx"

// Module exposes the directory service via Fx.
var Module = fx.Options(
	fx.Provide(New),
)
