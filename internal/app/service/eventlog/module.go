package eventlog

import "go.uber.org/fx"

// Module exposes the gateway event log service via Fx.
var Module = fx.Options(
	fx.Provide(New),
)
