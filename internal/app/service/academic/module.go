package academic

import "go.uber.org/fx"

// Module exposes the academic record aggregator via Fx.
var Module = fx.Options(
	fx.Provide(NewService),
)
