package payment

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Gyanranjan-Priyam/cms-sub002/pkg/config"
)

// runSweeper starts the periodic expired-payment sweep under the fx
// lifecycle. The sweep runs independently of request handling and is safe
// to run concurrently with transitions: a payment completing just before
// a tick no longer matches the delete filter.
func runSweeper(lc fx.Lifecycle, log *zap.SugaredLogger, cfg *config.Config, ledger Ledger) {
	interval := cfg.Payment.SweepInterval
	if interval <= 0 {
		interval = time.Minute
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				ticker := time.NewTicker(interval)
				defer ticker.Stop()
				log.Infow("payment sweep started", "interval", interval.String())
				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						removed, err := ledger.SweepExpiredPayments(ctx)
						if err != nil {
							log.Errorw("payment_sweep_failed", "err", err)
							continue
						}
						if removed > 0 {
							log.Infow("payment_sweep", "removed", removed)
						}
					}
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			return nil
		},
	})
}
