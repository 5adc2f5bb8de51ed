package app

import (
	"context"
	"fmt"

	"github.com/vk/modforge/internal/ctxlog"
)

// Run resolves every requested unit in order. It returns an error when any
// unit failed; already-resolved and successfully installed units are logged
// individually.
func (a *App) Run(ctx context.Context, appConfig *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if appConfig.StatsPort > 0 {
		a.startStatsServer(appConfig.StatsPort)
	}

	if len(appConfig.Units) == 0 {
		a.logger.Warn("No unit names given, nothing to resolve.")
		return nil
	}

	a.logger.Info("🚀 Resolving units...", "count", len(appConfig.Units))
	failed := 0
	for _, name := range appConfig.Units {
		unit, err := a.engine.Resolve(ctx, name)
		if err != nil {
			a.logger.Error("❌ Unit failed to resolve.", "name", name, "error", err)
			failed++
			continue
		}
		a.logger.Info("✅ Unit installed.", "name", unit.Name, "requested", name, "bytes", len(unit.Image))
	}
	a.logger.Info("🏁 Resolution finished.", "resolved", len(appConfig.Units)-failed, "failed", failed)

	a.logger.Debug("App.Run method finished.")
	if failed > 0 {
		return fmt.Errorf("%d of %d units failed to resolve", failed, len(appConfig.Units))
	}
	return nil
}
