package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/gridflow/internal/ctxlog"
	"github.com/specialistvlad/gridflow/internal/driver"
	"github.com/specialistvlad/gridflow/internal/monitor"
)

// Run builds the graph, steps it for the configured number of ticks and
// prints the watched ports once the driver stops.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.HealthcheckPort > 0 {
		if err := a.startHealthcheckServer(a.config.HealthcheckPort); err != nil {
			return err
		}
		defer a.closeHealthcheckServer()
	}

	root, err := a.Build(ctx)
	if err != nil {
		return err
	}
	a.logger.Debug("Module tree built.", "tree", root.Describe())

	watcher, err := monitor.NewWatcher(root, a.config.Watch...)
	if err != nil {
		return fmt.Errorf("invalid watch list: %w", err)
	}

	stepper := driver.New(root, driver.Options{
		Workers:    a.config.Workers,
		Interval:   a.config.Interval,
		Registerer: a.metrics,
	})
	if len(stepper.Components()) == 0 {
		a.logger.Warn("No components found in graph, execution not required.")
		return nil
	}

	if a.config.MonitorURL != "" {
		pub, err := monitor.DialSocketIO(ctx, monitor.SocketIOOptions{
			URL:   a.config.MonitorURL,
			Event: a.config.MonitorEvent,
		})
		if err != nil {
			return fmt.Errorf("failed to connect monitor: %w", err)
		}
		defer pub.Close()
		stepper.OnTick(monitor.Hook(watcher, stepper.Session(), pub))
	}

	a.logger.Info("🚀 Starting lock-step execution...", "components", len(stepper.Components()))
	if err := stepper.Run(ctx, a.config.Ticks); err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}
	a.logger.Info("🏁 Execution finished.", "ticks", stepper.Ticks())

	if watcher.Len() > 0 {
		snap := watcher.Snapshot(stepper.Session(), stepper.Ticks())
		if err := monitor.NewWriterPublisher(a.outW).Publish(ctx, snap); err != nil {
			return fmt.Errorf("failed to print watched ports: %w", err)
		}
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}
