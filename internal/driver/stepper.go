package driver

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/specialistvlad/gridflow/internal/component"
	"github.com/specialistvlad/gridflow/internal/ctxlog"
	"github.com/specialistvlad/gridflow/internal/module"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

var tracer = otel.Tracer("gridflow.driver")

// Phase names one of the three steps of a tick.
type Phase string

const (
	PhaseInput  Phase = "input"
	PhaseFire   Phase = "fire"
	PhaseOutput Phase = "output"
)

// PhaseError reports the component that failed and the phase it failed in.
type PhaseError struct {
	Phase     Phase
	Component string
	Err       error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Phase, e.Component, e.Err)
}

func (e *PhaseError) Unwrap() error {
	return e.Err
}

// TickFunc is called after every successful tick with the handles released.
type TickFunc func(ctx context.Context, tick uint64) error

// Options configure a Stepper.
type Options struct {
	// Workers bounds how many components run a phase at once. Values
	// below 1 mean 1.
	Workers int
	// Interval is the pause between ticks in Run.
	Interval time.Duration
	// Registerer receives the driver metrics. Nil keeps them private.
	Registerer prometheus.Registerer
}

// Stepper drives every component of one module tree.
type Stepper struct {
	root     *module.Module
	leaves   []module.Leaf
	workers  int
	interval time.Duration
	metrics  *metrics
	session  string
	tick     uint64
	hooks    []TickFunc
}

// New creates a Stepper for root and collects its components.
func New(root *module.Module, opts Options) *Stepper {
	reg := opts.Registerer
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	s := &Stepper{
		root:     root,
		workers:  workers,
		interval: opts.Interval,
		metrics:  newMetrics(reg),
		session:  uuid.NewString()[:12],
	}
	s.Refresh()
	return s
}

// Refresh re-collects the components after the tree changed.
func (s *Stepper) Refresh() {
	leaves := s.root.Leaves()
	sort.SliceStable(leaves, func(i, j int) bool { return leaves[i].Name() < leaves[j].Name() })
	s.leaves = leaves
	s.metrics.components.Set(float64(len(leaves)))
}

// OnTick registers fn to run after each tick.
func (s *Stepper) OnTick(fn TickFunc) {
	s.hooks = append(s.hooks, fn)
}

// Session identifies this Stepper in logs and traces.
func (s *Stepper) Session() string {
	return s.session
}

// Ticks returns the number of ticks completed so far.
func (s *Stepper) Ticks() uint64 {
	return s.tick
}

// Components lists the dotted paths of the stepped components.
func (s *Stepper) Components() []string {
	names := make([]string, len(s.leaves))
	for i, l := range s.leaves {
		names[i] = l.Name()
	}
	return names
}

// Tick runs one Input/Fire/Output cycle over all components. The first
// failure stops the tick before the next phase starts; components that
// already completed the failing phase keep its effects.
func (s *Stepper) Tick(ctx context.Context) error {
	n := s.tick + 1
	ctx, span := tracer.Start(ctx, "driver.Tick",
		trace.WithAttributes(
			attribute.String("driver.session", s.session),
			attribute.Int64("driver.tick", int64(n)),
			attribute.Int("driver.components", len(s.leaves)),
		),
	)
	defer span.End()

	if err := ctx.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "context canceled")
		return err
	}

	start := time.Now()
	if err := s.runLocked(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	s.tick = n
	s.metrics.ticks.Inc()
	s.metrics.tickDuration.Observe(time.Since(start).Seconds())

	for _, hook := range s.hooks {
		if err := hook(ctx, n); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return fmt.Errorf("tick %d hook: %w", n, err)
		}
	}
	span.SetStatus(codes.Ok, "")
	return nil
}

func (s *Stepper) runLocked(ctx context.Context) error {
	comps := make([]*component.Component, len(s.leaves))
	for i, l := range s.leaves {
		comps[i] = l.Handle.Lock()
	}
	defer func() {
		for _, l := range s.leaves {
			l.Handle.Unlock()
		}
	}()

	phases := []struct {
		name Phase
		fn   func(*component.Component) error
	}{
		{PhaseInput, func(c *component.Component) error { c.Input(); return nil }},
		{PhaseFire, (*component.Component).Fire},
		{PhaseOutput, (*component.Component).Output},
	}
	for _, p := range phases {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.runPhase(ctx, p.name, comps, p.fn); err != nil {
			return err
		}
	}
	return nil
}

func (s *Stepper) runPhase(ctx context.Context, phase Phase, comps []*component.Component, fn func(*component.Component) error) error {
	_, span := tracer.Start(ctx, "driver.phase."+string(phase))
	defer span.End()
	start := time.Now()

	g := new(errgroup.Group)
	g.SetLimit(s.workers)
	for i, c := range comps {
		name := s.leaves[i].Name()
		g.Go(func() error {
			if err := fn(c); err != nil {
				s.metrics.errors.WithLabelValues(string(phase)).Inc()
				return &PhaseError{Phase: phase, Component: name, Err: err}
			}
			return nil
		})
	}
	err := g.Wait()
	s.metrics.phaseDuration.WithLabelValues(string(phase)).Observe(time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

// Run ticks n times, or until ctx is done when n is 0, pausing for the
// configured interval between ticks. Cancellation of an unbounded run is a
// normal stop and returns nil.
func (s *Stepper) Run(ctx context.Context, n uint64) error {
	logger := ctxlog.FromContext(ctx).With("session_id", s.session)
	logger.Info("Driver started.", "components", len(s.leaves), "ticks", n, "workers", s.workers)

	for i := uint64(0); n == 0 || i < n; i++ {
		if err := s.Tick(ctx); err != nil {
			if n == 0 && errors.Is(err, context.Canceled) {
				break
			}
			logger.Error("Tick failed.", "tick", s.tick+1, "error", err)
			return fmt.Errorf("tick %d: %w", s.tick+1, err)
		}
		logger.Debug("Tick complete.", "tick", s.tick)

		if s.interval > 0 && (n == 0 || i+1 < n) {
			select {
			case <-ctx.Done():
				if n == 0 {
					logger.Info("Driver stopped.", "ticks", s.tick)
					return nil
				}
				return ctx.Err()
			case <-time.After(s.interval):
			}
		}
	}

	logger.Info("Driver finished.", "ticks", s.tick)
	return nil
}
