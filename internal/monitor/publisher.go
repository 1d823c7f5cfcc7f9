package monitor

import (
	"context"
	"fmt"
	"io"
)

// Publisher delivers snapshots somewhere outside the process.
type Publisher interface {
	Publish(ctx context.Context, s Snapshot) error
	Close() error
}

// WriterPublisher prints one line per watched port.
type WriterPublisher struct {
	w io.Writer
}

// NewWriterPublisher returns a Publisher writing to w.
func NewWriterPublisher(w io.Writer) *WriterPublisher {
	return &WriterPublisher{w: w}
}

func (p *WriterPublisher) Publish(_ context.Context, s Snapshot) error {
	for _, ps := range s.Ports {
		if _, err := fmt.Fprintf(p.w, "tick %d %s %v sum=%g\n", s.Tick, ps.Address, ps.Shape, ps.Sum); err != nil {
			return err
		}
	}
	return nil
}

func (p *WriterPublisher) Close() error {
	return nil
}

// Hook adapts a watcher and publishers to the driver's per-tick callback.
func Hook(w *Watcher, session string, pubs ...Publisher) func(ctx context.Context, tick uint64) error {
	return func(ctx context.Context, tick uint64) error {
		snap := w.Snapshot(session, tick)
		for _, p := range pubs {
			if err := p.Publish(ctx, snap); err != nil {
				return fmt.Errorf("publish tick %d: %w", tick, err)
			}
		}
		return nil
	}
}
