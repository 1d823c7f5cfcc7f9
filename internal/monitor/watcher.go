package monitor

import (
	"fmt"

	"github.com/specialistvlad/gridflow/internal/address"
	"github.com/specialistvlad/gridflow/internal/module"
	"github.com/specialistvlad/gridflow/internal/port"
)

// PortSnapshot is the value of one watched port at the end of a tick.
type PortSnapshot struct {
	Address   string    `json:"address"`
	Direction string    `json:"direction"`
	Shape     []int     `json:"shape"`
	Sum       float64   `json:"sum"`
	Values    []float64 `json:"values"`
}

// Snapshot groups the watched ports of one tick.
type Snapshot struct {
	Session string         `json:"session"`
	Tick    uint64         `json:"tick"`
	Ports   []PortSnapshot `json:"ports"`
}

type watched struct {
	addr address.Address
	port *port.Port
	dir  port.Direction
}

// Watcher resolves a fixed set of port addresses once and reads them on
// demand.
type Watcher struct {
	ports []watched
}

// NewWatcher resolves every raw address against root. An address that does
// not parse or does not name a port is an error.
func NewWatcher(root *module.Module, raw ...string) (*Watcher, error) {
	w := &Watcher{}
	for _, r := range raw {
		addr, err := address.Parse(r)
		if err != nil {
			return nil, fmt.Errorf("watch '%s': %w", r, err)
		}
		p, dir, err := root.Port(addr)
		if err != nil {
			return nil, fmt.Errorf("watch '%s': %w", r, err)
		}
		w.ports = append(w.ports, watched{addr: addr, port: p, dir: dir})
	}
	return w, nil
}

// Len returns the number of watched ports.
func (w *Watcher) Len() int {
	return len(w.ports)
}

// Snapshot reads every watched port. Ports keep the order they were given
// to NewWatcher.
func (w *Watcher) Snapshot(session string, tick uint64) Snapshot {
	s := Snapshot{Session: session, Tick: tick, Ports: make([]PortSnapshot, 0, len(w.ports))}
	for _, wp := range w.ports {
		v := wp.port.Read()
		s.Ports = append(s.Ports, PortSnapshot{
			Address:   wp.addr.String(),
			Direction: wp.dir.String(),
			Shape:     v.Shape().Dims(),
			Sum:       v.Sum(),
			Values:    v.Float64s(),
		})
	}
	return s
}
