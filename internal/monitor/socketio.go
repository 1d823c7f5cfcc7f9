package monitor

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"
	"time"

	"github.com/specialistvlad/gridflow/internal/ctxlog"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// DefaultEvent is the socket.io event snapshots are emitted under.
const DefaultEvent = "gridflow:tick"

// SocketIOOptions configure a SocketIOPublisher.
type SocketIOOptions struct {
	// URL is the server address; its path is used as the socket.io path.
	URL                string
	Namespace          string
	Event              string
	Timeout            time.Duration
	InsecureSkipVerify bool
}

// SocketIOPublisher emits every snapshot as one socket.io event.
type SocketIOPublisher struct {
	io    *socket.Socket
	event string
}

type target struct {
	base string
	path string
}

func parseTarget(raw string) (target, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return target{}, fmt.Errorf("failed to parse URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return target{}, fmt.Errorf("failed to parse URL: '%s' needs a scheme and a host", raw)
	}
	return target{base: fmt.Sprintf("%s://%s", u.Scheme, u.Host), path: u.Path}, nil
}

// DialSocketIO connects to the server and waits until the connection is up,
// the server refuses it, or the timeout passes.
func DialSocketIO(ctx context.Context, o SocketIOOptions) (*SocketIOPublisher, error) {
	logger := ctxlog.FromContext(ctx).With("publisher", "socketio", "url", o.URL)

	t, err := parseTarget(o.URL)
	if err != nil {
		return nil, err
	}
	if o.Event == "" {
		o.Event = DefaultEvent
	}
	if o.Namespace == "" {
		o.Namespace = "/"
	}
	if o.Timeout <= 0 {
		o.Timeout = 10 * time.Second
	}

	opts := socket.DefaultOptions()
	if t.path != "" {
		opts.SetPath(t.path)
	}
	if o.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	manager := socket.NewManager(t.base, opts)
	io := manager.Socket(o.Namespace, opts)

	done := make(chan error, 1)
	io.On(types.EventName("connect"), func(...any) {
		logger.Info("Monitor connected", "namespace", o.Namespace, "sid", io.Id())
		select {
		case done <- nil:
		default:
		}
	})
	io.On(types.EventName("connect_error"), func(args ...any) {
		err := fmt.Errorf("connect error")
		if len(args) > 0 {
			if e, ok := args[0].(error); ok {
				err = e
			}
		}
		select {
		case done <- err:
		default:
		}
	})
	io.Connect()

	dialCtx, cancel := context.WithTimeout(ctx, o.Timeout)
	defer cancel()
	select {
	case <-dialCtx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("timed out while waiting for initial connection to %s", o.URL)
	case err := <-done:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connect %s: %w", o.URL, err)
		}
	}
	return &SocketIOPublisher{io: io, event: o.Event}, nil
}

func (p *SocketIOPublisher) Publish(_ context.Context, s Snapshot) error {
	if err := p.io.Emit(p.event, s); err != nil {
		return fmt.Errorf("emit %s: %w", p.event, err)
	}
	return nil
}

func (p *SocketIOPublisher) Close() error {
	p.io.Disconnect()
	return nil
}
