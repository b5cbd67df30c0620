// Package probe polls TCP listener liveness with bounded timeouts.
package probe

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"
)

// Want is the listener state a Wait call blocks for.
type Want int

const (
	Open Want = iota
	Closed
)

func (w Want) String() string {
	if w == Open {
		return "open"
	}
	return "closed"
}

// ErrTimeout is returned when a port fails to reach the wanted state
// within the deadline.
type ErrTimeout struct {
	Addr    string
	Want    Want
	Timeout time.Duration
}

func (e *ErrTimeout) Error() string {
	return fmt.Sprintf("port %s not %s within %s", e.Addr, e.Want, e.Timeout)
}

// IsOpen reports whether a TCP listener currently accepts connections.
func IsOpen(host string, port int, timeout time.Duration) bool {
	conn, err := net.DialTimeout("tcp", net.JoinHostPort(host, strconv.Itoa(port)), timeout)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// Wait blocks until the port reaches the wanted state, polling every
// interval, or gives up after timeout. Returns ctx.Err() on cancellation,
// *ErrTimeout on deadline, nil once satisfied.
func Wait(ctx context.Context, host string, port int, want Want, timeout, interval time.Duration) error {
	addr := net.JoinHostPort(host, strconv.Itoa(port))
	deadline := time.Now().Add(timeout)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		open := IsOpen(host, port, interval)
		if (want == Open) == open {
			return nil
		}

		if time.Now().After(deadline) {
			return &ErrTimeout{Addr: addr, Want: want, Timeout: timeout}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
}
