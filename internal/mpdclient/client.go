// Package mpdclient implements the async idle/noidle-interleaving MPD
// client: one worker goroutine owns the connection and executes queued
// commands between blocking idle calls, while a second goroutine breaks
// the blocking idle whenever a command is waiting, mirroring the
// condvar-gated interrupter design this package is adapted from.
package mpdclient

import (
	"context"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"rmpc/internal/events"
)

var allIdleSubsystems = []string{
	"player", "mixer", "playlist", "options", "database", "update",
	"stored_playlist", "output", "partition", "sticker", "subscription",
	"message", "neighbor", "mount",
}

type job struct {
	exec func(*rawConn)
}

// shared is the condvar-gated handshake between the worker and
// interrupter goroutines: in_idle is read/written only by the worker,
// the wake flag/condvar is how the interrupter is told a command needs
// the idle call broken.
type shared struct {
	inIdle atomic.Bool

	wakeMu   sync.Mutex
	wakeCV   *sync.Cond
	wakeFlag bool
	stopped  bool
}

func newShared() *shared {
	s := &shared{}
	s.wakeCV = sync.NewCond(&s.wakeMu)
	return s
}

func (s *shared) notify() {
	s.wakeMu.Lock()
	s.wakeFlag = true
	s.wakeMu.Unlock()
	s.wakeCV.Signal()
}

func (s *shared) stop() {
	s.wakeMu.Lock()
	s.stopped = true
	s.wakeMu.Unlock()
	s.wakeCV.Signal()
}

// Client multiplexes a single MPD connection between a persistent idle
// subscription and a stream of arbitrary commands submitted through Run.
type Client struct {
	network, addr, password string

	onIdle        func(events.IdleSubsystem)
	onLostConn    func(error)
	onReconnected func()

	tx     chan job
	shared *shared

	mu        sync.Mutex
	closed    bool
	supportsGetVol bool
}

// Options configures callbacks the worker invokes as connection state
// changes; all are optional.
type Options struct {
	OnIdle        func(events.IdleSubsystem)
	OnLostConn    func(error)
	OnReconnected func()
}

// New dials network/addr, authenticates with password if non-empty, and
// starts the worker and interrupter goroutines.
func New(ctx context.Context, network, addr, password string, opts Options) (*Client, error) {
	c := &Client{
		network: network, addr: addr, password: password,
		onIdle: opts.OnIdle, onLostConn: opts.OnLostConn, onReconnected: opts.OnReconnected,
		tx:     make(chan job, 64),
		shared: newShared(),
	}

	conn, interrupt, err := c.dialAndPrepare()
	if err != nil {
		return nil, err
	}

	go spawnInterrupter(c.shared, interrupt)
	go c.workerLoop(conn)
	return c, nil
}

func (c *Client) dialAndPrepare() (*rawConn, net.Conn, error) {
	conn, err := dialRaw(c.network, c.addr)
	if err != nil {
		return nil, nil, err
	}
	if err := conn.authenticate(c.password); err != nil {
		conn.Close()
		return nil, nil, err
	}
	if _, err := conn.GetVolume(); err == nil {
		c.supportsGetVol = true
	}

	interrupt, err := conn.dupInterruptWriter()
	if err != nil {
		conn.Close()
		return nil, nil, err
	}
	return conn, interrupt, nil
}

func spawnInterrupter(s *shared, interrupt net.Conn) {
	defer interrupt.Close()
	for {
		s.wakeMu.Lock()
		for !s.wakeFlag && !s.stopped {
			s.wakeCV.Wait()
		}
		if s.stopped {
			s.wakeMu.Unlock()
			return
		}
		s.wakeFlag = false
		s.wakeMu.Unlock()

		if s.inIdle.Load() {
			_ = noIdleOn(interrupt)
		}
	}
}

func (c *Client) workerLoop(conn *rawConn) {
	for {
		first, ok := <-c.tx
		if !ok {
			conn.Close()
			return
		}
		conn = c.runJob(conn, first)

	drain:
		for {
			select {
			case j, ok := <-c.tx:
				if !ok {
					conn.Close()
					return
				}
				conn = c.runJob(conn, j)
			default:
				break drain
			}
		}

		c.shared.inIdle.Store(true)
		changes, err := conn.Idle(allIdleSubsystems...)
		c.shared.inIdle.Store(false)

		if err != nil {
			conn = c.reconnect(conn)
			continue
		}
		for _, name := range changes {
			if sub, ok := events.ParseSubsystem(name); ok && c.onIdle != nil {
				c.onIdle(sub)
			}
		}
	}
}

func (c *Client) runJob(conn *rawConn, j job) *rawConn {
	if conn == nil {
		conn = c.reconnect(nil)
	}
	j.exec(conn)
	return conn
}

// reconnect retries with exponential backoff (capped at 30s) until a new
// connection succeeds, surfacing LostConnection once and Reconnected on
// success, per the failure semantics of the component this mirrors.
func (c *Client) reconnect(old *rawConn) *rawConn {
	if old != nil {
		old.Close()
	}
	if c.onLostConn != nil {
		c.onLostConn(fmt.Errorf("mpdclient: connection lost"))
	}

	backoff := 500 * time.Millisecond
	const maxBackoff = 30 * time.Second
	for {
		conn, interrupt, err := c.dialAndPrepare()
		if err == nil {
			if c.onReconnected != nil {
				c.onReconnected()
			}
			go spawnInterrupter(c.shared, interrupt)
			return conn
		}
		time.Sleep(backoff)
		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
}

// Shutdown drains any queued commands and stops the worker and
// interrupter goroutines.
func (c *Client) Shutdown() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()

	c.shared.notify()
	c.shared.stop()
	close(c.tx)
}

// SupportsGetVol reports whether the connected server understands the
// getvol command, used to pick the Mixer idle-event query per the idle
// event translation table.
func (c *Client) SupportsGetVol() bool { return c.supportsGetVol }

func (c *Client) submit(exec func(*rawConn)) {
	c.shared.notify()
	c.tx <- job{exec: exec}
}

type result[T any] struct {
	value T
	err   error
}

// Run enqueues fn to execute with the live connection and blocks until
// it completes. May be called from any goroutine.
func Run[T any](c *Client, fn func(*rawConn) (T, error)) (T, error) {
	done := make(chan result[T], 1)
	c.submit(func(rc *rawConn) {
		v, err := fn(rc)
		done <- result[T]{value: v, err: err}
	})
	r := <-done
	return r.value, r.err
}

// RunVoid is Run for closures with no useful return value.
func RunVoid(c *Client, fn func(*rawConn) error) error {
	_, err := Run(c, func(rc *rawConn) (struct{}, error) {
		return struct{}{}, fn(rc)
	})
	return err
}
