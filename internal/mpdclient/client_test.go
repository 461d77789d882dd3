package mpdclient

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"strings"
	"testing"
	"time"

	"rmpc/internal/events"
)

// fakeServer is a minimal MPD server: it greets, answers "status" with a
// fixed attrs block, answers "idle ..." by blocking until the test pushes
// a change line or two seconds pass. It does not read the connection
// while an idle is pending, so a "noidle" line is only handled after
// that, by queueing an empty change for the next idle.
type fakeServer struct {
	ln       net.Listener
	push     chan string
	accepted chan net.Conn
}

func startFakeServer(t *testing.T) *fakeServer {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	fs := &fakeServer{ln: ln, push: make(chan string, 8), accepted: make(chan net.Conn, 1)}
	go fs.serve(t)
	return fs
}

func (fs *fakeServer) serve(t *testing.T) {
	conn, err := fs.ln.Accept()
	if err != nil {
		return
	}
	fs.accepted <- conn
	fmt.Fprintf(conn, "OK MPD 0.23.0\n")
	r := bufio.NewReader(conn)

	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return
		}
		line = strings.TrimRight(line, "\n")

		switch {
		case line == "status":
			fmt.Fprintf(conn, "state: play\nvolume: 50\nsongid: 1\nsong: 0\nplaylistlength: 1\nOK\n")
		case line == "getvol":
			fmt.Fprintf(conn, "volume: 50\nOK\n")
		case strings.HasPrefix(line, "password "):
			fmt.Fprintf(conn, "OK\n")
		case strings.HasPrefix(line, "idle"):
			select {
			case changed := <-fs.push:
				fmt.Fprintf(conn, "changed: %s\nOK\n", changed)
			case <-time.After(2 * time.Second):
				fmt.Fprintf(conn, "OK\n")
			}
		case line == "noidle":
			// Unblock whatever idle call is pending by pushing an empty marker.
			select {
			case fs.push <- "":
			default:
			}
		}
	}
}

func (fs *fakeServer) addr() string { return fs.ln.Addr().String() }
func (fs *fakeServer) close()       { fs.ln.Close() }

func TestRunExecutesClosureAgainstLiveConnection(t *testing.T) {
	fs := startFakeServer(t)
	defer fs.close()

	c, err := New(context.Background(), "tcp", fs.addr(), "", Options{
		OnIdle: func(e events.IdleSubsystem) {},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Shutdown()

	status, err := Run(c, func(rc *rawConn) (string, error) {
		st, err := rc.Status()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%v", st.State), nil
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if status == "" {
		t.Fatal("expected a non-empty status result")
	}
}

func TestRunInterruptsIdleWithNoidle(t *testing.T) {
	fs := startFakeServer(t)
	defer fs.close()

	c, err := New(context.Background(), "tcp", fs.addr(), "", Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Shutdown()

	// The worker only enters idle after it has run a command, so run one
	// first, then give the worker time to enter idle.
	if _, err := c.GetStatus(); err != nil {
		t.Fatalf("GetStatus: %v", err)
	}
	time.Sleep(100 * time.Millisecond)

	done := make(chan struct{})
	go func() {
		_, _ = Run(c, func(rc *rawConn) (int, error) { return rc.GetVolume() })
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not complete; noidle interrupt likely failed to break the blocking idle call")
	}
}
