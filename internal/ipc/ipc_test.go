package ipc

import (
	"os"
	"path/filepath"
	"testing"
)

func TestServerRoundTripOK(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rmpc-test.sock")

	srv, err := Listen(path, func(cmd Command) ([]string, error) {
		if cmd.StatusMessage == nil {
			t.Fatalf("expected StatusMessage command, got %+v", cmd)
		}
		return []string{"received: " + cmd.StatusMessage.Message}, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	defer srv.Close()
	go srv.Serve()

	payload, err := Send(path, Command{StatusMessage: &StatusMessageCommand{Message: "hello", Level: "Info"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(payload) != 1 || payload[0] != "received: hello" {
		t.Fatalf("unexpected payload: %v", payload)
	}
}

func TestServerErrorResponse(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rmpc-test.sock")

	srv, err := Listen(path, func(Command) ([]string, error) {
		return nil, errString("boom")
	})
	if err != nil {
		t.Fatal(err)
	}
	defer srv.Close()
	go srv.Serve()

	_, err = Send(path, Command{TmuxHook: &TmuxHookCommand{Hook: "client-attached"}})
	if err == nil || err.Error() != "boom" {
		t.Fatalf("expected error 'boom', got %v", err)
	}
}

type errString string

func (e errString) Error() string { return string(e) }

func TestSocketPathUsesTmpDir(t *testing.T) {
	p := SocketPath(1234)
	if p != filepath.Join(os.TempDir(), "rmpc-1234.sock") {
		t.Fatalf("unexpected socket path: %s", p)
	}
}
