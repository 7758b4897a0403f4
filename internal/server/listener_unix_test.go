//go:build linux || darwin

package server

import (
	"errors"
	"strconv"
	"testing"
)

func TestGetListener_PlainTCP(t *testing.T) {
	t.Setenv("SOCKET_ACTIVATION", "")
	ln, err := GetListener("127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()
	if ln.Addr().Network() != "tcp" {
		t.Fatalf("network %s", ln.Addr().Network())
	}
}

func TestGetListener_ActivationWithoutSocket(t *testing.T) {
	t.Setenv("SOCKET_ACTIVATION", "1")
	t.Setenv("LISTEN_FDS", "")
	if _, err := GetListener(":0"); !errors.Is(err, ErrNoActivatedSocket) {
		t.Fatalf("expected ErrNoActivatedSocket, got %v", err)
	}

	t.Setenv("LISTEN_FDS", "1")
	t.Setenv("LISTEN_PID", strconv.Itoa(1<<30))
	if _, err := GetListener(":0"); !errors.Is(err, ErrNoActivatedSocket) {
		t.Fatalf("foreign pid: expected ErrNoActivatedSocket, got %v", err)
	}
}
