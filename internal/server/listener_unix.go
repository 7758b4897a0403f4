//go:build linux || darwin

// Package server opens the listener the HTTP server accepts on.
package server

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
)

// listenFDsStart is the first descriptor systemd passes (SD_LISTEN_FDS_START).
const listenFDsStart = 3

// ErrNoActivatedSocket is returned when socket activation is requested but
// systemd passed no socket to this process.
var ErrNoActivatedSocket = errors.New("server: socket activation requested but no valid LISTEN_FDS")

// GetListener returns the socket systemd passed in when SOCKET_ACTIVATION=1,
// and listens on addr otherwise.
func GetListener(addr string) (net.Listener, error) {
	if os.Getenv("SOCKET_ACTIVATION") != "1" {
		return net.Listen("tcp", addr)
	}
	if os.Getenv("LISTEN_FDS") != "1" {
		return nil, ErrNoActivatedSocket
	}
	if pid, err := strconv.Atoi(os.Getenv("LISTEN_PID")); err != nil || pid != os.Getpid() {
		return nil, ErrNoActivatedSocket
	}
	f := os.NewFile(uintptr(listenFDsStart), "listener")
	if f == nil {
		return nil, ErrNoActivatedSocket
	}
	defer f.Close()
	ln, err := net.FileListener(f)
	if err != nil {
		return nil, fmt.Errorf("server: activated socket: %w", err)
	}
	return ln, nil
}
