// Package control exposes a layout manager over a unix socket using a line
// based protocol: one "command>>arg1,arg2" request per line, one response per
// line. Responses are "ok", "error: <message>" or a JSON document.
package control

import (
	"errors"
	"fmt"
	"github.com/adrg/xdg"
	"net"
	"os"
)

var (
	ErrNotRunning       = errors.New("layoutd might not be running")
	ErrRouteNotManaged  = errors.New("route not managed")
	ErrUnknownCommand   = errors.New("unknown command")
	ErrInvalidArguments = errors.New("invalid arguments")
)

const socketName = "layoutd/control.sock"

// SocketPath returns the default control socket location inside
// XDG_RUNTIME_DIR, creating the parent directory if needed.
func SocketPath() (string, error) {
	path, err := xdg.RuntimeFile(socketName)
	if err != nil {
		return "", fmt.Errorf("resolve runtime file: %w", err)
	}
	return path, nil
}

// Listen opens the control socket at path, replacing a stale socket left
// behind by a previous run.
func Listen(path string) (net.Listener, error) {
	if _, err := os.Stat(path); err == nil {
		if conn, err := net.Dial("unix", path); err == nil {
			_ = conn.Close()
			return nil, fmt.Errorf("socket %s is in use", path)
		}
		if err := os.Remove(path); err != nil {
			return nil, fmt.Errorf("remove stale socket: %w", err)
		}
	}

	l, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen: %w", err)
	}
	return l, nil
}
