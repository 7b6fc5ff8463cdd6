// Package hyprland implements the toplevel source over Hyprland's IPC
// sockets.
package hyprland

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Client talks to one Hyprland instance.
type Client struct {
	// Dir holds .socket.sock and .socket2.sock.
	Dir string
}

// SocketDir locates the IPC sockets of the running instance.
func SocketDir() (string, error) {
	sig := os.Getenv("HYPRLAND_INSTANCE_SIGNATURE")
	if sig == "" {
		return "", fmt.Errorf("HYPRLAND_INSTANCE_SIGNATURE is not set; is Hyprland running?")
	}
	if runtime := os.Getenv("XDG_RUNTIME_DIR"); runtime != "" {
		dir := filepath.Join(runtime, "hypr", sig)
		if _, err := os.Stat(dir); err == nil {
			return dir, nil
		}
	}
	return filepath.Join("/tmp", "hypr", sig), nil
}

func (c *Client) requestSocket() string { return filepath.Join(c.Dir, ".socket.sock") }

func (c *Client) eventSocket() string { return filepath.Join(c.Dir, ".socket2.sock") }

// Request sends one command and returns the full reply.
func (c *Client) Request(ctx context.Context, cmd string) ([]byte, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "unix", c.requestSocket())
	if err != nil {
		return nil, fmt.Errorf("connect to hyprland: %w", err)
	}
	defer conn.Close()
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	if _, err := io.WriteString(conn, cmd); err != nil {
		return nil, fmt.Errorf("send %q: %w", cmd, err)
	}
	reply, err := io.ReadAll(conn)
	if err != nil {
		return nil, fmt.Errorf("read reply to %q: %w", cmd, err)
	}
	return reply, nil
}

// ClientInfo is one entry of `j/clients`.
type ClientInfo struct {
	Address        string `json:"address"`
	Mapped         bool   `json:"mapped"`
	Hidden         bool   `json:"hidden"`
	Class          string `json:"class"`
	Title          string `json:"title"`
	PID            int    `json:"pid"`
	FocusHistoryID int    `json:"focusHistoryID"`
}

// Clients lists the mapped windows.
func (c *Client) Clients(ctx context.Context) ([]ClientInfo, error) {
	reply, err := c.Request(ctx, "j/clients")
	if err != nil {
		return nil, err
	}
	var clients []ClientInfo
	if err := json.Unmarshal(reply, &clients); err != nil {
		return nil, fmt.Errorf("decode clients: %w", err)
	}
	mapped := clients[:0]
	for _, cl := range clients {
		if cl.Mapped {
			mapped = append(mapped, cl)
		}
	}
	return mapped, nil
}

// Dispatch runs a hyprctl dispatcher, e.g. "focuswindow address:0x1".
func (c *Client) Dispatch(ctx context.Context, args string) error {
	reply, err := c.Request(ctx, "dispatch "+args)
	if err != nil {
		return err
	}
	if r := strings.TrimSpace(string(reply)); r != "ok" {
		return fmt.Errorf("dispatch %q: %s", args, r)
	}
	return nil
}

// Event is one line from the event socket, "name>>data".
type Event struct {
	Name string
	Data string
}

// ParseEvent splits an event line.
func ParseEvent(line string) (Event, bool) {
	name, data, ok := strings.Cut(line, ">>")
	if !ok || name == "" {
		return Event{}, false
	}
	return Event{Name: name, Data: data}, true
}

// Events connects to the event socket and returns a scanner over it.
// Closing the returned connection stops the scan.
func (c *Client) Events(ctx context.Context) (net.Conn, *bufio.Scanner, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "unix", c.eventSocket())
	if err != nil {
		return nil, nil, fmt.Errorf("connect to hyprland events: %w", err)
	}
	sc := bufio.NewScanner(conn)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return conn, sc, nil
}

// ParseAddress converts a window address such as "0x55d0f3a2b1c0" or
// "55d0f3a2b1c0" into a numeric id.
func ParseAddress(addr string) (uint64, error) {
	s := strings.TrimPrefix(strings.TrimSpace(addr), "0x")
	id, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid window address %q: %w", addr, err)
	}
	return id, nil
}

// FormatAddress is the inverse of ParseAddress.
func FormatAddress(id uint64) string {
	return "0x" + strconv.FormatUint(id, 16)
}
