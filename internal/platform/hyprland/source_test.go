package hyprland

import (
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mj1618/desktop-launcher/internal/platform"
)

// silentSocket accepts request connections and never answers until the
// returned release func is called.
func silentSocket(t *testing.T) (dir string, accepted <-chan struct{}, release func()) {
	t.Helper()
	dir, err := os.MkdirTemp("", "hypr")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	l, err := net.Listen("unix", filepath.Join(dir, ".socket.sock"))
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })

	acc := make(chan struct{}, 1)
	conns := make(chan net.Conn, 1)
	go func() {
		conn, err := l.Accept()
		if err != nil {
			return
		}
		conns <- conn
		acc <- struct{}{}
	}()
	return dir, acc, func() {
		select {
		case conn := <-conns:
			conn.Close()
		default:
		}
	}
}

func TestSource_FocusDoesNotWaitForReply(t *testing.T) {
	dir, accepted, release := silentSocket(t)
	src := NewSource(&Client{Dir: dir}, nil)
	h := platform.NewResolvedToplevel("0x10", platform.ToplevelInfo{ID: 0x10, AppID: "firefox", Open: true}, src.focus)

	start := time.Now()
	h.Focus(platform.DefaultSeat)
	require.Less(t, time.Since(start), 500*time.Millisecond)

	select {
	case <-accepted:
	case <-time.After(2 * time.Second):
		t.Fatal("focus request never reached the socket")
	}

	flushed := make(chan struct{})
	go func() {
		src.Flush()
		close(flushed)
	}()
	select {
	case <-flushed:
		t.Fatal("Flush returned while the dispatch was still waiting")
	case <-time.After(50 * time.Millisecond):
	}

	release()
	select {
	case <-flushed:
	case <-time.After(2 * time.Second):
		t.Fatal("Flush did not return after the socket closed")
	}
}
