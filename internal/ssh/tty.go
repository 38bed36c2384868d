// Package ssh adapts gliderlabs/ssh sessions to tcell screens so each
// connection can run its own map viewer.
package ssh

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
)

// Tty implements tcell.Tty on top of one SSH session.
type Tty struct {
	session gossh.Session
	mu      sync.Mutex
	window  gossh.Window
	winCh   <-chan gossh.Window
	onSize  func()
	started bool
}

// NewTty wraps s. pty holds the initial window size and winCh delivers
// later window changes.
func NewTty(s gossh.Session, pty gossh.Pty, winCh <-chan gossh.Window) *Tty {
	return &Tty{session: s, window: pty.Window, winCh: winCh}
}

// Read returns keyboard input from the client.
func (t *Tty) Read(b []byte) (int, error) { return t.session.Read(b) }

// Write sends screen output to the client.
func (t *Tty) Write(b []byte) (int, error) { return t.session.Write(b) }

// Close ends the session.
func (t *Tty) Close() error { return t.session.Close() }

// Start, Stop and Drain have nothing to do: the channel is opened and closed
// by the server and writes are not buffered.
func (t *Tty) Start() error { return nil }

func (t *Tty) Stop() error { return nil }

func (t *Tty) Drain() error { return nil }

// WindowSize returns the client's terminal size.
func (t *Tty) WindowSize() (tcell.WindowSize, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return tcell.WindowSize{Width: t.window.Width, Height: t.window.Height}, nil
}

// NotifyResize registers cb for window changes. The first call starts a
// goroutine that follows the window channel until the session closes it.
func (t *Tty) NotifyResize(cb func()) {
	t.mu.Lock()
	t.onSize = cb
	start := !t.started && t.winCh != nil
	t.started = true
	t.mu.Unlock()
	if start {
		go t.follow()
	}
}

func (t *Tty) follow() {
	for win := range t.winCh {
		t.mu.Lock()
		t.window = win
		cb := t.onSize
		t.mu.Unlock()
		if cb != nil {
			cb()
		}
	}
}
