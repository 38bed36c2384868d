package ssh

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
)

// ErrNoPty is returned for sessions opened without a terminal.
var ErrNoPty = errors.New("session has no pty")

// DefaultTerm is used when the client sends none or one not in AllowedTerms.
const DefaultTerm = "xterm-256color"

// AllowedTerms are the TERM values accepted from clients. Anything else
// falls back to DefaultTerm so a client cannot point terminfo lookup at
// arbitrary names.
var AllowedTerms = map[string]bool{
	"xterm":                 true,
	"xterm-256color":        true,
	"xterm-color":           true,
	"screen":                true,
	"screen-256color":       true,
	"tmux":                  true,
	"tmux-256color":         true,
	"linux":                 true,
	"vt100":                 true,
	"vt220":                 true,
	"rxvt-unicode":          true,
	"rxvt-unicode-256color": true,
}

// TermFor picks the terminal type from a session's pty request, then its
// environment.
func TermFor(ptyTerm string, environ []string) string {
	term := ptyTerm
	if term == "" {
		for _, env := range environ {
			if v, ok := strings.CutPrefix(env, "TERM="); ok {
				term = v
				break
			}
		}
	}
	if !AllowedTerms[term] {
		return DefaultTerm
	}
	return term
}

// termMu serializes the TERM environment swap around screen creation.
var termMu sync.Mutex

// NewScreen creates and initializes a tcell screen drawing to s.
func NewScreen(s gossh.Session) (tcell.Screen, error) {
	pty, winCh, ok := s.Pty()
	if !ok {
		return nil, ErrNoPty
	}
	tty := NewTty(s, pty, winCh)

	// tcell reads TERM from the process environment.
	termMu.Lock()
	prev, had := os.LookupEnv("TERM")
	_ = os.Setenv("TERM", TermFor(pty.Term, s.Environ()))
	screen, err := tcell.NewTerminfoScreenFromTty(tty)
	if had {
		_ = os.Setenv("TERM", prev)
	} else {
		_ = os.Unsetenv("TERM")
	}
	termMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("terminal setup: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("screen init: %w", err)
	}
	return screen, nil
}
