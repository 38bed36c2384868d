// mapforge-server serves the map viewer over SSH. Every connection gets its
// own map, generated and animated live. Build:
//
//	go build -o mapforge-server ./cmd/server
//
// Usage:
//
//	./mapforge-server [-port 2222] [-key server_host_key] [-preset dungeon]
//
// Connect with:
//
//	ssh -t -p 2222 localhost
package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"flag"
	"fmt"
	"log/slog"
	mathrand "math/rand"
	"os"
	"strings"
	"sync"
	"time"
	"unicode"

	"mapforge/internal/blueprint"
	"mapforge/internal/config"
	"mapforge/internal/pipeline"
	"mapforge/internal/render"
	internalssh "mapforge/internal/ssh"
	"mapforge/internal/viewer"

	gossh "github.com/gliderlabs/ssh"
	xssh "golang.org/x/crypto/ssh"
)

func main() {
	var f config.Flags
	f.Register(flag.CommandLine)
	port := flag.Int("port", 2222, "SSH server port")
	keyFile := flag.String("key", "server_host_key", "path to the PEM-encoded host key (generated if absent)")
	delay := flag.Duration("delay", viewer.DefaultDelay, "time between animation steps")
	flag.Parse()

	log := config.NewLogger(os.Stderr, f.Verbose)
	if err := serve(&f, *port, *keyFile, *delay, log); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func serve(f *config.Flags, port int, keyFile string, delay time.Duration, log *slog.Logger) error {
	bp, lore, err := f.LoadBlueprint()
	if err != nil {
		return err
	}
	theme, err := f.ViewTheme()
	if err != nil {
		return err
	}
	// Fail at startup rather than in every session.
	startRunner := f.Runner(log)
	if _, err := startRunner.Start(bp, 1); err != nil {
		return err
	}
	signer, err := loadOrCreateHostKey(keyFile, log)
	if err != nil {
		return err
	}

	h := &handler{
		bp:     bp,
		lore:   lore,
		theme:  theme,
		delay:  delay,
		runner: f.Runner(log),
		seeds:  newSeeder(f.RunSeed()),
		log:    log,
	}
	srv := &gossh.Server{
		Addr:        fmt.Sprintf(":%d", port),
		Handler:     h.handleSession,
		PtyCallback: func(_ gossh.Context, _ gossh.Pty) bool { return true },
		// No authentication: every client just watches maps being built.
		HostSigners: []gossh.Signer{signer},
	}

	log.Info("mapforge SSH server listening", "port", port, "blueprint", bp.Name)
	log.Info(fmt.Sprintf("connect with:  ssh -t -p %d localhost", port))
	return srv.ListenAndServe()
}

// handler runs one viewer per SSH session.
type handler struct {
	bp     blueprint.Blueprint
	lore   string
	theme  render.Theme
	delay  time.Duration
	runner pipeline.Runner
	seeds  *seeder
	log    *slog.Logger
}

// handleSession is the gliderlabs SSH handler for one connection.
// It blocks while the viewer runs so the session stays open.
func (h *handler) handleSession(s gossh.Session) {
	name := sanitizeName(s.User())
	log := h.log.With("user", name, "remote", s.RemoteAddr().String())

	screen, err := internalssh.NewScreen(s)
	if err != nil {
		fmt.Fprintf(s, "%v. Connect with: ssh -t -p <port> <host>\n", err)
		log.Warn("session rejected", "err", err)
		return
	}
	defer screen.Fini()

	runner := h.runner
	runner.Log = log
	seed := h.seeds.next()
	log.Info("session started", "seed", seed)

	v := viewer.New(screen, viewer.Options{
		Blueprint: h.bp,
		Seed:      seed,
		Animate:   true,
		Delay:     h.delay,
		Theme:     h.theme,
		Runner:    runner,
		Message:   h.lore,
	})
	if err := v.Run(s.Context()); err != nil {
		log.Error("viewer failed", "err", err)
		return
	}
	log.Info("session ended")
}

// seeder hands out a different seed to every session.
type seeder struct {
	mu  sync.Mutex
	rng *mathrand.Rand
}

func newSeeder(seed int64) *seeder {
	return &seeder{rng: mathrand.New(mathrand.NewSource(seed))}
}

func (s *seeder) next() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Int63()
}

// maxNameBytes caps the user name written to the logs.
const maxNameBytes = 16

// sanitizeName drops control characters from an SSH user name and cuts it
// to maxNameBytes without splitting a rune.
func sanitizeName(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if unicode.IsControl(r) {
			continue
		}
		if sb.Len()+len(string(r)) > maxNameBytes {
			break
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// loadOrCreateHostKey loads a PEM private key from path, or generates and
// persists a new ed25519 key if the file is absent or unreadable.
func loadOrCreateHostKey(path string, log *slog.Logger) (gossh.Signer, error) {
	if data, err := os.ReadFile(path); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			log.Info("loaded host key", "path", path)
			return signer, nil
		}
	}

	log.Info("generating ed25519 host key", "path", path)
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate host key: %w", err)
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		return nil, fmt.Errorf("create signer: %w", err)
	}
	// Keep the key for the next run; a read-only directory is not fatal.
	block, err := xssh.MarshalPrivateKey(key, "mapforge server")
	if err == nil {
		err = os.WriteFile(path, pem.EncodeToMemory(block), 0o600)
	}
	if err != nil {
		log.Warn("host key not saved", "path", path, "err", err)
	}
	return signer, nil
}
