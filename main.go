// mapforge builds procedural maps from blueprints and shows them in the
// terminal, animating generation step by step with -animate.
//
//	mapforge -preset riverlands -animate
//	mapforge -blueprint my.json -maps ./maps -seed 42 -dump
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"mapforge/internal/config"
	"mapforge/internal/ecs"
	"mapforge/internal/factory"
	"mapforge/internal/viewer"

	"github.com/gdamore/tcell/v2"
)

func main() {
	var f config.Flags
	f.Register(flag.CommandLine)
	animate := flag.Bool("animate", false, "show generation one step per frame")
	delay := flag.Duration("delay", viewer.DefaultDelay, "time between animation steps")
	dump := flag.Bool("dump", false, "print the finished map and report instead of opening the viewer")
	list := flag.Bool("list", false, "list the built-in presets and exit")
	logFile := flag.String("log", "", "append viewer logs to this file (stderr is used with -dump)")
	flag.Parse()

	if *list {
		if err := config.WritePresets(os.Stdout); err != nil {
			fail(err)
		}
		return
	}
	if err := run(&f, *animate, *delay, *dump, *logFile); err != nil {
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}

func run(f *config.Flags, animate bool, delay time.Duration, dump bool, logFile string) error {
	// The viewer owns the terminal, so its logs go to a file or nowhere.
	logOut := io.Writer(os.Stderr)
	if !dump {
		logOut = io.Discard
		if logFile != "" {
			lf, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return fmt.Errorf("open log: %w", err)
			}
			defer lf.Close()
			logOut = lf
		}
	}
	log := config.NewLogger(logOut, f.Verbose)
	bp, lore, err := f.LoadBlueprint()
	if err != nil {
		return err
	}
	theme, err := f.ViewTheme()
	if err != nil {
		return err
	}
	runner := f.Runner(log)

	if dump {
		runner.Registrar = factory.NewRegistrar(ecs.NewWorld())
		m, rep, err := runner.Run(bp, f.RunSeed())
		if err != nil {
			return err
		}
		fmt.Println(m.String())
		_, err = rep.WriteTo(os.Stdout)
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	v := viewer.New(screen, viewer.Options{
		Blueprint: bp,
		Seed:      f.RunSeed(),
		Animate:   animate,
		Delay:     delay,
		Theme:     theme,
		Runner:    runner,
		Message:   lore,
	})
	return v.Run(context.Background())
}
