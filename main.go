package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/HarshKishorani/zen/editor"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "zen: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	e := editor.New()
	if err := e.Init(); err != nil {
		return err
	}
	// Every exit path below runs with raw mode held; put the terminal
	// back before main gets to report anything.
	defer e.Shutdown()

	if len(args) >= 1 {
		if err := e.Open(args[0]); err != nil {
			return err
		}
	}

	e.SetStatusMessage("HELP: Ctrl-S = save | Ctrl-Q = quit | Ctrl-F = find")

	for {
		if err := e.RefreshScreen(); err != nil {
			return err
		}
		switch err := e.ProcessKeypress(); {
		case errors.Is(err, editor.ErrQuit):
			return nil
		case err != nil:
			return err
		}
	}
}
