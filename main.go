package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/AnshUjlayan/vocabulator/internal/app"
	"github.com/AnshUjlayan/vocabulator/internal/cli"
	"github.com/AnshUjlayan/vocabulator/internal/config"
	"github.com/AnshUjlayan/vocabulator/internal/progress"
	"github.com/AnshUjlayan/vocabulator/internal/ui"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	// No arguments: launch the interactive application
	if len(os.Args) < 2 {
		runInteractive()
		return
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "seed":
		cmd := cli.NewSeedCommand()
		if err := cmd.ParseFlags(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := cmd.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case "reset-progress":
		cmd := cli.NewResetProgressCommand()
		if err := cmd.ParseFlags(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := cmd.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case "version":
		fmt.Printf("vocabulator %s (%s)\n", Version, Commit)

	case "-h", "--help", "help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runInteractive() {
	cfg := config.NewConfig()

	a, err := app.New(cfg)
	if err != nil {
		if errors.Is(err, progress.ErrCorruptData) {
			fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
			fmt.Fprintf(os.Stderr, "Your progress file could not be read and will not be overwritten.\n")
			fmt.Fprintf(os.Stderr, "Restore a copy from %s, or run '%s reset-progress'\n", cfg.Progress.BackupDir, os.Args[0])
			fmt.Fprintf(os.Stderr, "to back the file up and start fresh.\n")
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}

	runErr := ui.New(a, os.Stdin, os.Stdout).Run()

	// Drain pending writes before the process exits, whatever happened.
	if closeErr := a.Close(); runErr == nil {
		runErr = closeErr
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [command] [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Running without a command launches the interactive application.\n\n")
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  seed            Load vocabulary from a seed file (.txt or .xlsx)\n")
	fmt.Fprintf(os.Stderr, "  reset-progress  Back up and remove an unreadable progress file\n")
	fmt.Fprintf(os.Stderr, "  version         Print version information\n")
	fmt.Fprintf(os.Stderr, "\nUse '%s <command> -h' for help on a specific command.\n", os.Args[0])
}
