package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/AnshUjlayan/vocabulator/internal/config"
	"github.com/AnshUjlayan/vocabulator/internal/progress"
)

// ResetProgressCommand moves an unreadable progress file aside so the next
// launch can start with a fresh store. This is the explicit confirmation
// step: the interactive application itself never overwrites a file it
// cannot parse.
type ResetProgressCommand struct {
	ProgressPath string
}

// NewResetProgressCommand creates a new ResetProgressCommand.
func NewResetProgressCommand() *ResetProgressCommand {
	return &ResetProgressCommand{}
}

// ParseFlags parses command line flags.
func (cmd *ResetProgressCommand) ParseFlags(args []string) error {
	cfg := config.NewConfig()

	fs := flag.NewFlagSet("reset-progress", flag.ExitOnError)
	fs.StringVar(&cmd.ProgressPath, "progress", cfg.Progress.Path, "Path to the progress file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s reset-progress [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Back up the current progress file and remove it, so the next\n")
		fmt.Fprintf(os.Stderr, "launch starts with empty statistics. Use when the file is corrupt.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

// Run executes the reset command.
func (cmd *ResetProgressCommand) Run() error {
	gateway := progress.NewFileGateway(cmd.ProgressPath)

	if _, err := os.Stat(cmd.ProgressPath); os.IsNotExist(err) {
		fmt.Printf("No progress file at %s, nothing to do.\n", cmd.ProgressPath)
		return nil
	}

	backupPath, err := gateway.BackupCorrupt()
	if err != nil {
		return err
	}
	if err := os.Remove(cmd.ProgressPath); err != nil {
		return fmt.Errorf("failed to remove progress file: %w", err)
	}

	fmt.Printf("Progress file backed up to %s and removed.\n", backupPath)
	return nil
}
