package cli

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/AnshUjlayan/vocabulator/internal/config"
	"github.com/AnshUjlayan/vocabulator/internal/database"
	"github.com/AnshUjlayan/vocabulator/internal/database/words"
	"github.com/AnshUjlayan/vocabulator/internal/seed"
)

// SeedCommand loads a vocabulary source into the catalog.
type SeedCommand struct {
	DatabasePath string
	GroupSize    int
	SourcePath   string
}

// NewSeedCommand creates a new SeedCommand.
func NewSeedCommand() *SeedCommand {
	return &SeedCommand{}
}

// ParseFlags parses command line flags.
func (cmd *SeedCommand) ParseFlags(args []string) error {
	cfg := config.NewConfig()

	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	fs.StringVar(&cmd.DatabasePath, "db", cfg.Database.Path, "Path to the vocabulary database file")
	fs.IntVar(&cmd.GroupSize, "group-size", cfg.Seed.GroupSize, "Words per group when the source has no Group markers")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s seed [options] <path>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Load vocabulary from a seed source into the catalog.\n\n")
		fmt.Fprintf(os.Stderr, "Plain-text sources use 'Group N' markers with one word per line;\n")
		fmt.Fprintf(os.Stderr, ".xlsx sources use columns term / definition / optional group.\n")
		fmt.Fprintf(os.Stderr, "Re-seeding the same source is safe: existing words and their\n")
		fmt.Fprintf(os.Stderr, "statistics are left untouched.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s seed data/vocab.txt\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s seed -group-size 20 data/vocab.txt\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s seed words.xlsx\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("expected exactly one seed path, got %d", fs.NArg())
	}
	cmd.SourcePath = fs.Arg(0)
	return nil
}

// Run executes the seed command.
func (cmd *SeedCommand) Run() error {
	absPath, err := filepath.Abs(cmd.SourcePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for seed source: %w", err)
	}

	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	seeder := seed.NewSeeder(words.NewRepository(db.DB), cmd.GroupSize)
	result, err := seeder.SeedFile(absPath)
	if err != nil {
		return err
	}

	fmt.Printf("Seeded %s: %d added, %d already present, %d warnings\n",
		cmd.SourcePath, result.Added, result.Skipped, result.Warnings)
	return nil
}
