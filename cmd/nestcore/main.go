// Command nestcore is a small CLI harness around internal/pack, reading a
// JSON description of sheets and part polygons and printing the
// resulting placements. Flag parsing follows the teacher pack's kong
// usage (github.com/philipparndt/go3mf's internal/cmd.CLI): a root CLI
// struct with one `cmd:""`-tagged subcommand struct per verb, each
// implementing Run() error.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/nestcore/nestcore/internal/pack"
	"github.com/nestcore/nestcore/internal/state"
)

// CLI is the root command set.
type CLI struct {
	Pack *PackCmd `cmd:"" help:"Nest part polygons onto sheets and print placements."`
}

// PackCmd reads an input JSON document and runs the placement driver.
type PackCmd struct {
	Input     string `arg:"" help:"Path to a JSON file describing sheets and parts ('-' for stdin)."`
	Rotations int    `default:"4" help:"Number of uniformly spaced rotation angles to try per part."`
	Partial   bool   `help:"Allow a partial solution: parts that don't fit are skipped rather than aborting the run."`
}

// Run executes the pack subcommand.
func (c *PackCmd) Run() error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	f := os.Stdin
	if c.Input != "-" {
		opened, err := os.Open(c.Input)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer opened.Close()
		f = opened
	}

	st := state.New()
	sheets, parts, err := readInput(f, st)
	if err != nil {
		return err
	}
	logger.Info("loaded input", "sheets", len(sheets), "parts", len(parts))

	result, err := pack.Run(context.Background(), sheets, parts, st, pack.Options{
		Rotations:       c.Rotations,
		PartialSolution: c.Partial,
	})
	if err != nil {
		return fmt.Errorf("pack: %w", err)
	}

	if len(result.UnplacedPartIDs) > 0 {
		logger.Warn("some parts were not placed", "count", len(result.UnplacedPartIDs))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(toOutputDoc(result))
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("nestcore"),
		kong.Description("Deterministic no-fit-polygon part nesting."),
		kong.UsageOnError(),
	)
	if err := ctx.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "nestcore:", err)
		os.Exit(1)
	}
}
