package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/pricex"
	"github.com/fwojciec/pricex/extract"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Mode is the configured backend protocol ("sync" or "poll").
	Mode string

	Controller *extract.Controller
	Runs       pricex.RunService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config   string        `help:"YAML or JSON config file" env:"PRICEX_CONFIG"`
	BaseURL  string        `name:"base-url" default:"http://localhost:5000" env:"PRICEX_BASE_URL" help:"Extraction backend base URL"`
	Mode     string        `short:"m" enum:"sync,poll" default:"poll" env:"PRICEX_MODE" help:"Backend protocol: sync (single blocking request, max 10 URLs) or poll (session with status polling)"`
	DB       string        `name:"db" help:"Run history database path (default: PRICEX_DB or ~/.pricex/pricex.db)"`
	Interval time.Duration `default:"1s" help:"Progress tick and status poll interval"`
	Timeout  time.Duration `default:"5m" help:"Timeout for a single backend request"`
	Verbose  bool          `short:"v" help:"Log backend requests"`

	Extract ExtractCmd `cmd:"" help:"Extract prices for a list of URLs"`
	Check   CheckCmd   `cmd:"" help:"Validate a list of URLs without submitting it"`
	Runs    RunsCmd    `cmd:"" help:"List recorded extraction runs"`
	Export  ExportCmd  `cmd:"" help:"Export a recorded run as CSV"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a recorded run"`
	Shell   ShellCmd   `cmd:"" help:"Start an interactive extraction session"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URLs         []string `arg:"" optional:"" name:"url" help:"URLs to extract"`
	File         string   `short:"f" help:"Read URLs from a text or CSV file ('-' for stdin)"`
	CSV          bool     `name:"csv" help:"Export results as CSV"`
	Out          string   `short:"o" default:"." help:"Directory for the CSV export"`
	EscapeQuotes bool     `help:"Escape embedded double quotes in CSV fields"`
	NoHistory    bool     `help:"Do not record this run"`
}

// CheckCmd is the "check" subcommand.
type CheckCmd struct {
	URLs []string `arg:"" optional:"" name:"url" help:"URLs to validate"`
	File string   `short:"f" help:"Read URLs from a text or CSV file ('-' for stdin)"`
}

// RunsCmd is the "runs" subcommand.
type RunsCmd struct {
	Limit int    `short:"n" default:"20" help:"Maximum number of runs to list"`
	Mode  string `help:"Only list runs made with this mode"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	ID           string `arg:"" help:"Run ID (see 'pricex runs')"`
	Out          string `short:"o" default:"." help:"Directory for the CSV export"`
	EscapeQuotes bool   `help:"Escape embedded double quotes in CSV fields"`
	Stdout       bool   `help:"Write CSV to stdout instead of a file"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Run ID (see 'pricex runs')"`
	Force bool   `help:"Confirm deletion"`
}

// ShellCmd is the "shell" subcommand.
type ShellCmd struct {
	Out          string `short:"o" default:"." help:"Directory for CSV exports"`
	EscapeQuotes bool   `help:"Escape embedded double quotes in CSV fields"`
}
