package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pricex"
	"github.com/fwojciec/pricex/extract"
	pricexhttp "github.com/fwojciec/pricex/http"
	"github.com/fwojciec/pricex/notify"
	pricexslog "github.com/fwojciec/pricex/slog"
	"github.com/fwojciec/pricex/sqlite"
	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// PRICEX_* settings may come from a .env file; a missing file is fine.
	_ = godotenv.Load()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path used when neither --db nor the config file set one.
	DBPath string

	// Input for "-" file arguments and the interactive shell.
	Stdin io.Reader

	// SQLite database used by the run history.
	DB *sqlite.DB

	// Services for end-to-end testing.
	Runs pricex.RunService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
		Stdin:  os.Stdin,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pricex"),
		kong.Description("Extract product prices from a list of URLs using a price extraction backend"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'pricex --help' to see available commands")
	}

	if len(args) == 1 && (args[0] == "help" || args[0] == "--help" || args[0] == "-h") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if cli.Config != "" {
		fc, err := LoadConfigFile(cli.Config)
		if err != nil {
			return fmt.Errorf("failed to load config %q: %w", cli.Config, err)
		}
		ApplyFileConfig(cli, fc)
	}
	if cli.Mode != "sync" && cli.Mode != "poll" {
		return pricex.Errorf(pricex.EINVALID, "unknown mode %q (want sync or poll)", cli.Mode)
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	cmd := strings.Fields(kongCtx.Command())[0]

	// Open the run history for commands that read or write it.
	if needsHistory(cmd, cli) {
		dbPath := cli.DB
		if dbPath == "" {
			dbPath = m.DBPath
		}
		m.DB = sqlite.NewDB(dbPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set PRICEX_DB or --db to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", dbPath, err)
		}
		defer m.Close()

		m.Runs = pricexslog.NewLoggingRunService(sqlite.NewRunService(m.DB), logger)
		deps.Runs = m.Runs
	}

	deps.Mode = cli.Mode
	client := pricexhttp.NewClient(cli.BaseURL, pricexhttp.WithTimeout(cli.Timeout))
	strategy := newStrategy(cli, client, logger)

	board := notify.NewBoard(stderr, notify.TTLFor(cli.Mode))
	defer board.Close()

	deps.Controller = extract.NewController(strategy, board)
	if deps.Runs != nil {
		deps.Controller.Runs = deps.Runs
	}

	return kongCtx.Run(deps)
}

// newStrategy wires the backend client for the configured mode.
func newStrategy(cli *CLI, client *pricexhttp.Client, logger *slog.Logger) pricex.Strategy {
	if cli.Mode == "sync" {
		return &extract.SyncStrategy{
			Batches: pricexslog.NewLoggingBatchService(client, logger),
			Tick:    cli.Interval,
		}
	}
	return &extract.PollStrategy{
		Sessions: pricexslog.NewLoggingSessionService(client, logger),
		Interval: cli.Interval,
	}
}

func needsHistory(cmd string, cli *CLI) bool {
	switch cmd {
	case "extract":
		return !cli.Extract.NoHistory
	case "runs", "export", "delete", "shell":
		return true
	default:
		return false
	}
}

func defaultDBPath() string {
	if path := os.Getenv("PRICEX_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "pricex.db"
	}
	dir := filepath.Join(home, ".pricex")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "pricex.db")
}
