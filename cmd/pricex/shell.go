package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/fwojciec/pricex"
	"github.com/fwojciec/pricex/csv"
	"github.com/fwojciec/pricex/fs"
)

const shellHelp = `Enter URLs one per line. Commands:
  :run     extract prices for the entered URLs
  :export  write the current results as CSV
  :clear   discard results and input
  :status  show input and result state
  :list    show the entered URLs
  :quit    leave the shell`

// Run executes the shell command.
func (c *ShellCmd) Run(deps *Dependencies) error {
	ctrl := deps.Controller
	ctrl.Exporter = fs.NewExporter(c.Out, csv.Options{EscapeQuotes: c.EscapeQuotes})

	fmt.Fprintln(deps.Stdout, shellHelp)

	scanner := bufio.NewScanner(deps.Stdin)
	for {
		fmt.Fprint(deps.Stdout, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(deps.Stdout)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())

		switch line {
		case "":
			continue
		case ":q", ":quit", ":exit":
			return nil
		case ":help":
			fmt.Fprintln(deps.Stdout, shellHelp)
		case ":run":
			progress := &progressPrinter{w: deps.Stderr}
			ctrl.OnProgress = progress.Update
			_, err := ctrl.Extract(deps.Ctx)
			progress.Clear()
			if err == nil {
				writeResults(deps.Stdout, ctrl.Results())
			}
			if deps.Ctx.Err() != nil {
				return deps.Ctx.Err()
			}
		case ":export":
			if path, err := ctrl.Export(deps.Ctx); err == nil {
				fmt.Fprintf(deps.Stdout, "Exported %s\n", path)
			}
		case ":clear":
			_ = ctrl.Clear()
		case ":status":
			writeStatus(deps, ctrl.State(), ctrl.URLCount(), ctrl.CanSubmit(), ctrl.Results())
		case ":list":
			for _, u := range ctrl.URLs() {
				fmt.Fprintln(deps.Stdout, u)
			}
		default:
			if strings.HasPrefix(line, ":") {
				fmt.Fprintf(deps.Stderr, "unknown command %q (try :help)\n", line)
				continue
			}
			if !pricex.IsValidURL(line) {
				fmt.Fprintf(deps.Stderr, "ignoring invalid URL %q\n", line)
				continue
			}
			ctrl.SetInput(ctrl.Input() + line + "\n")
			fmt.Fprintf(deps.Stdout, "%d URLs ready\n", ctrl.URLCount())
		}
	}
}

func writeStatus(deps *Dependencies, state pricex.State, urls int, canSubmit bool, results []*pricex.Result) {
	fmt.Fprintf(deps.Stdout, "state: %s\n", state)
	fmt.Fprintf(deps.Stdout, "urls: %d (submit %s)\n", urls, map[bool]string{true: "enabled", false: "disabled"}[canSubmit])
	if len(results) > 0 {
		successful, failed := pricex.Summarize(results).SummaryLines()
		fmt.Fprintf(deps.Stdout, "results: %d (%s, %s)\n", len(results), successful, failed)
	}
}
