// Command tanksim-log views and analyzes tank simulator capture files.
//
// Capture files are written by tanksim with the -cycle-log flag: one CBOR
// event per scan cycle.
//
// Usage:
//
//	tanksim-log <command> [flags] <file.tlog>
//
// Commands:
//
//	view     One line per cycle
//	export   Export to JSON lines or CSV
//	filter   Filter cycles and write to a new file
//	stats    Show statistics about the capture
//
// Examples:
//
//	# View cycles with an active fault
//	tanksim-log view -faults run.tlog
//
//	# Export to CSV for a spreadsheet
//	tanksim-log export -format csv -o run.csv run.tlog
//
//	# Keep only alarm cycles
//	tanksim-log filter -alarms -o alarms.tlog run.tlog
//
//	# Show statistics
//	tanksim-log stats run.tlog
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/tanksim/tanksim-go/cmd/tanksim-log/commands"
)

const usage = `tanksim-log - Tank Simulator Capture Viewer

Usage:
  tanksim-log <command> [flags] <file.tlog>

Commands:
  view     One line per cycle
  export   Export to JSON lines or CSV
  filter   Filter cycles and write to a new file
  stats    Show statistics about the capture

Use "tanksim-log <command> -help" for more information about a command.
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run dispatches a subcommand and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		fmt.Fprint(stderr, usage)
		return 1
	}

	cmd, args := args[0], args[1:]

	var err error
	switch cmd {
	case "view":
		err = runView(args, stdout, stderr)
	case "export":
		err = runExport(args, stdout, stderr)
	case "filter":
		err = runFilter(args, stdout, stderr)
	case "stats":
		err = runStats(args, stdout, stderr)
	case "-h", "-help", "--help", "help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(stderr, usage)
		return 1
	}

	if err != nil {
		if err != flag.ErrHelp {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func newFlagSet(name, synopsis, usageLine string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "tanksim-log %s - %s\n\nUsage:\n  %s\n\nFlags:\n", name, synopsis, usageLine)
		fs.PrintDefaults()
	}
	return fs
}

func pathArg(fs *flag.FlagSet) (string, error) {
	if fs.NArg() < 1 {
		fs.Usage()
		return "", fmt.Errorf("log file path required")
	}
	return fs.Arg(0), nil
}

func runView(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("view", "One line per cycle", "tanksim-log view [flags] <file.tlog>", stderr)
	opts := filterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	path, err := pathArg(fs)
	if err != nil {
		return err
	}

	filter, err := opts.BuildFilter()
	if err != nil {
		return err
	}
	return commands.RunView(path, filter, stdout)
}

func runExport(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("export", "Export to JSON lines or CSV", "tanksim-log export [flags] <file.tlog>", stderr)
	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	path, err := pathArg(fs)
	if err != nil {
		return err
	}
	return commands.RunExport(path, *format, *output, stdout)
}

func runFilter(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("filter", "Filter cycles and write to a new file", "tanksim-log filter -o <out.tlog> [flags] <file.tlog>", stderr)
	opts := filterFlags(fs)
	output := fs.String("o", "", "Output file (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	path, err := pathArg(fs)
	if err != nil {
		return err
	}
	if *output == "" {
		fs.Usage()
		return fmt.Errorf("output file (-o) required")
	}

	opts.Output = *output
	return commands.RunFilter(path, *opts, stdout)
}

func runStats(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("stats", "Show statistics about the capture", "tanksim-log stats <file.tlog>", stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	path, err := pathArg(fs)
	if err != nil {
		return err
	}
	return commands.RunStats(path, stdout)
}

// filterFlags registers the flags shared by view and filter.
func filterFlags(fs *flag.FlagSet) *commands.FilterOptions {
	o := &commands.FilterOptions{}
	fs.StringVar(&o.RunID, "run", "", "Filter by run id")
	fs.StringVar(&o.TimeStart, "time-start", "", "Filter by start time (RFC3339)")
	fs.StringVar(&o.TimeEnd, "time-end", "", "Filter by end time (RFC3339)")
	fs.BoolVar(&o.FaultsOnly, "faults", false, "Only cycles with a fault requested or latched")
	fs.BoolVar(&o.AlarmsOnly, "alarms", false, "Only cycles with an alarm")
	fs.BoolVar(&o.ErrorsOnly, "errors", false, "Only failed cycles")
	return o
}
