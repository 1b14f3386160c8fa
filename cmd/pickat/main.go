// Package main is the entry point for the pickat command.
//
// pickat is the glue editor plugins shell out to: it maps selection
// positions in a file to picker launch targets and starts the external
// color picker, one instance per selection.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pfclarke/pickat/internal/app"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

// stringList collects repeatable flag values.
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

type options struct {
	app        app.Options
	tool       string
	lineEnding string
	selections stringList
	file       string
}

func run() int {
	opts := parseFlags()

	application, err := app.New(opts.app)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	absPath, err := filepath.Abs(opts.file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	doc, err := application.LoadDocument(absPath, opts.lineEnding)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	sels, err := app.ParseSelections(doc, opts.selections)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	// No Shutdown here: spawned pickers must outlive this command.
	if err := application.Launch(opts.tool, doc, sels); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool
	var listTools bool

	flag.StringVar(&opts.app.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.app.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.app.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&opts.app.NoPlugins, "no-plugins", false, "Disable plugin loading")
	flag.StringVar(&opts.tool, "tool", "cpick", "Picker tool to launch")
	flag.StringVar(&opts.tool, "t", "cpick", "Picker tool to launch (shorthand)")
	flag.StringVar(&opts.lineEnding, "line-ending", "auto", "Line ending convention (auto, lf, crlf, cr)")
	flag.Var(&opts.selections, "sel", "Selection anchor: offset or row:col (repeatable)")
	flag.Var(&opts.selections, "s", "Selection anchor (shorthand, repeatable)")
	flag.BoolVar(&listTools, "list-tools", false, "List configured tools and exit")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "pickat - launch color pickers at a position in a file\n\n")
		fmt.Fprintf(os.Stderr, "Usage: pickat [options] -s <selection> <file>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  pickat -s 42 style.css              Open cpick at offset 42\n")
		fmt.Fprintf(os.Stderr, "  pickat -t quickpick -s 3:5 a.txt    Open quickpick at row 3, col 5\n")
		fmt.Fprintf(os.Stderr, "  pickat -s 10 -s 30 style.css        One picker per selection\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("pickat %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if listTools {
		application, err := app.New(opts.app)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		for _, name := range application.Tools() {
			fmt.Println(name)
		}
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "Error: exactly one file is required\n\n")
		flag.Usage()
		os.Exit(1)
	}
	opts.file = args[0]

	if len(opts.selections) == 0 {
		fmt.Fprintf(os.Stderr, "Error: at least one -sel is required\n\n")
		flag.Usage()
		os.Exit(1)
	}

	return opts
}
