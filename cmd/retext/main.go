// Package main is the entry point for retext, a regex-based text
// editor that records every edit in a replayable command journal.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Krish962/regex-text-versioning/internal/app"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts, showVersion := parseFlags()

	if showVersion {
		fmt.Printf("retext %s (%s)\n", version, commit)
		return 0
	}

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() (app.Options, bool) {
	var opts app.Options
	var showVersion bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.Input, "in", "", "Document to load (overrides config)")
	flag.StringVar(&opts.Output, "out", "", "File to save the final document to (overrides config)")
	flag.StringVar(&opts.Journal, "journal", "", "Command journal file (overrides config)")
	flag.StringVar(&opts.Script, "script", "", "Run a Lua edit script instead of the interactive loop")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: retext [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Edits a document with regex commands recorded in a replayable journal.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}

	flag.Parse()
	return opts, showVersion
}
