// Package main is the entry point for the studydesk application.
// This file contains the reset subcommand handler.
package main

import (
	"flag"
	"fmt"
	"os"

	"studydesk/internal/config"
	"studydesk/internal/storage"
)

// resetHelpText is the help message for the reset subcommand.
const resetHelpText = `studydesk reset - Delete all studydesk data

USAGE:
    studydesk reset --yes

OPTIONS:
    --yes        Confirm deletion (required)
    -h, --help   Show this help message

DESCRIPTION:
    Removes every studydesk data file (tasks, groups, timer settings,
    player state, theme) from the data directory. Backups and other
    files in the directory are left untouched.

    This cannot be undone. Consider 'studydesk backup' first.

EXAMPLES:
    # Back up, then wipe everything
    studydesk backup
    studydesk reset --yes
`

// runReset handles the "studydesk reset" subcommand.
func runReset(args []string) {
	fs := flag.NewFlagSet("reset", flag.ExitOnError)

	yesFlag := fs.Bool("yes", false, "confirm deletion")
	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, resetHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(resetHelpText)
		os.Exit(0)
	}

	// Refuse to wipe anything without explicit confirmation
	if !*yesFlag {
		fmt.Fprintln(os.Stderr, "Error: reset deletes all your data and cannot be undone.")
		fmt.Fprintln(os.Stderr, "Run 'studydesk reset --yes' to confirm.")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.New(cfg.GetDataDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing storage: %v\n", err)
		os.Exit(1)
	}

	store.ClearAll()
	fmt.Printf("✓ Deleted all studydesk data from %s\n", store.Dir())
}
