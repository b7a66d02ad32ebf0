// Package main is the entry point for the studydesk application.
// This file contains the restore subcommand handler.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"studydesk/internal/backup"
	"studydesk/internal/config"
)

// restoreHelpText is the help message for the restore subcommand.
const restoreHelpText = `studydesk restore - Restore data from a backup

USAGE:
    studydesk restore [OPTIONS] [BACKUP_NAME]

OPTIONS:
    --latest       Restore from the most recent backup
    --force, -f    Skip confirmation prompt
    -h, --help     Show this help message

ARGUMENTS:
    BACKUP_NAME    Name of the backup to restore (e.g., 2025-12-15_143022_000)
                   Use 'studydesk backup --list' to see available backups.

DESCRIPTION:
    Restores all data files (tasks, groups, settings) from a specific backup.
    A safety backup is automatically created before restoring.

EXAMPLES:
    # Restore from a specific backup
    studydesk restore 2025-12-15_143022_000

    # Restore from the most recent backup
    studydesk restore --latest

    # Restore without confirmation prompt
    studydesk restore --force 2025-12-15_143022_000
`

// runRestore handles the "studydesk restore" subcommand.
func runRestore(args []string) {
	fs := flag.NewFlagSet("restore", flag.ExitOnError)

	latestFlag := fs.Bool("latest", false, "restore from most recent backup")
	forceFlag := fs.Bool("force", false, "skip confirmation prompt")
	fs.BoolVar(forceFlag, "f", false, "skip confirmation prompt (shorthand)")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, restoreHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(restoreHelpText)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	manager := backup.NewManager(cfg.GetDataDir(), version)

	info, err := manager.GetBackup(pickBackupName(manager, *latestFlag, fs.Args()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Restoring from backup: %s\n", info.Name)
	fmt.Printf("  Created: %s\n", info.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("  Tasks: %d, Groups: %d\n", info.Stats["tasks"], info.Stats["groups"])
	fmt.Println()

	if !*forceFlag && !confirmOverwrite() {
		fmt.Println("Restore cancelled.")
		return
	}

	fmt.Println("✓ Creating safety backup first...")
	if err := manager.Restore(info.Name); err != nil {
		fmt.Fprintf(os.Stderr, "Error restoring backup: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Restored successfully from %s\n", info.Name)
}

// pickBackupName resolves which backup to restore: --latest, a positional
// argument, or an error pointing at the listing.
func pickBackupName(manager *backup.Manager, latest bool, args []string) string {
	if latest {
		backups, err := manager.List()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing backups: %v\n", err)
			os.Exit(1)
		}
		if len(backups) == 0 {
			fmt.Fprintln(os.Stderr, "No backups available.")
			os.Exit(1)
		}
		return backups[0].Name
	}

	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no backup specified")
		fmt.Fprintln(os.Stderr, "Use 'studydesk restore BACKUP_NAME' or 'studydesk restore --latest'")
		fmt.Fprintln(os.Stderr, "Run 'studydesk backup --list' to see available backups.")
		os.Exit(1)
	}
	return args[0]
}

// confirmOverwrite prompts on stdin before data is overwritten.
func confirmOverwrite() bool {
	fmt.Println("⚠ This will overwrite your current data.")
	fmt.Print("Continue? [y/N] ")

	response, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
