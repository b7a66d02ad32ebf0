// Package main is the entry point for the studydesk application.
// This file contains the import subcommand handler.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"studydesk/internal/config"
	"studydesk/internal/importer"
	"studydesk/internal/storage"
	"studydesk/internal/tasks"
)

// importHelpText is the help message for the import subcommand.
const importHelpText = `studydesk import - Import tasks from other tools

USAGE:
    studydesk import <format> <file>
    studydesk import [OPTIONS] <format> <file>

FORMATS:
    markdown     Import from a Markdown checklist (also: md)
    todoist      Import from a Todoist CSV export

OPTIONS:
    --preview    Show what would be imported without making changes
    -h, --help   Show this help message

DESCRIPTION:
    Import tasks from other tools into your task list. Pass '-' as the
    file to read from stdin.

    MARKDOWN:
      Headings become groups, checklist items become tasks:

        ## Math
        - [ ] Integrals worksheet
        - [x] Review limits

      Checked items are imported as completed. Plain list items
      without a checkbox are skipped.

    TODOIST:
      Export your tasks from Todoist via Settings → Backups. The CSV
      needs TYPE and CONTENT columns; PROJECT becomes the group.
      Non-task rows (notes, sections) are skipped.

    Groups named in the input are matched against your existing groups
    case-insensitively, and created when missing.

EXAMPLES:
    # Import a study plan
    studydesk import markdown plan.md

    # Preview first
    studydesk import --preview markdown plan.md

    # Import from Todoist
    studydesk import todoist ~/Downloads/Todoist_backup.csv

    # Read from stdin
    cat plan.md | studydesk import markdown -
`

// runImport handles the "studydesk import" subcommand.
func runImport(args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)

	previewFlag := fs.Bool("preview", false, "show what would be imported without making changes")
	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, importHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(importHelpText)
		os.Exit(0)
	}

	// Need at least format and file
	if fs.NArg() < 2 {
		fmt.Fprintf(os.Stderr, "Error: missing arguments\n\n")
		fmt.Fprintf(os.Stderr, "Usage: studydesk import <format> <file>\n")
		fmt.Fprintf(os.Stderr, "Formats: %s\n", strings.Join(importer.SupportedFormats(), ", "))
		fmt.Fprintf(os.Stderr, "\nRun 'studydesk import --help' for more information.\n")
		os.Exit(1)
	}

	format := strings.ToLower(fs.Arg(0))
	filePath := fs.Arg(1)

	imp := importer.GetImporter(format)
	if imp == nil {
		fmt.Fprintf(os.Stderr, "Error: unknown format %q\n", format)
		fmt.Fprintf(os.Stderr, "Supported formats: %s\n", strings.Join(importer.SupportedFormats(), ", "))
		os.Exit(1)
	}

	// Open input ('-' means stdin)
	var input io.Reader
	if filePath == "-" {
		input = os.Stdin
	} else {
		file, err := os.Open(filePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening file: %v\n", err)
			os.Exit(1)
		}
		defer file.Close()
		input = file
	}

	if *previewFlag {
		previewImport(imp, input)
		return
	}

	// Load config and storage, then import through the task manager
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

	manager := tasks.NewManager(store)

	result, err := imp.Import(input, manager)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Imported %d task(s)\n", result.Imported)
	if result.Skipped > 0 {
		fmt.Printf("  Skipped: %d\n", result.Skipped)
	}
	for _, e := range result.Errors {
		fmt.Fprintf(os.Stderr, "  Warning: %s\n", e)
	}
}

// previewImport lists what would be imported without touching any data.
func previewImport(imp importer.Importer, input io.Reader) {
	previews, err := imp.Preview(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}

	if len(previews) == 0 {
		fmt.Println("No tasks found in the input.")
		return
	}

	fmt.Printf("Would import %d task(s):\n", len(previews))
	for _, p := range previews {
		mark := " "
		if p.Done {
			mark = "x"
		}
		line := fmt.Sprintf("  [%s] %s", mark, p.Title)
		if p.Group != "" {
			line += fmt.Sprintf("  (%s)", p.Group)
		}
		fmt.Println(line)
	}
}
