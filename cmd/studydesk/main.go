// Package main is the entry point for the studydesk application.
// It loads configuration, initializes storage, and starts the TUI.
package main

import (
	"flag"
	"fmt"
	"os"

	"studydesk/internal/config"
	"studydesk/internal/notify"
	"studydesk/internal/player"
	"studydesk/internal/pomodoro"
	"studydesk/internal/storage"
	"studydesk/internal/tasks"
	"studydesk/internal/theme"
	"studydesk/internal/ui"
)

// Version information - set by GoReleaser during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const helpText = `studydesk - A terminal study companion

USAGE:
    studydesk [OPTIONS]
    studydesk <command> [ARGS]

COMMANDS:
    backup           Create a backup of all data
    backup --list    List available backups
    restore NAME     Restore from a specific backup
    restore --latest Restore from the most recent backup
    export           Dump tasks and settings as a report (Markdown)
    export -f json   Output the report as JSON
    import markdown  Import tasks from a Markdown checklist
    import todoist   Import from a Todoist CSV export
    reset --yes      Delete all studydesk data

OPTIONS:
    -h, --help       Show this help message
    -v, --version    Show version information

DESCRIPTION:
    studydesk combines a Pomodoro focus timer, a task list with groups,
    and a lofi stream picker in a single, keyboard-driven interface.

FEATURES:
    • Tasks      - Add, complete, group, and filter tasks with vim-style keys
    • Focus      - Pomodoro timer with configurable focus/break durations
    • Lofi       - Pick a stream, set the volume, open it in your browser
    • Themes     - Five color themes, cycled at runtime
    • Local Data - Plain JSON files in ~/.studydesk/

KEYBINDINGS:
    Global:
        Tab          Switch between panes
        1, 2, 3      Jump to specific pane
        Ctrl+T       Cycle theme
        ?            Show help overlay
        q            Quit

    Tasks Pane:
        j/k, ↓/↑     Navigate
        a            Add task
        e            Edit task
        d/Space      Toggle done
        x            Delete task
        f            Cycle filter (all/active/completed/groups)
        m            Move task to next group
        A / X        Add / delete group

    Focus Pane:
        Space        Start/pause timer
        r            Reset
        b            Start break
        +/-          Focus length ±5 minutes
        {/}          Break length ±1 minute
        s / B        Toggle sound / auto-break

    Lofi Pane:
        Enter        Select stream
        p            Play/pause
        o            Open stream in browser
        +/-          Volume

DATA STORAGE:
    All data is stored in ~/.studydesk/ as plain JSON files, one per key:
        studydesk-tasks.json            - Your tasks
        studydesk-groups.json           - Task groups
        studydesk-pomodoro-config.json  - Timer settings
        studydesk-player-*.json         - Player state
        studydesk-theme.json            - Selected theme

CONFIGURATION:
    Optional config file: ~/.config/studydesk/config.yaml
    See documentation for configuration options.

EXAMPLES:
    # Start the app
    studydesk

    # Create a backup
    studydesk backup

    # Restore from a backup
    studydesk restore --latest

    # Export the current state as Markdown
    studydesk export

    # Import a study plan
    studydesk import markdown plan.md

    # Show version
    studydesk --version
`

func main() {
	// Check for subcommands first (before flag parsing)
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "backup":
			runBackup(os.Args[2:])
			return
		case "restore":
			runRestore(os.Args[2:])
			return
		case "export":
			runExport(os.Args[2:])
			return
		case "import":
			runImport(os.Args[2:])
			return
		case "reset":
			runReset(os.Args[2:])
			return
		}
	}

	// Define flags
	showVersion := flag.Bool("version", false, "show version information")
	flag.BoolVar(showVersion, "v", false, "show version information (shorthand)")

	showHelp := flag.Bool("help", false, "show help message")
	flag.BoolVar(showHelp, "h", false, "show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprint(os.Stderr, helpText)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("studydesk version %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
		os.Exit(0)
	}

	if *showHelp {
		fmt.Print(helpText)
		os.Exit(0)
	}

	// Reject unknown arguments
	if flag.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Error: unknown arguments: %v\n\n", flag.Args())
		flag.Usage()
		os.Exit(1)
	}

	// Load configuration (from ~/.config/studydesk/config.yaml or defaults)
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Initialize the persistence gateway in the configured data directory
	store, err := storage.New(cfg.GetDataDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing storage: %v\n", err)
		os.Exit(1)
	}

	manager := tasks.NewManager(store)

	// Completion effects: terminal bell always available, desktop
	// notifications only when enabled.
	engineOpts := []pomodoro.Option{pomodoro.WithChimer(notify.NewChimer())}
	if cfg.Notifications.Enabled {
		engineOpts = append(engineOpts, pomodoro.WithNotifier(notify.New()))
	}
	engine := pomodoro.NewEngine(store, engineOpts...)

	pl := player.New(store)
	th := theme.Load(store)

	appCfg := &ui.AppConfig{
		Keys:                  &cfg.Keys,
		ConfirmDeletions:      cfg.UX.ConfirmDeletions,
		ShowOnboarding:        cfg.UX.ShowOnboarding,
		NarrowLayoutThreshold: cfg.UX.NarrowLayoutThreshold,
	}

	if err := ui.Run(store, manager, engine, pl, th, appCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}
}
