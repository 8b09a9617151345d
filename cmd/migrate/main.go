package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"

	"github.com/chrissnell/astrotime/pkg/config"
	"github.com/chrissnell/astrotime/pkg/migrate"
	_ "modernc.org/sqlite"
)

func main() {
	var (
		dbPath  = flag.String("db", "", "Path to the SQLite configuration database (required)")
		command = flag.String("command", "status", "Migration command: up, to, version, status")
		target  = flag.Int("target", -1, "Target version for the to command")
	)
	flag.Usage = showHelp
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintf(os.Stderr, "Error: -db flag is required\n")
		showHelp()
		os.Exit(1)
	}

	db, err := sql.Open("sqlite", *dbPath)
	if err != nil {
		fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		fatalf("Failed to ping database: %v", err)
	}

	migrator := config.NewMigrator(db)
	migrator.Applied = func(m migrate.Migration, up bool) {
		direction := "up"
		if !up {
			direction = "down"
		}
		fmt.Printf("Applied migration %d (%s) %s\n", m.Version, m.Name, direction)
	}

	switch *command {
	case "up":
		err = migrator.MigrateUp()
	case "to":
		if *target < 0 {
			fatalf("-target is required for the to command")
		}
		err = migrator.MigrateTo(*target)
	case "version":
		version, err := migrator.CurrentVersion()
		if err != nil {
			fatalf("Failed to get current version: %v", err)
		}
		fmt.Printf("Current version: %d\n", version)
		return
	case "status":
		err = showStatus(migrator)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", *command)
		showHelp()
		os.Exit(1)
	}

	if err != nil {
		fatalf("Migration command failed: %v", err)
	}
}

func showStatus(migrator *migrate.Migrator) error {
	currentVersion, err := migrator.CurrentVersion()
	if err != nil {
		return err
	}

	pending, err := migrator.PendingMigrations()
	if err != nil {
		return fmt.Errorf("failed to get pending migrations: %w", err)
	}

	fmt.Printf("Current version: %d\n", currentVersion)
	fmt.Printf("Pending migrations: %d\n", len(pending))
	for _, m := range pending {
		fmt.Printf("  %d: %s\n", m.Version, m.Name)
	}
	return nil
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func showHelp() {
	fmt.Println("astrotime configuration database migration tool")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  migrate -db astrotime.db [-command up|to|version|status] [-target N]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  up                 Apply all pending migrations")
	fmt.Println("  to                 Migrate up or down to -target")
	fmt.Println("  version            Show current migration version")
	fmt.Println("  status             Show current version and pending migrations (default)")
	fmt.Println()
	fmt.Println("astrotimed applies pending migrations itself on start-up; use this tool")
	fmt.Println("to inspect a database or roll it back before running an older release.")
}
