package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/chrissnell/astrotime/pkg/config"
)

func main() {
	var (
		dbPath      = flag.String("db", "", "Path to the SQLite configuration database (required)")
		command     = flag.String("command", "list", "Location command: list, add, delete")
		name        = flag.String("name", "", "Location name for add and delete")
		lat         = flag.Float64("lat", 0, "Latitude in degrees (north positive) for add")
		lng         = flag.Float64("lng", 0, "Longitude in degrees (east positive) for add")
		tz          = flag.String("tz", config.DefaultTimezone, "IANA time zone for add")
		makeDefault = flag.Bool("default", false, "Make the added location the observer astrotimed uses")
	)
	flag.Usage = showHelp
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintf(os.Stderr, "Error: -db flag is required\n")
		showHelp()
		os.Exit(1)
	}

	provider, err := config.NewSQLiteProvider(*dbPath)
	if err != nil {
		fatalf("Failed to open configuration database: %v", err)
	}
	defer provider.Close()

	switch *command {
	case "list":
		err = listLocations(provider)
	case "add":
		if *name == "" {
			fatalf("-name is required for the add command")
		}
		err = provider.AddLocation(config.LocationData{
			Name:      *name,
			Latitude:  *lat,
			Longitude: *lng,
			Timezone:  *tz,
		}, *makeDefault)
		if err == nil {
			fmt.Printf("Stored location %s (%.4f, %.4f) %s\n", *name, *lat, *lng, *tz)
		}
	case "delete":
		if *name == "" {
			fatalf("-name is required for the delete command")
		}
		err = provider.DeleteLocation(*name)
		if err == nil {
			fmt.Printf("Deleted location %s\n", *name)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", *command)
		showHelp()
		os.Exit(1)
	}

	if err != nil {
		provider.Close()
		fatalf("Location command failed: %v", err)
	}
}

func listLocations(provider *config.SQLiteProvider) error {
	locations, err := provider.GetLocations()
	if err != nil {
		return err
	}
	def, err := provider.GetDefaultLocation()
	if err != nil {
		def = nil
	}

	if len(locations) == 0 {
		fmt.Println("No locations stored")
		return nil
	}
	for _, l := range locations {
		marker := " "
		if def != nil && def.Name == l.Name {
			marker = "*"
		}
		fmt.Printf("%s %-20s %9.4f %9.4f  %s\n", marker, l.Name, l.Latitude, l.Longitude, l.Timezone)
	}
	return nil
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func showHelp() {
	fmt.Println("astrotime named location tool")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  locations -db astrotime.db [-command list|add|delete] [-name N] [-lat L -lng L -tz Z] [-default]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  list               List stored locations; * marks the default (default command)")
	fmt.Println("  add                Store or update a location")
	fmt.Println("  delete             Remove a location")
	fmt.Println()
	fmt.Println("astrotimed serves stored locations through ?location=<name> on every endpoint.")
}
