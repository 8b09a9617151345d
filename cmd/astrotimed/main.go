package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chrissnell/astrotime/internal/app"
	"github.com/chrissnell/astrotime/internal/constants"
	"github.com/chrissnell/astrotime/internal/log"
	"github.com/chrissnell/astrotime/pkg/config"
)

func main() {
	cfgFile := flag.String("config", "astrotime.yaml", "Path to configuration source:\n\t\t\t  YAML: astrotime.yaml\n\t\t\t  SQLite: astrotime.db\n\t\t\t  Use 'config-convert' tool to convert YAML→SQLite")
	cfgBackend := flag.String("config-backend", "yaml", "Configuration backend type: 'yaml' for YAML files, 'sqlite' for SQLite databases")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("astrotimed %s\n", constants.Version)
		os.Exit(0)
	}

	// Set up logging
	if err := log.Init(*debug); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	cfgData, locations, err := loadConfig(*cfgFile, *cfgBackend)
	if err != nil {
		log.Errorf("Failed to load configuration: %v", err)
		os.Exit(1)
	}

	application := app.New(cfgData, locations)
	if err := application.Run(context.Background()); err != nil {
		log.Errorf("Application error: %v", err)
		os.Exit(1)
	}
}

// loadConfig reads the configuration and, for the SQLite backend, the
// stored named locations.
func loadConfig(cfgFile, cfgBackend string) (*config.ConfigData, []config.LocationData, error) {
	filename, _ := filepath.Abs(cfgFile)

	var provider config.ConfigProvider
	var locations []config.LocationData

	switch cfgBackend {
	case "yaml":
		provider = config.NewYAMLProvider(filename)
	case "sqlite":
		sp, err := config.NewSQLiteProvider(filename)
		if err != nil {
			return nil, nil, fmt.Errorf("error creating SQLite provider: %w", err)
		}
		defer sp.Close()
		if locations, err = sp.GetLocations(); err != nil {
			return nil, nil, fmt.Errorf("error reading locations: %w", err)
		}
		provider = sp
	default:
		return nil, nil, fmt.Errorf("unsupported configuration backend: %s. Use 'yaml' or 'sqlite'", cfgBackend)
	}

	cfgData, err := provider.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("error reading config file. Did you pass the -config flag? Run with -h for help: %w", err)
	}

	return cfgData, locations, nil
}
