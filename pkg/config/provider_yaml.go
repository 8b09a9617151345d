package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// YAMLProvider implements ConfigProvider for YAML configuration files
type YAMLProvider struct {
	filename string
}

// NewYAMLProvider creates a new YAML configuration provider
func NewYAMLProvider(filename string) *YAMLProvider {
	return &YAMLProvider{
		filename: filename,
	}
}

// LoadConfig loads the complete configuration from YAML file
func (y *YAMLProvider) LoadConfig() (*ConfigData, error) {
	cfgFile, err := os.ReadFile(y.filename)
	if err != nil {
		return nil, err
	}
	return parseYAML(cfgFile)
}

func parseYAML(data []byte) (*ConfigData, error) {
	var yamlConfig ConfigYAML
	if err := yaml.Unmarshal(data, &yamlConfig); err != nil {
		return nil, err
	}

	config := &ConfigData{
		Location: LocationData{
			Name:      yamlConfig.Location.Name,
			Latitude:  yamlConfig.Location.Latitude,
			Longitude: yamlConfig.Location.Longitude,
			Timezone:  yamlConfig.Location.Timezone,
		},
		RESTServer: RESTServerData{
			ListenAddr:  yamlConfig.REST.ListenAddr,
			HTTPPort:    yamlConfig.REST.Port,
			TLSCertPath: yamlConfig.REST.Cert,
			TLSKeyPath:  yamlConfig.REST.Key,
		},
	}

	var err error
	if config.RESTServer.StreamInterval, err = parseDuration(yamlConfig.REST.StreamInterval); err != nil {
		return nil, fmt.Errorf("rest stream-interval: %w", err)
	}
	if config.CacheResolution, err = parseDuration(yamlConfig.CacheResolution); err != nil {
		return nil, fmt.Errorf("cache-resolution: %w", err)
	}

	return finalize(config)
}

// IsReadOnly returns true as YAML files are treated as read-only
func (y *YAMLProvider) IsReadOnly() bool {
	return true
}

// Close is a no-op for YAML provider
func (y *YAMLProvider) Close() error {
	return nil
}

func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	return time.ParseDuration(s)
}

// ConfigYAML is the on-disk YAML layout
type ConfigYAML struct {
	Location        LocationYAML   `yaml:"location"`
	REST            RESTServerYAML `yaml:"rest,omitempty"`
	CacheResolution string         `yaml:"cache-resolution,omitempty"`
}

type LocationYAML struct {
	Name      string  `yaml:"name,omitempty"`
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
	Timezone  string  `yaml:"timezone,omitempty"`
}

type RESTServerYAML struct {
	Cert           string `yaml:"cert,omitempty"`
	Key            string `yaml:"key,omitempty"`
	Port           int    `yaml:"port,omitempty"`
	ListenAddr     string `yaml:"listen-addr,omitempty"`
	StreamInterval string `yaml:"stream-interval,omitempty"`
}
