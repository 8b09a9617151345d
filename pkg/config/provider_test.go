package config

import (
	"database/sql"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()

	if c.Location.Name != "Mumbai" || c.Location.Latitude != 19.0760 || c.Location.Longitude != 72.8777 {
		t.Errorf("default location = %+v", c.Location)
	}
	if c.Location.Timezone != "Asia/Kolkata" {
		t.Errorf("default timezone = %q", c.Location.Timezone)
	}
	if c.RESTServer.ListenAddr != "0.0.0.0" || c.RESTServer.HTTPPort != 8080 {
		t.Errorf("default listener = %s:%d", c.RESTServer.ListenAddr, c.RESTServer.HTTPPort)
	}
	if c.RESTServer.StreamInterval != time.Second || c.CacheResolution != time.Second {
		t.Errorf("default intervals = %v / %v", c.RESTServer.StreamInterval, c.CacheResolution)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *ConfigData)
		wantErr error
		anyErr  bool
	}{
		{"valid", func(c *ConfigData) {}, nil, false},
		{"north pole", func(c *ConfigData) { c.Location.Latitude = 90 }, nil, false},
		{"latitude too high", func(c *ConfigData) { c.Location.Latitude = 91 }, ErrLatitudeRange, true},
		{"latitude too low", func(c *ConfigData) { c.Location.Latitude = -90.5 }, ErrLatitudeRange, true},
		{"longitude too high", func(c *ConfigData) { c.Location.Longitude = 181 }, ErrLongitudeRange, true},
		{"latitude NaN", func(c *ConfigData) { c.Location.Latitude = math.NaN() }, ErrLatitudeRange, true},
		{"longitude infinite", func(c *ConfigData) { c.Location.Longitude = math.Inf(-1) }, ErrLongitudeRange, true},
		{"bad timezone", func(c *ConfigData) { c.Location.Timezone = "Mars/Olympus" }, nil, true},
		{"cert without key", func(c *ConfigData) { c.RESTServer.TLSCertPath = "/tmp/cert.pem" }, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.modify(c)
			err := c.Validate()
			if tt.anyErr != (err != nil) {
				t.Fatalf("Validate() error = %v, expected error: %v", err, tt.anyErr)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, expected %v", err, tt.wantErr)
			}
		})
	}
}

func TestYAMLProvider(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "astrotime.yaml")
	content := `
location:
  name: Delhi
  latitude: 28.6139
  longitude: 77.2090
  timezone: Asia/Kolkata
rest:
  listen-addr: 127.0.0.1
  port: 9090
  stream-interval: 500ms
cache-resolution: 250ms
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	p := NewYAMLProvider(path)
	defer p.Close()

	c, err := p.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	if c.Location.Name != "Delhi" || c.Location.Latitude != 28.6139 || c.Location.Longitude != 77.2090 {
		t.Errorf("location = %+v", c.Location)
	}
	if c.RESTServer.ListenAddr != "127.0.0.1" || c.RESTServer.HTTPPort != 9090 {
		t.Errorf("listener = %s:%d", c.RESTServer.ListenAddr, c.RESTServer.HTTPPort)
	}
	if c.RESTServer.StreamInterval != 500*time.Millisecond {
		t.Errorf("StreamInterval = %v", c.RESTServer.StreamInterval)
	}
	if c.CacheResolution != 250*time.Millisecond {
		t.Errorf("CacheResolution = %v", c.CacheResolution)
	}
	if !p.IsReadOnly() {
		t.Error("YAML provider should be read-only")
	}
}

func TestYAMLProviderErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "location: [unterminated"},
		{"bad duration", "rest:\n  stream-interval: soon\n"},
		{"bad latitude", "location:\n  latitude: 120\n  longitude: 10\n"},
		{"nan latitude", "location:\n  latitude: .nan\n  longitude: 10\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseYAML([]byte(tt.content)); err == nil {
				t.Error("expected an error")
			}
		})
	}

	if _, err := NewYAMLProvider(filepath.Join(t.TempDir(), "missing.yaml")).LoadConfig(); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestYAMLProviderDefaults(t *testing.T) {
	c, err := parseYAML([]byte("{}"))
	if err != nil {
		t.Fatalf("parseYAML() error: %v", err)
	}
	if *c != *DefaultConfig() {
		t.Errorf("empty YAML gave %+v, expected defaults", c)
	}
}

func TestSQLiteProvider(t *testing.T) {
	path := filepath.Join(t.TempDir(), "astrotime.db")

	p, err := NewSQLiteProvider(path)
	if err != nil {
		t.Fatalf("NewSQLiteProvider() error: %v", err)
	}
	defer p.Close()

	// empty database loads defaults
	c, err := p.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if *c != *DefaultConfig() {
		t.Errorf("empty database gave %+v, expected defaults", c)
	}

	want := &ConfigData{
		Location: LocationData{
			Name:      "Chennai",
			Latitude:  13.0827,
			Longitude: 80.2707,
			Timezone:  "Asia/Kolkata",
		},
		RESTServer: RESTServerData{
			ListenAddr:     "127.0.0.1",
			HTTPPort:       8181,
			StreamInterval: 2 * time.Second,
		},
		CacheResolution: 100 * time.Millisecond,
	}
	if err := p.SaveConfig(want); err != nil {
		t.Fatalf("SaveConfig() error: %v", err)
	}

	got, err := p.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if *got != *want {
		t.Errorf("LoadConfig() = %+v, expected %+v", got, want)
	}
	if p.IsReadOnly() {
		t.Error("SQLite provider should be writable")
	}
}

func TestSQLiteLocations(t *testing.T) {
	p, err := NewSQLiteProvider(filepath.Join(t.TempDir(), "astrotime.db"))
	if err != nil {
		t.Fatalf("NewSQLiteProvider() error: %v", err)
	}
	defer p.Close()

	if err := p.AddLocation(LocationData{Name: "Pune", Latitude: 18.52, Longitude: 73.86, Timezone: "Asia/Kolkata"}, true); err != nil {
		t.Fatal(err)
	}
	if err := p.AddLocation(LocationData{Name: "Kolkata", Latitude: 22.57, Longitude: 88.36, Timezone: "Asia/Kolkata"}, false); err != nil {
		t.Fatal(err)
	}

	locs, err := p.GetLocations()
	if err != nil {
		t.Fatalf("GetLocations() error: %v", err)
	}
	if len(locs) != 2 || locs[0].Name != "Pune" {
		t.Errorf("GetLocations() = %+v, expected Pune first of 2", locs)
	}

	// switching the default
	if err := p.AddLocation(LocationData{Name: "Kolkata", Latitude: 22.57, Longitude: 88.36, Timezone: "Asia/Kolkata"}, true); err != nil {
		t.Fatal(err)
	}
	def, err := p.GetDefaultLocation()
	if err != nil {
		t.Fatalf("GetDefaultLocation() error: %v", err)
	}
	if def.Name != "Kolkata" {
		t.Errorf("default location = %q, expected Kolkata", def.Name)
	}

	if err := p.DeleteLocation("Pune"); err != nil {
		t.Errorf("DeleteLocation() error: %v", err)
	}
	if err := p.DeleteLocation("Pune"); err == nil {
		t.Error("deleting a missing location should fail")
	}
}

func TestSQLiteUpdateDefaultLocation(t *testing.T) {
	p, err := NewSQLiteProvider(filepath.Join(t.TempDir(), "astrotime.db"))
	if err != nil {
		t.Fatalf("NewSQLiteProvider() error: %v", err)
	}
	defer p.Close()

	if err := p.AddLocation(LocationData{Name: "Pune", Latitude: 18.52, Longitude: 73.86, Timezone: "Asia/Kolkata"}, true); err != nil {
		t.Fatal(err)
	}
	// updating coordinates without makeDefault keeps Pune as the default
	if err := p.AddLocation(LocationData{Name: "Pune", Latitude: 18.53, Longitude: 73.85, Timezone: "Asia/Kolkata"}, false); err != nil {
		t.Fatal(err)
	}

	def, err := p.GetDefaultLocation()
	if err != nil {
		t.Fatalf("GetDefaultLocation() error: %v", err)
	}
	if def.Name != "Pune" || def.Latitude != 18.53 {
		t.Errorf("default location = %+v, expected updated Pune", def)
	}

	c, err := p.LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if c.Location.Name != "Pune" || c.Location.Longitude != 73.85 {
		t.Errorf("loaded location = %+v, expected updated Pune", c.Location)
	}
}

func TestSQLiteGetLocation(t *testing.T) {
	p, err := NewSQLiteProvider(filepath.Join(t.TempDir(), "astrotime.db"))
	if err != nil {
		t.Fatalf("NewSQLiteProvider() error: %v", err)
	}
	defer p.Close()

	if err := p.AddLocation(LocationData{Name: "Varanasi", Latitude: 25.32, Longitude: 82.97}, false); err != nil {
		t.Fatal(err)
	}

	loc, err := p.GetLocation("Varanasi")
	if err != nil {
		t.Fatalf("GetLocation() error: %v", err)
	}
	if loc.Latitude != 25.32 || loc.Timezone != DefaultTimezone {
		t.Errorf("GetLocation() = %+v", loc)
	}

	if _, err := p.GetLocation("Atlantis"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("GetLocation(missing) error = %v, expected sql.ErrNoRows", err)
	}
}

func TestSQLiteAddLocationInvalid(t *testing.T) {
	p, err := NewSQLiteProvider(filepath.Join(t.TempDir(), "astrotime.db"))
	if err != nil {
		t.Fatalf("NewSQLiteProvider() error: %v", err)
	}
	defer p.Close()

	tests := []struct {
		name string
		loc  LocationData
	}{
		{"no name", LocationData{Latitude: 10, Longitude: 10}},
		{"NaN latitude", LocationData{Name: "Nowhere", Latitude: math.NaN(), Longitude: 10}},
		{"bad longitude", LocationData{Name: "Nowhere", Latitude: 10, Longitude: 200}},
		{"bad timezone", LocationData{Name: "Nowhere", Latitude: 10, Longitude: 10, Timezone: "Mars/Olympus"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := p.AddLocation(tt.loc, false); err == nil {
				t.Error("expected an error")
			}
		})
	}

	locs, err := p.GetLocations()
	if err != nil {
		t.Fatal(err)
	}
	if len(locs) != 0 {
		t.Errorf("GetLocations() = %+v, expected none stored", locs)
	}
}

func TestSQLiteReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "astrotime.db")

	p, err := NewSQLiteProvider(path)
	if err != nil {
		t.Fatal(err)
	}
	cfg := DefaultConfig()
	cfg.Location.Name = "Goa"
	cfg.Location.Latitude = 15.49
	cfg.Location.Longitude = 73.83
	if err := p.SaveConfig(cfg); err != nil {
		t.Fatal(err)
	}
	p.Close()

	// migrations are already applied; reopening must not fail
	p, err = NewSQLiteProvider(path)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	defer p.Close()

	got, err := p.LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if got.Location.Name != "Goa" {
		t.Errorf("location after reopen = %+v", got.Location)
	}
}
