package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "LOG_LEVEL", "DB_DRIVER", "MONGO_URI", "DB_NAME", "PG_DSN",
		"REDIS_ENABLED", "REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "REDIS_DB",
		"REDIS_TLS_ENABLED", "REDIS_TLS_CERT_FILE", "GEOCODER_USER_AGENT",
		"IMPORT_FETCH_MODE", "MEDIA_DIR", "CHROME_BIN", "IMPORT_RATE_LIMIT",
	} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

const mongoConfig = `
database:
  driver: mongo
  uri: mongodb://localhost:27017
  dbname: dominium
`

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadConfig(writeConfig(t, mongoConfig))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
	if cfg.Rates.TTL != 30*time.Minute {
		t.Errorf("rates ttl = %v", cfg.Rates.TTL)
	}
	if cfg.Rates.StaleRetention < cfg.Rates.TTL {
		t.Errorf("stale retention %v shorter than ttl", cfg.Rates.StaleRetention)
	}
	if cfg.Geocoder.CountrySuffix != "Україна" {
		t.Errorf("country suffix = %q", cfg.Geocoder.CountrySuffix)
	}
	if cfg.Importer.FetchMode != "http" {
		t.Errorf("fetch mode = %q", cfg.Importer.FetchMode)
	}
	if cfg.Throttle.Limit != 5 || cfg.Throttle.Window != time.Minute {
		t.Errorf("throttle = %d per %v", cfg.Throttle.Limit, cfg.Throttle.Window)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("IMPORT_FETCH_MODE", "browser")
	t.Setenv("IMPORT_RATE_LIMIT", "20")
	t.Setenv("GEOCODER_USER_AGENT", "test-agent")

	cfg, err := LoadConfig(writeConfig(t, mongoConfig))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
	if cfg.Importer.FetchMode != "browser" {
		t.Errorf("fetch mode = %q", cfg.Importer.FetchMode)
	}
	if cfg.Throttle.Limit != 20 {
		t.Errorf("throttle limit = %d", cfg.Throttle.Limit)
	}
	if cfg.Geocoder.UserAgent != "test-agent" {
		t.Errorf("user agent = %q", cfg.Geocoder.UserAgent)
	}
}

func TestLoadConfigYAMLValues(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadConfig(writeConfig(t, `
database:
  driver: postgres
  postgres_dsn: postgres://u:p@localhost:5432/dominium
rates:
  ttl: 10m
  stale_retention: 1h
throttle:
  limit: 3
  window: 30s
`))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Database.Driver != "postgres" {
		t.Errorf("driver = %q", cfg.Database.Driver)
	}
	if cfg.Rates.TTL != 10*time.Minute || cfg.Rates.StaleRetention != time.Hour {
		t.Errorf("rates = %v / %v", cfg.Rates.TTL, cfg.Rates.StaleRetention)
	}
	if cfg.Throttle.Window != 30*time.Second {
		t.Errorf("window = %v", cfg.Throttle.Window)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  map[string]string
	}{
		{"unknown driver", "database:\n  driver: sqlite\n", nil},
		{"mongo without uri", "database:\n  driver: mongo\n", nil},
		{"postgres without dsn", "database:\n  driver: postgres\n", nil},
		{"bad fetch mode", mongoConfig, map[string]string{"IMPORT_FETCH_MODE": "curl"}},
		{"bad port", mongoConfig, map[string]string{"PORT": "eighty"}},
		{"stale shorter than ttl", mongoConfig + "rates:\n  ttl: 1h\n  stale_retention: 1m\n", nil},
		{"malformed yaml", "database: [", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := LoadConfig(writeConfig(t, tt.body)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
