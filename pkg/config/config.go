package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port int `yaml:"port" validate:"gt=0,lte=65535"`
	} `yaml:"server"`
	Log struct {
		Level string `yaml:"level" validate:"oneof=debug info warn error DEBUG INFO WARN ERROR"`
	} `yaml:"log"`
	Database struct {
		Driver      string `yaml:"driver" validate:"oneof=mongo postgres"`
		URI         string `yaml:"uri" validate:"required_if=Driver mongo"`
		DBName      string `yaml:"dbname" validate:"required_if=Driver mongo"`
		PostgresDSN string `yaml:"postgres_dsn" validate:"required_if=Driver postgres"`
		MaxConns    int32  `yaml:"max_conns" validate:"gte=0"`
	} `yaml:"database"`
	Redis struct {
		Enabled     bool   `yaml:"enabled"`
		Host        string `yaml:"host" validate:"required,hostname|ip"`
		Port        int    `yaml:"port" validate:"required,gt=0,lte=65535"`
		Password    string `yaml:"password"`
		DB          int    `yaml:"db" validate:"gte=0"`
		TLSEnabled  bool   `yaml:"tls_enabled"`
		TLSCertFile string `yaml:"tls_cert_file"`
	} `yaml:"redis"`
	Rates struct {
		URL            string        `yaml:"url" validate:"required,url"`
		TTL            time.Duration `yaml:"ttl" validate:"gt=0"`
		StaleRetention time.Duration `yaml:"stale_retention" validate:"gtefield=TTL"`
		Timeout        time.Duration `yaml:"timeout" validate:"gt=0"`
		MaxRetries     int           `yaml:"max_retries" validate:"gte=1"`
	} `yaml:"rates"`
	Geocoder struct {
		URL            string        `yaml:"url" validate:"required,url"`
		UserAgent      string        `yaml:"user_agent" validate:"required"`
		CountrySuffix  string        `yaml:"country_suffix"`
		DistrictTokens []string      `yaml:"district_tokens"`
		Timeout        time.Duration `yaml:"timeout" validate:"gt=0"`
	} `yaml:"geocoder"`
	Importer struct {
		FetchMode            string        `yaml:"fetch_mode" validate:"oneof=http browser"`
		FetchTimeout         time.Duration `yaml:"fetch_timeout" validate:"gt=0"`
		ImageTimeout         time.Duration `yaml:"image_timeout" validate:"gt=0"`
		UserAgent            string        `yaml:"user_agent" validate:"required"`
		DescriptionMaxLength int           `yaml:"description_max_length" validate:"gt=0"`
		MediaDir             string        `yaml:"media_dir"`
		ChromePath           string        `yaml:"chrome_path"`
	} `yaml:"importer"`
	Throttle struct {
		Limit  int           `yaml:"limit" validate:"gt=0"`
		Window time.Duration `yaml:"window" validate:"gt=0"`
	} `yaml:"throttle"`
}

// LoadConfig reads the YAML file at path, applies environment overrides and
// defaults, then validates the result. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %v", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config file: %v", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the struct tags and the few cross-field rules tags cannot express.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %v", err)
	}
	if cfg.Redis.TLSEnabled && cfg.Redis.TLSCertFile != "" {
		if _, err := os.Stat(cfg.Redis.TLSCertFile); os.IsNotExist(err) {
			return fmt.Errorf("TLS certificate file does not exist: %s", cfg.Redis.TLSCertFile)
		}
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if port := os.Getenv("PORT"); port != "" {
		portNum, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid PORT value: %v", err)
		}
		cfg.Server.Port = portNum
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if driver := os.Getenv("DB_DRIVER"); driver != "" {
		cfg.Database.Driver = driver
	}
	if uri := os.Getenv("MONGO_URI"); uri != "" {
		cfg.Database.URI = uri
	}
	if dbname := os.Getenv("DB_NAME"); dbname != "" {
		cfg.Database.DBName = dbname
	}
	if dsn := os.Getenv("PG_DSN"); dsn != "" {
		cfg.Database.PostgresDSN = dsn
	}
	if enabled := os.Getenv("REDIS_ENABLED"); enabled != "" {
		cfg.Redis.Enabled = enabled == "true"
	}
	if host := os.Getenv("REDIS_HOST"); host != "" {
		cfg.Redis.Host = host
	}
	if port := os.Getenv("REDIS_PORT"); port != "" {
		portNum, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid REDIS_PORT value: %v", err)
		}
		cfg.Redis.Port = portNum
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		cfg.Redis.Password = password
	}
	if db := os.Getenv("REDIS_DB"); db != "" {
		dbNum, err := strconv.Atoi(db)
		if err != nil {
			return fmt.Errorf("invalid REDIS_DB value: %v", err)
		}
		cfg.Redis.DB = dbNum
	}
	if tlsEnabled := os.Getenv("REDIS_TLS_ENABLED"); tlsEnabled != "" {
		cfg.Redis.TLSEnabled = tlsEnabled == "true"
	}
	if tlsCertFile := os.Getenv("REDIS_TLS_CERT_FILE"); tlsCertFile != "" {
		cfg.Redis.TLSCertFile = tlsCertFile
	}
	if agent := os.Getenv("GEOCODER_USER_AGENT"); agent != "" {
		cfg.Geocoder.UserAgent = agent
	}
	if mode := os.Getenv("IMPORT_FETCH_MODE"); mode != "" {
		cfg.Importer.FetchMode = mode
	}
	if dir := os.Getenv("MEDIA_DIR"); dir != "" {
		cfg.Importer.MediaDir = dir
	}
	if chrome := os.Getenv("CHROME_BIN"); chrome != "" {
		cfg.Importer.ChromePath = chrome
	}
	if limit := os.Getenv("IMPORT_RATE_LIMIT"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil {
			return fmt.Errorf("invalid IMPORT_RATE_LIMIT value: %v", err)
		}
		cfg.Throttle.Limit = n
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "mongo"
	}
	if cfg.Database.MaxConns == 0 {
		cfg.Database.MaxConns = 4
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Redis.DB < 0 {
		cfg.Redis.DB = 0
	}
	if cfg.Rates.URL == "" {
		cfg.Rates.URL = "https://api.privatbank.ua/p24api/pubinfo?exchange&json&coursid=11"
	}
	if cfg.Rates.TTL == 0 {
		cfg.Rates.TTL = 30 * time.Minute
	}
	if cfg.Rates.StaleRetention == 0 {
		cfg.Rates.StaleRetention = 7 * 24 * time.Hour
	}
	if cfg.Rates.Timeout == 0 {
		cfg.Rates.Timeout = 10 * time.Second
	}
	if cfg.Rates.MaxRetries == 0 {
		cfg.Rates.MaxRetries = 2
	}
	if cfg.Geocoder.URL == "" {
		cfg.Geocoder.URL = "https://nominatim.openstreetmap.org/search"
	}
	if cfg.Geocoder.UserAgent == "" {
		cfg.Geocoder.UserAgent = "dominium-parser"
	}
	if cfg.Geocoder.CountrySuffix == "" {
		cfg.Geocoder.CountrySuffix = "Україна"
	}
	if len(cfg.Geocoder.DistrictTokens) == 0 {
		cfg.Geocoder.DistrictTokens = []string{"район", "р-н", "district"}
	}
	if cfg.Geocoder.Timeout == 0 {
		cfg.Geocoder.Timeout = 10 * time.Second
	}
	if cfg.Importer.FetchMode == "" {
		cfg.Importer.FetchMode = "http"
	}
	if cfg.Importer.FetchTimeout == 0 {
		cfg.Importer.FetchTimeout = 15 * time.Second
	}
	if cfg.Importer.ImageTimeout == 0 {
		cfg.Importer.ImageTimeout = 10 * time.Second
	}
	if cfg.Importer.UserAgent == "" {
		cfg.Importer.UserAgent = "Mozilla/5.0 (compatible; dominium-importer/1.0)"
	}
	if cfg.Importer.DescriptionMaxLength == 0 {
		cfg.Importer.DescriptionMaxLength = 4000
	}
	if cfg.Importer.MediaDir == "" {
		cfg.Importer.MediaDir = "media/listings"
	}
	if cfg.Throttle.Limit == 0 {
		cfg.Throttle.Limit = 5
	}
	if cfg.Throttle.Window == 0 {
		cfg.Throttle.Window = time.Minute
	}
}
