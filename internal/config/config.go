package config

import (
	"errors"
	"homegame-server/internal/util"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config provides configuration for the home game server
type Config struct {
	loaded         bool
	Addr           string `yaml:"addr" envconfig:"addr"`
	PGDSN          string `yaml:"pgDsn" envconfig:"pg_dsn"`
	MigrationsPath string `yaml:"migrationsPath" envconfig:"migrations_path"`
	// Oracle selects the hand ranking implementation: chehsunliu or paulhankin
	Oracle string `yaml:"oracle" envconfig:"oracle"`
	Log    struct {
		Level             string `yaml:"level"`
		Format            string `yaml:"format"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	} `yaml:"log"`
	Room struct {
		// NextHandDelay is the countdown, in seconds, before the next hand is dealt automatically
		NextHandDelay int `yaml:"nextHandDelay" envconfig:"next_hand_delay"`
		ChatLimit     int `yaml:"chatLimit" envconfig:"chat_limit"`
		MaxSeats      int `yaml:"maxSeats" envconfig:"max_seats"`
	} `yaml:"room"`
	Token struct {
		Secret string `yaml:"secret"`
		// TTL is how long, in hours, a seat token stays valid
		TTL int `yaml:"ttl"`
	} `yaml:"token"`
}

// DefaultConfig returns the configuration used when no file or environment overrides it
func DefaultConfig() Config {
	var cfg Config
	cfg.Addr = ":5000"
	cfg.MigrationsPath = "./sql"
	cfg.Oracle = "chehsunliu"
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.Room.NextHandDelay = 4
	cfg.Room.ChatLimit = 200
	cfg.Room.MaxSeats = 10
	cfg.Token.TTL = 24

	return cfg
}

var config Config

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// A missing configuration file is not an error; the defaults and environment are used instead
func Load() error {
	cfg := DefaultConfig()

	configFile := util.Getenv("HOMEGAME_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	if file != nil {
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
			return err
		}
	}

	if err := envconfig.Process("homegame", &cfg); err != nil {
		return err
	}

	cfg.loaded = true
	config = cfg
	return nil
}
