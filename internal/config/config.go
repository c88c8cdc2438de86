package config

import (
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"pineapple-server/internal/util"
	"pineapple-server/pkg/pineapple"
)

// Config provides configuration for the pineapple server
type Config struct {
	loaded         bool
	PGDSN          string `yaml:"pgDsn" envconfig:"pg_dsn"`
	MigrationsPath string `yaml:"migrationsPath" envconfig:"migrations_path"`
	JWT            struct {
		PublicKey  string `yaml:"publicKey" envconfig:"public_key"`
		PrivateKey string `yaml:"privateKey" envconfig:"private_key"`
	}
	RecaptchaSecret string `yaml:"recaptchaSecret" envconfig:"recaptcha_secret"`
	Log             struct {
		Level             string `yaml:"level" envconfig:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	}
	Game struct {
		MinPlayers int `yaml:"minPlayers" envconfig:"min_players"`
		MaxPlayers int `yaml:"maxPlayers" envconfig:"max_players"`
		ScoopBonus int `yaml:"scoopBonus" envconfig:"scoop_bonus"`
	}
}

var config Config

// DefaultConfig returns a config with only the defaults applied
func DefaultConfig() Config {
	var c Config
	c.MigrationsPath = "./sql"
	c.Log.Level = "info"
	return c
}

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

// Load will load the configuration. A missing config file is fine,
// the defaults and the environment still apply.
func Load() error {
	config = DefaultConfig()

	configFile := util.Getenv("PINEAPPLE_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	} else {
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&config); err != nil {
			return err
		}
	}

	if err := envconfig.Process("pineapple", &config); err != nil {
		return err
	}

	config.loaded = true
	return nil
}

// Options maps the game overrides onto the defaults. A zero value
// keeps the default.
func (c Config) Options() pineapple.Options {
	opts := pineapple.DefaultOptions()
	if c.Game.MinPlayers > 0 {
		opts.MinPlayers = c.Game.MinPlayers
	}

	if c.Game.MaxPlayers > 0 {
		opts.MaxPlayers = c.Game.MaxPlayers
	}

	if c.Game.ScoopBonus > 0 {
		opts.ScoopBonus = c.Game.ScoopBonus
	}

	return opts
}
