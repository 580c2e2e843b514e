package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"github.com/nikogura/candidate-scorer/pkg/scoring"
	"github.com/pkg/errors"
)

// Store backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// Environment overrides.
const (
	EnvListen    = "CANDIDATE_SCORER_LISTEN"
	EnvBackend   = "CANDIDATE_SCORER_STORE"
	EnvRedisAddr = "CANDIDATE_SCORER_REDIS_ADDR"
	EnvRedisPass = "CANDIDATE_SCORER_REDIS_PASSWORD"
	EnvRedisDB   = "CANDIDATE_SCORER_REDIS_DB"
)

// Config represents the application configuration.
type Config struct {
	Scoring scoring.Params `json:"scoring"`
	Server  ServerConfig   `json:"server"`
	Store   StoreConfig    `json:"store"`
}

// ServerConfig holds HTTP service settings.
type ServerConfig struct {
	Listen      string   `json:"listen"`
	CORSOrigins []string `json:"cors_origins,omitempty"` // empty allows all origins
	Debug       bool     `json:"debug,omitempty"`
}

// StoreConfig selects and configures the candidate record store.
type StoreConfig struct {
	Backend string      `json:"backend"`
	Dir     string      `json:"dir,omitempty"`
	Redis   RedisConfig `json:"redis,omitempty"`
}

// RedisConfig holds redis connection settings.
type RedisConfig struct {
	Addr      string `json:"addr,omitempty"`
	Password  string `json:"password,omitempty"`
	DB        int    `json:"db,omitempty"`
	KeyPrefix string `json:"key_prefix,omitempty"`
}

// Default returns a configuration with the standard scoring parameters, an
// in-memory store and the service on :8080.
func Default() (cfg Config) {
	cfg = Config{
		Scoring: scoring.DefaultParams(),
		Server: ServerConfig{
			Listen: ":8080",
		},
		Store: StoreConfig{
			Backend: BackendMemory,
		},
	}
	return cfg
}

// DefaultPath returns $HOME/.candidate-scorer/config.json.
func DefaultPath() (path string, err error) {
	var homeDir string
	homeDir, err = os.UserHomeDir()
	if err != nil {
		err = errors.Wrap(err, "failed to get user home directory")
		return path, err
	}

	path = filepath.Join(homeDir, ".candidate-scorer", "config.json")
	return path, err
}

// Load reads configuration from file with environment variable overrides.
// Values absent from the file keep their defaults. When configPath is empty
// and no file exists at the default location, the defaults are used.
func Load(configPath string) (cfg Config, err error) {
	cfg = Default()

	path := configPath
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return cfg, err
		}
	}

	var data []byte
	data, err = os.ReadFile(path)
	switch {
	case err == nil:
		err = json.Unmarshal(data, &cfg)
		if err != nil {
			err = errors.Wrapf(err, "failed to parse config file: %s", path)
			return cfg, err
		}
	case os.IsNotExist(err) && configPath == "":
		err = nil
	case os.IsNotExist(err):
		err = errors.Errorf("config file not found: %s (run 'candidate-scorer init' to create)", path)
		return cfg, err
	default:
		err = errors.Wrapf(err, "failed to read config file: %s", path)
		return cfg, err
	}

	err = cfg.applyEnv()
	if err != nil {
		return cfg, err
	}

	err = cfg.Validate()
	if err != nil {
		err = errors.Wrap(err, "config validation failed")
		return cfg, err
	}

	return cfg, err
}

func (c *Config) applyEnv() (err error) {
	if v := os.Getenv(EnvListen); v != "" {
		c.Server.Listen = v
	}
	if v := os.Getenv(EnvBackend); v != "" {
		c.Store.Backend = v
	}
	if v := os.Getenv(EnvRedisAddr); v != "" {
		c.Store.Redis.Addr = v
	}
	if v := os.Getenv(EnvRedisPass); v != "" {
		c.Store.Redis.Password = v
	}
	if v := os.Getenv(EnvRedisDB); v != "" {
		var db int
		db, err = strconv.Atoi(v)
		if err != nil {
			err = errors.Wrapf(err, "invalid %s: %s", EnvRedisDB, v)
			return err
		}
		c.Store.Redis.DB = db
	}
	return err
}

// Validate checks the configuration and fills in derived defaults.
func (c *Config) Validate() (err error) {
	err = c.Scoring.Validate()
	if err != nil {
		err = errors.Wrap(err, "scoring")
		return err
	}

	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}

	switch c.Store.Backend {
	case "", BackendMemory:
		c.Store.Backend = BackendMemory
	case BackendFile:
		if c.Store.Dir == "" {
			var homeDir string
			homeDir, err = os.UserHomeDir()
			if err != nil {
				err = errors.Wrap(err, "store.dir is required for the file backend")
				return err
			}
			c.Store.Dir = filepath.Join(homeDir, ".candidate-scorer", "records")
		}
	case BackendRedis:
		if c.Store.Redis.Addr == "" {
			err = errors.Errorf("store.redis.addr is required for the redis backend (or set %s)", EnvRedisAddr)
			return err
		}
		if c.Store.Redis.KeyPrefix == "" {
			c.Store.Redis.KeyPrefix = "candidate:"
		}
	default:
		err = errors.Errorf("unknown store backend %q (want memory, file or redis)", c.Store.Backend)
		return err
	}

	return err
}

// InitConfig creates a default configuration file.
func InitConfig(configPath string) (err error) {
	path := configPath
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return err
		}
	}

	dir := filepath.Dir(path)
	err = os.MkdirAll(dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create config directory: %s", dir)
		return err
	}

	_, err = os.Stat(path)
	if err == nil {
		err = errors.Errorf("config file already exists: %s", path)
		return err
	}

	defaultConfig := Default()
	defaultConfig.Store = StoreConfig{
		Backend: BackendFile,
		Dir:     filepath.Join(dir, "records"),
	}

	var data []byte
	data, err = json.MarshalIndent(defaultConfig, "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to marshal default config")
		return err
	}

	err = os.WriteFile(path, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write config file: %s", path)
		return err
	}

	return err
}
