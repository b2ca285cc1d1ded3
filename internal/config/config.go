package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dropDatabas3/hellojohn-identity/internal/store"
)

type Config struct {
	// Bloque app (opcional en YAML). Si no está, queda vacío.
	App struct {
		// dev | staging | prod
		Env      string `yaml:"app_env"`
		LogLevel string `yaml:"log_level"`
	} `yaml:"app"`

	Storage struct {
		// mongo | memory | redis. memory (default) no persiste entre procesos.
		Driver         string `yaml:"driver"`
		ConnectTimeout string `yaml:"connect_timeout"`
		Mongo          struct {
			URI          string `yaml:"uri"`
			Database     string `yaml:"database"`
			Transactions bool   `yaml:"transactions"` // requiere replica set
		} `yaml:"mongo"`
		Redis struct {
			Addr     string `yaml:"addr"` // host:port o redis://...
			DB       int    `yaml:"db"`
			Password string `yaml:"password"`
			Prefix   string `yaml:"prefix"`
		} `yaml:"redis"`
	} `yaml:"storage"`

	// Superficie operativa: /healthz y /metrics
	Ops struct {
		Addr string `yaml:"addr"`
	} `yaml:"ops"`
}

// Default retorna la config con defaults aplicados, sin archivo ni env.
func Default() *Config {
	var c Config
	c.applyDefaults()
	return &c
}

// Load lee el YAML en path (opcional: "" usa sólo defaults + env), aplica
// defaults, overrides de entorno y valida.
func Load(path string) (*Config, error) {
	var c Config
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	c.applyDefaults()
	c.applyEnvOverrides()

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.App.Env == "" {
		c.App.Env = "dev"
	}
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "memory"
	}
	if c.Storage.ConnectTimeout == "" {
		c.Storage.ConnectTimeout = "10s"
	}
	if c.Storage.Mongo.Database == "" {
		c.Storage.Mongo.Database = "identity"
	}
	if c.Storage.Redis.Prefix == "" {
		c.Storage.Redis.Prefix = "identity"
	}
	if c.Ops.Addr == "" {
		c.Ops.Addr = ":9090"
	}
}

func getEnvStr(key string) (string, bool) {
	v := os.Getenv(key)
	return v, v != ""
}
func getEnvInt(key string) (int, bool) {
	if s, ok := getEnvStr(key); ok {
		if i, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return i, true
		}
	}
	return 0, false
}
func getEnvBool(key string) (bool, bool) {
	if s, ok := getEnvStr(key); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
			return b, true
		}
	}
	return false, false
}

func (c *Config) applyEnvOverrides() {
	if v, ok := getEnvStr("APP_ENV"); ok {
		c.App.Env = strings.ToLower(v)
	}
	if v, ok := getEnvStr("LOG_LEVEL"); ok {
		c.App.LogLevel = strings.ToLower(v)
	}

	if v, ok := getEnvStr("STORAGE_DRIVER"); ok {
		c.Storage.Driver = strings.ToLower(v)
	}
	if v, ok := getEnvStr("MONGO_URI"); ok {
		c.Storage.Mongo.URI = v
	}
	if v, ok := getEnvStr("MONGO_DATABASE"); ok {
		c.Storage.Mongo.Database = v
	}
	if v, ok := getEnvBool("MONGO_TRANSACTIONS"); ok {
		c.Storage.Mongo.Transactions = v
	}

	if v, ok := getEnvStr("REDIS_ADDR"); ok {
		c.Storage.Redis.Addr = v
	}
	if v, ok := getEnvInt("REDIS_DB"); ok {
		c.Storage.Redis.DB = v
	}
	if v, ok := getEnvStr("REDIS_PASSWORD"); ok {
		c.Storage.Redis.Password = v
	}
	if v, ok := getEnvStr("REDIS_PREFIX"); ok {
		c.Storage.Redis.Prefix = v
	}

	if v, ok := getEnvStr("OPS_ADDR"); ok {
		c.Ops.Addr = v
	}
}

// Validate verifica que el driver elegido tenga lo necesario para conectar.
func (c *Config) Validate() error {
	var errs []error
	switch c.Storage.Driver {
	case "memory":
	case "mongo":
		if strings.TrimSpace(c.Storage.Mongo.URI) == "" {
			errs = append(errs, errors.New("config: storage.mongo.uri is required for driver mongo"))
		}
	case "redis":
		if strings.TrimSpace(c.Storage.Redis.Addr) == "" {
			errs = append(errs, errors.New("config: storage.redis.addr is required for driver redis"))
		}
	default:
		errs = append(errs, fmt.Errorf("config: unknown storage driver %q", c.Storage.Driver))
	}
	if _, err := time.ParseDuration(c.Storage.ConnectTimeout); err != nil {
		errs = append(errs, fmt.Errorf("config: storage.connect_timeout: %w", err))
	}
	return errors.Join(errs...)
}

// AdapterConfig traduce la sección storage a la config del adapter.
func (c *Config) AdapterConfig() store.AdapterConfig {
	timeout, _ := time.ParseDuration(c.Storage.ConnectTimeout)
	cfg := store.AdapterConfig{
		Name:           c.Storage.Driver,
		ConnectTimeout: timeout,
	}
	switch c.Storage.Driver {
	case "mongo":
		cfg.DSN = c.Storage.Mongo.URI
		cfg.Database = c.Storage.Mongo.Database
		cfg.Transactions = c.Storage.Mongo.Transactions
	case "redis":
		cfg.DSN = c.Storage.Redis.Addr
		cfg.Database = c.Storage.Redis.Prefix
		cfg.Password = c.Storage.Redis.Password
		cfg.DB = c.Storage.Redis.DB
	}
	return cfg
}
