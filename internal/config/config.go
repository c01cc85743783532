package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/go-yaml/yaml"
)

// EnvPrefix prefixes every environment override, e.g. CONFADMIN_BACKEND_URL.
const EnvPrefix = "CONFADMIN_"

type Config struct {
	Server  Server  `yaml:"server" envPrefix:"SERVER_"`
	Backend Backend `yaml:"backend" envPrefix:"BACKEND_"`
	Log     Log     `yaml:"log" envPrefix:"LOG_"`
}

type Server struct {
	Listen        string `yaml:"listen" env:"LISTEN"`
	InstanceID    string `yaml:"instanceID" env:"INSTANCE_ID"`
	RedisAddr     string `yaml:"redisAddr" env:"REDIS_ADDR"`
	RedisPassword string `yaml:"redisPassword" env:"REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redisDB" env:"REDIS_DB"`
	MemcachedAddr string `yaml:"memcachedAddr" env:"MEMCACHED_ADDR"`
	EnableTrace   bool   `yaml:"enableTrace" env:"ENABLE_TRACE"`
	TraceEndpoint string `yaml:"traceEndpoint" env:"TRACE_ENDPOINT"`
}

// Backend is the conference REST API this service fronts.
type Backend struct {
	URL       string `yaml:"url" env:"URL"`
	UserAgent string `yaml:"userAgent" env:"USER_AGENT"`
}

type Log struct {
	Level  string `yaml:"level" env:"LEVEL"`   // debug, info, warn, error
	Format string `yaml:"format" env:"FORMAT"` // text, json
}

func Default() Config {
	return Config{
		Server: Server{
			Listen: ":8000",
		},
		Backend: Backend{
			URL:       "http://localhost:3000",
			UserAgent: "confadmin",
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the YAML file at path, if any, over the defaults and then applies
// CONFADMIN_* environment overrides.
func Load(path string) (Config, error) {
	config := Default()

	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return Config{}, err
		}
		defer file.Close()

		err = yaml.NewDecoder(file).Decode(&config)
		if err != nil {
			return Config{}, fmt.Errorf("failed to decode %s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(&config, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if config.Backend.URL == "" {
		return Config{}, fmt.Errorf("backend url is required")
	}

	return config, nil
}
