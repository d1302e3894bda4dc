// Package config loads the runtime configuration of the ceilplan server
// and publisher from a YAML file.
//
// Loading applies, in order: built-in defaults, the YAML file, then
// CEILPLAN_* environment variables, and finally [Config.Validate].
//
//	http:
//	  addr: ":8080"
//	cache:
//	  url: "redis://localhost:6379/0"
//	mqtt:
//	  broker:
//	    host: "localhost"
//	    port: 1883
//
// Design files (rooms and ceilings) are not configuration; see pkg/io.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/ceilplan/pkg/errors"
)

// DefaultFile is the configuration file looked up when none is given.
const DefaultFile = "ceilplan.yaml"

// Config is the runtime configuration.
type Config struct {
	HTTP   HTTPConfig   `yaml:"http"`
	Cache  CacheConfig  `yaml:"cache"`
	MQTT   MQTTConfig   `yaml:"mqtt"`
	Log    LogConfig    `yaml:"log"`
	Render RenderConfig `yaml:"render"`
}

// HTTPConfig contains API server settings. Timeouts are in seconds.
type HTTPConfig struct {
	Addr         string `yaml:"addr"`
	ReadTimeout  int    `yaml:"read_timeout"`
	WriteTimeout int    `yaml:"write_timeout"`
	IdleTimeout  int    `yaml:"idle_timeout"`
	// MaxBodyBytes caps request bodies.
	MaxBodyBytes int64 `yaml:"max_body_bytes"`
}

// CacheConfig selects the cache backend; see cache.Open for URL forms.
type CacheConfig struct {
	URL string `yaml:"url"`
	// Prefix scopes keys when several deployments share a backend.
	Prefix string `yaml:"prefix"`
}

// MQTTConfig contains MQTT broker connection settings.
type MQTTConfig struct {
	Broker      MQTTBrokerConfig `yaml:"broker"`
	Auth        MQTTAuthConfig   `yaml:"auth"`
	QoS         int              `yaml:"qos"`
	TopicPrefix string           `yaml:"topic_prefix"`
	// KeepAlive is in seconds.
	KeepAlive int `yaml:"keep_alive"`
}

// MQTTBrokerConfig contains MQTT broker connection details.
type MQTTBrokerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	TLS      bool   `yaml:"tls"`
	ClientID string `yaml:"client_id"`
}

// MQTTAuthConfig contains MQTT credentials.
type MQTTAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// LogConfig sets the log level: debug, info, warn or error.
type LogConfig struct {
	Level string `yaml:"level"`
}

// RenderConfig holds render defaults applied when a request leaves them
// unset.
type RenderConfig struct {
	Scale  float64 `yaml:"scale"`
	Labels bool    `yaml:"labels"`
	Coves  bool    `yaml:"coves"`
}

// Default returns a Config with defaults applied.
func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Addr:         ":8080",
			ReadTimeout:  15,
			WriteTimeout: 60,
			IdleTimeout:  120,
			MaxBodyBytes: 1 << 20,
		},
		MQTT: MQTTConfig{
			Broker: MQTTBrokerConfig{
				Host:     "localhost",
				Port:     1883,
				ClientID: "ceilplan",
			},
			QoS:         1,
			TopicPrefix: "ceilplan",
			KeepAlive:   30,
		},
		Log:    LogConfig{Level: "info"},
		Render: RenderConfig{Scale: 30},
	}
}

// Load reads path and returns the validated configuration. An empty path
// skips the file and uses defaults plus environment overrides.
func Load(path string) (*Config, error) {
	if path == "" {
		return finish(Default())
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s not found", path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read parses YAML from r on top of the defaults, then applies overrides
// and validation like [Load].
func Read(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if len(bytes.TrimSpace(data)) > 0 {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parsing config file")
		}
	}
	return finish(cfg)
}

func finish(cfg *Config) (*Config, error) {
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies CEILPLAN_* environment variables.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("CEILPLAN_HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("CEILPLAN_CACHE_URL"); v != "" {
		cfg.Cache.URL = v
	}
	if v := os.Getenv("CEILPLAN_MQTT_HOST"); v != "" {
		cfg.MQTT.Broker.Host = v
	}
	if v := os.Getenv("CEILPLAN_MQTT_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.MQTT.Broker.Port = port
		}
	}
	if v := os.Getenv("CEILPLAN_MQTT_USERNAME"); v != "" {
		cfg.MQTT.Auth.Username = v
	}
	if v := os.Getenv("CEILPLAN_MQTT_PASSWORD"); v != "" {
		cfg.MQTT.Auth.Password = v
	}
	if v := os.Getenv("CEILPLAN_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []string

	if c.HTTP.Addr == "" {
		errs = append(errs, "http.addr is required")
	}
	if c.HTTP.ReadTimeout < 0 || c.HTTP.WriteTimeout < 0 || c.HTTP.IdleTimeout < 0 {
		errs = append(errs, "http timeouts cannot be negative")
	}
	if c.HTTP.MaxBodyBytes <= 0 {
		errs = append(errs, "http.max_body_bytes must be positive")
	}

	if c.Cache.URL != "" && c.Cache.URL != "none" && !strings.HasPrefix(c.Cache.URL, "file://") {
		if err := errors.ValidateCacheURL(c.Cache.URL); err != nil {
			errs = append(errs, "cache.url: "+errors.UserMessage(err))
		}
	}

	if c.MQTT.Broker.Host == "" {
		errs = append(errs, "mqtt.broker.host is required")
	}
	if c.MQTT.Broker.Port < 1 || c.MQTT.Broker.Port > 65535 {
		errs = append(errs, "mqtt.broker.port must be between 1 and 65535")
	}
	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		errs = append(errs, "mqtt.qos must be 0, 1, or 2")
	}
	if err := errors.ValidateTopicSegment(c.MQTT.TopicPrefix); err != nil {
		errs = append(errs, "mqtt.topic_prefix: "+errors.UserMessage(err))
	}

	if !logLevels[c.Log.Level] {
		errs = append(errs, fmt.Sprintf("log.level %q must be one of debug, info, warn, error", c.Log.Level))
	}
	if c.Render.Scale <= 0 {
		errs = append(errs, "render.scale must be positive")
	}

	if len(errs) > 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "configuration errors: %s", strings.Join(errs, "; "))
	}
	return nil
}

// ReadTimeout returns the HTTP read timeout as a Duration.
func (c *Config) ReadTimeout() time.Duration {
	return time.Duration(c.HTTP.ReadTimeout) * time.Second
}

// WriteTimeout returns the HTTP write timeout as a Duration.
func (c *Config) WriteTimeout() time.Duration {
	return time.Duration(c.HTTP.WriteTimeout) * time.Second
}

// IdleTimeout returns the HTTP idle timeout as a Duration.
func (c *Config) IdleTimeout() time.Duration {
	return time.Duration(c.HTTP.IdleTimeout) * time.Second
}

// BrokerURL returns the paho broker URL, tcp:// or ssl://.
func (c *Config) BrokerURL() string {
	return c.MQTT.BrokerURL()
}

// BrokerURL returns the paho broker URL for m.
func (m MQTTConfig) BrokerURL() string {
	scheme := "tcp"
	if m.Broker.TLS {
		scheme = "ssl"
	}
	return fmt.Sprintf("%s://%s:%d", scheme, m.Broker.Host, m.Broker.Port)
}
