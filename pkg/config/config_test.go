package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/ceilplan/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ceilplan.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
http:
  addr: "127.0.0.1:9090"
  write_timeout: 10
cache:
  url: "redis://localhost:6379/2"
  prefix: "staging:"
mqtt:
  broker:
    host: "broker.local"
    port: 8883
    tls: true
  qos: 2
log:
  level: debug
render:
  scale: 20
  labels: true
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.HTTP.Addr != "127.0.0.1:9090" {
		t.Errorf("HTTP.Addr = %q", cfg.HTTP.Addr)
	}
	if cfg.WriteTimeout() != 10*time.Second {
		t.Errorf("WriteTimeout = %v", cfg.WriteTimeout())
	}
	// Unset keys keep their defaults.
	if cfg.ReadTimeout() != 15*time.Second || cfg.IdleTimeout() != 120*time.Second {
		t.Errorf("timeouts = %v/%v, want defaults", cfg.ReadTimeout(), cfg.IdleTimeout())
	}
	if cfg.Cache.URL != "redis://localhost:6379/2" || cfg.Cache.Prefix != "staging:" {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.BrokerURL() != "ssl://broker.local:8883" {
		t.Errorf("BrokerURL = %q", cfg.BrokerURL())
	}
	if cfg.MQTT.Broker.ClientID != "ceilplan" || cfg.MQTT.TopicPrefix != "ceilplan" {
		t.Errorf("MQTT defaults lost: %+v", cfg.MQTT)
	}
	if cfg.Render.Scale != 20 || !cfg.Render.Labels || cfg.Render.Coves {
		t.Errorf("Render = %+v", cfg.Render)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if cfg.HTTP.Addr != ":8080" || cfg.BrokerURL() != "tcp://localhost:1883" || cfg.Log.Level != "info" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}

	cfg, err = Load(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("empty file error = %v", err)
	}
	if cfg.HTTP.MaxBodyBytes != 1<<20 {
		t.Errorf("MaxBodyBytes = %d", cfg.HTTP.MaxBodyBytes)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/ceilplan.yaml")
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	tests := map[string]string{
		"syntax":      "http: [unclosed",
		"unknown key": "http:\n  adress: \":80\"\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, content))
			if !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("err = %v, want INVALID_FORMAT", err)
			}
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CEILPLAN_HTTP_ADDR", ":7000")
	t.Setenv("CEILPLAN_CACHE_URL", "mongodb://db.local/ceilplan")
	t.Setenv("CEILPLAN_MQTT_HOST", "mqtt.env")
	t.Setenv("CEILPLAN_MQTT_PORT", "1884")
	t.Setenv("CEILPLAN_MQTT_USERNAME", "planner")
	t.Setenv("CEILPLAN_MQTT_PASSWORD", "s3cret")
	t.Setenv("CEILPLAN_LOG_LEVEL", "warn")

	cfg, err := Load(writeConfig(t, "http:\n  addr: \":9000\"\nmqtt:\n  broker:\n    host: file.host\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.HTTP.Addr != ":7000" {
		t.Errorf("env should override file: addr = %q", cfg.HTTP.Addr)
	}
	if cfg.Cache.URL != "mongodb://db.local/ceilplan" {
		t.Errorf("Cache.URL = %q", cfg.Cache.URL)
	}
	if cfg.BrokerURL() != "tcp://mqtt.env:1884" {
		t.Errorf("BrokerURL = %q", cfg.BrokerURL())
	}
	if cfg.MQTT.Auth.Username != "planner" || cfg.MQTT.Auth.Password != "s3cret" {
		t.Errorf("Auth = %+v", cfg.MQTT.Auth)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
}

func TestEnvOverrideBadPortIgnored(t *testing.T) {
	t.Setenv("CEILPLAN_MQTT_PORT", "abc")
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MQTT.Broker.Port != 1883 {
		t.Errorf("Port = %d, want default", cfg.MQTT.Broker.Port)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"defaults", func(*Config) {}, ""},
		{"file cache", func(c *Config) { c.Cache.URL = "file:///tmp/ceilplan" }, ""},
		{"no cache", func(c *Config) { c.Cache.URL = "none" }, ""},
		{"empty addr", func(c *Config) { c.HTTP.Addr = "" }, "http.addr is required"},
		{"negative timeout", func(c *Config) { c.HTTP.IdleTimeout = -1 }, "timeouts cannot be negative"},
		{"body limit", func(c *Config) { c.HTTP.MaxBodyBytes = 0 }, "max_body_bytes"},
		{"cache scheme", func(c *Config) { c.Cache.URL = "memcached://x" }, "cache.url"},
		{"broker host", func(c *Config) { c.MQTT.Broker.Host = "" }, "mqtt.broker.host"},
		{"broker port", func(c *Config) { c.MQTT.Broker.Port = 70000 }, "mqtt.broker.port"},
		{"qos", func(c *Config) { c.MQTT.QoS = 3 }, "mqtt.qos"},
		{"topic prefix", func(c *Config) { c.MQTT.TopicPrefix = "a/b" }, "mqtt.topic_prefix"},
		{"log level", func(c *Config) { c.Log.Level = "trace" }, "log.level"},
		{"scale", func(c *Config) { c.Render.Scale = 0 }, "render.scale"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.want == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want %q", err, tt.want)
			}
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("code = %s, want INVALID_CONFIG", errors.GetCode(err))
			}
		})
	}
}

func TestValidateReportsAll(t *testing.T) {
	cfg := Default()
	cfg.HTTP.Addr = ""
	cfg.MQTT.QoS = 9
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "http.addr") || !strings.Contains(err.Error(), "mqtt.qos") {
		t.Errorf("err = %v, want both problems", err)
	}
}
