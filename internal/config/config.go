// Package config manages the someipd daemon configuration using
// koanf/v2.
//
// Supports YAML files, environment variables, and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/netip"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// -------------------------------------------------------------------------
// Configuration Structures
// -------------------------------------------------------------------------

// Config holds the complete someipd configuration.
type Config struct {
	SD       SDConfig        `koanf:"sd"`
	FrameIO  FrameIOConfig   `koanf:"frameio"`
	Metrics  MetricsConfig   `koanf:"metrics"`
	Debug    DebugConfig     `koanf:"debug"`
	Log      LogConfig       `koanf:"log"`
	Services []ServiceConfig `koanf:"services"`
}

// SDConfig holds the Service Discovery multicast endpoint settings.
// Validate requires MulticastAddr to be set; someipd does not open a
// multicast socket from them.
type SDConfig struct {
	// MulticastAddr is the SD multicast group and port (e.g.,
	// "224.244.224.245:30490").
	MulticastAddr string `koanf:"multicast_addr"`
	// Interface names a network interface for SD multicast (optional);
	// it is loaded but not otherwise used.
	Interface string `koanf:"interface"`
}

// FrameIOConfig holds the unicast SOME/IP frame listener configuration.
type FrameIOConfig struct {
	// Addr is the UDP listen address for unicast SOME/IP traffic (e.g.,
	// ":30509").
	Addr string `koanf:"addr"`
	// ReadBufferSize is a receive buffer size in bytes; Validate
	// requires at least 16. frameio's pooled receive buffers are always
	// frameio.MaxFrameSize bytes and do not read this value.
	ReadBufferSize int `koanf:"read_buffer_size"`
}

// MetricsConfig holds the Prometheus metrics endpoint configuration.
type MetricsConfig struct {
	// Addr is the HTTP listen address for the metrics endpoint (e.g., ":9100").
	Addr string `koanf:"addr"`
	// Path is the URL path for the metrics endpoint (e.g., "/metrics").
	Path string `koanf:"path"`
}

// DebugConfig holds the operator-facing HTTP debug API configuration.
type DebugConfig struct {
	// Addr is the HTTP listen address for the debug API (e.g., ":8080").
	Addr string `koanf:"addr"`
}

// LogConfig holds the logging configuration.
type LogConfig struct {
	// Level is the log level: "debug", "info", "warn", "error".
	Level string `koanf:"level"`
	// Format is the log output format: "json" or "text".
	Format string `koanf:"format"`
}

// ServiceConfig describes a declarative SOME/IP service instance. Load
// and Validate check these entries; someipd does not send Service
// Discovery offers for them.
type ServiceConfig struct {
	// ServiceID and InstanceID identify the service instance.
	ServiceID  uint16 `koanf:"service_id"`
	InstanceID uint16 `koanf:"instance_id"`

	// MajorVersion and MinorVersion are the service's AUTOSAR version.
	MajorVersion uint8  `koanf:"major_version"`
	MinorVersion uint32 `koanf:"minor_version"`

	// Endpoint is the unicast address this instance answers requests on
	// (e.g., "192.168.0.10:30509").
	Endpoint string `koanf:"endpoint"`

	// TTL is the offer_service entry's advertised time-to-live.
	TTL time.Duration `koanf:"ttl"`
}

// Key returns a unique identifier for the service based on
// (service_id, instance_id). Validate uses it to reject duplicate
// service entries.
func (sc ServiceConfig) Key() string {
	return fmt.Sprintf("%#x:%#x", sc.ServiceID, sc.InstanceID)
}

// EndpointAddr parses Endpoint as a netip.AddrPort.
func (sc ServiceConfig) EndpointAddr() (netip.AddrPort, error) {
	if sc.Endpoint == "" {
		return netip.AddrPort{}, fmt.Errorf("service endpoint: %w", ErrInvalidServiceEndpoint)
	}
	addr, err := netip.ParseAddrPort(sc.Endpoint)
	if err != nil {
		return netip.AddrPort{}, fmt.Errorf("parse service endpoint %q: %w", sc.Endpoint, err)
	}
	return addr, nil
}

// -------------------------------------------------------------------------
// Defaults
// -------------------------------------------------------------------------

// DefaultConfig returns a Config populated with sensible defaults.
//
// 224.244.224.245:30490 is the AUTOSAR-standard SD multicast group and
// port; 30509 is the conventional SOME/IP unicast service port range
// starting point.
func DefaultConfig() *Config {
	return &Config{
		SD: SDConfig{
			MulticastAddr: "224.244.224.245:30490",
		},
		FrameIO: FrameIOConfig{
			Addr:           ":30509",
			ReadBufferSize: 65507,
		},
		Metrics: MetricsConfig{
			Addr: ":9100",
			Path: "/metrics",
		},
		Debug: DebugConfig{
			Addr: ":8080",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// -------------------------------------------------------------------------
// Loader
// -------------------------------------------------------------------------

// envPrefix is the environment variable prefix for someipd configuration.
// Variables are named SOMEIPD_<section>_<key>, e.g., SOMEIPD_SD_MULTICAST_ADDR.
const envPrefix = "SOMEIPD_"

// Load reads configuration from a YAML file at path, overlays
// environment variable overrides (SOMEIPD_ prefix), and merges on top
// of DefaultConfig(). Missing fields inherit defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	defaults := DefaultConfig()
	if err := loadDefaults(k, defaults); err != nil {
		return nil, fmt.Errorf("load config defaults: %w", err)
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("load config from %s: %w", path, err)
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKeyMapper), nil); err != nil {
		return nil, fmt.Errorf("load env overrides: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config from %s: %w", path, err)
	}

	return cfg, nil
}

// envKeyMapper transforms SOMEIPD_SD_MULTICAST_ADDR -> sd.multicast_addr.
func envKeyMapper(s string) string {
	s = strings.TrimPrefix(s, envPrefix)
	s = strings.ToLower(s)
	return strings.Replace(s, "_", ".", 1)
}

// loadDefaults marshals the default config into koanf as the base layer.
func loadDefaults(k *koanf.Koanf, defaults *Config) error {
	defaultMap := map[string]any{
		"sd.multicast_addr":     defaults.SD.MulticastAddr,
		"frameio.addr":          defaults.FrameIO.Addr,
		"frameio.read_buffer_size": defaults.FrameIO.ReadBufferSize,
		"metrics.addr":          defaults.Metrics.Addr,
		"metrics.path":          defaults.Metrics.Path,
		"debug.addr":            defaults.Debug.Addr,
		"log.level":             defaults.Log.Level,
		"log.format":            defaults.Log.Format,
	}

	for key, val := range defaultMap {
		if err := k.Set(key, val); err != nil {
			return fmt.Errorf("set default %s: %w", key, err)
		}
	}

	return nil
}

// -------------------------------------------------------------------------
// Validation
// -------------------------------------------------------------------------

// Validation errors.
var (
	// ErrEmptyFrameIOAddr indicates the unicast frame listener address is empty.
	ErrEmptyFrameIOAddr = errors.New("frameio.addr must not be empty")

	// ErrEmptySDMulticastAddr indicates the SD multicast address is empty.
	ErrEmptySDMulticastAddr = errors.New("sd.multicast_addr must not be empty")

	// ErrInvalidReadBufferSize indicates the read buffer is too small for a header.
	ErrInvalidReadBufferSize = errors.New("frameio.read_buffer_size must be >= 16")

	// ErrInvalidServiceEndpoint indicates a service has an invalid endpoint address.
	ErrInvalidServiceEndpoint = errors.New("service endpoint address is invalid")

	// ErrDuplicateServiceKey indicates two services share the same (service_id, instance_id) key.
	ErrDuplicateServiceKey = errors.New("duplicate service key")
)

// Validate checks the configuration for logical errors.
// Returns the first validation error encountered.
func Validate(cfg *Config) error {
	if cfg.FrameIO.Addr == "" {
		return ErrEmptyFrameIOAddr
	}
	if cfg.SD.MulticastAddr == "" {
		return ErrEmptySDMulticastAddr
	}
	if cfg.FrameIO.ReadBufferSize < 16 {
		return ErrInvalidReadBufferSize
	}

	return validateServices(cfg.Services)
}

// validateServices checks each declarative service entry for correctness.
func validateServices(services []ServiceConfig) error {
	seen := make(map[string]struct{}, len(services))

	for i, sc := range services {
		if _, err := sc.EndpointAddr(); err != nil {
			return fmt.Errorf("services[%d]: %w: %w", i, ErrInvalidServiceEndpoint, err)
		}

		key := sc.Key()
		if _, dup := seen[key]; dup {
			return fmt.Errorf("services[%d] key %q: %w", i, key, ErrDuplicateServiceKey)
		}
		seen[key] = struct{}{}
	}

	return nil
}

// -------------------------------------------------------------------------
// Log Level Parsing
// -------------------------------------------------------------------------

// ParseLogLevel maps a configuration log level string to the
// corresponding slog.Level. Unknown values default to slog.LevelInfo.
//
// Recognized values: "debug", "info", "warn", "error" (case-insensitive).
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
