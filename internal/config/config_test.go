package config_test

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/dantte-lp/go-someip/internal/config"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()

	if cfg.SD.MulticastAddr != "224.244.224.245:30490" {
		t.Errorf("SD.MulticastAddr = %q, want %q", cfg.SD.MulticastAddr, "224.244.224.245:30490")
	}

	if cfg.FrameIO.Addr != ":30509" {
		t.Errorf("FrameIO.Addr = %q, want %q", cfg.FrameIO.Addr, ":30509")
	}

	if cfg.FrameIO.ReadBufferSize != 65507 {
		t.Errorf("FrameIO.ReadBufferSize = %d, want %d", cfg.FrameIO.ReadBufferSize, 65507)
	}

	if cfg.Metrics.Addr != ":9100" {
		t.Errorf("Metrics.Addr = %q, want %q", cfg.Metrics.Addr, ":9100")
	}

	if cfg.Metrics.Path != "/metrics" {
		t.Errorf("Metrics.Path = %q, want %q", cfg.Metrics.Path, "/metrics")
	}

	if cfg.Debug.Addr != ":8080" {
		t.Errorf("Debug.Addr = %q, want %q", cfg.Debug.Addr, ":8080")
	}

	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "info")
	}

	if cfg.Log.Format != "json" {
		t.Errorf("Log.Format = %q, want %q", cfg.Log.Format, "json")
	}

	// Defaults must pass validation.
	if err := config.Validate(cfg); err != nil {
		t.Errorf("DefaultConfig() failed validation: %v", err)
	}
}

func TestLoadFromYAML(t *testing.T) {
	t.Parallel()

	yamlContent := `
sd:
  multicast_addr: "239.0.0.1:30490"
frameio:
  addr: ":40000"
  read_buffer_size: 4096
metrics:
  addr: ":9200"
  path: "/custom-metrics"
log:
  level: "debug"
  format: "text"
`

	path := writeTemp(t, yamlContent)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load(%q) error: %v", path, err)
	}

	if cfg.SD.MulticastAddr != "239.0.0.1:30490" {
		t.Errorf("SD.MulticastAddr = %q, want %q", cfg.SD.MulticastAddr, "239.0.0.1:30490")
	}

	if cfg.FrameIO.Addr != ":40000" {
		t.Errorf("FrameIO.Addr = %q, want %q", cfg.FrameIO.Addr, ":40000")
	}

	if cfg.FrameIO.ReadBufferSize != 4096 {
		t.Errorf("FrameIO.ReadBufferSize = %d, want %d", cfg.FrameIO.ReadBufferSize, 4096)
	}

	if cfg.Metrics.Addr != ":9200" {
		t.Errorf("Metrics.Addr = %q, want %q", cfg.Metrics.Addr, ":9200")
	}

	if cfg.Metrics.Path != "/custom-metrics" {
		t.Errorf("Metrics.Path = %q, want %q", cfg.Metrics.Path, "/custom-metrics")
	}

	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "debug")
	}

	if cfg.Log.Format != "text" {
		t.Errorf("Log.Format = %q, want %q", cfg.Log.Format, "text")
	}
}

func TestLoadMergesDefaults(t *testing.T) {
	t.Parallel()

	// Partial YAML: only override frameio.addr and log.level.
	// Everything else should inherit from defaults.
	yamlContent := `
frameio:
  addr: ":55555"
log:
  level: "warn"
`

	path := writeTemp(t, yamlContent)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load(%q) error: %v", path, err)
	}

	if cfg.FrameIO.Addr != ":55555" {
		t.Errorf("FrameIO.Addr = %q, want %q", cfg.FrameIO.Addr, ":55555")
	}

	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "warn")
	}

	// Default values should be preserved.
	if cfg.Metrics.Addr != ":9100" {
		t.Errorf("Metrics.Addr = %q, want default %q", cfg.Metrics.Addr, ":9100")
	}

	if cfg.SD.MulticastAddr != "224.244.224.245:30490" {
		t.Errorf("SD.MulticastAddr = %q, want default %q", cfg.SD.MulticastAddr, "224.244.224.245:30490")
	}

	if cfg.Log.Format != "json" {
		t.Errorf("Log.Format = %q, want default %q", cfg.Log.Format, "json")
	}
}

func TestValidateErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(*config.Config)
		wantErr error
	}{
		{
			name: "empty frameio addr",
			modify: func(cfg *config.Config) {
				cfg.FrameIO.Addr = ""
			},
			wantErr: config.ErrEmptyFrameIOAddr,
		},
		{
			name: "empty sd multicast addr",
			modify: func(cfg *config.Config) {
				cfg.SD.MulticastAddr = ""
			},
			wantErr: config.ErrEmptySDMulticastAddr,
		},
		{
			name: "read buffer too small",
			modify: func(cfg *config.Config) {
				cfg.FrameIO.ReadBufferSize = 8
			},
			wantErr: config.ErrInvalidReadBufferSize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.DefaultConfig()
			tt.modify(cfg)

			err := config.Validate(cfg)
			if err == nil {
				t.Fatal("Validate() returned nil, want error")
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  slog.Level
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "DEBUG", want: slog.LevelDebug},
		{input: "info", want: slog.LevelInfo},
		{input: "INFO", want: slog.LevelInfo},
		{input: "warn", want: slog.LevelWarn},
		{input: "WARN", want: slog.LevelWarn},
		{input: "error", want: slog.LevelError},
		{input: "Error", want: slog.LevelError},
		{input: "unknown", want: slog.LevelInfo},
		{input: "", want: slog.LevelInfo},
		{input: "trace", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got := config.ParseLogLevel(tt.input)
			if got != tt.want {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLoadNonexistentFile(t *testing.T) {
	t.Parallel()

	_, err := config.Load("/nonexistent/path/config.yml")
	if err == nil {
		t.Fatal("Load() returned nil error for nonexistent file")
	}
}

func TestLoadWithServices(t *testing.T) {
	t.Parallel()

	yamlContent := `
services:
  - service_id: 0x1234
    instance_id: 0x0001
    major_version: 1
    minor_version: 0
    endpoint: "192.168.0.10:30509"
    ttl: "3s"
  - service_id: 0x1235
    instance_id: 0x0001
    major_version: 1
    minor_version: 0
    endpoint: "192.168.0.10:30510"
    ttl: "3s"
`

	path := writeTemp(t, yamlContent)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load(%q) error: %v", path, err)
	}

	if len(cfg.Services) != 2 {
		t.Fatalf("len(Services) = %d, want 2", len(cfg.Services))
	}
	if cfg.Services[0].ServiceID != 0x1234 || cfg.Services[0].InstanceID != 0x0001 {
		t.Errorf("Services[0] = %+v", cfg.Services[0])
	}

	if _, err := cfg.Services[0].EndpointAddr(); err != nil {
		t.Errorf("EndpointAddr() error: %v", err)
	}
}

func TestValidateRejectsDuplicateServiceKey(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Services = []config.ServiceConfig{
		{ServiceID: 1, InstanceID: 1, Endpoint: "10.0.0.1:1"},
		{ServiceID: 1, InstanceID: 1, Endpoint: "10.0.0.2:2"},
	}

	err := config.Validate(cfg)
	if !errors.Is(err, config.ErrDuplicateServiceKey) {
		t.Errorf("Validate() error = %v, want ErrDuplicateServiceKey", err)
	}
}

func TestValidateRejectsInvalidServiceEndpoint(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Services = []config.ServiceConfig{
		{ServiceID: 1, InstanceID: 1, Endpoint: "not-an-address"},
	}

	err := config.Validate(cfg)
	if !errors.Is(err, config.ErrInvalidServiceEndpoint) {
		t.Errorf("Validate() error = %v, want ErrInvalidServiceEndpoint", err)
	}
}

func writeTemp(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "someipd.yml")

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}

	return path
}
