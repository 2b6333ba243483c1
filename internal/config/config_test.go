package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const fullEnvYAML = `
server:
  port: "9090"
  read_timeout: 3s
  write_timeout: 4s
request:
  timeout: 2s
reliability:
  rate_limit_enabled: false
  rate_limit_rps: 20
  rate_limit_burst: 40
shutdown:
  timeout: 15s
  in_flight_timeout: 5s
  in_flight_check_interval: 50ms
lifecycle:
  overload_window: 30s
  overload_threshold_pct: 90
docs:
  enabled: false
forecast:
  seed: 42
`

func writeEnvFile(t *testing.T, dir, env, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, env+".yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s.yaml: %v", env, err)
	}
}

func TestLoadFrom_Defaults_WhenDevFileMissing(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	cfg, err := LoadFrom(t.TempDir(), "")
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Source != "defaults" {
		t.Errorf("Source = %q, want defaults", cfg.Source)
	}
	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %q, want 8080", cfg.ServerPort)
	}
	if !cfg.RateLimitEnabled || cfg.RateLimitRPS != 100 || cfg.RateLimitBurst != 250 {
		t.Errorf("rate limit = %v/%d/%d, want true/100/250", cfg.RateLimitEnabled, cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Errorf("RequestTimeout = %v, want 5s", cfg.RequestTimeout)
	}
	if cfg.WriteTimeout != 10*time.Second {
		t.Errorf("WriteTimeout = %v, want 10s", cfg.WriteTimeout)
	}
	if !cfg.DocsEnabled {
		t.Error("DocsEnabled = false, want true by default")
	}
	if cfg.OverloadThresholdPct != 80 || cfg.OverloadWindow != time.Minute {
		t.Errorf("overload = %d%%/%v, want 80%%/1m", cfg.OverloadThresholdPct, cfg.OverloadWindow)
	}
	if cfg.ForecastSeed != 0 {
		t.Errorf("ForecastSeed = %d, want 0", cfg.ForecastSeed)
	}
}

func TestLoadFrom_FullFile(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	dir := t.TempDir()
	writeEnvFile(t, dir, "staging", fullEnvYAML)

	cfg, err := LoadFrom(dir, "staging")
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if !strings.HasSuffix(cfg.Source, "staging.yaml") {
		t.Errorf("Source = %q, want staging.yaml path", cfg.Source)
	}
	if cfg.ServerPort != "9090" {
		t.Errorf("ServerPort = %q, want 9090", cfg.ServerPort)
	}
	if cfg.ReadTimeout != 3*time.Second || cfg.WriteTimeout != 4*time.Second {
		t.Errorf("timeouts = %v/%v, want 3s/4s", cfg.ReadTimeout, cfg.WriteTimeout)
	}
	if cfg.RequestTimeout != 2*time.Second {
		t.Errorf("RequestTimeout = %v, want 2s", cfg.RequestTimeout)
	}
	if cfg.RateLimitEnabled {
		t.Error("RateLimitEnabled = true, want false")
	}
	if cfg.RateLimitRPS != 20 || cfg.RateLimitBurst != 40 {
		t.Errorf("rate limit = %d/%d, want 20/40", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
	if cfg.ShutdownTimeout != 15*time.Second || cfg.ShutdownInFlightTimeout != 5*time.Second || cfg.ShutdownInFlightCheckInterval != 50*time.Millisecond {
		t.Errorf("shutdown = %v/%v/%v", cfg.ShutdownTimeout, cfg.ShutdownInFlightTimeout, cfg.ShutdownInFlightCheckInterval)
	}
	if cfg.OverloadWindow != 30*time.Second || cfg.OverloadThresholdPct != 90 {
		t.Errorf("overload = %v/%d", cfg.OverloadWindow, cfg.OverloadThresholdPct)
	}
	if cfg.DocsEnabled {
		t.Error("DocsEnabled = true, want false")
	}
	if cfg.ForecastSeed != 42 {
		t.Errorf("ForecastSeed = %d, want 42", cfg.ForecastSeed)
	}
}

func TestLoadFrom_EnvFileNotFound(t *testing.T) {
	_, err := LoadFrom(t.TempDir(), "nonexistent")
	if err == nil {
		t.Fatal("LoadFrom() expected error for missing non-dev env file")
	}
	if !strings.Contains(err.Error(), "config file not found") {
		t.Errorf("error = %v, want config file not found", err)
	}
}

func TestLoadFrom_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeEnvFile(t, dir, "dev", "server: [unclosed")
	if _, err := LoadFrom(dir, "dev"); err == nil {
		t.Fatal("LoadFrom() expected parse error")
	}
}

func TestLoadFrom_ServerPortEnvOverride(t *testing.T) {
	dir := t.TempDir()
	writeEnvFile(t, dir, "dev", "server:\n  port: \"9090\"\n")
	t.Setenv("SERVER_PORT", "7070")

	cfg, err := LoadFrom(dir, "dev")
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.ServerPort != "7070" {
		t.Errorf("ServerPort = %q, want 7070 from env", cfg.ServerPort)
	}
}

func TestLoadFrom_InvalidPort(t *testing.T) {
	t.Setenv("SERVER_PORT", "http")
	if _, err := LoadFrom(t.TempDir(), "dev"); err == nil {
		t.Fatal("LoadFrom() expected error for non-numeric port")
	}
}

func TestLoadFrom_ThresholdAbove100(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	dir := t.TempDir()
	writeEnvFile(t, dir, "dev", "lifecycle:\n  overload_threshold_pct: 150\n")
	if _, err := LoadFrom(dir, "dev"); err == nil {
		t.Fatal("LoadFrom() expected error for threshold above 100")
	}
}

func TestLoadFrom_WriteTimeoutRaisedAboveRequestTimeout(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	dir := t.TempDir()
	writeEnvFile(t, dir, "dev", "server:\n  write_timeout: 1s\nrequest:\n  timeout: 3s\n")
	cfg, err := LoadFrom(dir, "dev")
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.WriteTimeout != 4*time.Second {
		t.Errorf("WriteTimeout = %v, want 4s", cfg.WriteTimeout)
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"", time.Second},
		{"  ", time.Second},
		{"250ms", 250 * time.Millisecond},
		{"garbage", time.Second},
		{"0s", time.Second},
		{"-5s", time.Second},
	}
	for _, tt := range tests {
		if got := parseDuration(tt.in, time.Second); got != tt.want {
			t.Errorf("parseDuration(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
