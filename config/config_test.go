package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// isolate keeps Load away from real config files and environment
func isolate(t *testing.T) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv(EnvConfigFile, "")
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "betterjpeg.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Encoder.Executable != "mozcjpeg" {
		t.Errorf("Expected mozcjpeg, got %q", cfg.Encoder.Executable)
	}
	if cfg.Encoder.Args != "" {
		t.Errorf("Expected no encoder args, got %q", cfg.Encoder.Args)
	}
	if cfg.Encoder.OutputSuffix != ".out" {
		t.Errorf("Expected .out, got %q", cfg.Encoder.OutputSuffix)
	}
	if cfg.Workers != 2 {
		t.Errorf("Expected 2 workers, got %d", cfg.Workers)
	}
	if cfg.Warnings.CountLimit != 50 {
		t.Errorf("Expected count limit 50, got %d", cfg.Warnings.CountLimit)
	}
	if cfg.Warnings.SizeLimit != 100*1024*1024 {
		t.Errorf("Expected size limit 100MiB, got %d", cfg.Warnings.SizeLimit)
	}
	if want := []string{"jpeg", "jpg", "JPEG", "JPG"}; !reflect.DeepEqual(cfg.Scan.Extensions, want) {
		t.Errorf("Expected extensions %v, got %v", want, cfg.Scan.Extensions)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate, got %v", err)
	}
}

func TestLoad_NoFile(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
}

func TestLoad_SearchPath(t *testing.T) {
	isolate(t)
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	writeConfig(t, wd, "workers: 6\nencoder:\n  args: \"-quality 80\"\n")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Workers != 6 {
		t.Errorf("Expected 6 workers, got %d", cfg.Workers)
	}
	if cfg.Encoder.Args != "-quality 80" {
		t.Errorf("Expected args from file, got %q", cfg.Encoder.Args)
	}
	// Untouched keys keep their defaults
	if cfg.Encoder.Executable != "mozcjpeg" {
		t.Errorf("Expected default executable, got %q", cfg.Encoder.Executable)
	}
}

func TestLoad_ExplicitFile(t *testing.T) {
	isolate(t)
	path := writeConfig(t, t.TempDir(), `
encoder:
  executable: cjpeg
  output_suffix: .tmp
warnings:
  count_limit: 10
  size_limit: 2048
scan:
  extensions: [jpg]
log:
  max_backups: 1
  compress: true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Encoder.Executable != "cjpeg" || cfg.Encoder.OutputSuffix != ".tmp" {
		t.Errorf("Unexpected encoder config %+v", cfg.Encoder)
	}
	if cfg.Warnings.CountLimit != 10 || cfg.Warnings.SizeLimit != 2048 {
		t.Errorf("Unexpected warnings config %+v", cfg.Warnings)
	}
	if !reflect.DeepEqual(cfg.Scan.Extensions, []string{"jpg"}) {
		t.Errorf("Unexpected extensions %v", cfg.Scan.Extensions)
	}
	if cfg.Log.MaxBackups != 1 || !cfg.Log.Compress {
		t.Errorf("Unexpected log config %+v", cfg.Log)
	}
}

func TestLoad_EnvConfigFile(t *testing.T) {
	isolate(t)
	path := writeConfig(t, t.TempDir(), "workers: 9\n")
	t.Setenv(EnvConfigFile, path)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Workers != 9 {
		t.Errorf("Expected 9 workers from %s, got %d", EnvConfigFile, cfg.Workers)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	path := writeConfig(t, t.TempDir(), "workers: 3\n")
	t.Setenv("BETTERJPEG_WORKERS", "12")
	t.Setenv("BETTERJPEG_ENCODER_EXECUTABLE", "cjpeg")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Workers != 12 {
		t.Errorf("Expected environment to win with 12 workers, got %d", cfg.Workers)
	}
	if cfg.Encoder.Executable != "cjpeg" {
		t.Errorf("Expected cjpeg from environment, got %q", cfg.Encoder.Executable)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("Expected error for missing explicit config file")
	}
	if !strings.Contains(err.Error(), "failed to read config") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	isolate(t)
	path := writeConfig(t, t.TempDir(), "warnings:\n  count_limit: -1\n")

	if _, err := Load(path); err == nil {
		t.Error("Expected validation error for negative count limit")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"blank executable", func(c *Config) { c.Encoder.Executable = "  " }, "encoder.executable"},
		{"empty suffix", func(c *Config) { c.Encoder.OutputSuffix = "" }, "encoder.output_suffix"},
		{"no extensions", func(c *Config) { c.Scan.Extensions = nil }, "scan.extensions"},
		{"negative count limit", func(c *Config) { c.Warnings.CountLimit = -5 }, "warnings.count_limit"},
		{"negative size limit", func(c *Config) { c.Warnings.SizeLimit = -1 }, "warnings.size_limit"},
		{"zero limits", func(c *Config) { c.Warnings.CountLimit, c.Warnings.SizeLimit = 0, 0 }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}
