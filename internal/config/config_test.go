package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"prepare-test/internal/logger"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	return path
}

func TestLoadFileYAML(t *testing.T) {
	path := writeTemp(t, "prep.yaml", `
prep:
  module: memoria
  config_dir: presets
  swap_files:
    - /tmp/swapA.bin
    - /tmp/swapB.bin
  log_level: debug
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Prep.Module != "memoria" {
		t.Errorf("expected module 'memoria', got '%s'", cfg.Prep.Module)
	}
	if cfg.Prep.ConfigDir != "presets" {
		t.Errorf("expected config_dir 'presets', got '%s'", cfg.Prep.ConfigDir)
	}
	if len(cfg.Prep.SwapFiles) != 2 {
		t.Errorf("expected 2 swap files, got %d", len(cfg.Prep.SwapFiles))
	}
	if cfg.Level() != logger.LevelDebug {
		t.Errorf("expected debug level, got %s", cfg.Level())
	}
}

func TestLoadFileJSON(t *testing.T) {
	path := writeTemp(t, "prep.json", `{
  "prep": {
    "module": "kernel",
    "log_file": "logs/kernel.log"
  }
}`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Prep.Module != "kernel" {
		t.Errorf("expected module 'kernel', got '%s'", cfg.Prep.Module)
	}
	if cfg.Prep.LogFile != "logs/kernel.log" {
		t.Errorf("expected log_file 'logs/kernel.log', got '%s'", cfg.Prep.LogFile)
	}
}

func TestLoadFileTOML(t *testing.T) {
	path := writeTemp(t, "prep.toml", `
[prep]
module = "swamp"
config_ext = ".cfg"
swap_files = ["/tmp/s1.bin"]
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Prep.ConfigExt != ".cfg" {
		t.Errorf("expected config_ext '.cfg', got '%s'", cfg.Prep.ConfigExt)
	}
	if !reflect.DeepEqual(cfg.Prep.SwapFiles, []string{"/tmp/s1.bin"}) {
		t.Errorf("unexpected swap files: %v", cfg.Prep.SwapFiles)
	}
}

func TestLoadFileNotFound(t *testing.T) {
	_, err := LoadFile("/nonexistent/prep.yaml")
	if err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestLoadFileUnsupportedFormat(t *testing.T) {
	path := writeTemp(t, "prep.txt", "test")

	_, err := LoadFile(path)
	if err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestLoadFileInvalidYAML(t *testing.T) {
	path := writeTemp(t, "prep.yaml", "prep: [unterminated")

	_, err := LoadFile(path)
	if err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestDefaultContext(t *testing.T) {
	cwd := t.TempDir()

	ctx, err := Default().ToContext(cwd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ctx.Module != "swamp" {
		t.Errorf("expected module 'swamp', got '%s'", ctx.Module)
	}
	if got, want := ctx.LogPath(), filepath.Join(cwd, "swamp.log"); got != want {
		t.Errorf("expected log path %s, got %s", want, got)
	}
	if got, want := ctx.ModuleConfigPath(), filepath.Join(cwd, "cfg", "swamp.config"); got != want {
		t.Errorf("expected module config %s, got %s", want, got)
	}
	if got, want := ctx.PresetPath("memoryTLB"), filepath.Join(cwd, "cfg", "memoryTLB.config"); got != want {
		t.Errorf("expected preset path %s, got %s", want, got)
	}

	artifacts := ctx.Artifacts()
	if len(artifacts) != 5 {
		t.Fatalf("expected 5 artifacts, got %d", len(artifacts))
	}
	if artifacts[0] != ctx.LogPath() {
		t.Errorf("expected log file first, got %s", artifacts[0])
	}
	if !reflect.DeepEqual(artifacts[1:], DefaultSwapFiles) {
		t.Errorf("expected default swap files, got %v", artifacts[1:])
	}
}

func TestToContextOverrides(t *testing.T) {
	cwd := t.TempDir()
	cfg := &FileConfig{
		Prep: PrepConfig{
			Module:    "memoria",
			ConfigDir: "/etc/presets",
			LogFile:   "out/memoria.log",
			SwapFiles: []string{"/tmp/a.bin"},
		},
	}

	ctx, err := cfg.ToContext(cwd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := ctx.ModuleConfigPath(); got != "/etc/presets/memoria.config" {
		t.Errorf("expected absolute config dir to be kept, got %s", got)
	}
	if got, want := ctx.LogPath(), filepath.Join(cwd, "out", "memoria.log"); got != want {
		t.Errorf("expected log path %s, got %s", want, got)
	}
	if len(ctx.Artifacts()) != 2 {
		t.Errorf("expected 2 artifacts, got %d", len(ctx.Artifacts()))
	}
}

func TestArtifactsResolveRelativeSwapFiles(t *testing.T) {
	cwd := t.TempDir()
	cfg := &FileConfig{Prep: PrepConfig{SwapFiles: []string{"swap/swap1.bin", "/tmp/swap2.bin"}}}

	ctx, err := cfg.ToContext(cwd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	artifacts := ctx.Artifacts()
	if got, want := artifacts[1], filepath.Join(cwd, "swap", "swap1.bin"); got != want {
		t.Errorf("expected relative swap file under %s, got %s", want, got)
	}
	if artifacts[2] != "/tmp/swap2.bin" {
		t.Errorf("expected absolute swap file to be kept, got %s", artifacts[2])
	}
}

func TestToContextDoesNotAliasDefaults(t *testing.T) {
	ctx, err := Default().ToContext(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx.SwapFiles[0] = "/mutated"

	if DefaultSwapFiles[0] == "/mutated" {
		t.Error("context must not alias DefaultSwapFiles")
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	cfg.ApplyEnv(func(key string) string {
		if key == EnvLogLevel {
			return "warn"
		}
		return ""
	})

	if cfg.Level() != logger.LevelWarn {
		t.Errorf("expected warn level, got %s", cfg.Level())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		config   FileConfig
		hasError bool
	}{
		{
			name:     "empty config",
			config:   FileConfig{},
			hasError: false,
		},
		{
			name:     "module with path separator",
			config:   FileConfig{Prep: PrepConfig{Module: "../swamp"}},
			hasError: true,
		},
		{
			name:     "config_ext without dot",
			config:   FileConfig{Prep: PrepConfig{ConfigExt: "config"}},
			hasError: true,
		},
		{
			name:     "blank swap file",
			config:   FileConfig{Prep: PrepConfig{SwapFiles: []string{"/tmp/a.bin", " "}}},
			hasError: true,
		},
		{
			name:     "unknown log level",
			config:   FileConfig{Prep: PrepConfig{LogLevel: "loud"}},
			hasError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.hasError && err == nil {
				t.Error("expected validation error")
			}
			if !tt.hasError && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}
