package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Execution.MaxCycles != 1000000 {
		t.Errorf("Expected MaxCycles=1000000, got %d", cfg.Execution.MaxCycles)
	}
	if cfg.Execution.Checked {
		t.Error("Expected Checked=false")
	}
	if cfg.Execution.StackSize != 1<<20 {
		t.Errorf("Expected StackSize=%d, got %d", 1<<20, cfg.Execution.StackSize)
	}
	if cfg.Execution.DefaultEntry != "0x400000" {
		t.Errorf("Expected DefaultEntry=0x400000, got %s", cfg.Execution.DefaultEntry)
	}

	if cfg.Debugger.HistorySize != 1000 {
		t.Errorf("Expected HistorySize=1000, got %d", cfg.Debugger.HistorySize)
	}
	if !cfg.Debugger.ShowSource {
		t.Error("Expected ShowSource=true")
	}

	if cfg.Display.BytesPerLine != 16 {
		t.Errorf("Expected BytesPerLine=16, got %d", cfg.Display.BytesPerLine)
	}
	if cfg.Display.NumberFormat != "hex" {
		t.Errorf("Expected NumberFormat=hex, got %s", cfg.Display.NumberFormat)
	}

	if cfg.Trace.MaxEntries != 100000 {
		t.Errorf("Expected MaxEntries=100000, got %d", cfg.Trace.MaxEntries)
	}

	if cfg.Statistics.Format != "json" {
		t.Errorf("Expected Format=json, got %s", cfg.Statistics.Format)
	}

	if cfg.Coverage.OutputFile != "coverage.txt" {
		t.Errorf("Expected Coverage.OutputFile=coverage.txt, got %s", cfg.Coverage.OutputFile)
	}
}

func TestGetConfigPath(t *testing.T) {
	path := GetConfigPath()

	if path == "" {
		t.Error("GetConfigPath returned empty string")
	}

	if filepath.Base(path) != "config.toml" {
		t.Errorf("Expected path to end with config.toml, got %s", path)
	}

	switch runtime.GOOS {
	case "windows":
		if !filepath.IsAbs(path) && path != "config.toml" {
			t.Errorf("Expected absolute path on Windows, got %s", path)
		}

	case "darwin", "linux":
		dir := filepath.Dir(path)
		if filepath.Base(dir) != "x64core" && path != "config.toml" {
			t.Errorf("Expected path in x64core directory or fallback, got %s", path)
		}
	}
}

func TestGetLogPath(t *testing.T) {
	path := GetLogPath()

	if path == "" {
		t.Error("GetLogPath returned empty string")
	}

	switch runtime.GOOS {
	case "windows":
		if !filepath.IsAbs(path) && path != "logs" {
			t.Errorf("Expected absolute path on Windows, got %s", path)
		}

	case "darwin", "linux":
		if filepath.Base(path) != "logs" {
			t.Errorf("Expected path to end with logs, got %s", path)
		}
	}
}

func TestSaveAndLoad(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "test_config.toml")

	cfg := DefaultConfig()
	cfg.Execution.MaxCycles = 5000000
	cfg.Execution.EnableTrace = true
	cfg.Debugger.HistorySize = 500
	cfg.Display.ColorOutput = false
	cfg.Trace.FilterRegs = "RAX,RDI,RIP"

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatal("Config file was not created")
	}

	loaded, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if loaded.Execution.MaxCycles != 5000000 {
		t.Errorf("Expected MaxCycles=5000000, got %d", loaded.Execution.MaxCycles)
	}
	if !loaded.Execution.EnableTrace {
		t.Error("Expected EnableTrace=true")
	}
	if loaded.Debugger.HistorySize != 500 {
		t.Errorf("Expected HistorySize=500, got %d", loaded.Debugger.HistorySize)
	}
	if loaded.Display.ColorOutput {
		t.Error("Expected ColorOutput=false")
	}
	if loaded.Trace.FilterRegs != "RAX,RDI,RIP" {
		t.Errorf("Expected FilterRegs=RAX,RDI,RIP, got %s", loaded.Trace.FilterRegs)
	}
}

func TestLoadNonExistent(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "nonexistent.toml")

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("LoadFrom should not error on non-existent file: %v", err)
	}

	if cfg.Execution.MaxCycles != 1000000 {
		t.Error("Expected default config when file doesn't exist")
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "invalid.toml")

	invalidTOML := `
[execution]
max_cycles = "not a number"  # Invalid: should be uint64
`
	if err := os.WriteFile(configPath, []byte(invalidTOML), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	_, err := LoadFrom(configPath)
	if err == nil {
		t.Error("Expected error when loading invalid TOML")
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	tempDir := t.TempDir()

	configPath := filepath.Join(tempDir, "subdir1", "subdir2", "config.toml")

	cfg := DefaultConfig()
	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("Config file was not created")
	}

	dir := filepath.Dir(configPath)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		t.Error("Parent directories were not created")
	}
}
