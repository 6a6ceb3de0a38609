package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Discipline != "async" {
		t.Errorf("expected discipline async, got %s", cfg.Discipline)
	}
	if cfg.Steps <= 0 {
		t.Error("steps should be positive")
	}
	if cfg.Runs <= 0 {
		t.Error("runs should be positive")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Network = "cellcycle.bnd"
	cfg.Target = "Apoptosis"
	cfg.Discipline = "lockstep"
	cfg.Steps = 40
	cfg.Runs = 1000
	cfg.Seed = 99
	cfg.Fixed = map[string]bool{"Oxygen": true, "Glucose": false}
	cfg.Set = map[string]bool{"p53": true}
	cfg.Converge = ConvergeConfig{Epsilon: 0.5, Window: 100}

	path := filepath.Join(t.TempDir(), "experiment.yaml")
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Target != "Apoptosis" {
		t.Errorf("expected target Apoptosis, got %s", loaded.Target)
	}
	if loaded.Fixed["Oxygen"] != true || loaded.Fixed["Glucose"] != false {
		t.Error("fixed map not preserved")
	}
	if loaded.Converge.Window != 100 {
		t.Errorf("expected window 100, got %d", loaded.Converge.Window)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("does-not-exist.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("quick")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Runs != 20 {
		t.Errorf("expected 20 runs, got %d", cfg.Runs)
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != 3 {
		t.Errorf("expected 3 presets, got %d", len(presets))
	}
}
