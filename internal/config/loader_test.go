package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	var cfg FactoryConfig
	if err := yaml.Unmarshal(defaultFactoryYAML, &cfg); err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultFactoryConfig()) {
		t.Errorf("embedded default differs from DefaultFactoryConfig():\n%+v\n%+v", cfg, DefaultFactoryConfig())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("embedded default is invalid: %v", err)
	}
}

func TestLoadFactoryCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "factory.yaml")
	custom := DefaultFactoryConfig()
	custom.Board.Width = 20
	custom.Board.Height = 12
	custom.Levels = []LevelConfig{{ID: "tiny", Name: "Tiny", CommonDivisor: 3, Seed: 7}}

	data, err := yaml.Marshal(custom)
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	cfg, err := LoadFactory(path)
	if err != nil {
		t.Fatalf("LoadFactory() failed: %v", err)
	}
	if cfg.Board.Width != 20 || len(cfg.Levels) != 1 || cfg.Levels[0].ID != "tiny" {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestLoadFactoryErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadFactory(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom file should be an error")
	}

	broken := filepath.Join(dir, "broken.yaml")
	os.WriteFile(broken, []byte("board: [unclosed"), 0o600)
	if _, err := LoadFactory(broken); err == nil {
		t.Error("unparsable custom file should be an error")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	os.WriteFile(invalid, []byte("levels:\n  - id: x\n    common_divisor: 0\n"), 0o600)
	if _, err := LoadFactory(invalid); err == nil {
		t.Error("custom file with an invalid level should be an error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*FactoryConfig)
		wantErr bool
	}{
		{"default", func(*FactoryConfig) {}, false},
		{"no levels", func(c *FactoryConfig) { c.Levels = nil }, true},
		{"duplicate level", func(c *FactoryConfig) { c.Levels = append(c.Levels, c.Levels[0]) }, true},
		{"empty id", func(c *FactoryConfig) { c.Levels[0].ID = "" }, true},
		{"short conveyor", func(c *FactoryConfig) { c.Conveyor.BufferSize = 1 }, true},
		{"zero divisor", func(c *FactoryConfig) { c.Levels[2].CommonDivisor = 0 }, true},
	}

	for _, tt := range tests {
		cfg := DefaultFactoryConfig()
		tt.modify(&cfg)
		err := cfg.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: Validate() error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestEngineConfig(t *testing.T) {
	cfg := DefaultFactoryConfig()
	level, ok := cfg.Level("4a")
	if !ok {
		t.Fatal("expected level 4a")
	}

	eng := cfg.Engine(level)
	if eng.CommonDivisor != 4 || eng.Seed != 35 {
		t.Errorf("level fields not applied: divisor %d seed %d", eng.CommonDivisor, eng.Seed)
	}
	if eng.BoardWidth != 62 || eng.BoardHeight != 36 || eng.EndTime != 9000 || eng.MiningPeriod != 100 {
		t.Errorf("board fields not applied: %+v", eng)
	}

	eng.ResourceNumbers[0] = 99
	if cfg.Mining.ResourceNumbers[0] == 99 {
		t.Error("Engine() must copy the resource list")
	}

	if _, ok := cfg.Level("9z"); ok {
		t.Error("unknown level should not be found")
	}
}
