package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/ayn2op/waterflow/flow"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfiguration_NoFile(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() with empty path error = %v", err)
	}
	if cfg.Version != 1 {
		t.Errorf("Default config version = %d, want 1", cfg.Version)
	}
	if cfg.Layout.Columns != 3 {
		t.Errorf("Columns = %d, want 3", cfg.Layout.Columns)
	}
	for _, kind := range flow.MarginKinds() {
		if got := cfg.Layout.Margin(kind); got != 1 {
			t.Errorf("Margin(%v) = %v, want 1", kind, got)
		}
	}
	if !cfg.Layout.StickyHeaders {
		t.Error("Expected sticky headers to be enabled by default")
	}
	if cfg.Logging.ConsoleLogger.Level != "none" {
		t.Errorf("Console level = %q, want none", cfg.Logging.ConsoleLogger.Level)
	}
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	path := writeConfig(t, `version: 1
layout:
  columns: 2
  margins:
    column: 3
  sticky_headers: false
  border: double
demo:
  sections: 2
  items_per_section: 5
  min_item_height: 2
  max_item_height: 2
`)

	cfg, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if cfg.Layout.Columns != 2 {
		t.Errorf("Columns = %d, want 2", cfg.Layout.Columns)
	}
	// Margins not mentioned in the file keep their defaults.
	if got := cfg.Layout.Margin(flow.MarginColumn); got != 3 {
		t.Errorf("column margin = %v, want 3", got)
	}
	if got := cfg.Layout.Margin(flow.MarginRow); got != 1 {
		t.Errorf("row margin = %v, want 1", got)
	}
	if cfg.Layout.StickyHeaders {
		t.Error("Expected sticky headers to be disabled")
	}
	if cfg.Layout.Border != "double" {
		t.Errorf("Border = %q, want double", cfg.Layout.Border)
	}
	if cfg.Demo.Sections != 2 || cfg.Demo.Items != 5 {
		t.Errorf("Demo = %+v", cfg.Demo)
	}
	// Untouched sections come from the template.
	if cfg.Layout.ScrollStep != 3 {
		t.Errorf("ScrollStep = %d, want 3", cfg.Layout.ScrollStep)
	}
}

func TestLoadConfiguration_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown field", "version: 1\nlayout:\n  rows: 3\n", "failed to process configuration file"},
		{"unknown margin kind", "layout:\n  margins:\n    diagonal: 2\n", "not a valid margin kind"},
		{"zero columns", "layout:\n  columns: 0\n", "Columns"},
		{"negative margin", "layout:\n  margins:\n    top: -1\n", "Margins"},
		{"unknown border", "layout:\n  border: dotted\n", "Border"},
		{"inverted heights", "demo:\n  min_item_height: 5\n  max_item_height: 2\n", "MaxItemHeight"},
		{"bad log level", "logging:\n  console:\n    level: loud\n", "Level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfiguration(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("LoadConfiguration() error = nil, want an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("LoadConfiguration() error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadConfiguration_MissingFile(t *testing.T) {
	if _, err := LoadConfiguration(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("LoadConfiguration() error = nil for a missing file")
	}
}

func TestDump(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	cfg.Layout.Margins[flow.MarginColumn] = 4

	data, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}
	for _, want := range []string{"column: 4", "top: 1", "items_per_section: 24"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("Dump() output lacks %q:\n%s", want, data)
		}
	}

	// The dump loads back into the same configuration.
	again, err := LoadConfiguration(writeConfig(t, string(data)))
	if err != nil {
		t.Fatalf("LoadConfiguration(dump) error = %v", err)
	}
	if got := again.Layout.Margin(flow.MarginColumn); got != 4 {
		t.Errorf("column margin after reload = %v, want 4", got)
	}
}

func TestPrepare(t *testing.T) {
	data, err := Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if !strings.Contains(string(data), "sticky_headers: true") {
		t.Errorf("Prepare() output lacks defaults:\n%s", data)
	}
}

func TestLayoutConfig_EngineOptions(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	e := flow.NewEngine(nil, cfg.Layout.EngineOptions(zap.NewNop())...)
	if !e.StickyHeaders() {
		t.Error("engine built from defaults has no sticky headers")
	}

	cfg.Layout.Inset = InsetConfig{Left: 2, Right: 3}
	if got, want := cfg.Layout.Insets(), (flow.Insets{Left: 2, Right: 3}); got != want {
		t.Errorf("Insets() = %+v, want %+v", got, want)
	}
	delete(cfg.Layout.Margins, flow.MarginTop)
	if got := cfg.Layout.Margin(flow.MarginTop); got != flow.DefaultMargin {
		t.Errorf("Margin(top) = %v, want default %v", got, flow.DefaultMargin)
	}
}
