package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"
	"go.uber.org/zap"

	"github.com/ayn2op/waterflow/flow"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	InsetConfig struct {
		Top    float64 `yaml:"top" validate:"gte=0"`
		Left   float64 `yaml:"left" validate:"gte=0"`
		Bottom float64 `yaml:"bottom" validate:"gte=0"`
		Right  float64 `yaml:"right" validate:"gte=0"`
	}

	LayoutConfig struct {
		Columns       int                         `yaml:"columns" validate:"min=1,max=64"`
		ItemHeight    float64                     `yaml:"item_height" validate:"gt=0"`
		Margins       map[flow.MarginKind]float64 `yaml:"margins" validate:"dive,gte=0"`
		Inset         InsetConfig                 `yaml:"inset"`
		StickyHeaders bool                        `yaml:"sticky_headers"`
		PoolLimit     int                         `yaml:"pool_limit" validate:"gte=0"`
		Border        string                      `yaml:"border" validate:"oneof=hidden plain round thick double"`
		ScrollStep    int                         `yaml:"scroll_step" validate:"min=1,max=100"`
	}

	DemoConfig struct {
		Sections      int   `yaml:"sections" validate:"min=0,max=1000"`
		Items         int   `yaml:"items_per_section" validate:"min=0,max=100000"`
		Seed          int64 `yaml:"seed"`
		MinItemHeight int   `yaml:"min_item_height" validate:"min=1"`
		MaxItemHeight int   `yaml:"max_item_height" validate:"gtefield=MinItemHeight"`
		HeaderHeight  int   `yaml:"header_height" validate:"gte=0"`
		FooterHeight  int   `yaml:"footer_height" validate:"gte=0"`
		GlobalHeader  bool  `yaml:"global_header"`
		GlobalFooter  bool  `yaml:"global_footer"`
	}

	Config struct {
		Version int           `yaml:"version" validate:"eq=1"`
		Layout  LayoutConfig  `yaml:"layout"`
		Demo    DemoConfig    `yaml:"demo"`
		Logging LoggingConfig `yaml:"logging"`
	}
)

// Margin returns the configured margin of the given kind, falling back to
// flow.DefaultMargin for kinds the configuration does not mention.
func (conf *LayoutConfig) Margin(kind flow.MarginKind) float64 {
	if m, ok := conf.Margins[kind]; ok {
		return m
	}
	return flow.DefaultMargin
}

func (conf *LayoutConfig) Insets() flow.Insets {
	return flow.Insets{
		Top:    conf.Inset.Top,
		Left:   conf.Inset.Left,
		Bottom: conf.Inset.Bottom,
		Right:  conf.Inset.Right,
	}
}

// EngineOptions converts layout settings which belong to the engine rather
// than to its data source into engine options.
func (conf *LayoutConfig) EngineOptions(log *zap.Logger) []flow.Option {
	return []flow.Option{
		flow.WithStickyHeaders(conf.StickyHeaders),
		flow.WithPoolLimit(conf.PoolLimit),
		flow.WithLogger(log),
	}
}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}
