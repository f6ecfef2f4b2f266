package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	// LayoutConfig describes simulated page geometry: the document column
	// on the left and the margin box container on the right.
	LayoutConfig struct {
		TopInset      int `yaml:"top_inset" validate:"gte=0"`
		MinMargin     int `yaml:"min_margin" validate:"gte=0"`
		ContainerTop  int `yaml:"container_top" validate:"gte=0"`
		ContainerLeft int `yaml:"container_left" validate:"gte=0"`
		BoxWidth      int `yaml:"box_width" validate:"min=40"`
		BoxPadding    int `yaml:"box_padding" validate:"gte=0,ltfield=BoxWidth"`
		DocumentTop   int `yaml:"document_top" validate:"gte=0"`
		DocumentLeft  int `yaml:"document_left" validate:"gte=0"`
		DocumentWidth int `yaml:"document_width" validate:"min=40"`
		BlockSpacing  int `yaml:"block_spacing" validate:"gte=0"`
		LineGap       int `yaml:"line_gap" validate:"gte=0"`
		FrameMS       int `yaml:"frame_ms" validate:"min=1,max=1000"`
	}

	StyleConfig struct {
		ActiveColor        string `yaml:"active_color" validate:"required,hexcolor"`
		NeutralColor       string `yaml:"neutral_color" validate:"required,hexcolor"`
		TemplatePath       string `yaml:"template_path" sanitize:"assure_file_access"`
		ShowResolved       bool   `yaml:"show_resolved"`
		ShowTrackedChanges bool   `yaml:"show_tracked_changes"`
	}

	PreviewConfig struct {
		Enable     bool       `yaml:"enable"`
		Format     PreviewFmt `yaml:"format" validate:"gte=0"`
		Scale      float64    `yaml:"scale" validate:"gt=0,lte=4"`
		Background string     `yaml:"background" validate:"required,hexcolor"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Layout    LayoutConfig   `yaml:"layout"`
		Style     StyleConfig    `yaml:"style"`
		Preview   PreviewConfig  `yaml:"preview"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

// Frame returns scheduler frame budget.
func (l *LayoutConfig) Frame() time.Duration {
	return time.Duration(l.FrameMS) * time.Millisecond
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
		// sanitize and validate what has been loaded
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
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
