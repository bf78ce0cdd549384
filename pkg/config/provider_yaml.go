package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// YAMLProvider implements ConfigProvider for YAML configuration files.
// Keys absent from the file keep their Defaults value.
type YAMLProvider struct {
	filename string
	config   *ConfigData
}

// NewYAMLProvider creates a new YAML configuration provider
func NewYAMLProvider(filename string) *YAMLProvider {
	return &YAMLProvider{
		filename: filename,
	}
}

// configYAML mirrors ConfigData with optional fields so that absent keys can
// be told apart from zero values
type configYAML struct {
	Damage  *DamageYAML  `yaml:"damage,omitempty"`
	Replay  *ReplayYAML  `yaml:"replay,omitempty"`
	Logging *LoggingYAML `yaml:"logging,omitempty"`
}

// DamageYAML is the YAML form of DamageData
type DamageYAML struct {
	Model          string              `yaml:"model,omitempty"`
	ThresholdTable *ThresholdTableYAML `yaml:"threshold_table,omitempty"`
	GlassTags      []string            `yaml:"glass_tags,omitempty"`
	NRT            *PolicyYAML         `yaml:"nrt,omitempty"`
	SRIM           *PolicyYAML         `yaml:"srim,omitempty"`
}

// ThresholdTableYAML is the YAML form of ThresholdTableData
type ThresholdTableYAML struct {
	Candidates []string `yaml:"candidates,omitempty"`
}

// PolicyYAML is the YAML form of PolicyData
type PolicyYAML struct {
	GlassFallbackEV *float64 `yaml:"glass_fallback_ev,omitempty"`
	GlassUsesTable  *bool    `yaml:"glass_uses_table,omitempty"`
}

// ReplayYAML is the YAML form of ReplayData
type ReplayYAML struct {
	Workers       *int     `yaml:"workers,omitempty"`
	ScoringMassKg *float64 `yaml:"scoring_mass_kg,omitempty"`
}

// LoggingYAML is the YAML form of LoggingData
type LoggingYAML struct {
	Debug *bool `yaml:"debug,omitempty"`
}

// LoadConfig loads the complete configuration from the YAML file and
// validates it
func (y *YAMLProvider) LoadConfig() (*ConfigData, error) {
	if y.config != nil {
		return y.config, nil
	}

	cfgFile, err := os.ReadFile(y.filename)
	if err != nil {
		return nil, err
	}

	config, err := Parse(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", y.filename, err)
	}

	y.config = config
	return config, nil
}

// Parse decodes YAML over Defaults and validates the result
func Parse(data []byte) (*ConfigData, error) {
	var yamlConfig configYAML
	if err := yaml.UnmarshalStrict(data, &yamlConfig); err != nil {
		return nil, err
	}

	config := Defaults()
	yamlConfig.apply(config)

	if err := Validate(config); err != nil {
		return nil, err
	}
	return config, nil
}

func (c configYAML) apply(config *ConfigData) {
	if d := c.Damage; d != nil {
		if d.Model != "" {
			config.Damage.Model = d.Model
		}
		if d.ThresholdTable != nil && d.ThresholdTable.Candidates != nil {
			config.Damage.ThresholdTable.Candidates = d.ThresholdTable.Candidates
		}
		if d.GlassTags != nil {
			config.Damage.GlassTags = d.GlassTags
		}
		d.NRT.apply(&config.Damage.NRT)
		d.SRIM.apply(&config.Damage.SRIM)
	}

	if r := c.Replay; r != nil {
		if r.Workers != nil {
			config.Replay.Workers = *r.Workers
		}
		if r.ScoringMassKg != nil {
			config.Replay.ScoringMassKg = *r.ScoringMassKg
		}
	}

	if l := c.Logging; l != nil && l.Debug != nil {
		config.Logging.Debug = *l.Debug
	}
}

func (p *PolicyYAML) apply(dst *PolicyData) {
	if p == nil {
		return
	}
	if p.GlassFallbackEV != nil {
		dst.GlassFallbackEV = *p.GlassFallbackEV
	}
	if p.GlassUsesTable != nil {
		dst.GlassUsesTable = *p.GlassUsesTable
	}
}

// GetDamageConfig returns the damage section
func (y *YAMLProvider) GetDamageConfig() (*DamageData, error) {
	config, err := y.LoadConfig()
	if err != nil {
		return nil, err
	}
	return &config.Damage, nil
}

// GetReplayConfig returns the replay section
func (y *YAMLProvider) GetReplayConfig() (*ReplayData, error) {
	config, err := y.LoadConfig()
	if err != nil {
		return nil, err
	}
	return &config.Replay, nil
}

// IsReadOnly returns true since YAML files are read-only
func (y *YAMLProvider) IsReadOnly() bool {
	return true
}

// Close is a no-op for YAML provider
func (y *YAMLProvider) Close() error {
	return nil
}
