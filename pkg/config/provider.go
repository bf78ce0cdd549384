package config

import "runtime"

// Model names accepted by damage.model
const (
	ModelNRT  = "nrt"
	ModelSRIM = "srim"
)

// ConfigProvider defines the interface for configuration data sources
type ConfigProvider interface {
	// Load complete configuration
	LoadConfig() (*ConfigData, error)

	// Get specific configuration sections
	GetDamageConfig() (*DamageData, error)
	GetReplayConfig() (*ReplayData, error)

	IsReadOnly() bool
	Close() error
}

// ConfigData represents the complete configuration structure
type ConfigData struct {
	Damage  DamageData  `json:"damage"`
	Replay  ReplayData  `json:"replay"`
	Logging LoggingData `json:"logging"`
}

// DamageData selects the DPA model and its threshold policies
type DamageData struct {
	Model          string             `json:"model"`
	ThresholdTable ThresholdTableData `json:"threshold_table"`
	GlassTags      []string           `json:"glass_tags"`
	NRT            PolicyData         `json:"nrt"`
	SRIM           PolicyData         `json:"srim"`
}

// ThresholdTableData lists the threshold table files tried in order
type ThresholdTableData struct {
	Candidates []string `json:"candidates"`
}

// PolicyData holds the per-model glass rule
type PolicyData struct {
	GlassFallbackEV float64 `json:"glass_fallback_ev"`
	GlassUsesTable  bool    `json:"glass_uses_table"`
}

// ReplayData configures the step replay driver
type ReplayData struct {
	Workers       int     `json:"workers"`
	ScoringMassKg float64 `json:"scoring_mass_kg,omitempty"`
}

// LoggingData configures the process logger
type LoggingData struct {
	Debug bool `json:"debug"`
}

// Defaults returns a complete configuration
func Defaults() *ConfigData {
	return &ConfigData{
		Damage: DamageData{
			Model: ModelNRT,
			ThresholdTable: ThresholdTableData{
				Candidates: []string{"SRIM_Ed.dat", "../SRIM_Ed.dat"},
			},
			GlassTags: []string{"Glass", "Scintillator"},
			NRT:       PolicyData{GlassFallbackEV: 30, GlassUsesTable: true},
			SRIM:      PolicyData{GlassFallbackEV: 25, GlassUsesTable: false},
		},
		Replay: ReplayData{
			Workers: runtime.NumCPU(),
		},
	}
}

// DefaultProvider serves Defaults without reading any file
type DefaultProvider struct{}

// NewDefaultProvider creates a provider for the built-in configuration
func NewDefaultProvider() *DefaultProvider {
	return &DefaultProvider{}
}

// LoadConfig returns Defaults
func (DefaultProvider) LoadConfig() (*ConfigData, error) {
	return Defaults(), nil
}

// GetDamageConfig returns the default damage section
func (DefaultProvider) GetDamageConfig() (*DamageData, error) {
	return &Defaults().Damage, nil
}

// GetReplayConfig returns the default replay section
func (DefaultProvider) GetReplayConfig() (*ReplayData, error) {
	return &Defaults().Replay, nil
}

// IsReadOnly always returns true
func (DefaultProvider) IsReadOnly() bool {
	return true
}

// Close is a no-op
func (DefaultProvider) Close() error {
	return nil
}
