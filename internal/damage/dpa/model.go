package dpa

import (
	"fmt"
	"strings"
)

// Model identifies the damage estimator used for DPA
type Model string

const (
	// ModelNRT uses the Norgett-Robinson-Torrens displacement count
	ModelNRT Model = "nrt"

	// ModelSRIM uses nuclear and electronic stopping powers
	ModelSRIM Model = "srim"
)

// Models lists every supported model in presentation order
var Models = []Model{ModelNRT, ModelSRIM}

// ParseModel accepts "nrt" or "srim" in any case. "trim" is an alias for
// the SRIM-style model.
func ParseModel(s string) (Model, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "nrt":
		return ModelNRT, nil
	case "srim", "trim":
		return ModelSRIM, nil
	}
	return "", fmt.Errorf("unknown DPA model %q (want nrt or srim)", s)
}

func (m Model) String() string {
	switch m {
	case ModelNRT:
		return "NRT"
	case ModelSRIM:
		return "SRIM"
	}
	return string(m)
}

// ModelInfo describes a model for reports and CLI help
type ModelInfo struct {
	Description string
	Accuracy    float64 // relative, 0..1
	Complexity  int     // relative cost, 1..5
	BestFor     string
}

// Info returns the descriptive metadata of m
func (m Model) Info() ModelInfo {
	switch m {
	case ModelSRIM:
		return ModelInfo{
			Description: "SRIM/TRIM Style Model (High precision, longer computation time)",
			Accuracy:    0.90,
			Complexity:  5,
			BestFor:     "detailed research, ion implantation, cascade studies",
		}
	default:
		return ModelInfo{
			Description: "NRT (Norgett-Robinson-Torrens) Model (Recommended)",
			Accuracy:    0.85,
			Complexity:  3,
			BestFor:     "general neutron damage, fast screening, standard comparisons",
		}
	}
}
