package app

import (
	"github.com/ngamma/glassdamage/internal/accumulate"
	"github.com/ngamma/glassdamage/pkg/units"
)

// Report is the machine-readable form of a replay result, in MeV and gray
type Report struct {
	RunID          string  `json:"run_id"`
	Model          string  `json:"model"`
	ThresholdTable string  `json:"threshold_table,omitempty"`
	TableEntries   int     `json:"threshold_entries"`
	Events         int64   `json:"events"`
	EdepMeV        float64 `json:"edep_mev"`
	EdepRMSMeV     float64 `json:"edep_rms_mev"`
	DoseGy         float64 `json:"dose_gy,omitempty"`
	DoseRMSGy      float64 `json:"dose_rms_gy,omitempty"`
	DPA            float64 `json:"dpa"`
	DPARMS         float64 `json:"dpa_rms"`
	MeanDPA        float64 `json:"mean_dpa"`
	NIELMeV        float64 `json:"niel_mev"`
	NIELRMSMeV     float64 `json:"niel_rms_mev"`
	MeanNIELMeV    float64 `json:"mean_niel_mev"`
}

// NewReport converts a summary out of internal units
func NewReport(s accumulate.Summary, setup *Setup) Report {
	r := Report{
		RunID:       s.ID.String(),
		Events:      s.Events,
		EdepMeV:     units.In(s.Edep, units.MeV),
		EdepRMSMeV:  units.In(s.EdepRMS, units.MeV),
		DoseGy:      s.DoseGray(),
		DoseRMSGy:   units.In(s.DoseRMS, units.Gray),
		DPA:         s.DPA,
		DPARMS:      s.DPARMS,
		MeanDPA:     s.MeanDPA,
		NIELMeV:     units.In(s.NIEL, units.MeV),
		NIELRMSMeV:  units.In(s.NIELRMS, units.MeV),
		MeanNIELMeV: units.In(s.MeanNIEL, units.MeV),
	}
	if setup != nil {
		r.Model = setup.Model.String()
		r.ThresholdTable = setup.TableSource
		r.TableEntries = setup.TableSize
	}
	return r
}
