package dpa

import (
	"github.com/ngamma/glassdamage/internal/damage/stopping"
	"github.com/ngamma/glassdamage/internal/damage/threshold"
	"github.com/ngamma/glassdamage/pkg/transport"
)

// Deps are the collaborators shared by both calculators. Zero-valued fields
// are replaced by the package defaults.
type Deps struct {
	// Table is the resolved threshold table; empty means defaults only
	Table threshold.Table
	// NRTPolicy and SRIMPolicy carry each model's Ed defaults
	NRTPolicy  *threshold.Policy
	SRIMPolicy *threshold.Policy
	// Stopping defaults to stopping.Band
	Stopping stopping.Model
}

// Engine computes DPA with a fixed model. It holds no mutable state and is
// safe for concurrent use.
type Engine struct {
	model Model
	nrt   Calculator
	srim  Calculator
}

// NewEngine builds both calculators and selects model. Unknown models fall
// back to NRT.
func NewEngine(model Model, deps Deps) *Engine {
	nrtPolicy := threshold.NRTPolicy()
	if deps.NRTPolicy != nil {
		nrtPolicy = *deps.NRTPolicy
	}
	srimPolicy := threshold.SRIMPolicy()
	if deps.SRIMPolicy != nil {
		srimPolicy = *deps.SRIMPolicy
	}
	sp := deps.Stopping
	if sp == nil {
		sp = stopping.Band{}
	}

	if model != ModelSRIM {
		model = ModelNRT
	}

	return &Engine{
		model: model,
		nrt:   NewNRTCalculator(threshold.NewResolver(deps.Table, nrtPolicy)),
		srim:  NewSRIMCalculator(threshold.NewResolver(deps.Table, srimPolicy), sp),
	}
}

// Model returns the selected model
func (e *Engine) Model() Model {
	return e.model
}

// WithModel returns an engine sharing e's calculators with a different
// model selected. e is not modified.
func (e *Engine) WithModel(m Model) *Engine {
	if m != ModelSRIM {
		m = ModelNRT
	}
	return &Engine{model: m, nrt: e.nrt, srim: e.srim}
}

// Compute returns the DPA increment of step under the selected model
func (e *Engine) Compute(step transport.Step) float64 {
	return e.Detail(step).DPA
}

// Detail returns the full Result of the selected model
func (e *Engine) Detail(step transport.Step) Result {
	if e.model == ModelSRIM {
		return e.srim.Compute(step)
	}
	return e.nrt.Compute(step)
}
