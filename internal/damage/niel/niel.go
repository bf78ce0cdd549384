// Package niel computes the non-ionising energy loss of single steps
package niel

import (
	"github.com/ngamma/glassdamage/internal/damage/lindhard"
	"github.com/ngamma/glassdamage/internal/damage/recoil"
	"github.com/ngamma/glassdamage/internal/damage/stopping"
	"github.com/ngamma/glassdamage/pkg/particle"
	"github.com/ngamma/glassdamage/pkg/transport"
	"github.com/ngamma/glassdamage/pkg/units"
)

// PhotonPerMM is the flat photon NIEL proxy per millimetre of track
const PhotonPerMM = 1e-4 * units.MeV

// Engine computes NIEL increments. It is immutable and safe for concurrent
// use.
type Engine struct {
	stopping  stopping.Model
	partition lindhard.Partition
}

// NewEngine returns an engine using sp for charged particles and p for the
// neutron recoil partition. A nil sp selects stopping.Band.
func NewEngine(sp stopping.Model, p lindhard.Partition) *Engine {
	if sp == nil {
		sp = stopping.Band{}
	}
	return &Engine{stopping: sp, partition: p}
}

// Default returns an engine with the band stopping model and the default
// Lindhard partition
func Default() *Engine {
	return NewEngine(stopping.Band{}, lindhard.Default())
}

// Compute returns the NIEL increment of step, always finite and
// non-negative
func (e *Engine) Compute(step transport.Step) float64 {
	if !step.Scorable() {
		return 0
	}

	m := step.Material
	switch step.Particle {
	case particle.Neutron:
		zbar, abar := m.AverageZA()
		t := recoil.Energy(step.PreStepKineticEnergy, particle.Neutron, abar)
		if t <= 0 {
			return 0
		}
		return e.partition.NonIonizingEnergy(t, zbar, abar)
	case particle.Photon:
		return PhotonPerMM * (step.Length / units.MM)
	default:
		sn := e.stopping.Nuclear(step.PreStepKineticEnergy, step.Particle, m)
		return sn * m.Density * step.Length
	}
}
