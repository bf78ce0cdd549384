package stopping

import (
	"math"
	"testing"

	"github.com/ngamma/glassdamage/pkg/particle"
	"github.com/ngamma/glassdamage/pkg/units"
)

func TestBandNuclear(t *testing.T) {
	tests := []struct {
		name     string
		energy   float64
		kind     particle.Kind
		expected float64 // MeV/(g/cm2)
	}{
		{"thermal neutron", 0.025 * units.EV, particle.Neutron, 1e-3},
		{"just below 1 keV", 0.999 * units.KeV, particle.Neutron, 1e-3},
		{"at 1 keV", 1 * units.KeV, particle.Neutron, 1e-2},
		{"fast neutron", 500 * units.KeV, particle.Neutron, 1e-2},
		{"at 1 MeV", 1 * units.MeV, particle.Neutron, 1e-1},
		{"high energy neutron", 14 * units.MeV, particle.Neutron, 1e-1},
		{"proton 10 MeV", 10 * units.MeV, particle.Proton, 0.1 * math.Log(10)},
		{"proton below 1 MeV clamps", 0.5 * units.MeV, particle.Proton, 0},
		{"proton at rest", 0, particle.Proton, 0},
		{"photon", 1 * units.MeV, particle.Photon, 1e-4},
		{"other", 1 * units.MeV, particle.Other, 1e-2},
	}

	var m Band
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := units.In(m.Nuclear(tt.energy, tt.kind, nil), units.MeVPerArealDensity)
			if math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("expected %g, got %g", tt.expected, got)
			}
		})
	}
}

func TestBandElectronic(t *testing.T) {
	tests := []struct {
		name     string
		energy   float64
		kind     particle.Kind
		expected float64
	}{
		{"neutron", 2 * units.MeV, particle.Neutron, 1e-4},
		{"proton 100 MeV", 100 * units.MeV, particle.Proton, math.Log(100)},
		{"proton 1 MeV", 1 * units.MeV, particle.Proton, 0},
		{"photon", 1 * units.MeV, particle.Photon, 1e-2},
		{"other", 1 * units.MeV, particle.Other, 1e-1},
	}

	var m Band
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := units.In(m.Electronic(tt.energy, tt.kind, nil), units.MeVPerArealDensity)
			if math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("expected %g, got %g", tt.expected, got)
			}
		})
	}
}
