package damage

import (
	"sync"
	"testing"

	"github.com/ngamma/glassdamage/internal/damage/dpa"
	"github.com/ngamma/glassdamage/internal/damage/threshold"
	"github.com/ngamma/glassdamage/pkg/material"
	"github.com/ngamma/glassdamage/pkg/particle"
	"github.com/ngamma/glassdamage/pkg/transport"
	"github.com/ngamma/glassdamage/pkg/units"
)

func step(t *testing.T) transport.Step {
	t.Helper()
	m, err := material.DefaultCatalog().Lookup(material.ShieldingGlass)
	if err != nil {
		t.Fatal(err)
	}
	return transport.Step{
		EventID:              7,
		Length:               0.2 * units.MM,
		EnergyDeposit:        0.03 * units.MeV,
		PreStepKineticEnergy: 1.5 * units.MeV,
		Particle:             particle.Neutron,
		Material:             m,
	}
}

func TestScoreMatchesEngines(t *testing.T) {
	s := NewScorer(ScorerConfig{Model: dpa.ModelSRIM})
	st := step(t)

	c := s.Score(st)
	if c.Edep != st.EnergyDeposit {
		t.Errorf("expected edep %g, got %g", st.EnergyDeposit, c.Edep)
	}
	if want := s.DPA().Compute(st); c.DPA != want {
		t.Errorf("expected dpa %g, got %g", want, c.DPA)
	}
	if want := s.NIEL().Compute(st); c.NIEL != want {
		t.Errorf("expected niel %g, got %g", want, c.NIEL)
	}
	if c.DPA <= 0 || c.NIEL <= 0 {
		t.Errorf("expected positive damage, got %+v", c)
	}
	if s.Model() != dpa.ModelSRIM {
		t.Errorf("expected SRIM, got %s", s.Model())
	}
}

func TestScoreKeepsEdepOnUnscorable(t *testing.T) {
	s := NewScorer(ScorerConfig{})

	zeroLength := step(t)
	zeroLength.Length = 0
	zeroLength.EnergyDeposit = 0.4 * units.MeV

	noMaterial := step(t)
	noMaterial.Material = nil
	noMaterial.EnergyDeposit = 0.4 * units.MeV

	for name, st := range map[string]transport.Step{"zero length": zeroLength, "nil material": noMaterial} {
		want := Contribution{Edep: 0.4 * units.MeV}
		if c := s.Score(st); c != want {
			t.Errorf("%s: expected %+v, got %+v", name, want, c)
		}
	}
}

func TestGlassRuleFollowsPolicy(t *testing.T) {
	st := step(t)
	table := threshold.NewTable(map[string]float64{"B": 20 * units.EV})

	// SRIM never consults the table for glass, so the table must not matter
	a := NewScorer(ScorerConfig{Model: dpa.ModelSRIM}).Score(st)
	b := NewScorer(ScorerConfig{Model: dpa.ModelSRIM, Table: table}).Score(st)
	if a.DPA != b.DPA {
		t.Errorf("SRIM glass result changed with table: %g vs %g", a.DPA, b.DPA)
	}

	// NRT takes the weighted path as soon as one element hits
	c := NewScorer(ScorerConfig{Model: dpa.ModelNRT}).Score(st)
	d := NewScorer(ScorerConfig{Model: dpa.ModelNRT, Table: table}).Score(st)
	// only B contributes, so Ed drops below the 30 eV fallback
	if d.DPA <= c.DPA {
		t.Errorf("NRT glass DPA should rise once the table resolves an element: %g vs %g", d.DPA, c.DPA)
	}
}

func TestScoreConcurrent(t *testing.T) {
	s := NewScorer(ScorerConfig{})
	st := step(t)
	want := s.Score(st)

	var wg sync.WaitGroup
	errs := make(chan Contribution, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := s.Score(st); got != want {
				errs <- got
			}
		}()
	}
	wg.Wait()
	close(errs)
	for got := range errs {
		t.Errorf("concurrent score differs: %+v vs %+v", got, want)
	}
}

func TestContributionAdd(t *testing.T) {
	a := Contribution{Edep: 1, DPA: 2, NIEL: 3}
	b := Contribution{Edep: 0.5, DPA: 0.25, NIEL: 0.125}
	if got := a.Add(b); got != (Contribution{Edep: 1.5, DPA: 2.25, NIEL: 3.125}) {
		t.Errorf("unexpected sum %+v", got)
	}
}
