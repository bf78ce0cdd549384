package accumulate

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/ngamma/glassdamage/internal/damage"
	"github.com/ngamma/glassdamage/pkg/units"
)

func events() []Event {
	var out []Event
	for i, c := range []damage.Contribution{
		{Edep: 1 * units.MeV, DPA: 1e-15, NIEL: 0.1},
		{Edep: 2 * units.MeV, DPA: 3e-15, NIEL: 0.2},
		{Edep: 3 * units.MeV, DPA: 2e-15, NIEL: 0.4},
		{Edep: 0},
	} {
		e := Event{ID: int64(i)}
		e.Add(c)
		out = append(out, e)
	}
	return out
}

func TestEventAddAndReset(t *testing.T) {
	var e Event
	e.Reset(4)
	e.Add(damage.Contribution{Edep: 1, DPA: 2, NIEL: 3})
	e.Add(damage.Contribution{Edep: 1, DPA: 2, NIEL: 3})
	if e.ID != 4 || e.Steps != 2 || e.Edep != 2 || e.DPA != 4 || e.NIEL != 6 {
		t.Errorf("unexpected event %+v", e)
	}
	e.Reset(5)
	if e.ID != 5 || e.Steps != 0 || e.Edep != 0 {
		t.Errorf("reset did not clear: %+v", e)
	}
}

func TestSummary(t *testing.T) {
	r := NewRun()
	if r.ID == uuid.Nil {
		t.Fatal("expected a run ID")
	}
	for _, e := range events() {
		r.AddEvent(e)
	}

	mass := 0.5 * units.Kilogram
	s := r.Summary(mass)

	if s.Events != 4 {
		t.Errorf("expected 4 events, got %d", s.Events)
	}
	if math.Abs(s.Edep-6*units.MeV) > 1e-12 {
		t.Errorf("expected 6 MeV, got %g", s.Edep)
	}

	// Σe² = 14, (Σe)²/n = 9
	wantRMS := math.Sqrt(5) * units.MeV
	if math.Abs(s.EdepRMS-wantRMS) > 1e-12 {
		t.Errorf("expected rms %g, got %g", wantRMS, s.EdepRMS)
	}

	wantGray := 6 * 1.602176634e-13 / 0.5
	if math.Abs(s.DoseGray()-wantGray) > 1e-9*wantGray {
		t.Errorf("expected %g Gy, got %g Gy", wantGray, s.DoseGray())
	}
	if math.Abs(s.MeanDPA-1.5e-15) > 1e-27 {
		t.Errorf("expected mean dpa 1.5e-15, got %g", s.MeanDPA)
	}
}

func TestSummaryWithoutMassOrEvents(t *testing.T) {
	r := NewRun()
	if s := r.Summary(1); s.EdepRMS != 0 || s.Dose != 0 {
		t.Errorf("empty run must report zeros: %+v", s)
	}

	r.AddEvent(events()[0])
	s := r.Summary(0)
	if s.Dose != 0 {
		t.Errorf("expected no dose without mass, got %g", s.Dose)
	}
	if s.EdepRMS != 0 {
		t.Errorf("single event has no spread, got %g", s.EdepRMS)
	}
}

func TestMergeIsOrderIndependent(t *testing.T) {
	evs := events()

	whole := NewRun()
	for _, e := range evs {
		whole.AddEvent(e)
	}

	a, b := NewRun(), NewRun()
	a.AddEvent(evs[0])
	a.AddEvent(evs[2])
	b.AddEvent(evs[1])
	b.AddEvent(evs[3])

	ab := NewRun()
	ab.Merge(a)
	ab.Merge(b)
	ba := NewRun()
	ba.Merge(b)
	ba.Merge(a)
	ba.Merge(nil)

	for _, got := range []*Run{ab, ba} {
		if got.Events != whole.Events {
			t.Errorf("events: expected %d, got %d", whole.Events, got.Events)
		}
		if math.Abs(got.Edep2-whole.Edep2) > 1e-12 || math.Abs(got.DPA-whole.DPA) > 1e-27 {
			t.Errorf("merged sums differ: %+v vs %+v", got, whole)
		}
	}
	if ab.ID == ba.ID {
		t.Error("merge must keep the receiver's ID")
	}
}
