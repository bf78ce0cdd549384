// Package accumulate sums per-step damage contributions into event and run
// totals. Merging is plain summation, so the result does not depend on the
// order in which workers finish.
package accumulate

import (
	"math"

	"github.com/google/uuid"
	"github.com/ngamma/glassdamage/internal/damage"
	"github.com/ngamma/glassdamage/pkg/units"
)

// Event holds the sums of one event
type Event struct {
	ID    int64
	Steps int
	damage.Contribution
}

// Add folds one step contribution into the event
func (e *Event) Add(c damage.Contribution) {
	e.Steps++
	e.Contribution = e.Contribution.Add(c)
}

// Reset clears the event and assigns a new ID
func (e *Event) Reset(id int64) {
	*e = Event{ID: id}
}

// Run holds first and second moments of the per-event sums
type Run struct {
	ID     uuid.UUID
	Events int64

	Edep, Edep2 float64
	DPA, DPA2   float64
	NIEL, NIEL2 float64
}

// NewRun returns an empty run with a fresh random ID
func NewRun() *Run {
	return &Run{ID: uuid.New()}
}

// AddEvent folds a finished event into the run
func (r *Run) AddEvent(e Event) {
	r.Events++
	r.Edep += e.Edep
	r.Edep2 += e.Edep * e.Edep
	r.DPA += e.DPA
	r.DPA2 += e.DPA * e.DPA
	r.NIEL += e.NIEL
	r.NIEL2 += e.NIEL * e.NIEL
}

// Merge adds other's sums into r. r keeps its ID.
func (r *Run) Merge(other *Run) {
	if other == nil {
		return
	}
	r.Events += other.Events
	r.Edep += other.Edep
	r.Edep2 += other.Edep2
	r.DPA += other.DPA
	r.DPA2 += other.DPA2
	r.NIEL += other.NIEL
	r.NIEL2 += other.NIEL2
}

// Summary is the end-of-run report
type Summary struct {
	ID     uuid.UUID
	Events int64

	Edep    float64 // total deposit
	EdepRMS float64
	// Dose and DoseRMS are in internal units; zero when no mass was given
	Dose    float64
	DoseRMS float64

	DPA      float64 // total
	DPARMS   float64
	MeanDPA  float64 // per event
	NIEL     float64
	NIELRMS  float64
	MeanNIEL float64
}

// DoseGray returns the dose in gray
func (s Summary) DoseGray() float64 {
	return units.In(s.Dose, units.Gray)
}

// Summary computes totals, spreads and dose. mass is the scoring mass in
// internal units.
func (r *Run) Summary(mass float64) Summary {
	s := Summary{ID: r.ID, Events: r.Events, Edep: r.Edep, DPA: r.DPA, NIEL: r.NIEL}
	if r.Events == 0 {
		return s
	}

	n := float64(r.Events)
	s.EdepRMS = spread(r.Edep, r.Edep2, n)
	s.DPARMS = spread(r.DPA, r.DPA2, n)
	s.NIELRMS = spread(r.NIEL, r.NIEL2, n)
	s.MeanDPA = r.DPA / n
	s.MeanNIEL = r.NIEL / n

	if mass > 0 {
		s.Dose = r.Edep / mass
		s.DoseRMS = s.EdepRMS / mass
	}
	return s
}

// spread returns sqrt(Σx² − (Σx)²/n), or 0 when the radicand is not
// positive
func spread(sum, sum2, n float64) float64 {
	v := sum2 - sum*sum/n
	if v <= 0 {
		return 0
	}
	return math.Sqrt(v)
}
