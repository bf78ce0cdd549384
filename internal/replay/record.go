// Package replay feeds recorded transport steps through the damage scorer.
// A recording is a plain stream of MessagePack maps, one per step, written
// by a transport host in event order.
package replay

import (
	"errors"
	"fmt"
	"io"

	"github.com/ngamma/glassdamage/pkg/material"
	"github.com/ngamma/glassdamage/pkg/particle"
	"github.com/ngamma/glassdamage/pkg/transport"
	"github.com/ngamma/glassdamage/pkg/units"
	"github.com/vmihailenco/msgpack/v5"
)

// ErrUnknownMaterial is returned when a record names a material that the
// catalog does not hold
var ErrUnknownMaterial = errors.New("unknown material")

// Record is the on-disk step format. Quantities carry explicit units so the
// stream does not depend on the internal unit system.
type Record struct {
	EventID  int64   `json:"event_id"`
	PDG      int     `json:"pdg"`
	LengthMM float64 `json:"length_mm"`
	EdepMeV  float64 `json:"edep_mev"`
	PreKEMeV float64 `json:"pre_ke_mev"`
	Material string  `json:"material"`
}

// Catalog resolves material names
type Catalog interface {
	Lookup(name string) (*material.Material, error)
}

// FromStep converts a step into a record
func FromStep(s transport.Step) Record {
	r := Record{
		EventID:  s.EventID,
		PDG:      s.Particle.PDG(),
		LengthMM: units.In(s.Length, units.MM),
		EdepMeV:  units.In(s.EnergyDeposit, units.MeV),
		PreKEMeV: units.In(s.PreStepKineticEnergy, units.MeV),
	}
	if s.Material != nil {
		r.Material = s.Material.Name
	}
	return r
}

// Step converts the record back into a step, resolving its material
func (r Record) Step(c Catalog) (transport.Step, error) {
	m, err := c.Lookup(r.Material)
	if err != nil {
		return transport.Step{}, fmt.Errorf("%w %q: %v", ErrUnknownMaterial, r.Material, err)
	}
	return transport.Step{
		EventID:              r.EventID,
		Length:               r.LengthMM * units.MM,
		EnergyDeposit:        r.EdepMeV * units.MeV,
		PreStepKineticEnergy: r.PreKEMeV * units.MeV,
		Particle:             particle.FromPDG(r.PDG),
		Material:             m,
	}, nil
}

// Writer encodes records onto a stream
type Writer struct {
	enc   *msgpack.Encoder
	count int
}

// NewWriter returns a writer on w. Callers buffer w themselves.
func NewWriter(w io.Writer) *Writer {
	enc := msgpack.NewEncoder(w)
	enc.SetCustomStructTag("json")
	return &Writer{enc: enc}
}

// Write appends one record
func (w *Writer) Write(r Record) error {
	if err := w.enc.Encode(&r); err != nil {
		return fmt.Errorf("encoding record %d: %w", w.count, err)
	}
	w.count++
	return nil
}

// WriteStep appends the record form of s
func (w *Writer) WriteStep(s transport.Step) error {
	return w.Write(FromStep(s))
}

// Count returns the number of records written
func (w *Writer) Count() int {
	return w.count
}

// Reader decodes records from a stream
type Reader struct {
	dec   *msgpack.Decoder
	count int
}

// NewReader returns a reader on r
func NewReader(r io.Reader) *Reader {
	dec := msgpack.NewDecoder(r)
	dec.SetCustomStructTag("json")
	return &Reader{dec: dec}
}

// Next decodes the next record. It returns io.EOF at a clean end of stream.
func (r *Reader) Next() (Record, error) {
	var rec Record
	if err := r.dec.Decode(&rec); err != nil {
		if errors.Is(err, io.EOF) {
			return Record{}, io.EOF
		}
		return Record{}, fmt.Errorf("decoding record %d: %w", r.count, err)
	}
	r.count++
	return rec, nil
}

// Count returns the number of records decoded so far
func (r *Reader) Count() int {
	return r.count
}
