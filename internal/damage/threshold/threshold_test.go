package threshold

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/ngamma/glassdamage/pkg/material"
	"github.com/ngamma/glassdamage/pkg/units"
)

func single(name string, e material.Element) *material.Material {
	return &material.Material{
		Name:       name,
		Density:    2.2 * units.GramPerCm3,
		Components: []material.Component{{Element: e, MassFraction: 1}},
	}
}

func TestMaterialAverageEdSingleElement(t *testing.T) {
	table := NewTable(map[string]float64{"Si": 21.5 * units.EV})

	for _, policy := range []Policy{NRTPolicy(), SRIMPolicy()} {
		r := NewResolver(table, policy)
		got := r.MaterialAverageEd(single("silicon", material.Silicon))
		if got != 21.5*units.EV {
			t.Errorf("expected table Ed 21.5 eV, got %g eV", units.In(got, units.EV))
		}
	}
}

func TestElementEdResolutionOrder(t *testing.T) {
	table := NewTable(map[string]float64{
		"Oxygen": 28 * units.EV, // name keys are accepted
		"Zn":     -1,            // non-positive counts as missing
	})
	r := NewResolver(table, NRTPolicy())

	tests := []struct {
		name     string
		element  material.Element
		expected float64
	}{
		{"table by name", material.Oxygen, 28},
		{"builtin default", material.Lithium, 10},
		{"non-positive table value ignored", material.Zinc, 25},
		{"unlisted element", material.Calcium, 25},
		{"rare earth", material.Gadolinium, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := units.In(r.ElementEd(tt.element), units.EV)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("expected %.1f eV, got %.4f eV", tt.expected, got)
			}
		})
	}

	if _, ok := r.LookupElementEd("Li"); ok {
		t.Error("Li is not in the table and must report not found")
	}
}

func TestPolicyDefaultsDiffer(t *testing.T) {
	nrt := NewResolver(NewTable(nil), NRTPolicy())
	srim := NewResolver(NewTable(nil), SRIMPolicy())

	for _, e := range []material.Element{material.Cerium, material.Gadolinium, material.Lead} {
		if nrt.ElementEd(e) <= srim.ElementEd(e) {
			t.Errorf("%s: expected NRT default above SRIM default", e.Symbol)
		}
	}
	if nrt.ElementEd(material.Silicon) != srim.ElementEd(material.Silicon) {
		t.Error("Si defaults must agree between models")
	}
}

func TestGlassRule(t *testing.T) {
	glass := &material.Material{
		Name:    "ShieldingGlass",
		Density: 2.46 * units.GramPerCm3,
		Components: []material.Component{
			{Element: material.Boron, MassFraction: 0.5},
			{Element: material.Oxygen, MassFraction: 0.5},
		},
	}

	tests := []struct {
		name     string
		table    Table
		policy   Policy
		expected float64 // eV
	}{
		{"NRT without table hit", NewTable(nil), NRTPolicy(), 30},
		{"SRIM without table hit", NewTable(nil), SRIMPolicy(), 25},
		{"NRT with partial table hit", NewTable(map[string]float64{"B": 19 * units.EV}), NRTPolicy(), 0.5 * 19},
		{"NRT with full table hit", NewTable(map[string]float64{"B": 19 * units.EV, "O": 21 * units.EV}), NRTPolicy(), 0.5*19 + 0.5*21},
		{"SRIM ignores table for glass", NewTable(map[string]float64{"B": 19 * units.EV}), SRIMPolicy(), 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := units.In(NewResolver(tt.table, tt.policy).MaterialAverageEd(glass), units.EV)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("expected %.2f eV, got %.4f eV", tt.expected, got)
			}
		})
	}

	// NIST plate glass is upper case and does not match the tags
	plate, _ := material.DefaultCatalog().Lookup(material.GlassPlate)
	if NRTPolicy().IsGlass(plate.Name) {
		t.Error("G4_GLASS_PLATE must take the element-weighted path")
	}
}

func TestParse(t *testing.T) {
	input := strings.Join([]string{
		"# element Ed(eV)",
		"",
		"Si 25",
		"O 20.5 trailing tokens are ignored",
		"B",
		"Gd notanumber",
		"Pb -3",
		"Si 27",
	}, "\n")

	table, stats, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Entries != 2 || stats.Skipped != 3 {
		t.Errorf("expected 2 entries and 3 skipped lines, got %+v", stats)
	}
	if ed, _ := table.Lookup("Si"); ed != 27*units.EV {
		t.Errorf("expected the later Si entry to win, got %g eV", units.In(ed, units.EV))
	}
	if ed, _ := table.Lookup("O"); ed != 20.5*units.EV {
		t.Errorf("expected O = 20.5 eV, got %g eV", units.In(ed, units.EV))
	}
}

func TestLoadFirst(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.dat")
	second := filepath.Join(dir, "second.dat")
	if err := os.WriteFile(first, []byte("O 21\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(second, []byte("O 99\nSi 99\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	table, path, err := LoadFirst([]string{filepath.Join(dir, "missing.dat"), first, second}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != first {
		t.Errorf("expected %s to be used, got %s", first, path)
	}
	if _, ok := table.Lookup("Si"); ok {
		t.Error("later candidates must not be merged")
	}

	_, _, err = LoadFirst([]string{filepath.Join(dir, "missing.dat")}, nil)
	if err != ErrNoThresholdFile {
		t.Errorf("expected ErrNoThresholdFile, got %v", err)
	}
}

func TestLazyLoadsOnce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "SRIM_Ed.dat")
	if err := os.WriteFile(path, []byte("Si 24\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	lazy := NewLazy([]string{path}, nil)

	var wg sync.WaitGroup
	results := make([]float64, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = lazy.Table().Lookup("Si")
		}(i)
	}
	wg.Wait()

	for i, ed := range results {
		if ed != 24*units.EV {
			t.Errorf("caller %d saw %g eV", i, units.In(ed, units.EV))
		}
	}

	// later changes to the file are never observed
	if err := os.WriteFile(path, []byte("Si 50\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if ed, _ := lazy.Table().Lookup("Si"); ed != 24*units.EV {
		t.Error("table must not be reloaded")
	}
	if src, err := lazy.Source(); src != path || err != nil {
		t.Errorf("unexpected source %q, err %v", src, err)
	}

	missing := NewLazy([]string{filepath.Join(dir, "nope.dat")}, nil)
	if missing.Table().Len() != 0 {
		t.Error("missing file must yield an empty table")
	}
	if _, err := missing.Source(); err != nil {
		t.Errorf("missing file is not an error, got %v", err)
	}
}
