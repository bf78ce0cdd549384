package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ngamma/glassdamage/internal/accumulate"
	"github.com/ngamma/glassdamage/internal/damage/dpa"
	"github.com/ngamma/glassdamage/internal/replay"
	"github.com/ngamma/glassdamage/pkg/config"
	"github.com/ngamma/glassdamage/pkg/material"
	"github.com/ngamma/glassdamage/pkg/units"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicies(t *testing.T) {
	d := config.Defaults().Damage
	d.NRT.GlassFallbackEV = 31
	d.GlassTags = []string{"Borate"}

	nrt, srim := Policies(d)
	assert.Equal(t, 31*units.EV, nrt.GlassFallback)
	assert.Equal(t, 25*units.EV, srim.GlassFallback)
	assert.True(t, nrt.GlassUsesTable)
	assert.False(t, srim.GlassUsesTable)
	assert.True(t, nrt.IsGlass("BorateX"))
	assert.False(t, srim.IsGlass("ShieldingGlass"))
}

func TestBuildScorer(t *testing.T) {
	dir := t.TempDir()
	table := filepath.Join(dir, "Ed.dat")
	require.NoError(t, os.WriteFile(table, []byte("# Ed table\nSi 22\nO 18\n"), 0o644))

	d := config.Defaults().Damage
	d.ThresholdTable.Candidates = []string{filepath.Join(dir, "missing.dat"), table}

	setup, err := BuildScorer(d, "srim", nil)
	require.NoError(t, err)
	assert.Equal(t, dpa.ModelSRIM, setup.Model)
	assert.Equal(t, table, setup.TableSource)
	assert.Equal(t, 2, setup.TableSize)

	d.ThresholdTable.Candidates = []string{filepath.Join(dir, "missing.dat")}
	setup, err = BuildScorer(d, "", nil)
	require.NoError(t, err, "a missing table is not an error")
	assert.Equal(t, dpa.ModelNRT, setup.Model)
	assert.Equal(t, "", setup.TableSource)

	_, err = BuildScorer(d, "bogus", nil)
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "glassdamage.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
damage:
  threshold_table:
    candidates: []
replay:
  workers: 2
  scoring_mass_kg: 0.1
`), 0o644))

	input := filepath.Join(dir, "steps.msgpack")
	f, err := os.Create(input)
	require.NoError(t, err)
	w := replay.NewWriter(f)
	for ev := int64(0); ev < 5; ev++ {
		require.NoError(t, w.Write(replay.Record{
			EventID:  ev,
			PDG:      2112,
			LengthMM: 0.1,
			EdepMeV:  0.05,
			PreKEMeV: 2,
			Material: material.ShieldingGlass,
		}))
	}
	require.NoError(t, f.Close())

	a := New(config.NewYAMLProvider(cfgPath), nil)
	summary, setup, err := a.Run(context.Background(), Options{Input: input})
	require.NoError(t, err)

	assert.Equal(t, dpa.ModelNRT, setup.Model)
	assert.Equal(t, int64(5), summary.Events)
	assert.InDelta(t, 0.25*units.MeV, summary.Edep, 1e-12)
	assert.Greater(t, summary.DoseGray(), 0.0)
	assert.Greater(t, summary.DPA, 0.0)

	_, _, err = a.Run(context.Background(), Options{Input: filepath.Join(dir, "nope.msgpack")})
	assert.Error(t, err)
}

func TestNewReport(t *testing.T) {
	s := accumulate.Summary{
		Events:   2,
		Edep:     3 * units.MeV,
		Dose:     0.5 * units.Gray,
		DPA:      4e-12,
		MeanDPA:  2e-12,
		NIEL:     1 * units.KeV,
		MeanNIEL: 0.5 * units.KeV,
	}
	r := NewReport(s, &Setup{Model: dpa.ModelSRIM, TableSource: "Ed.dat", TableSize: 3})

	assert.Equal(t, "SRIM", r.Model)
	assert.Equal(t, "Ed.dat", r.ThresholdTable)
	assert.InDelta(t, 3.0, r.EdepMeV, 1e-12)
	assert.InDelta(t, 0.5, r.DoseGy, 1e-12)
	assert.InDelta(t, 1e-3, r.NIELMeV, 1e-15)
	assert.Equal(t, 2e-12, r.MeanDPA)

	assert.Empty(t, NewReport(s, nil).Model)
}
