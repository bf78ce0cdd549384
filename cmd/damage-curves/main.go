package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ngamma/glassdamage/internal/analysis"
	"github.com/ngamma/glassdamage/internal/app"
	"github.com/ngamma/glassdamage/internal/constants"
	"github.com/ngamma/glassdamage/internal/damage/dpa"
	"github.com/ngamma/glassdamage/internal/log"
	"github.com/ngamma/glassdamage/internal/spectrum"
	"github.com/ngamma/glassdamage/pkg/config"
	"github.com/ngamma/glassdamage/pkg/material"
	"github.com/ngamma/glassdamage/pkg/particle"
	"github.com/ngamma/glassdamage/pkg/units"
)

func main() {
	var (
		cfgFile     = flag.String("config", "", "Path to YAML configuration (built-in defaults when empty)")
		matName     = flag.String("material", material.ShieldingGlass, "Material name from the catalog")
		kindName    = flag.String("particle", "neutron", "Particle kind: neutron, proton, gamma or other")
		emin        = flag.Float64("emin", 1e-3, "Lowest energy in MeV")
		emax        = flag.Float64("emax", 20, "Highest energy in MeV")
		points      = flag.Int("points", 60, "Number of log-spaced energies")
		csvOutput   = flag.String("csv", "", "Optional CSV output file path")
		debug       = flag.Bool("debug", false, "Turn on debugging output")
		showVersion = flag.Bool("version", false, "Show version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("damage-curves %s\n", constants.Version)
		os.Exit(0)
	}

	if err := log.Init(*debug); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	catalog := material.DefaultCatalog()
	m, err := catalog.Lookup(*matName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v (known: %s)\n", err, strings.Join(catalog.Names(), ", "))
		os.Exit(1)
	}
	kind, ok := particle.Parse(strings.ToLower(*kindName))
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown particle %q\n", *kindName)
		os.Exit(1)
	}

	d, err := damageConfig(*cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading config: %v\n", err)
		os.Exit(1)
	}
	setup, err := app.BuildScorer(*d, "", log.Named("curves"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	energies := analysis.LogGrid(*emin*units.MeV, *emax*units.MeV, *points)
	nielCurve := analysis.NIELCurve(setup.Scorer.NIEL(), m, kind, energies, analysis.DefaultProbe)
	curves := make(map[dpa.Model]analysis.Curve, len(dpa.Models))
	for _, model := range dpa.Models {
		curves[model] = analysis.DPACurve(setup.Scorer.DPA().WithModel(model), m, kind, energies, analysis.DefaultProbe)
	}

	fmt.Printf("Damage curves for %s in %s\n", kind, m.Name)
	fmt.Printf("=====================================\n\n")
	fmt.Printf("  Density: %.3f g/cm3\n", units.In(m.Density, units.GramPerCm3))
	fmt.Printf("  Atom density: %.4e /cm3\n", m.AtomDensity()*units.Centimeter3)
	fmt.Printf("  Probe: %.0f um, %.3f MeV deposited\n\n",
		units.In(analysis.DefaultProbe.Length, units.Micrometer), units.In(analysis.DefaultProbe.EnergyDeposit, units.MeV))

	fmt.Printf("%12s %14s %14s %14s\n", "E (MeV)", "NIEL (MeV)", "DPA NRT", "DPA SRIM")
	for i, p := range nielCurve {
		fmt.Printf("%12.4e %14.4e %14.4e %14.4e\n",
			units.In(p.Energy, units.MeV), units.In(p.Value, units.MeV),
			curves[dpa.ModelNRT][i].Value, curves[dpa.ModelSRIM][i].Value)
	}

	if kind == particle.Neutron {
		sampler := spectrum.NewCf252Sampler()
		fmt.Printf("\nCf-252 Watt spectrum (mean %.3f MeV)\n", units.In(sampler.Mean(), units.MeV))
		if avg, err := analysis.SpectrumAverage(nielCurve, sampler); err == nil {
			fmt.Printf("  Spectrum-averaged NIEL: %.4e MeV\n", units.In(avg, units.MeV))
		}
		for _, model := range dpa.Models {
			if avg, err := analysis.SpectrumAverage(curves[model], sampler); err == nil {
				fmt.Printf("  Spectrum-averaged DPA (%s): %.4e\n", model, avg)
			}
		}
	}

	if *csvOutput != "" {
		if err := exportCSV(*csvOutput, nielCurve, curves); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing CSV: %v\n", err)
		} else {
			fmt.Printf("\nData exported to: %s\n", *csvOutput)
		}
	}
}

func damageConfig(cfgFile string) (*config.DamageData, error) {
	if cfgFile == "" {
		return config.NewDefaultProvider().GetDamageConfig()
	}
	filename, err := filepath.Abs(cfgFile)
	if err != nil {
		return nil, err
	}
	return config.NewYAMLProvider(filename).GetDamageConfig()
}

func exportCSV(filename string, nielCurve analysis.Curve, curves map[dpa.Model]analysis.Curve) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"Energy_MeV", "NIEL_MeV", "DPA_NRT", "DPA_SRIM"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for i, p := range nielCurve {
		record := []string{
			fmt.Sprintf("%.6e", units.In(p.Energy, units.MeV)),
			fmt.Sprintf("%.6e", units.In(p.Value, units.MeV)),
			fmt.Sprintf("%.6e", curves[dpa.ModelNRT][i].Value),
			fmt.Sprintf("%.6e", curves[dpa.ModelSRIM][i].Value),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return nil
}
