package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/ngamma/glassdamage/internal/analysis"
	"github.com/ngamma/glassdamage/internal/constants"
	"github.com/ngamma/glassdamage/internal/log"
	"gonum.org/v1/gonum/floats"
)

// Oxides used as regressors for the efficiency fits
var regressors = []string{"PbO", "Gd2O3", "B2O3", "CeO2"}

func main() {
	var (
		samples     = flag.Int("samples", 10000, "Monte Carlo samples for uncertainty propagation")
		cloud       = flag.Int("cloud", 1000, "Candidate recipes drawn for the Pareto front")
		seed        = flag.Uint64("seed", 42, "Random seed")
		thickness   = flag.Float64("thickness", 2, "Glass thickness in cm for the transmission table")
		csvOutput   = flag.String("csv", "", "Optional CSV output file path for the Pareto front")
		debug       = flag.Bool("debug", false, "Turn on debugging output")
		showVersion = flag.Bool("version", false, "Show version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("shield-model %s\n", constants.Version)
		os.Exit(0)
	}

	if err := log.Init(*debug); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	fmt.Printf("Shielding Glass Model Report\n")
	fmt.Printf("============================\n\n")

	if err := reportAttenuation(*thickness); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := reportComposition(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	front := reportOptimum(*cloud, *seed)
	if err := reportUncertainty(*samples, *seed); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *csvOutput != "" {
		if err := exportCSV(*csvOutput, front); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing CSV: %v\n", err)
		} else {
			fmt.Printf("\nPareto front exported to: %s\n", *csvOutput)
		}
	}
}

func reportAttenuation(x float64) error {
	fmt.Printf("Attenuation\n-----------\n")

	// refit the reference model from its own tabulation
	energies := analysis.LogGrid(0.05, 10, 25)
	mu := make([]float64, len(energies))
	for i, e := range energies {
		mu[i] = analysis.GammaMu(e)
	}
	fit, sse, err := analysis.FitPowerSum(energies, mu, analysis.PowerSum{A: 0.1, B: -0.5, C: 0.01, D: -0.2})
	if err != nil {
		return err
	}
	log.Debugf("power-sum fit converged with sse=%g", sse)
	fmt.Printf("  mu(E) = %.4f*E^%.3f + %.4f*E^%.3f  (SSE %.2e)\n\n", fit.A, fit.B, fit.C, fit.D, sse)

	fmt.Printf("  %10s %10s %10s %10s %12s\n", "E (MeV)", "mu (1/cm)", "T", "Buildup", "Eff (%)")
	for _, e := range []float64{0.1, 0.662, 1.25, 5} {
		m := analysis.GammaMu(e)
		t := analysis.Transmission(m, x)
		fmt.Printf("  %10.3f %10.4f %10.4f %10.4f %12.2f\n", e, m, t, analysis.Buildup(m, x), analysis.Efficiency(1, t))
	}

	fmt.Printf("\n  %12s %14s %12s\n", "En (MeV)", "sigma (barn)", "T_composite")
	for _, e := range []float64{2.53e-8, 1e-5, 0.1, 2} {
		fmt.Printf("  %12.3e %14.3f %12.4f\n", e, analysis.NeutronSigma(e), analysis.CompositeTransmission(0.662, e, x))
	}
	fmt.Println()
	return nil
}

func reportComposition() error {
	fmt.Printf("Composition regression\n----------------------\n")

	cols := analysis.Columns(analysis.ReferenceSamples)
	index := make(map[string]int, len(analysis.Oxides))
	for i, name := range analysis.Oxides {
		index[name] = i
	}

	rows := make([][]float64, len(analysis.ReferenceSamples))
	gamma := make([]float64, len(rows))
	neutron := make([]float64, len(rows))
	comprehensive := make([]float64, len(rows))
	for i, s := range analysis.ReferenceSamples {
		for _, name := range regressors {
			rows[i] = append(rows[i], cols[index[name]][i])
		}
		gamma[i] = s.GammaEfficiency
		neutron[i] = s.NeutronEfficiency
		comprehensive[i] = analysis.Comprehensive(s.GammaEfficiency, s.NeutronEfficiency)
	}

	for _, target := range []struct {
		name string
		y    []float64
	}{
		{"gamma", gamma},
		{"neutron", neutron},
		{"comprehensive", comprehensive},
	} {
		model, err := analysis.FitLinear(rows, target.y)
		if err != nil {
			return fmt.Errorf("fitting %s efficiency: %w", target.name, err)
		}
		pred := make([]float64, len(rows))
		for i, r := range rows {
			pred[i] = model.Predict(r)
		}
		metrics, err := analysis.Validate(pred, target.y, len(regressors))
		if err != nil {
			return err
		}

		terms := make([]string, len(model.Coef))
		for j, c := range model.Coef {
			terms[j] = fmt.Sprintf("%+.3f*%s", c, regressors[j])
		}
		fmt.Printf("  %-14s = %.3f %s\n", target.name, model.Intercept, strings.Join(terms, " "))
		fmt.Printf("  %-14s   R2=%.4f adjR2=%.4f MAE=%.3f RMSE=%.3f\n", "", metrics.RSquared, metrics.AdjustedRSquared, metrics.MAE, metrics.RMSE)
	}

	poly, err := analysis.FitPolynomial(cols[index["PbO"]], gamma, 2)
	if err != nil {
		return err
	}
	fmt.Printf("\n  gamma(PbO) = %.3f %+.3f*x %+.4f*x^2\n", poly[0], poly[1], poly[2])

	corr, err := analysis.CorrelationMatrix(append(cols, gamma, neutron))
	if err != nil {
		return err
	}
	labels := append(append([]string(nil), analysis.Oxides...), "Gamma", "Neutron")
	fmt.Printf("\n  Correlation matrix\n  %8s", "")
	for _, l := range labels {
		fmt.Printf(" %7s", l)
	}
	fmt.Println()
	n, _ := corr.Dims()
	for i := 0; i < n; i++ {
		fmt.Printf("  %8s", labels[i])
		for j := 0; j < n; j++ {
			fmt.Printf(" %7.3f", corr.At(i, j))
		}
		fmt.Println()
	}
	fmt.Println()
	return nil
}

func reportOptimum(cloud int, seed uint64) []analysis.Tradeoff {
	fmt.Printf("Optimisation\n------------\n")

	c := analysis.DefaultConstraints()
	best, feasible, ok := c.GridSearch(100, 100, 20)
	if ok {
		fmt.Printf("  Best feasible recipe: PbO %.2f wt%%, Gd2O3 %.2f wt%% -> %.2f%% (%d feasible cells)\n",
			best.PbO, best.Gd2O3, best.Objective, feasible)
		fmt.Printf("  Quadratic surface at optimum: %.2f%%\n", analysis.Objective(best.PbO, best.Gd2O3))
	} else {
		fmt.Printf("  No recipe satisfies the constraints\n")
	}

	points := analysis.TradeoffCloud(cloud, seed)
	front := analysis.ParetoFront(points)
	fmt.Printf("\n  Pareto front: %d of %d candidates\n", len(front), len(points))
	for i, p := range front {
		if i == 10 {
			fmt.Printf("  ... %d more\n", len(front)-10)
			break
		}
		fmt.Printf("  gamma %6.2f%%  neutron %6.2f%%\n", p.Gamma, p.Neutron)
	}

	weights := floats.Span(make([]float64, 11), 0, 1)
	fmt.Printf("\n  %8s %8s %8s %14s\n", "w_gamma", "gamma", "neutron", "comprehensive")
	for _, w := range analysis.WeightSweep(weights) {
		fmt.Printf("  %8.2f %8.2f %8.2f %14.2f\n", w.Weight, w.Gamma, w.Neutron, w.Comprehensive)
	}
	fmt.Println()
	return front
}

func reportUncertainty(samples int, seed uint64) error {
	fmt.Printf("Uncertainty\n-----------\n")

	factors := analysis.DefaultFactors()
	band, err := analysis.Propagate(analysis.BaseEfficiency, factors, samples, seed)
	if err != nil {
		return err
	}
	sigmas := make([]float64, len(factors))
	for i, f := range factors {
		sigmas[i] = f.Sigma
	}

	fmt.Printf("  Monte Carlo (%d samples): %.2f%% +- %.2f%%\n", band.Samples, band.Mean, band.StdDev)
	fmt.Printf("  95%% normal interval:    [%.2f, %.2f]\n", band.Lower, band.Upper)
	fmt.Printf("  95%% empirical interval: [%.2f, %.2f]\n", band.Q025, band.Q975)
	fmt.Printf("  Quadrature estimate:    +- %.2f%%\n", analysis.BaseEfficiency*analysis.QuadratureSum(sigmas...))

	fmt.Printf("\n  %12s %10s %10s\n", "input", "-5%", "+5%")
	for _, s := range analysis.DefaultSensitivities() {
		lo := s.Response(analysis.BaseEfficiency, -5)
		hi := s.Response(analysis.BaseEfficiency, 5)
		fmt.Printf("  %12s %10.2f %10.2f  (swing %.2f)\n", s.Name, lo, hi, math.Abs(hi-lo))
	}
	return nil
}

func exportCSV(filename string, front []analysis.Tradeoff) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"Gamma_Efficiency", "Neutron_Efficiency", "Comprehensive"}); err != nil {
		return err
	}
	for _, p := range front {
		record := []string{
			fmt.Sprintf("%.3f", p.Gamma),
			fmt.Sprintf("%.3f", p.Neutron),
			fmt.Sprintf("%.3f", analysis.Comprehensive(p.Gamma, p.Neutron)),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	return nil
}
