package analysis

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// ErrUnderdetermined is returned when a fit has fewer samples than
// parameters
var ErrUnderdetermined = errors.New("fewer samples than parameters")

// Oxides lists the composition columns in order
var Oxides = []string{"SiO2", "Al2O3", "CeO2", "B2O3", "Gd2O3", "ZnO", "Li2O", "PbO"}

// Composition is a glass recipe in weight percent
type Composition struct {
	SiO2, Al2O3, CeO2, B2O3, Gd2O3, ZnO, Li2O, PbO float64
}

// Vector returns the oxide contents in Oxides order
func (c Composition) Vector() []float64 {
	return []float64{c.SiO2, c.Al2O3, c.CeO2, c.B2O3, c.Gd2O3, c.ZnO, c.Li2O, c.PbO}
}

// Total returns the summed weight percent
func (c Composition) Total() float64 {
	var t float64
	for _, v := range c.Vector() {
		t += v
	}
	return t
}

// Sample is a measured recipe
type Sample struct {
	Composition
	GammaEfficiency   float64
	NeutronEfficiency float64
}

// ReferenceSamples is the baseline recipe and its seven variations
var ReferenceSamples = []Sample{
	{Composition{45, 15, 10, 8, 8, 6, 4, 2}, 82.5, 78.3},
	{Composition{40, 15, 15, 8, 8, 6, 4, 4}, 85.2, 79.1},
	{Composition{45, 10, 10, 12, 8, 6, 4, 5}, 83.1, 80.5},
	{Composition{45, 15, 8, 8, 12, 6, 4, 2}, 81.8, 82.7},
	{Composition{50, 15, 8, 8, 8, 6, 3, 2}, 80.9, 81.2},
	{Composition{42, 15, 12, 8, 8, 6, 4, 5}, 86.3, 79.8},
	{Composition{45, 12, 10, 10, 8, 6, 4, 5}, 84.7, 81.9},
	{Composition{45, 15, 10, 8, 10, 6, 4, 2}, 83.9, 83.1},
}

// PredictEfficiency is the composition-based comprehensive efficiency
// estimate in percent
func PredictEfficiency(c Composition) float64 {
	return 70 + 2.1*c.PbO + 1.5*c.Gd2O3 + 0.8*c.B2O3 + 1.2*c.CeO2
}

// Comprehensive combines gamma and neutron efficiencies
func Comprehensive(gamma, neutron float64) float64 {
	return GammaWeight*gamma + NeutronWeight*neutron
}

// Objective is the second-order efficiency surface over PbO and Gd2O3
// content
func Objective(pbo, gd2o3 float64) float64 {
	return 70 + 2.1*pbo + 1.5*gd2o3 - 0.1*pbo*pbo - 0.05*gd2o3*gd2o3 + 0.2*pbo*gd2o3
}

// LinearModel is y = Intercept + Σ Coef[j]·x[j]
type LinearModel struct {
	Intercept float64
	Coef      []float64
}

// Predict evaluates the model at x
func (m LinearModel) Predict(x []float64) float64 {
	y := m.Intercept
	for j, c := range m.Coef {
		y += c * x[j]
	}
	return y
}

// FitLinear solves the least-squares problem for rows x and targets y.
// An intercept column is added.
func FitLinear(x [][]float64, y []float64) (LinearModel, error) {
	n := len(x)
	if n != len(y) {
		return LinearModel{}, ErrLengthMismatch
	}
	if n == 0 {
		return LinearModel{}, ErrUnderdetermined
	}
	p := len(x[0]) + 1
	if n < p {
		return LinearModel{}, fmt.Errorf("%w: %d samples, %d parameters", ErrUnderdetermined, n, p)
	}

	X := mat.NewDense(n, p, nil)
	for i, row := range x {
		if len(row) != p-1 {
			return LinearModel{}, fmt.Errorf("row %d: %w", i, ErrLengthMismatch)
		}
		X.Set(i, 0, 1)
		for j, v := range row {
			X.Set(i, j+1, v)
		}
	}

	coeffs, err := solveQR(X, y)
	if err != nil {
		return LinearModel{}, err
	}
	return LinearModel{Intercept: coeffs[0], Coef: coeffs[1:]}, nil
}

// Polynomial holds coefficients in increasing power
type Polynomial []float64

// Eval returns Σ c[i]·x^i
func (p Polynomial) Eval(x float64) float64 {
	var y float64
	for i := len(p) - 1; i >= 0; i-- {
		y = y*x + p[i]
	}
	return y
}

// FitPolynomial fits a polynomial of the given degree through a Vandermonde
// least-squares solve
func FitPolynomial(x, y []float64, degree int) (Polynomial, error) {
	n := len(x)
	if n != len(y) {
		return nil, ErrLengthMismatch
	}
	if degree < 0 || n < degree+1 {
		return nil, fmt.Errorf("%w: %d samples for degree %d", ErrUnderdetermined, n, degree)
	}

	X := mat.NewDense(n, degree+1, nil)
	for i := 0; i < n; i++ {
		for j := 0; j <= degree; j++ {
			X.Set(i, j, math.Pow(x[i], float64(j)))
		}
	}

	coeffs, err := solveQR(X, y)
	if err != nil {
		return nil, err
	}
	return Polynomial(coeffs), nil
}

func solveQR(X *mat.Dense, y []float64) ([]float64, error) {
	_, p := X.Dims()

	var qr mat.QR
	qr.Factorize(X)

	coeffs := mat.NewVecDense(p, nil)
	if err := qr.SolveVecTo(coeffs, false, mat.NewVecDense(len(y), y)); err != nil {
		return nil, fmt.Errorf("solving least squares: %w", err)
	}

	out := make([]float64, p)
	for i := range out {
		out[i] = coeffs.AtVec(i)
	}
	return out, nil
}

// Metrics summarises how well predictions match observations
type Metrics struct {
	RSquared         float64
	AdjustedRSquared float64
	MAE              float64
	RMSE             float64
}

// Validate compares pred against actual for a model with params fitted
// parameters (excluding the intercept)
func Validate(pred, actual []float64, params int) (Metrics, error) {
	n := len(actual)
	if n != len(pred) {
		return Metrics{}, ErrLengthMismatch
	}
	if n == 0 {
		return Metrics{}, nil
	}

	mean := stat.Mean(actual, nil)
	var ssTot, ssRes, absErr float64
	for i := range actual {
		d := actual[i] - pred[i]
		ssRes += d * d
		absErr += math.Abs(d)
		ssTot += (actual[i] - mean) * (actual[i] - mean)
	}

	var m Metrics
	if ssTot > 0 {
		m.RSquared = 1 - ssRes/ssTot
	}
	if dof := float64(n - params - 1); dof > 0 {
		m.AdjustedRSquared = 1 - (1-m.RSquared)*float64(n-1)/dof
	}
	m.MAE = absErr / float64(n)
	m.RMSE = math.Sqrt(ssRes / float64(n))
	return m, nil
}

// CorrelationMatrix returns the Pearson correlation of every pair of
// columns. Pairs involving a constant column are 0, the diagonal is 1.
func CorrelationMatrix(columns [][]float64) (*mat.SymDense, error) {
	k := len(columns)
	if k == 0 {
		return nil, ErrUnderdetermined
	}
	n := len(columns[0])
	constant := make([]bool, k)
	for i, c := range columns {
		if len(c) != n {
			return nil, fmt.Errorf("column %d: %w", i, ErrLengthMismatch)
		}
		_, sd := stat.MeanStdDev(c, nil)
		constant[i] = !(sd > 0)
	}

	out := mat.NewSymDense(k, nil)
	for i := 0; i < k; i++ {
		out.SetSym(i, i, 1)
		for j := i + 1; j < k; j++ {
			var r float64
			if !constant[i] && !constant[j] {
				r = stat.Correlation(columns[i], columns[j], nil)
			}
			out.SetSym(i, j, r)
		}
	}
	return out, nil
}

// Columns transposes samples into per-oxide columns
func Columns(samples []Sample) [][]float64 {
	cols := make([][]float64, len(Oxides))
	for _, s := range samples {
		for j, v := range s.Vector() {
			cols[j] = append(cols[j], v)
		}
	}
	return cols
}
