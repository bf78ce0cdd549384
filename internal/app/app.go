// Package app wires configuration, the threshold table and the damage
// scorer together for the command-line tools
package app

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ngamma/glassdamage/internal/accumulate"
	"github.com/ngamma/glassdamage/internal/damage"
	"github.com/ngamma/glassdamage/internal/damage/dpa"
	"github.com/ngamma/glassdamage/internal/damage/threshold"
	"github.com/ngamma/glassdamage/internal/replay"
	"github.com/ngamma/glassdamage/pkg/config"
	"github.com/ngamma/glassdamage/pkg/material"
	"github.com/ngamma/glassdamage/pkg/units"
	"go.uber.org/zap"
)

// App holds everything a replay needs
type App struct {
	configProvider config.ConfigProvider
	logger         *zap.SugaredLogger
	catalog        *material.Catalog
}

// New creates an application instance over the default material catalog
func New(configProvider config.ConfigProvider, logger *zap.SugaredLogger) *App {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &App{
		configProvider: configProvider,
		logger:         logger,
		catalog:        material.DefaultCatalog(),
	}
}

// Catalog returns the material catalog used to resolve recorded steps
func (a *App) Catalog() *material.Catalog {
	return a.catalog
}

// Policies converts the damage section into threshold policies
func Policies(d config.DamageData) (nrt, srim threshold.Policy) {
	nrt, srim = threshold.NRTPolicy(), threshold.SRIMPolicy()

	tags := append([]string(nil), d.GlassTags...)
	nrt.GlassTags, srim.GlassTags = tags, tags

	nrt.GlassFallback = d.NRT.GlassFallbackEV * units.EV
	nrt.GlassUsesTable = d.NRT.GlassUsesTable
	srim.GlassFallback = d.SRIM.GlassFallbackEV * units.EV
	srim.GlassUsesTable = d.SRIM.GlassUsesTable
	return nrt, srim
}

// Setup is a resolved scorer together with where its thresholds came from
type Setup struct {
	Scorer      *damage.Scorer
	Model       dpa.Model
	TableSource string
	TableSize   int
}

// BuildScorer resolves the model, loads the threshold table once and builds
// the scorer. modelOverride replaces damage.model when not empty.
func BuildScorer(d config.DamageData, modelOverride string, logger *zap.SugaredLogger) (*Setup, error) {
	name := d.Model
	if modelOverride != "" {
		name = modelOverride
	}
	model, err := dpa.ParseModel(name)
	if err != nil {
		return nil, err
	}

	lazy := threshold.NewLazy(d.ThresholdTable.Candidates, logger)
	table := lazy.Table()
	source, err := lazy.Source()
	if err != nil {
		return nil, fmt.Errorf("loading threshold table: %w", err)
	}

	nrt, srim := Policies(d)
	scorer := damage.NewScorer(damage.ScorerConfig{
		Model:      model,
		Table:      table,
		NRTPolicy:  &nrt,
		SRIMPolicy: &srim,
	})

	return &Setup{Scorer: scorer, Model: model, TableSource: source, TableSize: table.Len()}, nil
}

// Options are the per-invocation replay settings
type Options struct {
	Input         string
	ModelOverride string
	Workers       int // 0 keeps replay.workers
}

// Run replays the input recording and returns the run summary. SIGINT and
// SIGTERM cancel the replay.
func (a *App) Run(ctx context.Context, opts Options) (accumulate.Summary, *Setup, error) {
	cfg, err := a.configProvider.LoadConfig()
	if err != nil {
		return accumulate.Summary{}, nil, fmt.Errorf("loading config: %w", err)
	}

	setup, err := BuildScorer(cfg.Damage, opts.ModelOverride, a.logger)
	if err != nil {
		return accumulate.Summary{}, nil, err
	}
	a.logger.Infow("scorer ready",
		"model", setup.Model,
		"threshold_table", setup.TableSource,
		"entries", setup.TableSize,
	)

	workers := cfg.Replay.Workers
	if opts.Workers > 0 {
		workers = opts.Workers
	}

	f, err := os.Open(opts.Input)
	if err != nil {
		return accumulate.Summary{}, setup, err
	}
	defer f.Close()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	run, err := replay.Run(ctx, replay.NewReader(bufio.NewReader(f)), setup.Scorer, a.catalog, workers, a.logger)
	if err != nil {
		return accumulate.Summary{}, setup, fmt.Errorf("replaying %s: %w", opts.Input, err)
	}

	return run.Summary(cfg.Replay.ScoringMassKg * units.Kilogram), setup, nil
}
