package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ngamma/glassdamage/internal/app"
	"github.com/ngamma/glassdamage/internal/constants"
	"github.com/ngamma/glassdamage/internal/log"
	"github.com/ngamma/glassdamage/pkg/config"
	"github.com/ngamma/glassdamage/pkg/responseformat"
	"github.com/ngamma/glassdamage/pkg/units"
)

func main() {
	cfgFile := flag.String("config", "", "Path to YAML configuration (built-in defaults when empty)")
	input := flag.String("input", "steps.msgpack", "Recorded step stream (MessagePack)")
	model := flag.String("model", "", "Override damage.model: nrt or srim")
	workers := flag.Int("workers", 0, "Override replay.workers")
	output := flag.String("format", "text", "Summary output: text, json or msgpack")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("damage-replay %s\n", constants.Version)
		os.Exit(0)
	}

	format, err := responseformat.ParseFormat(*output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	provider, err := configProvider(*cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	cfg, err := provider.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading config file. Did you pass the -config flag? Run with -h for help: %v\n", err)
		os.Exit(1)
	}

	if err := log.Init(*debug || cfg.Logging.Debug); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	application := app.New(provider, log.Named("replay"))
	summary, setup, err := application.Run(context.Background(), app.Options{
		Input:         *input,
		ModelOverride: *model,
		Workers:       *workers,
	})
	if err != nil {
		log.Errorf("Replay failed: %v", err)
		log.Sync()
		os.Exit(1)
	}

	if format != responseformat.FormatText {
		if err := responseformat.NewFormatter().Write(os.Stdout, format, app.NewReport(summary, setup)); err != nil {
			log.Errorf("Writing summary: %v", err)
			log.Sync()
			os.Exit(1)
		}
		return
	}

	info := setup.Model.Info()
	fmt.Println("--------------------End of Run------------------------------")
	fmt.Printf(" Run %s: %d events\n", summary.ID, summary.Events)
	fmt.Printf(" DPA model: %s\n", info.Description)
	if setup.TableSource != "" {
		fmt.Printf(" Threshold table: %s (%d entries)\n", setup.TableSource, setup.TableSize)
	} else {
		fmt.Println(" Threshold table: none, built-in defaults")
	}
	fmt.Printf(" Energy deposit: %.6g MeV rms = %.6g MeV\n",
		units.In(summary.Edep, units.MeV), units.In(summary.EdepRMS, units.MeV))
	if cfg.Replay.ScoringMassKg > 0 {
		fmt.Printf(" Dose in scoring volume: %.6g Gy rms = %.6g Gy\n",
			summary.DoseGray(), units.In(summary.DoseRMS, units.Gray))
	}
	fmt.Printf(" DPA: total %.6e, per event %.6e, rms %.6e\n", summary.DPA, summary.MeanDPA, summary.DPARMS)
	fmt.Printf(" NIEL: total %.6g MeV, per event %.6g MeV\n",
		units.In(summary.NIEL, units.MeV), units.In(summary.MeanNIEL, units.MeV))
	fmt.Println("------------------------------------------------------------")
}

func configProvider(cfgFile string) (config.ConfigProvider, error) {
	if cfgFile == "" {
		return config.NewDefaultProvider(), nil
	}
	filename, err := filepath.Abs(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("resolving config path: %w", err)
	}
	return config.NewYAMLProvider(filename), nil
}
