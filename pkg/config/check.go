package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

type checkFunc func(conf *ConfigData) error

// Validate runs every check in order and returns the first failure
func Validate(conf *ConfigData) error {
	checkFuncs := []checkFunc{
		checkModel,
		checkPolicies,
		checkGlassTags,
		checkReplay,
	}

	for _, checkFunc := range checkFuncs {
		if err := checkFunc(conf); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}

	return nil
}

func checkModel(conf *ConfigData) error {
	switch strings.ToLower(strings.TrimSpace(conf.Damage.Model)) {
	case ModelNRT, ModelSRIM, "trim":
		return nil
	}
	return fmt.Errorf("damage.model %q is not one of nrt, srim", conf.Damage.Model)
}

func checkPolicies(conf *ConfigData) error {
	if conf.Damage.NRT.GlassFallbackEV <= 0 {
		return errors.New("damage.nrt.glass_fallback_ev must be positive")
	}
	if conf.Damage.SRIM.GlassFallbackEV <= 0 {
		return errors.New("damage.srim.glass_fallback_ev must be positive")
	}
	return nil
}

// An empty tag list is allowed and disables the glass rule
func checkGlassTags(conf *ConfigData) error {
	for i, tag := range conf.Damage.GlassTags {
		if strings.TrimSpace(tag) == "" {
			return fmt.Errorf("damage.glass_tags[%d] is empty", i)
		}
	}
	return nil
}

func checkReplay(conf *ConfigData) error {
	if conf.Replay.Workers < 1 {
		return fmt.Errorf("replay.workers must be at least 1, got %d", conf.Replay.Workers)
	}
	if conf.Replay.ScoringMassKg < 0 {
		return errors.New("replay.scoring_mass_kg must not be negative")
	}
	return nil
}
