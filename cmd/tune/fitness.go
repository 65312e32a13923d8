package main

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/ecosim/components"
	"github.com/pthm-cable/ecosim/config"
	"github.com/pthm-cable/ecosim/ecosystem"
	"github.com/pthm-cable/ecosim/systems"
	"github.com/pthm-cable/ecosim/telemetry"
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params      *ParamVector
	maxSec      float64
	seeds       []int64
	baseConfig  *config.Config
	statsWindow float64

	mu           sync.Mutex
	lastQuality  float64 // quality from most recent Evaluate call
	lastSurvival float64 // mean survival seconds from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxSec float64, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxSec:      maxSec,
		seeds:       seeds,
		baseConfig:  baseCfg,
		statsWindow: 10.0,
	}
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// LastSurvival returns the mean coexistence time of the most recent evaluation.
func (fe *FitnessEvaluator) LastSurvival() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastSurvival
}

// Minimum viable population: if either species stays below this for
// extinctionGraceSec it counts as functionally extinct.
const (
	minViablePop       = 2
	extinctionGraceSec = 30.0
	warmupSec          = 5.0
)

// runResult holds the results from a single simulation run.
type runResult struct {
	survivalSec float64                 // simulated seconds of coexistence (maxSec if survived)
	windowStats []telemetry.WindowStats // one per stats window
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	fitness  float64
	quality  float64
	survival float64
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness is negative coexistence time, so longer coexistence is better.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.configFor(x)

	// Run all seeds in parallel; each run owns its world.
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			result, err := fe.runSimulation(cfg, s)
			if err != nil {
				// An unbuildable world scores like one that dies immediately.
				return
			}
			quality := computeQuality(result.windowStats)
			results[idx] = seedResult{
				fitness:  computeFitness(result.survivalSec, quality),
				quality:  quality,
				survival: result.survivalSec,
			}
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalQuality, totalSurvival float64
	for _, r := range results {
		totalFitness += r.fitness
		totalQuality += r.quality
		totalSurvival += r.survival
	}
	n := float64(len(fe.seeds))

	fe.mu.Lock()
	fe.lastQuality = totalQuality / n
	fe.lastSurvival = totalSurvival / n
	fe.mu.Unlock()

	return totalFitness / n
}

// configFor returns a copy of the base config with x applied.
func (fe *FitnessEvaluator) configFor(x []float64) *config.Config {
	cfg := *fe.baseConfig
	fe.params.ApplyToConfig(&cfg, x)
	return &cfg
}

// worldOptions converts cfg into world options so runs never touch the global config.
func worldOptions(cfg *config.Config, seed int64) []ecosystem.Option {
	return []ecosystem.Option{
		ecosystem.WithSeed(seed),
		ecosystem.WithProfiles(
			systems.NewProfile(components.KindPrey, cfg.Prey),
			systems.NewProfile(components.KindPredator, cfg.Predator),
		),
		ecosystem.WithPlantRules(ecosystem.PlantRules{
			Max:            cfg.Plants.Max,
			RegrowInterval: float32(cfg.Launch.RegrowDelay),
			SpawnMargin:    float32(cfg.Plants.SpawnMargin),
			RegrowMargin:   float32(cfg.Plants.RegrowMargin),
		}),
		ecosystem.WithBirthTrial(ecosystem.BirthTrial{
			Range:     cfg.Reproduction.Range,
			RollAbove: cfg.Reproduction.RollAbove,
		}),
	}
}

// runSimulation executes a single headless run until functional extinction or maxSec.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed int64) (*runResult, error) {
	l := cfg.Launch
	world, err := ecosystem.NewWorld(l.Prey, l.Predators, l.Plants,
		cfg.Derived.WorldW32, cfg.Derived.WorldH32, worldOptions(cfg, seed)...)
	if err != nil {
		return nil, err
	}

	result := &runResult{}
	collector := telemetry.NewCollector(fe.statsWindow)
	dt := float32(cfg.Physics.DT)

	// Seconds each species has spent below the minimum viable population
	var preyBelowSec, predBelowSec float64

	for world.Elapsed() < fe.maxSec {
		world.Update(dt)
		collector.RecordTick(world.LastTick())

		now := world.Elapsed()
		if collector.ShouldFlush(now) {
			stats := collector.Flush(world.Tick(), now, telemetry.SamplePopulations(world))
			result.windowStats = append(result.windowStats, stats)
		}
		if now < warmupSec {
			continue
		}

		prey := world.PreyCount()
		pred := world.PredatorCount()

		// Hard extinction: either species completely gone
		if prey == 0 || pred == 0 {
			result.survivalSec = now
			return result, nil
		}

		if prey < minViablePop {
			preyBelowSec += float64(dt)
		} else {
			preyBelowSec = 0
		}
		if pred < minViablePop {
			predBelowSec += float64(dt)
		} else {
			predBelowSec = 0
		}
		if preyBelowSec >= extinctionGraceSec || predBelowSec >= extinctionGraceSec {
			result.survivalSec = now
			return result, nil
		}
	}

	result.survivalSec = fe.maxSec
	return result, nil
}

// computeFitness calculates the scalar fitness (lower = better).
// Formula: -(survivalSec × (1.0 + 0.2 × quality))
// Survival dominates; quality adds up to 20% to separate runs with similar survival.
func computeFitness(survivalSec, quality float64) float64 {
	return -(survivalSec * (1.0 + 0.2*quality))
}

// Quality component weights.
const (
	qualityWeightRatio     = 0.40
	qualityWeightStability = 0.35
	qualityWeightEnergy    = 0.25

	qualityWarmupWindows = 2 // skip first N windows (warmup)
	qualityMinPop        = 2 // exclude windows where either species < this
	targetRatio          = 4.0
	targetEnergy         = 60.0
)

// computeQuality computes ecosystem quality ∈ [0, 1] from window stats.
func computeQuality(windows []telemetry.WindowStats) float64 {
	if len(windows) <= qualityWarmupWindows {
		return 0
	}
	valid := windows[qualityWarmupWindows:]

	var ratioSum, energySum float64
	var count int
	preyCounts := make([]float64, 0, len(valid))
	predCounts := make([]float64, 0, len(valid))

	for _, w := range valid {
		if w.PreyCount < qualityMinPop || w.PredCount < qualityMinPop {
			continue
		}
		preyCounts = append(preyCounts, float64(w.PreyCount))
		predCounts = append(predCounts, float64(w.PredCount))

		// 1. Population ratio score
		ratio := float64(w.PreyCount) / float64(w.PredCount)
		logErr := math.Log(ratio / targetRatio)
		ratioSum += math.Exp(-logErr * logErr)

		// 2. Energy health score
		preyH := math.Exp(-math.Pow((w.PreyEnergyP50-targetEnergy)/25, 2))
		predH := math.Exp(-math.Pow((w.PredEnergyP50-targetEnergy)/25, 2))
		energySum += (preyH + predH) / 2.0
		count++
	}

	if count == 0 {
		return 0
	}

	// 3. Population stability (CV across all valid windows)
	stabilityScore := 0.0
	if count >= 2 {
		cvPrey := cv(preyCounts)
		cvPred := cv(predCounts)
		stabilityScore = math.Exp(-(cvPrey*cvPrey + cvPred*cvPred))
	}

	quality := qualityWeightRatio*ratioSum/float64(count) +
		qualityWeightStability*stabilityScore +
		qualityWeightEnergy*energySum/float64(count)

	return min(max(quality, 0), 1)
}

// cv computes the coefficient of variation (std/mean) for a slice of values.
func cv(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean, std := stat.PopMeanStdDev(values, nil)
	if mean == 0 {
		return 0
	}
	return std / mean
}
