package main

import (
	"math"
	"testing"
	"time"

	"github.com/pthm-cable/ecosim/config"
	"github.com/pthm-cable/ecosim/telemetry"
)

func init() {
	config.MustInit("")
}

func TestParamVector_ExtractDefaults(t *testing.T) {
	pv := NewParamVector()
	cfg := config.Cfg()
	got := pv.ExtractFromConfig(cfg)

	want := map[string]float64{
		"prey_base_drain":      cfg.Prey.BaseDrain,
		"pred_energy_gain":     cfg.Predator.EnergyGain,
		"plant_regrow_delay":   cfg.Launch.RegrowDelay,
		"plants_max":           float64(cfg.Plants.Max),
		"prey_repro_threshold": cfg.Prey.ReproductionThreshold,
	}
	for i, spec := range pv.Specs {
		w, ok := want[spec.Name]
		if !ok {
			continue
		}
		if math.Abs(got[i]-w) > 1e-9 {
			t.Errorf("%s = %v, want %v", spec.Name, got[i], w)
		}
	}
}

func TestParamVector_NormalizeRoundTrip(t *testing.T) {
	pv := NewParamVector()
	raw := pv.ExtractFromConfig(config.Cfg())
	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(back[i]-raw[i]) > 1e-9 {
			t.Errorf("%s: round trip %v -> %v", pv.Specs[i].Name, raw[i], back[i])
		}
	}
}

func TestParamVector_Clamp(t *testing.T) {
	pv := NewParamVector()
	v := make([]float64, pv.Dim())
	for i, spec := range pv.Specs {
		v[i] = spec.Max * 10
	}
	for i, c := range pv.Clamp(v) {
		if c != pv.Specs[i].Max {
			t.Errorf("%s clamped to %v, want %v", pv.Specs[i].Name, c, pv.Specs[i].Max)
		}
	}

	for i, spec := range pv.Specs {
		if spec.Integer {
			v[i] = 57.6
		}
	}
	for i, c := range pv.Clamp(v) {
		if pv.Specs[i].Integer && c != 58 {
			t.Errorf("%s = %v, want rounded 58", pv.Specs[i].Name, c)
		}
	}
}

func TestApplyToConfig_LeavesBaseUntouched(t *testing.T) {
	pv := NewParamVector()
	base := config.Cfg()
	origDrain := base.Prey.BaseDrain
	origMax := base.Plants.Max

	fe := NewFitnessEvaluator(pv, 1, []int64{1}, base)
	x := make([]float64, pv.Dim())
	for i, spec := range pv.Specs {
		x[i] = spec.Min
	}
	cfg := fe.configFor(x)

	if cfg.Prey.BaseDrain != pv.Specs[0].Min {
		t.Errorf("prey base drain = %v, want %v", cfg.Prey.BaseDrain, pv.Specs[0].Min)
	}
	if cfg.Plants.Max != 20 {
		t.Errorf("plants max = %d, want 20", cfg.Plants.Max)
	}
	if base.Prey.BaseDrain != origDrain || base.Plants.Max != origMax {
		t.Error("base config was modified")
	}
}

func TestComputeFitness(t *testing.T) {
	if got := computeFitness(100, 0); got != -100 {
		t.Errorf("fitness(100, 0) = %v, want -100", got)
	}
	if got := computeFitness(100, 1); math.Abs(got+120) > 1e-9 {
		t.Errorf("fitness(100, 1) = %v, want -120", got)
	}
	if computeFitness(200, 0) >= computeFitness(100, 1) {
		t.Error("survival should dominate quality")
	}
}

func window(prey, pred int, energy float64) telemetry.WindowStats {
	return telemetry.WindowStats{
		PreyCount:     prey,
		PredCount:     pred,
		PreyEnergyP50: energy,
		PredEnergyP50: energy,
	}
}

func TestComputeQuality(t *testing.T) {
	steady := make([]telemetry.WindowStats, 8)
	for i := range steady {
		steady[i] = window(20, 5, targetEnergy)
	}

	swinging := make([]telemetry.WindowStats, 8)
	for i := range swinging {
		if i%2 == 0 {
			swinging[i] = window(40, 2, 20)
		} else {
			swinging[i] = window(5, 5, 95)
		}
	}

	tests := []struct {
		name    string
		windows []telemetry.WindowStats
		min     float64
		max     float64
	}{
		{"empty", nil, 0, 0},
		{"warmup only", steady[:qualityWarmupWindows], 0, 0},
		{"collapsed", []telemetry.WindowStats{window(0, 0, 0), window(0, 0, 0), window(1, 0, 0), window(0, 1, 0)}, 0, 0},
		{"steady at target", steady, 0.999, 1},
		{"swinging", swinging, 0.01, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := computeQuality(tt.windows)
			if q < tt.min || q > tt.max {
				t.Errorf("quality = %v, want in [%v, %v]", q, tt.min, tt.max)
			}
		})
	}
}

func TestCV(t *testing.T) {
	if got := cv(nil); got != 0 {
		t.Errorf("cv(nil) = %v", got)
	}
	if got := cv([]float64{5, 5, 5}); got != 0 {
		t.Errorf("cv(constant) = %v", got)
	}
	// population std of {2, 4} is 1, mean 3
	if got := cv([]float64{2, 4}); math.Abs(got-1.0/3.0) > 1e-9 {
		t.Errorf("cv({2,4}) = %v, want 1/3", got)
	}
}

func TestEvaluate_ShortRunReachesCap(t *testing.T) {
	pv := NewParamVector()
	base := config.Cfg()
	fe := NewFitnessEvaluator(pv, 2, []int64{42, 1042}, base)

	fitness := fe.Evaluate(pv.ExtractFromConfig(base))

	// Runs shorter than the warmup cannot end early and produce no windows.
	if math.Abs(fitness+2) > 1e-9 {
		t.Errorf("fitness = %v, want -2", fitness)
	}
	if math.Abs(fe.LastSurvival()-2) > 1e-9 {
		t.Errorf("survival = %v, want 2", fe.LastSurvival())
	}
	if fe.LastQuality() != 0 {
		t.Errorf("quality = %v, want 0", fe.LastQuality())
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"45s", "0m45s"},
		{"61s", "1m01s"},
		{"1h2m3s", "1h02m03s"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := time.ParseDuration(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if got := formatDuration(d); got != tt.want {
				t.Errorf("formatDuration(%s) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
