package ecosystem

import (
	"errors"
	"math"
	"slices"
	"testing"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/ecosim/components"
	"github.com/pthm-cable/ecosim/config"
	"github.com/pthm-cable/ecosim/systems"
)

func init() {
	config.MustInit("")
}

const dt60 = float32(1.0 / 60.0)

// ---------- Construction ----------

func TestNewWorld_Validation(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))

	tests := []struct {
		name          string
		prey, pred    int
		plants        int
		width, height float32
		want          error
	}{
		{"negative prey", -1, 0, 0, 400, 400, ErrInvalidCount},
		{"negative plants", 0, 0, -5, 400, 400, ErrInvalidCount},
		{"zero width", 1, 1, 1, 0, 400, ErrInvalidDimensions},
		{"negative height", 1, 1, 1, 400, -1, ErrInvalidDimensions},
		{"nan width", 1, 1, 1, nan, 400, ErrInvalidDimensions},
		{"infinite height", 1, 1, 1, 400, inf, ErrInvalidDimensions},
		{"narrower than margins", 1, 1, 1, 90, 400, ErrInvalidDimensions},
		{"empty world is fine", 0, 0, 0, 400, 400, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewWorld(tt.prey, tt.pred, tt.plants, tt.width, tt.height, WithSeed(1))
			if tt.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNewWorld_InitialPlacement(t *testing.T) {
	w, err := NewWorld(20, 5, 30, 640, 480, WithSeed(42))
	if err != nil {
		t.Fatal(err)
	}

	if w.PreyCount() != 20 || w.PredatorCount() != 5 || w.PlantCount() != 30 {
		t.Fatalf("counts = %d/%d/%d, want 20/5/30", w.PreyCount(), w.PredatorCount(), w.PlantCount())
	}

	check := func(name string, x, y, margin float32) {
		if x < margin || x > 640-margin || y < margin || y > 480-margin {
			t.Errorf("%s at (%v, %v) outside margin %v", name, x, y, margin)
		}
	}
	for _, p := range w.Prey() {
		check("prey", p.X, p.Y, 30)
		if p.Energy != components.MaxEnergy || !p.Alive {
			t.Errorf("prey starts with %+v", p)
		}
	}
	for _, p := range w.Predators() {
		check("predator", p.X, p.Y, 45)
	}
	for _, p := range w.Plants() {
		check("plant", p.X, p.Y, 35)
		if !p.Available {
			t.Error("initial plant unavailable")
		}
	}
	if w.PlantsCreated() != 30 || w.PlantsConsumed() != 0 {
		t.Errorf("created=%d consumed=%d", w.PlantsCreated(), w.PlantsConsumed())
	}
}

func TestNewWorld_PlantsAboveCapArePreserved(t *testing.T) {
	w, err := NewWorld(0, 0, 80, 400, 400, WithSeed(3))
	if err != nil {
		t.Fatal(err)
	}
	if w.TotalPlants() != 80 || w.PlantCount() != 80 {
		t.Fatalf("plants = %d (available %d), want 80", w.TotalPlants(), w.PlantCount())
	}

	for range 3 {
		w.Update(10) // well past the regrow interval
	}
	if w.TotalPlants() != 80 {
		t.Errorf("plants above the cap must not regrow, got %d", w.TotalPlants())
	}
}

func TestSetPlantRegrowInterval(t *testing.T) {
	w, err := NewWorld(0, 0, 0, 400, 400, WithSeed(1))
	if err != nil {
		t.Fatal(err)
	}
	if w.PlantRegrowInterval() != 5 {
		t.Errorf("default interval = %v, want 5", w.PlantRegrowInterval())
	}

	tests := []struct {
		in      float32
		wantErr bool
	}{
		{2.5, false},
		{0, false},
		{-1, true},
		{float32(math.NaN()), true},
	}
	for _, tt := range tests {
		before := w.PlantRegrowInterval()
		err := w.SetPlantRegrowInterval(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidInterval) {
				t.Errorf("SetPlantRegrowInterval(%v) error = %v", tt.in, err)
			}
			if w.PlantRegrowInterval() != before {
				t.Error("rejected interval must not be applied")
			}
			continue
		}
		if err != nil || w.PlantRegrowInterval() != tt.in {
			t.Errorf("SetPlantRegrowInterval(%v) = %v, interval now %v", tt.in, err, w.PlantRegrowInterval())
		}
	}
}

// ---------- Update ----------

func TestUpdate_ZeroDtLeavesStateUnchanged(t *testing.T) {
	w, err := NewWorld(5, 0, 10, 200, 200, WithSeed(11))
	if err != nil {
		t.Fatal(err)
	}

	before := w.Prey()
	w.Update(0)
	after := w.Prey()

	if len(after) != len(before) {
		t.Fatalf("prey count changed %d -> %d", len(before), len(after))
	}
	for i := range before {
		if before[i].X != after[i].X || before[i].Y != after[i].Y {
			t.Errorf("prey %d moved (%v,%v) -> (%v,%v)", i, before[i].X, before[i].Y, after[i].X, after[i].Y)
		}
		if before[i].Energy != after[i].Energy {
			t.Errorf("prey %d energy %v -> %v", i, before[i].Energy, after[i].Energy)
		}
	}
	if w.TotalPlants() != 10 {
		t.Errorf("zero dt regrew plants: %d", w.TotalPlants())
	}
}

func TestUpdate_NegativeDtTreatedAsZero(t *testing.T) {
	w, err := NewWorld(3, 0, 5, 300, 300, WithSeed(5))
	if err != nil {
		t.Fatal(err)
	}
	before := w.Prey()
	w.Update(-1)

	if w.Elapsed() != 0 {
		t.Errorf("elapsed = %v, want 0", w.Elapsed())
	}
	if w.Tick() != 1 {
		t.Errorf("tick = %d, want 1", w.Tick())
	}
	for i, p := range w.Prey() {
		if p.X != before[i].X || p.Y != before[i].Y {
			t.Errorf("prey %d moved under negative dt", i)
		}
	}
}

func TestUpdate_PredatorKillsAdjacentPrey(t *testing.T) {
	w, err := NewWorld(0, 0, 0, 400, 400, WithSeed(9))
	if err != nil {
		t.Fatal(err)
	}
	pred := w.SpawnPredator(0, 0)
	prey := w.SpawnPrey(5, 5)

	killed := false
	for i := 0; i < 5 && !killed; i++ {
		w.Update(dt60)
		if w.LastTick().Kills > 0 {
			killed = true
			if w.LastTick().PreyDeaths != 1 {
				t.Errorf("kill tick culled %d prey, want 1", w.LastTick().PreyDeaths)
			}
		}
	}

	if !killed {
		t.Fatal("predator never caught adjacent prey")
	}
	if w.PreyCount() != 0 || len(w.Prey()) != 0 {
		t.Error("killed prey should be removed")
	}
	if w.ecs.Alive(prey) {
		t.Error("removed prey handle still alive")
	}
	if !w.ecs.Alive(pred) || w.PredatorCount() != 1 {
		t.Error("predator should survive")
	}
}

func TestUpdate_StarvedPredatorIsCulled(t *testing.T) {
	w, err := NewWorld(0, 0, 0, 400, 400, WithSeed(2))
	if err != nil {
		t.Fatal(err)
	}
	pred := w.SpawnPredator(200, 200)
	w.stores.Energy.Get(pred).Value = 0.1

	w.Update(1)

	st := w.LastTick()
	if st.PredatorDeaths != 1 || st.Starvations() != 1 {
		t.Errorf("stats = %+v, want one starvation", st)
	}
	if w.PredatorCount() != 0 {
		t.Error("starved predator not removed")
	}
}

func TestUpdate_ReproductionRate(t *testing.T) {
	const ticks = 1000
	w, err := NewWorld(0, 0, 0, 400, 400, WithSeed(12345))
	if err != nil {
		t.Fatal(err)
	}
	parent := w.SpawnPrey(200, 200)

	outcomes := make([]float64, ticks)
	for i := range outcomes {
		en := w.stores.Energy.Get(parent)
		en.Value = components.MaxEnergy
		en.SinceReproduction = 41

		w.Update(0)
		outcomes[i] = float64(w.LastTick().PreyBirths)
	}

	rate := stat.Mean(outcomes, nil)
	if math.Abs(rate-0.24) > 0.06 {
		t.Errorf("birth rate = %.3f, want about 0.24", rate)
	}
	if got := w.PreyCount(); got != 1+int(rate*ticks+0.5) {
		t.Errorf("prey count %d does not match %v births", got, rate*ticks)
	}
}

func TestUpdate_OffspringActFromNextTick(t *testing.T) {
	w, err := NewWorld(0, 0, 0, 400, 400, WithSeed(4), WithBirthTrial(BirthTrial{Range: 100, RollAbove: -1}))
	if err != nil {
		t.Fatal(err)
	}
	parent := w.SpawnPrey(200, 200)
	en := w.stores.Energy.Get(parent)
	en.SinceReproduction = 41

	w.Update(0.5)

	prey := w.Prey()
	if len(prey) != 2 {
		t.Fatalf("expected one birth, have %d prey", len(prey))
	}
	child := prey[1]
	if child.Age != 0 {
		t.Errorf("offspring aged %v during its birth tick", child.Age)
	}
	if child.X != prey[0].X || child.Y != prey[0].Y {
		t.Error("offspring should appear at the parent position")
	}
	if child.Energy != components.MaxEnergy {
		t.Errorf("offspring energy = %v", child.Energy)
	}
	if prey[0].Energy >= 31 {
		t.Errorf("parent should pay the threshold, energy %v", prey[0].Energy)
	}
	if w.stores.Energy.Get(parent).SinceReproduction != 0 {
		t.Error("parent reproduction timer not reset")
	}
}

func TestUpdate_RegrowthRespectsCap(t *testing.T) {
	rules := PlantRules{Max: 5, RegrowInterval: 0.5, SpawnMargin: 35, RegrowMargin: 30}
	w, err := NewWorld(0, 0, 2, 400, 400, WithSeed(8), WithPlantRules(rules))
	if err != nil {
		t.Fatal(err)
	}

	spawned := 0
	for range 20 {
		w.Update(1)
		spawned += w.LastTick().PlantsSpawned
		if w.TotalPlants() > 5 {
			t.Fatalf("plant count %d exceeds cap", w.TotalPlants())
		}
	}
	if w.TotalPlants() != 5 || spawned != 3 {
		t.Errorf("total=%d spawned=%d, want 5 and 3", w.TotalPlants(), spawned)
	}
	for _, p := range w.Plants()[2:] {
		if p.X < 30 || p.X > 370 || p.Y < 30 || p.Y > 370 {
			t.Errorf("regrown plant at (%v, %v) outside margin", p.X, p.Y)
		}
	}
}

func TestUpdate_Invariants(t *testing.T) {
	w, err := NewWorld(20, 5, 30, 640, 480, WithSeed(2024))
	if err != nil {
		t.Fatal(err)
	}

	lastConsumed := 0
	for tick := 0; tick < 3000; tick++ {
		w.Update(dt60)

		prey := w.Prey()
		preds := w.Predators()
		if w.PreyCount() != len(prey) || w.PredatorCount() != len(preds) {
			t.Fatalf("tick %d: counts disagree with collections", tick)
		}
		for _, a := range append(prey, preds...) {
			if !a.Alive || a.Energy <= 0 || a.Energy > components.MaxEnergy {
				t.Fatalf("tick %d: animal survived cull with %+v", tick, a)
			}
		}

		available, eaten := 0, 0
		for _, p := range w.Plants() {
			if p.Available {
				available++
			} else {
				eaten++
			}
		}
		if w.PlantCount() != available {
			t.Fatalf("tick %d: PlantCount %d, predicate count %d", tick, w.PlantCount(), available)
		}
		if w.PlantsConsumed() != eaten {
			t.Fatalf("tick %d: consumed %d, unavailable %d", tick, w.PlantsConsumed(), eaten)
		}
		if w.PlantsConsumed() < lastConsumed {
			t.Fatalf("tick %d: consumed counter decreased", tick)
		}
		if w.PlantsConsumed() > w.PlantsCreated() {
			t.Fatalf("tick %d: consumed exceeds created", tick)
		}
		if w.TotalPlants() > 60 {
			t.Fatalf("tick %d: %d plants above cap", tick, w.TotalPlants())
		}
		lastConsumed = w.PlantsConsumed()
	}
}

func TestUpdate_DeterministicForSeed(t *testing.T) {
	run := func() ([]AnimalView, []AnimalView, []PlantView) {
		w, err := NewWorld(15, 4, 25, 500, 400, WithSeed(77))
		if err != nil {
			t.Fatal(err)
		}
		for range 600 {
			w.Update(dt60)
		}
		return w.Prey(), w.Predators(), w.Plants()
	}

	preyA, predA, plantsA := run()
	preyB, predB, plantsB := run()
	if !slices.Equal(preyA, preyB) || !slices.Equal(predA, predB) || !slices.Equal(plantsA, plantsB) {
		t.Error("same seed produced different trajectories")
	}
}

type phaseRecorder struct {
	phases []string
}

func (r *phaseRecorder) StartPhase(p string) {
	r.phases = append(r.phases, p)
}

func TestUpdate_PhaseOrder(t *testing.T) {
	rec := &phaseRecorder{}
	w, err := NewWorld(2, 1, 3, 300, 300, WithSeed(1), WithPhaseTimer(rec))
	if err != nil {
		t.Fatal(err)
	}
	w.Update(dt60)

	want := systems.NewSystemRegistry().IDs()
	if !slices.Equal(rec.phases, want) {
		t.Errorf("phases = %v, want %v", rec.phases, want)
	}
}

func TestEnergies(t *testing.T) {
	w, err := NewWorld(4, 2, 0, 300, 300, WithSeed(1))
	if err != nil {
		t.Fatal(err)
	}
	if n := len(w.Energies(components.KindPrey)); n != 4 {
		t.Errorf("prey energies = %d, want 4", n)
	}
	if n := len(w.Energies(components.KindPredator)); n != 2 {
		t.Errorf("predator energies = %d, want 2", n)
	}
}

func TestAnimalView_FacingLeft(t *testing.T) {
	if !(AnimalView{VX: -1}).FacingLeft() || (AnimalView{VX: 1}).FacingLeft() {
		t.Error("facing follows the sign of vx")
	}
}

func TestAnimal_LookupFollowsHandleLifetime(t *testing.T) {
	w, err := NewWorld(0, 0, 0, 400, 400, WithSeed(3))
	if err != nil {
		t.Fatal(err)
	}
	prey := w.SpawnPrey(100, 120)
	pred := w.SpawnPredator(300, 300)

	v, ok := w.Animal(prey)
	if !ok || v.Kind != components.KindPrey || v.X != 100 || v.Y != 120 {
		t.Errorf("Animal(prey) = %+v, %v", v, ok)
	}
	if v, ok := w.Animal(pred); !ok || v.Kind != components.KindPredator {
		t.Errorf("Animal(pred) = %+v, %v", v, ok)
	}

	w.stores.Energy.Get(pred).Lose(components.MaxEnergy)
	w.Update(0)
	if _, ok := w.Animal(pred); ok {
		t.Error("culled predator should not be found")
	}

	plant := w.SpawnPlant(50, 50)
	if _, ok := w.Animal(plant); ok {
		t.Error("plants are not animals")
	}
}
