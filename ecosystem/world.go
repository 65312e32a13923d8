// Package ecosystem owns the simulated arena: the three populations, the plant
// regrowth clock and the per-tick update pipeline.
package ecosystem

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ecosim/components"
	"github.com/pthm-cable/ecosim/config"
	"github.com/pthm-cable/ecosim/systems"
)

var (
	ErrInvalidDimensions = errors.New("invalid world dimensions")
	ErrInvalidCount      = errors.New("invalid population count")
	ErrInvalidInterval   = errors.New("invalid regrow interval")
)

// PlantRules controls plant placement and regrowth.
type PlantRules struct {
	Max            int
	RegrowInterval float32 // seconds
	SpawnMargin    float32 // initial placement
	RegrowMargin   float32 // regrowth placement
}

// BirthTrial is the per-tick reproduction roll: success when rand(Range) > RollAbove.
type BirthTrial struct {
	Range     int
	RollAbove int
}

// PhaseTimer receives the name of each update phase as it starts.
type PhaseTimer interface {
	StartPhase(phase string)
}

// World is the simulation state. It is not safe for concurrent use.
type World struct {
	ecs    *ecs.World
	stores *systems.Stores
	prey   *systems.PreySystem
	pred   *systems.PredatorSystem
	plants *ecs.Map2[components.Position, components.Plant]

	rng           *rand.Rand
	width, height float32
	rules         PlantRules
	trial         BirthTrial
	timer         PhaseTimer

	// Ordered collections; offspring are appended at the end.
	preyList  []ecs.Entity
	predList  []ecs.Entity
	plantList []ecs.Entity

	regrowTimer float32
	consumed    int
	created     int
	tick        int64
	elapsed     float64
	last        TickStats

	// scratch buffers reused across ticks
	dead   []ecs.Entity
	staged []components.Position
}

type options struct {
	seed     int64
	rng      *rand.Rand
	prey     systems.Profile
	predator systems.Profile
	rules    PlantRules
	trial    BirthTrial
	timer    PhaseTimer
}

// Option configures a World.
type Option func(*options)

// WithSeed seeds the world's RNG. Zero means time-based.
func WithSeed(seed int64) Option {
	return func(o *options) { o.seed = seed }
}

// WithRand makes the world draw from rng instead of creating its own.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) { o.rng = rng }
}

// WithProfiles overrides the species coefficients.
func WithProfiles(prey, predator systems.Profile) Option {
	return func(o *options) {
		o.prey = prey
		o.predator = predator
	}
}

// WithPlantRules overrides plant cap, regrowth interval and margins.
func WithPlantRules(r PlantRules) Option {
	return func(o *options) { o.rules = r }
}

// WithBirthTrial overrides the reproduction roll.
func WithBirthTrial(t BirthTrial) Option {
	return func(o *options) { o.trial = t }
}

// WithPhaseTimer reports each update phase to t.
func WithPhaseTimer(t PhaseTimer) Option {
	return func(o *options) { o.timer = t }
}

// defaultOptions reads coefficients from the global config.
func defaultOptions() options {
	cfg := config.Cfg()
	return options{
		prey:     systems.PreyProfile(),
		predator: systems.PredatorProfile(),
		rules: PlantRules{
			Max:            cfg.Plants.Max,
			RegrowInterval: float32(cfg.Plants.RegrowInterval),
			SpawnMargin:    float32(cfg.Plants.SpawnMargin),
			RegrowMargin:   float32(cfg.Plants.RegrowMargin),
		},
		trial: BirthTrial{
			Range:     cfg.Reproduction.Range,
			RollAbove: cfg.Reproduction.RollAbove,
		},
	}
}

// NewWorld creates a world populated with nPrey prey, nPredators predators and nPlants plants.
// Initial plants are not limited by the plant cap.
func NewWorld(nPrey, nPredators, nPlants int, width, height float32, opts ...Option) (*World, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if nPrey < 0 || nPredators < 0 || nPlants < 0 {
		return nil, fmt.Errorf("%w: prey=%d predators=%d plants=%d", ErrInvalidCount, nPrey, nPredators, nPlants)
	}
	margin := max(o.rules.SpawnMargin, o.rules.RegrowMargin, o.prey.Margin, o.predator.Margin)
	if err := checkDimensions(width, height, margin); err != nil {
		return nil, err
	}
	if !validInterval(o.rules.RegrowInterval) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInterval, o.rules.RegrowInterval)
	}
	if o.trial.Range <= 0 {
		return nil, fmt.Errorf("birth trial range must be positive, got %d", o.trial.Range)
	}

	rng := o.rng
	if rng == nil {
		seed := o.seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}

	world := ecs.NewWorld()
	stores := systems.NewStores(world)
	bounds := systems.Bounds{Width: width, Height: height}

	w := &World{
		ecs:       world,
		stores:    stores,
		prey:      systems.NewPreySystem(stores, o.prey, bounds, rng),
		pred:      systems.NewPredatorSystem(stores, o.predator, bounds, rng),
		plants:    ecs.NewMap2[components.Position, components.Plant](world),
		rng:       rng,
		width:     width,
		height:    height,
		rules:     o.rules,
		trial:     o.trial,
		timer:     o.timer,
		preyList:  make([]ecs.Entity, 0, nPrey),
		predList:  make([]ecs.Entity, 0, nPredators),
		plantList: make([]ecs.Entity, 0, max(nPlants, o.rules.Max)),
	}

	// Animals start inside their bounce margin so a zero-dt tick leaves them in place.
	for range nPrey {
		x, y := w.randomPoint(o.prey.Margin)
		w.SpawnPrey(x, y)
	}
	for range nPredators {
		x, y := w.randomPoint(o.predator.Margin)
		w.SpawnPredator(x, y)
	}
	for range nPlants {
		x, y := w.randomPoint(o.rules.SpawnMargin)
		w.SpawnPlant(x, y)
	}

	return w, nil
}

func checkDimensions(width, height, margin float32) error {
	for _, d := range []float32{width, height} {
		f := float64(d)
		if math.IsNaN(f) || math.IsInf(f, 0) || d <= 0 {
			return fmt.Errorf("%w: %vx%v", ErrInvalidDimensions, width, height)
		}
		if int(d-2*margin) < 1 {
			return fmt.Errorf("%w: %vx%v leaves no room inside margin %v", ErrInvalidDimensions, width, height, margin)
		}
	}
	return nil
}

func validInterval(sec float32) bool {
	return sec >= 0 && !math.IsNaN(float64(sec))
}

// randomPoint returns an integer-aligned point at least margin from every edge.
func (w *World) randomPoint(margin float32) (float32, float32) {
	x := margin + float32(w.rng.Intn(int(w.width-2*margin)))
	y := margin + float32(w.rng.Intn(int(w.height-2*margin)))
	return x, y
}

// SpawnPrey adds a full-energy prey at (x, y) with a random velocity.
func (w *World) SpawnPrey(x, y float32) ecs.Entity {
	e := w.prey.Spawn(x, y)
	w.preyList = append(w.preyList, e)
	return e
}

// SpawnPredator adds a full-energy predator at (x, y) with a random velocity.
func (w *World) SpawnPredator(x, y float32) ecs.Entity {
	e := w.pred.Spawn(x, y)
	w.predList = append(w.predList, e)
	return e
}

// SpawnPlant adds an available plant at (x, y), ignoring the cap.
func (w *World) SpawnPlant(x, y float32) ecs.Entity {
	pos := components.Position{X: x, Y: y}
	plant := components.NewPlant()
	e := w.plants.NewEntity(&pos, &plant)
	w.plantList = append(w.plantList, e)
	w.created++
	return e
}

// SetPlantRegrowInterval changes the regrowth period. The running timer is kept.
func (w *World) SetPlantRegrowInterval(seconds float32) error {
	if !validInterval(seconds) {
		return fmt.Errorf("%w: %v", ErrInvalidInterval, seconds)
	}
	w.rules.RegrowInterval = seconds
	return nil
}

// PlantRegrowInterval returns the regrowth period in seconds.
func (w *World) PlantRegrowInterval() float32 { return w.rules.RegrowInterval }

// PlantCap returns the regrowth cap on total plants.
func (w *World) PlantCap() int { return w.rules.Max }

// Width returns the arena width.
func (w *World) Width() float32 { return w.width }

// Height returns the arena height.
func (w *World) Height() float32 { return w.height }

// Tick returns the number of completed updates.
func (w *World) Tick() int64 { return w.tick }

// Elapsed returns the simulated seconds summed over all updates.
func (w *World) Elapsed() float64 { return w.elapsed }

// LastTick returns the event counters of the most recent update.
func (w *World) LastTick() TickStats { return w.last }
