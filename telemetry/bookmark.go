package telemetry

import (
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/ecosim/config"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkPreyExtinction     BookmarkType = "prey_extinction"
	BookmarkPredatorExtinction BookmarkType = "predator_extinction"
	BookmarkPreyCrash          BookmarkType = "prey_crash"
	BookmarkPredatorSurge      BookmarkType = "predator_surge"
	BookmarkStableEcosystem    BookmarkType = "stable_ecosystem"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int64        `csv:"tick"`
	SimTimeSec  float64      `csv:"sim_time"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"sim_time", b.SimTimeSec,
		"description", b.Description,
	)
}

// BookmarkDetector detects interesting moments in the simulation.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	// State tracking
	seen               bool
	lastPrey           int
	lastPred           int
	recentPredMin      int // minimum predator count since the last surge
	recentPreyPeak     int // peak prey count since the last crash
	stableWindowsCount int // consecutive windows with stable populations
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 5 {
		historySize = 5 // minimum for stable ecosystem detection
	}
	return &BookmarkDetector{
		history:       make([]WindowStats, historySize),
		historySize:   historySize,
		recentPredMin: -1,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark
	add := func(b *Bookmark) {
		if b != nil {
			b.Tick = stats.WindowEndTick
			b.SimTimeSec = stats.SimTimeSec
			bookmarks = append(bookmarks, *b)
		}
	}

	if bd.seen {
		add(bd.checkExtinction(BookmarkPreyExtinction, "prey", bd.lastPrey, stats.PreyCount))
		add(bd.checkExtinction(BookmarkPredatorExtinction, "predators", bd.lastPred, stats.PredCount))
		add(bd.checkPreyCrash(stats))
		add(bd.checkPredatorSurge(stats))
		add(bd.checkStableEcosystem(stats))
	}

	bd.addToHistory(stats)
	bd.seen = true
	bd.lastPrey = stats.PreyCount
	bd.lastPred = stats.PredCount

	if bd.recentPredMin < 0 || stats.PredCount < bd.recentPredMin {
		bd.recentPredMin = stats.PredCount
	}
	if stats.PreyCount > bd.recentPreyPeak {
		bd.recentPreyPeak = stats.PreyCount
	}

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

// recent returns up to n of the latest windows, oldest first.
func (bd *BookmarkDetector) recent(n int) []WindowStats {
	size := bd.historyIdx
	if bd.historyFull {
		size = bd.historySize
	}
	n = min(n, size)
	out := make([]WindowStats, n)
	for i := range n {
		idx := (bd.historyIdx - n + i + bd.historySize) % bd.historySize
		out[i] = bd.history[idx]
	}
	return out
}

func (bd *BookmarkDetector) checkExtinction(typ BookmarkType, name string, before, now int) *Bookmark {
	if before == 0 || now != 0 {
		return nil
	}
	return &Bookmark{
		Type:        typ,
		Description: fmt.Sprintf("All %s gone (was %d)", name, before),
	}
}

func (bd *BookmarkDetector) checkPreyCrash(stats WindowStats) *Bookmark {
	cfg := config.Cfg().Bookmarks.PreyCrash
	if bd.recentPreyPeak == 0 || stats.PreyCount == 0 {
		return nil
	}

	dropPercent := 1.0 - float64(stats.PreyCount)/float64(bd.recentPreyPeak)
	if dropPercent > cfg.DropPercent && bd.recentPreyPeak-stats.PreyCount >= cfg.MinDrop {
		// Reset peak after crash
		oldPeak := bd.recentPreyPeak
		bd.recentPreyPeak = stats.PreyCount

		return &Bookmark{
			Type:        BookmarkPreyCrash,
			Description: fmt.Sprintf("Prey crashed %.0f%% from peak %d to %d", dropPercent*100, oldPeak, stats.PreyCount),
		}
	}

	return nil
}

func (bd *BookmarkDetector) checkPredatorSurge(stats WindowStats) *Bookmark {
	cfg := config.Cfg().Bookmarks.PredatorSurge
	if bd.recentPredMin <= 0 {
		return nil
	}

	threshold := int(math.Ceil(float64(bd.recentPredMin) * cfg.Multiplier))
	if stats.PredCount >= threshold && stats.PredCount >= cfg.MinFinal {
		oldMin := bd.recentPredMin
		bd.recentPredMin = stats.PredCount

		return &Bookmark{
			Type:        BookmarkPredatorSurge,
			Description: fmt.Sprintf("Predators surged from %d to %d", oldMin, stats.PredCount),
		}
	}

	return nil
}

func (bd *BookmarkDetector) checkStableEcosystem(stats WindowStats) *Bookmark {
	cfg := config.Cfg().Bookmarks.StableEcosystem

	// Need both populations present
	if stats.PreyCount < cfg.MinPrey || stats.PredCount < cfg.MinPred {
		bd.stableWindowsCount = 0
		return nil
	}

	window := bd.recent(4)
	if len(window) < 4 {
		return nil
	}

	prey := make([]float64, 0, len(window)+1)
	pred := make([]float64, 0, len(window)+1)
	for _, h := range window {
		prey = append(prey, float64(h.PreyCount))
		pred = append(pred, float64(h.PredCount))
	}
	prey = append(prey, float64(stats.PreyCount))
	pred = append(pred, float64(stats.PredCount))

	if coefficientOfVariation(prey) < cfg.CVThreshold && coefficientOfVariation(pred) < cfg.CVThreshold {
		bd.stableWindowsCount++
	} else {
		bd.stableWindowsCount = 0
	}

	if bd.stableWindowsCount == cfg.StableWindows { // trigger exactly once per stable run
		return &Bookmark{
			Type:        BookmarkStableEcosystem,
			Description: fmt.Sprintf("Stable ecosystem with %d prey, %d predators over %d windows", stats.PreyCount, stats.PredCount, cfg.StableWindows),
		}
	}

	return nil
}

func coefficientOfVariation(xs []float64) float64 {
	mean, variance := stat.MeanVariance(xs, nil)
	if mean <= 0 {
		return math.Inf(1)
	}
	return math.Sqrt(variance) / mean
}
