package msd

import (
	"math"

	"github.com/networmix/netgraph/core"
	"github.com/networmix/netgraph/policy"
	"github.com/networmix/netgraph/schedule"
	"github.com/networmix/netgraph/view"
)

// DemandTemplate is one (src, dst) demand at alpha == 1.0; Search scales
// Volume by the probed alpha and re-places it against a fresh FlowPolicy
// built by NewPolicy for every seed of every probed alpha. NewPolicy must
// return a policy with no flows placed yet — reusing a *policy.FlowPolicy
// across probes would leak flow state between otherwise-independent
// feasibility checks.
type DemandTemplate struct {
	Src, Dst  string
	Priority  int
	Volume    float64
	NewPolicy func() (*policy.FlowPolicy, error)
}

// Config parameterizes the bracket-and-bisect search.
type Config struct {
	AlphaStart      float64
	GrowthFactor    float64
	AlphaMin        float64
	AlphaMax        float64
	Resolution      float64
	MaxBracketIters int
	MaxBisectIters  int
	SeedsPerAlpha   int
	PlacementRounds int
}

// DefaultConfig mirrors the Python original's dataclass field defaults.
func DefaultConfig() Config {
	return Config{
		AlphaStart:      1.0,
		GrowthFactor:    2.0,
		AlphaMin:        1e-6,
		AlphaMax:        1e9,
		Resolution:      0.01,
		MaxBracketIters: 32,
		MaxBisectIters:  32,
		SeedsPerAlpha:   1,
		PlacementRounds: 2,
	}
}

func (c Config) validate() error {
	if c.SeedsPerAlpha < 1 {
		return ErrSeedsPerAlphaTooLow
	}
	if c.GrowthFactor <= 1.0 {
		return ErrGrowthFactorTooLow
	}
	if c.Resolution <= 0.0 {
		return ErrResolutionNotPositive
	}
	return nil
}

// Probe is one alpha evaluation's outcome.
type Probe struct {
	Alpha             float64
	Feasible          bool
	Seeds             int
	FeasibleSeeds     int
	MinPlacementRatio float64
}

// Result is the outcome of Search.
type Result struct {
	AlphaStar float64
	Probes    []Probe
}

// Search finds the largest alpha (within Resolution) such that scaling
// every DemandTemplate's Volume by alpha remains fully placeable under the
// "hard" acceptance rule (every demand placed >= 1 - 1e-12 of its scaled
// volume), majority-voted across Config.SeedsPerAlpha repeated placement
// runs.
func Search(g *core.Graph, demands []DemandTemplate, cfg Config) (Result, error) {
	if err := cfg.validate(); err != nil {
		return Result{}, err
	}

	var probes []Probe
	probe := func(alpha float64) (bool, error) {
		feasible, p, err := evaluateAlpha(g, demands, alpha, cfg)
		if err != nil {
			return false, err
		}
		probes = append(probes, p)
		return feasible, nil
	}

	feasible0, err := probe(cfg.AlphaStart)
	if err != nil {
		return Result{}, err
	}

	var lower, upper float64
	haveLower, haveUpper := false, false

	if feasible0 {
		lower, haveLower = cfg.AlphaStart, true
		alpha := cfg.AlphaStart
		for i := 0; i < cfg.MaxBracketIters; i++ {
			next := math.Min(alpha*cfg.GrowthFactor, cfg.AlphaMax)
			if next == lower {
				break
			}
			alpha = next
			feas, err := probe(alpha)
			if err != nil {
				return Result{}, err
			}
			if !feas {
				upper, haveUpper = alpha, true
				break
			}
			lower = alpha
		}
		if !haveUpper {
			upper = math.Min(cfg.AlphaMax, lower+math.Max(cfg.Resolution, 1.0))
			haveUpper = true
		}
	} else {
		upper, haveUpper = cfg.AlphaStart, true
		alpha := cfg.AlphaStart
		for i := 0; i < cfg.MaxBracketIters; i++ {
			next := math.Max(alpha/cfg.GrowthFactor, cfg.AlphaMin)
			if next == upper {
				break
			}
			alpha = next
			feas, err := probe(alpha)
			if err != nil {
				return Result{}, err
			}
			if feas {
				lower, haveLower = alpha, true
				break
			}
			upper = alpha
		}
		if !haveLower {
			return Result{}, ErrNoFeasibleAlpha
		}
	}

	left, right := lower, upper
	for iters := 0; (right-left) > cfg.Resolution && iters < cfg.MaxBisectIters; iters++ {
		mid := (left + right) / 2.0
		feas, err := probe(mid)
		if err != nil {
			return Result{}, err
		}
		if feas {
			left = mid
		} else {
			right = mid
		}
	}

	return Result{AlphaStar: left, Probes: probes}, nil
}

// evaluateAlpha runs Config.SeedsPerAlpha independent placement attempts at
// alpha and majority-votes feasibility across them.
func evaluateAlpha(g *core.Graph, demands []DemandTemplate, alpha float64, cfg Config) (bool, Probe, error) {
	seeds := cfg.SeedsPerAlpha
	if seeds < 1 {
		seeds = 1
	}

	feasibleSeeds := 0
	minRatioAcrossSeeds := 1.0

	for s := 0; s < seeds; s++ {
		g.ResetFlowUsages()
		v := view.Unmasked(g)

		ds := make([]*schedule.Demand, 0, len(demands))
		for _, dt := range demands {
			p, err := dt.NewPolicy()
			if err != nil {
				return false, Probe{}, err
			}
			ds = append(ds, &schedule.Demand{
				Priority: dt.Priority,
				Src:      dt.Src,
				Dst:      dt.Dst,
				Volume:   dt.Volume * alpha,
				Policy:   p,
			})
		}

		schedule.PlaceDemandsRoundRobin(v, ds, placementRounds(cfg.PlacementRounds), false)

		minRatio := 1.0
		feasible := true
		for _, d := range ds {
			ratio := 1.0
			if d.Volume > 0 {
				ratio = d.Placed / d.Volume
			}
			if ratio < minRatio {
				minRatio = ratio
			}
			if ratio < 1.0-1e-12 {
				feasible = false
			}
		}

		if feasible {
			feasibleSeeds++
		}
		if minRatio < minRatioAcrossSeeds {
			minRatioAcrossSeeds = minRatio
		}
	}

	required := seeds/2 + 1
	overallFeasible := feasibleSeeds >= required

	return overallFeasible, Probe{
		Alpha:             alpha,
		Feasible:          overallFeasible,
		Seeds:             seeds,
		FeasibleSeeds:     feasibleSeeds,
		MinPlacementRatio: minRatioAcrossSeeds,
	}, nil
}

func placementRounds(n int) int {
	if n <= 0 {
		return 2
	}
	return n
}
