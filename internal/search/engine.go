package search

import (
	"fmt"
	"math/rand"
	"time"

	"reserve-sim/internal/analysis"
	"reserve-sim/internal/model"
	"reserve-sim/internal/strategy"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultCandidates = 200
	DefaultTopK       = 5
)

type Options struct {
	// Candidates is the number of independent trials generated per search.
	Candidates int
	// TopK is how many accepted candidates are returned.
	TopK int
	// Workers > 1 evaluates trials concurrently. Results do not depend on it.
	Workers int
	// Sampler draws the per-hour dispatch parameters. Defaults to the
	// uniform sampler.
	Sampler strategy.Sampler
}

// Engine runs randomized candidate searches. An Engine owns its random
// source and is not safe for concurrent use; create one per search session.
type Engine struct {
	opts Options
	rng  *rand.Rand
	seed int64
}

// New returns an engine drawing from rng. Two engines given identically
// seeded sources produce identical results for identical inputs. The seed of
// a caller's source is unknown, so its Results report Seed 0.
func New(rng *rand.Rand, opts Options) *Engine {
	if rng == nil {
		return NewSeeded(0, opts)
	}
	return &Engine{opts: withDefaults(opts), rng: rng}
}

// NewSeeded returns an engine seeded with seed, or with the clock when seed
// is 0. The seed actually used is reported on every Result.
func NewSeeded(seed int64, opts Options) *Engine {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Engine{
		opts: withDefaults(opts),
		rng:  rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

func withDefaults(o Options) Options {
	if o.Candidates == 0 {
		o.Candidates = DefaultCandidates
	}
	if o.TopK == 0 {
		o.TopK = DefaultTopK
	}
	if o.Sampler == nil {
		o.Sampler = strategy.NewUniformSampler()
	}
	return o
}

type trialOutcome struct {
	candidate model.Candidate
	feasible  bool
}

// Search generates Options.Candidates random dispatch plans of
// hoursPerCandidate hours over the horizon, drops those whose executed
// energy exceeds the asset's energy budget, and returns the best TopK by
// total gain. An empty horizon yields an empty result without sampling.
func (e *Engine) Search(horizon []model.MarketRecord, p model.AssetParams, hoursPerCandidate int) Result {
	res := Result{
		Candidates:        []model.Candidate{},
		HoursPerCandidate: hoursPerCandidate,
		HorizonLength:     len(horizon),
		EnergyBudgetMWh:   p.EnergyBudgetMWh(),
		Seed:              e.seed,
		Sampler:           e.opts.Sampler.Name(),
	}
	if len(horizon) == 0 || hoursPerCandidate <= 0 || e.opts.Candidates <= 0 {
		return res
	}

	// Seeds are drawn up front so every trial owns its own stream regardless
	// of which goroutine evaluates it.
	seeds := make([]int64, e.opts.Candidates)
	for i := range seeds {
		seeds[i] = e.rng.Int63()
	}

	outcomes := make([]trialOutcome, len(seeds))
	if e.opts.Workers <= 1 {
		for i, seed := range seeds {
			outcomes[i] = e.runTrial(i, seed, horizon, p, hoursPerCandidate)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(e.opts.Workers)
		for i, seed := range seeds {
			i, seed := i, seed
			g.Go(func() error {
				outcomes[i] = e.runTrial(i, seed, horizon, p, hoursPerCandidate)
				return nil
			})
		}
		_ = g.Wait()
	}

	accepted := make([]model.Candidate, 0, len(outcomes))
	for _, o := range outcomes {
		if o.feasible {
			accepted = append(accepted, o.candidate)
		}
	}
	res.Trials = len(outcomes)
	res.Accepted = len(accepted)
	res.Rejected = res.Trials - res.Accepted
	res.Candidates = analysis.RankByTotalGain(accepted, e.opts.TopK)
	return res
}

func (e *Engine) runTrial(trial int, seed int64, horizon []model.MarketRecord, p model.AssetParams, hours int) trialOutcome {
	rng := rand.New(rand.NewSource(seed))
	indices := sampleIndices(rng, len(horizon), hours)

	c := model.Candidate{
		ID:      fmt.Sprintf("candidate-%d", trial+1),
		Trial:   trial,
		Indices: indices,
		Hours:   make([]int, 0, len(indices)),
		Params:  make([]model.CandidateParam, 0, len(indices)),
	}

	sumP0 := 0.0
	for _, idx := range indices {
		rec := horizon[idx]
		d := e.opts.Sampler.Sample(strategy.Context{
			Index:  idx,
			Record: rec,
			Asset:  p,
			Rand:   rng,
		})
		c.EnergyMWh += d.ExecutedEnergyMWh()

		g := analysis.ComputeGainWithCapacity(rec, p.With(d.Overrides()...), d.CapacityMW)
		c.Params = append(c.Params, model.CandidateParam{
			Hour:    g.Hour,
			Date:    g.Date,
			Cb:      d.CapacityMW,
			DTB:     d.BidHours,
			DTE:     d.ExecHours,
			Epsilon: d.Epsilon,
			Gain:    g.Total,
			P0:      g.P0,
		})
		c.Hours = append(c.Hours, g.Hour)
		c.TotalGain += g.Total
		sumP0 += g.P0
	}
	if len(c.Params) > 0 {
		c.AvgP0 = sumP0 / float64(len(c.Params))
	}

	return trialOutcome{
		candidate: c,
		feasible:  c.EnergyMWh <= p.EnergyBudgetMWh(),
	}
}
