package strategy

// UniformParams bounds the random draw of UniformSampler. Bounds are
// inclusive; the capacity range is expressed as fractions of Cmax.
type UniformParams struct {
	MinCapacityFrac float64
	MaxCapacityFrac float64

	MinBidHours int
	MaxBidHours int

	MinExecHours int
	MaxExecHours int

	Epsilons []float64
}

// DefaultUniformParams: Cb in [0.5·Cmax, Cmax], ΔT_b in 2..8, ΔT_e in 2..4,
// ε from {0.1, 0.25, 0.5}.
func DefaultUniformParams() UniformParams {
	return UniformParams{
		MinCapacityFrac: 0.5,
		MaxCapacityFrac: 1.0,
		MinBidHours:     2,
		MaxBidHours:     8,
		MinExecHours:    2,
		MaxExecHours:    4,
		Epsilons:        []float64{0.1, 0.25, 0.5},
	}
}

// UniformSampler draws every parameter independently and uniformly.
type UniformSampler struct {
	Params UniformParams
}

func NewUniformSampler() *UniformSampler {
	return &UniformSampler{Params: DefaultUniformParams()}
}

func (s *UniformSampler) Name() string { return "uniform" }

// Sample draws in a fixed order (capacity, bid hours, exec hours, epsilon) so
// that a given random stream always produces the same dispatch.
func (s *UniformSampler) Sample(ctx Context) Dispatch {
	p := s.Params
	cmax := ctx.Asset.MaxCapacityMW()
	lo := p.MinCapacityFrac * cmax
	hi := p.MaxCapacityFrac * cmax

	d := Dispatch{
		CapacityMW: lo + ctx.Rand.Float64()*(hi-lo),
		BidHours:   intBetween(ctx, p.MinBidHours, p.MaxBidHours),
		ExecHours:  intBetween(ctx, p.MinExecHours, p.MaxExecHours),
	}
	if len(p.Epsilons) > 0 {
		d.Epsilon = p.Epsilons[ctx.Rand.Intn(len(p.Epsilons))]
	}
	return d
}

func intBetween(ctx Context, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + ctx.Rand.Intn(hi-lo+1)
}
