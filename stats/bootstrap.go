package stats

import (
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/rustyeddy/rollsim/ledger"
)

// BootstrapResult is the outcome of an IID trade-level bootstrap of the
// expectancy (mean net PnL per trade).
type BootstrapResult struct {
	ObservedExpectancy float64
	CILower            float64
	CIUpper            float64
	Confidence         float64
	Resamples          int
}

// Bootstrap draws resamples-with-replacement of the same size as the input
// subset, computes the expectancy of each, and reports the central
// confidence interval from the resampled distribution.
//
// Resamples run in parallel, but each one owns an RNG seeded from the
// caller's seed and its own index, so the result is bit-identical
// regardless of scheduling. This is the only stochastic step in the whole
// core.
//
// Note: the IID bootstrap does not preserve serial correlation between
// consecutive trades; treat the interval as an approximation.
func Bootstrap(trades []ledger.Trade, resamples int, confidence float64, seed int64) (BootstrapResult, error) {
	if len(trades) == 0 {
		return BootstrapResult{}, fmt.Errorf("cannot bootstrap: no trades")
	}
	if resamples <= 0 {
		return BootstrapResult{}, fmt.Errorf("bootstrap resamples must be positive, got %d", resamples)
	}
	if confidence <= 0 || confidence >= 1 {
		return BootstrapResult{}, fmt.Errorf("bootstrap confidence must be in (0,1), got %g", confidence)
	}

	pnl := make([]float64, len(trades))
	var observed float64
	for i, t := range trades {
		pnl[i] = t.NetPnL
		observed += t.NetPnL
	}
	observed /= float64(len(pnl))

	means := make([]float64, resamples)

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i < resamples; i++ {
		i := i
		g.Go(func() error {
			rng := rand.New(rand.NewSource(seed + int64(i)))
			var sum float64
			for n := 0; n < len(pnl); n++ {
				sum += pnl[rng.Intn(len(pnl))]
			}
			means[i] = sum / float64(len(pnl))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return BootstrapResult{}, err
	}

	sort.Float64s(means)
	alpha := 1 - confidence

	return BootstrapResult{
		ObservedExpectancy: observed,
		CILower:            percentile(means, alpha/2),
		CIUpper:            percentile(means, 1-alpha/2),
		Confidence:         confidence,
		Resamples:          resamples,
	}, nil
}

// percentile interpolates linearly between order statistics of a sorted
// slice; p is a fraction in [0,1].
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}

	h := p * float64(len(sorted)-1)
	lo := int(math.Floor(h))
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := h - float64(lo)
	return sorted[lo] + (sorted[lo+1]-sorted[lo])*frac
}
