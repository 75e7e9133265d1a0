package render

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// kde is a Gaussian kernel density estimator over a fixed sample set.
type kde struct {
	values    []float64
	bandwidth float64
}

// newKDE builds an estimator using Silverman's rule-of-thumb bandwidth.
func newKDE(values []float64) kde {
	return kde{values: values, bandwidth: silvermanBandwidth(values)}
}

const invSqrt2Pi = 0.3989422804014327

// estimate evaluates the density at x. A zero bandwidth yields zero density
// everywhere; callers treat that as "nothing to draw".
func (k kde) estimate(x float64) float64 {
	if len(k.values) == 0 || k.bandwidth <= 0 {
		return 0
	}
	sum := 0.0
	for _, v := range k.values {
		z := (x - v) / k.bandwidth
		sum += math.Exp(-0.5*z*z) * invSqrt2Pi
	}
	return sum / (float64(len(k.values)) * k.bandwidth)
}

// silvermanBandwidth is 0.9 * min(sigma, IQR/1.349) * n^(-1/5). The IQR term
// is skipped when it collapses to zero (heavily tied samples), and a fully
// degenerate sample yields zero.
func silvermanBandwidth(values []float64) float64 {
	n := float64(len(values))
	if n < 2 {
		return 0
	}
	spread := stat.StdDev(values, nil)
	if q, err := stats.Quartile(values); err == nil {
		if iqr := (q.Q3 - q.Q1) / 1.349; iqr > 0 && iqr < spread {
			spread = iqr
		}
	}
	if spread <= 0 {
		return 0
	}
	return 0.9 * spread * math.Pow(n, -0.2)
}
