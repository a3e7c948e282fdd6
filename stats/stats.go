// Package stats keeps running statistics over autoplay results.
package stats

import (
	"fmt"
	"math"
)

const (
	Epsilon = 1e-6
)

func FuzzyEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Statistic is a running mean and variance, computed with Welford's
// algorithm, along with the smallest and largest values seen. It is not
// safe for concurrent use.
type Statistic struct {
	n    int
	last float64
	mean float64
	m2   float64
	min  float64
	max  float64
}

func (s *Statistic) Push(val float64) {
	s.last = val
	s.n++
	if s.n == 1 {
		s.mean, s.m2 = val, 0
		s.min, s.max = val, val
		return
	}
	delta := val - s.mean
	s.mean += delta / float64(s.n)
	s.m2 += delta * (val - s.mean)
	s.min = math.Min(s.min, val)
	s.max = math.Max(s.max, val)
}

func (s *Statistic) Mean() float64 {
	return s.mean
}

// Variance is the sample variance.
func (s *Statistic) Variance() float64 {
	if s.n <= 1 {
		return 0.0
	}
	return s.m2 / float64(s.n-1)
}

func (s *Statistic) Stdev() float64 {
	return math.Sqrt(s.Variance())
}

// StandardError returns the standard error of the mean.
func (s *Statistic) StandardError() float64 {
	if s.n == 0 {
		return 0.0
	}
	return math.Sqrt(s.Variance() / float64(s.n))
}

func (s *Statistic) Last() float64 {
	return s.last
}

func (s *Statistic) Min() float64 {
	return s.min
}

func (s *Statistic) Max() float64 {
	return s.max
}

func (s *Statistic) Iterations() int {
	return s.n
}

// ConfidenceInterval returns the interval around the mean for the given
// confidence, in percent.
func (s *Statistic) ConfidenceInterval(pct float64) (float64, float64) {
	half := ZVal(pct) * s.StandardError()
	return s.mean - half, s.mean + half
}

// Summary is a one-line description at 95% confidence.
func (s *Statistic) Summary() string {
	return fmt.Sprintf("%.2f ± %.2f (n=%d, min=%.0f, max=%.0f)",
		s.mean, ZVal(95)*s.StandardError(), s.n, s.min, s.max)
}
