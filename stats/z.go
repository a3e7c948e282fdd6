package stats

import "gonum.org/v1/gonum/stat/distuv"

// ZVal returns the two-tailed z-value for a confidence level given in
// percent, e.g. 1.96 for 95.
func ZVal(pct float64) float64 {
	return distuv.UnitNormal.Quantile((1 + pct/100) / 2)
}
