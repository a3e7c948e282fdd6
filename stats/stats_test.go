package stats

import (
	"bytes"
	"testing"

	"github.com/matryer/is"
)

func TestRunningStat(t *testing.T) {
	is := is.New(t)
	type tc struct {
		plies []int
		mean  float64
		stdev float64
	}
	cases := []tc{
		{[]int{10, 12, 23, 23, 16, 23, 21, 16}, 18, 5.2372293656638},
		{[]int{14, 35, 71, 124, 10, 24, 55, 33, 87, 19}, 47.2, 36.937785531891},
		{[]int{1}, 1, 0},
		{[]int{}, 0, 0},
		{[]int{1, 1}, 1, 0},
	}
	for _, c := range cases {
		s := &Statistic{}
		for _, p := range c.plies {
			s.Push(float64(p))
		}
		is.True(FuzzyEqual(s.Mean(), c.mean))
		is.True(FuzzyEqual(s.Stdev(), c.stdev))
		is.Equal(s.Iterations(), len(c.plies))
	}
}

func TestMinMax(t *testing.T) {
	is := is.New(t)
	s := &Statistic{}
	for _, v := range []float64{40, 12, 77, 31} {
		s.Push(v)
	}
	is.Equal(s.Min(), 12.0)
	is.Equal(s.Max(), 77.0)
	is.Equal(s.Last(), 31.0)
	lo, hi := s.ConfidenceInterval(95)
	is.True(lo < s.Mean() && s.Mean() < hi)
}

func TestZVal(t *testing.T) {
	is := is.New(t)
	is.True(FuzzyEqual(ZVal(95), 1.959963984540054))
	is.True(FuzzyEqual(ZVal(99), 2.5758293035489))
}

func TestHistogram(t *testing.T) {
	is := is.New(t)
	s := &Sample{}
	var buf bytes.Buffer
	is.NoErr(s.FprintHistogram(&buf, 5))
	is.Equal(buf.String(), "(no data)\n")

	for _, v := range []float64{30, 31, 45, 60, 61, 62, 90} {
		s.Push(v)
	}
	buf.Reset()
	is.NoErr(s.FprintHistogram(&buf, 5))
	is.True(buf.Len() > 0)
	is.Equal(len(s.Values()), 7)
	is.Equal(s.Iterations(), 7)

	flat := &Sample{}
	flat.Push(40)
	flat.Push(40)
	buf.Reset()
	is.NoErr(flat.FprintHistogram(&buf, 5))
	is.Equal(buf.String(), "40: all 2 values\n")
}
