package stats

import (
	"fmt"
	"io"

	"github.com/aybabtme/uniplot/histogram"
)

// Sample keeps every value pushed, on top of the running statistic, so
// that it can be drawn as a histogram.
type Sample struct {
	Statistic
	values []float64
}

func (s *Sample) Push(val float64) {
	s.Statistic.Push(val)
	s.values = append(s.values, val)
}

func (s *Sample) Values() []float64 {
	return s.values
}

// FprintHistogram draws the values as a text histogram with the given
// number of bins.
func (s *Sample) FprintHistogram(w io.Writer, bins int) error {
	if len(s.values) == 0 {
		_, err := io.WriteString(w, "(no data)\n")
		return err
	}
	if s.Min() == s.Max() {
		// uniplot can't bin a zero-width range
		_, err := fmt.Fprintf(w, "%v: all %d values\n", s.Min(), len(s.values))
		return err
	}
	h := histogram.Hist(bins, s.values)
	return histogram.Fprint(w, h, histogram.Linear(40))
}
