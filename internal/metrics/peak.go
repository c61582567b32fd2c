package metrics

import (
	"math"

	"github.com/san-kum/sdofsim/internal/dynamo"
)

// PeakAbs returns max |x|. NaN samples yield NaN; an empty slice yields 0.
func PeakAbs(xs []float64) float64 {
	_, v := ArgPeakAbs(xs)
	return v
}

// ArgPeakAbs returns the index and value of max |x|, or (-1, 0) for an empty
// slice. The first NaN wins so degeneracy is never hidden.
func ArgPeakAbs(xs []float64) (int, float64) {
	idx, peak := -1, 0.0
	for i, x := range xs {
		if math.IsNaN(x) {
			return i, x
		}
		if a := math.Abs(x); idx < 0 || a > peak {
			idx, peak = i, a
		}
	}
	return idx, peak
}

// Peak is the peak absolute value of one channel.
type Peak struct {
	Channel dynamo.Channel
}

func NewPeak(c dynamo.Channel) *Peak { return &Peak{Channel: c} }

func (p *Peak) Name() string { return "peak_" + p.Channel.String() }

func (p *Peak) Evaluate(r *dynamo.Result) float64 {
	return PeakAbs(r.Channel(p.Channel))
}

// PeakTime is the time at which a channel reaches its peak absolute value.
type PeakTime struct {
	Channel dynamo.Channel
}

func NewPeakTime(c dynamo.Channel) *PeakTime { return &PeakTime{Channel: c} }

func (p *PeakTime) Name() string { return "peak_time_" + p.Channel.String() }

func (p *PeakTime) Evaluate(r *dynamo.Result) float64 {
	i, _ := ArgPeakAbs(r.Channel(p.Channel))
	if i < 0 {
		return 0
	}
	return float64(i) * r.Params.Dt
}
