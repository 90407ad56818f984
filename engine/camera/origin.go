package camera

import (
	"slices"

	"github.com/Carmen-Shannon/oxy-gamepad/engine/input"
)

// Origin is the at-rest axis baseline of a controller, captured on the first frame it is observed.
// Older controllers may not report exactly zero when the sticks are centered; subtracting the
// baseline removes that drift. The zero Origin has not captured anything yet.
type Origin struct {
	device string
	axes   []float64
}

// Captured reports whether a baseline has been recorded.
func (o Origin) Captured() bool {
	return o.axes != nil
}

// Device returns the identity of the controller the baseline was captured from.
func (o Origin) Device() string {
	return o.device
}

// Axes returns a copy of the captured baseline.
func (o Origin) Axes() []float64 {
	return slices.Clone(o.axes)
}

// observe returns the origin to use for sample. A baseline is captured verbatim from the
// raw axes when none exists or when the sample comes from a different controller; otherwise
// the existing baseline is kept untouched.
func (o Origin) observe(sample *input.Sample) Origin {
	if o.Captured() && o.device == sample.Identity() {
		return o
	}
	return Origin{
		device: sample.Identity(),
		axes:   slices.Clone(sample.Axes),
	}
}

// corrected returns raw axis i minus its baseline.
func (o Origin) corrected(sample *input.Sample, i int) float64 {
	return sample.Axes[i] - o.axes[i]
}
