package camera

// ShapingFunc is a response curve applied to an analog reading in [-1, 1].
type ShapingFunc func(v float64) float64

// Parabolic is a sign-preserving square: small deflections near zero are compressed
// while the extremes keep their full range.
func Parabolic(v float64) float64 {
	p := v * v
	if v < 0 {
		return -p
	}
	return p
}

// Linear passes the reading through unchanged.
func Linear(v float64) float64 {
	return v
}
