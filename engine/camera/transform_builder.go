package camera

import "github.com/Carmen-Shannon/oxy-gamepad/common"

// TransformBuilderOption is a functional option for configuring a Transform.
type TransformBuilderOption func(*transformImpl)

// WithPolicy sets the input shaping and altitude control policy.
//
// Parameters:
//   - policy: PolicyCurved or PolicyLinear
//
// Returns:
//   - TransformBuilderOption: option function to apply
func WithPolicy(policy Policy) TransformBuilderOption {
	return func(t *transformImpl) {
		t.policy = policy
	}
}

// WithAngularRatio sets the degrees of heading/tilt change per frame at full stick deflection.
//
// Parameters:
//   - ratio: degrees per frame
//
// Returns:
//   - TransformBuilderOption: option function to apply
func WithAngularRatio(ratio float64) TransformBuilderOption {
	return func(t *transformImpl) {
		t.angularRatio = ratio
	}
}

// WithLinearRatio sets the altitude multiplier used for speed under the curved policy.
//
// Parameters:
//   - ratio: fraction of altitude travelled per frame at full deflection
//
// Returns:
//   - TransformBuilderOption: option function to apply
func WithLinearRatio(ratio float64) TransformBuilderOption {
	return func(t *transformImpl) {
		t.linearRatio = ratio
	}
}

// WithLinearDivisor sets the altitude divisor used for speed under the linear policy.
// Non-positive values are ignored.
//
// Parameters:
//   - divisor: altitude divisor
//
// Returns:
//   - TransformBuilderOption: option function to apply
func WithLinearDivisor(divisor float64) TransformBuilderOption {
	return func(t *transformImpl) {
		if divisor > 0 {
			t.linearDivisor = divisor
		}
	}
}

// WithFov sets the field of view, in degrees, stamped on every produced pose.
//
// Parameters:
//   - fov: field of view in degrees
//
// Returns:
//   - TransformBuilderOption: option function to apply
func WithFov(fov float64) TransformBuilderOption {
	return func(t *transformImpl) {
		t.fov = fov
	}
}

// WithSpatialReference sets the coordinate system stamped on every produced position.
//
// Parameters:
//   - sr: the spatial reference
//
// Returns:
//   - TransformBuilderOption: option function to apply
func WithSpatialReference(sr common.SpatialReference) TransformBuilderOption {
	return func(t *transformImpl) {
		t.spatialReference = sr
	}
}
