package camera

import (
	"math"
	"strings"

	"github.com/pkg/errors"

	"github.com/Carmen-Shannon/oxy-gamepad/common"
	"github.com/Carmen-Shannon/oxy-gamepad/engine/input"
)

// ErrMalformedSample is returned when a gamepad sample has too few axes or buttons for the standard layout.
var ErrMalformedSample = errors.New("malformed gamepad sample")

// Minimum sample shape read by the transform.
const (
	MinAxes    = common.StandardAxisCount
	MinButtons = common.ButtonRightTrigger + 1
)

// Policy selects how raw input is shaped and which controls drive altitude.
type Policy int

const (
	// PolicyCurved squares stick and trigger readings (keeping their sign), scales ground speed
	// by LinearRatio and climbs/descends with the analog triggers.
	PolicyCurved Policy = iota

	// PolicyLinear uses stick readings unshaped, divides altitude by LinearDivisor for ground
	// speed and climbs/descends a full speed step per frame while a shoulder button is held.
	PolicyLinear
)

var policyNames = map[Policy]string{
	PolicyCurved: "curved",
	PolicyLinear: "linear",
}

func (p Policy) String() string {
	if name, ok := policyNames[p]; ok {
		return name
	}
	return "unknown"
}

// ParsePolicy resolves a policy name as used in configuration files and flags.
//
// Parameters:
//   - name: "curved" or "linear" (case-insensitive)
//
// Returns:
//   - Policy: the parsed policy
//   - error: error if the name is not recognized
func ParsePolicy(name string) (Policy, error) {
	for p, n := range policyNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return p, nil
		}
	}
	return 0, errors.Errorf("unknown camera policy %q", name)
}

// Transform computes the next camera pose from the previous one and a gamepad sample.
// It keeps no camera state of its own; the baseline Origin is threaded through by the caller.
type Transform interface {
	// Update produces the pose for this frame.
	// A nil sample means no gamepad is connected: prev and origin are returned unchanged.
	// A sample with fewer than MinAxes axes or MinButtons buttons yields ErrMalformedSample,
	// and prev and origin are returned unchanged.
	//
	// Parameters:
	//   - prev: the pose currently shown by the view
	//   - sample: the first connected gamepad, or nil
	//   - origin: the baseline returned by the previous call (zero value on the first)
	//
	// Returns:
	//   - Pose: the replacement pose
	//   - Origin: the baseline to pass to the next call
	//   - error: ErrMalformedSample if the sample is too small
	Update(prev Pose, sample *input.Sample, origin Origin) (Pose, Origin, error)

	// Policy returns the configured input policy.
	//
	// Returns:
	//   - Policy: the policy
	Policy() Policy

	// AngularRatio returns the degrees of heading/tilt change per frame at full stick deflection.
	//
	// Returns:
	//   - float64: degrees per frame
	AngularRatio() float64

	// LinearRatio returns the fraction of altitude travelled per frame at full deflection (curved policy).
	//
	// Returns:
	//   - float64: altitude multiplier
	LinearRatio() float64

	// LinearDivisor returns the altitude divisor used for ground speed (linear policy).
	//
	// Returns:
	//   - float64: altitude divisor
	LinearDivisor() float64
}

type transformImpl struct {
	policy        Policy
	shape         ShapingFunc
	angularRatio  float64
	linearRatio   float64
	linearDivisor float64

	fov              float64
	spatialReference common.SpatialReference
}

var _ Transform = &transformImpl{}

// NewTransform creates a Transform. Without options it uses the curved policy with an angular
// ratio of 4 and a linear ratio of 0.05, producing poses with a 55 degree FOV in Web Mercator.
//
// Parameters:
//   - options: functional options to configure the transform
//
// Returns:
//   - Transform: the configured transform
func NewTransform(options ...TransformBuilderOption) Transform {
	t := &transformImpl{
		policy:           PolicyCurved,
		angularRatio:     4,
		linearRatio:      0.05,
		linearDivisor:    50,
		fov:              DefaultFov,
		spatialReference: common.SpatialReference{WKID: common.WKIDWebMercator},
	}
	for _, opt := range options {
		opt(t)
	}
	switch t.policy {
	case PolicyLinear:
		t.shape = Linear
	default:
		t.shape = Parabolic
	}
	return t
}

func (t *transformImpl) Policy() Policy {
	return t.policy
}

func (t *transformImpl) AngularRatio() float64 {
	return t.angularRatio
}

func (t *transformImpl) LinearRatio() float64 {
	return t.linearRatio
}

func (t *transformImpl) LinearDivisor() float64 {
	return t.linearDivisor
}

func (t *transformImpl) Update(prev Pose, sample *input.Sample, origin Origin) (Pose, Origin, error) {
	if sample == nil {
		return prev, origin, nil
	}
	if len(sample.Axes) < MinAxes || len(sample.Buttons) < MinButtons {
		return prev, origin, errors.Wrapf(ErrMalformedSample,
			"device %q has %d axes and %d buttons, need %d and %d",
			sample.Identity(), len(sample.Axes), len(sample.Buttons), MinAxes, MinButtons)
	}

	origin = origin.observe(sample)

	lx := t.shape(origin.corrected(sample, common.AxisLeftX))
	ly := t.shape(origin.corrected(sample, common.AxisLeftY))
	rx := t.shape(origin.corrected(sample, common.AxisRightX))
	ry := t.shape(origin.corrected(sample, common.AxisRightY))

	heading := prev.Heading + rx*t.angularRatio
	tilt := prev.Tilt - ry*t.angularRatio

	pos := prev.Position
	var speed, climb float64
	switch t.policy {
	case PolicyLinear:
		speed = pos.Z / t.linearDivisor
		if sample.Buttons[common.ButtonLeftShoulder].Pressed {
			climb -= speed
		}
		if sample.Buttons[common.ButtonRightShoulder].Pressed {
			climb += speed
		}
	default:
		speed = pos.Z * t.linearRatio
		lt := t.shape(sample.Buttons[common.ButtonLeftTrigger].Value)
		rt := t.shape(sample.Buttons[common.ButtonRightTrigger].Value)
		climb = speed*-lt + speed*rt
	}

	// Stick motion is rotated by the heading the frame started with, not the updated one.
	h := common.DegToRad(prev.Heading)
	cos, sin := math.Cos(h), math.Sin(-h)

	return Pose{
		Heading: heading,
		Tilt:    tilt,
		Position: Position{
			X:                pos.X + speed*lx*cos + speed*ly*sin,
			Y:                pos.Y + speed*lx*sin - speed*ly*cos,
			Z:                pos.Z + climb,
			SpatialReference: t.spatialReference,
		},
		Fov: t.fov,
	}, origin, nil
}
