package camera

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-gamepad/common"
	"github.com/Carmen-Shannon/oxy-gamepad/engine/input"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func webMercator() common.SpatialReference {
	return common.SpatialReference{WKID: common.WKIDWebMercator}
}

func pose(heading, tilt, x, y, z float64) Pose {
	return Pose{
		Heading:  heading,
		Tilt:     tilt,
		Position: Position{X: x, Y: y, Z: z, SpatialReference: webMercator()},
		Fov:      DefaultFov,
	}
}

// pad builds a standard-layout sample with the given axes and 17 released buttons.
func pad(axes ...float64) *input.Sample {
	return &input.Sample{
		ID:      0,
		Name:    "pad",
		Axes:    axes,
		Buttons: make([]input.Button, common.StandardButtonCount),
	}
}

func withButton(s *input.Sample, i int, b input.Button) *input.Sample {
	s.Buttons[i] = b
	return s
}

func TestNewTransformDefaults(t *testing.T) {
	tr := NewTransform()
	assert.Equal(t, PolicyCurved, tr.Policy())
	assert.Equal(t, 4.0, tr.AngularRatio())
	assert.Equal(t, 0.05, tr.LinearRatio())
	assert.Equal(t, 50.0, tr.LinearDivisor())

	tr = NewTransform(WithPolicy(PolicyLinear), WithLinearDivisor(-3))
	assert.Equal(t, PolicyLinear, tr.Policy())
	assert.Equal(t, 50.0, tr.LinearDivisor())
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("Curved")
	require.NoError(t, err)
	assert.Equal(t, PolicyCurved, p)

	p, err = ParsePolicy("linear")
	require.NoError(t, err)
	assert.Equal(t, PolicyLinear, p)
	assert.Equal(t, "linear", p.String())

	_, err = ParsePolicy("exponential")
	assert.Error(t, err)
}

func TestUpdateCurvedScenario(t *testing.T) {
	tr := NewTransform(WithAngularRatio(4), WithLinearRatio(0.05))

	next, origin, err := tr.Update(pose(0, 0, 0, 0, 1000), pad(0.5, 0, 0, 0), Origin{axes: []float64{0, 0, 0, 0}, device: "0:pad"})
	require.NoError(t, err)
	assert.True(t, origin.Captured())

	want := pose(0, 0, 12.5, 0, 1000)
	assert.True(t, cmp.Equal(want, next, approx), cmp.Diff(want, next, approx))
}

func TestUpdateLinearScenario(t *testing.T) {
	tr := NewTransform(WithPolicy(PolicyLinear), WithAngularRatio(1), WithLinearDivisor(50))
	zero := Origin{axes: []float64{0, 0, 0, 0}, device: "0:pad"}

	t.Run("heading only", func(t *testing.T) {
		next, _, err := tr.Update(pose(90, 10, 0, 0, 500), pad(0, 0, 0.2, 0), zero)
		require.NoError(t, err)

		want := pose(90.2, 10, 0, 0, 500)
		assert.True(t, cmp.Equal(want, next, approx), cmp.Diff(want, next, approx))
	})

	t.Run("rotation uses pre-update heading", func(t *testing.T) {
		next, _, err := tr.Update(pose(90, 10, 0, 0, 500), pad(0.5, 0, 0.2, 0), zero)
		require.NoError(t, err)

		// speed = 500 / 50 = 10; stick right at heading 90 moves along -y.
		assert.InDelta(t, 90.2, next.Heading, 1e-9)
		assert.InDelta(t, 0, next.Position.X, 1e-9)
		assert.InDelta(t, -5, next.Position.Y, 1e-9)
		assert.Equal(t, 500.0, next.Position.Z)
	})

	t.Run("shoulders", func(t *testing.T) {
		prev := pose(0, 0, 0, 0, 500)

		down, _, err := tr.Update(prev, withButton(pad(0, 0, 0, 0), common.ButtonLeftShoulder, input.Button{Pressed: true, Value: 1}), zero)
		require.NoError(t, err)
		assert.Equal(t, 490.0, down.Position.Z)

		up, _, err := tr.Update(prev, withButton(pad(0, 0, 0, 0), common.ButtonRightShoulder, input.Button{Pressed: true, Value: 1}), zero)
		require.NoError(t, err)
		assert.Equal(t, 510.0, up.Position.Z)

		both := withButton(withButton(pad(0, 0, 0, 0), common.ButtonLeftShoulder, input.Button{Pressed: true, Value: 1}),
			common.ButtonRightShoulder, input.Button{Pressed: true, Value: 1})
		still, _, err := tr.Update(prev, both, zero)
		require.NoError(t, err)
		assert.Equal(t, 500.0, still.Position.Z)
	})

	t.Run("triggers ignored", func(t *testing.T) {
		s := withButton(pad(0, 0, 0, 0), common.ButtonRightTrigger, input.Button{Pressed: true, Value: 1})
		next, _, err := tr.Update(pose(0, 0, 0, 0, 500), s, zero)
		require.NoError(t, err)
		assert.Equal(t, 500.0, next.Position.Z)
	})
}

func TestUpdateTriggers(t *testing.T) {
	tr := NewTransform()
	prev := pose(0, 0, 0, 0, 1000)

	s := withButton(pad(0, 0, 0, 0), common.ButtonRightTrigger, input.Button{Pressed: true, Value: 1})
	next, _, err := tr.Update(prev, s, Origin{})
	require.NoError(t, err)
	assert.InDelta(t, 1050, next.Position.Z, 1e-9)

	s = withButton(pad(0, 0, 0, 0), common.ButtonLeftTrigger, input.Button{Pressed: true, Value: 0.5})
	next, _, err = tr.Update(prev, s, Origin{})
	require.NoError(t, err)
	assert.InDelta(t, 1000-50*0.25, next.Position.Z, 1e-9)

	// Equal pulls on both triggers cancel.
	s = withButton(withButton(pad(0, 0, 0, 0), common.ButtonLeftTrigger, input.Button{Pressed: true, Value: 0.6}),
		common.ButtonRightTrigger, input.Button{Pressed: true, Value: 0.6})
	next, _, err = tr.Update(prev, s, Origin{})
	require.NoError(t, err)
	assert.InDelta(t, 1000, next.Position.Z, 1e-9)
}

func TestUpdateTilt(t *testing.T) {
	tr := NewTransform()
	next, _, err := tr.Update(pose(0, 45, 0, 0, 100), pad(0, 0, 0, -1), Origin{})
	require.NoError(t, err)
	assert.InDelta(t, 49, next.Tilt, 1e-9)
	assert.InDelta(t, 0, next.Heading, 1e-9)
}

func TestUpdateOriginCapture(t *testing.T) {
	tr := NewTransform()
	prev := pose(0, 0, 0, 0, 1000)

	// The at-rest reading is captured and subtracted, so a drifting stick produces no motion.
	next, origin, err := tr.Update(prev, pad(0.1, -0.05, 0.02, 0), Origin{})
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, -0.05, 0.02, 0}, origin.Axes())
	assert.Equal(t, "0:pad", origin.Device())
	assert.True(t, cmp.Equal(prev, next, approx), cmp.Diff(prev, next, approx))

	for _, axes := range [][]float64{{0.9, 0.9, 0.9, 0.9}, {-1, 0, 1, 0}, {0, 0, 0, 0}} {
		_, origin, err = tr.Update(prev, pad(axes...), origin)
		require.NoError(t, err)
		assert.Equal(t, []float64{0.1, -0.05, 0.02, 0}, origin.Axes())
	}

	// Mutating the sample after capture must not leak into the baseline.
	s := pad(0.3, 0.3, 0.3, 0.3)
	_, fresh, err := tr.Update(prev, s, Origin{})
	require.NoError(t, err)
	s.Axes[0] = 0.8
	assert.Equal(t, 0.3, fresh.Axes()[0])
}

func TestUpdateOriginRecapturedForNewController(t *testing.T) {
	tr := NewTransform()
	prev := pose(0, 0, 0, 0, 1000)

	_, origin, err := tr.Update(prev, pad(0.1, 0, 0, 0), Origin{})
	require.NoError(t, err)

	other := pad(0.2, 0, 0, 0)
	other.ID = 1
	other.Name = "other"
	next, origin, err := tr.Update(prev, other, origin)
	require.NoError(t, err)
	assert.Equal(t, "1:other", origin.Device())
	assert.Equal(t, []float64{0.2, 0, 0, 0}, origin.Axes())
	assert.True(t, cmp.Equal(prev, next, approx), cmp.Diff(prev, next, approx))
}

func TestUpdateZeroInput(t *testing.T) {
	for _, policy := range []Policy{PolicyCurved, PolicyLinear} {
		tr := NewTransform(WithPolicy(policy))
		prev := pose(123.4, 56.7, -8.9e6, 4.3e6, 2500)

		next, _, err := tr.Update(prev, pad(0, 0, 0, 0), Origin{})
		require.NoError(t, err, policy)
		assert.Equal(t, prev, next, policy)
	}
}

func TestUpdateOrientationIndependentOfPosition(t *testing.T) {
	tr := NewTransform()
	s := pad(0.4, -0.7, 0.6, -0.3)

	a, _, err := tr.Update(pose(30, 20, 0, 0, 10), s, Origin{})
	require.NoError(t, err)
	b, _, err := tr.Update(pose(30, 20, 1e6, -2e6, 9000), s, Origin{})
	require.NoError(t, err)

	assert.Equal(t, a.Heading, b.Heading)
	assert.Equal(t, a.Tilt, b.Tilt)
	assert.InDelta(t, 30+0.36*4, a.Heading, 1e-9)
	assert.InDelta(t, 20+0.09*4, a.Tilt, 1e-9)
}

func TestUpdateNoGamepad(t *testing.T) {
	tr := NewTransform()
	prev := pose(10, 20, 30, 40, 50)
	origin := Origin{axes: []float64{0.1, 0, 0, 0}, device: "0:pad"}

	next, nextOrigin, err := tr.Update(prev, nil, origin)
	require.NoError(t, err)
	assert.Equal(t, prev, next)
	assert.Equal(t, origin, nextOrigin)

	_, empty, err := tr.Update(prev, nil, Origin{})
	require.NoError(t, err)
	assert.False(t, empty.Captured())
}

func TestUpdateSampleShape(t *testing.T) {
	tr := NewTransform()
	prev := pose(0, 0, 0, 0, 1000)

	minimal := &input.Sample{Axes: []float64{0.5, 0, 0, 0}, Buttons: make([]input.Button, MinButtons)}
	next, origin, err := tr.Update(prev, minimal, Origin{})
	require.NoError(t, err)
	assert.True(t, origin.Captured())
	assert.Equal(t, prev, next)

	for name, s := range map[string]*input.Sample{
		"three axes":    {Axes: []float64{0, 0, 0}, Buttons: make([]input.Button, MinButtons)},
		"seven buttons": {Axes: []float64{0, 0, 0, 0}, Buttons: make([]input.Button, MinButtons-1)},
		"empty":         {},
	} {
		next, origin, err := tr.Update(prev, s, Origin{})
		require.Error(t, err, name)
		assert.True(t, errors.Is(err, ErrMalformedSample), name)
		assert.Equal(t, prev, next, name)
		assert.False(t, origin.Captured(), name)
	}
}

func TestUpdateRotationFullCircle(t *testing.T) {
	tr := NewTransform(WithPolicy(PolicyLinear), WithLinearDivisor(1))
	zero := Origin{axes: []float64{0, 0, 0, 0}, device: "0:pad"}

	// Pushing the stick forward (negative Y) moves towards the heading.
	for _, heading := range []float64{0, 45, 90, 180, 270, 360 + 30} {
		next, _, err := tr.Update(pose(heading, 0, 0, 0, 1), pad(0, -1, 0, 0), zero)
		require.NoError(t, err)
		h := common.DegToRad(heading)
		assert.InDelta(t, math.Sin(h), next.Position.X, 1e-9, "heading %v", heading)
		assert.InDelta(t, math.Cos(h), next.Position.Y, 1e-9, "heading %v", heading)
	}
}
