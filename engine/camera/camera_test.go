package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-gamepad/common"
)

// transformDir applies the upper 3x3 of a column-major matrix to a direction.
func transformDir(m [16]float32, v [3]float64) [3]float64 {
	var out [3]float64
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			out[row] += float64(m[col*4+row]) * v[col]
		}
	}
	return out
}

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera()

	p := c.Pose()
	assert.Equal(t, DefaultFov, p.Fov)
	assert.Equal(t, common.WKIDWebMercator, p.Position.SpatialReference.WKID)

	identity := [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
	view := c.ViewMatrix()
	for i := range view {
		assert.InDelta(t, identity[i], view[i], 1e-6, "index %d", i)
	}
}

func TestCameraViewFollowsPose(t *testing.T) {
	c := NewCamera(WithAspect(16.0 / 9.0))

	for _, tc := range []struct{ heading, tilt float64 }{
		{0, 0}, {90, 90}, {45, 30}, {200, 75}, {-30, 10},
	} {
		c.SetPose(pose(tc.heading, tc.tilt, 1e7, -4e6, 3000))
		assert.Equal(t, tc.heading, c.Pose().Heading)

		forward, up := common.ViewAxes(tc.heading, tc.tilt)
		view := c.ViewMatrix()

		f := transformDir(view, forward)
		assert.InDelta(t, 0, f[0], 1e-5)
		assert.InDelta(t, 0, f[1], 1e-5)
		assert.InDelta(t, -1, f[2], 1e-5)

		u := transformDir(view, up)
		assert.InDelta(t, 0, u[0], 1e-5)
		assert.InDelta(t, 1, u[1], 1e-5)
		assert.InDelta(t, 0, u[2], 1e-5)
	}
}

func TestCameraProjection(t *testing.T) {
	c := NewCamera(WithNear(2), WithFar(1000))
	require.Equal(t, float32(2), c.Near())
	require.Equal(t, float32(1000), c.Far())
	require.Equal(t, float32(1), c.Aspect())

	before := c.ProjectionMatrix()
	c.SetAspect(2)
	after := c.ProjectionMatrix()
	assert.InDelta(t, before[0]/2, after[0], 1e-6)
	assert.Equal(t, before[5], after[5])

	c.SetNear(1)
	c.SetFar(500)
	assert.Equal(t, float32(1), c.Near())
	assert.Equal(t, float32(500), c.Far())

	var want [16]float32
	vp, proj, view := c.ViewProjectionMatrix(), c.ProjectionMatrix(), c.ViewMatrix()
	common.Mul4(want[:], proj[:], view[:])
	assert.Equal(t, want, vp)
}
