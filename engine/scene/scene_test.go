package scene

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-gamepad/common"
	"github.com/Carmen-Shannon/oxy-gamepad/engine/camera"
	"github.com/Carmen-Shannon/oxy-gamepad/engine/renderer"
)

type fakeRenderer struct {
	clears   []common.Color
	presents int
	failNext bool
}

var _ renderer.Renderer = &fakeRenderer{}

func (f *fakeRenderer) Resize(width, height int) {}

func (f *fakeRenderer) BeginFrame(clear common.Color) error {
	if f.failNext {
		f.failNext = false
		return errors.New("surface lost")
	}
	f.clears = append(f.clears, clear)
	return nil
}

func (f *fakeRenderer) EndFrame() {}

func (f *fakeRenderer) Present() { f.presents++ }

func (f *fakeRenderer) SetPresentMode(mode renderer.PresentMode, width, height int) {}

func (f *fakeRenderer) Release() {}

func TestNewViewDefaults(t *testing.T) {
	v := NewView()

	assert.Equal(t, "default", v.Name())
	assert.True(t, v.Active())
	assert.Equal(t, DefaultExtent, v.Extent())
	assert.Equal(t, DefaultBasemap, v.Basemap())
	assert.Equal(t, DefaultGround, v.Ground())
	assert.Equal(t, DefaultLighting, v.Lighting())
	assert.Nil(t, v.Renderer())
	assert.NotNil(t, v.Lens())

	select {
	case <-v.Ready():
		t.Fatal("view must not be ready before Load")
	default:
	}
}

func TestViewOptions(t *testing.T) {
	extent := common.Extent{XMin: -10, YMin: -5, XMax: 10, YMax: 5}
	lighting := Lighting{DirectShadows: true}
	r := &fakeRenderer{}

	v := NewView(
		WithName("alps"),
		WithActive(false),
		WithExtent(extent),
		WithBasemap("topo"),
		WithGround(""),
		WithLighting(lighting),
		WithRenderer(r),
	)

	assert.Equal(t, "alps", v.Name())
	assert.False(t, v.Active())
	assert.Equal(t, extent, v.Extent())
	assert.Equal(t, "topo", v.Basemap())
	assert.Equal(t, DefaultGround, v.Ground())
	assert.Equal(t, lighting, v.Lighting())
	assert.Same(t, r, v.Renderer())
}

func TestHomePose(t *testing.T) {
	extent := common.Extent{XMin: -1, YMin: -1, XMax: 1, YMax: 1}

	got := HomePose(extent, 55)

	width := 2 * common.EarthRadius * math.Pi / 180
	want := camera.Pose{
		Fov: 55,
		Position: camera.Position{
			Z:                width / 2 / math.Tan(55*math.Pi/360),
			SpatialReference: common.SpatialReference{WKID: common.WKIDWebMercator},
		},
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-6)); diff != "" {
		t.Errorf("HomePose mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFramesExtentAndSignalsReady(t *testing.T) {
	v := NewView()

	require.NoError(t, v.Load())

	select {
	case <-v.Ready():
	default:
		t.Fatal("view must be ready after Load")
	}

	home := HomePose(DefaultExtent, camera.DefaultFov)
	assert.Equal(t, home, v.Home())
	assert.Equal(t, home, v.Camera())

	lon, lat := common.WebMercatorToLonLat(v.Camera().Position.X, v.Camera().Position.Y)
	assert.InDelta(t, -111.7085, lon, 1e-9)
	assert.InDelta(t, 36.18, lat, 1e-9)
	assert.Greater(t, v.Camera().Position.Z, 0.0)

	// A second Load re-frames without closing the ready channel twice.
	v.SetCamera(camera.Pose{Heading: 30, Fov: camera.DefaultFov})
	require.NoError(t, v.Load())
	assert.Equal(t, home, v.Camera())
}

func TestLoadRejectsInvalidExtent(t *testing.T) {
	v := NewView(WithExtent(common.Extent{XMin: 5, YMin: 0, XMax: 1, YMax: 1}))

	err := v.Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidExtent))

	select {
	case <-v.Ready():
		t.Fatal("failed Load must not signal readiness")
	default:
	}
}

func TestWhen(t *testing.T) {
	v := NewView()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, v.When(ctx), context.DeadlineExceeded)

	go func() {
		time.Sleep(5 * time.Millisecond)
		_ = v.Load()
	}()
	require.NoError(t, v.When(context.Background()))
}

func TestSetCameraUpdatesLens(t *testing.T) {
	v := NewView()
	p := camera.Pose{Heading: 45, Tilt: 60, Fov: 55, Position: camera.Position{X: 1, Y: 2, Z: 3}}

	v.SetCamera(p)

	assert.Equal(t, p, v.Camera())
	assert.Equal(t, p, v.Lens().Pose())
}

func TestDraw(t *testing.T) {
	t.Run("headless", func(t *testing.T) {
		assert.NoError(t, NewView().Draw())
	})

	t.Run("presents with sky color", func(t *testing.T) {
		r := &fakeRenderer{}
		v := NewView(WithRenderer(r))
		require.NoError(t, v.Load())

		require.NoError(t, v.Draw())
		require.Len(t, r.clears, 1)
		assert.Equal(t, SkyColor(v.Lens(), v.Lighting()), r.clears[0])
		assert.Equal(t, 1, r.presents)
	})

	t.Run("inactive skips", func(t *testing.T) {
		r := &fakeRenderer{}
		v := NewView(WithRenderer(r), WithActive(false))

		require.NoError(t, v.Draw())
		assert.Empty(t, r.clears)
	})

	t.Run("begin frame failure", func(t *testing.T) {
		r := &fakeRenderer{failNext: true}
		v := NewView(WithRenderer(r))

		assert.Error(t, v.Draw())
		assert.Zero(t, r.presents)
	})
}

func lensAt(heading, tilt, z float64) camera.Camera {
	return camera.NewCamera(camera.WithPose(camera.Pose{
		Heading:  heading,
		Tilt:     tilt,
		Fov:      camera.DefaultFov,
		Position: camera.Position{Z: z},
	}))
}

func TestSkyFraction(t *testing.T) {
	assert.Zero(t, skyFraction(lensAt(0, 0, 1000)))
	assert.Zero(t, skyFraction(lensAt(270, 0, 1000)))
	assert.InDelta(t, 0.5, skyFraction(lensAt(0, 90, 1000)), 1e-6)
	assert.InDelta(t, 0.5, skyFraction(lensAt(135, 90, 1000)), 1e-6)

	// At 60 degrees the horizon sits above the top edge of a 55 degree field of view.
	lens := camera.NewCamera(camera.WithPose(camera.Pose{Tilt: 60, Fov: 55}))
	assert.Zero(t, skyFraction(lens))

	// Tilting past level puts more than half the screen above the horizon.
	assert.Greater(t, skyFraction(lensAt(0, 100, 1000)), 0.5)
}

func TestSkyColor(t *testing.T) {
	down := SkyColor(lensAt(0, 0, 1000), Lighting{})
	horizon := SkyColor(lensAt(0, 90, 1000), Lighting{})
	assert.Greater(t, horizon.B, down.B)
	if diff := cmp.Diff(groundColor, SkyColor(lensAt(0, 0, 0), Lighting{}), cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("looking down color mismatch (-want +got):\n%s", diff)
	}

	space := SkyColor(lensAt(0, 90, 5e7), Lighting{})
	if diff := cmp.Diff(spaceColor, space, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("high altitude color mismatch (-want +got):\n%s", diff)
	}

	occluded := SkyColor(lensAt(0, 0, 1000), Lighting{AmbientOcclusion: true})
	assert.Less(t, occluded.G, down.G)
}
