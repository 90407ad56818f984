package scene

import (
	"context"
	"math"
	"sync"

	"github.com/pkg/errors"

	"github.com/Carmen-Shannon/oxy-gamepad/common"
	"github.com/Carmen-Shannon/oxy-gamepad/engine/camera"
	"github.com/Carmen-Shannon/oxy-gamepad/engine/renderer"
)

// Default scene configuration.
const (
	DefaultBasemap = "satellite"
	DefaultGround  = "world-elevation"
)

// DefaultExtent frames the Grand Canyon around Grandview Point.
var DefaultExtent = common.Extent{XMin: -111.742, YMin: 36.161, XMax: -111.675, YMax: 36.199}

// DefaultLighting enables every environment lighting effect.
var DefaultLighting = Lighting{DirectShadows: true, AmbientOcclusion: true}

// ErrInvalidExtent is returned by Load when the configured extent is empty or out of range.
var ErrInvalidExtent = errors.New("invalid scene extent")

// Lighting configures the environment lighting of the view.
type Lighting struct {
	DirectShadows    bool `yaml:"direct_shadows"`
	AmbientOcclusion bool `yaml:"ambient_occlusion"`
}

// View is the scene viewer the camera transform drives. It owns the current camera pose,
// the static scene configuration and a readiness signal that closes once the scene is loaded.
// Thread-safe for concurrent access.
type View interface {
	// Name returns the view's identifier.
	Name() string

	// Active returns whether this view is currently presented.
	Active() bool

	// SetActive sets whether this view is presented. Inactive views skip Draw.
	SetActive(active bool)

	// Camera returns the pose the view is currently showing.
	//
	// Returns:
	//   - camera.Pose: the current pose
	Camera() camera.Pose

	// SetCamera replaces the pose the view is showing.
	//
	// Parameters:
	//   - pose: the replacement pose
	SetCamera(pose camera.Pose)

	// Lens returns the camera model whose matrices follow the current pose.
	//
	// Returns:
	//   - camera.Camera: the view's camera model
	Lens() camera.Camera

	// Home returns the pose computed by Load from the extent.
	// Before Load it returns the zero pose.
	//
	// Returns:
	//   - camera.Pose: the initial pose
	Home() camera.Pose

	// Renderer returns the view's renderer, or nil for a headless view.
	Renderer() renderer.Renderer

	// SetRenderer attaches the renderer used by Draw.
	//
	// Parameters:
	//   - r: the renderer, or nil to draw nothing
	SetRenderer(r renderer.Renderer)

	// Extent returns the geographic area the view is initially framed on.
	Extent() common.Extent

	// Basemap returns the basemap identifier.
	Basemap() string

	// Ground returns the ground elevation surface identifier.
	Ground() string

	// Lighting returns the environment lighting configuration.
	Lighting() Lighting

	// Load frames the view on its extent and signals readiness.
	// The initial pose is centred on the extent, looks straight down with heading 0 and sits
	// high enough for the extent width to fill the field of view.
	// Calling Load again re-frames the view; readiness stays signalled.
	//
	// Returns:
	//   - error: ErrInvalidExtent if the extent is empty or out of range
	Load() error

	// Ready returns a channel that is closed once Load has succeeded.
	//
	// Returns:
	//   - <-chan struct{}: the readiness channel
	Ready() <-chan struct{}

	// When blocks until the view is ready or ctx is done.
	//
	// Parameters:
	//   - ctx: context bounding the wait
	//
	// Returns:
	//   - error: ctx.Err() if the context ended first
	When(ctx context.Context) error

	// Draw presents one frame with the renderer, cleared to the sky color of the current pose.
	// A view without a renderer, or an inactive view, draws nothing.
	//
	// Returns:
	//   - error: an error if the frame could not be acquired
	Draw() error
}

type view struct {
	mu *sync.Mutex

	name   string
	active bool

	lens camera.Camera
	home camera.Pose

	renderer renderer.Renderer

	extent   common.Extent
	basemap  string
	ground   string
	lighting Lighting

	ready     chan struct{}
	readyOnce *sync.Once
}

var _ View = &view{}

// NewView creates a View with the provided options.
// The view is active, framed on DefaultExtent with the satellite basemap, world elevation and
// DefaultLighting, and not ready until Load is called.
//
// Parameters:
//   - options: functional options to configure the view
//
// Returns:
//   - View: the newly created view
func NewView(options ...ViewBuilderOption) View {
	v := &view{
		mu:        &sync.Mutex{},
		name:      "default",
		active:    true,
		extent:    DefaultExtent,
		basemap:   DefaultBasemap,
		ground:    DefaultGround,
		lighting:  DefaultLighting,
		ready:     make(chan struct{}),
		readyOnce: &sync.Once{},
	}
	for _, opt := range options {
		opt(v)
	}
	if v.lens == nil {
		v.lens = camera.NewCamera()
	}
	return v
}

func (v *view) Name() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.name
}

func (v *view) Active() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.active
}

func (v *view) SetActive(active bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.active = active
}

func (v *view) Camera() camera.Pose {
	return v.lens.Pose()
}

func (v *view) SetCamera(pose camera.Pose) {
	v.lens.SetPose(pose)
}

func (v *view) Lens() camera.Camera {
	return v.lens
}

func (v *view) Home() camera.Pose {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.home
}

func (v *view) Renderer() renderer.Renderer {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.renderer
}

func (v *view) SetRenderer(r renderer.Renderer) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.renderer = r
}

func (v *view) Extent() common.Extent {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.extent
}

func (v *view) Basemap() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.basemap
}

func (v *view) Ground() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.ground
}

func (v *view) Lighting() Lighting {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lighting
}

func (v *view) Load() error {
	v.mu.Lock()
	extent := v.extent
	v.mu.Unlock()

	if !extent.Valid() {
		return errors.Wrapf(ErrInvalidExtent, "%+v", extent)
	}

	fov := v.lens.Pose().Fov
	if fov <= 0 || fov >= 180 {
		fov = camera.DefaultFov
	}
	home := HomePose(extent, fov)

	v.mu.Lock()
	v.home = home
	v.mu.Unlock()

	v.lens.SetPose(home)
	v.readyOnce.Do(func() { close(v.ready) })
	return nil
}

func (v *view) Ready() <-chan struct{} {
	return v.ready
}

func (v *view) When(ctx context.Context) error {
	select {
	case <-v.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (v *view) Draw() error {
	v.mu.Lock()
	r, active, lighting := v.renderer, v.active, v.lighting
	v.mu.Unlock()

	if r == nil || !active {
		return nil
	}
	if err := r.BeginFrame(SkyColor(v.lens, lighting)); err != nil {
		return errors.Wrap(err, "failed to begin frame")
	}
	r.EndFrame()
	r.Present()
	return nil
}

// HomePose frames an extent: centred on it in Web Mercator, looking straight down with heading 0,
// at the altitude where the extent's projected width spans the field of view.
//
// Parameters:
//   - extent: the WGS84 extent to frame
//   - fov: field of view in degrees
//
// Returns:
//   - camera.Pose: the framing pose
func HomePose(extent common.Extent, fov float64) camera.Pose {
	lon, lat := extent.Center()
	x, y := common.LonLatToWebMercator(lon, lat)
	z := (extent.ProjectedWidth() / 2) / math.Tan(common.DegToRad(fov)/2)
	return camera.Pose{
		Fov: fov,
		Position: camera.Position{
			X: x, Y: y, Z: z,
			SpatialReference: common.SpatialReference{WKID: common.WKIDWebMercator},
		},
	}
}

var (
	groundColor  = common.Color{R: 0.18, G: 0.22, B: 0.16, A: 1}
	horizonColor = common.Color{R: 0.62, G: 0.76, B: 0.90, A: 1}
	spaceColor   = common.Color{R: 0.01, G: 0.01, B: 0.04, A: 1}
)

// spaceAltitude is where the atmosphere has fully faded out of the clear color.
const spaceAltitude = 1e7

// horizonEpsilon is the clip-space w below which the horizon counts as not in front of the lens.
const horizonEpsilon = 1e-6

// skyFraction projects the horizon in the lens heading through the view-projection matrix
// and returns the share of the screen height above it.
func skyFraction(lens camera.Camera) float64 {
	pose := lens.Pose()
	sh, ch := math.Sincos(common.DegToRad(pose.Heading))
	dir := [4]float64{sh, ch, 0, 0}

	m := lens.ViewProjectionMatrix()
	var clip [4]float64
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			clip[row] += float64(m[col*4+row]) * dir[col]
		}
	}

	if clip[3] <= horizonEpsilon {
		if pose.Tilt > 90 {
			return 1
		}
		return 0
	}
	y := clip[1] / clip[3]
	return common.Clamp((1-y)/2, 0, 1)
}

// SkyColor approximates what fills the screen through a lens: ground below the projected
// horizon, sky above it, fading to black with altitude. Shadows and ambient occlusion each darken the ground tone.
//
// Parameters:
//   - lens: the view camera
//   - lighting: the view lighting
//
// Returns:
//   - common.Color: the clear color
func SkyColor(lens camera.Camera, lighting Lighting) common.Color {
	ground := groundColor
	if lighting.DirectShadows {
		ground = ground.Lerp(common.Color{A: 1}, 0.1)
	}
	if lighting.AmbientOcclusion {
		ground = ground.Lerp(common.Color{A: 1}, 0.15)
	}
	c := ground.Lerp(horizonColor, skyFraction(lens))
	fade := common.Clamp(lens.Pose().Position.Z/spaceAltitude, 0, 1)
	return c.Lerp(spaceColor, fade)
}
