// Package config loads the YAML run configuration and turns it into engine options.
package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/Carmen-Shannon/oxy-gamepad/common"
	"github.com/Carmen-Shannon/oxy-gamepad/engine/camera"
	"github.com/Carmen-Shannon/oxy-gamepad/engine/input"
	"github.com/Carmen-Shannon/oxy-gamepad/engine/renderer"
	"github.com/Carmen-Shannon/oxy-gamepad/engine/scene"
	"github.com/Carmen-Shannon/oxy-gamepad/engine/window"
)

// maxFileSize bounds the configuration file read by Load.
const maxFileSize = 1 << 20

// Policy defaults. The linear policy steers at one degree per unit of stick.
const (
	DefaultCurvedAngularRatio = 4.0
	DefaultLinearAngularRatio = 1.0
	DefaultLinearRatio        = 0.05
	DefaultLinearDivisor      = 50.0
)

// Config is the run configuration of oxy-gamepad.
// Zero values are replaced by defaults when the configuration is loaded.
type Config struct {
	// Policy is "curved" (default) or "linear".
	Policy string `yaml:"policy"`

	// AngularRatio is the degrees of heading/tilt per unit of shaped stick per frame.
	// Zero selects the policy default: 4 for curved, 1 for linear.
	AngularRatio float64 `yaml:"angular_ratio,omitempty"`

	// LinearRatio scales altitude into ground speed under the curved policy.
	LinearRatio float64 `yaml:"linear_ratio"`

	// LinearDivisor divides altitude into ground speed under the linear policy.
	LinearDivisor float64 `yaml:"linear_divisor"`

	// Fov is the field of view in degrees stamped on every pose.
	Fov float64 `yaml:"fov"`

	// WKID is the spatial reference stamped on every pose.
	WKID int `yaml:"wkid"`

	Scene    SceneConfig    `yaml:"scene"`
	Window   WindowConfig   `yaml:"window"`
	Renderer RendererConfig `yaml:"renderer"`
	Input    InputConfig    `yaml:"input"`

	// FrameLimit caps the frame rate; 0 follows the window refresh.
	FrameLimit float64 `yaml:"frame_limit"`

	// MaxFrames stops the run after this many frames; 0 runs until the window closes.
	MaxFrames uint64 `yaml:"max_frames"`

	// Profile logs frame statistics every second.
	Profile bool `yaml:"profile"`
}

// SceneConfig configures the scene view.
type SceneConfig struct {
	Extent   *common.Extent `yaml:"extent"`
	Basemap  string         `yaml:"basemap"`
	Ground   string         `yaml:"ground"`
	Lighting LightingConfig `yaml:"lighting"`
}

// LightingConfig configures environment lighting. Unset values default to enabled.
type LightingConfig struct {
	DirectShadows    *bool `yaml:"direct_shadows"`
	AmbientOcclusion *bool `yaml:"ambient_occlusion"`
}

// WindowConfig configures the presentation window.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// RendererConfig configures frame presentation.
type RendererConfig struct {
	// VSync waits for the display refresh before presenting. Defaults to enabled.
	VSync *bool `yaml:"vsync"`

	// Software forces a fallback (CPU) adapter.
	Software bool `yaml:"software"`
}

// InputConfig selects the gamepad input backend.
type InputConfig struct {
	// Backend is "glfw" (default), "joystick" or "scripted".
	Backend string `yaml:"backend"`

	// Device is the joystick index for the joystick backend (/dev/input/jsN).
	Device int `yaml:"device"`

	// Script is the YAML recording replayed by the scripted backend.
	// Relative paths are resolved against the configuration file.
	Script string `yaml:"script"`

	// Loop replays the script from the start once it is exhausted.
	Loop bool `yaml:"loop"`
}

// Default returns the configuration used when no file is given.
//
// Returns:
//   - Config: the default configuration
func Default() Config {
	var c Config
	c.applyDefaults()
	return c
}

// Load reads, defaults and validates a YAML configuration file.
//
// Parameters:
//   - path: path to the configuration file
//
// Returns:
//   - Config: the loaded configuration
//   - error: error if the file cannot be read, parsed or is invalid
func Load(path string) (Config, error) {
	cleanPath := filepath.Clean(path)

	info, err := os.Stat(cleanPath)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to stat config file")
	}
	if info.Size() > maxFileSize {
		return Config{}, errors.Errorf("config file %s too large: %d bytes (max %d)", cleanPath, info.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to read config file")
	}

	c, err := Parse(bytes.NewReader(data))
	if err != nil {
		return Config{}, errors.Wrapf(err, "config file %s", cleanPath)
	}
	if c.Input.Script != "" && !filepath.IsAbs(c.Input.Script) {
		c.Input.Script = filepath.Join(filepath.Dir(cleanPath), c.Input.Script)
	}
	return c, nil
}

// Parse decodes, defaults and validates a YAML configuration document.
// Unknown fields are rejected. An empty document yields Default().
//
// Parameters:
//   - r: reader positioned at the YAML document
//
// Returns:
//   - Config: the parsed configuration
//   - error: error if the document is malformed or invalid
func Parse(r io.Reader) (Config, error) {
	var c Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, errors.Wrap(err, "failed to parse config")
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return Config{}, errors.Wrap(err, "invalid configuration")
	}
	return c, nil
}

func (c *Config) applyDefaults() {
	c.Policy = common.Coalesce(c.Policy, camera.PolicyCurved.String())
	c.LinearRatio = common.Coalesce(c.LinearRatio, DefaultLinearRatio)
	c.LinearDivisor = common.Coalesce(c.LinearDivisor, DefaultLinearDivisor)
	c.Fov = common.Coalesce(c.Fov, camera.DefaultFov)
	c.WKID = common.Coalesce(c.WKID, common.WKIDWebMercator)

	if c.Scene.Extent == nil {
		extent := scene.DefaultExtent
		c.Scene.Extent = &extent
	}
	c.Scene.Basemap = common.Coalesce(c.Scene.Basemap, scene.DefaultBasemap)
	c.Scene.Ground = common.Coalesce(c.Scene.Ground, scene.DefaultGround)
	if c.Scene.Lighting.DirectShadows == nil {
		c.Scene.Lighting.DirectShadows = ptr(scene.DefaultLighting.DirectShadows)
	}
	if c.Scene.Lighting.AmbientOcclusion == nil {
		c.Scene.Lighting.AmbientOcclusion = ptr(scene.DefaultLighting.AmbientOcclusion)
	}

	c.Window.Title = common.Coalesce(c.Window.Title, "oxy-gamepad")
	c.Window.Width = common.Coalesce(c.Window.Width, 1280)
	c.Window.Height = common.Coalesce(c.Window.Height, 720)

	if c.Renderer.VSync == nil {
		c.Renderer.VSync = ptr(true)
	}

	c.Input.Backend = common.Coalesce(c.Input.Backend, input.BackendGLFW.String())
}

func ptr[T any](v T) *T { return &v }

// Validate reports every problem with the configuration.
//
// Returns:
//   - error: the combined problems, or nil if the configuration is usable
func (c Config) Validate() error {
	var err error
	if _, perr := camera.ParsePolicy(c.Policy); perr != nil {
		err = multierr.Append(err, perr)
	}
	if c.AngularRatio < 0 {
		err = multierr.Append(err, errors.Errorf("angular_ratio must not be negative, got %v", c.AngularRatio))
	}
	if c.LinearRatio <= 0 {
		err = multierr.Append(err, errors.Errorf("linear_ratio must be positive, got %v", c.LinearRatio))
	}
	if c.LinearDivisor <= 0 {
		err = multierr.Append(err, errors.Errorf("linear_divisor must be positive, got %v", c.LinearDivisor))
	}
	if c.Fov <= 0 || c.Fov >= 180 {
		err = multierr.Append(err, errors.Errorf("fov must be in (0, 180), got %v", c.Fov))
	}
	if c.Scene.Extent != nil && !c.Scene.Extent.Valid() {
		err = multierr.Append(err, errors.Errorf("scene.extent is empty or out of range: %+v", *c.Scene.Extent))
	}
	if c.Window.Width < 0 || c.Window.Height < 0 {
		err = multierr.Append(err, errors.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.FrameLimit < 0 {
		err = multierr.Append(err, errors.Errorf("frame_limit must not be negative, got %v", c.FrameLimit))
	}

	backend, berr := input.ParseBackendType(c.Input.Backend)
	if berr != nil {
		err = multierr.Append(err, berr)
	}
	if berr == nil && backend == input.BackendScripted && c.Input.Script == "" {
		err = multierr.Append(err, errors.New("input.script is required for the scripted backend"))
	}
	if c.Input.Device < 0 {
		err = multierr.Append(err, errors.Errorf("input.device must not be negative, got %d", c.Input.Device))
	}
	return err
}

// ResolvedAngularRatio returns the configured angular ratio, or the policy default when unset.
//
// Returns:
//   - float64: degrees per unit of shaped stick per frame
func (c Config) ResolvedAngularRatio() float64 {
	if c.AngularRatio > 0 {
		return c.AngularRatio
	}
	if p, err := camera.ParsePolicy(c.Policy); err == nil && p == camera.PolicyLinear {
		return DefaultLinearAngularRatio
	}
	return DefaultCurvedAngularRatio
}

// TransformOptions returns the camera transform options the configuration selects.
//
// Returns:
//   - []camera.TransformBuilderOption: options for camera.NewTransform
//   - error: error if the policy is unknown
func (c Config) TransformOptions() ([]camera.TransformBuilderOption, error) {
	policy, err := camera.ParsePolicy(c.Policy)
	if err != nil {
		return nil, err
	}
	return []camera.TransformBuilderOption{
		camera.WithPolicy(policy),
		camera.WithAngularRatio(c.ResolvedAngularRatio()),
		camera.WithLinearRatio(c.LinearRatio),
		camera.WithLinearDivisor(c.LinearDivisor),
		camera.WithFov(c.Fov),
		camera.WithSpatialReference(common.SpatialReference{WKID: c.WKID}),
	}, nil
}

// ViewOptions returns the scene view options the configuration selects.
// The view's camera starts with the configured field of view so the initial framing matches it.
//
// Returns:
//   - []scene.ViewBuilderOption: options for scene.NewView
func (c Config) ViewOptions() []scene.ViewBuilderOption {
	opts := []scene.ViewBuilderOption{
		scene.WithBasemap(c.Scene.Basemap),
		scene.WithGround(c.Scene.Ground),
		scene.WithLighting(scene.Lighting{
			DirectShadows:    c.Scene.Lighting.DirectShadows != nil && *c.Scene.Lighting.DirectShadows,
			AmbientOcclusion: c.Scene.Lighting.AmbientOcclusion != nil && *c.Scene.Lighting.AmbientOcclusion,
		}),
		scene.WithLens(camera.NewCamera(camera.WithPose(camera.Pose{
			Fov:      c.Fov,
			Position: camera.Position{SpatialReference: common.SpatialReference{WKID: c.WKID}},
		}))),
	}
	if c.Scene.Extent != nil {
		opts = append(opts, scene.WithExtent(*c.Scene.Extent))
	}
	return opts
}

// WindowOptions returns the window options the configuration selects.
//
// Returns:
//   - []window.WindowBuilderOption: options for window.NewWindow
func (c Config) WindowOptions() []window.WindowBuilderOption {
	return []window.WindowBuilderOption{
		window.WithTitle(c.Window.Title),
		window.WithWidth(c.Window.Width),
		window.WithHeight(c.Window.Height),
	}
}

// RendererOptions returns the renderer options the configuration selects.
//
// Returns:
//   - []renderer.RendererBuilderOption: options for renderer.NewRenderer
func (c Config) RendererOptions() []renderer.RendererBuilderOption {
	mode := renderer.PresentModeVSync
	if c.Renderer.VSync != nil && !*c.Renderer.VSync {
		mode = renderer.PresentModeUncapped
	}
	return []renderer.RendererBuilderOption{
		renderer.WithPresentMode(mode),
		renderer.WithForceSoftwareRenderer(c.Renderer.Software),
	}
}

// Backend returns the configured input backend.
//
// Returns:
//   - input.BackendType: the backend
//   - error: error if the backend name is unknown
func (c Config) Backend() (input.BackendType, error) {
	return input.ParseBackendType(c.Input.Backend)
}
