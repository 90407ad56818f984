package scene

import (
	"github.com/Carmen-Shannon/oxy-gamepad/common"
	"github.com/Carmen-Shannon/oxy-gamepad/engine/camera"
	"github.com/Carmen-Shannon/oxy-gamepad/engine/renderer"
)

// ViewBuilderOption is a functional option for configuring a View.
// Use the With* functions to create options.
type ViewBuilderOption func(v *view)

// WithName sets the view's identifier.
//
// Parameters:
//   - name: the identifier
//
// Returns:
//   - ViewBuilderOption: option function to apply
func WithName(name string) ViewBuilderOption {
	return func(v *view) {
		v.name = name
	}
}

// WithActive sets whether the view is presented.
//
// Parameters:
//   - active: whether the view is active
//
// Returns:
//   - ViewBuilderOption: option function to apply
func WithActive(active bool) ViewBuilderOption {
	return func(v *view) {
		v.active = active
	}
}

// WithExtent sets the geographic area Load frames the view on.
//
// Parameters:
//   - extent: WGS84 extent
//
// Returns:
//   - ViewBuilderOption: option function to apply
func WithExtent(extent common.Extent) ViewBuilderOption {
	return func(v *view) {
		v.extent = extent
	}
}

// WithBasemap sets the basemap identifier. Empty keeps the default.
func WithBasemap(basemap string) ViewBuilderOption {
	return func(v *view) {
		v.basemap = common.Coalesce(basemap, v.basemap)
	}
}

// WithGround sets the ground elevation surface identifier. Empty keeps the default.
func WithGround(ground string) ViewBuilderOption {
	return func(v *view) {
		v.ground = common.Coalesce(ground, v.ground)
	}
}

// WithLighting sets the environment lighting.
func WithLighting(lighting Lighting) ViewBuilderOption {
	return func(v *view) {
		v.lighting = lighting
	}
}

// WithRenderer attaches the renderer used by Draw.
func WithRenderer(r renderer.Renderer) ViewBuilderOption {
	return func(v *view) {
		v.renderer = r
	}
}

// WithLens sets the camera model. Its current pose FOV is used by Load.
//
// Parameters:
//   - cam: the camera model
//
// Returns:
//   - ViewBuilderOption: option function to apply
func WithLens(cam camera.Camera) ViewBuilderOption {
	return func(v *view) {
		v.lens = cam
	}
}
