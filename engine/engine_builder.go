package engine

import (
	"time"

	"go.uber.org/zap"

	"github.com/Carmen-Shannon/oxy-gamepad/engine/camera"
	"github.com/Carmen-Shannon/oxy-gamepad/engine/input"
	"github.com/Carmen-Shannon/oxy-gamepad/engine/profiler"
	"github.com/Carmen-Shannon/oxy-gamepad/engine/scene"
	"github.com/Carmen-Shannon/oxy-gamepad/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithLogger sets the logger used by the engine and its default profiler.
//
// Parameters:
//   - logger: the logger; nil keeps the no-op default
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLogger(logger *zap.SugaredLogger) EngineBuilderOption {
	return func(e *engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfiler replaces the default profiler.
//
// Parameters:
//   - p: the profiler to tick each frame
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithWindow sets the window whose message loop drives the engine.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithTitle sets the title prefix shown before the current pose in the title bar.
//
// Parameters:
//   - title: the title prefix
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTitle(title string) EngineBuilderOption {
	return func(e *engine) {
		e.title = title
	}
}

// WithView sets the scene view the engine drives.
//
// Parameters:
//   - v: the view
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithView(v scene.View) EngineBuilderOption {
	return func(e *engine) {
		e.view = v
	}
}

// WithSource sets the gamepad input source polled each frame.
//
// Parameters:
//   - s: the input source
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithSource(s input.Source) EngineBuilderOption {
	return func(e *engine) {
		e.source = s
	}
}

// WithTransform sets the camera transform applied each frame.
//
// Parameters:
//   - t: the transform
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTransform(t camera.Transform) EngineBuilderOption {
	return func(e *engine) {
		e.transform = t
	}
}

// WithRenderFrameLimit sets an optional render frame rate cap in frames per second.
// Pass 0 to uncap the render loop (default).
//
// Parameters:
//   - fps: maximum render frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			e.renderFrameLimit = 0
			return
		}
		e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
	}
}

// WithMaxFrames stops Run after the given number of frames. 0 runs until the window closes.
//
// Parameters:
//   - n: the frame budget
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithMaxFrames(n uint64) EngineBuilderOption {
	return func(e *engine) {
		e.maxFrames = n
	}
}
