package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Carmen-Shannon/oxy-gamepad/common"
	"github.com/Carmen-Shannon/oxy-gamepad/engine/camera"
	"github.com/Carmen-Shannon/oxy-gamepad/engine/input"
	"github.com/Carmen-Shannon/oxy-gamepad/engine/profiler"
	"github.com/Carmen-Shannon/oxy-gamepad/engine/scene"
	"github.com/Carmen-Shannon/oxy-gamepad/engine/window"
)

// titleInterval is how many frames pass between title bar pose updates.
const titleInterval = 30

// FrameState is carried from one frame to the next by the run loop.
// It is a value: RenderFrame returns the successor state and never keeps a reference to it.
type FrameState struct {
	// Origin is the resting stick calibration of the active gamepad.
	Origin camera.Origin

	// Frame counts rendered frames.
	Frame uint64

	// Skipped counts frames whose input could not be applied.
	Skipped uint64

	// Connected reports whether a gamepad was present on the last frame.
	Connected bool
}

// engine implements the Engine interface.
// All of its work happens on the thread running the window message loop.
type engine struct {
	logger *zap.SugaredLogger

	window    window.Window
	view      scene.View
	source    input.Source
	transform camera.Transform

	profiler         *profiler.Profiler
	profilingEnabled bool

	title            string
	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
	maxFrames        uint64        // 0 = unlimited

	resetPending bool
}

// Engine drives a scene view from gamepad input.
// Each window refresh it polls the input source, applies the camera transform to the first
// present gamepad and presents the view.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance, or nil for a headless engine
	Window() window.Window

	// View returns the scene view the engine drives.
	//
	// Returns:
	//   - scene.View: the view
	View() scene.View

	// Transform returns the camera transform applied each frame.
	//
	// Returns:
	//   - camera.Transform: the transform
	Transform() camera.Transform

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// ResetView returns the view to the pose framed by its extent on the next frame.
	ResetView()

	// RenderFrame runs one frame: poll input, transform the camera, present the view.
	// A missing gamepad, an input read failure or a malformed sample leave the pose untouched.
	//
	// Parameters:
	//   - state: the state returned by the previous frame, or the zero value for the first
	//
	// Returns:
	//   - FrameState: the state to pass to the next frame
	RenderFrame(state FrameState) FrameState

	// Run waits for the view to become ready, then runs the window message loop with
	// RenderFrame as its per-frame callback. Must be called from the main goroutine.
	// Returns when the window closes, the frame budget is spent or ctx is cancelled.
	//
	// Parameters:
	//   - ctx: cancelling it closes the window
	//
	// Returns:
	//   - error: an error if the engine is incomplete or ctx ended before the view was ready
	Run(ctx context.Context) error

	// Quit closes the window, ending Run. Safe to call multiple times.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
// Defaults to a new scene view, the curved camera transform and a no-op logger.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		logger: zap.NewNop().Sugar(),
		title:  "oxy-gamepad",
	}

	for _, opt := range options {
		opt(e)
	}

	if e.view == nil {
		e.view = scene.NewView()
	}
	if e.transform == nil {
		e.transform = camera.NewTransform()
	}
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(profiler.WithLogger(e.logger.Named("profiler")))
	}

	if e.window != nil {
		if w, h := e.window.Width(), e.window.Height(); w > 0 && h > 0 {
			e.view.Lens().SetAspect(float32(w) / float32(h))
		}
		e.window.SetResizeCallback(func(width, height int) {
			if r := e.view.Renderer(); r != nil {
				r.Resize(width, height)
			}
			if width > 0 && height > 0 {
				e.view.Lens().SetAspect(float32(width) / float32(height))
			}
		})
		e.window.SetKeyDownCallback(func(keyCode uint32) {
			switch keyCode {
			case common.KeyR:
				e.ResetView()
			case common.KeyP:
				if e.profilingEnabled {
					e.DisableProfiler()
				} else {
					e.EnableProfiler()
				}
			}
		})
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) View() scene.View {
	return e.view
}

func (e *engine) Transform() camera.Transform {
	return e.transform
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	if !e.profilingEnabled {
		e.profiler.Reset()
	}
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) ResetView() {
	e.resetPending = true
}

func (e *engine) RenderFrame(state FrameState) FrameState {
	state.Frame++

	if e.resetPending {
		e.resetPending = false
		e.view.SetCamera(e.view.Home())
		e.logger.Infow("view reset", "pose", e.view.Camera().String())
	}

	if !e.applyInput(&state) {
		state.Skipped++
		if e.profilingEnabled {
			e.profiler.Skip()
		}
	}

	if err := e.view.Draw(); err != nil {
		e.logger.Warnw("frame not presented", "frame", state.Frame, "error", err)
	}

	if e.window != nil && state.Frame%titleInterval == 0 {
		e.window.SetTitle(fmt.Sprintf("%s | %s", e.title, e.view.Camera()))
	}

	if e.profilingEnabled {
		e.profiler.Tick()
	}

	return state
}

// applyInput polls the source and moves the camera. It returns false if input was available
// but could not be applied; an absent gamepad is not a failure.
func (e *engine) applyInput(state *FrameState) bool {
	if e.source == nil {
		return true
	}

	pads, err := e.source.Gamepads()
	if err != nil {
		e.logger.Warnw("failed to read gamepads", "frame", state.Frame, "error", err)
		return false
	}

	sample := input.FirstPresent(pads)
	if sample == nil {
		if state.Connected {
			e.logger.Infow("gamepad disconnected", "device", state.Origin.Device())
			state.Connected = false
		}
		return true
	}
	if !state.Connected {
		e.logger.Infow("gamepad connected", "device", sample.Identity(),
			"axes", len(sample.Axes), "buttons", len(sample.Buttons))
		state.Connected = true
	}

	pose, origin, err := e.transform.Update(e.view.Camera(), sample, state.Origin)
	if err != nil {
		e.logger.Warnw("skipping frame", "frame", state.Frame, "device", sample.Identity(), "error", err)
		return false
	}
	if !state.Origin.Captured() || state.Origin.Device() != origin.Device() {
		e.logger.Debugw("captured stick origin", "device", origin.Device(), "axes", origin.Axes())
	}

	state.Origin = origin
	e.view.SetCamera(pose)
	return true
}

func (e *engine) Run(ctx context.Context) error {
	if e.window == nil {
		return errors.New("engine has no window")
	}
	if e.source == nil {
		return errors.New("engine has no input source")
	}

	e.logger.Infow("waiting for view", "view", e.view.Name())
	if err := e.view.When(ctx); err != nil {
		return errors.Wrap(err, "view did not become ready")
	}
	e.logger.Infow("view ready", "pose", e.view.Camera().String(),
		"policy", e.transform.Policy().String())

	var state FrameState
	e.window.SetUpdateCallback(func() {
		start := time.Now()

		if ctx.Err() != nil {
			e.Quit()
			return
		}

		state = e.RenderFrame(state)

		if e.maxFrames > 0 && state.Frame >= e.maxFrames {
			e.Quit()
			return
		}

		if e.renderFrameLimit > 0 {
			if remaining := e.renderFrameLimit - time.Since(start); remaining > 0 {
				time.Sleep(remaining)
			}
		}
	})
	e.window.ProcessMessages()
	e.window.SetUpdateCallback(nil)

	e.logger.Infow("run loop finished", "frames", state.Frame, "skipped", state.Skipped,
		"pose", e.view.Camera().String())
	e.Quit()
	return nil
}

func (e *engine) Quit() {
	if e.window == nil || !e.window.IsRunning() {
		return
	}
	if err := e.window.Close(); err != nil {
		e.logger.Warnw("failed to close window", "error", err)
	}
}
