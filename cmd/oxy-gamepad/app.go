package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Carmen-Shannon/oxy-gamepad/config"
	"github.com/Carmen-Shannon/oxy-gamepad/engine"
	"github.com/Carmen-Shannon/oxy-gamepad/engine/camera"
	"github.com/Carmen-Shannon/oxy-gamepad/engine/input"
	"github.com/Carmen-Shannon/oxy-gamepad/engine/input/glfw_source"
	"github.com/Carmen-Shannon/oxy-gamepad/engine/input/joystick_source"
	"github.com/Carmen-Shannon/oxy-gamepad/engine/profiler"
	"github.com/Carmen-Shannon/oxy-gamepad/engine/renderer"
	"github.com/Carmen-Shannon/oxy-gamepad/engine/scene"
	"github.com/Carmen-Shannon/oxy-gamepad/engine/window"
)

const (
	// Flags.
	flagConfig    = "config"
	flagPolicy    = "policy"
	flagBackend   = "backend"
	flagProfile   = "profile"
	flagMaxFrames = "max-frames"
	flagDebug     = "debug"
)

func newApp() *cli.App {
	configFlag := &cli.StringFlag{
		Name:    flagConfig,
		Aliases: []string{"c"},
		Usage:   "load configuration from `FILE`",
	}

	return &cli.App{
		Name:  "oxy-gamepad",
		Usage: "fly a 3D scene camera with a game controller",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  flagDebug,
				Usage: "enable debug logging",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "open the scene view and drive its camera from the first connected gamepad",
				Flags: []cli.Flag{
					configFlag,
					&cli.StringFlag{
						Name:  flagPolicy,
						Usage: "input shaping policy: curved or linear",
					},
					&cli.StringFlag{
						Name:  flagBackend,
						Usage: "gamepad backend: glfw, joystick or scripted",
					},
					&cli.BoolFlag{
						Name:  flagProfile,
						Usage: "log frame statistics every second",
					},
					&cli.Uint64Flag{
						Name:  flagMaxFrames,
						Usage: "stop after `N` frames (0 runs until the window closes)",
					},
				},
				Action: runAction,
			},
			{
				Name:  "check-config",
				Usage: "validate a configuration file and print it with defaults applied",
				Flags: []cli.Flag{configFlag},
				Action: func(c *cli.Context) error {
					cfg, err := loadConfig(c)
					if err != nil {
						return err
					}
					out, err := yaml.Marshal(cfg)
					if err != nil {
						return errors.Wrap(err, "failed to encode configuration")
					}
					_, err = c.App.Writer.Write(out)
					return err
				},
			},
		},
	}
}

// newLogger builds a development logger when debugging and a production logger otherwise.
func newLogger(debug bool) (*zap.SugaredLogger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to create logger")
	}
	return logger.Sugar(), nil
}

// loadConfig reads --config, or the defaults when it is unset, and applies the run flags on top.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Default()
	if path := c.String(flagConfig); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return config.Config{}, err
		}
	}

	if c.IsSet(flagPolicy) {
		cfg.Policy = c.String(flagPolicy)
	}
	if c.IsSet(flagBackend) {
		cfg.Input.Backend = c.String(flagBackend)
	}
	if c.IsSet(flagProfile) {
		cfg.Profile = c.Bool(flagProfile)
	}
	if c.IsSet(flagMaxFrames) {
		cfg.MaxFrames = c.Uint64(flagMaxFrames)
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}

// newSource opens the configured gamepad backend.
func newSource(cfg config.Config) (input.Source, error) {
	backend, err := cfg.Backend()
	if err != nil {
		return nil, err
	}

	switch backend {
	case input.BackendJoystick:
		return joystick_source.NewSource(cfg.Input.Device)
	case input.BackendScripted:
		f, err := os.Open(cfg.Input.Script)
		if err != nil {
			return nil, errors.Wrap(err, "failed to open input script")
		}
		defer f.Close()
		script, err := input.LoadScript(f)
		if err != nil {
			return nil, errors.Wrapf(err, "input script %s", cfg.Input.Script)
		}
		return input.NewScriptedSource(script.Frames, input.WithLoop(cfg.Input.Loop)), nil
	default:
		return glfw_source.NewSource(), nil
	}
}

// releaser is the part of the renderer teardown needs.
type releaser interface {
	Release()
}

// destroyer is the part of the window teardown needs.
type destroyer interface {
	Destroy() error
}

// teardown releases the renderer's surface before destroying the window it was created from.
//
// Parameters:
//   - r: the renderer drawing into w
//   - w: the window to destroy
//
// Returns:
//   - error: error if the window could not be destroyed
func teardown(r releaser, w destroyer) error {
	r.Release()
	return w.Destroy()
}

func runAction(c *cli.Context) (err error) {
	logger, err := newLogger(c.Bool(flagDebug))
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	transformOpts, err := cfg.TransformOptions()
	if err != nil {
		return err
	}

	// The window initialises GLFW, which the glfw gamepad source relies on.
	win, err := window.NewWindow(cfg.WindowOptions()...)
	if err != nil {
		return err
	}

	r, err := renderer.NewRenderer(renderer.BackendTypeWGPU, win, cfg.RendererOptions()...)
	if err != nil {
		return multierr.Append(err, win.Destroy())
	}
	defer func() {
		err = multierr.Append(err, teardown(r, win))
	}()

	src, err := newSource(cfg)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, src.Close())
	}()

	view := scene.NewView(append(cfg.ViewOptions(), scene.WithRenderer(r))...)
	if err := view.Load(); err != nil {
		return err
	}

	eng := engine.NewEngine(
		engine.WithLogger(logger),
		engine.WithWindow(win),
		engine.WithTitle(cfg.Window.Title),
		engine.WithView(view),
		engine.WithSource(src),
		engine.WithTransform(camera.NewTransform(transformOpts...)),
		engine.WithProfiler(profiler.NewProfiler(profiler.WithLogger(logger.Named("profiler")))),
		engine.WithProfiling(cfg.Profile),
		engine.WithRenderFrameLimit(cfg.FrameLimit),
		engine.WithMaxFrames(cfg.MaxFrames),
	)

	logger.Infow("starting",
		"policy", cfg.Policy,
		"backend", cfg.Input.Backend,
		"basemap", view.Basemap(),
		"ground", view.Ground(),
		"extent", view.Extent(),
	)

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return eng.Run(ctx)
}
