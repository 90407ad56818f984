package input

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Button is the state of a single gamepad button.
// Digital buttons report Value 0 or 1; analog triggers report the full [0, 1] range.
type Button struct {
	// Pressed reports whether the button is considered held down.
	Pressed bool `yaml:"pressed"`

	// Value is the analog reading in [0, 1].
	Value float64 `yaml:"value"`
}

// Sample is one frame of gamepad state in the standard layout
// (see common.AxisLeftX and common.ButtonLeftTrigger for indices).
// Samples are produced fresh every poll and must not be mutated by consumers.
type Sample struct {
	// ID identifies the device slot the sample was read from.
	ID int `yaml:"id"`

	// Name is the device name reported by the backend.
	Name string `yaml:"name"`

	// Axes holds normalized stick readings in [-1, 1]: LX, LY, RX, RY.
	Axes []float64 `yaml:"axes"`

	// Buttons holds button states in standard layout order.
	Buttons []Button `yaml:"buttons"`
}

// Identity returns a string identifying the physical controller the sample came from.
//
// Returns:
//   - string: "<id>:<name>"
func (s *Sample) Identity() string {
	return strconv.Itoa(s.ID) + ":" + s.Name
}

// Source polls connected gamepads.
// Implementations must be called from the thread that owns the backend (the main thread for GLFW).
type Source interface {
	// Gamepads returns the currently connected devices indexed by slot.
	// The list is sparse: disconnected slots are nil. An empty or nil list means no device is present.
	//
	// Returns:
	//   - []*Sample: per-slot samples, possibly containing nil entries
	//   - error: error if the backend failed to read device state
	Gamepads() ([]*Sample, error)

	// Close releases backend resources.
	//
	// Returns:
	//   - error: error if the backend failed to close
	Close() error
}

// BackendType identifies an input Source implementation.
type BackendType int

const (
	// BackendGLFW polls gamepads through GLFW's gamepad mapping database.
	BackendGLFW BackendType = iota

	// BackendJoystick reads a Linux joystick device (/dev/input/jsN).
	BackendJoystick

	// BackendScripted replays recorded frames.
	BackendScripted
)

var backendNames = map[BackendType]string{
	BackendGLFW:     "glfw",
	BackendJoystick: "joystick",
	BackendScripted: "scripted",
}

func (b BackendType) String() string {
	if name, ok := backendNames[b]; ok {
		return name
	}
	return "unknown"
}

// ParseBackendType resolves a backend name as used in configuration files and flags.
//
// Parameters:
//   - name: one of "glfw", "joystick" or "scripted" (case-insensitive)
//
// Returns:
//   - BackendType: the parsed backend
//   - error: error if the name is not recognized
func ParseBackendType(name string) (BackendType, error) {
	for b, n := range backendNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return b, nil
		}
	}
	return 0, errors.Errorf("unknown input backend %q", name)
}

// FirstPresent returns the first non-nil sample of a sparse device list, or nil if none is present.
//
// Parameters:
//   - gamepads: the sparse list returned by Source.Gamepads
//
// Returns:
//   - *Sample: the first present device or nil
func FirstPresent(gamepads []*Sample) *Sample {
	for _, g := range gamepads {
		if g != nil {
			return g
		}
	}
	return nil
}

// NormalizeAxis maps a signed integer reading in [-limit, limit] to [-1, 1].
func NormalizeAxis(v, limit int) float64 {
	f := float64(v) / float64(limit)
	if f > 1 {
		return 1
	}
	if f < -1 {
		return -1
	}
	return f
}

// TriggerValue maps a trigger axis that rests at -1 and saturates at 1 onto [0, 1].
func TriggerValue(axis float64) float64 {
	v := (axis + 1) / 2
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// triggerPressThreshold is the analog value above which a trigger reports Pressed.
const triggerPressThreshold = 0.1

// AnalogButton reports an analog value, pressed once it passes the trigger threshold.
func AnalogButton(value float64) Button {
	return Button{Pressed: value > triggerPressThreshold, Value: value}
}

// DigitalButton reports a binary button with value 0 or 1.
func DigitalButton(pressed bool) Button {
	if pressed {
		return Button{Pressed: true, Value: 1}
	}
	return Button{}
}
