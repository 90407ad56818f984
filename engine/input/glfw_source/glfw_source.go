package glfw_source

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/Carmen-Shannon/oxy-gamepad/common"
	"github.com/Carmen-Shannon/oxy-gamepad/engine/input"
)

// glfwSource polls gamepads through GLFW. GLFW must already be initialized
// (the window package does this) and every call must happen on the main thread.
//
// GLFW reference: https://www.glfw.org/docs/latest/input_guide.html#gamepad
// go-gl/glfw: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Joystick.GetGamepadState
type glfwSource struct{}

var _ input.Source = &glfwSource{}

// NewSource creates a Source backed by GLFW's joystick and gamepad API.
// Only joysticks with a gamepad mapping are reported; others appear as nil slots.
//
// Returns:
//   - input.Source: the GLFW-backed source
func NewSource() input.Source {
	return &glfwSource{}
}

func (s *glfwSource) Gamepads() ([]*input.Sample, error) {
	out := make([]*input.Sample, 0, int(glfw.JoystickLast)+1)
	for joy := glfw.Joystick1; joy <= glfw.JoystickLast; joy++ {
		if !joy.Present() || !joy.IsGamepad() {
			out = append(out, nil)
			continue
		}
		state := joy.GetGamepadState()
		if state == nil {
			out = append(out, nil)
			continue
		}
		out = append(out, fromGamepadState(int(joy), joy.GetGamepadName(), state))
	}
	return out, nil
}

func (s *glfwSource) Close() error {
	return nil
}

// fromGamepadState converts GLFW's gamepad layout into the standard layout.
// GLFW reports the triggers as axes resting at -1; they become analog buttons 6 and 7.
//
// Parameters:
//   - id: joystick slot
//   - name: mapped gamepad name
//   - state: the polled GLFW gamepad state
//
// Returns:
//   - *input.Sample: the converted sample
func fromGamepadState(id int, name string, state *glfw.GamepadState) *input.Sample {
	pressed := func(b glfw.GamepadButton) input.Button {
		return input.DigitalButton(state.Buttons[b] == glfw.Press)
	}

	s := &input.Sample{
		ID:   id,
		Name: name,
		Axes: []float64{
			common.AxisLeftX:  float64(state.Axes[glfw.AxisLeftX]),
			common.AxisLeftY:  float64(state.Axes[glfw.AxisLeftY]),
			common.AxisRightX: float64(state.Axes[glfw.AxisRightX]),
			common.AxisRightY: float64(state.Axes[glfw.AxisRightY]),
		},
		Buttons: make([]input.Button, common.StandardButtonCount),
	}

	s.Buttons[common.ButtonA] = pressed(glfw.ButtonA)
	s.Buttons[common.ButtonB] = pressed(glfw.ButtonB)
	s.Buttons[common.ButtonX] = pressed(glfw.ButtonX)
	s.Buttons[common.ButtonY] = pressed(glfw.ButtonY)
	s.Buttons[common.ButtonLeftShoulder] = pressed(glfw.ButtonLeftBumper)
	s.Buttons[common.ButtonRightShoulder] = pressed(glfw.ButtonRightBumper)
	s.Buttons[common.ButtonLeftTrigger] = input.AnalogButton(input.TriggerValue(float64(state.Axes[glfw.AxisLeftTrigger])))
	s.Buttons[common.ButtonRightTrigger] = input.AnalogButton(input.TriggerValue(float64(state.Axes[glfw.AxisRightTrigger])))
	s.Buttons[common.ButtonBack] = pressed(glfw.ButtonBack)
	s.Buttons[common.ButtonStart] = pressed(glfw.ButtonStart)
	s.Buttons[common.ButtonLeftStick] = pressed(glfw.ButtonLeftThumb)
	s.Buttons[common.ButtonRightStick] = pressed(glfw.ButtonRightThumb)
	s.Buttons[common.ButtonDpadUp] = pressed(glfw.ButtonDpadUp)
	s.Buttons[common.ButtonDpadDown] = pressed(glfw.ButtonDpadDown)
	s.Buttons[common.ButtonDpadLeft] = pressed(glfw.ButtonDpadLeft)
	s.Buttons[common.ButtonDpadRight] = pressed(glfw.ButtonDpadRight)
	s.Buttons[common.ButtonGuide] = pressed(glfw.ButtonGuide)

	return s
}
