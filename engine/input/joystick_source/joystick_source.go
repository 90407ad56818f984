package joystick_source

import (
	"github.com/0xcafed00d/joystick"
	"github.com/pkg/errors"

	"github.com/Carmen-Shannon/oxy-gamepad/common"
	"github.com/Carmen-Shannon/oxy-gamepad/engine/input"
)

// Raw axis indices reported by the Linux xpad driver for Xbox-style controllers.
const (
	xpadAxisLeftX = iota
	xpadAxisLeftY
	xpadAxisLeftTrigger
	xpadAxisRightX
	xpadAxisRightY
	xpadAxisRightTrigger

	xpadAxisCount
)

// Raw button bits reported by the xpad driver, in standard layout order where one exists.
var xpadButtons = map[int]int{
	common.ButtonA:             0,
	common.ButtonB:             1,
	common.ButtonX:             2,
	common.ButtonY:             3,
	common.ButtonLeftShoulder:  4,
	common.ButtonRightShoulder: 5,
	common.ButtonBack:          6,
	common.ButtonStart:         7,
	common.ButtonGuide:         8,
	common.ButtonLeftStick:     9,
	common.ButtonRightStick:    10,
}

// joystickAxisLimit is the magnitude of a fully deflected Linux joystick axis.
const joystickAxisLimit = 32767

// joystickSource reads a single device through the Linux joystick API.
type joystickSource struct {
	id int
	js joystick.Joystick
}

var _ input.Source = &joystickSource{}

// NewSource opens /dev/input/js<id> and returns a Source reporting it in slot 0.
//
// Parameters:
//   - id: the joystick device number
//
// Returns:
//   - input.Source: the joystick-backed source
//   - error: error if the device could not be opened
func NewSource(id int) (input.Source, error) {
	js, err := joystick.Open(id)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open joystick %d", id)
	}
	return &joystickSource{id: id, js: js}, nil
}

func (s *joystickSource) Gamepads() ([]*input.Sample, error) {
	state, err := s.js.Read()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read joystick %d", s.id)
	}
	return []*input.Sample{fromJoystickState(s.id, s.js.Name(), state)}, nil
}

func (s *joystickSource) Close() error {
	s.js.Close()
	return nil
}

// fromJoystickState converts an xpad-layout joystick reading into the standard layout.
// Devices reporting fewer than six axes yield a sample with only the axes they have,
// which the camera transform rejects as malformed.
//
// Parameters:
//   - id: joystick device number
//   - name: device name
//   - state: the raw joystick state
//
// Returns:
//   - *input.Sample: the converted sample
func fromJoystickState(id int, name string, state joystick.State) *input.Sample {
	s := &input.Sample{ID: id, Name: name}

	if len(state.AxisData) < xpadAxisCount {
		for _, v := range state.AxisData {
			s.Axes = append(s.Axes, input.NormalizeAxis(v, joystickAxisLimit))
		}
		return s
	}

	s.Axes = []float64{
		common.AxisLeftX:  input.NormalizeAxis(state.AxisData[xpadAxisLeftX], joystickAxisLimit),
		common.AxisLeftY:  input.NormalizeAxis(state.AxisData[xpadAxisLeftY], joystickAxisLimit),
		common.AxisRightX: input.NormalizeAxis(state.AxisData[xpadAxisRightX], joystickAxisLimit),
		common.AxisRightY: input.NormalizeAxis(state.AxisData[xpadAxisRightY], joystickAxisLimit),
	}

	s.Buttons = make([]input.Button, common.StandardButtonCount)
	for std, bit := range xpadButtons {
		s.Buttons[std] = input.DigitalButton(state.Buttons&(1<<uint32(bit)) != 0)
	}
	s.Buttons[common.ButtonLeftTrigger] = input.AnalogButton(input.TriggerValue(input.NormalizeAxis(state.AxisData[xpadAxisLeftTrigger], joystickAxisLimit)))
	s.Buttons[common.ButtonRightTrigger] = input.AnalogButton(input.TriggerValue(input.NormalizeAxis(state.AxisData[xpadAxisRightTrigger], joystickAxisLimit)))

	return s
}
