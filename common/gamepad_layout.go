package common

// Axis indices of the W3C "standard" gamepad layout.
// Reference: https://w3c.github.io/gamepad/#remapping
const (
	AxisLeftX  = 0
	AxisLeftY  = 1
	AxisRightX = 2
	AxisRightY = 3

	// StandardAxisCount is the number of axes a standard dual-stick gamepad reports.
	StandardAxisCount = 4
)

// Button indices of the W3C "standard" gamepad layout.
const (
	ButtonA             = 0
	ButtonB             = 1
	ButtonX             = 2
	ButtonY             = 3
	ButtonLeftShoulder  = 4
	ButtonRightShoulder = 5
	ButtonLeftTrigger   = 6
	ButtonRightTrigger  = 7
	ButtonBack          = 8
	ButtonStart         = 9
	ButtonLeftStick     = 10
	ButtonRightStick    = 11
	ButtonDpadUp        = 12
	ButtonDpadDown      = 13
	ButtonDpadLeft      = 14
	ButtonDpadRight     = 15
	ButtonGuide         = 16

	// StandardButtonCount is the number of buttons in the standard layout.
	StandardButtonCount = 17
)
