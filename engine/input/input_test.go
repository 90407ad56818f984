package input

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstPresent(t *testing.T) {
	a := &Sample{ID: 2}
	b := &Sample{ID: 3}

	assert.Nil(t, FirstPresent(nil))
	assert.Nil(t, FirstPresent([]*Sample{}))
	assert.Nil(t, FirstPresent([]*Sample{nil, nil}))
	assert.Same(t, a, FirstPresent([]*Sample{nil, a, b}))
}

func TestParseBackendType(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want BackendType
	}{
		{"glfw", BackendGLFW},
		{"GLFW", BackendGLFW},
		{" joystick ", BackendJoystick},
		{"scripted", BackendScripted},
	} {
		got, err := ParseBackendType(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
		assert.Equal(t, strings.ToLower(strings.TrimSpace(tc.in)), got.String())
	}

	_, err := ParseBackendType("sdl")
	assert.Error(t, err)
}

func TestSampleIdentity(t *testing.T) {
	assert.Equal(t, "0:Xbox Controller", (&Sample{ID: 0, Name: "Xbox Controller"}).Identity())
}

func TestButtonHelpers(t *testing.T) {
	assert.Equal(t, 1.0, NormalizeAxis(40000, 32767))
	assert.Equal(t, -1.0, NormalizeAxis(-40000, 32767))
	assert.InDelta(t, 0.5, NormalizeAxis(16384, 32767), 1e-4)

	assert.Equal(t, 0.0, TriggerValue(-1))
	assert.Equal(t, 0.5, TriggerValue(0))
	assert.Equal(t, 1.0, TriggerValue(3))

	assert.Equal(t, Button{Value: 0.05}, AnalogButton(0.05))
	assert.Equal(t, Button{Pressed: true, Value: 0.5}, AnalogButton(0.5))
	assert.Equal(t, Button{Pressed: true, Value: 1}, DigitalButton(true))
	assert.Equal(t, Button{}, DigitalButton(false))
}

func TestScriptedSource(t *testing.T) {
	pad := &Sample{ID: 0, Axes: []float64{0, 0, 0, 0}}
	frames := [][]*Sample{{pad}, {}, {nil, pad}}

	t.Run("exhausts", func(t *testing.T) {
		src := NewScriptedSource(frames)
		for _, want := range frames {
			got, err := src.Gamepads()
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
		got, err := src.Gamepads()
		require.NoError(t, err)
		assert.Nil(t, got)
		assert.NoError(t, src.Close())
	})

	t.Run("loops", func(t *testing.T) {
		src := NewScriptedSource(frames, WithLoop(true))
		for range frames {
			_, err := src.Gamepads()
			require.NoError(t, err)
		}
		got, err := src.Gamepads()
		require.NoError(t, err)
		assert.Equal(t, frames[0], got)
	})
}

func TestLoadScript(t *testing.T) {
	doc := `
frames:
  - []
  - - id: 0
      name: pad
      axes: [0.5, 0, 0, 0]
      buttons:
        - {pressed: false, value: 0}
        - {pressed: true, value: 1}
`
	script, err := LoadScript(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, script.Frames, 2)
	assert.Empty(t, script.Frames[0])
	require.Len(t, script.Frames[1], 1)
	assert.Equal(t, "pad", script.Frames[1][0].Name)
	assert.Equal(t, []float64{0.5, 0, 0, 0}, script.Frames[1][0].Axes)
	assert.True(t, script.Frames[1][0].Buttons[1].Pressed)

	empty, err := LoadScript(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, empty.Frames)

	_, err = LoadScript(strings.NewReader("frames: {not: a list}"))
	assert.Error(t, err)
}
