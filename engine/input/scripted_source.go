package input

import (
	"io"
	"sync"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Script is a recorded sequence of polls. Each frame is the sparse device list one
// call to Gamepads returns; a frame with no entries means no gamepad was connected.
type Script struct {
	Frames [][]*Sample `yaml:"frames"`
}

// scriptedSource replays a Script one frame per poll.
type scriptedSource struct {
	mu     *sync.Mutex
	frames [][]*Sample
	next   int
	loop   bool
}

var _ Source = &scriptedSource{}

// NewScriptedSource creates a Source that returns the given frames in order.
// Once exhausted it reports no devices, or restarts from the first frame when looping.
//
// Parameters:
//   - frames: the device lists to replay
//   - options: functional options to configure the source
//
// Returns:
//   - Source: the scripted source
func NewScriptedSource(frames [][]*Sample, options ...ScriptedSourceOption) Source {
	s := &scriptedSource{
		mu:     &sync.Mutex{},
		frames: frames,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// LoadScript decodes a YAML script of recorded frames.
//
// Parameters:
//   - r: reader positioned at the YAML document
//
// Returns:
//   - Script: the decoded script
//   - error: error if the document is not a valid script
func LoadScript(r io.Reader) (Script, error) {
	var script Script
	if err := yaml.NewDecoder(r).Decode(&script); err != nil {
		if errors.Is(err, io.EOF) {
			return Script{}, nil
		}
		return Script{}, errors.Wrap(err, "failed to decode input script")
	}
	return script, nil
}

func (s *scriptedSource) Gamepads() ([]*Sample, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.next >= len(s.frames) {
		if !s.loop || len(s.frames) == 0 {
			return nil, nil
		}
		s.next = 0
	}
	frame := s.frames[s.next]
	s.next++
	return frame, nil
}

func (s *scriptedSource) Close() error {
	return nil
}
