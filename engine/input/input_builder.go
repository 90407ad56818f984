package input

// ScriptedSourceOption is a functional option for configuring a scripted Source.
type ScriptedSourceOption func(*scriptedSource)

// WithLoop makes the scripted source restart from its first frame once exhausted.
//
// Parameters:
//   - loop: true to replay indefinitely
//
// Returns:
//   - ScriptedSourceOption: option function to apply
func WithLoop(loop bool) ScriptedSourceOption {
	return func(s *scriptedSource) {
		s.loop = loop
	}
}
