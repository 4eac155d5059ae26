package referenceframe

import "github.com/pkg/errors"

// NewIncorrectDoFError returns an error indicating that the length of an input slice does not match the DoF of the frame.
func NewIncorrectDoFError(actual, expected int) error {
	return errors.Errorf("number of inputs does not match frame DoF, expected %d but got %d", expected, actual)
}

// NewNilPoseError returns an error indicating that a nil pose was given where one is required.
func NewNilPoseError() error {
	return errors.New("pose is not allowed to be nil")
}

func errUnsupportedFrame(frame Frame) error {
	return errors.Errorf("frame %q of type %T cannot be inverted", frame.Name(), frame)
}
