package kinematics

import (
	"github.com/pkg/errors"
)

// TransformMode reports which transform directions a kinematics module implements.
type TransformMode int

const (
	// ForwardOnly modules can only report poses from joints.
	ForwardOnly TransformMode = iota
	// InverseOnly modules can only compute joints from poses, which some rotary-head machines
	// require when the forward solution is ambiguous.
	InverseOnly
	// Both modules implement forward and inverse transforms.
	Both
)

var transformModeNames = map[TransformMode]string{
	ForwardOnly: "FORWARD_ONLY",
	InverseOnly: "INVERSE_ONLY",
	Both:        "BOTH",
}

// Mode reports the capability of this machine's kinematics. Both directions are exact inverses of
// each other, so both are offered.
func Mode() TransformMode {
	return Both
}

func (m TransformMode) String() string {
	if name, ok := transformModeNames[m]; ok {
		return name
	}
	return "UNKNOWN"
}

// MarshalText implements encoding.TextMarshaler.
func (m TransformMode) MarshalText() ([]byte, error) {
	name, ok := transformModeNames[m]
	if !ok {
		return nil, errors.Errorf("unknown transform mode %d", int(m))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *TransformMode) UnmarshalText(text []byte) error {
	for mode, name := range transformModeNames {
		if name == string(text) {
			*m = mode
			return nil
		}
	}
	return errors.Errorf("unknown transform mode %q", string(text))
}
