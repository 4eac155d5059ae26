// Package params exposes the machine calibration as named, host-tunable parameters.
package params

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"go.uber.org/multierr"

	"github.com/tablehead/abkins/kinematics"
	"github.com/tablehead/abkins/logging"
)

// HostPrefix namespaces the parameters among the other parameters of the host.
const HostPrefix = "a_table_b_head_kins."

// Access describes what an operator may do with a parameter.
type Access int

const (
	// ReadWrite parameters can be read back and changed.
	ReadWrite Access = iota
	// WriteOnly parameters can only be changed.
	WriteOnly
)

func (a Access) String() string {
	switch a {
	case ReadWrite:
		return "rw"
	case WriteOnly:
		return "w"
	default:
		return "unknown"
	}
}

// Descriptor describes one tunable parameter.
type Descriptor struct {
	Name    string
	Access  Access
	Default float64
	Usage   string
}

// FullName returns the name of the parameter in the host namespace.
func (d Descriptor) FullName() string {
	return HostPrefix + d.Name
}

type field struct {
	Descriptor
	get func(c kinematics.Calibration) float64
	set func(c *kinematics.Calibration, v float64)
}

var fields = []field{
	{
		Descriptor: Descriptor{"pivot-length", ReadWrite, kinematics.DefaultPivotLength, "distance from the B axis to the spindle nose in mm"},
		get:        func(c kinematics.Calibration) float64 { return c.PivotLength },
		set:        func(c *kinematics.Calibration, v float64) { c.PivotLength = v },
	},
	{
		Descriptor: Descriptor{"y-pos", ReadWrite, kinematics.DefaultYOffset, "Y offset from the A axis to the B pivot in mm"},
		get:        func(c kinematics.Calibration) float64 { return c.YOffset },
		set:        func(c *kinematics.Calibration, v float64) { c.YOffset = v },
	},
	{
		Descriptor: Descriptor{"z-pos", ReadWrite, kinematics.DefaultZOffset, "Z offset from the A axis to the B pivot in mm"},
		get:        func(c kinematics.Calibration) float64 { return c.ZOffset },
		set:        func(c *kinematics.Calibration, v float64) { c.ZOffset = v },
	},
	{
		Descriptor: Descriptor{"tool-length", WriteOnly, kinematics.DefaultToolLength, "length of the tool beyond the spindle nose in mm"},
		get:        func(c kinematics.Calibration) float64 { return c.ToolLength },
		set:        func(c *kinematics.Calibration, v float64) { c.ToolLength = v },
	},
}

// ErrWriteOnly is returned when reading a parameter that can only be written.
var ErrWriteOnly = errors.New("parameter is write-only")

// NewUnknownParameterError returns an error for a parameter name that is not registered.
func NewUnknownParameterError(name string) error {
	return errors.Errorf("unknown parameter %q", name)
}

// Registry reads and writes parameters through a calibration store. Values are not validated: NaN,
// infinities and physically meaningless lengths are stored as given.
type Registry struct {
	store  *kinematics.CalibrationStore
	logger logging.Logger
	byName map[string]*field
}

// NewRegistry returns a registry bound to store.
func NewRegistry(store *kinematics.CalibrationStore, logger logging.Logger) *Registry {
	byName := make(map[string]*field, len(fields))
	for i := range fields {
		byName[fields[i].Name] = &fields[i]
	}
	return &Registry{store: store, logger: logger, byName: byName}
}

func (r *Registry) lookup(name string) (*field, error) {
	f, ok := r.byName[strings.TrimPrefix(name, HostPrefix)]
	if !ok {
		return nil, NewUnknownParameterError(name)
	}
	return f, nil
}

// Descriptors returns every parameter in a stable order.
func (r *Registry) Descriptors() []Descriptor {
	out := make([]Descriptor, 0, len(fields))
	for _, f := range fields {
		out = append(out, f.Descriptor)
	}
	return out
}

// Get returns the current value of a readable parameter. Names may carry HostPrefix.
func (r *Registry) Get(name string) (float64, error) {
	f, err := r.lookup(name)
	if err != nil {
		return 0, err
	}
	if f.Access == WriteOnly {
		return 0, errors.Wrap(ErrWriteOnly, f.Name)
	}
	return f.get(r.store.Snapshot()), nil
}

// Set changes one parameter. The change applies to transforms that start after it.
func (r *Registry) Set(name string, value float64) error {
	f, err := r.lookup(name)
	if err != nil {
		return err
	}
	var old float64
	r.store.Update(func(c *kinematics.Calibration) {
		old = f.get(*c)
		f.set(c, value)
	})
	r.logger.Debugw("set parameter", "name", f.FullName(), "old", old, "new", value)
	return nil
}

// Apply sets several parameters at once. If any name is unknown nothing is changed and every
// unknown name is reported. The accepted values are published as a single calibration.
func (r *Registry) Apply(values map[string]float64) error {
	resolved := make(map[*field]float64, len(values))
	var errs error
	for name, v := range values {
		f, err := r.lookup(name)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		resolved[f] = v
	}
	if errs != nil {
		return errs
	}

	var before kinematics.Calibration
	after := r.store.Update(func(c *kinematics.Calibration) {
		before = *c
		for f, v := range resolved {
			f.set(c, v)
		}
	})
	for f := range resolved {
		r.logger.Debugw("set parameter", "name", f.FullName(), "old", f.get(before), "new", f.get(after))
	}
	return nil
}

// ParseAssignment parses operator input of the form name=value.
func ParseAssignment(s string) (string, float64, error) {
	name, raw, ok := strings.Cut(s, "=")
	if !ok {
		return "", 0, errors.Errorf("expected name=value, got %q", s)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", 0, errors.Errorf("missing parameter name in %q", s)
	}
	value, err := cast.ToFloat64E(strings.TrimSpace(raw))
	if err != nil {
		return "", 0, errors.Wrapf(err, "invalid value for %s", name)
	}
	return name, value, nil
}
