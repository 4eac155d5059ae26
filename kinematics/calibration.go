package kinematics

import (
	"fmt"

	"go.uber.org/atomic"
)

// Default calibration of the reference machine, in millimeters.
const (
	DefaultPivotLength = 60.3756
	DefaultYOffset     = 76.5552
	DefaultZOffset     = -71.0565
	DefaultToolLength  = 0.0
)

// Calibration holds the geometric offsets that tie the kinematic equations to a physical machine.
// All values are lengths in the machine's linear unit. No value is rejected.
type Calibration struct {
	// PivotLength is the distance between the B axis pivot and the spindle reference point.
	PivotLength float64 `json:"pivot_length"`
	// YOffset and ZOffset locate the rotary axis intersection in machine coordinates.
	YOffset float64 `json:"y_pos"`
	ZOffset float64 `json:"z_pos"`
	// ToolLength is the distance from the spindle reference point to the tool tip.
	ToolLength float64 `json:"tool_length"`
}

// DefaultCalibration returns the startup calibration of the reference machine.
func DefaultCalibration() Calibration {
	return Calibration{
		PivotLength: DefaultPivotLength,
		YOffset:     DefaultYOffset,
		ZOffset:     DefaultZOffset,
		ToolLength:  DefaultToolLength,
	}
}

// headOffset is the tool tip position along the spindle axis when both rotary axes are at zero.
func (c Calibration) headOffset() float64 {
	return -c.PivotLength - c.ToolLength
}

func (c Calibration) String() string {
	return fmt.Sprintf("pivot_length=%g y_pos=%g z_pos=%g tool_length=%g",
		c.PivotLength, c.YOffset, c.ZOffset, c.ToolLength)
}

// CalibrationStore holds the live calibration shared between the transforms and the tuning
// interface. Readers always observe a complete snapshot: writers publish a new immutable value
// instead of mutating fields in place, so a transform can never see half of an update.
type CalibrationStore struct {
	current *atomic.Pointer[Calibration]
}

// NewCalibrationStore returns a store seeded with the given calibration.
func NewCalibrationStore(initial Calibration) *CalibrationStore {
	return &CalibrationStore{current: atomic.NewPointer(&initial)}
}

// Snapshot returns a consistent copy of the current calibration.
func (s *CalibrationStore) Snapshot() Calibration {
	return *s.current.Load()
}

// Store replaces the whole calibration.
func (s *CalibrationStore) Store(c Calibration) {
	s.current.Store(&c)
}

// Update applies fn to a copy of the current calibration and publishes the result. Concurrent
// updates are retried so that no write is lost.
func (s *CalibrationStore) Update(fn func(c *Calibration)) Calibration {
	for {
		old := s.current.Load()
		next := *old
		fn(&next)
		if s.current.CompareAndSwap(old, &next) {
			return next
		}
	}
}
