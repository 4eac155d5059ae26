// Package config defines the on-disk configuration of the table-head kinematics and how it is read
// and watched.
package config

import (
	"math"

	"github.com/pkg/errors"

	"github.com/tablehead/abkins/kinematics"
	"github.com/tablehead/abkins/logging"
	"github.com/tablehead/abkins/utils"
)

// Config describes the configuration of one machine.
type Config struct {
	ConfigFilePath string `json:"-"`

	Name        string            `json:"name,omitempty" jsonschema:"description=machine name used in log output"`
	Calibration CalibrationConfig `json:"calibration"`
	LogLevel    string            `json:"log_level,omitempty" jsonschema:"enum=debug,enum=info,enum=warn,enum=error"`
}

// CalibrationConfig holds the calibration values of a config file. Omitted values keep their
// defaults.
type CalibrationConfig struct {
	PivotLength *float64 `json:"pivot_length,omitempty" jsonschema:"description=distance from the B axis to the spindle nose in mm"`
	YOffset     *float64 `json:"y_pos,omitempty" jsonschema:"description=Y offset from the A axis to the B pivot in mm"`
	ZOffset     *float64 `json:"z_pos,omitempty" jsonschema:"description=Z offset from the A axis to the B pivot in mm"`
	ToolLength  *float64 `json:"tool_length,omitempty" jsonschema:"description=length of the tool beyond the spindle nose in mm"`
}

// Validate returns an error if the config is malformed. Calibration values are not range checked.
func (c *Config) Validate(path string) error {
	if c.Name != "" && !utils.ValidNameRegex.MatchString(c.Name) {
		return errors.Wrap(utils.ErrInvalidName(c.Name), fieldPath(path, "name"))
	}
	if c.LogLevel != "" {
		if _, err := logging.LevelFromString(c.LogLevel); err != nil {
			return errors.Wrap(err, fieldPath(path, "log_level"))
		}
	}
	return nil
}

// Level returns the configured log level, or INFO when none is set.
func (c *Config) Level() logging.Level {
	if c.LogLevel == "" {
		return logging.INFO
	}
	level, err := logging.LevelFromString(c.LogLevel)
	if err != nil {
		return logging.INFO
	}
	return level
}

// CalibrationWithDefaults returns the configured calibration with omitted values taken from
// kinematics.DefaultCalibration.
func (c *Config) CalibrationWithDefaults() kinematics.Calibration {
	cal := kinematics.DefaultCalibration()
	c.Calibration.applyTo(&cal)
	return cal
}

// applyTo overwrites the fields of cal that are set in c.
func (c CalibrationConfig) applyTo(cal *kinematics.Calibration) {
	if v := c.PivotLength; v != nil {
		cal.PivotLength = *v
	}
	if v := c.YOffset; v != nil {
		cal.YOffset = *v
	}
	if v := c.ZOffset; v != nil {
		cal.ZOffset = *v
	}
	if v := c.ToolLength; v != nil {
		cal.ToolLength = *v
	}
}

// changedSince returns the fields set in c that were unset or held a different value in prev.
func (c CalibrationConfig) changedSince(prev CalibrationConfig) CalibrationConfig {
	return CalibrationConfig{
		PivotLength: changedValue(c.PivotLength, prev.PivotLength),
		YOffset:     changedValue(c.YOffset, prev.YOffset),
		ZOffset:     changedValue(c.ZOffset, prev.ZOffset),
		ToolLength:  changedValue(c.ToolLength, prev.ToolLength),
	}
}

func changedValue(cur, prev *float64) *float64 {
	if cur == nil {
		return nil
	}
	if prev != nil && math.Float64bits(*cur) == math.Float64bits(*prev) {
		return nil
	}
	return cur
}

func fieldPath(path, field string) string {
	if path == "" {
		return field
	}
	return path + "." + field
}
