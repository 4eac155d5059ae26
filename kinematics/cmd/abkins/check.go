package main

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/tablehead/abkins/kinematics"
)

const (
	flagSamples   = "samples"
	flagSeed      = "seed"
	flagTolerance = "tolerance"
)

// roundTripErrors runs random joint vectors through forward then inverse and returns the absolute
// error per linear axis.
func roundTripErrors(kin kinematics.Kinematics, rnd *rand.Rand, samples int) map[string][]float64 {
	errs := map[string][]float64{
		"X": make([]float64, 0, samples),
		"Y": make([]float64, 0, samples),
		"Z": make([]float64, 0, samples),
	}
	for i := 0; i < samples; i++ {
		var j kinematics.Joints
		j[kinematics.JointX] = rnd.Float64()*2000 - 1000
		j[kinematics.JointY] = rnd.Float64()*2000 - 1000
		j[kinematics.JointZ] = rnd.Float64()*2000 - 1000
		j[kinematics.JointA] = rnd.Float64()*720 - 360
		j[kinematics.JointB] = rnd.Float64()*720 - 360

		back := kin.Inverse(kin.Forward(j))
		errs["X"] = append(errs["X"], math.Abs(back[kinematics.JointX]-j[kinematics.JointX]))
		errs["Y"] = append(errs["Y"], math.Abs(back[kinematics.JointY]-j[kinematics.JointY]))
		errs["Z"] = append(errs["Z"], math.Abs(back[kinematics.JointZ]-j[kinematics.JointZ]))
	}
	return errs
}

func (m *machine) checkAction(c *cli.Context) error {
	samples := c.Int(flagSamples)
	if samples <= 0 {
		return errors.Errorf("--%s must be positive", flagSamples)
	}
	//nolint:gosec
	rnd := rand.New(rand.NewSource(c.Int64(flagSeed)))
	errs := roundTripErrors(m.kin, rnd, samples)

	t := newTable(c.App.Writer)
	t.SetTitle(m.kin.Calibration().String())
	t.AppendHeader(table.Row{"Axis", "Mean", "P99", "Max"})
	var worst float64
	for _, axis := range []string{"X", "Y", "Z"} {
		data := stats.Float64Data(errs[axis])
		mean, err := data.Mean()
		if err != nil {
			return err
		}
		p99, err := data.Percentile(99)
		if err != nil {
			return err
		}
		maxErr, err := data.Max()
		if err != nil {
			return err
		}
		t.AppendRow(table.Row{axis, formatError(mean), formatError(p99), formatError(maxErr)})
		switch {
		case math.IsNaN(worst):
		case math.IsNaN(mean) || math.IsNaN(maxErr):
			worst = math.NaN()
		case maxErr > worst:
			worst = maxErr
		}
	}
	t.Render()

	tolerance := c.Float64(flagTolerance)
	if math.IsNaN(worst) || worst > tolerance {
		return errors.Errorf("round trip error %g exceeds tolerance %g", worst, tolerance)
	}
	m.logger.Debugw("round trip check passed", "samples", samples, "max_error", worst)
	return nil
}

func formatError(v float64) string {
	return fmt.Sprintf("%.3g", v)
}
