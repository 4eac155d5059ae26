package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/golang/geo/r3"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/tablehead/abkins/config"
	"github.com/tablehead/abkins/kinematics"
	"github.com/tablehead/abkins/logging"
	"github.com/tablehead/abkins/params"
	"github.com/tablehead/abkins/referenceframe"
	"github.com/tablehead/abkins/spatialmath"
	"github.com/tablehead/abkins/utils"
)

const (
	flagConfig  = "config"
	flagDebug   = "debug"
	flagSet     = "set"
	flagName    = "name"
	flagLogFile = "log-file"
)

// machine is the state shared by the commands once the global flags are processed.
type machine struct {
	logger   logging.Logger
	logFile  *logging.FileAppender
	cfg      *config.Config
	store    *kinematics.CalibrationStore
	registry *params.Registry
	kin      *kinematics.TableHead
}

func newApp(out, errOut io.Writer) *cli.App {
	m := &machine{}
	return &cli.App{
		Name:            "abkins",
		Usage:           "A-table/B-head machine kinematics",
		HideHelpCommand: true,
		Writer:          out,
		ErrWriter:       errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagConfig,
				Aliases: []string{"c"},
				Usage:   "load calibration from `FILE`",
			},
			&cli.BoolFlag{
				Name:  flagDebug,
				Usage: "enable debug logging",
			},
			&cli.StringSliceFlag{
				Name:  flagSet,
				Usage: "override a parameter, as `NAME=VALUE`; may be repeated",
			},
			&cli.PathFlag{
				Name:  flagLogFile,
				Usage: "also write logs to `FILE`, rotated every 10MB",
			},
		},
		Before: m.setup,
		After: func(c *cli.Context) error {
			if m.logger != nil {
				//nolint:errcheck
				_ = m.logger.Sync()
			}
			if m.logFile != nil {
				return m.logFile.Close()
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "forward",
				Usage:     "compute the tool tip pose from joint positions",
				ArgsUsage: "X Y Z [A B C U V W]",
				Action:    m.forwardAction,
			},
			{
				Name:      "inverse",
				Usage:     "compute joint positions from a tool tip pose",
				ArgsUsage: "X Y Z A B [C U V W]",
				Action:    m.inverseAction,
			},
			{
				Name:      "frame",
				Usage:     "show the tool tip position and tool orientation for joint positions",
				ArgsUsage: "X Y Z [A B C U V W]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  flagName,
						Value: "machine",
						Usage: "frame name",
					},
				},
				Action: m.frameAction,
			},
			{
				Name:  "check",
				Usage: "run random joint positions through both transforms and report the round trip error",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  flagSamples,
						Value: 10000,
						Usage: "number of random joint positions",
					},
					&cli.Int64Flag{
						Name:  flagSeed,
						Value: 1,
						Usage: "random seed",
					},
					&cli.Float64Flag{
						Name:  flagTolerance,
						Value: 1e-6,
						Usage: "largest accepted error in mm",
					},
				},
				Action: m.checkAction,
			},
			{
				Name:   "mode",
				Usage:  "print which transform directions are supported",
				Action: m.modeAction,
			},
			{
				Name:   "params",
				Usage:  "list the tunable parameters",
				Action: m.paramsAction,
			},
			{
				Name:   "schema",
				Usage:  "print the JSON schema of the config file",
				Action: schemaAction,
			},
			{
				Name:   "watch",
				Usage:  "follow the config file and publish every calibration change until interrupted",
				Action: m.watchAction,
			},
		},
	}
}

func (m *machine) setup(c *cli.Context) error {
	if c.Bool(flagDebug) {
		logging.GlobalLogLevel.SetLevel(zap.DebugLevel)
		m.logger = logging.NewDebugLogger("abkins")
	} else {
		m.logger = logging.NewLogger("abkins")
	}
	if path := c.Path(flagLogFile); path != "" {
		m.logFile = logging.NewFileAppender(path, 10, 3)
		m.logger.AddAppender(m.logFile)
	}
	logging.ReplaceGlobal(m.logger)

	cal := kinematics.DefaultCalibration()
	if path := c.String(flagConfig); path != "" {
		cfg, err := config.Read(c.Context, path, m.logger)
		if err != nil {
			return errors.Wrapf(err, "cannot read config %q", path)
		}
		if !c.Bool(flagDebug) {
			m.logger.SetLevel(cfg.Level())
		}
		if cfg.Name != "" {
			m.logger = m.logger.Sublogger(cfg.Name)
		}
		m.cfg = cfg
		cal = cfg.CalibrationWithDefaults()
	}

	m.store = kinematics.NewCalibrationStore(cal)
	m.registry = params.NewRegistry(m.store, m.logger.Sublogger("params"))
	m.kin = kinematics.NewTableHead(m.store)

	overrides := make(map[string]float64)
	for _, assignment := range c.StringSlice(flagSet) {
		name, value, err := params.ParseAssignment(assignment)
		if err != nil {
			return err
		}
		overrides[name] = value
	}
	if len(overrides) > 0 {
		if err := m.registry.Apply(overrides); err != nil {
			return err
		}
	}
	m.logger.Debugw("calibration", "value", m.store.Snapshot().String())
	return nil
}

func parseFloats(args cli.Args, minCount int) ([]float64, error) {
	if args.Len() < minCount || args.Len() > kinematics.NumJoints {
		return nil, errors.Errorf("expected between %d and %d values, got %d", minCount, kinematics.NumJoints, args.Len())
	}
	values := make([]float64, 0, args.Len())
	for _, arg := range args.Slice() {
		v, err := cast.ToFloat64E(arg)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid value %q", arg)
		}
		values = append(values, v)
	}
	return values, nil
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

func formatValue(v float64) string {
	return fmt.Sprintf("%.6f", v)
}

func (m *machine) forwardAction(c *cli.Context) error {
	values, err := parseFloats(c.Args(), 3)
	if err != nil {
		return err
	}
	joints := kinematics.JointsFromSlice(values)
	pose := m.kin.Forward(joints)

	t := newTable(c.App.Writer)
	t.AppendHeader(table.Row{"Axis", "Joint", "Pose"})
	poseValues := pose.Array()
	for i, name := range kinematics.AxisNames() {
		t.AppendRow(table.Row{name, formatValue(joints[i]), formatValue(poseValues[i])})
	}
	t.Render()
	return nil
}

func (m *machine) inverseAction(c *cli.Context) error {
	values, err := parseFloats(c.Args(), 5)
	if err != nil {
		return err
	}
	var arr [kinematics.NumJoints]float64
	copy(arr[:], values)
	pose := kinematics.PoseFromArray(arr)
	joints := m.kin.Inverse(pose)

	t := newTable(c.App.Writer)
	t.AppendHeader(table.Row{"Axis", "Pose", "Joint"})
	for i, name := range kinematics.AxisNames() {
		t.AppendRow(table.Row{name, formatValue(arr[i]), formatValue(joints[i])})
	}
	t.Render()
	return nil
}

func (m *machine) frameAction(c *cli.Context) error {
	values, err := parseFloats(c.Args(), 3)
	if err != nil {
		return err
	}
	joints := kinematics.JointsFromSlice(values)
	inputs := make([]referenceframe.Input, kinematics.NumJoints)
	for i, v := range joints {
		switch i {
		case kinematics.JointA, kinematics.JointB, kinematics.JointC:
			inputs[i] = referenceframe.Input{Value: utils.DegToRad(v)}
		default:
			inputs[i] = referenceframe.Input{Value: v}
		}
	}

	frame := referenceframe.NewTableHeadFrame(c.String(flagName), m.kin)
	pose, err := frame.Transform(inputs)
	if err != nil {
		return err
	}
	pt := pose.Point()
	aa := pose.Orientation().AxisAngles()
	axis := spatialmath.RotatePoint(pose.Orientation(), r3.Vector{Z: 1})

	t := newTable(c.App.Writer)
	t.SetTitle(frame.Name())
	t.AppendHeader(table.Row{"", "X", "Y", "Z"})
	t.AppendRow(table.Row{"tip", formatValue(pt.X), formatValue(pt.Y), formatValue(pt.Z)})
	t.AppendRow(table.Row{"tool axis", formatValue(axis.X), formatValue(axis.Y), formatValue(axis.Z)})
	t.AppendRow(table.Row{"rotation axis", formatValue(aa.RX), formatValue(aa.RY), formatValue(aa.RZ)})
	t.AppendFooter(table.Row{"rotation", fmt.Sprintf("%.6f deg", utils.RadToDeg(aa.Theta)), "", ""})
	t.Render()
	return nil
}

func (m *machine) modeAction(c *cli.Context) error {
	_, err := fmt.Fprintln(c.App.Writer, m.kin.Mode())
	return err
}

func (m *machine) paramsAction(c *cli.Context) error {
	t := newTable(c.App.Writer)
	t.AppendHeader(table.Row{"Name", "Access", "Default", "Value", "Usage"})
	for _, d := range m.registry.Descriptors() {
		value := "(write-only)"
		if v, err := m.registry.Get(d.Name); err == nil {
			value = formatValue(v)
		}
		t.AppendRow(table.Row{d.FullName(), d.Access, formatValue(d.Default), value, d.Usage})
	}
	t.Render()
	return nil
}

func schemaAction(c *cli.Context) error {
	out, err := json.MarshalIndent(config.Schema(), "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.App.Writer, string(out))
	return err
}

func (m *machine) watchAction(c *cli.Context) error {
	if m.cfg == nil {
		return errors.New("watch requires --config")
	}
	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return m.watch(ctx)
}

func (m *machine) watch(ctx context.Context) error {
	w, err := config.NewWatcher(m.cfg.ConfigFilePath, m.store, m.logger.Sublogger("watcher"))
	if err != nil {
		return err
	}
	w.Start(ctx)
	m.logger.Infow("watching config", "path", m.cfg.ConfigFilePath, "calibration", m.store.Snapshot().String())
	<-ctx.Done()
	m.logger.Infow("stopped watching config", "reloads", w.Reloads())
	return w.Close()
}
