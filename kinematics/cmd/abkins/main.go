// Package main is a command line tool for the A-table/B-head kinematics. It converts between joint
// positions and tool tip poses, lists the tunable parameters and follows a config file while an
// operator tunes the calibration.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
