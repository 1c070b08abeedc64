// Copyright (c) 2025, The Tacnet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tacnet

import (
	"fmt"
	"log"
	"sync/atomic"
)

// RunStates is the lifecycle state of a Runner.
type RunStates int32

const (
	// Constructed means the runner has not yet run any steps.
	Constructed RunStates = iota

	// Running means a Run or Resume call is currently stepping.
	Running

	// Completed means a run segment finished; Resume can append more steps.
	Completed

	RunStatesN
)

var runStatesNames = []string{"Constructed", "Running", "Completed"}

func (rs RunStates) String() string {
	if rs < 0 || rs >= RunStatesN {
		return "RunStatesInvalid"
	}
	return runStatesNames[rs]
}

// CurrentSource supplies external input current for the neurons of an
// input layer: a pure function of neuron index and time, queried
// synchronously each step, with no suspension inside the loop.
// Implementations must return the same value for the same (ni, t) so
// runs are reproducible.
type CurrentSource interface {
	CurrentAt(ni int, t float32) float32
}

// CurrentFunc adapts a plain function to the CurrentSource interface.
type CurrentFunc func(ni int, t float32) float32

func (f CurrentFunc) CurrentAt(ni int, t float32) float32 { return f(ni, t) }

// Runner drives a network through a fixed number of discrete timesteps,
// applying stimulus input, collecting the spike raster, and supporting
// re-entrant continuation: Resume appends more steps after a completed
// run, reusing the final dynamic state and weights.
type Runner struct {

	// the network being run.
	Net *Network

	// timing state for the run.
	Ctx *Context

	// external input current sources, keyed by input layer name.
	Inputs map[string]CurrentSource

	// the collected spike raster, accumulated across Run and Resume.
	Raster *Raster

	// lifecycle state: Constructed -> Running -> Completed.
	State RunStates `edit:"-"`

	// total steps run across all Run / Resume segments.
	StepsRun int `edit:"-"`

	// saturation count already reported, so each warning is logged once.
	satWarned int

	// set by Stop to terminate after the current step completes.
	stop atomic.Bool
}

// NewRunner returns a new runner for the given built network.
func NewRunner(nt *Network) *Runner {
	rn := &Runner{Net: nt}
	rn.Ctx = NewContext()
	rn.Inputs = make(map[string]CurrentSource)
	rn.Raster = NewRaster(nt)
	return rn
}

// SetInput sets the current source for the given input layer name.
func (rn *Runner) SetInput(layNm string, src CurrentSource) error {
	_, err := rn.Net.LayerByNameTry(layNm)
	if err != nil {
		return err
	}
	rn.Inputs[layNm] = src
	return nil
}

// Stop requests early termination: the loop exits after the step in
// progress completes, leaving all state valid and the raster intact
// (truncated).  Safe to call from another goroutine.
func (rn *Runner) Stop() {
	rn.stop.Store(true)
}

// Run runs the simulation for the given number of steps from the
// constructed state, returning the collected spike raster.
// Use Resume to continue a completed run.
func (rn *Runner) Run(nsteps int) (*Raster, error) {
	switch rn.State {
	case Running:
		return nil, fmt.Errorf("Runner %v: already running", rn.Net.Name)
	case Completed:
		return nil, fmt.Errorf("Runner %v: run completed; use Resume to continue", rn.Net.Name)
	}
	return rn.runSegment(nsteps)
}

// Resume appends more steps to a completed run, reusing the final
// dynamic state and weights, so that a 500-step run followed by
// Resume(100) is identical to a single continuous 600-step run.
func (rn *Runner) Resume(extra int) (*Raster, error) {
	switch rn.State {
	case Running:
		return nil, fmt.Errorf("Runner %v: already running", rn.Net.Name)
	case Constructed:
		return nil, fmt.Errorf("Runner %v: nothing to resume; use Run first", rn.Net.Name)
	}
	return rn.runSegment(extra)
}

func (rn *Runner) runSegment(nsteps int) (*Raster, error) {
	rn.State = Running
	rn.Ctx.SegmentStart()
	for si := 0; si < nsteps; si++ {
		if rn.stop.Load() {
			rn.stop.Store(false)
			break
		}
		rn.ApplyInputs()
		rn.Net.Cycle(rn.Ctx)
		rn.Raster.RecordSpikes(rn.Net, rn.Ctx)
		rn.Ctx.StepInc()
		rn.StepsRun++
	}
	rn.State = Completed
	if sc := rn.Net.SatCount(); sc > rn.satWarned {
		log.Printf("Runner %v: membrane potential saturated at the safety floor %d times: parameters may be numerically unstable\n", rn.Net.Name, sc-rn.satWarned)
		rn.satWarned = sc
	}
	return rn.Raster, nil
}

// ApplyInputs queries each configured current source for this step's
// time and applies the currents to its input layer.  Sources for
// distinct layers are independent, so map iteration order is
// irrelevant to the result.
func (rn *Runner) ApplyInputs() {
	t := rn.Ctx.Time
	for nm, src := range rn.Inputs {
		ly := rn.Net.LayerByName(nm)
		if ly == nil || ly.Off {
			continue
		}
		for ni := range ly.Neurons {
			ly.SetExt(ni, src.CurrentAt(ni, t))
		}
	}
}
