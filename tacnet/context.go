// Copyright (c) 2025, The Tacnet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tacnet

// tacnet.Context contains the timing state for running a model.
// One step advances all neurons, delivers all due spikes, and applies
// all plasticity updates before the next step begins.
type Context struct {

	// accumulated simulation time (msec) since last reset.
	Time float32

	// step counter within the current run segment, reset by each
	// Run / Resume call.
	Step int

	// total step count; increments continuously from whenever it was
	// last reset.
	StepTot int

	// amount of simulated time per step (msec).
	TimePerStep float32 `def:"1"`
}

// NewContext returns a new Context struct with default parameters
func NewContext() *Context {
	ctx := &Context{}
	ctx.Defaults()
	return ctx
}

// Defaults sets default values
func (ctx *Context) Defaults() {
	ctx.TimePerStep = 1
}

// Reset resets the counters all back to zero
func (ctx *Context) Reset() {
	ctx.Time = 0
	ctx.Step = 0
	ctx.StepTot = 0
	if ctx.TimePerStep == 0 {
		ctx.Defaults()
	}
}

// SegmentStart starts a new run segment (Run or Resume), zeroing the
// within-segment step counter but preserving time and total steps.
func (ctx *Context) SegmentStart() {
	ctx.Step = 0
}

// StepInc increments at the step level
func (ctx *Context) StepInc() {
	ctx.Step++
	ctx.StepTot++
	ctx.Time += ctx.TimePerStep
}
