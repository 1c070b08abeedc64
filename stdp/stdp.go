// Copyright (c) 2025, The Tacnet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package stdp implements trace-based spike-timing-dependent plasticity.

Each neuron carries exponentially decaying spike traces: a presynaptic
trace decaying with TauPlus and a postsynaptic trace decaying with
TauMinus, each incremented by 1 when the neuron spikes.  At a spike:

  - presynaptic spike: Dw = -AMinus * post trace (depression: the
    postsynaptic neuron fired earlier, post-before-pre)
  - postsynaptic spike: Dw = +APlus * pre trace (potentiation:
    pre-before-post)

yielding the standard double-exponential STDP window.  The canonical
asymmetry AMinus * TauMinus ~ APlus * TauPlus keeps total depression
slightly stronger than potentiation, but both sides are fully
caller-configurable.  All weight changes clamp to WtRange.
*/
package stdp

import (
	"fmt"

	"cogentcore.org/core/math32"
	"cogentcore.org/core/math32/minmax"
)

// Params are the STDP learning parameters for one pathway.
type Params struct {

	// enable learning on this pathway: off = a static synapse group
	// whose weights change only by explicit external set.
	On bool

	// amplitude of potentiation per pre-before-post spike pairing.
	APlus float32 `def:"0.01"`

	// amplitude of depression per post-before-pre spike pairing.
	AMinus float32 `def:"0.012"`

	// time constant (msec) of the presynaptic trace decay,
	// setting the width of the potentiation window.
	TauPlus float32 `def:"20"`

	// time constant (msec) of the postsynaptic trace decay,
	// setting the width of the depression window.
	TauMinus float32 `def:"20"`

	// bounds that all weights are clamped to after every update.
	WtRange minmax.F32 `display:"inline"`
}

func (sp *Params) Defaults() {
	sp.On = true
	sp.APlus = 0.01
	sp.AMinus = 0.012
	sp.TauPlus = 20
	sp.TauMinus = 20
	sp.WtRange.Set(0, 1)
	sp.Update()
}

func (sp *Params) Update() {
}

// Validate returns an error for parameter combinations that can never
// be correct: inverted weight bounds or non-positive time constants.
func (sp *Params) Validate() error {
	if sp.WtRange.Min > sp.WtRange.Max {
		return fmt.Errorf("stdp.Params: WtRange.Min %g > WtRange.Max %g", sp.WtRange.Min, sp.WtRange.Max)
	}
	if sp.On && (sp.TauPlus <= 0 || sp.TauMinus <= 0) {
		return fmt.Errorf("stdp.Params: time constants must be > 0: TauPlus %g, TauMinus %g", sp.TauPlus, sp.TauMinus)
	}
	return nil
}

// DecayPre returns the presynaptic trace decayed by dt msec.
func (sp *Params) DecayPre(x, dt float32) float32 {
	return x * math32.FastExp(-dt/sp.TauPlus)
}

// DecayPost returns the postsynaptic trace decayed by dt msec.
func (sp *Params) DecayPost(x, dt float32) float32 {
	return x * math32.FastExp(-dt/sp.TauMinus)
}

// Pot returns the potentiation weight change for a postsynaptic spike,
// given the presynaptic trace.
func (sp *Params) Pot(xPre float32) float32 {
	return sp.APlus * xPre
}

// Dep returns the (negative) depression weight change for a
// presynaptic spike, given the postsynaptic trace.
func (sp *Params) Dep(xPost float32) float32 {
	return -sp.AMinus * xPost
}

// ClampWt returns the weight clamped to WtRange.
func (sp *Params) ClampWt(wt float32) float32 {
	if wt < sp.WtRange.Min {
		return sp.WtRange.Min
	}
	if wt > sp.WtRange.Max {
		return sp.WtRange.Max
	}
	return wt
}
