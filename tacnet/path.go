// Copyright (c) 2025, The Tacnet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tacnet

import "cogentcore.org/lab/base/randx"

// path.go contains the algorithm methods: spike scheduling and
// delivery through the delay lines, and the STDP weight updates.

// InitWeights initializes weight values from the WtInit distribution,
// using the given random source, and resets all dynamic pathway state.
func (pt *Path) InitWeights(rnd randx.Rand) {
	for si := range pt.Syns {
		sy := &pt.Syns[si]
		sy.Wt = pt.Learn.ClampWt(float32(pt.WtInit.Gen(rnd)))
		sy.DWt = 0
	}
	pt.InitState()
}

// InitState resets the dynamic state of the pathway: pending spike
// deliveries and STDP traces.  Weights and delays are not touched, so
// calling this between trials constitutes continued learning.
func (pt *Path) InitState() {
	for i := range pt.GBuf {
		pt.GBuf[i] = 0
	}
	pt.GBufPos = 0
	for i := range pt.TrSend {
		pt.TrSend[i] = 0
	}
	for i := range pt.TrRecv {
		pt.TrRecv[i] = 0
	}
	for si := range pt.Syns {
		pt.Syns[si].DWt = 0
	}
}

// SetWtsFunc initializes weights using given function based on
// receiving and sending unit indexes.
func (pt *Path) SetWtsFunc(wtFun func(si, ri int, send, recv *Layer) float32) {
	rlen := pt.Recv.Shape.Len()
	for ri := 0; ri < rlen; ri++ {
		nc := int(pt.RConN[ri])
		st := int(pt.RConIndexSt[ri])
		for ci := 0; ci < nc; ci++ {
			si := int(pt.RConIndex[st+ci])
			rsi := pt.RSynIndex[st+ci]
			sy := &pt.Syns[rsi]
			sy.Wt = pt.Learn.ClampWt(wtFun(si, ri, pt.Send, pt.Recv))
		}
	}
}

// WtFromDWt applies the weight changes staged in DWt by this step's
// spikes, clamping each synapse once to Learn.WtRange.  Staging is
// additive and commutative, so a synapse whose pre and post neurons
// both spiked this step gets one combined update with one clamp, and
// the result cannot depend on layer or pathway processing order.
func (pt *Path) WtFromDWt() {
	if pt.Off || !pt.Learn.On {
		return
	}
	for si := range pt.Syns {
		sy := &pt.Syns[si]
		if sy.DWt != 0 {
			sy.Wt = pt.Learn.ClampWt(sy.Wt + sy.DWt)
			sy.DWt = 0
		}
	}
}

///////////////////////////////////////////////////////////////////////
//  Spike scheduling and delivery

// SendSpike schedules delivery of a spike from sending neuron si:
// for each outgoing synapse, the current weight (scaled by GScale) is
// accumulated into the delay-line slot due Delay steps from now.
// Accumulation is additive, so multiple pending spikes per synapse are
// preserved and same-step deliveries are order-independent.
func (pt *Path) SendSpike(si int) {
	if pt.Off {
		return
	}
	sz := pt.MaxDelay + 1
	nr := len(pt.Recv.Neurons)
	nc := int(pt.SConN[si])
	st := int(pt.SConIndexSt[si])
	for ci := 0; ci < nc; ci++ {
		sy := &pt.Syns[st+ci]
		ri := int(pt.SConIndex[st+ci])
		slot := (pt.GBufPos + int(sy.Delay)) % sz
		pt.GBuf[slot*nr+ri] += pt.GScale * sy.Wt
	}
}

// DeliverGe flushes all spike contributions due exactly this step from
// the delay line into the receiving neurons' Ge.  The slot is zeroed
// for reuse; StepDelay advances the buffer at the end of the step.
func (pt *Path) DeliverGe() {
	if pt.Off {
		return
	}
	rns := pt.Recv.Neurons
	off := pt.GBufPos * len(rns)
	for ri := range rns {
		g := pt.GBuf[off+ri]
		if g != 0 {
			rns[ri].Ge += g
			pt.GBuf[off+ri] = 0
		}
	}
}

// StepDelay advances the delay line by one step.  Called once per step
// after all sends and deliveries for the step are done.
func (pt *Path) StepDelay() {
	pt.GBufPos = (pt.GBufPos + 1) % (pt.MaxDelay + 1)
}

///////////////////////////////////////////////////////////////////////
//  STDP

// DecayTraces decays the pre and post spike traces by one step of dt
// msec.  Runs before this step's weight updates, so each update sees
// the trace decayed by exactly the elapsed time since the last spike.
func (pt *Path) DecayTraces(dt float32) {
	if pt.Off || !pt.Learn.On {
		return
	}
	for si := range pt.TrSend {
		pt.TrSend[si] = pt.Learn.DecayPre(pt.TrSend[si], dt)
	}
	for ri := range pt.TrRecv {
		pt.TrRecv[ri] = pt.Learn.DecayPost(pt.TrRecv[ri], dt)
	}
}

// DWtPre stages the depression updates for a spike of sending neuron
// si this step: for each outgoing synapse, the postsynaptic neuron
// having fired earlier leaves a post trace, and the weight decreases
// in proportion.  Uses traces from before this step's increments, and
// accumulates into DWt for WtFromDWt to apply.
func (pt *Path) DWtPre(si int) {
	nc := int(pt.SConN[si])
	st := int(pt.SConIndexSt[si])
	for ci := 0; ci < nc; ci++ {
		ri := int(pt.SConIndex[st+ci])
		pt.Syns[st+ci].DWt += pt.Learn.Dep(pt.TrRecv[ri])
	}
}

// DWtPost stages the potentiation updates for a spike of receiving
// neuron ri this step: for each incoming synapse, the presynaptic
// neuron having fired earlier leaves a pre trace, and the weight
// increases in proportion.
func (pt *Path) DWtPost(ri int) {
	nc := int(pt.RConN[ri])
	st := int(pt.RConIndexSt[ri])
	for ci := 0; ci < nc; ci++ {
		rsi := int(pt.RSynIndex[st+ci])
		si := int(pt.RConIndex[st+ci])
		pt.Syns[rsi].DWt += pt.Learn.Pot(pt.TrSend[si])
	}
}

// IncrTraces increments the spike traces of neurons that spiked this
// step, by 1 per spike.  Runs after all weight updates for the step.
func (pt *Path) IncrTraces() {
	if pt.Off || !pt.Learn.On {
		return
	}
	sns := pt.Send.Neurons
	for si := range sns {
		if sns[si].Spike > 0 {
			pt.TrSend[si] += 1
		}
	}
	rns := pt.Recv.Neurons
	for ri := range rns {
		if rns[ri].Spike > 0 {
			pt.TrRecv[ri] += 1
		}
	}
}
