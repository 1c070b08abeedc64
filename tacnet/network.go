// Copyright (c) 2025, The Tacnet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package tacnet implements a tactile spiking neural network engine:
layers of Izhikevich neurons connected by delayed synaptic pathways,
with spike-timing-dependent plasticity (STDP) adapting the weights
online.  Execution is single-threaded, synchronous, and deterministic
for a fixed random seed: each step delivers all due spikes, integrates
all neurons, schedules new spikes, and applies all plasticity updates
before the next step begins.
*/
package tacnet

// network.go contains the per-step algorithm orchestration.

func (nt *Network) Defaults() {
	for _, ly := range nt.Layers {
		ly.Defaults()
	}
}

// UpdateParams updates all params given any changes that might have been made to individual values
func (nt *Network) UpdateParams() {
	for _, ly := range nt.Layers {
		ly.UpdateParams()
	}
}

// InitWeights initializes synaptic weights from each pathway's WtInit
// distribution, re-seeding the random source so a fixed RandSeed
// reproduces the same network bit-for-bit.  Also resets all dynamic
// state via InitActs.
func (nt *Network) InitWeights() {
	nt.ResetRandSeed()
	for _, ly := range nt.Layers {
		if ly.Off {
			continue
		}
		ly.InitWeights()
	}
	nt.InitActs()
}

// InitActs resets all dynamic state in the network: membrane
// potentials, currents, spike traces, and pending spike deliveries.
// Weights are untouched, so trials run after this continue learning
// from where the last ones left off.
func (nt *Network) InitActs() {
	for _, ly := range nt.Layers {
		if ly.Off {
			continue
		}
		ly.InitActs()
	}
}

// Cycle runs one simulation step: deliveries due this step, neuron
// integration and spike detection, scheduling of the new spikes, and
// the STDP updates those spikes trigger.  The caller advances the
// Context afterward.  Steps are strictly sequential; within a step,
// every phase completes for all layers before the next phase starts,
// so results do not depend on layer or pathway iteration order.
func (nt *Network) Cycle(ctx *Context) {
	nt.DeliverGe(ctx)
	nt.IntegrateActs(ctx)
	nt.SendSpikes(ctx)
	nt.DWt(ctx)
	nt.StepState(ctx)
}

// DeliverGe flushes all spike contributions due exactly this step from
// the pathway delay lines into the receiving neurons.
func (nt *Network) DeliverGe(ctx *Context) {
	for _, ly := range nt.Layers {
		if ly.Off {
			continue
		}
		for _, pt := range ly.RecvPaths {
			pt.DeliverGe()
		}
	}
}

// IntegrateActs advances all neuron states by one timestep and detects
// threshold crossings.
func (nt *Network) IntegrateActs(ctx *Context) {
	for _, ly := range nt.Layers {
		if ly.Off {
			continue
		}
		ly.Integrate(ctx)
	}
}

// SendSpikes schedules the delivery of this step's spikes through the
// pathway delay lines.
func (nt *Network) SendSpikes(ctx *Context) {
	for _, ly := range nt.Layers {
		if ly.Off {
			continue
		}
		ly.SendSpikes()
	}
}

// DWt applies the STDP updates triggered by this step's spikes.
// Traces are first decayed by the elapsed step, then each spiking
// neuron's synapses stage their weight changes from the decayed trace
// values, the staged changes are applied with one clamp per synapse,
// and finally the spiking neurons' own traces are incremented.  Each
// synapse accumulates its whole update before any clamping, so
// iteration order cannot change the result even at a weight bound.
func (nt *Network) DWt(ctx *Context) {
	for _, ly := range nt.Layers {
		if ly.Off {
			continue
		}
		for _, pt := range ly.RecvPaths {
			pt.DecayTraces(ctx.TimePerStep)
		}
	}
	for _, ly := range nt.Layers {
		if ly.Off {
			continue
		}
		ly.DWt()
	}
	for _, ly := range nt.Layers {
		if ly.Off {
			continue
		}
		for _, pt := range ly.RecvPaths {
			pt.WtFromDWt()
		}
	}
	for _, ly := range nt.Layers {
		if ly.Off {
			continue
		}
		for _, pt := range ly.RecvPaths {
			pt.IncrTraces()
		}
	}
}

// StepState advances the pathway delay lines to the next step.
func (nt *Network) StepState(ctx *Context) {
	for _, ly := range nt.Layers {
		if ly.Off {
			continue
		}
		for _, pt := range ly.RecvPaths {
			pt.StepDelay()
		}
	}
}

// SatCount returns the total number of membrane potential floor
// saturations across all layers since the last InitActs.  Nonzero
// counts indicate numeric instability in the configured parameters;
// the simulation continues, saturating rather than diverging.
func (nt *Network) SatCount() int {
	n := 0
	for _, ly := range nt.Layers {
		n += ly.SatCnt
	}
	return n
}
