// Copyright (c) 2025, The Tacnet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tacnet

import (
	"fmt"

	"cogentcore.org/lab/tensor"
)

// layer.go contains the algorithm methods: external input application,
// integration of the neuron equations, and spike detection.

func (ly *Layer) Defaults() {
	ly.Izhi.Defaults()
	switch ly.Type {
	case RelayLayer, CortexLayer:
		ly.Izhi.RegularSpiking()
	}
	for _, pt := range ly.RecvPaths {
		pt.Defaults()
	}
}

// UpdateParams updates all params given any changes that might have been made to individual values
// including those in the receiving pathways of this layer.
func (ly *Layer) UpdateParams() {
	ly.Izhi.Update()
	for _, pt := range ly.RecvPaths {
		pt.UpdateParams()
	}
}

// InitActs resets the dynamic state of the layer and its receiving
// pathways: membrane potentials to rest, currents and spike state to
// zero, pending deliveries and traces cleared.  Weights are untouched,
// so calling this between trials constitutes continued learning.
func (ly *Layer) InitActs() {
	for ni := range ly.Neurons {
		nrn := &ly.Neurons[ni]
		nrn.Ge = 0
		nrn.Ext = 0
		nrn.Inet = 0
		ly.Izhi.InitState(&nrn.Vm, &nrn.Rec)
		nrn.Spike = 0
		nrn.SpikeT = -1
		nrn.ClearFlag(NeurHasExt)
	}
	ly.SatCnt = 0
	for _, pt := range ly.RecvPaths {
		pt.InitState()
	}
}

// InitWeights initializes the weight values of all receiving pathways
// and resets their dynamic state.
func (ly *Layer) InitWeights() {
	for _, pt := range ly.RecvPaths {
		if pt.Off {
			continue
		}
		pt.InitWeights(&ly.Network.Rand)
	}
}

// SetExt sets the external input current for the given neuron.
func (ly *Layer) SetExt(ni int, val float32) {
	nrn := &ly.Neurons[ni]
	nrn.Ext = val
	nrn.SetFlag(NeurHasExt)
}

// ClearExt zeros all external input currents.
func (ly *Layer) ClearExt() {
	for ni := range ly.Neurons {
		nrn := &ly.Neurons[ni]
		nrn.Ext = 0
		nrn.ClearFlag(NeurHasExt)
	}
}

// ApplyExt applies external input currents from given tensor,
// which must have the same total length as the layer's shape.
func (ly *Layer) ApplyExt(ext tensor.Tensor) error {
	nn := len(ly.Neurons)
	if ext.Len() != nn {
		return fmt.Errorf("Layer %v ApplyExt: tensor has %d values but layer has %d neurons", ly.Name, ext.Len(), nn)
	}
	for ni := 0; ni < nn; ni++ {
		ly.SetExt(ni, float32(ext.Float1D(ni)))
	}
	return nil
}

// Integrate advances all neuron states by one timestep: sums the input
// current, steps the Izhikevich equations, and detects threshold
// crossings.  A crossing records the spike and resets (Vm, Rec) to
// (C, Rec + D); membrane potentials diverging below the safety floor
// saturate there and are counted in SatCnt.  Synaptic input is
// consumed: Ge is zeroed for the next step's deliveries.
func (ly *Layer) Integrate(ctx *Context) {
	for ni := range ly.Neurons {
		nrn := &ly.Neurons[ni]
		nrn.Spike = 0
		if nrn.IsOff() {
			continue
		}
		nrn.Inet = nrn.Ge + nrn.Ext
		ly.Izhi.Step(&nrn.Vm, &nrn.Rec, nrn.Inet, ctx.TimePerStep)
		if ly.Izhi.Spiked(nrn.Vm) {
			nrn.Spike = 1
			nrn.SpikeT = ctx.Time
			ly.Izhi.Reset(&nrn.Vm, &nrn.Rec)
		} else if ly.Izhi.Floor(&nrn.Vm) {
			ly.SatCnt++
		}
		nrn.Ge = 0
	}
}

// SendSpikes schedules delivery of this step's spikes through all
// sending pathways.  Delays are at least one step, so nothing sent
// here is delivered within the same step.
func (ly *Layer) SendSpikes() {
	for ni := range ly.Neurons {
		if ly.Neurons[ni].Spike == 0 {
			continue
		}
		for _, pt := range ly.SendPaths {
			pt.SendSpike(ni)
		}
	}
}

// DWt stages the STDP weight changes triggered by this step's spikes,
// for all plastic pathways touching this layer's spiking neurons:
// depression on outgoing synapses (this neuron as pre), potentiation
// on incoming ones (this neuron as post).  The pathways apply the
// accumulated changes in WtFromDWt after all layers have staged.
func (ly *Layer) DWt() {
	for ni := range ly.Neurons {
		if ly.Neurons[ni].Spike == 0 {
			continue
		}
		for _, pt := range ly.SendPaths {
			if pt.Off || !pt.Learn.On {
				continue
			}
			pt.DWtPre(ni)
		}
		for _, pt := range ly.RecvPaths {
			if pt.Off || !pt.Learn.On {
				continue
			}
			pt.DWtPost(ni)
		}
	}
}

// NumSpikes returns the number of neurons that spiked this step.
func (ly *Layer) NumSpikes() int {
	n := 0
	for ni := range ly.Neurons {
		if ly.Neurons[ni].Spike > 0 {
			n++
		}
	}
	return n
}
