// Copyright (c) 2025, The Tacnet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tacnet

import (
	"cogentcore.org/lab/table"
)

// SpikeEvent is one recorded spike: which neuron of which layer fired,
// and when (msec).
type SpikeEvent struct {
	Layer  int32
	Neuron int32
	Time   float32
}

// Raster is the recorded spike raster for a simulation run: the
// ordered sequence of spike events, layer-major within each step.
// It is the primary simulation result, consumed for analysis and
// visualization outside the engine.
type Raster struct {

	// recorded spike events, in emission order.
	Events []SpikeEvent

	// layer names, indexed by the Layer field of the events.
	LayerNames []string
}

// NewRaster returns a new empty raster for the given network,
// capturing its layer names.
func NewRaster(nt *Network) *Raster {
	rr := &Raster{}
	rr.LayerNames = make([]string, len(nt.Layers))
	for li, ly := range nt.Layers {
		rr.LayerNames[li] = ly.Name
	}
	return rr
}

// Reset discards all recorded events.
func (rr *Raster) Reset() {
	rr.Events = rr.Events[:0]
}

// Add records one spike event.
func (rr *Raster) Add(layer, neuron int32, time float32) {
	rr.Events = append(rr.Events, SpikeEvent{Layer: layer, Neuron: neuron, Time: time})
}

// RecordSpikes appends all of this step's spikes across the network,
// in layer then neuron index order.
func (rr *Raster) RecordSpikes(nt *Network, ctx *Context) {
	for li, ly := range nt.Layers {
		if ly.Off {
			continue
		}
		for ni := range ly.Neurons {
			if ly.Neurons[ni].Spike > 0 {
				rr.Add(int32(li), int32(ni), ctx.Time)
			}
		}
	}
}

// NumSpikes returns the total number of recorded spikes.
func (rr *Raster) NumSpikes() int {
	return len(rr.Events)
}

// ForLayer returns the events for the given layer index, in order.
func (rr *Raster) ForLayer(layer int32) []SpikeEvent {
	var evs []SpikeEvent
	for _, ev := range rr.Events {
		if ev.Layer == layer {
			evs = append(evs, ev)
		}
	}
	return evs
}

// Table returns the raster as a table with Layer, Neuron, and Time
// columns, one row per spike, for logging and analysis.
func (rr *Raster) Table() *table.Table {
	dt := table.New()
	lay := dt.AddStringColumn("Layer")
	nrn := dt.AddIntColumn("Neuron")
	tm := dt.AddFloat64Column("Time")
	dt.SetNumRows(len(rr.Events))
	for i, ev := range rr.Events {
		lay.SetString1D(rr.LayerNames[ev.Layer], i)
		nrn.SetInt1D(int(ev.Neuron), i)
		tm.SetFloat1D(float64(ev.Time), i)
	}
	return dt
}
