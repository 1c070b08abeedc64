// Copyright (c) 2025, The Tacnet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tacnet

import (
	"fmt"
	"unsafe"

	"cogentcore.org/core/math32"
)

// NeuronVarStart is the byte offset of fields in the Neuron structure
// where the float32 named variables start.
// Note: all non-float32 infrastructure variables must be at the start!
const NeuronVarStart = 4

// tacnet.Neuron holds all of the neuron (unit) level state for the
// Izhikevich spiking model.  Model parameters live on the Layer
// (Layer.Izhi) and are shared by all of its neurons.
// All named variables must be float32 and contiguous, after Flags.
type Neuron struct {

	// bit flags for binary state variables
	Flags NeurFlags

	// total synaptic input current delivered this step by the
	// delay lines of all receiving pathways.
	Ge float32

	// external injected current (from the stimulus encoder for
	// input-layer neurons).
	Ext float32

	// total input current used for this step's integration: Ge + Ext.
	Inet float32

	// membrane potential (mV).
	Vm float32

	// recovery variable of the Izhikevich model (the canonical u).
	Rec float32

	// whether the neuron spiked this step (0 or 1).
	Spike float32

	// time of the last spike (msec), -1 if it never spiked.
	SpikeT float32
}

var NeuronVars = []string{"Ge", "Ext", "Inet", "Vm", "Rec", "Spike", "SpikeT"}

var NeuronVarsMap map[string]int

func init() {
	NeuronVarsMap = make(map[string]int, len(NeuronVars))
	for i, v := range NeuronVars {
		NeuronVarsMap[v] = i
	}
}

func (nrn *Neuron) VarNames() []string {
	return NeuronVars
}

// NeuronVarIndexByName returns the index of the variable in the Neuron, or error
func NeuronVarIndexByName(varNm string) (int, error) {
	i, ok := NeuronVarsMap[varNm]
	if !ok {
		return -1, fmt.Errorf("Neuron VarByName: variable name: %v not valid", varNm)
	}
	return i, nil
}

// VarByIndex returns variable using index (0 = first variable in NeuronVars list)
func (nrn *Neuron) VarByIndex(idx int) float32 {
	fv := (*float32)(unsafe.Pointer(uintptr(unsafe.Pointer(nrn)) + uintptr(NeuronVarStart+4*idx)))
	return *fv
}

// VarByName returns variable by name, or error
func (nrn *Neuron) VarByName(varNm string) (float32, error) {
	i, err := NeuronVarIndexByName(varNm)
	if err != nil {
		return math32.NaN(), err
	}
	return nrn.VarByIndex(i), nil
}

func (nrn *Neuron) HasFlag(f NeurFlags) bool {
	return nrn.Flags&f != 0
}

func (nrn *Neuron) SetFlag(f NeurFlags) {
	nrn.Flags |= f
}

func (nrn *Neuron) ClearFlag(f NeurFlags) {
	nrn.Flags &^= f
}

// IsOff returns true if the neuron has been turned off (lesioned)
func (nrn *Neuron) IsOff() bool {
	return nrn.HasFlag(NeurOff)
}

// NeurFlags are bit-flags encoding relevant binary state for neurons
type NeurFlags int32

const (
	// NeurOff flag indicates that this neuron has been turned off (i.e., lesioned)
	NeurOff NeurFlags = 1 << iota

	// NeurHasExt means the neuron has external input in its Ext field
	NeurHasExt
)
