// Copyright (c) 2025, The Tacnet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tacnet

import (
	"fmt"
	"unsafe"

	"cogentcore.org/core/math32"
)

// tacnet.Synapse holds the state for one synapse, in the
// sender-ordered Syns list on the Path.
// All named variables must be float32 and contiguous.
type Synapse struct {

	// synaptic weight: the current contribution delivered to the
	// receiving neuron when the sending neuron's spike arrives.
	// Bounded to the pathway's Learn.WtRange at all times.
	Wt float32

	// weight change staged by the plasticity rule this step;
	// accumulated across updates, then applied to Wt with a single
	// clamp and cleared at the end of the step.
	DWt float32

	// transmission delay in simulation steps, >= 1, fixed at Build.
	Delay float32
}

var SynapseVars = []string{"Wt", "DWt", "Delay"}

var SynapseVarsMap map[string]int

func init() {
	SynapseVarsMap = make(map[string]int, len(SynapseVars))
	for i, v := range SynapseVars {
		SynapseVarsMap[v] = i
	}
}

func (sy *Synapse) VarNames() []string {
	return SynapseVars
}

// SynapseVarByName returns the index of the variable in the Synapse, or error
func SynapseVarByName(varNm string) (int, error) {
	i, ok := SynapseVarsMap[varNm]
	if !ok {
		return -1, fmt.Errorf("Synapse VarByName: variable name: %v not valid", varNm)
	}
	return i, nil
}

// VarByIndex returns variable using index (0 = first variable in SynapseVars list)
func (sy *Synapse) VarByIndex(idx int) float32 {
	fv := (*float32)(unsafe.Pointer(uintptr(unsafe.Pointer(sy)) + uintptr(4*idx)))
	return *fv
}

// VarByName returns variable by name, or error
func (sy *Synapse) VarByName(varNm string) (float32, error) {
	i, err := SynapseVarByName(varNm)
	if err != nil {
		return math32.NaN(), err
	}
	return sy.VarByIndex(i), nil
}

// SetVarByIndex sets variable using index (0 = first variable in SynapseVars list)
func (sy *Synapse) SetVarByIndex(idx int, val float32) {
	fv := (*float32)(unsafe.Pointer(uintptr(unsafe.Pointer(sy)) + uintptr(4*idx)))
	*fv = val
}
