// Copyright (c) 2025, The Tacnet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tacnet

import (
	"errors"
	"fmt"

	"cogentcore.org/core/math32"
	"cogentcore.org/lab/tensor"

	"github.com/somato/tacnet/izhi"
)

// note: layer.go contains algorithm methods; layerbase.go has infrastructure.

// Layer implements one layer of the tactile network: a population of
// Izhikevich neurons sharing role, shape, and model parameters.
type Layer struct {

	// our parent network, in case we need to use it to
	// find other layers etc; set when added by network.
	Network *Network `copier:"-" json:"-" display:"-"`

	// name of the layer, which must be unique within the network.
	Name string

	// optional additional class(es) for parameter styling, space separated.
	Class string

	// inactivate this layer: no building, no computation.
	Off bool

	// shape of the layer, either 1D or 2D (e.g., a 2D grid for
	// mechanoreceptors mirroring spatial stimulus location).
	Shape tensor.Shape

	// role of the layer in the tactile hierarchy.
	Type LayerTypes

	// index of this layer in the network's list of layers.
	Index int `edit:"-"`

	// Izhikevich neuron model parameters, shared by all neurons in
	// the layer and immutable once the run starts.
	Izhi izhi.Params `display:"add-fields"`

	// list of receiving pathways into this layer from other layers.
	RecvPaths []*Path

	// list of sending pathways from this layer to other layers.
	SendPaths []*Path

	// slice of neurons for this layer, as a flat list of len = Shape.Len().
	// Must iterate over index and use pointer to modify values.
	Neurons []Neuron

	// number of times any neuron's membrane potential saturated at
	// the safety floor since the last InitActs: numeric instability
	// indicator, counted rather than silently ignored.
	SatCnt int `edit:"-"`
}

func (ly *Layer) TypeName() string { return ly.Type.String() }
func (ly *Layer) NumUnits() int    { return len(ly.Neurons) }

// AddClass adds a CSS-style class name for this layer,
// for parameter styling, space separated from any existing.
func (ly *Layer) AddClass(cls string) *Layer {
	if ly.Class == "" {
		ly.Class = cls
	} else {
		ly.Class += " " + cls
	}
	return ly
}

// SetShape sets the layer shape, which must be 1D or 2D.
func (ly *Layer) SetShape(shape []int) {
	ly.Shape.SetShapeSizes(shape...)
}

// Is2D returns true if the layer shape is 2D.
func (ly *Layer) Is2D() bool { return ly.Shape.NumDims() == 2 }

// Pos2D returns the 2D (row, col) position of the given flat neuron
// index, or (0, idx) for 1D layers.
func (ly *Layer) Pos2D(idx int) (row, col int) {
	if !ly.Is2D() {
		return 0, idx
	}
	nc := ly.Shape.DimSize(1)
	return idx / nc, idx % nc
}

// RecvPathBySendName returns the receiving pathway from the layer of
// the given name, or error if not found.
func (ly *Layer) RecvPathBySendName(sender string) (*Path, error) {
	for _, pt := range ly.RecvPaths {
		if pt.Send.Name == sender {
			return pt, nil
		}
	}
	return nil, fmt.Errorf("sending layer: %v not found in list of receiving pathways of layer %v", sender, ly.Name)
}

// SendPathByRecvName returns the sending pathway to the layer of the
// given name, or error if not found.
func (ly *Layer) SendPathByRecvName(recv string) (*Path, error) {
	for _, pt := range ly.SendPaths {
		if pt.Recv.Name == recv {
			return pt, nil
		}
	}
	return nil, fmt.Errorf("receiving layer: %v not found in list of sending pathways of layer %v", recv, ly.Name)
}

// UnitValue1D returns value of given variable index on given unit,
// using 1D (flat) index.  Returns NaN on invalid index.
func (ly *Layer) UnitValue1D(varIndex int, idx int) float32 {
	if idx < 0 || idx >= len(ly.Neurons) {
		return math32.NaN()
	}
	if varIndex < 0 || varIndex >= len(NeuronVars) {
		return math32.NaN()
	}
	return ly.Neurons[idx].VarByIndex(varIndex)
}

// UnitValues fills in values of given variable name on each unit,
// into given float32 slice (only resized if not big enough).
// Returns error on invalid var name.
func (ly *Layer) UnitValues(vals *[]float32, varNm string) error {
	nn := len(ly.Neurons)
	if *vals == nil || cap(*vals) < nn {
		*vals = make([]float32, nn)
	} else if len(*vals) < nn {
		*vals = (*vals)[0:nn]
	}
	vidx, err := NeuronVarIndexByName(varNm)
	if err != nil {
		nan := math32.NaN()
		for i := range ly.Neurons {
			(*vals)[i] = nan
		}
		return err
	}
	for i := range ly.Neurons {
		(*vals)[i] = ly.UnitValue1D(vidx, i)
	}
	return nil
}

// Build constructs the layer's neuron state and builds its receiving
// pathways, returning an aggregate of all configuration errors.
func (ly *Layer) Build() error {
	var errs []error
	nu := ly.Shape.Len()
	if nu == 0 {
		errs = append(errs, fmt.Errorf("Layer %v: no units specified in shape", ly.Name))
	}
	if nd := ly.Shape.NumDims(); nd != 1 && nd != 2 {
		errs = append(errs, fmt.Errorf("Layer %v: shape must be 1D or 2D, got %vD", ly.Name, nd))
	}
	ly.Neurons = make([]Neuron, nu)
	for _, pt := range ly.RecvPaths {
		if pt.Off {
			continue
		}
		if err := pt.Build(&ly.Network.Rand); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
