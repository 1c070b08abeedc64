// Copyright (c) 2025, The Tacnet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tacnet

// LayerTypes is the role of a layer in the tactile hierarchy.
// The per-neuron update is the same Izhikevich math across all roles,
// differing only by the parameters configured on the layer; the type
// serves for parameter styling and for identifying input layers that
// receive external stimulus current.
type LayerTypes int32

const (
	// InputLayer is a mechanoreceptor afferent layer: its neurons are
	// driven by external current from a stimulus encoder.
	InputLayer LayerTypes = iota

	// RelayLayer is an intermediate relay stage (cuneate nucleus).
	RelayLayer

	// CortexLayer is a cortical integration stage (somatosensory cortex).
	CortexLayer

	LayerTypesN
)

var layerTypesNames = []string{"InputLayer", "RelayLayer", "CortexLayer"}

func (lt LayerTypes) String() string {
	if lt < 0 || lt >= LayerTypesN {
		return "LayerTypesInvalid"
	}
	return layerTypesNames[lt]
}
