// Copyright (c) 2025, The Tacnet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package tacnet is the overall repository for a tactile spiking neural
network simulation engine: mechanoreceptor afferents encode pressure and
vibration stimuli into spike trains, which propagate through a cuneate
relay stage and a cortical integration stage, with synaptic weights
adapted online by spike-timing-dependent plasticity (STDP).

The main simulation engine is in the tacnet package, with Izhikevich
neuron dynamics in izhi, the STDP learning rule in stdp, and stimulus /
mechanoreceptor transduction models in stim.
*/
package tacnet
