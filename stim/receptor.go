// Copyright (c) 2025, The Tacnet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stim

import (
	"cogentcore.org/core/math32"

	"github.com/somato/tacnet/izhi"
)

// ReceptorClass is the adaptation class of a mechanoreceptor,
// determining which feature of the pressure signal it transduces.
type ReceptorClass int32

const (
	// SA1 (slowly adapting type 1, Merkel) responds to sustained
	// pressure, with logarithmic compression.
	SA1 ReceptorClass = iota

	// RA1 (rapidly adapting type 1, Meissner) responds to the rate of
	// change of pressure: onsets, offsets, and low-frequency flutter.
	RA1

	// RA2 (rapidly adapting type 2, Pacinian) responds to acceleration
	// of pressure: high-frequency vibration and transients.
	RA2

	ReceptorClassN
)

var receptorClassNames = []string{"SA1", "RA1", "RA2"}

func (rc ReceptorClass) String() string {
	if rc < 0 || rc >= ReceptorClassN {
		return "ReceptorClassInvalid"
	}
	return receptorClassNames[rc]
}

// NeuronParams returns the spiking dynamics matching this receptor
// class: regular spiking for the sustained SA1 response, rapidly
// adapting for RA1 and RA2.
func (rc ReceptorClass) NeuronParams() izhi.Params {
	var pr izhi.Params
	pr.Defaults()
	switch rc {
	case SA1:
		pr.RegularSpiking()
	default:
		pr.RapidAdapt()
	}
	return pr
}

// TransduceParams converts the transduced pressure feature into an
// input current: values below Thr produce no current, values above it
// a current scaled by Gain.
type TransduceParams struct {

	// response threshold, in the units of the transduced feature
	// (pressure for SA1, pressure/msec for RA1, pressure/msec^2
	// for RA2).
	Thr float32 `min:"0"`

	// current per unit of suprathreshold feature value.
	Gain float32 `min:"0"`
}

// Defaults sets the canonical psychophysical values for the given
// receptor class: SA1 is least sensitive but responds to level, RA1
// to velocity, RA2 to the smallest accelerations.
func (tp *TransduceParams) Defaults(rc ReceptorClass) {
	switch rc {
	case SA1:
		tp.Thr = 8
		tp.Gain = 20
	case RA1:
		tp.Thr = 2
		tp.Gain = 100
	case RA2:
		tp.Thr = 0.75
		tp.Gain = 40
	}
}

// Receptor is one mechanoreceptor at a skin location.  It is
// stateless: derivatives are taken by finite differences of the
// stimulus field, so the current at time t depends only on the
// stimulus, not on the order of queries.
type Receptor struct {

	// adaptation class.
	Class ReceptorClass

	// transduction parameters; use Defaults(Class) for standard values.
	Params TransduceParams

	// location on the skin sheet (mm).
	Loc math32.Vector2
}

// Current returns the input current this receptor produces for the
// given stimulus at time t, with dt the simulation timestep (msec)
// used for the finite-difference derivatives.
func (rx *Receptor) Current(st Stimulus, t, dt float32) float32 {
	p0 := st.ValueAt(t, rx.Loc)
	switch rx.Class {
	case SA1:
		if p0 < rx.Params.Thr {
			return 0
		}
		return rx.Params.Gain * math32.Log(1+p0/rx.Params.Thr)
	case RA1:
		p1 := st.ValueAt(t-dt, rx.Loc)
		v := math32.Abs(p0-p1) / dt
		if v < rx.Params.Thr {
			return 0
		}
		return rx.Params.Gain * v
	case RA2:
		p1 := st.ValueAt(t-dt, rx.Loc)
		p2 := st.ValueAt(t-2*dt, rx.Loc)
		a := math32.Abs(p0-2*p1+p2) / (dt * dt)
		if a < rx.Params.Thr {
			return 0
		}
		return rx.Params.Gain * a
	}
	return 0
}
