// Copyright (c) 2025, The Tacnet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package stim generates tactile stimuli and transduces them into input
currents through model mechanoreceptors.  A Stimulus is a pressure
field over time and skin location; a Receptor samples that field at
its location and converts it to a current according to its adaptation
class (slowly adapting SA1, rapidly adapting RA1, RA2).  A Sheet is a
2D grid of receptors whose currents drive an input layer.
*/
package stim

import "cogentcore.org/core/math32"

// Stimulus is a pressure field: skin indentation as a function of
// time (msec) and skin location (mm).  Implementations must be pure
// functions of (t, loc) so simulation runs are reproducible.
type Stimulus interface {
	ValueAt(t float32, loc math32.Vector2) float32
}

// Envelope is a trapezoidal temporal profile: zero before Onset, a
// linear ramp up over Rise msec, full amplitude for Plateau msec, and
// a linear ramp down over Fall msec.
type Envelope struct {

	// time of stimulus onset (msec).
	Onset float32

	// duration of the ramp from zero to full amplitude (msec).
	Rise float32 `min:"0"`

	// duration at full amplitude (msec).
	Plateau float32 `min:"0"`

	// duration of the ramp back down to zero (msec).
	Fall float32 `min:"0"`
}

func (ev *Envelope) Defaults() {
	ev.Onset = 100
	ev.Rise = 50
	ev.Plateau = 500
	ev.Fall = 50
}

// Factor returns the envelope multiplier in [0, 1] at time t.
func (ev *Envelope) Factor(t float32) float32 {
	t -= ev.Onset
	switch {
	case t < 0:
		return 0
	case t < ev.Rise:
		return t / ev.Rise
	case t < ev.Rise+ev.Plateau:
		return 1
	case t < ev.Rise+ev.Plateau+ev.Fall:
		return 1 - (t-ev.Rise-ev.Plateau)/ev.Fall
	default:
		return 0
	}
}

// Spot is a Gaussian spatial profile centered on a skin location:
// full amplitude at the center, falling off with distance.
type Spot struct {

	// center of the contact (mm).
	Center math32.Vector2

	// Gaussian sigma of the falloff (mm); <= 0 means spatially
	// uniform (probe covers the whole sheet).
	Radius float32
}

func (sp *Spot) Defaults() {
	sp.Radius = 2
}

// Factor returns the spatial multiplier in (0, 1] at the given location.
func (sp *Spot) Factor(loc math32.Vector2) float32 {
	if sp.Radius <= 0 {
		return 1
	}
	dx := loc.X - sp.Center.X
	dy := loc.Y - sp.Center.Y
	d2 := dx*dx + dy*dy
	return math32.FastExp(-d2 / (2 * sp.Radius * sp.Radius))
}
