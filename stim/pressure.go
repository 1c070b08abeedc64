// Copyright (c) 2025, The Tacnet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stim

import "cogentcore.org/core/math32"

// Pressure is a static indentation stimulus: a probe pressed into the
// skin with a trapezoidal time course and a Gaussian spatial profile.
type Pressure struct {

	// peak indentation pressure (arbitrary pressure units).
	Amplitude float32

	// temporal profile of the contact.
	Env Envelope

	// spatial profile of the contact.
	Spot Spot
}

// NewPressure returns a pressure stimulus with default envelope and
// spot, centered at the origin.
func NewPressure(amp float32) *Pressure {
	pr := &Pressure{Amplitude: amp}
	pr.Env.Defaults()
	pr.Spot.Defaults()
	return pr
}

func (pr *Pressure) ValueAt(t float32, loc math32.Vector2) float32 {
	return pr.Amplitude * pr.Env.Factor(t) * pr.Spot.Factor(loc)
}

var _ Stimulus = (*Pressure)(nil)
