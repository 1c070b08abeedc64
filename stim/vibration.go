// Copyright (c) 2025, The Tacnet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stim

import "cogentcore.org/core/math32"

// Vibration is an oscillating contact: a baseline indentation with a
// superimposed sum of sinusoids, gated by the same trapezoidal
// envelope and Gaussian spot as a static press.  The oscillation is
// normalized by the number of components so Amplitude bounds the
// modulation depth regardless of how many frequencies are mixed.
type Vibration struct {

	// baseline indentation the oscillation rides on.
	Offset float32

	// peak oscillation amplitude around the baseline.
	Amplitude float32

	// oscillation frequencies (Hz).
	Freqs []float32

	// phase offsets (radians) per frequency; missing entries are zero.
	Phases []float32

	// temporal profile of the contact.
	Env Envelope

	// spatial profile of the contact.
	Spot Spot
}

// NewVibration returns a vibration stimulus with the given modulation
// amplitude and frequencies, riding on a baseline equal to the
// amplitude so the pressure never goes negative.
func NewVibration(amp float32, freqs ...float32) *Vibration {
	vb := &Vibration{Offset: amp, Amplitude: amp, Freqs: freqs}
	vb.Env.Defaults()
	vb.Spot.Defaults()
	return vb
}

// Osc returns the normalized oscillation in [-1, 1] at time t (msec).
func (vb *Vibration) Osc(t float32) float32 {
	n := len(vb.Freqs)
	if n == 0 {
		return 0
	}
	s := float32(0)
	for fi, f := range vb.Freqs {
		ph := float32(0)
		if fi < len(vb.Phases) {
			ph = vb.Phases[fi]
		}
		s += math32.Sin(2*math32.Pi*f*t/1000 + ph)
	}
	return s / float32(n)
}

func (vb *Vibration) ValueAt(t float32, loc math32.Vector2) float32 {
	return (vb.Offset + vb.Amplitude*vb.Osc(t)) * vb.Env.Factor(t) * vb.Spot.Factor(loc)
}

var _ Stimulus = (*Vibration)(nil)
