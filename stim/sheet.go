// Copyright (c) 2025, The Tacnet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stim

import "cogentcore.org/core/math32"

// Sheet is a 2D grid of mechanoreceptors of one class, spanning a
// patch of skin.  Receptor locations are laid out row-major on a
// regular grid centered on the origin, matching the unit order of a
// 2D input layer of the same shape.
type Sheet struct {

	// receptor class for all receptors in the sheet.
	Class ReceptorClass

	// transduction parameters shared by all receptors.
	Params TransduceParams

	// grid size: NY rows by NX columns.
	NY, NX int

	// distance between adjacent receptors (mm).
	Spacing float32 `min:"0"`

	// receptor locations, row-major.
	Locs []math32.Vector2
}

// NewSheet returns a new receptor sheet of the given class and grid
// size, with default transduction parameters for the class and the
// given receptor spacing, centered on the origin.
func NewSheet(rc ReceptorClass, ny, nx int, spacing float32) *Sheet {
	sh := &Sheet{Class: rc, NY: ny, NX: nx, Spacing: spacing}
	sh.Params.Defaults(rc)
	sh.Locs = make([]math32.Vector2, ny*nx)
	cy := 0.5 * float32(ny-1)
	cx := 0.5 * float32(nx-1)
	for iy := 0; iy < ny; iy++ {
		for ix := 0; ix < nx; ix++ {
			sh.Locs[iy*nx+ix] = math32.Vec2((float32(ix)-cx)*spacing, (float32(iy)-cy)*spacing)
		}
	}
	return sh
}

// NumReceptors returns the number of receptors in the sheet.
func (sh *Sheet) NumReceptors() int { return len(sh.Locs) }

// Current returns the input current of receptor ni for the given
// stimulus at time t, with timestep dt.
func (sh *Sheet) Current(st Stimulus, ni int, t, dt float32) float32 {
	rx := Receptor{Class: sh.Class, Params: sh.Params, Loc: sh.Locs[ni]}
	return rx.Current(st, t, dt)
}

// Source is a sheet bound to a stimulus, supplying per-neuron input
// currents for an input layer of the same shape.  It satisfies the
// engine's current source interface.
type Source struct {

	// the receptor sheet.
	Sheet *Sheet

	// the stimulus being transduced.
	Stim Stimulus

	// simulation timestep (msec) for derivative estimates.
	Dt float32 `def:"1"`
}

// NewSource returns a source binding the given sheet and stimulus,
// with a 1 msec timestep.
func NewSource(sh *Sheet, st Stimulus) *Source {
	return &Source{Sheet: sh, Stim: st, Dt: 1}
}

// CurrentAt returns the input current for neuron ni at time t.
func (sc *Source) CurrentAt(ni int, t float32) float32 {
	return sc.Sheet.Current(sc.Stim, ni, t, sc.Dt)
}
