// Copyright (c) 2025, The Tacnet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stim

import (
	"testing"

	"cogentcore.org/core/math32"
)

const difTol = float32(1.0e-3)

// steadyEnv is an always-on envelope, for isolating the other factors.
var steadyEnv = Envelope{Onset: 0, Rise: 0, Plateau: 1e9, Fall: 0}

func TestEnvelopeFactor(t *testing.T) {
	ev := Envelope{Onset: 100, Rise: 50, Plateau: 500, Fall: 50}
	cases := []struct{ t, f float32 }{
		{0, 0}, {99, 0}, {100, 0}, {125, 0.5}, {150, 1},
		{400, 1}, {650, 1}, {675, 0.5}, {700, 0}, {1000, 0},
	}
	for _, c := range cases {
		got := ev.Factor(c.t)
		if math32.Abs(got-c.f) > difTol {
			t.Errorf("Factor(%v): got %v, want %v", c.t, got, c.f)
		}
	}
}

func TestSpotFactor(t *testing.T) {
	sp := Spot{Radius: 2}
	if got := sp.Factor(math32.Vec2(0, 0)); math32.Abs(got-1) > difTol {
		t.Errorf("center factor: got %v, want 1", got)
	}
	want := math32.Exp(-0.5) // one radius away
	if got := sp.Factor(math32.Vec2(2, 0)); math32.Abs(got-want) > difTol {
		t.Errorf("factor at one radius: got %v, want %v", got, want)
	}
	if g1, g2 := sp.Factor(math32.Vec2(1, 1)), sp.Factor(math32.Vec2(-1, -1)); g1 != g2 {
		t.Errorf("spot should be radially symmetric: %v vs %v", g1, g2)
	}
	sp.Radius = 0 // uniform contact
	if got := sp.Factor(math32.Vec2(100, 100)); got != 1 {
		t.Errorf("uniform contact factor: got %v, want 1", got)
	}
}

func TestPressureValue(t *testing.T) {
	pr := NewPressure(10)
	pr.Env = Envelope{Onset: 100, Rise: 50, Plateau: 500, Fall: 50}
	pr.Spot.Radius = 0
	ctr := math32.Vec2(0, 0)
	if got := pr.ValueAt(50, ctr); got != 0 {
		t.Errorf("before onset: got %v, want 0", got)
	}
	if got := pr.ValueAt(300, ctr); math32.Abs(got-10) > difTol {
		t.Errorf("plateau: got %v, want 10", got)
	}
	if got := pr.ValueAt(125, ctr); math32.Abs(got-5) > difTol {
		t.Errorf("mid-rise: got %v, want 5", got)
	}
}

func TestVibrationValue(t *testing.T) {
	vb := NewVibration(5, 250) // 250 Hz = 4 msec period
	vb.Env = steadyEnv
	vb.Spot.Radius = 0
	ctr := math32.Vec2(0, 0)
	if got := vb.ValueAt(1, ctr); math32.Abs(got-10) > difTol { // peak
		t.Errorf("peak: got %v, want 10", got)
	}
	if got := vb.ValueAt(3, ctr); math32.Abs(got-0) > difTol { // trough
		t.Errorf("trough: got %v, want 0", got)
	}
	if got := vb.ValueAt(4, ctr); math32.Abs(got-5) > difTol { // zero crossing
		t.Errorf("zero crossing: got %v, want the baseline 5", got)
	}
	// never negative
	for ti := 0; ti < 100; ti++ {
		if got := vb.ValueAt(float32(ti)*0.25, ctr); got < 0 {
			t.Fatalf("pressure went negative: %v at %v", got, float32(ti)*0.25)
		}
	}
	// mixed frequencies stay within the modulation depth
	vb2 := NewVibration(5, 30, 250)
	vb2.Env = steadyEnv
	vb2.Spot.Radius = 0
	for ti := 0; ti < 400; ti++ {
		got := vb2.ValueAt(float32(ti)*0.25, ctr)
		if got < 0 || got > 10 {
			t.Fatalf("mixed vibration out of range: %v", got)
		}
	}
}

func TestSA1Response(t *testing.T) {
	pr := NewPressure(16)
	pr.Env = steadyEnv
	pr.Spot.Radius = 0
	rx := Receptor{Class: SA1}
	rx.Params.Defaults(SA1)
	want := 20 * math32.Log(1+16.0/8.0)
	if got := rx.Current(pr, 100, 1); math32.Abs(got-want) > difTol {
		t.Errorf("SA1 suprathreshold: got %v, want %v", got, want)
	}
	pr.Amplitude = 7 // below threshold
	if got := rx.Current(pr, 100, 1); got != 0 {
		t.Errorf("SA1 subthreshold: got %v, want 0", got)
	}
	// sustained response: same current early and late in the hold
	pr.Amplitude = 16
	if e, l := rx.Current(pr, 50, 1), rx.Current(pr, 5000, 1); e != l {
		t.Errorf("SA1 should not adapt: %v vs %v", e, l)
	}
}

func TestRA1Response(t *testing.T) {
	pr := NewPressure(20)
	pr.Env = Envelope{Onset: 10, Rise: 5, Plateau: 100, Fall: 5}
	pr.Spot.Radius = 0
	rx := Receptor{Class: RA1}
	rx.Params.Defaults(RA1)
	// during the ramp: 4 pressure units per msec
	if got := rx.Current(pr, 13, 1); math32.Abs(got-400) > difTol {
		t.Errorf("RA1 during ramp: got %v, want 400", got)
	}
	// during the plateau: no change, no response
	if got := rx.Current(pr, 60, 1); got != 0 {
		t.Errorf("RA1 during plateau: got %v, want 0", got)
	}
	// during the fall: responds to offset too
	if got := rx.Current(pr, 118, 1); math32.Abs(got-400) > difTol {
		t.Errorf("RA1 during fall: got %v, want 400", got)
	}
	// slow ramp below velocity threshold
	slow := NewPressure(20)
	slow.Env = Envelope{Onset: 10, Rise: 100, Plateau: 100, Fall: 100}
	slow.Spot.Radius = 0
	if got := rx.Current(slow, 60, 1); got != 0 {
		t.Errorf("RA1 below velocity threshold: got %v, want 0", got)
	}
}

func TestRA2Response(t *testing.T) {
	pr := NewPressure(20)
	pr.Env = Envelope{Onset: 10, Rise: 5, Plateau: 100, Fall: 5}
	pr.Spot.Radius = 0
	rx := Receptor{Class: RA2}
	rx.Params.Defaults(RA2)
	// at the onset corner the velocity jumps by 4 per msec
	if got := rx.Current(pr, 11, 1); math32.Abs(got-160) > difTol {
		t.Errorf("RA2 at onset corner: got %v, want 160", got)
	}
	// mid-ramp velocity is constant: no acceleration, no response
	if got := rx.Current(pr, 13, 1); got != 0 {
		t.Errorf("RA2 mid-ramp: got %v, want 0", got)
	}
	// plateau: nothing
	if got := rx.Current(pr, 60, 1); got != 0 {
		t.Errorf("RA2 during plateau: got %v, want 0", got)
	}
}

func TestNeuronParamsByClass(t *testing.T) {
	sa := SA1.NeuronParams()
	if sa.B != 0.2 {
		t.Errorf("SA1 should use regular spiking dynamics: B = %v", sa.B)
	}
	for _, rc := range []ReceptorClass{RA1, RA2} {
		ra := rc.NeuronParams()
		if ra.B != 0.25 {
			t.Errorf("%v should use rapidly adapting dynamics: B = %v", rc, ra.B)
		}
	}
}

func TestSheetLayout(t *testing.T) {
	sh := NewSheet(SA1, 3, 3, 1)
	if sh.NumReceptors() != 9 {
		t.Fatalf("3x3 sheet should have 9 receptors, got %v", sh.NumReceptors())
	}
	// centered on the origin
	if c := sh.Locs[4]; c.X != 0 || c.Y != 0 {
		t.Errorf("center receptor should be at the origin, got %v", c)
	}
	if c := sh.Locs[0]; c.X != -1 || c.Y != -1 {
		t.Errorf("corner receptor: got %v, want (-1,-1)", c)
	}
	if sh.Params.Thr != 8 || sh.Params.Gain != 20 {
		t.Errorf("sheet should get class default transduction params: %+v", sh.Params)
	}
}

func TestSourceSpatialProfile(t *testing.T) {
	sh := NewSheet(SA1, 3, 3, 1)
	pr := NewPressure(40)
	pr.Env = steadyEnv
	pr.Spot = Spot{Center: math32.Vec2(0, 0), Radius: 1}
	src := NewSource(sh, pr)
	ctr := src.CurrentAt(4, 100)
	if ctr <= 0 {
		t.Fatalf("center receptor should respond, got %v", ctr)
	}
	for _, ni := range []int{0, 2, 6, 8} { // corners
		c := src.CurrentAt(ni, 100)
		if c >= ctr {
			t.Errorf("corner receptor %v should respond less than center: %v vs %v", ni, c, ctr)
		}
	}
	// all four corners see the same pressure
	c0 := src.CurrentAt(0, 100)
	for _, ni := range []int{2, 6, 8} {
		if c := src.CurrentAt(ni, 100); c != c0 {
			t.Errorf("corner receptor %v differs: %v vs %v", ni, c, c0)
		}
	}
}
