// Copyright (c) 2025, The Tacnet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package izhi provides the Izhikevich two-variable spiking neuron model,
which reproduces a wide range of biological firing patterns from just
four parameters, at a small fraction of the cost of full conductance
models.

The membrane potential Vm and recovery variable Rec evolve as:

	dVm/dt  = 0.04 Vm^2 + 5 Vm + 140 - Rec + I
	dRec/dt = A (B Vm - Rec)

When Vm crosses VmThr the neuron spikes and resets: Vm <- C and
Rec <- Rec + D.  Units are mV and ms, per the original model.
*/
package izhi

// Methods are the numerical integration schemes for advancing the
// model equations by one timestep.  A scheme is fixed at construction
// and never changes within a run, so results are reproducible.
type Methods int32

const (
	// Euler is simple forward Euler integration: cheapest, and the
	// scheme the model's canonical parameters were tuned with at
	// dt = 1 msec.
	Euler Methods = iota

	// RK4 is the classical 4th-order Runge-Kutta scheme: more stable
	// near the spike upstroke and for larger timesteps.
	RK4

	MethodsN
)

var methodsNames = []string{"Euler", "RK4"}

func (m Methods) String() string {
	if m < 0 || m >= MethodsN {
		return "MethodsInvalid"
	}
	return methodsNames[m]
}

// Params are the Izhikevich neuron model parameters, defining the
// dynamics and reset behavior for all neurons in a layer.
type Params struct {

	// time scale of the recovery variable: smaller = slower recovery.
	A float32 `def:"0.02"`

	// sensitivity of recovery to subthreshold membrane fluctuations.
	B float32 `def:"0.2,0.25"`

	// after-spike reset value of the membrane potential (mV).
	C float32 `def:"-65,-60"`

	// after-spike increment of the recovery variable.
	D float32 `def:"6,4,8"`

	// spike threshold on the membrane potential (mV).
	VmThr float32 `def:"30"`

	// initial membrane potential (mV); recovery initializes to B * VmInit.
	VmInit float32 `def:"-65"`

	// safety floor on the membrane potential (mV): Vm saturates here
	// rather than diverging under pathological parameters or strongly
	// negative input currents.  Saturation is counted, not silent.
	VmFloor float32 `def:"-100"`

	// numerical integration scheme, fixed for the life of a run.
	Method Methods
}

// Defaults sets regular-spiking parameters, the canonical cortical cell.
func (ip *Params) Defaults() {
	ip.RegularSpiking()
	ip.VmThr = 30
	ip.VmInit = -65
	ip.VmFloor = -100
	ip.Method = RK4
}

func (ip *Params) Update() {
}

// RegularSpiking sets the A,B,C,D parameters for a regular-spiking
// neuron, matching the slowly adapting (SA1) afferent model.
func (ip *Params) RegularSpiking() {
	ip.A = 0.02
	ip.B = 0.2
	ip.C = -65
	ip.D = 6
}

// RapidAdapt sets the A,B,C,D parameters for the phasic, rapidly
// adapting (RA1 / RA2) afferent model.
func (ip *Params) RapidAdapt() {
	ip.A = 0.02
	ip.B = 0.25
	ip.C = -60
	ip.D = 4
}

// InitState sets membrane potential and recovery to their resting values.
func (ip *Params) InitState(vm, rec *float32) {
	*vm = ip.VmInit
	*rec = ip.B * ip.VmInit
}

// DVmDt is the membrane potential derivative given current state and input current.
func (ip *Params) DVmDt(vm, rec, i float32) float32 {
	return 0.04*vm*vm + 5*vm + 140 - rec + i
}

// DRecDt is the recovery variable derivative given current state.
func (ip *Params) DRecDt(vm, rec float32) float32 {
	return ip.A * (ip.B*vm - rec)
}

// Step advances vm and rec in place by one timestep of dt msec with
// input current i, using the configured integration scheme.
// It does not apply threshold, reset, or floor -- callers handle those
// so the order of spike detection and recording is explicit.
func (ip *Params) Step(vm, rec *float32, i, dt float32) {
	switch ip.Method {
	case RK4:
		ip.StepRK4(vm, rec, i, dt)
	default:
		ip.StepEuler(vm, rec, i, dt)
	}
}

// StepEuler advances vm, rec by one forward Euler step.
func (ip *Params) StepEuler(vm, rec *float32, i, dt float32) {
	v0 := *vm
	r0 := *rec
	*vm = v0 + dt*ip.DVmDt(v0, r0, i)
	*rec = r0 + dt*ip.DRecDt(v0, r0)
}

// StepRK4 advances vm, rec by one classical Runge-Kutta step of the
// coupled system, holding the input current constant across the step.
func (ip *Params) StepRK4(vm, rec *float32, i, dt float32) {
	v0 := *vm
	r0 := *rec
	k1v := ip.DVmDt(v0, r0, i)
	k1r := ip.DRecDt(v0, r0)
	k2v := ip.DVmDt(v0+0.5*dt*k1v, r0+0.5*dt*k1r, i)
	k2r := ip.DRecDt(v0+0.5*dt*k1v, r0+0.5*dt*k1r)
	k3v := ip.DVmDt(v0+0.5*dt*k2v, r0+0.5*dt*k2r, i)
	k3r := ip.DRecDt(v0+0.5*dt*k2v, r0+0.5*dt*k2r)
	k4v := ip.DVmDt(v0+dt*k3v, r0+dt*k3r, i)
	k4r := ip.DRecDt(v0+dt*k3v, r0+dt*k3r)
	*vm = v0 + (dt/6)*(k1v+2*k2v+2*k3v+k4v)
	*rec = r0 + (dt/6)*(k1r+2*k2r+2*k3r+k4r)
}

// Spiked returns true if the given membrane potential is at or above threshold.
func (ip *Params) Spiked(vm float32) bool {
	return vm >= ip.VmThr
}

// Reset applies the after-spike reset: Vm <- C, Rec <- Rec + D.
func (ip *Params) Reset(vm, rec *float32) {
	*vm = ip.C
	*rec += ip.D
}

// Floor clamps vm at VmFloor, returning true if it saturated.
func (ip *Params) Floor(vm *float32) bool {
	if *vm < ip.VmFloor {
		*vm = ip.VmFloor
		return true
	}
	return false
}
