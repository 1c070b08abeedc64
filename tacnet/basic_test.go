// Copyright (c) 2025, The Tacnet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tacnet

import (
	"bytes"
	"testing"

	"cogentcore.org/core/math32"
	"cogentcore.org/lab/tensor"
	"github.com/emer/emergent/v2/paths"
)

// tolerance for comparing floats in tests
const difTol = float32(1.0e-4)

var TestLayerParams = LayerSheet{
	{Sel: "Layer", Doc: "integrate like the original model",
		Set: func(ly *Layer) {
			ly.Izhi.Method = 0 // Euler
		}},
	{Sel: "#Mechano", Doc: "rapidly adapting input",
		Set: func(ly *Layer) {
			ly.Izhi.RapidAdapt()
		}},
}

var TestPathParams = PathSheet{
	{Sel: "Path", Doc: "uniform starting weights",
		Set: func(pt *Path) {
			pt.WtInit.Var = 0
		}},
	{Sel: ".Back", Doc: "feedback learns slower",
		Set: func(pt *Path) {
			pt.Learn.APlus = 0.001
		}},
}

func CmprFloats(out, cor []float32, msg string, t *testing.T) {
	t.Helper()
	if len(out) != len(cor) {
		t.Errorf("%v: length mismatch: %v vs %v\n", msg, len(out), len(cor))
		return
	}
	for i := range out {
		dif := math32.Abs(out[i] - cor[i])
		if dif > difTol {
			t.Errorf("%v, out: %v, cor: %v, dif: %v\n", msg, out[i], cor[i], dif)
		}
	}
}

// MakeTestNet makes a standard 3-layer test network:
// Mechano (2x2) -> Cuneate (2x2) one-to-one static,
// Cuneate -> Cortex (2x2) full plastic.
func MakeTestNet(t *testing.T) *Network {
	t.Helper()
	net := NewNetwork("TestNet")
	mech := net.AddLayer2D("Mechano", 2, 2, InputLayer)
	cune := net.AddLayer2D("Cuneate", 2, 2, RelayLayer)
	ctx := net.AddLayer2D("Cortex", 2, 2, CortexLayer)

	mcPath := net.ConnectLayers(mech, cune, paths.NewOneToOne(), ForwardPath)
	net.ConnectLayers(cune, ctx, paths.NewFull(), ForwardPath)

	net.Defaults()
	mcPath.Learn.On = false // static relay
	if err := net.Build(); err != nil {
		t.Fatalf("build failed: %v", err)
	}
	net.InitWeights()
	return net
}

func TestApplyExt(t *testing.T) {
	net := MakeTestNet(t)
	mech := net.LayerByName("Mechano")
	ext := tensor.NewFloat32(2, 2)
	for i := 0; i < 4; i++ {
		ext.SetFloat1D(float64(i)*2, i)
	}
	if err := mech.ApplyExt(ext); err != nil {
		t.Fatal(err)
	}
	for ni := range mech.Neurons {
		if got := mech.Neurons[ni].Ext; got != float32(ni)*2 {
			t.Errorf("neuron %v: applied ext %v, want %v", ni, got, float32(ni)*2)
		}
	}
	if err := mech.ApplyExt(tensor.NewFloat32(3, 3)); err == nil {
		t.Errorf("size-mismatched tensor should be an error")
	}
}

func TestMakeTestNet(t *testing.T) {
	net := MakeTestNet(t)
	if net.NumLayers() != 3 {
		t.Errorf("wrong number of layers: %v", net.NumLayers())
	}
	cune := net.LayerByName("Cuneate")
	if len(cune.Neurons) != 4 {
		t.Errorf("Cuneate should have 4 neurons, got %v", len(cune.Neurons))
	}
	mc, err := cune.RecvPathBySendName("Mechano")
	if err != nil {
		t.Fatal(err)
	}
	if mc.NumSyns() != 4 {
		t.Errorf("one-to-one 2x2 should have 4 synapses, got %v", mc.NumSyns())
	}
	ctx := net.LayerByName("Cortex")
	cc, err := ctx.RecvPathBySendName("Cuneate")
	if err != nil {
		t.Fatal(err)
	}
	if cc.NumSyns() != 16 {
		t.Errorf("full 2x2 -> 2x2 should have 16 synapses, got %v", cc.NumSyns())
	}
	for si := range cc.Syns {
		sy := &cc.Syns[si]
		if sy.Delay < 1 {
			t.Errorf("synapse %v delay %v < 1", si, sy.Delay)
		}
		if sy.Wt < cc.Learn.WtRange.Min || sy.Wt > cc.Learn.WtRange.Max {
			t.Errorf("synapse %v initial weight %v outside range", si, sy.Wt)
		}
	}
}

func TestBuildConfigErrors(t *testing.T) {
	// delay below one step
	net := NewNetwork("BadDelay")
	a := net.AddLayer2D("A", 1, 1, InputLayer)
	b := net.AddLayer2D("B", 1, 1, RelayLayer)
	pt := net.ConnectLayers(a, b, paths.NewOneToOne(), ForwardPath)
	net.Defaults()
	pt.Com.Delay = 0
	pt.Com.DelayMax = 0
	if err := net.Build(); err == nil {
		t.Errorf("delay 0 should be a configuration error")
	}

	// inverted weight bounds
	net = NewNetwork("BadBounds")
	a = net.AddLayer2D("A", 1, 1, InputLayer)
	b = net.AddLayer2D("B", 1, 1, RelayLayer)
	pt = net.ConnectLayers(a, b, paths.NewOneToOne(), ForwardPath)
	net.Defaults()
	pt.Learn.WtRange.Set(1, 0)
	if err := net.Build(); err == nil {
		t.Errorf("inverted weight bounds should be a configuration error")
	}

	// duplicate layer names
	net = NewNetwork("BadNames")
	net.AddLayer2D("A", 1, 1, InputLayer)
	net.AddLayer2D("A", 1, 1, RelayLayer)
	net.Defaults()
	if err := net.Build(); err == nil {
		t.Errorf("duplicate layer names should be a configuration error")
	}

	// dangling pathway endpoints
	dpt := &Path{}
	dpt.Defaults()
	if err := dpt.Validate(false); err == nil {
		t.Errorf("nil endpoints should be a configuration error")
	}
}

func TestApplyParamSheets(t *testing.T) {
	net := MakeTestNet(t)
	applied := net.ApplyParamSheets(TestLayerParams, TestPathParams)
	if !applied {
		t.Errorf("sheets should have applied")
	}
	mech := net.LayerByName("Mechano")
	if mech.Izhi.B != 0.25 {
		t.Errorf("#Mechano selector not applied: B = %v", mech.Izhi.B)
	}
	cune := net.LayerByName("Cuneate")
	if cune.Izhi.B != 0.2 {
		t.Errorf("Cuneate should keep regular spiking: B = %v", cune.Izhi.B)
	}
	if cune.Izhi.Method != 0 {
		t.Errorf("Layer selector not applied: Method = %v", cune.Izhi.Method)
	}
	mc, _ := cune.RecvPathBySendName("Mechano")
	if mc.WtInit.Var != 0 {
		t.Errorf("Path selector not applied: Var = %v", mc.WtInit.Var)
	}
}

func TestThresholdInvariant(t *testing.T) {
	net := NewNetwork("Thresh")
	a := net.AddLayer2D("A", 1, 1, InputLayer)
	net.Defaults()
	if err := net.Build(); err != nil {
		t.Fatal(err)
	}
	net.InitWeights()
	ctx := NewContext()
	nspikes := 0
	for step := 0; step < 500; step++ {
		a.SetExt(0, 10)
		net.Cycle(ctx)
		nrn := &a.Neurons[0]
		if nrn.Spike == 1 {
			nspikes++
			if nrn.Vm != a.Izhi.C {
				t.Errorf("step %v: after spike Vm = %v, want exactly %v", step, nrn.Vm, a.Izhi.C)
			}
			if nrn.SpikeT != ctx.Time {
				t.Errorf("step %v: SpikeT = %v, want %v", step, nrn.SpikeT, ctx.Time)
			}
		} else {
			if nrn.Vm >= a.Izhi.VmThr {
				t.Errorf("step %v: Vm %v at or above threshold without spike", step, nrn.Vm)
			}
		}
		ctx.StepInc()
	}
	if nspikes < 2 {
		t.Errorf("tonic input should produce repeated spiking, got %v", nspikes)
	}
}

func TestZeroInputSilent(t *testing.T) {
	net := MakeTestNet(t)
	ctx := net.LayerByName("Cortex")
	cc, _ := ctx.RecvPathBySendName("Cuneate")
	var wtsBefore []float32
	if err := cc.SynValues(&wtsBefore, "Wt"); err != nil {
		t.Fatal(err)
	}
	rn := NewRunner(net)
	raster, err := rn.Run(200)
	if err != nil {
		t.Fatal(err)
	}
	if raster.NumSpikes() != 0 {
		t.Errorf("zero input should produce no spikes, got %v", raster.NumSpikes())
	}
	var wtsAfter []float32
	cc.SynValues(&wtsAfter, "Wt")
	for i := range wtsBefore {
		if wtsBefore[i] != wtsAfter[i] {
			t.Errorf("weight %v changed with zero input: %v -> %v", i, wtsBefore[i], wtsAfter[i])
		}
	}
}

func TestUnitVarAccess(t *testing.T) {
	net := MakeTestNet(t)
	a := net.LayerByName("Mechano")
	a.Neurons[1].Vm = -42
	v, err := a.Neurons[1].VarByName("Vm")
	if err != nil {
		t.Fatal(err)
	}
	if v != -42 {
		t.Errorf("VarByName(Vm): got %v, want -42", v)
	}
	if _, err := a.Neurons[0].VarByName("Bogus"); err == nil {
		t.Errorf("invalid var name should error")
	}
	var vals []float32
	if err := a.UnitValues(&vals, "Vm"); err != nil {
		t.Fatal(err)
	}
	if vals[1] != -42 {
		t.Errorf("UnitValues(Vm)[1]: got %v, want -42", vals[1])
	}
}

func TestWtsJSONRoundTrip(t *testing.T) {
	net := MakeTestNet(t)
	ctx := net.LayerByName("Cortex")
	cc, _ := ctx.RecvPathBySendName("Cuneate")
	cc.SetWtsFunc(func(si, ri int, send, recv *Layer) float32 {
		return 0.03*float32(si) + 0.11*float32(ri)
	})
	var wtsBefore []float32
	cc.SynValues(&wtsBefore, "Wt")

	var buf bytes.Buffer
	if err := net.WriteWtsJSON(&buf); err != nil {
		t.Fatal(err)
	}

	net.InitWeights() // re-randomize
	if err := net.ReadWtsJSON(&buf); err != nil {
		t.Fatal(err)
	}
	var wtsAfter []float32
	cc.SynValues(&wtsAfter, "Wt")
	CmprFloats(wtsAfter, wtsBefore, "weights after JSON round trip", t)
}

func TestSynValueAccess(t *testing.T) {
	net := MakeTestNet(t)
	cune := net.LayerByName("Cuneate")
	mc, _ := cune.RecvPathBySendName("Mechano")
	if err := mc.SetSynValue("Wt", 2, 2, 0.42); err != nil {
		t.Fatal(err)
	}
	v := mc.SynValue("Wt", 2, 2)
	if math32.Abs(v-0.42) > difTol {
		t.Errorf("SynValue: got %v, want 0.42", v)
	}
	// one-to-one: no synapse between different indexes
	if si := mc.SynIndex(0, 1); si != -1 {
		t.Errorf("one-to-one should have no 0->1 synapse, got index %v", si)
	}
	// weight set clamps to range
	mc.SetSynValue("Wt", 0, 0, 2.5)
	if v := mc.SynValue("Wt", 0, 0); v != mc.Learn.WtRange.Max {
		t.Errorf("external weight set should clamp: got %v", v)
	}
}
