// Copyright (c) 2025, The Tacnet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tacnet

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"

	"cogentcore.org/core/base/indent"
	"cogentcore.org/core/math32"
	"cogentcore.org/core/math32/minmax"
	"cogentcore.org/lab/base/randx"
	"cogentcore.org/lab/tensor"
	"github.com/emer/emergent/v2/paths"
	"github.com/emer/emergent/v2/weights"

	"github.com/somato/tacnet/stdp"
)

// note: path.go contains algorithm methods; pathbase.go has infrastructure.

// Path is a pathway connecting two layers: the synapse table between
// them, the delay lines that schedule spike delivery across it, and
// the STDP state adapting its weights.
type Path struct {

	// name of the pathway: SendToRecv by default.
	Name string

	// optional additional class(es) for parameter styling, space separated.
	Class string

	// inactivate this pathway: no building, no computation.
	Off bool

	// pattern of connectivity between the two layers.
	Pattern paths.Pattern

	// sending layer for this pathway.
	Send *Layer

	// receiving layer for this pathway.
	Recv *Layer

	// type of pathway.
	Type PathTypes

	// initial random weight distribution
	WtInit randx.RandParams `display:"inline"`

	// overall multiplier on delivered current for this pathway,
	// converting bounded weights into input current units.
	GScale float32 `def:"1"`

	// spike transmission delay parameters
	Com ComParams `display:"inline"`

	// STDP learning parameters; Learn.On false = static synapse group.
	Learn stdp.Params `display:"add-fields"`

	// synaptic state values, ordered by the sending layer
	// units which owns them -- one-to-one with SConIndex array.
	Syns []Synapse

	// ring buffer of spike contributions pending delivery, organized
	// as (MaxDelay + 1) slots of one float32 per receiving neuron.
	// A spike on a synapse with delay d is accumulated into the slot
	// d steps ahead of GBufPos and flushed into the receiving
	// neuron's Ge when that slot comes due.
	GBuf []float32 `display:"-"`

	// current delivery slot of GBuf; advances by one each step.
	GBufPos int `display:"-"`

	// maximum synaptic delay across all synapses, set at Build.
	MaxDelay int `edit:"-"`

	// presynaptic spike traces, one per sending-layer neuron,
	// decaying with Learn.TauPlus.
	TrSend []float32 `display:"-"`

	// postsynaptic spike traces, one per receiving-layer neuron,
	// decaying with Learn.TauMinus.
	TrRecv []float32 `display:"-"`

	// number of recv connections for each neuron in the receiving layer,
	// as a flat list.
	RConN []int32 `display:"-"`

	// average and maximum number of recv connections in the receiving layer.
	RConNAvgMax minmax.AvgMax32 `edit:"-" display:"inline"`

	// starting index into ConIndex list for each neuron in
	// receiving layer; list incremented by ConN.
	RConIndexSt []int32 `display:"-"`

	// index of other neuron on sending side of pathway,
	// ordered by the receiving layer's order of units as the
	// outer loop (each start is in ConIndexSt),
	// and then by the sending layer's units within that.
	RConIndex []int32 `display:"-"`

	// index of synaptic state values for each recv unit x connection,
	// for the receiver pathway which does not own the synapses,
	// and instead indexes into sender-ordered list.
	RSynIndex []int32 `display:"-"`

	// number of sending connections for each neuron in the
	// sending layer, as a flat list.
	SConN []int32 `display:"-"`

	// average and maximum number of sending connections
	// in the sending layer.
	SConNAvgMax minmax.AvgMax32 `edit:"-" display:"inline"`

	// starting index into ConIndex list for each neuron in
	// sending layer; list incremented by ConN.
	SConIndexSt []int32 `display:"-"`

	// index of other neuron on receiving side of pathway,
	// ordered by the sending layer's order of units as the
	// outer loop (each start is in ConIndexSt), and then
	// by the sending layer's units within that.
	SConIndex []int32 `display:"-"`
}

// ComParams are the spike transmission delay parameters for a pathway.
// Delays are in simulation steps and must be at least 1, so a spike is
// never delivered in the step it was emitted.
type ComParams struct {

	// transmission delay in steps, and the minimum per-synapse delay
	// when DelayMax is larger.
	Delay int `def:"1" min:"1"`

	// maximum per-synapse delay: when > Delay, each synapse gets a
	// delay drawn uniformly from [Delay, DelayMax] at Build time,
	// fixed thereafter.
	DelayMax int `def:"1"`
}

func (cp *ComParams) Defaults() {
	cp.Delay = 1
	cp.DelayMax = 1
}

func (cp *ComParams) Update() {
	if cp.DelayMax < cp.Delay {
		cp.DelayMax = cp.Delay
	}
}

// Validate returns an error for delay configurations that violate the
// causality requirement.
func (cp *ComParams) Validate() error {
	if cp.Delay < 1 {
		return fmt.Errorf("ComParams: Delay must be >= 1 step, got %d", cp.Delay)
	}
	if cp.DelayMax < cp.Delay {
		return fmt.Errorf("ComParams: DelayMax %d < Delay %d", cp.DelayMax, cp.Delay)
	}
	return nil
}

func (pt *Path) Defaults() {
	pt.WtInit.Mean = 0.5
	pt.WtInit.Var = 0.25
	pt.WtInit.Dist = randx.Uniform
	pt.GScale = 1
	pt.Com.Defaults()
	pt.Learn.Defaults()
	switch pt.Type {
	case ForwardPath:
	case BackPath:
		pt.WtInit.Mean = 0.2 // weak feedback by default
	}
}

// UpdateParams updates all params given any changes that might have been made to individual values
func (pt *Path) UpdateParams() {
	pt.Com.Update()
	pt.Learn.Update()
}

func (pt *Path) TypeName() string { return pt.Type.String() }

// AddClass adds a CSS-style class name for this path,
// for parameter styling, space separated from any existing.
func (pt *Path) AddClass(cls string) *Path {
	if pt.Class == "" {
		pt.Class = cls
	} else {
		pt.Class += " " + cls
	}
	return pt
}

// Connect sets the connectivity between two layers and the pattern to use in interconnecting them
func (pt *Path) Connect(slay, rlay *Layer, pat paths.Pattern, typ PathTypes) {
	pt.Send = slay
	pt.Recv = rlay
	pt.Pattern = pat
	pt.Type = typ
	pt.Name = pt.Send.Name + "To" + pt.Recv.Name
}

// Validate tests for configuration errors in the pathway: nil settings,
// delays below one step, inverted weight bounds.  Returns error message
// or nil if no problems (and logs them if logmsg = true).
func (pt *Path) Validate(logmsg bool) error {
	var errs []error
	if pt.Pattern == nil {
		errs = append(errs, errors.New("Pattern is nil"))
	}
	if pt.Recv == nil {
		errs = append(errs, errors.New("Recv is nil"))
	}
	if pt.Send == nil {
		errs = append(errs, errors.New("Send is nil"))
	}
	if err := pt.Com.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := pt.Learn.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil
	}
	err := fmt.Errorf("Path %v: %w", pt.Name, errors.Join(errs...))
	if logmsg {
		log.Println(err)
	}
	return err
}

// Build constructs the full connectivity among the layers
// as specified in this pathway.
// Calls Validate and returns error if invalid.
// Pattern.Connect is called to get the pattern of the connection.
// Then the connection indexes are configured according to that pattern.
// Per-synapse delays are assigned here, from rnd when DelayMax > Delay.
func (pt *Path) Build(rnd randx.Rand) error {
	if pt.Off {
		return nil
	}
	err := pt.Validate(true)
	if err != nil {
		return err
	}
	ssh := &pt.Send.Shape
	rsh := &pt.Recv.Shape
	sendn, recvn, cons := pt.Pattern.Connect(ssh, rsh, pt.Recv == pt.Send)
	slen := ssh.Len()
	rlen := rsh.Len()
	tcons := pt.SetNIndexSt(&pt.SConN, &pt.SConNAvgMax, &pt.SConIndexSt, sendn)
	tconr := pt.SetNIndexSt(&pt.RConN, &pt.RConNAvgMax, &pt.RConIndexSt, recvn)
	if tconr != tcons {
		log.Printf("%v programmer error: total recv cons %v != total send cons %v\n", pt.String(), tconr, tcons)
	}
	pt.RConIndex = make([]int32, tconr)
	pt.RSynIndex = make([]int32, tconr)
	pt.SConIndex = make([]int32, tcons)

	sconN := make([]int32, slen) // temporary mem needed to tracks cur n of sending cons

	cbits := cons.Values
	for ri := 0; ri < rlen; ri++ {
		rbi := ri * slen     // recv bit index
		rtcn := pt.RConN[ri] // number of cons
		rst := pt.RConIndexSt[ri]
		rci := int32(0)
		for si := 0; si < slen; si++ {
			if !cbits.Index(rbi + si) { // no connection
				continue
			}
			sst := pt.SConIndexSt[si]
			if rci >= rtcn {
				log.Printf("%v programmer error: recv target total con number: %v exceeded at recv idx: %v, send idx: %v\n", pt.String(), rtcn, ri, si)
				break
			}
			pt.RConIndex[rst+rci] = int32(si)

			sci := sconN[si]
			stcn := pt.SConN[si]
			if sci >= stcn {
				log.Printf("%v programmer error: send target total con number: %v exceeded at recv idx: %v, send idx: %v\n", pt.String(), stcn, ri, si)
				break
			}
			pt.SConIndex[sst+sci] = int32(ri)
			pt.RSynIndex[rst+rci] = sst + sci
			(sconN[si])++
			rci++
		}
	}
	pt.Syns = make([]Synapse, len(pt.SConIndex))
	pt.BuildDelays(rnd)
	pt.GBuf = make([]float32, (pt.MaxDelay+1)*rlen)
	pt.TrSend = make([]float32, slen)
	pt.TrRecv = make([]float32, rlen)
	return nil
}

// BuildDelays assigns the per-synapse transmission delays and computes
// MaxDelay.  Uniform random per-synapse delays in [Delay, DelayMax] are
// drawn in synapse order from rnd, so a fixed seed reproduces them.
func (pt *Path) BuildDelays(rnd randx.Rand) {
	dmin := pt.Com.Delay
	dmax := pt.Com.DelayMax
	pt.MaxDelay = dmin
	for si := range pt.Syns {
		d := dmin
		if dmax > dmin {
			d = dmin + rnd.Intn(dmax-dmin+1)
		}
		pt.Syns[si].Delay = float32(d)
		if d > pt.MaxDelay {
			pt.MaxDelay = d
		}
	}
}

// SetNIndexSt sets the *ConN and *ConIndexSt values given n tensor from Pattern.
// Returns total number of connections for this direction.
func (pt *Path) SetNIndexSt(n *[]int32, avgmax *minmax.AvgMax32, idxst *[]int32, tn *tensor.Int32) int32 {
	ln := tn.Len()
	tnv := tn.Values
	*n = make([]int32, ln)
	*idxst = make([]int32, ln)
	idx := int32(0)
	avgmax.Init()
	for i := 0; i < ln; i++ {
		nv := tnv[i]
		(*n)[i] = nv
		(*idxst)[i] = idx
		idx += nv
		avgmax.UpdateValue(float32(nv), int32(i))
	}
	avgmax.CalcAvg()
	return idx
}

// String satisfies fmt.Stringer for path
func (pt *Path) String() string {
	str := ""
	if pt.Recv == nil {
		str += "recv=nil; "
	} else {
		str += pt.Recv.Name + " <- "
	}
	if pt.Send == nil {
		str += "send=nil"
	} else {
		str += pt.Send.Name
	}
	if pt.Pattern == nil {
		str += " Pat=nil"
	} else {
		str += " Pat=" + pt.Pattern.Name()
	}
	return str
}

// SynIndex returns the index of the synapse between given send, recv unit indexes
// (1D, flat indexes). Returns -1 if synapse not found between these two neurons.
// Requires searching within connections for sending unit.
func (pt *Path) SynIndex(sidx, ridx int) int {
	nc := int(pt.SConN[sidx])
	st := int(pt.SConIndexSt[sidx])
	for ci := 0; ci < nc; ci++ {
		ri := int(pt.SConIndex[st+ci])
		if ri != ridx {
			continue
		}
		return int(st + ci)
	}
	return -1
}

// NumSyns returns the number of synapses for this path.
func (pt *Path) NumSyns() int {
	return len(pt.Syns)
}

// SynValue1D returns value of given variable index (from SynapseVarByName)
// on given synapse index.  Returns NaN on invalid index.
func (pt *Path) SynValue1D(varIndex int, synIndex int) float32 {
	if synIndex < 0 || synIndex >= len(pt.Syns) {
		return math32.NaN()
	}
	if varIndex < 0 || varIndex >= len(SynapseVars) {
		return math32.NaN()
	}
	sy := &pt.Syns[synIndex]
	return sy.VarByIndex(varIndex)
}

// SynValues sets values of given variable name for each synapse,
// using the natural (sender-based) ordering of the synapses,
// into given float32 slice (only resized if not big enough).
// Returns error on invalid var name.
func (pt *Path) SynValues(vals *[]float32, varNm string) error {
	vidx, err := SynapseVarByName(varNm)
	if err != nil {
		return err
	}
	ns := len(pt.Syns)
	if *vals == nil || cap(*vals) < ns {
		*vals = make([]float32, ns)
	} else if len(*vals) < ns {
		*vals = (*vals)[0:ns]
	}
	for i := range pt.Syns {
		(*vals)[i] = pt.SynValue1D(vidx, i)
	}
	return nil
}

// SynValue returns value of given variable name on the synapse
// between given send, recv unit indexes (1D, flat indexes).
// Returns math32.NaN() for access errors.
func (pt *Path) SynValue(varNm string, sidx, ridx int) float32 {
	vidx, err := SynapseVarByName(varNm)
	if err != nil {
		return math32.NaN()
	}
	synIndex := pt.SynIndex(sidx, ridx)
	return pt.SynValue1D(vidx, synIndex)
}

// SetSynValue sets value of given variable name on the synapse
// between given send, recv unit indexes (1D, flat indexes).
// Weight values are clamped to Learn.WtRange.
// Returns error for access errors.
func (pt *Path) SetSynValue(varNm string, sidx, ridx int, val float32) error {
	vidx, err := SynapseVarByName(varNm)
	if err != nil {
		return err
	}
	synIndex := pt.SynIndex(sidx, ridx)
	if synIndex < 0 || synIndex >= len(pt.Syns) {
		return fmt.Errorf("Path %v: no synapse between send %d and recv %d", pt.Name, sidx, ridx)
	}
	sy := &pt.Syns[synIndex]
	if varNm == "Wt" {
		val = pt.Learn.ClampWt(val)
	}
	sy.SetVarByIndex(vidx, val)
	return nil
}

///////////////////////////////////////////////////////////////////////
//  Weights File

// WriteWeightsJSON writes the weights from this pathway from the receiver-side perspective
// in a JSON text format.  We build in the indentation logic to make it much faster and
// more efficient.
func (pt *Path) WriteWeightsJSON(w io.Writer, depth int) {
	slay := pt.Send
	rlay := pt.Recv
	nr := len(rlay.Neurons)
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("{\n"))
	depth++
	w.Write(indent.TabBytes(depth))
	w.Write([]byte(fmt.Sprintf("\"From\": %q,\n", slay.Name)))
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("\"Rs\": [\n"))
	depth++
	for ri := 0; ri < nr; ri++ {
		nc := int(pt.RConN[ri])
		st := int(pt.RConIndexSt[ri])
		w.Write(indent.TabBytes(depth))
		w.Write([]byte("{\n"))
		depth++
		w.Write(indent.TabBytes(depth))
		w.Write([]byte(fmt.Sprintf("\"Ri\": %v,\n", ri)))
		w.Write(indent.TabBytes(depth))
		w.Write([]byte(fmt.Sprintf("\"N\": %v,\n", nc)))
		w.Write(indent.TabBytes(depth))
		w.Write([]byte("\"Si\": [ "))
		for ci := 0; ci < nc; ci++ {
			si := pt.RConIndex[st+ci]
			w.Write([]byte(fmt.Sprintf("%v", si)))
			if ci == nc-1 {
				w.Write([]byte(" "))
			} else {
				w.Write([]byte(", "))
			}
		}
		w.Write([]byte("],\n"))
		w.Write(indent.TabBytes(depth))
		w.Write([]byte("\"Wt\": [ "))
		for ci := 0; ci < nc; ci++ {
			rsi := pt.RSynIndex[st+ci]
			sy := &pt.Syns[rsi]
			w.Write([]byte(strconv.FormatFloat(float64(sy.Wt), 'g', weights.Prec, 32)))
			if ci == nc-1 {
				w.Write([]byte(" "))
			} else {
				w.Write([]byte(", "))
			}
		}
		w.Write([]byte("]\n"))
		depth--
		w.Write(indent.TabBytes(depth))
		if ri == nr-1 {
			w.Write([]byte("}\n"))
		} else {
			w.Write([]byte("},\n"))
		}
	}
	depth--
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("]\n"))
	depth--
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("}")) // note: leave unterminated as outer loop needs to add , or just \n depending
}

// SetWeights sets the weights for this pathway from weights.Path decoded values
func (pt *Path) SetWeights(pw *weights.Path) error {
	var err error
	for i := range pw.Rs {
		pr := &pw.Rs[i]
		for si := range pr.Si {
			er := pt.SetSynValue("Wt", pr.Si[si], pr.Ri, pr.Wt[si])
			if er != nil {
				err = er
			}
		}
	}
	return err
}
