// Copyright (c) 2025, The Tacnet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tacnet

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"unsafe"

	"cogentcore.org/core/base/indent"
	"cogentcore.org/lab/base/randx"
	"github.com/c2h5oh/datasize"
	"github.com/emer/emergent/v2/paths"
	"github.com/emer/emergent/v2/weights"
)

// note: network.go contains algorithm methods; networkbase.go has infrastructure.

// Network holds the full set of layers and the pathways connecting
// them, plus the global simulation parameters (random seed, metadata).
// It is an explicitly owned aggregate: all mutation happens through
// methods on this one instance, so multiple independent simulations
// can run in the same process.
type Network struct {

	// overall name of network, which helps discriminate if there are multiple.
	Name string

	// list of layers, in the order they were added, which is the
	// order they are processed within each step.
	Layers []*Layer

	// filename of last weights file loaded or saved.
	WtsFile string `edit:"-"`

	// map of name to layers, for lookup; layer names must be unique.
	LayMap map[string]*Layer `display:"-"`

	// optional metadata that is saved in network weights files,
	// e.g., number of steps trained, stimulus configuration.
	MetaData map[string]string

	// random number source for weight initialization and build-time
	// delay draws; fixed seed = reproducible network.
	Rand randx.SysRand `display:"-"`

	// random seed to be set at the start of Build and InitWeights.
	RandSeed int64 `edit:"-"`
}

// NewNetwork returns a new network with the given name.
func NewNetwork(name string) *Network {
	nt := &Network{Name: name}
	nt.SetRandSeed(1)
	return nt
}

// SetRandSeed sets the random seed and resets the random source from it.
func (nt *Network) SetRandSeed(seed int64) {
	nt.RandSeed = seed
	nt.ResetRandSeed()
}

// ResetRandSeed re-seeds the random source from the current RandSeed.
func (nt *Network) ResetRandSeed() {
	nt.Rand.NewRand(nt.RandSeed)
}

// NumLayers returns the number of layers in the network.
func (nt *Network) NumLayers() int { return len(nt.Layers) }

// Layer returns the layer at the given index.
func (nt *Network) Layer(idx int) *Layer { return nt.Layers[idx] }

// LayerByName returns a layer by looking it up by name in the layer map
// (nil if not found).  Will create the layer map if it is nil or a
// different size than layers slice, but otherwise needs to be updated
// manually.
func (nt *Network) LayerByName(name string) *Layer {
	if nt.LayMap == nil || len(nt.LayMap) != len(nt.Layers) {
		nt.MakeLayMap()
	}
	return nt.LayMap[name]
}

// LayerByNameTry returns a layer by looking it up by name,
// returning an error if not found.
func (nt *Network) LayerByNameTry(name string) (*Layer, error) {
	ly := nt.LayerByName(name)
	if ly == nil {
		return nil, fmt.Errorf("layer named: %v not found in Network: %v", name, nt.Name)
	}
	return ly, nil
}

// MakeLayMap updates layer map based on current layers
func (nt *Network) MakeLayMap() {
	nt.LayMap = make(map[string]*Layer, len(nt.Layers))
	for _, ly := range nt.Layers {
		nt.LayMap[ly.Name] = ly
	}
}

// AddLayer adds a new layer with given name and shape to the network.
// 2D shapes are typically used for spatially organized mechanoreceptor
// sheets and cortical maps; 1D for anything else.
func (nt *Network) AddLayer(name string, shape []int, typ LayerTypes) *Layer {
	ly := &Layer{}
	ly.Network = nt
	ly.Name = name
	ly.SetShape(shape)
	ly.Type = typ
	ly.Index = len(nt.Layers)
	nt.Layers = append(nt.Layers, ly)
	nt.MakeLayMap()
	return ly
}

// AddLayer2D adds a new layer with given name and 2D shape to the network.
func (nt *Network) AddLayer2D(name string, shapeY, shapeX int, typ LayerTypes) *Layer {
	return nt.AddLayer(name, []int{shapeY, shapeX}, typ)
}

// ConnectLayers establishes a pathway between two layers, referenced by
// name, with the given connectivity pattern and type.  Adds it to the
// recv and send pathway lists on the two layers.  Does not yet actually
// connect the units within the layers -- that requires Build.
func (nt *Network) ConnectLayers(send, recv *Layer, pat paths.Pattern, typ PathTypes) *Path {
	pt := &Path{}
	pt.Connect(send, recv, pat, typ)
	pt.AddClass(typ.String())
	recv.RecvPaths = append(recv.RecvPaths, pt)
	send.SendPaths = append(send.SendPaths, pt)
	return pt
}

// PathByNameTry returns a pathway by looking it up by name
// (SendToRecv naming), returning an error if not found.
func (nt *Network) PathByNameTry(name string) (*Path, error) {
	for _, ly := range nt.Layers {
		for _, pt := range ly.RecvPaths {
			if pt.Name == name {
				return pt, nil
			}
		}
	}
	return nil, fmt.Errorf("pathway named: %v not found in Network: %v", name, nt.Name)
}

// Build constructs the layer and pathway state based on the layer shapes
// and patterns of interconnectivity, assigning per-synapse delays.
// Any configuration error (duplicate or empty layer names, empty shapes,
// delays below one step, inverted weight bounds, dangling pathway
// endpoints) is reported here, before the simulation ever starts.
func (nt *Network) Build() error {
	nt.ResetRandSeed()
	var errs []error
	names := make(map[string]bool, len(nt.Layers))
	for li, ly := range nt.Layers {
		ly.Index = li
		if ly.Name == "" {
			errs = append(errs, fmt.Errorf("layer at index %d has no name", li))
		}
		if names[ly.Name] {
			errs = append(errs, fmt.Errorf("duplicate layer name: %v", ly.Name))
		}
		names[ly.Name] = true
		if ly.Off {
			continue
		}
		if err := ly.Build(); err != nil {
			errs = append(errs, err)
		}
	}
	nt.MakeLayMap()
	return errors.Join(errs...)
}

///////////////////////////////////////////////////////////////////////
//  Weights File

// SaveWtsJSON saves network weights (and any other state that adapts
// with learning) to a JSON-formatted file.  If the filename has a .gz
// extension, it will be gzipped.
func (nt *Network) SaveWtsJSON(filename string) error {
	fp, err := os.Create(filename)
	if err != nil {
		log.Println(err)
		return err
	}
	defer fp.Close()
	nt.WtsFile = filename
	ext := filepath.Ext(filename)
	if ext == ".gz" {
		gzr := gzip.NewWriter(fp)
		err = nt.WriteWtsJSON(gzr)
		gzr.Close()
	} else {
		bw := bufio.NewWriter(fp)
		err = nt.WriteWtsJSON(bw)
		bw.Flush()
	}
	return err
}

// OpenWtsJSON opens network weights (and any other state that adapts
// with learning) from a JSON-formatted file.  If the filename has a .gz
// extension, it will be gunzipped.
func (nt *Network) OpenWtsJSON(filename string) error {
	fp, err := os.Open(filename)
	if err != nil {
		log.Println(err)
		return err
	}
	defer fp.Close()
	nt.WtsFile = filename
	ext := filepath.Ext(filename)
	if ext == ".gz" {
		gzr, err := gzip.NewReader(fp)
		if err != nil {
			log.Println(err)
			return err
		}
		defer gzr.Close()
		return nt.ReadWtsJSON(gzr)
	}
	return nt.ReadWtsJSON(bufio.NewReader(fp))
}

// WriteWtsJSON writes the weights from this network
// in a JSON text format.  We build in the indentation logic to make it much faster and
// more efficient.
func (nt *Network) WriteWtsJSON(w io.Writer) error {
	depth := 0
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("{\n"))
	depth++
	w.Write(indent.TabBytes(depth))
	w.Write([]byte(fmt.Sprintf("\"Network\": %q,\n", nt.Name)))
	w.Write(indent.TabBytes(depth))
	onls := make([]*Layer, 0, len(nt.Layers))
	for _, ly := range nt.Layers {
		if !ly.Off {
			onls = append(onls, ly)
		}
	}
	nl := len(onls)
	if nl == 0 {
		w.Write([]byte("\"Layers\": null\n"))
	} else {
		w.Write([]byte("\"Layers\": [\n"))
		depth++
		for li, ly := range onls {
			ly.WriteWtsJSON(w, depth)
			if li == nl-1 {
				w.Write([]byte("\n"))
			} else {
				w.Write([]byte(",\n"))
			}
		}
		depth--
		w.Write(indent.TabBytes(depth))
		w.Write([]byte("]\n"))
	}
	depth--
	w.Write(indent.TabBytes(depth))
	_, err := w.Write([]byte("}\n"))
	return err
}

// ReadWtsJSON reads network weights from the receiver-side perspective
// in a JSON text format.  Reads entire file into a temporary weights.Weights
// structure that is then passed to Layers etc using SetWeights method.
func (nt *Network) ReadWtsJSON(r io.Reader) error {
	nw, err := weights.NetReadJSON(r)
	if err != nil {
		return err // note: already logged
	}
	err = nt.SetWeights(nw)
	if err != nil {
		log.Println(err)
	}
	return err
}

// SetWeights sets the weights for this network from weights.Network
// decoded values.
func (nt *Network) SetWeights(nw *weights.Network) error {
	var err error
	if nw.Network != "" {
		nt.Name = nw.Network
	}
	if nw.MetaData != nil {
		if nt.MetaData == nil {
			nt.MetaData = nw.MetaData
		} else {
			for mk, mv := range nw.MetaData {
				nt.MetaData[mk] = mv
			}
		}
	}
	for li := range nw.Layers {
		lw := &nw.Layers[li]
		ly, er := nt.LayerByNameTry(lw.Layer)
		if er != nil {
			err = er
			continue
		}
		if er = ly.SetWeights(lw); er != nil {
			err = er
		}
	}
	return err
}

// WriteWtsJSON writes the weights from this layer from the receiver-side perspective
// in a JSON text format.
func (ly *Layer) WriteWtsJSON(w io.Writer, depth int) {
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("{\n"))
	depth++
	w.Write(indent.TabBytes(depth))
	w.Write([]byte(fmt.Sprintf("\"Layer\": %q,\n", ly.Name)))
	w.Write(indent.TabBytes(depth))
	onps := make([]*Path, 0, len(ly.RecvPaths))
	for _, pt := range ly.RecvPaths {
		if !pt.Off {
			onps = append(onps, pt)
		}
	}
	np := len(onps)
	if np == 0 {
		w.Write([]byte("\"Paths\": null\n"))
	} else {
		w.Write([]byte("\"Paths\": [\n"))
		depth++
		for pi, pt := range onps {
			pt.WriteWeightsJSON(w, depth)
			if pi == np-1 {
				w.Write([]byte("\n"))
			} else {
				w.Write([]byte(",\n"))
			}
		}
		depth--
		w.Write(indent.TabBytes(depth))
		w.Write([]byte("]\n"))
	}
	depth--
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("}")) // note: leave unterminated as outer loop needs to add , or just \n depending
}

// SetWeights sets the weights for this layer from weights.Layer decoded values.
func (ly *Layer) SetWeights(lw *weights.Layer) error {
	if ly.Off {
		return nil
	}
	var err error
	for pi := range lw.Paths {
		pw := &lw.Paths[pi]
		pt, er := ly.RecvPathBySendName(pw.From)
		if er != nil {
			err = er
			continue
		}
		if er = pt.SetWeights(pw); er != nil {
			err = er
		}
	}
	return err
}

///////////////////////////////////////////////////////////////////////
//  Size report

// SizeReport returns a string report of the size of the network,
// in terms of neurons, synapses, and estimated memory.
func (nt *Network) SizeReport() string {
	var b bytes.Buffer
	totNeur := 0
	totSyn := 0
	var totMem uintptr
	for _, ly := range nt.Layers {
		nn := len(ly.Neurons)
		totNeur += nn
		lmem := uintptr(nn) * unsafe.Sizeof(Neuron{})
		lsyn := 0
		for _, pt := range ly.RecvPaths {
			ns := len(pt.Syns)
			lsyn += ns
			lmem += uintptr(ns)*unsafe.Sizeof(Synapse{}) + uintptr(len(pt.GBuf))*4
		}
		totSyn += lsyn
		totMem += lmem
		fmt.Fprintf(&b, "%14s:\t Neurons: %d\t Syns: %d\t Mem: %v\n",
			ly.Name, nn, lsyn, (datasize.ByteSize(lmem)).HumanReadable())
	}
	fmt.Fprintf(&b, "%14s:\t Neurons: %d\t Syns: %d\t Mem: %v\n",
		"Total", totNeur, totSyn, (datasize.ByteSize(totMem)).HumanReadable())
	return b.String()
}
