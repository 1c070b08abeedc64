// Copyright (c) 2025, The Tacnet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tacnet

import (
	"strings"
)

// LayerSel is one parameter selector for layers: Sel selects which
// layers it applies to, using standard css selector syntax
// ("Layer" = all, "#Name" = layer of that name, ".Class" = layers
// with that class or type name), and Set applies the values.
type LayerSel struct {

	// selector determining which layers the parameters apply to.
	Sel string

	// documentation of what the parameters do and why.
	Doc string

	// function that sets the parameter values on a selected layer.
	Set func(ly *Layer) `display:"-"`
}

// LayerSheet is a list of layer selectors, applied in order so later
// (more specific) entries override earlier ones.
type LayerSheet []LayerSel

// LayerSheets is a named collection of layer sheets: Base is always
// applied, and others can be optionally applied on top of that.
type LayerSheets map[string]LayerSheet

// PathSel is one parameter selector for pathways, in the same css
// selector syntax as LayerSel ("Path", "#Name", ".Class").
type PathSel struct {

	// selector determining which pathways the parameters apply to.
	Sel string

	// documentation of what the parameters do and why.
	Doc string

	// function that sets the parameter values on a selected pathway.
	Set func(pt *Path) `display:"-"`
}

// PathSheet is a list of pathway selectors, applied in order.
type PathSheet []PathSel

// PathSheets is a named collection of pathway sheets.
type PathSheets map[string]PathSheet

// selMatch reports whether a selector matches an object with the given
// name, class(es), and type name.
func selMatch(sel, objType, name, class, typeName string) bool {
	switch {
	case sel == "":
		return false
	case sel[0] == '#':
		return name == sel[1:]
	case sel[0] == '.':
		cls := sel[1:]
		if cls == typeName {
			return true
		}
		for _, c := range strings.Fields(class) {
			if c == cls {
				return true
			}
		}
		return false
	default:
		return sel == objType
	}
}

// ApplyLayerSheet applies the given sheet of layer parameters to all
// matching layers, returning true if any layer was selected.
// UpdateParams is called on set layers to update derived values.
func (nt *Network) ApplyLayerSheet(sheet LayerSheet) bool {
	applied := false
	for _, sel := range sheet {
		for _, ly := range nt.Layers {
			if !selMatch(sel.Sel, "Layer", ly.Name, ly.Class, ly.TypeName()) {
				continue
			}
			sel.Set(ly)
			ly.UpdateParams()
			applied = true
		}
	}
	return applied
}

// ApplyPathSheet applies the given sheet of pathway parameters to all
// matching pathways, returning true if any pathway was selected.
func (nt *Network) ApplyPathSheet(sheet PathSheet) bool {
	applied := false
	for _, sel := range sheet {
		for _, ly := range nt.Layers {
			for _, pt := range ly.RecvPaths {
				if !selMatch(sel.Sel, "Path", pt.Name, pt.Class, pt.TypeName()) {
					continue
				}
				sel.Set(pt)
				pt.UpdateParams()
				applied = true
			}
		}
	}
	return applied
}

// ApplyParamSheets applies the given layer and pathway parameter
// sheets; either may be nil.
func (nt *Network) ApplyParamSheets(layer LayerSheet, path PathSheet) bool {
	applied := false
	if layer != nil {
		applied = nt.ApplyLayerSheet(layer)
	}
	if path != nil {
		if nt.ApplyPathSheet(path) {
			applied = true
		}
	}
	return applied
}
