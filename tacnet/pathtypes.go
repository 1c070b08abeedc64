// Copyright (c) 2025, The Tacnet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tacnet

// PathTypes is the direction of a pathway relative to the tactile
// hierarchy, used as a class for parameter styling.
type PathTypes int32

const (
	// ForwardPath is a feed-forward pathway, from lower to higher
	// in the hierarchy (mechanoreceptor -> cuneate -> cortex).
	ForwardPath PathTypes = iota

	// BackPath is a feedback pathway, from higher to lower.
	BackPath

	// LateralPath is a within-layer recurrent pathway.
	LateralPath

	PathTypesN
)

var pathTypesNames = []string{"Forward", "Back", "Lateral"}

func (pt PathTypes) String() string {
	if pt < 0 || pt >= PathTypesN {
		return "PathTypesInvalid"
	}
	return pathTypesNames[pt]
}
