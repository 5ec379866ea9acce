// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package mm

import "fmt"

// DistPair is an unordered pair of variables which must be substituted by
// expressions sharing no variable.  The smaller symbol is always held first.
type DistPair struct {
	X SymTok
	Y SymTok
}

// NewDistPair constructs a normalised distinct variable pair.
func NewDistPair(x SymTok, y SymTok) DistPair {
	if x == y {
		panic("distinct variable pair over a single variable")
	} else if x > y {
		x, y = y, x
	}
	//
	return DistPair{x, y}
}

// Proof is implemented by the different forms of proof which can be attached to
// a theorem.
type Proof interface {
	// Size returns the number of steps of this proof in its stored form.
	Size() uint
}

// Assertion records the frame of an axiom or theorem: its mandatory hypotheses
// (floating then essential, each in declaration order), optional hypotheses,
// the distinct variable conditions and the thesis.
type Assertion struct {
	theorem     bool
	thesis      LabTok
	numFloating uint
	hyps        []LabTok
	optHyps     []LabTok
	dists       []DistPair
	optDists    []DistPair
	proof       Proof
}

// NewAssertion constructs an assertion from its floating and essential
// hypotheses.  Observe that floating hypotheses always precede essential ones.
func NewAssertion(theorem bool, thesis LabTok, floating []LabTok, essential []LabTok) *Assertion {
	hyps := make([]LabTok, 0, len(floating)+len(essential))
	hyps = append(hyps, floating...)
	hyps = append(hyps, essential...)
	//
	return &Assertion{
		theorem:     theorem,
		thesis:      thesis,
		numFloating: uint(len(floating)),
		hyps:        hyps,
	}
}

// WithDists sets the mandatory and optional distinct variable conditions of
// this assertion.
func (p *Assertion) WithDists(mandatory []DistPair, optional []DistPair) *Assertion {
	p.dists = mandatory
	p.optDists = optional
	//
	return p
}

// WithOptHyps sets the optional (i.e. non-mandatory) floating hypotheses which
// a proof of this assertion may refer to.
func (p *Assertion) WithOptHyps(optional []LabTok) *Assertion {
	p.optHyps = optional
	return p
}

// IsTheorem determines whether this assertion is a theorem (rather than an
// axiom or definition).
func (p *Assertion) IsTheorem() bool {
	return p.theorem
}

// Thesis returns the label whose sentence is the conclusion of this assertion.
func (p *Assertion) Thesis() LabTok {
	return p.thesis
}

// NumFloating returns the number of floating hypotheses.
func (p *Assertion) NumFloating() uint {
	return p.numFloating
}

// Hyps returns all mandatory hypotheses, floating first.
func (p *Assertion) Hyps() []LabTok {
	return p.hyps
}

// FloatHyps returns the mandatory floating hypotheses.
func (p *Assertion) FloatHyps() []LabTok {
	return p.hyps[:p.numFloating]
}

// EssHyps returns the essential hypotheses.
func (p *Assertion) EssHyps() []LabTok {
	return p.hyps[p.numFloating:]
}

// OptHyps returns the optional hypotheses.
func (p *Assertion) OptHyps() []LabTok {
	return p.optHyps
}

// Dists returns the mandatory distinct variable conditions.
func (p *Assertion) Dists() []DistPair {
	return p.dists
}

// OptDists returns the optional distinct variable conditions.
func (p *Assertion) OptDists() []DistPair {
	return p.optDists
}

// AllDists returns both the mandatory and optional distinct variable
// conditions.
func (p *Assertion) AllDists() []DistPair {
	res := make([]DistPair, 0, len(p.dists)+len(p.optDists))
	res = append(res, p.dists...)
	//
	return append(res, p.optDists...)
}

// IsHyp checks whether a given label is amongst the hypotheses (mandatory or
// optional) available within this assertion's frame.
func (p *Assertion) IsHyp(label LabTok) bool {
	for _, h := range p.hyps {
		if h == label {
			return true
		}
	}
	//
	for _, h := range p.optHyps {
		if h == label {
			return true
		}
	}
	//
	return false
}

// IsEssHyp checks whether a given label is an essential hypothesis of this
// assertion.
func (p *Assertion) IsEssHyp(label LabTok) bool {
	for _, h := range p.EssHyps() {
		if h == label {
			return true
		}
	}
	//
	return false
}

// Proof returns the proof attached to this assertion, or nil.
func (p *Assertion) Proof() Proof {
	return p.proof
}

// AddProof attaches a proof to this theorem.  A proof can be attached at most
// once, and only to a theorem.
func (p *Assertion) AddProof(proof Proof) {
	if !p.theorem {
		panic(fmt.Sprintf("cannot attach proof to axiom %d", p.thesis))
	} else if p.proof != nil {
		panic(fmt.Sprintf("proof already attached to theorem %d", p.thesis))
	}
	//
	p.proof = proof
}
