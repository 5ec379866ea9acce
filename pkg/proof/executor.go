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
package proof

import (
	"fmt"

	"github.com/consensys/go-metamath/pkg/mm"
	"github.com/consensys/go-metamath/pkg/util/collection/hash"
	log "github.com/sirupsen/logrus"
)

// Executor runs the proofs of a given theorem.
type Executor struct {
	lib        *mm.Library
	label      mm.LabTok
	assertion  *mm.Assertion
	checkDists bool
}

// NewExecutor constructs an executor for the proofs of a given assertion.
func NewExecutor(lib *mm.Library, label mm.LabTok) *Executor {
	assertion := lib.Assertion(label)
	if assertion == nil {
		panic(fmt.Sprintf("label %d is not an assertion", label))
	}
	//
	return &Executor{lib, label, assertion, false}
}

// WithDists enables checking of distinct variable conditions.
func (p *Executor) WithDists(check bool) *Executor {
	p.checkDists = check
	return p
}

// Execute runs a given proof in a fresh engine, returning that engine.
func (p *Executor) Execute(proof mm.Proof) (*Engine, error) {
	engine := NewEngine(p.lib).WithFrame(p.assertion)
	//
	if p.checkDists {
		engine.WithDists()
	}
	//
	var err error
	//
	switch proof := proof.(type) {
	case *UncompressedProof:
		err = p.executeUncompressed(engine, proof)
	case *CompressedProof:
		err = p.executeCompressed(engine, proof)
	default:
		panic(fmt.Sprintf("unknown proof kind %T", proof))
	}
	//
	return engine, err
}

func (p *Executor) executeUncompressed(engine *Engine, proof *UncompressedProof) error {
	for i, label := range proof.Labels {
		if label == 0 {
			return &VerificationError{uint(i + 1), "?", ErrIncompleteProof, ""}
		} else if err := engine.ProcessLabel(label); err != nil {
			return err
		}
	}
	//
	return nil
}

func (p *Executor) executeCompressed(engine *Engine, proof *CompressedProof) error {
	var (
		hyps  = p.assertion.Hyps()
		nhyps = uint(len(hyps))
		nrefs = uint(len(proof.Refs))
		saved []Saved
	)
	//
	for i, code := range proof.Codes {
		switch {
		case code == Unknown:
			return &VerificationError{uint(i + 1), "?", ErrIncompleteProof, ""}
		case code == 0:
			s, err := engine.Tag()
			if err != nil {
				return err
			}
			//
			saved = append(saved, s)
		case code <= nhyps:
			if err := engine.ProcessLabel(hyps[code-1]); err != nil {
				return err
			}
		case code <= nhyps+nrefs:
			if err := engine.ProcessLabel(proof.Refs[code-nhyps-1]); err != nil {
				return err
			}
		default:
			index := code - nhyps - nrefs - 1
			if index >= uint(len(saved)) {
				panic(fmt.Sprintf("backreference %d beyond %d saved steps", index+1, len(saved)))
			}
			//
			engine.PushSaved(saved[index])
		}
	}
	//
	return nil
}

// Result runs a given proof and checks that it finishes with exactly the
// thesis on the stack, returning the proof tree of the thesis.
func (p *Executor) Result(proof mm.Proof) (ProofTree, error) {
	engine, err := p.Execute(proof)
	if err != nil {
		return ProofTree{}, err
	}
	//
	stack := engine.TreeStack()
	thesis := p.lib.Sentence(p.label)
	//
	if len(stack) != 1 {
		return ProofTree{}, &VerificationError{proof.Size(), "", ErrIncompleteProof,
			fmt.Sprintf("%d entries left on stack", len(stack))}
	} else if !stack[0].Sentence.Equal(thesis) {
		return ProofTree{}, &VerificationError{proof.Size(), "", ErrIncompleteProof,
			fmt.Sprintf("proved \"%s\"", p.lib.SentenceString(stack[0].Sentence))}
	}
	//
	return stack[0], nil
}

// Verify checks that a given proof proves the thesis.
func (p *Executor) Verify(proof mm.Proof) error {
	_, err := p.Result(proof)
	return err
}

// ProofTree returns the derivation tree of a given proof.
func (p *Executor) ProofTree(proof mm.Proof) (ProofTree, error) {
	return p.Result(proof)
}

// Uncompress converts a given proof into an uncompressed one, expanding every
// reused result.
func (p *Executor) Uncompress(proof *CompressedProof) (*UncompressedProof, error) {
	engine, err := p.Execute(proof)
	if err != nil {
		return nil, err
	}
	//
	return &UncompressedProof{engine.Labels()}, nil
}

// Compress converts a given proof into a compressed one.  Hypotheses of the
// theorem are referred to by position, whilst all other labels are listed in
// order of first use.  Every subtree (other than a hypothesis) which occurs
// more than once is derived only once, then reused.
func (p *Executor) Compress(proof *UncompressedProof) (*CompressedProof, error) {
	nodes, err := p.buildNodes(proof.Labels)
	if err != nil {
		return nil, err
	}
	//
	var (
		hyps   = p.assertion.Hyps()
		refs   []mm.LabTok
		codes  = make(map[mm.LabTok]uint)
		counts = hash.NewMap[hash.SliceKey[mm.LabTok], *uint](uint(len(nodes)))
	)
	//
	for i, h := range hyps {
		codes[h] = uint(i + 1)
	}
	//
	for _, label := range proof.Labels {
		if _, ok := codes[label]; !ok {
			refs = append(refs, label)
			codes[label] = uint(len(hyps) + len(refs))
		}
	}
	// Count occurrences of each subtree
	for _, n := range nodes {
		n.count(proof.Labels, counts)
	}
	//
	c := compressor{
		labels: proof.Labels,
		codes:  codes,
		counts: counts,
		saved:  hash.NewMap[hash.SliceKey[mm.LabTok], uint](uint(len(nodes))),
		nfixed: uint(len(hyps) + len(refs)),
	}
	//
	for _, n := range nodes {
		c.emit(n)
	}
	//
	log.Debugf("compressed %d steps into %d codes (%d references)", len(proof.Labels), len(c.output), len(refs))
	//
	return &CompressedProof{refs, c.output}, nil
}

// Node in the derivation structure of an uncompressed proof, which spans the
// steps [start,end).
type node struct {
	start    uint
	end      uint
	children []*node
}

func (p *node) key(labels []mm.LabTok) hash.SliceKey[mm.LabTok] {
	return hash.NewSliceKey(labels[p.start:p.end])
}

func (p *node) count(labels []mm.LabTok, counts *hash.Map[hash.SliceKey[mm.LabTok], *uint]) {
	key := p.key(labels)
	//
	if n, ok := counts.Get(key); ok {
		// Nested subtrees of a repeated subtree are never emitted again
		*n++
		return
	}
	//
	one := uint(1)
	counts.Insert(key, &one)
	//
	for _, c := range p.children {
		c.count(labels, counts)
	}
}

// Determine the derivation structure of a sequence of steps using the number of
// hypotheses of each assertion.
func (p *Executor) buildNodes(labels []mm.LabTok) ([]*node, error) {
	var stack []*node
	//
	for i, label := range labels {
		if label == 0 {
			return nil, &VerificationError{uint(i + 1), "?", ErrIncompleteProof, ""}
		} else if p.lib.Sentence(label) == nil {
			return nil, &VerificationError{uint(i + 1), "", ErrUnknownLabel, ""}
		}
		//
		n := &node{uint(i), uint(i + 1), nil}
		//
		if a := p.lib.Assertion(label); a != nil {
			arity := len(a.Hyps())
			//
			if len(stack) < arity {
				return nil, &VerificationError{uint(i + 1), p.lib.ResolveLabel(label), ErrStackUnderflow, ""}
			}
			//
			n.children = append(n.children, stack[len(stack)-arity:]...)
			stack = stack[:len(stack)-arity]
			//
			if arity > 0 {
				n.start = n.children[0].start
			}
		}
		//
		stack = append(stack, n)
	}
	//
	return stack, nil
}

type compressor struct {
	labels []mm.LabTok
	codes  map[mm.LabTok]uint
	counts *hash.Map[hash.SliceKey[mm.LabTok], *uint]
	// Code of each subtree saved so far, keyed by its steps
	saved  *hash.Map[hash.SliceKey[mm.LabTok], uint]
	nsaved uint
	// Number of hypotheses and references
	nfixed uint
	output []uint
}

func (p *compressor) emit(n *node) {
	var (
		key      = n.key(p.labels)
		repeated = false
	)
	//
	if len(n.children) > 0 {
		count, _ := p.counts.Get(key)
		repeated = *count > 1
		//
		if code, ok := p.saved.Get(key); ok {
			p.output = append(p.output, code)
			return
		}
	}
	//
	for _, c := range n.children {
		p.emit(c)
	}
	//
	p.output = append(p.output, p.codes[p.labels[n.end-1]])
	//
	if repeated {
		p.output = append(p.output, 0)
		p.nsaved++
		p.saved.Insert(key, p.nfixed+p.nsaved)
	}
}

// VerifyAssertion verifies the proof attached to a given theorem.  Axioms
// trivially verify, whilst a theorem without a proof does not.
func VerifyAssertion(lib *mm.Library, label mm.LabTok, checkDists bool) error {
	assertion := lib.Assertion(label)
	//
	if assertion == nil {
		return &VerificationError{0, "", ErrUnknownLabel, "not an assertion"}
	} else if !assertion.IsTheorem() {
		return nil
	} else if assertion.Proof() == nil {
		return &VerificationError{0, lib.ResolveLabel(label), ErrIncompleteProof, "no proof"}
	}
	//
	return NewExecutor(lib, label).WithDists(checkDists).Verify(assertion.Proof())
}
