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
	"github.com/consensys/go-metamath/pkg/util/collection/stack"
)

// Saved is the result of a proof step retained for later reuse.
type Saved struct {
	sentence mm.Sentence
	tree     ProofTree
	labels   []mm.LabTok
}

// Sentence returns the sentence which was saved.
func (p Saved) Sentence() mm.Sentence {
	return p.sentence
}

// An entry on the operand stack.  Start identifies the first step (within the
// engine's step list) of the derivation of this entry.
type entry struct {
	sentence mm.Sentence
	tree     ProofTree
	start    uint
}

type checkpoint struct {
	stack  *stack.Stack[entry]
	nsteps uint
}

// Engine is a stack machine which checks and executes proofs over a library.
// Each label processed either pushes a hypothesis, or applies an assertion to
// the topmost entries of the stack.  Checkpoints allow a sequence of steps to be
// undone atomically.  An engine is owned by a single goroutine, whilst the
// library it reads can be shared.
type Engine struct {
	lib *mm.Library
	// Theorem being proved (optional)
	frame *mm.Assertion
	// Distinct variable conditions of the frame, when being checked
	dists map[mm.DistPair]bool
	// Operand stack
	stack *stack.Stack[entry]
	// Steps processed, where every entry on the stack is derived by a
	// contiguous sequence of these steps.
	steps []mm.LabTok
	// Number of labels processed (for error reporting)
	count       uint
	checkpoints []checkpoint
}

// NewEngine constructs an engine with an empty stack over a given library.
func NewEngine(lib *mm.Library) *Engine {
	return &Engine{lib: lib, stack: stack.NewStack[entry]()}
}

// WithFrame restricts the hypotheses which can be used to those of a given
// theorem, and only allows assertions declared before it.
func (p *Engine) WithFrame(frame *mm.Assertion) *Engine {
	p.frame = frame
	return p
}

// WithDists enables checking of distinct variable conditions against the
// frame.  This requires a frame.
func (p *Engine) WithDists() *Engine {
	if p.frame == nil {
		panic("distinct variable checking requires a frame")
	}
	//
	p.dists = make(map[mm.DistPair]bool)
	//
	for _, d := range p.frame.AllDists() {
		p.dists[d] = true
	}
	//
	return p
}

// Library returns the library used by this engine.
func (p *Engine) Library() *mm.Library {
	return p.lib
}

// ProcessLabel executes a single step.  If the step fails, the stack is left
// unchanged.
func (p *Engine) ProcessLabel(label mm.LabTok) error {
	p.count++
	//
	sent := p.lib.Sentence(label)
	if sent == nil {
		return p.error(label, ErrUnknownLabel, "")
	}
	//
	assertion := p.lib.Assertion(label)
	//
	if assertion == nil {
		return p.processHypothesis(label, sent)
	} else if p.frame != nil &&
		p.lib.AssertionIndex(label) >= p.lib.AssertionIndex(p.frame.Thesis()) {
		return p.error(label, ErrUnknownLabel, "assertion not yet declared")
	}
	//
	return p.processAssertion(label, assertion)
}

func (p *Engine) processHypothesis(label mm.LabTok, sent mm.Sentence) error {
	if p.frame != nil && !p.frame.IsHyp(label) {
		return p.error(label, ErrUnknownLabel, "hypothesis not in scope")
	}
	//
	p.stack.Push(entry{sent, ProofTree{label, p.isEssential(label), sent, nil}, uint(len(p.steps))})
	p.steps = append(p.steps, label)
	//
	return nil
}

func (p *Engine) processAssertion(label mm.LabTok, assertion *mm.Assertion) error {
	var (
		hyps  = assertion.Hyps()
		n     = uint(len(hyps))
		subst = make(mm.SentenceMap)
	)
	//
	if p.stack.Len() < n {
		return p.error(label, ErrStackUnderflow, fmt.Sprintf("%d hypotheses, %d entries", n, p.stack.Len()))
	}
	// Match hypotheses without popping
	args := p.stack.Top(n)
	//
	for i, hyp := range hyps {
		pattern := p.lib.Sentence(hyp)
		actual := args[i].sentence
		//
		if uint(i) < assertion.NumFloating() {
			if actual[0] != pattern[0] {
				return p.error(label, ErrHypothesisMismatch, p.mismatch(hyp, actual))
			}
			//
			v, val := pattern[1], actual[1:]
			//
			if prev, ok := subst[v]; ok && !prev.Equal(val) {
				return p.error(label, ErrInconsistentSubstitution, p.lib.ResolveSymbol(v))
			}
			//
			subst[v] = val
		} else if !subst.Apply(pattern).Equal(actual) {
			return p.error(label, ErrHypothesisMismatch, p.mismatch(hyp, actual))
		}
	}
	//
	if p.dists != nil {
		if err := p.checkDists(label, assertion, subst); err != nil {
			return err
		}
	}
	// Commit to this step
	var (
		start    = uint(len(p.steps))
		result   = subst.Apply(p.lib.Sentence(label))
		popped   = p.stack.PopN(n)
		children = make([]ProofTree, n)
	)
	//
	if n > 0 {
		start = popped[0].start
	}
	//
	for i, arg := range popped {
		children[i] = arg.tree
	}
	//
	p.stack.Push(entry{result, ProofTree{label, p.isEssential(label), result, children}, start})
	p.steps = append(p.steps, label)
	//
	return nil
}

// A step is essential when its label is an essential hypothesis of the frame,
// or of any assertion when there is no frame.
func (p *Engine) isEssential(label mm.LabTok) bool {
	if p.frame != nil {
		return p.frame.IsEssHyp(label)
	}
	//
	return p.lib.IsEssential(label)
}

func (p *Engine) checkDists(label mm.LabTok, assertion *mm.Assertion, subst mm.SentenceMap) error {
	for _, d := range assertion.Dists() {
		for _, x := range p.varsOf(subst[d.X]) {
			for _, y := range p.varsOf(subst[d.Y]) {
				if x == y {
					return p.error(label, ErrDistinctVariables, fmt.Sprintf("%s shared",
						p.lib.ResolveSymbol(x)))
				} else if !p.dists[mm.NewDistPair(x, y)] {
					return p.error(label, ErrDistinctVariables, fmt.Sprintf("%s and %s not distinct",
						p.lib.ResolveSymbol(x), p.lib.ResolveSymbol(y)))
				}
			}
		}
	}
	//
	return nil
}

func (p *Engine) varsOf(sent mm.Sentence) []mm.SymTok {
	var vars []mm.SymTok
	//
	for _, sym := range sent {
		if p.lib.IsVarSymbol(sym) {
			vars = append(vars, sym)
		}
	}
	//
	return vars
}

// Tag saves the topmost entry of the stack for later reuse.
func (p *Engine) Tag() (Saved, error) {
	if p.stack.IsEmpty() {
		return Saved{}, p.error(0, ErrStackUnderflow, "nothing to save")
	}
	//
	top := p.stack.Peek(0)
	labels := p.steps[top.start:]
	//
	return Saved{top.sentence, top.tree, append([]mm.LabTok(nil), labels...)}, nil
}

// PushSaved pushes a previously saved result onto the stack.  Its steps are
// replayed into the step list without being checked again.
func (p *Engine) PushSaved(saved Saved) {
	p.stack.Push(entry{saved.sentence, saved.tree, uint(len(p.steps))})
	p.steps = append(p.steps, saved.labels...)
}

// Checkpoint records the current state, such that it can be restored by a
// matching Rollback.  Checkpoints nest.
func (p *Engine) Checkpoint() {
	p.checkpoints = append(p.checkpoints, checkpoint{p.stack.Clone(), uint(len(p.steps))})
}

// Rollback restores the state recorded by the most recent checkpoint, and
// discards that checkpoint.
func (p *Engine) Rollback() {
	n := len(p.checkpoints)
	if n == 0 {
		panic("rollback without checkpoint")
	}
	//
	cp := p.checkpoints[n-1]
	p.checkpoints = p.checkpoints[:n-1]
	p.stack = cp.stack
	p.steps = p.steps[:cp.nsteps]
}

// Commit discards the most recent checkpoint whilst retaining the changes made
// since it was recorded.
func (p *Engine) Commit() {
	n := len(p.checkpoints)
	if n == 0 {
		panic("commit without checkpoint")
	}
	//
	p.checkpoints = p.checkpoints[:n-1]
}

// Depth returns the number of entries on the stack.
func (p *Engine) Depth() uint {
	return p.stack.Len()
}

// Stack returns the sentences on the stack, bottom-most first.
func (p *Engine) Stack() []mm.Sentence {
	var sents []mm.Sentence
	//
	for _, e := range p.stack.Items() {
		sents = append(sents, e.sentence)
	}
	//
	return sents
}

// TreeStack returns the proof trees of the entries on the stack, bottom-most
// first.
func (p *Engine) TreeStack() []ProofTree {
	var trees []ProofTree
	//
	for _, e := range p.stack.Items() {
		trees = append(trees, e.tree)
	}
	//
	return trees
}

// Labels returns the steps processed so far, with every reused result
// expanded.  This is always a valid uncompressed proof of the stack.
func (p *Engine) Labels() []mm.LabTok {
	return append([]mm.LabTok(nil), p.steps...)
}

func (p *Engine) mismatch(hyp mm.LabTok, actual mm.Sentence) string {
	return fmt.Sprintf("%s expects \"%s\", found \"%s\"", p.lib.ResolveLabel(hyp),
		p.lib.SentenceString(p.lib.Sentence(hyp)), p.lib.SentenceString(actual))
}

func (p *Engine) error(label mm.LabTok, reason error, detail string) error {
	var name string
	//
	if label != 0 && uint(label) <= p.lib.NumLabels() {
		name = p.lib.ResolveLabel(label)
	}
	//
	return &VerificationError{p.count, name, reason, detail}
}
