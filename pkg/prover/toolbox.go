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
package prover

import (
	"fmt"

	"github.com/consensys/go-metamath/pkg/earley"
	"github.com/consensys/go-metamath/pkg/mm"
	"github.com/consensys/go-metamath/pkg/proof"
	"github.com/consensys/go-metamath/pkg/tree"
	"github.com/consensys/go-metamath/pkg/unify"
	log "github.com/sirupsen/logrus"
)

// Strategy identifies a method for deriving type statements.
type Strategy uint8

const (
	// Classical is a backtracking search over all assertions without
	// essential hypotheses.
	Classical Strategy = iota
	// Earley parses the statement against a grammar derived from the library,
	// falling back to the classical search when no parse exists.
	Earley
)

// ParseStrategy converts the name of a strategy into a strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "classical":
		return Classical, nil
	case "earley":
		return Earley, nil
	}
	//
	return Classical, fmt.Errorf("unknown strategy \"%s\"", name)
}

func (p Strategy) String() string {
	if p == Earley {
		return "earley"
	}
	//
	return "classical"
}

// Toolbox provides proof search over a given library.  The library must not be
// modified once a toolbox is constructed for it.  A toolbox is itself read-only
// and can be shared between goroutines, provided each uses its own engine.
type Toolbox struct {
	lib    *mm.Library
	parser *earley.Parser
}

// NewToolbox constructs a toolbox for a given library, building the grammar
// used by the Earley strategy.  There is one production per type statement,
// and one per assertion without essential hypotheses or distinct variable
// conditions in which no variable appears twice.
func NewToolbox(lib *mm.Library) *Toolbox {
	grammar := earley.NewGrammar()
	//
	for _, label := range lib.TypeLabels() {
		sent := lib.Sentence(label)
		//
		if err := grammar.AddProduction(sent[0], label, sent[1:]); err != nil {
			panic(err.Error())
		}
	}
	//
	for _, label := range lib.Assertions() {
		if rhs, ok := production(lib, label); ok {
			if err := grammar.AddProduction(lib.Sentence(label)[0], label, rhs); err != nil {
				log.Debugf("skipping production for %s: %s", lib.ResolveLabel(label), err)
			}
		}
	}
	//
	log.Debugf("built grammar with %d productions", grammar.Size())
	//
	return &Toolbox{lib, earley.NewParser(grammar)}
}

// Determine the right-hand side of the production for a given assertion, where
// variables are replaced by their types.
func production(lib *mm.Library, label mm.LabTok) ([]mm.SymTok, bool) {
	assertion := lib.Assertion(label)
	//
	if len(assertion.EssHyps()) != 0 || len(assertion.Dists()) != 0 {
		return nil, false
	}
	//
	var (
		sent  = lib.Sentence(label)
		types = make(map[mm.SymTok]mm.SymTok)
		seen  = make(map[mm.SymTok]bool)
		rhs   = make([]mm.SymTok, 0, len(sent)-1)
	)
	// Variables take the type given by this assertion's own hypotheses
	for _, hyp := range assertion.FloatHyps() {
		types[lib.VarOf(hyp)] = lib.Sentence(hyp)[0]
	}
	//
	for _, sym := range sent[1:] {
		if !lib.IsVarSymbol(sym) {
			rhs = append(rhs, sym)
		} else if seen[sym] {
			return nil, false
		} else {
			seen[sym] = true
			rhs = append(rhs, types[sym])
		}
	}
	//
	return rhs, true
}

// Library returns the library of this toolbox.
func (p *Toolbox) Library() *mm.Library {
	return p.lib
}

// TypeProver constructs a prover for a given type statement using a given
// strategy.  Variables with an entry in varProvers are derived by that prover,
// rather than by their type statement.
func (p *Toolbox) TypeProver(strategy Strategy, sent mm.Sentence, varProvers map[mm.SymTok]Prover) Prover {
	if strategy == Earley {
		return p.EarleyTypeProver(sent, varProvers)
	}
	//
	return p.ClassicalTypeProver(sent, varProvers)
}

// ClassicalTypeProver constructs a prover deriving a given type statement by
// backtracking search.
func (p *Toolbox) ClassicalTypeProver(sent mm.Sentence, varProvers map[mm.SymTok]Prover) Prover {
	return func(_ *mm.Library, engine *proof.Engine) bool {
		return p.proveClassical(sent, engine, varProvers)
	}
}

// EarleyTypeProver constructs a prover deriving a given type statement by
// parsing it.
func (p *Toolbox) EarleyTypeProver(sent mm.Sentence, varProvers map[mm.SymTok]Prover) Prover {
	return func(_ *mm.Library, engine *proof.Engine) bool {
		return p.proveEarley(sent, engine, varProvers)
	}
}

// ProveType derives a given type statement from scratch, returning the labels
// of the derivation.
func (p *Toolbox) ProveType(strategy Strategy, sent mm.Sentence) ([]mm.LabTok, bool) {
	engine := proof.NewEngine(p.lib)
	//
	if !p.TypeProver(strategy, sent, nil)(p.lib, engine) || engine.Depth() != 1 {
		return nil, false
	}
	//
	return engine.Labels(), true
}

// Parse a type statement into its parse tree, where the children of each node
// follow the floating hypotheses of its assertion.
func (p *Toolbox) Parse(sent mm.Sentence) (tree.Tree, bool) {
	if len(sent) < 2 {
		return tree.Tree{}, false
	}
	//
	ptree, ok := p.parser.Parse(sent[1:], sent[0])
	if !ok {
		return tree.Tree{}, false
	}
	//
	return p.convert(ptree), true
}

// Reorder the children of a parse tree, which follow the order in which
// variables appear in the sentence.
func (p *Toolbox) convert(ptree earley.ParseTree) tree.Tree {
	assertion := p.lib.Assertion(ptree.Label)
	//
	if assertion == nil {
		return tree.VarTree(ptree.Label, ptree.Type)
	}
	//
	var (
		byVar = make(map[mm.SymTok]*earley.ParseTree)
		index = 0
	)
	//
	for _, sym := range p.lib.Sentence(ptree.Label)[1:] {
		if p.lib.IsVarSymbol(sym) {
			byVar[sym] = &ptree.Children[index]
			index++
		}
	}
	//
	children := make([]tree.Tree, assertion.NumFloating())
	//
	for i, hyp := range assertion.FloatHyps() {
		children[i] = p.convert(*byVar[p.lib.Sentence(hyp)[1]])
	}
	//
	return tree.NewTree(ptree.Label, ptree.Type, children...)
}

func (p *Toolbox) proveClassical(sent mm.Sentence, engine *proof.Engine, varProvers map[mm.SymTok]Prover) bool {
	if len(sent) < 2 {
		panic(fmt.Sprintf("invalid type statement of length %d", len(sent)))
	}
	//
	if len(sent) == 2 {
		if label := p.typeLabel(sent); label != 0 {
			return p.proveVar(label, engine, varProvers)
		}
	}
	//
	for _, label := range p.lib.AssertionsByType(sent[0]) {
		assertion := p.lib.Assertion(label)
		//
		if len(assertion.EssHyps()) != 0 {
			continue
		}
		//
		for _, subst := range unify.UnifySentences(p.lib.Sentence(label), sent, p.lib) {
			engine.Checkpoint()
			//
			if p.proveFloating(sent, assertion, subst, engine, varProvers) && engine.ProcessLabel(label) == nil {
				engine.Commit()
				return true
			}
			//
			engine.Rollback()
		}
	}
	//
	log.Debugf("no derivation for %s", p.lib.SentenceString(sent))
	//
	return false
}

// Prove the floating hypotheses of an assertion instantiated by a given
// substitution, in order.
func (p *Toolbox) proveFloating(goal mm.Sentence, assertion *mm.Assertion, subst mm.SentenceMap,
	engine *proof.Engine, varProvers map[mm.SymTok]Prover) bool {
	for _, hyp := range assertion.FloatHyps() {
		hsent := p.lib.Sentence(hyp)
		val, ok := subst[hsent[1]]
		//
		if !ok {
			return false
		}
		//
		sub := append(mm.Sentence{hsent[0]}, val...)
		// A subgoal identical to the goal cannot lead anywhere
		if sub.Equal(goal) || !p.proveClassical(sub, engine, varProvers) {
			return false
		}
	}
	//
	return true
}

func (p *Toolbox) proveEarley(sent mm.Sentence, engine *proof.Engine, varProvers map[mm.SymTok]Prover) bool {
	t, ok := p.Parse(sent)
	//
	if !ok {
		log.Debugf("no parse for %s, falling back to classical search", p.lib.SentenceString(sent))
		return p.proveClassical(sent, engine, varProvers)
	}
	//
	engine.Checkpoint()
	//
	if p.unwind(t, engine, varProvers) {
		engine.Commit()
		return true
	}
	//
	engine.Rollback()
	//
	return false
}

// Emit the labels of a parse tree in post-order.
func (p *Toolbox) unwind(t tree.Tree, engine *proof.Engine, varProvers map[mm.SymTok]Prover) bool {
	if p.lib.IsVarLabel(t.Label) {
		return p.proveVar(t.Label, engine, varProvers)
	}
	//
	for _, child := range t.Children {
		if !p.unwind(child, engine, varProvers) {
			return false
		}
	}
	//
	return engine.ProcessLabel(t.Label) == nil
}

func (p *Toolbox) proveVar(label mm.LabTok, engine *proof.Engine, varProvers map[mm.SymTok]Prover) bool {
	if prover, ok := varProvers[p.lib.VarOf(label)]; ok {
		return prover(p.lib, engine)
	}
	//
	return engine.ProcessLabel(label) == nil
}

// Find the type statement matching a given sentence, or 0.
func (p *Toolbox) typeLabel(sent mm.Sentence) mm.LabTok {
	if !p.lib.IsVarSymbol(sent[1]) {
		return 0
	} else if label := p.lib.TypeOf(sent[1]); p.lib.Sentence(label).Equal(sent) {
		return label
	}
	//
	return 0
}
