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
	"errors"
	"fmt"

	"github.com/consensys/go-metamath/pkg/mm"
	"github.com/consensys/go-metamath/pkg/proof"
	"github.com/consensys/go-metamath/pkg/unify"
	log "github.com/sirupsen/logrus"
)

// ErrNoTemplate indicates no assertion matches a given template.
var ErrNoTemplate = errors.New("no matching assertion")

// Match describes an assertion matching a template.  Perm maps each template
// hypothesis to the index of the essential hypothesis it corresponds to, and
// Subst instantiates the assertion's variables in terms of the template.
type Match struct {
	Label mm.LabTok
	Perm  []int
	Subst mm.SentenceMap
}

// FindAssertion finds the first assertion whose essential hypotheses (in some
// order) and thesis match those of a given template.
func (p *Toolbox) FindAssertion(hyps []mm.Sentence, thesis mm.Sentence) (Match, bool) {
	target := joinSentences(hyps, thesis)
	//
	for _, label := range p.lib.Assertions() {
		assertion := p.lib.Assertion(label)
		ess := assertion.EssHyps()
		//
		if len(ess) != len(hyps) {
			continue
		}
		//
		perm := make([]int, len(hyps))
		for i := range perm {
			perm[i] = i
		}
		//
		for ok := true; ok; ok = nextPermutation(perm) {
			templ := make([]mm.Sentence, len(perm))
			//
			for i, j := range perm {
				templ[i] = p.lib.Sentence(ess[j])
			}
			//
			if substs := unify.UnifySentences(joinSentences(templ, p.lib.Sentence(label)), target, p.lib); len(substs) > 0 {
				return Match{label, perm, substs[0]}, true
			}
		}
	}
	//
	return Match{}, false
}

// BuildProver constructs a prover which applies the assertion matching a given
// template.  The floating hypotheses of the assertion are derived by classical
// search, using typeProvers for variables of the template.  Its essential
// hypotheses are derived by hypProvers, given in the order of the template's
// hypotheses.
func (p *Toolbox) BuildProver(hyps []mm.Sentence, thesis mm.Sentence, typeProvers map[mm.SymTok]Prover,
	hypProvers []Prover) (Prover, error) {
	if len(hyps) != len(hypProvers) {
		return nil, fmt.Errorf("%d hypotheses but %d provers", len(hyps), len(hypProvers))
	}
	//
	match, ok := p.FindAssertion(hyps, thesis)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoTemplate, p.lib.SentenceString(thesis))
	}
	//
	var (
		assertion = p.lib.Assertion(match.Label)
		inverse   = make([]int, len(match.Perm))
	)
	//
	for i, j := range match.Perm {
		inverse[j] = i
	}
	//
	log.Debugf("template %s matches %s", p.lib.SentenceString(thesis), p.lib.ResolveLabel(match.Label))
	//
	return Checked(func(lib *mm.Library, engine *proof.Engine) bool {
		for _, hyp := range assertion.FloatHyps() {
			if !p.proveClassical(match.Subst.Apply(lib.Sentence(hyp)), engine, typeProvers) {
				return false
			}
		}
		//
		for j := range assertion.EssHyps() {
			if !hypProvers[inverse[j]](lib, engine) {
				return false
			}
		}
		//
		return engine.ProcessLabel(match.Label) == nil
	}), nil
}

// Concatenate sentences, separated by 0.
func joinSentences(hyps []mm.Sentence, thesis mm.Sentence) mm.Sentence {
	var res mm.Sentence
	//
	for _, hyp := range hyps {
		res = append(res, hyp...)
		res = append(res, 0)
	}
	//
	return append(res, thesis...)
}

// Rearrange into the lexicographically next permutation, returning false when
// none remains.
func nextPermutation(perm []int) bool {
	i := len(perm) - 2
	for i >= 0 && perm[i] >= perm[i+1] {
		i--
	}
	//
	if i < 0 {
		return false
	}
	//
	j := len(perm) - 1
	for perm[j] <= perm[i] {
		j--
	}
	//
	perm[i], perm[j] = perm[j], perm[i]
	//
	for l, r := i+1, len(perm)-1; l < r; l, r = l+1, r-1 {
		perm[l], perm[r] = perm[r], perm[l]
	}
	//
	return true
}
