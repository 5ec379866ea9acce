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
package unify

import (
	"math/rand"
	"testing"

	"github.com/consensys/go-metamath/pkg/mm"
	"github.com/consensys/go-metamath/pkg/tree"
	"github.com/consensys/go-metamath/pkg/util/assert"
)

func Test_Unilateral_01(t *testing.T) {
	subst, ok := Unilateral(f(x(), y()), f(g(a()), a()), isVar)
	//
	assert.True(t, ok)
	assert.True(t, subst.Equal(tree.SubstMap{X: g(a()), Y: a()}))
}

func Test_Unilateral_02(t *testing.T) {
	// Repeated variables must match equal subtrees
	_, ok := Unilateral(f(x(), x()), f(g(a()), a()), isVar)
	assert.False(t, ok)
	//
	subst, ok := Unilateral(f(x(), x()), f(g(a()), g(a())), isVar)
	assert.True(t, ok)
	assert.Equal(t, 1, len(subst))
}

func Test_Unilateral_03(t *testing.T) {
	// Target variables are treated literally
	_, ok := Unilateral(f(a(), x()), f(y(), a()), isVar)
	assert.False(t, ok)
	//
	subst, ok := Unilateral(g(x()), g(y()), isVar)
	assert.True(t, ok)
	assert.True(t, subst.Equal(tree.SubstMap{X: y()}))
}

func Test_Unilateral_04(t *testing.T) {
	session := NewUnilateralSession(isVar)
	session.AddTrees(x(), g(a()))
	session.AddTrees(f(x(), y()), f(g(a()), a()))
	assert.False(t, session.HasFailed())
	//
	subst, ok := session.Unify()
	assert.True(t, ok)
	assert.True(t, subst.Equal(tree.SubstMap{X: g(a()), Y: a()}))
	//
	session.AddTrees(y(), g(a()))
	assert.True(t, session.HasFailed())
	//
	_, ok = session.Unify()
	assert.False(t, ok)
}

func Test_Unilateral_05(t *testing.T) {
	assert.Panics(t, func() { Unilateral(tree.NewTree(1, 1, a()), f(a(), a()), isVar) })
}

func Test_Bilateral_01(t *testing.T) {
	check_Unify(t, f(x(), a()), f(g(y()), y()), true)
	check_Unify(t, f(x(), y()), f(y(), x()), true)
	check_Unify(t, x(), x(), true)
	check_Unify(t, g(x()), f(x(), x()), false)
	check_Unify(t, f(x(), x()), f(a(), g(a())), false)
}

func Test_Bilateral_02(t *testing.T) {
	// Occurs check
	check_Unify(t, x(), g(x()), false)
	check_Unify(t, f(x(), y()), f(g(y()), g(x())), false)
	check_Unify(t, f(x(), y()), f(y(), g(x())), false)
}

func Test_Bilateral_03(t *testing.T) {
	session := NewBilateral(isVar)
	// Mutually recursive bindings
	session.AddTrees(x(), f(y(), a()))
	session.AddTrees(y(), g(x()))
	// No single comparison is contradictory
	assert.False(t, session.HasFailed())
	assert.False(t, session.IsUnifiable())
	assert.True(t, session.HasFailed())
	//
	_, ok := session.Unify()
	assert.False(t, ok)
	// Failure is sticky
	session.AddTrees(a(), a())
	assert.False(t, session.IsUnifiable())
}

func Test_Bilateral_04(t *testing.T) {
	session := NewBilateral(isVar)
	session.AddTrees(x(), g(y()))
	session.AddTrees(y(), g(z()))
	session.AddTrees(z(), a())
	//
	subst, ok := session.Unify()
	assert.True(t, ok)
	assert.True(t, subst.Equal(tree.SubstMap{X: g(g(a())), Y: g(a()), Z: a()}))
	check_Idempotent(t, subst)
}

func Test_Bilateral_05(t *testing.T) {
	session := NewBilateral(isVar)
	session.AddTrees(x(), g(y()))
	clone := session.Clone()
	session.AddTrees(x(), a())
	clone.AddTrees(y(), a())
	//
	assert.True(t, session.HasFailed())
	assert.False(t, clone.HasFailed())
	//
	subst, ok := clone.UnifyFlat()
	assert.True(t, ok)
	assert.True(t, subst[X].Equal(tree.Flatten(g(a()))))
}

func Test_Bilateral_06(t *testing.T) {
	session := NewBilateral(isVar)
	session.AddFlatTrees(tree.Flatten(f(x(), x())), tree.Flatten(f(y(), z())))
	//
	subst, ok := session.Unify()
	assert.True(t, ok)
	check_Idempotent(t, subst)
	// All three variables collapse to one
	s1 := tree.Substitute(x(), isVar, subst)
	assert.True(t, s1.Equal(tree.Substitute(y(), isVar, subst)))
	assert.True(t, s1.Equal(tree.Substitute(z(), isVar, subst)))
}

func Test_Bilateral_07(t *testing.T) {
	// Unifying against the binding of w leads back to w through z
	p1 := h(f(f(z(), z()), a()), w(), f(z(), w()))
	p2 := h(w(), y(), f(y(), f(y(), w())))
	check_Unify(t, p1, p2, false)
	//
	session := NewBilateral(isVar)
	session.AddTrees(h(f(f(z(), z()), a()), w(), f(z(), w())), h(w(), y(), f(y(), f(y(), w()))))
	assert.False(t, session.IsUnifiable())
	//
	_, ok := session.Unify()
	assert.False(t, ok)
}

func Test_Bilateral_08(t *testing.T) {
	session := NewBilateral(isVar)
	session.AddTrees(x(), g(y()))
	session.AddTrees(y(), g(x()))
	assert.False(t, session.HasFailed())
	// Binding x a second time walks through y back to x
	session.AddTrees(x(), g(g(a())))
	assert.True(t, session.HasFailed())
}

func Test_Adapter_01(t *testing.T) {
	subst := tree.SubstMap{X: g(y())}
	res, ok := Adapter(f(x(), z()), f(g(a()), y()), isVar, subst)
	//
	assert.True(t, ok)
	assert.True(t, tree.Substitute(f(x(), z()), isVar, res).Equal(tree.Substitute(f(g(a()), y()), isVar, res)))
	assert.True(t, res[X].Equal(g(a())))
	//
	_, ok = Adapter(x(), a(), isVar, subst)
	assert.False(t, ok)
}

func Test_Agreement_01(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	//
	for i := 0; i < 2000; i++ {
		p1 := randomTree(rng, 3)
		p2 := randomTree(rng, 3)
		check_Agreement(t, p1, p2)
	}
}

func Test_Agreement_02(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	// Bias towards unifiable pairs by matching a tree against an instance
	for i := 0; i < 1000; i++ {
		p1 := randomTree(rng, 3)
		p2 := tree.Substitute(p1, isVar, tree.SubstMap{X: randomTree(rng, 1), Z: randomTree(rng, 2)})
		check_Agreement(t, p1, p2)
	}
}

func Test_Agreement_03(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	// Sessions of several pairs over four variables
	for i := 0; i < 3000; i++ {
		var ps, qs []tree.Tree
		//
		for j := 0; j < 3; j++ {
			ps = append(ps, randomWideTree(rng, 2+rng.Intn(2)))
			qs = append(qs, randomWideTree(rng, 2+rng.Intn(2)))
		}
		//
		check_SessionAgreement(t, ps, qs)
	}
}

func Test_Sentences_01(t *testing.T) {
	lib := newTestLibrary(t)
	templ := sentence(t, lib, "wff ( ph -> ps )")
	target := sentence(t, lib, "wff ( ph -> ( ps -> ph ) )")
	res := UnifySentences(templ, target, lib)
	//
	assert.Equal(t, 1, len(res))
	assert.Equal(t, "ph", lib.SentenceString(res[0][lib.GetSymbol("ph")]))
	assert.Equal(t, "( ps -> ph )", lib.SentenceString(res[0][lib.GetSymbol("ps")]))
}

func Test_Sentences_02(t *testing.T) {
	lib := newTestLibrary(t)
	// Ambiguous matches enumerated with shorter runs first
	templ := sentence(t, lib, "wff ph -> ps")
	target := sentence(t, lib, "wff ch -> ch -> ch")
	res := UnifySentences(templ, target, lib)
	//
	assert.Equal(t, 2, len(res))
	assert.Equal(t, "ch", lib.SentenceString(res[0][lib.GetSymbol("ph")]))
	assert.Equal(t, "ch -> ch", lib.SentenceString(res[1][lib.GetSymbol("ph")]))
}

func Test_Sentences_03(t *testing.T) {
	lib := newTestLibrary(t)
	// Repeated variables, and constants mismatching
	assert.Equal(t, 0, len(UnifySentences(sentence(t, lib, "wff ( ph -> ph )"),
		sentence(t, lib, "wff ( ps -> ch )"), lib)))
	assert.Equal(t, 1, len(UnifySentences(sentence(t, lib, "wff ( ph -> ph )"),
		sentence(t, lib, "wff ( ch -> ch )"), lib)))
	assert.Equal(t, 0, len(UnifySentences(sentence(t, lib, "|- ph"), sentence(t, lib, "wff ph"), lib)))
	// Variables cannot match empty runs
	assert.Equal(t, 0, len(UnifySentences(sentence(t, lib, "wff ( ph )"), sentence(t, lib, "wff ( )"), lib)))
}

func Test_Sentences_04(t *testing.T) {
	lib := newTestLibrary(t)
	// Separators cannot be spanned
	templ := append(sentence(t, lib, "|- ph"), append(mm.Sentence{0}, sentence(t, lib, "|- ps")...)...)
	target := append(sentence(t, lib, "|- ch"), append(mm.Sentence{0}, sentence(t, lib, "|- ( ch )")...)...)
	res := UnifySentences(templ, target, lib)
	//
	assert.Equal(t, 1, len(res))
	assert.Equal(t, "ch", lib.SentenceString(res[0][lib.GetSymbol("ph")]))
	assert.Equal(t, "( ch )", lib.SentenceString(res[0][lib.GetSymbol("ps")]))
}

// ==================================================================
// Framework
// ==================================================================

const (
	X mm.LabTok = 100
	Y mm.LabTok = 101
	Z mm.LabTok = 102
	W mm.LabTok = 103
)

func isVar(l mm.LabTok) bool {
	return l >= 100
}

func a() tree.Tree                         { return tree.NewTree(3, 1) }
func g(c tree.Tree) tree.Tree              { return tree.NewTree(2, 1, c) }
func f(l tree.Tree, r tree.Tree) tree.Tree { return tree.NewTree(1, 1, l, r) }
func x() tree.Tree                         { return tree.VarTree(X, 1) }
func y() tree.Tree                         { return tree.VarTree(Y, 1) }
func z() tree.Tree                         { return tree.VarTree(Z, 1) }
func w() tree.Tree                         { return tree.VarTree(W, 1) }

func h(l tree.Tree, m tree.Tree, r tree.Tree) tree.Tree {
	return tree.NewTree(4, 1, l, m, r)
}

func randomTree(rng *rand.Rand, depth int) tree.Tree {
	n := 5
	if depth > 0 {
		n = 7
	}
	//
	switch rng.Intn(n) {
	case 0:
		return a()
	case 1:
		return x()
	case 2:
		return y()
	case 3, 4:
		return z()
	case 5:
		return g(randomTree(rng, depth-1))
	default:
		return f(randomTree(rng, depth-1), randomTree(rng, depth-1))
	}
}

func randomWideTree(rng *rand.Rand, depth int) tree.Tree {
	if depth == 0 {
		return []tree.Tree{a(), x(), y(), z(), w()}[rng.Intn(5)]
	}
	//
	switch rng.Intn(8) {
	case 0:
		return a()
	case 1:
		return x()
	case 2:
		return y()
	case 3:
		return z()
	case 4:
		return w()
	case 5:
		return g(randomWideTree(rng, depth-1))
	default:
		return f(randomWideTree(rng, depth-1), randomWideTree(rng, depth-1))
	}
}

// Check a session over several pairs agrees with slow unification of the
// pairs combined into one.
func check_SessionAgreement(t *testing.T, ps []tree.Tree, qs []tree.Tree) {
	session := NewBilateral(isVar)
	//
	for i := range ps {
		session.AddTrees(ps[i], qs[i])
	}
	//
	subst, ok1 := session.Unify()
	_, ok2 := Slow(h(ps[0], ps[1], ps[2]), h(qs[0], qs[1], qs[2]), isVar, nil)
	//
	assert.Equal(t, ok2, ok1, "agreement on %v and %v", ps, qs)
	//
	if ok1 {
		for i := range ps {
			s1 := tree.Substitute(ps[i], isVar, subst)
			s2 := tree.Substitute(qs[i], isVar, subst)
			assert.True(t, s1.Equal(s2), "unifier of %s and %s", ps[i].String(), qs[i].String())
		}
		//
		check_Idempotent(t, subst)
	}
}

func check_Unify(t *testing.T, p1 tree.Tree, p2 tree.Tree, expected bool) {
	subst, ok := Quick(p1, p2, isVar)
	assert.Equal(t, expected, ok, "quick unification of %s and %s", p1.String(), p2.String())
	//
	if ok {
		s1 := tree.Substitute(p1, isVar, subst)
		s2 := tree.Substitute(p2, isVar, subst)
		assert.True(t, s1.Equal(s2), "unifier of %s and %s", p1.String(), p2.String())
		check_Idempotent(t, subst)
	}
	//
	check_Agreement(t, p1, p2)
}

func check_Agreement(t *testing.T, p1 tree.Tree, p2 tree.Tree) {
	quick, ok1 := Quick(p1, p2, isVar)
	slow, ok2 := Slow(p1, p2, isVar, nil)
	//
	assert.Equal(t, ok2, ok1, "agreement on %s and %s", p1.String(), p2.String())
	//
	if ok1 && ok2 {
		q := tree.Substitute(p1, isVar, quick)
		s := tree.Substitute(p1, isVar, slow)
		assert.True(t, tree.Substitute(p2, isVar, slow).Equal(s))
		// Most general unifiers agree up to renaming of variables
		assert.True(t, renaming(q, s, make(map[mm.LabTok]mm.LabTok), make(map[mm.LabTok]mm.LabTok)),
			"unifiers of %s and %s give %s and %s", p1.String(), p2.String(), q.String(), s.String())
	}
}

func check_Idempotent(t *testing.T, subst tree.SubstMap) {
	for k, v := range subst {
		assert.True(t, tree.Substitute(v, isVar, subst).Equal(v), "binding of %d not resolved", k)
	}
}

// Check two trees are equal up to a bijective renaming of variables.
func renaming(t1 tree.Tree, t2 tree.Tree, fwd map[mm.LabTok]mm.LabTok, bwd map[mm.LabTok]mm.LabTok) bool {
	if isVar(t1.Label) && isVar(t2.Label) {
		l1, ok1 := fwd[t1.Label]
		l2, ok2 := bwd[t2.Label]
		//
		if !ok1 && !ok2 {
			fwd[t1.Label] = t2.Label
			bwd[t2.Label] = t1.Label
			//
			return true
		}
		//
		return ok1 && ok2 && l1 == t2.Label && l2 == t1.Label
	} else if t1.Label != t2.Label || len(t1.Children) != len(t2.Children) {
		return false
	}
	//
	for i := range t1.Children {
		if !renaming(t1.Children[i], t2.Children[i], fwd, bwd) {
			return false
		}
	}
	//
	return true
}

func newTestLibrary(t *testing.T) *mm.Library {
	lib := mm.NewLibrary()
	//
	for _, s := range []string{"wff", "|-", "(", ")", "->"} {
		sym, err := lib.CreateSymbol(s)
		assert.NoError(t, err)
		lib.AddConstant(sym)
	}
	//
	var types []mm.LabTok
	//
	for _, v := range []string{"ph", "ps", "ch"} {
		_, err := lib.CreateSymbol(v)
		assert.NoError(t, err)
		label, err := lib.CreateLabel("w" + v)
		assert.NoError(t, err)
		lib.AddSentence(label, sentence(t, lib, "wff "+v))
		types = append(types, label)
	}
	//
	lib.SetTypes(types)
	//
	return lib
}

func sentence(t *testing.T, lib *mm.Library, text string) mm.Sentence {
	sent, err := lib.ParseSentence(text)
	assert.NoError(t, err)
	//
	return sent
}
