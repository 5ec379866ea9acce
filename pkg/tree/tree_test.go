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
package tree

import (
	"testing"

	"github.com/consensys/go-metamath/pkg/mm"
	"github.com/consensys/go-metamath/pkg/util/assert"
)

func Test_Tree_01(t *testing.T) {
	t1 := f(x(), g(a()))
	//
	assert.Equal(t, uint(4), t1.Size())
	assert.True(t, t1.Equal(f(x(), g(a()))))
	assert.False(t, t1.Equal(f(y(), g(a()))))
	assert.False(t, t1.Equal(g(a())))
	assert.Equal(t, "(1 100 (2 3))", t1.String())
}

func Test_Flat_01(t *testing.T) {
	check_Flatten(t, a())
	check_Flatten(t, g(x()))
	check_Flatten(t, f(x(), y()))
	check_Flatten(t, f(g(f(x(), a())), f(y(), g(z()))))
}

func Test_Flat_02(t *testing.T) {
	flat := Flatten(f(g(x()), y()))
	// (f (g x) y)
	assert.Equal(t, uint(4), flat.Len())
	assert.Equal(t, []uint{1, 3}, flat.Children(0))
	assert.Equal(t, uint32(2), flat[1].Size)
	assert.True(t, flat.Subtree(1).Unflatten().Equal(g(x())))
	assert.Equal(t, mm.LabTok(1), flat.Root().Label)
}

func Test_Substitute_01(t *testing.T) {
	subst := SubstMap{X: g(y()), Y: a()}
	// Substitution is not recursive within bindings
	check_Substitute(t, f(x(), y()), subst, f(g(y()), a()))
	check_Substitute(t, z(), subst, z())
	check_Substitute(t, g(g(x())), subst, g(g(g(y()))))
	check_Substitute(t, a(), subst, a())
}

func Test_Substitute_02(t *testing.T) {
	subst := SubstMap{X: f(z(), z()), Z: g(a())}
	//
	check_Substitute(t, f(x(), f(z(), x())), subst, f(f(z(), z()), f(g(a()), f(z(), z()))))
	check_Substitute(t, f(y(), y()), subst, f(y(), y()))
}

func Test_Compose_01(t *testing.T) {
	first := SubstMap{X: f(y(), a())}
	second := SubstMap{Y: g(a()), X: a()}
	res := Compose(first, second, isVar)
	// First wins on collision
	assert.True(t, res.Equal(SubstMap{X: f(g(a()), a()), Y: g(a())}))
}

func Test_Compose_02(t *testing.T) {
	first := SubstMap{X: y()}
	second := SubstMap{Y: x()}
	res := Compose(first, second, isVar)
	// x -> x is dropped
	assert.True(t, res.Equal(SubstMap{Y: x()}))
	assert.Equal(t, []mm.LabTok{Y}, res.Keys())
}

func Test_Compose_03(t *testing.T) {
	first := SubstMap{X: g(z())}
	second := SubstMap{Z: a()}
	// Applying the composition equals applying each in turn
	t1 := f(x(), z())
	expected := Substitute(Substitute(t1, isVar, first), isVar, second)
	actual := Substitute(t1, isVar, Compose(first, second, isVar))
	//
	assert.True(t, expected.Equal(actual))
}

func Test_Update_01(t *testing.T) {
	first := SubstMap{X: a()}
	second := SubstMap{X: g(a()), Y: a()}
	res := Update(first, second, false)
	//
	assert.True(t, res.Equal(SubstMap{X: a(), Y: a()}))
	assert.Equal(t, 1, len(first))
	assert.Panics(t, func() { Update(first, second, true) })
	assert.Equal(t, 2, len(Update(first, SubstMap{Y: a()}, true)))
}

func Test_Variables_01(t *testing.T) {
	t1 := f(f(z(), x()), g(f(x(), a())))
	//
	assert.Equal(t, []mm.LabTok{X, Z}, CollectVariables(t1, isVar))
	assert.Equal(t, 0, len(CollectVariables(g(a()), isVar)))
	assert.True(t, ContainsVar(t1, Z))
	assert.False(t, ContainsVar(t1, Y))
	//
	vars := make(map[mm.LabTok]bool)
	CollectVariablesInto(t1, isVar, vars)
	CollectVariablesInto(y(), isVar, vars)
	assert.Equal(t, 3, len(vars))
}

func Test_Sentence_01(t *testing.T) {
	lib := mm.NewLibrary()
	sym := func(s string) mm.SymTok {
		tok, err := lib.CreateSymbol(s)
		assert.NoError(t, err)
		//
		return tok
	}
	label := func(s string, text string) mm.LabTok {
		l, err := lib.CreateLabel(s)
		assert.NoError(t, err)
		sent, err := lib.ParseSentence(text)
		assert.NoError(t, err)
		lib.AddSentence(l, sent)
		//
		return l
	}
	wff := sym("wff")
	//
	for _, s := range []string{"(", ")", "->", "-."} {
		lib.AddConstant(sym(s))
	}
	//
	sym("ph")
	sym("ps")
	wph, wps := label("wph", "wff ph"), label("wps", "wff ps")
	lib.SetTypes([]mm.LabTok{wph, wps})
	// Observe the pattern mentions ps before ph
	wi := label("wi", "wff ( ps -> ph )")
	lib.AddAssertion(wi, mm.NewAssertion(false, wi, []mm.LabTok{wph, wps}, nil))
	wn := label("wn", "wff -. ph")
	lib.AddAssertion(wn, mm.NewAssertion(false, wn, []mm.LabTok{wph}, nil))
	// wi (wn wps) wph = ( ph -> -. ps )
	t1 := NewTree(wi, wff, NewTree(wn, wff, VarTree(wps, wff)), VarTree(wph, wff))
	//
	assert.Equal(t, "wff ( ph -> -. ps )", lib.SentenceString(t1.Sentence(lib)))
	assert.Equal(t, "(wi (wn wps) wph)", t1.Format(lib))
}

// ==================================================================
// Framework
// ==================================================================

const (
	X mm.LabTok = 100
	Y mm.LabTok = 101
	Z mm.LabTok = 102
)

func isVar(l mm.LabTok) bool {
	return l >= 100
}

func a() Tree               { return NewTree(3, 1) }
func g(c Tree) Tree         { return NewTree(2, 1, c) }
func f(l Tree, r Tree) Tree { return NewTree(1, 1, l, r) }
func x() Tree               { return VarTree(X, 1) }
func y() Tree               { return VarTree(Y, 1) }
func z() Tree               { return VarTree(Z, 1) }

func check_Flatten(t *testing.T, t1 Tree) {
	flat := Flatten(t1)
	//
	assert.Equal(t, t1.Size(), flat.Len())
	assert.Equal(t, uint32(t1.Size()), flat.Root().Size)
	assert.True(t, flat.Unflatten().Equal(t1), "round trip of %s", t1.String())
}

func check_Substitute(t *testing.T, t1 Tree, subst SubstMap, expected Tree) {
	actual := Substitute(t1, isVar, subst)
	assert.True(t, actual.Equal(expected), "expected %s, got %s", expected.String(), actual.String())
	// Flat substitution must agree exactly
	flat := SubstituteFlat(Flatten(t1), isVar, FlattenMap(subst))
	assert.True(t, flat.Equal(Flatten(expected)), "flat substitution of %s", t1.String())
}
