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

import (
	"errors"
	"testing"

	"github.com/consensys/go-metamath/pkg/util/assert"
)

func Test_Token_01(t *testing.T) {
	for _, s := range []string{"(", "->", "|-", "wff", "ph", "A.", "~"} {
		assert.True(t, IsSymbol(s), "expected symbol %s", s)
	}
	//
	for _, s := range []string{"", "$a", "a b", "a\tb", "é"} {
		assert.False(t, IsSymbol(s), "unexpected symbol %s", s)
	}
}

func Test_Token_02(t *testing.T) {
	for _, s := range []string{"ax-1", "wph", "mp2.b", "a_b", "1"} {
		assert.True(t, IsLabel(s), "expected label %s", s)
	}
	//
	for _, s := range []string{"", "->", "a(b", "|-", "x y"} {
		assert.False(t, IsLabel(s), "unexpected label %s", s)
	}
}

func Test_Library_01(t *testing.T) {
	lib := NewLibrary()
	s1, err1 := lib.CreateSymbol("wff")
	s2, err2 := lib.CreateSymbol("wff")
	s3, err3 := lib.CreateSymbol("ph")
	//
	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.NoError(t, err3)
	assert.Equal(t, s1, s2)
	assert.NotEqual(t, s1, s3)
	assert.NotEqual(t, SymTok(0), s1)
	assert.Equal(t, "ph", lib.ResolveSymbol(s3))
	assert.Equal(t, s3, lib.GetSymbol("ph"))
	assert.Equal(t, SymTok(0), lib.GetSymbol("ps"))
	assert.Equal(t, uint(2), lib.NumSymbols())
}

func Test_Library_02(t *testing.T) {
	lib := NewLibrary()
	//
	_, err := lib.CreateSymbol("$x")
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = lib.CreateLabel("a->b")
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.True(t, errors.Is(err, ErrInvalidToken))
	assert.Equal(t, uint(0), lib.NumLabels())
}

func Test_Library_03(t *testing.T) {
	lib := newTestLibrary(t)
	wff := lib.GetSymbol("wff")
	turnstile := lib.GetSymbol("|-")
	// Declaration order is preserved per type
	assert.Equal(t, []LabTok{lib.GetLabel("wi")}, lib.AssertionsByType(wff))
	assert.Equal(t, []LabTok{lib.GetLabel("ax-1"), lib.GetLabel("ax-mp")}, lib.AssertionsByType(turnstile))
	assert.Equal(t, 3, len(lib.Assertions()))
}

func Test_Library_04(t *testing.T) {
	lib := newTestLibrary(t)
	wph := lib.GetLabel("wph")
	ph := lib.GetSymbol("ph")
	// Type statements
	assert.True(t, lib.IsVarLabel(wph))
	assert.False(t, lib.IsVarLabel(lib.GetLabel("wi")))
	assert.True(t, lib.IsVarSymbol(ph))
	assert.False(t, lib.IsVarSymbol(lib.GetSymbol("(")))
	assert.Equal(t, wph, lib.TypeOf(ph))
	assert.Equal(t, ph, lib.VarOf(wph))
	assert.Equal(t, []LabTok{wph, lib.GetLabel("wps")}, lib.TypeLabels())
	// Hypotheses
	assert.True(t, lib.IsHypothesis(wph))
	assert.False(t, lib.IsEssential(wph))
	assert.True(t, lib.IsEssential(lib.GetLabel("min")))
	assert.False(t, lib.IsHypothesis(lib.GetLabel("ax-mp")))
	// Constants
	assert.True(t, lib.IsConstant(lib.GetSymbol("->")))
	assert.False(t, lib.IsConstant(ph))
}

func Test_Library_05(t *testing.T) {
	lib := newTestLibrary(t)
	ax := lib.Assertion(lib.GetLabel("ax-mp"))
	// Floating hypotheses precede essential ones
	assert.Equal(t, uint(2), ax.NumFloating())
	assert.Equal(t, []LabTok{lib.GetLabel("wph"), lib.GetLabel("wps")}, ax.FloatHyps())
	assert.Equal(t, []LabTok{lib.GetLabel("min"), lib.GetLabel("maj")}, ax.EssHyps())
	assert.True(t, ax.IsEssHyp(lib.GetLabel("maj")))
	assert.False(t, ax.IsEssHyp(lib.GetLabel("wph")))
	assert.False(t, ax.IsTheorem())
	assert.Panics(t, func() { ax.AddProof(nil) })
}

func Test_Library_06(t *testing.T) {
	lib := newTestLibrary(t)
	sent, err := lib.ParseSentence("|- ( ph -> ps )")
	//
	assert.NoError(t, err)
	assert.Equal(t, 6, len(sent))
	assert.Equal(t, "|- ( ph -> ps )", lib.SentenceString(sent))
	assert.Equal(t, lib.GetSymbol("|-"), sent.Type())
	//
	_, err = lib.ParseSentence("|- ( ch -> ps )")
	assert.NotEqual(t, nil, err)
}

func Test_Library_07(t *testing.T) {
	lib := newTestLibrary(t)
	label := lib.GetLabel("wi")
	// Sentences are immutable once registered
	assert.Panics(t, func() { lib.AddSentence(label, Sentence{1}) })
	assert.Panics(t, func() { lib.SetTypes(nil) })
}

func Test_Sentence_01(t *testing.T) {
	lib := newTestLibrary(t)
	sent, _ := lib.ParseSentence("wff ( ph -> ps )")
	ph, ps := lib.GetSymbol("ph"), lib.GetSymbol("ps")
	body, _ := lib.ParseSentence("( ps -> ph )")
	m := SentenceMap{ph: body, ps: Sentence{ph}}
	//
	res := m.Apply(sent)
	assert.Equal(t, "wff ( ( ps -> ph ) -> ph )", lib.SentenceString(res))
	assert.True(t, res.Contains(ph))
	assert.False(t, sent.Equal(res))
}

func Test_DistPair_01(t *testing.T) {
	assert.Equal(t, DistPair{1, 2}, NewDistPair(2, 1))
	assert.Equal(t, NewDistPair(1, 2), NewDistPair(2, 1))
	assert.Panics(t, func() { NewDistPair(3, 3) })
}

// ==================================================================
// Framework
// ==================================================================

// Construct a small propositional library programmatically:
//
//	wff ph, wff ps, wi: wff ( ph -> ps ),
//	ax-1: |- ( ph -> ( ps -> ph ) ),
//	ax-mp: |- ph, |- ( ph -> ps ) => |- ps
func newTestLibrary(t *testing.T) *Library {
	lib := NewLibrary()
	//
	for _, c := range []string{"wff", "|-", "(", ")", "->"} {
		lib.AddConstant(mustSymbol(t, lib, c))
	}
	//
	for _, v := range []string{"ph", "ps"} {
		mustSymbol(t, lib, v)
	}
	//
	wph := addSentence(t, lib, "wph", "wff ph")
	wps := addSentence(t, lib, "wps", "wff ps")
	lib.SetTypes([]LabTok{wph, wps})
	//
	wi := addSentence(t, lib, "wi", "wff ( ph -> ps )")
	lib.AddAssertion(wi, NewAssertion(false, wi, []LabTok{wph, wps}, nil))
	ax1 := addSentence(t, lib, "ax-1", "|- ( ph -> ( ps -> ph ) )")
	lib.AddAssertion(ax1, NewAssertion(false, ax1, []LabTok{wph, wps}, nil))
	min := addSentence(t, lib, "min", "|- ph")
	maj := addSentence(t, lib, "maj", "|- ( ph -> ps )")
	mp := addSentence(t, lib, "ax-mp", "|- ps")
	lib.AddAssertion(mp, NewAssertion(false, mp, []LabTok{wph, wps}, []LabTok{min, maj}))
	//
	return lib
}

func mustSymbol(t *testing.T, lib *Library, name string) SymTok {
	sym, err := lib.CreateSymbol(name)
	assert.NoError(t, err)
	//
	return sym
}

func addSentence(t *testing.T, lib *Library, name string, text string) LabTok {
	label, err := lib.CreateLabel(name)
	assert.NoError(t, err)
	sent, err := lib.ParseSentence(text)
	assert.NoError(t, err)
	lib.AddSentence(label, sent)
	//
	return label
}

func Test_Library_08(t *testing.T) {
	lib := newTestLibrary(t)
	//
	assert.Equal(t, 0, lib.AssertionIndex(lib.GetLabel("wi")))
	assert.Equal(t, 2, lib.AssertionIndex(lib.GetLabel("ax-mp")))
	assert.Equal(t, -1, lib.AssertionIndex(lib.GetLabel("wph")))
	assert.True(t, lib.IsTypeConstant(lib.GetSymbol("wff")))
	assert.False(t, lib.IsTypeConstant(lib.GetSymbol("|-")))
}
