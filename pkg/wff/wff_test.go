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
package wff

import (
	"testing"

	"github.com/consensys/go-metamath/pkg/mm/reader"
	"github.com/consensys/go-metamath/pkg/prover"
	"github.com/consensys/go-metamath/pkg/util/assert"
)

var (
	ph = &Var{"ph"}
	ps = &Var{"ps"}
	ch = &Var{"ch"}
)

const primitive = `
  $c ( ) -> -. wff $.
  $v ph ps ch $.
  wph $f wff ph $.
  wps $f wff ps $.
  wch $f wff ch $.
  wn $a wff -. ph $.
  wi $a wff ( ph -> ps ) $.
`

func Test_Wff_01(t *testing.T) {
	check_String(t, ph, "ph")
	check_String(t, &Not{ph}, "-. ph")
	check_String(t, &Imp{ph, &Not{ps}}, "( ph -> -. ps )")
	check_String(t, &Biimp{ph, ps}, "( ph <-> ps )")
	check_String(t, &And{ph, ps}, "( ph /\\ ps )")
	check_String(t, &Or{ph, ps}, "( ph \\/ ps )")
	check_String(t, &Nand{ph, ps}, "( ph -/\\ ps )")
	check_String(t, &Xor{ph, ps}, "( ph \\/_ ps )")
	check_String(t, &And{&Or{ph, ps}, &Not{ch}}, "( ( ph \\/ ps ) /\\ -. ch )")
}

func Test_Wff_02(t *testing.T) {
	check_Primitive(t, ph, "ph")
	check_Primitive(t, &Imp{ph, &Not{ps}}, "( ph -> -. ps )")
	check_Primitive(t, &And{ph, ps}, "-. ( ph -> -. ps )")
	check_Primitive(t, &Or{ph, ps}, "( -. ph -> ps )")
	check_Primitive(t, &Biimp{ph, ps}, "-. ( ( ph -> ps ) -> -. ( ps -> ph ) )")
	check_Primitive(t, &Nand{ph, ps}, "-. -. ( ph -> -. ps )")
	check_Primitive(t, &Xor{ph, ps}, "-. -. ( ( ph -> ps ) -> -. ( ps -> ph ) )")
	check_Primitive(t, &Not{&And{ph, ps}}, "-. -. ( ph -> -. ps )")
}

func Test_Wff_03(t *testing.T) {
	check_Primitive(t, &Or{&And{ph, ps}, ch}, "( -. -. ( ph -> -. ps ) -> ch )")
	check_Primitive(t, &Imp{&Or{ph, ps}, &Biimp{ps, ch}},
		"( ( -. ph -> ps ) -> -. ( ( ps -> ch ) -> -. ( ch -> ps ) ) )")
}

func Test_Wff_04(t *testing.T) {
	// Primitive forms are equivalent to the original
	formulas := []Wff{
		&And{ph, ps}, &Or{ph, ps}, &Biimp{ph, ps}, &Nand{ph, ps}, &Xor{ph, ps},
		&Xor{&Nand{ph, ch}, &Or{ps, &Not{ch}}},
		&Biimp{&And{ph, &Xor{ps, ch}}, &Imp{ch, &Nand{ph, ph}}},
	}
	//
	for _, w := range formulas {
		prim := PrimitiveForm(w)
		//
		for i := 0; i < 8; i++ {
			env := map[string]bool{"ph": i&1 != 0, "ps": i&2 != 0, "ch": i&4 != 0}
			assert.Equal(t, Eval(w, env), Eval(prim, env), "%s under %v", String(w), env)
		}
	}
}

func Test_Wff_05(t *testing.T) {
	lib, err := reader.ReadString("test.mm", primitive)
	assert.NoError(t, err)
	//
	tb := prover.NewToolbox(lib)
	w := &Or{&And{ph, ps}, ch}
	// Only the primitive form can be written in this library
	_, err = Sentence(lib, w)
	assert.True(t, err != nil)
	//
	sent, err := Sentence(lib, PrimitiveForm(w))
	assert.NoError(t, err)
	assert.Equal(t, "wff ( -. -. ( ph -> -. ps ) -> ch )", lib.SentenceString(sent))
	//
	for _, s := range []prover.Strategy{prover.Classical, prover.Earley} {
		labels, ok := tb.ProveType(s, sent)
		assert.True(t, ok)
		assert.Equal(t, "wph wps wn wi wn wn wch wi", lib.LabelsString(labels))
	}
}

func Test_Wff_06(t *testing.T) {
	// Every kind of formula is handled, and nothing else is
	for _, w := range []Wff{ph, &Not{ph}, &Imp{ph, ps}, &Biimp{ph, ps}, &And{ph, ps}, &Or{ph, ps},
		&Nand{ph, ps}, &Xor{ph, ps}} {
		assert.True(t, String(w) != "")
		assert.True(t, isPrimitive(PrimitiveForm(w)), "%s", String(w))
		assert.Equal(t, Eval(w, nil), Eval(PrimitiveForm(w), nil), "%s", String(w))
	}
	//
	assert.Panics(t, func() { String(nil) })
	assert.Panics(t, func() { PrimitiveForm(nil) })
	assert.Panics(t, func() { Eval(nil, nil) })
}

func check_String(t *testing.T, w Wff, expected string) {
	assert.Equal(t, expected, String(w))
}

func check_Primitive(t *testing.T, w Wff, expected string) {
	prim := PrimitiveForm(w)
	//
	assert.Equal(t, expected, String(prim))
	assert.True(t, isPrimitive(prim), "%s is not primitive", String(prim))
}

func isPrimitive(w Wff) bool {
	switch w := w.(type) {
	case *Var:
		return true
	case *Not:
		return isPrimitive(w.Arg)
	case *Imp:
		return isPrimitive(w.Lhs) && isPrimitive(w.Rhs)
	default:
		return false
	}
}
