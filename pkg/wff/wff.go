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
	"fmt"

	"github.com/consensys/go-metamath/pkg/mm"
)

// Wff represents a propositional formula, written in the notation of set.mm.
// The set of formula kinds is closed: every implementation is declared in this
// package, and operations over formulas are functions which switch on the
// kind.
type Wff interface {
	isWff()
}

// Var represents a propositional variable.
type Var struct{ Name string }

// Not represents the negation of its argument.
type Not struct{ Arg Wff }

// Imp represents material implication.
type Imp struct{ Lhs, Rhs Wff }

// Biimp represents logical equivalence.
type Biimp struct{ Lhs, Rhs Wff }

// And represents logical conjunction.
type And struct{ Lhs, Rhs Wff }

// Or represents logical disjunction.
type Or struct{ Lhs, Rhs Wff }

// Nand represents the negation of a conjunction.
type Nand struct{ Lhs, Rhs Wff }

// Xor represents exclusive disjunction.
type Xor struct{ Lhs, Rhs Wff }

func (*Var) isWff()   {}
func (*Not) isWff()   {}
func (*Imp) isWff()   {}
func (*Biimp) isWff() {}
func (*And) isWff()   {}
func (*Or) isWff()    {}
func (*Nand) isWff()  {}
func (*Xor) isWff()   {}

// ============================================================================
// Display
// ============================================================================

// String returns the set.mm notation of a formula, such as "( ph -> -. ps )".
func String(w Wff) string {
	switch w := w.(type) {
	case *Var:
		return w.Name
	case *Not:
		return "-. " + String(w.Arg)
	case *Imp:
		return binary(w.Lhs, "->", w.Rhs)
	case *Biimp:
		return binary(w.Lhs, "<->", w.Rhs)
	case *And:
		return binary(w.Lhs, "/\\", w.Rhs)
	case *Or:
		return binary(w.Lhs, "\\/", w.Rhs)
	case *Nand:
		return binary(w.Lhs, "-/\\", w.Rhs)
	case *Xor:
		return binary(w.Lhs, "\\/_", w.Rhs)
	default:
		panic(fmt.Sprintf("unknown formula %T", w))
	}
}

func binary(lhs Wff, op string, rhs Wff) string {
	return "( " + String(lhs) + " " + op + " " + String(rhs) + " )"
}

// Sentence converts a formula into a type statement of a given library, such
// as "wff ( ph -> -. ps )".  This fails if the library does not declare some
// symbol of the formula.
func Sentence(lib *mm.Library, w Wff) (mm.Sentence, error) {
	return lib.ParseSentence("wff " + String(w))
}

// ============================================================================
// Primitive form
// ============================================================================

// PrimitiveForm rewrites a formula using only variables, negation and
// implication.  Each connective is unfolded by its set.mm definition:
//
//	( a <-> b )  dfbi1   -. ( ( a -> b ) -> -. ( b -> a ) )
//	( a /\ b )   df-an   -. ( a -> -. b )
//	( a \/ b )   df-or   ( -. a -> b )
//	( a -/\ b )  df-nan  -. ( a /\ b )
//	( a \/_ b )  df-xor  -. ( a <-> b )
func PrimitiveForm(w Wff) Wff {
	switch w := w.(type) {
	case *Var:
		return w
	case *Not:
		return &Not{PrimitiveForm(w.Arg)}
	case *Imp:
		return &Imp{PrimitiveForm(w.Lhs), PrimitiveForm(w.Rhs)}
	case *Biimp:
		lhs, rhs := PrimitiveForm(w.Lhs), PrimitiveForm(w.Rhs)
		return &Not{&Imp{&Imp{lhs, rhs}, &Not{&Imp{rhs, lhs}}}}
	case *And:
		return &Not{&Imp{PrimitiveForm(w.Lhs), &Not{PrimitiveForm(w.Rhs)}}}
	case *Or:
		return &Imp{&Not{PrimitiveForm(w.Lhs)}, PrimitiveForm(w.Rhs)}
	case *Nand:
		return PrimitiveForm(&Not{&And{w.Lhs, w.Rhs}})
	case *Xor:
		return PrimitiveForm(&Not{&Biimp{w.Lhs, w.Rhs}})
	default:
		panic(fmt.Sprintf("unknown formula %T", w))
	}
}

// ============================================================================
// Evaluation
// ============================================================================

// Eval evaluates a formula under a given assignment of variables.  Unassigned
// variables are false.
func Eval(w Wff, env map[string]bool) bool {
	switch w := w.(type) {
	case *Var:
		return env[w.Name]
	case *Not:
		return !Eval(w.Arg, env)
	case *Imp:
		return !Eval(w.Lhs, env) || Eval(w.Rhs, env)
	case *Biimp:
		return Eval(w.Lhs, env) == Eval(w.Rhs, env)
	case *And:
		return Eval(w.Lhs, env) && Eval(w.Rhs, env)
	case *Or:
		return Eval(w.Lhs, env) || Eval(w.Rhs, env)
	case *Nand:
		return !(Eval(w.Lhs, env) && Eval(w.Rhs, env))
	case *Xor:
		return Eval(w.Lhs, env) != Eval(w.Rhs, env)
	default:
		panic(fmt.Sprintf("unknown formula %T", w))
	}
}
