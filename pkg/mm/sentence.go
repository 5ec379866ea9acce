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

import "slices"

// Sentence is a sequence of symbols representing a typed expression.  The first
// symbol is the type constant (e.g. "wff" or "|-").
type Sentence []SymTok

// Type returns the leading type constant of this sentence.
func (s Sentence) Type() SymTok {
	return s[0]
}

// Body returns the sentence without its leading type constant.
func (s Sentence) Body() Sentence {
	return s[1:]
}

// Equal checks whether two sentences are identical.
func (s Sentence) Equal(other Sentence) bool {
	return slices.Equal(s, other)
}

// Contains checks whether a given symbol occurs in this sentence.
func (s Sentence) Contains(sym SymTok) bool {
	return slices.Contains(s, sym)
}

// SentenceMap maps variables (symbols) onto the sentences they stand for.
// Bound sentences never include a type constant.
type SentenceMap map[SymTok]Sentence

// Apply substitutes every bound symbol in a given sentence, producing a fresh
// sentence.
func (m SentenceMap) Apply(sent Sentence) Sentence {
	var res Sentence = make(Sentence, 0, len(sent))
	//
	for _, sym := range sent {
		if val, ok := m[sym]; ok {
			res = append(res, val...)
		} else {
			res = append(res, sym)
		}
	}
	//
	return res
}
