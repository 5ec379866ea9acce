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
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// Library holds the symbols, labels, sentences and assertions of a Metamath
// database.  A library is populated once and, thereafter, is treated as
// read-only.  As such, it is safe for concurrent readers.
type Library struct {
	symbols tokenTable
	labels  tokenTable
	// Sentences indexed by label.
	sentences []Sentence
	// Assertions indexed by label (nil for hypotheses).
	assertions []*Assertion
	// Assertion labels in declaration order.
	order []LabTok
	// Position of each assertion label within order.
	index map[LabTok]int
	// Assertion labels grouped by the leading constant of their thesis.
	byType map[SymTok][]LabTok
	// Symbols declared as constants.
	constants bitset.BitSet
	// Labels designated as type statements.
	types      []LabTok
	typeSet    bitset.BitSet
	typeConsts bitset.BitSet
	typeByVar  map[SymTok]LabTok
}

// NewLibrary constructs an empty library.
func NewLibrary() *Library {
	return &Library{
		symbols:    newTokenTable(),
		labels:     newTokenTable(),
		sentences:  []Sentence{nil},
		assertions: []*Assertion{nil},
		index:      make(map[LabTok]int),
		byType:     make(map[SymTok][]LabTok),
		typeByVar:  make(map[SymTok]LabTok),
	}
}

// CreateSymbol returns the symbol for a given string, creating it if it does
// not exist already.
func (p *Library) CreateSymbol(name string) (SymTok, error) {
	if !IsSymbol(name) {
		return 0, fmt.Errorf("%w: symbol \"%s\"", ErrInvalidToken, name)
	}
	//
	return SymTok(p.symbols.create(name)), nil
}

// CreateLabel returns the label for a given string, creating it if it does not
// exist already.
func (p *Library) CreateLabel(name string) (LabTok, error) {
	if !IsLabel(name) {
		return 0, fmt.Errorf("%w: label \"%s\"", ErrInvalidToken, name)
	}
	//
	label := LabTok(p.labels.create(name))
	// Ensure storage exists for this label
	for uint(len(p.sentences)) <= uint(label) {
		p.sentences = append(p.sentences, nil)
		p.assertions = append(p.assertions, nil)
	}
	//
	return label, nil
}

// GetSymbol returns the symbol for a given string, or 0 if it does not exist.
func (p *Library) GetSymbol(name string) SymTok {
	return SymTok(p.symbols.get(name))
}

// GetLabel returns the label for a given string, or 0 if it does not exist.
func (p *Library) GetLabel(name string) LabTok {
	return LabTok(p.labels.get(name))
}

// ResolveSymbol returns the string of a given symbol.
func (p *Library) ResolveSymbol(sym SymTok) string {
	return p.symbols.resolve(uint32(sym))
}

// ResolveLabel returns the string of a given label.
func (p *Library) ResolveLabel(label LabTok) string {
	return p.labels.resolve(uint32(label))
}

// NumSymbols returns the number of symbols created so far.
func (p *Library) NumSymbols() uint {
	return p.symbols.size()
}

// NumLabels returns the number of labels created so far.
func (p *Library) NumLabels() uint {
	return p.labels.size()
}

// AddSentence registers the sentence of a given label.  A sentence cannot be
// changed once registered.
func (p *Library) AddSentence(label LabTok, sent Sentence) {
	p.checkLabel(label)
	//
	if len(sent) == 0 {
		panic(fmt.Sprintf("empty sentence for label %s", p.ResolveLabel(label)))
	} else if p.sentences[label] != nil {
		panic(fmt.Sprintf("sentence already registered for label %s", p.ResolveLabel(label)))
	}
	//
	p.sentences[label] = sent
}

// Sentence returns the sentence registered for a given label, or nil.
func (p *Library) Sentence(label LabTok) Sentence {
	if uint(label) >= uint(len(p.sentences)) {
		return nil
	}
	//
	return p.sentences[label]
}

// AddAssertion registers the assertion of a given label.  The label's sentence
// must already be registered.
func (p *Library) AddAssertion(label LabTok, assertion *Assertion) {
	p.checkLabel(label)
	//
	sent := p.sentences[label]
	//
	if sent == nil {
		panic(fmt.Sprintf("assertion %s has no sentence", p.ResolveLabel(label)))
	} else if p.assertions[label] != nil {
		panic(fmt.Sprintf("assertion already registered for label %s", p.ResolveLabel(label)))
	}
	//
	p.assertions[label] = assertion
	p.index[label] = len(p.order)
	p.order = append(p.order, label)
	p.byType[sent[0]] = append(p.byType[sent[0]], label)
}

// Assertion returns the assertion registered for a given label, or nil.
func (p *Library) Assertion(label LabTok) *Assertion {
	if uint(label) >= uint(len(p.assertions)) {
		return nil
	}
	//
	return p.assertions[label]
}

// Assertions returns the labels of all assertions in declaration order.
func (p *Library) Assertions() []LabTok {
	return p.order
}

// AssertionIndex returns the position of a given assertion in declaration
// order, or -1 if the label is not an assertion.
func (p *Library) AssertionIndex(label LabTok) int {
	if i, ok := p.index[label]; ok {
		return i
	}
	//
	return -1
}

// AssertionsByType returns, in declaration order, the labels of all assertions
// whose thesis starts with a given constant.
func (p *Library) AssertionsByType(typ SymTok) []LabTok {
	return p.byType[typ]
}

// AddConstant marks a given symbol as a constant.
func (p *Library) AddConstant(sym SymTok) {
	p.constants.Set(uint(sym))
}

// IsConstant checks whether a given symbol is a constant.
func (p *Library) IsConstant(sym SymTok) bool {
	return p.constants.Test(uint(sym))
}

// SetTypes designates the given floating hypotheses as type statements.  Each
// must be a two-symbol sentence "type var".  A variable typed by several
// statements (e.g. in separate blocks) has the first as its type.  This can be
// called only once.
func (p *Library) SetTypes(labels []LabTok) {
	if p.types != nil {
		panic("types already set")
	}
	//
	p.types = make([]LabTok, 0, len(labels))
	//
	for _, label := range labels {
		sent := p.Sentence(label)
		//
		if len(sent) != 2 {
			panic(fmt.Sprintf("type statement %s is not of the form \"type var\"", p.ResolveLabel(label)))
		}
		//
		p.types = append(p.types, label)
		p.typeSet.Set(uint(label))
		p.typeConsts.Set(uint(sent[0]))
		//
		if _, ok := p.typeByVar[sent[1]]; !ok {
			p.typeByVar[sent[1]] = label
		}
	}
}

// TypeLabels returns the type statements in the order they were designated.
func (p *Library) TypeLabels() []LabTok {
	return p.types
}

// IsVarLabel checks whether a given label is a type statement.  Such labels
// name the variables of parsing trees.
func (p *Library) IsVarLabel(label LabTok) bool {
	return p.typeSet.Test(uint(label))
}

// IsTypeConstant checks whether a given symbol is the type of some type
// statement (e.g. "wff").
func (p *Library) IsTypeConstant(sym SymTok) bool {
	return p.typeConsts.Test(uint(sym))
}

// IsVarSymbol checks whether a given symbol is a typed variable.
func (p *Library) IsVarSymbol(sym SymTok) bool {
	_, ok := p.typeByVar[sym]
	return ok
}

// TypeOf returns the first type statement of a given variable, or 0 if the
// variable is not typed.
func (p *Library) TypeOf(sym SymTok) LabTok {
	return p.typeByVar[sym]
}

// VarOf returns the variable named by a given type statement.
func (p *Library) VarOf(label LabTok) SymTok {
	if !p.IsVarLabel(label) {
		panic(fmt.Sprintf("%s is not a type statement", p.ResolveLabel(label)))
	}
	//
	return p.sentences[label][1]
}

// IsHypothesis checks whether a given label names a hypothesis (i.e. it has a
// sentence but no assertion).
func (p *Library) IsHypothesis(label LabTok) bool {
	return p.Sentence(label) != nil && p.Assertion(label) == nil
}

// IsEssential checks whether a given label names an essential hypothesis.
func (p *Library) IsEssential(label LabTok) bool {
	return p.IsHypothesis(label) && !p.IsVarLabel(label)
}

// ParseSentence converts a whitespace-separated string of symbols into a
// sentence.  Every symbol must exist already.
func (p *Library) ParseSentence(text string) (Sentence, error) {
	var sent Sentence
	//
	for _, word := range strings.Fields(text) {
		sym := p.GetSymbol(word)
		if sym == 0 {
			return nil, fmt.Errorf("unknown symbol \"%s\"", word)
		}
		//
		sent = append(sent, sym)
	}
	//
	return sent, nil
}

// SentenceString converts a sentence into a whitespace-separated string.
func (p *Library) SentenceString(sent Sentence) string {
	var builder strings.Builder
	//
	for i, sym := range sent {
		if i != 0 {
			builder.WriteString(" ")
		}
		//
		builder.WriteString(p.ResolveSymbol(sym))
	}
	//
	return builder.String()
}

// LabelsString converts a sequence of labels into a whitespace-separated
// string, where label 0 is written "?".
func (p *Library) LabelsString(labels []LabTok) string {
	words := make([]string, len(labels))
	//
	for i, label := range labels {
		if label == 0 {
			words[i] = "?"
		} else {
			words[i] = p.ResolveLabel(label)
		}
	}
	//
	return strings.Join(words, " ")
}

func (p *Library) checkLabel(label LabTok) {
	if label == 0 || uint(label) >= uint(len(p.sentences)) {
		panic(fmt.Sprintf("invalid label %d", label))
	}
}
