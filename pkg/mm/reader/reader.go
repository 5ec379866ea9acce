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
package reader

import (
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bitset"
	"github.com/consensys/go-metamath/pkg/mm"
	"github.com/consensys/go-metamath/pkg/proof"
	"github.com/consensys/go-metamath/pkg/util/source"
	"github.com/consensys/go-metamath/pkg/util/source/lex"
	log "github.com/sirupsen/logrus"
)

const (
	endOfFile uint = iota
	whitespace
	word
)

var rules = []lex.LexRule[rune]{
	lex.Rule(lex.Whitespace(), whitespace),
	lex.Rule(lex.Word(), word),
	lex.Rule(lex.Eof[rune](), endOfFile),
}

// ReadFile reads a Metamath database from a given file.
func ReadFile(filename string) (*mm.Library, error) {
	file, err := source.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	//
	return Read(file)
}

// ReadString reads a Metamath database from a given string.
func ReadString(name string, text string) (*mm.Library, error) {
	return Read(source.NewSourceFile(name, []byte(text)))
}

// Read a Metamath database from a given source file.  This supports constant,
// variable, hypothesis, axiom, theorem and distinct variable statements, nested
// blocks, comments, and both uncompressed and compressed proofs.  File
// inclusion is not supported.  A variable can be typed by at most one active
// floating hypothesis, and these become the type statements of the library.
func Read(file *source.File) (*mm.Library, error) {
	lexer := lex.NewLexer(file.Contents(), rules...).Skip(whitespace)
	tokens := lexer.Collect()
	//
	if lexer.Remaining() != 0 {
		start := int(lexer.Index())
		return nil, file.SyntaxError(source.NewSpan(start, start+1), "invalid character")
	}
	//
	r := &reader{
		file:   file,
		tokens: tokens,
		lib:    mm.NewLibrary(),
		scopes: []scope{newScope()},
	}
	//
	if err := r.readAll(); err != nil {
		return nil, err
	}
	//
	r.lib.SetTypes(r.types)
	//
	log.Debugf("read %s: %d symbols, %d labels, %d assertions", file.Filename(), r.lib.NumSymbols(),
		r.lib.NumLabels(), len(r.lib.Assertions()))
	//
	return r.lib, nil
}

// Declarations which are active within a block.
type scope struct {
	vars       *bitset.BitSet
	floating   []mm.LabTok
	essential  []mm.LabTok
	dists      []mm.DistPair
	start      lex.Token
	isExplicit bool
}

func newScope() scope {
	return scope{vars: bitset.New(0)}
}

type reader struct {
	file   *source.File
	tokens []lex.Token
	index  int
	lib    *mm.Library
	scopes []scope
	// Floating hypotheses in declaration order
	types []mm.LabTok
}

func (r *reader) readAll() error {
	for {
		tok, text, err := r.next()
		//
		if err != nil {
			return err
		} else if tok.Kind == endOfFile {
			break
		}
		//
		switch text {
		case "$c":
			err = r.readConstants()
		case "$v":
			err = r.readVariables()
		case "$d":
			err = r.readDists()
		case "${":
			s := newScope()
			s.start, s.isExplicit = tok, true
			r.scopes = append(r.scopes, s)
		case "$}":
			if len(r.scopes) == 1 {
				return r.error(tok, "unmatched \"$}\"")
			}
			//
			r.scopes = r.scopes[:len(r.scopes)-1]
		case "$[":
			return r.error(tok, "file inclusion not supported")
		default:
			if strings.HasPrefix(text, "$") {
				return r.error(tok, fmt.Sprintf("unexpected keyword \"%s\"", text))
			}
			//
			err = r.readStatement(tok, text)
		}
		//
		if err != nil {
			return err
		}
	}
	//
	if top := r.scopes[len(r.scopes)-1]; top.isExplicit {
		return r.error(top.start, "unterminated block")
	}
	//
	return nil
}

// Read a list of words up to a given terminating keyword.
func (r *reader) readUntil(terminator string) ([]lex.Token, []string, error) {
	var (
		toks  []lex.Token
		texts []string
	)
	//
	for {
		tok, text, err := r.next()
		//
		if err != nil {
			return nil, nil, err
		} else if tok.Kind == endOfFile {
			return nil, nil, r.error(tok, fmt.Sprintf("expected \"%s\"", terminator))
		} else if text == terminator {
			return toks, texts, nil
		} else if strings.HasPrefix(text, "$") {
			return nil, nil, r.error(tok, fmt.Sprintf("unexpected keyword \"%s\"", text))
		}
		//
		toks = append(toks, tok)
		texts = append(texts, text)
	}
}

func (r *reader) readConstants() error {
	toks, texts, err := r.readUntil("$.")
	if err != nil {
		return err
	}
	//
	for i, text := range texts {
		if r.lib.GetSymbol(text) != 0 {
			return r.error(toks[i], fmt.Sprintf("symbol \"%s\" already declared", text))
		}
		//
		sym, err := r.lib.CreateSymbol(text)
		if err != nil {
			return r.error(toks[i], err.Error())
		}
		//
		r.lib.AddConstant(sym)
	}
	//
	return nil
}

func (r *reader) readVariables() error {
	toks, texts, err := r.readUntil("$.")
	if err != nil {
		return err
	}
	//
	for i, text := range texts {
		sym, err := r.lib.CreateSymbol(text)
		//
		if err != nil {
			return r.error(toks[i], err.Error())
		} else if r.lib.IsConstant(sym) {
			return r.error(toks[i], fmt.Sprintf("\"%s\" already declared as a constant", text))
		} else if r.isActiveVar(sym) {
			return r.error(toks[i], fmt.Sprintf("variable \"%s\" already active", text))
		}
		//
		r.scopes[len(r.scopes)-1].vars.Set(uint(sym))
	}
	//
	return nil
}

func (r *reader) readDists() error {
	toks, texts, err := r.readUntil("$.")
	if err != nil {
		return err
	}
	//
	vars := make([]mm.SymTok, len(texts))
	//
	for i, text := range texts {
		if vars[i] = r.lib.GetSymbol(text); !r.isActiveVar(vars[i]) {
			return r.error(toks[i], fmt.Sprintf("\"%s\" is not an active variable", text))
		}
	}
	//
	top := &r.scopes[len(r.scopes)-1]
	//
	for i := range vars {
		for j := i + 1; j < len(vars); j++ {
			if vars[i] == vars[j] {
				return r.error(toks[j], fmt.Sprintf("variable \"%s\" repeated", texts[j]))
			}
			//
			top.dists = append(top.dists, mm.NewDistPair(vars[i], vars[j]))
		}
	}
	//
	return nil
}

func (r *reader) readStatement(labelTok lex.Token, name string) error {
	if r.lib.GetLabel(name) != 0 {
		return r.error(labelTok, fmt.Sprintf("label \"%s\" already declared", name))
	}
	//
	label, err := r.lib.CreateLabel(name)
	if err != nil {
		return r.error(labelTok, err.Error())
	}
	//
	tok, keyword, err := r.next()
	if err != nil {
		return err
	}
	//
	switch keyword {
	case "$f":
		return r.readFloating(label, tok)
	case "$e":
		return r.readEssential(label)
	case "$a":
		return r.readAxiom(label)
	case "$p":
		return r.readTheorem(label)
	}
	//
	return r.error(tok, fmt.Sprintf("expected \"$f\", \"$e\", \"$a\" or \"$p\", found \"%s\"", keyword))
}

func (r *reader) readFloating(label mm.LabTok, start lex.Token) error {
	toks, texts, err := r.readUntil("$.")
	if err != nil {
		return err
	} else if len(texts) != 2 {
		return r.error(start, "floating hypothesis must have a type and a variable")
	}
	//
	typ, v := r.lib.GetSymbol(texts[0]), r.lib.GetSymbol(texts[1])
	//
	if !r.lib.IsConstant(typ) {
		return r.error(toks[0], fmt.Sprintf("\"%s\" is not a constant", texts[0]))
	} else if !r.isActiveVar(v) {
		return r.error(toks[1], fmt.Sprintf("\"%s\" is not an active variable", texts[1]))
	} else if prev := r.activeFloating(v); prev != 0 {
		return r.error(toks[1], fmt.Sprintf("variable \"%s\" already typed by \"%s\"", texts[1],
			r.lib.ResolveLabel(prev)))
	}
	//
	r.lib.AddSentence(label, mm.Sentence{typ, v})
	r.types = append(r.types, label)
	top := &r.scopes[len(r.scopes)-1]
	top.floating = append(top.floating, label)
	//
	return nil
}

func (r *reader) readEssential(label mm.LabTok) error {
	sent, err := r.readSentence("$.")
	if err != nil {
		return err
	}
	//
	r.lib.AddSentence(label, sent)
	top := &r.scopes[len(r.scopes)-1]
	top.essential = append(top.essential, label)
	//
	return nil
}

func (r *reader) readAxiom(label mm.LabTok) error {
	sent, err := r.readSentence("$.")
	if err != nil {
		return err
	}
	//
	r.lib.AddSentence(label, sent)
	r.lib.AddAssertion(label, r.frame(label, sent, false))
	//
	return nil
}

func (r *reader) readTheorem(label mm.LabTok) error {
	sent, err := r.readSentence("$=")
	if err != nil {
		return err
	}
	//
	r.lib.AddSentence(label, sent)
	assertion := r.frame(label, sent, true)
	r.lib.AddAssertion(label, assertion)
	//
	toks, texts, err := r.readUntil("$.")
	if err != nil {
		return err
	}
	//
	var p mm.Proof
	//
	if len(texts) > 0 && texts[0] == "(" {
		p, err = r.compressedProof(toks, texts)
	} else {
		p, err = r.uncompressedProof(toks, texts)
	}
	//
	if err != nil {
		return err
	}
	//
	assertion.AddProof(p)
	//
	return nil
}

func (r *reader) uncompressedProof(toks []lex.Token, texts []string) (mm.Proof, error) {
	labels := make([]mm.LabTok, len(texts))
	//
	for i, text := range texts {
		if text == "?" {
			continue
		} else if labels[i] = r.lib.GetLabel(text); labels[i] == 0 || r.lib.Sentence(labels[i]) == nil {
			return nil, r.error(toks[i], fmt.Sprintf("unknown label \"%s\"", text))
		}
	}
	//
	return &proof.UncompressedProof{Labels: labels}, nil
}

func (r *reader) compressedProof(toks []lex.Token, texts []string) (mm.Proof, error) {
	var (
		refs []mm.LabTok
		i    = 1
	)
	//
	for ; i < len(texts) && texts[i] != ")"; i++ {
		label := r.lib.GetLabel(texts[i])
		if label == 0 || r.lib.Sentence(label) == nil {
			return nil, r.error(toks[i], fmt.Sprintf("unknown label \"%s\"", texts[i]))
		}
		//
		refs = append(refs, label)
	}
	//
	if i == len(texts) {
		return nil, r.error(toks[0], "unterminated label list")
	}
	//
	codes, err := proof.DecodeString(strings.Join(texts[i+1:], ""))
	if err != nil {
		return nil, r.error(toks[i], err.Error())
	}
	//
	return &proof.CompressedProof{Refs: refs, Codes: codes}, nil
}

// Read a sentence whose symbols must be active.
func (r *reader) readSentence(terminator string) (mm.Sentence, error) {
	toks, texts, err := r.readUntil(terminator)
	if err != nil {
		return nil, err
	} else if len(texts) == 0 {
		return nil, r.error(r.tokens[r.index-1], "empty sentence")
	}
	//
	sent := make(mm.Sentence, len(texts))
	//
	for i, text := range texts {
		sym := r.lib.GetSymbol(text)
		//
		if !r.lib.IsConstant(sym) && !r.isActiveVar(sym) {
			return nil, r.error(toks[i], fmt.Sprintf("\"%s\" is not an active symbol", text))
		} else if i == 0 && !r.lib.IsConstant(sym) {
			return nil, r.error(toks[i], "sentence must start with a constant")
		}
		//
		sent[i] = sym
	}
	//
	return sent, nil
}

// Determine the frame of an assertion from the active declarations.
func (r *reader) frame(label mm.LabTok, sent mm.Sentence, theorem bool) *mm.Assertion {
	var (
		mandatory = make(map[mm.SymTok]bool)
		floating  []mm.LabTok
		optional  []mm.LabTok
		essential []mm.LabTok
		dists     []mm.DistPair
		optDists  []mm.DistPair
	)
	//
	r.markVars(sent, mandatory)
	//
	for _, s := range r.scopes {
		for _, e := range s.essential {
			r.markVars(r.lib.Sentence(e), mandatory)
			essential = append(essential, e)
		}
	}
	//
	for _, s := range r.scopes {
		for _, f := range s.floating {
			if mandatory[r.lib.Sentence(f)[1]] {
				floating = append(floating, f)
			} else {
				optional = append(optional, f)
			}
		}
		//
		for _, d := range s.dists {
			if mandatory[d.X] && mandatory[d.Y] {
				dists = append(dists, d)
			} else {
				optDists = append(optDists, d)
			}
		}
	}
	//
	return mm.NewAssertion(theorem, label, floating, essential).
		WithOptHyps(optional).
		WithDists(dists, optDists)
}

func (r *reader) markVars(sent mm.Sentence, vars map[mm.SymTok]bool) {
	for _, sym := range sent {
		if !r.lib.IsConstant(sym) {
			vars[sym] = true
		}
	}
}

func (r *reader) isActiveVar(sym mm.SymTok) bool {
	if sym == 0 {
		return false
	}
	//
	for _, s := range r.scopes {
		if s.vars.Test(uint(sym)) {
			return true
		}
	}
	//
	return false
}

// Find the active floating hypothesis typing a given variable, or 0.
func (r *reader) activeFloating(sym mm.SymTok) mm.LabTok {
	for _, s := range r.scopes {
		for _, label := range s.floating {
			if r.lib.Sentence(label)[1] == sym {
				return label
			}
		}
	}
	//
	return 0
}

// Get the next token, skipping over comments.
func (r *reader) next() (lex.Token, string, error) {
	for {
		tok := r.tokens[r.index]
		//
		if tok.Kind == endOfFile {
			return tok, "", nil
		}
		//
		r.index++
		text := r.file.Text(tok.Span)
		//
		if text != "$(" {
			return tok, text, nil
		}
		// Skip comment
		for {
			inner := r.tokens[r.index]
			if inner.Kind == endOfFile {
				return inner, "", r.error(tok, "unterminated comment")
			}
			//
			r.index++
			//
			if r.file.Text(inner.Span) == "$)" {
				break
			}
		}
	}
}

func (r *reader) error(tok lex.Token, msg string) error {
	return r.file.SyntaxError(tok.Span, msg)
}
