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
package lex

import "github.com/consensys/go-metamath/pkg/util/source"

// Token associates a piece of information with a given range of characters in
// the string being scanned.
type Token struct {
	Kind uint
	Span source.Span
}

// LexRule associates groups of characters matched by a scanner with a given
// tag.
//
// nolint
type LexRule[T any] struct {
	scanner Scanner[T]
	tag     uint
}

// Rule constructs a new lexing rule which maps matching characters to a given
// tag.
func Rule[T any](scanner Scanner[T], tag uint) LexRule[T] {
	return LexRule[T]{scanner, tag}
}

// Lexer tokenises a given input sequence according to a set of rules.  Rules
// are tried in order, and the first to match determines the kind of the next
// token.  Tokens whose kind is in the skip set are silently dropped.
type Lexer[T any] struct {
	items []T
	index int
	rules []LexRule[T]
	skip  map[uint]bool
	next  *Token
}

// NewLexer constructs a new lexer with a given set of lexing rules.
func NewLexer[T any](input []T, rules ...LexRule[T]) *Lexer[T] {
	return &Lexer[T]{input, 0, rules, make(map[uint]bool), nil}
}

// Skip marks one or more token kinds as being dropped from the output.
func (p *Lexer[T]) Skip(kinds ...uint) *Lexer[T] {
	for _, k := range kinds {
		p.skip[k] = true
	}
	//
	return p
}

// Index returns the current index within the items array.
func (p *Lexer[T]) Index() uint {
	return uint(p.index)
}

// Remaining determines how many items from the original sequence are left.
func (p *Lexer[T]) Remaining() uint {
	return uint(max(0, len(p.items)-p.index))
}

// HasNext checks whether or not there are any tokens remaining.  Observe that
// this returns false when no rule matches at the current position, in which
// case Remaining() is non-zero.
func (p *Lexer[T]) HasNext() bool {
	for p.next == nil && p.index <= len(p.items) {
		tok, ok := p.scan()
		//
		if !ok {
			return false
		} else if tok.Span.End() == len(p.items) && tok.Span.Length() == 0 {
			// Eof rule matched; move beyond the end.
			p.index++
		} else {
			p.index = tok.Span.End()
		}
		//
		if !p.skip[tok.Kind] {
			p.next = &tok
		}
	}
	//
	return p.next != nil
}

// Next returns the next token and advances the lexer.  This assumes HasNext()
// has returned true.
func (p *Lexer[T]) Next() Token {
	if !p.HasNext() {
		panic("no more tokens")
	}
	//
	tok := *p.next
	p.next = nil
	//
	return tok
}

// Collect is a convenience function which returns all remaining tokens in one
// go.
func (p *Lexer[T]) Collect() []Token {
	var tokens []Token
	//
	for p.HasNext() {
		tokens = append(tokens, p.Next())
	}
	//
	return tokens
}

func (p *Lexer[T]) scan() (Token, bool) {
	for _, r := range p.rules {
		if n := r.scanner(p.items[p.index:]); n > 0 {
			end := min(len(p.items), p.index+int(n))
			return Token{r.tag, source.NewSpan(p.index, end)}, true
		}
	}
	// No rule matched
	return Token{}, false
}
