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
package source

import (
	"fmt"
	"os"
)

// File is a source file held in memory as runes, so that spans index
// characters rather than bytes.
type File struct {
	filename string
	contents []rune
}

// NewSourceFile constructs a source file from its raw contents.
func NewSourceFile(filename string, bytes []byte) *File {
	return &File{filename, []rune(string(bytes))}
}

// ReadFile reads a source file from disk.
func ReadFile(filename string) (*File, error) {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	//
	return NewSourceFile(filename, bytes), nil
}

// Filename returns the name this file was read from.
func (s *File) Filename() string {
	return s.filename
}

// Contents returns the characters of this file.
func (s *File) Contents() []rune {
	return s.contents
}

// Text returns the characters covered by a given span.
func (s *File) Text(span Span) string {
	return string(s.contents[span.start:span.end])
}

// SyntaxError reports a message against a given span of this file.
func (s *File) SyntaxError(span Span, msg string) *SyntaxError {
	return &SyntaxError{s, span, msg}
}

// Determine the line containing a given offset.  Offsets at or beyond the end
// of the file give the last line.
func (s *File) lineAt(offset int) Line {
	var (
		start  = 0
		number = 1
		end    = len(s.contents)
	)
	//
	for i := 0; i < min(offset, len(s.contents)); i++ {
		if s.contents[i] == '\n' {
			start, number = i+1, number+1
		}
	}
	//
	for i := start; i < len(s.contents); i++ {
		if s.contents[i] == '\n' {
			end = i
			break
		}
	}
	//
	return Line{s.contents, Span{start, end}, number}
}

// Line is a single line of a source file, excluding its terminating newline.
type Line struct {
	text   []rune
	span   Span
	number int
}

func (p Line) String() string {
	return string(p.text[p.span.start:p.span.end])
}

// Number returns the line number, counting from 1.
func (p Line) Number() int {
	return p.number
}

// Start returns the offset of this line within its file.
func (p Line) Start() int {
	return p.span.start
}

// Length returns the number of characters in this line.
func (p Line) Length() int {
	return p.span.Length()
}

// SyntaxError is an error located at a span of a source file.
type SyntaxError struct {
	srcfile *File
	span    Span
	msg     string
}

// SourceFile returns the file in which this error arose.
func (p *SyntaxError) SourceFile() *File {
	return p.srcfile
}

// Span returns the span this error is reported against.
func (p *SyntaxError) Span() Span {
	return p.span
}

// Message returns the message of this error, without its location.
func (p *SyntaxError) Message() string {
	return p.msg
}

func (p *SyntaxError) Error() string {
	line := p.FirstEnclosingLine()
	return fmt.Sprintf("%s:%d: %s", p.srcfile.filename, line.Number(), p.msg)
}

// FirstEnclosingLine returns the line on which this error starts.
func (p *SyntaxError) FirstEnclosingLine() Line {
	return p.srcfile.lineAt(p.span.start)
}
