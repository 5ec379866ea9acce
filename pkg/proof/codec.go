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
package proof

import (
	"fmt"
	"strings"
)

// Unknown is the code of a step which has not been filled in (written '?').
const Unknown = ^uint(0)

// Compressed proofs encode each step as a number.  A number n > 0 is written in
// a mixed radix: the final (least significant) digit is one of the twenty
// letters A-T, whilst the preceding digits are from the five letters U-Y.
// Digits are offset by one, such that no number has a leading zero digit.  The
// letter Z marks the result of the preceding step for later reuse, and is
// represented by the number 0.
const (
	terminalBase     = 20
	continuationBase = 5
)

// Encoder converts step numbers into compressed proof text.
type Encoder struct {
	builder strings.Builder
}

// PushCode encodes a given step number, returning its text and appending it
// to the text produced so far.
func (p *Encoder) PushCode(code uint) string {
	var str string
	//
	switch {
	case code == 0:
		str = "Z"
	case code == Unknown:
		str = "?"
	default:
		n := code - 1
		digits := []byte{byte('A' + n%terminalBase)}
		n = n / terminalBase
		//
		for n > 0 {
			digits = append(digits, byte('U'+(n-1)%continuationBase))
			n = (n - 1) / continuationBase
		}
		// Most significant digit first
		for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
			digits[i], digits[j] = digits[j], digits[i]
		}
		//
		str = string(digits)
	}
	//
	p.builder.WriteString(str)
	//
	return str
}

// String returns all text encoded so far.
func (p *Encoder) String() string {
	return p.builder.String()
}

// Decoder converts compressed proof text into step numbers, one character at a
// time.
type Decoder struct {
	current uint
	pending bool
}

// PushChar consumes the next character.  This returns a step number and true
// when the character completes a number, or false when more characters are
// required.
func (p *Decoder) PushChar(c byte) (uint, bool, error) {
	switch {
	case 'U' <= c && c <= 'Y':
		p.current = p.current*continuationBase + uint(c-'U'+1)
		p.pending = true
		//
		return 0, false, nil
	case 'A' <= c && c <= 'T':
		code := p.current*terminalBase + uint(c-'A'+1)
		p.current = 0
		p.pending = false
		//
		return code, true, nil
	case c == 'Z' && !p.pending:
		return 0, true, nil
	case c == '?' && !p.pending:
		return Unknown, true, nil
	}
	//
	return 0, false, fmt.Errorf("%w: unexpected character '%c'", ErrInvalidCode, c)
}

// Finish checks that no partial number remains.
func (p *Decoder) Finish() error {
	if p.pending {
		return fmt.Errorf("%w: truncated number", ErrInvalidCode)
	}
	//
	return nil
}

// DecodeString decodes a complete compressed proof string, ignoring
// whitespace.
func DecodeString(text string) ([]uint, error) {
	var (
		decoder Decoder
		codes   []uint
	)
	//
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			continue
		}
		//
		code, ok, err := decoder.PushChar(c)
		if err != nil {
			return nil, err
		} else if ok {
			codes = append(codes, code)
		}
	}
	//
	return codes, decoder.Finish()
}

// EncodeString encodes a sequence of step numbers.
func EncodeString(codes []uint) string {
	var encoder Encoder
	//
	for _, code := range codes {
		encoder.PushCode(code)
	}
	//
	return encoder.String()
}
