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
	"testing"

	"github.com/consensys/go-metamath/pkg/util/assert"
)

func Test_SourceFile_01(t *testing.T) {
	file := NewSourceFile("test.mm", []byte("$c wff $.\n$v ph $.\n\nax $a wff ph $."))
	//
	check_Line(t, file, 0, 1, "$c wff $.")
	check_Line(t, file, 9, 1, "$c wff $.")
	check_Line(t, file, 10, 2, "$v ph $.")
	check_Line(t, file, 19, 3, "")
	check_Line(t, file, 24, 4, "ax $a wff ph $.")
	// Beyond the end gives the last line
	check_Line(t, file, 100, 4, "ax $a wff ph $.")
}

func Test_SourceFile_02(t *testing.T) {
	file := NewSourceFile("test.mm", []byte("$c wff $.\nax $a ph $."))
	err := file.SyntaxError(NewSpan(16, 18), "not an active symbol")
	//
	assert.Equal(t, "test.mm:2: not an active symbol", err.Error())
	assert.Equal(t, "ph", file.Text(err.Span()))
	assert.Equal(t, 10, err.FirstEnclosingLine().Start())
	assert.Equal(t, 11, err.FirstEnclosingLine().Length())
}

func check_Line(t *testing.T, file *File, offset int, number int, text string) {
	line := file.lineAt(offset)
	//
	assert.Equal(t, number, line.Number(), "line number at %d", offset)
	assert.Equal(t, text, line.String(), "line text at %d", offset)
}
