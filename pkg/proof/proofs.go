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
	"strings"

	"github.com/consensys/go-metamath/pkg/mm"
)

// UncompressedProof is an explicit sequence of steps, where label 0 denotes an
// unknown step.
type UncompressedProof struct {
	Labels []mm.LabTok
}

// Size returns the number of steps.
func (p *UncompressedProof) Size() uint {
	return uint(len(p.Labels))
}

// Format writes this proof using the names of labels in a given library.
func (p *UncompressedProof) Format(lib *mm.Library) string {
	return lib.LabelsString(p.Labels)
}

// CompressedProof refers to the hypotheses of its theorem and to a list of
// other labels by number, and can reuse intermediate results.  See Encoder for
// the meaning of each code.
type CompressedProof struct {
	Refs  []mm.LabTok
	Codes []uint
}

// Size returns the number of codes.
func (p *CompressedProof) Size() uint {
	return uint(len(p.Codes))
}

// Format writes this proof in the usual textual form, "( refs ) CODES".
func (p *CompressedProof) Format(lib *mm.Library) string {
	var builder strings.Builder
	//
	builder.WriteString("(")
	//
	for _, ref := range p.Refs {
		builder.WriteString(" ")
		builder.WriteString(lib.ResolveLabel(ref))
	}
	//
	builder.WriteString(" ) ")
	builder.WriteString(EncodeString(p.Codes))
	//
	return builder.String()
}
