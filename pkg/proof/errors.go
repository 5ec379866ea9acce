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
	"errors"
	"fmt"
)

var (
	// ErrStackUnderflow indicates an assertion was applied with fewer entries
	// on the stack than it has hypotheses.
	ErrStackUnderflow = errors.New("stack underflow")
	// ErrHypothesisMismatch indicates a stack entry does not match the
	// hypothesis it is being used for.
	ErrHypothesisMismatch = errors.New("hypothesis mismatch")
	// ErrInconsistentSubstitution indicates a variable is instantiated
	// differently by two hypotheses of the same step.
	ErrInconsistentSubstitution = errors.New("inconsistent substitution")
	// ErrUnknownLabel indicates a step refers to a label which does not exist,
	// or which is not available at this point.
	ErrUnknownLabel = errors.New("unknown label")
	// ErrDistinctVariables indicates a distinct variable condition is
	// violated.
	ErrDistinctVariables = errors.New("distinct variable violation")
	// ErrIncompleteProof indicates a proof contains unknown steps, or does not
	// finish with exactly the thesis on the stack.
	ErrIncompleteProof = errors.New("incomplete proof")
	// ErrInvalidCode indicates a malformed compressed proof string.
	ErrInvalidCode = errors.New("invalid compressed proof code")
)

// VerificationError reports the failure of a single proof step.
type VerificationError struct {
	// Index of the failing step
	Step uint
	// Label of the failing step (empty if the step has no label)
	Label string
	// One of the sentinel errors above
	Reason error
	// Further detail (optional)
	Detail string
}

func (e *VerificationError) Error() string {
	var msg string
	//
	if e.Label != "" {
		msg = fmt.Sprintf("step %d (%s): %s", e.Step, e.Label, e.Reason.Error())
	} else {
		msg = fmt.Sprintf("step %d: %s", e.Step, e.Reason.Error())
	}
	//
	if e.Detail != "" {
		msg = msg + " (" + e.Detail + ")"
	}
	//
	return msg
}

// Unwrap returns the underlying reason, such that errors.Is() can be used.
func (e *VerificationError) Unwrap() error {
	return e.Reason
}
