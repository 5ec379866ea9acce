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
package prover

import (
	"github.com/consensys/go-metamath/pkg/mm"
	"github.com/consensys/go-metamath/pkg/proof"
)

// Prover attempts to extend a proof engine with the derivation of some
// statement, returning true on success.  A prover which fails may leave the
// engine in an arbitrary state, unless it is wrapped by Checked.
type Prover func(lib *mm.Library, engine *proof.Engine) bool

// Cascade constructs a prover which tries each of the given provers in turn,
// stopping at the first which succeeds.  Each attempt is checked, such that a
// failed attempt leaves no trace on the engine.
func Cascade(provers ...Prover) Prover {
	return func(lib *mm.Library, engine *proof.Engine) bool {
		for _, p := range provers {
			if Checked(p)(lib, engine) {
				return true
			}
		}
		//
		return false
	}
}

// Checked wraps a prover so that its effects on the engine are either applied
// in full (on success) or discarded (on failure).
func Checked(p Prover) Prover {
	return func(lib *mm.Library, engine *proof.Engine) bool {
		engine.Checkpoint()
		//
		if p(lib, engine) {
			engine.Commit()
			return true
		}
		//
		engine.Rollback()
		//
		return false
	}
}

// Label constructs a prover which processes a single label.
func Label(label mm.LabTok) Prover {
	return func(lib *mm.Library, engine *proof.Engine) bool {
		return engine.ProcessLabel(label) == nil
	}
}
