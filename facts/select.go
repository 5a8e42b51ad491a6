// Copyright 2024
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package facts is the Context Engine (C7): given the set of facts sharing
// one tag, it selects the single fact that would have been visible for a
// target fiscal period as of a cutoff date. Grounded on RxDataLab-go-edgar's
// FactQuery fluent filter chain and NateN8-go-edgar's findValueForDate
// scoring tie-break.
package facts

import (
	"time"

	"github.com/mosaicdata/pit-fundamentals/model"
)

// toleranceDays absorbs 52/53-week fiscal calendar drift around a target
// period boundary.
const toleranceDays = 3

// Period is the target fiscal period a Select call is trying to fill.
type Period struct {
	Start time.Time // zero for instant-kind targets
	End   time.Time
	Kind  model.PeriodKind
}

// Select filters candidates to those available by cutoff and matching the
// target period within tolerance, then tie-breaks on latest filed date,
// then original form over amendment, then later accession. Returns ok=false
// if no fact survives filtering.
func Select(candidates []model.XBRLFact, target Period, cutoff time.Time) (best model.XBRLFact, ok bool) {
	survivors := make([]model.XBRLFact, 0, len(candidates))

	for _, f := range candidates {
		// Step 1: secondary PIT gate.
		if f.FiledDate.After(cutoff) {
			continue
		}

		// Step 2: period match, kind-specific.
		if f.PeriodKind != target.Kind {
			continue
		}
		if !withinTolerance(f.PeriodEnd, target.End) {
			continue
		}
		if target.Kind == model.PeriodDuration && !withinTolerance(f.PeriodStart, target.Start) {
			continue
		}

		// Step 3: consolidated only.
		if !f.Consolidated() {
			continue
		}

		survivors = append(survivors, f)
	}

	if len(survivors) == 0 {
		return model.XBRLFact{}, false
	}

	best = survivors[0]
	for _, f := range survivors[1:] {
		if betterCandidate(f, best) {
			best = f
		}
	}

	return best, true
}

// betterCandidate implements steps 4-5: prefer the later filed_date (still
// <= cutoff, guaranteed by the filter above); on a filed_date tie, prefer the
// fact whose accession form is the original over an amendment; if both are
// (or neither is) an amendment, fall back to the later accession (a later
// filing accession implies a later or equal acceptance, since accessions are
// issued in filing order).
func betterCandidate(candidate, current model.XBRLFact) bool {
	if candidate.FiledDate.After(current.FiledDate) {
		return true
	}
	if candidate.FiledDate.Before(current.FiledDate) {
		return false
	}

	candidateAmended, currentAmended := candidate.IsAmendedForm(), current.IsAmendedForm()
	if candidateAmended != currentAmended {
		return !candidateAmended
	}

	return candidate.Accession > current.Accession
}

func withinTolerance(a, b time.Time) bool {
	if a.IsZero() || b.IsZero() {
		return a.IsZero() && b.IsZero()
	}
	diff := a.Sub(b)
	if diff < 0 {
		diff = -diff
	}
	return diff <= toleranceDays*24*time.Hour
}
