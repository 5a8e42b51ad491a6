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

// Package statement is the Filing Selector (C10) and Statement Assembler
// (C9): choosing the best filing per fiscal period and projecting tag-mapped
// facts into typed rows.
package statement

import (
	"fmt"
	"time"

	"github.com/mosaicdata/pit-fundamentals/model"
)

// PeriodGroup is one fiscal period's PIT-filtered filings, selected down to
// the single best (latest-accepted) filing.
type PeriodGroup struct {
	PeriodEnd time.Time
	Best      model.Filing
}

// SelectBestFilingPerPeriod groups filings (already PIT-filtered by the
// Filings Index) by fiscal period and picks, per period, the filing with the
// latest acceptance_datetime. Returns groups ascending by
// PeriodEnd, matching the ordering guarantee the Snapshot Builder relies on.
func SelectBestFilingPerPeriod(filingsByPeriod []model.Filing, cutoff time.Time, loc *time.Location) ([]PeriodGroup, error) {
	byPeriod := make(map[time.Time]model.Filing)
	order := make([]time.Time, 0, len(filingsByPeriod))

	for _, f := range filingsByPeriod {
		existing, seen := byPeriod[f.PeriodEnd]
		if !seen {
			order = append(order, f.PeriodEnd)
			byPeriod[f.PeriodEnd] = f
			continue
		}
		if f.AcceptanceDatetime.After(existing.AcceptanceDatetime) {
			byPeriod[f.PeriodEnd] = f
		}
	}

	groups := make([]PeriodGroup, 0, len(order))
	for _, pe := range order {
		best := byPeriod[pe]

		if !best.AcceptedBy(cutoff, loc) {
			return nil, fmt.Errorf("%w: filing %s accepted %s is after cutoff %s",
				model.ErrCutoffViolation, best.Accession, best.AcceptanceDatetime, cutoff)
		}

		groups = append(groups, PeriodGroup{PeriodEnd: pe, Best: best})
	}

	sortGroupsByPeriodEnd(groups)

	return groups, nil
}

func sortGroupsByPeriodEnd(groups []PeriodGroup) {
	for i := 1; i < len(groups); i++ {
		for j := i; j > 0 && groups[j].PeriodEnd.Before(groups[j-1].PeriodEnd); j-- {
			groups[j], groups[j-1] = groups[j-1], groups[j]
		}
	}
}

// IndexByAccession builds an accession -> Filing lookup so the Statement
// Assembler can recover a contributing fact's real AcceptanceDatetime
// instead of its date-only FiledDate.
func IndexByAccession(filings []model.Filing) map[string]model.Filing {
	byAccession := make(map[string]model.Filing, len(filings))
	for _, f := range filings {
		byAccession[f.Accession] = f
	}
	return byAccession
}
