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
package model

import (
	"fmt"
	"time"
)

// FormType classifies a regulatory filing for period-type matching.
type FormType string

const (
	FormAnnual    FormType = "annual"
	FormQuarterly FormType = "quarterly"
	FormOther     FormType = "other"
)

// PeriodType is the granularity a snapshot request asks for.
type PeriodType string

const (
	PeriodAnnual    PeriodType = "annual"
	PeriodQuarterly PeriodType = "quarterly"
)

// Filing is one regulatory submission. acceptance_datetime is the sole PIT
// availability gate: nothing using this filing's facts may be visible before
// it.
type Filing struct {
	Issuer             IssuerId
	FormType           FormType
	IsAmendment        bool
	PeriodEnd          time.Time
	FilingDate         time.Time
	AcceptanceDatetime time.Time
	Accession          string
}

// Validate asserts the ordering invariant period_end <= filing_date <=
// acceptance_datetime. A violation is a data integrity bug in the source
// payload and must fail loudly rather than be silently tolerated.
func (f *Filing) Validate() error {
	if f.PeriodEnd.After(f.FilingDate) {
		return fmt.Errorf("%w: filing %s period_end %s after filing_date %s",
			ErrParse, f.Accession, f.PeriodEnd, f.FilingDate)
	}
	if f.FilingDate.After(f.AcceptanceDatetime) {
		return fmt.Errorf("%w: filing %s filing_date %s after acceptance_datetime %s",
			ErrParse, f.Accession, f.FilingDate, f.AcceptanceDatetime)
	}
	return nil
}

// AcceptedBy reports whether this filing's acceptance_datetime falls on or
// before the cutoff date's calendar day in the given location. This is the
// primary PIT gate.
//
// cutoff is treated as a zone-less calendar date: its Y/M/D components are
// taken as given, never reprojected through loc. Converting cutoff with
// .In(loc) first would shift a UTC-midnight cutoff (as produced by
// time.Parse with no zone) backward by the zone offset, making the gate one
// calendar day stricter than requested.
func (f *Filing) AcceptedBy(cutoff time.Time, loc *time.Location) bool {
	acc := f.AcceptanceDatetime.In(loc)
	accDay := time.Date(acc.Year(), acc.Month(), acc.Day(), 0, 0, 0, 0, loc)
	cutDay := time.Date(cutoff.Year(), cutoff.Month(), cutoff.Day(), 0, 0, 0, 0, loc)
	return !accDay.After(cutDay)
}

// MatchesPeriodType reports whether the filing's form type is an acceptable
// source for the requested period granularity, including amendments that
// restate a period of the requested type.
func (f *Filing) MatchesPeriodType(pt PeriodType) bool {
	switch pt {
	case PeriodAnnual:
		return f.FormType == FormAnnual
	case PeriodQuarterly:
		return f.FormType == FormQuarterly
	}
	return false
}
