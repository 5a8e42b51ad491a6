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
	"strings"
	"time"
)

// PeriodKind distinguishes an instant fact (a balance at a point in time)
// from a duration fact (a flow accumulated over a span).
type PeriodKind string

const (
	PeriodInstant  PeriodKind = "instant"
	PeriodDuration PeriodKind = "duration"
)

// totalDimensionMembers lists axis members that still describe the whole
// consolidated entity despite carrying an explicit dimension, e.g. an axis
// used only to distinguish "as reported" from "restated" totals.
var totalDimensionMembers = map[string]bool{
	"ConsolidatedEntitiesMember": true,
	"TotalMember":                true,
}

// XBRLFact is one tagged numeric value from a regulator's company-facts
// payload. Facts are immutable; restatements are distinct facts distinguished
// by Accession/FiledDate, never mutations of an earlier fact.
type XBRLFact struct {
	Tag         string
	Value       float64
	Unit        string
	PeriodStart time.Time // zero for instant facts
	PeriodEnd   time.Time
	PeriodKind  PeriodKind
	Accession   string
	FiledDate   time.Time
	Form        string // raw regulator form, e.g. "10-K", "10-K/A"
	Dimensions  map[string]string
}

// IsAmendedForm reports whether Form names an amendment of its base form.
func (f *XBRLFact) IsAmendedForm() bool {
	return strings.HasSuffix(strings.ToUpper(strings.TrimSpace(f.Form)), "/A")
}

// Consolidated reports whether the fact represents the whole entity rather
// than a segment: no dimensions, or dimensions naming only known "total"
// members.
func (f *XBRLFact) Consolidated() bool {
	if len(f.Dimensions) == 0 {
		return true
	}
	for _, member := range f.Dimensions {
		if !totalDimensionMembers[member] {
			return false
		}
	}
	return true
}
