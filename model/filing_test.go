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
	"testing"
	"time"
)

func TestAcceptedByIncludesAcceptanceAtEndOfCutoffDay(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("LoadLocation: %v", err)
	}

	f := Filing{AcceptanceDatetime: time.Date(2016, 12, 31, 23, 59, 59, 0, loc)}

	// A bare time.Parse("2006-01-02", "2016-12-31") anchors the cutoff at UTC
	// midnight, which is 2016-12-30 19:00 in America/New_York. AcceptedBy
	// must not let that zone conversion roll the calendar day backward.
	cutoff, err := time.Parse("2006-01-02", "2016-12-31")
	if err != nil {
		t.Fatalf("time.Parse: %v", err)
	}

	if !f.AcceptedBy(cutoff, loc) {
		t.Fatal("expected acceptance at 23:59:59 on the cutoff day to be included regardless of the cutoff's own zone")
	}
}

func TestAcceptedByExcludesDayAfterCutoff(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("LoadLocation: %v", err)
	}

	f := Filing{AcceptanceDatetime: time.Date(2017, 1, 1, 0, 0, 1, 0, loc)}
	cutoff := time.Date(2016, 12, 31, 0, 0, 0, 0, loc)

	if f.AcceptedBy(cutoff, loc) {
		t.Fatal("expected acceptance the day after cutoff to be excluded")
	}
}
