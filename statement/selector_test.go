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
package statement

import (
	"errors"
	"testing"
	"time"

	"github.com/mosaicdata/pit-fundamentals/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSelectBestFilingPerPeriodPicksLatestAcceptance(t *testing.T) {
	loc := time.UTC
	periodEnd := day(2016, 9, 24)

	original := model.Filing{
		Accession: "0001-16-000001", FormType: model.FormAnnual, PeriodEnd: periodEnd,
		FilingDate: day(2016, 10, 25), AcceptanceDatetime: day(2016, 10, 26),
	}
	restatement := model.Filing{
		Accession: "0001-17-000005", FormType: model.FormAnnual, PeriodEnd: periodEnd,
		FilingDate: day(2017, 2, 14), AcceptanceDatetime: day(2017, 2, 15),
	}

	groups, err := SelectBestFilingPerPeriod([]model.Filing{original, restatement}, day(2017, 6, 1), loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("expected one period group, got %d", len(groups))
	}
	if groups[0].Best.Accession != restatement.Accession {
		t.Fatalf("expected restatement to win, got %s", groups[0].Best.Accession)
	}
}

func TestSelectBestFilingPerPeriodRaisesCutoffViolation(t *testing.T) {
	loc := time.UTC
	f := model.Filing{
		Accession: "a", FormType: model.FormAnnual, PeriodEnd: day(2016, 9, 24),
		FilingDate: day(2018, 1, 4), AcceptanceDatetime: day(2018, 1, 5),
	}

	_, err := SelectBestFilingPerPeriod([]model.Filing{f}, day(2017, 3, 1), loc)
	if !errors.Is(err, model.ErrCutoffViolation) {
		t.Fatalf("expected ErrCutoffViolation, got %v", err)
	}
}

func TestSelectBestFilingPerPeriodOrdersAscending(t *testing.T) {
	loc := time.UTC
	cutoff := day(2019, 1, 1)

	late := model.Filing{Accession: "b", FormType: model.FormAnnual, PeriodEnd: day(2017, 9, 30), AcceptanceDatetime: day(2017, 11, 1), FilingDate: day(2017, 10, 31)}
	early := model.Filing{Accession: "a", FormType: model.FormAnnual, PeriodEnd: day(2016, 9, 24), AcceptanceDatetime: day(2016, 10, 26), FilingDate: day(2016, 10, 25)}

	groups, err := SelectBestFilingPerPeriod([]model.Filing{late, early}, cutoff, loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(groups) != 2 || !groups[0].PeriodEnd.Before(groups[1].PeriodEnd) {
		t.Fatalf("expected ascending period_end ordering, got %+v", groups)
	}
}
