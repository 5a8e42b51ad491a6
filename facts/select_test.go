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
package facts

import (
	"testing"
	"time"

	"github.com/mosaicdata/pit-fundamentals/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSelectPrefersLatestFiledDateNotAfterCutoff(t *testing.T) {
	target := Period{Start: day(2015, 9, 27), End: day(2016, 9, 24), Kind: model.PeriodDuration}
	cutoff := day(2017, 3, 1)

	original := model.XBRLFact{
		Value: 215639000000, PeriodStart: target.Start, PeriodEnd: target.End,
		PeriodKind: model.PeriodDuration, Accession: "0001-16-000001", FiledDate: day(2016, 10, 26),
	}
	restatement := model.XBRLFact{
		Value: 215639100000, PeriodStart: target.Start, PeriodEnd: target.End,
		PeriodKind: model.PeriodDuration, Accession: "0001-17-000005", FiledDate: day(2017, 2, 15),
	}
	tooLate := model.XBRLFact{
		Value: 999999999999, PeriodStart: target.Start, PeriodEnd: target.End,
		PeriodKind: model.PeriodDuration, Accession: "0001-17-000099", FiledDate: day(2017, 6, 1),
	}

	got, ok := Select([]model.XBRLFact{original, restatement, tooLate}, target, cutoff)
	if !ok {
		t.Fatal("expected a surviving fact")
	}
	if got.Accession != restatement.Accession {
		t.Fatalf("expected restatement to win, got %s", got.Accession)
	}
}

func TestSelectRejectsFactsFiledAfterCutoff(t *testing.T) {
	target := Period{End: day(2016, 9, 24), Kind: model.PeriodInstant}
	cutoff := day(2016, 12, 31)

	f := model.XBRLFact{PeriodEnd: target.End, PeriodKind: model.PeriodInstant, FiledDate: day(2017, 2, 15), Accession: "a"}

	_, ok := Select([]model.XBRLFact{f}, target, cutoff)
	if ok {
		t.Fatal("expected no survivors: fact's filed_date is after cutoff")
	}
}

func TestSelectToleranceBoundary(t *testing.T) {
	target := Period{End: day(2016, 9, 24), Kind: model.PeriodInstant}
	cutoff := day(2017, 1, 1)

	within := model.XBRLFact{PeriodEnd: day(2016, 9, 27), PeriodKind: model.PeriodInstant, FiledDate: day(2016, 10, 1), Accession: "a"}
	_, ok := Select([]model.XBRLFact{within}, target, cutoff)
	if !ok {
		t.Fatal("expected a fact 3 days off the target period_end to match")
	}

	outside := model.XBRLFact{PeriodEnd: day(2016, 9, 28), PeriodKind: model.PeriodInstant, FiledDate: day(2016, 10, 1), Accession: "a"}
	_, ok = Select([]model.XBRLFact{outside}, target, cutoff)
	if ok {
		t.Fatal("expected a fact 4 days off the target period_end to be rejected")
	}
}

func TestSelectExcludesNonConsolidatedFacts(t *testing.T) {
	target := Period{End: day(2016, 9, 24), Kind: model.PeriodInstant}
	cutoff := day(2017, 1, 1)

	segment := model.XBRLFact{
		PeriodEnd: target.End, PeriodKind: model.PeriodInstant, FiledDate: day(2016, 10, 1),
		Accession: "a", Dimensions: map[string]string{"ProductOrServiceAxis": "iPhoneMember"},
	}
	_, ok := Select([]model.XBRLFact{segment}, target, cutoff)
	if ok {
		t.Fatal("expected segment-dimensioned fact to be excluded")
	}

	total := model.XBRLFact{
		PeriodEnd: target.End, PeriodKind: model.PeriodInstant, FiledDate: day(2016, 10, 1),
		Accession: "a", Dimensions: map[string]string{"ConsolidationItemsAxis": "TotalMember"},
	}
	got, ok := Select([]model.XBRLFact{total}, target, cutoff)
	if !ok || got.Accession != "a" {
		t.Fatal("expected a fact dimensioned only with a known total member to be treated as consolidated")
	}
}

func TestSelectPrefersOriginalFormOverAmendmentOnFiledDateTie(t *testing.T) {
	target := Period{End: day(2016, 9, 24), Kind: model.PeriodInstant}
	cutoff := day(2017, 1, 1)

	original := model.XBRLFact{
		Value: 1000, PeriodEnd: target.End, PeriodKind: model.PeriodInstant,
		Accession: "0001-16-000001", FiledDate: day(2016, 10, 26), Form: "10-K",
	}
	amendment := model.XBRLFact{
		Value: 1100, PeriodEnd: target.End, PeriodKind: model.PeriodInstant,
		Accession: "0001-16-000002", FiledDate: day(2016, 10, 26), Form: "10-K/A",
	}

	got, ok := Select([]model.XBRLFact{amendment, original}, target, cutoff)
	if !ok {
		t.Fatal("expected a surviving fact")
	}
	if got.Accession != original.Accession {
		t.Fatalf("expected the original form to win a filed_date tie over its amendment, got %s", got.Accession)
	}
}

func TestSelectStillPrefersLaterAccessionWhenNeitherIsAnAmendment(t *testing.T) {
	target := Period{End: day(2016, 9, 24), Kind: model.PeriodInstant}
	cutoff := day(2017, 1, 1)

	earlier := model.XBRLFact{
		Value: 1000, PeriodEnd: target.End, PeriodKind: model.PeriodInstant,
		Accession: "0001-16-000001", FiledDate: day(2016, 10, 26), Form: "10-K",
	}
	later := model.XBRLFact{
		Value: 1100, PeriodEnd: target.End, PeriodKind: model.PeriodInstant,
		Accession: "0001-16-000002", FiledDate: day(2016, 10, 26), Form: "10-K",
	}

	got, ok := Select([]model.XBRLFact{earlier, later}, target, cutoff)
	if !ok {
		t.Fatal("expected a surviving fact")
	}
	if got.Accession != later.Accession {
		t.Fatalf("expected the later accession to win when neither candidate is an amendment, got %s", got.Accession)
	}
}

func TestSelectReturnsFalseWhenNoCandidates(t *testing.T) {
	_, ok := Select(nil, Period{End: day(2016, 9, 24), Kind: model.PeriodInstant}, day(2017, 1, 1))
	if ok {
		t.Fatal("expected no survivors for empty candidate set")
	}
}
