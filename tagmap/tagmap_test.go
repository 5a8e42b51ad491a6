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
package tagmap

import (
	"testing"
	"time"

	"github.com/mosaicdata/pit-fundamentals/edgar"
	"github.com/mosaicdata/pit-fundamentals/facts"
	"github.com/mosaicdata/pit-fundamentals/model"
)

func TestResolveFallsBackThroughPriorityList(t *testing.T) {
	target := facts.Period{
		Start: time.Date(2015, 9, 27, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2016, 9, 24, 0, 0, 0, 0, time.UTC),
		Kind:  model.PeriodDuration,
	}
	cutoff := time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC)

	// "Revenues" (priority 1) is absent; "SalesRevenueNet" (last priority)
	// is present and must still be found.
	tagFacts := edgar.FactsByTag{
		"SalesRevenueNet": {{
			Value: 100, PeriodStart: target.Start, PeriodEnd: target.End,
			PeriodKind: model.PeriodDuration, Accession: "a", FiledDate: time.Date(2016, 10, 26, 0, 0, 0, 0, time.UTC),
		}},
	}

	got, ok := Resolve(model.FieldRevenue, tagFacts, target, cutoff)
	if !ok {
		t.Fatal("expected fallback tag to resolve")
	}
	if got.Value != 100 {
		t.Errorf("got value %v, want 100", got.Value)
	}
}

func TestResolvePrefersHigherPriorityTagWhenBothPresent(t *testing.T) {
	target := facts.Period{
		Start: time.Date(2015, 9, 27, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2016, 9, 24, 0, 0, 0, 0, time.UTC),
		Kind:  model.PeriodDuration,
	}
	cutoff := time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC)

	filed := time.Date(2016, 10, 26, 0, 0, 0, 0, time.UTC)
	tagFacts := edgar.FactsByTag{
		"Revenues": {{
			Value: 200, PeriodStart: target.Start, PeriodEnd: target.End,
			PeriodKind: model.PeriodDuration, Accession: "a", FiledDate: filed,
		}},
		"SalesRevenueNet": {{
			Value: 999, PeriodStart: target.Start, PeriodEnd: target.End,
			PeriodKind: model.PeriodDuration, Accession: "b", FiledDate: filed,
		}},
	}

	got, ok := Resolve(model.FieldRevenue, tagFacts, target, cutoff)
	if !ok || got.Value != 200 {
		t.Fatalf("expected the higher-priority tag's fact (200), got %v, ok=%v", got.Value, ok)
	}
}

func TestResolveUnknownFieldMisses(t *testing.T) {
	_, ok := Resolve(model.StandardField("not_a_field"), edgar.FactsByTag{}, facts.Period{}, time.Now())
	if ok {
		t.Fatal("expected unknown field to miss")
	}
}

func TestTableIsAppendOnlyOrderedPerField(t *testing.T) {
	mapping, ok := Mapping(model.FieldRevenue)
	if !ok {
		t.Fatal("expected a mapping for revenue")
	}
	if len(mapping.Tags) == 0 {
		t.Fatal("expected at least one candidate tag")
	}
	if mapping.Tags[0] != "Revenues" {
		t.Errorf("expected Revenues as the first priority tag, got %s", mapping.Tags[0])
	}
}
