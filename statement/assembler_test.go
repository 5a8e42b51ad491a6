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
	"testing"
	"time"

	"github.com/mosaicdata/pit-fundamentals/edgar"
	"github.com/mosaicdata/pit-fundamentals/model"
)

func TestAssembleIncomeFillsResolvedFieldsAndLeavesRestNil(t *testing.T) {
	periodEnd := day(2016, 9, 24)
	acceptance := time.Date(2016, 10, 26, 20, 1, 36, 0, time.UTC)
	filing := model.Filing{
		Accession: "0001-16-000001", FormType: model.FormAnnual, PeriodEnd: periodEnd,
		FilingDate: day(2016, 10, 25), AcceptanceDatetime: acceptance,
	}
	group := PeriodGroup{PeriodEnd: periodEnd, Best: filing}
	filingsByAccession := IndexByAccession([]model.Filing{filing})

	// FiledDate is deliberately a different, earlier, midnight-truncated
	// value than AcceptanceDatetime: AsOfDate must come from the latter.
	tagFacts := edgar.FactsByTag{
		"Revenues": {{
			Value: 1000, PeriodStart: periodEnd.Add(-annualSpan), PeriodEnd: periodEnd,
			PeriodKind: model.PeriodDuration, Accession: filing.Accession, FiledDate: day(2016, 10, 26),
		}},
		"NetIncomeLoss": {{
			Value: 150, PeriodStart: periodEnd.Add(-annualSpan), PeriodEnd: periodEnd,
			PeriodKind: model.PeriodDuration, Accession: filing.Accession, FiledDate: day(2016, 10, 26),
		}},
	}

	row := AssembleIncome("AAPL", group, tagFacts, day(2017, 1, 1), filingsByAccession)

	if row.Revenue == nil || *row.Revenue != 1000 {
		t.Fatalf("expected revenue 1000, got %v", row.Revenue)
	}
	if row.NetIncome == nil || *row.NetIncome != 150 {
		t.Fatalf("expected net income 150, got %v", row.NetIncome)
	}
	if row.CostOfRevenue != nil {
		t.Fatalf("expected unresolved field to stay nil, got %v", row.CostOfRevenue)
	}
	if row.Accession != filing.Accession {
		t.Fatalf("expected accession %s, got %s", filing.Accession, row.Accession)
	}
	if !row.AsOfDate.Equal(acceptance) {
		t.Fatalf("expected asof_date to be the filing's acceptance_datetime %s, got %s", acceptance, row.AsOfDate)
	}
}

func TestAssembleIncomeFallsBackToBestFilingWhenAccessionUnindexed(t *testing.T) {
	periodEnd := day(2016, 9, 24)
	filing := model.Filing{
		Accession: "0001-16-000001", FormType: model.FormAnnual, PeriodEnd: periodEnd,
		FilingDate: day(2016, 10, 25), AcceptanceDatetime: day(2016, 10, 26),
	}
	group := PeriodGroup{PeriodEnd: periodEnd, Best: filing}

	// No fact resolves for any field, so majorityAccession must fall back to
	// the group's best filing even with an empty index.
	row := AssembleIncome("AAPL", group, edgar.FactsByTag{}, day(2017, 1, 1), map[string]model.Filing{})

	if row.Accession != filing.Accession {
		t.Fatalf("expected fallback accession %s, got %s", filing.Accession, row.Accession)
	}
	if !row.AsOfDate.Equal(filing.AcceptanceDatetime) {
		t.Fatalf("expected fallback asof_date %s, got %s", filing.AcceptanceDatetime, row.AsOfDate)
	}
}

func TestAssembleIncomeNormalizesCreditFieldsToPositiveMagnitude(t *testing.T) {
	periodEnd := day(2016, 9, 24)
	filing := model.Filing{
		Accession: "0001-16-000001", FormType: model.FormAnnual, PeriodEnd: periodEnd,
		FilingDate: day(2016, 10, 25), AcceptanceDatetime: day(2016, 10, 26),
	}
	group := PeriodGroup{PeriodEnd: periodEnd, Best: filing}
	filingsByAccession := IndexByAccession([]model.Filing{filing})

	// CostOfRevenue is an IsCredit field; a filer that tags it with an
	// inverted sign must still surface as a positive cost in the assembled row.
	tagFacts := edgar.FactsByTag{
		"CostOfRevenue": {{
			Value: -600, PeriodStart: periodEnd.Add(-annualSpan), PeriodEnd: periodEnd,
			PeriodKind: model.PeriodDuration, Accession: filing.Accession, FiledDate: day(2016, 10, 26),
		}},
	}

	row := AssembleIncome("AAPL", group, tagFacts, day(2017, 1, 1), filingsByAccession)

	if row.CostOfRevenue == nil || *row.CostOfRevenue != 600 {
		t.Fatalf("expected cost of revenue normalized to 600, got %v", row.CostOfRevenue)
	}
}

func TestDeriveMetricsPropagatesNilOnMissingInput(t *testing.T) {
	revenue, gross, opInc, netInc := 1000.0, 400.0, 200.0, 150.0
	income := model.IncomeStatementRow{
		Revenue: &revenue, GrossProfit: &gross, OperatingIncome: &opInc, NetIncome: &netInc,
	}
	cfo, capex := 300.0, 50.0
	cashflow := model.CashFlowRow{CashFromOperations: &cfo, CapitalExpenditure: &capex}

	derived := DeriveMetrics(income, cashflow)

	if derived.GrossMargin == nil || *derived.GrossMargin != 0.4 {
		t.Fatalf("expected gross margin 0.4, got %v", derived.GrossMargin)
	}
	if derived.FreeCashFlow == nil || *derived.FreeCashFlow != 250 {
		t.Fatalf("expected free cash flow 250, got %v", derived.FreeCashFlow)
	}

	// Missing revenue must null out every margin that depends on it, without
	// touching free cash flow (which depends on cashflow inputs only).
	incomeMissingRevenue := model.IncomeStatementRow{GrossProfit: &gross}
	derived2 := DeriveMetrics(incomeMissingRevenue, cashflow)
	if derived2.GrossMargin != nil {
		t.Fatalf("expected nil gross margin when revenue is missing, got %v", derived2.GrossMargin)
	}
	if derived2.FreeCashFlow == nil || *derived2.FreeCashFlow != 250 {
		t.Fatalf("expected free cash flow unaffected by missing revenue, got %v", derived2.FreeCashFlow)
	}
}
