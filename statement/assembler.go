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
	"math"
	"time"

	"github.com/mosaicdata/pit-fundamentals/edgar"
	"github.com/mosaicdata/pit-fundamentals/facts"
	"github.com/mosaicdata/pit-fundamentals/model"
	"github.com/mosaicdata/pit-fundamentals/tagmap"
)

const (
	annualSpan    = 365 * 24 * time.Hour
	quarterlySpan = 91 * 24 * time.Hour
)

// targetPeriod derives the fiscal period a duration-kind tag must cover for
// the group's best filing, approximating the period start from its form
// type since the filings index does not carry one directly.
func targetPeriod(g PeriodGroup) facts.Period {
	span := quarterlySpan
	if g.Best.FormType == model.FormAnnual {
		span = annualSpan
	}
	return facts.Period{
		Start: g.PeriodEnd.Add(-span),
		End:   g.PeriodEnd,
		Kind:  model.PeriodDuration,
	}
}

func instantPeriod(g PeriodGroup) facts.Period {
	return facts.Period{End: g.PeriodEnd, Kind: model.PeriodInstant}
}

// assembled bundles one field's resolved fact (which carries its source
// accession), so Assemble can pick the row's AsOfDate/Accession by majority
// contribution.
type assembled struct {
	field model.StandardField
	fact  model.XBRLFact
	found bool
}

func resolveFields(fields []model.StandardField, tagFacts edgar.FactsByTag, durationTarget, instantTarget facts.Period, cutoff time.Time) []assembled {
	out := make([]assembled, len(fields))
	for i, field := range fields {
		target := durationTarget
		if expectedPeriodKindFor(field) == model.PeriodInstant {
			target = instantTarget
		}
		fact, ok := tagmap.Resolve(field, tagFacts, target, cutoff)
		out[i] = assembled{field: field, fact: fact, found: ok}
	}
	return out
}

// expectedPeriodKindFor mirrors model's private helper of the same purpose;
// duplicated here rather than exported from model to keep model free of
// tagmap/facts-shaped concerns.
func expectedPeriodKindFor(f model.StandardField) model.PeriodKind {
	for _, bf := range model.BalanceSheetFields {
		if bf == f {
			return model.PeriodInstant
		}
	}
	return model.PeriodDuration
}

// majorityAccession picks the Accession contributed by the most fields
// (ties go to the lexically greatest accession number), falling back to the
// group's best filing when no field resolved. The
// returned AsOfDate is the winning accession's real AcceptanceDatetime,
// looked up in filingsByAccession — never the contributing fact's FiledDate,
// which is a date-only field and would silently truncate the PIT timestamp
// to midnight. A winning accession absent from filingsByAccession (a fact
// sourced from a filing of a different form type than the one requested)
// falls back to the group's best filing's AcceptanceDatetime.
func majorityAccession(rs []assembled, fallback model.Filing, filingsByAccession map[string]model.Filing) (string, time.Time) {
	counts := make(map[string]int)
	for _, r := range rs {
		if !r.found {
			continue
		}
		counts[r.fact.Accession]++
	}

	best, bestCount := "", 0
	for accn, n := range counts {
		if n > bestCount || (n == bestCount && accn > best) {
			best, bestCount = accn, n
		}
	}
	if best == "" {
		return fallback.Accession, fallback.AcceptanceDatetime
	}
	if f, ok := filingsByAccession[best]; ok {
		return best, f.AcceptanceDatetime
	}
	return best, fallback.AcceptanceDatetime
}

// valueOf returns field's resolved value, normalized to IsCredit's
// positive-value-as-reported convention: cost, expense, and liability fields
// are stored as positive magnitudes regardless of how a filer signed the
// underlying XBRL fact. Most filers already report these tags positive, so
// this only corrects the rare inverted-sign filing rather than flipping
// otherwise-correct data.
func valueOf(rs []assembled, field model.StandardField) *float64 {
	for _, r := range rs {
		if r.field == field && r.found {
			v := r.fact.Value
			if mapping, ok := tagmap.Mapping(field); ok && mapping.IsCredit {
				v = math.Abs(v)
			}
			return &v
		}
	}
	return nil
}

// AssembleIncome builds one statements_income row for the group's fiscal
// period. filingsByAccession (statement.IndexByAccession) supplies the real
// AcceptanceDatetime for whichever accession ends up contributing the row.
func AssembleIncome(ticker model.Ticker, g PeriodGroup, tagFacts edgar.FactsByTag, cutoff time.Time, filingsByAccession map[string]model.Filing) model.IncomeStatementRow {
	dt, it := targetPeriod(g), instantPeriod(g)
	rs := resolveFields(model.IncomeStatementFields, tagFacts, dt, it, cutoff)
	accn, asOf := majorityAccession(rs, g.Best, filingsByAccession)

	return model.IncomeStatementRow{
		BaseRow: model.BaseRow{Ticker: ticker, PeriodEnd: g.PeriodEnd, AsOfDate: asOf, Accession: accn},

		Revenue:           valueOf(rs, model.FieldRevenue),
		CostOfRevenue:     valueOf(rs, model.FieldCostOfRevenue),
		GrossProfit:       valueOf(rs, model.FieldGrossProfit),
		OperatingExpenses: valueOf(rs, model.FieldOperatingExpenses),
		OperatingIncome:   valueOf(rs, model.FieldOperatingIncome),
		InterestExpense:   valueOf(rs, model.FieldInterestExpense),
		PretaxIncome:      valueOf(rs, model.FieldPretaxIncome),
		IncomeTaxExpense:  valueOf(rs, model.FieldIncomeTaxExpense),
		NetIncome:         valueOf(rs, model.FieldNetIncome),
		EPSBasic:          valueOf(rs, model.FieldEPSBasic),
		EPSDiluted:        valueOf(rs, model.FieldEPSDiluted),
		SharesBasic:       valueOf(rs, model.FieldSharesBasic),
		SharesDiluted:     valueOf(rs, model.FieldSharesDiluted),
	}
}

// AssembleBalance builds one statements_balance row.
func AssembleBalance(ticker model.Ticker, g PeriodGroup, tagFacts edgar.FactsByTag, cutoff time.Time, filingsByAccession map[string]model.Filing) model.BalanceSheetRow {
	dt, it := targetPeriod(g), instantPeriod(g)
	rs := resolveFields(model.BalanceSheetFields, tagFacts, dt, it, cutoff)
	accn, asOf := majorityAccession(rs, g.Best, filingsByAccession)

	return model.BalanceSheetRow{
		BaseRow: model.BaseRow{Ticker: ticker, PeriodEnd: g.PeriodEnd, AsOfDate: asOf, Accession: accn},

		CashAndEquivalents:      valueOf(rs, model.FieldCashAndEquivalents),
		ShortTermInvestments:    valueOf(rs, model.FieldShortTermInvest),
		Receivables:             valueOf(rs, model.FieldReceivables),
		Inventory:               valueOf(rs, model.FieldInventory),
		TotalCurrentAssets:      valueOf(rs, model.FieldTotalCurrentAssets),
		PropertyPlantEquipment:  valueOf(rs, model.FieldPPE),
		Goodwill:                valueOf(rs, model.FieldGoodwill),
		TotalAssets:             valueOf(rs, model.FieldTotalAssets),
		AccountsPayable:         valueOf(rs, model.FieldAccountsPayable),
		ShortTermDebt:           valueOf(rs, model.FieldShortTermDebt),
		TotalCurrentLiabilities: valueOf(rs, model.FieldTotalCurrentLiab),
		LongTermDebt:            valueOf(rs, model.FieldLongTermDebt),
		TotalLiabilities:        valueOf(rs, model.FieldTotalLiabilities),
		TotalEquity:             valueOf(rs, model.FieldTotalEquity),
	}
}

// AssembleCashFlow builds one statements_cashflow row.
func AssembleCashFlow(ticker model.Ticker, g PeriodGroup, tagFacts edgar.FactsByTag, cutoff time.Time, filingsByAccession map[string]model.Filing) model.CashFlowRow {
	dt, it := targetPeriod(g), instantPeriod(g)
	rs := resolveFields(model.CashFlowFields, tagFacts, dt, it, cutoff)
	accn, asOf := majorityAccession(rs, g.Best, filingsByAccession)

	return model.CashFlowRow{
		BaseRow: model.BaseRow{Ticker: ticker, PeriodEnd: g.PeriodEnd, AsOfDate: asOf, Accession: accn},

		CashFromOperations:          valueOf(rs, model.FieldCashFromOperations),
		CapitalExpenditure:          valueOf(rs, model.FieldCapitalExpenditure),
		CashFromInvesting:           valueOf(rs, model.FieldCashFromInvesting),
		CashFromFinancing:           valueOf(rs, model.FieldCashFromFinancing),
		NetChangeInCash:             valueOf(rs, model.FieldNetChangeInCash),
		DepreciationAndAmortization: valueOf(rs, model.FieldDepreciation),
	}
}

// DeriveMetrics computes the derived_metrics row from already-assembled
// statement rows, propagating nil through any missing input.
func DeriveMetrics(income model.IncomeStatementRow, cashflow model.CashFlowRow) model.DerivedMetricsRow {
	row := model.DerivedMetricsRow{
		BaseRow: model.BaseRow{
			Ticker: income.Ticker, PeriodEnd: income.PeriodEnd,
			AsOfDate: income.AsOfDate, Accession: income.Accession,
		},
	}

	row.GrossMargin = ratio(income.GrossProfit, income.Revenue)
	row.OperatingMargin = ratio(income.OperatingIncome, income.Revenue)
	row.NetMargin = ratio(income.NetIncome, income.Revenue)
	row.FreeCashFlow = subtract(cashflow.CashFromOperations, cashflow.CapitalExpenditure)

	return row
}

func ratio(numerator, denominator *float64) *float64 {
	if numerator == nil || denominator == nil || *denominator == 0 {
		return nil
	}
	v := *numerator / *denominator
	return &v
}

func subtract(a, b *float64) *float64 {
	if a == nil || b == nil {
		return nil
	}
	v := *a - *b
	return &v
}
