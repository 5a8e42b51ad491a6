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

// Package tagmap is the Tag Mapper (C8): a static, append-only table binding
// each StandardField to an ordered list of candidate regulator tags, and the
// resolver that walks that list through the Context Engine. Grounded on
// NateN8-go-edgar's extractMetric(usGaap, []string{tagNames...}, ...)
// tag-priority-with-fallback pattern.
package tagmap

import (
	"time"

	"github.com/mosaicdata/pit-fundamentals/edgar"
	"github.com/mosaicdata/pit-fundamentals/facts"
	"github.com/mosaicdata/pit-fundamentals/model"
)

// Table is the authoritative, append-only tag priority list per standard
// field. New regulator tag variants must be appended, never inserted, so
// historical backtest results never change retroactively.
var Table = []model.TagMapping{
	{Field: model.FieldRevenue, ExpectedPeriodKind: model.PeriodDuration, Tags: []string{
		"Revenues", "RevenueFromContractWithCustomerExcludingAssessedTax",
		"RevenueFromContractWithCustomerIncludingAssessedTax", "SalesRevenueNet",
	}},
	{Field: model.FieldCostOfRevenue, ExpectedPeriodKind: model.PeriodDuration, IsCredit: true, Tags: []string{
		"CostOfRevenue", "CostOfGoodsAndServicesSold", "CostOfGoodsSold",
	}},
	{Field: model.FieldGrossProfit, ExpectedPeriodKind: model.PeriodDuration, Tags: []string{
		"GrossProfit",
	}},
	{Field: model.FieldOperatingExpenses, ExpectedPeriodKind: model.PeriodDuration, IsCredit: true, Tags: []string{
		"OperatingExpenses", "CostsAndExpenses",
	}},
	{Field: model.FieldOperatingIncome, ExpectedPeriodKind: model.PeriodDuration, Tags: []string{
		"OperatingIncomeLoss",
	}},
	{Field: model.FieldInterestExpense, ExpectedPeriodKind: model.PeriodDuration, IsCredit: true, Tags: []string{
		"InterestExpense", "InterestExpenseDebt", "InterestIncomeExpenseNet",
	}},
	{Field: model.FieldPretaxIncome, ExpectedPeriodKind: model.PeriodDuration, Tags: []string{
		"IncomeLossFromContinuingOperationsBeforeIncomeTaxesExtraordinaryItemsNoncontrollingInterest",
		"IncomeLossFromContinuingOperationsBeforeIncomeTaxesMinorityInterestAndIncomeLossFromEquityMethodInvestments",
	}},
	{Field: model.FieldIncomeTaxExpense, ExpectedPeriodKind: model.PeriodDuration, IsCredit: true, Tags: []string{
		"IncomeTaxExpenseBenefit",
	}},
	{Field: model.FieldNetIncome, ExpectedPeriodKind: model.PeriodDuration, Tags: []string{
		"NetIncomeLoss", "ProfitLoss", "NetIncomeLossAvailableToCommonStockholdersBasic",
	}},
	{Field: model.FieldEPSBasic, ExpectedPeriodKind: model.PeriodDuration, Tags: []string{
		"EarningsPerShareBasic",
	}},
	{Field: model.FieldEPSDiluted, ExpectedPeriodKind: model.PeriodDuration, Tags: []string{
		"EarningsPerShareDiluted",
	}},
	{Field: model.FieldSharesBasic, ExpectedPeriodKind: model.PeriodDuration, Tags: []string{
		"WeightedAverageNumberOfSharesOutstandingBasic",
	}},
	{Field: model.FieldSharesDiluted, ExpectedPeriodKind: model.PeriodDuration, Tags: []string{
		"WeightedAverageNumberOfDilutedSharesOutstanding",
	}},

	{Field: model.FieldCashAndEquivalents, ExpectedPeriodKind: model.PeriodInstant, Tags: []string{
		"CashAndCashEquivalentsAtCarryingValue", "CashCashEquivalentsRestrictedCashAndRestrictedCashEquivalents",
	}},
	{Field: model.FieldShortTermInvest, ExpectedPeriodKind: model.PeriodInstant, Tags: []string{
		"ShortTermInvestments",
	}},
	{Field: model.FieldReceivables, ExpectedPeriodKind: model.PeriodInstant, Tags: []string{
		"AccountsReceivableNetCurrent", "ReceivablesNetCurrent",
	}},
	{Field: model.FieldInventory, ExpectedPeriodKind: model.PeriodInstant, Tags: []string{
		"InventoryNet",
	}},
	{Field: model.FieldTotalCurrentAssets, ExpectedPeriodKind: model.PeriodInstant, Tags: []string{
		"AssetsCurrent",
	}},
	{Field: model.FieldPPE, ExpectedPeriodKind: model.PeriodInstant, Tags: []string{
		"PropertyPlantAndEquipmentNet",
	}},
	{Field: model.FieldGoodwill, ExpectedPeriodKind: model.PeriodInstant, Tags: []string{
		"Goodwill",
	}},
	{Field: model.FieldTotalAssets, ExpectedPeriodKind: model.PeriodInstant, Tags: []string{
		"Assets",
	}},
	{Field: model.FieldAccountsPayable, ExpectedPeriodKind: model.PeriodInstant, IsCredit: true, Tags: []string{
		"AccountsPayableCurrent",
	}},
	{Field: model.FieldShortTermDebt, ExpectedPeriodKind: model.PeriodInstant, IsCredit: true, Tags: []string{
		"ShortTermBorrowings", "DebtCurrent", "LongTermDebtCurrent",
	}},
	{Field: model.FieldTotalCurrentLiab, ExpectedPeriodKind: model.PeriodInstant, IsCredit: true, Tags: []string{
		"LiabilitiesCurrent",
	}},
	{Field: model.FieldLongTermDebt, ExpectedPeriodKind: model.PeriodInstant, IsCredit: true, Tags: []string{
		"LongTermDebtNoncurrent", "LongTermDebt",
	}},
	{Field: model.FieldTotalLiabilities, ExpectedPeriodKind: model.PeriodInstant, IsCredit: true, Tags: []string{
		"Liabilities",
	}},
	{Field: model.FieldTotalEquity, ExpectedPeriodKind: model.PeriodInstant, Tags: []string{
		"StockholdersEquity", "StockholdersEquityIncludingPortionAttributableToNoncontrollingInterest",
	}},

	{Field: model.FieldCashFromOperations, ExpectedPeriodKind: model.PeriodDuration, Tags: []string{
		"NetCashProvidedByUsedInOperatingActivities",
	}},
	{Field: model.FieldCapitalExpenditure, ExpectedPeriodKind: model.PeriodDuration, IsCredit: true, Tags: []string{
		"PaymentsToAcquirePropertyPlantAndEquipment",
	}},
	{Field: model.FieldCashFromInvesting, ExpectedPeriodKind: model.PeriodDuration, Tags: []string{
		"NetCashProvidedByUsedInInvestingActivities",
	}},
	{Field: model.FieldCashFromFinancing, ExpectedPeriodKind: model.PeriodDuration, Tags: []string{
		"NetCashProvidedByUsedInFinancingActivities",
	}},
	{Field: model.FieldNetChangeInCash, ExpectedPeriodKind: model.PeriodDuration, Tags: []string{
		"CashAndCashEquivalentsPeriodIncreaseDecrease",
		"CashCashEquivalentsRestrictedCashAndRestrictedCashEquivalentsPeriodIncreaseDecreaseIncludingExchangeRateEffect",
	}},
	{Field: model.FieldDepreciation, ExpectedPeriodKind: model.PeriodDuration, IsCredit: true, Tags: []string{
		"DepreciationDepletionAndAmortization", "DepreciationAmortizationAndAccretionNet",
	}},
}

var byField = indexByField(Table)

func indexByField(table []model.TagMapping) map[model.StandardField]model.TagMapping {
	m := make(map[model.StandardField]model.TagMapping, len(table))
	for _, tm := range table {
		m[tm.Field] = tm
	}
	return m
}

// Resolve walks field's tag priority list in order, asking the Context
// Engine for each; it returns the first non-empty result.
func Resolve(field model.StandardField, tagFacts edgar.FactsByTag, target facts.Period, cutoff time.Time) (model.XBRLFact, bool) {
	mapping, ok := byField[field]
	if !ok {
		return model.XBRLFact{}, false
	}

	for _, tag := range mapping.Tags {
		candidates, ok := tagFacts[tag]
		if !ok {
			continue
		}
		if fact, found := facts.Select(candidates, target, cutoff); found {
			return fact, true
		}
	}

	return model.XBRLFact{}, false
}

// Mapping returns the TagMapping for field, ok=false if field is unknown to
// the table.
func Mapping(field model.StandardField) (model.TagMapping, bool) {
	m, ok := byField[field]
	return m, ok
}
