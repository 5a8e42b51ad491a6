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

// StandardField is the closed enumeration of canonical line items this core
// knows how to assemble. New fields require a code change, not configuration
// — the set is closed by contract.
type StandardField string

const (
	// Income statement
	FieldRevenue           StandardField = "revenue"
	FieldCostOfRevenue     StandardField = "cost_of_revenue"
	FieldGrossProfit       StandardField = "gross_profit"
	FieldOperatingExpenses StandardField = "operating_expenses"
	FieldOperatingIncome   StandardField = "operating_income"
	FieldInterestExpense   StandardField = "interest_expense"
	FieldPretaxIncome      StandardField = "pretax_income"
	FieldIncomeTaxExpense  StandardField = "income_tax_expense"
	FieldNetIncome         StandardField = "net_income"
	FieldEPSBasic          StandardField = "eps_basic"
	FieldEPSDiluted        StandardField = "eps_diluted"
	FieldSharesBasic       StandardField = "shares_outstanding_basic"
	FieldSharesDiluted     StandardField = "shares_outstanding_diluted"

	// Balance sheet
	FieldCashAndEquivalents StandardField = "cash_and_equivalents"
	FieldShortTermInvest    StandardField = "short_term_investments"
	FieldReceivables        StandardField = "receivables"
	FieldInventory          StandardField = "inventory"
	FieldTotalCurrentAssets StandardField = "total_current_assets"
	FieldPPE                StandardField = "property_plant_equipment"
	FieldGoodwill           StandardField = "goodwill"
	FieldTotalAssets        StandardField = "total_assets"
	FieldAccountsPayable    StandardField = "accounts_payable"
	FieldShortTermDebt      StandardField = "short_term_debt"
	FieldTotalCurrentLiab   StandardField = "total_current_liabilities"
	FieldLongTermDebt       StandardField = "long_term_debt"
	FieldTotalLiabilities   StandardField = "total_liabilities"
	FieldTotalEquity        StandardField = "total_equity"

	// Cash flow statement
	FieldCashFromOperations StandardField = "cash_from_operations"
	FieldCapitalExpenditure StandardField = "capital_expenditure"
	FieldCashFromInvesting  StandardField = "cash_from_investing"
	FieldCashFromFinancing  StandardField = "cash_from_financing"
	FieldNetChangeInCash    StandardField = "net_change_in_cash"
	FieldDepreciation       StandardField = "depreciation_and_amortization"
)

// IncomeStatementFields, BalanceSheetFields and CashFlowFields enumerate the
// closed per-table schema the Statement Assembler projects onto.
var (
	IncomeStatementFields = []StandardField{
		FieldRevenue, FieldCostOfRevenue, FieldGrossProfit, FieldOperatingExpenses,
		FieldOperatingIncome, FieldInterestExpense, FieldPretaxIncome,
		FieldIncomeTaxExpense, FieldNetIncome, FieldEPSBasic, FieldEPSDiluted,
		FieldSharesBasic, FieldSharesDiluted,
	}

	BalanceSheetFields = []StandardField{
		FieldCashAndEquivalents, FieldShortTermInvest, FieldReceivables, FieldInventory,
		FieldTotalCurrentAssets, FieldPPE, FieldGoodwill, FieldTotalAssets,
		FieldAccountsPayable, FieldShortTermDebt, FieldTotalCurrentLiab,
		FieldLongTermDebt, FieldTotalLiabilities, FieldTotalEquity,
	}

	CashFlowFields = []StandardField{
		FieldCashFromOperations, FieldCapitalExpenditure, FieldCashFromInvesting,
		FieldCashFromFinancing, FieldNetChangeInCash, FieldDepreciation,
	}
)

// expectedPeriodKindFor reports whether a field is normally reported as an
// instant (balance-sheet items) or a duration (income/cashflow items).
func expectedPeriodKindFor(f StandardField) PeriodKind {
	for _, bf := range BalanceSheetFields {
		if bf == f {
			return PeriodInstant
		}
	}
	return PeriodDuration
}
