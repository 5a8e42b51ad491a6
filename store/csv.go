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
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gocarina/gocsv"
	"github.com/mosaicdata/pit-fundamentals/model"
)

// csvFloat renders a nullable field as an empty cell rather than "0" or
// "NaN", so a CSV consumer can distinguish missing from zero the same way
// the in-memory *float64 does.
type csvFloat struct {
	val *float64
}

func (f csvFloat) MarshalCSV() (string, error) {
	if f.val == nil {
		return "", nil
	}
	return strconv.FormatFloat(*f.val, 'f', -1, 64), nil
}

func csvf(v *float64) csvFloat { return csvFloat{val: v} }

type csvIncomeRow struct {
	Ticker            string   `csv:"ticker"`
	PeriodEnd         string   `csv:"period_end"`
	AsOfDate          string   `csv:"asof_date"`
	Accession         string   `csv:"accession"`
	Revenue           csvFloat `csv:"revenue"`
	CostOfRevenue     csvFloat `csv:"cost_of_revenue"`
	GrossProfit       csvFloat `csv:"gross_profit"`
	OperatingExpenses csvFloat `csv:"operating_expenses"`
	OperatingIncome   csvFloat `csv:"operating_income"`
	InterestExpense   csvFloat `csv:"interest_expense"`
	PretaxIncome      csvFloat `csv:"pretax_income"`
	IncomeTaxExpense  csvFloat `csv:"income_tax_expense"`
	NetIncome         csvFloat `csv:"net_income"`
	EPSBasic          csvFloat `csv:"eps_basic"`
	EPSDiluted        csvFloat `csv:"eps_diluted"`
	SharesBasic       csvFloat `csv:"shares_outstanding_basic"`
	SharesDiluted     csvFloat `csv:"shares_outstanding_diluted"`
}

func toCSVIncomeRow(row model.IncomeStatementRow) *csvIncomeRow {
	return &csvIncomeRow{
		Ticker: string(row.Ticker), PeriodEnd: row.PeriodEnd.Format("2006-01-02"),
		AsOfDate: row.AsOfDate.Format("2006-01-02"), Accession: row.Accession,
		Revenue: csvf(row.Revenue), CostOfRevenue: csvf(row.CostOfRevenue), GrossProfit: csvf(row.GrossProfit),
		OperatingExpenses: csvf(row.OperatingExpenses), OperatingIncome: csvf(row.OperatingIncome),
		InterestExpense: csvf(row.InterestExpense), PretaxIncome: csvf(row.PretaxIncome),
		IncomeTaxExpense: csvf(row.IncomeTaxExpense), NetIncome: csvf(row.NetIncome),
		EPSBasic: csvf(row.EPSBasic), EPSDiluted: csvf(row.EPSDiluted),
		SharesBasic: csvf(row.SharesBasic), SharesDiluted: csvf(row.SharesDiluted),
	}
}

type csvBalanceRow struct {
	Ticker                  string   `csv:"ticker"`
	PeriodEnd               string   `csv:"period_end"`
	AsOfDate                string   `csv:"asof_date"`
	Accession               string   `csv:"accession"`
	CashAndEquivalents      csvFloat `csv:"cash_and_equivalents"`
	ShortTermInvestments    csvFloat `csv:"short_term_investments"`
	Receivables             csvFloat `csv:"receivables"`
	Inventory               csvFloat `csv:"inventory"`
	TotalCurrentAssets      csvFloat `csv:"total_current_assets"`
	PropertyPlantEquipment  csvFloat `csv:"property_plant_equipment"`
	Goodwill                csvFloat `csv:"goodwill"`
	TotalAssets             csvFloat `csv:"total_assets"`
	AccountsPayable         csvFloat `csv:"accounts_payable"`
	ShortTermDebt           csvFloat `csv:"short_term_debt"`
	TotalCurrentLiabilities csvFloat `csv:"total_current_liabilities"`
	LongTermDebt            csvFloat `csv:"long_term_debt"`
	TotalLiabilities        csvFloat `csv:"total_liabilities"`
	TotalEquity             csvFloat `csv:"total_equity"`
}

func toCSVBalanceRow(row model.BalanceSheetRow) *csvBalanceRow {
	return &csvBalanceRow{
		Ticker: string(row.Ticker), PeriodEnd: row.PeriodEnd.Format("2006-01-02"),
		AsOfDate: row.AsOfDate.Format("2006-01-02"), Accession: row.Accession,
		CashAndEquivalents: csvf(row.CashAndEquivalents), ShortTermInvestments: csvf(row.ShortTermInvestments),
		Receivables: csvf(row.Receivables), Inventory: csvf(row.Inventory),
		TotalCurrentAssets: csvf(row.TotalCurrentAssets), PropertyPlantEquipment: csvf(row.PropertyPlantEquipment),
		Goodwill: csvf(row.Goodwill), TotalAssets: csvf(row.TotalAssets),
		AccountsPayable: csvf(row.AccountsPayable), ShortTermDebt: csvf(row.ShortTermDebt),
		TotalCurrentLiabilities: csvf(row.TotalCurrentLiabilities), LongTermDebt: csvf(row.LongTermDebt),
		TotalLiabilities: csvf(row.TotalLiabilities), TotalEquity: csvf(row.TotalEquity),
	}
}

type csvCashFlowRow struct {
	Ticker                      string   `csv:"ticker"`
	PeriodEnd                   string   `csv:"period_end"`
	AsOfDate                    string   `csv:"asof_date"`
	Accession                   string   `csv:"accession"`
	CashFromOperations          csvFloat `csv:"cash_from_operations"`
	CapitalExpenditure          csvFloat `csv:"capital_expenditure"`
	CashFromInvesting           csvFloat `csv:"cash_from_investing"`
	CashFromFinancing           csvFloat `csv:"cash_from_financing"`
	NetChangeInCash             csvFloat `csv:"net_change_in_cash"`
	DepreciationAndAmortization csvFloat `csv:"depreciation_and_amortization"`
}

func toCSVCashFlowRow(row model.CashFlowRow) *csvCashFlowRow {
	return &csvCashFlowRow{
		Ticker: string(row.Ticker), PeriodEnd: row.PeriodEnd.Format("2006-01-02"),
		AsOfDate: row.AsOfDate.Format("2006-01-02"), Accession: row.Accession,
		CashFromOperations: csvf(row.CashFromOperations), CapitalExpenditure: csvf(row.CapitalExpenditure),
		CashFromInvesting: csvf(row.CashFromInvesting), CashFromFinancing: csvf(row.CashFromFinancing),
		NetChangeInCash: csvf(row.NetChangeInCash), DepreciationAndAmortization: csvf(row.DepreciationAndAmortization),
	}
}

type csvDerivedRow struct {
	Ticker          string   `csv:"ticker"`
	PeriodEnd       string   `csv:"period_end"`
	AsOfDate        string   `csv:"asof_date"`
	Accession       string   `csv:"accession"`
	GrossMargin     csvFloat `csv:"gross_margin"`
	OperatingMargin csvFloat `csv:"operating_margin"`
	NetMargin       csvFloat `csv:"net_margin"`
	FreeCashFlow    csvFloat `csv:"free_cash_flow"`
}

func toCSVDerivedRow(row model.DerivedMetricsRow) *csvDerivedRow {
	return &csvDerivedRow{
		Ticker: string(row.Ticker), PeriodEnd: row.PeriodEnd.Format("2006-01-02"),
		AsOfDate: row.AsOfDate.Format("2006-01-02"), Accession: row.Accession,
		GrossMargin: csvf(row.GrossMargin), OperatingMargin: csvf(row.OperatingMargin),
		NetMargin: csvf(row.NetMargin), FreeCashFlow: csvf(row.FreeCashFlow),
	}
}

// WriteCSV writes one .csv file per statement table under dir, using gocsv's
// marshal direction (the write-direction counterpart of the
// gocsv.UnmarshalBytes usage elsewhere in this module's history, not a
// different library).
func WriteCSV(result *model.SnapshotResult, dir string) error {
	income := make([]*csvIncomeRow, 0, len(result.Income))
	for _, row := range result.Income {
		income = append(income, toCSVIncomeRow(row))
	}
	if err := writeCSVFile(filepath.Join(dir, model.TableStatementsIncome+".csv"), &income); err != nil {
		return fmt.Errorf("writing %s csv: %w", model.TableStatementsIncome, err)
	}

	balance := make([]*csvBalanceRow, 0, len(result.Balance))
	for _, row := range result.Balance {
		balance = append(balance, toCSVBalanceRow(row))
	}
	if err := writeCSVFile(filepath.Join(dir, model.TableStatementsBalance+".csv"), &balance); err != nil {
		return fmt.Errorf("writing %s csv: %w", model.TableStatementsBalance, err)
	}

	cashflow := make([]*csvCashFlowRow, 0, len(result.CashFlow))
	for _, row := range result.CashFlow {
		cashflow = append(cashflow, toCSVCashFlowRow(row))
	}
	if err := writeCSVFile(filepath.Join(dir, model.TableStatementsCashflow+".csv"), &cashflow); err != nil {
		return fmt.Errorf("writing %s csv: %w", model.TableStatementsCashflow, err)
	}

	derived := make([]*csvDerivedRow, 0, len(result.DerivedMetrics))
	for _, row := range result.DerivedMetrics {
		derived = append(derived, toCSVDerivedRow(row))
	}
	if err := writeCSVFile(filepath.Join(dir, model.TableDerivedMetrics+".csv"), &derived); err != nil {
		return fmt.Errorf("writing %s csv: %w", model.TableDerivedMetrics, err)
	}

	return nil
}

func writeCSVFile(fn string, rows interface{}) error {
	f, err := os.Create(fn)
	if err != nil {
		return err
	}
	defer f.Close()

	return gocsv.MarshalFile(rows, f)
}
