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
	"path/filepath"

	"github.com/mosaicdata/pit-fundamentals/model"
	"github.com/rs/zerolog/log"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"
)

// parquetIncomeRow mirrors model.IncomeStatementRow with its own parquet
// struct tags, since model.IncomeStatementRow's *float64 fields carry only
// json/db tags. Nullable numeric cells use parquet-go's OPTIONAL repetition,
// grounded on data/asset.go's struct-tag convention.
type parquetIncomeRow struct {
	Ticker            string   `parquet:"name=ticker, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	PeriodEnd         int64    `parquet:"name=period_end, type=INT64"`
	AsOfDate          int64    `parquet:"name=asof_date, type=INT64"`
	Accession         string   `parquet:"name=accession, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	Revenue           *float64 `parquet:"name=revenue, type=DOUBLE, repetitiontype=OPTIONAL"`
	CostOfRevenue     *float64 `parquet:"name=cost_of_revenue, type=DOUBLE, repetitiontype=OPTIONAL"`
	GrossProfit       *float64 `parquet:"name=gross_profit, type=DOUBLE, repetitiontype=OPTIONAL"`
	OperatingExpenses *float64 `parquet:"name=operating_expenses, type=DOUBLE, repetitiontype=OPTIONAL"`
	OperatingIncome   *float64 `parquet:"name=operating_income, type=DOUBLE, repetitiontype=OPTIONAL"`
	InterestExpense   *float64 `parquet:"name=interest_expense, type=DOUBLE, repetitiontype=OPTIONAL"`
	PretaxIncome      *float64 `parquet:"name=pretax_income, type=DOUBLE, repetitiontype=OPTIONAL"`
	IncomeTaxExpense  *float64 `parquet:"name=income_tax_expense, type=DOUBLE, repetitiontype=OPTIONAL"`
	NetIncome         *float64 `parquet:"name=net_income, type=DOUBLE, repetitiontype=OPTIONAL"`
	EPSBasic          *float64 `parquet:"name=eps_basic, type=DOUBLE, repetitiontype=OPTIONAL"`
	EPSDiluted        *float64 `parquet:"name=eps_diluted, type=DOUBLE, repetitiontype=OPTIONAL"`
	SharesBasic       *float64 `parquet:"name=shares_outstanding_basic, type=DOUBLE, repetitiontype=OPTIONAL"`
	SharesDiluted     *float64 `parquet:"name=shares_outstanding_diluted, type=DOUBLE, repetitiontype=OPTIONAL"`
}

func toParquetIncomeRow(row model.IncomeStatementRow) *parquetIncomeRow {
	return &parquetIncomeRow{
		Ticker: string(row.Ticker), PeriodEnd: row.PeriodEnd.Unix(), AsOfDate: row.AsOfDate.Unix(), Accession: row.Accession,
		Revenue: row.Revenue, CostOfRevenue: row.CostOfRevenue, GrossProfit: row.GrossProfit,
		OperatingExpenses: row.OperatingExpenses, OperatingIncome: row.OperatingIncome, InterestExpense: row.InterestExpense,
		PretaxIncome: row.PretaxIncome, IncomeTaxExpense: row.IncomeTaxExpense, NetIncome: row.NetIncome,
		EPSBasic: row.EPSBasic, EPSDiluted: row.EPSDiluted, SharesBasic: row.SharesBasic, SharesDiluted: row.SharesDiluted,
	}
}

type parquetBalanceRow struct {
	Ticker                  string   `parquet:"name=ticker, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	PeriodEnd               int64    `parquet:"name=period_end, type=INT64"`
	AsOfDate                int64    `parquet:"name=asof_date, type=INT64"`
	Accession               string   `parquet:"name=accession, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	CashAndEquivalents      *float64 `parquet:"name=cash_and_equivalents, type=DOUBLE, repetitiontype=OPTIONAL"`
	ShortTermInvestments    *float64 `parquet:"name=short_term_investments, type=DOUBLE, repetitiontype=OPTIONAL"`
	Receivables             *float64 `parquet:"name=receivables, type=DOUBLE, repetitiontype=OPTIONAL"`
	Inventory               *float64 `parquet:"name=inventory, type=DOUBLE, repetitiontype=OPTIONAL"`
	TotalCurrentAssets      *float64 `parquet:"name=total_current_assets, type=DOUBLE, repetitiontype=OPTIONAL"`
	PropertyPlantEquipment  *float64 `parquet:"name=property_plant_equipment, type=DOUBLE, repetitiontype=OPTIONAL"`
	Goodwill                *float64 `parquet:"name=goodwill, type=DOUBLE, repetitiontype=OPTIONAL"`
	TotalAssets             *float64 `parquet:"name=total_assets, type=DOUBLE, repetitiontype=OPTIONAL"`
	AccountsPayable         *float64 `parquet:"name=accounts_payable, type=DOUBLE, repetitiontype=OPTIONAL"`
	ShortTermDebt           *float64 `parquet:"name=short_term_debt, type=DOUBLE, repetitiontype=OPTIONAL"`
	TotalCurrentLiabilities *float64 `parquet:"name=total_current_liabilities, type=DOUBLE, repetitiontype=OPTIONAL"`
	LongTermDebt            *float64 `parquet:"name=long_term_debt, type=DOUBLE, repetitiontype=OPTIONAL"`
	TotalLiabilities        *float64 `parquet:"name=total_liabilities, type=DOUBLE, repetitiontype=OPTIONAL"`
	TotalEquity             *float64 `parquet:"name=total_equity, type=DOUBLE, repetitiontype=OPTIONAL"`
}

func toParquetBalanceRow(row model.BalanceSheetRow) *parquetBalanceRow {
	return &parquetBalanceRow{
		Ticker: string(row.Ticker), PeriodEnd: row.PeriodEnd.Unix(), AsOfDate: row.AsOfDate.Unix(), Accession: row.Accession,
		CashAndEquivalents: row.CashAndEquivalents, ShortTermInvestments: row.ShortTermInvestments,
		Receivables: row.Receivables, Inventory: row.Inventory, TotalCurrentAssets: row.TotalCurrentAssets,
		PropertyPlantEquipment: row.PropertyPlantEquipment, Goodwill: row.Goodwill, TotalAssets: row.TotalAssets,
		AccountsPayable: row.AccountsPayable, ShortTermDebt: row.ShortTermDebt,
		TotalCurrentLiabilities: row.TotalCurrentLiabilities, LongTermDebt: row.LongTermDebt,
		TotalLiabilities: row.TotalLiabilities, TotalEquity: row.TotalEquity,
	}
}

type parquetCashFlowRow struct {
	Ticker                      string   `parquet:"name=ticker, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	PeriodEnd                   int64    `parquet:"name=period_end, type=INT64"`
	AsOfDate                    int64    `parquet:"name=asof_date, type=INT64"`
	Accession                   string   `parquet:"name=accession, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	CashFromOperations          *float64 `parquet:"name=cash_from_operations, type=DOUBLE, repetitiontype=OPTIONAL"`
	CapitalExpenditure          *float64 `parquet:"name=capital_expenditure, type=DOUBLE, repetitiontype=OPTIONAL"`
	CashFromInvesting           *float64 `parquet:"name=cash_from_investing, type=DOUBLE, repetitiontype=OPTIONAL"`
	CashFromFinancing           *float64 `parquet:"name=cash_from_financing, type=DOUBLE, repetitiontype=OPTIONAL"`
	NetChangeInCash             *float64 `parquet:"name=net_change_in_cash, type=DOUBLE, repetitiontype=OPTIONAL"`
	DepreciationAndAmortization *float64 `parquet:"name=depreciation_and_amortization, type=DOUBLE, repetitiontype=OPTIONAL"`
}

func toParquetCashFlowRow(row model.CashFlowRow) *parquetCashFlowRow {
	return &parquetCashFlowRow{
		Ticker: string(row.Ticker), PeriodEnd: row.PeriodEnd.Unix(), AsOfDate: row.AsOfDate.Unix(), Accession: row.Accession,
		CashFromOperations: row.CashFromOperations, CapitalExpenditure: row.CapitalExpenditure,
		CashFromInvesting: row.CashFromInvesting, CashFromFinancing: row.CashFromFinancing,
		NetChangeInCash: row.NetChangeInCash, DepreciationAndAmortization: row.DepreciationAndAmortization,
	}
}

type parquetDerivedRow struct {
	Ticker          string   `parquet:"name=ticker, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	PeriodEnd       int64    `parquet:"name=period_end, type=INT64"`
	AsOfDate        int64    `parquet:"name=asof_date, type=INT64"`
	Accession       string   `parquet:"name=accession, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	GrossMargin     *float64 `parquet:"name=gross_margin, type=DOUBLE, repetitiontype=OPTIONAL"`
	OperatingMargin *float64 `parquet:"name=operating_margin, type=DOUBLE, repetitiontype=OPTIONAL"`
	NetMargin       *float64 `parquet:"name=net_margin, type=DOUBLE, repetitiontype=OPTIONAL"`
	FreeCashFlow    *float64 `parquet:"name=free_cash_flow, type=DOUBLE, repetitiontype=OPTIONAL"`
}

func toParquetDerivedRow(row model.DerivedMetricsRow) *parquetDerivedRow {
	return &parquetDerivedRow{
		Ticker: string(row.Ticker), PeriodEnd: row.PeriodEnd.Unix(), AsOfDate: row.AsOfDate.Unix(), Accession: row.Accession,
		GrossMargin: row.GrossMargin, OperatingMargin: row.OperatingMargin,
		NetMargin: row.NetMargin, FreeCashFlow: row.FreeCashFlow,
	}
}

// WriteParquet writes one table to its own .parquet file under dir, one file
// per statement table, named after the table. Grounded on
// provider/zacks.go's zacksSaveToParquet: local file writer, 4 parallel writers,
// ZSTD compression, WriteStop to flush the footer.
func WriteParquet(result *model.SnapshotResult, dir string) error {
	incomeRows := make([]interface{}, 0, len(result.Income))
	for _, row := range result.Income {
		incomeRows = append(incomeRows, toParquetIncomeRow(row))
	}
	if err := writeParquetFile(filepath.Join(dir, model.TableStatementsIncome+".parquet"), new(parquetIncomeRow), incomeRows); err != nil {
		return fmt.Errorf("writing %s parquet: %w", model.TableStatementsIncome, err)
	}

	balanceRows := make([]interface{}, 0, len(result.Balance))
	for _, row := range result.Balance {
		balanceRows = append(balanceRows, toParquetBalanceRow(row))
	}
	if err := writeParquetFile(filepath.Join(dir, model.TableStatementsBalance+".parquet"), new(parquetBalanceRow), balanceRows); err != nil {
		return fmt.Errorf("writing %s parquet: %w", model.TableStatementsBalance, err)
	}

	cashflowRows := make([]interface{}, 0, len(result.CashFlow))
	for _, row := range result.CashFlow {
		cashflowRows = append(cashflowRows, toParquetCashFlowRow(row))
	}
	if err := writeParquetFile(filepath.Join(dir, model.TableStatementsCashflow+".parquet"), new(parquetCashFlowRow), cashflowRows); err != nil {
		return fmt.Errorf("writing %s parquet: %w", model.TableStatementsCashflow, err)
	}

	derivedRows := make([]interface{}, 0, len(result.DerivedMetrics))
	for _, row := range result.DerivedMetrics {
		derivedRows = append(derivedRows, toParquetDerivedRow(row))
	}
	if err := writeParquetFile(filepath.Join(dir, model.TableDerivedMetrics+".parquet"), new(parquetDerivedRow), derivedRows); err != nil {
		return fmt.Errorf("writing %s parquet: %w", model.TableDerivedMetrics, err)
	}

	return nil
}

func writeParquetFile(fn string, schema interface{}, rows []interface{}) error {
	fh, err := local.NewLocalFileWriter(fn)
	if err != nil {
		return err
	}
	defer fh.Close()

	pw, err := writer.NewParquetWriter(fh, schema, 4)
	if err != nil {
		return err
	}
	pw.RowGroupSize = 128 * 1024 * 1024
	pw.PageSize = 8 * 1024
	pw.CompressionType = parquet.CompressionCodec_ZSTD

	for _, row := range rows {
		if err := pw.Write(row); err != nil {
			log.Error().Err(err).Str("File", fn).Msg("parquet write failed for row")
		}
	}

	if err := pw.WriteStop(); err != nil {
		return err
	}

	log.Info().Str("File", fn).Int("NumRows", len(rows)).Msg("parquet write finished")
	return nil
}
