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

// Package store is the persistence layer fed by a completed
// model.SnapshotResult: a Postgres sink for durable upsert storage, Parquet
// and CSV sinks for portable table exports, and a markdown
// run summary. Grounded on library/database.go's pool-and-transaction usage
// and data/eod.go's %[1]s-templated upsert idiom, generalized from one
// vendor table to the six fixed snapshot tables.
package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mosaicdata/pit-fundamentals/model"
	"github.com/rs/zerolog/log"
)

// Postgres is the durable sink: one pool, one set of per-table upsert
// statements keyed off model.Table* constants.
type Postgres struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects a pool to databaseURL (a postgres:// URL or
// key=value DSN). Callers should run Migrate against the same database
// first; Migrate takes the pgx5:// form of the URL.
func OpenPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	return &Postgres{pool: pool}, nil
}

// Close releases the pool.
func (p *Postgres) Close() {
	p.pool.Close()
}

// SaveResult upserts every row of result into its table inside one
// transaction per table. A failure partway through a table aborts that
// table's transaction but does not touch the others — each table is
// independent storage, not a single cross-table invariant.
func (p *Postgres) SaveResult(ctx context.Context, result *model.SnapshotResult) error {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	if err := saveRows(ctx, conn, result.CompanyMaster, companyMasterUpsertSQL, companyMasterArgs); err != nil {
		return fmt.Errorf("saving company_master: %w", err)
	}
	if err := saveRows(ctx, conn, result.Filings, filingsUpsertSQL, filingsArgs); err != nil {
		return fmt.Errorf("saving filings: %w", err)
	}
	if err := saveRows(ctx, conn, result.Income, incomeUpsertSQL, incomeArgs); err != nil {
		return fmt.Errorf("saving statements_income: %w", err)
	}
	if err := saveRows(ctx, conn, result.Balance, balanceUpsertSQL, balanceArgs); err != nil {
		return fmt.Errorf("saving statements_balance: %w", err)
	}
	if err := saveRows(ctx, conn, result.CashFlow, cashflowUpsertSQL, cashflowArgs); err != nil {
		return fmt.Errorf("saving statements_cashflow: %w", err)
	}
	if err := saveRows(ctx, conn, result.DerivedMetrics, derivedUpsertSQL, derivedArgs); err != nil {
		return fmt.Errorf("saving derived_metrics: %w", err)
	}
	return nil
}

// saveRows runs one upsert statement per row of rows inside a single
// transaction, mirroring data/eod.go's SaveDB transaction-per-call shape
// but looped across a batch instead of a single record.
func saveRows[T any](ctx context.Context, conn *pgxpool.Conn, rows []T, sql string, argsFor func(T) []any) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := conn.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := tx.Commit(ctx); err != nil {
			log.Error().Err(err).Msg("error committing snapshot row batch to database")
		}
	}()

	for _, row := range rows {
		if _, err := tx.Exec(ctx, sql, argsFor(row)...); err != nil {
			_ = tx.Rollback(ctx)
			return err
		}
	}
	return nil
}

var companyMasterUpsertSQL = fmt.Sprintf(`INSERT INTO %[1]s (
	"ticker", "issuer_id", "name", "last_updated"
) VALUES ($1, $2, $3, $4)
ON CONFLICT ON CONSTRAINT %[1]s_pkey
DO UPDATE SET issuer_id = EXCLUDED.issuer_id, name = EXCLUDED.name, last_updated = EXCLUDED.last_updated;`,
	model.TableCompanyMaster)

func companyMasterArgs(row model.CompanyMasterRow) []any {
	return []any{row.Ticker, row.IssuerId, row.Name, row.LastUpdated}
}

var filingsUpsertSQL = fmt.Sprintf(`INSERT INTO %[1]s (
	"ticker", "accession", "issuer_id", "form_type", "is_amendment", "period_end", "filing_date", "acceptance_datetime"
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT ON CONSTRAINT %[1]s_pkey
DO UPDATE SET form_type = EXCLUDED.form_type, is_amendment = EXCLUDED.is_amendment,
	period_end = EXCLUDED.period_end, filing_date = EXCLUDED.filing_date,
	acceptance_datetime = EXCLUDED.acceptance_datetime;`,
	model.TableFilings)

func filingsArgs(row model.FilingRow) []any {
	return []any{
		row.Ticker, row.Accession, row.IssuerId, row.FormType, row.IsAmendment,
		row.PeriodEnd, row.FilingDate, row.AcceptanceDatetime,
	}
}

var incomeUpsertSQL = fmt.Sprintf(`INSERT INTO %[1]s (
	"ticker", "period_end", "asof_date", "accession",
	"revenue", "cost_of_revenue", "gross_profit", "operating_expenses", "operating_income",
	"interest_expense", "pretax_income", "income_tax_expense", "net_income",
	"eps_basic", "eps_diluted", "shares_outstanding_basic", "shares_outstanding_diluted"
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
ON CONFLICT ON CONSTRAINT %[1]s_pkey
DO UPDATE SET
	asof_date = EXCLUDED.asof_date, accession = EXCLUDED.accession,
	revenue = EXCLUDED.revenue, cost_of_revenue = EXCLUDED.cost_of_revenue,
	gross_profit = EXCLUDED.gross_profit, operating_expenses = EXCLUDED.operating_expenses,
	operating_income = EXCLUDED.operating_income, interest_expense = EXCLUDED.interest_expense,
	pretax_income = EXCLUDED.pretax_income, income_tax_expense = EXCLUDED.income_tax_expense,
	net_income = EXCLUDED.net_income, eps_basic = EXCLUDED.eps_basic, eps_diluted = EXCLUDED.eps_diluted,
	shares_outstanding_basic = EXCLUDED.shares_outstanding_basic,
	shares_outstanding_diluted = EXCLUDED.shares_outstanding_diluted;`,
	model.TableStatementsIncome)

func incomeArgs(row model.IncomeStatementRow) []any {
	return []any{
		row.Ticker, row.PeriodEnd, row.AsOfDate, row.Accession,
		row.Revenue, row.CostOfRevenue, row.GrossProfit, row.OperatingExpenses, row.OperatingIncome,
		row.InterestExpense, row.PretaxIncome, row.IncomeTaxExpense, row.NetIncome,
		row.EPSBasic, row.EPSDiluted, row.SharesBasic, row.SharesDiluted,
	}
}

var balanceUpsertSQL = fmt.Sprintf(`INSERT INTO %[1]s (
	"ticker", "period_end", "asof_date", "accession",
	"cash_and_equivalents", "short_term_investments", "receivables", "inventory", "total_current_assets",
	"property_plant_equipment", "goodwill", "total_assets",
	"accounts_payable", "short_term_debt", "total_current_liabilities", "long_term_debt",
	"total_liabilities", "total_equity"
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
ON CONFLICT ON CONSTRAINT %[1]s_pkey
DO UPDATE SET
	asof_date = EXCLUDED.asof_date, accession = EXCLUDED.accession,
	cash_and_equivalents = EXCLUDED.cash_and_equivalents, short_term_investments = EXCLUDED.short_term_investments,
	receivables = EXCLUDED.receivables, inventory = EXCLUDED.inventory,
	total_current_assets = EXCLUDED.total_current_assets, property_plant_equipment = EXCLUDED.property_plant_equipment,
	goodwill = EXCLUDED.goodwill, total_assets = EXCLUDED.total_assets,
	accounts_payable = EXCLUDED.accounts_payable, short_term_debt = EXCLUDED.short_term_debt,
	total_current_liabilities = EXCLUDED.total_current_liabilities, long_term_debt = EXCLUDED.long_term_debt,
	total_liabilities = EXCLUDED.total_liabilities, total_equity = EXCLUDED.total_equity;`,
	model.TableStatementsBalance)

func balanceArgs(row model.BalanceSheetRow) []any {
	return []any{
		row.Ticker, row.PeriodEnd, row.AsOfDate, row.Accession,
		row.CashAndEquivalents, row.ShortTermInvestments, row.Receivables, row.Inventory, row.TotalCurrentAssets,
		row.PropertyPlantEquipment, row.Goodwill, row.TotalAssets,
		row.AccountsPayable, row.ShortTermDebt, row.TotalCurrentLiabilities, row.LongTermDebt,
		row.TotalLiabilities, row.TotalEquity,
	}
}

var cashflowUpsertSQL = fmt.Sprintf(`INSERT INTO %[1]s (
	"ticker", "period_end", "asof_date", "accession",
	"cash_from_operations", "capital_expenditure", "cash_from_investing", "cash_from_financing",
	"net_change_in_cash", "depreciation_and_amortization"
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT ON CONSTRAINT %[1]s_pkey
DO UPDATE SET
	asof_date = EXCLUDED.asof_date, accession = EXCLUDED.accession,
	cash_from_operations = EXCLUDED.cash_from_operations, capital_expenditure = EXCLUDED.capital_expenditure,
	cash_from_investing = EXCLUDED.cash_from_investing, cash_from_financing = EXCLUDED.cash_from_financing,
	net_change_in_cash = EXCLUDED.net_change_in_cash,
	depreciation_and_amortization = EXCLUDED.depreciation_and_amortization;`,
	model.TableStatementsCashflow)

func cashflowArgs(row model.CashFlowRow) []any {
	return []any{
		row.Ticker, row.PeriodEnd, row.AsOfDate, row.Accession,
		row.CashFromOperations, row.CapitalExpenditure, row.CashFromInvesting, row.CashFromFinancing,
		row.NetChangeInCash, row.DepreciationAndAmortization,
	}
}

var derivedUpsertSQL = fmt.Sprintf(`INSERT INTO %[1]s (
	"ticker", "period_end", "asof_date", "accession",
	"gross_margin", "operating_margin", "net_margin", "free_cash_flow"
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT ON CONSTRAINT %[1]s_pkey
DO UPDATE SET
	asof_date = EXCLUDED.asof_date, accession = EXCLUDED.accession,
	gross_margin = EXCLUDED.gross_margin, operating_margin = EXCLUDED.operating_margin,
	net_margin = EXCLUDED.net_margin, free_cash_flow = EXCLUDED.free_cash_flow;`,
	model.TableDerivedMetrics)

func derivedArgs(row model.DerivedMetricsRow) []any {
	return []any{
		row.Ticker, row.PeriodEnd, row.AsOfDate, row.Accession,
		row.GrossMargin, row.OperatingMargin, row.NetMargin, row.FreeCashFlow,
	}
}
