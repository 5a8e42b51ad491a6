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
package snapshot

import (
	"sort"
	"sync"
	"time"

	"github.com/mosaicdata/pit-fundamentals/model"
)

// accumulator is the mutex-guarded merge point every worker goroutine writes
// into. Rows are keyed by (ticker, period_end); on a
// collision the row with the later AsOfDate wins. A plain map+mutex was
// chosen over a lock-free map (e.g. haxmap) because the merge is a
// compare-and-swap on AsOfDate, not a blind overwrite — see DESIGN.md.
type accumulator struct {
	mu sync.Mutex

	companyMaster map[model.Ticker]model.CompanyMasterRow
	filings       map[filingKey]model.FilingRow
	income        map[model.RowKey]model.IncomeStatementRow
	balance       map[model.RowKey]model.BalanceSheetRow
	cashflow      map[model.RowKey]model.CashFlowRow
	derived       map[model.RowKey]model.DerivedMetricsRow

	requested map[model.Ticker]bool
	resolved  map[model.Ticker]bool
	issues    []model.TickerIssue
}

type filingKey struct {
	Ticker    model.Ticker
	Accession string
}

func newAccumulator() *accumulator {
	return &accumulator{
		companyMaster: make(map[model.Ticker]model.CompanyMasterRow),
		filings:       make(map[filingKey]model.FilingRow),
		income:        make(map[model.RowKey]model.IncomeStatementRow),
		balance:       make(map[model.RowKey]model.BalanceSheetRow),
		cashflow:      make(map[model.RowKey]model.CashFlowRow),
		derived:       make(map[model.RowKey]model.DerivedMetricsRow),
		requested:     make(map[model.Ticker]bool),
		resolved:      make(map[model.Ticker]bool),
	}
}

func (a *accumulator) recordRequested(t model.Ticker) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.requested[t] = true
}

func (a *accumulator) recordResolved(t model.Ticker) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.resolved[t] = true
}

func (a *accumulator) recordIssue(t model.Ticker, kind, message string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.issues = append(a.issues, model.TickerIssue{Ticker: t, Kind: kind, Message: message})
}

func (a *accumulator) mergeCompanyMaster(row model.CompanyMasterRow) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.companyMaster[row.Ticker] = row
}

func (a *accumulator) mergeFiling(row model.FilingRow) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.filings[filingKey{Ticker: row.Ticker, Accession: row.Accession}] = row
}

func (a *accumulator) mergeIncome(row model.IncomeStatementRow) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if existing, ok := a.income[row.Key()]; !ok || row.AsOfDate.After(existing.AsOfDate) {
		a.income[row.Key()] = row
	}
}

func (a *accumulator) mergeBalance(row model.BalanceSheetRow) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if existing, ok := a.balance[row.Key()]; !ok || row.AsOfDate.After(existing.AsOfDate) {
		a.balance[row.Key()] = row
	}
}

func (a *accumulator) mergeCashFlow(row model.CashFlowRow) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if existing, ok := a.cashflow[row.Key()]; !ok || row.AsOfDate.After(existing.AsOfDate) {
		a.cashflow[row.Key()] = row
	}
}

func (a *accumulator) mergeDerived(row model.DerivedMetricsRow) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if existing, ok := a.derived[row.Key()]; !ok || row.AsOfDate.After(existing.AsOfDate) {
		a.derived[row.Key()] = row
	}
}

// toResult drains the accumulator into the immutable SnapshotResult,
// building the coverage report so every requested ticker appears in exactly
// one of Resolved or MissingTickers.
func (a *accumulator) toResult(cutoff time.Time) *model.SnapshotResult {
	a.mu.Lock()
	defer a.mu.Unlock()

	result := &model.SnapshotResult{CutoffDate: cutoff}

	for _, row := range a.companyMaster {
		result.CompanyMaster = append(result.CompanyMaster, row)
	}
	for _, row := range a.filings {
		result.Filings = append(result.Filings, row)
	}
	for _, row := range a.income {
		result.Income = append(result.Income, row)
	}
	for _, row := range a.balance {
		result.Balance = append(result.Balance, row)
	}
	for _, row := range a.cashflow {
		result.CashFlow = append(result.CashFlow, row)
	}
	for _, row := range a.derived {
		result.DerivedMetrics = append(result.DerivedMetrics, row)
	}

	// Map iteration order is randomized per run; every output table is
	// sorted to a stable key so two runs over the same request and cache
	// state produce byte-identical tables.
	sort.Slice(result.CompanyMaster, func(i, j int) bool {
		return result.CompanyMaster[i].Ticker < result.CompanyMaster[j].Ticker
	})
	sort.Slice(result.Filings, func(i, j int) bool {
		if result.Filings[i].Ticker != result.Filings[j].Ticker {
			return result.Filings[i].Ticker < result.Filings[j].Ticker
		}
		return result.Filings[i].Accession < result.Filings[j].Accession
	})
	sortByTickerAndPeriodEnd(result.Income, func(r model.IncomeStatementRow) model.BaseRow { return r.BaseRow })
	sortByTickerAndPeriodEnd(result.Balance, func(r model.BalanceSheetRow) model.BaseRow { return r.BaseRow })
	sortByTickerAndPeriodEnd(result.CashFlow, func(r model.CashFlowRow) model.BaseRow { return r.BaseRow })
	sortByTickerAndPeriodEnd(result.DerivedMetrics, func(r model.DerivedMetricsRow) model.BaseRow { return r.BaseRow })

	issues := append([]model.TickerIssue(nil), a.issues...)
	sort.Slice(issues, func(i, j int) bool {
		if issues[i].Ticker != issues[j].Ticker {
			return issues[i].Ticker < issues[j].Ticker
		}
		return issues[i].Kind < issues[j].Kind
	})

	coverage := model.CoverageReport{PerTickerIssues: issues}
	for t := range a.requested {
		coverage.Requested = append(coverage.Requested, t)
		if a.resolved[t] {
			coverage.Resolved = append(coverage.Resolved, t)
		} else {
			coverage.MissingTickers = append(coverage.MissingTickers, t)
		}
	}
	sort.Slice(coverage.Requested, func(i, j int) bool { return coverage.Requested[i] < coverage.Requested[j] })
	sort.Slice(coverage.Resolved, func(i, j int) bool { return coverage.Resolved[i] < coverage.Resolved[j] })
	sort.Slice(coverage.MissingTickers, func(i, j int) bool { return coverage.MissingTickers[i] < coverage.MissingTickers[j] })
	result.Coverage = coverage

	return result
}

// sortByTickerAndPeriodEnd sorts any statement row slice by (ticker,
// period_end), the same key every row table is keyed by.
func sortByTickerAndPeriodEnd[T any](rows []T, base func(T) model.BaseRow) {
	sort.Slice(rows, func(i, j int) bool {
		bi, bj := base(rows[i]), base(rows[j])
		if bi.Ticker != bj.Ticker {
			return bi.Ticker < bj.Ticker
		}
		return bi.PeriodEnd.Before(bj.PeriodEnd)
	})
}
