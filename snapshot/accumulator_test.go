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
	"testing"
	"time"

	"github.com/mosaicdata/pit-fundamentals/model"
)

func TestToResultOrdersTablesDeterministically(t *testing.T) {
	tickers := []model.Ticker{"ZZZ", "AAA", "MMM"}
	periodEnd := time.Date(2016, 12, 31, 0, 0, 0, 0, time.UTC)

	for attempt := 0; attempt < 5; attempt++ {
		acc := newAccumulator()
		for _, tk := range tickers {
			acc.recordRequested(tk)
			acc.mergeCompanyMaster(model.CompanyMasterRow{Ticker: tk})
			acc.mergeIncome(model.IncomeStatementRow{
				BaseRow: model.BaseRow{Ticker: tk, PeriodEnd: periodEnd, AsOfDate: periodEnd},
			})
			acc.recordResolved(tk)
		}

		result := acc.toResult(time.Now())

		wantOrder := []model.Ticker{"AAA", "MMM", "ZZZ"}
		for i, row := range result.CompanyMaster {
			if row.Ticker != wantOrder[i] {
				t.Fatalf("attempt %d: company master out of order, got %+v, want %v", attempt, result.CompanyMaster, wantOrder)
			}
		}
		for i, row := range result.Income {
			if row.Ticker != wantOrder[i] {
				t.Fatalf("attempt %d: income out of order, got %+v, want %v", attempt, result.Income, wantOrder)
			}
		}
		for i, tk := range result.Coverage.Resolved {
			if tk != wantOrder[i] {
				t.Fatalf("attempt %d: coverage.Resolved out of order, got %+v, want %v", attempt, result.Coverage.Resolved, wantOrder)
			}
		}
	}
}
