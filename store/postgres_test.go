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
	"strings"
	"testing"
	"time"

	"github.com/mosaicdata/pit-fundamentals/model"
)

// Upsert SQL is built once as a package-level var; these tests only check
// the shape survived fmt.Sprintf's %[1]s substitution — an actual write
// round trip needs a live Postgres instance and is out of scope here.

func TestUpsertSQLReferencesTheirOwnTable(t *testing.T) {
	cases := map[string]string{
		companyMasterUpsertSQL: model.TableCompanyMaster,
		filingsUpsertSQL:       model.TableFilings,
		incomeUpsertSQL:        model.TableStatementsIncome,
		balanceUpsertSQL:       model.TableStatementsBalance,
		cashflowUpsertSQL:      model.TableStatementsCashflow,
		derivedUpsertSQL:       model.TableDerivedMetrics,
	}
	for sql, table := range cases {
		if !strings.Contains(sql, "INSERT INTO "+table) {
			t.Errorf("expected %s upsert to target its own table, got: %s", table, sql)
		}
		if !strings.Contains(sql, table+"_pkey") {
			t.Errorf("expected %s upsert to target its own pkey constraint, got: %s", table, sql)
		}
	}
}

func TestIncomeArgsOrderMatchesColumnList(t *testing.T) {
	revenue := 1000.0
	row := model.IncomeStatementRow{
		BaseRow: model.BaseRow{
			Ticker: "AAPL", PeriodEnd: time.Date(2016, 9, 24, 0, 0, 0, 0, time.UTC),
			AsOfDate: time.Date(2016, 10, 26, 0, 0, 0, 0, time.UTC), Accession: "0001",
		},
		Revenue: &revenue,
	}

	args := incomeArgs(row)
	if len(args) != 17 {
		t.Fatalf("expected 17 positional args matching the 17-column list, got %d", len(args))
	}
	if args[0] != model.Ticker("AAPL") || args[3] != "0001" {
		t.Fatalf("unexpected leading args: %+v", args[:4])
	}
	if args[4] != &revenue {
		t.Fatalf("expected revenue pointer to be args[4], got %v", args[4])
	}
}

func TestDerivedArgsOrderMatchesColumnList(t *testing.T) {
	margin := 0.4
	row := model.DerivedMetricsRow{
		BaseRow:     model.BaseRow{Ticker: "AAPL", PeriodEnd: time.Date(2016, 9, 24, 0, 0, 0, 0, time.UTC)},
		GrossMargin: &margin,
	}
	args := derivedArgs(row)
	if len(args) != 8 {
		t.Fatalf("expected 8 positional args, got %d", len(args))
	}
	if args[4] != &margin {
		t.Fatalf("expected gross_margin pointer to be args[4], got %v", args[4])
	}
}
