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
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mosaicdata/pit-fundamentals/model"
)

func TestCSVFloatMarshalsNilAsEmptyCell(t *testing.T) {
	s, err := csvf(nil).MarshalCSV()
	if err != nil {
		t.Fatalf("MarshalCSV: %v", err)
	}
	if s != "" {
		t.Fatalf("expected nil field to marshal to empty string, got %q", s)
	}

	v := 12.5
	s, err = csvf(&v).MarshalCSV()
	if err != nil {
		t.Fatalf("MarshalCSV: %v", err)
	}
	if s != "12.5" {
		t.Fatalf("expected \"12.5\", got %q", s)
	}
}

func TestWriteCSVProducesHeaderAndRow(t *testing.T) {
	dir := t.TempDir()
	revenue := 1000.0
	result := &model.SnapshotResult{
		Income: []model.IncomeStatementRow{{
			BaseRow: model.BaseRow{Ticker: "AAPL", PeriodEnd: time.Date(2016, 9, 24, 0, 0, 0, 0, time.UTC), AsOfDate: time.Date(2016, 10, 26, 0, 0, 0, 0, time.UTC), Accession: "0001"},
			Revenue: &revenue,
		}},
	}

	if err := WriteCSV(result, dir); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, model.TableStatementsIncome+".csv"))
	if err != nil {
		t.Fatalf("reading income csv: %v", err)
	}

	text := string(data)
	if !strings.Contains(text, "revenue") {
		t.Fatalf("expected header to contain revenue column, got: %s", text)
	}
	if !strings.Contains(text, "AAPL") || !strings.Contains(text, "1000") {
		t.Fatalf("expected row for AAPL with revenue 1000, got: %s", text)
	}
	if !strings.Contains(text, ",,") {
		t.Fatalf("expected at least one empty cell for an unresolved field, got: %s", text)
	}
}
