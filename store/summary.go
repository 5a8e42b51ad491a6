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
	"strings"
	"time"

	"github.com/mosaicdata/pit-fundamentals/model"
	"github.com/xeonx/timeago"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Summary renders a markdown report of one run, grounded on
// library/summary.go's builder-pattern report: a strings.Builder assembled
// section by section, thousands-grouped counts via message.Printer, and
// "time since" phrasing via xeonx/timeago.
func Summary(result *model.SnapshotResult, generatedAt time.Time) string {
	p := message.NewPrinter(language.English)
	builder := strings.Builder{}

	builder.WriteString("# PIT Fundamentals Snapshot\n\n")
	builder.WriteString(fmt.Sprintf("Cutoff: %s\n\n", result.CutoffDate.Format("2006-01-02")))
	builder.WriteString(fmt.Sprintf("Generated: %s (%s)\n\n", generatedAt.Format("2006-01-02 15:04:05 MST"), timeago.English.Format(generatedAt)))

	builder.WriteString("## Coverage\n\n")
	builder.WriteString(p.Sprintf("  * Requested: %d\n", len(result.Coverage.Requested)))
	builder.WriteString(p.Sprintf("  * Resolved: %d\n", len(result.Coverage.Resolved)))
	builder.WriteString(p.Sprintf("  * Missing: %d\n\n", len(result.Coverage.MissingTickers)))

	if len(result.Coverage.MissingTickers) > 0 {
		builder.WriteString("### Missing tickers\n\n")
		for _, t := range result.Coverage.MissingTickers {
			builder.WriteString(fmt.Sprintf("  * %s\n", t))
		}
		builder.WriteString("\n")
	}

	if len(result.Coverage.PerTickerIssues) > 0 {
		builder.WriteString("### Issues\n\n")
		for _, issue := range result.Coverage.PerTickerIssues {
			builder.WriteString(fmt.Sprintf("  * %s [%s]: %s\n", issue.Ticker, issue.Kind, issue.Message))
		}
		builder.WriteString("\n")
	}

	builder.WriteString("## Rows\n\n")
	builder.WriteString(p.Sprintf("  * Filings: %d\n", len(result.Filings)))
	builder.WriteString(p.Sprintf("  * Income statements: %d\n", len(result.Income)))
	builder.WriteString(p.Sprintf("  * Balance sheets: %d\n", len(result.Balance)))
	builder.WriteString(p.Sprintf("  * Cash flow statements: %d\n", len(result.CashFlow)))
	builder.WriteString(p.Sprintf("  * Derived metrics: %d\n", len(result.DerivedMetrics)))

	return builder.String()
}
