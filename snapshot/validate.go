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
	"math"

	"github.com/mosaicdata/pit-fundamentals/model"
	"github.com/rs/zerolog/log"
)

// validateBalanceIdentity checks assets = liabilities + equity within
// identityTolerance for every row that has all three fields, and logs a
// warning (not an error — identity drift is expected noise in regulator
// data, not a pipeline bug) if fewer than 95% of checkable rows pass.
func validateBalanceIdentity(rows []model.BalanceSheetRow) {
	checkable, passing := 0, 0
	for _, row := range rows {
		if row.TotalAssets == nil || row.TotalLiabilities == nil || row.TotalEquity == nil {
			continue
		}
		checkable++
		if *row.TotalAssets == 0 {
			continue
		}
		drift := math.Abs(*row.TotalAssets-(*row.TotalLiabilities+*row.TotalEquity)) / math.Abs(*row.TotalAssets)
		if drift < identityTolerance {
			passing++
		}
	}
	if checkable == 0 {
		return
	}
	if float64(passing)/float64(checkable) < 0.95 {
		log.Warn().Int("Checkable", checkable).Int("Passing", passing).
			Msg("balance sheet identity (assets = liabilities + equity) failed for more than 5% of rows")
	}
}

// validateCashFlowIdentity cross-checks net_change_in_cash against the sum
// of the three cash flow components, logging a warning on systemic drift.
func validateCashFlowIdentity(rows []model.CashFlowRow) {
	checkable, passing := 0, 0
	for _, row := range rows {
		if row.CashFromOperations == nil || row.CashFromInvesting == nil ||
			row.CashFromFinancing == nil || row.NetChangeInCash == nil {
			continue
		}
		checkable++
		sum := *row.CashFromOperations + *row.CashFromInvesting + *row.CashFromFinancing
		drift := math.Abs(sum - *row.NetChangeInCash)
		denom := math.Abs(*row.NetChangeInCash)
		if denom == 0 {
			denom = 1
		}
		if drift/denom < identityTolerance {
			passing++
		}
	}
	if checkable == 0 {
		return
	}
	if float64(passing)/float64(checkable) < 0.95 {
		log.Warn().Int("Checkable", checkable).Int("Passing", passing).
			Msg("cash flow identity (operating + investing + financing = net change) failed for more than 5% of rows")
	}
}
