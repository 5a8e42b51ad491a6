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

import (
	"errors"
	"time"
)

// SnapshotRequest names the universe and the historical vantage point a
// snapshot is built from. Immutable after construction.
type SnapshotRequest struct {
	Tickers        []Ticker
	CutoffDate     time.Time
	PeriodType     PeriodType
	AllowEstimates bool
	AllowLTM       bool
}

// Validate enforces the core's hard constraints: estimates and LTM are
// always disallowed in this core.
func (r *SnapshotRequest) Validate() error {
	if len(r.Tickers) == 0 {
		return errors.New("snapshot request: at least one ticker is required")
	}
	if r.CutoffDate.IsZero() {
		return errors.New("snapshot request: cutoff_date is required")
	}
	if r.PeriodType != PeriodAnnual && r.PeriodType != PeriodQuarterly {
		return errors.New("snapshot request: period_type must be annual or quarterly")
	}
	if r.AllowEstimates {
		return errors.New("snapshot request: allow_estimates is not supported by this core")
	}
	if r.AllowLTM {
		return errors.New("snapshot request: allow_ltm is not supported by this core")
	}
	return nil
}
