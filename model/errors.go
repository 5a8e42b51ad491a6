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

import "errors"

// Sentinel error kinds. Wrap with fmt.Errorf("%w: detail", ErrXxx, ...) at the
// call site and branch with errors.Is.
var (
	// ErrCutoffViolation signals a programmer error: a row's asof_date is
	// after the requested cutoff. Never expected at runtime; aborts the
	// snapshot unconditionally.
	ErrCutoffViolation = errors.New("cutoff violation")

	// ErrAuth signals a missing or rejected user-agent header. Fatal at
	// request start.
	ErrAuth = errors.New("regulator rejected request credentials")

	// ErrNetwork signals a transport error or 5xx response after retries
	// are exhausted. Per-ticker fatal.
	ErrNetwork = errors.New("regulator request failed")

	// ErrNotFound signals a 404 from the regulator. Treated as "no data
	// for this ticker", not a failure.
	ErrNotFound = errors.New("regulator resource not found")

	// ErrParse signals a malformed facts payload. Per-ticker fatal.
	ErrParse = errors.New("could not parse regulator payload")
)

// ValidationWarning is non-fatal: a row's balance sheet or cashflow identity
// is off by more than the configured tolerance, and the row is still emitted.
// The identity checks in package snapshot only log a warning; they do not
// build a ValidationWarning or add an entry to the coverage report.
type ValidationWarning struct {
	Ticker    string
	PeriodEnd string
	Reason    string
}

func (w *ValidationWarning) Error() string {
	return w.Ticker + " " + w.PeriodEnd + ": " + w.Reason
}
