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

// TagMapping binds a StandardField to an ordered, append-only list of
// regulator-specific XBRL tags. Order is semantically significant: the first
// tag with a valid fact for the target period wins. Adding a new
// variant tag must append to Tags, never insert, so historical backtests
// never change retroactively.
type TagMapping struct {
	Field StandardField
	Tags  []string
	// IsCredit marks a cost, expense, or liability field that must be stored
	// as a positive magnitude. statement.valueOf takes the absolute value of
	// any IsCredit field's resolved fact, correcting the rare filing that
	// tags it with an inverted sign.
	IsCredit           bool
	ExpectedPeriodKind PeriodKind
}
