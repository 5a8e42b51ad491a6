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
package edgar

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mosaicdata/pit-fundamentals/model"
	"github.com/tidwall/gjson"
)

const (
	secDateLayout     = "2006-01-02"
	secDateTimeLayout = "2006-01-02T15:04:05"
)

// FetchFilings calls the per-issuer submissions endpoint and returns every
// filing that survives the primary PIT gate: acceptance_datetime's calendar
// day (in loc) is on or before cutoff's calendar day. Filings are returned
// sorted ascending by PeriodEnd, as the Snapshot Builder requires.
func FetchFilings(ctx context.Context, client *Client, issuer model.IssuerId, cutoff time.Time, periodType model.PeriodType, loc *time.Location) ([]model.Filing, error) {
	url := fmt.Sprintf(client.SubmissionsURLFmt, issuer.CIKString())
	body, err := client.Get(ctx, url)
	if err != nil {
		return nil, err
	}

	parsed := gjson.ParseBytes(body)
	recent := parsed.Get("filings.recent")
	if !recent.Exists() {
		return nil, fmt.Errorf("%w: submissions payload missing filings.recent for issuer %s", model.ErrParse, issuer)
	}

	accessions := recent.Get("accessionNumber").Array()
	forms := recent.Get("form").Array()
	filingDates := recent.Get("filingDate").Array()
	reportDates := recent.Get("reportDate").Array()
	acceptanceDates := recent.Get("acceptanceDateTime").Array()

	n := len(accessions)
	if len(forms) != n || len(filingDates) != n || len(reportDates) != n || len(acceptanceDates) != n {
		return nil, fmt.Errorf("%w: submissions payload has mismatched parallel array lengths for issuer %s", model.ErrParse, issuer)
	}

	filings := make([]model.Filing, 0, n)
	for i := 0; i < n; i++ {
		form := forms[i].String()
		if form == "" {
			continue
		}

		periodEnd, err := time.Parse(secDateLayout, reportDates[i].String())
		if err != nil {
			// Some filing types (e.g. NT 10-K) carry no report date; they
			// cannot anchor a fiscal period and are skipped rather than
			// failing the whole issuer.
			continue
		}
		filingDate, err := time.Parse(secDateLayout, filingDates[i].String())
		if err != nil {
			return nil, fmt.Errorf("%w: invalid filingDate %q for issuer %s", model.ErrParse, filingDates[i].String(), issuer)
		}
		acceptance, err := parseAcceptanceDateTime(acceptanceDates[i].String())
		if err != nil {
			return nil, fmt.Errorf("%w: invalid acceptanceDateTime %q for issuer %s", model.ErrParse, acceptanceDates[i].String(), issuer)
		}

		baseForm, isAmendment := classifyForm(form)
		if baseForm == model.FormOther {
			continue
		}

		filing := model.Filing{
			Issuer:             issuer,
			FormType:           baseForm,
			IsAmendment:        isAmendment,
			PeriodEnd:          periodEnd,
			FilingDate:         filingDate,
			AcceptanceDatetime: acceptance,
			Accession:          accessions[i].String(),
		}

		if err := filing.Validate(); err != nil {
			return nil, err
		}

		if !filing.AcceptedBy(cutoff, loc) {
			continue
		}
		if !filing.MatchesPeriodType(periodType) {
			continue
		}

		filings = append(filings, filing)
	}

	sortFilingsByPeriodEnd(filings)

	return filings, nil
}

func parseAcceptanceDateTime(raw string) (time.Time, error) {
	raw = strings.TrimSuffix(raw, "Z")
	raw = strings.Split(raw, ".")[0]
	return time.ParseInLocation(secDateTimeLayout, raw, time.UTC)
}

// classifyForm maps an SEC form type string to the core's closed FormType
// enumeration, reporting whether it is an amendment of that type.
func classifyForm(form string) (model.FormType, bool) {
	upper := strings.ToUpper(strings.TrimSpace(form))
	isAmendment := strings.HasSuffix(upper, "/A")
	base := strings.TrimSuffix(upper, "/A")

	switch base {
	case "10-K", "20-F", "40-F":
		return model.FormAnnual, isAmendment
	case "10-Q":
		return model.FormQuarterly, isAmendment
	default:
		return model.FormOther, isAmendment
	}
}

func sortFilingsByPeriodEnd(filings []model.Filing) {
	for i := 1; i < len(filings); i++ {
		for j := i; j > 0 && filings[j].PeriodEnd.Before(filings[j-1].PeriodEnd); j-- {
			filings[j], filings[j-1] = filings[j-1], filings[j]
		}
	}
}
