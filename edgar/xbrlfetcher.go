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
	"time"

	"github.com/mosaicdata/pit-fundamentals/model"
	"github.com/tidwall/gjson"
)

// shareUnits are treated as native-unit counts, never converted.
var shareUnits = map[string]bool{
	"shares": true,
}

// FactsByTag is the XBRL Fetcher's output: every fact grouped by its source
// tag, ready for the Context Engine and Tag Mapper to consult.
type FactsByTag map[string][]model.XBRLFact

// FetchCompanyFacts calls the company-facts endpoint for issuer and returns
// every fact keyed by tag, across both the us-gaap and dei taxonomies. The
// companyfacts endpoint exposes only entity-level (consolidated) values, so
// every returned fact carries empty Dimensions.
func FetchCompanyFacts(ctx context.Context, client *Client, issuer model.IssuerId) (FactsByTag, error) {
	url := fmt.Sprintf(client.CompanyFactsURLFmt, issuer.CIKString())
	body, err := client.Get(ctx, url)
	if err != nil {
		return nil, err
	}

	parsed := gjson.ParseBytes(body)
	facts := parsed.Get("facts")
	if !facts.Exists() {
		return nil, fmt.Errorf("%w: companyfacts payload missing facts for issuer %s", model.ErrParse, issuer)
	}

	result := make(FactsByTag)

	var parseErr error
	facts.ForEach(func(_, taxonomy gjson.Result) bool {
		taxonomy.ForEach(func(tagKey, tagBody gjson.Result) bool {
			tag := tagKey.String()
			units := tagBody.Get("units")
			units.ForEach(func(unitKey, values gjson.Result) bool {
				unit := unitKey.String()
				values.ForEach(func(_, v gjson.Result) bool {
					fact, ok, err := parseFact(tag, unit, v)
					if err != nil {
						parseErr = err
						return false
					}
					if ok {
						result[tag] = append(result[tag], fact)
					}
					return true
				})
				return parseErr == nil
			})
			return parseErr == nil
		})
		return parseErr == nil
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return result, nil
}

func parseFact(tag, unit string, v gjson.Result) (model.XBRLFact, bool, error) {
	endRaw := v.Get("end").String()
	if endRaw == "" {
		return model.XBRLFact{}, false, nil
	}
	periodEnd, err := time.Parse(secDateLayout, endRaw)
	if err != nil {
		return model.XBRLFact{}, false, fmt.Errorf("%w: invalid fact end date %q for tag %s", model.ErrParse, endRaw, tag)
	}

	filedRaw := v.Get("filed").String()
	filed, err := time.Parse(secDateLayout, filedRaw)
	if err != nil {
		return model.XBRLFact{}, false, fmt.Errorf("%w: invalid fact filed date %q for tag %s", model.ErrParse, filedRaw, tag)
	}

	accession := v.Get("accn").String()
	if accession == "" {
		return model.XBRLFact{}, false, nil
	}

	var periodStart time.Time
	periodKind := model.PeriodInstant
	if startRaw := v.Get("start").String(); startRaw != "" {
		periodStart, err = time.Parse(secDateLayout, startRaw)
		if err != nil {
			return model.XBRLFact{}, false, fmt.Errorf("%w: invalid fact start date %q for tag %s", model.ErrParse, startRaw, tag)
		}
		periodKind = model.PeriodDuration
	}

	value := v.Get("val").Float()
	if shareUnits[unit] {
		// kept in native units, value already represents share count.
	}

	return model.XBRLFact{
		Tag:         tag,
		Value:       value,
		Unit:        unit,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		PeriodKind:  periodKind,
		Accession:   accession,
		FiledDate:   filed,
		Form:        v.Get("form").String(),
		Dimensions:  nil, // companyfacts exposes entity-level facts only
	}, true, nil
}
