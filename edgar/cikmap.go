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
	"strconv"
	"strings"

	"github.com/mosaicdata/pit-fundamentals/model"
	"github.com/tidwall/gjson"
)

// CIKMap is the ticker -> issuer identifier registry, loaded once per
// builder run. Read-only after Load.
type CIKMap struct {
	byTicker map[string]model.IssuerId
}

// LoadCIKMap fetches and parses the regulator's ticker registry. The
// registry is a JSON object of numeric-keyed records, each
// {cik_str, ticker, title}.
func LoadCIKMap(ctx context.Context, client *Client) (*CIKMap, error) {
	body, err := client.Get(ctx, client.TickersURL)
	if err != nil {
		return nil, err
	}

	parsed := gjson.ParseBytes(body)
	if !parsed.IsObject() {
		return nil, fmt.Errorf("%w: ticker registry is not a JSON object", model.ErrParse)
	}

	m := &CIKMap{byTicker: make(map[string]model.IssuerId)}

	var parseErr error
	parsed.ForEach(func(_, record gjson.Result) bool {
		ticker := record.Get("ticker").String()
		cik := record.Get("cik_str").Raw
		if ticker == "" || cik == "" {
			return true
		}
		cikInt, err := strconv.ParseInt(strings.TrimSpace(cik), 10, 64)
		if err != nil {
			parseErr = fmt.Errorf("%w: invalid cik_str %q for ticker %s", model.ErrParse, cik, ticker)
			return false
		}
		m.byTicker[strings.ToUpper(ticker)] = model.IssuerId(fmt.Sprintf("%010d", cikInt))
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return m, nil
}

// Lookup resolves a ticker to its issuer id, case-insensitively. Unknown
// tickers are not an error here — the caller (Snapshot Builder) records
// coverage.
func (m *CIKMap) Lookup(ticker model.Ticker) (model.IssuerId, bool) {
	id, ok := m.byTicker[strings.ToUpper(string(ticker))]
	return id, ok
}
