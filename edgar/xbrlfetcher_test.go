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
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mosaicdata/pit-fundamentals/model"
)

func TestFetchCompanyFactsParsesInstantAndDurationFacts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"cik": 320193,
			"entityName": "Apple Inc.",
			"facts": {
				"us-gaap": {
					"Assets": {
						"units": {
							"USD": [
								{"end":"2016-09-24","val":321686000000,"accn":"0001628280-16-020309","fy":2016,"fp":"FY","form":"10-K","filed":"2016-10-26"}
							]
						}
					},
					"Revenues": {
						"units": {
							"USD": [
								{"start":"2015-09-27","end":"2016-09-24","val":215639000000,"accn":"0001628280-16-020309","fy":2016,"fp":"FY","form":"10-K","filed":"2016-10-26"}
							]
						}
					}
				}
			}
		}`))
	}))
	defer server.Close()

	client := newTestClient(t)
	client.CompanyFactsURLFmt = server.URL + "/%s"

	facts, err := FetchCompanyFacts(context.Background(), client, model.IssuerId("320193"))
	if err != nil {
		t.Fatalf("FetchCompanyFacts: %v", err)
	}

	assets := facts["Assets"]
	if len(assets) != 1 || assets[0].PeriodKind != model.PeriodInstant {
		t.Fatalf("expected one instant Assets fact, got %+v", assets)
	}
	if !assets[0].Consolidated() {
		t.Fatal("companyfacts-sourced facts carry no dimensions and must be consolidated")
	}
	if assets[0].Form != "10-K" {
		t.Fatalf("expected form to be captured as 10-K, got %q", assets[0].Form)
	}
	if assets[0].IsAmendedForm() {
		t.Fatal("a bare 10-K must not be classified as an amendment")
	}

	revenues := facts["Revenues"]
	if len(revenues) != 1 || revenues[0].PeriodKind != model.PeriodDuration {
		t.Fatalf("expected one duration Revenues fact, got %+v", revenues)
	}
	if revenues[0].Value != 215639000000 {
		t.Errorf("got value %v, want 215639000000", revenues[0].Value)
	}
}
