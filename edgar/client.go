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

// Package edgar is the Regulator Client (C3), CIK Map (C4), Filings Index
// (C5) and XBRL Fetcher (C6): the HTTP collaborator that talks to the
// regulator's JSON endpoints. One package because all four are facets of
// one HTTP surface, mirroring the shape of NateN8-go-edgar's client.go.
package edgar

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/mosaicdata/pit-fundamentals/httpcache"
	"github.com/mosaicdata/pit-fundamentals/model"
	"github.com/mosaicdata/pit-fundamentals/ratelimit"
	"github.com/rs/zerolog/log"
)

const (
	tickersURL        = "https://www.sec.gov/files/company_tickers.json"
	submissionsURLFmt = "https://data.sec.gov/submissions/CIK%s.json"
	companyFactsURLFmt = "https://data.sec.gov/api/xbrl/companyfacts/CIK%s.json"
)

// retry policy constants (Design Note: "a small explicit state machine
// around one HTTP call, not a decorator").
const (
	maxAttempts  = 5
	baseDelay    = time.Second
	backoffFactor = 2.0
)

// Client fetches regulator JSON resources through a shared cache and rate
// limiter. It is the sole point of contact with the regulator's HTTP
// endpoints. Endpoint URLs are fields, not constants, so tests can point a
// Client at an httptest.Server instead of the live regulator.
type Client struct {
	http    *resty.Client
	cache   *httpcache.Cache
	limiter *ratelimit.Limiter

	TickersURL         string
	SubmissionsURLFmt  string
	CompanyFactsURLFmt string
}

// NewClient builds a Client pointed at the live SEC endpoints. userAgent is
// mandatory: the regulator rejects requests without a compliant identifying
// header with 403.
func NewClient(userAgent string, cache *httpcache.Cache, limiter *ratelimit.Limiter, timeout time.Duration) (*Client, error) {
	if userAgent == "" {
		return nil, fmt.Errorf("%w: user-agent must not be empty", model.ErrAuth)
	}

	httpClient := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept-Encoding", "gzip, deflate")

	return &Client{
		http:               httpClient,
		cache:              cache,
		limiter:            limiter,
		TickersURL:         tickersURL,
		SubmissionsURLFmt:  submissionsURLFmt,
		CompanyFactsURLFmt: companyFactsURLFmt,
	}, nil
}

// Get fetches url, consulting the cache first and falling back to a
// rate-limited HTTP GET with retry/backoff on transport or 5xx failures.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	key := httpcache.Key(url, nil)

	if entry, ok, err := c.cache.Get(key); err != nil {
		log.Warn().Err(err).Str("URL", url).Msg("cache read failed, falling through to network")
	} else if ok {
		log.Debug().Str("URL", url).Msg("cache hit")
		return entry.Body, nil
	}

	if err := c.limiter.Acquire(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limiter: %v", model.ErrNetwork, err)
	}

	var lastErr error
	delay := baseDelay
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		resp, err := c.http.R().SetContext(ctx).Get(url)
		if err != nil {
			lastErr = err
			log.Warn().Err(err).Str("URL", url).Int("Attempt", attempt).Msg("regulator request transport error")
			time.Sleep(jitter(delay))
			delay = time.Duration(float64(delay) * backoffFactor)
			continue
		}

		switch {
		case resp.StatusCode() == 403:
			return nil, fmt.Errorf("%w: regulator returned 403 for %s", model.ErrAuth, url)
		case resp.StatusCode() == 404:
			return nil, fmt.Errorf("%w: %s", model.ErrNotFound, url)
		case resp.StatusCode() >= 500:
			lastErr = fmt.Errorf("status %d", resp.StatusCode())
			log.Warn().Int("StatusCode", resp.StatusCode()).Str("URL", url).Int("Attempt", attempt).Msg("regulator returned server error")
			time.Sleep(jitter(delay))
			delay = time.Duration(float64(delay) * backoffFactor)
			continue
		case resp.StatusCode() >= 400:
			return nil, fmt.Errorf("%w: regulator returned %d for %s", model.ErrNetwork, resp.StatusCode(), url)
		}

		if err := c.cache.Put(key, &httpcache.Entry{
			StatusCode: resp.StatusCode(),
			ETag:       resp.Header().Get("ETag"),
			FetchedAt:  time.Now().UTC(),
			Body:       resp.Body(),
		}); err != nil {
			log.Warn().Err(err).Str("URL", url).Msg("failed to write response to cache")
		}

		return resp.Body(), nil
	}

	return nil, fmt.Errorf("%w: %d attempts exhausted fetching %s: %v", model.ErrNetwork, maxAttempts, url, lastErr)
}

// jitter adds up to 25% random-ish skew to a delay without pulling in a
// dependency just for this: time.Now().UnixNano() low bits are good enough
// entropy for retry spacing, not a security-sensitive use.
func jitter(d time.Duration) time.Duration {
	skew := time.Duration(time.Now().UnixNano() % int64(d/4+1))
	return d + skew
}
