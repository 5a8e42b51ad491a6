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

// Package snapshot is the Snapshot Builder (C11): the orchestrator that
// drives every ticker through the Regulator Client, CIK Map, Filings Index,
// XBRL Fetcher, Context Engine, Tag Mapper, Filing Selector and Statement
// Assembler, then merges the results into one immutable SnapshotResult.
// Grounded on cmd/run.go's channel-fan-in orchestration loop, generalized
// from a sequential per-subscription loop to a bounded-concurrency worker
// pool since a multi-hundred-ticker universe would otherwise serialize on
// regulator round trips.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mosaicdata/pit-fundamentals/edgar"
	"github.com/mosaicdata/pit-fundamentals/httpcache"
	"github.com/mosaicdata/pit-fundamentals/model"
	"github.com/mosaicdata/pit-fundamentals/ratelimit"
	"github.com/mosaicdata/pit-fundamentals/statement"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// identityTolerance bounds the balance-sheet and cash-flow identity checks
// run as a post-condition over the assembled rows.
const identityTolerance = 0.01

// Builder owns the shared collaborators for one run: a single Client (hence
// one cache, one rate limiter) and the CIK Map loaded once up front.
type Builder struct {
	client *edgar.Client
	cikMap *edgar.CIKMap
	cfg    model.EngineConfig
	loc    *time.Location
}

// New wires the Regulator Client, Response Cache, Rate Limiter and loads the
// CIK Map, all from cfg. This is the one place those collaborators are
// constructed; Builder.Run never constructs its own.
func New(ctx context.Context, cfg model.EngineConfig) (*Builder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("resolving cutoff timezone: %w", err)
	}

	cache, err := httpcache.New(cfg.CacheDir)
	if err != nil {
		return nil, fmt.Errorf("initializing response cache: %w", err)
	}

	limiter := ratelimit.New(cfg.RateLimitRPS, int(cfg.RateLimitRPS))

	client, err := edgar.NewClient(cfg.UserAgent, cache, limiter, cfg.HTTPTimeout())
	if err != nil {
		return nil, err
	}

	cikMap, err := edgar.LoadCIKMap(ctx, client)
	if err != nil {
		return nil, fmt.Errorf("loading CIK map: %w", err)
	}

	return &Builder{client: client, cikMap: cikMap, cfg: cfg, loc: loc}, nil
}

// Run builds one SnapshotResult for req, fanning out across tickers with a
// worker pool bounded by cfg.MaxConcurrency. On context cancellation no
// partial result is returned.
func (b *Builder) Run(ctx context.Context, req model.SnapshotRequest) (*model.SnapshotResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	acc := newAccumulator()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.cfg.MaxConcurrency)

	for _, raw := range req.Tickers {
		if gctx.Err() != nil {
			break
		}
		ticker := model.Normalize(string(raw))
		g.Go(func() error {
			return b.processTicker(gctx, ticker, req, acc)
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := acc.toResult(req.CutoffDate)
	validateBalanceIdentity(result.Balance)
	validateCashFlowIdentity(result.CashFlow)

	return result, nil
}

// processTicker runs one ticker's full pipeline and merges its rows into
// acc. A per-ticker failure (unknown ticker, no filings, network error)
// never aborts the run: it is recorded in the coverage report instead.
func (b *Builder) processTicker(ctx context.Context, ticker model.Ticker, req model.SnapshotRequest, acc *accumulator) error {
	logger := log.With().Str("Ticker", string(ticker)).Logger()
	ctx = logger.WithContext(ctx)

	acc.recordRequested(ticker)

	issuer, ok := b.cikMap.Lookup(ticker)
	if !ok {
		acc.recordIssue(ticker, "unresolved_ticker", "ticker not found in CIK registry")
		return nil
	}

	filings, err := edgar.FetchFilings(ctx, b.client, issuer, req.CutoffDate, req.PeriodType, b.loc)
	if err != nil {
		if isFatal(err) {
			return err
		}
		acc.recordIssue(ticker, "filings_fetch_failed", err.Error())
		return nil
	}
	if len(filings) == 0 {
		acc.recordIssue(ticker, "no_filings", "no accepted filings of the requested period type before cutoff")
		return nil
	}

	groups, err := statement.SelectBestFilingPerPeriod(filings, req.CutoffDate, b.loc)
	if err != nil {
		if isFatal(err) {
			return err
		}
		acc.recordIssue(ticker, "cutoff_violation", err.Error())
		return nil
	}
	filingsByAccession := statement.IndexByAccession(filings)

	tagFacts, err := edgar.FetchCompanyFacts(ctx, b.client, issuer)
	if err != nil {
		if isFatal(err) {
			return err
		}
		acc.recordIssue(ticker, "facts_fetch_failed", err.Error())
		return nil
	}

	acc.mergeCompanyMaster(model.CompanyMasterRow{
		Ticker: ticker, IssuerId: issuer, LastUpdated: time.Now().UTC(),
	})

	for _, g := range groups {
		acc.mergeFiling(model.FilingRow{
			Ticker: ticker, IssuerId: issuer, Accession: g.Best.Accession,
			FormType: g.Best.FormType, IsAmendment: g.Best.IsAmendment,
			PeriodEnd: g.Best.PeriodEnd, FilingDate: g.Best.FilingDate,
			AcceptanceDatetime: g.Best.AcceptanceDatetime,
		})

		income := statement.AssembleIncome(ticker, g, tagFacts, req.CutoffDate, filingsByAccession)
		balance := statement.AssembleBalance(ticker, g, tagFacts, req.CutoffDate, filingsByAccession)
		cashflow := statement.AssembleCashFlow(ticker, g, tagFacts, req.CutoffDate, filingsByAccession)
		derived := statement.DeriveMetrics(income, cashflow)

		acc.mergeIncome(income)
		acc.mergeBalance(balance)
		acc.mergeCashFlow(cashflow)
		acc.mergeDerived(derived)
	}

	acc.recordResolved(ticker)
	return nil
}

// isFatal reports whether err should abort the whole run rather than be
// recorded as a per-ticker coverage issue. Auth failures are fatal because
// every subsequent request would fail identically; cutoff violations are
// fatal because they signal a data-integrity bug in the Filing Selector,
// not a ticker-specific data-availability gap.
func isFatal(err error) bool {
	return errors.Is(err, model.ErrAuth) || errors.Is(err, model.ErrCutoffViolation)
}
