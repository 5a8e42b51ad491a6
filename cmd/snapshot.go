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
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mosaicdata/pit-fundamentals/model"
	"github.com/mosaicdata/pit-fundamentals/snapshot"
	"github.com/mosaicdata/pit-fundamentals/store"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	snapshotTickers    []string
	snapshotCutoff     string
	snapshotPeriod     string
	snapshotWritePG    bool
	snapshotWriteFiles bool
)

// snapshotCmd is the one real command: it builds a SnapshotRequest and
// EngineConfig from flags/viper, runs the core, writes the requested sinks,
// and maps the run's failure mode to a process exit code.
// Grounded on cmd/run.go's single orchestration entry point, generalized
// from "execute each subscription and stream to one fan-in consumer" to
// "build one in-memory result and hand it to pluggable sinks".
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Build a point-in-time fundamentals snapshot for a ticker universe as of a cutoff date",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		cfg := model.EngineConfig{
			UserAgent:      viper.GetString("user_agent"),
			CacheDir:       viper.GetString("cache_dir"),
			OutputDir:      viper.GetString("output_dir"),
			MaxConcurrency: viper.GetInt("max_concurrency"),
			RateLimitRPS:   viper.GetFloat64("rate_limit_rps"),
			HTTPTimeoutS:   viper.GetInt("http_timeout_s"),
			CutoffTimezone: viper.GetString("cutoff_timezone"),
		}

		if err := cfg.Validate(); err != nil {
			log.Fatal().Err(err).Msg("invalid engine configuration")
		}

		loc, err := cfg.Location()
		if err != nil {
			log.Fatal().Err(err).Str("CutoffTimezone", cfg.CutoffTimezone).Msg("could not resolve cutoff timezone")
		}

		// Parsed in loc, not UTC: --cutoff is a calendar date, and parsing it
		// with a bare time.Parse would anchor it at UTC midnight, which then
		// rolls backward a calendar day once projected into an earlier zone
		// like America/New_York.
		cutoff, err := time.ParseInLocation("2006-01-02", snapshotCutoff, loc)
		if err != nil {
			log.Fatal().Err(err).Str("Cutoff", snapshotCutoff).Msg("could not parse --cutoff as YYYY-MM-DD")
		}

		periodType := model.PeriodAnnual
		if strings.EqualFold(snapshotPeriod, "quarterly") {
			periodType = model.PeriodQuarterly
		}

		tickers := make([]model.Ticker, 0, len(snapshotTickers))
		for _, t := range snapshotTickers {
			tickers = append(tickers, model.Normalize(t))
		}

		req := model.SnapshotRequest{
			Tickers:    tickers,
			CutoffDate: cutoff,
			PeriodType: periodType,
		}

		builder, err := snapshot.New(ctx, cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("could not initialize snapshot builder")
		}

		result, err := builder.Run(ctx, req)
		if err != nil {
			exitForError(err)
		}

		log.Info().
			Int("Resolved", len(result.Coverage.Resolved)).
			Int("Missing", len(result.Coverage.MissingTickers)).
			Msg("snapshot run complete")

		if snapshotWriteFiles {
			if err := store.WriteParquet(result, cfg.OutputDir); err != nil {
				log.Fatal().Err(err).Msg("could not write parquet output")
			}
			if err := store.WriteCSV(result, cfg.OutputDir); err != nil {
				log.Fatal().Err(err).Msg("could not write csv output")
			}
		}

		if snapshotWritePG {
			pg, err := store.OpenPostgres(ctx, viper.GetString("database_url"))
			if err != nil {
				log.Fatal().Err(err).Msg("could not connect to snapshot database")
			}
			defer pg.Close()

			if err := pg.SaveResult(ctx, result); err != nil {
				log.Fatal().Err(err).Msg("could not save snapshot result to database")
			}
		}

		fmt.Println(store.Summary(result, time.Now()))
	},
}

// exitForError maps a fatal run error to a nonzero exit code: any
// unhandled error, CutoffViolationError, or AuthError exits nonzero. Per-
// ticker failures never reach this path — they're absorbed into the
// coverage report instead.
func exitForError(err error) {
	switch {
	case errors.Is(err, model.ErrCutoffViolation):
		log.Error().Err(err).Msg("snapshot aborted: cutoff violation")
	case errors.Is(err, model.ErrAuth):
		log.Error().Err(err).Msg("snapshot aborted: regulator rejected request credentials")
	default:
		log.Error().Err(err).Msg("snapshot aborted")
	}
	os.Exit(1)
}

func init() {
	rootCmd.AddCommand(snapshotCmd)

	snapshotCmd.Flags().StringSliceVar(&snapshotTickers, "tickers", nil, "comma-separated ticker universe (required)")
	snapshotCmd.Flags().StringVar(&snapshotCutoff, "cutoff", "", "cutoff date, YYYY-MM-DD (required)")
	snapshotCmd.Flags().StringVar(&snapshotPeriod, "period", "annual", "annual or quarterly")
	snapshotCmd.Flags().BoolVar(&snapshotWritePG, "postgres", false, "save the result to the configured Postgres database")
	snapshotCmd.Flags().BoolVar(&snapshotWriteFiles, "files", true, "write Parquet and CSV output to the configured output directory")

	if err := snapshotCmd.MarkFlagRequired("tickers"); err != nil {
		log.Panic().Err(err).Msg("MarkFlagRequired for tickers failed")
	}
	if err := snapshotCmd.MarkFlagRequired("cutoff"); err != nil {
		log.Panic().Err(err).Msg("MarkFlagRequired for cutoff failed")
	}
}
