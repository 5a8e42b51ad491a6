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
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/jackc/pgx/v5"
	"github.com/mosaicdata/pit-fundamentals/store"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// fileConfig is the shape persisted to ~/.pitfundamentals.toml, matching the
// keys initConfig/viper expect in snapshot.go.
type fileConfig struct {
	UserAgent      string  `toml:"user_agent"`
	DatabaseURL    string  `toml:"database_url"`
	CacheDir       string  `toml:"cache_dir"`
	OutputDir      string  `toml:"output_dir"`
	MaxConcurrency int     `toml:"max_concurrency"`
	RateLimitRPS   float64 `toml:"rate_limit_rps"`
	HTTPTimeoutS   int     `toml:"http_timeout_s"`
	CutoffTimezone string  `toml:"cutoff_timezone"`
}

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Gather configuration and set up the snapshot database schema",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := fileConfig{
			MaxConcurrency: 4,
			RateLimitRPS:   10,
			HTTPTimeoutS:   30,
			CutoffTimezone: "America/New_York",
		}

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("User-Agent header to identify this client to the regulator (e.g. \"Acme Research research@acme.com\"):").
					Value(&cfg.UserAgent).
					Validate(func(s string) error {
						if strings.TrimSpace(s) == "" {
							return os.ErrInvalid
						}
						return nil
					}),

				huh.NewInput().
					Title("Provide the DSN for connecting to your PostgreSQL database (postgres://[user[:password]@][netloc][:port][/dbname][?param1=value1&...])").
					Value(&cfg.DatabaseURL).
					Validate(func(dsn string) error {
						_, err := pgx.ParseConfig(dsn)
						return err
					}),

				huh.NewInput().
					Title("Directory to cache regulator HTTP responses in:").
					Value(&cfg.CacheDir),

				huh.NewInput().
					Title("Directory to write Parquet/CSV snapshot output to:").
					Value(&cfg.OutputDir),
			),
		)

		if err := form.Run(); err != nil {
			log.Fatal().Err(err).Msg("error gathering configuration")
		}

		log.Info().Msg("creating snapshot database tables")

		dbURL := strings.Replace(cfg.DatabaseURL, "postgres://", "pgx5://", -1)
		if err := store.Migrate(dbURL); err != nil {
			log.Fatal().Err(err).Msg("error running database migration")
		}

		log.Info().Msg("database tables created")

		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatal().Err(err).Msg("could not determine user home directory")
		}

		configFN := filepath.Join(home, ".pitfundamentals.toml")
		log.Info().Str("ConfigFile", configFN).Msg("saving configuration to file")
		configData, err := toml.Marshal(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("could not marshal configuration data")
		}

		if err := os.WriteFile(configFN, configData, 0644); err != nil {
			log.Fatal().Err(err).Str("FileName", configFN).Msg("could not save configuration to file")
		}

		log.Info().Msg("pitfundamentals has been initialized")
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
