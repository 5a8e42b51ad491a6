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
// Package cmd is the CLI front end: a thin cobra/viper driver over the core
// (edgar/facts/tagmap/statement/snapshot) and its sinks (store). Grounded on
// cmd/root.go's config-file resolution and zerolog console writer init.
package cmd

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pitfundamentals",
	Short: "pitfundamentals builds point-in-time fundamental snapshots from regulatory XBRL filings",
	Long: `pitfundamentals is a command line utility for reconstructing historical
fundamental snapshots — income statement, balance sheet, cash flow statement,
and derived metrics — exactly as they were knowable as of a given cutoff date.

Given a ticker universe and a cutoff date, it walks each issuer's regulatory
filing history, selects the best filing per fiscal period accepted on or
before the cutoff, maps regulator-specific XBRL tags onto a standard field
set, and assembles typed statement rows. This point-in-time discipline is
what makes the resulting snapshots safe for backtesting: a snapshot built
with cutoff=T never reflects information the market could not yet have seen
on T.`,
}

// Execute adds all child commands to the root command and runs it. Called
// once from main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.pitfundamentals.toml)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".pitfundamentals" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("toml")
		viper.SetConfigName(".pitfundamentals")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		log.Info().Str("ConfigFN", viper.ConfigFileUsed()).Msg("Using config file")
	}
}
