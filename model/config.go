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

import (
	"errors"
	"time"
)

// EngineConfig is built once at command invocation and never mutated
// afterward (Design Note: "frozen configuration object"). It is passed down
// by value through the pipeline.
type EngineConfig struct {
	UserAgent      string
	CacheDir       string
	OutputDir      string
	MaxConcurrency int
	RateLimitRPS   float64
	HTTPTimeoutS   int
	CutoffTimezone string
}

// DefaultEngineConfig returns the baseline defaults. Callers overlay resolved
// viper values on top before calling Validate.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		MaxConcurrency: 4,
		RateLimitRPS:   10,
		HTTPTimeoutS:   30,
		CutoffTimezone: "America/New_York",
	}
}

// Validate enforces the non-empty user-agent requirement and resolves
// defaults for any zero-valued field a caller left unset.
func (c *EngineConfig) Validate() error {
	if c.UserAgent == "" {
		return errors.New("engine config: user_agent is required")
	}
	if c.MaxConcurrency <= 0 {
		c.MaxConcurrency = 4
	}
	if c.RateLimitRPS <= 0 {
		c.RateLimitRPS = 10
	}
	if c.HTTPTimeoutS <= 0 {
		c.HTTPTimeoutS = 30
	}
	if c.CutoffTimezone == "" {
		c.CutoffTimezone = "America/New_York"
	}
	return nil
}

// Location resolves the configured cutoff timezone.
func (c *EngineConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.CutoffTimezone)
}

// HTTPTimeout returns the per-request timeout as a time.Duration.
func (c *EngineConfig) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutS) * time.Second
}
