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

// Package ratelimit wraps golang.org/x/time/rate as an explicitly owned,
// explicitly injected component rather than a process-wide singleton
// (Design Note: "Global rate-limit state becomes an explicitly owned
// component injected into the Client").
package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter is a token bucket: capacity B, refill rate R tokens/second. Acquire
// blocks the caller until a token is available. Safe under parallel callers.
type Limiter struct {
	rate *rate.Limiter
}

// New builds a Limiter with the given refill rate (tokens/second) and burst
// capacity.
func New(ratePerSecond float64, burst int) *Limiter {
	return &Limiter{
		rate: rate.NewLimiter(rate.Limit(ratePerSecond), burst),
	}
}

// Acquire blocks until one token is available or ctx is canceled.
func (l *Limiter) Acquire(ctx context.Context) error {
	return l.rate.Wait(ctx)
}

// AcquireN blocks until n tokens are available or ctx is canceled.
func (l *Limiter) AcquireN(ctx context.Context, n int) error {
	return l.rate.WaitN(ctx, n)
}
