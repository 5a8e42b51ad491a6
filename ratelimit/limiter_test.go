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
package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestAcquireBlocksUntilTokenAvailable(t *testing.T) {
	l := New(100, 1) // one token up front, refill at 100/s

	ctx := context.Background()
	if err := l.Acquire(ctx); err != nil {
		t.Fatalf("first acquire should succeed immediately: %v", err)
	}

	start := time.Now()
	if err := l.Acquire(ctx); err != nil {
		t.Fatalf("second acquire should succeed after waiting for refill: %v", err)
	}
	if elapsed := time.Since(start); elapsed <= 0 {
		t.Fatalf("expected second acquire to block for a non-zero duration, got %v", elapsed)
	}
}

func TestAcquireRespectsContextCancellation(t *testing.T) {
	l := New(0.001, 1) // effectively never refills within the test window
	if err := l.Acquire(context.Background()); err != nil {
		t.Fatalf("first acquire should drain the initial burst: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if err := l.Acquire(ctx); err == nil {
		t.Fatal("expected acquire to fail once context deadline is exceeded")
	}
}
