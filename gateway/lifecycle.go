// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package gateway

import (
	"context"
	"log/slog"
	"sync"

	"github.com/poiesic/jobtrail/ai"
)

// Lifecycle is the single-flight controller around gateway operations.
// At most one operation is live per Lifecycle: starting a new one
// aborts the previous one before dispatch, and a superseded operation's
// eventual completion can never mutate the state a newer call owns.
//
// A generation counter decides ownership. Every Invoke (and every
// Cancel) bumps the generation; a completion handler only touches
// processing/error state when its generation is still current.
type Lifecycle struct {
	mu         sync.Mutex
	gen        uint64
	cancel     context.CancelFunc
	processing bool
	err        error
	logger     *slog.Logger
}

// NewLifecycle creates an idle lifecycle controller.
func NewLifecycle() *Lifecycle {
	return &Lifecycle{
		logger: slog.Default().With("component", "request-lifecycle"),
	}
}

// Invoke runs op under this lifecycle's single-flight discipline.
//
// A still-running previous operation is aborted before op is
// dispatched; its completion is then suppressed. The processing flag is
// raised before dispatch and cleared on completion, but only by the
// call that is still current. Cancellation never populates the error
// state. Invoke returns op's error, or a cancellation Failure when the
// call was aborted or superseded.
func (l *Lifecycle) Invoke(ctx context.Context, op func(ctx context.Context) error) error {
	l.mu.Lock()
	if l.cancel != nil {
		// Abort the predecessor before the new dispatch so its client
		// observes the abort strictly before our call goes out.
		l.cancel()
	}
	opCtx, cancel := context.WithCancel(ctx)
	l.gen++
	gen := l.gen
	l.cancel = cancel
	l.processing = true
	l.err = nil
	l.mu.Unlock()

	err := op(opCtx)

	l.mu.Lock()
	defer l.mu.Unlock()
	cancel()

	if gen != l.gen {
		// A newer call (or an explicit Cancel) owns the state now.
		// Whatever this operation produced, its caller is no longer
		// interested and the shared state stays untouched.
		l.logger.Debug("suppressing superseded completion", "gen", gen)
		return ai.Cancelled()
	}

	l.processing = false
	l.cancel = nil

	if err == nil {
		return nil
	}
	if ai.IsCancelled(err) {
		// Cancelled by the parent context. Error state stays as-is.
		return ai.Cancelled()
	}
	l.err = err
	return err
}

// Cancel aborts the current in-flight operation, if any, and resets the
// processing flag immediately. Safe to call when nothing is in flight.
func (l *Lifecycle) Cancel() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	// Bump the generation so the aborted operation's completion finds
	// itself stale even though processing was already reset here.
	l.gen++
	l.processing = false
}

// Processing reports whether an operation is currently in flight.
func (l *Lifecycle) Processing() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.processing
}

// Err returns the most recent non-cancellation failure, or nil.
func (l *Lifecycle) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// ClearErr resets the visible error state.
func (l *Lifecycle) ClearErr() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.err = nil
}
