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


package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/poiesic/jobtrail/core"
)

// FailureKind classifies why an AI operation failed.
type FailureKind int

const (
	// KindConfiguration means no provider is selected or its credential
	// is missing. Caught before any network attempt.
	KindConfiguration FailureKind = iota + 1

	// KindTransport means the network call itself failed: connection
	// error, daemon unreachable, or a non-2xx HTTP status.
	KindTransport

	// KindExtraction means the model's text could not be coerced into
	// the expected shape after the full recovery chain.
	KindExtraction

	// KindCancelled means the operation was superseded or explicitly
	// cancelled. Never surfaced as user-visible error state.
	KindCancelled

	// KindPersistence means a storage read or write failed.
	KindPersistence
)

// String returns the human-readable kind name.
func (k FailureKind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindTransport:
		return "transport"
	case KindExtraction:
		return "extraction"
	case KindCancelled:
		return "cancelled"
	case KindPersistence:
		return "persistence"
	}
	return "unknown"
}

// Failure is the uniform error value returned across every AI boundary.
// Nothing in the AI layers panics past its own function; errors are
// always returned as a *Failure with a kind and a user-facing message.
type Failure struct {
	Kind        FailureKind
	Message     string
	Recoverable bool
}

// Error implements the error interface.
func (f *Failure) Error() string {
	return f.Message
}

// NotConfigured builds the configuration failure for a missing or
// incomplete provider setup.
func NotConfigured(provider core.Provider) *Failure {
	name := string(provider)
	if name == "" {
		name = "AI provider"
	}
	return &Failure{
		Kind:        KindConfiguration,
		Message:     fmt.Sprintf("%s not configured", name),
		Recoverable: true,
	}
}

// TransportFailure builds a transport-kind failure with the given
// human-readable message.
func TransportFailure(message string) *Failure {
	return &Failure{Kind: KindTransport, Message: message, Recoverable: true}
}

// ExtractionFailure is returned when structured extraction yields nothing.
func ExtractionFailure() *Failure {
	return &Failure{
		Kind:        KindExtraction,
		Message:     "Failed to parse AI response as JSON",
		Recoverable: true,
	}
}

// Cancelled builds the cancellation failure.
func Cancelled() *Failure {
	return &Failure{Kind: KindCancelled, Message: "operation cancelled", Recoverable: true}
}

// PersistenceFailure builds a persistence-kind failure.
func PersistenceFailure(message string) *Failure {
	return &Failure{Kind: KindPersistence, Message: message, Recoverable: true}
}

// KindOf returns the failure kind of err, or 0 if err carries no kind.
func KindOf(err error) FailureKind {
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind
	}
	return 0
}

// IsCancelled reports whether err represents cancellation, either as a
// classified Failure or as a raw context error.
func IsCancelled(err error) bool {
	if err == nil {
		return false
	}
	if KindOf(err) == KindCancelled {
		return true
	}
	return errors.Is(err, context.Canceled)
}
