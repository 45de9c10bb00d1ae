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


// Package gateway is the provider-agnostic AI facade and its request
// lifecycle.
//
// Gateway exposes one operation per use case (parse resume, parse job
// posting, gap analysis, tailored summary, resume feedback, chat). Each
// operation builds its prompt, dispatches through the single configured
// ProviderClient, recovers structure from the raw response with
// ai/extract, validates the payload against the operation's JSON
// schema, and only then unmarshals into domain types. Callers see
// either a complete result or a classified *ai.Failure.
//
// Lifecycle enforces single-flight semantics over gateway calls:
// starting a new operation aborts the previous one, explicit Cancel is
// idempotent, and a superseded operation's late completion cannot
// corrupt the processing or error state observed by the UI.
package gateway
