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


// Package ai defines the provider abstraction for Jobtrail's AI layer.
//
// The package holds the pieces every provider shares: the ProviderClient
// interface (one prompt in, raw text out), the Failure taxonomy that all
// AI boundaries return instead of raw errors, and the Config derived
// from user settings that selects exactly one provider.
//
// # Implementation Packages
//
//   - ai/gemini: Google Gemini generateContent API (key-based)
//   - ai/openai: OpenAI chat-completions API (bearer-token)
//   - ai/ollama: local Ollama daemon, plus a model-listing side channel
//   - ai/extract: recovery of structured JSON / plain text from raw
//     model output
//   - ai/mock: test doubles for unit testing without network access
//
// # Error Contract
//
// Provider clients never let provider-specific or transport errors
// escape: every failure is classified into a *Failure carrying one of
// the FailureKind values. Cancellation (context aborts) is classified
// as KindCancelled so callers can suppress it from user-visible error
// state.
package ai
