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


// Package core defines the Jobtrail domain model.
//
// The central type is Document, the full application state: tracked job
// applications, contacts, the parsed resume, and settings. The Document
// is partitioned into four named categories; every persisted write
// replaces exactly one category wholesale and stamps a fresh UpdatedAt.
//
// Entities carry string IDs generated once at creation (NewID). Links
// between entities are referential: an application's LinkedContacts may
// contain IDs of contacts that no longer exist, and consumers resolve
// those to nothing rather than failing.
//
// Validation follows domain rules only (required names, bounded notes,
// closed enums). Fields populated later by AI operations are not
// validated here.
package core
