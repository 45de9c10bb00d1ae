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


package core

import (
	"fmt"
	"strings"
)

// MaxNoteWords bounds the length of contact notes.
const MaxNoteWords = 200

// ValidateApplication validates a JobApplication according to domain rules.
//
// Validation rules:
//   - Company must not be empty
//   - Status must be a known pipeline status
//   - WorkType, when set, must be a known work type
//
// NOT validated (populated by AI operations):
//   - ParsedJD and GapAnalysis (nil until the gateway fills them)
//   - LinkedContacts (dangling IDs are tolerated and resolved lazily)
func ValidateApplication(app *JobApplication) error {
	if app == nil {
		return fmt.Errorf("%w: application is nil", ErrInvalidApplication)
	}
	if strings.TrimSpace(app.Company) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidApplication, ErrEmptyCompany)
	}
	if err := ValidateStatus(app.Status); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidApplication, err)
	}
	if app.WorkType != "" {
		if err := ValidateWorkType(app.WorkType); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidApplication, err)
		}
	}
	return nil
}

// ValidateContact validates a Contact according to domain rules.
//
// Validation rules:
//   - Name must not be empty
//   - Notes must not exceed MaxNoteWords words
func ValidateContact(contact *Contact) error {
	if contact == nil {
		return fmt.Errorf("%w: contact is nil", ErrInvalidContact)
	}
	if strings.TrimSpace(contact.Name) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidContact, ErrEmptyName)
	}
	if WordCount(contact.Notes) > MaxNoteWords {
		return fmt.Errorf("%w: %w (%d words)", ErrInvalidContact, ErrNotesTooLong, WordCount(contact.Notes))
	}
	return nil
}

// ValidateStatus checks that the status is one of the known pipeline values.
func ValidateStatus(s Status) error {
	switch s {
	case StatusDiscovered, StatusApplied, StatusScreening, StatusInterview,
		StatusOffer, StatusAccepted, StatusRejected, StatusWithdrawn:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// ValidateWorkType checks that the work type is a known value.
func ValidateWorkType(w WorkType) error {
	switch w {
	case WorkTypeOnsite, WorkTypeHybrid, WorkTypeRemote:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidWorkType, w)
}

// ValidateProvider checks that a provider name is known. The empty
// provider is valid here; whether it is usable is the gateway's call.
func ValidateProvider(p Provider) error {
	switch p {
	case ProviderGemini, ProviderOpenAI, ProviderOllama, ProviderNone:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidProvider, p)
}

// WordCount counts whitespace-separated words in s.
func WordCount(s string) int {
	return len(strings.Fields(s))
}
