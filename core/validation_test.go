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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateApplication(t *testing.T) {
	valid := &JobApplication{ID: NewID(), Company: "Acme", Role: "Engineer", Status: StatusApplied}
	assert.NoError(t, ValidateApplication(valid))

	tests := []struct {
		name    string
		app     *JobApplication
		wantErr error
	}{
		{"nil application", nil, ErrInvalidApplication},
		{"empty company", &JobApplication{Status: StatusApplied}, ErrEmptyCompany},
		{"whitespace company", &JobApplication{Company: "   ", Status: StatusApplied}, ErrEmptyCompany},
		{"unknown status", &JobApplication{Company: "Acme", Status: Status("ghosted")}, ErrInvalidStatus},
		{"unknown work type", &JobApplication{Company: "Acme", Status: StatusApplied, WorkType: WorkType("orbital")}, ErrInvalidWorkType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, ValidateApplication(tt.app), tt.wantErr)
		})
	}

	// WorkType is optional.
	assert.NoError(t, ValidateApplication(&JobApplication{Company: "Acme", Status: StatusDiscovered}))
}

func TestValidateContact(t *testing.T) {
	assert.NoError(t, ValidateContact(&Contact{Name: "Dana Cho"}))
	assert.ErrorIs(t, ValidateContact(nil), ErrInvalidContact)
	assert.ErrorIs(t, ValidateContact(&Contact{Name: "  "}), ErrEmptyName)
}

func TestContactNotesWordBound(t *testing.T) {
	atLimit := strings.TrimSpace(strings.Repeat("word ", MaxNoteWords))
	assert.NoError(t, ValidateContact(&Contact{Name: "Dana", Notes: atLimit}))

	over := atLimit + " extra"
	assert.ErrorIs(t, ValidateContact(&Contact{Name: "Dana", Notes: over}), ErrNotesTooLong)
}

func TestValidateProvider(t *testing.T) {
	for _, p := range []Provider{ProviderGemini, ProviderOpenAI, ProviderOllama, ProviderNone} {
		assert.NoError(t, ValidateProvider(p))
	}
	assert.ErrorIs(t, ValidateProvider(Provider("bard")), ErrInvalidProvider)
}

func TestWordCount(t *testing.T) {
	assert.Zero(t, WordCount(""))
	assert.Zero(t, WordCount("   \n\t "))
	assert.Equal(t, 3, WordCount("one  two\nthree"))
}
