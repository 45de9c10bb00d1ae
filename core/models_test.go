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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryValid(t *testing.T) {
	for _, cat := range Categories() {
		assert.True(t, cat.Valid(), "category %s", cat)
	}
	assert.False(t, Category("notes").Valid())
	assert.False(t, Category("").Valid())
}

func TestNewIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		require.NotEmpty(t, id)
		require.False(t, seen[id])
		seen[id] = true
	}
}

func TestDefaultDocument(t *testing.T) {
	doc := DefaultDocument()
	assert.NotNil(t, doc.Applications)
	assert.Empty(t, doc.Applications)
	assert.NotNil(t, doc.Contacts)
	assert.Nil(t, doc.Resume)
	assert.Equal(t, "board", doc.Settings.ViewPreference)
	assert.Equal(t, ProviderNone, doc.Settings.AIProvider)
}

func TestCloneIsDeep(t *testing.T) {
	doc := DefaultDocument()
	doc.Applications = []JobApplication{{
		ID:             NewID(),
		Company:        "Acme",
		Status:         StatusInterview,
		LinkedContacts: []string{"c1"},
		ParsedJD:       &ParsedJobPosting{Role: "Engineer", RequiredSkills: []string{"Go"}},
		GapAnalysis:    &GapAnalysis{MatchScore: 72, Gaps: []string{"Kubernetes"}},
	}}
	doc.Contacts = []Contact{{ID: NewID(), Name: "Dana"}}
	doc.Resume = &Resume{
		Skills:     []string{"Go", "SQL"},
		Experience: []ExperienceEntry{{Company: "Initech", Highlights: []string{"led migration"}}},
	}

	clone := doc.Clone()

	clone.Applications[0].Company = "Changed"
	clone.Applications[0].LinkedContacts[0] = "changed"
	clone.Applications[0].ParsedJD.RequiredSkills[0] = "Rust"
	clone.Applications[0].GapAnalysis.Gaps[0] = "changed"
	clone.Contacts[0].Name = "Changed"
	clone.Resume.Skills[0] = "Changed"
	clone.Resume.Experience[0].Highlights[0] = "changed"

	assert.Equal(t, "Acme", doc.Applications[0].Company)
	assert.Equal(t, "c1", doc.Applications[0].LinkedContacts[0])
	assert.Equal(t, "Go", doc.Applications[0].ParsedJD.RequiredSkills[0])
	assert.Equal(t, "Kubernetes", doc.Applications[0].GapAnalysis.Gaps[0])
	assert.Equal(t, "Dana", doc.Contacts[0].Name)
	assert.Equal(t, "Go", doc.Resume.Skills[0])
	assert.Equal(t, "led migration", doc.Resume.Experience[0].Highlights[0])
}

func TestCloneNil(t *testing.T) {
	var doc *Document
	assert.Nil(t, doc.Clone())
}
