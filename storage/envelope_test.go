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


package storage

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/jobtrail/core"
)

func TestEncodeDecodeApplications(t *testing.T) {
	doc := core.DefaultDocument()
	doc.Applications = []core.JobApplication{
		{ID: core.NewID(), Company: "Acme", Role: "Engineer", Status: core.StatusApplied},
	}

	data, err := EncodeCategory(core.CategoryApplications, doc, time.Time{})
	require.NoError(t, err)

	var f JobsFile
	require.NoError(t, json.Unmarshal(data, &f))
	assert.Equal(t, FormatVersion, f.Version)
	assert.False(t, f.CreatedAt.IsZero())
	assert.False(t, f.UpdatedAt.IsZero())

	out := core.DefaultDocument()
	created, err := DecodeCategory(core.CategoryApplications, data, out)
	require.NoError(t, err)
	assert.Equal(t, f.CreatedAt, created)
	require.Len(t, out.Applications, 1)
	assert.Equal(t, "Acme", out.Applications[0].Company)
}

func TestEncodePreservesCreatedAt(t *testing.T) {
	doc := core.DefaultDocument()
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	data, err := EncodeCategory(core.CategoryContacts, doc, created)
	require.NoError(t, err)

	var f ContactsFile
	require.NoError(t, json.Unmarshal(data, &f))
	assert.Equal(t, created, f.CreatedAt)
	assert.True(t, f.UpdatedAt.After(created))
}

func TestEncodeEmptyListsNotNull(t *testing.T) {
	doc := core.DefaultDocument()
	doc.Applications = nil

	data, err := EncodeCategory(core.CategoryApplications, doc, time.Time{})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"items": []`)
}

func TestResumeRoundTrip(t *testing.T) {
	doc := core.DefaultDocument()
	doc.Resume = &core.Resume{
		FileName:   "resume.txt",
		Skills:     []string{"Go", "SQL"},
		SourceText: "raw resume text",
		ParsedAt:   time.Date(2025, 4, 2, 9, 30, 0, 0, time.UTC),
	}

	data, err := EncodeCategory(core.CategoryResume, doc, time.Time{})
	require.NoError(t, err)

	var f ResumeFile
	require.NoError(t, json.Unmarshal(data, &f))
	assert.Equal(t, "resume.txt", f.FileName)
	assert.Equal(t, "raw resume text", f.Content)
	require.NotNil(t, f.ParsedData)

	out := core.DefaultDocument()
	_, err = DecodeCategory(core.CategoryResume, data, out)
	require.NoError(t, err)
	require.NotNil(t, out.Resume)
	assert.Equal(t, []string{"Go", "SQL"}, out.Resume.Skills)
}

func TestDecodeResumeRawContentOnly(t *testing.T) {
	raw := `{"version":1,"fileName":"cv.txt","content":"never parsed","parsedData":null,"uploadedAt":"2025-05-01T00:00:00Z"}`

	out := core.DefaultDocument()
	_, err := DecodeCategory(core.CategoryResume, []byte(raw), out)
	require.NoError(t, err)
	require.NotNil(t, out.Resume)
	assert.Equal(t, "never parsed", out.Resume.SourceText)
	assert.Equal(t, "cv.txt", out.Resume.FileName)
}

func TestDecodeCorruptData(t *testing.T) {
	out := core.DefaultDocument()
	_, err := DecodeCategory(core.CategorySettings, []byte("{not json"), out)
	assert.ErrorIs(t, err, ErrCorruptData)
}

func TestCategoryFileNames(t *testing.T) {
	assert.Equal(t, "jobs.json", CategoryFileName(core.CategoryApplications))
	assert.Equal(t, "contacts.json", CategoryFileName(core.CategoryContacts))
	assert.Equal(t, "resume.json", CategoryFileName(core.CategoryResume))
	assert.Equal(t, "settings.json", CategoryFileName(core.CategorySettings))
	assert.Empty(t, CategoryFileName(core.Category("bogus")))
}

func TestStateRoundTrip(t *testing.T) {
	path := t.TempDir() + "/nested/state.json"

	st, err := LoadState(path)
	require.NoError(t, err)
	assert.False(t, st.SetupComplete)

	st = State{DataDir: "/tmp/data", SetupComplete: true}
	require.NoError(t, SaveState(path, st))

	loaded, err := LoadState(path)
	require.NoError(t, err)
	assert.Equal(t, st, loaded)
}
