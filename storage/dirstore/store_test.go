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


package dirstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/jobtrail/core"
	"github.com/poiesic/jobtrail/storage"
)

func TestOpenMissingDirectory(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "gone"), nil)
	assert.ErrorIs(t, err, storage.ErrReconnectNeeded)
}

func TestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir, nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	ctx := context.Background()
	doc := core.DefaultDocument()
	doc.Applications = []core.JobApplication{
		{ID: core.NewID(), Company: "Initech", Role: "SRE", Status: core.StatusInterview},
	}
	doc.Contacts = []core.Contact{
		{ID: core.NewID(), Name: "Sam Reyes", Company: "Initech"},
	}
	doc.Settings.AIProvider = core.ProviderOllama
	doc.Settings.OllamaModel = "llama3.2"

	for _, cat := range core.Categories() {
		require.NoError(t, s.WriteCategory(ctx, cat, doc))
	}

	loaded, err := s.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Applications, 1)
	assert.Equal(t, "Initech", loaded.Applications[0].Company)
	require.Len(t, loaded.Contacts, 1)
	assert.Equal(t, "Sam Reyes", loaded.Contacts[0].Name)
	assert.Equal(t, core.ProviderOllama, loaded.Settings.AIProvider)
	assert.Equal(t, "llama3.2", loaded.Settings.OllamaModel)
}

func TestReadAllMissingFilesDefault(t *testing.T) {
	s, err := Open(t.TempDir(), nil)
	require.NoError(t, err)

	doc, err := s.ReadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, doc.Applications)
	assert.Nil(t, doc.Resume)
	assert.Equal(t, "board", doc.Settings.ViewPreference)
}

func TestReadAllCorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "jobs.json"), []byte("{nope"), 0o644))

	s, err := Open(dir, nil)
	require.NoError(t, err)

	_, err = s.ReadAll(context.Background())
	assert.ErrorIs(t, err, storage.ErrCorruptData)
}

func TestInitializeDefaultsIdempotent(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir, nil)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.InitializeDefaults(ctx))
	for _, cat := range core.Categories() {
		_, err := os.Stat(filepath.Join(dir, storage.CategoryFileName(cat)))
		assert.NoError(t, err)
	}

	// Populate, then re-init; existing data must survive.
	doc := core.DefaultDocument()
	doc.Applications = []core.JobApplication{{ID: core.NewID(), Company: "Hooli", Status: core.StatusApplied}}
	require.NoError(t, s.WriteCategory(ctx, core.CategoryApplications, doc))
	require.NoError(t, s.InitializeDefaults(ctx))

	loaded, err := s.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Applications, 1)
}

func TestDirectoryRemovedMidSession(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	s, err := Open(dir, nil)
	require.NoError(t, err)

	ctx := context.Background()
	doc := core.DefaultDocument()
	require.NoError(t, s.WriteCategory(ctx, core.CategorySettings, doc))

	require.NoError(t, os.RemoveAll(dir))

	err = s.WriteCategory(ctx, core.CategorySettings, doc)
	assert.ErrorIs(t, err, storage.ErrReconnectNeeded)
	_, err = s.ReadAll(ctx)
	assert.ErrorIs(t, err, storage.ErrReconnectNeeded)
}

func TestClosedStoreRejectsUse(t *testing.T) {
	s, err := Open(t.TempDir(), nil)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = s.ReadAll(context.Background())
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}
