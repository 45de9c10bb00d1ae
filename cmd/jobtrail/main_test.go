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


package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/jobtrail/core"
	"github.com/poiesic/jobtrail/storage"
	"github.com/poiesic/jobtrail/storage/dirstore"
)

func TestOpenBackendPicksDirectoryStore(t *testing.T) {
	dir := t.TempDir()

	store, err := openBackend(storage.State{DataDir: dir, SetupComplete: true})
	require.NoError(t, err)
	defer store.Close()

	_, ok := store.(*dirstore.Store)
	assert.True(t, ok, "expected directory store for a configured data dir")
}

func TestOpenBackendMissingDirectory(t *testing.T) {
	_, err := openBackend(storage.State{DataDir: t.TempDir() + "/vanished", SetupComplete: true})
	assert.ErrorIs(t, err, storage.ErrReconnectNeeded)
}

func TestApplyCredentialEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-gemini")
	t.Setenv("OPENAI_API_KEY", "env-openai")

	s := core.Settings{GeminiAPIKey: "stored", OpenAIAPIKey: "stored"}
	applyCredentialEnv(&s)
	assert.Equal(t, "env-gemini", s.GeminiAPIKey)
	assert.Equal(t, "env-openai", s.OpenAIAPIKey)
}

func TestApplyCredentialEnvKeepsStored(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")

	s := core.Settings{GeminiAPIKey: "stored"}
	applyCredentialEnv(&s)
	assert.Equal(t, "stored", s.GeminiAPIKey)
}

func TestFindApplication(t *testing.T) {
	apps := []core.JobApplication{
		{ID: "a1", Company: "Acme"},
		{ID: "b2", Company: "Globex"},
	}
	assert.Equal(t, 1, findApplication(apps, "b2"))
	assert.Equal(t, -1, findApplication(apps, "zz"))
	assert.Equal(t, -1, findApplication(nil, "a1"))
}

func TestMaskKey(t *testing.T) {
	assert.Equal(t, "(unset)", maskKey(""))
	assert.Equal(t, "****", maskKey("short"))
	assert.Equal(t, "sk-a...wxyz", maskKey("sk-abcdefgh-wxyz"))
}
