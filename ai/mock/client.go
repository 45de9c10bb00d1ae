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


package mock

import (
	"context"
	"sync"

	"github.com/poiesic/jobtrail/ai"
)

// MockClient is a test double for ai.ProviderClient.
// It allows custom behavior injection via function fields.
type MockClient struct {
	// CallFunc is invoked by Call if set. If nil, Call returns Response.
	CallFunc func(ctx context.Context, prompt string) (string, error)

	// Response is returned by Call when CallFunc is nil.
	Response string

	mu        sync.Mutex
	callCount int
	prompts   []string
}

var _ ai.ProviderClient = (*MockClient)(nil)

// NewMockClient creates a mock provider client.
// Note: Returns concrete type to allow test assertions.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Call records the prompt and returns the injected behavior. It honors
// context cancellation before doing anything else, like a real client.
func (m *MockClient) Call(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.callCount++
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", ai.Cancelled()
	}
	if m.CallFunc != nil {
		return m.CallFunc(ctx, prompt)
	}
	return m.Response, nil
}

// CallCount returns the number of times Call was invoked.
func (m *MockClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// LastPrompt returns the most recent prompt, or "" if none.
func (m *MockClient) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.prompts) == 0 {
		return ""
	}
	return m.prompts[len(m.prompts)-1]
}

// Reset clears recorded calls and injected behavior.
func (m *MockClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.prompts = nil
	m.CallFunc = nil
}

// MockLister is a test double for ai.ModelLister.
type MockLister struct {
	Models []string
	Err    error
}

var _ ai.ModelLister = (*MockLister)(nil)

// ListModels returns the injected model list or error.
func (m *MockLister) ListModels(ctx context.Context) ([]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Models, nil
}

// IsRunning reports whether ListModels would succeed.
func (m *MockLister) IsRunning(ctx context.Context) bool {
	return m.Err == nil
}
