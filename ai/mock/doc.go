// Package mock provides test doubles for the ai package interfaces.
//
// MockClient stands in for a ProviderClient without network access.
// Tests inject behavior through the CallFunc field and assert on
// CallCount/LastPrompt, mirroring how the rest of the codebase uses
// function-field mocks.
package mock
