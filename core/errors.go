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

import "errors"

// Domain validation errors
var (
	// ErrInvalidApplication indicates a JobApplication failed validation.
	ErrInvalidApplication = errors.New("invalid job application")

	// ErrInvalidContact indicates a Contact failed validation.
	ErrInvalidContact = errors.New("invalid contact")

	// ErrEmptyName indicates a required name field is empty.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrEmptyCompany indicates the application's Company field is empty.
	ErrEmptyCompany = errors.New("company cannot be empty")

	// ErrInvalidStatus indicates an unknown application Status value.
	ErrInvalidStatus = errors.New("invalid application status")

	// ErrInvalidWorkType indicates an unknown WorkType value.
	ErrInvalidWorkType = errors.New("invalid work type")

	// ErrNotesTooLong indicates contact notes exceed the word bound.
	ErrNotesTooLong = errors.New("notes exceed maximum word count")

	// ErrInvalidCategory indicates an unknown Document category name.
	ErrInvalidCategory = errors.New("invalid category")

	// ErrInvalidProvider indicates an unknown AI provider name.
	ErrInvalidProvider = errors.New("invalid AI provider")
)
