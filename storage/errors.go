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

import "errors"

var (
	// ErrReconnectNeeded indicates the data directory is gone or no
	// longer accessible. Recoverable by re-granting access; the
	// in-memory Document is not lost.
	ErrReconnectNeeded = errors.New("storage reconnect needed")

	// ErrStorageClosed indicates the backend has been closed.
	ErrStorageClosed = errors.New("storage is closed")

	// ErrCorruptData indicates a persisted category could not be decoded.
	ErrCorruptData = errors.New("corrupt stored data")
)
