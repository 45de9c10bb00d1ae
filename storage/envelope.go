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
	"fmt"
	"time"

	"github.com/poiesic/jobtrail/core"
)

// FormatVersion is stamped into every persisted file.
const FormatVersion = 1

// JobsFile is the on-disk shape of the applications category.
type JobsFile struct {
	Version   int                   `json:"version"`
	CreatedAt time.Time             `json:"createdAt"`
	UpdatedAt time.Time             `json:"updatedAt"`
	Items     []core.JobApplication `json:"items"`
}

// ContactsFile is the on-disk shape of the contacts category.
type ContactsFile struct {
	Version   int            `json:"version"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	Items     []core.Contact `json:"items"`
}

// ResumeFile is the on-disk shape of the resume category. Content is
// the raw source text; ParsedData is the structured resume once the AI
// has parsed it.
type ResumeFile struct {
	Version    int          `json:"version"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
	FileName   string       `json:"fileName,omitempty"`
	Content    string       `json:"content,omitempty"`
	ParsedData *core.Resume `json:"parsedData"`
	UploadedAt time.Time    `json:"uploadedAt,omitzero"`
}

// SettingsFile is the on-disk shape of the settings category.
type SettingsFile struct {
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	core.Settings
}

// CategoryFileName maps a category to its file name in the data
// directory.
func CategoryFileName(cat core.Category) string {
	switch cat {
	case core.CategoryApplications:
		return "jobs.json"
	case core.CategoryContacts:
		return "contacts.json"
	case core.CategoryResume:
		return "resume.json"
	case core.CategorySettings:
		return "settings.json"
	}
	return ""
}

// EncodeCategory renders one category of doc into its persisted file
// form, pretty-printed. createdAt is carried over from the existing
// file; the updatedAt stamp is always fresh.
func EncodeCategory(cat core.Category, doc *core.Document, createdAt time.Time) ([]byte, error) {
	now := time.Now().UTC()
	if createdAt.IsZero() {
		createdAt = now
	}

	var v any
	switch cat {
	case core.CategoryApplications:
		items := doc.Applications
		if items == nil {
			items = []core.JobApplication{}
		}
		v = JobsFile{Version: FormatVersion, CreatedAt: createdAt, UpdatedAt: now, Items: items}
	case core.CategoryContacts:
		items := doc.Contacts
		if items == nil {
			items = []core.Contact{}
		}
		v = ContactsFile{Version: FormatVersion, CreatedAt: createdAt, UpdatedAt: now, Items: items}
	case core.CategoryResume:
		f := ResumeFile{Version: FormatVersion, CreatedAt: createdAt, UpdatedAt: now, ParsedData: doc.Resume}
		if doc.Resume != nil {
			f.FileName = doc.Resume.FileName
			f.Content = doc.Resume.SourceText
			f.UploadedAt = doc.Resume.ParsedAt
		}
		v = f
	case core.CategorySettings:
		v = SettingsFile{Version: FormatVersion, CreatedAt: createdAt, UpdatedAt: now, Settings: doc.Settings}
	default:
		return nil, fmt.Errorf("%w: %q", core.ErrInvalidCategory, cat)
	}

	return json.MarshalIndent(v, "", "  ")
}

// DecodeCategory parses one category's file contents into doc and
// returns the file's createdAt stamp.
func DecodeCategory(cat core.Category, data []byte, doc *core.Document) (time.Time, error) {
	switch cat {
	case core.CategoryApplications:
		var f JobsFile
		if err := json.Unmarshal(data, &f); err != nil {
			return time.Time{}, fmt.Errorf("%w: %s: %v", ErrCorruptData, cat, err)
		}
		doc.Applications = f.Items
		if doc.Applications == nil {
			doc.Applications = []core.JobApplication{}
		}
		return f.CreatedAt, nil
	case core.CategoryContacts:
		var f ContactsFile
		if err := json.Unmarshal(data, &f); err != nil {
			return time.Time{}, fmt.Errorf("%w: %s: %v", ErrCorruptData, cat, err)
		}
		doc.Contacts = f.Items
		if doc.Contacts == nil {
			doc.Contacts = []core.Contact{}
		}
		return f.CreatedAt, nil
	case core.CategoryResume:
		var f ResumeFile
		if err := json.Unmarshal(data, &f); err != nil {
			return time.Time{}, fmt.Errorf("%w: %s: %v", ErrCorruptData, cat, err)
		}
		doc.Resume = f.ParsedData
		if doc.Resume == nil && f.Content != "" {
			// Raw text was saved before any parse succeeded.
			doc.Resume = &core.Resume{FileName: f.FileName, SourceText: f.Content, ParsedAt: f.UploadedAt}
		}
		return f.CreatedAt, nil
	case core.CategorySettings:
		var f SettingsFile
		if err := json.Unmarshal(data, &f); err != nil {
			return time.Time{}, fmt.Errorf("%w: %s: %v", ErrCorruptData, cat, err)
		}
		doc.Settings = f.Settings
		return f.CreatedAt, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", core.ErrInvalidCategory, cat)
}
