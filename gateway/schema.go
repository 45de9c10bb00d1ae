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


package gateway

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// The schemas below serve double duty: they are embedded into the
// prompts so the model knows the expected shape, and extracted payloads
// are validated against them before anything is unmarshaled into
// domain types.

const resumeSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "name": {"type": "string"},
    "email": {"type": "string"},
    "phone": {"type": "string"},
    "location": {"type": "string"},
    "skills": {"type": "array", "items": {"type": "string"}},
    "experience": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "company": {"type": "string"},
          "title": {"type": "string"},
          "duration": {"type": "string"},
          "highlights": {"type": "array", "items": {"type": "string"}}
        },
        "required": ["company", "title"]
      }
    },
    "education": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "institution": {"type": "string"},
          "degree": {"type": "string"},
          "year": {"type": "string"}
        },
        "required": ["institution"]
      }
    },
    "certifications": {"type": "array", "items": {"type": "string"}}
  },
  "required": ["skills"]
}`

const postingSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "company": {"type": "string"},
    "role": {"type": "string"},
    "location": {"type": "string"},
    "workType": {"type": "string", "enum": ["onsite", "hybrid", "remote", ""]},
    "requiredSkills": {"type": "array", "items": {"type": "string"}},
    "niceToHaveSkills": {"type": "array", "items": {"type": "string"}},
    "responsibilities": {"type": "array", "items": {"type": "string"}},
    "experienceYears": {"type": "string"},
    "salary": {"type": "string"}
  },
  "required": ["role", "requiredSkills"]
}`

const gapSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "matchScore": {"type": "integer", "minimum": 0, "maximum": 100},
    "strengths": {"type": "array", "items": {"type": "string"}},
    "gaps": {"type": "array", "items": {"type": "string"}},
    "recommendations": {"type": "array", "items": {"type": "string"}},
    "summary": {"type": "string"}
  },
  "required": ["matchScore", "strengths", "gaps"]
}`

const summarySchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "summary": {"type": "string", "minLength": 1}
  },
  "required": ["summary"]
}`

const feedbackSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "overallScore": {"type": "integer", "minimum": 0, "maximum": 100},
    "strengths": {"type": "array", "items": {"type": "string"}},
    "improvements": {"type": "array", "items": {"type": "string"}},
    "summary": {"type": "string"}
  },
  "required": ["overallScore", "improvements"]
}`

// validatePayload checks an extracted JSON payload against a schema.
func validatePayload(schema string, payload json.RawMessage) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewBytesLoader(payload),
	)
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if !result.Valid() {
		errs := result.Errors()
		if len(errs) > 0 {
			return fmt.Errorf("schema violation: %s", errs[0].String())
		}
		return fmt.Errorf("schema violation")
	}
	return nil
}
