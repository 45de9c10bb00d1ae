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


package extract

import (
	"encoding/json"
	"strings"
)

// replyKeys are conventional field names models use when they wrap a
// chat reply in JSON despite being told not to. Checked in order.
var replyKeys = []string{"response", "reply", "answer", "message", "content", "text"}

// minReplyLength is the shortest string accepted by the plain-text
// recovery heuristics. Shorter top-level values are usually metadata
// (a company name, a status word), not the actual reply.
const minReplyLength = 20

// Structured turns raw model text into the JSON value it contains, if
// any. The recovery chain runs in a fixed order and stops at the first
// success:
//
//  1. parse the trimmed text directly
//  2. parse the contents of a fenced code block, if one is present
//  3. carry the fence contents (not the original text) forward
//  4. parse the substring from the first '{' to the last '}' inclusive
//
// Each parse attempt also retries once with common LLM formatting
// damage repaired. If everything fails the second result is false;
// Structured never panics and never returns a partial value.
func Structured(raw string) (json.RawMessage, bool) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return nil, false
	}

	if v, ok := parseValue(text); ok {
		return v, true
	}

	if inner, found := fencedBlock(text); found {
		if v, ok := parseValue(inner); ok {
			return v, true
		}
		// The fence marked where the model thought the JSON was.
		// Brace recovery runs on its contents, not the whole text.
		text = inner
	}

	open := strings.IndexByte(text, '{')
	close := strings.LastIndexByte(text, '}')
	if open >= 0 && close > open {
		if v, ok := parseValue(text[open : close+1]); ok {
			return v, true
		}
	}

	return nil, false
}

// PlainText recovers a conversational reply from raw model text. It is
// used for the chat operation, which asks for prose but sometimes gets
// JSON anyway. The result is never empty while the input is not: the
// worst case is the original text, trimmed.
func PlainText(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return text
	}

	// Ordinary prose passes through untouched.
	if !strings.HasPrefix(text, "{") && !strings.HasPrefix(text, "```") {
		return text
	}

	if v, ok := Structured(text); ok {
		if reply, ok := replyFromObject(v); ok {
			return stripFences(reply)
		}
		return stripFences(text)
	}

	// Malformed JSON-ish text: take everything after the first colon in
	// the head of the string and shed the JSON punctuation around it.
	if reply, ok := afterFirstColon(text); ok {
		return stripFences(reply)
	}

	return stripFences(text)
}

// parseValue attempts to parse s as a JSON object or array, retrying
// once with repaired text. Scalars are rejected: the callers of
// Structured always expect a structured value, and a bare quoted
// string parsing "successfully" would mask a malformed response.
func parseValue(s string) (json.RawMessage, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}
	if !strings.HasPrefix(s, "{") && !strings.HasPrefix(s, "[") {
		return nil, false
	}
	var v any
	if err := json.Unmarshal([]byte(s), &v); err == nil {
		return json.RawMessage(s), true
	}
	repaired := repairJSON(s)
	if repaired != s {
		if err := json.Unmarshal([]byte(repaired), &v); err == nil {
			return json.RawMessage(repaired), true
		}
	}
	return nil, false
}

// fencedBlock returns the contents of the first triple-backtick block
// in s, with an optional language tag stripped.
func fencedBlock(s string) (string, bool) {
	start := strings.Index(s, "```")
	if start < 0 {
		return "", false
	}
	rest := s[start+3:]

	// Optional language tag runs to the end of the opening line.
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		tag := strings.TrimSpace(rest[:nl])
		if tag == "" || isLanguageTag(tag) {
			rest = rest[nl+1:]
		}
	}

	end := strings.Index(rest, "```")
	if end < 0 {
		// Unterminated fence: treat the remainder as the block.
		return strings.TrimSpace(rest), true
	}
	return strings.TrimSpace(rest[:end]), true
}

// isLanguageTag reports whether s looks like a fence language tag
// rather than the first line of the block itself.
func isLanguageTag(s string) bool {
	if len(s) > 20 {
		return false
	}
	for _, r := range s {
		if !isLetter(r) {
			return false
		}
	}
	return true
}

// replyFromObject extracts a chat reply from a parsed JSON object.
// Known reply keys win; otherwise the longest string value beats the
// length floor, on the assumption that the real reply is the longest
// field and short values are metadata.
func replyFromObject(v json.RawMessage) (string, bool) {
	var obj map[string]any
	if err := json.Unmarshal(v, &obj); err != nil {
		return "", false
	}

	for _, key := range replyKeys {
		if s, ok := obj[key].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s), true
		}
	}

	longest := ""
	for _, val := range obj {
		if s, ok := val.(string); ok && len(s) > len(longest) {
			longest = s
		}
	}
	if len(longest) > minReplyLength {
		return strings.TrimSpace(longest), true
	}
	return "", false
}

// afterFirstColon implements the narrow last-resort heuristic for
// malformed JSON-like replies: everything after the first colon within
// the first 50 characters, stripped of surrounding quote and brace
// punctuation, accepted only if it is long enough to be a real reply.
func afterFirstColon(s string) (string, bool) {
	head := s
	if len(head) > 50 {
		head = head[:50]
	}
	colon := strings.IndexByte(head, ':')
	if colon < 0 {
		return "", false
	}
	candidate := strings.TrimSpace(s[colon+1:])
	candidate = strings.Trim(candidate, "\"'{}")
	candidate = strings.TrimSpace(candidate)
	if len(candidate) > minReplyLength {
		return candidate, true
	}
	return "", false
}

// stripFences removes leading and trailing fence markers from s.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
