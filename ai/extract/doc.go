// Package extract recovers usable content from raw LLM output.
//
// Models are instructed to return bare JSON (or bare prose, for chat),
// but in practice wrap it in markdown fences, lead with acknowledgment
// text, or emit slightly malformed JSON. Structured and PlainText each
// run a fixed fallback chain over the raw text and stop at the first
// success. Neither ever panics; Structured reports failure with a false
// second result and PlainText degrades to the trimmed original text.
//
// The heuristics here are deliberately approximate. They recover the
// documented failure modes and nothing more; text the chain cannot
// recover is reported as unparseable rather than guessed at.
package extract
