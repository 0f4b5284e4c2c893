package script

import (
	"encoding/json"
	"strings"
)

// RawScript is the decoded-but-unvalidated model reply. Pointer fields
// distinguish a missing key from an empty value so the validator can report
// exactly which key is absent.
type RawScript struct {
	Rundown    *[]RundownEntry `json:"rundown"`
	Dialogue   *[]RawLine      `json:"dialogue"`
	Disclaimer string          `json:"disclaimer"`
}

// RawLine mirrors DialogueLine with presence tracking per field.
type RawLine struct {
	Speaker *string `json:"speaker"`
	Text    *string `json:"text"`
	Segment *string `json:"segment"`
	Sources *[]int  `json:"sources"`
}

// ParseResponse recovers the JSON payload from a raw model reply and
// decodes it. Exactly two wrapping styles are recognized: bare JSON and a
// code-fenced block (fence marker plus optional language tag on the first
// line). Anything else is a hard parse failure, with the decode error
// preserved for diagnostics.
func ParseResponse(raw string) (*RawScript, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, parseErr("received empty response from dialogue model", nil)
	}

	text := strings.TrimSpace(raw)
	text = stripFences(text)

	var rs RawScript
	if err := json.Unmarshal([]byte(text), &rs); err != nil {
		return nil, parseErr("failed to parse response as JSON", err)
	}
	return &rs, nil
}

// stripFences removes a surrounding markdown code fence, keeping only the
// interior. Input that is not fenced is returned unchanged.
func stripFences(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	firstNewline := strings.Index(text, "\n")
	lastFence := strings.LastIndex(text, "```")
	if firstNewline > 0 && lastFence > firstNewline {
		return strings.TrimSpace(text[firstNewline+1 : lastFence])
	}
	return text
}
