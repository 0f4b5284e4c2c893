package script

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestStripCitations(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"single marker", "They raised $100M [src: 0]", "They raised $100M"},
		{"marker mid-sentence keeps words", "Rates rose [src: 2] again.", "Rates rose  again."},
		{"multiple markers", "Fast [src: 0] and cheap [src: 1].", "Fast  and cheap ."},
		{"no space after colon", "It shipped [src:3] today", "It shipped  today"},
		{"no markers", "Nothing cited here.", "Nothing cited here."},
		{"marker only", "[src: 7]", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripCitations(tt.input); got != tt.want {
				t.Errorf("StripCitations(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCitedSources(t *testing.T) {
	tests := []struct {
		input string
		want  []int
	}{
		{"They raised $100M [src: 0] and grew [src: 12].", []int{0, 12}},
		{"Same story twice [src: 1] really [src: 1].", []int{1, 1}},
		{"No citations at all.", nil},
		{"Malformed [src: abc] is ignored", nil},
	}

	for _, tt := range tests {
		if got := CitedSources(tt.input); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("CitedSources(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestSpokenWordCount(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"They raised $100M [src: 0]", 3},
		{"Dude.", 1},
		{"", 0},
		{"[src: 0]", 0},
	}

	for _, tt := range tests {
		if got := SpokenWordCount(tt.input); got != tt.want {
			t.Errorf("SpokenWordCount(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestScriptSaveLoad(t *testing.T) {
	original := &Script{
		Rundown: []RundownEntry{
			{Segment: "cold_open", DurationEstimate: 50},
			{Segment: "story_0", DurationEstimate: 120},
			{Segment: "kicker", DurationEstimate: 35},
		},
		Dialogue: []DialogueLine{
			{Speaker: "Ben", Text: "Yo!", Segment: "cold_open", Sources: []int{}},
			{Speaker: "Jerry", Text: "Big news today [src: 0].", Segment: "story_0", Sources: []int{0}},
		},
	}

	path := filepath.Join(t.TempDir(), "script.json")
	if err := Save(original, path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(loaded.Rundown, original.Rundown) {
		t.Errorf("rundown changed across save/load: %+v", loaded.Rundown)
	}
	if !reflect.DeepEqual(loaded.Dialogue, original.Dialogue) {
		t.Errorf("dialogue changed across save/load: %+v", loaded.Dialogue)
	}
}

func TestLoadRejectsEmptyDialogue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := Save(&Script{Rundown: []RundownEntry{{Segment: "cold_open"}}}, path); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error loading script with no dialogue")
	}
}

func TestFormatForDisplayGroupsSegments(t *testing.T) {
	s := &Script{
		Rundown: []RundownEntry{
			{Segment: "cold_open", DurationEstimate: 50},
			{Segment: "kicker", DurationEstimate: 35},
		},
		Dialogue: []DialogueLine{
			{Speaker: "Ben", Text: "Yo!", Segment: "cold_open", Sources: []int{}},
			{Speaker: "Jerry", Text: "Hey.", Segment: "cold_open", Sources: []int{}},
			{Speaker: "Ben", Text: "That's the show.", Segment: "kicker", Sources: []int{}},
		},
		Disclaimer: "AI-generated content.",
	}

	out := s.FormatForDisplay()

	if !strings.Contains(out, "DISCLAIMER: AI-generated content.") {
		t.Error("disclaimer missing from display output")
	}
	if !strings.Contains(out, "cold_open: ~50s") {
		t.Error("rundown entry missing from display output")
	}
	// each segment header appears once even with consecutive lines
	if got := strings.Count(out, "[[ COLD OPEN ]]"); got != 1 {
		t.Errorf("cold open header rendered %d times, want 1", got)
	}
	if !strings.Contains(out, "[[ KICKER ]]") {
		t.Error("kicker header missing")
	}
}
