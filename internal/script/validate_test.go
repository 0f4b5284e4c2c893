package script

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/DannyChee1/Two-Host-AI-Newscast/internal/news"
)

func strPtr(s string) *string         { return &s }
func intsPtr(v []int) *[]int          { return &v }
func linesPtr(v []RawLine) *[]RawLine { return &v }

func testStories(n int) []news.Story {
	var stories []news.Story
	for i := 0; i < n; i++ {
		stories = append(stories, news.Story{
			ID:      i,
			Title:   fmt.Sprintf("Story %d", i),
			URL:     fmt.Sprintf("https://example.com/%d", i),
			Source:  "Example Wire",
			Summary: "Something happened.",
		})
	}
	return stories
}

func rawLine(speaker, text, segment string, sources []int) RawLine {
	return RawLine{
		Speaker: strPtr(speaker),
		Text:    strPtr(text),
		Segment: strPtr(segment),
		Sources: intsPtr(sources),
	}
}

func fullRundown() *[]RundownEntry {
	return &[]RundownEntry{
		{Segment: "cold_open", DurationEstimate: 50},
		{Segment: "story_0", DurationEstimate: 120},
		{Segment: "kicker", DurationEstimate: 35},
	}
}

// wordsLine builds a line whose citation-stripped text has exactly n words.
func wordsLine(speaker string, n int, segment string) RawLine {
	return rawLine(speaker, strings.Repeat("word ", n), segment, []int{})
}

func warningsByCategory(report *Report, category string) []Warning {
	var found []Warning
	for _, w := range report.Warnings {
		if w.Category == category {
			found = append(found, w)
		}
	}
	return found
}

func TestValidateMissingTopLevelKeys(t *testing.T) {
	tests := []struct {
		name string
		raw  RawScript
		want string
	}{
		{
			name: "missing dialogue named regardless of other defects",
			raw:  RawScript{Rundown: &[]RundownEntry{}},
			want: "dialogue",
		},
		{
			name: "missing rundown",
			raw:  RawScript{Dialogue: linesPtr([]RawLine{})},
			want: "rundown",
		},
		{
			name: "missing both reports rundown first",
			raw:  RawScript{},
			want: "rundown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Validate(&tt.raw, testStories(1), 0)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should name %q", err, tt.want)
			}
			var genErr *GenerationError
			if !errors.As(err, &genErr) || genErr.Kind != ErrKindStructure {
				t.Errorf("expected structure-kind GenerationError, got %v", err)
			}
		})
	}
}

func TestValidateRequiredSegments(t *testing.T) {
	raw := RawScript{
		Rundown:  &[]RundownEntry{{Segment: "story_0", DurationEstimate: 120}},
		Dialogue: linesPtr([]RawLine{rawLine("Ben", "Hi.", "story_0", []int{})}),
	}

	_, _, err := Validate(&raw, testStories(1), 0)
	if err == nil || !strings.Contains(err.Error(), "cold_open") {
		t.Errorf("expected cold_open error, got %v", err)
	}

	*raw.Rundown = append(*raw.Rundown, RundownEntry{Segment: "cold_open", DurationEstimate: 50})
	_, _, err = Validate(&raw, testStories(1), 0)
	if err == nil || !strings.Contains(err.Error(), "kicker") {
		t.Errorf("expected kicker error, got %v", err)
	}
}

func TestValidateLineFieldPresence(t *testing.T) {
	base := func() []RawLine {
		return []RawLine{
			rawLine("Ben", "Hello there.", "cold_open", []int{}),
			rawLine("Jerry", "Hey.", "cold_open", []int{}),
		}
	}

	tests := []struct {
		name   string
		mutate func(*RawLine)
		field  string
	}{
		{"missing speaker", func(l *RawLine) { l.Speaker = nil }, "speaker"},
		{"missing text", func(l *RawLine) { l.Text = nil }, "text"},
		{"missing segment", func(l *RawLine) { l.Segment = nil }, "segment"},
		{"missing sources", func(l *RawLine) { l.Sources = nil }, "sources"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := base()
			tt.mutate(&lines[1])
			raw := RawScript{Rundown: fullRundown(), Dialogue: linesPtr(lines)}

			_, _, err := Validate(&raw, testStories(1), 0)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.field) || !strings.Contains(err.Error(), "line 1") {
				t.Errorf("error should name field and line index: %v", err)
			}
		})
	}
}

func TestValidateWordCountBanding(t *testing.T) {
	tests := []struct {
		words        int
		wantWarnings int
		wantSubstr   string
	}{
		{69, 1, "too short"},
		{70, 0, ""},
		{100, 0, ""},
		{130, 0, ""},
		{131, 1, "too long"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d words", tt.words), func(t *testing.T) {
			raw := RawScript{
				Rundown:  fullRundown(),
				Dialogue: linesPtr([]RawLine{wordsLine("Ben", tt.words, "cold_open")}),
			}
			_, report, err := Validate(&raw, testStories(1), 100)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got := warningsByCategory(report, "length")
			if len(got) != tt.wantWarnings {
				t.Fatalf("got %d length warnings, want %d: %v", len(got), tt.wantWarnings, got)
			}
			if tt.wantSubstr != "" && !strings.Contains(got[0].Message, tt.wantSubstr) {
				t.Errorf("warning %q should contain %q", got[0].Message, tt.wantSubstr)
			}
		})
	}
}

func TestValidateCitationStrippingInWordCount(t *testing.T) {
	// "Rates rose [src: 2] again." is 3 spoken words, not 5.
	line := rawLine("Ben", "Rates rose [src: 2] again.", "cold_open", []int{2})
	raw := RawScript{Rundown: fullRundown(), Dialogue: linesPtr([]RawLine{line})}

	s, _, err := Validate(&raw, testStories(3), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := s.TotalWordCount(); got != 3 {
		t.Errorf("TotalWordCount() = %d, want 3", got)
	}
	if got := SpokenWordCount("Rates rose [src: 2] again."); got != 3 {
		t.Errorf("SpokenWordCount() = %d, want 3", got)
	}
}

func TestValidateDegenerateTargetSkipsBanding(t *testing.T) {
	raw := RawScript{
		Rundown:  fullRundown(),
		Dialogue: linesPtr([]RawLine{wordsLine("Ben", 3, "cold_open")}),
	}
	_, report, err := Validate(&raw, testStories(1), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := warningsByCategory(report, "length"); len(got) != 0 {
		t.Errorf("no length warnings expected with non-positive target, got %v", got)
	}
}

func TestValidateExchangeCountWarnings(t *testing.T) {
	makeRaw := func(lines int) *RawScript {
		var dialogue []RawLine
		for i := 0; i < lines; i++ {
			dialogue = append(dialogue, wordsLine("Ben", 5, "story_0"))
		}
		return &RawScript{Rundown: fullRundown(), Dialogue: linesPtr(dialogue)}
	}

	t.Run("below per-story minimum", func(t *testing.T) {
		_, report, err := Validate(makeRaw(30), testStories(3), 0)
		if err != nil {
			t.Fatal(err)
		}
		got := warningsByCategory(report, "exchanges")
		if len(got) != 1 || !strings.Contains(got[0].Message, "conversational flow") {
			t.Errorf("expected per-story warning, got %v", got)
		}
	})

	t.Run("above per-story minimum but below absolute floor", func(t *testing.T) {
		_, report, err := Validate(makeRaw(16), testStories(1), 0)
		if err != nil {
			t.Fatal(err)
		}
		got := warningsByCategory(report, "exchanges")
		if len(got) != 1 || !strings.Contains(got[0].Message, "conversational enough") {
			t.Errorf("expected absolute-floor warning, got %v", got)
		}
	})

	t.Run("enough lines", func(t *testing.T) {
		_, report, err := Validate(makeRaw(45), testStories(3), 0)
		if err != nil {
			t.Fatal(err)
		}
		if got := warningsByCategory(report, "exchanges"); len(got) != 0 {
			t.Errorf("expected no exchange warnings, got %v", got)
		}
	})
}

func TestValidateMissingCitationsWarns(t *testing.T) {
	raw := RawScript{
		Rundown:  fullRundown(),
		Dialogue: linesPtr([]RawLine{wordsLine("Ben", 10, "cold_open")}),
	}
	_, report, err := Validate(&raw, testStories(1), 0)
	if err != nil {
		t.Fatal(err)
	}
	if got := warningsByCategory(report, "citations"); len(got) != 1 {
		t.Errorf("expected citation warning, got %v", got)
	}
}

func TestValidateSourceConsistency(t *testing.T) {
	t.Run("marker without listing warns", func(t *testing.T) {
		line := rawLine("Ben", "Rates rose [src: 5] again.", "cold_open", []int{2})
		raw := RawScript{Rundown: fullRundown(), Dialogue: linesPtr([]RawLine{line})}
		_, report, err := Validate(&raw, testStories(6), 0)
		if err != nil {
			t.Fatal(err)
		}
		got := warningsByCategory(report, "consistency")
		if len(got) != 2 {
			t.Fatalf("expected drift both ways to warn, got %v", got)
		}
	})

	t.Run("consistent line is silent", func(t *testing.T) {
		line := rawLine("Ben", "Rates rose [src: 2] again.", "cold_open", []int{2})
		raw := RawScript{Rundown: fullRundown(), Dialogue: linesPtr([]RawLine{line})}
		_, report, err := Validate(&raw, testStories(3), 0)
		if err != nil {
			t.Fatal(err)
		}
		if got := warningsByCategory(report, "consistency"); len(got) != 0 {
			t.Errorf("expected no consistency warnings, got %v", got)
		}
	})
}

// Full-episode scenario: 3 stories, 5-minute target (650-word budget), a
// conversational reply with 45 lines and ~810 spoken words passes with no
// warnings at all.
func TestValidateFullEpisodeCleanPass(t *testing.T) {
	stories := testStories(3)
	targetWords := TargetWordCount(5)
	if targetWords != 650 {
		t.Fatalf("TargetWordCount(5) = %d, want 650", targetWords)
	}

	rundown := []RundownEntry{
		{Segment: "cold_open", DurationEstimate: 50},
		{Segment: "story_0", DurationEstimate: 90},
		{Segment: "story_1", DurationEstimate: 90},
		{Segment: "story_2", DurationEstimate: 90},
		{Segment: "kicker", DurationEstimate: 35},
	}

	var dialogue []RawLine
	speakers := []string{"Ben", "Jerry"}
	for i := 0; i < 45; i++ {
		speaker := speakers[i%2]
		segment := "story_" + string(rune('0'+(i/15)%3))
		storyID := (i / 15) % 3
		text := fmt.Sprintf("%shere is the detail on that [src: %d].",
			strings.Repeat("word ", 11), storyID)
		dialogue = append(dialogue, rawLine(speaker, text, segment, []int{storyID}))
	}

	raw := RawScript{Rundown: &rundown, Dialogue: linesPtr(dialogue)}

	s, report, err := Validate(&raw, stories, targetWords)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Warnings) != 0 {
		t.Fatalf("expected zero warnings, got %v", report.Warnings)
	}
	if len(s.Dialogue) != 45 {
		t.Errorf("dialogue length = %d", len(s.Dialogue))
	}
	if total := s.TotalWordCount(); total < 650 || total > 845 {
		t.Errorf("total word count %d outside clean band", total)
	}
}
