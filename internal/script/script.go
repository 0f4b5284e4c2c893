package script

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RundownEntry is one segment in the episode rundown. DurationEstimate is
// advisory only and never cross-checked against actual word counts.
type RundownEntry struct {
	Segment          string `json:"segment"`
	DurationEstimate int    `json:"duration_estimate"`
}

// DialogueLine is one spoken line. Text may embed citation markers of the
// form "[src: N]" where N is a story id; Sources lists the ids the line
// draws on. Segment is one of cold_open, story_<k>, or kicker.
type DialogueLine struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
	Segment string `json:"segment"`
	Sources []int  `json:"sources"`
}

// Script is the validated output of script generation. It is immutable
// after validation succeeds and handed to rendering unmodified.
type Script struct {
	Rundown    []RundownEntry `json:"rundown"`
	Dialogue   []DialogueLine `json:"dialogue"`
	Disclaimer string         `json:"disclaimer,omitempty"`
}

var citationRe = regexp.MustCompile(`\[src:\s*\d+\]`)

// StripCitations removes "[src: N]" markers from spoken text so citation
// markup never reaches the synthesizer or inflates word counts.
func StripCitations(text string) string {
	return strings.TrimSpace(citationRe.ReplaceAllString(text, ""))
}

var citationIDRe = regexp.MustCompile(`\[src:\s*(\d+)\]`)

// CitedSources extracts the story ids referenced by markers in text.
func CitedSources(text string) []int {
	matches := citationIDRe.FindAllStringSubmatch(text, -1)
	var ids []int
	for _, m := range matches {
		id, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// SpokenWordCount counts the words in text after stripping citation markers.
func SpokenWordCount(text string) int {
	return len(strings.Fields(StripCitations(text)))
}

// TotalWordCount sums the citation-stripped word counts of all lines.
func (s *Script) TotalWordCount() int {
	total := 0
	for _, line := range s.Dialogue {
		total += SpokenWordCount(line.Text)
	}
	return total
}

func Save(s *Script, path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal script: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write script to %s: %w", path, err)
	}
	return nil
}

func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script from %s: %w", path, err)
	}
	var s Script
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script from %s: %w", path, err)
	}
	if len(s.Dialogue) == 0 {
		return nil, fmt.Errorf("script %s has no dialogue", path)
	}
	return &s, nil
}

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	segmentStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	speakerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// FormatForDisplay renders the script for the terminal: rundown first, then
// dialogue grouped under segment headers.
func (s *Script) FormatForDisplay() string {
	var b strings.Builder
	rule := strings.Repeat("=", 60)

	b.WriteString(rule + "\n")
	b.WriteString(headerStyle.Render("TWO-HOST NEWSCAST SCRIPT") + "\n")
	b.WriteString(rule + "\n\n")

	if s.Disclaimer != "" {
		b.WriteString(fmt.Sprintf("DISCLAIMER: %s\n\n", s.Disclaimer))
	}

	b.WriteString("RUNDOWN:\n")
	for _, seg := range s.Rundown {
		b.WriteString(fmt.Sprintf("  - %s: ~%ds\n", seg.Segment, seg.DurationEstimate))
	}
	b.WriteString("\n")

	currentSegment := ""
	for _, line := range s.Dialogue {
		if line.Segment != currentSegment {
			label := strings.ToUpper(strings.ReplaceAll(line.Segment, "_", " "))
			b.WriteString("\n" + segmentStyle.Render(fmt.Sprintf("[[ %s ]]", label)) + "\n\n")
			currentSegment = line.Segment
		}
		b.WriteString(fmt.Sprintf("%s: %s\n", speakerStyle.Render(line.Speaker), line.Text))
	}

	b.WriteString("\n" + rule + "\n")
	return b.String()
}
