package script

import (
	"fmt"

	"github.com/DannyChee1/Two-Host-AI-Newscast/internal/news"
)

// Word-count tolerance band and exchange-count thresholds for the advisory
// checks. A script outside the band is flagged, never rejected.
const (
	wordRatioLow     = 0.7
	wordRatioHigh    = 1.3
	minLinesPerStory = 15
	minLinesAbsolute = 20
)

// Warning is an advisory quality finding. Categories: "length",
// "exchanges", "citations", "consistency".
type Warning struct {
	Category string
	Message  string
}

// Report collects the non-fatal findings of a validation pass. The caller
// decides whether warnings block acceptance; this package never retries or
// repairs on its own.
type Report struct {
	Warnings []Warning
}

func (r *Report) warn(category, format string, args ...any) {
	r.Warnings = append(r.Warnings, Warning{Category: category, Message: fmt.Sprintf(format, args...)})
}

// Validate applies the structural checks in order, failing fast on the
// first violation, then collects advisory warnings. On success it returns
// the fully-typed Script: every line is guaranteed to carry speaker, text,
// segment, and sources. targetWords <= 0 disables the word-count band.
func Validate(raw *RawScript, stories []news.Story, targetWords int) (*Script, *Report, error) {
	if raw.Rundown == nil {
		return nil, nil, structureErr("script missing 'rundown' key")
	}
	if raw.Dialogue == nil {
		return nil, nil, structureErr("script missing 'dialogue' key")
	}

	segments := make(map[string]bool)
	for _, entry := range *raw.Rundown {
		segments[entry.Segment] = true
	}
	if !segments["cold_open"] {
		return nil, nil, structureErr("script missing cold_open segment")
	}
	if !segments["kicker"] {
		return nil, nil, structureErr("script missing kicker segment")
	}

	dialogue := make([]DialogueLine, 0, len(*raw.Dialogue))
	for idx, line := range *raw.Dialogue {
		switch {
		case line.Speaker == nil:
			return nil, nil, structureErr("dialogue line %d missing 'speaker'", idx)
		case line.Text == nil:
			return nil, nil, structureErr("dialogue line %d missing 'text'", idx)
		case line.Segment == nil:
			return nil, nil, structureErr("dialogue line %d missing 'segment'", idx)
		case line.Sources == nil:
			return nil, nil, structureErr("dialogue line %d missing 'sources'", idx)
		}
		dialogue = append(dialogue, DialogueLine{
			Speaker: *line.Speaker,
			Text:    *line.Text,
			Segment: *line.Segment,
			Sources: *line.Sources,
		})
	}

	s := &Script{
		Rundown:    *raw.Rundown,
		Dialogue:   dialogue,
		Disclaimer: raw.Disclaimer,
	}

	report := &Report{}
	checkWordBudget(s, targetWords, report)
	checkExchangeCount(s, len(stories), report)
	checkCitations(s, report)
	checkSourceConsistency(s, report)

	return s, report, nil
}

func checkWordBudget(s *Script, targetWords int, report *Report) {
	if targetWords <= 0 {
		return
	}
	total := s.TotalWordCount()
	ratio := float64(total) / float64(targetWords)
	switch {
	case ratio < wordRatioLow:
		report.warn("length", "script is too short: %d words of a %d-word target (%.0f%%)", total, targetWords, ratio*100)
	case ratio > wordRatioHigh:
		report.warn("length", "script is too long: %d words of a %d-word target (%.0f%%)", total, targetWords, ratio*100)
	}
}

func checkExchangeCount(s *Script, storyCount int, report *Report) {
	lines := len(s.Dialogue)
	if minExpected := storyCount * minLinesPerStory; lines < minExpected {
		report.warn("exchanges", "script has only %d dialogue lines (expected ~%d+ for conversational flow)", lines, minExpected)
	} else if lines < minLinesAbsolute {
		report.warn("exchanges", "script may not be conversational enough (%d lines)", lines)
	}
}

func checkCitations(s *Script, report *Report) {
	for _, line := range s.Dialogue {
		if len(CitedSources(line.Text)) > 0 {
			return
		}
	}
	report.warn("citations", "script may be missing source annotations")
}

// checkSourceConsistency flags lines whose inline markers and sources list
// disagree. Advisory only: scripts with drifting annotations still render.
func checkSourceConsistency(s *Script, report *Report) {
	for idx, line := range s.Dialogue {
		cited := intSet(CitedSources(line.Text))
		listed := intSet(line.Sources)

		for id := range cited {
			if !listed[id] {
				report.warn("consistency", "dialogue line %d cites story %d in text but not in its sources list", idx, id)
			}
		}
		for id := range listed {
			if !cited[id] {
				report.warn("consistency", "dialogue line %d lists story %d in sources without a [src: %d] marker", idx, id, id)
			}
		}
	}
}

func intSet(ids []int) map[int]bool {
	set := make(map[int]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
