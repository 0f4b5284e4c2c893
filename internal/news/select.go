package news

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
)

// minSummaryLength is the shortest description/content worth using as a
// summary before falling back to the next candidate.
const minSummaryLength = 20

var (
	truncationMarkerRe = regexp.MustCompile(`\[\+\d+\s+chars?\]`)
	sentenceEndRe      = regexp.MustCompile(`[.!?]\s+`)
)

// ValidationError reports invalid story input detected before any external
// call is made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// SelectStories sorts deduplicated articles by publication time descending
// (articles with no timestamp sort last), truncates to max, and maps each to
// a Story with a zero-based sequential id in output order.
func SelectStories(articles []Article, max int) []Story {
	sorted := make([]Article, len(articles))
	copy(sorted, articles)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PublishedAt.After(sorted[j].PublishedAt)
	})

	if max > 0 && len(sorted) > max {
		sorted = sorted[:max]
	}

	stories := make([]Story, 0, len(sorted))
	for idx, a := range sorted {
		title := a.Title
		if title == "" {
			title = "Untitled"
		}
		source := a.Source
		if source == "" {
			source = "Unknown Source"
		}
		publishedAt := ""
		if !a.PublishedAt.IsZero() {
			publishedAt = a.PublishedAt.UTC().Format(time.RFC3339)
		}
		stories = append(stories, Story{
			ID:          idx,
			Title:       title,
			URL:         a.URL,
			Source:      source,
			Summary:     createSummary(a),
			PublishedAt: publishedAt,
		})
	}

	return stories
}

// createSummary derives a spoken-friendly summary: prefer the description,
// then the content with provider truncation markers stripped, then the
// title. Keeps at most the first two sentences and guarantees terminal
// punctuation.
func createSummary(a Article) string {
	var summary string
	switch {
	case len(strings.TrimSpace(a.Description)) > minSummaryLength:
		summary = strings.TrimSpace(a.Description)
	case len(strings.TrimSpace(a.Content)) > minSummaryLength:
		summary = strings.TrimSpace(truncationMarkerRe.ReplaceAllString(a.Content, ""))
	default:
		summary = a.Title
	}

	summary = firstSentences(summary, 2)

	if summary != "" && !strings.ContainsRune(".!?", rune(summary[len(summary)-1])) {
		summary += "."
	}

	return summary
}

// firstSentences cuts text after the nth sentence boundary (sentence-ending
// punctuation followed by whitespace).
func firstSentences(text string, n int) string {
	bounds := sentenceEndRe.FindAllStringIndex(text, -1)
	if len(bounds) < n {
		return text
	}
	// bounds[n-1][0] is the position of the terminal punctuation mark.
	return strings.TrimSpace(text[:bounds[n-1][0]+1])
}

// ValidateStories checks the required-field invariants on the final story
// list. A structurally invalid list returns a *ValidationError; fewer than 3
// stories is reported as a warning, not an error.
func ValidateStories(stories []Story) ([]string, error) {
	if len(stories) == 0 {
		return nil, &ValidationError{Message: "no news stories provided"}
	}

	var warnings []string
	if len(stories) < 3 {
		warnings = append(warnings, fmt.Sprintf("only %d stories (recommended: 3-6)", len(stories)))
	}

	for _, s := range stories {
		fields := []struct {
			name  string
			value string
		}{
			{"title", s.Title},
			{"url", s.URL},
			{"source", s.Source},
			{"summary", s.Summary},
		}
		for _, f := range fields {
			if f.value == "" {
				return nil, &ValidationError{Message: fmt.Sprintf("story %d has empty field: %s", s.ID, f.name)}
			}
		}
	}

	return warnings, nil
}
