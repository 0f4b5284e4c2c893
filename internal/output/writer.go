package output

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/DannyChee1/Two-Host-AI-Newscast/internal/news"
	"github.com/DannyChee1/Two-Host-AI-Newscast/internal/script"
)

const wordsPerSecond = float64(script.WordsPerMinute) / 60.0

// TimedLine is a dialogue line with estimated start/end offsets in seconds.
// Timing is derived from the speaking-rate model, not from the rendered
// audio, so it tracks the episode closely but not sample-exactly.
type TimedLine struct {
	Start float64
	End   float64
	Line  script.DialogueLine
}

// TimestampLines estimates when each spoken line begins and ends, assuming
// 150 words per minute and a fixed pause between lines. Lines that are
// empty after citation stripping are omitted, matching synthesis.
func TimestampLines(s *script.Script, pauseMs int) []TimedLine {
	var timed []TimedLine
	current := 0.0
	last := len(s.Dialogue) - 1

	for i, line := range s.Dialogue {
		words := script.SpokenWordCount(line.Text)
		if words == 0 {
			continue
		}
		duration := float64(words) / wordsPerSecond
		timed = append(timed, TimedLine{Start: current, End: current + duration, Line: line})
		current += duration
		if i < last {
			current += float64(pauseMs) / 1000.0
		}
	}
	return timed
}

type transcriptEntry struct {
	T       float64 `json:"t"`
	Speaker string  `json:"speaker"`
	Text    string  `json:"text"`
	Src     []int   `json:"src"`
}

// WriteTranscript emits one JSON object per spoken line: start offset,
// speaker, raw text (citation markers intact), and source ids.
func WriteTranscript(s *script.Script, pauseMs int, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create transcript: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for _, tl := range TimestampLines(s, pauseMs) {
		entry := transcriptEntry{
			T:       math.Round(tl.Start*1000) / 1000,
			Speaker: tl.Line.Speaker,
			Text:    tl.Line.Text,
			Src:     tl.Line.Sources,
		}
		if entry.Src == nil {
			entry.Src = []int{}
		}
		if err := enc.Encode(entry); err != nil {
			return fmt.Errorf("write transcript line: %w", err)
		}
	}
	return nil
}

// WriteVTT emits WebVTT subtitles with voice tags.
func WriteVTT(s *script.Script, pauseMs int, path string) error {
	var b strings.Builder
	b.WriteString("WEBVTT\n\n")

	for i, tl := range TimestampLines(s, pauseMs) {
		b.WriteString(fmt.Sprintf("%d\n", i+1))
		b.WriteString(fmt.Sprintf("%s --> %s\n", vttTimestamp(tl.Start), vttTimestamp(tl.End)))
		b.WriteString(fmt.Sprintf("<v %s>%s\n\n", tl.Line.Speaker, tl.Line.Text))
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write vtt: %w", err)
	}
	return nil
}

// vttTimestamp renders seconds as HH:MM:SS.mmm.
func vttTimestamp(seconds float64) string {
	hours := int(seconds) / 3600
	minutes := (int(seconds) % 3600) / 60
	rem := seconds - float64(hours*3600) - float64(minutes*60)
	return fmt.Sprintf("%02d:%02d:%06.3f", hours, minutes, rem)
}

// ShowNotesInfo names the services that produced the episode, for the
// attribution footer.
type ShowNotesInfo struct {
	EpisodeTitle string
	ModelName    string
	TTSName      string
}

// WriteShowNotes emits the episode's markdown companion: description,
// per-topic story sections in airing order, all cited sources, host bios,
// and the AI disclaimer.
func WriteShowNotes(s *script.Script, stories []news.Story, hosts script.HostPair, info ShowNotesInfo, path string) error {
	cited := make(map[int]bool)
	for _, line := range s.Dialogue {
		for _, id := range line.Sources {
			cited[id] = true
		}
	}

	var b strings.Builder

	title := info.EpisodeTitle
	if title == "" {
		title = "Newscast Episode"
	}
	b.WriteString(fmt.Sprintf("# %s\n\n", title))

	h1, h2 := hosts.Host1, hosts.Host2
	b.WriteString("## Episode Description\n\n")
	b.WriteString(fmt.Sprintf("Join %s and %s as they discuss today's top stories. %s: %s. %s: %s.\n\n",
		h1.Name, h2.Name, h1.Name, h1.Personality, h2.Name, h2.Personality))

	b.WriteString("## Topics Covered\n\n")
	for _, id := range citedInOrder(s) {
		if id < 0 || id >= len(stories) {
			continue
		}
		story := stories[id]
		b.WriteString(fmt.Sprintf("### %s\n\n", story.Title))
		b.WriteString(fmt.Sprintf("**Source**: %s\n\n", story.Source))
		if summary := truncate(story.Summary, 300); summary != "" {
			b.WriteString(summary + "\n\n")
		}
		b.WriteString(fmt.Sprintf("**Read more**: [%s](%s)\n\n", story.URL, story.URL))
	}

	b.WriteString("## All Sources\n\n")
	for i, story := range stories {
		if cited[i] {
			b.WriteString(fmt.Sprintf("%d. [%s](%s) - %s\n", i+1, story.Title, story.URL, story.Source))
		}
	}
	b.WriteString("\n")

	b.WriteString("## Hosts\n\n")
	for _, h := range hosts.Hosts() {
		b.WriteString(fmt.Sprintf("- **%s**: %s\n", h.Name, h.Personality))
	}
	b.WriteString("\n")

	b.WriteString("---\n\n## Disclaimer\n\n")
	b.WriteString("This episode was generated using AI technology for informational and entertainment purposes. ")
	b.WriteString("The AI-generated voices are synthetic and do not represent real individuals. ")
	b.WriteString("This content is transformative and created for educational purposes.\n\n")
	b.WriteString("**Important Notes:**\n")
	b.WriteString("- All facts are sourced from cited news articles above\n")
	b.WriteString("- This is not professional advice (financial, medical, or legal)\n")
	b.WriteString("- Host personalities are fictional characters\n")
	b.WriteString("- Sources are provided for fact-checking and attribution\n\n")

	model := info.ModelName
	if model == "" {
		model = "an AI model"
	}
	ttsName := info.TTSName
	if ttsName == "" {
		ttsName = "AI voices"
	}
	b.WriteString(fmt.Sprintf("*Generated with NewsAPI, %s, and %s*\n", model, ttsName))

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write show notes: %w", err)
	}
	return nil
}

// citedInOrder returns the cited story ids ordered by first appearance in
// the dialogue, so topics list in airing order.
func citedInOrder(s *script.Script) []int {
	seen := make(map[int]bool)
	var ids []int
	for _, line := range s.Dialogue {
		for _, id := range line.Sources {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	return ids
}

func truncate(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// WriteStories persists the selected stories as a run artifact.
func WriteStories(stories []news.Story, path string) error {
	data, err := json.MarshalIndent(stories, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal stories: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write stories to %s: %w", path, err)
	}
	return nil
}

// Paths for the companion artifacts of one episode.
type Paths struct {
	Transcript string
	VTT        string
	ShowNotes  string
}

// WriteAll writes transcript, subtitles, and show notes into dir.
func WriteAll(s *script.Script, stories []news.Story, hosts script.HostPair, dir, episodeName string, pauseMs int, info ShowNotesInfo) (Paths, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return Paths{}, fmt.Errorf("create output dir: %w", err)
	}

	paths := Paths{
		Transcript: filepath.Join(dir, "transcript.jsonl"),
		VTT:        filepath.Join(dir, episodeName+".vtt"),
		ShowNotes:  filepath.Join(dir, "show_notes.md"),
	}

	if err := WriteTranscript(s, pauseMs, paths.Transcript); err != nil {
		return Paths{}, err
	}
	if err := WriteVTT(s, pauseMs, paths.VTT); err != nil {
		return Paths{}, err
	}
	if err := WriteShowNotes(s, stories, hosts, info, paths.ShowNotes); err != nil {
		return Paths{}, err
	}
	return paths, nil
}
