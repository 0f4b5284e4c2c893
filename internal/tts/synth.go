package tts

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/DannyChee1/Two-Host-AI-Newscast/internal/script"
)

// SynthesizeScript renders every dialogue line to its own audio file in
// tmpDir and returns the file paths in dialogue order. Every speaker in
// the script must have a voice mapping, checked before any synthesis
// starts. Citation markers are stripped before synthesis; lines that are
// empty after stripping are skipped. onLine, when non-nil, is called
// after each line completes.
func SynthesizeScript(ctx context.Context, p Provider, s *script.Script, voices VoiceMap, tmpDir string, logger *slog.Logger, onLine func(done, total int)) ([]string, error) {
	for i, line := range s.Dialogue {
		if _, ok := voices[line.Speaker]; !ok {
			return nil, fmt.Errorf("line %d: speaker %q has no voice mapping", i, line.Speaker)
		}
	}

	total := len(s.Dialogue)
	var files []string

	for i, line := range s.Dialogue {
		text := script.StripCitations(line.Text)
		if text == "" {
			logger.Debug("skipping empty dialogue line", "line", i, "speaker", line.Speaker)
			if onLine != nil {
				onLine(i+1, total)
			}
			continue
		}

		voice := voices[line.Speaker]

		var result AudioResult
		err := WithRetry(ctx, func() error {
			var synthErr error
			result, synthErr = p.Synthesize(ctx, text, voice)
			return synthErr
		})
		if err != nil {
			return nil, fmt.Errorf("synthesize line %d (%s): %w", i, line.Speaker, err)
		}

		path := filepath.Join(tmpDir, fmt.Sprintf("line_%03d.%s", i, result.Format))
		if err := os.WriteFile(path, result.Data, 0644); err != nil {
			return nil, fmt.Errorf("write segment %d: %w", i, err)
		}

		logger.Debug("synthesized line",
			"line", i,
			"speaker", line.Speaker,
			"chars", len(text),
			"bytes", len(result.Data),
		)

		files = append(files, path)
		if onLine != nil {
			onLine(i+1, total)
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no dialogue lines produced audio")
	}
	return files, nil
}
