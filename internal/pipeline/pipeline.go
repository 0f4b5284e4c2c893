package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/DannyChee1/Two-Host-AI-Newscast/internal/assembly"
	"github.com/DannyChee1/Two-Host-AI-Newscast/internal/news"
	"github.com/DannyChee1/Two-Host-AI-Newscast/internal/output"
	"github.com/DannyChee1/Two-Host-AI-Newscast/internal/progress"
	"github.com/DannyChee1/Two-Host-AI-Newscast/internal/script"
	"github.com/DannyChee1/Two-Host-AI-Newscast/internal/tts"
)

// Options configures a full episode run.
type Options struct {
	PersonasPath    string
	Minutes         int
	Topics          []string
	Region          string
	ProfanityFilter bool
	OutputDir       string
	AudioFormat     string // "mp3" or "wav"
	PauseMs         int
	IntroMusic      string
	OutroMusic      string
	SkipAudio       bool
	Model           string // "openai" or "claude"
	TTSProvider     string // "cartesia", "elevenlabs", or "google"
	Voice1          string
	Voice2          string
	MaxStories      int

	Logger   *slog.Logger
	Progress progress.Callback
}

// PipelineError wraps a stage failure with the stage name.
type PipelineError struct {
	Stage   string
	Message string
	Err     error
}

func (e *PipelineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Stage, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Stage, e.Message)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

const episodeName = "episode"

// Run executes the full pipeline: fetch, select, script, synthesis,
// assembly, and companion outputs. Interrupts cancel the run cleanly.
func Run(ctx context.Context, opts Options) error {
	start := time.Now()

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	report := opts.Progress
	if report == nil {
		report = progress.NopCallback
	}
	maxStories := opts.MaxStories
	if maxStories <= 0 {
		maxStories = 5
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return &PipelineError{Stage: "setup", Message: "create output directory", Err: err}
	}

	hosts, err := script.LoadPersonas(opts.PersonasPath)
	if err != nil {
		return &PipelineError{Stage: "setup", Message: "load personas", Err: err}
	}

	// Stage 1: fetch and select stories.
	report(progress.NewEvent(progress.StageFetch, "Fetching news...", 0.05, start))
	client := news.NewClient(os.Getenv("NEWSAPI_KEY"), logger)
	articles, err := client.Fetch(ctx, news.FetchOptions{Topics: opts.Topics, Region: opts.Region})
	if err != nil {
		return &PipelineError{Stage: "fetch", Message: "fetch news", Err: err}
	}
	logger.Info("fetched articles", "count", len(articles))

	deduped := news.Deduplicate(articles)
	logger.Info("deduplicated articles", "kept", len(deduped), "dropped", len(articles)-len(deduped))

	stories := news.SelectStories(deduped, maxStories)
	warnings, err := news.ValidateStories(stories)
	if err != nil {
		return &PipelineError{Stage: "fetch", Message: "validate stories", Err: err}
	}
	for _, w := range warnings {
		logger.Warn("story selection", "warning", w)
	}

	storiesPath := filepath.Join(opts.OutputDir, "stories.json")
	if err := output.WriteStories(stories, storiesPath); err != nil {
		return &PipelineError{Stage: "fetch", Message: "save stories", Err: err}
	}

	// Stage 2: generate and validate the script.
	report(progress.NewEvent(progress.StageScript, fmt.Sprintf("Generating %d-minute script from %d stories...", opts.Minutes, len(stories)), 0.2, start))
	gen, err := script.NewGenerator(opts.Model)
	if err != nil {
		return &PipelineError{Stage: "script", Message: "create generator", Err: err}
	}
	s, scriptReport, err := gen.Generate(ctx, stories, hosts, script.GenerateOptions{
		TargetMinutes:   opts.Minutes,
		ProfanityFilter: opts.ProfanityFilter,
	})
	if err != nil {
		return &PipelineError{Stage: "script", Message: "generate script", Err: err}
	}
	for _, w := range scriptReport.Warnings {
		logger.Warn("script quality", "category", w.Category, "warning", w.Message)
	}
	logger.Info("script generated",
		"lines", len(s.Dialogue),
		"words", s.TotalWordCount(),
		"warnings", len(scriptReport.Warnings),
	)

	scriptPath := filepath.Join(opts.OutputDir, "script.json")
	if err := script.Save(s, scriptPath); err != nil {
		return &PipelineError{Stage: "script", Message: "save script", Err: err}
	}
	txtPath := filepath.Join(opts.OutputDir, "script.txt")
	if err := os.WriteFile(txtPath, []byte(s.FormatForDisplay()), 0644); err != nil {
		return &PipelineError{Stage: "script", Message: "save script text", Err: err}
	}

	// Stages 3 and 4: synthesis and assembly, unless audio is skipped.
	var episodePath string
	if !opts.SkipAudio {
		report(progress.NewEvent(progress.StageTTS, "Synthesizing audio...", 0.4, start))
		provider, err := tts.NewProvider(opts.TTSProvider)
		if err != nil {
			return &PipelineError{Stage: "tts", Message: "create provider", Err: err}
		}
		defer provider.Close()

		voices := tts.MapVoices(hosts, opts.Voice1, opts.Voice2, provider)

		tmpDir, err := os.MkdirTemp("", "newscast-*")
		if err != nil {
			return &PipelineError{Stage: "tts", Message: "create temp directory", Err: err}
		}
		defer os.RemoveAll(tmpDir)

		segments, err := tts.SynthesizeScript(ctx, provider, s, voices, tmpDir, logger, func(done, total int) {
			e := progress.NewEvent(progress.StageTTS,
				fmt.Sprintf("Synthesizing line %d/%d...", done, total),
				0.4+0.4*float64(done)/float64(total), start)
			e.LineNum = done
			e.LineTotal = total
			report(e)
		})
		if err != nil {
			return &PipelineError{Stage: "tts", Message: "synthesize dialogue", Err: err}
		}

		report(progress.NewEvent(progress.StageAssembly, "Assembling episode...", 0.85, start))
		episodePath = filepath.Join(opts.OutputDir, episodeName+"."+opts.AudioFormat)
		assembler := assembly.NewFFmpegAssembler()
		err = assembler.Assemble(ctx, segments, tmpDir, episodePath, assembly.Options{
			PauseMs:    opts.PauseMs,
			Format:     opts.AudioFormat,
			IntroMusic: opts.IntroMusic,
			OutroMusic: opts.OutroMusic,
		})
		if err != nil {
			return &PipelineError{Stage: "assembly", Message: "assemble episode", Err: err}
		}
	} else {
		logger.Info("audio rendering skipped")
	}

	// Stage 5: companion artifacts.
	report(progress.NewEvent(progress.StageOutputs, "Writing transcript, subtitles, and show notes...", 0.95, start))
	paths, err := output.WriteAll(s, stories, hosts, opts.OutputDir, episodeName, opts.PauseMs, output.ShowNotesInfo{
		ModelName: modelLabel(opts.Model),
		TTSName:   ttsLabel(opts.TTSProvider),
	})
	if err != nil {
		return &PipelineError{Stage: "outputs", Message: "write outputs", Err: err}
	}
	logger.Info("outputs written",
		"transcript", paths.Transcript,
		"subtitles", paths.VTT,
		"show_notes", paths.ShowNotes,
	)

	done := progress.NewEvent(progress.StageComplete, "Episode complete", 1.0, start)
	if episodePath != "" {
		done.OutputFile = episodePath
		if info, err := os.Stat(episodePath); err == nil {
			done.SizeMB = float64(info.Size()) / (1024 * 1024)
		}
		if secs, err := assembly.ProbeDurationSeconds(episodePath); err == nil {
			done.Duration = assembly.FormatDuration(secs)
		}
	} else {
		done.Message = fmt.Sprintf("Script and outputs saved to %s (audio skipped)", opts.OutputDir)
	}
	report(done)

	return nil
}

func modelLabel(model string) string {
	switch model {
	case "claude":
		return "Anthropic Claude"
	default:
		return "OpenAI GPT-4o"
	}
}

func ttsLabel(provider string) string {
	switch provider {
	case "elevenlabs":
		return "ElevenLabs TTS"
	case "google":
		return "Google Cloud TTS"
	default:
		return "Cartesia TTS"
	}
}
