package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/DannyChee1/Two-Host-AI-Newscast/internal/assembly"
	"github.com/DannyChee1/Two-Host-AI-Newscast/internal/observability"
	"github.com/DannyChee1/Two-Host-AI-Newscast/internal/pipeline"
	"github.com/DannyChee1/Two-Host-AI-Newscast/internal/progress"
	"github.com/DannyChee1/Two-Host-AI-Newscast/internal/tts"
)

var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "newscast",
	Short: "Generate a two-host AI newscast podcast from today's top news",
	RunE:  runGenerate,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("newscast %s\n", Version)
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a newscast episode",
	RunE:  runGenerate,
}

var listVoicesCmd = &cobra.Command{
	Use:   "list-voices",
	Short: "List available voices for all TTS providers",
	RunE:  runListVoices,
}

var (
	flagPersonas        string
	flagMinutes         int
	flagTopics          string
	flagRegion          string
	flagProfanityFilter bool
	flagOutputDir       string
	flagAudioFormat     string
	flagPauseMs         int
	flagIntroMusic      string
	flagOutroMusic      string
	flagSkipAudio       bool
	flagModel           string
	flagTTS             string
	flagVoice1          string
	flagVoice2          string
	flagMaxStories      int
	flagVerbose         bool
)

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(listVoicesCmd)

	for _, cmd := range []*cobra.Command{rootCmd, generateCmd} {
		f := cmd.Flags()
		f.StringVarP(&flagPersonas, "personas", "p", "", "Persona file defining the two hosts (required)")
		f.IntVarP(&flagMinutes, "minutes", "m", 5, "Target duration in minutes")
		f.StringVarP(&flagTopics, "topics", "t", "general", "Comma-separated topics (e.g. tech,world,science)")
		f.StringVarP(&flagRegion, "region", "r", "us", "Region/country code for news sources (e.g. us, gb, ca)")
		f.BoolVar(&flagProfanityFilter, "profanity-filter", false, "Enable profanity filtering in script generation")
		f.StringVarP(&flagOutputDir, "output-dir", "o", "out", "Directory for output files")
		f.StringVar(&flagAudioFormat, "audio-format", "mp3", "Audio output format: mp3 or wav")
		f.IntVar(&flagPauseMs, "pause-ms", 1000, "Pause between dialogue lines in milliseconds")
		f.StringVar(&flagIntroMusic, "intro-music", "", "Path to intro background music file")
		f.StringVar(&flagOutroMusic, "outro-music", "", "Path to outro background music file")
		f.BoolVar(&flagSkipAudio, "skip-audio", false, "Skip audio rendering (script and text outputs only)")
		f.StringVar(&flagModel, "model", "openai", "Script generation model: openai or claude")
		f.StringVarP(&flagTTS, "tts", "T", "cartesia", "TTS provider: cartesia, elevenlabs, or google")
		f.StringVarP(&flagVoice1, "voice1", "1", "", "Voice ID override for host 1")
		f.StringVarP(&flagVoice2, "voice2", "2", "", "Voice ID override for host 2")
		f.IntVar(&flagMaxStories, "max-stories", 5, "Maximum number of stories in the episode")
		f.BoolVarP(&flagVerbose, "verbose", "v", false, "Enable detailed logging to stderr")
	}
}

func Execute() error {
	return rootCmd.Execute()
}

func runGenerate(cmd *cobra.Command, args []string) error {
	// .env is optional; environment variables win either way.
	_ = godotenv.Load()

	if flagPersonas == "" {
		return fmt.Errorf("--personas (-p) is required")
	}
	if _, err := os.Stat(flagPersonas); err != nil {
		return fmt.Errorf("personas file not found: %s", flagPersonas)
	}
	if flagMinutes < 1 {
		return fmt.Errorf("invalid --minutes %d: must be at least 1", flagMinutes)
	}
	if flagAudioFormat != "mp3" && flagAudioFormat != "wav" {
		return fmt.Errorf("invalid --audio-format %q: must be mp3 or wav", flagAudioFormat)
	}
	validModels := map[string]bool{"openai": true, "claude": true}
	if !validModels[flagModel] {
		return fmt.Errorf("invalid --model %q: must be openai or claude", flagModel)
	}
	validProviders := map[string]bool{"cartesia": true, "elevenlabs": true, "google": true}
	if !validProviders[flagTTS] {
		return fmt.Errorf("invalid --tts %q: must be cartesia, elevenlabs, or google", flagTTS)
	}

	var topics []string
	for _, t := range strings.Split(flagTopics, ",") {
		if t = strings.TrimSpace(t); t != "" {
			topics = append(topics, t)
		}
	}
	if len(topics) == 0 {
		return fmt.Errorf("--topics must name at least one topic")
	}

	if err := checkAPIKeys(); err != nil {
		return err
	}
	if !flagSkipAudio {
		if err := assembly.Check(); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(flagOutputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	logPath := filepath.Join(flagOutputDir, "newscast.log")
	logFile, err := os.Create(logPath)
	if err != nil {
		return fmt.Errorf("create log file: %w", err)
	}
	defer logFile.Close()

	var logOut io.Writer = logFile
	if flagVerbose {
		logOut = io.MultiWriter(logFile, os.Stderr)
	}
	logger := observability.InitLogger(logOut, flagVerbose)

	ctx := cmd.Context()
	if observability.TracingEnabled() {
		tp, err := observability.InitTracer(ctx, "newscast", Version)
		if err != nil {
			logger.Warn("tracing disabled", "error", err)
		} else {
			defer tp.Shutdown(ctx)
		}
	}

	opts := pipeline.Options{
		PersonasPath:    flagPersonas,
		Minutes:         flagMinutes,
		Topics:          topics,
		Region:          flagRegion,
		ProfanityFilter: flagProfanityFilter,
		OutputDir:       flagOutputDir,
		AudioFormat:     flagAudioFormat,
		PauseMs:         flagPauseMs,
		IntroMusic:      flagIntroMusic,
		OutroMusic:      flagOutroMusic,
		SkipAudio:       flagSkipAudio,
		Model:           flagModel,
		TTSProvider:     flagTTS,
		Voice1:          flagVoice1,
		Voice2:          flagVoice2,
		MaxStories:      flagMaxStories,
		Logger:          logger,
	}

	// Progress bar on stdout unless verbose logging has stderr covered.
	if !flagVerbose {
		r := progress.NewBarRenderer(os.Stdout)
		defer r.Finish()
		opts.Progress = func(e progress.Event) {
			if e.LogFile == "" && e.Stage == progress.StageComplete {
				e.LogFile = logPath
			}
			r.Handle(e)
		}
	}

	return pipeline.Run(ctx, opts)
}

func runListVoices(cmd *cobra.Command, args []string) error {
	providers := []struct {
		name  string
		label string
	}{
		{"cartesia", "CARTESIA"},
		{"elevenlabs", "ELEVENLABS"},
		{"google", "GOOGLE CLOUD TTS"},
	}

	fmt.Println("\nAvailable voices:")

	for _, p := range providers {
		voices, err := tts.AvailableVoices(p.name)
		if err != nil {
			return err
		}

		fmt.Printf("\n  %s\n", p.label)
		fmt.Printf("  %s\n", strings.Repeat("─", 50))
		fmt.Printf("  %-38s %-18s %-8s %s\n", "ID", "NAME", "GENDER", "DESCRIPTION")
		for _, v := range voices {
			def := ""
			if v.DefaultFor != "" {
				def = fmt.Sprintf(" (default %s)", v.DefaultFor)
			}
			fmt.Printf("  %-38s %-18s %-8s %s%s\n", v.ID, v.Name, v.Gender, v.Description, def)
		}
	}
	fmt.Println()
	return nil
}

func checkAPIKeys() error {
	var missing []string

	if os.Getenv("NEWSAPI_KEY") == "" {
		missing = append(missing, "NEWSAPI_KEY")
	}

	switch flagModel {
	case "claude":
		if os.Getenv("ANTHROPIC_API_KEY") == "" {
			missing = append(missing, "ANTHROPIC_API_KEY")
		}
	default:
		if os.Getenv("OPENAI_API_KEY") == "" {
			missing = append(missing, "OPENAI_API_KEY")
		}
	}

	if !flagSkipAudio {
		switch flagTTS {
		case "cartesia":
			if os.Getenv("CARTESIA_API_KEY") == "" {
				missing = append(missing, "CARTESIA_API_KEY")
			}
		case "elevenlabs":
			if os.Getenv("ELEVENLABS_API_KEY") == "" {
				missing = append(missing, "ELEVENLABS_API_KEY")
			}
		case "google":
			// Uses Application Default Credentials
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variable(s): %s\nSet them in the environment or a .env file", strings.Join(missing, ", "))
	}
	return nil
}
