package assembly

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// Audio quality constants for consistent output across all FFmpeg operations.
const (
	AudioBitrate    = "192k"
	AudioSampleRate = "44100"
	AudioChannels   = "2"
	AudioCodec      = "libmp3lame"
	AudioQuality    = "0" // LAME quality (0 = best)
	AudioResampler  = "aresample=resampler=soxr"

	// Background music runs under the first/last N seconds of the episode
	// at reduced volume.
	musicSeconds = 5
	musicVolume  = "0.1"
)

// Options controls episode assembly.
type Options struct {
	PauseMs    int    // silence between dialogue lines, default 1000
	Format     string // "mp3" or "wav"
	IntroMusic string // optional path, mixed under the opening
	OutroMusic string // optional path, mixed under the close
}

type Assembler interface {
	Assemble(ctx context.Context, segments []string, tmpDir string, output string, opts Options) error
}

type FFmpegAssembler struct{}

func NewFFmpegAssembler() *FFmpegAssembler {
	return &FFmpegAssembler{}
}

// Check verifies that the ffmpeg binary is on PATH.
func Check() error {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return fmt.Errorf("ffmpeg not found on PATH: install it or use --skip-audio")
	}
	return nil
}

// Assemble stitches per-line audio files into one episode: uniform WAV
// conversion, inter-line silence, concat, loudness normalization, optional
// music beds, and final encode.
func (a *FFmpegAssembler) Assemble(ctx context.Context, segments []string, tmpDir string, output string, opts Options) error {
	if len(segments) == 0 {
		return fmt.Errorf("no audio segments to assemble")
	}
	if opts.Format != "mp3" && opts.Format != "wav" {
		return fmt.Errorf("unsupported audio format %q: choose mp3 or wav", opts.Format)
	}
	pauseMs := opts.PauseMs
	if pauseMs <= 0 {
		pauseMs = 1000
	}

	// Segments arrive in whatever format the TTS provider emits; convert
	// everything to one WAV profile so the concat demuxer accepts them.
	uniform := make([]string, 0, len(segments))
	for i, seg := range segments {
		converted := filepath.Join(tmpDir, fmt.Sprintf("uniform_%03d.wav", i))
		if err := convertToWAV(ctx, seg, converted); err != nil {
			return fmt.Errorf("convert segment %d: %w", i, err)
		}
		uniform = append(uniform, converted)
	}

	silencePath := filepath.Join(tmpDir, "silence.wav")
	if err := generateSilence(ctx, pauseMs, silencePath); err != nil {
		return fmt.Errorf("generate silence: %w", err)
	}

	listPath := filepath.Join(tmpDir, "concat.txt")
	if err := buildConcatList(uniform, silencePath, listPath); err != nil {
		return fmt.Errorf("build concat list: %w", err)
	}

	stitched := filepath.Join(tmpDir, "stitched.wav")
	if err := runFFmpegConcat(ctx, listPath, stitched); err != nil {
		return fmt.Errorf("ffmpeg concat: %w", err)
	}

	if err := finalize(ctx, stitched, output, opts); err != nil {
		return fmt.Errorf("finalize episode: %w", err)
	}

	info, err := os.Stat(output)
	if err != nil {
		return fmt.Errorf("output file not created: %w", err)
	}
	if info.Size() == 0 {
		return fmt.Errorf("output file is empty")
	}
	return nil
}

func convertToWAV(ctx context.Context, input, output string) error {
	return runFFmpeg(ctx,
		"-i", input,
		"-af", AudioResampler,
		"-ar", AudioSampleRate,
		"-ac", AudioChannels,
		"-c:a", "pcm_s16le",
		"-y",
		output,
	)
}

func generateSilence(ctx context.Context, durationMs int, output string) error {
	return runFFmpeg(ctx,
		"-f", "lavfi",
		"-i", fmt.Sprintf("anullsrc=r=%s:cl=stereo", AudioSampleRate),
		"-t", fmt.Sprintf("%.3f", float64(durationMs)/1000),
		"-c:a", "pcm_s16le",
		"-y",
		output,
	)
}

func buildConcatList(segments []string, silencePath string, listPath string) error {
	var lines []string
	for i, seg := range segments {
		lines = append(lines, fmt.Sprintf("file '%s'", seg))
		// Silence between lines, not after the last one.
		if i < len(segments)-1 {
			lines = append(lines, fmt.Sprintf("file '%s'", silencePath))
		}
	}

	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(listPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("write concat list: %w", err)
	}
	return nil
}

func runFFmpegConcat(ctx context.Context, listPath string, output string) error {
	return runFFmpeg(ctx,
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
		"-c:a", "pcm_s16le",
		"-y",
		output,
	)
}

// finalize applies loudness normalization and optional music beds, then
// encodes to the requested format.
func finalize(ctx context.Context, stitched, output string, opts Options) error {
	args := []string{"-i", stitched}
	var filters []string
	current := "[0:a]"
	inputIdx := 1

	if opts.IntroMusic != "" {
		if _, err := os.Stat(opts.IntroMusic); err != nil {
			return fmt.Errorf("intro music: %w", err)
		}
		args = append(args, "-i", opts.IntroMusic)
		filters = append(filters,
			fmt.Sprintf("[%d:a]atrim=0:%d,volume=%s[intro]", inputIdx, musicSeconds, musicVolume),
			fmt.Sprintf("%s[intro]amix=inputs=2:duration=first:normalize=0[withintro]", current),
		)
		current = "[withintro]"
		inputIdx++
	}

	if opts.OutroMusic != "" {
		if _, err := os.Stat(opts.OutroMusic); err != nil {
			return fmt.Errorf("outro music: %w", err)
		}
		total, err := ProbeDurationSeconds(stitched)
		if err != nil {
			return fmt.Errorf("probe duration for outro placement: %w", err)
		}
		delayMs := 0
		if total > musicSeconds {
			delayMs = int((total - musicSeconds) * 1000)
		}
		args = append(args, "-i", opts.OutroMusic)
		filters = append(filters,
			fmt.Sprintf("[%d:a]atrim=0:%d,volume=%s,adelay=%d|%d[outro]", inputIdx, musicSeconds, musicVolume, delayMs, delayMs),
			fmt.Sprintf("%s[outro]amix=inputs=2:duration=first:normalize=0[withoutro]", current),
		)
		current = "[withoutro]"
		inputIdx++
	}

	filters = append(filters, current+"loudnorm[out]")
	args = append(args, "-filter_complex", strings.Join(filters, ";"), "-map", "[out]")

	switch opts.Format {
	case "wav":
		args = append(args, "-ar", AudioSampleRate, "-ac", AudioChannels, "-c:a", "pcm_s16le")
	default:
		args = append(args,
			"-ar", AudioSampleRate,
			"-ac", AudioChannels,
			"-c:a", AudioCodec,
			"-b:a", AudioBitrate,
			"-q:a", AudioQuality,
		)
	}
	args = append(args, "-y", output)

	return runFFmpeg(ctx, args...)
}

func runFFmpeg(ctx context.Context, args ...string) error {
	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	var stderr strings.Builder
	cmd.Stderr = &stderr
	cmd.Stdout = nil

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg failed: %w\n%s", err, stderr.String())
	}
	return nil
}

// ProbeDurationSeconds returns the audio duration via ffprobe.
func ProbeDurationSeconds(path string) (float64, error) {
	out, err := exec.Command("ffprobe",
		"-v", "quiet",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	).Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe: %w", err)
	}
	secs, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		return 0, fmt.Errorf("parse ffprobe output %q: %w", strings.TrimSpace(string(out)), err)
	}
	return secs, nil
}

// FormatDuration renders seconds as m:ss for display.
func FormatDuration(secs float64) string {
	mins := int(secs) / 60
	rem := int(secs) % 60
	return fmt.Sprintf("%d:%02d", mins, rem)
}
