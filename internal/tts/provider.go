package tts

import (
	"context"
	"fmt"
	"time"

	"github.com/DannyChee1/Two-Host-AI-Newscast/internal/script"
)

// AudioFormat represents the audio encoding returned by a provider.
type AudioFormat string

const (
	FormatMP3 AudioFormat = "mp3"
	FormatWAV AudioFormat = "wav"
)

// Voice holds a provider-specific voice identifier.
type Voice struct {
	ID   string // Provider-specific voice identifier
	Name string // Human-readable label
}

// VoiceMap assigns a voice to each host by speaker name.
type VoiceMap map[string]Voice

// AudioResult is the output of a synthesis call.
type AudioResult struct {
	Data   []byte
	Format AudioFormat
}

// Provider synthesizes speech from dialogue text.
type Provider interface {
	Name() string
	Synthesize(ctx context.Context, text string, voice Voice) (AudioResult, error)
	// DefaultVoices returns the provider's stock pair, in host order.
	DefaultVoices() [2]Voice
	Close() error
}

// VoiceInfo describes an available voice for display in the registry.
type VoiceInfo struct {
	ID          string
	Name        string
	Gender      string // "male" or "female"
	Description string
	DefaultFor  string // "Host 1", "Host 2", or ""
}

// AvailableVoices returns the voice catalog for the named provider.
func AvailableVoices(providerName string) ([]VoiceInfo, error) {
	switch providerName {
	case "cartesia":
		return cartesiaAvailableVoices(), nil
	case "elevenlabs":
		return elevenLabsAvailableVoices(), nil
	case "google":
		return googleAvailableVoices(), nil
	default:
		return nil, fmt.Errorf("unknown TTS provider %q", providerName)
	}
}

// Retry constants shared by all providers.
const (
	defaultMaxAttempts    = 3
	defaultInitialBackoff = 1 * time.Second
	defaultBackoffMulti   = 2
	defaultMaxBackoff     = 10 * time.Second
)

// RetryableError signals that the operation can be retried.
type RetryableError struct {
	StatusCode int
	Body       string
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Body)
}

// WithRetry executes fn with exponential backoff on RetryableError.
func WithRetry(ctx context.Context, fn func() error) error {
	var lastErr error
	backoff := defaultInitialBackoff

	for attempt := 1; attempt <= defaultMaxAttempts; attempt++ {
		if err := fn(); err == nil {
			return nil
		} else if _, ok := err.(*RetryableError); !ok {
			return err
		} else {
			lastErr = err
		}

		if attempt < defaultMaxAttempts {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= time.Duration(defaultBackoffMulti)
			if backoff > defaultMaxBackoff {
				backoff = defaultMaxBackoff
			}
		}
	}

	return lastErr
}

// NewProvider creates a TTS provider by name.
func NewProvider(name string) (Provider, error) {
	switch name {
	case "cartesia":
		return NewCartesiaProvider(), nil
	case "elevenlabs":
		return NewElevenLabsProvider(), nil
	case "google":
		return NewGoogleProvider()
	default:
		return nil, fmt.Errorf("unknown TTS provider %q: choose cartesia, elevenlabs, or google", name)
	}
}

// MapVoices resolves a voice for each host. Precedence per host: CLI
// override, then the persona's voice_id, then the provider default.
func MapVoices(hosts script.HostPair, voice1, voice2 string, p Provider) VoiceMap {
	defaults := p.DefaultVoices()
	overrides := [2]string{voice1, voice2}
	personas := hosts.Hosts()

	voices := make(VoiceMap, 2)
	for i, h := range personas {
		switch {
		case overrides[i] != "":
			voices[h.Name] = Voice{ID: overrides[i], Name: h.Name}
		case h.VoiceID != "":
			voices[h.Name] = Voice{ID: h.VoiceID, Name: h.Name}
		default:
			voices[h.Name] = defaults[i]
		}
	}
	return voices
}
