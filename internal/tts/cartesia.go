package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const (
	cartesiaDefaultVoice1 = "a0e99841-438c-4a64-b679-ae501e7d6091" // Barbershop Man
	cartesiaDefaultVoice2 = "79a125e8-cd45-4c13-8a67-188112f4dd22" // British Lady

	cartesiaBaseURL = "https://api.cartesia.ai"
	cartesiaVersion = "2024-06-10"
	cartesiaModelID = "sonic-english"
)

type cartesiaRequest struct {
	ModelID      string               `json:"model_id"`
	Transcript   string               `json:"transcript"`
	Voice        cartesiaVoice        `json:"voice"`
	OutputFormat cartesiaOutputFormat `json:"output_format"`
}

type cartesiaVoice struct {
	Mode string `json:"mode"`
	ID   string `json:"id"`
}

type cartesiaOutputFormat struct {
	Container  string `json:"container"`
	Encoding   string `json:"encoding"`
	SampleRate int    `json:"sample_rate"`
}

// CartesiaProvider implements Provider using the Cartesia TTS API. It is
// the default provider: sonic-english voices, WAV output at 44.1 kHz.
type CartesiaProvider struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewCartesiaProvider() *CartesiaProvider {
	return &CartesiaProvider{
		baseURL:    cartesiaBaseURL,
		apiKey:     os.Getenv("CARTESIA_API_KEY"),
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

func (p *CartesiaProvider) Name() string { return "cartesia" }

func (p *CartesiaProvider) DefaultVoices() [2]Voice {
	return [2]Voice{
		{ID: cartesiaDefaultVoice1, Name: "Barbershop Man"},
		{ID: cartesiaDefaultVoice2, Name: "British Lady"},
	}
}

func (p *CartesiaProvider) Synthesize(ctx context.Context, text string, voice Voice) (AudioResult, error) {
	reqBody := cartesiaRequest{
		ModelID:    cartesiaModelID,
		Transcript: text,
		Voice:      cartesiaVoice{Mode: "id", ID: voice.ID},
		OutputFormat: cartesiaOutputFormat{
			Container:  "wav",
			Encoding:   "pcm_s16le",
			SampleRate: 44100,
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return AudioResult{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/tts/bytes", bytes.NewReader(bodyBytes))
	if err != nil {
		return AudioResult{}, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("X-API-Key", p.apiKey)
	req.Header.Set("Cartesia-Version", cartesiaVersion)
	req.Header.Set("Content-Type", "application/json")

	res, err := p.httpClient.Do(req)
	if err != nil {
		return AudioResult{}, fmt.Errorf("send request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusTooManyRequests ||
		res.StatusCode >= http.StatusInternalServerError {
		errBody, _ := io.ReadAll(res.Body)
		return AudioResult{}, &RetryableError{
			StatusCode: res.StatusCode,
			Body:       string(errBody),
		}
	}

	if res.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(res.Body)
		return AudioResult{}, fmt.Errorf("Cartesia API error (status %d): %s", res.StatusCode, string(errBody))
	}

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return AudioResult{}, fmt.Errorf("read response: %w", err)
	}

	return AudioResult{Data: data, Format: FormatWAV}, nil
}

func (p *CartesiaProvider) Close() error { return nil }

func cartesiaAvailableVoices() []VoiceInfo {
	return []VoiceInfo{
		{ID: cartesiaDefaultVoice1, Name: "Barbershop Man", Gender: "male", Description: "Friendly American male, upbeat and clear", DefaultFor: "Host 1"},
		{ID: cartesiaDefaultVoice2, Name: "British Lady", Gender: "female", Description: "Refined British female, warm and articulate", DefaultFor: "Host 2"},
		{ID: "694f9389-aac1-45b6-b726-9d9369183238", Name: "Sarah", Gender: "female", Description: "Conversational American female"},
		{ID: "41534e16-2966-4c6b-9670-111411def906", Name: "Newsman", Gender: "male", Description: "Classic broadcast anchor delivery"},
		{ID: "95856005-0332-41b0-935f-352e296aa0df", Name: "Classy British Man", Gender: "male", Description: "Smooth British male, measured pace"},
		{ID: "156fb8d2-335b-4950-9cb3-a2d33befec77", Name: "Helpful Woman", Gender: "female", Description: "Bright American female, energetic"},
	}
}
