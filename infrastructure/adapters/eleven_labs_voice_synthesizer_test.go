package adapters

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tejasg2002/Lisa-podcast-Generator/application/ports/outbound"
	"github.com/tejasg2002/Lisa-podcast-Generator/config"
	"github.com/tejasg2002/Lisa-podcast-Generator/domain"
)

func TestElevenLabsVoiceSynthesizer_Synthesize(t *testing.T) {
	var gotBody elevenLabsRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/text-to-speech/voice-host", r.URL.Path)
		assert.Equal(t, "mp3_44100_128", r.URL.Query().Get("output_format"))
		assert.Equal(t, "secret", r.Header.Get("xi-api-key"))
		assert.Equal(t, "audio/mpeg", r.Header.Get("Accept"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &gotBody))
		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("ID3-fake-mp3"))
	}))
	defer server.Close()

	logger := NewNopLogger()
	synthesizer := NewElevenLabsVoiceSynthesizer(NewContentFetcher(logger, server.Client()), &config.ElevenLabsConfig{
		ApiUrl:       server.URL + "/v1/text-to-speech",
		ApiKey:       "secret",
		ModelId:      "default-model",
		OutputFormat: "mp3_44100_128",
	}, logger)

	outputPath := filepath.Join(t.TempDir(), "audio_0.mp3")
	path, err := synthesizer.Synthesize(context.Background(), outbound.SynthesizeVoiceRequest{
		Text:       "Welcome to the show",
		VoiceID:    "voice-host",
		Settings:   domain.VoiceSettings{Stability: 0.4, SimilarityBoost: 0.8, Style: 0.1},
		OutputPath: outputPath,
	})

	require.NoError(t, err)
	assert.Equal(t, outputPath, path)
	content, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Equal(t, "ID3-fake-mp3", string(content))

	assert.Equal(t, "Welcome to the show", gotBody.Text)
	assert.Equal(t, "default-model", gotBody.ModelId)
	assert.Equal(t, 0.4, gotBody.VoiceSettings.Stability)
	assert.Equal(t, 0.8, gotBody.VoiceSettings.SimilarityBoost)
	assert.Equal(t, 1.0, gotBody.VoiceSettings.Speed)
}

func TestElevenLabsVoiceSynthesizer_ProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"invalid api key"}`))
	}))
	defer server.Close()

	logger := NewNopLogger()
	synthesizer := NewElevenLabsVoiceSynthesizer(NewContentFetcher(logger, server.Client()), &config.ElevenLabsConfig{
		ApiUrl: server.URL,
		ApiKey: "wrong",
	}, logger)

	_, err := synthesizer.Synthesize(context.Background(), outbound.SynthesizeVoiceRequest{
		Text:       "hi",
		VoiceID:    "v",
		OutputPath: filepath.Join(t.TempDir(), "audio_0.mp3"),
	})

	var statusErr *HTTPStatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
	assert.Contains(t, statusErr.Body, "invalid api key")
}
