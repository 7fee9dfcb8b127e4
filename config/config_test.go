package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPipelineConfig_Defaults(t *testing.T) {
	t.Setenv("TMP_DIR", "/var/tmp/podcasts")

	cfg, err := GetPipelineConfig()
	require.NoError(t, err)

	assert.Equal(t, "/var/tmp/podcasts", cfg.TmpDir)
	assert.Equal(t, 10, cfg.VoiceConcurrency)
	assert.Equal(t, 5, cfg.UploadConcurrency)
	assert.Equal(t, 0, cfg.VideoConcurrency)
	assert.Equal(t, 5*time.Second, cfg.VideoPollInterval)
	assert.Equal(t, 60, cfg.VideoMaxPollAttempts)
	assert.Equal(t, "drain", cfg.StageFailurePolicy)
	assert.Equal(t, 30, cfg.SecondsPerSegment)
}

func TestGetPipelineConfig_Overrides(t *testing.T) {
	t.Setenv("VOICE_CONCURRENCY", "3")
	t.Setenv("VIDEO_POLL_INTERVAL", "250ms")
	t.Setenv("STAGE_FAILURE_POLICY", "cancel")

	cfg, err := GetPipelineConfig()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.VoiceConcurrency)
	assert.Equal(t, 250*time.Millisecond, cfg.VideoPollInterval)
	assert.Equal(t, "cancel", cfg.StageFailurePolicy)
}

func TestGetPipelineConfig_RejectsBadValues(t *testing.T) {
	t.Setenv("STAGE_FAILURE_POLICY", "retry")
	_, err := GetPipelineConfig()
	assert.Error(t, err)

	t.Setenv("STAGE_FAILURE_POLICY", "drain")
	t.Setenv("UPLOAD_CONCURRENCY", "many")
	_, err = GetPipelineConfig()
	assert.ErrorContains(t, err, "UPLOAD_CONCURRENCY")
}

func TestGetElevenLabsConfig_RequiresKey(t *testing.T) {
	t.Setenv("ELEVEN_LABS_API_KEY", "")
	_, err := GetElevenLabsConfig()
	assert.EqualError(t, err, "ELEVEN_LABS_API_KEY must be set")

	t.Setenv("ELEVEN_LABS_API_KEY", "secret")
	cfg, err := GetElevenLabsConfig()
	require.NoError(t, err)
	assert.Equal(t, "mp3_44100_128", cfg.OutputFormat)
	assert.Equal(t, "https://api.elevenlabs.io/v1/text-to-speech", cfg.ApiUrl)
}

func TestGetServerConfig(t *testing.T) {
	t.Setenv("STUB_PROVIDERS", "true")
	t.Setenv("PORT", "9000")

	cfg, err := GetServerConfig()
	require.NoError(t, err)
	assert.True(t, cfg.StubProviders)
	assert.Equal(t, "9000", cfg.Port)
	assert.Empty(t, cfg.JwksURL)
}
