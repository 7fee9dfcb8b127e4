package config

import (
	"fmt"
	"os"
)

type ElevenLabsConfig struct {
	ApiUrl       string
	ApiKey       string
	ModelId      string
	OutputFormat string
}

func GetElevenLabsConfig() (*ElevenLabsConfig, error) {
	apiKey := os.Getenv("ELEVEN_LABS_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("ELEVEN_LABS_API_KEY must be set")
	}

	return &ElevenLabsConfig{
		ApiUrl:       getEnv("ELEVEN_LABS_API_URL", "https://api.elevenlabs.io/v1/text-to-speech"),
		ApiKey:       apiKey,
		ModelId:      getEnv("ELEVEN_LABS_MODEL_ID", "eleven_multilingual_v2"),
		OutputFormat: getEnv("ELEVEN_LABS_OUTPUT_FORMAT", "mp3_44100_128"),
	}, nil
}
