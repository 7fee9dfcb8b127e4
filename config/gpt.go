package config

import (
	"fmt"
	"os"
)

type GptConfig struct {
	ApiUrl      string
	ApiKey      string
	Model       string
	Temperature float64
}

func GetGptConfig() (*GptConfig, error) {
	apiKey := os.Getenv("GPT_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GPT_API_KEY must be set")
	}
	return &GptConfig{
		ApiUrl:      getEnv("GPT_API_URL", "https://api.openai.com/v1/chat/completions"),
		ApiKey:      apiKey,
		Model:       getEnv("GPT_MODEL", "gpt-4o-mini"),
		Temperature: 0.7,
	}, nil
}
