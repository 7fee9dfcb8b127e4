package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/donovanhide/eventsource"
	"github.com/tejasg2002/Lisa-podcast-Generator/application/ports/outbound"
	"github.com/tejasg2002/Lisa-podcast-Generator/config"
	"github.com/tejasg2002/Lisa-podcast-Generator/domain"
)

const (
	DoneSignal      = "[DONE]"
	WordsPerMinute  = 150
	MaxScriptTokens = 800
)

var ErrEmptyScript = errors.New("script stream produced no content")

type chatGptRequest struct {
	Stream      bool             `json:"stream"`
	Model       string           `json:"model"`
	Messages    []chatGptMessage `json:"messages"`
	Temperature float64          `json:"temperature"`
	MaxTokens   int              `json:"max_tokens"`
}

type chatGptMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatGptChunkBody struct {
	Choices []chatGptResponseChoice `json:"choices"`
}

type chatGptResponseChoice struct {
	Index int `json:"index"`
	Delta struct {
		Content string `json:"content"`
	} `json:"delta"`
}

type gptScriptGenerator struct {
	logger    outbound.LoggerPort
	gptConfig *config.GptConfig
	client    *http.Client
}

// NewGptScriptGenerator uses a client without a timeout; the request context bounds the stream.
func NewGptScriptGenerator(gptConfig *config.GptConfig, logger outbound.LoggerPort) outbound.ScriptGeneratorPort {
	return &gptScriptGenerator{
		logger:    logger,
		gptConfig: gptConfig,
		client:    &http.Client{},
	}
}

// Generate streams a chat completion and returns the concatenated dialogue.
func (g *gptScriptGenerator) Generate(ctx context.Context, req outbound.ScriptRequest) (string, error) {
	httpReq, err := g.createRequest(ctx, req)
	if err != nil {
		return "", err
	}

	res, err := g.client.Do(httpReq)
	if err != nil {
		g.logger.Error(err, "Failed to open script stream")
		return "", err
	}

	defer func(body io.ReadCloser) {
		err := body.Close()
		if err != nil {
			g.logger.Error(err, "Failed to close script stream")
		}
	}(res.Body)

	if res.StatusCode != http.StatusOK {
		message, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBodyBytes))
		statusErr := &HTTPStatusError{StatusCode: res.StatusCode, Body: string(message)}
		g.logger.Error(statusErr, "Script stream rejected")
		return "", statusErr
	}

	var script strings.Builder
	decoder := eventsource.NewDecoder(res.Body)
	for {
		ev, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return "", ctxErr
			}
			g.logger.Error(err, "Error occurred during script streaming")
			return "", err
		}
		if ev.Data() == DoneSignal {
			break
		}
		payload, err := g.extractPayload(ev)
		if err != nil {
			return "", err
		}
		script.WriteString(payload)
	}

	text := strings.TrimSpace(script.String())
	if text == "" {
		return "", ErrEmptyScript
	}
	g.logger.InfoWithFields("Script stream closed", map[string]interface{}{
		"characters": len(text),
	})
	return text, nil
}

func (g *gptScriptGenerator) extractPayload(event eventsource.Event) (string, error) {
	var chunkBody chatGptChunkBody
	if err := json.Unmarshal([]byte(event.Data()), &chunkBody); err != nil {
		g.logger.Error(err, "Failed to unmarshal event data")
		return "", err
	}
	if len(chunkBody.Choices) == 0 {
		return "", nil
	}
	return chunkBody.Choices[0].Delta.Content, nil
}

func (g *gptScriptGenerator) createRequest(ctx context.Context, req outbound.ScriptRequest) (*http.Request, error) {
	minutes := req.DurationMinutes
	if minutes <= 0 {
		minutes = 5
	}
	words := minutes * WordsPerMinute
	maxTokens := words * 2
	if maxTokens > MaxScriptTokens {
		maxTokens = MaxScriptTokens
	}

	promptReq := chatGptRequest{
		Stream: true,
		Model:  g.gptConfig.Model,
		Messages: []chatGptMessage{
			{Role: "system", Content: systemPrompt(req)},
			{Role: "user", Content: userPrompt(req, words, minutes)},
		},
		Temperature: g.gptConfig.Temperature,
		MaxTokens:   maxTokens,
	}

	payloadBytes, err := json.Marshal(promptReq)
	if err != nil {
		g.logger.Error(err, "Failed to marshal the request body")
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.gptConfig.ApiUrl, bytes.NewBuffer(payloadBytes))
	if err != nil {
		g.logger.Error(err, "Failed to create the HTTP request")
		return nil, err
	}

	httpReq.Header.Set("Authorization", "Bearer "+g.gptConfig.ApiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")

	return httpReq, nil
}

func systemPrompt(req outbound.ScriptRequest) string {
	return fmt.Sprintf("You write podcast scripts as a dialogue between %s (host) and %s (guest). "+
		"Format every line exactly as \"Name: dialogue\" using only those two names. "+
		"Do not use markdown, headings, bullet points or stage directions.", req.HostName, req.GuestName)
}

func userPrompt(req outbound.ScriptRequest, words int, minutes int) string {
	if req.Language == domain.Hindi {
		return fmt.Sprintf("Write a natural, engaging podcast conversation in Hindi (Devanagari script) about: %s\n"+
			"Keep the speaker names %s and %s in English letters before each colon.\n"+
			"Use everyday conversational Hindi, with English terms only where they are commonly used.\n"+
			"The conversation should be about %d words long (%d minutes when spoken).",
			req.Topic, req.HostName, req.GuestName, words, minutes)
	}
	return fmt.Sprintf("Write a natural, engaging podcast conversation about: %s\n"+
		"%s is the host and opens the show; %s is the guest and brings expertise and stories.\n"+
		"Alternate speakers often and keep each turn short.\n"+
		"The conversation should be about %d words long (%d minutes when spoken).",
		req.Topic, req.HostName, req.GuestName, words, minutes)
}
