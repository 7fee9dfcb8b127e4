package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/tejasg2002/Lisa-podcast-Generator/application/ports/outbound"
	"github.com/tejasg2002/Lisa-podcast-Generator/config"
)

type elevenLabsRequest struct {
	Text          string                  `json:"text"`
	ModelId       string                  `json:"model_id"`
	VoiceSettings elevenLabsVoiceSettings `json:"voice_settings"`
}

type elevenLabsVoiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style"`
	Speed           float64 `json:"speed"`
}

type elevenLabsVoiceSynthesizer struct {
	ContentFetcher
	logger           outbound.LoggerPort
	elevenLabsConfig *config.ElevenLabsConfig
}

func NewElevenLabsVoiceSynthesizer(contentFetcher ContentFetcher, elevenLabsConfig *config.ElevenLabsConfig, logger outbound.LoggerPort) outbound.VoiceSynthesizerPort {
	return &elevenLabsVoiceSynthesizer{
		ContentFetcher:   contentFetcher,
		logger:           logger,
		elevenLabsConfig: elevenLabsConfig,
	}
}

func (e *elevenLabsVoiceSynthesizer) Synthesize(ctx context.Context, req outbound.SynthesizeVoiceRequest) (string, error) {
	httpReq, err := e.getRequest(ctx, req)
	if err != nil {
		return "", err
	}

	if err := e.FetchToFile(httpReq, req.OutputPath); err != nil {
		e.logger.ErrorWithFields(err, "Failed to synthesize voice", map[string]interface{}{
			"voice_id": req.VoiceID,
			"path":     req.OutputPath,
		})
		return "", err
	}

	return req.OutputPath, nil
}

func (e *elevenLabsVoiceSynthesizer) getRequest(ctx context.Context, req outbound.SynthesizeVoiceRequest) (*http.Request, error) {
	modelID := req.Settings.ModelID
	if modelID == "" {
		modelID = e.elevenLabsConfig.ModelId
	}
	speed := req.Settings.Speed
	if speed == 0 {
		speed = 1.0
	}
	reqBody := elevenLabsRequest{
		Text:    req.Text,
		ModelId: modelID,
		VoiceSettings: elevenLabsVoiceSettings{
			Stability:       req.Settings.Stability,
			SimilarityBoost: req.Settings.SimilarityBoost,
			Style:           req.Settings.Style,
			Speed:           speed,
		},
	}

	jsonPayload, err := json.Marshal(reqBody)
	if err != nil {
		e.logger.Error(err, "Failed to marshal the request body for ElevenLabs API")
		return nil, err
	}

	endpoint := e.elevenLabsConfig.ApiUrl + "/" + url.PathEscape(req.VoiceID) +
		"?output_format=" + url.QueryEscape(e.elevenLabsConfig.OutputFormat)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonPayload))
	if err != nil {
		e.logger.ErrorWithFields(err, "Failed to create the HTTP POST request", map[string]interface{}{
			"URL": endpoint,
		})
		return nil, err
	}

	reqHeaders := map[string]string{
		"Accept":       "audio/mpeg",
		"xi-api-key":   e.elevenLabsConfig.ApiKey,
		"Content-Type": "application/json",
	}
	for key, value := range reqHeaders {
		httpReq.Header.Add(key, value)
	}

	return httpReq, nil
}
