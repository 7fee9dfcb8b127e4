package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/tejasg2002/Lisa-podcast-Generator/application/ports/outbound"
	"github.com/tejasg2002/Lisa-podcast-Generator/config"
	"github.com/tejasg2002/Lisa-podcast-Generator/domain"
)

type heyGenGenerateRequest struct {
	VideoInputs []heyGenVideoInput `json:"video_inputs"`
	Dimension   heyGenDimension    `json:"dimension"`
}

type heyGenVideoInput struct {
	Character  heyGenCharacter   `json:"character"`
	Voice      heyGenVoice       `json:"voice"`
	Background *heyGenBackground `json:"background,omitempty"`
}

type heyGenCharacter struct {
	Type           string  `json:"type"`
	TalkingPhotoID string  `json:"talking_photo_id"`
	Scale          float64 `json:"scale"`
	TalkingStyle   string  `json:"talking_style"`
	Expression     string  `json:"expression"`
	AvatarStyle    string  `json:"avatar_style"`
}

type heyGenVoice struct {
	Type     string `json:"type"`
	AudioURL string `json:"audio_url"`
}

type heyGenBackground struct {
	Type  string `json:"type"`
	Value string `json:"value,omitempty"`
	URL   string `json:"url,omitempty"`
}

type heyGenDimension struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type heyGenGenerateResponse struct {
	Error json.RawMessage `json:"error"`
	Data  *struct {
		VideoID string `json:"video_id"`
	} `json:"data"`
}

type heyGenStatusResponse struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Error   json.RawMessage `json:"error"`
	Data    *struct {
		Status   string          `json:"status"`
		VideoURL string          `json:"video_url"`
		Error    json.RawMessage `json:"error"`
	} `json:"data"`
}

type heyGenAvatarVideo struct {
	ContentFetcher
	logger       outbound.LoggerPort
	heyGenConfig *config.HeyGenConfig
}

func NewHeyGenAvatarVideo(contentFetcher ContentFetcher, heyGenConfig *config.HeyGenConfig, logger outbound.LoggerPort) outbound.AvatarVideoPort {
	return &heyGenAvatarVideo{
		ContentFetcher: contentFetcher,
		logger:         logger,
		heyGenConfig:   heyGenConfig,
	}
}

func (h *heyGenAvatarVideo) Submit(ctx context.Context, req outbound.SubmitVideoRequest) (string, error) {
	body := heyGenGenerateRequest{
		VideoInputs: []heyGenVideoInput{{
			Character: heyGenCharacter{
				Type:           "talking_photo",
				TalkingPhotoID: req.AvatarID,
				Scale:          1.0,
				TalkingStyle:   "stable",
				Expression:     "default",
				AvatarStyle:    "circle",
			},
			Voice: heyGenVoice{
				Type:     "audio",
				AudioURL: req.AudioURL,
			},
			Background: heyGenBackgroundFor(req.Background),
		}},
		Dimension: heyGenDimension{Width: req.Width, Height: req.Height},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		h.logger.Error(err, "Failed to marshal the HeyGen generate request")
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, h.heyGenConfig.ApiUrl+"/v2/video/generate", bytes.NewBuffer(payload))
	if err != nil {
		return "", err
	}
	h.setHeaders(httpReq)

	content, err := h.FetchContent(httpReq)
	if err != nil {
		return "", err
	}

	var res heyGenGenerateResponse
	if err := json.Unmarshal(content, &res); err != nil {
		h.logger.Error(err, "Failed to unmarshal the HeyGen generate response")
		return "", err
	}
	if res.Data == nil || res.Data.VideoID == "" {
		return "", fmt.Errorf("heygen returned no video id: %s", rawDetail(res.Error))
	}

	return res.Data.VideoID, nil
}

// Poll returns an error for transport failures and for responses carrying an error object;
// both are treated as transient by the caller.
func (h *heyGenAvatarVideo) Poll(ctx context.Context, jobID string) (domain.VideoJobReport, error) {
	endpoint := h.heyGenConfig.ApiUrl + "/v1/video_status.get?video_id=" + url.QueryEscape(jobID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.VideoJobReport{}, err
	}
	h.setHeaders(httpReq)

	content, err := h.FetchContent(httpReq)
	if err != nil {
		return domain.VideoJobReport{}, err
	}

	var res heyGenStatusResponse
	if err := json.Unmarshal(content, &res); err != nil {
		return domain.VideoJobReport{}, err
	}
	if detail := rawDetail(res.Error); detail != "" {
		return domain.VideoJobReport{}, errors.New("heygen status error: " + detail)
	}
	if res.Data == nil {
		return domain.VideoJobReport{}, fmt.Errorf("heygen status response has no data: %s", res.Message)
	}

	return domain.VideoJobReport{
		Status:   res.Data.Status,
		VideoURL: res.Data.VideoURL,
		Detail:   rawDetail(res.Data.Error),
	}, nil
}

func (h *heyGenAvatarVideo) Download(ctx context.Context, videoURL string, destPath string) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, videoURL, nil)
	if err != nil {
		return err
	}
	return h.FetchToFile(httpReq, destPath)
}

func (h *heyGenAvatarVideo) setHeaders(req *http.Request) {
	req.Header.Set("X-Api-Key", h.heyGenConfig.ApiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
}

// heyGenBackgroundFor maps "#rrggbb" to a color background and anything else to an image URL.
func heyGenBackgroundFor(background string) *heyGenBackground {
	background = strings.TrimSpace(background)
	if background == "" {
		return nil
	}
	if strings.HasPrefix(background, "#") {
		return &heyGenBackground{Type: "color", Value: background}
	}
	return &heyGenBackground{Type: "image", URL: background}
}

func rawDetail(raw json.RawMessage) string {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return ""
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}
	var obj struct {
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && (obj.Message != "" || obj.Detail != "") {
		return strings.TrimSpace(obj.Message + " " + obj.Detail)
	}
	return trimmed
}
