package dto

import (
	"github.com/tejasg2002/Lisa-podcast-Generator/domain"
)

const (
	DefaultDurationMinutes = 5
	DefaultVoiceSpeed      = 1.0
)

type ElevenLabsConfig struct {
	Stability       *float64 `json:"stability" binding:"required,gte=0,lte=1"`
	SimilarityBoost *float64 `json:"similarity_boost" binding:"required,gte=0,lte=1"`
	Style           *float64 `json:"style" binding:"required,gte=0,lte=1"`
	ModelID         string   `json:"model_id" binding:"required"`
	Speed           *float64 `json:"speed" binding:"omitempty,gte=0.25,lte=4"`
}

type HeygenConfig struct {
	HostAvatarID  string `json:"host_avatar_id" binding:"required"`
	GuestAvatarID string `json:"guest_avatar_id" binding:"required"`
	Background    string `json:"background"`
}

type AudioPodcastRequest struct {
	InputType        string            `json:"input_type" binding:"required,oneof=idea script"`
	InputText        string            `json:"input_text" binding:"required"`
	Language         string            `json:"language" binding:"required,oneof=english hindi"`
	HostName         string            `json:"host_name" binding:"required"`
	GuestName        string            `json:"guest_name" binding:"required"`
	HostVoiceID      string            `json:"host_voice_id" binding:"required"`
	GuestVoiceID     string            `json:"guest_voice_id" binding:"required"`
	ElevenLabsConfig *ElevenLabsConfig `json:"elevenlabs_config" binding:"required"`
	DurationMinutes  *int              `json:"duration_minutes" binding:"omitempty,gte=1,lte=60"`
}

type VideoPodcastRequest struct {
	AudioPodcastRequest
	Orientation  string        `json:"orientation" binding:"required,oneof=landscape portrait"`
	HeygenConfig *HeygenConfig `json:"heygen_config" binding:"required"`
}

func (r AudioPodcastRequest) ToDomain(requestID string) domain.PodcastRequest {
	duration := DefaultDurationMinutes
	if r.DurationMinutes != nil {
		duration = *r.DurationMinutes
	}
	voice := domain.VoiceSettings{Speed: DefaultVoiceSpeed}
	if cfg := r.ElevenLabsConfig; cfg != nil {
		voice.ModelID = cfg.ModelID
		voice.Stability = valueOr(cfg.Stability, 0)
		voice.SimilarityBoost = valueOr(cfg.SimilarityBoost, 0)
		voice.Style = valueOr(cfg.Style, 0)
		voice.Speed = valueOr(cfg.Speed, DefaultVoiceSpeed)
	}

	return domain.PodcastRequest{
		RequestID:       requestID,
		Kind:            domain.AudioPodcast,
		InputType:       domain.InputType(r.InputType),
		InputText:       r.InputText,
		Language:        domain.Language(r.Language),
		Orientation:     domain.Landscape,
		HostName:        r.HostName,
		GuestName:       r.GuestName,
		HostVoiceID:     r.HostVoiceID,
		GuestVoiceID:    r.GuestVoiceID,
		Voice:           voice,
		DurationMinutes: duration,
	}
}

func (r VideoPodcastRequest) ToDomain(requestID string) domain.PodcastRequest {
	req := r.AudioPodcastRequest.ToDomain(requestID)
	req.Kind = domain.VideoPodcast
	req.Orientation = domain.Orientation(r.Orientation)
	if r.HeygenConfig != nil {
		req.Avatar = domain.AvatarSettings{
			HostAvatarID:  r.HeygenConfig.HostAvatarID,
			GuestAvatarID: r.HeygenConfig.GuestAvatarID,
			Background:    r.HeygenConfig.Background,
		}
	}
	return req
}

func valueOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}
