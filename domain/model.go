package domain

type Speaker string

const (
	HostSpeaker  Speaker = "host"
	GuestSpeaker Speaker = "guest"
)

type PodcastKind string

const (
	AudioPodcast PodcastKind = "audio"
	VideoPodcast PodcastKind = "video"
)

type InputType string

const (
	IdeaInput   InputType = "idea"
	ScriptInput InputType = "script"
)

type Language string

const (
	English Language = "english"
	Hindi   Language = "hindi"
)

type Orientation string

const (
	Landscape Orientation = "landscape"
	Portrait  Orientation = "portrait"
)

// Segment is one speaker-attributed line of dialogue. Index is its position in the
// final merge and never changes once the segmenter has produced it.
type Segment struct {
	Index   int
	Speaker Speaker
	Text    string
}

func NewSegment(index int, speaker Speaker, text string) Segment {
	return Segment{
		Index:   index,
		Speaker: speaker,
		Text:    text,
	}
}

type VoiceSettings struct {
	ModelID         string
	Stability       float64
	SimilarityBoost float64
	Style           float64
	Speed           float64
}

type AvatarSettings struct {
	HostAvatarID  string
	GuestAvatarID string
	Background    string
}

type PodcastRequest struct {
	RequestID       string
	Kind            PodcastKind
	InputType       InputType
	InputText       string
	Language        Language
	Orientation     Orientation
	HostName        string
	GuestName       string
	HostVoiceID     string
	GuestVoiceID    string
	Voice           VoiceSettings
	Avatar          AvatarSettings
	DurationMinutes int
}

func (r PodcastRequest) VoiceFor(speaker Speaker) string {
	if speaker == HostSpeaker {
		return r.HostVoiceID
	}
	return r.GuestVoiceID
}

func (r PodcastRequest) AvatarFor(speaker Speaker) string {
	if speaker == HostSpeaker {
		return r.Avatar.HostAvatarID
	}
	return r.Avatar.GuestAvatarID
}

type PodcastResult struct {
	URL                      string      `json:"s3_url"`
	EstimatedDurationSeconds int         `json:"duration_seconds"`
	Type                     PodcastKind `json:"type"`
}
