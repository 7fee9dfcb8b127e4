package services

import (
	"fmt"
	"path/filepath"

	"github.com/tejasg2002/Lisa-podcast-Generator/domain"
)

func segmentAudioPath(workDir string, index int) string {
	return filepath.Join(workDir, fmt.Sprintf("audio_%d.mp3", index))
}

func segmentVideoPath(workDir string, index int) string {
	return filepath.Join(workDir, fmt.Sprintf("video_%d.mp4", index))
}

func segmentCroppedVideoPath(workDir string, index int) string {
	return filepath.Join(workDir, fmt.Sprintf("video_%d_cropped.mp4", index))
}

func finalArtifactName(kind domain.PodcastKind) string {
	if kind == domain.VideoPodcast {
		return "final_podcast.mp4"
	}
	return "final_podcast.mp3"
}

func segmentAudioKey(requestID string, index int) string {
	return fmt.Sprintf("podcasts/video/%s/audio_%d.mp3", requestID, index)
}

func finalArtifactKey(requestID string, kind domain.PodcastKind) string {
	return fmt.Sprintf("podcasts/%s/%s/%s", kind, requestID, finalArtifactName(kind))
}
