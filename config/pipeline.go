package config

import (
	"fmt"
	"os"
	"time"
)

type PipelineConfig struct {
	TmpDir               string
	FFmpegBinary         string
	VoiceConcurrency     int
	UploadConcurrency    int
	VideoConcurrency     int
	VideoPollInterval    time.Duration
	VideoMaxPollAttempts int
	StageFailurePolicy   string
	SecondsPerSegment    int
	WorkerPoolSize       int
}

func GetPipelineConfig() (*PipelineConfig, error) {
	var err error
	cfg := &PipelineConfig{
		TmpDir:             getEnv("TMP_DIR", os.TempDir()),
		FFmpegBinary:       getEnv("FFMPEG_BINARY", "ffmpeg"),
		StageFailurePolicy: getEnv("STAGE_FAILURE_POLICY", "drain"),
	}
	if cfg.StageFailurePolicy != "drain" && cfg.StageFailurePolicy != "cancel" {
		return nil, fmt.Errorf("STAGE_FAILURE_POLICY must be drain or cancel, got %q", cfg.StageFailurePolicy)
	}

	ints := []struct {
		key      string
		fallback int
		target   *int
	}{
		{"VOICE_CONCURRENCY", 10, &cfg.VoiceConcurrency},
		{"UPLOAD_CONCURRENCY", 5, &cfg.UploadConcurrency},
		{"VIDEO_CONCURRENCY", 0, &cfg.VideoConcurrency},
		{"VIDEO_MAX_POLL_ATTEMPTS", 60, &cfg.VideoMaxPollAttempts},
		{"SECONDS_PER_SEGMENT", 30, &cfg.SecondsPerSegment},
		{"WORKER_POOL_SIZE", 120, &cfg.WorkerPoolSize},
	}
	for _, v := range ints {
		if *v.target, err = getEnvInt(v.key, v.fallback); err != nil {
			return nil, err
		}
	}
	if cfg.VideoMaxPollAttempts <= 0 {
		return nil, fmt.Errorf("VIDEO_MAX_POLL_ATTEMPTS must be positive")
	}

	cfg.VideoPollInterval, err = getEnvDuration("VIDEO_POLL_INTERVAL", 5*time.Second)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
