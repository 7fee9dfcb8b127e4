package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tejasg2002/Lisa-podcast-Generator/infrastructure/adapters"
)

func TestResourceTracker_ReleaseRemovesFilesThenDir(t *testing.T) {
	workDir := filepath.Join(t.TempDir(), "run-1")
	require.NoError(t, os.MkdirAll(workDir, 0o755))
	audio := segmentAudioPath(workDir, 0)
	video := segmentVideoPath(workDir, 0)
	require.NoError(t, os.WriteFile(audio, []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(video, []byte("v"), 0o644))

	tracker := NewResourceTracker(adapters.NewNopLogger())
	tracker.TrackDir(workDir)
	tracker.Track(audio)
	tracker.Track(video)
	tracker.Track(audio)

	warnings := tracker.Release()

	assert.Empty(t, warnings)
	assert.NoFileExists(t, audio)
	assert.NoFileExists(t, video)
	assert.NoDirExists(t, workDir)
}

func TestResourceTracker_MissingFilesAreIgnored(t *testing.T) {
	tracker := NewResourceTracker(adapters.NewNopLogger())
	tracker.Track(filepath.Join(t.TempDir(), "never-written.mp3"))

	assert.Empty(t, tracker.Release())
}

func TestResourceTracker_ReleaseIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audio_0.mp3")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0o644))

	tracker := NewResourceTracker(adapters.NewNopLogger())
	tracker.Track(path)
	require.Empty(t, tracker.Release())

	require.NoError(t, os.WriteFile(path, []byte("recreated"), 0o644))
	assert.Nil(t, tracker.Release())
	assert.FileExists(t, path)

	tracker.Track(path)
	assert.Nil(t, tracker.Release())
	assert.FileExists(t, path)
}

func TestResourceTracker_FailuresBecomeWarnings(t *testing.T) {
	busy := filepath.Join(t.TempDir(), "busy")
	require.NoError(t, os.MkdirAll(busy, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(busy, "keep.txt"), []byte("x"), 0o644))

	tracker := NewResourceTracker(adapters.NewNopLogger())
	tracker.Track(busy)

	warnings := tracker.Release()

	require.Len(t, warnings, 1)
	assert.Equal(t, busy, warnings[0].Path)
	assert.Error(t, warnings[0].Cause)
}
