package adapters

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tejasg2002/Lisa-podcast-Generator/domain"
)

// fakeFFmpeg writes a shell script that records its arguments and the concat list it was given.
func fakeFFmpeg(t *testing.T, exitCode int) (binary string, recordDir string) {
	if runtime.GOOS == "windows" {
		t.Skip("fake ffmpeg needs a POSIX shell")
	}
	recordDir = t.TempDir()
	script := "#!/bin/sh\n" +
		"printf '%s\\n' \"$@\" > " + recordDir + "/args.txt\n" +
		"prev=''\n" +
		"for a in \"$@\"; do\n" +
		"  if [ \"$prev\" = '-i' ] && [ -f \"$a\" ]; then cat \"$a\" > " + recordDir + "/list.txt; fi\n" +
		"  prev=\"$a\"\n" +
		"done\n"
	if exitCode != 0 {
		script += "echo 'Invalid data found when processing input' >&2\nexit " + strconv.Itoa(exitCode) + "\n"
	}
	binary = filepath.Join(recordDir, "ffmpeg")
	require.NoError(t, os.WriteFile(binary, []byte(script), 0o755))
	return binary, recordDir
}

func readLines(t *testing.T, path string) []string {
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimSpace(string(content)), "\n")
}

func TestFFmpegMediaConcatenator_ConcatenateAudio(t *testing.T) {
	binary, recordDir := fakeFFmpeg(t, 0)
	workDir := t.TempDir()
	inputs := []string{filepath.Join(workDir, "audio_0.mp3"), filepath.Join(workDir, "audio_1.mp3")}
	output := filepath.Join(workDir, "final_podcast.mp3")

	err := NewFFmpegMediaConcatenator(NewNopLogger(), binary).ConcatenateAudio(context.Background(), inputs, output)

	require.NoError(t, err)
	args := readLines(t, filepath.Join(recordDir, "args.txt"))
	assert.Equal(t, []string{"-y", "-f", "concat", "-safe", "0"}, args[:5])
	assert.Equal(t, []string{"-acodec", "libmp3lame", "-ar", "44100", "-ab", "128k", output}, args[7:])
	assert.Equal(t, []string{
		"file '" + inputs[0] + "'",
		"file '" + inputs[1] + "'",
	}, readLines(t, filepath.Join(recordDir, "list.txt")))

	leftovers, err := filepath.Glob(filepath.Join(workDir, "concat_*.txt"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestFFmpegMediaConcatenator_ConcatenateVideoCopiesStreams(t *testing.T) {
	binary, recordDir := fakeFFmpeg(t, 0)
	workDir := t.TempDir()
	output := filepath.Join(workDir, "final_podcast.mp4")

	err := NewFFmpegMediaConcatenator(NewNopLogger(), binary).ConcatenateVideo(context.Background(),
		[]string{filepath.Join(workDir, "video_0.mp4")}, output)

	require.NoError(t, err)
	args := readLines(t, filepath.Join(recordDir, "args.txt"))
	assert.Equal(t, []string{"-c", "copy", output}, args[len(args)-3:])
}

func TestFFmpegMediaConcatenator_CropPad(t *testing.T) {
	binary, recordDir := fakeFFmpeg(t, 0)

	err := NewFFmpegMediaConcatenator(NewNopLogger(), binary).CropPad(context.Background(), "in.mp4", "out.mp4", domain.PortraitGeometry)

	require.NoError(t, err)
	assert.Equal(t, []string{
		"-y", "-i", "in.mp4",
		"-vf", "crop=720:720:280:0,scale=720:720,pad=720:1280:0:280:black",
		"-c:v", "libx264", "-c:a", "copy", "out.mp4",
	}, readLines(t, filepath.Join(recordDir, "args.txt")))
}

func TestFFmpegMediaConcatenator_Failure(t *testing.T) {
	binary, _ := fakeFFmpeg(t, 1)
	workDir := t.TempDir()

	err := NewFFmpegMediaConcatenator(NewNopLogger(), binary).ConcatenateAudio(context.Background(),
		[]string{filepath.Join(workDir, "audio_0.mp3")}, filepath.Join(workDir, "final_podcast.mp3"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid data found")
}

func TestFFmpegMediaConcatenator_NoInputs(t *testing.T) {
	err := NewFFmpegMediaConcatenator(NewNopLogger(), "ffmpeg").ConcatenateAudio(context.Background(), nil, filepath.Join(t.TempDir(), "x.mp3"))

	assert.ErrorIs(t, err, ErrNoMergeInputs)
}

func TestConcatListEntry_EscapesQuotes(t *testing.T) {
	assert.Equal(t, "file '/tmp/it'\\''s/audio_0.mp3'\n", concatListEntry("/tmp/it's/audio_0.mp3"))
}
