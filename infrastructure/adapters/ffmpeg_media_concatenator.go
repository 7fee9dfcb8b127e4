package adapters

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/tejasg2002/Lisa-podcast-Generator/application/ports/outbound"
	"github.com/tejasg2002/Lisa-podcast-Generator/domain"
)

var ErrNoMergeInputs = errors.New("no inputs to concatenate")

type ffmpegMediaConcatenator struct {
	logger outbound.LoggerPort
	binary string
}

func NewFFmpegMediaConcatenator(logger outbound.LoggerPort, binary string) outbound.MediaConcatenatorPort {
	if binary == "" {
		binary = "ffmpeg"
	}
	return &ffmpegMediaConcatenator{
		logger: logger,
		binary: binary,
	}
}

func (f *ffmpegMediaConcatenator) ConcatenateAudio(ctx context.Context, inputs []string, outputPath string) error {
	return f.concatenate(ctx, inputs, outputPath, func(listFile string) []string {
		return []string{"-y", "-f", "concat", "-safe", "0", "-i", listFile,
			"-acodec", "libmp3lame", "-ar", "44100", "-ab", "128k", outputPath}
	})
}

func (f *ffmpegMediaConcatenator) ConcatenateVideo(ctx context.Context, inputs []string, outputPath string) error {
	return f.concatenate(ctx, inputs, outputPath, func(listFile string) []string {
		return []string{"-y", "-f", "concat", "-safe", "0", "-i", listFile, "-c", "copy", outputPath}
	})
}

func (f *ffmpegMediaConcatenator) CropPad(ctx context.Context, inputPath string, outputPath string, geometry domain.FrameGeometry) error {
	return f.run(ctx, "-y", "-i", inputPath, "-vf", cropPadFilter(geometry), "-c:v", "libx264", "-c:a", "copy", outputPath)
}

// concatenate writes a concat demuxer list in the order given and runs ffmpeg over it.
func (f *ffmpegMediaConcatenator) concatenate(ctx context.Context, inputs []string, outputPath string, args func(listFile string) []string) error {
	if len(inputs) == 0 {
		return ErrNoMergeInputs
	}

	listFile, err := f.writeListFile(filepath.Dir(outputPath), inputs)
	if err != nil {
		return err
	}
	defer func(name string) {
		if err := os.Remove(name); err != nil {
			f.logger.Error(err, "Failed to remove concat list file")
		}
	}(listFile)

	return f.run(ctx, args(listFile)...)
}

func (f *ffmpegMediaConcatenator) writeListFile(dir string, inputs []string) (string, error) {
	fileList, err := os.Create(filepath.Join(dir, "concat_"+uuid.NewString()+".txt"))
	if err != nil {
		f.logger.Error(err, "Failed to create concat list file")
		return "", err
	}

	writer := bufio.NewWriter(fileList)
	for _, input := range inputs {
		abs, err := filepath.Abs(input)
		if err != nil {
			abs = input
		}
		if _, err = writer.WriteString(concatListEntry(abs)); err != nil {
			_ = fileList.Close()
			f.logger.Error(err, "Failed to write to concat list file")
			return "", err
		}
	}
	if err = writer.Flush(); err != nil {
		_ = fileList.Close()
		f.logger.Error(err, "Failed to flush concat list file")
		return "", err
	}

	return fileList.Name(), fileList.Close()
}

func (f *ffmpegMediaConcatenator) run(ctx context.Context, args ...string) error {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, f.binary, args...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		f.logger.ErrorWithFields(err, "ffmpeg failed", map[string]interface{}{
			"args":   strings.Join(args, " "),
			"stderr": tail(stderr.String(), 2000),
		})
		return fmt.Errorf("ffmpeg: %w: %s", err, tail(stderr.String(), 500))
	}
	return nil
}

func concatListEntry(path string) string {
	return "file '" + strings.ReplaceAll(path, "'", `'\''`) + "'\n"
}

func cropPadFilter(g domain.FrameGeometry) string {
	return fmt.Sprintf("crop=%d:%d:%d:%d,scale=%d:%d,pad=%d:%d:%d:%d:%s",
		g.CropWidth, g.CropHeight, g.CropX, g.CropY,
		g.ScaleWidth, g.ScaleHeight,
		g.CanvasWidth, g.CanvasHeight, g.PadX, g.PadY, g.PadColor)
}

func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
