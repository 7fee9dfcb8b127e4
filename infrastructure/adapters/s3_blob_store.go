package adapters

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/tejasg2002/Lisa-podcast-Generator/application/ports/outbound"
	"github.com/tejasg2002/Lisa-podcast-Generator/config"
)

var contentTypes = map[string]string{
	".mp3": "audio/mpeg",
	".mp4": "video/mp4",
}

type s3BlobStore struct {
	logger   outbound.LoggerPort
	s3Svc    s3iface.S3API
	s3Config *config.S3Config
}

func NewS3BlobStore(s3Svc s3iface.S3API, s3Config *config.S3Config, logger outbound.LoggerPort) outbound.BlobStorePort {
	return &s3BlobStore{
		logger:   logger,
		s3Svc:    s3Svc,
		s3Config: s3Config,
	}
}

func (s *s3BlobStore) Put(ctx context.Context, localPath string, key string) (string, error) {
	file, err := os.Open(localPath)
	if err != nil {
		s.logger.ErrorWithFields(err, "Failed to open file for upload", map[string]interface{}{
			"path": localPath,
		})
		return "", err
	}

	defer func(file *os.File) {
		err := file.Close()
		if err != nil {
			s.logger.Error(err, "Failed to close uploaded file")
		}
	}(file)

	putInput := &s3.PutObjectInput{
		Bucket: aws.String(s.s3Config.BucketName),
		Key:    aws.String(key),
		Body:   file,
	}
	if contentType, ok := contentTypes[strings.ToLower(filepath.Ext(localPath))]; ok {
		putInput.ContentType = aws.String(contentType)
	}

	_, err = s.s3Svc.PutObjectWithContext(ctx, putInput)
	if err != nil {
		s.logger.ErrorWithFields(err, "Failed to upload object to S3", map[string]interface{}{
			"bucket": s.s3Config.BucketName,
			"key":    key,
		})
		return "", err
	}

	s.logger.DebugWithFields("Uploaded object to S3", map[string]interface{}{
		"bucket": s.s3Config.BucketName,
		"key":    key,
	})
	return s.publicURL(key), nil
}

func (s *s3BlobStore) publicURL(key string) string {
	if s.s3Config.PublicBaseURL != "" {
		return strings.TrimRight(s.s3Config.PublicBaseURL, "/") + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, key)
}
