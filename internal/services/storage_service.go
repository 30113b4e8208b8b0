// internal/services/storage_service.go
package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/bazarco/backend/internal/config"
)

const MaxImageSize = 5 * 1024 * 1024

var ErrInvalidImage = errors.New("only images (JPEG, PNG, WebP, GIF) under 5MB are allowed")

// ImageStore hosts product images.
type ImageStore interface {
	Configured() bool
	UploadImage(ctx context.Context, data []byte) (string, error)
}

type StorageService struct {
	s3Client s3iface.S3API
	config   config.AWSConfig
}

func NewStorageService(cfg config.AWSConfig) (*StorageService, error) {
	if !cfg.S3Configured() {
		logrus.Info("S3 not configured, product images are not stored")
		return &StorageService{config: cfg}, nil
	}

	// Create AWS session
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &StorageService{
		s3Client: s3.New(sess),
		config:   cfg,
	}, nil
}

func (s *StorageService) Configured() bool {
	return s.s3Client != nil
}

// UploadImage stores a validated image and returns its public URL.
func (s *StorageService) UploadImage(ctx context.Context, data []byte) (string, error) {
	if !s.Configured() {
		return "", errors.New("image store not configured")
	}

	contentType, err := DetectImageType(data)
	if err != nil {
		return "", err
	}

	key := s.generateKey(contentType)
	_, err = s.s3Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.config.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
		ACL:           aws.String("public-read"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return s.getS3URL(key), nil
}

func (s *StorageService) generateKey(contentType string) string {
	ext := map[string]string{
		"image/jpeg": ".jpg",
		"image/png":  ".png",
		"image/gif":  ".gif",
		"image/webp": ".webp",
	}[contentType]

	timestamp := time.Now().Format("20060102")
	filename := fmt.Sprintf("%s_%s%s", timestamp, uuid.New().String(), ext)

	if s.config.ImagePrefix != "" {
		return fmt.Sprintf("%s/%s", s.config.ImagePrefix, filename)
	}
	return filename
}

func (s *StorageService) getS3URL(key string) string {
	if s.config.CloudFrontURL != "" {
		return fmt.Sprintf("%s/%s", s.config.CloudFrontURL, key)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s",
		s.config.S3Bucket, s.config.Region, key)
}

// DetectImageType checks size and file signature and returns the MIME type.
func DetectImageType(data []byte) (string, error) {
	if len(data) == 0 || len(data) > MaxImageSize {
		return "", ErrInvalidImage
	}

	switch contentType := http.DetectContentType(data); contentType {
	case "image/jpeg", "image/png", "image/gif", "image/webp":
		return contentType, nil
	}
	return "", ErrInvalidImage
}
