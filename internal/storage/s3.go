package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/pageza/habyx/backend/config"
)

// S3API is the subset of the S3 client used by S3Store.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Store keeps images in an S3 bucket under the ProfileImages/ prefix.
type S3Store struct {
	client S3API
	cfg    *config.S3Config
}

func NewS3Store(client S3API, cfg *config.S3Config) *S3Store {
	return &S3Store{client: client, cfg: cfg}
}

func (s *S3Store) objectKey(key string) string {
	return ImageFolder + "/" + key
}

func (s *S3Store) Save(ctx context.Context, key, contentType string, data []byte) (string, error) {
	objectKey := s.objectKey(key)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        s.cfg.Bucket(),
		Key:           aws.String(objectKey),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image to s3: %w", err)
	}
	return s.cfg.ObjectURL(objectKey), nil
}

func (s *S3Store) Delete(ctx context.Context, path string) error {
	base := s.cfg.ObjectURL("")
	if !strings.HasPrefix(path, base) {
		return ErrInvalidPath
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: s.cfg.Bucket(),
		Key:    aws.String(strings.TrimPrefix(path, base)),
	})
	if err != nil {
		return fmt.Errorf("failed to delete image from s3: %w", err)
	}
	return nil
}
