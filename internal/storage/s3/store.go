// Package s3 stores uploads in an S3-compatible bucket with the AWS SDK v2 upload manager.
package s3

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"jobpilot/backend/internal/storage"
)

// Config selects the bucket. Endpoint is set for MinIO and similar (path-style addressing);
// PublicBaseURL overrides the URL returned to callers (e.g. a CDN).
type Config struct {
	Bucket        string
	Region        string
	Endpoint      string
	PublicBaseURL string
}

type putter interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// Store implements storage.Uploader.
type Store struct {
	uploader putter
	cfg      Config
	newID    func() string
}

// New loads AWS credentials from the default chain (env, shared config, instance role).
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3: bucket is required")
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}
	awsCfg, err := awscfg.LoadDefaultConfig(ctx, awscfg.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("s3: load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &Store{
		uploader: manager.NewUploader(client),
		cfg:      cfg,
		newID:    uuid.NewString,
	}, nil
}

// Upload writes f to <folder>/<random id><ext> and returns the object's public URL.
func (s *Store) Upload(ctx context.Context, folder string, f storage.File) (string, error) {
	key := s.objectKey(folder, f.Name)
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
		Body:   f.Body,
	}
	if f.ContentType != "" {
		input.ContentType = aws.String(f.ContentType)
	}
	if _, err := s.uploader.Upload(ctx, input); err != nil {
		return "", fmt.Errorf("s3: put %s: %w", key, err)
	}
	return s.publicURL(key), nil
}

func (s *Store) objectKey(folder, name string) string {
	ext := strings.ToLower(path.Ext(name))
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return s.newID() + ext
	}
	return folder + "/" + s.newID() + ext
}

func (s *Store) publicURL(key string) string {
	segs := strings.Split(key, "/")
	for i, seg := range segs {
		segs[i] = url.PathEscape(seg)
	}
	escaped := strings.Join(segs, "/")
	switch {
	case s.cfg.PublicBaseURL != "":
		return strings.TrimRight(s.cfg.PublicBaseURL, "/") + "/" + escaped
	case s.cfg.Endpoint != "":
		return strings.TrimRight(s.cfg.Endpoint, "/") + "/" + s.cfg.Bucket + "/" + escaped
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, escaped)
	}
}

var _ storage.Uploader = (*Store)(nil)
