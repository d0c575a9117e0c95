package storage

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// S3Config describes the bucket trainer photos are uploaded to.
type S3Config struct {
	Bucket    string
	Prefix    string
	Region    string
	Endpoint  string // set for S3-compatible services such as MinIO or R2
	AccessKey string
	SecretKey string

	// PublicBaseURL, when set, is used to build the returned photo URL
	// instead of the bucket URL (for a CDN in front of the bucket).
	PublicBaseURL string
}

// S3PhotoStore implements interfaces.PhotoStore using Amazon S3 or a
// compatible service.
type S3PhotoStore struct {
	client *s3.S3
	cfg    S3Config
	log    *slog.Logger
}

// NewS3PhotoStore creates the uploader. Static credentials are used when both
// keys are set; otherwise the default AWS credential chain applies.
func NewS3PhotoStore(cfg S3Config, log *slog.Logger) (*S3PhotoStore, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}
	cfg.Prefix = strings.Trim(cfg.Prefix, "/")

	awsCfg := aws.Config{
		Region: aws.String(cfg.Region),
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
		awsCfg.S3ForcePathStyle = aws.Bool(true)
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	} else {
		log.Warn("No S3 credentials provided - relying on the default AWS credential chain")
	}

	sess, err := session.NewSession(&awsCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &S3PhotoStore{
		client: s3.New(sess),
		cfg:    cfg,
		log:    log,
	}, nil
}

// Put uploads data under name and returns the public URL of the object.
func (b *S3PhotoStore) Put(ctx context.Context, name string, contentType string, data []byte) (string, error) {
	start := time.Now()
	key := b.objectKey(name)

	_, err := b.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(b.cfg.Bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(data),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("public, max-age=31536000, immutable"),
	})
	if err != nil {
		b.log.Error("Failed to upload photo to S3",
			slog.String("bucket", b.cfg.Bucket),
			slog.String("key", key),
			"err", err,
			slog.Duration("duration", time.Since(start)))
		return "", fmt.Errorf("failed to upload object to S3: %w", err)
	}

	b.log.Debug("Stored photo in S3",
		slog.String("bucket", b.cfg.Bucket),
		slog.String("key", key),
		slog.Int("size", len(data)),
		slog.Duration("duration", time.Since(start)))

	return b.objectURL(key), nil
}

func (b *S3PhotoStore) objectKey(name string) string {
	if b.cfg.Prefix == "" {
		return name
	}
	return path.Join(b.cfg.Prefix, name)
}

func (b *S3PhotoStore) objectURL(key string) string {
	switch {
	case b.cfg.PublicBaseURL != "":
		return strings.TrimSuffix(b.cfg.PublicBaseURL, "/") + "/" + key
	case b.cfg.Endpoint != "":
		return strings.TrimSuffix(b.cfg.Endpoint, "/") + "/" + b.cfg.Bucket + "/" + key
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", b.cfg.Bucket, b.cfg.Region, key)
	}
}
