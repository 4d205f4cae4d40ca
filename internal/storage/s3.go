package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/OFFIS-RIT/feedlens/internal/util"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

const reportPrefix = "reports"

// ErrObjectNotFound is returned when a key does not exist in the bucket.
var ErrObjectNotFound = errors.New("object not found")

// ObjectStore keeps submitted feedback documents.
type ObjectStore interface {
	PutText(ctx context.Context, key string, text string) error
	GetText(ctx context.Context, key string) (string, error)
	DeleteFile(ctx context.Context, key string) error
}

// InputKey is the object key of the document submitted for a report.
func InputKey(reportID string) string {
	return fmt.Sprintf("%s/%s.txt", reportPrefix, reportID)
}

// S3Store is an ObjectStore on an S3 compatible bucket.
type S3Store struct {
	client *s3.Client
	bucket string
}

// NewS3Store wraps client, storing objects in bucket.
func NewS3Store(client *s3.Client, bucket string) *S3Store {
	return &S3Store{client: client, bucket: bucket}
}

// NewS3Client builds an S3 client from the AWS_* environment variables.
// Path style addressing is used so MinIO and similar servers work.
func NewS3Client(ctx context.Context) (*s3.Client, error) {
	region := util.GetEnvString("AWS_REGION", "us-east-1")
	endpoint := util.GetEnv("AWS_ENDPOINT")
	accessKey := util.GetEnv("AWS_ACCESS_KEY")
	secretKey := util.GetEnv("AWS_SECRET_KEY")

	opts := []func(*config.LoadOptions) error{
		config.WithRegion(region),
	}
	if endpoint != "" {
		opts = append(opts, config.WithBaseEndpoint(endpoint))
	}
	if accessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKey,
			secretKey,
			"",
		)))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})
	return client, nil
}

// PutText uploads text as a plain text object.
func (s *S3Store) PutText(ctx context.Context, key string, text string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        strings.NewReader(text),
		ContentType: aws.String("text/plain; charset=utf-8"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload file to S3: %w", err)
	}
	return nil
}

// GetText downloads an object and returns its content.
func (s *S3Store) GetText(ctx context.Context, key string) (string, error) {
	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return "", fmt.Errorf("%s: %w", key, ErrObjectNotFound)
		}
		return "", fmt.Errorf("failed to get file from S3: %w", err)
	}
	defer result.Body.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, result.Body); err != nil {
		return "", fmt.Errorf("failed to read file contents: %w", err)
	}
	return buf.String(), nil
}

// DeleteFile removes an object. Deleting a missing key is not an error.
func (s *S3Store) DeleteFile(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}
	return nil
}
