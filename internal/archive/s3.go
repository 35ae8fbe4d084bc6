// Package archive uploads run artifacts to an S3-compatible bucket after a
// wrapped invocation.
package archive

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Archive writes artifact files to an S3-compatible bucket.
type S3Archive struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3Archive creates an S3 archive destination. If endpoint is non-empty,
// path-style addressing is enabled (for MinIO and similar).
func NewS3Archive(ctx context.Context, bucket, prefix, region, endpoint string) (*S3Archive, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	var s3opts []func(*s3.Options)
	if endpoint != "" {
		s3opts = append(s3opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		})
	}

	client := s3.NewFromConfig(cfg, s3opts...)
	return &S3Archive{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}, nil
}

// Key returns the object key for a run's artifact file.
func (a *S3Archive) Key(runID, filename string) string {
	return path.Join(a.prefix, runID, filename)
}

// StoreFile uploads the file at srcPath under the given run's key.
func (a *S3Archive) StoreFile(ctx context.Context, runID, srcPath string) error {
	data, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("read artifact: %w", err)
	}
	return a.Store(ctx, a.Key(runID, path.Base(srcPath)), data)
}

// Store uploads data to S3 as the given object key.
func (a *S3Archive) Store(ctx context.Context, key string, data []byte) error {
	contentType := "application/json"
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: &contentType,
	})
	if err != nil {
		return fmt.Errorf("s3 put object: %w", err)
	}
	return nil
}
