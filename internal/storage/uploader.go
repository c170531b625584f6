package storage

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"theater-backend/internal/config"
)

// Uploader pushes generated export artifacts (invoice bundles, guest
// lists, workbook exports) to S3-compatible object storage. R2 works
// through the custom endpoint.
type Uploader struct {
	client *s3.Client
	bucket string
}

type ExportObject struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// NewUploader returns nil when object storage is not configured. Callers
// treat a nil uploader as the feature being disabled.
func NewUploader(cfg *config.Config) *Uploader {
	if cfg.Storage.AccessKey == "" || cfg.Storage.Bucket == "" {
		log.Printf("[Storage] Object storage not configured, export uploads disabled")
		return nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.Storage.AccessKey,
			cfg.Storage.SecretKey,
			"",
		)),
		awsconfig.WithRegion(cfg.Storage.Region),
	)
	if err != nil {
		log.Printf("[Storage] Failed to configure S3 client: %v", err)
		return nil
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Storage.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
		}
	})

	return &Uploader{client: client, bucket: cfg.Storage.Bucket}
}

// Upload stores one artifact under exports/ and returns its object key.
func (u *Uploader) Upload(ctx context.Context, name, contentType string, data []byte) (string, error) {
	key := fmt.Sprintf("exports/%s/%s", time.Now().UTC().Format("2006-01-02"), name)

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", name, err)
	}

	log.Printf("[Storage] Uploaded %s (%d bytes)", key, len(data))
	return key, nil
}

// ListExports returns the stored artifacts, newest prefix first is not
// guaranteed, callers sort if they need ordering.
func (u *Uploader) ListExports(ctx context.Context) ([]ExportObject, error) {
	result, err := u.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(u.bucket),
		Prefix: aws.String("exports/"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list exports: %w", err)
	}

	objects := make([]ExportObject, 0, len(result.Contents))
	for _, obj := range result.Contents {
		objects = append(objects, ExportObject{
			Key:          aws.ToString(obj.Key),
			Size:         aws.ToInt64(obj.Size),
			LastModified: aws.ToTime(obj.LastModified),
		})
	}
	return objects, nil
}
