package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"

	"github.com/fljobs/backend/config"
	"github.com/fljobs/backend/models"
)

// PostArchive keeps a copy of every published job post in Cloud Storage
type PostArchive interface {
	UploadPost(ctx context.Context, job *models.JobListing) (string, error)
}

// CloudStorageClient wraps Google Cloud Storage operations
type CloudStorageClient struct {
	client     *storage.Client
	bucketName string
}

// NewCloudStorageClient creates a new Cloud Storage client
func NewCloudStorageClient(ctx context.Context, cfg *config.Config) (*CloudStorageClient, error) {
	if cfg.PostsBucketName == "" {
		return nil, fmt.Errorf("POSTS_BUCKET_NAME is not set")
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create Cloud Storage client: %w", err)
	}

	return &CloudStorageClient{
		client:     client,
		bucketName: cfg.PostsBucketName,
	}, nil
}

// Close closes the Cloud Storage client
func (c *CloudStorageClient) Close() error {
	return c.client.Close()
}

// UploadPost writes the formatted post as markdown and returns its public URL
func (c *CloudStorageClient) UploadPost(ctx context.Context, job *models.JobListing) (string, error) {
	objectName := postObjectName(job)

	wc := c.client.Bucket(c.bucketName).Object(objectName).NewWriter(ctx)
	wc.ContentType = "text/markdown; charset=utf-8"
	wc.Metadata = map[string]string{
		"position":    job.Position,
		"store_name":  job.StoreName,
		"ai_enhanced": fmt.Sprintf("%t", job.AIEnhanced),
	}

	if _, err := io.Copy(wc, strings.NewReader(job.FormattedPost)); err != nil {
		wc.Close()
		return "", fmt.Errorf("failed to upload post: %w", err)
	}

	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("failed to close writer: %w", err)
	}

	return objectURL(c.bucketName, objectName), nil
}

// postObjectName groups posts by owner and month
func postObjectName(job *models.JobListing) string {
	owner := job.CreatedBy
	if owner == "" {
		owner = "anonymous"
	}
	return fmt.Sprintf("posts/%s/%s/%s.md", owner, job.CreatedAt.UTC().Format("2006-01"), job.ID)
}

func objectURL(bucket, object string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, object)
}

var _ PostArchive = (*CloudStorageClient)(nil)
