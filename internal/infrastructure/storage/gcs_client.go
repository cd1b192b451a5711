package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"stacksphere/internal/domain/service"
	"stacksphere/pkg/logger"
)

type CloudStorageClient struct {
	client     *storage.Client
	bucketName string
}

func NewCloudStorageClient(ctx context.Context, bucketName string, opts ...option.ClientOption) (*CloudStorageClient, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &CloudStorageClient{
		client:     client,
		bucketName: bucketName,
	}, nil
}

// ObjectName builds "public/<folder>/<uuid>-<timestamp><ext>" for an upload.
func ObjectName(folder, fileType string, now time.Time) string {
	return fmt.Sprintf("public/%s/%s-%s%s", folder, uuid.New().String(), now.Format("20060102150405"), Extension(fileType))
}

func Extension(fileType string) string {
	switch fileType {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".bin"
	}
}

func PublicURL(bucket, objectName string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, objectName)
}

func (c *CloudStorageClient) UploadFile(ctx context.Context, file io.Reader, fileType, folder string) (*service.UploadResult, error) {
	objectName := ObjectName(folder, fileType, time.Now())

	obj := c.client.Bucket(c.bucketName).Object(objectName)
	wc := obj.NewWriter(ctx)
	wc.ContentType = fileType
	wc.CacheControl = "public, max-age=86400"

	size, err := io.Copy(wc, file)
	if err != nil {
		_ = wc.Close()
		return nil, fmt.Errorf("failed to copy file to GCS: %w", err)
	}

	if err := wc.Close(); err != nil {
		return nil, fmt.Errorf("failed to close writer: %w", err)
	}

	if err := obj.ACL().Set(ctx, storage.AllUsers, storage.RoleReader); err != nil {
		return nil, fmt.Errorf("failed to set ACL: %w", err)
	}

	logger.Debug("Uploaded %s (%d bytes) to bucket %s", objectName, size, c.bucketName)

	return &service.UploadResult{
		URL:        PublicURL(c.bucketName, objectName),
		ObjectName: objectName,
		Size:       size,
	}, nil
}

func (c *CloudStorageClient) Close() error {
	return c.client.Close()
}
