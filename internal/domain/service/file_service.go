package service

import (
	"context"
	"io"
)

type UploadResult struct {
	URL        string `json:"url"`
	ObjectName string `json:"objectName"`
	Size       int64  `json:"size"`
}

type FileUploadService interface {
	UploadFile(ctx context.Context, file io.Reader, fileType, folder string) (*UploadResult, error)
	Close() error
}
