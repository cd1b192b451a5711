package handler

import (
	"fmt"
	"io"

	"github.com/gabriel-vasile/mimetype"
	"github.com/labstack/echo/v4"

	"stacksphere/internal/domain/service"
	"stacksphere/pkg/errors"
	"stacksphere/pkg/logger"
	"stacksphere/pkg/response"
)

const productImageFolder = "product-images"

type FileHandler struct {
	fileService service.FileUploadService
	maxFileSize int64
}

var fileHandler *FileHandler

func NewFileHandler(fileService service.FileUploadService, maxFileSize int64) *FileHandler {
	if maxFileSize <= 0 {
		maxFileSize = 5 * 1024 * 1024
	}
	return &FileHandler{
		fileService: fileService,
		maxFileSize: maxFileSize,
	}
}

func SetupFileHandler(fileService service.FileUploadService, maxFileSize int64) {
	fileHandler = NewFileHandler(fileService, maxFileSize)
}

func GetFileHandler() *FileHandler {
	return fileHandler
}

// UploadProductImage stores an image and returns the public URL to put in
// the product's image field.
func (h *FileHandler) UploadProductImage(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return response.Error(c, err)
	}

	if h.fileService == nil {
		return response.Error(c, errors.ServiceUnavailable("UPLOADS_DISABLED", "Image uploads are not configured"))
	}

	file, err := c.FormFile("file")
	if err != nil {
		logger.Error("Error getting file from form: %v", err)
		return response.Error(c, errors.BadRequest("Missing or invalid file", err))
	}

	logger.Debug("Received file: %s, size: %d bytes, type: %s", file.Filename, file.Size, file.Header.Get("Content-Type"))

	if file.Size > h.maxFileSize {
		logger.Warn("File too large: %d bytes (max: %d)", file.Size, h.maxFileSize)
		return response.Error(c, errors.BadRequest(fmt.Sprintf("File size exceeds maximum allowed (%dMB)", h.maxFileSize/(1024*1024)), nil))
	}

	src, err := file.Open()
	if err != nil {
		logger.Error("Error opening file: %v", err)
		return response.Error(c, errors.Internal("Unable to read file", err))
	}
	defer src.Close()

	// The declared Content-Type is ignored; only the sniffed type is trusted.
	detected, err := mimetype.DetectReader(src)
	if err != nil {
		logger.Error("Error sniffing file type: %v", err)
		return response.Error(c, errors.BadRequest("Unable to read file", err))
	}
	fileType := detected.String()
	if !isAllowedFileType(fileType) {
		logger.Warn("Invalid file type: %s (declared %s)", fileType, file.Header.Get("Content-Type"))
		return response.Error(c, errors.BadRequest("File type not supported", nil))
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		logger.Error("Error rewinding file: %v", err)
		return response.Error(c, errors.Internal("Unable to read file", err))
	}

	result, err := h.fileService.UploadFile(c.Request().Context(), src, fileType, productImageFolder)
	if err != nil {
		logger.Error("Error from storage client: %v", err)
		return response.Error(c, errors.Internal("Failed to upload file", err))
	}

	logger.Info("Product image %s uploaded by %s", result.ObjectName, session.Email)
	return response.Created(c, result)
}

func isAllowedFileType(fileType string) bool {
	switch fileType {
	case "image/jpeg", "image/png", "image/gif", "image/webp":
		return true
	default:
		return false
	}
}
