package handler

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"studyquiz/internal/config"
	"studyquiz/internal/domain"
	"studyquiz/internal/logger"
	"studyquiz/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DocumentHandler handles study document uploads
type DocumentHandler struct {
	service service.DocumentService
	cfg     *config.Config
}

// NewDocumentHandler creates a new DocumentHandler instance
func NewDocumentHandler(service service.DocumentService, cfg *config.Config) *DocumentHandler {
	return &DocumentHandler{
		service: service,
		cfg:     cfg,
	}
}

// UploadDocument godoc
// @Summary Upload a study document
// @Description Uploads a PDF or spreadsheet and extracts quizzable knowledge from it
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Study document (pdf, xlsx, xls)"
// @Success 200 {object} dto.UploadDocumentResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /documents [post]
func (h *DocumentHandler) UploadDocument(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return domain.NewInvalidInputError("file is required")
	}

	if maxBytes := int64(h.cfg.Upload.MaxSizeMB) * 1024 * 1024; maxBytes > 0 && fileHeader.Size > maxBytes {
		return domain.NewInvalidInputError(fmt.Sprintf("file exceeds maximum size of %dMB", h.cfg.Upload.MaxSizeMB))
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileHeader.Filename), "."))
	if ext == "" {
		return domain.NewUnsupportedFileTypeError(fileHeader.Filename)
	}

	if err := os.MkdirAll(h.cfg.Upload.Dir, 0o755); err != nil {
		return domain.NewInternalError("failed to prepare upload directory", err)
	}

	// Stored under a fresh name so concurrent uploads of the same
	// file cannot collide.
	storedPath := filepath.Join(h.cfg.Upload.Dir, uuid.New().String()+"."+ext)
	if err := c.SaveFile(fileHeader, storedPath); err != nil {
		return domain.NewInternalError("failed to save uploaded file", err)
	}
	defer func() {
		if err := os.Remove(storedPath); err != nil {
			logger.Get().Warn("Failed to remove uploaded file",
				zap.String("path", storedPath), zap.Error(err))
		}
	}()

	resp, err := h.service.ProcessDocument(c.Context(), storedPath, fileHeader.Filename, ext)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}
