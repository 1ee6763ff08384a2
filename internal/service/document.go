package service

import (
	"context"
	"strings"

	"studyquiz/internal/config"
	"studyquiz/internal/domain"
	"studyquiz/internal/dto"
	"studyquiz/internal/logger"

	"go.uber.org/zap"
)

// DocumentService runs an uploaded study document through knowledge
// extraction.
type DocumentService interface {
	ProcessDocument(ctx context.Context, filePath, documentName, ext string) (*dto.UploadDocumentResponse, error)
}

// documentService implements DocumentService
type documentService struct {
	extractor domain.KnowledgeExtractor
	cfg       *config.Config
}

// NewDocumentService creates a new instance of documentService
func NewDocumentService(extractor domain.KnowledgeExtractor, cfg *config.Config) DocumentService {
	return &documentService{
		extractor: extractor,
		cfg:       cfg,
	}
}

func (s *documentService) allowedExtension(ext string) bool {
	for _, allowed := range s.cfg.Upload.Extensions {
		if strings.EqualFold(ext, allowed) {
			return true
		}
	}
	return false
}

// ProcessDocument implements DocumentService
func (s *documentService) ProcessDocument(ctx context.Context, filePath, documentName, ext string) (*dto.UploadDocumentResponse, error) {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if !s.allowedExtension(ext) {
		return nil, domain.NewUnsupportedFileTypeError(ext)
	}

	extracted, err := s.extractor.ExtractKnowledge(ctx, filePath, ext)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(extracted.Knowledge) == "" {
		return nil, domain.NewLLMServiceError(nil)
	}

	logger.Get().Info("Extracted document knowledge",
		zap.String("documentName", documentName),
		zap.String("type", extracted.Type),
		zap.Int("pages", extracted.Pages),
		zap.Int("sheets", extracted.Sheets),
		zap.Int("knowledgeChars", len(extracted.Knowledge)))

	return &dto.UploadDocumentResponse{
		DocumentName: documentName,
		Type:         extracted.Type,
		Pages:        extracted.Pages,
		Sheets:       extracted.Sheets,
		Knowledge:    extracted.Knowledge,
	}, nil
}
