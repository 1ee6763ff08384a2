package service

import (
	"context"
	"testing"

	"studyquiz/internal/config"
	"studyquiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockKnowledgeExtractor struct {
	extractFunc func(ctx context.Context, filePath, ext string) (*domain.ExtractedKnowledge, error)
}

func (m *mockKnowledgeExtractor) ExtractKnowledge(ctx context.Context, filePath, ext string) (*domain.ExtractedKnowledge, error) {
	return m.extractFunc(ctx, filePath, ext)
}

func documentTestConfig() *config.Config {
	return &config.Config{
		Upload: config.UploadConfig{
			Extensions: []string{"pdf", "xlsx", "xls"},
		},
	}
}

func TestProcessDocument(t *testing.T) {
	extractor := &mockKnowledgeExtractor{
		extractFunc: func(_ context.Context, filePath, ext string) (*domain.ExtractedKnowledge, error) {
			assert.Equal(t, "/tmp/uploads/abc.pdf", filePath)
			assert.Equal(t, "pdf", ext)
			return &domain.ExtractedKnowledge{
				Type:      "pdf",
				Pages:     3,
				Knowledge: "Paris is the capital of France.",
			}, nil
		},
	}
	svc := NewDocumentService(extractor, documentTestConfig())

	resp, err := svc.ProcessDocument(context.Background(), "/tmp/uploads/abc.pdf", "geography.pdf", ".PDF")
	require.NoError(t, err)
	assert.Equal(t, "geography.pdf", resp.DocumentName)
	assert.Equal(t, "pdf", resp.Type)
	assert.Equal(t, 3, resp.Pages)
	assert.Equal(t, "Paris is the capital of France.", resp.Knowledge)
}

func TestProcessDocumentUnsupportedExtension(t *testing.T) {
	svc := NewDocumentService(&mockKnowledgeExtractor{
		extractFunc: func(context.Context, string, string) (*domain.ExtractedKnowledge, error) {
			t.Fatal("extractor must not be called for unsupported files")
			return nil, nil
		},
	}, documentTestConfig())

	_, err := svc.ProcessDocument(context.Background(), "/tmp/uploads/notes.docx", "notes.docx", "docx")
	require.Error(t, err)
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeUnsupportedFile, domainErr.Code)
}

func TestProcessDocumentEmptyKnowledge(t *testing.T) {
	svc := NewDocumentService(&mockKnowledgeExtractor{
		extractFunc: func(context.Context, string, string) (*domain.ExtractedKnowledge, error) {
			return &domain.ExtractedKnowledge{Type: "pdf", Pages: 1, Knowledge: "   "}, nil
		},
	}, documentTestConfig())

	_, err := svc.ProcessDocument(context.Background(), "/tmp/uploads/blank.pdf", "blank.pdf", "pdf")
	require.Error(t, err)
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeLLMServiceError, domainErr.Code)
}
