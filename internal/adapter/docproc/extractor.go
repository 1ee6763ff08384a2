package docproc

import (
	"context"
	"fmt"
	"strings"

	"studyquiz/internal/domain"
	"studyquiz/internal/logger"

	"github.com/ledongthuc/pdf"
	"github.com/tmc/langchaingo/llms"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const knowledgePromptTemplate = `Analyze this study material%s and extract all factual information, key concepts, definitions, relationships, and testable knowledge.

%s

Organize your findings by topic/category. Include:
- Key facts and definitions
- Important concepts and their relationships
- Processes and how they work
- Dates, names, and specific details
- Any testable information

Be thorough and precise. This will be used to generate quiz questions.`

// claudeKnowledgeExtractor implements domain.KnowledgeExtractor: it
// reads the document text locally and asks the model to distill it
// into quizzable knowledge.
type claudeKnowledgeExtractor struct {
	model     llms.Model
	maxTokens int
}

// NewKnowledgeExtractor creates an extractor backed by the given model.
func NewKnowledgeExtractor(model llms.Model, maxTokens int) domain.KnowledgeExtractor {
	return &claudeKnowledgeExtractor{
		model:     model,
		maxTokens: maxTokens,
	}
}

// ExtractKnowledge implements domain.KnowledgeExtractor.
func (e *claudeKnowledgeExtractor) ExtractKnowledge(ctx context.Context, filePath, ext string) (*domain.ExtractedKnowledge, error) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "pdf":
		return e.extractPDF(ctx, filePath)
	case "xlsx", "xls":
		return e.extractSpreadsheet(ctx, filePath)
	default:
		return nil, domain.NewUnsupportedFileTypeError(ext)
	}
}

func (e *claudeKnowledgeExtractor) extractPDF(ctx context.Context, filePath string) (*domain.ExtractedKnowledge, error) {
	file, reader, err := pdf.Open(filePath)
	if err != nil {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("failed to open PDF: %v", err))
	}
	defer file.Close()

	var text strings.Builder
	pages := reader.NumPage()
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			logger.Get().Warn("Skipping unreadable PDF page",
				zap.Int("page", i), zap.Error(err))
			continue
		}
		text.WriteString(content)
		text.WriteString("\n")
	}

	if strings.TrimSpace(text.String()) == "" {
		return nil, domain.NewInvalidInputError("PDF contains no extractable text")
	}

	knowledge, err := e.distill(ctx, " (from a PDF document)", text.String())
	if err != nil {
		return nil, err
	}

	return &domain.ExtractedKnowledge{
		Type:      "pdf",
		Pages:     pages,
		Knowledge: knowledge,
	}, nil
}

func (e *claudeKnowledgeExtractor) extractSpreadsheet(ctx context.Context, filePath string) (*domain.ExtractedKnowledge, error) {
	workbook, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("failed to open spreadsheet: %v", err))
	}
	defer workbook.Close()

	markdown, err := spreadsheetMarkdown(workbook)
	if err != nil {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("failed to read spreadsheet: %v", err))
	}

	knowledge, err := e.distill(ctx, " (from a spreadsheet)", markdown)
	if err != nil {
		return nil, err
	}

	return &domain.ExtractedKnowledge{
		Type:      "spreadsheet",
		Sheets:    len(workbook.GetSheetList()),
		Knowledge: knowledge,
	}, nil
}

func (e *claudeKnowledgeExtractor) distill(ctx context.Context, sourceNote, content string) (string, error) {
	l := logger.Get()
	prompt := fmt.Sprintf(knowledgePromptTemplate, sourceNote, content)

	l.Info("Requesting knowledge extraction", zap.Int("contentLength", len(content)))
	completion, err := llms.GenerateFromSinglePrompt(ctx, e.model, prompt,
		llms.WithMaxTokens(e.maxTokens))
	if err != nil {
		l.Error("LLM knowledge extraction call failed", zap.Error(err))
		return "", domain.NewLLMServiceError(err)
	}
	return strings.TrimSpace(completion), nil
}

// spreadsheetMarkdown renders every sheet as a markdown table, one
// `## Sheet:` heading per sheet, skipping fully empty rows.
func spreadsheetMarkdown(workbook *excelize.File) (string, error) {
	var out []string
	for _, sheetName := range workbook.GetSheetList() {
		rows, err := workbook.GetRows(sheetName)
		if err != nil {
			return "", err
		}

		out = append(out, fmt.Sprintf("## Sheet: %s\n", sheetName))

		var table []string
		for _, row := range rows {
			if rowEmpty(row) {
				continue
			}
			table = append(table, "| "+strings.Join(row, " | ")+" |")
		}

		if len(table) > 1 {
			cols := strings.Count(table[0], "|") - 1
			separator := make([]string, cols)
			for i := range separator {
				separator[i] = "---"
			}
			table = append(table[:1], append([]string{"| " + strings.Join(separator, " | ") + " |"}, table[1:]...)...)
		}
		out = append(out, table...)
		out = append(out, "\n")
	}
	return strings.Join(out, "\n"), nil
}

func rowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

var _ domain.KnowledgeExtractor = (*claudeKnowledgeExtractor)(nil)
