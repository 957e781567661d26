package autofill

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/document"
)

// Service parses uploaded resume files into ResumeData. When an external
// parse endpoint is configured it is preferred; otherwise the file's text
// is extracted locally and handed to the LLM extractor.
type Service struct {
	parser    *ParserClient
	extractor Extractor
	logger    *zap.Logger
}

// NewService wires a Service from configuration. At least one of the
// parser endpoint or the LLM extractor must be available.
func NewService(ctx context.Context, uploadCfg config.UploadConfig, llmCfg config.LLMConfig, logger *zap.Logger) (*Service, error) {
	svc := &Service{logger: logger}

	if uploadCfg.ParserURL != "" {
		svc.parser = NewParserClient(uploadCfg.ParserURL, uploadCfg.Timeout)
	}
	if llmCfg.APIKey != "" {
		extractor, err := NewGeminiExtractor(ctx, llmCfg.APIKey, llmCfg.Model)
		if err != nil {
			return nil, err
		}
		svc.extractor = extractor
	}
	if svc.parser == nil && svc.extractor == nil {
		return nil, fmt.Errorf("no parse backend configured: set UPLOAD_PARSER_URL or GEMINI_API_KEY")
	}
	return svc, nil
}

// ParseResume turns an uploaded file into structured data. The result is
// never merged here; the caller decides how it lands in a document.
func (s *Service) ParseResume(ctx context.Context, filename string, data []byte) (*document.ResumeData, error) {
	if s.parser != nil {
		parsed, err := s.parser.Parse(ctx, filename, data)
		if err != nil {
			s.logger.Warn("external parse failed", zap.String("filename", filename), zap.Error(err))
			return nil, err
		}
		return parsed, nil
	}

	text, err := ExtractText(filename, data)
	if err != nil {
		return nil, err
	}
	parsed, err := s.extractor.ExtractResume(ctx, text)
	if err != nil {
		s.logger.Warn("LLM extraction failed", zap.String("filename", filename), zap.Error(err))
		return nil, err
	}
	return parsed, nil
}

// Close releases the extractor's client if one was created.
func (s *Service) Close() error {
	if s.extractor != nil {
		return s.extractor.Close()
	}
	return nil
}
