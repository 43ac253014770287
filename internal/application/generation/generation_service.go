// Package generation proxies text generation requests to a local Ollama instance.
package generation

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/shopadmin/backend/internal/domain/shared"
)

// GenerateRequest represents a text generation request
type GenerateRequest struct {
	Model  string `json:"model" binding:"omitempty,max=100"`
	Prompt string `json:"prompt" binding:"required,min=1,max=10000"`
}

// GenerateResponse represents the generated text
type GenerateResponse struct {
	Model string `json:"model"`
	Text  string `json:"text"`
}

// TextGenerator produces a completion for a prompt
type TextGenerator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
	DefaultModel() string
}

// GenerationService handles generation use cases
type GenerationService struct {
	generator TextGenerator
	logger    *zap.Logger
}

// NewGenerationService creates a new GenerationService
func NewGenerationService(generator TextGenerator, logger *zap.Logger) *GenerationService {
	return &GenerationService{
		generator: generator,
		logger:    logger,
	}
}

// Generate runs a completion and returns the full text
func (s *GenerationService) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	if s.generator == nil {
		return nil, shared.NewDomainError("INVALID_STATE", "Text generation is not configured")
	}

	model := req.Model
	if model == "" {
		model = s.generator.DefaultModel()
	}

	text, err := s.generator.Generate(ctx, model, req.Prompt)
	if err != nil {
		s.logger.Error("Generation failed",
			zap.String("model", model),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %s", shared.ErrGenerationFailed, err)
	}

	return &GenerateResponse{Model: model, Text: text}, nil
}
