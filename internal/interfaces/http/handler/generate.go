package handler

import (
	"github.com/gin-gonic/gin"

	generationapp "github.com/shopadmin/backend/internal/application/generation"
)

// GenerateHandler handles text generation endpoints
type GenerateHandler struct {
	BaseHandler
	generationService *generationapp.GenerationService
}

// NewGenerateHandler creates a new GenerateHandler
func NewGenerateHandler(generationService *generationapp.GenerationService) *GenerateHandler {
	return &GenerateHandler{
		generationService: generationService,
	}
}

// Generate proxies a prompt to the generation backend and returns the full text.
// POST /api/v1/generate
func (h *GenerateHandler) Generate(c *gin.Context) {
	var req generationapp.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.generationService.Generate(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
