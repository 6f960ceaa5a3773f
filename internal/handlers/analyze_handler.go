package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/ats-resume-expert/internal/services"
)

type AnalyzeHandler struct {
	dispatcher  services.Dispatcher
	maxFileSize int64
}

func NewAnalyzeHandler(dispatcher services.Dispatcher, maxFileSize int64) *AnalyzeHandler {
	return &AnalyzeHandler{
		dispatcher:  dispatcher,
		maxFileSize: maxFileSize,
	}
}

// HandleAnalyze handles POST /api/v1/analyze
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	req, notices, err := parseRenderRequest(c, h.maxFileSize)
	if err != nil {
		return err
	}

	result := h.dispatcher.Dispatch(c.UserContext(), req)

	return c.JSON(withNotices(notices, result))
}
