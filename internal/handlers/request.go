package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"alfredoptarigan/ats-resume-expert/internal/models"
	"alfredoptarigan/ats-resume-expert/internal/services"
)

const (
	fieldJobDescription = "job_desc"
	fieldResume         = "resume"
	fieldAction         = "action"
)

// parseRenderRequest reads one render cycle's inputs from a multipart form.
// Upload problems are not fatal: they come back as blocks and the cycle
// continues as if no resume was uploaded.
func parseRenderRequest(c *fiber.Ctx, maxFileSize int64) (models.RenderRequest, []models.Block, error) {
	var req models.RenderRequest
	var notices []models.Block

	form, err := c.MultipartForm()
	if err != nil {
		return req, nil, fiber.NewError(fiber.StatusBadRequest, "failed to parse multipart form")
	}

	if values := form.Value[fieldJobDescription]; len(values) > 0 {
		req.JobDescription = values[0]
	}

	for _, raw := range form.Value[fieldAction] {
		action, err := models.ParseAction(raw)
		if err != nil {
			return req, nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		req.Actions = append(req.Actions, action)
	}

	file := firstFile(form.File[fieldResume])
	if file == nil {
		return req, notices, nil
	}

	data, err := services.ReadUpload(file, maxFileSize)
	switch {
	case errors.Is(err, services.ErrInvalidUpload):
		notices = append(notices, models.Block{Kind: models.BlockWarning, Text: err.Error()})
	case err != nil:
		log.Error().Err(err).Str("file", file.Filename).Msg("Failed to read upload")
		notices = append(notices, models.Block{Kind: models.BlockError, Text: fmt.Sprintf("Error reading upload: %v", err)})
	default:
		req.Resume = data
		req.ResumeName = file.Filename
	}

	return req, notices, nil
}

// firstFile skips the empty part browsers send when no file was chosen.
func firstFile(files []*multipart.FileHeader) *multipart.FileHeader {
	for _, f := range files {
		if f.Filename != "" {
			return f
		}
	}
	return nil
}

func withNotices(notices []models.Block, result models.RenderResult) models.RenderResult {
	if len(notices) == 0 {
		return result
	}
	result.Blocks = append(append([]models.Block{}, notices...), result.Blocks...)
	return result
}
