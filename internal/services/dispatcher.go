package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"alfredoptarigan/ats-resume-expert/internal/models"
)

// Dispatcher runs one render cycle: it rasterizes the uploaded resume, then handles
// each requested action independently and collects what should be displayed.
type Dispatcher interface {
	Dispatch(ctx context.Context, req models.RenderRequest) models.RenderResult
}

type dispatcher struct {
	rasterizer PDFRasterizer
	gemini     GeminiService
	wordCloud  WordCloudService
}

func NewDispatcher(rasterizer PDFRasterizer, gemini GeminiService, wordCloud WordCloudService) Dispatcher {
	return &dispatcher{
		rasterizer: rasterizer,
		gemini:     gemini,
		wordCloud:  wordCloud,
	}
}

func (d *dispatcher) Dispatch(ctx context.Context, req models.RenderRequest) models.RenderResult {
	result := models.RenderResult{CycleID: uuid.NewString()}
	logger := log.With().Str("cycle_id", result.CycleID).Logger()
	start := time.Now()

	var page *models.PageImage
	if req.HasResume() {
		result.Append(models.Block{Kind: models.BlockSuccess, Text: uploadSuccessText})

		img, err := d.rasterizer.Rasterize(ctx, req.Resume)
		if err != nil {
			logger.Warn().Err(err).Str("file", req.ResumeName).Msg("Failed to rasterize resume")
			result.Append(models.Block{Kind: models.BlockError, Text: fmt.Sprintf(processPDFErrorFmt, err)})
		}
		page = img
	}

	actions := models.OrderedActions(req.Actions)
	for _, action := range actions {
		switch {
		case action.NeedsResume():
			d.runAIAction(ctx, &result, action, req.JobDescription, page)
		case action == models.ActionGenerateWordCloud:
			d.runWordCloud(ctx, &result, req.JobDescription)
		}
	}

	logger.Info().
		Bool("resume", req.HasResume()).
		Bool("page_image", page != nil).
		Interface("actions", actions).
		Interface("blocks", result.Kinds()).
		Dur("latency", time.Since(start)).
		Msg("Render cycle complete")

	return result
}

func (d *dispatcher) runAIAction(ctx context.Context, result *models.RenderResult, action models.Action, jobDescription string, page *models.PageImage) {
	if page == nil {
		result.Append(models.Block{Kind: models.BlockWarning, Text: missingResumeText})
		return
	}

	ai := aiActions[action]
	response, err := d.gemini.Generate(ctx, jobDescription, page, ai.prompt)
	if err != nil {
		log.Error().Err(err).Str("action", string(action)).Msg("Generation failed")
		result.Append(models.Block{Kind: models.BlockError, Text: fmt.Sprintf(generateErrorFmt, err)})
		return
	}

	result.Append(models.Block{Kind: ai.kind, Heading: ai.heading, Text: response})
}

// runWordCloud silently does nothing for an empty job description, unlike the
// resume actions which warn.
func (d *dispatcher) runWordCloud(ctx context.Context, result *models.RenderResult, jobDescription string) {
	if strings.TrimSpace(jobDescription) == "" {
		return
	}

	cloud, err := d.wordCloud.Render(ctx, jobDescription)
	if err != nil {
		log.Error().Err(err).Msg("Word cloud failed")
		result.Append(models.Block{Kind: models.BlockError, Text: fmt.Sprintf(wordCloudErrorFmt, err)})
		return
	}

	result.Append(models.Block{
		Kind:    models.BlockWordCloud,
		Heading: wordCloudHeading,
		Image:   cloud.PNG,
		Words:   cloud.Words,
	})
}
