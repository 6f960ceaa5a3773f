package handlers

import (
	"bytes"
	"html/template"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/yuin/goldmark"

	"alfredoptarigan/ats-resume-expert/internal/models"
	"alfredoptarigan/ats-resume-expert/internal/services"
)

type PageHandler struct {
	dispatcher  services.Dispatcher
	maxFileSize int64
	markdown    goldmark.Markdown
}

func NewPageHandler(dispatcher services.Dispatcher, maxFileSize int64) *PageHandler {
	return &PageHandler{
		dispatcher:  dispatcher,
		maxFileSize: maxFileSize,
		markdown:    goldmark.New(),
	}
}

type actionButton struct {
	Value string
	Label string
}

type viewBlock struct {
	Kind    string
	Heading string
	Text    string
	HTML    template.HTML
	Image   template.URL
}

// HandleIndex handles GET /
func (h *PageHandler) HandleIndex(c *fiber.Ctx) error {
	return c.Render("index", h.page("", nil))
}

// HandleSubmit handles POST /, one render cycle per form submission.
func (h *PageHandler) HandleSubmit(c *fiber.Ctx) error {
	req, notices, err := parseRenderRequest(c, h.maxFileSize)
	if err != nil {
		return err
	}

	result := withNotices(notices, h.dispatcher.Dispatch(c.UserContext(), req))

	return c.Render("index", h.page(req.JobDescription, result.Blocks))
}

func (h *PageHandler) page(jobDescription string, blocks []models.Block) fiber.Map {
	buttons := make([]actionButton, 0, 3)
	for _, a := range models.AllActions() {
		buttons = append(buttons, actionButton{Value: string(a), Label: a.Label()})
	}

	views := make([]viewBlock, 0, len(blocks))
	for _, b := range blocks {
		views = append(views, h.toView(b))
	}

	return fiber.Map{
		"JobDescription": jobDescription,
		"Buttons":        buttons,
		"Blocks":         views,
	}
}

func (h *PageHandler) toView(b models.Block) viewBlock {
	v := viewBlock{Kind: string(b.Kind), Heading: b.Heading, Text: b.Text}

	switch b.Kind {
	case models.BlockEvaluation, models.BlockMatch:
		var buf bytes.Buffer
		if err := h.markdown.Convert([]byte(b.Text), &buf); err != nil {
			log.Warn().Err(err).Msg("Failed to render markdown, showing plain text")
			break
		}
		v.HTML = template.HTML(buf.String())
	case models.BlockWordCloud:
		v.Image = template.URL(services.PNGDataURI(b.Image))
	}

	return v
}
