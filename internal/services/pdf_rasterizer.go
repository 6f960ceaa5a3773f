package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os/exec"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"

	"alfredoptarigan/ats-resume-expert/internal/models"
)

var ErrEmptyPDF = errors.New("uploaded file is empty")

// PageRenderer rasterizes a single 1-based page of a PDF held in memory.
type PageRenderer interface {
	RenderPage(ctx context.Context, pdfData []byte, page int) (image.Image, error)
}

// PDFRasterizer turns an uploaded PDF into the JPEG image of its first page.
// A PDF without pages yields a nil image and a nil error.
type PDFRasterizer interface {
	Rasterize(ctx context.Context, pdfData []byte) (*models.PageImage, error)
	PageCount(pdfData []byte) (int, error)
}

type pdfRasterizer struct {
	renderer PageRenderer
	quality  int
}

func NewPDFRasterizer(renderer PageRenderer, jpegQuality int) PDFRasterizer {
	return &pdfRasterizer{
		renderer: renderer,
		quality:  jpegQuality,
	}
}

func (p *pdfRasterizer) Rasterize(ctx context.Context, pdfData []byte) (*models.PageImage, error) {
	pages, err := p.PageCount(pdfData)
	if err != nil {
		return nil, err
	}
	if pages == 0 {
		return nil, nil
	}

	page, err := p.renderer.RenderPage(ctx, pdfData, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to render first page: %w", err)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, page, &jpeg.Options{Quality: p.quality}); err != nil {
		return nil, fmt.Errorf("failed to encode page as JPEG: %w", err)
	}

	return &models.PageImage{
		MimeType: models.MimeTypeJPEG,
		Data:     base64.StdEncoding.EncodeToString(buf.Bytes()),
	}, nil
}

func (p *pdfRasterizer) PageCount(pdfData []byte) (count int, err error) {
	if len(pdfData) == 0 {
		return 0, ErrEmptyPDF
	}

	// The parser panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			count = 0
			err = fmt.Errorf("failed to read PDF: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(pdfData), int64(len(pdfData)))
	if err != nil {
		return 0, fmt.Errorf("failed to open PDF: %w", err)
	}

	return r.NumPage(), nil
}

type pdftoppmRenderer struct {
	binPath string
	dpi     int
}

// NewPdftoppmRenderer renders pages with poppler's pdftoppm, piping the PDF through
// stdin and reading PNG from stdout.
func NewPdftoppmRenderer(binPath string, dpi int) PageRenderer {
	if binPath == "" {
		binPath = "pdftoppm"
	}
	return &pdftoppmRenderer{binPath: binPath, dpi: dpi}
}

func (r *pdftoppmRenderer) RenderPage(ctx context.Context, pdfData []byte, page int) (image.Image, error) {
	if page < 1 {
		return nil, fmt.Errorf("invalid page number: %d", page)
	}

	args := []string{
		"-f", strconv.Itoa(page),
		"-l", strconv.Itoa(page),
		"-singlefile",
		"-png",
	}
	if r.dpi > 0 {
		args = append(args, "-r", strconv.Itoa(r.dpi))
	}
	args = append(args, "-")

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.binPath, args...)
	cmd.Stdin = bytes.NewReader(pdfData)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("pdftoppm failed: %w: %s", err, msg)
		}
		return nil, fmt.Errorf("pdftoppm failed: %w", err)
	}

	if stdout.Len() == 0 {
		return nil, fmt.Errorf("pdftoppm produced no output for page %d", page)
	}

	img, err := png.Decode(&stdout)
	if err != nil {
		return nil, fmt.Errorf("failed to decode rendered page: %w", err)
	}

	return img, nil
}
