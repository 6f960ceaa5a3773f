package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image/color"
	"math"
	"math/rand"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"alfredoptarigan/ats-resume-expert/internal/config"
	"alfredoptarigan/ats-resume-expert/internal/models"
)

var ErrEmptyText = errors.New("no words to render")

const (
	minFontSize    = 8.0
	fontShrink     = 0.85
	wordPadding    = 2.0
	spiralStep     = 0.1
	verticalChance = 0.1
	// relativeScaling weighs font size between rank-only (0) and frequency-proportional (1).
	relativeScaling = 0.5
)

// palette approximates the viridis colormap.
var palette = []color.RGBA{
	{0x44, 0x01, 0x54, 0xff},
	{0x48, 0x28, 0x78, 0xff},
	{0x3e, 0x4a, 0x89, 0xff},
	{0x31, 0x68, 0x8e, 0xff},
	{0x26, 0x82, 0x8e, 0xff},
	{0x1f, 0x9e, 0x89, 0xff},
	{0x35, 0xb7, 0x79, 0xff},
	{0x6e, 0xce, 0x58, 0xff},
	{0xb5, 0xde, 0x2b, 0xff},
	{0xfd, 0xe7, 0x25, 0xff},
}

// WordCloudService computes term frequencies of a text and lays them out as an image.
type WordCloudService interface {
	Frequencies(text string) []models.WordCount
	Render(ctx context.Context, text string) (*models.WordCloud, error)
}

type wordCloudService struct {
	width      int
	height     int
	background color.RGBA
	maxWords   int
	seed       int64
	font       *truetype.Font
}

func NewWordCloudService(cfg config.WordCloudConfig) (WordCloudService, error) {
	bg, err := config.ParseHexColor(cfg.Background)
	if err != nil {
		return nil, fmt.Errorf("invalid background color: %w", err)
	}

	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}

	maxWords := cfg.MaxWords
	if maxWords <= 0 {
		maxWords = 200
	}

	return &wordCloudService{
		width:      cfg.Width,
		height:     cfg.Height,
		background: bg,
		maxWords:   maxWords,
		seed:       cfg.Seed,
		font:       f,
	}, nil
}

func (w *wordCloudService) Frequencies(text string) []models.WordCount {
	return CountWords(text)
}

type placedWord struct {
	rect     rect
	size     float64
	vertical bool
}

type rect struct {
	x0, y0, x1, y1 float64
}

func (r rect) overlaps(o rect) bool {
	return r.x0 < o.x1 && o.x0 < r.x1 && r.y0 < o.y1 && o.y0 < r.y1
}

func (w *wordCloudService) Render(ctx context.Context, text string) (*models.WordCloud, error) {
	words := w.Frequencies(text)
	if len(words) == 0 {
		return nil, ErrEmptyText
	}
	if len(words) > w.maxWords {
		words = words[:w.maxWords]
	}

	rng := rand.New(rand.NewSource(w.seed))
	dc := gg.NewContext(w.width, w.height)
	dc.SetColor(w.background)
	dc.Clear()

	faces := make(map[int]font.Face)
	face := func(size float64) font.Face {
		key := int(math.Round(size))
		if f, ok := faces[key]; ok {
			return f
		}
		f := truetype.NewFace(w.font, &truetype.Options{Size: float64(key)})
		faces[key] = f
		return f
	}

	maxCount := float64(words[0].Count)
	fontSize := float64(w.height) / 3
	lastCount := maxCount
	var placed []rect

	for _, word := range words {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		// Size drops with frequency and never grows past the previous word's size.
		count := float64(word.Count)
		if count != lastCount {
			fontSize *= relativeScaling*(count/lastCount) + (1 - relativeScaling)
			lastCount = count
		}
		if fontSize < minFontSize {
			break
		}

		vertical := rng.Float64() < verticalChance
		spot, ok := w.place(dc, face, word.Word, fontSize, vertical, placed, rng)
		if !ok && vertical {
			spot, ok = w.place(dc, face, word.Word, fontSize, false, placed, rng)
		}
		if !ok {
			// Nothing fits even at the minimum size; less frequent words won't either.
			break
		}

		placed = append(placed, spot.rect)
		fontSize = spot.size

		dc.SetFontFace(face(spot.size))
		dc.SetColor(palette[rng.Intn(len(palette))])
		cx := (spot.rect.x0 + spot.rect.x1) / 2
		cy := (spot.rect.y0 + spot.rect.y1) / 2
		if spot.vertical {
			dc.Push()
			dc.RotateAbout(gg.Radians(-90), cx, cy)
			dc.DrawStringAnchored(word.Word, cx, cy, 0.5, 0.35)
			dc.Pop()
		} else {
			dc.DrawStringAnchored(word.Word, cx, cy, 0.5, 0.35)
		}
	}

	if len(placed) == 0 {
		return nil, fmt.Errorf("canvas %dx%d too small for any word", w.width, w.height)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode word cloud: %w", err)
	}

	return &models.WordCloud{
		Image: dc.Image(),
		PNG:   buf.Bytes(),
		Words: words,
	}, nil
}

// place searches an Archimedean spiral from a random start for a free spot,
// shrinking the font until something fits or the minimum size is reached.
func (w *wordCloudService) place(dc *gg.Context, face func(float64) font.Face, word string, size float64, vertical bool, placed []rect, rng *rand.Rand) (placedWord, bool) {
	width, height := float64(w.width), float64(w.height)
	aspect := height / width
	maxRadius := math.Hypot(width, height) / 2

	for ; size >= minFontSize; size *= fontShrink {
		dc.SetFontFace(face(size))
		tw, th := dc.MeasureString(word)
		tw += 2 * wordPadding
		th += 2 * wordPadding
		if vertical {
			tw, th = th, tw
		}
		if tw > width || th > height {
			continue
		}

		startX := width/2 + (rng.Float64()-0.5)*width/4
		startY := height/2 + (rng.Float64()-0.5)*height/4

		for theta := 0.0; ; theta += spiralStep {
			radius := 2 * theta
			if radius > maxRadius {
				break
			}
			cx := startX + radius*math.Cos(theta)
			cy := startY + radius*math.Sin(theta)*aspect

			candidate := rect{x0: cx - tw/2, y0: cy - th/2, x1: cx + tw/2, y1: cy + th/2}
			if candidate.x0 < 0 || candidate.y0 < 0 || candidate.x1 > width || candidate.y1 > height {
				continue
			}
			if collides(candidate, placed) {
				continue
			}
			return placedWord{rect: candidate, size: size, vertical: vertical}, true
		}
	}

	return placedWord{}, false
}

func collides(r rect, placed []rect) bool {
	for _, p := range placed {
		if r.overlaps(p) {
			return true
		}
	}
	return false
}

// PNGDataURI wraps PNG bytes for inline display in an <img> tag.
func PNGDataURI(png []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}
