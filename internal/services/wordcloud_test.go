package services

import (
	"bytes"
	"context"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/ats-resume-expert/internal/config"
)

func newTestWordCloud(t *testing.T) WordCloudService {
	t.Helper()
	svc, err := NewWordCloudService(config.WordCloudConfig{
		Width:      800,
		Height:     400,
		Background: "white",
		MaxWords:   200,
		Seed:       1,
	})
	require.NoError(t, err)
	return svc
}

func TestWordCloudRanksByFrequency(t *testing.T) {
	svc := newTestWordCloud(t)

	cloud, err := svc.Render(context.Background(), "Data engineer role, keywords: SQL, SQL, ETL, ETL, ETL")
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(cloud.Words), 2)
	assert.Equal(t, "ETL", cloud.Words[0].Word)
	assert.Equal(t, 3, cloud.Words[0].Count)
	assert.Equal(t, "SQL", cloud.Words[1].Word)
	assert.Equal(t, 2, cloud.Words[1].Count)
}

func TestWordCloudImage(t *testing.T) {
	svc := newTestWordCloud(t)

	cloud, err := svc.Render(context.Background(), "Looking for a Python developer with Django experience")
	require.NoError(t, err)

	b := cloud.Image.Bounds()
	assert.Equal(t, 800, b.Dx())
	assert.Equal(t, 400, b.Dy())

	decoded, err := png.Decode(bytes.NewReader(cloud.PNG))
	require.NoError(t, err)
	assert.Equal(t, b, decoded.Bounds())

	// Corner stays background, something was drawn somewhere.
	r, g, bl, _ := decoded.At(0, 0).RGBA()
	assert.Equal(t, [3]uint32{0xffff, 0xffff, 0xffff}, [3]uint32{r, g, bl})
	assert.True(t, hasNonBackgroundPixel(decoded.Bounds().Dx(), decoded.Bounds().Dy(), func(x, y int) bool {
		r, g, b, _ := decoded.At(x, y).RGBA()
		return r != 0xffff || g != 0xffff || b != 0xffff
	}))
}

func hasNonBackgroundPixel(w, h int, differs func(x, y int) bool) bool {
	for y := 0; y < h; y += 2 {
		for x := 0; x < w; x += 2 {
			if differs(x, y) {
				return true
			}
		}
	}
	return false
}

func TestWordCloudDeterministicForSeed(t *testing.T) {
	svc := newTestWordCloud(t)
	text := strings.Repeat("Go Kubernetes Postgres gRPC observability ", 5) + "Terraform AWS"

	first, err := svc.Render(context.Background(), text)
	require.NoError(t, err)
	second, err := svc.Render(context.Background(), text)
	require.NoError(t, err)

	assert.Equal(t, first.PNG, second.PNG)
}

func TestWordCloudEmptyText(t *testing.T) {
	svc := newTestWordCloud(t)

	for _, text := range []string{"", "   ", "the and of", "1 2 3"} {
		_, err := svc.Render(context.Background(), text)
		assert.ErrorIs(t, err, ErrEmptyText, "text %q", text)
	}
}

func TestWordCloudCancelled(t *testing.T) {
	svc := newTestWordCloud(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Render(ctx, "distributed systems engineer")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewWordCloudServiceBadColor(t *testing.T) {
	_, err := NewWordCloudService(config.WordCloudConfig{Width: 10, Height: 10, Background: "nope"})
	assert.Error(t, err)
}

func TestPNGDataURI(t *testing.T) {
	assert.Equal(t, "data:image/png;base64,AQI=", PNGDataURI([]byte{1, 2}))
}
