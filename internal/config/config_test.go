package config

import (
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "test-key")
	t.Setenv("PORT", "")
	t.Setenv("GEMINI_MODEL", "")
	t.Setenv("WORDCLOUD_WIDTH", "")

	cfg := Load()

	assert.Equal(t, "test-key", cfg.Gemini.APIKey)
	assert.Equal(t, "gemini-1.5-flash", cfg.Gemini.Model)
	assert.Equal(t, 60*time.Second, cfg.Gemini.Timeout)
	assert.Equal(t, "8501", cfg.Server.Port)
	assert.Equal(t, 800, cfg.WordCloud.Width)
	assert.Equal(t, 400, cfg.WordCloud.Height)
	assert.Equal(t, int64(10485760), cfg.Upload.MaxFileSize)
	require.NoError(t, cfg.Validate())
}

func TestLoadFallsBackToGeminiKey(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "fallback")

	cfg := Load()
	assert.Equal(t, "fallback", cfg.Gemini.APIKey)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Gemini:     GeminiConfig{APIKey: "k"},
			Upload:     UploadConfig{MaxFileSize: 1024},
			Rasterizer: RasterizerConfig{JPEGQuality: 90},
			WordCloud:  WordCloudConfig{Width: 800, Height: 400, Background: "white"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing api key", mutate: func(c *Config) { c.Gemini.APIKey = "  " }, wantErr: true},
		{name: "zero upload size", mutate: func(c *Config) { c.Upload.MaxFileSize = 0 }, wantErr: true},
		{name: "jpeg quality out of range", mutate: func(c *Config) { c.Rasterizer.JPEGQuality = 101 }, wantErr: true},
		{name: "bad canvas", mutate: func(c *Config) { c.WordCloud.Height = 0 }, wantErr: true},
		{name: "bad background", mutate: func(c *Config) { c.WordCloud.Background = "#zz" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateMissingKeyIsSentinel(t *testing.T) {
	cfg := &Config{}
	assert.ErrorIs(t, cfg.Validate(), ErrMissingAPIKey)
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{in: "#ffffff", want: color.RGBA{255, 255, 255, 255}},
		{in: "white", want: color.RGBA{255, 255, 255, 255}},
		{in: "#f00", want: color.RGBA{255, 0, 0, 255}},
		{in: "1e90ff", want: color.RGBA{0x1e, 0x90, 0xff, 255}},
		{in: "#12345", wantErr: true},
		{in: "#gggggg", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHexColor(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
