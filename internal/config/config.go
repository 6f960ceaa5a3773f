package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

var ErrMissingAPIKey = errors.New("google API key not found, set GOOGLE_API_KEY in the environment")

type Config struct {
	Server     ServerConfig
	Gemini     GeminiConfig
	Upload     UploadConfig
	Rasterizer RasterizerConfig
	WordCloud  WordCloudConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

type UploadConfig struct {
	MaxFileSize int64
}

type RasterizerConfig struct {
	PdftoppmPath string
	DPI          int
	JPEGQuality  int
}

type WordCloudConfig struct {
	Width      int
	Height     int
	Background string
	MaxWords   int
	Seed       int64
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using process environment")
	}

	apiKey := getEnv("GOOGLE_API_KEY", "")
	if apiKey == "" {
		apiKey = getEnv("GEMINI_API_KEY", "")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8501"),
			Env:  getEnv("ENV", "development"),
		},
		Gemini: GeminiConfig{
			APIKey:  apiKey,
			Model:   getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
			BaseURL: getEnv("GEMINI_BASE_URL", ""),
			Timeout: getEnvAsDuration("GEMINI_TIMEOUT", "60s"),
		},
		Upload: UploadConfig{
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Rasterizer: RasterizerConfig{
			PdftoppmPath: getEnv("PDFTOPPM_PATH", "pdftoppm"),
			DPI:          getEnvAsInt("RASTER_DPI", 150),
			JPEGQuality:  getEnvAsInt("JPEG_QUALITY", 90),
		},
		WordCloud: WordCloudConfig{
			Width:      getEnvAsInt("WORDCLOUD_WIDTH", 800),
			Height:     getEnvAsInt("WORDCLOUD_HEIGHT", 400),
			Background: getEnv("WORDCLOUD_BACKGROUND", "#ffffff"),
			MaxWords:   getEnvAsInt("WORDCLOUD_MAX_WORDS", 200),
			Seed:       getEnvAsInt64("WORDCLOUD_SEED", 1),
		},
	}
}

// Validate reports configuration that must stop the process before it serves anything.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Gemini.APIKey) == "" {
		return ErrMissingAPIKey
	}
	if c.Upload.MaxFileSize <= 0 {
		return fmt.Errorf("MAX_FILE_SIZE must be positive, got %d", c.Upload.MaxFileSize)
	}
	if c.Rasterizer.JPEGQuality < 1 || c.Rasterizer.JPEGQuality > 100 {
		return fmt.Errorf("JPEG_QUALITY must be within 1..100, got %d", c.Rasterizer.JPEGQuality)
	}
	if c.WordCloud.Width <= 0 || c.WordCloud.Height <= 0 {
		return fmt.Errorf("word cloud canvas must be positive, got %dx%d", c.WordCloud.Width, c.WordCloud.Height)
	}
	if _, err := ParseHexColor(c.WordCloud.Background); err != nil {
		return fmt.Errorf("WORDCLOUD_BACKGROUND: %w", err)
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// ParseHexColor parses #rgb or #rrggbb. "white" and "black" are accepted as names.
func ParseHexColor(s string) (color.RGBA, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white":
		return color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, nil
	case "black":
		return color.RGBA{A: 0xff}, nil
	}

	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}

	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
