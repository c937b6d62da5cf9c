package imageprocessor

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Ключи метаданных вложения
const (
	KeyOriginalExtension = "original_extension"
	KeyWidth             = "width"
	KeyHeight            = "height"
	KeyAspectRatio       = "aspect_ratio"
)

// Dimensions читает только заголовок изображения, без декодирования пикселей
func Dimensions(reader io.Reader) (width, height int, err error) {
	cfg, _, err := image.DecodeConfig(reader)
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}

// Extension - расширение исходного имени без точки
func Extension(originalName string) string {
	return strings.TrimPrefix(filepath.Ext(originalName), ".")
}

// ExtractMetadata: original_extension всегда; для image/* с читаемым заголовком
// ещё width, height и aspect_ratio (2 знака). Нечитаемое изображение - без размеров.
func ExtractMetadata(reader io.Reader, originalName, mimeType string) map[string]any {
	meta := map[string]any{
		KeyOriginalExtension: Extension(originalName),
	}
	if !strings.HasPrefix(mimeType, "image/") || reader == nil {
		return meta
	}

	width, height, err := Dimensions(reader)
	if err != nil || height == 0 {
		return meta
	}

	meta[KeyWidth] = width
	meta[KeyHeight] = height
	meta[KeyAspectRatio] = AspectRatio(width, height)
	return meta
}

func AspectRatio(width, height int) float64 {
	if height == 0 {
		return 0
	}
	return math.Round(float64(width)/float64(height)*100) / 100
}
