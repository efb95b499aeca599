// Package capture persists client-rasterized scene images posted as base64
// data URLs.
package capture

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const pngPrefix = "data:image/png;base64,"

// ErrNotDataURL is returned when the payload is not a base64 PNG data URL.
var ErrNotDataURL = errors.New("not a base64 png data url")

// SaveDataURL decodes a data:image/png;base64 URL and writes it into dir,
// creating the directory if needed. Returns the generated filename.
func SaveDataURL(dir, dataURL string) (string, error) {
	if !strings.HasPrefix(dataURL, pngPrefix) {
		return "", ErrNotDataURL
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(dataURL, pngPrefix))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create uploads dir: %w", err)
	}

	filename := fmt.Sprintf("drawing_%d_%s.png", time.Now().UnixMilli(), uuid.NewString()[:8])
	if err := os.WriteFile(filepath.Join(dir, filename), raw, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return filename, nil
}
