package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"market-recap/internal/logger"
)

// Save writes a rendered report to a timestamped file under dir, creating
// the directory if needed. The filename is prefix_YYYYMMDD_HHMMSS.txt and
// the returned path includes the directory.
func Save(ctx context.Context, text, dir, prefix string, at time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	filename := fmt.Sprintf("%s_%s.txt", prefix, at.Format("20060102_150405"))
	path := filepath.Join(dir, filename)

	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return "", fmt.Errorf("failed to write report to %s: %w", path, err)
	}

	logger.Artifact(ctx, path, len(text))
	return path, nil
}
