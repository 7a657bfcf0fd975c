package module

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFiles writes all generated files under outputDir, creating
// directories as needed. Files are written concurrently; the first failure
// cancels the remaining writes. Writing into a non-empty directory is allowed
// but logged as a warning.
func WriteFiles(ctx context.Context, files []GeneratedFile, outputDir string, logger zerolog.Logger) error {
	nonEmpty, err := IsNonEmptyDir(outputDir)
	if err != nil {
		return fmt.Errorf("inspecting output directory: %w", err)
	}

	if nonEmpty {
		logger.Warn().Str("dir", outputDir).Msg("output directory is not empty, existing files may be overwritten")
	}

	// Create output directory if it doesn't exist
	if err := os.MkdirAll(outputDir, dirPerm); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for _, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			outputPath := filepath.Join(outputDir, file.Filename)

			if err := os.MkdirAll(filepath.Dir(outputPath), dirPerm); err != nil {
				return fmt.Errorf("creating directory for %s: %w", file.Filename, err)
			}

			if err := os.WriteFile(outputPath, file.Content, filePerm); err != nil {
				return fmt.Errorf("writing file %s: %w", file.Filename, err)
			}

			logger.Debug().Str("file", file.Filename).Int("bytes", len(file.Content)).Msg("wrote module")

			return nil
		})
	}

	return g.Wait()
}

// IsNonEmptyDir reports whether dir exists and has at least one entry.
func IsNonEmptyDir(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	return len(entries) > 0, nil
}
