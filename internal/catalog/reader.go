package catalog

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"rentlify/internal/model"

	"github.com/rs/zerolog"
)

// readCatalogue decodes one product per line from a gzip stream. Blank lines
// are ignored; malformed lines and lines without an id are skipped with a
// warning.
func readCatalogue(ctx context.Context, r io.Reader, source string, logger zerolog.Logger) (*Set, error) {
	gzipReader, err := gzip.NewReader(r)
	if err != nil {
		logger.Error().Err(err).Str("source", source).Msg("failed to create gzip reader")
		return nil, fmt.Errorf("failed to create gzip reader for %s: %w", source, err)
	}
	defer gzipReader.Close()

	set := NewSet(1024)

	scanner := bufio.NewScanner(gzipReader)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	lineNo := 0
	skipped := 0
	for scanner.Scan() {
		lineNo++
		if lineNo%10_000 == 0 {
			select {
			case <-ctx.Done():
				logger.Warn().Str("source", source).Msg("catalogue loading cancelled")
				return nil, ctx.Err()
			default:
			}
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var p model.Product
		if err := json.Unmarshal([]byte(line), &p); err != nil || p.ID == "" {
			skipped++
			logger.Warn().Err(err).Str("source", source).Int("line", lineNo).Msg("skipping malformed catalogue line")
			continue
		}
		set.Add(p)
	}

	if err := scanner.Err(); err != nil {
		logger.Error().Err(err).Str("source", source).Msg("error reading catalogue")
		return nil, fmt.Errorf("error reading catalogue %s: %w", source, err)
	}

	logger.Info().
		Str("source", source).
		Int("products_loaded", set.Size()).
		Int("lines_skipped", skipped).
		Msg("catalogue loaded successfully")

	return set, nil
}
