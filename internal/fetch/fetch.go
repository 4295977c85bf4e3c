// Package fetch retrieves spreadsheet bytes from a remote URL. One shot,
// bounded timeout, no retry; any transport error or non-success status is
// reported as the source being unavailable.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	apperrors "reclamos/internal/errors"
)

// DefaultTimeout bounds a fetch when no timeout is configured.
const DefaultTimeout = 15 * time.Second

// maxBodySize caps a remote spreadsheet at 50 MiB.
const maxBodySize = 50 << 20

// SourceFetcher downloads spreadsheet bytes over HTTP.
type SourceFetcher struct {
	client *http.Client
	logger *slog.Logger
}

// NewSourceFetcher creates a fetcher with the given timeout.
func NewSourceFetcher(timeout time.Duration, logger *slog.Logger) *SourceFetcher {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SourceFetcher{
		client: &http.Client{Timeout: timeout},
		logger: logger.With(slog.String("component", "source_fetcher")),
	}
}

// Fetch GETs the URL and returns the body bytes. Every failure mode maps to
// a FetchError; no raw transport error propagates to the caller.
func (f *SourceFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperrors.NewFetchError("fuente remota no disponible", err)
	}
	req.Header.Set("User-Agent", "reclamos-dashboard/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		f.logger.WarnContext(ctx, "remote source unreachable",
			slog.String("url", url),
			slog.String("error", err.Error()))
		return nil, apperrors.NewFetchError("fuente remota no disponible", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		f.logger.WarnContext(ctx, "remote source returned non-success status",
			slog.String("url", url),
			slog.Int("status", resp.StatusCode))
		return nil, apperrors.NewFetchError(
			fmt.Sprintf("fuente remota respondió %d", resp.StatusCode), nil)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, apperrors.NewFetchError("fuente remota no disponible", err)
	}

	f.logger.InfoContext(ctx, "remote source fetched",
		slog.String("url", url),
		slog.Int("bytes", len(data)))

	return data, nil
}
