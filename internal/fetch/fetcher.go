// Package fetch wraps provider extraction with bounded retries and reusable
// pooled clients. Structured provider download errors are retried on a fixed
// delay; every other failure aborts immediately.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"streampick/internal/logging"
	"streampick/internal/media"
	"streampick/internal/services"
	"streampick/internal/services/ytdlp"
)

// errEmptyInfo marks a structurally successful extraction that carried no
// usable information. The retry loop treats it like a download error; see the
// policy note on Fetcher.Fetch.
var errEmptyInfo = errors.New("provider returned no information")

// Options configures a Fetcher.
type Options struct {
	MaxRetries int
	RetryDelay time.Duration
	Extract    ytdlp.ExtractOptions
	Logger     *slog.Logger
}

// Fetcher retrieves extraction contexts with retry semantics on top of a
// client pool. It is safe for concurrent use.
type Fetcher struct {
	pool       *Pool
	maxRetries int
	retryDelay time.Duration
	extract    ytdlp.ExtractOptions
	logger     *slog.Logger

	// sleep is replaced in tests to avoid wall-clock delays.
	sleep func(ctx context.Context, d time.Duration) error
}

// New constructs a Fetcher drawing clients from pool.
func New(pool *Pool, opts Options) *Fetcher {
	maxRetries := opts.MaxRetries
	if maxRetries < 1 {
		maxRetries = 3
	}
	retryDelay := opts.RetryDelay
	if retryDelay < 0 {
		retryDelay = 0
	}
	extract := opts.Extract
	// Provider-side retries stay at 1; this loop owns the retry policy.
	extract.Retries = 1
	return &Fetcher{
		pool:       pool,
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		extract:    extract,
		logger:     logging.NewComponentLogger(opts.Logger, "fetcher"),
		sleep:      sleepContext,
	}
}

// Fetch resolves videoID to an ExtractionContext, retrying structured
// provider download errors up to MaxRetries attempts with a fixed delay.
//
// Policy note: an extraction that succeeds but returns no information counts
// as retryable, the same as a download error. The final failure then reports
// the empty result as the last captured error.
func (f *Fetcher) Fetch(ctx context.Context, videoID string) (*media.ExtractionContext, error) {
	logger := logging.WithContext(ctx, f.logger)

	client, err := f.pool.Acquire(ctx)
	if err != nil {
		return nil, services.Wrap(services.ErrProviderFetch, "fetcher", "acquire client", videoID, err)
	}
	defer f.pool.Release(client)

	var lastErr error
	for attempt := 1; attempt <= f.maxRetries; attempt++ {
		logger.Debug("extracting video information",
			slog.Int("attempt", attempt),
			slog.Int("max_retries", f.maxRetries))

		info, err := client.Extract(ctx, videoID, f.extract)
		switch {
		case err == nil && info != nil:
			logger.Debug("extraction succeeded", slog.Int("formats", len(info.Formats)))
			return &media.ExtractionContext{
				Duration: int(info.Duration),
				Formats:  info.Formats,
			}, nil
		case err == nil:
			lastErr = errEmptyInfo
			logger.Warn("extraction returned no information", slog.Int("attempt", attempt))
		case ytdlp.IsDownloadError(err):
			lastErr = err
			logger.Warn("extraction attempt failed",
				slog.Int("attempt", attempt),
				logging.Error(err))
		default:
			return nil, services.Wrap(services.ErrProviderFetch, "fetcher", "extract",
				fmt.Sprintf("video %s: non-retryable failure", videoID), err)
		}

		if attempt < f.maxRetries {
			logger.Debug("retrying after delay", slog.Duration("delay", f.retryDelay))
			if err := f.sleep(ctx, f.retryDelay); err != nil {
				return nil, services.Wrap(services.ErrProviderFetch, "fetcher", "extract", videoID, err)
			}
		}
	}

	logger.Error("all extraction attempts failed",
		slog.Int("max_retries", f.maxRetries),
		logging.Error(lastErr))
	return nil, services.Wrap(services.ErrProviderFetch, "fetcher", "extract",
		fmt.Sprintf("video %s: %d attempts exhausted", videoID, f.maxRetries), lastErr)
}

// Close releases all pooled provider clients.
func (f *Fetcher) Close() error {
	return f.pool.Close()
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
