package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/semaphore"

	"streampick/internal/config"
	"streampick/internal/fetch"
	"streampick/internal/logging"
	"streampick/internal/media"
	"streampick/internal/quality"
	"streampick/internal/selection"
	"streampick/internal/services"
	"streampick/internal/services/ytdlp"
)

// branchWorkers bounds the orchestrator's concurrent branch tasks. Two slots
// cover the video and audio branches of one unified call.
const branchWorkers = 2

// Options configures an Extractor. Config is required; everything else
// defaults sensibly (CLI provider clients, no-op logger).
type Options struct {
	Config *config.Config
	Logger *slog.Logger
	// ClientFactory builds provider clients for the fetch pool. Defaults to
	// yt-dlp CLI clients using the configured binary.
	ClientFactory func() ytdlp.Client
	// Prober is the dedicated client for availability checks. Defaults to a
	// client from ClientFactory.
	Prober ytdlp.Client
}

// Extractor implements the public stream-selection surface.
type Extractor struct {
	cfg        *config.Config
	logger     *slog.Logger
	fetcher    *fetch.Fetcher
	prober     ytdlp.Client
	normalizer *quality.Normalizer
	picker     *selection.Picker
	workers    *semaphore.Weighted
}

// New constructs an Extractor from options.
func New(opts Options) *Extractor {
	cfg := opts.Config
	if cfg == nil {
		def := config.Default()
		cfg = &def
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	factory := opts.ClientFactory
	if factory == nil {
		binary := cfg.Provider.Binary
		factory = func() ytdlp.Client {
			return ytdlp.NewCLI(ytdlp.WithBinary(binary))
		}
	}
	prober := opts.Prober
	if prober == nil {
		prober = factory()
	}

	pool := fetch.NewPool(cfg.Fetch.PoolSize, factory)
	fetcher := fetch.New(pool, fetch.Options{
		MaxRetries: cfg.Fetch.MaxRetries,
		RetryDelay: cfg.RetryDelay(),
		Extract: ytdlp.ExtractOptions{
			SocketTimeout:       cfg.SocketTimeout(),
			NoCheckCertificates: cfg.Provider.NoCheckCertificates,
		},
		Logger: logger,
	})

	return &Extractor{
		cfg:        cfg,
		logger:     logging.NewComponentLogger(logger, "engine"),
		fetcher:    fetcher,
		prober:     prober,
		normalizer: quality.NewNormalizer(logger),
		picker:     selection.NewPicker(logger),
		workers:    semaphore.NewWeighted(branchWorkers),
	}
}

// GetVideoStreams resolves videoID to the single best video stream for the
// requested quality token and optional codec filter. The result list carries
// at most one entry.
func (e *Extractor) GetVideoStreams(ctx context.Context, videoID, videoQuality, videoCodec string) ([]media.StreamInfo, error) {
	ctx = e.operationContext(ctx, "video", videoID)
	logger := logging.WithContext(ctx, e.logger)
	defer e.timeOperation(logger)()

	if videoQuality == "" {
		videoQuality = e.cfg.Defaults.VideoQuality
	}
	logger.Debug("getting video streams", slog.String("quality", videoQuality))

	ec, err := e.fetcher.Fetch(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if len(ec.Formats) == 0 {
		return nil, services.Wrap(services.ErrNoCandidates, "engine", "video",
			fmt.Sprintf("no streams found for video %s", videoID), nil)
	}

	candidates, _ := media.Partition(ec.Formats, media.PartitionOptions{IncludeVideo: true})
	best, err := e.picker.Video(candidates, e.normalizer.Normalize(videoQuality), videoCodec)
	if err != nil {
		return nil, err
	}
	return []media.StreamInfo{best}, nil
}

// GetAudioStreams resolves videoID to the single best audio stream for the
// requested bitrate (kbps) and optional codec filter. A codec filter that
// matches nothing falls back to the unfiltered best match with a warning.
func (e *Extractor) GetAudioStreams(ctx context.Context, videoID string, audioBitrate int, audioCodec string) ([]media.StreamInfo, error) {
	ctx = e.operationContext(ctx, "audio", videoID)
	logger := logging.WithContext(ctx, e.logger)
	defer e.timeOperation(logger)()

	if audioBitrate <= 0 {
		audioBitrate = e.cfg.Defaults.AudioBitrate
	}
	logger.Debug("getting audio streams",
		slog.Int("bitrate", audioBitrate),
		slog.String("codec", audioCodec))

	ec, err := e.fetcher.Fetch(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if len(ec.Formats) == 0 {
		return nil, services.Wrap(services.ErrNoCandidates, "engine", "audio",
			fmt.Sprintf("no streams found for video %s", videoID), nil)
	}

	_, candidates := media.Partition(ec.Formats, media.PartitionOptions{IncludeAudio: true})
	best, err := e.picker.Audio(candidates, audioBitrate, audioCodec, true)
	if err != nil {
		return nil, err
	}
	return []media.StreamInfo{best}, nil
}

// Cleanup releases every pooled provider client and the probe client. Safe to
// call more than once.
func (e *Extractor) Cleanup() {
	if err := e.fetcher.Close(); err != nil {
		e.logger.Warn("error during cleanup", logging.Error(err))
	}
	if err := e.prober.Close(); err != nil {
		e.logger.Warn("error closing probe client", logging.Error(err))
	}
}

func (e *Extractor) operationContext(ctx context.Context, operation, videoID string) context.Context {
	ctx, _ = services.EnsureRequestID(ctx)
	ctx = services.WithOperation(ctx, operation)
	return services.WithVideoID(ctx, videoID)
}

// timeOperation returns a func that logs the operation duration when invoked.
func (e *Extractor) timeOperation(logger *slog.Logger) func() {
	start := time.Now()
	return func() {
		logger.Debug("operation completed", slog.Duration("elapsed", time.Since(start)))
	}
}
