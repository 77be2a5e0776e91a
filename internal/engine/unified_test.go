package engine

import (
	"context"
	"errors"
	"testing"

	"streampick/internal/media"
	"streampick/internal/services"
	"streampick/internal/services/ytdlp"
)

func TestUnifiedRequiresAtLeastOneBranch(t *testing.T) {
	e, client, _ := newTestEngine(nil, sampleInfo(), nil)

	_, err := e.GetUnifiedStreams(context.Background(), UnifiedRequest{VideoID: "abc123"})
	if !errors.Is(err, services.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	if client.extractCount() != 0 {
		t.Fatalf("precondition failure must not trigger a fetch, got %d calls", client.extractCount())
	}
}

func TestUnifiedSharesOneFetch(t *testing.T) {
	e, client, _ := newTestEngine(nil, sampleInfo(), nil)

	res, err := e.GetUnifiedStreams(context.Background(), UnifiedRequest{
		VideoID:      "abc123",
		VideoQuality: "1080p",
		AudioBitrate: 192,
		IncludeVideo: true,
		IncludeAudio: true,
	})
	if err != nil {
		t.Fatalf("GetUnifiedStreams returned error: %v", err)
	}
	if client.extractCount() != 1 {
		t.Fatalf("expected exactly one shared fetch, got %d", client.extractCount())
	}
	if res.Duration != 213 {
		t.Fatalf("expected shared duration 213, got %d", res.Duration)
	}
	if len(res.Video) != 1 || res.Video[0].FormatID != "137" {
		t.Fatalf("unexpected video branch %+v", res.Video)
	}
	if len(res.Audio) != 1 || res.Audio[0].FormatID != "251" {
		t.Fatalf("unexpected audio branch %+v", res.Audio)
	}
}

func TestUnifiedAppliesDefaults(t *testing.T) {
	e, _, _ := newTestEngine(nil, sampleInfo(), nil)

	res, err := e.GetUnifiedStreams(context.Background(), UnifiedRequest{
		VideoID:      "abc123",
		IncludeVideo: true,
		IncludeAudio: true,
	})
	if err != nil {
		t.Fatalf("GetUnifiedStreams returned error: %v", err)
	}
	// Defaults are 1080p and 192 kbps.
	if res.Video[0].FormatID != "137" || res.Audio[0].FormatID != "251" {
		t.Fatalf("unexpected default picks: video=%+v audio=%+v", res.Video, res.Audio)
	}
}

func TestUnifiedDegradesFailedAudioBranch(t *testing.T) {
	e, _, _ := newTestEngine(nil, sampleInfo(), nil)

	res, err := e.GetUnifiedStreams(context.Background(), UnifiedRequest{
		VideoID:      "abc123",
		AudioCodec:   "vorbis",
		IncludeVideo: true,
		IncludeAudio: true,
	})
	if err != nil {
		t.Fatalf("expected partial success, got %v", err)
	}
	if len(res.Video) != 1 {
		t.Fatalf("expected video branch to survive, got %+v", res.Video)
	}
	if res.Audio == nil || len(res.Audio) != 0 {
		t.Fatalf("expected requested-but-degraded audio branch to be present and empty, got %+v", res.Audio)
	}
}

func TestUnifiedSoloBranchFailurePropagates(t *testing.T) {
	e, _, _ := newTestEngine(nil, sampleInfo(), nil)

	// Strict codec filtering in unified mode: no silent fallback.
	_, err := e.GetUnifiedStreams(context.Background(), UnifiedRequest{
		VideoID:      "abc123",
		AudioCodec:   "vorbis",
		IncludeAudio: true,
	})
	if !errors.Is(err, services.ErrNoCandidates) {
		t.Fatalf("expected ErrNoCandidates, got %v", err)
	}
}

func TestUnifiedBothBranchesEmptyFails(t *testing.T) {
	e, _, _ := newTestEngine(nil, sampleInfo(), nil)

	_, err := e.GetUnifiedStreams(context.Background(), UnifiedRequest{
		VideoID:      "abc123",
		VideoCodec:   "av1",
		AudioCodec:   "vorbis",
		IncludeVideo: true,
		IncludeAudio: true,
	})
	if !errors.Is(err, services.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable when every branch degrades, got %v", err)
	}
}

func TestUnifiedRequiresProgressiveVideoURLs(t *testing.T) {
	info := &ytdlp.Info{Duration: 60, Formats: []media.RawFormat{
		{FormatID: "direct", VCodec: "avc1", URL: "https://cdn/stream/abc", Height: 720},
		{FormatID: "140", VCodec: "none", ACodec: "mp4a.40.2", URL: "https://cdn/videoplayback?itag=140", TBR: 129.5},
	}}
	e, _, _ := newTestEngine(nil, info, nil)

	res, err := e.GetUnifiedStreams(context.Background(), UnifiedRequest{
		VideoID:      "abc123",
		IncludeVideo: true,
		IncludeAudio: true,
	})
	if err != nil {
		t.Fatalf("expected audio to carry the call, got %v", err)
	}
	if len(res.Video) != 0 {
		t.Fatalf("non-progressive video URL must be filtered in unified mode, got %+v", res.Video)
	}
	if len(res.Audio) != 1 || res.Audio[0].FormatID != "140" {
		t.Fatalf("unexpected audio branch %+v", res.Audio)
	}
}

func TestUnifiedFetchFailurePropagates(t *testing.T) {
	e, _, _ := newTestEngine(nil, nil, errors.New("binary not found"))

	_, err := e.GetUnifiedStreams(context.Background(), UnifiedRequest{
		VideoID:      "abc123",
		IncludeVideo: true,
		IncludeAudio: true,
	})
	if !errors.Is(err, services.ErrProviderFetch) {
		t.Fatalf("expected ErrProviderFetch, got %v", err)
	}
}

func TestUnifiedNoFormats(t *testing.T) {
	e, _, _ := newTestEngine(nil, &ytdlp.Info{Duration: 5}, nil)

	_, err := e.GetUnifiedStreams(context.Background(), UnifiedRequest{
		VideoID:      "abc123",
		IncludeVideo: true,
	})
	if !errors.Is(err, services.ErrNoCandidates) {
		t.Fatalf("expected ErrNoCandidates, got %v", err)
	}
}

func TestUnifiedBranchTimeoutDegrades(t *testing.T) {
	cfg := testConfig()
	cfg.Unified.BranchTimeout = 0
	e, _, _ := newTestEngine(cfg, sampleInfo(), nil)

	// Hold both worker slots so branch tasks cannot be scheduled; with a zero
	// budget every await expires immediately.
	if err := e.workers.Acquire(context.Background(), branchWorkers); err != nil {
		t.Fatalf("acquiring worker slots: %v", err)
	}
	defer e.workers.Release(branchWorkers)

	_, err := e.GetUnifiedStreams(context.Background(), UnifiedRequest{
		VideoID:      "abc123",
		IncludeVideo: true,
		IncludeAudio: true,
	})
	// Both branches time out, so both degrade to empty and the merge fails.
	if !errors.Is(err, services.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestUnifiedSoloBranchTimeoutFails(t *testing.T) {
	cfg := testConfig()
	cfg.Unified.BranchTimeout = 0
	e, _, _ := newTestEngine(cfg, sampleInfo(), nil)

	if err := e.workers.Acquire(context.Background(), branchWorkers); err != nil {
		t.Fatalf("acquiring worker slots: %v", err)
	}
	defer e.workers.Release(branchWorkers)

	_, err := e.GetUnifiedStreams(context.Background(), UnifiedRequest{
		VideoID:      "abc123",
		IncludeVideo: true,
	})
	if !errors.Is(err, services.ErrTimeout) {
		t.Fatalf("expected ErrTimeout for solo branch, got %v", err)
	}
}
