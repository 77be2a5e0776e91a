package engine

import (
	"context"
	"fmt"
	"log/slog"

	"streampick/internal/logging"
	"streampick/internal/media"
	"streampick/internal/services"
)

// UnifiedRequest describes one unified retrieval call.
type UnifiedRequest struct {
	VideoID      string
	VideoQuality string
	AudioBitrate int
	VideoCodec   string
	AudioCodec   string
	IncludeVideo bool
	IncludeAudio bool
}

// UnifiedResult merges the branch outcomes of one unified call. Each branch
// list holds at most one entry; a requested branch that degraded is present
// but empty. Duration always reflects the shared extraction.
type UnifiedResult struct {
	Duration int                `json:"duration"`
	Video    []media.StreamInfo `json:"video,omitempty"`
	Audio    []media.StreamInfo `json:"audio,omitempty"`
}

// branchOutcome is the tagged result of one branch task, so the merge logic
// stays a plain decision table instead of error-driven control flow.
type branchOutcome struct {
	name     string
	streams  []media.StreamInfo
	err      error
	timedOut bool
}

type branchTask struct {
	name string
	solo bool // the other branch was not requested
	done chan branchOutcome
}

// GetUnifiedStreams fetches metadata once and resolves the requested branches
// concurrently, each under its own timeout. A branch failure or timeout
// degrades to an empty branch when the other branch was also requested; the
// call fails outright when a degraded branch was the only one requested, and
// when every requested branch ends up empty.
func (e *Extractor) GetUnifiedStreams(ctx context.Context, req UnifiedRequest) (*UnifiedResult, error) {
	if !req.IncludeVideo && !req.IncludeAudio {
		return nil, services.Wrap(services.ErrInvalidArgument, "engine", "unified",
			"at least one of video or audio must be requested", nil)
	}

	ctx = e.operationContext(ctx, "unified", req.VideoID)
	logger := logging.WithContext(ctx, e.logger)
	defer e.timeOperation(logger)()

	if req.VideoQuality == "" {
		req.VideoQuality = e.cfg.Defaults.VideoQuality
	}
	if req.AudioBitrate <= 0 {
		req.AudioBitrate = e.cfg.Defaults.AudioBitrate
	}
	logger.Debug("getting unified streams",
		slog.String("video_quality", req.VideoQuality),
		slog.Int("audio_bitrate", req.AudioBitrate),
		slog.String("video_codec", req.VideoCodec),
		slog.String("audio_codec", req.AudioCodec),
		slog.Bool("include_video", req.IncludeVideo),
		slog.Bool("include_audio", req.IncludeAudio))

	// One shared round trip; branches never race the fetch.
	ec, err := e.fetcher.Fetch(ctx, req.VideoID)
	if err != nil {
		return nil, err
	}
	if len(ec.Formats) == 0 {
		return nil, services.Wrap(services.ErrNoCandidates, "engine", "unified",
			fmt.Sprintf("no formats available for video %s", req.VideoID), nil)
	}

	videoCandidates, audioCandidates := media.Partition(ec.Formats, media.PartitionOptions{
		IncludeVideo:       req.IncludeVideo,
		IncludeAudio:       req.IncludeAudio,
		RequireProgressive: true,
	})

	var tasks []branchTask
	if req.IncludeVideo {
		tasks = append(tasks, e.dispatchBranch(ctx, "video", !req.IncludeAudio, func() ([]media.StreamInfo, error) {
			return e.selectVideoBranch(videoCandidates, req)
		}))
	}
	if req.IncludeAudio {
		tasks = append(tasks, e.dispatchBranch(ctx, "audio", !req.IncludeVideo, func() ([]media.StreamInfo, error) {
			return e.selectAudioBranch(audioCandidates, req)
		}))
	}

	result := &UnifiedResult{Duration: ec.Duration}
	for _, task := range tasks {
		outcome := e.awaitBranch(ctx, task)
		switch {
		case outcome.timedOut:
			if task.solo {
				return nil, services.Wrap(services.ErrTimeout, "engine", "unified",
					fmt.Sprintf("%s branch timed out for video %s", task.name, req.VideoID), nil)
			}
			logger.Warn("branch timed out, continuing", slog.String("branch", task.name))
			result.record(task.name, nil)
		case outcome.err != nil:
			if task.solo || !services.Recoverable(outcome.err) {
				return nil, outcome.err
			}
			logger.Warn("branch failed, continuing",
				slog.String("branch", task.name),
				logging.Error(outcome.err))
			result.record(task.name, nil)
		default:
			result.record(task.name, outcome.streams)
		}
	}

	if req.IncludeVideo && req.IncludeAudio && len(result.Video) == 0 && len(result.Audio) == 0 {
		return nil, services.Wrap(services.ErrUnavailable, "engine", "unified",
			fmt.Sprintf("failed to get both video and audio streams for video %s", req.VideoID), nil)
	}

	logger.Debug("unified retrieval complete",
		slog.Int("video_count", len(result.Video)),
		slog.Int("audio_count", len(result.Audio)))
	return result, nil
}

func (r *UnifiedResult) record(branch string, streams []media.StreamInfo) {
	if streams == nil {
		streams = []media.StreamInfo{}
	}
	if branch == "video" {
		r.Video = streams
		return
	}
	r.Audio = streams
}

func (e *Extractor) selectVideoBranch(candidates []media.StreamInfo, req UnifiedRequest) ([]media.StreamInfo, error) {
	best, err := e.picker.Video(candidates, e.normalizer.Normalize(req.VideoQuality), req.VideoCodec)
	if err != nil {
		return nil, err
	}
	return []media.StreamInfo{best}, nil
}

func (e *Extractor) selectAudioBranch(candidates []media.StreamInfo, req UnifiedRequest) ([]media.StreamInfo, error) {
	// Strict codec filtering: the orchestrator recovers from branch failure,
	// so there is no silent fallback here.
	best, err := e.picker.Audio(candidates, req.AudioBitrate, req.AudioCodec, false)
	if err != nil {
		return nil, err
	}
	return []media.StreamInfo{best}, nil
}

// dispatchBranch submits one branch task to the bounded worker pool. The
// slot is acquired inside the task so dispatch never blocks; a saturated pool
// delays the branch, which the per-branch timeout then bounds.
func (e *Extractor) dispatchBranch(ctx context.Context, name string, solo bool, work func() ([]media.StreamInfo, error)) branchTask {
	task := branchTask{name: name, solo: solo, done: make(chan branchOutcome, 1)}
	go func() {
		if err := e.workers.Acquire(ctx, 1); err != nil {
			task.done <- branchOutcome{name: name, err: services.Wrap(services.ErrTimeout, "engine", "unified",
				fmt.Sprintf("%s branch could not be scheduled", name), err)}
			return
		}
		defer e.workers.Release(1)
		streams, err := work()
		task.done <- branchOutcome{name: name, streams: streams, err: err}
	}()
	return task
}

// awaitBranch waits for one branch under the configured per-branch budget.
// A timed-out branch is abandoned; it cannot affect the other branch.
func (e *Extractor) awaitBranch(ctx context.Context, task branchTask) branchOutcome {
	timeout := e.cfg.BranchTimeout()
	timer, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	select {
	case outcome := <-task.done:
		return outcome
	case <-timer.Done():
		return branchOutcome{name: task.name, timedOut: true}
	}
}
