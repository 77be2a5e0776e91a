package engine

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"streampick/internal/logging"
	"streampick/internal/services"
	"streampick/internal/services/ytdlp"
)

// Video availability statuses reported by CheckStatus.
const (
	StatusAvailable     = "available"
	StatusUnavailable   = "unavailable"
	StatusPrivate       = "private"
	StatusAgeRestricted = "age_restricted"
	StatusRemoved       = "removed"
	StatusError         = "error"
)

// VideoStatus is the structured availability result.
type VideoStatus struct {
	Available bool   `json:"available"`
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
}

// statusTable maps provider error substrings to availability statuses.
// First match wins; order matters.
var statusTable = []struct {
	substr string
	status string
}{
	{"Private video", StatusPrivate},
	{"Video unavailable", StatusUnavailable},
	{"age-restricted", StatusAgeRestricted},
	{"removed", StatusRemoved},
}

// CheckStatus performs one minimal-mode provider call to decide whether a
// video is playable. Provider failures never surface as errors: they are
// classified into the structured result. The probe is independent of the
// retrying fetch path and uses its own short timeout with no retries.
func (e *Extractor) CheckStatus(ctx context.Context, videoID string) VideoStatus {
	ctx = e.operationContext(ctx, "status", videoID)
	logger := logging.WithContext(ctx, e.logger)
	defer e.timeOperation(logger)()

	logger.Debug("checking video status")

	probeCtx, cancel := context.WithTimeout(ctx, e.cfg.ProbeTimeout())
	defer cancel()

	info, err := e.prober.Extract(probeCtx, videoID, ytdlp.ExtractOptions{
		SocketTimeout:       e.cfg.ProbeTimeout(),
		FlatExtraction:      true,
		NoCheckCertificates: e.cfg.Provider.NoCheckCertificates,
	})
	if err != nil {
		var de *ytdlp.DownloadError
		if errors.As(err, &de) {
			logger.Error("video unavailable", logging.Error(de))
			return VideoStatus{
				Available: false,
				Status:    classifyStatus(de.Message),
				Error:     de.Message,
			}
		}
		logger.Error("unexpected error checking status", logging.Error(err))
		return VideoStatus{
			Available: false,
			Status:    StatusError,
			Error:     services.Wrap(services.ErrProviderFetch, "engine", "status", videoID, err).Error(),
		}
	}

	if info == nil {
		logger.Warn("video information not available")
		return VideoStatus{
			Available: false,
			Status:    StatusUnavailable,
			Error:     "video information not available",
		}
	}

	logger.Debug("video is available", slog.String("title", info.Title))
	return VideoStatus{Available: true, Status: StatusAvailable}
}

func classifyStatus(message string) string {
	for _, entry := range statusTable {
		if strings.Contains(message, entry.substr) {
			return entry.status
		}
	}
	return StatusError
}
