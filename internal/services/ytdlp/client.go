package ytdlp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"streampick/internal/media"
)

var commandContext = exec.CommandContext

// ExtractOptions carries the provider options the engine controls per call.
type ExtractOptions struct {
	// SocketTimeout bounds provider-side network waits.
	SocketTimeout time.Duration
	// Retries is the provider-side retry count. The engine always passes 1;
	// retrying is handled above this layer.
	Retries int
	// FlatExtraction requests minimal metadata. Only the status probe sets it.
	FlatExtraction bool
	// NoCheckCertificates relaxes TLS verification on the provider side.
	NoCheckCertificates bool
}

// Info is the provider result: video duration plus the raw format list.
type Info struct {
	ID       string            `json:"id"`
	Title    string            `json:"title"`
	Duration float64           `json:"duration"`
	Formats  []media.RawFormat `json:"formats"`
}

// DownloadError is the structured, potentially retryable provider failure:
// yt-dlp ran but reported an extraction error. Message preserves the provider
// text so callers can classify availability sub-reasons.
type DownloadError struct {
	Message string
}

func (e *DownloadError) Error() string {
	return e.Message
}

// IsDownloadError reports whether err carries a structured provider failure.
func IsDownloadError(err error) bool {
	var de *DownloadError
	return errors.As(err, &de)
}

// Client defines provider extraction behaviour.
type Client interface {
	// Extract resolves videoID to metadata. A nil Info with nil error means
	// the provider succeeded but returned nothing usable.
	Extract(ctx context.Context, videoID string, opts ExtractOptions) (*Info, error)
	// Close releases any resources held by the client.
	Close() error
}

// Option configures the CLI client.
type Option func(*CLI)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// CLI wraps the yt-dlp command-line extractor.
type CLI struct {
	binary string
}

// NewCLI constructs a CLI client using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{binary: "yt-dlp"}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Extract invokes yt-dlp with single-JSON output and decodes the result.
func (c *CLI) Extract(ctx context.Context, videoID string, opts ExtractOptions) (*Info, error) {
	if strings.TrimSpace(videoID) == "" {
		return nil, errors.New("video id required")
	}

	args := buildArgs(videoID, opts)
	cmd := commandContext(ctx, c.binary, args...) //nolint:gosec
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("provider call: %w", ctx.Err())
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			if msg := providerErrorLine(stderr.String()); msg != "" {
				return nil, &DownloadError{Message: msg}
			}
			return nil, fmt.Errorf("yt-dlp exited: %w: %s", err, strings.TrimSpace(stderr.String()))
		}
		return nil, fmt.Errorf("run yt-dlp: %w", err)
	}

	payload := strings.TrimSpace(stdout.String())
	if payload == "" || payload == "null" {
		return nil, nil
	}

	var info Info
	if err := json.Unmarshal([]byte(payload), &info); err != nil {
		return nil, fmt.Errorf("decode yt-dlp output: %w", err)
	}
	return &info, nil
}

// Close is a no-op for the CLI client; each extraction is its own process.
// It satisfies the pooled-client contract.
func (c *CLI) Close() error {
	return nil
}

func buildArgs(videoID string, opts ExtractOptions) []string {
	args := []string{"--dump-single-json", "--quiet", "--no-warnings"}
	if opts.SocketTimeout > 0 {
		args = append(args, "--socket-timeout", strconv.Itoa(int(opts.SocketTimeout/time.Second)))
	}
	retries := opts.Retries
	if retries < 1 {
		retries = 1
	}
	args = append(args, "--retries", strconv.Itoa(retries))
	if opts.FlatExtraction {
		args = append(args, "--flat-playlist")
	}
	if opts.NoCheckCertificates {
		args = append(args, "--no-check-certificates")
	}
	return append(args, videoID)
}

// providerErrorLine extracts the first "ERROR:" line yt-dlp wrote to stderr.
func providerErrorLine(stderr string) string {
	for _, line := range strings.Split(stderr, "\n") {
		line = strings.TrimSpace(line)
		if rest, ok := strings.CutPrefix(line, "ERROR:"); ok {
			return strings.TrimSpace(rest)
		}
	}
	return ""
}

var _ Client = (*CLI)(nil)
