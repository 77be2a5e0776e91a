package main

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"streampick/internal/config"
	"streampick/internal/engine"
	"streampick/internal/logging"
	"streampick/internal/media"
)

// streamService is the engine surface the commands drive.
type streamService interface {
	CheckStatus(ctx context.Context, videoID string) engine.VideoStatus
	GetVideoStreams(ctx context.Context, videoID, videoQuality, videoCodec string) ([]media.StreamInfo, error)
	GetAudioStreams(ctx context.Context, videoID string, audioBitrate int, audioCodec string) ([]media.StreamInfo, error)
	GetUnifiedStreams(ctx context.Context, req engine.UnifiedRequest) (*engine.UnifiedResult, error)
	Cleanup()
}

// newService builds the engine behind the CLI; tests swap this out.
var newService = func(cfg *config.Config, logger *slog.Logger) streamService {
	return engine.New(engine.Options{Config: cfg, Logger: logger})
}

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// withService builds a service from the loaded configuration, runs fn, and
// releases the provider clients afterwards. Logs go to stderr so stdout stays
// clean for command output.
func (c *commandContext) withService(cmd *cobra.Command, fn func(context.Context, streamService) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}

	var logger *slog.Logger
	if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
		logger, err = logging.New(logging.Options{
			Level:  strings.TrimSpace(*c.logLevelFlag),
			Format: cfg.Logging.Format,
			Writer: cmd.ErrOrStderr(),
		})
	} else {
		logger, err = logging.NewFromConfig(cfg, cmd.ErrOrStderr())
	}
	if err != nil {
		return err
	}

	svc := newService(cfg, logger)
	defer svc.Cleanup()
	return fn(cmd.Context(), svc)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
