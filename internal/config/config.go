package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Provider contains configuration for the external yt-dlp metadata provider.
type Provider struct {
	Binary              string `toml:"binary"`
	SocketTimeout       int    `toml:"socket_timeout"`
	ProbeTimeout        int    `toml:"probe_timeout"`
	NoCheckCertificates bool   `toml:"no_check_certificates"`
}

// Fetch contains configuration for the retrying fetch layer.
type Fetch struct {
	MaxRetries   int `toml:"max_retries"`
	RetryDelayMS int `toml:"retry_delay_ms"`
	PoolSize     int `toml:"pool_size"`
}

// Unified contains configuration for the dual-branch orchestrator.
type Unified struct {
	BranchTimeout int `toml:"branch_timeout"`
}

// Defaults contains fallback selection preferences applied when the caller
// does not supply any.
type Defaults struct {
	VideoQuality string `toml:"video_quality"`
	AudioBitrate int    `toml:"audio_bitrate"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for streampick.
//
// Configuration sections by subsystem:
//   - Provider: yt-dlp binary, socket/probe timeouts, certificate relaxation
//   - Fetch: retry count, fixed retry delay, provider-client pool size
//   - Unified: per-branch timeout for unified retrieval
//   - Defaults: video quality and audio bitrate used when unset
//   - Logging: log format and level
type Config struct {
	Provider Provider `toml:"provider"`
	Fetch    Fetch    `toml:"fetch"`
	Unified  Unified  `toml:"unified"`
	Defaults Defaults `toml:"defaults"`
	Logging  Logging  `toml:"logging"`
}

// RetryDelay returns the fixed delay between fetch attempts.
func (c *Config) RetryDelay() time.Duration {
	return time.Duration(c.Fetch.RetryDelayMS) * time.Millisecond
}

// SocketTimeout returns the provider socket timeout for full extraction.
func (c *Config) SocketTimeout() time.Duration {
	return time.Duration(c.Provider.SocketTimeout) * time.Second
}

// ProbeTimeout returns the short timeout used by the status probe.
func (c *Config) ProbeTimeout() time.Duration {
	return time.Duration(c.Provider.ProbeTimeout) * time.Second
}

// BranchTimeout returns the unified per-branch selection budget.
func (c *Config) BranchTimeout() time.Duration {
	return time.Duration(c.Unified.BranchTimeout) * time.Second
}

// SampleConfig returns the embedded annotated sample configuration.
func SampleConfig() string {
	return sampleConfig
}

// CreateSample writes the annotated sample configuration to path.
func CreateSample(path string) error {
	return os.WriteFile(path, []byte(sampleConfig), 0o644)
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/streampick/config.toml")
}

// ExpandPath resolves a user-supplied path, expanding a leading ~ to the home
// directory and normalizing to an absolute path.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// Load locates, parses, and validates a configuration file. The second return
// value is the resolved path, the third reports whether the file existed.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("streampick.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}
