package config

import "strings"

func (c *Config) normalize() {
	c.Provider.Binary = strings.TrimSpace(c.Provider.Binary)
	if c.Provider.Binary == "" {
		c.Provider.Binary = defaultProviderBinary
	}

	c.Defaults.VideoQuality = strings.TrimSpace(c.Defaults.VideoQuality)
	if c.Defaults.VideoQuality == "" {
		c.Defaults.VideoQuality = defaultVideoQuality
	}
	if c.Defaults.AudioBitrate == 0 {
		c.Defaults.AudioBitrate = defaultAudioBitrate
	}

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
