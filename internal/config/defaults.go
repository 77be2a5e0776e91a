package config

const (
	defaultProviderBinary      = "yt-dlp"
	defaultSocketTimeout       = 10
	defaultProbeTimeout        = 5
	defaultNoCheckCertificates = true
	defaultMaxRetries          = 3
	defaultRetryDelayMS        = 500
	defaultPoolSize            = 2
	defaultBranchTimeout       = 20
	defaultVideoQuality        = "1080p"
	defaultAudioBitrate        = 192
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// Default returns a Config populated with repository defaults. The values
// mirror the provider options the engine relies on: short socket timeouts, a
// single provider-side retry (retrying happens above that layer), and a
// two-slot worker pool for unified retrieval.
func Default() Config {
	return Config{
		Provider: Provider{
			Binary:              defaultProviderBinary,
			SocketTimeout:       defaultSocketTimeout,
			ProbeTimeout:        defaultProbeTimeout,
			NoCheckCertificates: defaultNoCheckCertificates,
		},
		Fetch: Fetch{
			MaxRetries:   defaultMaxRetries,
			RetryDelayMS: defaultRetryDelayMS,
			PoolSize:     defaultPoolSize,
		},
		Unified: Unified{
			BranchTimeout: defaultBranchTimeout,
		},
		Defaults: Defaults{
			VideoQuality: defaultVideoQuality,
			AudioBitrate: defaultAudioBitrate,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
