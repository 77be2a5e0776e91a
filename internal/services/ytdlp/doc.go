// Package ytdlp integrates the yt-dlp executable as the video-metadata
// provider: given a video identifier it returns the duration and the raw
// format descriptor list the selection engine works on.
//
// It exposes a Client interface, a CLI implementation that shells out to
// yt-dlp with single-JSON output, and a structured DownloadError that
// preserves the provider's error text for availability classification. Tests
// can swap in fakes (or override commandContext) to avoid invoking the real
// binary while still exercising engine behaviour.
package ytdlp
