// Command streampick selects the best playable video and audio streams for a
// video via the yt-dlp metadata provider. It exposes availability checks,
// single-branch selection, unified dual-branch selection, and configuration
// utilities.
package main
