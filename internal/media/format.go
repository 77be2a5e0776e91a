// Package media defines the format descriptors exchanged with the metadata
// provider and the catalog logic that partitions them into video and audio
// selection candidates.
package media

import "fmt"

// codecNone is the provider sentinel for "this track type is absent".
const codecNone = "none"

// manifestMarker flags adaptive-manifest URLs that cannot be played without
// further resolution.
const manifestMarker = "manifest"

// progressiveMarker flags direct progressive-playback endpoints. Unified
// retrieval only accepts video URLs carrying it.
const progressiveMarker = "videoplayback"

// RawFormat mirrors one format descriptor from the provider's JSON output.
// Entries are unordered and may repeat a format ID; the catalog does not
// deduplicate them.
type RawFormat struct {
	FormatID   string  `json:"format_id"`
	FormatNote string  `json:"format_note"`
	Ext        string  `json:"ext"`
	URL        string  `json:"url"`
	VCodec     string  `json:"vcodec"`
	ACodec     string  `json:"acodec"`
	Height     int     `json:"height"`
	Width      int     `json:"width"`
	TBR        float64 `json:"tbr"`
	Filesize   int64   `json:"filesize"`
	Resolution string  `json:"resolution"`
}

// StreamInfo is the immutable descriptor handed back to callers: a directly
// playable URL plus the metadata needed to reason about the pick.
type StreamInfo struct {
	URL        string  `json:"url"`
	Ext        string  `json:"ext"`
	Resolution string  `json:"resolution,omitempty"`
	Height     int     `json:"height,omitempty"`
	Width      int     `json:"width,omitempty"`
	Bitrate    float64 `json:"bitrate,omitempty"`
	Codec      string  `json:"codec,omitempty"`
	Filesize   int64   `json:"filesize,omitempty"`
	FormatNote string  `json:"format_note,omitempty"`
	FormatID   string  `json:"format_id,omitempty"`
}

// ExtractionContext carries one provider round trip: the video duration in
// seconds (0 when unknown) and the raw format list. It is owned by a single
// retrieval call and never mutated.
type ExtractionContext struct {
	Duration int
	Formats  []RawFormat
}

func (f RawFormat) ext() string {
	if f.Ext == "" {
		return "unknown"
	}
	return f.Ext
}

// resolution derives a display resolution when the provider did not supply
// one: "WxH" when both dimensions are known, "Hp" when only the height is.
func (f RawFormat) resolution() string {
	if f.Resolution != "" {
		return f.Resolution
	}
	if f.Height > 0 && f.Width > 0 {
		return fmt.Sprintf("%dx%d", f.Width, f.Height)
	}
	if f.Height > 0 {
		return fmt.Sprintf("%dp", f.Height)
	}
	return ""
}

// VideoStream builds the video-branch StreamInfo for f. The codec is always
// drawn from the video codec field.
func VideoStream(f RawFormat) StreamInfo {
	return StreamInfo{
		URL:        f.URL,
		Ext:        f.ext(),
		Resolution: f.resolution(),
		Height:     f.Height,
		Width:      f.Width,
		Bitrate:    f.TBR,
		Codec:      f.VCodec,
		Filesize:   f.Filesize,
		FormatNote: f.FormatNote,
		FormatID:   f.FormatID,
	}
}

// AudioStream builds the audio-branch StreamInfo for f. Video dimensions are
// deliberately omitted; the codec is always drawn from the audio codec field.
func AudioStream(f RawFormat) StreamInfo {
	return StreamInfo{
		URL:        f.URL,
		Ext:        f.ext(),
		Bitrate:    f.TBR,
		Codec:      f.ACodec,
		Filesize:   f.Filesize,
		FormatNote: f.FormatNote,
		FormatID:   f.FormatID,
	}
}
