package media

import "strings"

// PartitionOptions controls which candidates a partition pass admits.
type PartitionOptions struct {
	// IncludeVideo and IncludeAudio gate the respective candidate lists.
	IncludeVideo bool
	IncludeAudio bool
	// RequireProgressive additionally restricts video candidates to direct
	// progressive-playback URLs. Unified retrieval sets it so the merged
	// result never needs further manifest resolution.
	RequireProgressive bool
}

// Partition splits raw provider formats into video and audio selection
// candidates and converts each admitted descriptor to a StreamInfo.
//
// A descriptor is video-capable when its video codec is present, its URL is
// non-empty, and the URL does not reference a manifest. It is audio-capable
// when its audio codec is present, its URL is non-empty, and it carries a
// positive average bitrate. One descriptor may qualify for both lists; each
// branch reads only its own codec field.
func Partition(formats []RawFormat, opts PartitionOptions) (video, audio []StreamInfo) {
	for _, f := range formats {
		if opts.IncludeVideo && videoCapable(f, opts.RequireProgressive) {
			video = append(video, VideoStream(f))
		}
		if opts.IncludeAudio && audioCapable(f) {
			audio = append(audio, AudioStream(f))
		}
	}
	return video, audio
}

func videoCapable(f RawFormat, requireProgressive bool) bool {
	if f.VCodec == "" || f.VCodec == codecNone {
		return false
	}
	if f.URL == "" || strings.Contains(f.URL, manifestMarker) {
		return false
	}
	if requireProgressive && !strings.Contains(f.URL, progressiveMarker) {
		return false
	}
	return true
}

func audioCapable(f RawFormat) bool {
	if f.ACodec == "" || f.ACodec == codecNone {
		return false
	}
	if f.URL == "" {
		return false
	}
	return f.TBR > 0
}
