// Package selection implements the best-match policy that reduces a candidate
// list to the single stream closest to the caller's preferences.
//
// Video selection prefers an exact height match (highest bitrate wins inside
// the exact set) and falls back to the smallest absolute height distance.
// Audio selection always minimizes absolute bitrate distance. Ties are broken
// by encounter order, so selection is stable with respect to provider order.
package selection

import (
	"fmt"
	"log/slog"
	"strings"

	"streampick/internal/logging"
	"streampick/internal/media"
	"streampick/internal/services"
)

// Picker applies the selection policy. It is stateless apart from its logger
// and safe for concurrent use.
type Picker struct {
	logger *slog.Logger
}

// NewPicker constructs a Picker. A nil logger is replaced with a no-op logger.
func NewPicker(logger *slog.Logger) *Picker {
	return &Picker{logger: logging.NewComponentLogger(logger, "selection")}
}

// Video picks the best video candidate for targetHeight. When codecFilter is
// non-empty, candidates whose codec does not match are removed first; an empty
// filtered set is an error naming the available codecs, never a silent
// fallback.
func (p *Picker) Video(candidates []media.StreamInfo, targetHeight int, codecFilter string) (media.StreamInfo, error) {
	if len(candidates) == 0 {
		return media.StreamInfo{}, services.Wrap(services.ErrNoCandidates, "selection", "video",
			"no video streams available", nil)
	}

	pool := candidates
	if codecFilter != "" {
		pool = filterByCodec(candidates, codecFilter)
		if len(pool) == 0 {
			return media.StreamInfo{}, services.Wrap(services.ErrNoCandidates, "selection", "video",
				fmt.Sprintf("no video streams with codec %q (available: %s)", codecFilter, availableCodecs(candidates)), nil)
		}
	}

	if best, ok := bestExactHeight(pool, targetHeight); ok {
		p.logger.Debug("exact quality match",
			slog.Int("height", best.Height),
			slog.Float64("bitrate", best.Bitrate))
		return best, nil
	}

	best := closestHeight(pool, targetHeight)
	p.logger.Warn("requested quality not available, using closest",
		slog.Int("target_height", targetHeight),
		slog.Int("height", best.Height))
	return best, nil
}

// Audio picks the candidate whose bitrate is closest to targetBitrate. When
// codecFilter matches nothing, behaviour depends on fallbackOnEmptyFilter:
// true selects from the unfiltered set with a warning (single-stream path),
// false fails the call (unified branch path).
func (p *Picker) Audio(candidates []media.StreamInfo, targetBitrate int, codecFilter string, fallbackOnEmptyFilter bool) (media.StreamInfo, error) {
	if len(candidates) == 0 {
		return media.StreamInfo{}, services.Wrap(services.ErrNoCandidates, "selection", "audio",
			"no audio streams available", nil)
	}

	pool := candidates
	if codecFilter != "" {
		filtered := filterByCodec(candidates, codecFilter)
		switch {
		case len(filtered) > 0:
			pool = filtered
			p.logger.Debug("codec filter applied",
				slog.String("codec", codecFilter),
				slog.Int("matches", len(filtered)))
		case fallbackOnEmptyFilter:
			p.logger.Warn("no streams with requested codec, using best available",
				slog.String("codec", codecFilter))
		default:
			return media.StreamInfo{}, services.Wrap(services.ErrNoCandidates, "selection", "audio",
				fmt.Sprintf("no audio streams with codec %q (available: %s)", codecFilter, availableCodecs(candidates)), nil)
		}
	}

	best := closestBitrate(pool, targetBitrate)
	if int(best.Bitrate) != targetBitrate {
		p.logger.Warn("requested bitrate not available, using closest",
			slog.Int("target_bitrate", targetBitrate),
			slog.Float64("bitrate", best.Bitrate))
	}
	return best, nil
}

// CodecMatches reports whether a descriptor codec string satisfies the filter
// token. Matching is case-insensitive: plain substring containment, plus the
// canonical aliases (h264/avc for avc1, vp9 for vp09, av1 for av01, aac/mp4a
// for mp4a, opus for opus).
func CodecMatches(filter, codec string) bool {
	f := strings.ToLower(strings.TrimSpace(filter))
	c := strings.ToLower(codec)
	if f == "" {
		return true
	}
	if strings.Contains(c, f) {
		return true
	}
	switch f {
	case "h264", "avc":
		return strings.Contains(c, "avc1")
	case "vp9":
		return strings.Contains(c, "vp09")
	case "av1":
		return strings.Contains(c, "av01")
	case "av01":
		return strings.Contains(c, "av1")
	case "aac", "mp4a":
		return strings.Contains(c, "mp4a")
	case "opus":
		return strings.Contains(c, "opus")
	}
	return false
}

func filterByCodec(candidates []media.StreamInfo, filter string) []media.StreamInfo {
	var out []media.StreamInfo
	for _, c := range candidates {
		if CodecMatches(filter, c.Codec) {
			out = append(out, c)
		}
	}
	return out
}

// availableCodecs lists the distinct codecs of candidates in encounter order,
// for inclusion in no-candidate error messages.
func availableCodecs(candidates []media.StreamInfo) string {
	seen := make(map[string]struct{}, len(candidates))
	var codecs []string
	for _, c := range candidates {
		if _, ok := seen[c.Codec]; ok {
			continue
		}
		seen[c.Codec] = struct{}{}
		codecs = append(codecs, c.Codec)
	}
	return strings.Join(codecs, ", ")
}

// bestExactHeight returns the highest-bitrate candidate whose height equals
// target. Strict greater-than keeps the earliest candidate on bitrate ties.
func bestExactHeight(candidates []media.StreamInfo, target int) (media.StreamInfo, bool) {
	var best media.StreamInfo
	found := false
	for _, c := range candidates {
		if c.Height != target {
			continue
		}
		if !found || c.Bitrate > best.Bitrate {
			best = c
			found = true
		}
	}
	return best, found
}

func closestHeight(candidates []media.StreamInfo, target int) media.StreamInfo {
	best := candidates[0]
	bestDist := absDiff(best.Height, target)
	for _, c := range candidates[1:] {
		if d := absDiff(c.Height, target); d < bestDist {
			best = c
			bestDist = d
		}
	}
	return best
}

func closestBitrate(candidates []media.StreamInfo, target int) media.StreamInfo {
	best := candidates[0]
	bestDist := absFloat(best.Bitrate - float64(target))
	for _, c := range candidates[1:] {
		if d := absFloat(c.Bitrate - float64(target)); d < bestDist {
			best = c
			bestDist = d
		}
	}
	return best
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

func absFloat(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
