// Package quality parses human-friendly quality tokens ("720p", "4k",
// "full hd") into canonical pixel heights. Results are memoized; a height of 0
// means the token could not be parsed and selection should fall back to
// closest-match behaviour.
package quality

import (
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"streampick/internal/logging"
)

// kTable maps k-notation tokens to pixel heights.
var kTable = map[string]int{
	"1k": 1080,
	"2k": 1440,
	"4k": 2160,
	"8k": 4320,
}

// aliasTable maps marketing names to pixel heights.
var aliasTable = map[string]int{
	"hd":       720,
	"high":     720,
	"fhd":      1080,
	"full hd":  1080,
	"fullhd":   1080,
	"qhd":      1440,
	"quad hd":  1440,
	"quadhd":   1440,
	"uhd":      2160,
	"ultra hd": 2160,
	"ultrahd":  2160,
}

// Normalizer converts quality tokens to target heights. The cache is shared
// across callers; entries are write-once and idempotent, so concurrent races
// only risk redundant parsing.
type Normalizer struct {
	logger *slog.Logger
	cache  sync.Map // token -> int
}

// NewNormalizer constructs a Normalizer. A nil logger is replaced with a
// no-op logger.
func NewNormalizer(logger *slog.Logger) *Normalizer {
	return &Normalizer{logger: logging.NewComponentLogger(logger, "quality")}
}

// Normalize returns the target height in pixels for token. It never fails;
// unparseable input yields 0 after a warning.
func (n *Normalizer) Normalize(token string) int {
	if token == "" {
		return 0
	}
	if cached, ok := n.cache.Load(token); ok {
		return cached.(int)
	}
	height := n.parse(token)
	n.cache.Store(token, height)
	return height
}

func (n *Normalizer) parse(token string) int {
	lowered := strings.ToLower(strings.TrimSpace(token))
	if lowered == "" {
		return 0
	}

	if trimmed, ok := strings.CutSuffix(lowered, "p"); ok {
		if height, err := strconv.Atoi(trimmed); err == nil && height >= 0 {
			return height
		}
		// Not a plain "<digits>p" token; fall through to the tables.
	}

	if height, ok := kTable[lowered]; ok {
		return height
	}

	if allDigits(lowered) {
		height, err := strconv.Atoi(lowered)
		if err == nil {
			return height
		}
	}

	if height, ok := aliasTable[lowered]; ok {
		return height
	}

	n.logger.Warn("unable to parse quality token", slog.String("quality", token))
	return 0
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
