package main

import (
	"fmt"
	"strconv"
	"strings"

	"streampick/internal/media"
)

func renderStreamTable(streams []media.StreamInfo) string {
	headers := []string{"Format", "Ext", "Resolution", "Codec", "Bitrate", "Size"}
	rows := make([][]string, 0, len(streams))
	for _, s := range streams {
		rows = append(rows, []string{
			s.FormatID,
			s.Ext,
			s.Resolution,
			s.Codec,
			formatBitrate(s.Bitrate),
			formatSize(s.Filesize),
		})
	}
	return renderTable(headers, rows, []columnAlignment{
		alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight,
	})
}

// renderBranch renders one unified branch, noting when it came back empty.
func renderBranch(name string, streams []media.StreamInfo) string {
	if len(streams) == 0 {
		return fmt.Sprintf("%s: no suitable stream", name)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s:\n", name)
	b.WriteString(renderStreamTable(streams))
	for _, s := range streams {
		fmt.Fprintf(&b, "\n%s: %s", s.FormatID, s.URL)
	}
	return b.String()
}

func formatBitrate(kbps float64) string {
	if kbps <= 0 {
		return "-"
	}
	return strconv.FormatFloat(kbps, 'f', 0, 64) + "k"
}

func formatSize(bytes int64) string {
	if bytes <= 0 {
		return "-"
	}
	const mib = 1024 * 1024
	if bytes < mib {
		return fmt.Sprintf("%.1f KiB", float64(bytes)/1024)
	}
	return fmt.Sprintf("%.1f MiB", float64(bytes)/mib)
}

func formatDuration(seconds int) string {
	if seconds <= 0 {
		return "0:00"
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
