package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"streampick/internal/engine"
)

const (
	ansiReset = "\x1b[0m"
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
)

// statusLabel turns a machine status token into a display label, e.g.
// "age_restricted" becomes "Age Restricted".
func statusLabel(status string) string {
	return cases.Title(language.Und).String(strings.ReplaceAll(status, "_", " "))
}

func renderStatusLine(videoID string, status engine.VideoStatus, colorize bool) string {
	label := statusLabel(status.Status)
	line := fmt.Sprintf("%s: %s", videoID, label)
	if !colorize {
		return line
	}
	color := ansiRed
	if status.Available {
		color = ansiGreen
	}
	return fmt.Sprintf("%s: %s%s%s", videoID, color, label, ansiReset)
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
