package console

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/willibrandon/notepad/internal/storage/sqlite"
)

// maxPathWidth truncates long paths in the recent-files table.
const maxPathWidth = 60

// FormatRecent renders recent files as an aligned table, newest first.
func FormatRecent(files []sqlite.RecentFile, now time.Time) string {
	if len(files) == 0 {
		return "No recent files."
	}

	pathWidth := 0
	for _, f := range files {
		if w := runewidth.StringWidth(f.Path); w > pathWidth {
			pathWidth = w
		}
	}
	if pathWidth > maxPathWidth {
		pathWidth = maxPathWidth
	}

	var sb strings.Builder
	sb.WriteString("Recent files:")
	for i, f := range files {
		path := runewidth.Truncate(f.Path, pathWidth, "…")
		fmt.Fprintf(&sb, "\n%3d) %s  %-4s  %9s  %s",
			i+1,
			runewidth.FillRight(path, pathWidth),
			f.Action,
			humanize.Bytes(uint64(f.SizeBytes)),
			humanize.RelTime(f.TouchedAt, now, "ago", "from now"),
		)
	}
	return sb.String()
}
