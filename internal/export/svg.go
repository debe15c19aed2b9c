package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/ballsim/internal/sim"
)

// SnapshotSVG draws a frame as circles on a stroked rectangle, one SVG unit
// per surface unit. Balls are emitted in list order so later balls paint
// over earlier ones.
func SnapshotSVG(snap sim.Snapshot, background string) string {
	w, h := snap.Surface.Width, snap.Surface.Height
	if background == "" {
		background = "#0a0a0a"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s" stroke="#808080" stroke-width="2"/>
`, w, h, w, h, background))

	for _, b := range snap.Balls {
		sb.WriteString(fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>
`, b.X, b.Y, b.Radius, b.Color))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// TrajectorySVG traces the path of one ball across recorded snapshots on top
// of the final frame.
func TrajectorySVG(snaps []sim.Snapshot, ballID int, stroke string) string {
	if len(snaps) == 0 {
		return ""
	}
	last := snaps[len(snaps)-1]
	base := SnapshotSVG(last, "")

	var path strings.Builder
	n := 0
	for _, s := range snaps {
		for _, b := range s.Balls {
			if b.ID != ballID {
				continue
			}
			if n == 0 {
				path.WriteString(fmt.Sprintf("M%.1f,%.1f", b.X, b.Y))
			} else {
				path.WriteString(fmt.Sprintf(" L%.1f,%.1f", b.X, b.Y))
			}
			n++
		}
	}
	if n < 2 {
		return base
	}

	trace := fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="%s"/>
`, stroke, path.String())
	return strings.TrimSuffix(base, "</svg>") + trace + "</svg>"
}
